package simplifier

import (
	"fmt"
	"strconv"

	"github.com/hellenic-development/figma-simplify/pkg/css"
	"github.com/hellenic-development/figma-simplify/pkg/figma"
)

// Logger receives non-fatal simplification warnings. A nil Logger silences
// them.
type Logger interface {
	Warnf(format string, args ...any)
}

// Simplifier walks raw node trees and assembles SimplifiedDesign output.
// It is a synchronous, pure-CPU transformation with no shared mutable state;
// one Simplifier may be reused across independent trees.
type Simplifier struct {
	Collab Collaborators
	Logger Logger

	normalizer css.Normalizer
}

// New returns a Simplifier using the given collaborators and logger. The
// logger is also wired into the paint normalizer so gradient fallback
// warnings surface through the same channel.
func New(collab Collaborators, logger Logger) *Simplifier {
	return &Simplifier{
		Collab:     collab,
		Logger:     logger,
		normalizer: css.Normalizer{Logger: logger},
	}
}

// Simplify transforms the given root nodes and raw component catalogs into a
// SimplifiedDesign. Nodes carrying an explicit visible=false are dropped
// entirely, including their subtrees. The only fatal condition inside the
// walk is an unrecognized paint type, which aborts the simplification.
//
// The returned design carries empty metadata fields; callers fill in name,
// lastModified, and thumbnailUrl from the file response.
func (s *Simplifier) Simplify(nodes []figma.Node, components map[string]figma.Component, componentSets map[string]figma.ComponentSet) (*SimplifiedDesign, error) {
	simplified, err := s.simplifyChildren(nodes, nil)
	if err != nil {
		return nil, err
	}

	return &SimplifiedDesign{
		Nodes:         simplified,
		Components:    simplifyComponents(components),
		ComponentSets: simplifyComponentSets(componentSets),
	}, nil
}

func (s *Simplifier) simplifyChildren(nodes []figma.Node, parent *figma.Node) ([]SimplifiedNode, error) {
	var out []SimplifiedNode
	for i := range nodes {
		node := &nodes[i]
		if !node.IsVisible() {
			continue
		}

		sn, err := s.simplifyNode(node, parent)
		if err != nil {
			return nil, err
		}
		out = append(out, *sn)
	}
	return out, nil
}

// simplifyNode converts a single visible raw node. The parent is passed by
// reference for layout derivation only and is never stored on the result.
func (s *Simplifier) simplifyNode(node, parent *figma.Node) (*SimplifiedNode, error) {
	sn := &SimplifiedNode{
		ID:          node.ID,
		Name:        node.Name,
		Type:        simplifyType(node.Type),
		BoundingBox: node.AbsoluteBoundingBox,
		Styles:      node.Styles,
	}

	if node.Characters != "" {
		sn.Text = node.Characters
	}

	if node.Style != nil {
		sn.TextStyle = simplifyTextStyle(node.Style)
	}

	for _, paint := range node.Fills {
		if !paint.IsVisible() {
			continue
		}
		fill, err := s.normalizer.Paint(paint)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", node.ID, err)
		}
		sn.Fills = append(sn.Fills, fill)
	}

	if s.Collab.Strokes != nil {
		if strokes := s.Collab.Strokes(node); len(strokes) > 0 {
			sn.Strokes = strokes
		}
	}

	if s.Collab.Effects != nil {
		if effects := s.Collab.Effects(node); len(effects) > 0 {
			sn.Effects = effects
		}
	}

	// Full opacity is the implicit default and is elided.
	if node.Opacity != nil && *node.Opacity != 1 {
		sn.Opacity = *node.Opacity
	}

	sn.BorderRadius = borderRadius(node)

	// A layout with a single key carries no information beyond its mode.
	if s.Collab.Layout != nil {
		if layout := s.Collab.Layout(node, parent); len(layout) > 1 {
			sn.Layout = layout
		}
	}

	if node.Type == "INSTANCE" {
		sn.ComponentID = node.ComponentID
		if len(node.ComponentProperties) > 0 {
			props := make(map[string]string, len(node.ComponentProperties))
			for name, prop := range node.ComponentProperties {
				props[name] = fmt.Sprintf("%v", prop.Value)
			}
			sn.ComponentProperties = props
		}
	}

	children, err := s.simplifyChildren(node.Children, node)
	if err != nil {
		return nil, err
	}
	sn.Children = children

	return sn, nil
}

// simplifyType rewrites raw node types whose simplified meaning differs.
// VECTOR nodes are retagged IMAGE-SVG: downstream consumers treat them as
// renderable image assets rather than vector path data.
func simplifyType(rawType string) string {
	if rawType == "VECTOR" {
		return "IMAGE-SVG"
	}
	return rawType
}

func simplifyTextStyle(style *figma.TypeStyle) *TextStyle {
	ts := &TextStyle{
		FontFamily:          style.FontFamily,
		FontWeight:          style.FontWeight,
		FontSize:            style.FontSize,
		TextCase:            style.TextCase,
		TextAlignHorizontal: style.TextAlignHorizontal,
		TextAlignVertical:   style.TextAlignVertical,
	}

	if style.FontSize != 0 {
		if style.LineHeightPx != 0 {
			if em, err := css.PixelRound(style.LineHeightPx / style.FontSize); err == nil {
				ts.LineHeight = formatFloat(em) + "em"
			}
		}
		if style.LetterSpacing != 0 {
			if p, err := css.PixelRound(style.LetterSpacing / style.FontSize * 100); err == nil {
				ts.LetterSpacing = formatFloat(p) + "%"
			}
		}
	}

	if *ts == (TextStyle{}) {
		return nil
	}
	return ts
}

// borderRadius renders a uniform radius as "{n}px" and per-corner radii as a
// "{tl}px {tr}px {br}px {bl}px" 4-value string.
func borderRadius(node *figma.Node) string {
	if len(node.RectangleCornerRadii) == 4 {
		r := node.RectangleCornerRadii
		return fmt.Sprintf("%spx %spx %spx %spx",
			formatFloat(r[0]), formatFloat(r[1]), formatFloat(r[2]), formatFloat(r[3]))
	}
	if node.CornerRadius != nil && *node.CornerRadius != 0 {
		return formatFloat(*node.CornerRadius) + "px"
	}
	return ""
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func simplifyComponents(components map[string]figma.Component) map[string]ComponentDef {
	if len(components) == 0 {
		return nil
	}
	out := make(map[string]ComponentDef, len(components))
	for id, c := range components {
		out[id] = ComponentDef{
			ID:             id,
			Key:            c.Key,
			Name:           c.Name,
			ComponentSetID: c.ComponentSetID,
		}
	}
	return out
}

func simplifyComponentSets(sets map[string]figma.ComponentSet) map[string]ComponentSetDef {
	if len(sets) == 0 {
		return nil
	}
	out := make(map[string]ComponentSetDef, len(sets))
	for id, cs := range sets {
		out[id] = ComponentSetDef{
			ID:          id,
			Key:         cs.Key,
			Name:        cs.Name,
			Description: cs.Description,
		}
	}
	return out
}

// FindNodeByID searches the simplified tree depth-first in pre-order and
// returns the first node whose ID matches, or false when no node does. It is
// intended for node-scoped lookups by external callers (image download
// resolution, for example); the simplifier itself never uses it.
func FindNodeByID(id string, nodes []SimplifiedNode) (*SimplifiedNode, bool) {
	for i := range nodes {
		if nodes[i].ID == id {
			return &nodes[i], true
		}
		if found, ok := FindNodeByID(id, nodes[i].Children); ok {
			return found, true
		}
	}
	return nil, false
}
