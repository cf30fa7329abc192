package figmasimplify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hellenic-development/figma-simplify/pkg/css"
	"github.com/hellenic-development/figma-simplify/pkg/figma"
	"github.com/hellenic-development/figma-simplify/pkg/simplifier"
)

// DefaultCollaborators returns the built-in layout, stroke, and effect
// builders. They are pure functions of a raw node (and its parent, for
// layout); callers with their own derivation can swap any of them via
// Options.Collaborators.
func DefaultCollaborators() simplifier.Collaborators {
	return simplifier.Collaborators{
		Layout:  buildLayout,
		Strokes: buildStrokes,
		Effects: buildEffects,
	}
}

// buildLayout derives a CSS-flavored layout object from a node's auto-layout
// and geometry. The parent is used only to express the node's position
// relative to it; a nil parent (root node) yields absolute coordinates.
func buildLayout(node, parent *figma.Node) map[string]any {
	layout := map[string]any{"mode": layoutMode(node.LayoutMode)}

	if node.LayoutMode != "" {
		if v := alignValue(node.CounterAxisAlignItems); v != "" {
			layout["alignItems"] = v
		}
		if v := alignValue(node.PrimaryAxisAlignItems); v != "" {
			layout["justifyContent"] = v
		}
		if node.ItemSpacing > 0 {
			layout["gap"] = formatPx(node.ItemSpacing)
		}
		padding := css.Shorthand(css.Box{
			Top:    node.PaddingTop,
			Right:  node.PaddingRight,
			Bottom: node.PaddingBottom,
			Left:   node.PaddingLeft,
		}, css.ShorthandOptions{})
		if padding != "" {
			layout["padding"] = padding
		}
	}

	sizing := map[string]any{}
	if node.LayoutSizingHorizontal != "" {
		sizing["horizontal"] = strings.ToLower(node.LayoutSizingHorizontal)
	}
	if node.LayoutSizingVertical != "" {
		sizing["vertical"] = strings.ToLower(node.LayoutSizingVertical)
	}
	if len(sizing) > 0 {
		layout["sizing"] = sizing
	}

	if box := node.AbsoluteBoundingBox; box != nil {
		layout["dimensions"] = map[string]any{
			"width":  box.Width,
			"height": box.Height,
		}
		x, y := box.X, box.Y
		if parent != nil && parent.AbsoluteBoundingBox != nil {
			x -= parent.AbsoluteBoundingBox.X
			y -= parent.AbsoluteBoundingBox.Y
		}
		layout["position"] = map[string]any{"x": x, "y": y}
	}

	return layout
}

func layoutMode(mode string) string {
	switch mode {
	case "HORIZONTAL":
		return "row"
	case "VERTICAL":
		return "column"
	default:
		return "none"
	}
}

func alignValue(v string) string {
	switch v {
	case "MIN":
		return "flex-start"
	case "MAX":
		return "flex-end"
	case "CENTER":
		return "center"
	case "SPACE_BETWEEN":
		return "space-between"
	case "BASELINE":
		return "baseline"
	default:
		return ""
	}
}

// buildStrokes collects the solid stroke colors of a node along with weight
// and dash pattern. Gradient and image strokes are out of reach for a plain
// color list and are skipped here.
func buildStrokes(node *figma.Node) map[string]any {
	var colors []any
	for i := range node.Strokes {
		stroke := &node.Strokes[i]
		if stroke.Type != "SOLID" || stroke.Color == nil || !stroke.IsVisible() {
			continue
		}
		colors = append(colors, css.FormatColor(*stroke.Color, stroke.EffectiveOpacity()))
	}

	if len(colors) == 0 {
		return nil
	}

	strokes := map[string]any{"colors": colors}
	if node.StrokeWeight > 0 {
		strokes["strokeWeight"] = formatPx(node.StrokeWeight)
	}
	if len(node.StrokeDashes) > 0 {
		dashes := make([]any, len(node.StrokeDashes))
		for i, d := range node.StrokeDashes {
			dashes[i] = d
		}
		strokes["strokeDashes"] = dashes
	}

	return strokes
}

// buildEffects renders visible node effects as their CSS equivalents:
// shadows become box-shadow entries and blurs become filter /
// backdrop-filter values.
func buildEffects(node *figma.Node) map[string]any {
	var shadows []string
	effects := map[string]any{}

	for i := range node.Effects {
		effect := &node.Effects[i]
		if !effect.IsVisible() {
			continue
		}

		switch effect.Type {
		case "DROP_SHADOW", "INNER_SHADOW":
			var offset figma.Vector
			if effect.Offset != nil {
				offset = *effect.Offset
			}
			c := figma.Color{A: 1}
			if effect.Color != nil {
				c = *effect.Color
			}
			shadow := fmt.Sprintf("%s %s %s %s %s",
				formatPx(offset.X), formatPx(offset.Y),
				formatPx(effect.Radius), formatPx(effect.Spread),
				css.FormatColor(c, 1))
			if effect.Type == "INNER_SHADOW" {
				shadow = "inset " + shadow
			}
			shadows = append(shadows, shadow)
		case "LAYER_BLUR":
			effects["filter"] = fmt.Sprintf("blur(%s)", formatPx(effect.Radius))
		case "BACKGROUND_BLUR":
			effects["backdropFilter"] = fmt.Sprintf("blur(%s)", formatPx(effect.Radius))
		}
	}

	if len(shadows) > 0 {
		effects["boxShadow"] = strings.Join(shadows, ", ")
	}
	if len(effects) == 0 {
		return nil
	}

	return effects
}

func formatPx(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64) + "px"
}
