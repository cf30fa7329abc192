// Package simplifier transforms a raw Figma node tree into a compact,
// self-contained representation: every value inlined, colors and gradients
// normalized to CSS-equivalent strings, empty structures pruned, and the
// tree optionally truncated to a fixed number of layers.
package simplifier

import (
	"github.com/hellenic-development/figma-simplify/pkg/css"
	"github.com/hellenic-development/figma-simplify/pkg/figma"
)

// SimplifiedDesign is the root of one simplification's output. It is created
// once per fetch and never mutated afterward.
type SimplifiedDesign struct {
	Name          string                     `json:"name" yaml:"name"`
	LastModified  string                     `json:"lastModified,omitempty" yaml:"lastModified,omitempty"`
	ThumbnailURL  string                     `json:"thumbnailUrl,omitempty" yaml:"thumbnailUrl,omitempty"`
	Nodes         []SimplifiedNode           `json:"nodes" yaml:"nodes"`
	Components    map[string]ComponentDef    `json:"components,omitempty" yaml:"components,omitempty"`
	ComponentSets map[string]ComponentSetDef `json:"componentSets,omitempty" yaml:"componentSets,omitempty"`
}

// ComponentDef is the sanitized catalog entry for a component definition.
type ComponentDef struct {
	ID             string `json:"id" yaml:"id"`
	Key            string `json:"key" yaml:"key"`
	Name           string `json:"name" yaml:"name"`
	ComponentSetID string `json:"componentSetId,omitempty" yaml:"componentSetId,omitempty"`
}

// ComponentSetDef is the sanitized catalog entry for a component set.
type ComponentSetDef struct {
	ID          string `json:"id" yaml:"id"`
	Key         string `json:"key" yaml:"key"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// TextStyle is the simplified text style attached to text nodes. LineHeight
// is expressed relative to the font size with an "em" suffix and
// LetterSpacing as a percentage of the font size.
type TextStyle struct {
	FontFamily          string  `json:"fontFamily,omitempty" yaml:"fontFamily,omitempty"`
	FontWeight          float64 `json:"fontWeight,omitempty" yaml:"fontWeight,omitempty"`
	FontSize            float64 `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	LineHeight          string  `json:"lineHeight,omitempty" yaml:"lineHeight,omitempty"`
	LetterSpacing       string  `json:"letterSpacing,omitempty" yaml:"letterSpacing,omitempty"`
	TextCase            string  `json:"textCase,omitempty" yaml:"textCase,omitempty"`
	TextAlignHorizontal string  `json:"textAlignHorizontal,omitempty" yaml:"textAlignHorizontal,omitempty"`
	TextAlignVertical   string  `json:"textAlignVertical,omitempty" yaml:"textAlignVertical,omitempty"`
}

// SimplifiedNode is one node of the output tree. A node exclusively owns its
// children; parent linkage exists only transiently during simplification and
// is never retained here. Any field whose computed value is empty is elided
// from the serialized form.
type SimplifiedNode struct {
	ID                  string            `json:"id" yaml:"id"`
	Name                string            `json:"name" yaml:"name"`
	Type                string            `json:"type" yaml:"type"`
	BoundingBox         *figma.Rectangle  `json:"boundingBox,omitempty" yaml:"boundingBox,omitempty"`
	Text                string            `json:"text,omitempty" yaml:"text,omitempty"`
	TextStyle           *TextStyle        `json:"textStyle,omitempty" yaml:"textStyle,omitempty"`
	Fills               []css.Fill        `json:"fills,omitempty" yaml:"fills,omitempty"`
	Styles              map[string]string `json:"styles,omitempty" yaml:"styles,omitempty"`
	Strokes             map[string]any    `json:"strokes,omitempty" yaml:"strokes,omitempty"`
	Effects             map[string]any    `json:"effects,omitempty" yaml:"effects,omitempty"`
	Opacity             float64           `json:"opacity,omitempty" yaml:"opacity,omitempty"`
	BorderRadius        string            `json:"borderRadius,omitempty" yaml:"borderRadius,omitempty"`
	Layout              map[string]any    `json:"layout,omitempty" yaml:"layout,omitempty"`
	ComponentID         string            `json:"componentId,omitempty" yaml:"componentId,omitempty"`
	ComponentProperties map[string]string `json:"componentProperties,omitempty" yaml:"componentProperties,omitempty"`
	Children            []SimplifiedNode  `json:"children,omitempty" yaml:"children,omitempty"`
}

// Collaborators are the external pure functions the simplifier merges into
// its output per node. They are read-only over the raw node; layout
// additionally sees the immediate parent (nil at the roots). Any nil member
// contributes nothing.
type Collaborators struct {
	Layout  func(node, parent *figma.Node) map[string]any
	Strokes func(node *figma.Node) map[string]any
	Effects func(node *figma.Node) map[string]any
}
