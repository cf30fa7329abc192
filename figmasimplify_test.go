package figmasimplify

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellenic-development/figma-simplify/pkg/figma"
	"github.com/hellenic-development/figma-simplify/pkg/simplifier"
)

func TestSerializeJSON(t *testing.T) {
	design := &simplifier.SimplifiedDesign{
		Name: "Demo",
		Nodes: []simplifier.SimplifiedNode{
			{ID: "1:1", Name: "Frame", Type: "FRAME"},
		},
	}

	out, err := Serialize(design, "json")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "Demo", decoded["name"])

	nodes := decoded["nodes"].([]any)
	require.Len(t, nodes, 1)
	node := nodes[0].(map[string]any)
	assert.Equal(t, "1:1", node["id"])

	// Empty containers never reach the output.
	_, hasChildren := node["children"]
	assert.False(t, hasChildren)
	_, hasFills := node["fills"]
	assert.False(t, hasFills)
}

func TestSerializeYAML(t *testing.T) {
	design := &simplifier.SimplifiedDesign{
		Name: "Demo",
		Nodes: []simplifier.SimplifiedNode{
			{ID: "1:1", Name: "Frame", Type: "FRAME", BorderRadius: "8px"},
		},
	}

	out, err := Serialize(design, "yaml")
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "name: Demo")
	assert.Contains(t, text, "borderRadius: 8px")
	assert.NotContains(t, text, "components")
}

func TestSerializeUnknownFormat(t *testing.T) {
	_, err := Serialize(&simplifier.SimplifiedDesign{}, "xml")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "xml"))
}

func TestBuildLayout(t *testing.T) {
	node := &figma.Node{
		ID:   "1:1",
		Name: "Toolbar",
		Type: "FRAME",

		LayoutMode:             "HORIZONTAL",
		PrimaryAxisAlignItems:  "SPACE_BETWEEN",
		CounterAxisAlignItems:  "CENTER",
		ItemSpacing:            8,
		PaddingTop:             4,
		PaddingRight:           12,
		PaddingBottom:          4,
		PaddingLeft:            12,
		LayoutSizingHorizontal: "FILL",
		AbsoluteBoundingBox:    &figma.Rectangle{X: 100, Y: 200, Width: 320, Height: 48},
	}
	parent := &figma.Node{
		AbsoluteBoundingBox: &figma.Rectangle{X: 80, Y: 150},
	}

	layout := buildLayout(node, parent)

	assert.Equal(t, "row", layout["mode"])
	assert.Equal(t, "space-between", layout["justifyContent"])
	assert.Equal(t, "center", layout["alignItems"])
	assert.Equal(t, "8px", layout["gap"])
	assert.Equal(t, "4px 12px", layout["padding"])
	assert.Equal(t, map[string]any{"horizontal": "fill"}, layout["sizing"])
	assert.Equal(t, map[string]any{"width": 320.0, "height": 48.0}, layout["dimensions"])
	assert.Equal(t, map[string]any{"x": 20.0, "y": 50.0}, layout["position"])
}

func TestBuildLayoutNonAutoLayout(t *testing.T) {
	node := &figma.Node{ID: "1:1", Name: "Shape", Type: "RECTANGLE"}

	layout := buildLayout(node, nil)

	assert.Equal(t, "none", layout["mode"])
	_, hasGap := layout["gap"]
	assert.False(t, hasGap)
	_, hasPosition := layout["position"]
	assert.False(t, hasPosition, "no bounding box means no position")
}

func TestBuildStrokes(t *testing.T) {
	hidden := false
	node := &figma.Node{
		Strokes: []figma.Paint{
			{Type: "SOLID", Color: &figma.Color{R: 1, A: 1}},
			{Type: "SOLID", Visible: &hidden, Color: &figma.Color{G: 1, A: 1}},
			{Type: "GRADIENT_LINEAR"},
		},
		StrokeWeight: 2,
		StrokeDashes: []float64{4, 2},
	}

	strokes := buildStrokes(node)
	require.NotNil(t, strokes)

	assert.Equal(t, []any{"#FF0000"}, strokes["colors"])
	assert.Equal(t, "2px", strokes["strokeWeight"])
	assert.Equal(t, []any{4.0, 2.0}, strokes["strokeDashes"])

	assert.Nil(t, buildStrokes(&figma.Node{}), "no solid strokes yields nothing")
}

func TestBuildEffects(t *testing.T) {
	node := &figma.Node{
		Effects: []figma.Effect{
			{
				Type:   "DROP_SHADOW",
				Offset: &figma.Vector{X: 0, Y: 4},
				Radius: 8,
				Color:  &figma.Color{A: 0.25},
			},
			{
				Type:   "INNER_SHADOW",
				Offset: &figma.Vector{X: 1, Y: 1},
				Radius: 2,
				Color:  &figma.Color{R: 1, G: 1, B: 1, A: 1},
			},
			{Type: "LAYER_BLUR", Radius: 4},
		},
	}

	effects := buildEffects(node)
	require.NotNil(t, effects)

	assert.Equal(t, "0px 4px 8px 0px rgba(0, 0, 0, 0.25), inset 1px 1px 2px 0px #FFFFFF", effects["boxShadow"])
	assert.Equal(t, "blur(4px)", effects["filter"])

	assert.Nil(t, buildEffects(&figma.Node{}), "no effects yields nothing")
}

func TestBuildEffectsSkipsInvisible(t *testing.T) {
	hidden := false
	node := &figma.Node{
		Effects: []figma.Effect{
			{Type: "LAYER_BLUR", Radius: 4, Visible: &hidden},
		},
	}

	assert.Nil(t, buildEffects(node))
}

func TestDefaultCollaborators(t *testing.T) {
	collab := DefaultCollaborators()

	require.NotNil(t, collab.Layout)
	require.NotNil(t, collab.Strokes)
	require.NotNil(t, collab.Effects)
}
