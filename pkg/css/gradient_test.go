package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellenic-development/figma-simplify/pkg/figma"
)

func blackToWhiteStops() []figma.ColorStop {
	return []figma.ColorStop{
		{Position: 0, Color: figma.Color{R: 0, G: 0, B: 0, A: 1}},
		{Position: 1, Color: figma.Color{R: 1, G: 1, B: 1, A: 1}},
	}
}

func TestGradientCSSLinearAngles(t *testing.T) {
	tests := []struct {
		name    string
		handles []figma.Vector
		want    string
	}{
		{
			name:    "left to right is 0deg",
			handles: []figma.Vector{{X: 0, Y: 0}, {X: 1, Y: 0}},
			want:    "linear-gradient(0deg, rgba(0, 0, 0, 1) 0%, rgba(255, 255, 255, 1) 100%)",
		},
		{
			name:    "top to bottom is 90deg",
			handles: []figma.Vector{{X: 0, Y: 0}, {X: 0, Y: 1}},
			want:    "linear-gradient(90deg, rgba(0, 0, 0, 1) 0%, rgba(255, 255, 255, 1) 100%)",
		},
		{
			name:    "diagonal is 45deg",
			handles: []figma.Vector{{X: 0, Y: 0}, {X: 1, Y: 1}},
			want:    "linear-gradient(45deg, rgba(0, 0, 0, 1) 0%, rgba(255, 255, 255, 1) 100%)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GradientCSS(figma.Paint{
				Type:                    "GRADIENT_LINEAR",
				GradientHandlePositions: tt.handles,
				GradientStops:           blackToWhiteStops(),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGradientCSSClampsHandles(t *testing.T) {
	// Out-of-bounds handles are pulled to the nearest in-bounds point, so
	// {-1,0} -> {2,0} behaves exactly like {0,0} -> {1,0}.
	got, err := GradientCSS(figma.Paint{
		Type:                    "GRADIENT_LINEAR",
		GradientHandlePositions: []figma.Vector{{X: -1, Y: 0}, {X: 2, Y: 0}},
		GradientStops:           blackToWhiteStops(),
	})
	require.NoError(t, err)
	assert.Contains(t, got, "linear-gradient(0deg,")
}

func TestGradientCSSRadial(t *testing.T) {
	got, err := GradientCSS(figma.Paint{
		Type:                    "GRADIENT_RADIAL",
		GradientHandlePositions: []figma.Vector{{X: 0.5, Y: 0.5}, {X: 1, Y: 0.5}},
		GradientStops:           blackToWhiteStops(),
	})
	require.NoError(t, err)
	assert.Equal(t, "radial-gradient(circle 50% at 50% 50%, rgba(0, 0, 0, 1) 0%, rgba(255, 255, 255, 1) 100%)", got)
}

func TestGradientCSSAngular(t *testing.T) {
	got, err := GradientCSS(figma.Paint{
		Type:                    "GRADIENT_ANGULAR",
		GradientHandlePositions: []figma.Vector{{X: 0.5, Y: 0.5}, {X: 0.5, Y: 1}},
		GradientStops:           blackToWhiteStops(),
	})
	require.NoError(t, err)
	assert.Equal(t, "conic-gradient(from 90deg at 50% 50%, rgba(0, 0, 0, 1) 0%, rgba(255, 255, 255, 1) 100%)", got)
}

func TestGradientCSSDiamond(t *testing.T) {
	got, err := GradientCSS(figma.Paint{
		Type: "GRADIENT_DIAMOND",
		GradientHandlePositions: []figma.Vector{
			{X: 0.5, Y: 0.5},
			{X: 0.9, Y: 0.5},
			{X: 0.5, Y: 0.75},
		},
		GradientStops: blackToWhiteStops(),
	})
	require.NoError(t, err)
	assert.Equal(t, "radial-gradient(ellipse 40% 25% at 50% 50%, rgba(0, 0, 0, 1) 0%, rgba(255, 255, 255, 1) 100%)", got)
}

func TestGradientCSSStopFormatting(t *testing.T) {
	half := 0.5
	got, err := GradientCSS(figma.Paint{
		Type:                    "GRADIENT_LINEAR",
		Opacity:                 &half,
		GradientHandlePositions: []figma.Vector{{X: 0, Y: 0}, {X: 1, Y: 0}},
		GradientStops: []figma.ColorStop{
			{Position: 0.333, Color: figma.Color{R: 1, G: 0, B: 0, A: 1}},
			{Position: 0.666, Color: figma.Color{R: 0, G: 0, B: 1, A: 0.8}},
		},
	})
	require.NoError(t, err)
	// Paint opacity composes into each stop; positions round to integer percents.
	assert.Equal(t, "linear-gradient(0deg, rgba(255, 0, 0, 0.5) 33%, rgba(0, 0, 255, 0.4) 67%)", got)
}

func TestGradientCSSEmptyStops(t *testing.T) {
	got, err := GradientCSS(figma.Paint{
		Type:                    "GRADIENT_LINEAR",
		GradientHandlePositions: []figma.Vector{{X: 0, Y: 0}, {X: 1, Y: 0}},
	})
	require.NoError(t, err)
	assert.Equal(t, "linear-gradient(0deg, rgba(0,0,0,1) 0%, rgba(255,255,255,1) 100%)", got)
}

func TestGradientCSSMissingHandles(t *testing.T) {
	_, err := GradientCSS(figma.Paint{
		Type:                    "GRADIENT_LINEAR",
		GradientHandlePositions: []figma.Vector{{X: 0, Y: 0}},
		GradientStops:           blackToWhiteStops(),
	})
	assert.ErrorIs(t, err, ErrGradientGeometry)
}
