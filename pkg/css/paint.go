package css

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hellenic-development/figma-simplify/pkg/figma"
)

// ErrUnknownPaintType is returned when a paint carries a type this package
// does not recognize. Unknown paint kinds are unknown API surface and fail
// the surrounding simplification rather than being silently skipped.
var ErrUnknownPaintType = errors.New("css: unrecognized paint type")

// Fill is the normalized form of a paint: a CSS value string for solid and
// gradient paints, or a structured descriptor for IMAGE and PATTERN paints.
// Exactly one of the three members is set.
type Fill struct {
	CSS     string
	Image   *ImageFill
	Pattern *PatternFill
}

// ImageFill is the structured fill emitted for IMAGE paints. Optional source
// fields are passed through only when present on the paint.
type ImageFill struct {
	Type           string             `json:"type" yaml:"type"`
	ImageRef       string             `json:"imageRef" yaml:"imageRef"`
	ScaleMode      string             `json:"scaleMode" yaml:"scaleMode"`
	ImageTransform [][]float64        `json:"imageTransform,omitempty" yaml:"imageTransform,omitempty"`
	ScalingFactor  *float64           `json:"scalingFactor,omitempty" yaml:"scalingFactor,omitempty"`
	Rotation       *float64           `json:"rotation,omitempty" yaml:"rotation,omitempty"`
	Filters        map[string]float64 `json:"filters,omitempty" yaml:"filters,omitempty"`
	GifRef         string             `json:"gifRef,omitempty" yaml:"gifRef,omitempty"`
}

// PatternFill is the structured fill emitted for PATTERN paints.
type PatternFill struct {
	Type                string        `json:"type" yaml:"type"`
	SourceNodeID        string        `json:"sourceNodeId" yaml:"sourceNodeId"`
	TileType            string        `json:"tileType,omitempty" yaml:"tileType,omitempty"`
	ScalingFactor       *float64      `json:"scalingFactor,omitempty" yaml:"scalingFactor,omitempty"`
	Spacing             *figma.Vector `json:"spacing,omitempty" yaml:"spacing,omitempty"`
	HorizontalAlignment string        `json:"horizontalAlignment,omitempty" yaml:"horizontalAlignment,omitempty"`
	VerticalAlignment   string        `json:"verticalAlignment,omitempty" yaml:"verticalAlignment,omitempty"`
}

// MarshalJSON renders the fill as a bare string for CSS values and as an
// object for structured fills.
func (f Fill) MarshalJSON() ([]byte, error) {
	switch {
	case f.Image != nil:
		return json.Marshal(f.Image)
	case f.Pattern != nil:
		return json.Marshal(f.Pattern)
	default:
		return json.Marshal(f.CSS)
	}
}

// MarshalYAML mirrors MarshalJSON for YAML output.
func (f Fill) MarshalYAML() (any, error) {
	switch {
	case f.Image != nil:
		return f.Image, nil
	case f.Pattern != nil:
		return f.Pattern, nil
	default:
		return f.CSS, nil
	}
}

// Logger receives non-fatal conversion warnings. A nil Logger silences them.
type Logger interface {
	Warnf(format string, args ...any)
}

// Normalizer converts raw paints into Fill values. The zero value is usable;
// set Logger to surface gradient fallback warnings.
type Normalizer struct {
	Logger Logger
}

func (n *Normalizer) warnf(format string, args ...any) {
	if n.Logger != nil {
		n.Logger.Warnf(format, args...)
	}
}

// Paint normalizes a single raw paint.
//
// SOLID paints become an uppercase #RRGGBB string when the combined alpha
// (paint opacity times color alpha, rounded to two decimals) is 1, and an
// rgba() string otherwise. Gradient paints become a CSS gradient string;
// malformed gradient geometry degrades to FallbackGradient with a warning
// instead of failing. IMAGE and PATTERN paints become structured fills.
// Every other paint type returns ErrUnknownPaintType.
func (n *Normalizer) Paint(p figma.Paint) (Fill, error) {
	switch p.Type {
	case "SOLID":
		c := figma.Color{A: 1}
		if p.Color != nil {
			c = *p.Color
		}
		return Fill{CSS: FormatColor(c, p.EffectiveOpacity())}, nil

	case "GRADIENT_LINEAR", "GRADIENT_RADIAL", "GRADIENT_ANGULAR", "GRADIENT_DIAMOND":
		value, err := GradientCSS(p)
		if err != nil {
			n.warnf("gradient conversion failed (%v), using fallback", err)
			value = FallbackGradient
		}
		return Fill{CSS: value}, nil

	case "IMAGE":
		scaleMode := strings.ToUpper(p.ScaleMode)
		if scaleMode == "" {
			scaleMode = "FIT"
		}
		return Fill{Image: &ImageFill{
			Type:           "IMAGE",
			ImageRef:       p.ImageRef,
			ScaleMode:      scaleMode,
			ImageTransform: p.ImageTransform,
			ScalingFactor:  p.ScalingFactor,
			Rotation:       p.Rotation,
			Filters:        p.Filters,
			GifRef:         p.GifRef,
		}}, nil

	case "PATTERN":
		return Fill{Pattern: &PatternFill{
			Type:                "PATTERN",
			SourceNodeID:        p.SourceNodeID,
			TileType:            p.TileType,
			ScalingFactor:       p.ScalingFactor,
			Spacing:             p.Spacing,
			HorizontalAlignment: p.HorizontalAlignment,
			VerticalAlignment:   p.VerticalAlignment,
		}}, nil

	default:
		return Fill{}, fmt.Errorf("%w: %q", ErrUnknownPaintType, p.Type)
	}
}
