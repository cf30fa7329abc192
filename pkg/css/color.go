// Package css converts Figma paints and style values into CSS-equivalent
// representations: solid colors become hex or rgba() strings, gradients
// become linear-/radial-/conic-gradient() strings, and image/pattern paints
// become structured fill descriptors.
package css

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hellenic-development/figma-simplify/pkg/figma"
)

// ErrNotFinite is returned by PixelRound for NaN or infinite input.
var ErrNotFinite = errors.New("css: value is not a finite number")

// PixelRound rounds a pixel value to two decimals. It returns ErrNotFinite
// for NaN or infinite input instead of propagating a garbage value into the
// serialized output.
func PixelRound(n float64) (float64, error) {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%w: %v", ErrNotFinite, n)
	}
	return math.Round(n*100) / 100, nil
}

// round2 is PixelRound for values already known to be finite.
func round2(n float64) float64 {
	return math.Round(n*100) / 100
}

// clamp01 pulls v to the nearest point in [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// trimFloat formats a float with no trailing zeros ("4", "4.5", "1.2").
func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// channel converts a [0,1] color channel to its 0-255 integer value.
func channel(v float64) int {
	return int(math.Round(v * 255))
}

// FormatColor renders a Figma color as a CSS value. The combined alpha is
// opacity * c.A rounded to two decimals; a fully opaque color becomes an
// uppercase #RRGGBB string and anything else becomes rgba(r, g, b, a).
func FormatColor(c figma.Color, opacity float64) string {
	alpha := round2(opacity * c.A)
	if alpha == 1 {
		return fmt.Sprintf("#%02X%02X%02X", channel(c.R), channel(c.G), channel(c.B))
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", channel(c.R), channel(c.G), channel(c.B), trimFloat(alpha))
}

// ParseHex parses a 3- or 6-digit hex color, with or without a leading '#'.
// It reports ok=false for any other shape.
func ParseHex(hex string) (r, g, b uint8, ok bool) {
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) == 3 {
		expanded := make([]byte, 6)
		for i := 0; i < 3; i++ {
			expanded[i*2] = hex[i]
			expanded[i*2+1] = hex[i]
		}
		hex = string(expanded)
	}

	if len(hex) != 6 {
		return 0, 0, 0, false
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}

	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

// HexToRGBA converts a 3- or 6-digit hex color to an rgba() string with the
// given opacity. Opacity is normalized into [0,1]. The function is total:
// malformed hex input degrades to black rather than failing.
func HexToRGBA(hex string, opacity float64) string {
	opacity = clamp01(opacity)

	r, g, b, ok := ParseHex(hex)
	if !ok {
		r, g, b = 0, 0, 0
	}

	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, trimFloat(opacity))
}

// Box holds the four sides of a CSS box value (padding, margin, radius).
type Box struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// ShorthandOptions controls Shorthand rendering. The zero value gives the
// defaults: zero-valued boxes collapse to an empty string and sides carry a
// "px" suffix.
type ShorthandOptions struct {
	// IncludeZero renders an all-zero box as "0px" instead of "".
	IncludeZero bool
	// Suffix overrides the per-side unit suffix; empty means "px".
	Suffix string
}

// Shorthand collapses a 4-sided box into the shortest equivalent CSS
// shorthand (1, 2, 3, or 4 tokens). An all-zero box yields "" unless
// opts.IncludeZero is set.
func Shorthand(b Box, opts ShorthandOptions) string {
	if b.Top == 0 && b.Right == 0 && b.Bottom == 0 && b.Left == 0 && !opts.IncludeZero {
		return ""
	}

	suffix := opts.Suffix
	if suffix == "" {
		suffix = "px"
	}

	top := trimFloat(b.Top) + suffix
	right := trimFloat(b.Right) + suffix
	bottom := trimFloat(b.Bottom) + suffix
	left := trimFloat(b.Left) + suffix

	switch {
	case b.Top == b.Bottom && b.Right == b.Left && b.Top == b.Right:
		return top
	case b.Top == b.Bottom && b.Right == b.Left:
		return top + " " + right
	case b.Right == b.Left:
		return top + " " + right + " " + bottom
	default:
		return top + " " + right + " " + bottom + " " + left
	}
}
