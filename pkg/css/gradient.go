package css

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/hellenic-development/figma-simplify/pkg/figma"
)

// FallbackGradient is emitted whenever gradient geometry cannot be derived
// from the paint's handles or stops. Gradient conversion never aborts the
// surrounding tree simplification.
const FallbackGradient = "linear-gradient(0deg, rgba(0,0,0,1) 0%, rgba(255,255,255,1) 100%)"

// defaultStops is the black-to-white stop pair used when a gradient carries
// no stops of its own.
const defaultStops = "rgba(0,0,0,1) 0%, rgba(255,255,255,1) 100%"

// ErrGradientGeometry is returned when a gradient paint does not carry
// enough handle positions to derive its geometry.
var ErrGradientGeometry = errors.New("css: insufficient gradient handle positions")

// GradientCSS converts a gradient paint into a CSS gradient string. Handle
// positions are clamped into the unit square before any angle or radius is
// derived; handles extending beyond the shape bounds are pulled to the
// nearest in-bounds point. An error here is recoverable: the caller
// substitutes FallbackGradient.
func GradientCSS(p figma.Paint) (string, error) {
	handles := clampHandles(p.GradientHandlePositions)
	stops := formatStops(p.GradientStops, p.EffectiveOpacity())

	switch p.Type {
	case "GRADIENT_LINEAR":
		return linearGradient(handles, stops)
	case "GRADIENT_RADIAL":
		return radialGradient(handles, stops)
	case "GRADIENT_ANGULAR":
		return angularGradient(handles, stops)
	case "GRADIENT_DIAMOND":
		return diamondGradient(handles, stops)
	default:
		return "", fmt.Errorf("css: not a gradient paint type: %q", p.Type)
	}
}

func clampHandles(handles []figma.Vector) []figma.Vector {
	clamped := make([]figma.Vector, len(handles))
	for i, h := range handles {
		clamped[i] = figma.Vector{X: clamp01(h.X), Y: clamp01(h.Y)}
	}
	return clamped
}

// cssAngle derives the CSS gradient angle in degrees for the direction from
// a to b. The unit square has y pointing down, so the mapping is
// (90 - atan2(dx, dy)) normalized into [0,360): a gradient running left to
// right is 0deg and one running top to bottom is 90deg.
func cssAngle(a, b figma.Vector) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	deg := math.Atan2(dx, dy) * 180 / math.Pi
	return math.Mod(90-deg+360, 360)
}

func linearGradient(handles []figma.Vector, stops string) (string, error) {
	if len(handles) < 2 {
		return "", fmt.Errorf("%w: linear needs 2, got %d", ErrGradientGeometry, len(handles))
	}

	angle := round2(cssAngle(handles[0], handles[1]))
	return fmt.Sprintf("linear-gradient(%sdeg, %s)", trimFloat(angle), stops), nil
}

func radialGradient(handles []figma.Vector, stops string) (string, error) {
	if len(handles) < 2 {
		return "", fmt.Errorf("%w: radial needs 2, got %d", ErrGradientGeometry, len(handles))
	}

	center, edge := handles[0], handles[1]
	radius := math.Hypot(edge.X-center.X, edge.Y-center.Y) * 100

	return fmt.Sprintf("radial-gradient(circle %d%% at %d%% %d%%, %s)",
		pct(radius), pct(center.X*100), pct(center.Y*100), stops), nil
}

func angularGradient(handles []figma.Vector, stops string) (string, error) {
	if len(handles) < 2 {
		return "", fmt.Errorf("%w: angular needs 2, got %d", ErrGradientGeometry, len(handles))
	}

	center := handles[0]
	angle := round2(cssAngle(center, handles[1]))

	return fmt.Sprintf("conic-gradient(from %sdeg at %d%% %d%%, %s)",
		trimFloat(angle), pct(center.X*100), pct(center.Y*100), stops), nil
}

// diamondGradient approximates a diamond gradient as an axis-aligned ellipse
// with independent x/y radii taken from the coordinate deltas between the
// center handle and the edge handles. A faithful rotated-square gradient has
// no CSS equivalent.
func diamondGradient(handles []figma.Vector, stops string) (string, error) {
	if len(handles) < 2 {
		return "", fmt.Errorf("%w: diamond needs 2, got %d", ErrGradientGeometry, len(handles))
	}

	center := handles[0]
	xEdge := handles[1]
	yEdge := handles[len(handles)-1]
	if len(handles) >= 3 {
		yEdge = handles[2]
	}

	rx := math.Abs(xEdge.X-center.X) * 100
	ry := math.Abs(yEdge.Y-center.Y) * 100

	return fmt.Sprintf("radial-gradient(ellipse %d%% %d%% at %d%% %d%%, %s)",
		pct(rx), pct(ry), pct(center.X*100), pct(center.Y*100), stops), nil
}

// formatStops renders the stop list as "rgba(...) N%, ...". Stop positions
// round to the nearest integer percent and each stop alpha composes with the
// paint opacity the same way solid fills do. An empty stop list falls back
// to a fixed black-to-white pair.
func formatStops(stops []figma.ColorStop, opacity float64) string {
	if len(stops) == 0 {
		return defaultStops
	}

	parts := make([]string, len(stops))
	for i, s := range stops {
		alpha := round2(opacity * s.Color.A)
		parts[i] = fmt.Sprintf("rgba(%d, %d, %d, %s) %d%%",
			channel(s.Color.R), channel(s.Color.G), channel(s.Color.B),
			trimFloat(alpha), pct(s.Position*100))
	}

	return strings.Join(parts, ", ")
}

// pct rounds a percentage to the nearest integer.
func pct(v float64) int {
	return int(math.Round(v))
}
