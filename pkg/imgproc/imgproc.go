// Package imgproc post-processes exported raster images. Given a decoded
// buffer and a target geometry it applies one of four deterministic
// processing modes (fill, fit, crop, tile) and re-encodes the result, with
// JPEG quality applied as a final encoding step.
package imgproc

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"strings"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WEBP decoding

	"github.com/hellenic-development/figma-simplify/pkg/css"
)

// Processing modes.
const (
	ModeFill = "FILL" // exact target size, aspect ratio ignored
	ModeFit  = "FIT"  // fit within target bounds, optional background padding
	ModeCrop = "CROP" // fill target bounds, overflow cropped at the anchor
	ModeTile = "TILE" // repeat the source across the target canvas
)

// Validation errors.
var (
	ErrInvalidMode       = errors.New("imgproc: invalid processing mode")
	ErrInvalidQuality    = errors.New("imgproc: quality must be between 1 and 100")
	ErrInvalidDimensions = errors.New("imgproc: width and height must be positive")
	ErrInvalidBackground = errors.New("imgproc: invalid background color")
)

// Options describes one image processing request. It is a pure value object
// validated independently of any image bytes. Zero Width/Height mean "derive
// from the source"; zero Quality keeps the encoder default.
type Options struct {
	Mode                string `json:"mode"`
	Width               int    `json:"width,omitempty"`
	Height              int    `json:"height,omitempty"`
	Background          string `json:"background,omitempty"`
	Quality             int    `json:"quality,omitempty"`
	PreserveAspectRatio bool   `json:"preserveAspectRatio,omitempty"`
	Position            string `json:"position,omitempty"`
}

// Dimensions is a width/height pair in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Info reports what Process did: the source and output dimensions, the mode
// applied, and the detected source format.
type Info struct {
	OriginalDimensions  Dimensions
	ProcessedDimensions Dimensions
	Mode                string
	Format              string
}

// Validate fails fast on options that can never produce a valid result:
// an unrecognized mode, a quality outside [1,100], or a non-positive
// dimension. Missing dimensions and quality are allowed.
func Validate(opts Options) error {
	switch strings.ToUpper(opts.Mode) {
	case ModeFill, ModeFit, ModeCrop, ModeTile:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, opts.Mode)
	}

	if opts.Quality != 0 && (opts.Quality < 1 || opts.Quality > 100) {
		return fmt.Errorf("%w: got %d", ErrInvalidQuality, opts.Quality)
	}

	if opts.Width < 0 || opts.Height < 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, opts.Width, opts.Height)
	}

	return nil
}

// Process decodes input, applies the processing mode, and re-encodes in the
// source format. WEBP input is re-encoded as PNG: the decoder comes from
// golang.org/x/image but no pure-Go encoder exists. Quality applies only to
// JPEG output; other formats ignore it silently.
func Process(input []byte, opts Options) ([]byte, Info, error) {
	if err := Validate(opts); err != nil {
		return nil, Info{}, err
	}

	src, format, err := image.Decode(bytes.NewReader(input))
	if err != nil {
		return nil, Info{}, fmt.Errorf("imgproc: decode: %w", err)
	}

	bounds := src.Bounds()
	ow, oh := bounds.Dx(), bounds.Dy()
	tw, th := targetSize(opts, ow, oh)

	mode := strings.ToUpper(opts.Mode)

	var out image.Image
	switch mode {
	case ModeFill:
		if opts.PreserveAspectRatio {
			out, err = fit(src, tw, th, opts.Background)
		} else {
			out = scaleTo(src, tw, th)
		}
	case ModeFit:
		out, err = fit(src, tw, th, opts.Background)
	case ModeCrop:
		out = crop(src, tw, th, opts.Position)
	case ModeTile:
		out = tile(src, tw, th)
	}
	if err != nil {
		return nil, Info{}, err
	}

	encoded, err := encode(out, format, opts.Quality)
	if err != nil {
		return nil, Info{}, err
	}

	pb := out.Bounds()
	info := Info{
		OriginalDimensions:  Dimensions{Width: ow, Height: oh},
		ProcessedDimensions: Dimensions{Width: pb.Dx(), Height: pb.Dy()},
		Mode:                mode,
		Format:              format,
	}

	return encoded, info, nil
}

// targetSize resolves the requested geometry. A missing axis is derived from
// the other one preserving the source aspect ratio; with neither supplied
// the source size is kept.
func targetSize(opts Options, ow, oh int) (int, int) {
	switch {
	case opts.Width > 0 && opts.Height > 0:
		return opts.Width, opts.Height
	case opts.Width > 0:
		return opts.Width, atLeastOne(int(math.Round(float64(opts.Width) * float64(oh) / float64(ow))))
	case opts.Height > 0:
		return atLeastOne(int(math.Round(float64(opts.Height) * float64(ow) / float64(oh)))), opts.Height
	default:
		return ow, oh
	}
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

// scaleTo resizes src to exactly w x h with Catmull-Rom interpolation.
func scaleTo(src image.Image, w, h int) *image.NRGBA {
	w, h = atLeastOne(w), atLeastOne(h)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// fit resizes src to the largest size that fits within tw x th preserving
// aspect ratio. With a background color the remaining space is padded and
// the output is exactly tw x th; without one the output is the fitted image.
func fit(src image.Image, tw, th int, background string) (image.Image, error) {
	bounds := src.Bounds()
	s := math.Min(float64(tw)/float64(bounds.Dx()), float64(th)/float64(bounds.Dy()))
	fw := atLeastOne(int(math.Round(float64(bounds.Dx()) * s)))
	fh := atLeastOne(int(math.Round(float64(bounds.Dy()) * s)))

	fitted := scaleTo(src, fw, fh)
	if background == "" {
		return fitted, nil
	}

	r, g, b, ok := css.ParseHex(background)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBackground, background)
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, tw, th))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{color.NRGBA{R: r, G: g, B: b, A: 255}}, image.Point{}, draw.Src)

	offset := image.Pt((tw-fw)/2, (th-fh)/2)
	draw.Draw(canvas, fitted.Bounds().Add(offset), fitted, image.Point{}, draw.Over)

	return canvas, nil
}

// crop resizes src with a uniform scale so it covers tw x th entirely, then
// cuts the overflow according to the anchor position (center by default).
func crop(src image.Image, tw, th int, position string) image.Image {
	bounds := src.Bounds()
	s := math.Max(float64(tw)/float64(bounds.Dx()), float64(th)/float64(bounds.Dy()))
	sw := int(math.Round(float64(bounds.Dx()) * s))
	sh := int(math.Round(float64(bounds.Dy()) * s))
	if sw < tw {
		sw = tw
	}
	if sh < th {
		sh = th
	}

	scaled := scaleTo(src, sw, sh)

	ax, ay := anchor(position)
	offset := image.Pt(
		int(math.Round(float64(sw-tw)*ax)),
		int(math.Round(float64(sh-th)*ay)),
	)

	dst := image.NewNRGBA(image.Rect(0, 0, tw, th))
	draw.Draw(dst, dst.Bounds(), scaled, offset, draw.Src)
	return dst
}

// anchor maps a position keyword to fractional offsets along the cut axes:
// 0 keeps the leading edge, 0.5 centers, 1 keeps the trailing edge.
func anchor(position string) (ax, ay float64) {
	ax, ay = 0.5, 0.5
	for _, word := range strings.Fields(strings.ToLower(position)) {
		switch word {
		case "left":
			ax = 0
		case "right":
			ax = 1
		case "top":
			ay = 0
		case "bottom":
			ay = 1
		case "center", "centre":
		}
	}
	return ax, ay
}

// tile composes a grid of the source across a transparent tw x th canvas.
// The per-tile size is the source size capped at the target per axis; the
// source is resized once and stamped at every grid offset. Edge tiles may
// overflow the canvas and are clipped by the composition step rather than
// pre-cropped.
func tile(src image.Image, tw, th int) image.Image {
	bounds := src.Bounds()
	tileW := min(bounds.Dx(), tw)
	tileH := min(bounds.Dy(), th)

	var t image.Image = src
	if tileW != bounds.Dx() || tileH != bounds.Dy() {
		t = scaleTo(src, tileW, tileH)
	}

	tilesX := int(math.Ceil(float64(tw) / float64(tileW)))
	tilesY := int(math.Ceil(float64(th) / float64(tileH)))

	canvas := image.NewNRGBA(image.Rect(0, 0, tw, th))
	for j := 0; j < tilesY; j++ {
		for i := 0; i < tilesX; i++ {
			r := image.Rect(i*tileW, j*tileH, i*tileW+tileW, j*tileH+tileH)
			draw.Draw(canvas, r, t, t.Bounds().Min, draw.Over)
		}
	}

	return canvas
}

// encode re-encodes the processed image. The format comes from the decoded
// source so a JPEG in yields a JPEG out; only JPEG honors quality.
func encode(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case "jpeg":
		if quality == 0 {
			quality = jpeg.DefaultQuality
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("imgproc: encode JPEG: %w", err)
		}
	case "gif":
		if err := gif.Encode(&buf, img, nil); err != nil {
			return nil, fmt.Errorf("imgproc: encode GIF: %w", err)
		}
	case "png", "webp":
		// No pure-Go webp encoder; webp input comes back out as PNG.
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("imgproc: encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("imgproc: unsupported output format %q", format)
	}

	return buf.Bytes(), nil
}
