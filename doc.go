// Package figmasimplify fetches Figma files via the Figma API and converts
// the raw node tree into a compact, self-contained representation suitable
// for AI and tooling pipelines: every value inlined, colors and gradients
// normalized to CSS-equivalent strings, empty structures pruned, and the
// tree optionally truncated to a fixed depth.
//
// The CLI lives in cmd/figma-simplify; this root package exposes the same
// pipeline as a Go API so that callers can embed simplification in their own
// tools without shelling out.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named figmasimplify:
//
//	import "github.com/hellenic-development/figma-simplify" // package figmasimplify
//
// # Quick start
//
//	result, err := figmasimplify.Run(figmasimplify.Options{
//	    AccessToken: os.Getenv("FIGMA_API_KEY"),
//	    FileURL:     "https://www.figma.com/design/ABC123/My-Design",
//	    Format:      "yaml",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("design.yaml", result.Output, 0644)
//
// # Image export
//
// DownloadImages renders nodes and resolves embedded IMAGE fills, then
// downloads everything concurrently. Raster buffers can be post-processed
// on the way to disk:
//
//	res, err := figmasimplify.DownloadImages(figmasimplify.ImageOptions{
//	    AccessToken: os.Getenv("FIGMA_API_KEY"),
//	    FileURL:     "https://www.figma.com/design/ABC123/My-Design?node-id=1-2",
//	    Processing:  &imgproc.Options{Mode: imgproc.ModeCrop, Width: 800, Height: 600},
//	})
//
// A partially failed batch reports which images failed without aborting the
// successful ones; res.Errors carries the per-image failures.
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages and non-fatal conversion warnings. A nil Logger silences all
// output.
package figmasimplify
