package main

import (
	"fmt"
	"os"
	"strings"

	figmasimplify "github.com/hellenic-development/figma-simplify"
	"github.com/hellenic-development/figma-simplify/pkg/imgproc"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const version = figmasimplify.Version

var (
	figmaURL    string
	accessToken string
	outputFile  string
	nodeIDs     string
	depth       int
	format      string
	verbose     bool

	imageDir    string
	imageFormat string
	imageScale  float64
	procMode    string
	procWidth   int
	procHeight  int
	procBg      string
	procQuality int
	procPos     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "figma-simplify",
		Short: "Simplify Figma files into compact YAML or JSON trees",
		Long:  "A tool that fetches Figma files via the Figma API and produces a compact, pruned, CSS-normalized node tree for downstream tooling",
		Run:   runFetch,
	}

	rootCmd.PersistentFlags().StringVarP(&figmaURL, "url", "u", "", "Figma file URL (required)")
	rootCmd.PersistentFlags().StringVarP(&accessToken, "token", "t", "", "Figma Personal Access Token (defaults to $FIGMA_API_KEY)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "design.yaml", "Output file")
	rootCmd.Flags().StringVarP(&nodeIDs, "node-ids", "n", "", "Comma-separated node IDs to simplify (optional)")
	rootCmd.Flags().IntVarP(&depth, "depth", "d", 0, "Limit the simplified tree to N layers (0 = full tree)")
	rootCmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml or json")

	imagesCmd := &cobra.Command{
		Use:   "images",
		Short: "Download rendered nodes and embedded images",
		Run:   runImages,
	}

	imagesCmd.Flags().StringVarP(&nodeIDs, "node-ids", "n", "", "Comma-separated node IDs to render (optional if the URL has node-id)")
	imagesCmd.Flags().StringVar(&imageDir, "image-dir", "figma-assets", "Output directory for downloaded images")
	imagesCmd.Flags().StringVar(&imageFormat, "image-format", "png", "Render format: png, svg, jpg, pdf")
	imagesCmd.Flags().Float64Var(&imageScale, "image-scale", 1, "Raster render scale")
	imagesCmd.Flags().StringVar(&procMode, "mode", "", "Post-processing mode: FILL, FIT, CROP, TILE (empty = none)")
	imagesCmd.Flags().IntVar(&procWidth, "width", 0, "Post-processing target width")
	imagesCmd.Flags().IntVar(&procHeight, "height", 0, "Post-processing target height")
	imagesCmd.Flags().StringVar(&procBg, "background", "", "FIT padding background color (hex)")
	imagesCmd.Flags().IntVar(&procQuality, "quality", 0, "JPEG encoding quality (1-100)")
	imagesCmd.Flags().StringVar(&procPos, "position", "", "CROP anchor position (e.g. center, top, bottom left)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("figma-simplify version %s\n", version)
		},
	}

	rootCmd.AddCommand(imagesCmd, versionCmd)
	rootCmd.MarkPersistentFlagRequired("url")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runFetch(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	cyan.Println("\n🎨 Figma Simplifier")
	cyan.Println("====================")

	opts := figmasimplify.Options{
		AccessToken: token(),
		FileURL:     figmaURL,
		NodeIDs:     parseNodeIDs(nodeIDs),
		Depth:       depth,
		Format:      format,
		Logger:      newLogger(),
	}

	result, err := figmasimplify.Run(opts)
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	cyan.Println("\n📊 Summary:")
	fmt.Printf("  • File: %s\n", result.FileName)
	fmt.Printf("  • Top-level nodes: %d\n", len(result.Design.Nodes))
	fmt.Printf("  • Components: %d\n", len(result.Design.Components))
	fmt.Printf("  • Component sets: %d\n", len(result.Design.ComponentSets))

	green.Printf("\n💾 Writing to %s... ", outputFile)
	if err := os.WriteFile(outputFile, result.Output, 0o644); err != nil {
		red.Printf("✗\n")
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	green.Println("✓")
}

func runImages(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	opts := figmasimplify.ImageOptions{
		AccessToken: token(),
		FileURL:     figmaURL,
		NodeIDs:     parseNodeIDs(nodeIDs),
		ImageDir:    imageDir,
		Format:      imageFormat,
		Scale:       imageScale,
		Logger:      newLogger(),
	}

	if procMode != "" {
		opts.Processing = &imgproc.Options{
			Mode:       procMode,
			Width:      procWidth,
			Height:     procHeight,
			Background: procBg,
			Quality:    procQuality,
			Position:   procPos,
		}
	}

	result, err := figmasimplify.DownloadImages(opts)
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	green.Printf("\n✨ Downloaded %d image(s) to %s\n", len(result.Assets), imageDir)
	for _, asset := range result.Assets {
		line := "  • " + asset.FileName
		if asset.Processed != nil {
			line += fmt.Sprintf(" (%s %dx%d → %dx%d)",
				asset.Processed.Mode,
				asset.Processed.OriginalDimensions.Width, asset.Processed.OriginalDimensions.Height,
				asset.Processed.ProcessedDimensions.Width, asset.Processed.ProcessedDimensions.Height)
		}
		fmt.Println(line)
	}

	if len(result.Errors) > 0 {
		yellow.Printf("\n⚠ %d image(s) failed:\n", len(result.Errors))
		for _, dlErr := range result.Errors {
			yellow.Printf("  • %v\n", dlErr)
		}
		os.Exit(1)
	}
}

func token() string {
	if accessToken != "" {
		return accessToken
	}
	return os.Getenv("FIGMA_API_KEY")
}

func parseNodeIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}

// cliLogger implements figmasimplify.Logger on top of charmbracelet/log.
type cliLogger struct {
	logger *log.Logger
}

func newLogger() *cliLogger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return &cliLogger{
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

func (l *cliLogger) Infof(format string, args ...any)  { l.logger.Infof(format, args...) }
func (l *cliLogger) Warnf(format string, args ...any)  { l.logger.Warnf(format, args...) }
func (l *cliLogger) Errorf(format string, args ...any) { l.logger.Errorf(format, args...) }
