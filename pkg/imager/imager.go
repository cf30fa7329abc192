// Package imager downloads exported design images concurrently, optionally
// runs each buffer through the image post-processor, and writes the results
// to disk. Image jobs for one batch are independent: a failed download or
// processing step is recorded and never cancels the others.
package imager

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hellenic-development/figma-simplify/pkg/figma"
	"github.com/hellenic-development/figma-simplify/pkg/imgproc"
)

const maxParallelDownloads = 5

// Logger receives non-fatal warnings about individual jobs. Nil means
// silent operation.
type Logger interface {
	Warnf(format string, args ...any)
}

// Job is a single image to download: the node it came from and the resolved
// short-lived download URL.
type Job struct {
	NodeID   string
	NodeName string
	URL      string
	FileName string // optional; derived from NodeName when empty
}

// Config holds configuration for a download batch.
type Config struct {
	OutputDir  string            // local directory, default "figma-assets"
	Format     string            // file extension when a job has no FileName
	Processing *imgproc.Options  // nil = write buffers as downloaded
	Logger     Logger
}

// ProcessedImageInfo reports what happened to one written image.
type ProcessedImageInfo struct {
	FilePath            string
	OriginalDimensions  imgproc.Dimensions
	ProcessedDimensions imgproc.Dimensions
	Mode                string
}

// Asset is one successfully written image.
type Asset struct {
	NodeID    string
	NodeName  string
	FileName  string
	Processed *ProcessedImageInfo // nil when no post-processing ran
}

// Result aggregates a batch: every written asset plus the per-image errors
// of the jobs that failed. A partially failed batch still reports its
// successes.
type Result struct {
	Assets []Asset
	Errors []error
}

// Download fetches every job concurrently (bounded by a semaphore), applies
// the configured post-processing, and writes the buffers into
// cfg.OutputDir. Processing options are validated once up front; a failing
// validation aborts the batch before any network work. A processing failure
// on an individual image falls back to the unprocessed original buffer with
// a warning instead of failing the job.
func Download(jobs []Job, cfg Config) (*Result, error) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "figma-assets"
	}
	if cfg.Processing != nil {
		if err := imgproc.Validate(*cfg.Processing); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %q: %w", cfg.OutputDir, err)
	}

	result := &Result{}
	usedNames := make(map[string]int) // track filename collisions

	var wg sync.WaitGroup
	sem := make(chan struct{}, maxParallelDownloads)
	var mu sync.Mutex

	for _, job := range jobs {
		if job.URL == "" {
			result.Errors = append(result.Errors, fmt.Errorf("no image URL for node %s", job.NodeID))
			continue
		}

		wg.Add(1)
		go func(job Job) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			data, err := downloadBytes(job.URL)
			if err != nil {
				mu.Lock()
				result.Errors = append(result.Errors, fmt.Errorf("failed to download %s: %w", job.NodeName, err))
				mu.Unlock()
				return
			}

			var processed *ProcessedImageInfo
			if cfg.Processing != nil {
				out, info, perr := imgproc.Process(data, *cfg.Processing)
				if perr != nil {
					// Non-fatal: keep the original buffer.
					if cfg.Logger != nil {
						cfg.Logger.Warnf("processing %s failed (%v), keeping original", job.NodeName, perr)
					}
				} else {
					data = out
					processed = &ProcessedImageInfo{
						OriginalDimensions:  info.OriginalDimensions,
						ProcessedDimensions: info.ProcessedDimensions,
						Mode:                info.Mode,
					}
				}
			}

			fileName := job.FileName
			if fileName == "" {
				fileName = BuildFileName(job.NodeName, job.NodeID, cfg.Format)
			}

			// Deduplicate filenames.
			mu.Lock()
			if count, exists := usedNames[fileName]; exists {
				ext := filepath.Ext(fileName)
				base := strings.TrimSuffix(fileName, ext)
				fileName = fmt.Sprintf("%s-%d%s", base, count+1, ext)
				usedNames[fileName] = count + 1
			} else {
				usedNames[fileName] = 1
			}
			mu.Unlock()

			destPath := filepath.Join(cfg.OutputDir, fileName)
			if err := os.WriteFile(destPath, data, 0o644); err != nil {
				mu.Lock()
				result.Errors = append(result.Errors, fmt.Errorf("failed to write %q: %w", destPath, err))
				mu.Unlock()
				return
			}

			if processed != nil {
				processed.FilePath = destPath
			}

			mu.Lock()
			result.Assets = append(result.Assets, Asset{
				NodeID:    job.NodeID,
				NodeName:  job.NodeName,
				FileName:  fileName,
				Processed: processed,
			})
			mu.Unlock()
		}(job)
	}

	wg.Wait()

	return result, nil
}

// downloadBytes performs an HTTP GET and returns the response body.
func downloadBytes(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d downloading image", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// ImageFillNode pairs a node with the imageRef of its IMAGE fill.
type ImageFillNode struct {
	NodeID   string
	NodeName string
	ImageRef string
}

// CollectImageFillNodes walks the raw node tree and returns every node
// carrying a visible IMAGE fill with a non-empty imageRef. Invisible
// subtrees are skipped the same way the simplifier skips them.
func CollectImageFillNodes(root *figma.Node) []ImageFillNode {
	var out []ImageFillNode
	collectImageFills(root, &out)
	return out
}

func collectImageFills(node *figma.Node, out *[]ImageFillNode) {
	if !node.IsVisible() {
		return
	}
	for i := range node.Fills {
		fill := &node.Fills[i]
		if fill.Type == "IMAGE" && fill.ImageRef != "" && fill.IsVisible() {
			*out = append(*out, ImageFillNode{NodeID: node.ID, NodeName: node.Name, ImageRef: fill.ImageRef})
			break
		}
	}
	for i := range node.Children {
		collectImageFills(&node.Children[i], out)
	}
}

// CollectExportableNodes walks the raw node tree and returns a map of
// nodeID -> nodeName for nodes that have export settings defined by the
// designer.
func CollectExportableNodes(root *figma.Node) map[string]string {
	nodes := make(map[string]string)
	collectExportable(root, nodes)
	return nodes
}

func collectExportable(node *figma.Node, nodes map[string]string) {
	if len(node.ExportSettings) > 0 {
		nodes[node.ID] = node.Name
	}
	for i := range node.Children {
		collectExportable(&node.Children[i], nodes)
	}
}

// BuildFileName creates a sanitized filename from a node name. Uses
// kebab-case and falls back to the sanitized node ID if the name is empty.
func BuildFileName(nodeName, nodeID, format string) string {
	name := nodeName
	if name == "" {
		name = nodeID
	}

	name = toKebabCase(name)
	if name == "" {
		name = "asset"
	}

	if format == "" {
		format = "png"
	}

	return fmt.Sprintf("%s.%s", name, format)
}

// toKebabCase converts a string to kebab-case format (lowercase with hyphens).
func toKebabCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, ":", "-")

	var result strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}

	return result.String()
}
