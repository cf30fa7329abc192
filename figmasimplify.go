package figmasimplify

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/hellenic-development/figma-simplify/pkg/figma"
	"github.com/hellenic-development/figma-simplify/pkg/imager"
	"github.com/hellenic-development/figma-simplify/pkg/imgproc"
	"github.com/hellenic-development/figma-simplify/pkg/simplifier"
)

// Version of the module.
const Version = "0.1.0"

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Options configures a design fetch and simplification.
type Options struct {
	AccessToken   string
	FileURL       string                     // Figma file URL
	NodeIDs       []string                   // empty = node IDs from the URL, or the entire file
	Depth         int                        // truncate the simplified tree to N layers; 0 = full tree
	Format        string                     // "yaml" (default) or "json"
	Collaborators *simplifier.Collaborators  // nil = DefaultCollaborators
	Logger        Logger                     // nil = no logging
}

// Result contains the simplification output.
type Result struct {
	Design   *simplifier.SimplifiedDesign
	FileName string // Figma file name
	Output   []byte // serialized, pruned design
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

// Run executes the fetch-simplify-prune pipeline and returns the result.
func Run(opts Options) (*Result, error) {
	if opts.Format == "" {
		opts.Format = "yaml"
	}

	opts.logInfo("Extracting file key from URL...")
	fileKey, err := figma.ExtractFileKey(opts.FileURL)
	if err != nil {
		return nil, fmt.Errorf("extract file key: %w", err)
	}
	opts.logInfo("File key: %s", fileKey)

	targetNodeIDs := opts.NodeIDs
	if len(targetNodeIDs) == 0 {
		urlNodeIDs, err := figma.ExtractNodeIDs(opts.FileURL)
		if err != nil {
			return nil, fmt.Errorf("extract node IDs from URL: %w", err)
		}
		targetNodeIDs = urlNodeIDs
	}

	client := figma.NewClient(opts.AccessToken)

	collab := DefaultCollaborators()
	if opts.Collaborators != nil {
		collab = *opts.Collaborators
	}
	s := simplifier.New(collab, opts.Logger)

	var design *simplifier.SimplifiedDesign
	var fileName string

	if len(targetNodeIDs) > 0 {
		opts.logInfo("Fetching %d node(s) from Figma...", len(targetNodeIDs))
		nodesResp, err := client.GetFileNodes(fileKey, targetNodeIDs, 0)
		if err != nil {
			return nil, fmt.Errorf("fetch nodes: %w", err)
		}

		rawNodes, components, componentSets := mergeNodeData(nodesResp, targetNodeIDs)

		design, err = s.Simplify(rawNodes, components, componentSets)
		if err != nil {
			return nil, fmt.Errorf("simplify nodes: %w", err)
		}

		design.Name = nodesResp.Name
		design.LastModified = nodesResp.LastModified
		design.ThumbnailURL = nodesResp.ThumbnailURL
		fileName = nodesResp.Name
	} else {
		opts.logInfo("Fetching file from Figma...")
		fileResp, err := client.GetFile(fileKey, 0)
		if err != nil {
			return nil, fmt.Errorf("fetch file: %w", err)
		}

		design, err = s.Simplify(fileResp.Document.Children, fileResp.Components, fileResp.ComponentSets)
		if err != nil {
			return nil, fmt.Errorf("simplify file: %w", err)
		}

		design.Name = fileResp.Name
		design.LastModified = fileResp.LastModified
		design.ThumbnailURL = fileResp.ThumbnailURL
		fileName = fileResp.Name
	}

	if opts.Depth > 0 {
		opts.logInfo("Limiting tree to %d layer(s)", opts.Depth)
		design.Nodes = simplifier.LimitDepth(design.Nodes, opts.Depth)
	}

	opts.logInfo("Serializing as %s...", opts.Format)
	output, err := Serialize(design, opts.Format)
	if err != nil {
		return nil, err
	}

	return &Result{
		Design:   design,
		FileName: fileName,
		Output:   output,
	}, nil
}

// mergeNodeData flattens a nodes response into a root slice (in requested
// order) and merged component catalogs.
func mergeNodeData(resp *figma.NodesResponse, nodeIDs []string) ([]figma.Node, map[string]figma.Component, map[string]figma.ComponentSet) {
	var rawNodes []figma.Node
	components := make(map[string]figma.Component)
	componentSets := make(map[string]figma.ComponentSet)

	for _, id := range nodeIDs {
		nd, ok := resp.Nodes[id]
		if !ok {
			continue
		}
		rawNodes = append(rawNodes, nd.Document)
		for cid, c := range nd.Components {
			components[cid] = c
		}
		for sid, cs := range nd.ComponentSets {
			componentSets[sid] = cs
		}
	}

	return rawNodes, components, componentSets
}

// Serialize prunes the design's vacuous containers and renders it as YAML or
// JSON. The design is round-tripped through its JSON form so the pruner sees
// exactly the keys the serialized output would carry.
func Serialize(design *simplifier.SimplifiedDesign, format string) ([]byte, error) {
	raw, err := json.Marshal(design)
	if err != nil {
		return nil, fmt.Errorf("serialize design: %w", err)
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("serialize design: %w", err)
	}

	generic = simplifier.Prune(generic)

	switch format {
	case "json":
		out, err := json.MarshalIndent(generic, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("serialize design: %w", err)
		}
		return out, nil
	case "yaml":
		out, err := yaml.Marshal(generic)
		if err != nil {
			return nil, fmt.Errorf("serialize design: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (must be yaml or json)", format)
	}
}

// ImageOptions configures a batch image download.
type ImageOptions struct {
	AccessToken string
	FileURL     string
	NodeIDs     []string         // nodes to render; empty = node IDs from the URL
	ImageDir    string           // default "figma-assets"
	Format      string           // "png" (default), "jpg", "svg", "pdf"
	Scale       float64          // raster scale, default 1
	Processing  *imgproc.Options // nil = no post-processing
	Logger      Logger
}

// DownloadImages renders the requested nodes, resolves embedded IMAGE fills
// in their subtrees, downloads everything concurrently, and post-processes
// raster buffers when processing options are set. Individual failures are
// aggregated in the result; only batch-level failures (invalid options,
// unreachable API) return an error.
func DownloadImages(opts ImageOptions) (*imager.Result, error) {
	if opts.Format == "" {
		opts.Format = "png"
	}
	if opts.Scale == 0 {
		opts.Scale = 1
	}
	if opts.ImageDir == "" {
		opts.ImageDir = "figma-assets"
	}

	validFormats := map[string]bool{"png": true, "svg": true, "jpg": true, "pdf": true}
	if !validFormats[opts.Format] {
		return nil, fmt.Errorf("invalid image format %q (must be png, svg, jpg, or pdf)", opts.Format)
	}

	fileKey, err := figma.ExtractFileKey(opts.FileURL)
	if err != nil {
		return nil, fmt.Errorf("extract file key: %w", err)
	}

	targetNodeIDs := opts.NodeIDs
	if len(targetNodeIDs) == 0 {
		urlNodeIDs, err := figma.ExtractNodeIDs(opts.FileURL)
		if err != nil {
			return nil, fmt.Errorf("extract node IDs from URL: %w", err)
		}
		targetNodeIDs = urlNodeIDs
	}
	if len(targetNodeIDs) == 0 {
		return nil, fmt.Errorf("no node IDs to render: pass NodeIDs or a URL with a node-id parameter")
	}

	client := figma.NewClient(opts.AccessToken)

	if opts.Logger != nil {
		opts.Logger.Infof("Fetching %d node(s)...", len(targetNodeIDs))
	}
	nodesResp, err := client.GetFileNodes(fileKey, targetNodeIDs, 0)
	if err != nil {
		return nil, fmt.Errorf("fetch nodes: %w", err)
	}

	var jobs []imager.Job

	// Render the requested nodes themselves.
	renderResp, err := client.GetImages(fileKey, targetNodeIDs, opts.Format, opts.Scale)
	if err != nil {
		return nil, fmt.Errorf("render nodes: %w", err)
	}
	for _, id := range targetNodeIDs {
		name := id
		if nd, ok := nodesResp.Nodes[id]; ok {
			name = nd.Document.Name
		}
		jobs = append(jobs, imager.Job{
			NodeID:   id,
			NodeName: name,
			URL:      renderResp.Images[id],
		})
	}

	// Resolve embedded IMAGE fills in the requested subtrees.
	var fills []imager.ImageFillNode
	seen := make(map[string]bool)
	for _, id := range targetNodeIDs {
		nd, ok := nodesResp.Nodes[id]
		if !ok {
			continue
		}
		doc := nd.Document
		for _, fill := range imager.CollectImageFillNodes(&doc) {
			if seen[fill.ImageRef] {
				continue
			}
			seen[fill.ImageRef] = true
			fills = append(fills, fill)
		}
	}

	if len(fills) > 0 {
		if opts.Logger != nil {
			opts.Logger.Infof("Resolving %d embedded image(s)...", len(fills))
		}
		fillsResp, err := client.GetFileImages(fileKey)
		if err != nil {
			if opts.Logger != nil {
				opts.Logger.Warnf("file images API failed: %v", err)
			}
		} else {
			for _, fill := range fills {
				jobs = append(jobs, imager.Job{
					NodeID:   fill.NodeID,
					NodeName: fill.NodeName,
					URL:      fillsResp.Meta.Images[fill.ImageRef],
				})
			}
		}
	}

	result, err := imager.Download(jobs, imager.Config{
		OutputDir:  opts.ImageDir,
		Format:     opts.Format,
		Processing: opts.Processing,
		Logger:     opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	if opts.Logger != nil {
		opts.Logger.Infof("Downloaded %d image(s), %d failed", len(result.Assets), len(result.Errors))
		for _, dlErr := range result.Errors {
			opts.Logger.Warnf("%v", dlErr)
		}
	}

	return result, nil
}
