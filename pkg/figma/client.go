package figma

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	figmaAPIBase = "https://api.figma.com/v1"

	maxRetries = 3
)

// Client represents a Figma API client with configured HTTP settings for
// reliable communication with the Figma API. It includes retry logic and
// optimized transport settings for handling large files.
//
// The client is the network collaborator of the simplification core: it is
// the only component in this module that talks to the Figma API, and the
// transformation packages never import it.
type Client struct {
	accessToken string
	httpClient  *http.Client
}

// NewClient creates a new Figma API client with the provided personal access
// token. The client is configured with optimized HTTP transport settings
// including connection pooling, disabled HTTP/2 (for large file stability),
// and a 10-minute timeout for very large files.
func NewClient(accessToken string) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
		// Disable HTTP/2 to avoid stream errors with large files
		ForceAttemptHTTP2: false,
	}

	return &Client{
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout:   10 * time.Minute,
			Transport: transport,
		},
	}
}

// ExtractFileKey extracts the unique file identifier from a Figma URL.
// Supports both /file/ and /design/ URL patterns (e.g., figma.com/file/ABC123/Design-Name).
// Returns an error if the URL format is invalid or if the URL doesn't match
// the expected Figma domain pattern.
func ExtractFileKey(figmaURL string) (string, error) {
	// Anchored to ensure the entire URL matches the expected pattern.
	re := regexp.MustCompile(`^https?://(?:www\.)?figma\.com/(?:file|design)/([A-Za-z0-9]+)(?:/|$|\?)`)
	matches := re.FindStringSubmatch(figmaURL)

	if len(matches) < 2 {
		return "", fmt.Errorf("invalid Figma URL format: must be a valid figma.com URL with /file/ or /design/ path")
	}

	return matches[1], nil
}

// ExtractNodeIDs extracts node IDs from a Figma URL's node-id query
// parameter. Figma encodes node IDs in URLs with hyphens ("11-22") while the
// API expects colons ("11:22"); the returned IDs use the API form. Returns an
// empty slice when the URL carries no node-id parameter.
func ExtractNodeIDs(figmaURL string) ([]string, error) {
	u, err := url.Parse(figmaURL)
	if err != nil {
		return nil, fmt.Errorf("parse URL: %w", err)
	}

	raw := u.Query().Get("node-id")
	if raw == "" {
		return nil, nil
	}

	var ids []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		ids = append(ids, strings.ReplaceAll(part, "-", ":"))
	}

	return ids, nil
}

// getJSON performs an authenticated GET against the Figma API and decodes the
// JSON response into out. It retries up to maxRetries times with linear
// backoff on transport errors, rate limits (429), and server errors (5xx).
func (c *Client) getJSON(endpoint string, out any) error {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequest(http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("X-Figma-Token", c.accessToken)
		// Disable HTTP/2 to avoid stream errors with large files
		req.Header.Set("Connection", "close")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("attempt %d failed to execute request: %w", attempt, err)
			if attempt < maxRetries {
				time.Sleep(time.Duration(attempt) * 2 * time.Second)
				continue
			}
			return lastErr
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
			if attempt < maxRetries && (resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500) {
				time.Sleep(time.Duration(attempt) * 2 * time.Second)
				continue
			}
			return lastErr
		}

		if err != nil {
			lastErr = fmt.Errorf("attempt %d failed to read response body: %w", attempt, err)
			if attempt < maxRetries {
				time.Sleep(time.Duration(attempt) * 2 * time.Second)
				continue
			}
			return lastErr
		}

		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}

		return nil
	}

	return lastErr
}

// GetFile retrieves complete file data from the Figma API including document
// structure, component catalogs, and metadata. depth limits how many levels
// of the document tree the API returns; 0 requests the full tree.
func (c *Client) GetFile(fileKey string, depth int) (*FileResponse, error) {
	endpoint := fmt.Sprintf("%s/files/%s", figmaAPIBase, fileKey)
	if depth > 0 {
		endpoint += "?depth=" + strconv.Itoa(depth)
	}

	var fileResp FileResponse
	if err := c.getJSON(endpoint, &fileResp); err != nil {
		return nil, err
	}

	return &fileResp, nil
}

// GetFileNodes retrieves the subtrees rooted at the given node IDs, along
// with the component catalogs referenced by those subtrees.
func (c *Client) GetFileNodes(fileKey string, nodeIDs []string, depth int) (*NodesResponse, error) {
	endpoint := fmt.Sprintf("%s/files/%s/nodes?ids=%s", figmaAPIBase, fileKey, url.QueryEscape(strings.Join(nodeIDs, ",")))
	if depth > 0 {
		endpoint += "&depth=" + strconv.Itoa(depth)
	}

	var nodesResp NodesResponse
	if err := c.getJSON(endpoint, &nodesResp); err != nil {
		return nil, err
	}

	return &nodesResp, nil
}

// GetImages asks the Figma render endpoint to rasterize (or vectorize, for
// SVG) the given nodes and returns per-node download URLs. format must be
// one of png, jpg, svg, or pdf; scale applies to raster formats only.
func (c *Client) GetImages(fileKey string, nodeIDs []string, format string, scale float64) (*ImagesResponse, error) {
	endpoint := fmt.Sprintf("%s/images/%s?ids=%s&format=%s&scale=%g",
		figmaAPIBase, fileKey, url.QueryEscape(strings.Join(nodeIDs, ",")), format, scale)

	var imgResp ImagesResponse
	if err := c.getJSON(endpoint, &imgResp); err != nil {
		return nil, err
	}

	if imgResp.Err != "" {
		return nil, fmt.Errorf("image render failed: %s", imgResp.Err)
	}

	return &imgResp, nil
}

// GetFileImages resolves every imageRef in the file (the references carried
// by IMAGE fills) to a download URL for the original uploaded bitmap.
func (c *Client) GetFileImages(fileKey string) (*FileImagesResponse, error) {
	endpoint := fmt.Sprintf("%s/files/%s/images", figmaAPIBase, fileKey)

	var fillsResp FileImagesResponse
	if err := c.getJSON(endpoint, &fillsResp); err != nil {
		return nil, err
	}

	return &fillsResp, nil
}

// DownloadImage fetches raw image bytes from a URL previously returned by
// GetImages or GetFileImages. The URLs are short-lived S3 links and need no
// authentication header.
func (c *Client) DownloadImage(imageURL string) ([]byte, error) {
	resp, err := c.httpClient.Get(imageURL)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d downloading image", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}

	return data, nil
}
