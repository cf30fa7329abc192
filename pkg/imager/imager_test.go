package imager

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellenic-development/figma-simplify/pkg/figma"
	"github.com/hellenic-development/figma-simplify/pkg/imgproc"
)

func boolPtr(b bool) *bool { return &b }

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Warnf(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 64, G: 128, B: 192, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDownload(t *testing.T) {
	payload := pngBytes(t, 10, 10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write(payload)
	}))
	defer srv.Close()

	dir := t.TempDir()
	jobs := []Job{
		{NodeID: "1:1", NodeName: "Hero Banner", URL: srv.URL + "/a"},
		{NodeID: "1:2", NodeName: "Hero Banner", URL: srv.URL + "/b"},
		{NodeID: "1:3", NodeName: "Broken", URL: srv.URL + "/missing"},
		{NodeID: "1:4", NodeName: "No URL"},
	}

	result, err := Download(jobs, Config{OutputDir: dir, Format: "png"})
	require.NoError(t, err)

	require.Len(t, result.Assets, 2)
	require.Len(t, result.Errors, 2)

	names := []string{result.Assets[0].FileName, result.Assets[1].FileName}
	sort.Strings(names)
	assert.Equal(t, []string{"hero-banner-2.png", "hero-banner.png"}, names)

	for _, name := range names {
		data, rerr := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, rerr)
		assert.Equal(t, payload, data)
	}
}

func TestDownloadWithProcessing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(pngBytes(t, 100, 50))
	}))
	defer srv.Close()

	dir := t.TempDir()
	result, err := Download([]Job{{NodeID: "1:1", NodeName: "Card", URL: srv.URL}}, Config{
		OutputDir:  dir,
		Format:     "png",
		Processing: &imgproc.Options{Mode: "FILL", Width: 20, Height: 20},
	})
	require.NoError(t, err)

	require.Len(t, result.Assets, 1)
	info := result.Assets[0].Processed
	require.NotNil(t, info)
	assert.Equal(t, imgproc.Dimensions{Width: 100, Height: 50}, info.OriginalDimensions)
	assert.Equal(t, imgproc.Dimensions{Width: 20, Height: 20}, info.ProcessedDimensions)
	assert.Equal(t, "FILL", info.Mode)
	assert.Equal(t, filepath.Join(dir, "card.png"), info.FilePath)
}

func TestDownloadProcessingFallback(t *testing.T) {
	// Not decodable as an image; processing fails, the original is kept.
	raw := []byte("svg-ish payload")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(raw)
	}))
	defer srv.Close()

	dir := t.TempDir()
	logger := &recordingLogger{}
	result, err := Download([]Job{{NodeID: "1:1", NodeName: "Vector", URL: srv.URL}}, Config{
		OutputDir:  dir,
		Format:     "png",
		Processing: &imgproc.Options{Mode: "FIT", Width: 20, Height: 20},
		Logger:     logger,
	})
	require.NoError(t, err)

	require.Len(t, result.Assets, 1)
	assert.Nil(t, result.Assets[0].Processed)
	assert.Len(t, logger.warnings, 1)

	data, rerr := os.ReadFile(filepath.Join(dir, "vector.png"))
	require.NoError(t, rerr)
	assert.Equal(t, raw, data)
}

func TestDownloadRejectsInvalidProcessing(t *testing.T) {
	_, err := Download(nil, Config{
		Processing: &imgproc.Options{Mode: "STRETCH"},
	})
	assert.ErrorIs(t, err, imgproc.ErrInvalidMode)
}

func TestCollectImageFillNodes(t *testing.T) {
	root := figma.Node{
		ID: "0:1", Name: "Page", Type: "CANVAS",
		Children: []figma.Node{
			{
				ID: "1:1", Name: "Photo", Type: "RECTANGLE",
				Fills: []figma.Paint{{Type: "IMAGE", ImageRef: "ref-a"}},
			},
			{
				ID: "1:2", Name: "Hidden", Type: "RECTANGLE", Visible: boolPtr(false),
				Fills: []figma.Paint{{Type: "IMAGE", ImageRef: "ref-b"}},
			},
			{
				ID: "1:3", Name: "Solid", Type: "RECTANGLE",
				Fills: []figma.Paint{{Type: "SOLID"}},
				Children: []figma.Node{
					{
						ID: "2:1", Name: "Nested", Type: "RECTANGLE",
						Fills: []figma.Paint{{Type: "IMAGE", ImageRef: "ref-c"}},
					},
				},
			},
			{
				ID: "1:4", Name: "Hidden fill", Type: "RECTANGLE",
				Fills: []figma.Paint{{Type: "IMAGE", ImageRef: "ref-d", Visible: boolPtr(false)}},
			},
			{
				ID: "1:5", Name: "No ref", Type: "RECTANGLE",
				Fills: []figma.Paint{{Type: "IMAGE"}},
			},
		},
	}

	got := CollectImageFillNodes(&root)

	assert.Equal(t, []ImageFillNode{
		{NodeID: "1:1", NodeName: "Photo", ImageRef: "ref-a"},
		{NodeID: "2:1", NodeName: "Nested", ImageRef: "ref-c"},
	}, got)
}

func TestCollectExportableNodes(t *testing.T) {
	root := figma.Node{
		ID: "0:1", Name: "Page",
		Children: []figma.Node{
			{
				ID: "1:1", Name: "Logo",
				ExportSettings: []figma.ExportSetting{{Format: "SVG"}},
			},
			{ID: "1:2", Name: "Plain"},
		},
	}

	got := CollectExportableNodes(&root)
	assert.Equal(t, map[string]string{"1:1": "Logo"}, got)
}

func TestBuildFileName(t *testing.T) {
	tests := []struct {
		name     string
		nodeName string
		nodeID   string
		format   string
		want     string
	}{
		{"simple", "Hero Banner", "1:1", "png", "hero-banner.png"},
		{"underscores and symbols", "My_Icon (v2)!", "1:1", "svg", "my-icon-v2.svg"},
		{"empty name falls back to id", "", "12:34", "png", "12-34.png"},
		{"default format", "Logo", "1:1", "", "logo.png"},
		{"unsanitizable name", "!!!", "@@@", "png", "asset.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildFileName(tt.nodeName, tt.nodeID, tt.format))
		})
	}
}
