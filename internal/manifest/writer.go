package manifest

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/extforge/extforge/internal/build"
	"github.com/extforge/extforge/internal/utils"
)

// ManifestFileName is the file the assembled manifest is written to,
// relative to the output directory.
const ManifestFileName = "manifest.json"

// Writer serializes an assembled manifest into the build output
// directory.
type Writer struct {
	outDir string
	minify bool
}

// WriterOptions contains options for the writer
type WriterOptions struct {
	OutDir string
	// Minify emits compact JSON; pretty JSON is written otherwise.
	Minify bool
}

// NewWriter creates a new manifest writer
func NewWriter(opts WriterOptions) *Writer {
	if opts.OutDir == "" {
		opts.OutDir = "dist"
	}
	return &Writer{
		outDir: opts.OutDir,
		minify: opts.Minify,
	}
}

// Write serializes the manifest into <outDir>/manifest.json, creating
// the directory if needed and leaving the file untouched when its
// content already matches. The manifest is recorded as a public asset
// on the build output, ahead of the bundler's own assets.
func (w *Writer) Write(m Manifest, output *build.Output) (string, error) {
	data, err := w.Marshal(m)
	if err != nil {
		return "", err
	}

	if err := utils.EnsureDir(w.outDir); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(w.outDir, ManifestFileName)
	if _, err := utils.WriteFileIfChanged(path, data); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", ManifestFileName, err)
	}

	output.PublicAssets = append([]build.PublicAsset{
		{Type: build.TypeAsset, FileName: ManifestFileName},
	}, output.PublicAssets...)

	return path, nil
}

// Marshal serializes the manifest deterministically: object keys are
// sorted, so identical manifests always produce identical bytes.
func (w *Writer) Marshal(m Manifest) ([]byte, error) {
	var data []byte
	var err error
	if w.minify {
		data, err = json.Marshal(m)
	} else {
		data, err = json.MarshalIndent(m, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to serialize manifest: %w", err)
	}
	return data, nil
}
