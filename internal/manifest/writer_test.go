package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/extforge/extforge/internal/build"
)

func TestWriter_Write(t *testing.T) {
	m := Manifest{
		"manifest_version": 3,
		"name":             "Test Extension",
		"version":          "1.0.0",
	}

	t.Run("writes pretty json by default", func(t *testing.T) {
		outDir := t.TempDir()
		writer := NewWriter(WriterOptions{OutDir: outDir})

		path, err := writer.Write(m, &build.Output{})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(outDir, "manifest.json"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "\n  \"name\"")

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "Test Extension", decoded["name"])
	})

	t.Run("minified output has no whitespace", func(t *testing.T) {
		outDir := t.TempDir()
		writer := NewWriter(WriterOptions{OutDir: outDir, Minify: true})

		path, err := writer.Write(m, &build.Output{})
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.False(t, strings.Contains(string(data), "\n"))
	})

	t.Run("creates missing output directory", func(t *testing.T) {
		outDir := filepath.Join(t.TempDir(), "nested", "dist")
		writer := NewWriter(WriterOptions{OutDir: outDir})

		path, err := writer.Write(m, &build.Output{})
		require.NoError(t, err)
		assert.FileExists(t, path)
	})

	t.Run("records manifest as the first public asset", func(t *testing.T) {
		writer := NewWriter(WriterOptions{OutDir: t.TempDir()})
		output := &build.Output{PublicAssets: []build.PublicAsset{
			{Type: build.TypeAsset, FileName: "icon-16.png"},
		}}

		_, err := writer.Write(m, output)
		require.NoError(t, err)

		require.Len(t, output.PublicAssets, 2)
		assert.Equal(t, "manifest.json", output.PublicAssets[0].FileName)
		assert.Equal(t, "icon-16.png", output.PublicAssets[1].FileName)
	})

	t.Run("unchanged content keeps the existing file", func(t *testing.T) {
		outDir := t.TempDir()
		writer := NewWriter(WriterOptions{OutDir: outDir})

		path, err := writer.Write(m, &build.Output{})
		require.NoError(t, err)
		before, err := os.Stat(path)
		require.NoError(t, err)

		_, err = writer.Write(m, &build.Output{})
		require.NoError(t, err)
		after, err := os.Stat(path)
		require.NoError(t, err)

		assert.Equal(t, before.ModTime(), after.ModTime())
	})
}

func TestWriter_Marshal_Deterministic(t *testing.T) {
	writer := NewWriter(WriterOptions{})
	m := Manifest{
		"name":        "Test Extension",
		"permissions": []any{"tabs", "storage"},
		"background":  map[string]any{"service_worker": "background.js"},
	}

	first, err := writer.Marshal(m)
	require.NoError(t, err)
	second, err := writer.Marshal(m.Clone())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
