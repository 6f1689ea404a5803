// Package build models the metadata a bundler produces for a single
// extension build: the public assets copied to the output directory and
// the per-entrypoint build steps with their emitted chunks.
package build

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"
)

// Asset and chunk type tags used in bundler metadata.
const (
	TypeAsset = "asset"
	TypeChunk = "chunk"
)

// PublicAsset is a file copied verbatim into the output directory.
type PublicAsset struct {
	Type     string `json:"type"`
	FileName string `json:"fileName"`
}

// Chunk is a single file emitted by a build step.
type Chunk struct {
	Type     string `json:"type"`
	FileName string `json:"fileName"`
	IsEntry  bool   `json:"isEntry,omitempty"`
}

// Step is the output of building one or more entrypoints together.
type Step struct {
	Entrypoints []string `json:"entrypoints"`
	Chunks      []Chunk  `json:"chunks"`
}

// Output is the complete bundler metadata for a build.
type Output struct {
	PublicAssets []PublicAsset `json:"publicAssets"`
	Steps        []Step        `json:"steps"`
}

// Load reads bundler metadata from a JSON file.
func Load(path string) (*Output, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read build output metadata: %w", err)
	}

	var out Output
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("invalid build output metadata: %w", err)
	}
	return &out, nil
}

// StepFor returns the first build step that produced the named
// entrypoint, or nil if none did.
func (o *Output) StepFor(name string) *Step {
	for i := range o.Steps {
		for _, ep := range o.Steps[i].Entrypoints {
			if ep == name {
				return &o.Steps[i]
			}
		}
	}
	return nil
}

// ContentScriptCSS maps content-script entrypoint names to the path of
// their emitted stylesheet. Only chunks named
// "content-scripts/<name>.css" participate.
func (o *Output) ContentScriptCSS() map[string]string {
	styles := make(map[string]string)
	for _, step := range o.Steps {
		for _, chunk := range step.Chunks {
			dir, file := path.Split(chunk.FileName)
			if dir != "content-scripts/" || !strings.HasSuffix(file, ".css") {
				continue
			}
			name := strings.TrimSuffix(file, ".css")
			styles[name] = chunk.FileName
		}
	}
	return styles
}

// ScriptPaths returns the JS files an entrypoint needs at runtime: its
// entry chunk followed by the step's remaining JS chunks (the chunks its
// dynamic imports resolve to), in build order. When the entrypoint has
// no build step, the conventional bundle path is assumed.
func (o *Output) ScriptPaths(name, fallback string) []string {
	step := o.StepFor(name)
	if step == nil {
		return []string{fallback}
	}

	var entry string
	var rest []string
	for _, chunk := range step.Chunks {
		if chunk.Type != TypeChunk || !strings.HasSuffix(chunk.FileName, ".js") {
			continue
		}
		if chunk.IsEntry && entry == "" {
			entry = chunk.FileName
			continue
		}
		rest = append(rest, chunk.FileName)
	}
	if entry == "" {
		entry = fallback
	}
	return append([]string{entry}, rest...)
}
