// Package entrypoint models the resolved extension surfaces a build
// produces: background, popup, options page, devtools, content scripts
// and the rest. Entrypoints are immutable inputs to manifest generation;
// the build pipeline that compiles their sources is out of scope.
package entrypoint

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Type identifies the extension surface an entrypoint targets.
type Type string

// Supported entrypoint types.
const (
	TypeBackground    Type = "background"
	TypePopup         Type = "popup"
	TypeOptions       Type = "options"
	TypeDevtools      Type = "devtools"
	TypeBookmarks     Type = "bookmarks"
	TypeHistory       Type = "history"
	TypeNewtab        Type = "newtab"
	TypeSandbox       Type = "sandbox"
	TypeSidePanel     Type = "side-panel"
	TypeContentScript Type = "content-script"
)

// ScriptType is the module system a script entrypoint is built as.
type ScriptType string

// Script types.
const (
	ScriptClassic ScriptType = "classic"
	ScriptModule  ScriptType = "module"
)

// CSSInjectionMode controls how a content script's stylesheet reaches
// the page.
type CSSInjectionMode string

// CSS injection modes. The zero value means the stylesheet is listed in
// the manifest entry ("manifest" mode).
const (
	CSSInjectionManifest CSSInjectionMode = "manifest"
	CSSInjectionManual   CSSInjectionMode = "manual"
	CSSInjectionUI       CSSInjectionMode = "ui"
)

// Options is the type-specific configuration attached to an entrypoint.
type Options interface {
	entrypointOptions()
}

// BackgroundOptions configures a background entrypoint.
type BackgroundOptions struct {
	Persistent *bool      `yaml:"persistent"`
	Type       ScriptType `yaml:"type"`
}

// PopupOptions configures an action popup entrypoint.
type PopupOptions struct {
	DefaultTitle string            `yaml:"default_title"`
	DefaultIcon  map[string]string `yaml:"default_icon"`
	BrowserStyle *bool             `yaml:"browser_style"`
	// MV2Key selects the manifest v2 key the popup is written under,
	// "browser_action" (default) or "page_action".
	MV2Key string `yaml:"mv2_key"`
}

// OptionsPageOptions configures an options page entrypoint.
type OptionsPageOptions struct {
	OpenInTab *bool `yaml:"open_in_tab"`
}

// ContentScriptOptions configures a content-script entrypoint. Matches
// and ExcludeMatches may be declared per target browser.
type ContentScriptOptions struct {
	Matches         PerBrowserStrings `yaml:"matches"`
	ExcludeMatches  PerBrowserStrings `yaml:"exclude_matches"`
	RunAt           string            `yaml:"run_at"`
	AllFrames       *bool             `yaml:"all_frames"`
	MatchAboutBlank *bool             `yaml:"match_about_blank"`
	World           string            `yaml:"world"`
	CSSInjection    CSSInjectionMode  `yaml:"css_injection_mode"`
	Type            ScriptType        `yaml:"type"`
}

func (*BackgroundOptions) entrypointOptions()    {}
func (*PopupOptions) entrypointOptions()         {}
func (*OptionsPageOptions) entrypointOptions()   {}
func (*ContentScriptOptions) entrypointOptions() {}

// Entrypoint is one resolved extension surface. Name is unique within
// its type for content scripts; for singleton types only the first
// entrypoint of a type is honored.
type Entrypoint struct {
	Name    string
	Type    Type
	Options Options
}

// Parse builds a typed Entrypoint from a declaration consisting of a
// name, a type tag and a raw options map (as decoded from a project
// file). Unknown types are rejected.
func Parse(name string, typ Type, rawOptions map[string]any) (*Entrypoint, error) {
	ep := &Entrypoint{Name: name, Type: typ}

	switch typ {
	case TypeBackground:
		opts := &BackgroundOptions{}
		if err := decodeOptions(rawOptions, opts); err != nil {
			return nil, fmt.Errorf("entrypoint %q: %w", name, err)
		}
		ep.Options = opts
	case TypePopup:
		opts := &PopupOptions{}
		if err := decodeOptions(rawOptions, opts); err != nil {
			return nil, fmt.Errorf("entrypoint %q: %w", name, err)
		}
		ep.Options = opts
	case TypeOptions:
		opts := &OptionsPageOptions{}
		if err := decodeOptions(rawOptions, opts); err != nil {
			return nil, fmt.Errorf("entrypoint %q: %w", name, err)
		}
		ep.Options = opts
	case TypeContentScript:
		opts := &ContentScriptOptions{}
		if err := decodeOptions(rawOptions, opts); err != nil {
			return nil, fmt.Errorf("entrypoint %q: %w", name, err)
		}
		ep.Options = opts
	case TypeDevtools, TypeBookmarks, TypeHistory, TypeNewtab, TypeSandbox, TypeSidePanel:
		// Plain page entrypoints carry no options.
	default:
		return nil, fmt.Errorf("entrypoint %q: %w: %q", name, ErrUnknownType, typ)
	}

	return ep, nil
}

// decodeOptions round-trips a raw options map through YAML into a typed
// options struct, so per-browser values get their custom decoding.
func decodeOptions(raw map[string]any, target Options) error {
	if len(raw) == 0 {
		return nil
	}
	data, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// BundlePath returns the output-directory-relative path the build
// pipeline emits this entrypoint's bundle at.
func (e *Entrypoint) BundlePath() string {
	switch e.Type {
	case TypeBackground:
		return "background.js"
	case TypeContentScript:
		return "content-scripts/" + e.Name + ".js"
	default:
		return e.Name + ".html"
	}
}

// Background returns the typed options of a background entrypoint, or
// nil when the entrypoint is of another type.
func (e *Entrypoint) Background() *BackgroundOptions {
	opts, _ := e.Options.(*BackgroundOptions)
	return opts
}

// Popup returns the typed options of a popup entrypoint.
func (e *Entrypoint) Popup() *PopupOptions {
	opts, _ := e.Options.(*PopupOptions)
	return opts
}

// OptionsPage returns the typed options of an options page entrypoint.
func (e *Entrypoint) OptionsPage() *OptionsPageOptions {
	opts, _ := e.Options.(*OptionsPageOptions)
	return opts
}

// ContentScript returns the typed options of a content-script
// entrypoint.
func (e *Entrypoint) ContentScript() *ContentScriptOptions {
	opts, _ := e.Options.(*ContentScriptOptions)
	return opts
}
