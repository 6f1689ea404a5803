package manifest

import (
	"strings"

	"github.com/extforge/extforge/internal/entrypoint"
)

// chunksGlob is the shared-chunk directory wildcard exposed alongside
// module entrypoints so their dynamic imports stay fetchable.
const chunksGlob = "chunks/*"

// StripMatchPatternPath collapses a match pattern's path (and any query
// restriction) to an origin-wide wildcard:
//
//	"*://play.google.com/books/*" -> "*://play.google.com/*"
//
// Accessible-resource scoping is origin-level, never path-level.
// Patterns without a scheme separator, like "<all_urls>", pass through
// unchanged.
func StripMatchPatternPath(pattern string) string {
	schemeEnd := strings.Index(pattern, "://")
	if schemeEnd < 0 {
		return pattern
	}
	hostStart := schemeEnd + len("://")
	pathStart := strings.Index(pattern[hostStart:], "/")
	if pathStart < 0 {
		return pattern
	}
	return pattern[:hostStart+pathStart] + "/*"
}

// WebAccessibleResources computes the accessible-resource entries
// content scripts need at runtime: ui-mode stylesheets fetched into
// shadow roots, and module bundles plus their chunk directory for
// dynamic ES imports. Under schema version 3 each entry is scoped to
// the entrypoint's path-stripped match patterns; schema version 2 uses
// a flat path list.
func WebAccessibleResources(scripts []*entrypoint.Entrypoint, browser string, mv3 bool, styles map[string]string) []any {
	var entries []any
	var flat []string

	addFlat := func(paths ...string) {
		for _, path := range paths {
			if !containsString(flat, path) {
				flat = append(flat, path)
			}
		}
	}
	addScoped := func(matches []string, paths ...string) {
		entries = append(entries, map[string]any{
			"resources": toAnyList(paths),
			"matches":   toAnyList(matches),
		})
	}

	for _, ep := range scripts {
		opts := ep.ContentScript()
		if opts == nil {
			continue
		}
		resolved := opts.Resolve(browser)

		var stripped []string
		for _, match := range resolved.Matches {
			pattern := StripMatchPatternPath(match)
			if !containsString(stripped, pattern) {
				stripped = append(stripped, pattern)
			}
		}

		if resolved.CSSInjection == entrypoint.CSSInjectionUI {
			if path, ok := styles[ep.Name]; ok {
				if mv3 {
					addScoped(stripped, path)
				} else {
					addFlat(path)
				}
			}
		}

		if resolved.Type == entrypoint.ScriptModule {
			if mv3 {
				addScoped(stripped, ep.BundlePath(), chunksGlob)
			} else {
				addFlat(ep.BundlePath(), chunksGlob)
			}
		}
	}

	if !mv3 {
		for _, path := range flat {
			entries = append(entries, path)
		}
	}
	return entries
}
