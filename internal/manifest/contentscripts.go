package manifest

import (
	"github.com/extforge/extforge/internal/build"
	"github.com/extforge/extforge/internal/entrypoint"
)

// Group is a set of content-script entrypoints whose resolved options
// hash identically. Entrypoints split across files for organizational
// reasons but configured the same must collapse into one manifest entry
// to avoid duplicate injection.
type Group struct {
	Resolved entrypoint.ResolvedContentScript
	Members  []*entrypoint.Entrypoint
}

// GroupContentScripts resolves each content script's options for the
// target browser, hashes them canonically, and merges entrypoints with
// equal hashes. Groups keep first-seen order; each group's options come
// from its first member.
func GroupContentScripts(scripts []*entrypoint.Entrypoint, browser string) ([]*Group, error) {
	byHash := make(map[string]*Group)
	var groups []*Group

	for _, ep := range scripts {
		opts := ep.ContentScript()
		if opts == nil {
			continue
		}
		resolved := opts.Resolve(browser)
		hash, err := resolved.Hash()
		if err != nil {
			return nil, err
		}

		group, ok := byHash[hash]
		if !ok {
			group = &Group{Resolved: resolved}
			byHash[hash] = group
			groups = append(groups, group)
		}
		group.Members = append(group.Members, ep)
	}

	return groups, nil
}

// ManifestEntry builds the content_scripts entry for the group.
//
// The css field is the first-seen-order union of the members' emitted
// stylesheets; groups in manual or ui injection mode get no css field at
// all (ui stylesheets are exposed as web-accessible resources instead).
// The js field concatenates, in member order, each member's bundle plus
// the chunks its dynamic imports need.
func (g *Group) ManifestEntry(output *build.Output, styles map[string]string) map[string]any {
	entry := map[string]any{
		"matches": toAnyList(g.Resolved.Matches),
	}
	if len(g.Resolved.ExcludeMatches) > 0 {
		entry["exclude_matches"] = toAnyList(g.Resolved.ExcludeMatches)
	}
	if g.Resolved.RunAt != "" {
		entry["run_at"] = g.Resolved.RunAt
	}
	if g.Resolved.AllFrames != nil {
		entry["all_frames"] = *g.Resolved.AllFrames
	}
	if g.Resolved.MatchAboutBlank != nil {
		entry["match_about_blank"] = *g.Resolved.MatchAboutBlank
	}
	if g.Resolved.World != "" {
		entry["world"] = g.Resolved.World
	}

	if g.injectsCSSViaManifest() {
		var css []string
		for _, member := range g.Members {
			if path, ok := styles[member.Name]; ok && !containsString(css, path) {
				css = append(css, path)
			}
		}
		if len(css) > 0 {
			entry["css"] = toAnyList(css)
		}
	}

	var js []string
	for _, member := range g.Members {
		for _, path := range output.ScriptPaths(member.Name, member.BundlePath()) {
			if !containsString(js, path) {
				js = append(js, path)
			}
		}
	}
	entry["js"] = toAnyList(js)

	return entry
}

func (g *Group) injectsCSSViaManifest() bool {
	switch g.Resolved.CSSInjection {
	case entrypoint.CSSInjectionManual, entrypoint.CSSInjectionUI:
		return false
	default:
		return true
	}
}
