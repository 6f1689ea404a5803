package manifest

import (
	"github.com/extforge/extforge/internal/entrypoint"
)

// applyEntrypoints routes each entrypoint into its manifest fields,
// branching on target browser and manifest schema version. Singleton
// types honor only their first entrypoint; sandbox pages, side panels
// and content scripts are multi-valued.
func (g *generator) applyEntrypoints(m Manifest, eps []*entrypoint.Entrypoint) error {
	var background, popup, optionsPage, devtools, newtab, bookmarks, history *entrypoint.Entrypoint
	var sandboxes, sidePanels, contentScripts []*entrypoint.Entrypoint

	firstWins := func(slot **entrypoint.Entrypoint, ep *entrypoint.Entrypoint) {
		if *slot == nil {
			*slot = ep
		}
	}

	for _, ep := range eps {
		switch ep.Type {
		case entrypoint.TypeBackground:
			firstWins(&background, ep)
		case entrypoint.TypePopup:
			firstWins(&popup, ep)
		case entrypoint.TypeOptions:
			firstWins(&optionsPage, ep)
		case entrypoint.TypeDevtools:
			firstWins(&devtools, ep)
		case entrypoint.TypeNewtab:
			firstWins(&newtab, ep)
		case entrypoint.TypeBookmarks:
			firstWins(&bookmarks, ep)
		case entrypoint.TypeHistory:
			firstWins(&history, ep)
		case entrypoint.TypeSandbox:
			sandboxes = append(sandboxes, ep)
		case entrypoint.TypeSidePanel:
			sidePanels = append(sidePanels, ep)
		case entrypoint.TypeContentScript:
			contentScripts = append(contentScripts, ep)
		}
	}

	g.applyBackground(m, background)
	g.applyPopup(m, popup)
	g.applyOptionsPage(m, optionsPage)
	if devtools != nil {
		m["devtools_page"] = devtools.BundlePath()
	}
	g.applyOverridePages(m, newtab, bookmarks, history)
	g.applySandbox(m, sandboxes)
	g.applySidePanel(m, sidePanels)
	return g.applyContentScripts(m, contentScripts)
}

func (g *generator) applyBackground(m Manifest, ep *entrypoint.Entrypoint) {
	if ep == nil {
		return
	}
	opts := ep.Background()
	if opts == nil {
		opts = &entrypoint.BackgroundOptions{}
	}
	path := ep.BundlePath()

	var background map[string]any
	switch {
	case g.cfg.MV3() && g.cfg.IsFirefox():
		// Firefox has no service worker support; MV3 backgrounds run as
		// event page scripts there.
		background = map[string]any{"scripts": []any{path}}
	case g.cfg.MV3():
		background = map[string]any{"service_worker": path}
	default:
		persistent := true
		if opts.Persistent != nil {
			persistent = *opts.Persistent
		}
		background = map[string]any{
			"persistent": persistent,
			"scripts":    []any{path},
		}
	}

	if g.cfg.MV3() && opts.Type == entrypoint.ScriptModule {
		background["type"] = "module"
	}
	m["background"] = background
}

func (g *generator) applyPopup(m Manifest, ep *entrypoint.Entrypoint) {
	if ep == nil {
		return
	}
	opts := ep.Popup()
	if opts == nil {
		opts = &entrypoint.PopupOptions{}
	}

	action := map[string]any{"default_popup": ep.BundlePath()}
	if opts.DefaultTitle != "" {
		action["default_title"] = opts.DefaultTitle
	}
	if len(opts.DefaultIcon) > 0 {
		icon := make(map[string]any, len(opts.DefaultIcon))
		for size, path := range opts.DefaultIcon {
			icon[size] = path
		}
		action["default_icon"] = icon
	}
	if opts.BrowserStyle != nil {
		action["browser_style"] = *opts.BrowserStyle
	}

	if g.cfg.MV3() {
		m["action"] = action
		return
	}
	key := opts.MV2Key
	if key == "" {
		key = "browser_action"
	}
	m[key] = action
}

func (g *generator) applyOptionsPage(m Manifest, ep *entrypoint.Entrypoint) {
	if ep == nil {
		return
	}
	ui := map[string]any{"page": ep.BundlePath()}
	if opts := ep.OptionsPage(); opts != nil && opts.OpenInTab != nil {
		ui["open_in_tab"] = *opts.OpenInTab
	}
	if g.cfg.IsFirefox() {
		ui["browser_style"] = true
	} else {
		ui["chrome_style"] = true
	}
	m["options_ui"] = ui
}

func (g *generator) applyOverridePages(m Manifest, newtab, bookmarks, history *entrypoint.Entrypoint) {
	overrides := map[string]any{}
	if newtab != nil {
		overrides["newtab"] = newtab.BundlePath()
	}
	if bookmarks != nil {
		if g.cfg.IsFirefox() {
			g.warnf("Bookmarks override is not supported by Firefox, omitting %q", bookmarks.Name)
		} else {
			overrides["bookmarks"] = bookmarks.BundlePath()
		}
	}
	if history != nil {
		if g.cfg.IsFirefox() {
			g.warnf("History override is not supported by Firefox, omitting %q", history.Name)
		} else {
			overrides["history"] = history.BundlePath()
		}
	}
	if len(overrides) > 0 {
		m["chrome_url_overrides"] = overrides
	}
}

func (g *generator) applySandbox(m Manifest, sandboxes []*entrypoint.Entrypoint) {
	if len(sandboxes) == 0 {
		return
	}
	if g.cfg.IsFirefox() {
		g.warnf("Sandboxed pages are not supported by Firefox, omitting them")
		return
	}
	pages := make([]any, len(sandboxes))
	for i, ep := range sandboxes {
		pages[i] = ep.BundlePath()
	}
	m["sandbox"] = map[string]any{"pages": pages}
}

func (g *generator) applySidePanel(m Manifest, sidePanels []*entrypoint.Entrypoint) {
	if len(sidePanels) == 0 {
		return
	}
	path := sidePanels[0].BundlePath()
	switch {
	case !g.cfg.MV3():
		g.warnf("Side panels require manifest_version 3, omitting %q", sidePanels[0].Name)
	case g.cfg.IsFirefox():
		m["sidebar_action"] = map[string]any{"default_panel": path}
	default:
		m["side_panel"] = map[string]any{"default_path": path}
	}
}

func (g *generator) applyContentScripts(m Manifest, scripts []*entrypoint.Entrypoint) error {
	if len(scripts) == 0 {
		return nil
	}
	groups, err := GroupContentScripts(scripts, g.cfg.Browser)
	if err != nil {
		return err
	}
	styles := g.output.ContentScriptCSS()

	if g.cfg.IsServe() && g.cfg.MV3() {
		// The dev runtime registers content scripts dynamically, which
		// needs the origins granted up front instead of manifest entries.
		for _, group := range groups {
			for _, match := range group.Resolved.Matches {
				m.AddHostPermission(match)
			}
		}
	} else {
		entries, _ := m["content_scripts"].([]any)
		for _, group := range groups {
			entries = append(entries, group.ManifestEntry(g.output, styles))
		}
		m["content_scripts"] = entries
	}

	if resources := WebAccessibleResources(scripts, g.cfg.Browser, g.cfg.MV3(), styles); len(resources) > 0 {
		existing, _ := m["web_accessible_resources"].([]any)
		m["web_accessible_resources"] = append(existing, resources...)
	}
	return nil
}
