package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/extforge/extforge/internal/build"
	"github.com/extforge/extforge/internal/config"
	"github.com/extforge/extforge/internal/entrypoint"
)

func generateFor(t *testing.T, mutate func(*config.Config), eps ...*entrypoint.Entrypoint) (Manifest, []Warning) {
	t.Helper()
	cfg := testConfig(t, mutate)
	m, warnings, err := Generate(cfg, testPkg(), eps, &build.Output{})
	require.NoError(t, err)
	return m, warnings
}

func htmlEntrypoint(name string, typ entrypoint.Type) *entrypoint.Entrypoint {
	return &entrypoint.Entrypoint{Name: name, Type: typ}
}

func TestApplyPopup(t *testing.T) {
	popup := func(opts *entrypoint.PopupOptions) *entrypoint.Entrypoint {
		return &entrypoint.Entrypoint{Name: "popup", Type: entrypoint.TypePopup, Options: opts}
	}

	t.Run("mv3 emits action", func(t *testing.T) {
		m, _ := generateFor(t, nil, popup(&entrypoint.PopupOptions{DefaultTitle: "Quick Panel"}))

		action := m["action"].(map[string]any)
		assert.Equal(t, "popup.html", action["default_popup"])
		assert.Equal(t, "Quick Panel", action["default_title"])
		assert.NotContains(t, m, "browser_action")
	})

	t.Run("mv2 emits browser_action by default", func(t *testing.T) {
		m, _ := generateFor(t, func(c *config.Config) { c.ManifestVersion = 2 },
			popup(&entrypoint.PopupOptions{}))

		action := m["browser_action"].(map[string]any)
		assert.Equal(t, "popup.html", action["default_popup"])
		assert.NotContains(t, m, "action")
	})

	t.Run("mv2 key override selects page_action", func(t *testing.T) {
		m, _ := generateFor(t, func(c *config.Config) { c.ManifestVersion = 2 },
			popup(&entrypoint.PopupOptions{MV2Key: "page_action"}))

		assert.Contains(t, m, "page_action")
		assert.NotContains(t, m, "browser_action")
	})

	t.Run("default icon sizes are carried over", func(t *testing.T) {
		m, _ := generateFor(t, nil, popup(&entrypoint.PopupOptions{
			DefaultIcon: map[string]string{"16": "icon-16.png"},
		}))

		action := m["action"].(map[string]any)
		assert.Equal(t, map[string]any{"16": "icon-16.png"}, action["default_icon"])
	})
}

func TestApplyOptionsPage(t *testing.T) {
	options := func(opts *entrypoint.OptionsPageOptions) *entrypoint.Entrypoint {
		return &entrypoint.Entrypoint{Name: "options", Type: entrypoint.TypeOptions, Options: opts}
	}

	t.Run("chrome gets chrome_style", func(t *testing.T) {
		m, _ := generateFor(t, nil, options(nil))

		ui := m["options_ui"].(map[string]any)
		assert.Equal(t, "options.html", ui["page"])
		assert.Equal(t, true, ui["chrome_style"])
		assert.NotContains(t, ui, "browser_style")
	})

	t.Run("firefox gets browser_style", func(t *testing.T) {
		m, _ := generateFor(t, func(c *config.Config) { c.Browser = config.BrowserFirefox },
			options(nil))

		ui := m["options_ui"].(map[string]any)
		assert.Equal(t, true, ui["browser_style"])
		assert.NotContains(t, ui, "chrome_style")
	})

	t.Run("open_in_tab forwarded when set", func(t *testing.T) {
		openInTab := true
		m, _ := generateFor(t, nil, options(&entrypoint.OptionsPageOptions{OpenInTab: &openInTab}))

		ui := m["options_ui"].(map[string]any)
		assert.Equal(t, true, ui["open_in_tab"])
	})
}

func TestApplyDevtools(t *testing.T) {
	m, _ := generateFor(t, nil, htmlEntrypoint("devtools", entrypoint.TypeDevtools))

	assert.Equal(t, "devtools.html", m["devtools_page"])
}

func TestApplyOverridePages(t *testing.T) {
	t.Run("all overrides on chrome", func(t *testing.T) {
		m, warnings := generateFor(t, nil,
			htmlEntrypoint("newtab", entrypoint.TypeNewtab),
			htmlEntrypoint("bookmarks", entrypoint.TypeBookmarks),
			htmlEntrypoint("history", entrypoint.TypeHistory),
		)

		overrides := m["chrome_url_overrides"].(map[string]any)
		assert.Equal(t, "newtab.html", overrides["newtab"])
		assert.Equal(t, "bookmarks.html", overrides["bookmarks"])
		assert.Equal(t, "history.html", overrides["history"])
		assert.Empty(t, warnings)
	})

	t.Run("firefox drops bookmarks and history with warnings", func(t *testing.T) {
		m, warnings := generateFor(t, func(c *config.Config) { c.Browser = config.BrowserFirefox },
			htmlEntrypoint("newtab", entrypoint.TypeNewtab),
			htmlEntrypoint("bookmarks", entrypoint.TypeBookmarks),
			htmlEntrypoint("history", entrypoint.TypeHistory),
		)

		overrides := m["chrome_url_overrides"].(map[string]any)
		assert.Equal(t, map[string]any{"newtab": "newtab.html"}, overrides)
		assert.True(t, hasWarning(warnings, "Bookmarks"))
		assert.True(t, hasWarning(warnings, "History"))
	})

	t.Run("absent without override entrypoints", func(t *testing.T) {
		m, _ := generateFor(t, nil)

		assert.NotContains(t, m, "chrome_url_overrides")
	})
}

func TestApplySandbox(t *testing.T) {
	t.Run("pages collected on chrome", func(t *testing.T) {
		m, _ := generateFor(t, nil,
			htmlEntrypoint("sandbox", entrypoint.TypeSandbox),
			htmlEntrypoint("preview", entrypoint.TypeSandbox),
		)

		sandbox := m["sandbox"].(map[string]any)
		assert.Equal(t, []any{"sandbox.html", "preview.html"}, sandbox["pages"])
	})

	t.Run("omitted on firefox with warning", func(t *testing.T) {
		m, warnings := generateFor(t, func(c *config.Config) { c.Browser = config.BrowserFirefox },
			htmlEntrypoint("sandbox", entrypoint.TypeSandbox))

		assert.NotContains(t, m, "sandbox")
		assert.True(t, hasWarning(warnings, "Sandboxed pages"))
	})
}

func TestApplySidePanel(t *testing.T) {
	panel := htmlEntrypoint("sidepanel", entrypoint.TypeSidePanel)

	t.Run("chrome mv3 gets side_panel", func(t *testing.T) {
		m, _ := generateFor(t, nil, panel)

		sidePanel := m["side_panel"].(map[string]any)
		assert.Equal(t, "sidepanel.html", sidePanel["default_path"])
	})

	t.Run("firefox mv3 gets sidebar_action", func(t *testing.T) {
		m, _ := generateFor(t, func(c *config.Config) { c.Browser = config.BrowserFirefox }, panel)

		sidebar := m["sidebar_action"].(map[string]any)
		assert.Equal(t, "sidepanel.html", sidebar["default_panel"])
		assert.NotContains(t, m, "side_panel")
	})

	t.Run("mv2 omits with warning", func(t *testing.T) {
		m, warnings := generateFor(t, func(c *config.Config) { c.ManifestVersion = 2 }, panel)

		assert.NotContains(t, m, "side_panel")
		assert.NotContains(t, m, "sidebar_action")
		assert.True(t, hasWarning(warnings, "Side panels"))
	})
}

func TestApplyEntrypoints_SingletonFirstWins(t *testing.T) {
	m, _ := generateFor(t, nil,
		htmlEntrypoint("popup", entrypoint.TypePopup),
		htmlEntrypoint("popup-extra", entrypoint.TypePopup),
	)

	action := m["action"].(map[string]any)
	assert.Equal(t, "popup.html", action["default_popup"])
}

func TestApplyContentScripts_WebAccessibleResources(t *testing.T) {
	cfg := testConfig(t, nil)
	output := &build.Output{
		Steps: []build.Step{
			scriptStep("overlay",
				build.Chunk{Type: build.TypeChunk, FileName: "content-scripts/overlay.js", IsEntry: true},
				build.Chunk{Type: build.TypeChunk, FileName: "content-scripts/overlay.css"},
			),
		},
	}
	eps := []*entrypoint.Entrypoint{
		contentScript("overlay", &entrypoint.ContentScriptOptions{
			Matches:      entrypoint.NewPerBrowserStrings("https://example.com/*"),
			CSSInjection: entrypoint.CSSInjectionUI,
		}),
	}

	m, _, err := Generate(cfg, testPkg(), eps, output)
	require.NoError(t, err)

	require.Contains(t, m, "content_scripts")
	entries := m["content_scripts"].([]any)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].(map[string]any), "css", "ui-injected styles stay out of content_scripts")

	resources := m["web_accessible_resources"].([]any)
	require.Len(t, resources, 1)
	scoped := resources[0].(map[string]any)
	assert.Equal(t, []any{"content-scripts/overlay.css"}, scoped["resources"])
}
