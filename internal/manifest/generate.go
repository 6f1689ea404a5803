package manifest

import (
	"fmt"

	"github.com/extforge/extforge/internal/build"
	"github.com/extforge/extforge/internal/config"
	"github.com/extforge/extforge/internal/csp"
	"github.com/extforge/extforge/internal/entrypoint"
)

// ReloadCommandName is the command id the dev reload key combo is
// registered under.
const ReloadCommandName = "extforge:reload-extension"

const reloadCommandDescription = "Reload the extension during development"

// maxSuggestedCommands is the browser limit on commands with suggested
// keys; the reload command is skipped when the manifest already
// declares this many.
const maxSuggestedCommands = 4

// fallbackVersion is used when no extension version can be resolved.
const fallbackVersion = "0.0.0"

// Default CSPs applied under serve when the manifest declares none.
const (
	defaultCSPMV2 = "script-src 'self'; object-src 'self';"
	defaultCSPMV3 = "script-src 'self' 'wasm-unsafe-eval'; object-src 'self';"
)

// PackageInfo is the project's package metadata, the default source of
// the manifest's name, description, short_name and version fields.
type PackageInfo struct {
	Name        string
	Description string
	Version     string
	ShortName   string
}

// Warning is a non-fatal issue collected during generation. The caller
// decides whether and how to surface warnings.
type Warning struct {
	Message string
}

func (w Warning) String() string {
	return w.Message
}

type generator struct {
	cfg      *config.Config
	pkg      *PackageInfo
	output   *build.Output
	warnings []Warning
}

// Generate assembles the manifest for one build from resolved
// entrypoints, bundler output metadata and configuration. All inputs
// are read-only; the returned Manifest is built fresh and owned by the
// caller. pkg may be nil when no package metadata exists.
func Generate(cfg *config.Config, pkg *PackageInfo, eps []*entrypoint.Entrypoint, output *build.Output) (Manifest, []Warning, error) {
	g := &generator{cfg: cfg, pkg: pkg, output: output}
	m, err := g.assemble(eps)
	if err != nil {
		return nil, g.warnings, err
	}
	return m, g.warnings, nil
}

func (g *generator) warnf(format string, args ...any) {
	g.warnings = append(g.warnings, Warning{Message: fmt.Sprintf(format, args...)})
}

func (g *generator) assemble(eps []*entrypoint.Entrypoint) (Manifest, error) {
	versionName := g.resolveVersionName()
	version, err := g.resolveVersion(versionName)
	if err != nil {
		return nil, err
	}

	m := g.baseManifest(version)

	if len(g.cfg.Manifest) > 0 {
		m = Manifest(mergeObjects(m, g.cfg.Manifest))
	}

	g.applyReloadCommand(m)

	// The final version fields always reflect the resolved values, even
	// when the user merge touched them. Firefox rejects version_name.
	m["version"] = version
	if !g.cfg.IsFirefox() && versionName != version {
		m["version_name"] = versionName
	} else {
		delete(m, "version_name")
	}

	if err := g.applyEntrypoints(m, eps); err != nil {
		return nil, err
	}

	if g.cfg.IsServe() {
		g.applyDevMode(m)
	}

	if transform := g.cfg.TransformManifest; transform != nil {
		// The hook mutates a full clone; the draft replaces the manifest
		// only once the hook returns, so it cannot partially apply.
		draft := m.Clone()
		transform(map[string]any(draft))
		m = draft
	}

	if err := validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// resolveVersionName picks the display version: manifest overrides
// first, then package metadata, then "0.0.0" with a warning.
func (g *generator) resolveVersionName() string {
	if v := stringValue(g.cfg.Manifest["version_name"]); v != "" {
		return v
	}
	if v := stringValue(g.cfg.Manifest["version"]); v != "" {
		return v
	}
	if g.pkg != nil && g.pkg.Version != "" {
		return g.pkg.Version
	}
	g.warnf("Extension version not found, defaulting to %q; set pkg.version in your project config or version in the manifest overrides", fallbackVersion)
	return fallbackVersion
}

// resolveVersion picks the numeric version: a manifest override is used
// verbatim, otherwise the version name is simplified to the
// browser-accepted form.
func (g *generator) resolveVersion(versionName string) (string, error) {
	if v := stringValue(g.cfg.Manifest["version"]); v != "" {
		return v, nil
	}
	version, err := SimplifyVersion(versionName)
	if err != nil {
		return "", fmt.Errorf("failed to resolve extension version (from pkg.version or the manifest overrides): %w", err)
	}
	return version, nil
}

func (g *generator) baseManifest(version string) Manifest {
	m := Manifest{
		"manifest_version": g.cfg.ManifestVersion,
		"version":          version,
	}
	if g.pkg != nil {
		if g.pkg.Name != "" {
			m["name"] = g.pkg.Name
		}
		if g.pkg.Description != "" {
			m["description"] = g.pkg.Description
		}
		if g.pkg.ShortName != "" {
			m["short_name"] = g.pkg.ShortName
		}
	}
	if icons := DiscoverIcons(g.output.PublicAssets); icons != nil {
		m["icons"] = icons
	}
	return m
}

// applyReloadCommand injects the dev reload key combo under serve.
// Browsers cap suggested keys at four commands, so a manifest already
// at the limit gets a warning instead.
func (g *generator) applyReloadCommand(m Manifest) {
	if !g.cfg.IsServe() || g.cfg.Dev.ReloadCommand == "" {
		return
	}
	commands, _ := asObject(m["commands"])
	if len(commands) >= maxSuggestedCommands {
		g.warnf("Manifest already declares %d commands, skipping dev reload command", len(commands))
		return
	}

	merged := cloneObject(commands)
	if merged == nil {
		merged = map[string]any{}
	}
	merged[ReloadCommandName] = map[string]any{
		"description": reloadCommandDescription,
		"suggested_key": map[string]any{
			"default": g.cfg.Dev.ReloadCommand,
		},
	}
	m["commands"] = merged
}

// applyDevMode grants what the dev runtime needs for live reload and
// dynamic content-script registration.
func (g *generator) applyDevMode(m Manifest) {
	g.applyDevCSP(m)
	m.AddPermission("tabs")
	if g.cfg.MV3() {
		m.AddPermission("scripting")
	}
}

func (g *generator) applyDevCSP(m Manifest) {
	hostname := config.DefaultServerHostname
	if g.cfg.Server != nil && g.cfg.Server.Hostname != "" {
		hostname = g.cfg.Server.Hostname
	}
	allowedSource := "http://" + hostname + ":*"

	if g.cfg.MV3() {
		obj, _ := asObject(m["content_security_policy"])
		obj = cloneObject(obj)
		if obj == nil {
			obj = map[string]any{}
		}
		raw := stringValue(obj["extension_pages"])
		if raw == "" {
			raw = defaultCSPMV3
		}
		obj["extension_pages"] = csp.Parse(raw).Add("script-src", allowedSource).String()
		m["content_security_policy"] = obj
		return
	}

	raw := stringValue(m["content_security_policy"])
	if raw == "" {
		raw = defaultCSPMV2
	}
	m["content_security_policy"] = csp.Parse(raw).Add("script-src", allowedSource).String()
}

func validate(m Manifest) error {
	if stringValue(m["name"]) == "" {
		return ErrMissingName
	}
	if stringValue(m["version"]) == "" {
		return ErrMissingVersion
	}
	return nil
}

func stringValue(value any) string {
	s, _ := value.(string)
	return s
}
