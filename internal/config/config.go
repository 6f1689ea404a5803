package config

import (
	"fmt"
)

// Target browsers
const (
	BrowserChrome  = "chrome"
	BrowserFirefox = "firefox"
	BrowserEdge    = "edge"
	BrowserSafari  = "safari"
)

// Build modes
const (
	ModeProduction  = "production"
	ModeDevelopment = "development"
)

// Commands
const (
	CommandBuild = "build"
	CommandServe = "serve"
)

// Config is the fully resolved configuration a manifest generation run
// operates under. It is owned by the surrounding build system and
// read-only for the generation core.
type Config struct {
	Browser         string `mapstructure:"browser" yaml:"browser"`
	ManifestVersion int    `mapstructure:"manifest_version" yaml:"manifest_version"`
	Mode            string `mapstructure:"mode" yaml:"mode"`
	Command         string `mapstructure:"command" yaml:"command"`
	OutDir          string `mapstructure:"out_dir" yaml:"out_dir"`

	// Pkg is the package metadata the base manifest fields come from.
	Pkg PkgConfig `mapstructure:"pkg" yaml:"pkg"`

	// Manifest is the user-declared partial manifest, deep-merged over
	// the generated base. version and version_name overrides live here.
	Manifest map[string]any `mapstructure:"manifest" yaml:"manifest"`

	// TransformManifest is an optional hook applied to the fully
	// assembled manifest draft just before validation. Only settable
	// programmatically.
	TransformManifest func(map[string]any) `mapstructure:"-" yaml:"-"`

	// Server describes the dev server; present only under the serve
	// command.
	Server *ServerConfig `mapstructure:"server" yaml:"server,omitempty"`

	Dev         DevConfig         `mapstructure:"dev" yaml:"dev"`
	Entrypoints []EntrypointDecl  `mapstructure:"entrypoints" yaml:"entrypoints"`
	BuildOutput BuildOutputConfig `mapstructure:"build_output" yaml:"build_output"`
	Logging     LoggingConfig     `mapstructure:"logging" yaml:"logging"`
}

// PkgConfig carries the project's package metadata.
type PkgConfig struct {
	Name        string `mapstructure:"name" yaml:"name"`
	Description string `mapstructure:"description" yaml:"description"`
	Version     string `mapstructure:"version" yaml:"version"`
	ShortName   string `mapstructure:"short_name" yaml:"short_name"`
}

// ServerConfig describes the dev server the serve command runs against.
type ServerConfig struct {
	Hostname string `mapstructure:"hostname" yaml:"hostname"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Origin   string `mapstructure:"origin" yaml:"origin"`
}

// DevConfig contains development-only settings.
type DevConfig struct {
	// ReloadCommand is the key combo bound to the dev reload command.
	// Empty disables reload command injection.
	ReloadCommand string `mapstructure:"reload_command" yaml:"reload_command"`
}

// EntrypointDecl is a raw entrypoint declaration from the project file.
type EntrypointDecl struct {
	Name    string         `mapstructure:"name" yaml:"name"`
	Type    string         `mapstructure:"type" yaml:"type"`
	Options map[string]any `mapstructure:"options" yaml:"options"`
}

// BuildOutputConfig locates the bundler's build metadata.
type BuildOutputConfig struct {
	Metadata string `mapstructure:"metadata" yaml:"metadata"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration and applies fallbacks for values
// that have safe defaults.
func (c *Config) Validate() error {
	if c.Browser == "" {
		c.Browser = BrowserChrome
	}
	if c.ManifestVersion == 0 {
		c.ManifestVersion = DefaultManifestVersion
	}
	if c.ManifestVersion != 2 && c.ManifestVersion != 3 {
		return fmt.Errorf("%w: %d", ErrInvalidManifestVersion, c.ManifestVersion)
	}

	switch c.Mode {
	case "":
		c.Mode = ModeProduction
	case ModeProduction, ModeDevelopment:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, c.Mode)
	}

	switch c.Command {
	case "":
		c.Command = CommandBuild
	case CommandBuild, CommandServe:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidCommand, c.Command)
	}

	if c.OutDir == "" {
		c.OutDir = DefaultOutDir
	}
	if c.Command == CommandServe && c.Server == nil {
		c.Server = &ServerConfig{Hostname: DefaultServerHostname, Port: DefaultServerPort}
	}
	if c.Server != nil && c.Server.Hostname == "" {
		c.Server.Hostname = DefaultServerHostname
	}

	return nil
}

// IsFirefox reports whether the target browser is Firefox.
func (c *Config) IsFirefox() bool {
	return c.Browser == BrowserFirefox
}

// IsServe reports whether this run belongs to the serve command.
func (c *Config) IsServe() bool {
	return c.Command == CommandServe
}

// MV3 reports whether the target manifest schema version is 3.
func (c *Config) MV3() bool {
	return c.ManifestVersion == 3
}
