package config

// Default values
const (
	DefaultManifestVersion = 3
	DefaultOutDir          = "dist"

	DefaultServerHostname = "localhost"
	DefaultServerPort     = 3000

	// DefaultReloadCommand is the key combo bound to the dev reload
	// command injected under serve.
	DefaultReloadCommand = "Alt+R"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"

	// DefaultBuildOutputMetadata is where the bundler drops its build
	// metadata file.
	DefaultBuildOutputMetadata = ".extforge/build-output.json"
)

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Browser:         BrowserChrome,
		ManifestVersion: DefaultManifestVersion,
		Mode:            ModeProduction,
		Command:         CommandBuild,
		OutDir:          DefaultOutDir,
		Dev: DevConfig{
			ReloadCommand: DefaultReloadCommand,
		},
		BuildOutput: BuildOutputConfig{
			Metadata: DefaultBuildOutputMetadata,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
