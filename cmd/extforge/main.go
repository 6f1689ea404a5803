package main

import (
	"fmt"
	"os"

	"github.com/extforge/extforge/internal/build"
	"github.com/extforge/extforge/internal/config"
	"github.com/extforge/extforge/internal/entrypoint"
	"github.com/extforge/extforge/internal/manifest"
	"github.com/extforge/extforge/internal/utils"
	"github.com/extforge/extforge/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	log     *utils.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "extforge",
	Short: "Generate browser extension manifests from build artifacts",
	Long: `Extforge turns a project's resolved build artifacts (compiled
entrypoints, public assets, bundler metadata) into a schema-correct
manifest.json for the target browser and manifest version.

Bundling itself is out of scope: extforge consumes the metadata file the
bundler emits and the entrypoint declarations from the project config.`,
	Version: version.Short(),
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./extforge.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	generateCmd.Flags().StringP("browser", "b", config.BrowserChrome, "Target browser (chrome, firefox, edge, safari)")
	generateCmd.Flags().Int("manifest-version", config.DefaultManifestVersion, "Manifest schema version (2 or 3)")
	generateCmd.Flags().StringP("out-dir", "o", config.DefaultOutDir, "Output directory")
	generateCmd.Flags().String("mode", config.ModeProduction, "Build mode (production or development)")
	generateCmd.Flags().String("command", config.CommandBuild, "Build command (build or serve)")
	generateCmd.Flags().String("build-output", config.DefaultBuildOutputMetadata, "Bundler build metadata file")

	// Bind flags to viper
	_ = viper.BindPFlag("browser", generateCmd.Flags().Lookup("browser"))
	_ = viper.BindPFlag("manifest_version", generateCmd.Flags().Lookup("manifest-version"))
	_ = viper.BindPFlag("out_dir", generateCmd.Flags().Lookup("out-dir"))
	_ = viper.BindPFlag("mode", generateCmd.Flags().Lookup("mode"))
	_ = viper.BindPFlag("command", generateCmd.Flags().Lookup("command"))
	_ = viper.BindPFlag("build_output.metadata", generateCmd.Flags().Lookup("build-output"))

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Assemble and write manifest.json",
	RunE:  runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logLevel := "info"
	if verbose {
		logLevel = "debug"
	}
	log = utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  "pretty",
		Verbose: verbose,
	}).WithComponent("generate")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log = log.WithBrowser(cfg.Browser)

	eps, err := parseEntrypoints(cfg)
	if err != nil {
		return err
	}

	output, err := build.Load(cfg.BuildOutput.Metadata)
	if err != nil {
		return err
	}

	pkg := packageInfo(cfg)
	m, warnings, err := manifest.Generate(cfg, pkg, eps, output)
	for _, warning := range warnings {
		log.Warn().Msg(warning.Message)
	}
	if err != nil {
		return err
	}

	writer := manifest.NewWriter(manifest.WriterOptions{
		OutDir: cfg.OutDir,
		Minify: cfg.Mode == config.ModeProduction,
	})
	path, err := writer.Write(m, output)
	if err != nil {
		return err
	}

	log.Info().
		Str("path", path).
		Int("manifest_version", cfg.ManifestVersion).
		Int("entrypoints", len(eps)).
		Msg("Manifest generated")
	return nil
}

// parseEntrypoints turns the raw declarations from the project file
// into typed entrypoints.
func parseEntrypoints(cfg *config.Config) ([]*entrypoint.Entrypoint, error) {
	eps := make([]*entrypoint.Entrypoint, 0, len(cfg.Entrypoints))
	for _, decl := range cfg.Entrypoints {
		ep, err := entrypoint.Parse(decl.Name, entrypoint.Type(decl.Type), decl.Options)
		if err != nil {
			return nil, err
		}
		eps = append(eps, ep)
	}
	return eps, nil
}

// packageInfo adapts the config's pkg section into package metadata,
// or nil when none was declared.
func packageInfo(cfg *config.Config) *manifest.PackageInfo {
	pkg := cfg.Pkg
	if pkg.Name == "" && pkg.Description == "" && pkg.Version == "" && pkg.ShortName == "" {
		return nil
	}
	return &manifest.PackageInfo{
		Name:        pkg.Name,
		Description: pkg.Description,
		Version:     pkg.Version,
		ShortName:   pkg.ShortName,
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}
