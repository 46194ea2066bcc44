// Config loading for the threeshim CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/flightglobe/threeshim/internal/bundler"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyProjectRoot    = "project_root"
	cfgKeyNestedPackages = "nested_packages"
	cfgKeyStubDir        = "stub_dir"
	cfgKeyFallbacks      = "disabled_fallbacks"
	cfgKeyReportDataDir  = "report.data_dir"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# threeshim configuration

# Web application root containing node_modules (optional; overridable by
# --project-root flag)
# project_root:

# Downstream packages that bundle a private copy of the graphics library.
# Packages discovered to physically carry one are aliased as well.
nested_packages:
  - globe.gl
  - three-globe

# Directory receiving the materialized stub modules (default:
# <project_root>/.threeshim)
# stub_dir:

# Node builtins resolved to no implementation in the browser bundle.
disabled_fallbacks:
  - fs
  - net
  - tls

# Resolution report store directory (optional; overridable by --data-dir)
# report:
#   data_dir:
`

// cliConfig carries the config.yaml values subcommands consume.
type cliConfig struct {
	ProjectRoot       string
	NestedPackages    []string
	StubDir           string
	DisabledFallbacks []string
	ReportDataDir     string
}

// loadConfig reads config.yaml from the resolved config directory using
// Viper, creating the directory and a default file on first run. A missing
// config.yaml is not an error.
func loadConfig(configDir string) (cliConfig, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return cliConfig{}, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return cliConfig{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyNestedPackages, bundler.DefaultNestedPackages)
	v.SetDefault(cfgKeyFallbacks, bundler.DefaultDisabledFallbacks)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return cliConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	return cliConfig{
		ProjectRoot:       v.GetString(cfgKeyProjectRoot),
		NestedPackages:    v.GetStringSlice(cfgKeyNestedPackages),
		StubDir:           v.GetString(cfgKeyStubDir),
		DisabledFallbacks: v.GetStringSlice(cfgKeyFallbacks),
		ReportDataDir:     v.GetString(cfgKeyReportDataDir),
	}, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// bundlerOptions assembles the construction options from loaded config.
func bundlerOptions() bundler.Options {
	return bundler.Options{
		NestedPackages:    cfg.NestedPackages,
		StubDir:           cfg.StubDir,
		DisabledFallbacks: cfg.DisabledFallbacks,
	}
}
