// Root command for the threeshim CLI.
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/flightglobe/threeshim/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir   string
	flagProjectRoot string
	flagDataDir     string
	flagVerbose     bool
)

// cfg holds values loaded from config.yaml, set by PersistentPreRunE so all
// subcommands can use them.
var cfg cliConfig

// parsed flips once flag and argument parsing succeeds; an Execute error
// before that is a usage error.
var parsed bool

// logger writes structured diagnostics to stderr; library packages return
// errors and never log.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
})

var rootCmd = &cobra.Command{
	Use:   "threeshim",
	Short: "Resolver overrides and compatibility stubs for the globe app's graphics stack",
	Long: `threeshim owns the build-time module-resolution layer of the flight-globe
web application. It forces every consumer of the 3D graphics library onto
one canonical installed copy, replaces the unused GPU-compute and
shading-node subsystems with inert stubs, and verifies the stub export
contract against what the installed globe packages actually import.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		parsed = true
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}

		configDir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return err
		}
		cfg, err = loadConfig(configDir)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagProjectRoot, "project-root", "", "web application root containing node_modules (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "report store directory (default: $(CWD)/.threeshim-reports)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(stubsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(assetsCmd)
}

// projectRoot returns the web application root following the precedence
// chain: --project-root flag > config.yaml project_root > CWD.
func projectRoot() (string, error) {
	if flagProjectRoot != "" {
		return flagProjectRoot, nil
	}
	if cfg.ProjectRoot != "" {
		return cfg.ProjectRoot, nil
	}
	return os.Getwd()
}

// reportDataDir returns the report store directory following the precedence
// chain: --data-dir flag > config.yaml report.data_dir > env > CWD default.
func reportDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, cfg.ReportDataDir)
}
