// Config command: construct and emit the resolver-override configuration.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flightglobe/threeshim/internal/bundler"
	"github.com/flightglobe/threeshim/internal/report"
)

var (
	flagServer  bool
	flagRecord  bool
	flagOutput  string
	flagStubDir string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Build the resolver-override configuration and emit it as JSON",
	Long: `Builds the complete resolver-override configuration for the browser
bundle: the alias table converging every graphics-library specifier on the
canonical installed copy, the path-pattern replacement rules redirecting the
unused subsystems to stubs, and the disabled Node builtin fallbacks.

With --server the configuration is built for the server bundle, which by
design carries no overrides and emits an empty document.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := projectRoot()
		if err != nil {
			return err
		}

		opts := bundlerOptions()
		if flagStubDir != "" {
			opts.StubDir = flagStubDir
		}

		client := !flagServer
		resolverCfg, err := bundler.BuildConfig(root, client, opts)
		if err != nil {
			return err
		}
		logger.Debug("configuration assembled",
			"aliases", len(resolverCfg.Aliases),
			"replacements", len(resolverCfg.Replacements),
			"client", client)

		if flagRecord {
			dataDir, err := reportDataDir()
			if err != nil {
				return err
			}
			store, err := report.Open(dataDir)
			if err != nil {
				return err
			}
			defer store.Close()

			build, err := store.Record(root, client, resolverCfg)
			if err != nil {
				return err
			}
			logger.Info("build recorded", "build_id", build.BuildID)
		}

		data, err := bundler.EmitJSON(resolverCfg)
		if err != nil {
			return err
		}
		if flagOutput != "" {
			return os.WriteFile(flagOutput, data, 0o644)
		}
		fmt.Print(string(data))
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&flagServer, "server", false, "build for the server bundle (no overrides)")
	configCmd.Flags().BoolVar(&flagRecord, "record", false, "record the resolution decisions in the report store")
	configCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write the document to a file instead of stdout")
	configCmd.Flags().StringVar(&flagStubDir, "stub-dir", "", "directory receiving the stub modules")
}
