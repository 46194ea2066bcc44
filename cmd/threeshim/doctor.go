// Doctor command: diagnose the project's library install state.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flightglobe/threeshim/internal/bundler"
	"github.com/flightglobe/threeshim/internal/nodemods"
	"github.com/flightglobe/threeshim/internal/scan"
	"github.com/flightglobe/threeshim/internal/stubs"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the graphics-library install and stub contract state",
	Long: `Reports the canonical library copy, every nested private copy that
would duplicate it in the bundle, which installed modules pull in the
stubbed subsystems, and whether the stub export contract holds.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := projectRoot()
		if err != nil {
			return err
		}

		lib, err := nodemods.LocateCanonical(root)
		if err != nil {
			return err
		}
		fmt.Printf("canonical copy: %s (v%s)\n", lib.Path, lib.Version)

		copies, err := nodemods.NestedCopies(root, nil)
		if err != nil {
			return err
		}
		if len(copies) == 0 {
			fmt.Println("nested copies: none")
		}
		for _, c := range copies {
			fmt.Printf("nested copy: %s (v%s) bundled by %s\n", c.Path, c.Version, c.Host)
		}

		hosts, err := bundler.NestedHosts(root, cfg.NestedPackages)
		if err != nil {
			return err
		}
		imports, err := scan.Packages(root, hosts)
		if err != nil {
			return err
		}
		graph, err := scan.BuildGraph(imports)
		if err != nil {
			return err
		}
		for _, s := range stubs.Subsystems() {
			consumers, err := graph.Consumers(s.Specifier)
			if err != nil {
				return err
			}
			if len(consumers) == 0 {
				fmt.Printf("%s: no consumers\n", s.Specifier)
				continue
			}
			for _, file := range consumers {
				fmt.Printf("%s: imported by %s\n", s.Specifier, file)
			}
		}

		if err := scan.CheckCapabilities(imports, stubs.Subsystems()); err != nil {
			return err
		}
		fmt.Println("stub export contract satisfied")
		return nil
	},
}
