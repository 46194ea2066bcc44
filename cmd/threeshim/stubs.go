// Stubs command: materialize the compatibility stub modules.
package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/flightglobe/threeshim/internal/bundler"
	"github.com/flightglobe/threeshim/internal/stubs"
)

var stubsCmd = &cobra.Command{
	Use:   "stubs [dir]",
	Short: "Write the compatibility stub modules to disk",
	Long: `Materializes the inert stub modules for the unused graphics-library
subsystems. The default directory is <project_root>/.threeshim; existing
files are overwritten so repeated runs converge.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.StubDir
		if len(args) == 1 {
			dir = args[0]
		}
		if dir == "" {
			root, err := projectRoot()
			if err != nil {
				return err
			}
			dir = filepath.Join(root, bundler.DefaultStubDirName)
		}

		paths, err := stubs.Write(dir)
		if err != nil {
			return err
		}

		specifiers := make([]string, 0, len(paths))
		for spec := range paths {
			specifiers = append(specifiers, spec)
		}
		sort.Strings(specifiers)
		for _, spec := range specifiers {
			fmt.Printf("%s -> %s\n", spec, paths[spec])
		}
		return nil
	},
}
