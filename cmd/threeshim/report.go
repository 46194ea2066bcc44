// Report commands: list and inspect recorded build resolutions.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/flightglobe/threeshim/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Inspect recorded build resolution decisions",
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded builds, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openReportStore()
		if err != nil {
			return err
		}
		defer store.Close()

		builds, err := store.List()
		if err != nil {
			return err
		}
		if len(builds) == 0 {
			fmt.Println("no builds recorded")
			return nil
		}
		for _, b := range builds {
			bundle := "server"
			if b.Client {
				bundle = "client"
			}
			fmt.Printf("%s  %s  %s  %s\n",
				b.BuildID, b.CreatedAt.Format(time.RFC3339), bundle, b.ProjectRoot)
		}
		return nil
	},
}

var reportShowCmd = &cobra.Command{
	Use:   "show <build-id>",
	Short: "Show the resolution decisions of one recorded build",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openReportStore()
		if err != nil {
			return err
		}
		defer store.Close()

		decisions, err := store.Decisions(args[0])
		if err != nil {
			return err
		}
		if len(decisions) == 0 {
			return fmt.Errorf("no decisions recorded for build %s", args[0])
		}
		for _, d := range decisions {
			if d.Path == "" {
				fmt.Printf("%-40s %s\n", d.Specifier, d.Kind)
				continue
			}
			fmt.Printf("%-40s %s -> %s\n", d.Specifier, d.Kind, d.Path)
		}
		return nil
	},
}

func openReportStore() (*report.Store, error) {
	dataDir, err := reportDataDir()
	if err != nil {
		return nil, err
	}
	return report.Open(dataDir)
}

func init() {
	reportCmd.AddCommand(reportListCmd)
	reportCmd.AddCommand(reportShowCmd)
}
