// Version command for the threeshim CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridable at link time.
var version = "0.2.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the threeshim version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("threeshim", version)
	},
}
