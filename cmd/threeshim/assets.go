// Assets commands: validate the flight data the globe app bundles.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flightglobe/threeshim/internal/flightassets"
)

// errConstraintViolations marks asset validation failures as correctable
// data problems rather than system errors.
var errConstraintViolations = errors.New("operational constraint violations")

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Validate the flight-trajectory data assets",
}

var assetsValidateCmd = &cobra.Command{
	Use:   "validate <flights.json>",
	Short: "Check flight records against operational constraints",
	Long: `Loads a flight asset file and checks every record against the altitude
and speed envelopes of its aircraft category. Records without a callsign are
skipped with a warning; constraint violations fail the command so bad data
does not reach the bundle.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flights, skipped, err := flightassets.LoadFlights(args[0])
		if err != nil {
			return err
		}
		if skipped > 0 {
			logger.Warn("records without a callsign skipped", "count", skipped)
		}

		issues := flightassets.ValidateAll(flights)
		for _, issue := range issues {
			logger.Error("constraint violation", "flight", issue.Flight, "issue", issue.Detail)
		}
		if len(issues) > 0 {
			return fmt.Errorf("%w: %d found", errConstraintViolations, len(issues))
		}

		fmt.Printf("%d flights valid\n", len(flights))
		return nil
	},
}

func init() {
	assetsCmd.AddCommand(assetsValidateCmd)
}
