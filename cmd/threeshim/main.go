// Package main provides the threeshim CLI: build-time module-resolution
// overrides for the flight-globe web application.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/flightglobe/threeshim/pkg/resolve"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode classifies an execution failure: usage mistakes, configuration
// errors, and contract violations exit exitUserError; everything else (I/O,
// store failures) exits exitSysError.
func exitCode(err error) int {
	if !parsed {
		return exitUserError
	}
	if resolve.IsConfigError(err) || errors.Is(err, errConstraintViolations) {
		return exitUserError
	}
	return exitSysError
}
