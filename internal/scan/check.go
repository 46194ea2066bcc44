package scan

import (
	"errors"
	"fmt"

	"github.com/flightglobe/threeshim/internal/stubs"
	"github.com/flightglobe/threeshim/pkg/resolve"
)

// CheckCapabilities verifies the stub export contract against scanned
// imports: every named binding any module takes from a stubbed specifier
// must exist in that stub's export set. Violations are joined so one run
// reports every drifted name, and each wraps resolve.ErrMissingExport.
func CheckCapabilities(imports []Import, subsystems []stubs.Subsystem) error {
	sets := make(map[string]map[string]bool, len(subsystems))
	for _, s := range subsystems {
		sets[s.Specifier] = s.ExportSet()
	}

	var violations []error
	for _, imp := range imports {
		set, stubbed := sets[imp.Specifier]
		if !stubbed {
			continue
		}
		for _, name := range imp.Names {
			if !set[name] {
				violations = append(violations, fmt.Errorf(
					"%w: %s imports %q from %s",
					resolve.ErrMissingExport, imp.File, name, imp.Specifier))
			}
		}
	}
	return errors.Join(violations...)
}
