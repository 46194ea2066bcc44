package flightassets

import "fmt"

// Aircraft categories.
const (
	CategoryWideBody   = "Wide-body"
	CategoryNarrowBody = "Narrow-body"
	CategoryRegional   = "Regional"
	CategoryCargo      = "Cargo"
	CategoryUnknown    = "Unknown"
)

// aircraftCategories maps plane types to their general category.
var aircraftCategories = map[string][]string{
	CategoryWideBody:   {"Boeing 787-9", "Boeing 777-300ER", "Airbus A330"},
	CategoryNarrowBody: {"Boeing 737-800", "Boeing 737 MAX 8", "Airbus A320", "Airbus A321", "Airbus A220-300"},
	CategoryRegional:   {"Dash 8-400", "Embraer E195-E2"},
	CategoryCargo:      {"Boeing 767-300F", "Boeing 757-200F", "Airbus A300-600F"},
}

// envelope is an inclusive min/max constraint.
type envelope struct {
	min, max float64
}

// altitudeRanges holds cruise altitude envelopes in feet per category.
var altitudeRanges = map[string]envelope{
	CategoryRegional:   {22000, 28000},
	CategoryNarrowBody: {28000, 39000},
	CategoryWideBody:   {31000, 43000},
	CategoryCargo:      {28000, 41000},
}

// speedConstraints holds speed envelopes in knots. Specific plane types take
// precedence over category-level entries.
var speedConstraints = map[string]envelope{
	"Dash 8-400":       {310, 410},
	"Embraer E195-E2":  {370, 500},
	"Airbus A220-300":  {370, 500},
	CategoryNarrowBody: {415, 505},
	CategoryWideBody:   {430, 505},
	CategoryCargo:      {410, 505},
}

// Issue is one operational-constraint violation for a flight.
type Issue struct {
	Flight string `json:"flight"`
	Detail string `json:"issue"`
}

// Category returns the general category for a plane type, or
// CategoryUnknown when the type is not in the reference table.
func Category(planeType string) string {
	for category, types := range aircraftCategories {
		for _, t := range types {
			if t == planeType {
				return category
			}
		}
	}
	return CategoryUnknown
}

// Validate checks a flight against the altitude and speed envelopes for its
// aircraft category. Unknown categories pass unchecked: the reference table
// covers the fleet the asset files describe, and unlisted types carry no
// constraints to violate.
func Validate(f Flight) []Issue {
	var issues []Issue

	category := Category(f.PlaneType)

	if env, ok := altitudeRanges[category]; ok {
		alt := float64(f.Altitude)
		if alt < env.min || alt > env.max {
			issues = append(issues, Issue{
				Flight: f.ACID,
				Detail: fmt.Sprintf("Altitude %d ft out of allowed range (%.0f-%.0f) for %s aircraft",
					f.Altitude, env.min, env.max, category),
			})
		}
	}

	env, ok := speedConstraints[f.PlaneType]
	if !ok {
		env, ok = speedConstraints[category]
	}
	if ok && (f.AircraftSpeed < env.min || f.AircraftSpeed > env.max) {
		issues = append(issues, Issue{
			Flight: f.ACID,
			Detail: fmt.Sprintf("Speed %g knots out of allowed range (%.0f-%.0f) for %s",
				f.AircraftSpeed, env.min, env.max, f.PlaneType),
		})
	}

	return issues
}

// ValidateAll validates every flight and returns the combined issue list.
func ValidateAll(flights []Flight) []Issue {
	var issues []Issue
	for _, f := range flights {
		issues = append(issues, Validate(f)...)
	}
	return issues
}
