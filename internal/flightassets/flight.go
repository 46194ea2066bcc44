// Package flightassets loads and validates the flight-trajectory JSON
// assets the globe application ships, so malformed data fails the build
// instead of rendering an empty globe.
package flightassets

import (
	"encoding/json"
	"fmt"
	"os"
)

// Flight is one record of the flight asset file.
type Flight struct {
	ACID             string  // callsign, required
	PlaneType        string
	Route            string  // space-separated waypoints, "49.97N/110.935W ..."
	Altitude         int     // feet
	DepartureAirport string
	ArrivalAirport   string
	DepartureTime    int64   // Unix seconds, UTC
	AircraftSpeed    float64 // knots
	Passengers       int
	IsCargo          bool
}

// flightRecord mirrors the asset file's key spelling.
type flightRecord struct {
	ACID             string          `json:"ACID"`
	PlaneType        string          `json:"Plane type"`
	Route            string          `json:"route"`
	Altitude         json.Number     `json:"altitude"`
	DepartureAirport string          `json:"departure airport"`
	ArrivalAirport   string          `json:"arrival airport"`
	DepartureTime    json.Number     `json:"departure time"`
	AircraftSpeed    json.Number     `json:"aircraft speed"`
	Passengers       json.Number     `json:"passengers"`
	IsCargo          bool            `json:"is_cargo"`
}

// LoadFlights reads a flight asset file. A file that is not a JSON list is a
// hard error; individual records are decoded independently, so a record
// missing the callsign or carrying mistyped fields is skipped, not fatal.
// The skipped count lets callers report data quality without failing.
func LoadFlights(path string) (flights []Flight, skipped int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("reading flight assets: %w", err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, 0, fmt.Errorf("parsing %s: expected a JSON list of flights: %w", path, err)
	}

	for _, raw := range records {
		var rec flightRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			skipped++
			continue
		}
		flight, ok := rec.toFlight()
		if !ok {
			skipped++
			continue
		}
		flights = append(flights, flight)
	}
	return flights, skipped, nil
}

// toFlight converts a decoded record, rejecting records without a callsign
// or with numeric fields that do not parse.
func (rec flightRecord) toFlight() (Flight, bool) {
	if rec.ACID == "" {
		return Flight{}, false
	}

	altitude, ok := numberOr(rec.Altitude, 0)
	if !ok {
		return Flight{}, false
	}
	departureTime, ok := numberOr(rec.DepartureTime, 0)
	if !ok {
		return Flight{}, false
	}
	speed, ok := numberOr(rec.AircraftSpeed, 0)
	if !ok {
		return Flight{}, false
	}
	passengers, ok := numberOr(rec.Passengers, 0)
	if !ok {
		return Flight{}, false
	}

	return Flight{
		ACID:             rec.ACID,
		PlaneType:        orUnknown(rec.PlaneType),
		Route:            rec.Route,
		Altitude:         int(altitude),
		DepartureAirport: orUnknown(rec.DepartureAirport),
		ArrivalAirport:   orUnknown(rec.ArrivalAirport),
		DepartureTime:    int64(departureTime),
		AircraftSpeed:    speed,
		Passengers:       int(passengers),
		IsCargo:          rec.IsCargo,
	}, true
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// numberOr returns def for an absent field; a present but unparseable value
// is a malformed record.
func numberOr(n json.Number, def float64) (float64, bool) {
	if n == "" {
		return def, true
	}
	v, err := n.Float64()
	if err != nil {
		return 0, false
	}
	return v, true
}
