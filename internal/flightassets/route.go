package flightassets

import (
	"strconv"
	"strings"
)

// Waypoint is one lat/lon pair along a flight trajectory, in degrees.
// South and west are negative.
type Waypoint struct {
	Lat float64
	Lon float64
}

// ParseRoute converts a route string of space-separated waypoints like
// "49.97N/110.935W 50.12N/111.2W" into coordinates. Malformed waypoints are
// skipped; an empty route yields no waypoints.
func ParseRoute(route string) []Waypoint {
	route = strings.TrimSpace(route)
	if route == "" {
		return nil
	}

	var waypoints []Waypoint
	for part := range strings.FieldsSeq(route) {
		latStr, lonStr, ok := strings.Cut(part, "/")
		if !ok {
			continue
		}
		lat, ok := parseCoord(latStr, 'S')
		if !ok {
			continue
		}
		lon, ok := parseCoord(lonStr, 'W')
		if !ok {
			continue
		}
		waypoints = append(waypoints, Waypoint{Lat: lat, Lon: lon})
	}
	return waypoints
}

// positiveDir pairs each negative direction letter with its opposite.
var positiveDir = map[byte]byte{'S': 'N', 'W': 'E'}

// parseCoord parses "49.97N"-style values; the negative rune flips the sign
// ('S' for latitudes, 'W' for longitudes). A value without a direction
// letter is malformed.
func parseCoord(s string, negative byte) (float64, bool) {
	if len(s) < 2 {
		return 0, false
	}
	dir := s[len(s)-1]
	if dir >= 'a' && dir <= 'z' {
		dir -= 'a' - 'A'
	}
	if dir != negative && dir != positiveDir[negative] {
		return 0, false
	}
	val, err := strconv.ParseFloat(s[:len(s)-1], 64)
	if err != nil {
		return 0, false
	}
	if dir == negative {
		return -val, true
	}
	return val, true
}
