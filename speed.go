package osm2cs2

import (
	"strconv"
	"strings"
)

const (
	// DefaultSpeedLimit is used when `maxspeed` is missing or unreadable (km/h)
	DefaultSpeedLimit = 50
	mphToKmh          = 1.60934
)

// ParseSpeedLimit reads OSM `maxspeed` value into km/h.
//
// Leading integer is taken ("50", "50 km/h", "30 mph"). Miles per hour are
// converted and truncated. Anything else gives DefaultSpeedLimit.
func ParseSpeedLimit(maxSpeed string) int {
	fields := strings.Fields(maxSpeed)
	if len(fields) == 0 {
		return DefaultSpeedLimit
	}
	speed, err := strconv.Atoi(fields[0])
	if err != nil {
		return DefaultSpeedLimit
	}
	if strings.Contains(strings.ToLower(maxSpeed), "mph") {
		speed = int(float64(speed) * mphToKmh)
	}
	return speed
}
