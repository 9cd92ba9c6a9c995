package osm2cs2

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/paulmach/osm"
)

var (
	chargeRegExp = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*([A-Za-z]{3})?`)
)

var (
	onewayTrue = map[string]struct{}{
		"yes":  {},
		"1":    {},
		"true": {},
		"-1":   {},
	}
	railwayTypesAccepted = map[string]struct{}{
		"rail":       {},
		"light_rail": {},
		"subway":     {},
		"tram":       {},
	}
	waterwayLinear = map[string]struct{}{
		"river":  {},
		"stream": {},
		"canal":  {},
		"drain":  {},
		"ditch":  {},
	}
	publicTransportStops = map[string]struct{}{
		"stop_position": {},
		"platform":      {},
		"station":       {},
	}
	railwayStops = map[string]struct{}{
		"station":   {},
		"halt":      {},
		"tram_stop": {},
	}
	intercityServices = map[string]struct{}{
		"long_distance": {},
		"regional":      {},
	}
)

func isOneway(value string) bool {
	_, ok := onewayTrue[value]
	return ok
}

// parseLanes returns `lanes` as integer or the default one
func parseLanes(tags osm.Tags) int {
	lanes, err := strconv.Atoi(strings.TrimSpace(tags.Find("lanes")))
	if err != nil || lanes <= 0 {
		return defaultRoadLanes
	}
	return lanes
}

// parseWidth reads leading number of `width` or `est_width` ("12 m", "12.5")
func parseWidth(tags osm.Tags) *float64 {
	raw := tags.Find("width")
	if raw == "" {
		raw = tags.Find("est_width")
	}
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil
	}
	width, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return nil
	}
	return &width
}

// negativeLayer reports `layer` < 0
func negativeLayer(tags osm.Tags) bool {
	layer, err := strconv.Atoi(strings.TrimSpace(tags.Find("layer")))
	return err == nil && layer < 0
}

func isUndergroundRailway(tags osm.Tags) bool {
	return tags.Find("tunnel") == "yes" || tags.Find("location") == "underground" || negativeLayer(tags)
}

func isUndergroundStop(tags osm.Tags) bool {
	return tags.Find("location") == "underground" || negativeLayer(tags) || tags.Find("station") == "subway"
}

// classifyWaterway returns upstream water type and whether it is an area
func classifyWaterway(tags osm.Tags) (string, bool, bool) {
	ww := tags.Find("waterway")
	if _, ok := waterwayLinear[ww]; ok {
		return ww, false, true
	}
	if tags.Find("natural") == "coastline" {
		return "coastline", false, true
	}
	if tags.Find("natural") == "water" {
		kind := tags.Find("water")
		if kind == "" {
			kind = "water"
		}
		return kind, true, true
	}
	if tags.Find("landuse") == "reservoir" {
		return "reservoir", true, true
	}
	return "", false, false
}

func isStop(tags osm.Tags) bool {
	if _, ok := publicTransportStops[tags.Find("public_transport")]; ok {
		return true
	}
	if tags.Find("highway") == "bus_stop" {
		return true
	}
	_, ok := railwayStops[tags.Find("railway")]
	return ok
}

func stopKind(tags osm.Tags) string {
	if tags.Find("highway") == "bus_stop" {
		return "bus"
	}
	if tags.HasTag("railway") {
		return "train"
	}
	if pt := tags.Find("public_transport"); pt != "" {
		return pt
	}
	return "unknown"
}

// isStopRole accepts empty, "stop*" and "platform*" member roles
func isStopRole(role string) bool {
	return role == "" || strings.HasPrefix(role, "stop") || strings.HasPrefix(role, "platform")
}

// parseCharge reads `charge` like "2.50 EUR" or "1,80". Nil when there is no number.
func parseCharge(charge string) *RawFare {
	match := chargeRegExp.FindStringSubmatch(charge)
	if match == nil {
		return nil
	}
	value, err := strconv.ParseFloat(strings.Replace(match[1], ",", ".", 1), 64)
	if err != nil {
		return nil
	}
	return &RawFare{
		BaseFare: &value,
		Currency: strings.ToUpper(match[2]),
		Source:   FARE_SOURCE_OSM,
	}
}
