package osm2cs2

// TransitLineType is game transit line class
type TransitLineType string

const (
	TRANSIT_BUS        = TransitLineType("BusLine")
	TRANSIT_TRAM       = TransitLineType("TramLine")
	TRANSIT_TRAIN      = TransitLineType("TrainLine")
	TRANSIT_SUBWAY     = TransitLineType("SubwayLine")
	TRANSIT_METRO      = TransitLineType("MetroLine")
	defaultTransitType = TRANSIT_BUS
)

var transitTypes = map[string]TransitLineType{
	"bus":        TRANSIT_BUS,
	"tram":       TRANSIT_TRAM,
	"train":      TRANSIT_TRAIN,
	"subway":     TRANSIT_SUBWAY,
	"light_rail": TRANSIT_METRO,
}

// TransitTypeFor maps OSM `route` value. Unknown values give BusLine.
func TransitTypeFor(route string) TransitLineType {
	if found, ok := transitTypes[route]; ok {
		return found
	}
	return defaultTransitType
}
