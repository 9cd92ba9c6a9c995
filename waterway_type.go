package osm2cs2

// WaterwayType is game water feature class
type WaterwayType string

const (
	WATERWAY_RIVER      = WaterwayType("River")
	WATERWAY_CANAL      = WaterwayType("Canal")
	WATERWAY_STREAM     = WaterwayType("Stream")
	WATERWAY_DRAIN      = WaterwayType("Drain")
	WATERWAY_COASTLINE  = WaterwayType("Coastline")
	WATERWAY_LAKE       = WaterwayType("Lake")
	WATERWAY_RESERVOIR  = WaterwayType("Reservoir")
	defaultWaterwayType = WATERWAY_STREAM
)

var waterwayTypes = map[string]WaterwayType{
	"river":     WATERWAY_RIVER,
	"canal":     WATERWAY_CANAL,
	"stream":    WATERWAY_STREAM,
	"drain":     WATERWAY_DRAIN,
	"ditch":     WATERWAY_DRAIN,
	"coastline": WATERWAY_COASTLINE,
	// natural=water areas
	"water":     WATERWAY_LAKE,
	"reservoir": WATERWAY_RESERVOIR,
}

// WaterwayTypeFor maps upstream water type. Unknown values give Stream.
func WaterwayTypeFor(kind string) WaterwayType {
	if found, ok := waterwayTypes[kind]; ok {
		return found
	}
	return defaultWaterwayType
}
