package osm2cs2

// RailwayType is game railway class
type RailwayType string

const (
	RAILWAY_TRAIN      = RailwayType("Train")
	RAILWAY_METRO      = RailwayType("Metro")
	RAILWAY_SUBWAY     = RailwayType("Subway")
	RAILWAY_TRAM       = RailwayType("Tram")
	defaultRailwayType = RAILWAY_TRAIN
)

var railwayTypes = map[string]RailwayType{
	"rail":       RAILWAY_TRAIN,
	"light_rail": RAILWAY_METRO,
	"subway":     RAILWAY_SUBWAY,
	"tram":       RAILWAY_TRAM,
}

// RailwayTypeFor maps OSM `railway` value. Unknown values give Train.
func RailwayTypeFor(railway string) RailwayType {
	if found, ok := railwayTypes[railway]; ok {
		return found
	}
	return defaultRailwayType
}
