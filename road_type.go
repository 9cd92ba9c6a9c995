package osm2cs2

// HighwayType is OSM `highway` class accepted for roads
type HighwayType uint16

const (
	HIGHWAY_MOTORWAY = HighwayType(iota + 1)
	HIGHWAY_TRUNK
	HIGHWAY_PRIMARY
	HIGHWAY_SECONDARY
	HIGHWAY_TERTIARY
	HIGHWAY_RESIDENTIAL
	HIGHWAY_SERVICE
)

func getHighwayType(str string) HighwayType {
	if found, ok := highwaysTypes[str]; ok {
		return found
	}
	return 0
}

// RoadType is game road class
type RoadType string

const (
	ROAD_HIGHWAY     = RoadType("Highway")
	ROAD_LARGE       = RoadType("LargeRoad")
	ROAD_MEDIUM      = RoadType("MediumRoad")
	ROAD_SMALL       = RoadType("SmallRoad")
	ROAD_TINY        = RoadType("TinyRoad")
	defaultRoadType  = ROAD_SMALL
	defaultRoadLanes = 2
)

// RoadTypeFor maps OSM highway class to game road class. Unknown classes give SmallRoad.
func RoadTypeFor(highway string) RoadType {
	if found, ok := roadTypeByHighway[getHighwayType(highway)]; ok {
		return found
	}
	return defaultRoadType
}

// RoadPriority ranks highway classes for rendering. Unknown classes give 0.
func RoadPriority(highway string) int {
	return roadPriorityByHighway[getHighwayType(highway)]
}

var (
	highwaysTypes = map[string]HighwayType{
		"motorway":    HIGHWAY_MOTORWAY,
		"trunk":       HIGHWAY_TRUNK,
		"primary":     HIGHWAY_PRIMARY,
		"secondary":   HIGHWAY_SECONDARY,
		"tertiary":    HIGHWAY_TERTIARY,
		"residential": HIGHWAY_RESIDENTIAL,
		"service":     HIGHWAY_SERVICE,
	}

	roadTypeByHighway = map[HighwayType]RoadType{
		HIGHWAY_MOTORWAY:    ROAD_HIGHWAY,
		HIGHWAY_TRUNK:       ROAD_HIGHWAY,
		HIGHWAY_PRIMARY:     ROAD_LARGE,
		HIGHWAY_SECONDARY:   ROAD_MEDIUM,
		HIGHWAY_TERTIARY:    ROAD_SMALL,
		HIGHWAY_RESIDENTIAL: ROAD_SMALL,
		HIGHWAY_SERVICE:     ROAD_TINY,
	}

	roadPriorityByHighway = map[HighwayType]int{
		HIGHWAY_MOTORWAY:    5,
		HIGHWAY_TRUNK:       4,
		HIGHWAY_PRIMARY:     3,
		HIGHWAY_SECONDARY:   2,
		HIGHWAY_TERTIARY:    1,
		HIGHWAY_RESIDENTIAL: 0,
		HIGHWAY_SERVICE:     0,
	}
)
