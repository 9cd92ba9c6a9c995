package osm2cs2

import (
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyWaterway(t *testing.T) {
	cases := []struct {
		tags   osm.Tags
		kind   string
		isArea bool
		ok     bool
	}{
		{osm.Tags{{Key: "waterway", Value: "river"}}, "river", false, true},
		{osm.Tags{{Key: "waterway", Value: "ditch"}}, "ditch", false, true},
		{osm.Tags{{Key: "natural", Value: "coastline"}}, "coastline", false, true},
		{osm.Tags{{Key: "natural", Value: "water"}}, "water", true, true},
		{osm.Tags{{Key: "natural", Value: "water"}, {Key: "water", Value: "pond"}}, "pond", true, true},
		{osm.Tags{{Key: "landuse", Value: "reservoir"}}, "reservoir", true, true},
		{osm.Tags{{Key: "waterway", Value: "dam"}}, "", false, false},
		{osm.Tags{{Key: "highway", Value: "primary"}}, "", false, false},
	}
	for _, c := range cases {
		kind, isArea, ok := classifyWaterway(c.tags)
		assert.Equal(t, c.kind, kind, "tags %v", c.tags)
		assert.Equal(t, c.isArea, isArea, "tags %v", c.tags)
		assert.Equal(t, c.ok, ok, "tags %v", c.tags)
	}
}

func TestStopTags(t *testing.T) {
	busStop := osm.Tags{{Key: "highway", Value: "bus_stop"}}
	assert.True(t, isStop(busStop))
	assert.Equal(t, "bus", stopKind(busStop))

	station := osm.Tags{{Key: "railway", Value: "station"}, {Key: "station", Value: "subway"}}
	assert.True(t, isStop(station))
	assert.Equal(t, "train", stopKind(station))
	assert.True(t, isUndergroundStop(station))

	platform := osm.Tags{{Key: "public_transport", Value: "platform"}, {Key: "layer", Value: "-1"}}
	assert.True(t, isStop(platform))
	assert.Equal(t, "platform", stopKind(platform))
	assert.True(t, isUndergroundStop(platform))

	assert.False(t, isStop(osm.Tags{{Key: "amenity", Value: "bench"}}))
	assert.Equal(t, "unknown", stopKind(osm.Tags{}))
}

func TestStopRoles(t *testing.T) {
	for _, role := range []string{"", "stop", "stop_exit_only", "platform", "platform_entry_only"} {
		assert.True(t, isStopRole(role), "role '%s'", role)
	}
	for _, role := range []string{"outer", "forward", "backward"} {
		assert.False(t, isStopRole(role), "role '%s'", role)
	}
}

func TestWayTags(t *testing.T) {
	assert.Equal(t, 3, parseLanes(osm.Tags{{Key: "lanes", Value: "3"}}))
	assert.Equal(t, defaultRoadLanes, parseLanes(osm.Tags{{Key: "lanes", Value: "2;3"}}))
	assert.Equal(t, defaultRoadLanes, parseLanes(osm.Tags{{Key: "lanes", Value: "0"}}))
	assert.Equal(t, defaultRoadLanes, parseLanes(osm.Tags{}))

	width := parseWidth(osm.Tags{{Key: "width", Value: "12.5 m"}})
	require.NotNil(t, width)
	assert.Equal(t, 12.5, *width)
	width = parseWidth(osm.Tags{{Key: "est_width", Value: "4"}})
	require.NotNil(t, width)
	assert.Equal(t, 4.0, *width)
	assert.Nil(t, parseWidth(osm.Tags{{Key: "width", Value: "wide"}}))

	assert.True(t, isOneway("yes"))
	assert.True(t, isOneway("-1"))
	assert.False(t, isOneway("no"))
	assert.False(t, isOneway(""))

	assert.True(t, isUndergroundRailway(osm.Tags{{Key: "tunnel", Value: "yes"}}))
	assert.True(t, isUndergroundRailway(osm.Tags{{Key: "location", Value: "underground"}}))
	assert.True(t, isUndergroundRailway(osm.Tags{{Key: "layer", Value: "-2"}}))
	assert.False(t, isUndergroundRailway(osm.Tags{{Key: "layer", Value: "1"}}))
}

func TestTypeTables(t *testing.T) {
	assert.Equal(t, ROAD_HIGHWAY, RoadTypeFor("motorway"))
	assert.Equal(t, ROAD_HIGHWAY, RoadTypeFor("trunk"))
	assert.Equal(t, ROAD_MEDIUM, RoadTypeFor("secondary"))
	assert.Equal(t, ROAD_TINY, RoadTypeFor("service"))
	assert.Equal(t, ROAD_SMALL, RoadTypeFor("unclassified"))
	assert.Equal(t, 5, RoadPriority("motorway"))
	assert.Equal(t, 0, RoadPriority("track"))
	assert.Equal(t, HIGHWAY_PRIMARY, getHighwayType("primary"))
	assert.Equal(t, HighwayType(0), getHighwayType("track"))

	assert.Equal(t, RAILWAY_METRO, RailwayTypeFor("light_rail"))
	assert.Equal(t, RAILWAY_TRAIN, RailwayTypeFor("monorail"))

	assert.Equal(t, WATERWAY_DRAIN, WaterwayTypeFor("ditch"))
	assert.Equal(t, WATERWAY_RESERVOIR, WaterwayTypeFor("reservoir"))
	assert.Equal(t, WATERWAY_STREAM, WaterwayTypeFor("pond"))

	assert.Equal(t, TRANSIT_METRO, TransitTypeFor("light_rail"))
	assert.Equal(t, TRANSIT_BUS, TransitTypeFor("trolleybus"))
}
