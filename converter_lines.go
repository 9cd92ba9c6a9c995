package osm2cs2

// ConvertRoads clips roads. One way crossing the map edge several times
// gives several records.
func (converter *Converter) ConvertRoads(roads []RawRoad) []Road {
	result := make([]Road, 0, len(roads))
	for _, road := range roads {
		segments := converter.clipLine(KindRoad, road.ID, road.Coordinates)
		lanes := road.Lanes
		if lanes <= 0 {
			lanes = defaultRoadLanes
		}
		for idx, segment := range segments {
			result = append(result, Road{
				ID:         segmentID("road", road.ID, idx, len(segments)),
				Type:       RoadTypeFor(road.Highway),
				Name:       road.Name,
				Points:     segment,
				Lanes:      lanes,
				OneWay:     road.OneWay,
				SpeedLimit: ParseSpeedLimit(road.MaxSpeed),
				Priority:   road.Priority,
			})
		}
	}
	return result
}

// ConvertRailways clips railways
func (converter *Converter) ConvertRailways(railways []RawRailway) []Railway {
	result := make([]Railway, 0, len(railways))
	for _, rail := range railways {
		segments := converter.clipLine(KindRailway, rail.ID, rail.Coordinates)
		for idx, segment := range segments {
			result = append(result, Railway{
				ID:          segmentID("rail", rail.ID, idx, len(segments)),
				Type:        RailwayTypeFor(rail.Railway),
				Name:        rail.Name,
				Points:      segment,
				Electrified: rail.Electrified == "yes",
			})
		}
	}
	return result
}

// ConvertWaterways clips linear waterways as lines and water areas as polygons.
// Area gives at most one record.
func (converter *Converter) ConvertWaterways(waterways []RawWaterway) []Waterway {
	result := make([]Waterway, 0, len(waterways))
	for _, ww := range waterways {
		kind := WaterwayTypeFor(ww.Kind)
		if ww.IsArea {
			ring, ok := converter.clipArea(ww.ID, ww.Coordinates)
			if !ok {
				continue
			}
			result = append(result, Waterway{
				ID:     segmentID("water", ww.ID, 0, 1),
				Type:   kind,
				Name:   ww.Name,
				IsArea: true,
				Points: ring,
			})
			continue
		}
		segments := converter.clipLine(KindWaterway, ww.ID, ww.Coordinates)
		for idx, segment := range segments {
			result = append(result, Waterway{
				ID:     segmentID("water", ww.ID, idx, len(segments)),
				Type:   kind,
				Name:   ww.Name,
				Points: segment,
				Width:  ww.Width,
			})
		}
	}
	return result
}

func (converter *Converter) clipArea(id int64, coordinates []GeoPoint) ([]ProjectedPoint, bool) {
	vertices, malformed := converter.project(coordinates)
	if len(vertices) < 3 && malformed > 0 {
		converter.record(KindWaterway, id, 0, OutcomeMalformedCoordinates, vertices)
		return nil, false
	}
	ring, ok, reason := converter.clipper.ClipPolygon(vertices)
	pieces := 0
	if ok {
		pieces = 1
	}
	converter.record(KindWaterway, id, pieces, reason, vertices)
	return ring, ok
}
