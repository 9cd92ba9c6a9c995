package osm2cs2

import (
	"fmt"
)

const defaultWheelchair = "unknown"

// ConvertTransit converts stops and routes.
//
// External stops are pinned to the map edge axis by axis. Other stops outside
// the map are dropped. Routes keep only references to emitted stops, in order,
// and are emitted even when no reference survives.
func (converter *Converter) ConvertTransit(stops []RawStop, routes []RawRoute) Transit {
	transit := Transit{
		Stops:  make([]Stop, 0, len(stops)),
		Routes: make([]Route, 0, len(routes)),
	}
	emitted := make(map[string]struct{}, len(stops))
	for _, raw := range stops {
		stop, ok := converter.convertStop(raw)
		if !ok {
			continue
		}
		emitted[stop.ID] = struct{}{}
		transit.Stops = append(transit.Stops, stop)
	}

	for _, raw := range routes {
		routeStops := make([]string, 0, len(raw.StopIDs))
		for _, stopID := range raw.StopIDs {
			id := stopRef(stopID)
			if _, ok := emitted[id]; ok {
				routeStops = append(routeStops, id)
			}
		}
		transit.Routes = append(transit.Routes, Route{
			ID:          fmt.Sprintf("route_%d", raw.ID),
			Name:        raw.Name,
			Number:      raw.Ref,
			Type:        TransitTypeFor(raw.RouteType),
			Operator:    raw.Operator,
			Colour:      raw.Colour,
			Network:     raw.Network,
			From:        raw.From,
			To:          raw.To,
			IsIntercity: raw.IsIntercity,
			Stops:       routeStops,
			Fare:        converter.fares.Resolve(raw.RouteType, raw.Fare),
		})
		converter.record(KindRoute, raw.ID, 1, OutcomeKept, nil)
	}
	return transit
}

func (converter *Converter) convertStop(raw RawStop) (Stop, bool) {
	coord := raw.Coordinate
	if !coord.isFinite() {
		converter.record(KindStop, raw.ID, 0, OutcomeMalformedCoordinates, nil)
		return Stop{}, false
	}
	position := converter.frame.ToPoint(coord.Lat, coord.Lon, converter.elevations.Lookup(coord.Lat, coord.Lon))
	reason := OutcomeKept
	if raw.IsExternal {
		position.X, position.Z = converter.frame.Clamp(position.X, position.Z)
		reason = OutcomeExternalClamped
	} else if !converter.frame.InBounds(coord.Lat, coord.Lon) {
		converter.record(KindStop, raw.ID, 0, OutcomeOutsideMap, []ProjectedPoint{position})
		return Stop{}, false
	}
	wheelchair := raw.Wheelchair
	if wheelchair == "" {
		wheelchair = defaultWheelchair
	}
	converter.record(KindStop, raw.ID, 1, reason, nil)
	return Stop{
		ID:            stopRef(raw.ID),
		Name:          raw.Name,
		Type:          raw.Kind,
		Position:      position,
		IsExternal:    raw.IsExternal,
		IsUnderground: raw.IsUnderground,
		HasShelter:    raw.HasShelter,
		HasBench:      raw.HasBench,
		Wheelchair:    wheelchair,
	}, true
}

func stopRef(id int64) string {
	return fmt.Sprintf("stop_%d", id)
}
