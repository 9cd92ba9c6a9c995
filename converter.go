package osm2cs2

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Converter turns raw features into map-space records.
// Lookup tables and the projection frame are read-only after construction.
type Converter struct {
	frame         *ProjectionFrame
	clipper       *Clipper
	elevations    ElevationIndex
	fares         FareTable
	fareOverrides map[string]RawFare
	pieceSelector PieceSelector
	logger        *zap.Logger
	outcomes      *OutcomeCollector
}

func (converter *Converter) String() string {
	routeTypes := make([]string, 0, len(converter.fares))
	for routeType := range converter.fares {
		routeTypes = append(routeTypes, routeType)
	}
	return fmt.Sprintf(`
Converter parameters:
	bbox: '%s'
	elevation_points: %d
	fare_route_types: '%s'
	fare_overrides: %d
	`,
		converter.frame.BoundingBox(),
		len(converter.elevations),
		strings.Join(routeTypes, ","),
		len(converter.fareOverrides),
	)
}

// NewConverter prepares converter for the given box. Box is validated here,
// before anything is converted.
func NewConverter(bbox BoundingBox, elevations ElevationIndex, options ...func(*Converter)) (*Converter, error) {
	frame, err := NewProjectionFrame(bbox)
	if err != nil {
		return nil, err
	}
	converter := &Converter{
		frame:      frame,
		elevations: elevations,
		logger:     zap.NewNop(),
	}
	for _, option := range options {
		option(converter)
	}
	if converter.elevations == nil {
		converter.elevations = make(ElevationIndex)
	}
	converter.fares = DefaultFares().WithOverrides(converter.fareOverrides)
	converter.clipper = NewClipper(converter.pieceSelector)
	return converter, nil
}

// WithFareOverrides sets per-route-type fares merged on top of defaults
func WithFareOverrides(overrides map[string]RawFare) func(*Converter) {
	return func(converter *Converter) {
		converter.fareOverrides = overrides
	}
}

// WithLogger sets logger. Default one discards everything.
func WithLogger(logger *zap.Logger) func(*Converter) {
	return func(converter *Converter) {
		if logger != nil {
			converter.logger = logger
		}
	}
}

// WithOutcomes sets collector for per-feature outcomes
func WithOutcomes(outcomes *OutcomeCollector) func(*Converter) {
	return func(converter *Converter) {
		converter.outcomes = outcomes
	}
}

// WithPieceSelector sets policy for polygons cut into several pieces
func WithPieceSelector(selector PieceSelector) func(*Converter) {
	return func(converter *Converter) {
		converter.pieceSelector = selector
	}
}

// Frame returns projection frame
func (converter *Converter) Frame() *ProjectionFrame {
	return converter.frame
}

// Convert runs every feature kind and fills run metadata
func (converter *Converter) Convert(input *Input, city string) *Dataset {
	if input == nil {
		input = &Input{}
	}
	dataset := &Dataset{
		Roads:     converter.ConvertRoads(input.Roads),
		Railways:  converter.ConvertRailways(input.Railways),
		Waterways: converter.ConvertWaterways(input.Waterways),
		Transit:   converter.ConvertTransit(input.Stops, input.Routes),
		Meta: Meta{
			City:             city,
			BoundingBox:      converter.frame.BoundingBox(),
			CoordinateSystem: converter.frame.Summary(),
			ElevationPoints:  len(converter.elevations),
		},
	}
	converter.logger.Info("Dataset converted",
		zap.String("city", city),
		zap.Int("roads", len(dataset.Roads)),
		zap.Int("railways", len(dataset.Railways)),
		zap.Int("waterways", len(dataset.Waterways)),
		zap.Int("stops", len(dataset.Transit.Stops)),
		zap.Int("routes", len(dataset.Transit.Routes)),
	)
	return dataset
}

// project converts coordinates to map space with looked-up elevation.
// Non-finite coordinates are skipped and counted.
func (converter *Converter) project(coordinates []GeoPoint) ([]ProjectedPoint, int) {
	points := make([]ProjectedPoint, 0, len(coordinates))
	malformed := 0
	for _, coord := range coordinates {
		if !coord.isFinite() {
			malformed++
			continue
		}
		points = append(points, converter.frame.ToPoint(coord.Lat, coord.Lon, converter.elevations.Lookup(coord.Lat, coord.Lon)))
	}
	return points, malformed
}

// clipLine projects and clips a polyline
func (converter *Converter) clipLine(kind FeatureKind, id int64, coordinates []GeoPoint) [][]ProjectedPoint {
	vertices, malformed := converter.project(coordinates)
	if len(vertices) < 2 && malformed > 0 {
		converter.record(kind, id, 0, OutcomeMalformedCoordinates, vertices)
		return nil
	}
	segments, reason := converter.clipper.ClipLine(vertices)
	converter.record(kind, id, len(segments), reason, vertices)
	return segments
}

// record stores outcome and logs dropped features at debug level
func (converter *Converter) record(kind FeatureKind, id int64, pieces int, reason OutcomeReason, vertices []ProjectedPoint) {
	if converter.outcomes != nil {
		converter.outcomes.Add(Outcome{
			Kind:   kind,
			ID:     id,
			Kept:   pieces > 0,
			Pieces: pieces,
			Reason: reason,
		})
	}
	if pieces > 0 {
		return
	}
	if ce := converter.logger.Check(zap.DebugLevel, "Feature dropped"); ce != nil {
		geom := SegmentWKT(vertices)
		if len(vertices) == 1 {
			geom = PointWKT(vertices[0])
		}
		ce.Write(
			zap.String("kind", string(kind)),
			zap.Int64("id", id),
			zap.String("reason", string(reason)),
			zap.String("wkt", geom),
		)
	}
}

// segmentID returns "<prefix>_<id>" for single segment and "<prefix>_<id>_<idx>" otherwise
func segmentID(prefix string, id int64, idx, total int) string {
	if total == 1 {
		return fmt.Sprintf("%s_%d", prefix, id)
	}
	return fmt.Sprintf("%s_%d_%d", prefix, id, idx)
}
