package osm2cs2

import (
	"math"
)

const (
	// maxAccurateExtentKm is the bbox diagonal beyond which the local plane
	// approximation exceeds 0.1% error
	maxAccurateExtentKm = 200.0
)

// ProjectionFrame maps lat/lon onto the game plane around the bbox centroid.
//
// X grows to the east, Z grows to the south, 1 unit = 1 metre.
// The frame is immutable and safe to share between goroutines.
type ProjectionFrame struct {
	bbox      BoundingBox
	latCenter float64
	lonCenter float64
	mPerLat   float64
	mPerLon   float64
}

// ProjectionSummary describes the frame for run metadata
type ProjectionSummary struct {
	Center        GeoPointJSON `json:"centre"`
	CitySize      SizeJSON     `json:"city_size_m"`
	MapSize       float64      `json:"cs2_map_size_m"`
	NeedsClipping bool         `json:"needs_clipping"`
	Scale         string       `json:"scale"`
	DiagonalKm    float64      `json:"diagonal_km"`
	Approximate   bool         `json:"approximate"`
}

// GeoPointJSON is GeoPoint with lower-case field names
type GeoPointJSON struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// SizeJSON width and height pair
type SizeJSON struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewProjectionFrame builds frame for the given box
func NewProjectionFrame(bbox BoundingBox) (*ProjectionFrame, error) {
	if err := bbox.Validate(); err != nil {
		return nil, err
	}
	center := bbox.Center()
	return &ProjectionFrame{
		bbox:      bbox,
		latCenter: center.Lat,
		lonCenter: center.Lon,
		mPerLat:   metersPerDegree,
		mPerLon:   metersPerDegree * math.Cos(degreesToRadians(center.Lat)),
	}, nil
}

// BoundingBox returns box the frame was built from
func (frame *ProjectionFrame) BoundingBox() BoundingBox {
	return frame.bbox
}

// Project converts lat/lon to map-space (x, z). No rounding.
func (frame *ProjectionFrame) Project(lat, lon float64) (float64, float64) {
	x := (lon - frame.lonCenter) * frame.mPerLon
	z := -(lat - frame.latCenter) * frame.mPerLat
	return x, z
}

// Unproject converts map-space (x, z) back to lat/lon
func (frame *ProjectionFrame) Unproject(x, z float64) (float64, float64) {
	lat := frame.latCenter - z/frame.mPerLat
	lon := frame.lonCenter + x/frame.mPerLon
	return lat, lon
}

// InBounds reports whether lat/lon projects inside the map square
func (frame *ProjectionFrame) InBounds(lat, lon float64) bool {
	x, z := frame.Project(lat, lon)
	return math.Abs(x) <= HalfMapSize && math.Abs(z) <= HalfMapSize
}

// ToPoint projects lat/lon and attaches elevation
func (frame *ProjectionFrame) ToPoint(lat, lon, elevation float64) ProjectedPoint {
	x, z := frame.Project(lat, lon)
	return ProjectedPoint{X: x, Y: elevation, Z: z}
}

// Clamp pins (x, z) into the map square. Each axis is clamped on its own,
// so it is not a nearest-edge projection.
func (frame *ProjectionFrame) Clamp(x, z float64) (float64, float64) {
	return clampFloat(x, -HalfMapSize, HalfMapSize), clampFloat(z, -HalfMapSize, HalfMapSize)
}

// CitySize returns footprint of the bbox in metres (width, height)
func (frame *ProjectionFrame) CitySize() (float64, float64) {
	width := (frame.bbox.East - frame.bbox.West) * frame.mPerLon
	height := (frame.bbox.North - frame.bbox.South) * frame.mPerLat
	return width, height
}

// NeedsClipping reports whether the city is larger than the map
func (frame *ProjectionFrame) NeedsClipping() bool {
	width, height := frame.CitySize()
	return width > MapSize || height > MapSize
}

// Summary returns metadata of the frame
func (frame *ProjectionFrame) Summary() ProjectionSummary {
	width, height := frame.CitySize()
	diagonal := greatCircleDistance(
		GeoPoint{Lat: frame.bbox.South, Lon: frame.bbox.West},
		GeoPoint{Lat: frame.bbox.North, Lon: frame.bbox.East},
	)
	return ProjectionSummary{
		Center: GeoPointJSON{
			Lat: roundTo(frame.latCenter, 6),
			Lon: roundTo(frame.lonCenter, 6),
		},
		CitySize: SizeJSON{
			Width:  math.Round(width),
			Height: math.Round(height),
		},
		MapSize:       MapSize,
		NeedsClipping: frame.NeedsClipping(),
		Scale:         "1:1 (real-world metres)",
		DiagonalKm:    roundTo(diagonal, 3),
		Approximate:   diagonal > maxAccurateExtentKm,
	}
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
