package osm2cs2

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

const (
	// MapSize is the edge length of the game map in metres
	MapSize = 57344.0
	// HalfMapSize is the distance from the map centre to any edge
	HalfMapSize = MapSize / 2.0
	// metersPerDegree is the constant length of one degree of latitude
	metersPerDegree = 111320.0

	earthRadius = 6370.986884258304
	pi180       = math.Pi / 180.0
)

// GeoPoint representation of point on Earth
type GeoPoint struct {
	Lat float64
	Lon float64
}

// String returns pretty printed value for for GeoPoint
func (gp GeoPoint) String() string {
	return fmt.Sprintf("Lon: %f | Lat: %f", gp.Lon, gp.Lat)
}

// isFinite reports whether both coordinates are usable numbers
func (gp GeoPoint) isFinite() bool {
	return !math.IsNaN(gp.Lat) && !math.IsNaN(gp.Lon) && !math.IsInf(gp.Lat, 0) && !math.IsInf(gp.Lon, 0)
}

// BoundingBox geographic rectangle in degrees
type BoundingBox struct {
	South float64 `json:"south" yaml:"south" validate:"gte=-90,lte=90"`
	West  float64 `json:"west" yaml:"west" validate:"gte=-180,lte=180"`
	North float64 `json:"north" yaml:"north" validate:"gte=-90,lte=90,gtfield=South"`
	East  float64 `json:"east" yaml:"east" validate:"gte=-180,lte=180"`
}

// Validate checks the box before any conversion starts
func (bbox BoundingBox) Validate() error {
	for _, lat := range []float64{bbox.South, bbox.North} {
		if math.IsNaN(lat) || lat < -90 || lat > 90 {
			return errors.Wrapf(ErrInvalidBoundingBox, "latitude %f must be in [-90, 90]", lat)
		}
	}
	for _, lon := range []float64{bbox.West, bbox.East} {
		if math.IsNaN(lon) || lon < -180 || lon > 180 {
			return errors.Wrapf(ErrInvalidBoundingBox, "longitude %f must be in [-180, 180]", lon)
		}
	}
	if bbox.South >= bbox.North {
		return errors.Wrapf(ErrInvalidBoundingBox, "south (%f) must be less than north (%f)", bbox.South, bbox.North)
	}
	return nil
}

// CrossesAntimeridian reports west > east. Such boxes are not corrected.
func (bbox BoundingBox) CrossesAntimeridian() bool {
	return bbox.West > bbox.East
}

// Contains reports whether the point lies inside the box (edges included)
func (bbox BoundingBox) Contains(lat, lon float64) bool {
	return lat >= bbox.South && lat <= bbox.North && lon >= bbox.West && lon <= bbox.East
}

// Center returns middle of the box in degrees
func (bbox BoundingBox) Center() GeoPoint {
	return GeoPoint{
		Lat: (bbox.South + bbox.North) / 2.0,
		Lon: (bbox.West + bbox.East) / 2.0,
	}
}

// String returns box in "south,west,north,east" order (Overpass order)
func (bbox BoundingBox) String() string {
	return fmt.Sprintf("%f,%f,%f,%f", bbox.South, bbox.West, bbox.North, bbox.East)
}
