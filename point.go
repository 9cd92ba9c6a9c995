package osm2cs2

import (
	"encoding/json"
	"math"

	"github.com/paulmach/orb"
)

// ProjectedPoint is a point in map space.
// X grows to the east, Z to the south, Y is elevation in metres.
type ProjectedPoint struct {
	X float64
	Y float64
	Z float64
}

type projectedPointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// MarshalJSON rounds coordinates to centimetres. Values are kept at full
// precision until this moment.
func (pt ProjectedPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(projectedPointJSON{
		X: roundTo(pt.X, 2),
		Y: roundTo(pt.Y, 2),
		Z: roundTo(pt.Z, 2),
	})
}

// UnmarshalJSON reads {x, y, z} object
func (pt *ProjectedPoint) UnmarshalJSON(data []byte) error {
	aux := projectedPointJSON{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	pt.X, pt.Y, pt.Z = aux.X, aux.Y, aux.Z
	return nil
}

// planar returns (x, z) as orb.Point
func (pt ProjectedPoint) planar() orb.Point {
	return orb.Point{pt.X, pt.Z}
}

// isFinite reports whether X and Z are usable numbers
func (pt ProjectedPoint) isFinite() bool {
	return !math.IsNaN(pt.X) && !math.IsNaN(pt.Z) && !math.IsInf(pt.X, 0) && !math.IsInf(pt.Z, 0)
}
