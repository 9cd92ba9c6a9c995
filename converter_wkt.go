package osm2cs2

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// SegmentWKT returns WKT LINESTRING of map-space points (x z)
func SegmentWKT(pts []ProjectedPoint) string {
	ls := make(orb.LineString, len(pts))
	for i := range pts {
		ls[i] = pts[i].planar()
	}
	return wkt.MarshalString(ls)
}

// PointWKT returns WKT POINT of map-space point (x z)
func PointWKT(pt ProjectedPoint) string {
	return wkt.MarshalString(pt.planar())
}
