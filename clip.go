package osm2cs2

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
	"github.com/paulmach/orb/planar"
)

// PieceSelector picks one ring when a polygon clips into several disjoint pieces
type PieceSelector func(pieces []orb.Ring) orb.Ring

// LargestPiece keeps the piece with the biggest planar area. First one wins on ties.
func LargestPiece(pieces []orb.Ring) orb.Ring {
	var best orb.Ring
	bestArea := -1.0
	for _, piece := range pieces {
		area := math.Abs(planar.Area(piece))
		if area > bestArea {
			best, bestArea = piece, area
		}
	}
	return best
}

// Clipper cuts map-space geometries by the fixed map rectangle
type Clipper struct {
	bound       orb.Bound
	selectPiece PieceSelector
}

// NewClipper returns clipper for the map square. Nil selector means LargestPiece.
func NewClipper(selector PieceSelector) *Clipper {
	if selector == nil {
		selector = LargestPiece
	}
	return &Clipper{
		bound: orb.Bound{
			Min: orb.Point{-HalfMapSize, -HalfMapSize},
			Max: orb.Point{HalfMapSize, HalfMapSize},
		},
		selectPiece: selector,
	}
}

// ClipLine clips polyline by the map rectangle.
//
// Result is a list of sub-polylines with at least two distinct points each.
// Line lying completely outside gives nil and OutcomeOutsideMap.
// Points on the boundary count as inside.
func (clipper *Clipper) ClipLine(vertices []ProjectedPoint) ([][]ProjectedPoint, OutcomeReason) {
	prepared := dedupeVertices(vertices)
	if len(prepared) < 2 {
		return nil, OutcomeDegenerate
	}
	ls := make(orb.LineString, 0, len(prepared))
	for _, pt := range prepared {
		ls = append(ls, pt.planar())
	}
	clipped := clip.LineString(clipper.bound, ls)
	segments := make([][]ProjectedPoint, 0, len(clipped))
	for _, part := range clipped {
		part = dedupePlanar(part)
		if len(part) < 2 {
			continue
		}
		segments = append(segments, withElevation(part, prepared))
	}
	if len(segments) == 0 {
		return nil, OutcomeOutsideMap
	}
	return segments, OutcomeKept
}

// ClipPolygon clips exterior ring by the map rectangle.
//
// Output ring is counter-clockwise in (x, z) and closed (last point repeats
// the first). When the ring falls apart into several pieces the selector
// decides which one survives. (nil, false) means there is nothing usable left.
// Self-intersecting rings give OutcomeGeometryFailure.
func (clipper *Clipper) ClipPolygon(vertices []ProjectedPoint) ([]ProjectedPoint, bool, OutcomeReason) {
	prepared := dedupeVertices(vertices)
	ring := make(orb.Ring, 0, len(prepared)+1)
	for _, pt := range prepared {
		ring = append(ring, pt.planar())
	}
	if len(ring) > 1 && ring[0].Equal(ring[len(ring)-1]) {
		ring = ring[:len(ring)-1]
	}
	if len(ring) < 3 {
		return nil, false, OutcomeDegenerate
	}
	ring = append(ring, ring[0])

	switch ring.Orientation() {
	case orb.CW:
		ring.Reverse()
	case orb.CCW:
	default:
		// Zero area
		return nil, false, OutcomeDegenerate
	}
	if !isSimpleRing(ring) {
		return nil, false, OutcomeGeometryFailure
	}

	result, err := clipper.clipRing(ring)
	if err != nil {
		return nil, false, OutcomeGeometryFailure
	}
	if len(result) < 4 {
		return nil, false, OutcomeOutsideMap
	}
	return withElevation(orb.LineString(result), prepared), true, OutcomeKept
}

// clipRing expects closed counter-clockwise ring
func (clipper *Clipper) clipRing(ring orb.Ring) (orb.Ring, error) {
	outsideIdx := -1
	for i, pt := range ring[:len(ring)-1] {
		if !clipper.bound.Contains(pt) {
			outsideIdx = i
			break
		}
	}
	if outsideIdx < 0 {
		return ring, nil
	}

	// Start and finish outside, so every chain enters and leaves through the boundary
	open := ring[:len(ring)-1]
	rotated := make(orb.LineString, 0, len(ring))
	rotated = append(rotated, open[outsideIdx:]...)
	rotated = append(rotated, open[:outsideIdx]...)
	rotated = append(rotated, open[outsideIdx])

	chains := make([]orb.LineString, 0)
	for _, chain := range clip.LineString(clipper.bound, rotated) {
		chain = dedupePlanar(chain)
		if len(chain) < 2 {
			continue
		}
		chains = append(chains, chain)
	}
	if len(chains) == 0 {
		if planar.RingContains(ring, clipper.bound.Center()) {
			return clipper.boundRing(), nil
		}
		return nil, nil
	}

	pieces, err := newPerimeter(clipper.bound).trace(chains)
	if err != nil {
		return nil, err
	}
	// A piece of the ring can't be bigger than the ring itself
	limit := math.Abs(planar.Area(ring)) * (1 + 1e-9)
	usable := make([]orb.Ring, 0, len(pieces))
	for _, piece := range pieces {
		if len(piece) < 4 || planar.Area(piece) == 0 {
			continue
		}
		if math.Abs(planar.Area(piece)) > limit {
			return nil, errGeometry{Reason: "clipped piece exceeds source ring"}
		}
		usable = append(usable, piece)
	}
	if len(usable) == 0 {
		return nil, nil
	}
	if len(usable) == 1 {
		return usable[0], nil
	}
	return clipper.selectPiece(usable), nil
}

// boundRing returns map rectangle as closed counter-clockwise ring
func (clipper *Clipper) boundRing() orb.Ring {
	lo, hi := clipper.bound.Min, clipper.bound.Max
	return orb.Ring{
		{lo[0], lo[1]},
		{hi[0], lo[1]},
		{hi[0], hi[1]},
		{lo[0], hi[1]},
		{lo[0], lo[1]},
	}
}

// dedupeVertices drops non-finite points and consecutive duplicates on (x, z)
func dedupeVertices(vertices []ProjectedPoint) []ProjectedPoint {
	result := make([]ProjectedPoint, 0, len(vertices))
	for _, pt := range vertices {
		if !pt.isFinite() {
			continue
		}
		if len(result) > 0 {
			last := result[len(result)-1]
			if last.X == pt.X && last.Z == pt.Z {
				continue
			}
		}
		result = append(result, pt)
	}
	return result
}

func dedupePlanar(ls orb.LineString) orb.LineString {
	result := make(orb.LineString, 0, len(ls))
	for _, pt := range ls {
		if len(result) > 0 && result[len(result)-1].Equal(pt) {
			continue
		}
		result = append(result, pt)
	}
	return result
}

// withElevation attaches interpolated elevation taken from the source vertices
func withElevation(ls orb.LineString, source []ProjectedPoint) []ProjectedPoint {
	result := make([]ProjectedPoint, len(ls))
	for i, pt := range ls {
		result[i] = ProjectedPoint{
			X: pt[0],
			Y: InterpolateElevation(pt[0], pt[1], source),
			Z: pt[1],
		}
	}
	return result
}
