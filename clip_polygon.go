package osm2cs2

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
)

// boundaryTolerance is how far (in metres) a chain end may lie from the
// rectangle edge and still be treated as a boundary point
const boundaryTolerance = 1e-6

// perimeter walks rectangle boundary counter-clockwise.
//
// Position along the boundary is measured from the (minX, minY) corner:
// bottom edge first, then right, top and left.
type perimeter struct {
	bound   orb.Bound
	width   float64
	height  float64
	length  float64
	corners [4]float64
}

func newPerimeter(bound orb.Bound) perimeter {
	w := bound.Max[0] - bound.Min[0]
	h := bound.Max[1] - bound.Min[1]
	return perimeter{
		bound:   bound,
		width:   w,
		height:  h,
		length:  2*w + 2*h,
		corners: [4]float64{0, w, w + h, 2*w + h},
	}
}

// position returns parameter of the boundary point in [0, length)
func (p perimeter) position(pt orb.Point) (float64, error) {
	x, y := pt[0], pt[1]
	x0, y0, x1, y1 := p.bound.Min[0], p.bound.Min[1], p.bound.Max[0], p.bound.Max[1]
	dists := [4]float64{
		math.Abs(y - y0),
		math.Abs(x - x1),
		math.Abs(y - y1),
		math.Abs(x - x0),
	}
	edge := 0
	for i := 1; i < 4; i++ {
		if dists[i] < dists[edge] {
			edge = i
		}
	}
	if dists[edge] > boundaryTolerance {
		return 0, errGeometry{Reason: "chain end is off the boundary"}
	}
	var s float64
	switch edge {
	case 0:
		s = x - x0
	case 1:
		s = p.width + (y - y0)
	case 2:
		s = p.width + p.height + (x1 - x)
	default:
		s = 2*p.width + p.height + (y1 - y)
	}
	return p.wrap(s), nil
}

func (p perimeter) wrap(s float64) float64 {
	s = math.Mod(s, p.length)
	if s < 0 {
		s += p.length
	}
	return s
}

// forward returns counter-clockwise travel distance from a to b
func (p perimeter) forward(a, b float64) float64 {
	return p.wrap(b - a)
}

func (p perimeter) corner(i int) orb.Point {
	x0, y0, x1, y1 := p.bound.Min[0], p.bound.Min[1], p.bound.Max[0], p.bound.Max[1]
	switch i {
	case 0:
		return orb.Point{x0, y0}
	case 1:
		return orb.Point{x1, y0}
	case 2:
		return orb.Point{x1, y1}
	default:
		return orb.Point{x0, y1}
	}
}

// cornersBetween returns corners passed strictly between a and a+dist when
// moving counter-clockwise, in travel order
func (p perimeter) cornersBetween(a, dist float64) []orb.Point {
	type passed struct {
		offset float64
		idx    int
	}
	list := make([]passed, 0, 4)
	for i, c := range p.corners {
		offset := p.forward(a, c)
		if offset > 0 && offset < dist {
			list = append(list, passed{offset: offset, idx: i})
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].offset < list[j].offset
	})
	result := make([]orb.Point, 0, len(list))
	for _, c := range list {
		result = append(result, p.corner(c.idx))
	}
	return result
}

// trace joins inside chains of a counter-clockwise ring into closed pieces.
//
// Each chain enters the rectangle at its first point and leaves at the last
// one. From an exit the piece follows the boundary counter-clockwise up to
// the closest entry, picking up corners on the way. A piece is done when it
// comes back to the chain it started from.
func (p perimeter) trace(chains []orb.LineString) ([]orb.Ring, error) {
	n := len(chains)
	starts := make([]float64, n)
	ends := make([]float64, n)
	for i, chain := range chains {
		var err error
		if starts[i], err = p.position(chain[0]); err != nil {
			return nil, err
		}
		if ends[i], err = p.position(chain[len(chain)-1]); err != nil {
			return nil, err
		}
	}

	used := make([]bool, n)
	pieces := make([]orb.Ring, 0, 1)
	for first := 0; first < n; first++ {
		if used[first] {
			continue
		}
		piece := make(orb.Ring, 0)
		current := first
		closed := false
		for steps := 0; steps <= n; steps++ {
			used[current] = true
			piece = appendPoints(piece, chains[current])

			next, dist := -1, math.Inf(1)
			for j := 0; j < n; j++ {
				if used[j] && j != first {
					continue
				}
				d := p.forward(ends[current], starts[j])
				if d < dist {
					next, dist = j, d
				}
			}
			if next < 0 {
				return nil, errGeometry{Reason: "no chain to continue boundary walk"}
			}
			piece = appendPoints(piece, p.cornersBetween(ends[current], dist))
			if next == first {
				closed = true
				break
			}
			current = next
		}
		if !closed {
			return nil, errGeometry{Reason: "boundary walk did not close"}
		}
		if !piece[0].Equal(piece[len(piece)-1]) {
			piece = append(piece, piece[0])
		}
		pieces = append(pieces, piece)
	}
	return pieces, nil
}

// appendPoints appends points skipping the one equal to current tail
func appendPoints(dst orb.Ring, pts []orb.Point) orb.Ring {
	for _, pt := range pts {
		if len(dst) > 0 && dst[len(dst)-1].Equal(pt) {
			continue
		}
		dst = append(dst, pt)
	}
	return dst
}

// isSimpleRing checks closed ring for self-intersections.
// Non-adjacent edges must not touch, adjacent ones must not fold back onto each other.
func isSimpleRing(ring orb.Ring) bool {
	n := len(ring) - 1
	for i := 0; i < n; i++ {
		prev := ring[(i+n-1)%n]
		if orientation(prev, ring[i], ring[i+1]) == 0 {
			// Collinear neighbours overlap when the walk turns back
			dot := (prev[0]-ring[i][0])*(ring[i+1][0]-ring[i][0]) + (prev[1]-ring[i][1])*(ring[i+1][1]-ring[i][1])
			if dot > 0 {
				return false
			}
		}
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if segmentsTouch(ring[i], ring[i+1], ring[j], ring[j+1]) {
				return false
			}
		}
	}
	return true
}
