package osm2cs2

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// DefaultChunkSize is edge of a chunk in metres
	DefaultChunkSize = 5000.0
	// MinChunkSize keeps the dense grid small enough to allocate
	MinChunkSize = 100.0
)

// ChunkBounds is chunk extent in map space
type ChunkBounds struct {
	XMin float64 `json:"x_min"`
	ZMin float64 `json:"z_min"`
	XMax float64 `json:"x_max"`
	ZMax float64 `json:"z_max"`
}

// Chunk is one grid cell with the features it owns
type Chunk struct {
	ID        string      `json:"chunk_id"`
	Col       int         `json:"col"`
	Row       int         `json:"row"`
	Bounds    ChunkBounds `json:"bounds"`
	Roads     []Road      `json:"roads"`
	Railways  []Railway   `json:"railways"`
	Waterways []Waterway  `json:"waterways"`
	Transit   Transit     `json:"transit"`
	// Neighbors lists adjacent non-empty chunks, filled by ChunkIndex.LinkNeighbors
	Neighbors []string `json:"neighbors,omitempty"`
}

// FeatureCount returns number of spatial features in the chunk. Routes are not counted.
func (chunk *Chunk) FeatureCount() int {
	return len(chunk.Roads) + len(chunk.Railways) + len(chunk.Waterways) + len(chunk.Transit.Stops)
}

// AnchorFunc picks the point deciding which chunk owns a line or ring
type AnchorFunc func(points []ProjectedPoint) (ProjectedPoint, bool)

// FirstPointAnchor uses the first point. Long features are never split between chunks.
func FirstPointAnchor(points []ProjectedPoint) (ProjectedPoint, bool) {
	if len(points) == 0 {
		return ProjectedPoint{}, false
	}
	return points[0], true
}

// Chunker splits dataset into a uniform grid of square chunks
type Chunker struct {
	size   float64
	cells  int
	anchor AnchorFunc
	logger *zap.Logger
}

// NewChunker creates chunker with given chunk edge in metres
func NewChunker(size float64, options ...func(*Chunker)) (*Chunker, error) {
	if math.IsNaN(size) || math.IsInf(size, 0) || size <= 0 {
		return nil, errors.Wrapf(ErrInvalidChunkSize, "got %f", size)
	}
	if size < MinChunkSize {
		return nil, errors.Wrapf(ErrInvalidChunkSize, "%f is less than minimum %f", size, MinChunkSize)
	}
	chunker := &Chunker{
		size:   size,
		cells:  int(math.Ceil(MapSize / size)),
		anchor: FirstPointAnchor,
		logger: zap.NewNop(),
	}
	for _, option := range options {
		option(chunker)
	}
	return chunker, nil
}

// WithAnchor sets anchor policy for lines and rings
func WithAnchor(anchor AnchorFunc) func(*Chunker) {
	return func(chunker *Chunker) {
		if anchor != nil {
			chunker.anchor = anchor
		}
	}
}

// WithChunkLogger sets logger for chunking summary
func WithChunkLogger(logger *zap.Logger) func(*Chunker) {
	return func(chunker *Chunker) {
		if logger != nil {
			chunker.logger = logger
		}
	}
}

// Size returns chunk edge in metres
func (chunker *Chunker) Size() float64 {
	return chunker.size
}

// Cells returns number of cells per grid side
func (chunker *Chunker) Cells() int {
	return chunker.cells
}

// Cell returns (col, row) holding the point. Points off the map go to the edge cell.
func (chunker *Chunker) Cell(x, z float64) (int, int) {
	return chunker.axisCell(x), chunker.axisCell(z)
}

func (chunker *Chunker) axisCell(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	idx := math.Floor((v + HalfMapSize) / chunker.size)
	if idx < 0 {
		return 0
	}
	if idx > float64(chunker.cells-1) {
		return chunker.cells - 1
	}
	return int(idx)
}

// Bounds returns extent of the cell
func (chunker *Chunker) Bounds(col, row int) ChunkBounds {
	xMin := -HalfMapSize + float64(col)*chunker.size
	zMin := -HalfMapSize + float64(row)*chunker.size
	return ChunkBounds{
		XMin: roundTo(xMin, 1),
		ZMin: roundTo(zMin, 1),
		XMax: roundTo(xMin+chunker.size, 1),
		ZMax: roundTo(zMin+chunker.size, 1),
	}
}

// Chunk distributes dataset features over the grid.
//
// Lines and rings go to the cell of their anchor, stops to the cell of their
// position. A route is copied to every chunk holding at least one of its stops.
// Only non-empty chunks are returned, ordered by row and then by column.
func (chunker *Chunker) Chunk(ds *Dataset) []*Chunk {
	n := chunker.cells
	grid := make([]*Chunk, n*n)
	get := func(pt ProjectedPoint) int {
		col, row := chunker.Cell(pt.X, pt.Z)
		idx := row*n + col
		if grid[idx] == nil {
			grid[idx] = &Chunk{
				ID:        chunkID(col, row),
				Col:       col,
				Row:       row,
				Bounds:    chunker.Bounds(col, row),
				Roads:     make([]Road, 0),
				Railways:  make([]Railway, 0),
				Waterways: make([]Waterway, 0),
				Transit: Transit{
					Stops:  make([]Stop, 0),
					Routes: make([]Route, 0),
				},
			}
		}
		return idx
	}

	for _, road := range ds.Roads {
		if pt, ok := chunker.anchor(road.Points); ok {
			chunk := grid[get(pt)]
			chunk.Roads = append(chunk.Roads, road)
		}
	}
	for _, rail := range ds.Railways {
		if pt, ok := chunker.anchor(rail.Points); ok {
			chunk := grid[get(pt)]
			chunk.Railways = append(chunk.Railways, rail)
		}
	}
	for _, ww := range ds.Waterways {
		if pt, ok := chunker.anchor(ww.Points); ok {
			chunk := grid[get(pt)]
			chunk.Waterways = append(chunk.Waterways, ww)
		}
	}
	stopCells := make(map[string]int, len(ds.Transit.Stops))
	for _, stop := range ds.Transit.Stops {
		idx := get(stop.Position)
		grid[idx].Transit.Stops = append(grid[idx].Transit.Stops, stop)
		stopCells[stop.ID] = idx
	}
	for _, route := range ds.Transit.Routes {
		seen := make(map[int]struct{}, 1)
		for _, stopID := range route.Stops {
			idx, ok := stopCells[stopID]
			if !ok {
				continue
			}
			if _, ok := seen[idx]; ok {
				continue
			}
			seen[idx] = struct{}{}
			grid[idx].Transit.Routes = append(grid[idx].Transit.Routes, route)
		}
	}

	chunks := make([]*Chunk, 0)
	for _, chunk := range grid {
		if chunk != nil {
			chunks = append(chunks, chunk)
		}
	}
	chunker.logger.Info("Chunks created",
		zap.Int("chunks", len(chunks)),
		zap.Int("grid", n),
		zap.Float64("chunk_size_m", chunker.size),
	)
	return chunks
}

func chunkID(col, row int) string {
	return fmt.Sprintf("chunk_%d_%d", col, row)
}
