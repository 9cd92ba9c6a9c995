package osm2cs2

import (
	"sort"

	"github.com/dhconnelly/rtreego"
)

// minRectLength replaces zero extents, R-tree rectangles must have positive size
const minRectLength = 1e-6

// chunkEntry adapts chunk to rtreego.Spatial
type chunkEntry struct {
	chunk *Chunk
}

// Bounds method for rtreego.Spatial interface
func (entry chunkEntry) Bounds() rtreego.Rect {
	b := entry.chunk.Bounds
	return newRect(b.XMin, b.ZMin, b.XMax, b.ZMax)
}

// ChunkIndex answers spatial queries over chunks.
// Read-only after construction.
type ChunkIndex struct {
	rtree  *rtreego.Rtree
	chunks []*Chunk
}

// NewChunkIndex builds R-tree over chunk bounds
func NewChunkIndex(chunks []*Chunk) *ChunkIndex {
	rtree := rtreego.NewTree(2, 25, 50)
	for _, chunk := range chunks {
		rtree.Insert(chunkEntry{chunk: chunk})
	}
	return &ChunkIndex{
		rtree:  rtree,
		chunks: chunks,
	}
}

// Len returns number of indexed chunks
func (index *ChunkIndex) Len() int {
	return len(index.chunks)
}

// Query returns chunks intersecting the map-space rectangle, ordered by row and column
func (index *ChunkIndex) Query(minX, minZ, maxX, maxZ float64) []*Chunk {
	if maxX < minX {
		minX, maxX = maxX, minX
	}
	if maxZ < minZ {
		minZ, maxZ = maxZ, minZ
	}
	spatials := index.rtree.SearchIntersect(newRect(minX, minZ, maxX, maxZ))
	result := make([]*Chunk, 0, len(spatials))
	for _, spatial := range spatials {
		result = append(result, spatial.(chunkEntry).chunk)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Row != result[j].Row {
			return result[i].Row < result[j].Row
		}
		return result[i].Col < result[j].Col
	})
	return result
}

// Nearest returns up to k chunks closest to (x, z), closest first
func (index *ChunkIndex) Nearest(x, z float64, k int) []*Chunk {
	if k <= 0 || len(index.chunks) == 0 {
		return nil
	}
	spatials := index.rtree.NearestNeighbors(k, rtreego.Point{x, z})
	result := make([]*Chunk, 0, len(spatials))
	for _, spatial := range spatials {
		if spatial == nil {
			continue
		}
		result = append(result, spatial.(chunkEntry).chunk)
	}
	return result
}

// neighborMargin widens chunk bounds so that cells sharing an edge or a corner overlap
const neighborMargin = 1.0

// Neighbors returns chunks adjacent to the given one (edge or corner), ordered by row and column
func (index *ChunkIndex) Neighbors(chunk *Chunk) []*Chunk {
	b := chunk.Bounds
	found := index.Query(b.XMin-neighborMargin, b.ZMin-neighborMargin, b.XMax+neighborMargin, b.ZMax+neighborMargin)
	result := make([]*Chunk, 0, len(found))
	for _, other := range found {
		if other.ID == chunk.ID {
			continue
		}
		result = append(result, other)
	}
	return result
}

// LinkNeighbors fills Neighbors of every indexed chunk
func (index *ChunkIndex) LinkNeighbors() {
	for _, chunk := range index.chunks {
		chunk.Neighbors = nil
		for _, other := range index.Neighbors(chunk) {
			chunk.Neighbors = append(chunk.Neighbors, other.ID)
		}
	}
}

func newRect(minX, minZ, maxX, maxZ float64) rtreego.Rect {
	width := maxX - minX
	if width < minRectLength {
		width = minRectLength
	}
	height := maxZ - minZ
	if height < minRectLength {
		height = minRectLength
	}
	rect, _ := rtreego.NewRect(rtreego.Point{minX, minZ}, []float64{width, height})
	return rect
}
