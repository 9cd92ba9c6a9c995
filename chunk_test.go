package osm2cs2

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChunker(t *testing.T) {
	chunker, err := NewChunker(DefaultChunkSize)
	require.NoError(t, err)
	assert.Equal(t, 12, chunker.Cells())
	assert.Equal(t, DefaultChunkSize, chunker.Size())

	chunker, err = NewChunker(MapSize)
	require.NoError(t, err)
	assert.Equal(t, 1, chunker.Cells())

	chunker, err = NewChunker(100000)
	require.NoError(t, err)
	assert.Equal(t, 1, chunker.Cells())

	for _, size := range []float64{0, -5, 50, math.NaN(), math.Inf(1)} {
		_, err := NewChunker(size)
		assert.ErrorIs(t, err, ErrInvalidChunkSize, "size %f", size)
	}
}

func TestChunkerCell(t *testing.T) {
	chunker, err := NewChunker(5000)
	require.NoError(t, err)

	col, row := chunker.Cell(28000, 28000)
	assert.Equal(t, 11, col)
	assert.Equal(t, 11, row)

	col, row = chunker.Cell(-HalfMapSize, -HalfMapSize)
	assert.Equal(t, 0, col)
	assert.Equal(t, 0, row)

	// Far edge belongs to the last cell
	col, row = chunker.Cell(HalfMapSize, HalfMapSize)
	assert.Equal(t, 11, col)
	assert.Equal(t, 11, row)

	col, row = chunker.Cell(1e9, -1e9)
	assert.Equal(t, 11, col)
	assert.Equal(t, 0, row)

	col, row = chunker.Cell(0, 0)
	assert.Equal(t, 5, col)
	assert.Equal(t, 5, row)

	col, _ = chunker.Cell(math.NaN(), 0)
	assert.Equal(t, 0, col)
}

func TestChunkerBounds(t *testing.T) {
	chunker, err := NewChunker(5000)
	require.NoError(t, err)
	assert.Equal(t, ChunkBounds{XMin: -3672, ZMin: -3672, XMax: 1328, ZMax: 1328}, chunker.Bounds(5, 5))
	assert.Equal(t, ChunkBounds{XMin: -HalfMapSize, ZMin: -HalfMapSize, XMax: -23672, ZMax: -23672}, chunker.Bounds(0, 0))
}

func chunkTestDataset() *Dataset {
	return &Dataset{
		Roads: []Road{
			{ID: "road_1", Points: []ProjectedPoint{{X: 0, Z: 0}, {X: 20000, Z: 20000}}},
			{ID: "road_2", Points: []ProjectedPoint{{X: -28000, Z: -28000}, {X: -27000, Z: -27000}}},
			{ID: "road_3"},
		},
		Railways: []Railway{
			{ID: "rail_1", Points: []ProjectedPoint{{X: 100, Z: 100}, {X: 200, Z: 200}}},
		},
		Waterways: []Waterway{
			{ID: "water_1", IsArea: true, Points: []ProjectedPoint{{X: -28000, Z: -28000}, {X: -27000, Z: -28000}, {X: -27000, Z: -27000}, {X: -28000, Z: -28000}}},
		},
		Transit: Transit{
			Stops: []Stop{
				{ID: "stop_1", Position: ProjectedPoint{X: 0, Z: 0}},
				{ID: "stop_2", Position: ProjectedPoint{X: 20000, Z: -20000}},
				{ID: "stop_3", Position: ProjectedPoint{X: 10, Z: 10}},
			},
			Routes: []Route{
				{ID: "route_1", Stops: []string{"stop_1", "stop_2", "stop_3", "stop_1"}},
				{ID: "route_2", Stops: []string{"stop_404"}},
				{ID: "route_3", Stops: []string{}},
			},
		},
	}
}

func TestChunkDataset(t *testing.T) {
	chunker, err := NewChunker(5000)
	require.NoError(t, err)
	chunks := chunker.Chunk(chunkTestDataset())
	require.Len(t, chunks, 3)

	ids := make([]string, len(chunks))
	for i, chunk := range chunks {
		ids[i] = chunk.ID
	}
	assert.Equal(t, []string{"chunk_0_0", "chunk_9_1", "chunk_5_5"}, ids)

	corner := chunks[0]
	assert.Len(t, corner.Roads, 1)
	assert.Equal(t, "road_2", corner.Roads[0].ID)
	assert.Len(t, corner.Waterways, 1)
	assert.Empty(t, corner.Transit.Stops)
	assert.NotNil(t, corner.Transit.Routes)
	assert.Empty(t, corner.Transit.Routes)

	east := chunks[1]
	assert.Equal(t, 9, east.Col)
	assert.Equal(t, 1, east.Row)
	assert.Len(t, east.Transit.Stops, 1)
	require.Len(t, east.Transit.Routes, 1)
	assert.Equal(t, "route_1", east.Transit.Routes[0].ID)

	centre := chunks[2]
	assert.Equal(t, ChunkBounds{XMin: -3672, ZMin: -3672, XMax: 1328, ZMax: 1328}, centre.Bounds)
	// Long road stays whole in the chunk of its first point
	require.Len(t, centre.Roads, 1)
	assert.Len(t, centre.Roads[0].Points, 2)
	assert.Len(t, centre.Railways, 1)
	assert.Len(t, centre.Transit.Stops, 2)
	// Route appears once even with several stops in the chunk
	require.Len(t, centre.Transit.Routes, 1)
	assert.Equal(t, "route_1", centre.Transit.Routes[0].ID)
	assert.Equal(t, 4, centre.FeatureCount())
}

func TestChunkDeterministic(t *testing.T) {
	chunker, err := NewChunker(5000)
	require.NoError(t, err)
	first := chunker.Chunk(chunkTestDataset())
	second := chunker.Chunk(chunkTestDataset())
	assert.Equal(t, first, second)
}

func TestChunkEmptyDataset(t *testing.T) {
	chunker, err := NewChunker(5000)
	require.NoError(t, err)
	chunks := chunker.Chunk(&Dataset{})
	assert.NotNil(t, chunks)
	assert.Empty(t, chunks)
}

func TestChunkCustomAnchor(t *testing.T) {
	lastPoint := func(points []ProjectedPoint) (ProjectedPoint, bool) {
		if len(points) == 0 {
			return ProjectedPoint{}, false
		}
		return points[len(points)-1], true
	}
	chunker, err := NewChunker(5000, WithAnchor(lastPoint))
	require.NoError(t, err)
	chunks := chunker.Chunk(&Dataset{
		Roads: []Road{{ID: "road_1", Points: []ProjectedPoint{{X: 0, Z: 0}, {X: 20000, Z: 20000}}}},
	})
	require.Len(t, chunks, 1)
	assert.Equal(t, "chunk_9_9", chunks[0].ID)
}
