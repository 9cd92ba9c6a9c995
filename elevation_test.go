package osm2cs2

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpolateElevation(t *testing.T) {
	t.Run("no candidates", func(t *testing.T) {
		assert.Equal(t, 0.0, InterpolateElevation(10, 10, nil))
	})
	t.Run("single candidate", func(t *testing.T) {
		assert.Equal(t, 7.0, InterpolateElevation(0, 0, []ProjectedPoint{{X: 100, Y: 7, Z: 0}}))
	})
	t.Run("coincident candidate wins", func(t *testing.T) {
		candidates := []ProjectedPoint{{X: 0, Y: 10, Z: 0}, {X: 0, Y: 20, Z: 0}}
		assert.Equal(t, 10.0, InterpolateElevation(0, 0, candidates))
	})
	t.Run("equal distances", func(t *testing.T) {
		candidates := []ProjectedPoint{{X: -1, Y: 10, Z: 0}, {X: 1, Y: 20, Z: 0}}
		assert.InDelta(t, 15.0, InterpolateElevation(0, 0, candidates), 1e-6)
	})
	t.Run("two nearest only", func(t *testing.T) {
		candidates := []ProjectedPoint{
			{X: 1, Y: 10, Z: 0},
			{X: 100, Y: 1000, Z: 0},
			{X: 3, Y: 30, Z: 0},
		}
		// Weights 1 and 1/9
		assert.InDelta(t, 12.0, InterpolateElevation(0, 0, candidates), 1e-6)
	})
}

func TestElevationLookup(t *testing.T) {
	var empty ElevationIndex
	assert.Equal(t, 0.0, empty.Lookup(48.0, 2.0))

	index := ElevationIndex{NewElevationKey(48.123456789, 2.1): 35.5}
	assert.Equal(t, 35.5, index.Lookup(48.12345678, 2.1))
	assert.Equal(t, 35.5, index.Lookup(48.123457, 2.1000001))
	assert.Equal(t, 0.0, index.Lookup(48.1235, 2.1))
}

func TestReadElevationCSV(t *testing.T) {
	data := `lat;lon;elevation
48.05;2.1;35.5
48.06; 2.11;40
`
	index, err := ReadElevationCSV(strings.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, index, 2)
	assert.Equal(t, 35.5, index.Lookup(48.05, 2.1))
	assert.Equal(t, 40.0, index.Lookup(48.06, 2.11))

	noHeader := "48.05;2.1;12\n"
	index, err = ReadElevationCSV(strings.NewReader(noHeader))
	require.NoError(t, err)
	assert.Equal(t, 12.0, index.Lookup(48.05, 2.1))

	_, err = ReadElevationCSV(strings.NewReader("lat;lon;elevation\n48.05;2.1;high\n"))
	assert.Error(t, err)

	_, err = ReadElevationCSV(strings.NewReader("48.05;2.1\n"))
	assert.Error(t, err)
}
