package osm2cs2

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
city: Paris
bbox:
  south: 48.0
  west: 2.0
  north: 48.1
  east: 2.2
osm_file: paris.osm.pbf
elevation_file: paris_elevation.csv
output_dir: out
chunk_size_m: 2500
features:
  - roads
  - bus
fares:
  bus:
    base_fare: 2.1
    currency: EUR
  ferry:
    day_pass: 12
geojson: true
log_level: debug
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Paris", cfg.City)
	assert.Equal(t, testBoundingBox, cfg.BoundingBox)
	assert.Equal(t, "paris.osm.pbf", cfg.OSMFile)
	assert.Equal(t, "paris_elevation.csv", cfg.ElevationFile)
	assert.Equal(t, "out", cfg.OutputDir)
	// Not set in file, default is kept
	assert.Equal(t, "city_data", cfg.OutputName)
	assert.Equal(t, 2500.0, cfg.ChunkSize)
	assert.Equal(t, []string{"roads", "bus"}, cfg.Features)
	assert.True(t, cfg.GeoJSON)
	assert.Equal(t, "debug", cfg.LogLevel)

	require.Contains(t, cfg.Fares, "bus")
	require.NotNil(t, cfg.Fares["bus"].BaseFare)
	assert.Equal(t, 2.1, *cfg.Fares["bus"].BaseFare)
	assert.Nil(t, cfg.Fares["bus"].DayPass)
	require.NotNil(t, cfg.Fares["ferry"].DayPass)
	assert.Equal(t, 12.0, *cfg.Fares["ferry"].DayPass)
}

func TestLoadConfigInvalid(t *testing.T) {
	cases := map[string]string{
		"south above north": `
city: X
bbox: {south: 48.1, west: 2.0, north: 48.0, east: 2.2}
osm_file: x.osm
`,
		"missing osm file": `
city: X
bbox: {south: 48.0, west: 2.0, north: 48.1, east: 2.2}
`,
		"small chunks": `
city: X
bbox: {south: 48.0, west: 2.0, north: 48.1, east: 2.2}
osm_file: x.osm
chunk_size_m: 10
`,
		"bad log level": `
city: X
bbox: {south: 48.0, west: 2.0, north: 48.1, east: 2.2}
osm_file: x.osm
log_level: verbose
`,
		"negative fare": `
city: X
bbox: {south: 48.0, west: 2.0, north: 48.1, east: 2.2}
osm_file: x.osm
fares:
  bus: {base_fare: -1}
`,
		"broken yaml": `
city: [X
`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfigFile(t, content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultChunkSize, cfg.ChunkSize)
	assert.Equal(t, DefaultFeatures, cfg.Features)
	assert.Equal(t, "info", cfg.LogLevel)
	// Defaults alone lack city, box and input file
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestParseBoundingBox(t *testing.T) {
	bbox, err := ParseBoundingBox("48.0, 2.0, 48.1, 2.2")
	require.NoError(t, err)
	assert.Equal(t, testBoundingBox, bbox)

	for _, str := range []string{"", "48.0,2.0,48.1", "48.0,2.0,north,2.2", "48.1,2.0,48.0,2.2"} {
		_, err := ParseBoundingBox(str)
		assert.ErrorIs(t, err, ErrInvalidBoundingBox, "bbox '%s'", str)
	}
}
