package osm2cs2

import (
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is run configuration of the converter
type Config struct {
	City          string             `yaml:"city" validate:"required"`
	BoundingBox   BoundingBox        `yaml:"bbox"`
	OSMFile       string             `yaml:"osm_file" validate:"required"`
	ElevationFile string             `yaml:"elevation_file" validate:"omitempty"`
	OutputDir     string             `yaml:"output_dir" validate:"required"`
	OutputName    string             `yaml:"output_name" validate:"required"`
	ChunkSize     float64            `yaml:"chunk_size_m" validate:"gte=100"`
	Features      []string           `yaml:"features" validate:"required,min=1,dive,required"`
	Fares         map[string]RawFare `yaml:"fares"`
	GeoJSON       bool               `yaml:"geojson"`
	LogLevel      string             `yaml:"log_level" validate:"oneof=debug info warn error"`
}

// DefaultConfig returns config with every optional field set
func DefaultConfig() *Config {
	return &Config{
		OutputDir:  ".",
		OutputName: "city_data",
		ChunkSize:  DefaultChunkSize,
		Features:   append([]string{}, DefaultFeatures...),
		LogLevel:   "info",
	}
}

// ReadConfig parses YAML file on top of defaults. Result is not validated.
func ReadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read config file")
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "can't parse '%s': %s", path, err.Error())
	}
	return cfg, nil
}

// LoadConfig reads and validates YAML file
func LoadConfig(path string) (*Config, error) {
	cfg, err := ReadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config before any work starts
func (cfg *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if err := cfg.BoundingBox.Validate(); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	for routeType, fare := range cfg.Fares {
		if fare.BaseFare != nil && *fare.BaseFare < 0 {
			return errors.Wrapf(ErrInvalidConfig, "negative base fare for '%s'", routeType)
		}
		if fare.DayPass != nil && *fare.DayPass < 0 {
			return errors.Wrapf(ErrInvalidConfig, "negative day pass for '%s'", routeType)
		}
	}
	return nil
}

// ParseBoundingBox reads "south,west,north,east"
func ParseBoundingBox(str string) (BoundingBox, error) {
	parts := strings.Split(str, ",")
	if len(parts) != 4 {
		return BoundingBox{}, errors.Wrapf(ErrInvalidBoundingBox, "expected 4 comma-separated values, got %d", len(parts))
	}
	values := [4]float64{}
	for i, part := range parts {
		var err error
		values[i], err = strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return BoundingBox{}, errors.Wrapf(ErrInvalidBoundingBox, "non-numeric value '%s'", part)
		}
	}
	bbox := BoundingBox{South: values[0], West: values[1], North: values[2], East: values[3]}
	if err := bbox.Validate(); err != nil {
		return BoundingBox{}, err
	}
	return bbox, nil
}
