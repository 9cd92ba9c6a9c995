package osm2cs2

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidBoundingBox is returned for boxes that can't anchor a projection
	ErrInvalidBoundingBox = errors.New("invalid bounding box")
	// ErrInvalidChunkSize is returned for non-positive chunk sizes
	ErrInvalidChunkSize = errors.New("chunk size must be positive")
	// ErrInvalidConfig is returned when run configuration fails validation
	ErrInvalidConfig = errors.New("invalid configuration")
)

// errGeometry is raised inside the clipper and never leaves it
type errGeometry struct {
	Reason string
}

func (e errGeometry) Error() string {
	return "invalid geometry: " + e.Reason
}
