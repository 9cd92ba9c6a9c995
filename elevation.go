package osm2cs2

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

const (
	// idwEpsilon keeps IDW weights finite
	idwEpsilon = 1e-9
	// elevationKeyDecimals is about 0.1 m of precision
	elevationKeyDecimals = 6
)

// ElevationKey is lat/lon pair rounded to 6 decimals
type ElevationKey struct {
	Lat float64
	Lon float64
}

// NewElevationKey rounds lat/lon to lookup precision
func NewElevationKey(lat, lon float64) ElevationKey {
	return ElevationKey{
		Lat: roundTo(lat, elevationKeyDecimals),
		Lon: roundTo(lon, elevationKeyDecimals),
	}
}

// ElevationIndex is sparse elevation lookup. Missing entries read as 0.
type ElevationIndex map[ElevationKey]float64

// Lookup returns elevation for lat/lon or 0 when no sample exists
func (index ElevationIndex) Lookup(lat, lon float64) float64 {
	if index == nil {
		return 0
	}
	return index[NewElevationKey(lat, lon)]
}

// ReadElevationCSV reads ';'-separated "lat;lon;elevation" rows.
// The first row is treated as header when its first field is not a number.
func ReadElevationCSV(r io.Reader) (ElevationIndex, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = 3
	reader.TrimLeadingSpace = true
	index := make(ElevationIndex)
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "Can't read elevation row")
		}
		line++
		lat, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			if line == 1 {
				continue
			}
			return nil, errors.Wrapf(err, "Bad latitude on row %d", line)
		}
		lon, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "Bad longitude on row %d", line)
		}
		elevation, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "Bad elevation on row %d", line)
		}
		index[NewElevationKey(lat, lon)] = elevation
	}
	return index, nil
}

// InterpolateElevation estimates elevation at (x, z) by inverse distance
// weighting over the two nearest candidates.
//
// Returns 0 with no candidates. Returns the nearest candidate's elevation
// when there is only one candidate or when it coincides with (x, z).
// On equal distances the earlier candidate wins.
func InterpolateElevation(x, z float64, candidates []ProjectedPoint) float64 {
	if len(candidates) == 0 {
		return 0
	}
	first, second := -1, -1
	firstDist, secondDist := math.Inf(1), math.Inf(1)
	for i := range candidates {
		d := squaredDistance(x, z, candidates[i].X, candidates[i].Z)
		if d < firstDist {
			second, secondDist = first, firstDist
			first, firstDist = i, d
		} else if d < secondDist {
			second, secondDist = i, d
		}
	}
	if first < 0 {
		// Every distance is NaN
		return candidates[0].Y
	}
	if firstDist == 0 || second < 0 {
		return candidates[first].Y
	}
	w1 := 1.0 / (firstDist + idwEpsilon)
	w2 := 1.0 / (secondDist + idwEpsilon)
	return (w1*candidates[first].Y + w2*candidates[second].Y) / (w1 + w2)
}
