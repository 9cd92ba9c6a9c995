package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/LdDl/osm2cs2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	configFile    = flag.String("config", "", "Path to YAML configuration file. Flags below override its values")
	cityName      = flag.String("city", "", "City label stored in output metadata")
	bboxStr       = flag.String("bbox", "", "Bounding box as 'south,west,north,east' in decimal degrees")
	osmFileName   = flag.String("file", "", "Filename of *.osm / *.xml / *.osm.pbf file")
	elevationFile = flag.String("elevation", "", "Filename of ';'-separated CSV with 'lat;lon;elevation' rows. Empty means flat terrain")
	outDir        = flag.String("out-dir", ".", "Directory for output files")
	out           = flag.String("out", "city_data", "Output filename stem. E.g.: if stem is 'city' then 'city_full.json', 'city_chunks.json' and 'city_outcomes.csv' will be produced")
	chunkSize     = flag.Float64("chunk-size", osm2cs2.DefaultChunkSize, "Spatial chunk size in metres")
	features      = flag.String("features", strings.Join(osm2cs2.DefaultFeatures, ","), "Set of needed features (separated by commas): roads, railways, waterways and transit route types")
	geojsonOut    = flag.Bool("geojson", false, "Also write GeoJSON debug files for dataset and chunk bounds")
	logLevel      = flag.String("log-level", "info", "Log level: debug / info / warn / error")
)

func main() {

	flag.Parse()

	cfg, err := prepareConfig()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("Conversion failed", zap.Error(err))
		os.Exit(1)
	}
}

// prepareConfig reads optional config file and applies explicitly set flags on top
func prepareConfig() (*osm2cs2.Config, error) {
	cfg := osm2cs2.DefaultConfig()
	if *configFile != "" {
		var err error
		cfg, err = osm2cs2.ReadConfig(*configFile)
		if err != nil {
			return nil, err
		}
	}
	var flagErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "city":
			cfg.City = *cityName
		case "bbox":
			bbox, err := osm2cs2.ParseBoundingBox(*bboxStr)
			if err != nil {
				flagErr = err
				return
			}
			cfg.BoundingBox = bbox
		case "file":
			cfg.OSMFile = *osmFileName
		case "elevation":
			cfg.ElevationFile = *elevationFile
		case "out-dir":
			cfg.OutputDir = *outDir
		case "out":
			cfg.OutputName = *out
		case "chunk-size":
			cfg.ChunkSize = *chunkSize
		case "features":
			cfg.Features = strings.Split(*features, ",")
		case "geojson":
			cfg.GeoJSON = *geojsonOut
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if flagErr != nil {
		return nil, flagErr
	}
	if cfg.City == "" {
		cfg.City = cfg.OutputName
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(level string) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "Can't parse log level")
	}
	zapCfg := zap.NewProductionConfig()
	if atomicLevel.Level() == zap.DebugLevel {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = atomicLevel
	return zapCfg.Build()
}

func run(cfg *osm2cs2.Config, logger *zap.Logger) error {
	st := time.Now()
	input, err := osm2cs2.NewOSMReader(
		cfg.OSMFile,
		cfg.BoundingBox,
		osm2cs2.WithFeatures(cfg.Features),
		osm2cs2.WithReaderLogger(logger),
	).Read(context.Background())
	if err != nil {
		return errors.Wrap(err, "Can't read OSM file")
	}

	elevations := make(osm2cs2.ElevationIndex)
	if cfg.ElevationFile != "" {
		elevations, err = readElevations(cfg.ElevationFile)
		if err != nil {
			return err
		}
		logger.Info("Elevation loaded", zap.Int("points", len(elevations)))
	} else {
		logger.Info("No elevation file, terrain is flat")
	}

	outcomes := osm2cs2.NewOutcomeCollector()
	converter, err := osm2cs2.NewConverter(
		cfg.BoundingBox,
		elevations,
		osm2cs2.WithFareOverrides(cfg.Fares),
		osm2cs2.WithLogger(logger),
		osm2cs2.WithOutcomes(outcomes),
	)
	if err != nil {
		return err
	}
	summary := converter.Frame().Summary()
	logger.Info("Coordinate system",
		zap.Float64("centre_lat", summary.Center.Lat),
		zap.Float64("centre_lon", summary.Center.Lon),
		zap.Float64("width_m", summary.CitySize.Width),
		zap.Float64("height_m", summary.CitySize.Height),
		zap.Float64("diagonal_km", summary.DiagonalKm),
	)
	if summary.NeedsClipping {
		logger.Warn("City exceeds map bounds, edge features will be clipped")
	}
	if summary.Approximate {
		logger.Warn("Bounding box is too large for the flat projection, distances are approximate")
	}
	if cfg.BoundingBox.CrossesAntimeridian() {
		logger.Warn("Bounding box crosses the antimeridian, result is undefined")
	}

	dataset := converter.Convert(input, cfg.City)
	outcomes.LogSummary(logger)

	chunker, err := osm2cs2.NewChunker(cfg.ChunkSize, osm2cs2.WithChunkLogger(logger))
	if err != nil {
		return err
	}
	chunks := chunker.Chunk(dataset)
	index := osm2cs2.NewChunkIndex(chunks)
	index.LinkNeighbors()
	logger.Info("Chunks indexed", zap.Int("chunks", index.Len()))

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return errors.Wrap(err, "Can't create output directory")
	}
	stem := filepath.Join(cfg.OutputDir, cfg.OutputName)
	if err := writeJSON(stem+"_full.json", dataset); err != nil {
		return err
	}
	if err := writeJSON(stem+"_chunks.json", chunks); err != nil {
		return err
	}
	if err := writeOutcomes(stem+"_outcomes.csv", outcomes.Outcomes()); err != nil {
		return err
	}
	if cfg.GeoJSON {
		if err := writeGeoJSON(stem, dataset, chunks, converter.Frame()); err != nil {
			return err
		}
	}
	logger.Info("Done",
		zap.String("output", stem),
		zap.Int("chunks", len(chunks)),
		zap.Duration("elapsed", time.Since(st)),
	)
	return nil
}

func readElevations(fname string) (osm2cs2.ElevationIndex, error) {
	file, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrap(err, "Can't open elevation file")
	}
	defer file.Close()
	return osm2cs2.ReadElevationCSV(file)
}

func writeJSON(fname string, data interface{}) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrapf(err, "Can't create '%s'", fname)
	}
	defer file.Close()
	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(data); err != nil {
		return errors.Wrapf(err, "Can't encode '%s'", fname)
	}
	return nil
}

func writeOutcomes(fname string, outcomes []osm2cs2.Outcome) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrapf(err, "Can't create '%s'", fname)
	}
	defer file.Close()
	writer := csv.NewWriter(file)
	writer.Comma = ';'
	// 		kind - string, Kind of source feature (road, railway, waterway, stop, route)
	// 		osm_id - int64, ID of source OSM object
	// 		kept - bool, Whether anything was emitted
	// 		pieces - int, Number of emitted records
	// 		reason - string, Outcome reason
	err = writer.Write([]string{"kind", "osm_id", "kept", "pieces", "reason"})
	if err != nil {
		return err
	}
	for _, outcome := range outcomes {
		err = writer.Write([]string{
			string(outcome.Kind),
			fmt.Sprintf("%d", outcome.ID),
			fmt.Sprintf("%t", outcome.Kept),
			fmt.Sprintf("%d", outcome.Pieces),
			string(outcome.Reason),
		})
		if err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Wrapf(err, "Can't flush '%s'", fname)
	}
	return nil
}

func writeGeoJSON(stem string, dataset *osm2cs2.Dataset, chunks []*osm2cs2.Chunk, frame *osm2cs2.ProjectionFrame) error {
	b, err := osm2cs2.DatasetToGeoJSON(dataset, frame)
	if err != nil {
		return err
	}
	if err := os.WriteFile(stem+"_full.geojson", b, 0644); err != nil {
		return errors.Wrap(err, "Can't write dataset GeoJSON")
	}
	b, err = osm2cs2.ChunksToGeoJSON(chunks, frame)
	if err != nil {
		return err
	}
	if err := os.WriteFile(stem+"_chunks.geojson", b, 0644); err != nil {
		return errors.Wrap(err, "Can't write chunks GeoJSON")
	}
	return nil
}
