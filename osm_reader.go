package osm2cs2

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	FEATURE_ROADS     = "roads"
	FEATURE_RAILWAYS  = "railways"
	FEATURE_WATERWAYS = "waterways"
)

// DefaultFeatures is what gets read when nothing is requested explicitly.
// Entries other than roads, railways and waterways are transit route types.
var DefaultFeatures = []string{FEATURE_ROADS, FEATURE_RAILWAYS, FEATURE_WATERWAYS, "bus", "tram", "train"}

// osmScanner is common part of osmxml and osmpbf scanners
type osmScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

// OSMReader turns OSM file into raw features
type OSMReader struct {
	filename   string
	bbox       BoundingBox
	roads      bool
	railways   bool
	waterways  bool
	routeTypes map[string]struct{}
	logger     *zap.Logger
}

// NewOSMReader creates reader for .osm/.xml or .pbf file
func NewOSMReader(filename string, bbox BoundingBox, options ...func(*OSMReader)) *OSMReader {
	reader := &OSMReader{
		filename: filename,
		bbox:     bbox,
		logger:   zap.NewNop(),
	}
	WithFeatures(DefaultFeatures)(reader)
	for _, option := range options {
		option(reader)
	}
	return reader
}

// WithFeatures sets which features to read: "roads", "railways", "waterways"
// and any number of route types ("bus", "tram", ...)
func WithFeatures(features []string) func(*OSMReader) {
	return func(reader *OSMReader) {
		reader.roads, reader.railways, reader.waterways = false, false, false
		reader.routeTypes = make(map[string]struct{})
		for _, feature := range features {
			feature = strings.TrimSpace(feature)
			switch feature {
			case "":
				continue
			case FEATURE_ROADS:
				reader.roads = true
			case FEATURE_RAILWAYS:
				reader.railways = true
			case FEATURE_WATERWAYS:
				reader.waterways = true
			default:
				reader.routeTypes[feature] = struct{}{}
			}
		}
	}
}

// WithReaderLogger sets logger for scanning progress
func WithReaderLogger(logger *zap.Logger) func(*OSMReader) {
	return func(reader *OSMReader) {
		if logger != nil {
			reader.logger = logger
		}
	}
}

// ReadOSMFile reads features from the file with default reader settings
func ReadOSMFile(filename string, bbox BoundingBox, features []string) (*Input, error) {
	return NewOSMReader(filename, bbox, WithFeatures(features)).Read(context.Background())
}

func (reader *OSMReader) transit() bool {
	return len(reader.routeTypes) > 0
}

func newOSMScanner(ctx context.Context, filename string, file io.Reader) (osmScanner, error) {
	ext := filepath.Ext(filename)
	switch ext {
	case ".osm", ".xml":
		return osmxml.New(ctx, file), nil
	case ".pbf":
		return osmpbf.New(ctx, file, 4), nil
	default:
		return nil, errors.Errorf("File extension '%s' for file '%s' is not handled yet", ext, filename)
	}
}

type wayRef struct {
	id    osm.WayID
	tags  osm.Tags
	nodes []osm.NodeID
}

type routeRef struct {
	relation *osm.Relation
	stopIDs  []osm.NodeID
}

// Read scans the file three times: ways, relations, nodes
func (reader *OSMReader) Read(ctx context.Context) (*Input, error) {
	reader.logger.Info("Opening file", zap.String("filename", reader.filename))
	file, err := os.Open(reader.filename)
	if err != nil {
		return nil, errors.Wrap(err, "Can't open OSM file")
	}
	defer file.Close()

	/* Process ways */
	st := time.Now()
	roadWays := []wayRef{}
	railWays := []wayRef{}
	waterWays := []wayRef{}
	nodesSeen := make(map[osm.NodeID]struct{})
	undergroundNodes := make(map[osm.NodeID]struct{})
	{
		scannerWays, err := newOSMScanner(ctx, reader.filename, file)
		if err != nil {
			return nil, err
		}
		defer scannerWays.Close()
		for scannerWays.Scan() {
			obj := scannerWays.Object()
			if obj.ObjectID().Type() != osm.TypeWay {
				continue
			}
			way := obj.(*osm.Way)
			ref := wayRef{
				id:    way.ID,
				tags:  append(osm.Tags(nil), way.Tags...),
				nodes: make([]osm.NodeID, 0, len(way.Nodes)),
			}
			for _, node := range way.Nodes {
				ref.nodes = append(ref.nodes, node.ID)
			}
			wanted := false
			if reader.roads {
				if getHighwayType(way.Tags.Find("highway")) != 0 {
					roadWays = append(roadWays, ref)
					wanted = true
				}
			}
			if _, ok := railwayTypesAccepted[way.Tags.Find("railway")]; ok {
				if reader.railways {
					railWays = append(railWays, ref)
					wanted = true
				}
				if reader.transit() && isUndergroundRailway(way.Tags) {
					for _, nodeID := range ref.nodes {
						undergroundNodes[nodeID] = struct{}{}
					}
				}
			}
			if reader.waterways {
				if _, _, ok := classifyWaterway(way.Tags); ok {
					waterWays = append(waterWays, ref)
					wanted = true
				}
			}
			if wanted {
				for _, nodeID := range ref.nodes {
					nodesSeen[nodeID] = struct{}{}
				}
			}
		}
		if err := scannerWays.Err(); err != nil {
			return nil, errors.Wrap(err, "Can't scan ways")
		}
	}
	reader.logger.Info("Ways processed",
		zap.Int("roads", len(roadWays)),
		zap.Int("railways", len(railWays)),
		zap.Int("waterways", len(waterWays)),
		zap.Duration("elapsed", time.Since(st)),
	)

	// Seek file to start
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "Can't repeat seeking after ways scanning")
	}

	/* Process route relations */
	st = time.Now()
	routes := []routeRef{}
	routeStops := make(map[osm.NodeID]struct{})
	if reader.transit() {
		scannerRelations, err := newOSMScanner(ctx, reader.filename, file)
		if err != nil {
			return nil, err
		}
		defer scannerRelations.Close()
		for scannerRelations.Scan() {
			obj := scannerRelations.Object()
			if obj.ObjectID().Type() != osm.TypeRelation {
				continue
			}
			relation := obj.(*osm.Relation)
			if relation.Tags.Find("type") != "route" {
				continue
			}
			if _, ok := reader.routeTypes[relation.Tags.Find("route")]; !ok {
				continue
			}
			ref := routeRef{relation: relation}
			for _, member := range relation.Members {
				if member.Type != osm.TypeNode || !isStopRole(member.Role) {
					continue
				}
				nodeID := osm.NodeID(member.Ref)
				ref.stopIDs = append(ref.stopIDs, nodeID)
				routeStops[nodeID] = struct{}{}
			}
			routes = append(routes, ref)
		}
		if err := scannerRelations.Err(); err != nil {
			return nil, errors.Wrap(err, "Can't scan relations")
		}
	}
	reader.logger.Info("Relations processed",
		zap.Int("routes", len(routes)),
		zap.Duration("elapsed", time.Since(st)),
	)

	// Seek file to start
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "Can't repeat seeking after relations scanning")
	}

	/* Process nodes */
	st = time.Now()
	coordinates := make(map[osm.NodeID]GeoPoint, len(nodesSeen))
	stops := []RawStop{}
	stopsByID := make(map[osm.NodeID]int)
	{
		scannerNodes, err := newOSMScanner(ctx, reader.filename, file)
		if err != nil {
			return nil, err
		}
		defer scannerNodes.Close()
		for scannerNodes.Scan() {
			obj := scannerNodes.Object()
			if obj.ObjectID().Type() != osm.TypeNode {
				continue
			}
			node := obj.(*osm.Node)
			if _, ok := nodesSeen[node.ID]; ok {
				coordinates[node.ID] = GeoPoint{Lat: node.Lat, Lon: node.Lon}
			}
			if !reader.transit() || !isStop(node.Tags) {
				continue
			}
			inside := reader.bbox.Contains(node.Lat, node.Lon)
			_, onRoute := routeStops[node.ID]
			if !inside && !onRoute {
				continue
			}
			_, onUndergroundRail := undergroundNodes[node.ID]
			stopsByID[node.ID] = len(stops)
			stops = append(stops, RawStop{
				ID:            int64(node.ID),
				Name:          node.Tags.Find("name"),
				Kind:          stopKind(node.Tags),
				Coordinate:    GeoPoint{Lat: node.Lat, Lon: node.Lon},
				IsExternal:    !inside,
				IsUnderground: isUndergroundStop(node.Tags) || onUndergroundRail,
				HasShelter:    node.Tags.Find("shelter") == "yes",
				HasBench:      node.Tags.Find("bench") == "yes",
				Wheelchair:    node.Tags.Find("wheelchair"),
			})
		}
		if err := scannerNodes.Err(); err != nil {
			return nil, errors.Wrap(err, "Can't scan nodes")
		}
	}
	reader.logger.Info("Nodes processed",
		zap.Int("coordinates", len(coordinates)),
		zap.Int("stops", len(stops)),
		zap.Duration("elapsed", time.Since(st)),
	)

	input := &Input{
		Roads:     make([]RawRoad, 0, len(roadWays)),
		Railways:  make([]RawRailway, 0, len(railWays)),
		Waterways: make([]RawWaterway, 0, len(waterWays)),
		Stops:     stops,
		Routes:    make([]RawRoute, 0, len(routes)),
	}
	skipped := 0
	for _, way := range roadWays {
		coords := resolveCoordinates(way.nodes, coordinates)
		if len(coords) < 2 {
			skipped++
			continue
		}
		highway := way.tags.Find("highway")
		input.Roads = append(input.Roads, RawRoad{
			ID:          int64(way.id),
			Highway:     highway,
			Name:        way.tags.Find("name"),
			Coordinates: coords,
			Lanes:       parseLanes(way.tags),
			OneWay:      isOneway(way.tags.Find("oneway")),
			MaxSpeed:    way.tags.Find("maxspeed"),
			Priority:    RoadPriority(highway),
		})
	}
	for _, way := range railWays {
		coords := resolveCoordinates(way.nodes, coordinates)
		if len(coords) < 2 {
			skipped++
			continue
		}
		input.Railways = append(input.Railways, RawRailway{
			ID:            int64(way.id),
			Railway:       way.tags.Find("railway"),
			Name:          way.tags.Find("name"),
			Coordinates:   coords,
			Electrified:   way.tags.Find("electrified"),
			IsUnderground: isUndergroundRailway(way.tags),
		})
	}
	for _, way := range waterWays {
		coords := resolveCoordinates(way.nodes, coordinates)
		if len(coords) < 2 {
			skipped++
			continue
		}
		kind, isArea, _ := classifyWaterway(way.tags)
		if isArea && !isClosed(coords) {
			skipped++
			continue
		}
		input.Waterways = append(input.Waterways, RawWaterway{
			ID:          int64(way.id),
			Kind:        kind,
			Name:        way.tags.Find("name"),
			Coordinates: coords,
			IsArea:      isArea,
			Width:       parseWidth(way.tags),
		})
	}
	for _, route := range routes {
		relation := route.relation
		raw := RawRoute{
			ID:          int64(relation.ID),
			Name:        relation.Tags.Find("name"),
			Ref:         relation.Tags.Find("ref"),
			RouteType:   relation.Tags.Find("route"),
			Operator:    relation.Tags.Find("operator"),
			Network:     relation.Tags.Find("network"),
			Colour:      relation.Tags.Find("colour"),
			From:        relation.Tags.Find("from"),
			To:          relation.Tags.Find("to"),
			StopIDs:     make([]int64, 0, len(route.stopIDs)),
			IsIntercity: false,
			Fare:        parseCharge(relation.Tags.Find("charge")),
		}
		if _, ok := intercityServices[relation.Tags.Find("service")]; ok {
			raw.IsIntercity = true
		}
		for _, nodeID := range route.stopIDs {
			idx, ok := stopsByID[nodeID]
			if !ok {
				continue
			}
			raw.StopIDs = append(raw.StopIDs, int64(nodeID))
			if stops[idx].IsExternal {
				raw.IsIntercity = true
			}
		}
		input.Routes = append(input.Routes, raw)
	}
	if skipped > 0 {
		reader.logger.Warn("Ways skipped", zap.Int("count", skipped))
	}
	return input, nil
}

// resolveCoordinates returns coordinates of known nodes in way order
func resolveCoordinates(nodes []osm.NodeID, coordinates map[osm.NodeID]GeoPoint) []GeoPoint {
	result := make([]GeoPoint, 0, len(nodes))
	for _, nodeID := range nodes {
		if pt, ok := coordinates[nodeID]; ok {
			result = append(result, pt)
		}
	}
	return result
}

// isClosed reports ring of at least 4 points with the same first and last point
func isClosed(coords []GeoPoint) bool {
	return len(coords) >= 4 && coords[0] == coords[len(coords)-1]
}
