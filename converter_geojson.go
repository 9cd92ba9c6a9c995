package osm2cs2

import (
	"github.com/pkg/errors"

	geojson "github.com/paulmach/go.geojson"
)

// DatasetToGeoJSON returns feature collection of converted records in lon/lat.
// Useful for checking clipping results on a web map.
func DatasetToGeoJSON(ds *Dataset, frame *ProjectionFrame) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, road := range ds.Roads {
		f := geojson.NewLineStringFeature(unprojectPoints(road.Points, frame))
		f.SetProperty("id", road.ID)
		f.SetProperty("kind", string(KindRoad))
		f.SetProperty("type", string(road.Type))
		f.SetProperty("name", road.Name)
		fc.AddFeature(f)
	}
	for _, rail := range ds.Railways {
		f := geojson.NewLineStringFeature(unprojectPoints(rail.Points, frame))
		f.SetProperty("id", rail.ID)
		f.SetProperty("kind", string(KindRailway))
		f.SetProperty("type", string(rail.Type))
		f.SetProperty("name", rail.Name)
		fc.AddFeature(f)
	}
	for _, ww := range ds.Waterways {
		var f *geojson.Feature
		if ww.IsArea {
			f = geojson.NewPolygonFeature([][][]float64{unprojectPoints(ww.Points, frame)})
		} else {
			f = geojson.NewLineStringFeature(unprojectPoints(ww.Points, frame))
		}
		f.SetProperty("id", ww.ID)
		f.SetProperty("kind", string(KindWaterway))
		f.SetProperty("type", string(ww.Type))
		f.SetProperty("name", ww.Name)
		fc.AddFeature(f)
	}
	for _, stop := range ds.Transit.Stops {
		lat, lon := frame.Unproject(stop.Position.X, stop.Position.Z)
		f := geojson.NewPointFeature([]float64{lon, lat})
		f.SetProperty("id", stop.ID)
		f.SetProperty("kind", string(KindStop))
		f.SetProperty("name", stop.Name)
		f.SetProperty("is_external", stop.IsExternal)
		fc.AddFeature(f)
	}
	b, err := fc.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "Can't convert dataset to GeoJSON")
	}
	return b, nil
}

// ChunksToGeoJSON returns chunk bounds as polygons in lon/lat
func ChunksToGeoJSON(chunks []*Chunk, frame *ProjectionFrame) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, chunk := range chunks {
		b := chunk.Bounds
		ring := unprojectPoints([]ProjectedPoint{
			{X: b.XMin, Z: b.ZMin},
			{X: b.XMax, Z: b.ZMin},
			{X: b.XMax, Z: b.ZMax},
			{X: b.XMin, Z: b.ZMax},
			{X: b.XMin, Z: b.ZMin},
		}, frame)
		f := geojson.NewPolygonFeature([][][]float64{ring})
		f.SetProperty("id", chunk.ID)
		f.SetProperty("col", chunk.Col)
		f.SetProperty("row", chunk.Row)
		f.SetProperty("features", chunk.FeatureCount())
		fc.AddFeature(f)
	}
	b, err := fc.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "Can't convert chunks to GeoJSON")
	}
	return b, nil
}

func unprojectPoints(pts []ProjectedPoint, frame *ProjectionFrame) [][]float64 {
	result := make([][]float64, len(pts))
	for i := range pts {
		lat, lon := frame.Unproject(pts[i].X, pts[i].Z)
		result[i] = []float64{lon, lat}
	}
	return result
}
