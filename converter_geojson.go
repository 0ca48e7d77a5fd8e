package osm2street

import (
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

func vecToCoords(v r3.Vec) []float64 {
	return []float64{v.X, v.Y, v.Z}
}

func lineToCoords(pts []r3.Vec) [][]float64 {
	coords := make([][]float64, len(pts))
	for i := range pts {
		coords[i] = vecToCoords(pts[i])
	}
	return coords
}

// intersectionRing returns closed outer ring of intersection surface (fan vertices without the center)
func intersectionRing(surface *GeometryResult) [][]float64 {
	if len(surface.Vertices) < 4 {
		return nil
	}
	ring := lineToCoords(surface.Vertices[1:])
	return append(ring, ring[0])
}

// ToGeoJSON returns road centerlines, intersection polygons and furniture points in local planar coordinates
func (system *ProcessedRoadSystem) ToGeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i := range system.Roads {
		road := &system.Roads[i].Road
		feature := geojson.NewLineStringFeature(lineToCoords(road.Segment.Points))
		feature.ID = road.Segment.ID
		feature.SetProperty("layer", "road")
		feature.SetProperty("name", road.Segment.Name)
		feature.SetProperty("class", road.Class.String())
		feature.SetProperty("width", road.EffectiveWidth())
		feature.SetProperty("lanes", road.Lanes)
		feature.SetProperty("oneway", road.Oneway)
		feature.SetProperty("lod", road.LOD.String())
		feature.SetProperty("markings", len(system.Roads[i].Markings))
		fc.AddFeature(feature)
	}
	for i := range system.Intersections {
		intersection := &system.Intersections[i]
		ring := intersectionRing(&intersection.Surface)
		if ring == nil {
			continue
		}
		feature := geojson.NewPolygonFeature([][][]float64{ring})
		feature.ID = intersection.Cluster.ID
		feature.SetProperty("layer", "intersection")
		feature.SetProperty("type", intersection.Cluster.Type.String())
		feature.SetProperty("roads", intersection.Cluster.RoadIDs)
		feature.SetProperty("radius", intersection.Radius)
		feature.SetProperty("crosswalks", len(intersection.CrosswalkGeometry))
		fc.AddFeature(feature)
	}
	for _, item := range system.Furniture {
		feature := geojson.NewPointFeature(vecToCoords(item.Position))
		feature.SetProperty("layer", "furniture")
		feature.SetProperty("kind", item.Kind.String())
		feature.SetProperty("segment_id", item.SegmentID)
		feature.SetProperty("rotation", item.Rotation)
		feature.SetProperty("scale", item.Scale)
		for key, value := range item.Metadata {
			feature.SetProperty(key, value)
		}
		fc.AddFeature(feature)
	}
	return fc
}

// ExportGeoJSON writes ToGeoJSON output into file
func (system *ProcessedRoadSystem) ExportGeoJSON(filename string) error {
	b, err := system.ToGeoJSON().MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Can't marshal road system to GeoJSON")
	}
	err = os.WriteFile(filename, b, 0644)
	if err != nil {
		return errors.Wrap(err, "Can't write GeoJSON file")
	}
	return nil
}
