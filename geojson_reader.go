package osm2street

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// ReadGeoJSONSegments reads LineString / MultiLineString features from GeoJSON file.
// If geographic is true coordinates are treated as WGS84 and projected into local meters,
// otherwise they are used as planar meters (third coordinate is elevation)
func ReadGeoJSONSegments(filename string, geographic bool) ([]RoadSegment, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read GeoJSON file")
	}
	return ParseGeoJSONSegments(data, geographic)
}

// ParseGeoJSONSegments is ReadGeoJSONSegments over raw bytes
func ParseGeoJSONSegments(data []byte, geographic bool) ([]RoadSegment, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "Can't unmarshal GeoJSON feature collection")
	}
	projector := localProjector{}
	toVec := func(coords []float64) r3.Vec {
		elevation := 0.0
		if len(coords) > 2 {
			elevation = coords[2]
		}
		if geographic {
			return projector.project(coords[0], coords[1], elevation)
		}
		return r3.Vec{X: coords[0], Y: coords[1], Z: elevation}
	}
	segments := []RoadSegment{}
	for i, feature := range fc.Features {
		if feature.Geometry == nil {
			continue
		}
		var lines [][][]float64
		switch feature.Geometry.Type {
		case geojson.GeometryLineString:
			lines = [][][]float64{feature.Geometry.LineString}
		case geojson.GeometryMultiLineString:
			lines = feature.Geometry.MultiLineString
		default:
			continue
		}
		id := featureID(feature, i)
		for j, line := range lines {
			segment := RoadSegment{
				ID:     id,
				Name:   feature.PropertyMustString("name", ""),
				Points: make([]r3.Vec, 0, len(line)),
				Width:  feature.PropertyMustFloat64("width", 0),
				Tags:   osm.Tags{},
			}
			if len(lines) > 1 {
				segment.ID = fmt.Sprintf("%s_%d", id, j)
			}
			for _, coords := range line {
				if len(coords) < 2 {
					return nil, fmt.Errorf("Bad coordinates %v. Feature index: %d", coords, i)
				}
				segment.Points = append(segment.Points, toVec(coords))
			}
			for key, value := range feature.Properties {
				if key == "id" || key == "name" || key == "width" {
					continue
				}
				switch v := value.(type) {
				case string:
					segment.Tags = append(segment.Tags, osm.Tag{Key: key, Value: v})
				case float64:
					segment.Tags = append(segment.Tags, osm.Tag{Key: key, Value: strconv.FormatFloat(v, 'f', -1, 64)})
				case bool:
					segment.Tags = append(segment.Tags, osm.Tag{Key: key, Value: strconv.FormatBool(v)})
				}
			}
			sort.Slice(segment.Tags, func(a, b int) bool {
				return segment.Tags[a].Key < segment.Tags[b].Key
			})
			segments = append(segments, segment)
		}
	}
	return segments, nil
}

// featureID returns `id` property, then feature ID, then generated one
func featureID(feature *geojson.Feature, index int) string {
	if id := feature.PropertyMustString("id", ""); id != "" {
		return id
	}
	switch v := feature.ID.(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprintf("segment_%d", index)
}
