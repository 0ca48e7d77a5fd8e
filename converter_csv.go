package osm2street

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

func vecsToLineString(pts []r3.Vec) orb.LineString {
	line := make(orb.LineString, len(pts))
	for i := range pts {
		line[i] = toPlanar(pts[i])
	}
	return line
}

func newCSVWriter(w io.Writer) *csv.Writer {
	writer := csv.NewWriter(w)
	writer.Comma = ';'
	return writer
}

// WriteRoadsCSV writes roads with WKT centerlines
func (system *ProcessedRoadSystem) WriteRoadsCSV(w io.Writer) error {
	writer := newCSVWriter(w)
	// 		segment_id - string, ID of source segment
	// 		name - string, Name of the road
	// 		class - string, Resolved road class
	// 		width - float64, Effective width in meters
	// 		lanes - int, Number of lanes
	// 		oneway - bool, One-way road or not
	// 		lod - string, Level of detail
	// 		length - float64, Centerline length in meters
	// 		markings - int, Number of generated markings
	// 		geom - geometry (WKT representation)
	err := writer.Write([]string{"segment_id", "name", "class", "width", "lanes", "oneway", "lod", "length", "markings", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write roads header")
	}
	for i := range system.Roads {
		road := &system.Roads[i].Road
		err = writer.Write([]string{
			road.Segment.ID,
			road.Segment.Name,
			road.Class.String(),
			fmt.Sprintf("%f", road.EffectiveWidth()),
			fmt.Sprintf("%d", road.Lanes),
			fmt.Sprintf("%t", road.Oneway),
			road.LOD.String(),
			fmt.Sprintf("%f", road.Segment.Length()),
			fmt.Sprintf("%d", len(system.Roads[i].Markings)),
			wkt.MarshalString(vecsToLineString(road.Segment.Points)),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write road")
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteIntersectionsCSV writes intersections with WKT centers
func (system *ProcessedRoadSystem) WriteIntersectionsCSV(w io.Writer) error {
	writer := newCSVWriter(w)
	// 		intersection_id - int, ID of intersection
	// 		type - string, Intersection type
	// 		approaches - int, Number of road arms
	// 		road_ids - string, Participating segments (separated by commas)
	// 		radius - float64, Radius of surface in meters
	// 		crosswalks - int, Number of crosswalks
	// 		geom - geometry (WKT representation)
	err := writer.Write([]string{"intersection_id", "type", "approaches", "road_ids", "radius", "crosswalks", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write intersections header")
	}
	for i := range system.Intersections {
		intersection := &system.Intersections[i]
		err = writer.Write([]string{
			fmt.Sprintf("%d", intersection.Cluster.ID),
			intersection.Cluster.Type.String(),
			fmt.Sprintf("%d", intersection.Cluster.Approaches()),
			strings.Join(intersection.Cluster.RoadIDs, ","),
			fmt.Sprintf("%f", intersection.Radius),
			fmt.Sprintf("%d", len(intersection.CrosswalkGeometry)),
			wkt.MarshalString(toPlanar(intersection.Cluster.Center)),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write intersection")
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteFurnitureCSV writes furniture items with WKT positions
func (system *ProcessedRoadSystem) WriteFurnitureCSV(w io.Writer) error {
	writer := newCSVWriter(w)
	// 		kind - string, Furniture kind
	// 		segment_id - string, ID of road the item belongs to
	// 		z - float64, Elevation
	// 		rotation - float64, Yaw in radians
	// 		scale - float64, Uniform scale
	// 		geom - geometry (WKT representation)
	err := writer.Write([]string{"kind", "segment_id", "z", "rotation", "scale", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write furniture header")
	}
	for _, item := range system.Furniture {
		err = writer.Write([]string{
			item.Kind.String(),
			item.SegmentID,
			fmt.Sprintf("%f", item.Position.Z),
			fmt.Sprintf("%f", item.Rotation),
			fmt.Sprintf("%f", item.Scale),
			wkt.MarshalString(toPlanar(item.Position)),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write furniture item")
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportCSV writes three files: 'name.csv' (roads), 'name_intersections.csv', 'name_furniture.csv'
func (system *ProcessedRoadSystem) ExportCSV(filename string) error {
	fnamePart := strings.Split(filename, ".csv") // to guarantee proper filename and its extension
	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{fnamePart[0] + ".csv", system.WriteRoadsCSV},
		{fnamePart[0] + "_intersections.csv", system.WriteIntersectionsCSV},
		{fnamePart[0] + "_furniture.csv", system.WriteFurnitureCSV},
	}
	for _, f := range files {
		if err := writeFile(f.name, f.write); err != nil {
			return err
		}
	}
	return nil
}

// writeFile creates file and fills it. Close error is reported when writing succeeded
func writeFile(name string, write func(io.Writer) error) error {
	file, err := os.Create(name)
	if err != nil {
		return errors.Wrapf(err, "Can't create file '%s'", name)
	}
	err = write(file)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		return errors.Wrapf(closeErr, "Can't close file '%s'", name)
	}
	if err != nil {
		return errors.Wrapf(err, "Can't export '%s'", name)
	}
	return nil
}
