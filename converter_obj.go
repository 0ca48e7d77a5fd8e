package osm2street

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Meshes returns every non-empty mesh of the system: intersections first, then roads
func (system *ProcessedRoadSystem) Meshes() []*GeometryResult {
	meshes := []*GeometryResult{}
	add := func(geom *GeometryResult) {
		if !geom.IsEmpty() {
			meshes = append(meshes, geom)
		}
	}
	for i := range system.Intersections {
		intersection := &system.Intersections[i]
		add(&intersection.Surface)
		for j := range intersection.CrosswalkGeometry {
			add(&intersection.CrosswalkGeometry[j])
		}
	}
	for i := range system.Roads {
		result := &system.Roads[i]
		add(&result.Pavement)
		add(&result.Curb)
		add(&result.Sidewalk)
		for j := range result.Markings {
			add(&result.Markings[j].Geometry)
		}
	}
	return meshes
}

// WriteOBJ writes meshes as Wavefront OBJ objects. Material names are referenced with `usemtl`
func WriteOBJ(w io.Writer, meshes []*GeometryResult) error {
	bw := bufio.NewWriter(w)
	vertexOffset := 1
	uvOffset := 1
	for _, mesh := range meshes {
		fmt.Fprintf(bw, "o %s\n", mesh.Name)
		fmt.Fprintf(bw, "usemtl %s\n", mesh.Material())
		for _, v := range mesh.Vertices {
			// Y is up in OBJ
			fmt.Fprintf(bw, "v %f %f %f\n", v.X, v.Z, -v.Y)
		}
		hasUV := len(mesh.UVs) == len(mesh.Vertices)
		if hasUV {
			for _, uv := range mesh.UVs {
				fmt.Fprintf(bw, "vt %f %f\n", uv.X, uv.Y)
			}
		}
		for _, face := range mesh.Faces {
			indices := make([]string, len(face))
			for k, idx := range face {
				if hasUV {
					indices[k] = fmt.Sprintf("%d/%d", idx+vertexOffset, idx+uvOffset)
				} else {
					indices[k] = fmt.Sprintf("%d", idx+vertexOffset)
				}
			}
			fmt.Fprintf(bw, "f %s\n", strings.Join(indices, " "))
		}
		vertexOffset += len(mesh.Vertices)
		if hasUV {
			uvOffset += len(mesh.UVs)
		}
	}
	return bw.Flush()
}

// ExportOBJ writes every mesh of the system into single OBJ file
func (system *ProcessedRoadSystem) ExportOBJ(filename string) error {
	meshes := system.Meshes()
	return writeFile(filename, func(w io.Writer) error {
		return WriteOBJ(w, meshes)
	})
}
