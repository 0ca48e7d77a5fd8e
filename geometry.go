package osm2street

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// GeometryResult is a mesh payload: vertices, faces (triangles or quads) referencing
// vertices of the same result only, optional per-vertex UVs and material
type GeometryResult struct {
	Name          string
	Vertices      []r3.Vec
	Faces         [][]int
	UVs           []r2.Vec
	MaterialIndex int
}

// IsEmpty returns true if there is nothing to render
func (geom GeometryResult) IsEmpty() bool {
	return len(geom.Vertices) == 0 || len(geom.Faces) == 0
}

// Material returns material of the geometry
func (geom GeometryResult) Material() MaterialID {
	return MaterialID(geom.MaterialIndex)
}

// meshBuilder accumulates vertices and faces during a sweep
type meshBuilder struct {
	name     string
	material MaterialID
	vertices []r3.Vec
	faces    [][]int
	uvs      []r2.Vec
}

func newMeshBuilder(name string, material MaterialID) *meshBuilder {
	return &meshBuilder{
		name:     name,
		material: material,
		vertices: make([]r3.Vec, 0),
		faces:    make([][]int, 0),
	}
}

func (mb *meshBuilder) addVertex(v r3.Vec) int {
	mb.vertices = append(mb.vertices, v)
	return len(mb.vertices) - 1
}

func (mb *meshBuilder) addVertexUV(v r3.Vec, uv r2.Vec) int {
	mb.uvs = append(mb.uvs, uv)
	return mb.addVertex(v)
}

func (mb *meshBuilder) addQuad(a, b, c, d int) {
	mb.faces = append(mb.faces, []int{a, b, c, d})
}

func (mb *meshBuilder) addTriangle(a, b, c int) {
	mb.faces = append(mb.faces, []int{a, b, c})
}

// build returns snapshot of accumulated mesh. Builder may be reused afterwards without affecting the snapshot
func (mb *meshBuilder) build() GeometryResult {
	result := GeometryResult{
		Name:          mb.name,
		Vertices:      make([]r3.Vec, len(mb.vertices)),
		Faces:         make([][]int, len(mb.faces)),
		MaterialIndex: int(mb.material),
	}
	copy(result.Vertices, mb.vertices)
	for i, face := range mb.faces {
		result.Faces[i] = make([]int, len(face))
		copy(result.Faces[i], face)
	}
	if len(mb.uvs) > 0 && len(mb.uvs) == len(mb.vertices) {
		result.UVs = make([]r2.Vec, len(mb.uvs))
		copy(result.UVs, mb.uvs)
	}
	return result
}

// emptyGeometry returns named result without geometry
func emptyGeometry(name string, material MaterialID) GeometryResult {
	return newMeshBuilder(name, material).build()
}
