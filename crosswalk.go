package osm2street

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// Crosswalks are painted at intersections with at least this number of approaches
	crosswalkMinApproaches = 3
)

// CrosswalkBuilder paints striped crosswalks at intersection approaches
type CrosswalkBuilder struct {
	minApproaches int
}

// NewCrosswalkBuilder returns builder with default approaches threshold
func NewCrosswalkBuilder() *CrosswalkBuilder {
	return &CrosswalkBuilder{
		minApproaches: crosswalkMinApproaches,
	}
}

// BuildCrosswalk emits stripes parallel to traffic laid out across the road
func (builder *CrosswalkBuilder) BuildCrosswalk(anchor CrosswalkAnchor, name string) GeometryResult {
	spec := markingSpecs[MARKING_CROSSWALK]
	mb := newMeshBuilder(name, spec.Color)
	if anchor.Width <= 0 || anchor.Length <= 0 || spec.Width <= 0 {
		return mb.build()
	}
	across := anchor.Direction
	along := r3.Scale(anchor.Length/2.0, anchor.Approach)
	lift := r3.Vec{Z: spec.Thickness}
	base := r3.Add(anchor.Position, lift)
	pitch := spec.Width + spec.GapLength
	for t := -anchor.Width / 2.0; t+spec.Width <= anchor.Width/2.0+minSegmentLength; t += pitch {
		a := r3.Add(base, r3.Scale(t, across))
		b := r3.Add(base, r3.Scale(t+spec.Width, across))
		v0 := mb.addVertex(r3.Sub(a, along))
		v1 := mb.addVertex(r3.Add(a, along))
		v2 := mb.addVertex(r3.Add(b, along))
		v3 := mb.addVertex(r3.Sub(b, along))
		mb.addQuad(v0, v1, v2, v3)
	}
	return mb.build()
}

// Build fills crosswalk geometry of intersection if it has enough approaches
func (builder *CrosswalkBuilder) Build(intersection *IntersectionGeometry) {
	if intersection.Cluster.Approaches() < builder.minApproaches {
		return
	}
	intersection.CrosswalkGeometry = make([]GeometryResult, 0, len(intersection.Crosswalks))
	for i, anchor := range intersection.Crosswalks {
		name := fmt.Sprintf("intersection_%d_crosswalk_%d_%s", intersection.Cluster.ID, i, anchor.SegmentID)
		intersection.CrosswalkGeometry = append(intersection.CrosswalkGeometry, builder.BuildCrosswalk(anchor, name))
	}
}
