package osm2street

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// CrosswalkAnchor describes where and how a crosswalk should be painted on an approach
type CrosswalkAnchor struct {
	SegmentID string
	Position  r3.Vec
	// Unit vector across the road
	Direction r3.Vec
	// Unit vector from the intersection into the road
	Approach r3.Vec
	Width    float64
	Length   float64
}

// IntersectionGeometry is a finalized cluster with its surface and crosswalk anchors
type IntersectionGeometry struct {
	Cluster    IntersectionCluster
	Radius     float64
	Surface    GeometryResult
	Crosswalks []CrosswalkAnchor
	// Filled by CrosswalkBuilder for clusters with enough approaches
	CrosswalkGeometry []GeometryResult
}

// IntersectionBuilder emits intersection surfaces and crosswalk anchors
type IntersectionBuilder struct {
	margin         float64
	crosswalkDepth float64
}

// NewIntersectionBuilder returns builder using margin and crosswalk depth from detector configuration
func NewIntersectionBuilder(cfg DetectorConfig) *IntersectionBuilder {
	return &IntersectionBuilder{
		margin:         cfg.Margin,
		crosswalkDepth: cfg.CrosswalkDepth,
	}
}

// Radius returns radius of intersection surface
func (builder *IntersectionBuilder) Radius(cluster *IntersectionCluster) float64 {
	return cluster.MaxWidth/2.0 + builder.margin
}

// Build returns surface fan polygon and crosswalk anchors for the cluster
func (builder *IntersectionBuilder) Build(cluster IntersectionCluster) IntersectionGeometry {
	radius := builder.Radius(&cluster)
	result := IntersectionGeometry{
		Cluster:    cluster,
		Radius:     radius,
		Surface:    builder.buildSurface(&cluster, radius),
		Crosswalks: make([]CrosswalkAnchor, 0, len(cluster.Endpoints)),
	}
	for _, endpoint := range cluster.Endpoints {
		approach := directionFromAngle(endpoint.Angle)
		position := r3.Add(cluster.Center, r3.Scale(endpoint.Width/2.0+builder.margin, approach))
		result.Crosswalks = append(result.Crosswalks, CrosswalkAnchor{
			SegmentID: endpoint.SegmentID,
			Position:  position,
			Direction: leftPerpendicular(approach),
			Approach:  approach,
			Width:     endpoint.Width,
			Length:    builder.crosswalkDepth,
		})
	}
	return result
}

// buildSurface emits a convex fan: center vertex plus ring, one triangle per side
func (builder *IntersectionBuilder) buildSurface(cluster *IntersectionCluster, radius float64) GeometryResult {
	name := fmt.Sprintf("intersection_%d_%s", cluster.ID, cluster.Type)
	sides, ok := polygonSidesByIntersection[cluster.Type]
	if !ok {
		sides = defaultPolygonSides
	}
	startAngle := math.Pi / float64(sides)
	if len(cluster.Endpoints) > 0 {
		startAngle += cluster.Endpoints[0].Angle
	}
	mb := newMeshBuilder(name, MATERIAL_ASPHALT_INTERSECTION)
	center := mb.addVertex(cluster.Center)
	for i := 0; i < sides; i++ {
		angle := startAngle + 2*math.Pi*float64(i)/float64(sides)
		mb.addVertex(r3.Add(cluster.Center, r3.Scale(radius, directionFromAngle(angle))))
	}
	for i := 0; i < sides; i++ {
		current := center + 1 + i
		next := center + 1 + (i+1)%sides
		mb.addTriangle(center, current, next)
	}
	return mb.build()
}
