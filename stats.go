package osm2street

import (
	"fmt"
	"sort"
	"strings"
)

// Stats summarizes processed road system
type Stats struct {
	Segments        int
	SkippedSegments int
	Intersections   int
	Crosswalks      int
	Markings        int
	Furniture       int
	Vertices        int
	Faces           int
	// Total length of road centerlines in meters
	TotalLength         float64
	SegmentsByClass     map[RoadClass]int
	IntersectionsByType map[IntersectionType]int
	FurnitureByKind     map[FurnitureKind]int
}

func collectStats(system *ProcessedRoadSystem, skipped int) Stats {
	stats := Stats{
		Segments:            len(system.Roads),
		SkippedSegments:     skipped,
		Intersections:       len(system.Intersections),
		Furniture:           len(system.Furniture),
		SegmentsByClass:     make(map[RoadClass]int),
		IntersectionsByType: make(map[IntersectionType]int),
		FurnitureByKind:     make(map[FurnitureKind]int),
	}
	addMesh := func(geom *GeometryResult) {
		stats.Vertices += len(geom.Vertices)
		stats.Faces += len(geom.Faces)
	}
	for i := range system.Roads {
		result := &system.Roads[i]
		stats.SegmentsByClass[result.Road.Class]++
		stats.TotalLength += result.Road.Segment.Length()
		stats.Markings += len(result.Markings)
		addMesh(&result.Pavement)
		addMesh(&result.Curb)
		addMesh(&result.Sidewalk)
		for j := range result.Markings {
			addMesh(&result.Markings[j].Geometry)
		}
	}
	for i := range system.Intersections {
		intersection := &system.Intersections[i]
		stats.IntersectionsByType[intersection.Cluster.Type]++
		addMesh(&intersection.Surface)
		for j := range intersection.CrosswalkGeometry {
			if !intersection.CrosswalkGeometry[j].IsEmpty() {
				stats.Crosswalks++
			}
			addMesh(&intersection.CrosswalkGeometry[j])
		}
	}
	for _, item := range system.Furniture {
		stats.FurnitureByKind[item.Kind]++
	}
	return stats
}

func (stats Stats) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Segments: %d (skipped: %d)\n", stats.Segments, stats.SkippedSegments)
	fmt.Fprintf(&sb, "Total length: %.1f m\n", stats.TotalLength)
	fmt.Fprintf(&sb, "Intersections: %d (crosswalks: %d)\n", stats.Intersections, stats.Crosswalks)
	fmt.Fprintf(&sb, "Markings: %d\n", stats.Markings)
	fmt.Fprintf(&sb, "Furniture: %d\n", stats.Furniture)
	fmt.Fprintf(&sb, "Vertices: %d, faces: %d\n", stats.Vertices, stats.Faces)
	classes := make([]RoadClass, 0, len(stats.SegmentsByClass))
	for class := range stats.SegmentsByClass {
		classes = append(classes, class)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	for _, class := range classes {
		fmt.Fprintf(&sb, "\tclass %s: %d\n", class, stats.SegmentsByClass[class])
	}
	types := make([]IntersectionType, 0, len(stats.IntersectionsByType))
	for intersectionType := range stats.IntersectionsByType {
		types = append(types, intersectionType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, intersectionType := range types {
		fmt.Fprintf(&sb, "\tintersection %s: %d\n", intersectionType, stats.IntersectionsByType[intersectionType])
	}
	kinds := make([]FurnitureKind, 0, len(stats.FurnitureByKind))
	for kind := range stats.FurnitureByKind {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, kind := range kinds {
		fmt.Fprintf(&sb, "\tfurniture %s: %d\n", kind, stats.FurnitureByKind[kind])
	}
	return sb.String()
}
