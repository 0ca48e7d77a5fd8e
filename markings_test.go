package osm2street

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func countMarkings(markings []RoadMarking) map[MarkingKind]int {
	counts := make(map[MarkingKind]int)
	for _, marking := range markings {
		counts[marking.Kind]++
	}
	return counts
}

func TestGenerateOneway(t *testing.T) {
	road := classifiedRoad(ROAD_CLASS_LOCAL, straightSegment("a", 100))
	road.Oneway = true
	generator := NewRoadMarkingGenerator(DefaultGeometryConfig())

	markings := generator.Generate(&road)
	counts := countMarkings(markings)
	assert.Equal(t, 1, counts[MARKING_SOLID_YELLOW])
	assert.Equal(t, 0, counts[MARKING_DOUBLE_YELLOW])
	// Single boundary between two lanes of the same direction
	assert.Equal(t, 1, counts[MARKING_DASHED_WHITE])
	for _, marking := range markings {
		if marking.Kind == MARKING_SOLID_YELLOW {
			assert.InDelta(t, 3.0-edgeLineInset, marking.Offset, 1e-9)
			assert.Equal(t, MATERIAL_PAINT_YELLOW, marking.Geometry.Material())
		}
	}
}

func TestGenerateTwoWay(t *testing.T) {
	generator := NewRoadMarkingGenerator(DefaultGeometryConfig())
	cases := []struct {
		name   string
		class  RoadClass
		lod    LODLevel
		counts map[MarkingKind]int
	}{
		{
			name: "local", class: ROAD_CLASS_LOCAL,
			counts: map[MarkingKind]int{MARKING_DOUBLE_YELLOW: 1},
		},
		{
			name: "arterial", class: ROAD_CLASS_ARTERIAL,
			counts: map[MarkingKind]int{MARKING_DOUBLE_YELLOW: 1, MARKING_DASHED_WHITE: 2, MARKING_SOLID_WHITE: 2},
		},
		{
			name: "hero", class: ROAD_CLASS_HERO,
			counts: map[MarkingKind]int{MARKING_DASHED_CENTER: 1, MARKING_SOLID_WHITE: 2},
		},
		{
			name: "service", class: ROAD_CLASS_SERVICE,
			counts: map[MarkingKind]int{},
		},
		{
			name: "low detail arterial", class: ROAD_CLASS_ARTERIAL, lod: LOD_LOW,
			counts: map[MarkingKind]int{MARKING_DOUBLE_YELLOW: 1},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			road := classifiedRoad(c.class, straightSegment("a", 100))
			if c.lod != 0 {
				road.LOD = c.lod
			}
			markings := generator.Generate(&road)
			assert.Equal(t, c.counts, countMarkings(markings))
			for _, marking := range markings {
				assert.False(t, marking.Geometry.IsEmpty())
				assertFacesInRange(t, marking.Geometry)
				assert.Less(t, math.Abs(marking.Offset), road.EffectiveWidth()/2)
			}
		})
	}
}

func TestDoubleLine(t *testing.T) {
	road := classifiedRoad(ROAD_CLASS_LOCAL, straightSegment("a", 100))
	generator := NewRoadMarkingGenerator(DefaultGeometryConfig())
	geom := generator.BuildDoubleLine(&road, MARKING_DOUBLE_YELLOW, 0)
	assert.Len(t, geom.Vertices, 8)
	assert.Len(t, geom.Faces, 2)
	// Two strokes are separated by the gap
	spec := markingSpecs[MARKING_DOUBLE_YELLOW]
	minY := math.Inf(1)
	for _, v := range geom.Vertices {
		minY = math.Min(minY, math.Abs(v.Y))
	}
	assert.InDelta(t, spec.GapLength/2, minY, 1e-9)
}

func TestDashedLine(t *testing.T) {
	generator := NewRoadMarkingGenerator(DefaultGeometryConfig())
	spec := markingSpecs[MARKING_DASHED_WHITE]
	for _, length := range []float64{5, 12, 100, 123.4} {
		road := classifiedRoad(ROAD_CLASS_COLLECTOR, straightSegment("a", length))
		geom := generator.BuildDashedLine(&road, MARKING_DASHED_WHITE, 1.75)
		maxDashes := int(math.Ceil(length / spec.Pitch()))
		assert.LessOrEqual(t, len(geom.Faces), maxDashes)
		assert.Len(t, geom.Vertices, 4*len(geom.Faces))
		for _, v := range geom.Vertices {
			assert.True(t, v.X >= -1e-9 && v.X <= length+1e-9)
		}
	}

	// Dashes follow the bend
	road := classifiedRoad(ROAD_CLASS_COLLECTOR, RoadSegment{
		ID:     "bend",
		Points: []r3.Vec{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 50}},
	})
	geom := generator.BuildDashedLine(&road, MARKING_DASHED_WHITE, 0)
	assert.Len(t, geom.Faces, int(math.Ceil(100/spec.Pitch())))
}

func TestGenerateStopLines(t *testing.T) {
	cfg := DefaultDetectorConfig()
	detector := NewIntersectionDetector(cfg)
	builder := NewIntersectionBuilder(cfg)
	segments := armsAt(r3.Vec{}, 100, 0, 180, 270)
	clusters := detector.Detect(segments, nil)
	require.Len(t, clusters, 1)
	intersections := []IntersectionGeometry{builder.Build(clusters[0])}

	generator := NewRoadMarkingGenerator(DefaultGeometryConfig())
	road := classifiedRoad(ROAD_CLASS_LOCAL, segments[0])
	stopLines := generator.GenerateStopLines(&road, intersections, crosswalkMinApproaches)
	require.Len(t, stopLines, 1)
	assert.Equal(t, MARKING_STOP_LINE, stopLines[0].Kind)
	// Traffic arriving to the start of the road uses lanes to the left of the centerline
	assert.InDelta(t, 1.5, stopLines[0].Offset, 1e-9)
	for _, v := range stopLines[0].Geometry.Vertices {
		assert.Greater(t, v.X, intersections[0].Radius)
	}

	// Not enough approaches
	assert.Empty(t, generator.GenerateStopLines(&road, intersections, 4))

	// One-way road leaving the intersection has no stop line
	road.Oneway = true
	assert.Empty(t, generator.GenerateStopLines(&road, intersections, crosswalkMinApproaches))

	service := classifiedRoad(ROAD_CLASS_SERVICE, segments[0])
	assert.Empty(t, generator.GenerateStopLines(&service, intersections, crosswalkMinApproaches))
}
