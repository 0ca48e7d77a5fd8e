package osm2street

import (
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// crossroads returns four named roads meeting at the origin, a service road and a degenerate segment
func crossroads() []RoadSegment {
	segments := armsAt(r3.Vec{}, 200, 0, 90, 180, 270)
	segments[0].Name = "Elm Street"
	segments[1].Name = "Oak Avenue"
	segments[2].Name = "Elm Street"
	segments[3].Name = "Oak Avenue"
	segments = append(segments,
		RoadSegment{
			ID:     "alley",
			Points: []r3.Vec{{X: 50, Y: 50}, {X: 150, Y: 50}},
			Tags:   osm.Tags{{Key: "highway", Value: "service"}},
		},
		RoadSegment{ID: "broken", Points: []r3.Vec{{X: 1, Y: 1}}},
	)
	return segments
}

func TestProcess(t *testing.T) {
	processor := NewRoadSystemProcessor(WithSeed(7))
	system := processor.Process(crossroads())

	require.Len(t, system.Roads, 5)
	assert.Equal(t, 1, system.Stats.SkippedSegments)
	assert.Equal(t, 5, system.Stats.Segments)
	for i, id := range []string{"a", "b", "c", "d", "alley"} {
		assert.Equal(t, id, system.Roads[i].Road.Segment.ID)
	}

	require.Len(t, system.Intersections, 1)
	intersection := system.Intersections[0]
	assert.Equal(t, INTERSECTION_FOUR_WAY, intersection.Cluster.Type)
	// Widest approach is the arterial one
	assert.Equal(t, roadClassSpecs[ROAD_CLASS_ARTERIAL].Width, intersection.Cluster.MaxWidth)
	assert.Len(t, intersection.CrosswalkGeometry, 4)

	byID := make(map[string]RoadResult)
	for _, result := range system.Roads {
		byID[result.Road.Segment.ID] = result
		assert.False(t, result.Pavement.IsEmpty())
	}
	assert.Equal(t, ROAD_CLASS_LOCAL, byID["a"].Road.Class)
	assert.Equal(t, ROAD_CLASS_ARTERIAL, byID["b"].Road.Class)
	assert.False(t, byID["a"].Curb.IsEmpty())
	assert.False(t, byID["a"].Sidewalk.IsEmpty())

	// Stop lines at the four-way
	stopLines := countMarkings(byID["a"].Markings)[MARKING_STOP_LINE]
	assert.Equal(t, 1, stopLines)

	// Low detail road gets pavement only
	alley := byID["alley"]
	assert.Equal(t, LOD_LOW, alley.Road.LOD)
	assert.True(t, alley.Curb.IsEmpty())
	assert.True(t, alley.Sidewalk.IsEmpty())
	assert.Empty(t, alley.Markings)

	assert.Equal(t, 1, system.Stats.IntersectionsByType[INTERSECTION_FOUR_WAY])
	assert.Equal(t, 2, system.Stats.SegmentsByClass[ROAD_CLASS_LOCAL])
	assert.Equal(t, 2, system.Stats.SegmentsByClass[ROAD_CLASS_ARTERIAL])
	assert.Equal(t, 1, system.Stats.SegmentsByClass[ROAD_CLASS_SERVICE])
	assert.InDelta(t, 900.0, system.Stats.TotalLength, 1e-6)
	assert.Equal(t, 4, system.Stats.Crosswalks)
	assert.Equal(t, len(system.Furniture), system.Stats.Furniture)
	total := 0
	for _, count := range system.Stats.FurnitureByKind {
		total += count
	}
	assert.Equal(t, len(system.Furniture), total)
	assert.NotEmpty(t, system.Stats.String())
}

func TestProcessPartialDetectorConfig(t *testing.T) {
	processor := NewRoadSystemProcessor(WithDetectorConfig(DetectorConfig{ProximityThreshold: 8}))
	system := processor.Process(crossroads())
	require.Len(t, system.Intersections, 1)
	intersection := system.Intersections[0]
	assert.Equal(t, INTERSECTION_FOUR_WAY, intersection.Cluster.Type)
	defaults := DefaultDetectorConfig()
	assert.InDelta(t, intersection.Cluster.MaxWidth/2+defaults.Margin, intersection.Radius, 1e-9)
	require.Len(t, intersection.CrosswalkGeometry, 4)
	for _, crosswalk := range intersection.CrosswalkGeometry {
		assert.False(t, crosswalk.IsEmpty(), crosswalk.Name)
	}
	assert.Equal(t, 4, system.Stats.Crosswalks)

	// Empty crosswalk meshes are not counted
	empty := ProcessedRoadSystem{
		Intersections: []IntersectionGeometry{{CrosswalkGeometry: []GeometryResult{emptyGeometry("empty", MATERIAL_PAINT_WHITE)}}},
	}
	assert.Equal(t, 0, collectStats(&empty, 0).Crosswalks)
}

func TestProcessDuplicateSegmentIDs(t *testing.T) {
	segments := armsAt(r3.Vec{}, 100, 0, 90, 180)
	segments[0].ID, segments[0].Width = "dup", 20
	segments[1].ID, segments[1].Width = "dup", 6
	segments[2].ID, segments[2].Width = "z", 6
	system := NewRoadSystemProcessor().Process(segments)
	require.Len(t, system.Intersections, 1)
	assert.Equal(t, 20.0, system.Intersections[0].Cluster.MaxWidth)
}

func TestProcessWorkers(t *testing.T) {
	sequential := NewRoadSystemProcessor(WithSeed(11)).Process(crossroads())
	parallel := NewRoadSystemProcessor(WithSeed(11), WithWorkers(4)).Process(crossroads())
	assert.Equal(t, sequential, parallel)
}

func TestProcessOptimized(t *testing.T) {
	processor := NewRoadSystemProcessor(
		WithLODMode(LOD_MODE_OPTIMIZED),
		WithHeroRoads([]string{"Oak Avenue"}),
	)
	system := processor.Process(crossroads())
	allowed := make(map[FurnitureKind]struct{})
	for _, kind := range FurnitureKindsOptimized {
		allowed[kind] = struct{}{}
	}
	for _, item := range system.Furniture {
		_, ok := allowed[item.Kind]
		assert.True(t, ok, item.Kind.String())
	}
	for _, result := range system.Roads {
		if result.Road.IsHero {
			assert.Equal(t, LOD_HERO, result.Road.LOD)
			continue
		}
		assert.LessOrEqual(t, result.Road.LOD, LOD_MEDIUM)
	}
	assert.Equal(t, 2, system.Stats.SegmentsByClass[ROAD_CLASS_HERO])
}

func TestProcessEmpty(t *testing.T) {
	system := NewRoadSystemProcessor().Process(nil)
	assert.Empty(t, system.Roads)
	assert.Empty(t, system.Intersections)
	assert.Empty(t, system.Furniture)
	assert.Equal(t, 0, system.Stats.Segments)
}

func TestParseLODMode(t *testing.T) {
	assert.Equal(t, LOD_MODE_OPTIMIZED, ParseLODMode(" Optimized "))
	assert.Equal(t, LOD_MODE_HIGH_DETAIL, ParseLODMode("high_detail"))
	assert.Equal(t, LOD_MODE_HIGH_DETAIL, ParseLODMode("whatever"))
}
