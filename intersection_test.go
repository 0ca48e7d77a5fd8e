package osm2street

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func lineSegment(id string, pts ...r3.Vec) RoadSegment {
	return RoadSegment{ID: id, Points: pts}
}

// armsAt returns segments starting at center and going outwards with given headings (degrees)
func armsAt(center r3.Vec, length float64, headings ...float64) []RoadSegment {
	segments := make([]RoadSegment, 0, len(headings))
	for i, heading := range headings {
		end := r3.Add(center, r3.Scale(length, directionFromAngle(degreesToRadians(heading))))
		segments = append(segments, lineSegment(string(rune('a'+i)), center, end))
	}
	return segments
}

func sortedRoads(cluster IntersectionCluster) []string {
	roads := append([]string{}, cluster.RoadIDs...)
	sort.Strings(roads)
	return roads
}

func TestDetectMerge(t *testing.T) {
	detector := NewIntersectionDetector(DefaultDetectorConfig())
	segments := []RoadSegment{
		lineSegment("a", r3.Vec{X: 0, Y: 0}, r3.Vec{X: 100, Y: 0}),
		lineSegment("b", r3.Vec{X: 101, Y: 0}, r3.Vec{X: 200, Y: 0}),
	}
	clusters := detector.Detect(segments, nil)
	require.Len(t, clusters, 1)
	assert.Equal(t, []string{"a", "b"}, sortedRoads(clusters[0]))
	assert.Equal(t, INTERSECTION_MERGE, clusters[0].Type)
	assert.InDelta(t, 100.5, clusters[0].Center.X, 1e-9)
	assert.Equal(t, 0, clusters[0].ID)
}

func TestDetectMergeDuplicatedVertex(t *testing.T) {
	detector := NewIntersectionDetector(DefaultDetectorConfig())
	segments := []RoadSegment{
		lineSegment("a", r3.Vec{X: 0, Y: 0}, r3.Vec{X: 0, Y: 100}),
		lineSegment("b", r3.Vec{X: 0, Y: 100}, r3.Vec{X: 0, Y: 100}, r3.Vec{X: 0, Y: 200}),
	}
	clusters := detector.Detect(segments, nil)
	require.Len(t, clusters, 1)
	require.Len(t, clusters[0].Endpoints, 2)
	for _, endpoint := range clusters[0].Endpoints {
		if endpoint.SegmentID == "a" {
			assert.InDelta(t, -math.Pi/2, endpoint.Angle, 1e-9)
		} else {
			assert.InDelta(t, math.Pi/2, endpoint.Angle, 1e-9)
		}
	}
	assert.Equal(t, INTERSECTION_MERGE, clusters[0].Type)
}

func TestDetectDefaultProximity(t *testing.T) {
	assert.Equal(t, 10.0, DefaultDetectorConfig().ProximityThreshold)
	// Endpoints 8 meters apart belong to the same intersection
	segments := []RoadSegment{
		lineSegment("a", r3.Vec{X: 0, Y: 0}, r3.Vec{X: 100, Y: 0}),
		lineSegment("b", r3.Vec{X: 108, Y: 0}, r3.Vec{X: 200, Y: 0}),
	}
	clusters := NewIntersectionDetector(DefaultDetectorConfig()).Detect(segments, nil)
	require.Len(t, clusters, 1)
	assert.Equal(t, INTERSECTION_MERGE, clusters[0].Type)
}

func TestDetectOverlap(t *testing.T) {
	detector := NewIntersectionDetector(DefaultDetectorConfig())
	segments := []RoadSegment{
		lineSegment("a", r3.Vec{X: 0, Y: 0}, r3.Vec{X: 100, Y: 0}),
		lineSegment("b", r3.Vec{X: 100, Y: 0}, r3.Vec{X: 100, Y: 100}),
	}
	clusters := detector.Detect(segments, nil)
	require.Len(t, clusters, 1)
	assert.Equal(t, INTERSECTION_OVERLAP, clusters[0].Type)
}

func TestDetectTypes(t *testing.T) {
	center := r3.Vec{X: 50, Y: 50}
	cases := []struct {
		name     string
		headings []float64
		kind     IntersectionType
		sides    int
	}{
		{name: "t-junction", headings: []float64{0, 180, 270}, kind: INTERSECTION_T_JUNCTION, sides: 6},
		{name: "skewed t-junction", headings: []float64{0, 160, 270}, kind: INTERSECTION_T_JUNCTION, sides: 6},
		{name: "y-junction", headings: []float64{90, 210, 330}, kind: INTERSECTION_Y_JUNCTION, sides: 6},
		{name: "four-way", headings: []float64{0, 90, 180, 270}, kind: INTERSECTION_FOUR_WAY, sides: 8},
		{name: "five-way", headings: []float64{0, 72, 144, 216, 288}, kind: INTERSECTION_FIVE_WAY, sides: 10},
	}
	detector := NewIntersectionDetector(DefaultDetectorConfig())
	builder := NewIntersectionBuilder(detector.Config())
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			clusters := detector.Detect(armsAt(center, 60, c.headings...), nil)
			require.Len(t, clusters, 1)
			cluster := clusters[0]
			assert.Equal(t, c.kind, cluster.Type)
			assert.Equal(t, len(c.headings), cluster.Approaches())

			geom := builder.Build(cluster)
			assert.Len(t, geom.Surface.Vertices, c.sides+1)
			assert.Len(t, geom.Surface.Faces, c.sides)
			for _, face := range geom.Surface.Faces {
				for _, idx := range face {
					assert.True(t, idx >= 0 && idx < len(geom.Surface.Vertices))
				}
			}
			assert.Len(t, geom.Crosswalks, len(c.headings))
		})
	}
}

func TestDetectTolerances(t *testing.T) {
	// Approaches differ by 155 degrees
	segments := armsAt(r3.Vec{}, 100, 0, 155)
	cfg := DefaultDetectorConfig()
	clusters := NewIntersectionDetector(cfg).Detect(segments, nil)
	require.Len(t, clusters, 1)
	assert.Equal(t, INTERSECTION_MERGE, clusters[0].Type)

	cfg.MergeAngleTolerance = 10
	clusters = NewIntersectionDetector(cfg).Detect(segments, nil)
	require.Len(t, clusters, 1)
	assert.Equal(t, INTERSECTION_OVERLAP, clusters[0].Type)
}

func TestDetectMinRoads(t *testing.T) {
	cfg := DefaultDetectorConfig()
	cfg.MinIntersectionRoads = 3
	detector := NewIntersectionDetector(cfg)
	segments := []RoadSegment{
		lineSegment("a", r3.Vec{X: 0, Y: 0}, r3.Vec{X: 100, Y: 0}),
		lineSegment("b", r3.Vec{X: 100, Y: 0}, r3.Vec{X: 200, Y: 0}),
	}
	assert.Empty(t, detector.Detect(segments, nil))

	// Both endpoints of a short road are close to each other: single road is not an intersection
	detector = NewIntersectionDetector(DefaultDetectorConfig())
	assert.Empty(t, detector.Detect([]RoadSegment{lineSegment("short", r3.Vec{X: 0, Y: 0}, r3.Vec{X: 2, Y: 0})}, nil))

	// Segments with less than 2 points have no endpoints
	assert.Empty(t, detector.Detect([]RoadSegment{lineSegment("dot", r3.Vec{X: 0, Y: 0})}, nil))
}

func TestClusteringStrategies(t *testing.T) {
	// Endpoints at x=0, 4 and 8: chained within threshold 5, but 0 and 8 are 8 apart
	segments := []RoadSegment{
		lineSegment("a", r3.Vec{X: -100, Y: 0}, r3.Vec{X: 0, Y: 0}),
		lineSegment("b", r3.Vec{X: 4, Y: 0}, r3.Vec{X: 4, Y: 100}),
		lineSegment("c", r3.Vec{X: 8, Y: 0}, r3.Vec{X: 8, Y: -100}),
	}

	cfg := DefaultDetectorConfig()
	cfg.ProximityThreshold = 5
	cfg.Clustering = CLUSTERING_GREEDY
	greedy := NewIntersectionDetector(cfg).Detect(segments, nil)
	require.Len(t, greedy, 1)
	assert.Equal(t, []string{"a", "b"}, sortedRoads(greedy[0]))

	cfg.Clustering = CLUSTERING_UNION_FIND
	unionFind := NewIntersectionDetector(cfg).Detect(segments, nil)
	require.Len(t, unionFind, 1)
	assert.Equal(t, []string{"a", "b", "c"}, sortedRoads(unionFind[0]))
	assert.Equal(t, INTERSECTION_T_JUNCTION, unionFind[0].Type)

	// Union-find does not depend on input order
	reversed := []RoadSegment{segments[2], segments[1], segments[0]}
	again := NewIntersectionDetector(cfg).Detect(reversed, nil)
	require.Len(t, again, 1)
	assert.Equal(t, sortedRoads(unionFind[0]), sortedRoads(again[0]))
	assert.InDelta(t, unionFind[0].Center.X, again[0].Center.X, 1e-9)
}

func TestDetectWidthResolver(t *testing.T) {
	detector := NewIntersectionDetector(DefaultDetectorConfig())
	segments := armsAt(r3.Vec{}, 50, 0, 90, 180)
	widths := []float64{16, 8, 12}
	clusters := detector.Detect(segments, func(segmentIndex int) float64 {
		return widths[segmentIndex]
	})
	require.Len(t, clusters, 1)
	assert.Equal(t, 16.0, clusters[0].MaxWidth)

	clusters = detector.Detect(segments, nil)
	require.Len(t, clusters, 1)
	assert.Equal(t, DefaultDetectorConfig().DefaultWidth, clusters[0].MaxWidth)
}

func TestIntersectionBuilder(t *testing.T) {
	cfg := DefaultDetectorConfig()
	detector := NewIntersectionDetector(cfg)
	builder := NewIntersectionBuilder(cfg)
	center := r3.Vec{X: 10, Y: 20}
	clusters := detector.Detect(armsAt(center, 50, 0, 90, 180, 270), nil)
	require.Len(t, clusters, 1)

	geom := builder.Build(clusters[0])
	assert.InDelta(t, cfg.DefaultWidth/2+cfg.Margin, geom.Radius, 1e-9)
	assert.Equal(t, MATERIAL_ASPHALT_INTERSECTION, geom.Surface.Material())
	for _, v := range geom.Surface.Vertices[1:] {
		assert.InDelta(t, geom.Radius, planarDistance(v, center), 1e-9)
	}
	for _, anchor := range geom.Crosswalks {
		assert.InDelta(t, anchor.Width/2+cfg.Margin, planarDistance(anchor.Position, center), 1e-9)
		assert.InDelta(t, 0, r3.Dot(anchor.Direction, anchor.Approach), 1e-9)
		assert.Equal(t, cfg.CrosswalkDepth, anchor.Length)
	}
}

func TestCrosswalkBuilder(t *testing.T) {
	cfg := DefaultDetectorConfig()
	detector := NewIntersectionDetector(cfg)
	builder := NewIntersectionBuilder(cfg)
	crosswalks := NewCrosswalkBuilder()

	clusters := detector.Detect(armsAt(r3.Vec{}, 50, 0, 180, 270), nil)
	require.Len(t, clusters, 1)
	geom := builder.Build(clusters[0])
	crosswalks.Build(&geom)
	require.Len(t, geom.CrosswalkGeometry, 3)
	for _, crosswalk := range geom.CrosswalkGeometry {
		// Width 8 with 0.5 stripes and 0.5 gaps
		assert.Len(t, crosswalk.Faces, 8)
		assert.Equal(t, MATERIAL_PAINT_WHITE, crosswalk.Material())
	}

	clusters = detector.Detect(armsAt(r3.Vec{}, 50, 0, 180), nil)
	require.Len(t, clusters, 1)
	geom = builder.Build(clusters[0])
	crosswalks.Build(&geom)
	assert.Empty(t, geom.CrosswalkGeometry)
}
