package osm2street

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func classifiedRoad(class RoadClass, segment RoadSegment) ClassifiedRoad {
	spec := roadClassSpecs[class]
	return ClassifiedRoad{
		Segment:       segment,
		Class:         class,
		Spec:          spec,
		WidthOverride: segment.Width,
		IsHero:        class == ROAD_CLASS_HERO,
		LOD:           spec.LOD,
		Lanes:         spec.Lanes,
		Oneway:        spec.Oneway,
	}
}

func assertFacesInRange(t *testing.T, geom GeometryResult) {
	t.Helper()
	for _, face := range geom.Faces {
		for _, idx := range face {
			assert.True(t, idx >= 0 && idx < len(geom.Vertices), "face index %d out of range in %s", idx, geom.Name)
		}
	}
}

// signedArea returns XY signed area of a face: positive for counter-clockwise order
func signedArea(geom GeometryResult, face []int) float64 {
	area := 0.0
	for i := range face {
		p := geom.Vertices[face[i]]
		q := geom.Vertices[face[(i+1)%len(face)]]
		area += p.X*q.Y - q.X*p.Y
	}
	return area / 2
}

func TestBuildPavementStraight(t *testing.T) {
	segment := straightSegment("a", 50)
	segment.Width = 12
	road := classifiedRoad(ROAD_CLASS_COLLECTOR, segment)
	builder := NewRoadGeometryBuilder(DefaultGeometryConfig())

	pavement := builder.BuildPavement(&road)
	assert.Equal(t, "a_pavement", pavement.Name)
	require.Len(t, pavement.Vertices, 4)
	require.Len(t, pavement.Faces, 1)
	require.Len(t, pavement.UVs, 4)
	for i := 0; i < 2; i++ {
		assert.Equal(t, 0.0, pavement.UVs[2*i].Y)
		assert.Equal(t, 1.0, pavement.UVs[2*i+1].Y)
	}
	assert.InDelta(t, 5.0, pavement.UVs[2].X, 1e-9)
	assertFacesInRange(t, pavement)
	assert.Greater(t, signedArea(pavement, pavement.Faces[0]), 0.0)

	// Left edge at +6, lowered by cross-fall
	left := pavement.Vertices[0]
	assert.InDelta(t, 6.0, left.Y, 1e-9)
	assert.InDelta(t, -6.0*0.02, left.Z, 1e-9)
	right := pavement.Vertices[1]
	assert.InDelta(t, -6.0, right.Y, 1e-9)
	assert.Equal(t, MATERIAL_ASPHALT, pavement.Material())
}

func TestBuildPavementDuplicatedVertices(t *testing.T) {
	segment := RoadSegment{
		ID:     "north",
		Width:  8,
		Points: []r3.Vec{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 20}},
	}
	road := classifiedRoad(ROAD_CLASS_LOCAL, segment)
	pavement := NewRoadGeometryBuilder(DefaultGeometryConfig()).BuildPavement(&road)
	require.Len(t, pavement.Vertices, 10)
	assertFacesInRange(t, pavement)
	for i := 0; i < 5; i++ {
		left, right := pavement.Vertices[2*i], pavement.Vertices[2*i+1]
		assert.InDelta(t, 8.0, planarDistance(left, right), 1e-9, "section %d", i)
		// Heading north keeps left edge at -X
		assert.InDelta(t, -4.0, left.X, 1e-9, "section %d", i)
		assert.InDelta(t, 4.0, right.X, 1e-9, "section %d", i)
	}
}

func TestBuildPavementPolyline(t *testing.T) {
	segment := RoadSegment{
		ID:     "bend",
		Points: []r3.Vec{{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 20}, {X: 40, Y: 20}},
	}
	road := classifiedRoad(ROAD_CLASS_LOCAL, segment)
	builder := NewRoadGeometryBuilder(DefaultGeometryConfig())
	pavement := builder.BuildPavement(&road)
	assert.Len(t, pavement.Vertices, 8)
	assert.Len(t, pavement.Faces, 3)
	assertFacesInRange(t, pavement)
	for _, face := range pavement.Faces {
		assert.Greater(t, signedArea(pavement, face), 0.0)
	}
}

func TestBuildDegenerate(t *testing.T) {
	road := classifiedRoad(ROAD_CLASS_LOCAL, RoadSegment{ID: "dot", Points: []r3.Vec{{X: 1, Y: 1}}})
	builder := NewRoadGeometryBuilder(DefaultGeometryConfig())
	for _, geom := range []GeometryResult{
		builder.BuildPavement(&road),
		builder.BuildCurb(&road),
		builder.BuildSidewalk(&road),
	} {
		assert.True(t, geom.IsEmpty())
		assert.NotEmpty(t, geom.Name)
	}
}

func TestBuildCurb(t *testing.T) {
	road := classifiedRoad(ROAD_CLASS_LOCAL, straightSegment("a", 30))
	builder := NewRoadGeometryBuilder(DefaultGeometryConfig())

	curb := builder.BuildCurb(&road)
	assert.Len(t, curb.Vertices, 16)
	assert.Len(t, curb.Faces, 6)
	assertFacesInRange(t, curb)

	right := builder.BuildCurb(&road, ROAD_SIDE_RIGHT, ROAD_SIDE_RIGHT)
	assert.Len(t, right.Vertices, 8)
	assert.Len(t, right.Faces, 3)
	for _, v := range right.Vertices {
		assert.LessOrEqual(t, v.Y, -4.0+1e-9)
	}

	// Top of the curb is above the pavement edge by curb height
	halfWidth := road.EffectiveWidth() / 2
	top := right.Vertices[1]
	assert.InDelta(t, road.Spec.CurbHeight-halfWidth*0.02, top.Z, 1e-9)

	service := classifiedRoad(ROAD_CLASS_SERVICE, straightSegment("s", 30))
	assert.True(t, builder.BuildCurb(&service).IsEmpty())
}

func TestBuildSidewalk(t *testing.T) {
	road := classifiedRoad(ROAD_CLASS_LOCAL, straightSegment("a", 30))
	cfg := DefaultGeometryConfig()
	builder := NewRoadGeometryBuilder(cfg)

	sidewalk := builder.BuildSidewalk(&road)
	assert.Len(t, sidewalk.Vertices, 16)
	assert.Len(t, sidewalk.Faces, 8)
	assertFacesInRange(t, sidewalk)

	// Outer edge of the left slab
	outer := road.EffectiveWidth()/2 + cfg.CurbTopWidth + road.Spec.SidewalkWidth
	maxY := 0.0
	for _, v := range sidewalk.Vertices {
		if v.Y > maxY {
			maxY = v.Y
		}
	}
	assert.InDelta(t, outer, maxY, 1e-9)

	highway := classifiedRoad(ROAD_CLASS_HIGHWAY, straightSegment("h", 30))
	assert.True(t, builder.BuildSidewalk(&highway).IsEmpty())
}
