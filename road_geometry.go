package osm2street

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// RoadSide is a side of a road relative to its centerline direction
type RoadSide uint16

const (
	ROAD_SIDE_RIGHT = RoadSide(iota + 1)
	ROAD_SIDE_LEFT
	ROAD_SIDE_BOTH
	ROAD_SIDE_RANDOM
)

func (iotaIdx RoadSide) String() string {
	return [...]string{"right", "left", "both", "random"}[iotaIdx-1]
}

// sign returns +1 for the left side (direction of left perpendicular) and -1 for the right one
func (iotaIdx RoadSide) sign() float64 {
	if iotaIdx == ROAD_SIDE_LEFT {
		return 1
	}
	return -1
}

// GeometryConfig holds cross-section parameters shared by all classes
type GeometryConfig struct {
	// Transverse drainage slope: pavement edges are lowered by half width * CrossFall
	CrossFall float64
	// Distance along the road after which U coordinate repeats
	UVTileLength      float64
	CurbTopWidth      float64
	CurbBottomWidth   float64
	SidewalkThickness float64
}

// DefaultGeometryConfig returns default cross-section parameters
func DefaultGeometryConfig() GeometryConfig {
	return GeometryConfig{
		CrossFall:         0.02,
		UVTileLength:      10.0,
		CurbTopWidth:      0.15,
		CurbBottomWidth:   0.2,
		SidewalkThickness: 0.15,
	}
}

// RoadGeometryBuilder sweeps cross-section profiles along classified road centerlines
type RoadGeometryBuilder struct {
	cfg GeometryConfig
}

// NewRoadGeometryBuilder returns builder for given configuration
func NewRoadGeometryBuilder(cfg GeometryConfig) *RoadGeometryBuilder {
	if cfg.UVTileLength <= 0 {
		cfg.UVTileLength = DefaultGeometryConfig().UVTileLength
	}
	return &RoadGeometryBuilder{
		cfg: cfg,
	}
}

// crossSection is a tangent frame at a centerline vertex
type crossSection struct {
	center  r3.Vec
	left    r3.Vec
	arcLen  float64
	tangent r3.Vec
}

func sweepFrames(points []r3.Vec) []crossSection {
	tangents := polylineTangents(points)
	cumulative := arcLengths(points)
	frames := make([]crossSection, len(points))
	for i, pt := range points {
		frames[i] = crossSection{
			center:  pt,
			tangent: tangents[i],
			left:    leftPerpendicular(tangents[i]),
			arcLen:  cumulative[i],
		}
	}
	return frames
}

// lateral returns point shifted sideways by offset (positive to the left) and vertically by dz
func (frame crossSection) lateral(offset, dz float64) r3.Vec {
	pt := r3.Add(frame.center, r3.Scale(offset, frame.left))
	pt.Z += dz
	return pt
}

// edgeDrop returns how much pavement edge is lowered relative to the centerline
func (builder *RoadGeometryBuilder) edgeDrop(halfWidth float64) float64 {
	return halfWidth * builder.cfg.CrossFall
}

// BuildPavement emits the road surface: a left/right vertex pair per centerline vertex
// stitched with quads
func (builder *RoadGeometryBuilder) BuildPavement(road *ClassifiedRoad) GeometryResult {
	name := fmt.Sprintf("%s_pavement", road.Segment.ID)
	points := road.Segment.Points
	if len(points) < 2 {
		return emptyGeometry(name, road.Spec.Material)
	}
	halfWidth := road.EffectiveWidth() / 2.0
	drop := builder.edgeDrop(halfWidth)
	mb := newMeshBuilder(name, road.Spec.Material)
	frames := sweepFrames(points)
	for _, frame := range frames {
		u := frame.arcLen / builder.cfg.UVTileLength
		mb.addVertexUV(frame.lateral(halfWidth, -drop), r2.Vec{X: u, Y: 0})
		mb.addVertexUV(frame.lateral(-halfWidth, -drop), r2.Vec{X: u, Y: 1})
	}
	for i := 0; i < len(frames)-1; i++ {
		l0, r0 := 2*i, 2*i+1
		l1, r1 := 2*(i+1), 2*(i+1)+1
		mb.addQuad(r0, r1, l1, l0)
	}
	return mb.build()
}

// addSideQuad adds quad for a side profile keeping outward facing normals on both sides
func addSideQuad(mb *meshBuilder, side RoadSide, a, b, c, d int) {
	if side == ROAD_SIDE_LEFT {
		mb.addQuad(d, c, b, a)
		return
	}
	mb.addQuad(a, b, c, d)
}

// expandSides turns BOTH into explicit list of sides
func expandSides(sides []RoadSide) []RoadSide {
	if len(sides) == 0 {
		return []RoadSide{ROAD_SIDE_RIGHT, ROAD_SIDE_LEFT}
	}
	result := make([]RoadSide, 0, 2)
	seen := make(map[RoadSide]struct{}, 2)
	for _, side := range sides {
		candidates := []RoadSide{side}
		if side == ROAD_SIDE_BOTH {
			candidates = []RoadSide{ROAD_SIDE_RIGHT, ROAD_SIDE_LEFT}
		}
		for _, candidate := range candidates {
			if candidate != ROAD_SIDE_RIGHT && candidate != ROAD_SIDE_LEFT {
				continue
			}
			if _, ok := seen[candidate]; ok {
				continue
			}
			seen[candidate] = struct{}{}
			result = append(result, candidate)
		}
	}
	return result
}

// BuildCurb emits curb profiles for given sides (both sides if none provided).
// Profile per cross-section: bottom-outer, top-outer, top-inner and bottom-inner at pavement edge
func (builder *RoadGeometryBuilder) BuildCurb(road *ClassifiedRoad, sides ...RoadSide) GeometryResult {
	name := fmt.Sprintf("%s_curb", road.Segment.ID)
	points := road.Segment.Points
	if len(points) < 2 || !road.Spec.Curb {
		return emptyGeometry(name, MATERIAL_CONCRETE_CURB)
	}
	halfWidth := road.EffectiveWidth() / 2.0
	drop := builder.edgeDrop(halfWidth)
	height := road.Spec.CurbHeight
	mb := newMeshBuilder(name, MATERIAL_CONCRETE_CURB)
	frames := sweepFrames(points)
	for _, side := range expandSides(sides) {
		sign := side.sign()
		first := len(mb.vertices)
		for _, frame := range frames {
			mb.addVertex(frame.lateral(sign*(halfWidth+builder.cfg.CurbBottomWidth), -drop))
			mb.addVertex(frame.lateral(sign*(halfWidth+builder.cfg.CurbTopWidth), height-drop))
			mb.addVertex(frame.lateral(sign*halfWidth, height-drop))
			mb.addVertex(frame.lateral(sign*halfWidth, -drop))
		}
		for i := 0; i < len(frames)-1; i++ {
			cur := first + 4*i
			next := cur + 4
			bo0, to0, ti0, bi0 := cur, cur+1, cur+2, cur+3
			bo1, to1, ti1, bi1 := next, next+1, next+2, next+3
			addSideQuad(mb, side, bo0, bo1, to1, to0) // outer sloped face
			addSideQuad(mb, side, to0, to1, ti1, ti0) // top
			addSideQuad(mb, side, ti0, ti1, bi1, bi0) // inner face
		}
	}
	return mb.build()
}

// BuildSidewalk emits solid sidewalk slabs on both sides of the road at curb-top height
func (builder *RoadGeometryBuilder) BuildSidewalk(road *ClassifiedRoad) GeometryResult {
	name := fmt.Sprintf("%s_sidewalk", road.Segment.ID)
	points := road.Segment.Points
	if len(points) < 2 || !road.Spec.Sidewalk || road.Spec.SidewalkWidth <= 0 {
		return emptyGeometry(name, MATERIAL_CONCRETE_SIDEWALK)
	}
	halfWidth := road.EffectiveWidth() / 2.0
	drop := builder.edgeDrop(halfWidth)
	inner := halfWidth
	top := -drop
	if road.Spec.Curb {
		inner += builder.cfg.CurbTopWidth
		top += road.Spec.CurbHeight
	}
	outer := inner + road.Spec.SidewalkWidth
	bottom := top - builder.cfg.SidewalkThickness

	mb := newMeshBuilder(name, MATERIAL_CONCRETE_SIDEWALK)
	frames := sweepFrames(points)
	for _, side := range []RoadSide{ROAD_SIDE_RIGHT, ROAD_SIDE_LEFT} {
		sign := side.sign()
		first := len(mb.vertices)
		for _, frame := range frames {
			mb.addVertex(frame.lateral(sign*inner, top))
			mb.addVertex(frame.lateral(sign*outer, top))
			mb.addVertex(frame.lateral(sign*inner, bottom))
			mb.addVertex(frame.lateral(sign*outer, bottom))
		}
		for i := 0; i < len(frames)-1; i++ {
			cur := first + 4*i
			next := cur + 4
			it0, ot0, ib0, ob0 := cur, cur+1, cur+2, cur+3
			it1, ot1, ib1, ob1 := next, next+1, next+2, next+3
			addSideQuad(mb, side, ot0, ot1, it1, it0) // top
			addSideQuad(mb, side, ob0, ob1, ot1, ot0) // outer edge
			addSideQuad(mb, side, it0, it1, ib1, ib0) // inner edge
			addSideQuad(mb, side, ib0, ib1, ob1, ob0) // bottom
		}
	}
	return mb.build()
}
