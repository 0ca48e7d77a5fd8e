package osm2street

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// RoadMarking is a single painted stroke (or group of strokes) of a road
type RoadMarking struct {
	SegmentID string
	Kind      MarkingKind
	// Lateral offset from the centerline, positive to the left
	Offset   float64
	Geometry GeometryResult
}

const (
	// Distance between road edge and edge line
	edgeLineInset = 0.3
	// Distance between stop line and intersection surface
	stopLineSetback = 1.0
)

// RoadMarkingGenerator lays out paint strokes along classified roads
type RoadMarkingGenerator struct {
	crossFall float64
}

// NewRoadMarkingGenerator returns generator whose strokes follow pavement surface of given configuration
func NewRoadMarkingGenerator(cfg GeometryConfig) *RoadMarkingGenerator {
	return &RoadMarkingGenerator{
		crossFall: cfg.CrossFall,
	}
}

// surfaceLift returns vertical offset of paint relative to centerline
func (generator *RoadMarkingGenerator) surfaceLift(road *ClassifiedRoad, spec MarkingSpec) float64 {
	return spec.Thickness - road.EffectiveWidth()/2.0*generator.crossFall
}

// markingDetail returns detail level of the road taking LOD into account
func markingDetail(road *ClassifiedRoad) MarkingDetail {
	detail := road.Spec.MarkingDetail
	if road.LOD == LOD_LOW && detail > MARKING_DETAIL_MINIMAL {
		detail = MARKING_DETAIL_MINIMAL
	}
	return detail
}

// laneLayout returns span occupied by lanes, lane width and number of lanes to the left of the centerline
func laneLayout(road *ClassifiedRoad) (float64, float64, int) {
	laneWidth := road.LaneWidth()
	if road.Lanes <= 0 || laneWidth <= 0 {
		return road.EffectiveWidth(), 0, 0
	}
	span := float64(road.Lanes) * laneWidth
	if road.Oneway {
		return span, laneWidth, 0
	}
	// Backward lanes are on the left. Extra lane of odd count goes forward
	return span, laneWidth, road.Lanes / 2
}

// centerOffset returns lateral offset of the line dividing opposite directions
func centerOffset(road *ClassifiedRoad) float64 {
	span, laneWidth, leftLanes := laneLayout(road)
	if laneWidth <= 0 {
		return 0
	}
	return span/2.0 - float64(leftLanes)*laneWidth
}

// Generate returns all longitudinal markings of the road
func (generator *RoadMarkingGenerator) Generate(road *ClassifiedRoad) []RoadMarking {
	if len(road.Segment.Points) < 2 {
		return nil
	}
	detail := markingDetail(road)
	if detail == MARKING_DETAIL_NONE {
		return nil
	}
	markings := []RoadMarking{}
	span, laneWidth, leftLanes := laneLayout(road)
	center := centerOffset(road)
	switch {
	case road.Oneway:
		offset := span/2.0 - edgeLineInset
		markings = append(markings, generator.solid(road, MARKING_SOLID_YELLOW, offset))
	case !road.IsHero:
		markings = append(markings, generator.doubleYellow(road, center))
	default:
		markings = append(markings, generator.dashed(road, MARKING_DASHED_CENTER, center))
	}
	if detail >= MARKING_DETAIL_STANDARD && road.Lanes > 1 && laneWidth > 0 {
		for i := 1; i < road.Lanes; i++ {
			if !road.Oneway && i == leftLanes {
				continue
			}
			offset := span/2.0 - float64(i)*laneWidth
			markings = append(markings, generator.dashed(road, MARKING_DASHED_WHITE, offset))
		}
	}
	if detail == MARKING_DETAIL_FULL {
		edge := road.EffectiveWidth()/2.0 - edgeLineInset
		markings = append(markings,
			generator.solid(road, MARKING_SOLID_WHITE, edge),
			generator.solid(road, MARKING_SOLID_WHITE, -edge),
		)
	}
	return markings
}

// markingName returns unique name of the stroke
func markingName(road *ClassifiedRoad, kind MarkingKind, offset float64) string {
	return fmt.Sprintf("%s_%s_%.2f", road.Segment.ID, kind, offset)
}

// addRails sweeps a stroke of given width at lateral offset into the mesh
func addRails(mb *meshBuilder, frames []crossSection, offset, width, dz float64) {
	first := len(mb.vertices)
	for _, frame := range frames {
		mb.addVertex(frame.lateral(offset+width/2.0, dz))
		mb.addVertex(frame.lateral(offset-width/2.0, dz))
	}
	for i := 0; i < len(frames)-1; i++ {
		l0, r0 := first+2*i, first+2*i+1
		l1, r1 := first+2*(i+1), first+2*(i+1)+1
		mb.addQuad(r0, r1, l1, l0)
	}
}

// BuildSolidLine sweeps continuous stroke of given kind at lateral offset
func (generator *RoadMarkingGenerator) BuildSolidLine(road *ClassifiedRoad, kind MarkingKind, offset float64) GeometryResult {
	spec := markingSpecs[kind]
	name := markingName(road, kind, offset)
	if len(road.Segment.Points) < 2 {
		return emptyGeometry(name, spec.Color)
	}
	mb := newMeshBuilder(name, spec.Color)
	addRails(mb, sweepFrames(road.Segment.Points), offset, spec.Width, generator.surfaceLift(road, spec))
	return mb.build()
}

// BuildDoubleLine sweeps two parallel strokes around lateral offset
func (generator *RoadMarkingGenerator) BuildDoubleLine(road *ClassifiedRoad, kind MarkingKind, offset float64) GeometryResult {
	spec := markingSpecs[kind]
	name := markingName(road, kind, offset)
	if len(road.Segment.Points) < 2 {
		return emptyGeometry(name, spec.Color)
	}
	mb := newMeshBuilder(name, spec.Color)
	frames := sweepFrames(road.Segment.Points)
	shift := spec.GapLength/2.0 + spec.Width/2.0
	dz := generator.surfaceLift(road, spec)
	addRails(mb, frames, offset+shift, spec.Width, dz)
	addRails(mb, frames, offset-shift, spec.Width, dz)
	return mb.build()
}

// BuildDashedLine emits one independent quad per dash
func (generator *RoadMarkingGenerator) BuildDashedLine(road *ClassifiedRoad, kind MarkingKind, offset float64) GeometryResult {
	spec := markingSpecs[kind]
	name := markingName(road, kind, offset)
	points := road.Segment.Points
	if len(points) < 2 {
		return emptyGeometry(name, spec.Color)
	}
	cumulative := arcLengths(points)
	total := cumulative[len(cumulative)-1]
	dz := generator.surfaceLift(road, spec)
	mb := newMeshBuilder(name, spec.Color)
	for _, dash := range layoutDashes(total, spec.DashLength, spec.GapLength) {
		startPos, startDir := pointAtArcLength(points, cumulative, dash.start)
		endPos, endDir := pointAtArcLength(points, cumulative, dash.end)
		startFrame := crossSection{center: startPos, tangent: startDir, left: leftPerpendicular(startDir)}
		endFrame := crossSection{center: endPos, tangent: endDir, left: leftPerpendicular(endDir)}
		sl := mb.addVertex(startFrame.lateral(offset+spec.Width/2.0, dz))
		sr := mb.addVertex(startFrame.lateral(offset-spec.Width/2.0, dz))
		el := mb.addVertex(endFrame.lateral(offset+spec.Width/2.0, dz))
		er := mb.addVertex(endFrame.lateral(offset-spec.Width/2.0, dz))
		mb.addQuad(sr, er, el, sl)
	}
	return mb.build()
}

func (generator *RoadMarkingGenerator) solid(road *ClassifiedRoad, kind MarkingKind, offset float64) RoadMarking {
	return RoadMarking{SegmentID: road.Segment.ID, Kind: kind, Offset: offset, Geometry: generator.BuildSolidLine(road, kind, offset)}
}

func (generator *RoadMarkingGenerator) doubleYellow(road *ClassifiedRoad, offset float64) RoadMarking {
	return RoadMarking{SegmentID: road.Segment.ID, Kind: MARKING_DOUBLE_YELLOW, Offset: offset, Geometry: generator.BuildDoubleLine(road, MARKING_DOUBLE_YELLOW, offset)}
}

func (generator *RoadMarkingGenerator) dashed(road *ClassifiedRoad, kind MarkingKind, offset float64) RoadMarking {
	return RoadMarking{SegmentID: road.Segment.ID, Kind: kind, Offset: offset, Geometry: generator.BuildDashedLine(road, kind, offset)}
}

// GenerateStopLines returns stop lines across arriving lanes where the road enters
// intersections with at least minApproaches arms
func (generator *RoadMarkingGenerator) GenerateStopLines(road *ClassifiedRoad, intersections []IntersectionGeometry, minApproaches int) []RoadMarking {
	points := road.Segment.Points
	if len(points) < 2 || markingDetail(road) < MARKING_DETAIL_STANDARD {
		return nil
	}
	spec := markingSpecs[MARKING_STOP_LINE]
	cumulative := arcLengths(points)
	total := cumulative[len(cumulative)-1]
	span, _, _ := laneLayout(road)
	center := centerOffset(road)
	dz := generator.surfaceLift(road, spec)
	markings := []RoadMarking{}
	for i := range intersections {
		intersection := &intersections[i]
		if intersection.Cluster.Approaches() < minApproaches {
			continue
		}
		for _, endpoint := range intersection.Cluster.Endpoints {
			if endpoint.SegmentID != road.Segment.ID {
				continue
			}
			// One-way traffic arrives at the end of the line only
			if road.Oneway && endpoint.IsStart {
				continue
			}
			setback := intersection.Radius + stopLineSetback
			distance := total - setback
			// Arriving lanes are to the right of travel direction
			from, to := -span/2.0, center
			if endpoint.IsStart {
				distance = setback
				from, to = center, span/2.0
			}
			if road.Oneway {
				from, to = -span/2.0, span/2.0
			}
			if distance <= 0 || distance >= total || to-from < minSegmentLength {
				continue
			}
			pos, dir := pointAtArcLength(points, cumulative, distance)
			frame := crossSection{center: pos, tangent: dir, left: leftPerpendicular(dir)}
			half := r3.Scale(spec.Width/2.0, dir)
			name := fmt.Sprintf("%s_%s_%d", road.Segment.ID, MARKING_STOP_LINE, intersection.Cluster.ID)
			mb := newMeshBuilder(name, spec.Color)
			lb := mb.addVertex(r3.Sub(frame.lateral(to, dz), half))
			rb := mb.addVertex(r3.Sub(frame.lateral(from, dz), half))
			rf := mb.addVertex(r3.Add(frame.lateral(from, dz), half))
			lf := mb.addVertex(r3.Add(frame.lateral(to, dz), half))
			mb.addQuad(rb, rf, lf, lb)
			markings = append(markings, RoadMarking{
				SegmentID: road.Segment.ID,
				Kind:      MARKING_STOP_LINE,
				Offset:    (from + to) / 2.0,
				Geometry:  mb.build(),
			})
		}
	}
	return markings
}
