package osm2street

import (
	"hash/fnv"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat/distuv"
)

// FurnitureDistributor places street furniture along classified roads.
// Every segment draws from its own pseudo-random stream derived from the run seed and segment ID,
// so output does not depend on processing order
type FurnitureDistributor struct {
	specs   map[FurnitureKind]DistributionSpec
	kinds   []FurnitureKind
	seed    int64
	manhole *ManholePlacer
}

// NewFurnitureDistributor returns distributor placing given kinds (in the given order)
func NewFurnitureDistributor(specs map[FurnitureKind]DistributionSpec, kinds []FurnitureKind, seed int64) *FurnitureDistributor {
	if specs == nil {
		specs = DefaultFurnitureSpecs()
	}
	distributor := FurnitureDistributor{
		specs:   specs,
		kinds:   make([]FurnitureKind, len(kinds)),
		seed:    seed,
		manhole: NewManholePlacer(),
	}
	copy(distributor.kinds, kinds)
	return &distributor
}

// Reseed changes run seed
func (distributor *FurnitureDistributor) Reseed(seed int64) {
	distributor.seed = seed
}

// segmentRand returns generator for the segment sub-stream
func (distributor *FurnitureDistributor) segmentRand(segmentID string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(segmentID))
	return rand.New(rand.NewPCG(uint64(distributor.seed), h.Sum64()))
}

// Distribute places furniture for every road
func (distributor *FurnitureDistributor) Distribute(roads []ClassifiedRoad, intersections []IntersectionGeometry) []StreetFurnitureItem {
	index := newClearanceIndex(intersections)
	items := []StreetFurnitureItem{}
	for i := range roads {
		items = append(items, distributor.distributeRoad(&roads[i], intersections, index)...)
	}
	return items
}

// distributeRoad places every configured kind along a single road
func (distributor *FurnitureDistributor) distributeRoad(road *ClassifiedRoad, intersections []IntersectionGeometry, index *clearanceIndex) []StreetFurnitureItem {
	if len(road.Segment.Points) < 2 {
		return nil
	}
	rng := distributor.segmentRand(road.Segment.ID)
	items := []StreetFurnitureItem{}
	for _, kind := range distributor.kinds {
		items = append(items, distributor.placeKind(kind, road, intersections, index, rng)...)
	}
	return items
}

// placeKind places single kind along the road. Kinds without distribution spec are skipped
func (distributor *FurnitureDistributor) placeKind(kind FurnitureKind, road *ClassifiedRoad, intersections []IntersectionGeometry, index *clearanceIndex, rng *rand.Rand) []StreetFurnitureItem {
	spec, ok := distributor.specs[kind]
	if !ok || !spec.allowsRoad(road) {
		return nil
	}
	if kind == FURNITURE_MANHOLE {
		return distributor.manhole.Place(road, spec, index, rng)
	}
	if spec.RequireIntersection {
		return placeAtIntersections(kind, road, spec, intersections, rng)
	}
	return placeAlongRoad(kind, road, spec, index, rng)
}

// walkStations returns arc length positions: half of first spacing, then randomized spacing
func walkStations(length float64, spec DistributionSpec, rng *rand.Rand) []float64 {
	if spec.SpacingMax <= 0 || spec.SpacingMin <= 0 || length <= 0 {
		return nil
	}
	spacing := distuv.Uniform{Min: spec.SpacingMin, Max: spec.SpacingMax, Src: rng}
	next := spacing.Rand
	stations := []float64{}
	for s := next() / 2.0; s < length; s += next() {
		stations = append(stations, s)
	}
	return stations
}

// drawScale returns instance scale
func drawScale(spec DistributionSpec, rng *rand.Rand) float64 {
	if spec.ScaleMin <= 0 && spec.ScaleMax <= 0 {
		return 1.0
	}
	return distuv.Uniform{Min: spec.ScaleMin, Max: spec.ScaleMax, Src: rng}.Rand()
}

// jitter returns random displacement along and across the road within [-magnitude/2, magnitude/2]
func jitter(magnitude float64, rng *rand.Rand) (float64, float64) {
	along := (rng.Float64() - 0.5) * magnitude
	across := (rng.Float64() - 0.5) * magnitude
	return along, across
}

// sideSigns returns lateral signs for the given side policy
func sideSigns(side RoadSide, rng *rand.Rand) []float64 {
	switch side {
	case ROAD_SIDE_LEFT:
		return []float64{1}
	case ROAD_SIDE_BOTH:
		return []float64{-1, 1}
	case ROAD_SIDE_RANDOM:
		if rng.IntN(2) == 0 {
			return []float64{-1}
		}
		return []float64{1}
	default:
		return []float64{-1}
	}
}

// furnitureBaseHeight returns vertical offset of items placed beyond pavement edge
func furnitureBaseHeight(road *ClassifiedRoad) float64 {
	if road.Spec.Curb {
		return road.Spec.CurbHeight
	}
	return 0
}

// placeAlongRoad walks the road at randomized spacing
func placeAlongRoad(kind FurnitureKind, road *ClassifiedRoad, spec DistributionSpec, index *clearanceIndex, rng *rand.Rand) []StreetFurnitureItem {
	points := road.Segment.Points
	cumulative := arcLengths(points)
	length := cumulative[len(cumulative)-1]
	halfWidth := road.EffectiveWidth() / 2.0
	items := []StreetFurnitureItem{}
	for _, s := range walkStations(length, spec, rng) {
		for _, sign := range sideSigns(spec.Side, rng) {
			along, across := jitter(spec.RandomOffset, rng)
			scale := drawScale(spec, rng)
			pos, dir := pointAtArcLength(points, cumulative, s+along)
			lateral := sign*(halfWidth+spec.OffsetFromEdge) + across
			position := r3.Add(pos, r3.Scale(lateral, leftPerpendicular(dir)))
			position.Z += furnitureBaseHeight(road)
			if spec.AvoidIntersection && index.nearestDistance(toPlanar(position)) < spec.IntersectionClearance {
				continue
			}
			yaw := headingAngle(dir)
			if sign > 0 {
				yaw = normalizeAngle(yaw + math.Pi)
			}
			items = append(items, StreetFurnitureItem{
				Kind:      kind,
				Position:  position,
				Rotation:  yaw,
				Scale:     scale,
				SegmentID: road.Segment.ID,
				Metadata: map[string]interface{}{
					"station": s,
					"side":    sideBySign(sign).String(),
				},
			})
		}
	}
	return items
}

func sideBySign(sign float64) RoadSide {
	if sign > 0 {
		return ROAD_SIDE_LEFT
	}
	return ROAD_SIDE_RIGHT
}

// placeAtIntersections places one item per nearby intersection at the road approach,
// on the right side of traffic arriving to the intersection
func placeAtIntersections(kind FurnitureKind, road *ClassifiedRoad, spec DistributionSpec, intersections []IntersectionGeometry, rng *rand.Rand) []StreetFurnitureItem {
	points := road.Segment.Points
	cumulative := arcLengths(points)
	length := cumulative[len(cumulative)-1]
	halfWidth := road.EffectiveWidth() / 2.0
	start, end := points[0], points[len(points)-1]
	items := []StreetFurnitureItem{}
	for i := range intersections {
		intersection := &intersections[i]
		if intersection.Cluster.Approaches() < spec.MinApproaches {
			continue
		}
		center := intersection.Cluster.Center
		startDist := planarDistance(start, center)
		endDist := planarDistance(end, center)
		nearest := math.Min(startDist, endDist)
		if !intersection.Cluster.HasRoad(road.Segment.ID) && nearest > intersection.Radius {
			continue
		}
		atStart := startDist <= endDist
		s := length - intersection.Radius
		if atStart {
			s = intersection.Radius
		}
		if s < 0 {
			s = 0
		}
		if s > length {
			s = length
		}
		pos, dir := pointAtArcLength(points, cumulative, s)
		arriving := dir
		if atStart {
			arriving = r3.Scale(-1, dir)
		}
		along, across := jitter(spec.RandomOffset, rng)
		scale := drawScale(spec, rng)
		right := r3.Scale(-1, leftPerpendicular(arriving))
		position := r3.Add(pos, r3.Scale(halfWidth+spec.OffsetFromEdge+across, right))
		position = r3.Add(position, r3.Scale(along, arriving))
		position.Z += furnitureBaseHeight(road)
		items = append(items, StreetFurnitureItem{
			Kind:      kind,
			Position:  position,
			Rotation:  headingAngle(arriving),
			Scale:     scale,
			SegmentID: road.Segment.ID,
			Metadata: map[string]interface{}{
				"intersection_id":   intersection.Cluster.ID,
				"intersection_type": intersection.Cluster.Type.String(),
			},
		})
	}
	return items
}
