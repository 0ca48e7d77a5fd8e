package osm2street

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat/distuv"
)

type ManholeType uint16

const (
	MANHOLE_SEWER = ManholeType(iota + 1)
	MANHOLE_STORM_DRAIN
	MANHOLE_UTILITY
	MANHOLE_TELECOM
)

func (iotaIdx ManholeType) String() string {
	return [...]string{"sewer", "storm_drain", "utility", "telecom"}[iotaIdx-1]
}

// ManholeVariant is a weighted manhole sub-kind
type ManholeVariant struct {
	Type   ManholeType
	Weight float64
	// Cover diameter in meters
	Diameter float64
}

var (
	defaultManholeVariants = []ManholeVariant{
		{Type: MANHOLE_SEWER, Weight: 0.5, Diameter: 0.6},
		{Type: MANHOLE_STORM_DRAIN, Weight: 0.25, Diameter: 0.6},
		{Type: MANHOLE_UTILITY, Weight: 0.15, Diameter: 0.75},
		{Type: MANHOLE_TELECOM, Weight: 0.10, Diameter: 0.5},
	}
)

// ManholePlacer places manhole covers at lane centers
type ManholePlacer struct {
	variants []ManholeVariant
	weights  []float64
}

// NewManholePlacer returns placer with default sub-kind weights
func NewManholePlacer(variants ...ManholeVariant) *ManholePlacer {
	if len(variants) == 0 {
		variants = defaultManholeVariants
	}
	placer := ManholePlacer{
		variants: make([]ManholeVariant, 0, len(variants)),
	}
	for _, variant := range variants {
		if variant.Weight <= 0 {
			continue
		}
		placer.variants = append(placer.variants, variant)
		placer.weights = append(placer.weights, variant.Weight)
	}
	return &placer
}

// pick chooses sub-kind proportionally to weights
func (placer *ManholePlacer) pick(rng *rand.Rand) ManholeVariant {
	idx := int(distuv.NewCategorical(placer.weights, rng).Rand())
	return placer.variants[idx]
}

// laneCenterOffset returns lateral offset of the rightmost lane center
func laneCenterOffset(road *ClassifiedRoad) float64 {
	span, laneWidth, _ := laneLayout(road)
	if laneWidth <= 0 {
		return 0
	}
	return -span/2.0 + laneWidth/2.0
}

// Place walks the road and drops manhole covers onto the rightmost lane center
func (placer *ManholePlacer) Place(road *ClassifiedRoad, spec DistributionSpec, index *clearanceIndex, rng *rand.Rand) []StreetFurnitureItem {
	points := road.Segment.Points
	if len(points) < 2 || len(placer.variants) == 0 {
		return nil
	}
	cumulative := arcLengths(points)
	length := cumulative[len(cumulative)-1]
	offset := laneCenterOffset(road)
	items := []StreetFurnitureItem{}
	for _, s := range walkStations(length, spec, rng) {
		along, across := jitter(spec.RandomOffset, rng)
		variant := placer.pick(rng)
		pos, dir := pointAtArcLength(points, cumulative, s+along)
		position := r3.Add(pos, r3.Scale(offset+across, leftPerpendicular(dir)))
		if spec.AvoidIntersection && index.nearestDistance(toPlanar(position)) < spec.IntersectionClearance {
			continue
		}
		items = append(items, StreetFurnitureItem{
			Kind:      FURNITURE_MANHOLE,
			Position:  position,
			Rotation:  headingAngle(dir),
			Scale:     1.0,
			SegmentID: road.Segment.ID,
			Metadata: map[string]interface{}{
				"station":  s,
				"type":     variant.Type.String(),
				"diameter": variant.Diameter,
			},
		})
	}
	return items
}
