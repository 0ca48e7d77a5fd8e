package osm2street

import "gonum.org/v1/gonum/spatial/r3"

type FurnitureKind uint16

const (
	FURNITURE_STREET_LAMP = FurnitureKind(iota + 1)
	FURNITURE_TRAFFIC_LIGHT
	FURNITURE_STOP_SIGN
	FURNITURE_FIRE_HYDRANT
	FURNITURE_BENCH
	FURNITURE_TRASH_CAN
	FURNITURE_TREE
	FURNITURE_BOLLARD
	FURNITURE_PARKING_METER
	FURNITURE_BUS_STOP
	FURNITURE_MANHOLE
)

func (iotaIdx FurnitureKind) String() string {
	return [...]string{"street_lamp", "traffic_light", "stop_sign", "fire_hydrant", "bench", "trash_can", "tree", "bollard", "parking_meter", "bus_stop", "manhole"}[iotaIdx-1]
}

// StreetFurnitureItem is a placed instance of street furniture
type StreetFurnitureItem struct {
	Kind     FurnitureKind
	Position r3.Vec
	// Yaw in radians, counter-clockwise from X axis
	Rotation  float64
	Scale     float64
	SegmentID string
	Metadata  map[string]interface{}
}

// DistributionSpec defines how a furniture kind is placed along roads
type DistributionSpec struct {
	SpacingMin float64
	SpacingMax float64
	// Distance from pavement edge outwards
	OffsetFromEdge float64
	Side           RoadSide
	// Placed once per nearby intersection instead of walking along the road
	RequireIntersection bool
	// Skip positions closer than IntersectionClearance to any intersection center
	AvoidIntersection     bool
	IntersectionClearance float64
	// Maximum jitter (along and across the road) of a single instance
	RandomOffset float64
	ScaleMin     float64
	ScaleMax     float64
	// Empty means any class
	Classes         []RoadClass
	RequireSidewalk bool
	RequireParking  bool
	// Minimum number of intersection approaches for intersection kinds
	MinApproaches int
}

// allowsRoad checks class, sidewalk and parking requirements
func (spec *DistributionSpec) allowsRoad(road *ClassifiedRoad) bool {
	if spec.RequireSidewalk && !road.Spec.Sidewalk {
		return false
	}
	if spec.RequireParking && !road.Spec.Parking {
		return false
	}
	if len(spec.Classes) == 0 {
		return true
	}
	for _, class := range spec.Classes {
		if class == road.Class {
			return true
		}
	}
	return false
}

var (
	majorClasses = []RoadClass{ROAD_CLASS_HIGHWAY, ROAD_CLASS_ARTERIAL, ROAD_CLASS_COLLECTOR, ROAD_CLASS_HERO}
	minorClasses = []RoadClass{ROAD_CLASS_LOCAL, ROAD_CLASS_SERVICE}
	urbanClasses = []RoadClass{ROAD_CLASS_ARTERIAL, ROAD_CLASS_COLLECTOR, ROAD_CLASS_LOCAL, ROAD_CLASS_HERO}

	// Every kind in placement order
	FurnitureKindsHighDetail = []FurnitureKind{
		FURNITURE_STREET_LAMP,
		FURNITURE_TRAFFIC_LIGHT,
		FURNITURE_STOP_SIGN,
		FURNITURE_FIRE_HYDRANT,
		FURNITURE_BENCH,
		FURNITURE_TRASH_CAN,
		FURNITURE_TREE,
		FURNITURE_BOLLARD,
		FURNITURE_PARKING_METER,
		FURNITURE_BUS_STOP,
		FURNITURE_MANHOLE,
	}
	// Highest value kinds only
	FurnitureKindsOptimized = []FurnitureKind{
		FURNITURE_STREET_LAMP,
		FURNITURE_TRAFFIC_LIGHT,
		FURNITURE_STOP_SIGN,
		FURNITURE_MANHOLE,
	}
)

// DefaultFurnitureSpecs returns distribution table for every furniture kind
func DefaultFurnitureSpecs() map[FurnitureKind]DistributionSpec {
	return map[FurnitureKind]DistributionSpec{
		FURNITURE_STREET_LAMP: {
			SpacingMin: 25, SpacingMax: 35, OffsetFromEdge: 0.6, Side: ROAD_SIDE_BOTH,
			AvoidIntersection: true, IntersectionClearance: 8, RandomOffset: 0.3,
			ScaleMin: 1, ScaleMax: 1, Classes: []RoadClass{ROAD_CLASS_HIGHWAY, ROAD_CLASS_ARTERIAL, ROAD_CLASS_COLLECTOR, ROAD_CLASS_LOCAL, ROAD_CLASS_HERO},
		},
		FURNITURE_TRAFFIC_LIGHT: {
			OffsetFromEdge: 0.8, Side: ROAD_SIDE_RIGHT, RequireIntersection: true,
			ScaleMin: 1, ScaleMax: 1, Classes: majorClasses, MinApproaches: 3,
		},
		FURNITURE_STOP_SIGN: {
			OffsetFromEdge: 0.5, Side: ROAD_SIDE_RIGHT, RequireIntersection: true,
			ScaleMin: 1, ScaleMax: 1, Classes: minorClasses, MinApproaches: 3,
		},
		FURNITURE_FIRE_HYDRANT: {
			SpacingMin: 80, SpacingMax: 120, OffsetFromEdge: 0.5, Side: ROAD_SIDE_RANDOM,
			AvoidIntersection: true, IntersectionClearance: 10, RandomOffset: 0.5,
			ScaleMin: 1, ScaleMax: 1, Classes: urbanClasses, RequireSidewalk: true,
		},
		FURNITURE_BENCH: {
			SpacingMin: 60, SpacingMax: 100, OffsetFromEdge: 1.5, Side: ROAD_SIDE_RANDOM,
			AvoidIntersection: true, IntersectionClearance: 12, RandomOffset: 1.0,
			ScaleMin: 1, ScaleMax: 1, Classes: urbanClasses, RequireSidewalk: true,
		},
		FURNITURE_TRASH_CAN: {
			SpacingMin: 40, SpacingMax: 70, OffsetFromEdge: 0.7, Side: ROAD_SIDE_RANDOM,
			AvoidIntersection: true, IntersectionClearance: 6, RandomOffset: 0.8,
			ScaleMin: 0.95, ScaleMax: 1.05, Classes: urbanClasses, RequireSidewalk: true,
		},
		FURNITURE_TREE: {
			SpacingMin: 12, SpacingMax: 18, OffsetFromEdge: 1.2, Side: ROAD_SIDE_BOTH,
			AvoidIntersection: true, IntersectionClearance: 10, RandomOffset: 1.0,
			ScaleMin: 0.8, ScaleMax: 1.2, Classes: urbanClasses, RequireSidewalk: true,
		},
		FURNITURE_BOLLARD: {
			SpacingMin: 3, SpacingMax: 3, OffsetFromEdge: 0.3, Side: ROAD_SIDE_BOTH,
			AvoidIntersection: true, IntersectionClearance: 4,
			ScaleMin: 1, ScaleMax: 1, Classes: []RoadClass{ROAD_CLASS_PEDESTRIAN},
		},
		FURNITURE_PARKING_METER: {
			SpacingMin: 15, SpacingMax: 25, OffsetFromEdge: 0.4, Side: ROAD_SIDE_RIGHT,
			AvoidIntersection: true, IntersectionClearance: 15, RandomOffset: 0.4,
			ScaleMin: 1, ScaleMax: 1, Classes: urbanClasses, RequireSidewalk: true, RequireParking: true,
		},
		FURNITURE_BUS_STOP: {
			SpacingMin: 300, SpacingMax: 500, OffsetFromEdge: 1.0, Side: ROAD_SIDE_RIGHT,
			AvoidIntersection: true, IntersectionClearance: 25, RandomOffset: 2.0,
			ScaleMin: 1, ScaleMax: 1, Classes: []RoadClass{ROAD_CLASS_ARTERIAL, ROAD_CLASS_COLLECTOR}, RequireSidewalk: true,
		},
		FURNITURE_MANHOLE: {
			SpacingMin: 40, SpacingMax: 60, Side: ROAD_SIDE_RIGHT,
			AvoidIntersection: true, IntersectionClearance: 6, RandomOffset: 0.5,
			ScaleMin: 1, ScaleMax: 1, Classes: []RoadClass{ROAD_CLASS_HIGHWAY, ROAD_CLASS_ARTERIAL, ROAD_CLASS_COLLECTOR, ROAD_CLASS_LOCAL, ROAD_CLASS_SERVICE, ROAD_CLASS_HERO},
		},
	}
}
