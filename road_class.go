package osm2street

// RoadClass is the resolved class of a road segment.
// Lower values are more major classes (ordinal comparison is used during refinement).
type RoadClass uint16

const (
	ROAD_CLASS_HIGHWAY = RoadClass(iota + 1)
	ROAD_CLASS_ARTERIAL
	ROAD_CLASS_COLLECTOR
	ROAD_CLASS_LOCAL
	ROAD_CLASS_SERVICE
	ROAD_CLASS_PEDESTRIAN
	ROAD_CLASS_HERO

	ROAD_CLASS_UNDEFINED = RoadClass(0)
)

func (iotaIdx RoadClass) String() string {
	return [...]string{"undefined", "highway", "arterial", "collector", "local", "service", "pedestrian", "hero"}[iotaIdx]
}

// MarkingDetail controls how many paint strokes a road receives
type MarkingDetail uint16

const (
	MARKING_DETAIL_NONE = MarkingDetail(iota)
	MARKING_DETAIL_MINIMAL
	MARKING_DETAIL_STANDARD
	MARKING_DETAIL_FULL
)

func (iotaIdx MarkingDetail) String() string {
	return [...]string{"none", "minimal", "standard", "full"}[iotaIdx]
}

// LODLevel is a discrete level of detail tier
type LODLevel uint16

const (
	LOD_LOW = LODLevel(iota + 1)
	LOD_MEDIUM
	LOD_HIGH
	LOD_HERO
)

func (iotaIdx LODLevel) String() string {
	return [...]string{"low", "medium", "high", "hero"}[iotaIdx-1]
}

// RoadClassSpec is the geometric specification of a road class
type RoadClassSpec struct {
	Width         float64
	Lanes         int
	LaneWidth     float64
	Sidewalk      bool
	SidewalkWidth float64
	Curb          bool
	CurbHeight    float64
	MarkingDetail MarkingDetail
	Parking       bool
	Oneway        bool
	Material      MaterialID
	LOD           LODLevel
}

var (
	roadClassSpecs = map[RoadClass]RoadClassSpec{
		ROAD_CLASS_HIGHWAY: {
			Width: 22.0, Lanes: 6, LaneWidth: 3.65,
			Curb: true, CurbHeight: 0.2,
			MarkingDetail: MARKING_DETAIL_FULL,
			Material:      MATERIAL_ASPHALT_HIGHWAY, LOD: LOD_HIGH,
		},
		ROAD_CLASS_ARTERIAL: {
			Width: 16.0, Lanes: 4, LaneWidth: 3.5,
			Sidewalk: true, SidewalkWidth: 3.0,
			Curb: true, CurbHeight: 0.15,
			MarkingDetail: MARKING_DETAIL_FULL, Parking: true,
			Material: MATERIAL_ASPHALT, LOD: LOD_HIGH,
		},
		ROAD_CLASS_COLLECTOR: {
			Width: 12.0, Lanes: 2, LaneWidth: 3.5,
			Sidewalk: true, SidewalkWidth: 2.5,
			Curb: true, CurbHeight: 0.15,
			MarkingDetail: MARKING_DETAIL_STANDARD, Parking: true,
			Material: MATERIAL_ASPHALT, LOD: LOD_MEDIUM,
		},
		ROAD_CLASS_LOCAL: {
			Width: 8.0, Lanes: 2, LaneWidth: 3.0,
			Sidewalk: true, SidewalkWidth: 2.0,
			Curb: true, CurbHeight: 0.15,
			MarkingDetail: MARKING_DETAIL_STANDARD, Parking: true,
			Material: MATERIAL_ASPHALT_WORN, LOD: LOD_MEDIUM,
		},
		ROAD_CLASS_SERVICE: {
			Width: 5.0, Lanes: 1, LaneWidth: 3.0,
			MarkingDetail: MARKING_DETAIL_NONE,
			Material:      MATERIAL_ASPHALT_WORN, LOD: LOD_LOW,
		},
		ROAD_CLASS_PEDESTRIAN: {
			Width: 4.0, Lanes: 0, LaneWidth: 0,
			MarkingDetail: MARKING_DETAIL_NONE,
			Material:      MATERIAL_PAVERS, LOD: LOD_LOW,
		},
		ROAD_CLASS_HERO: {
			Width: 14.0, Lanes: 2, LaneWidth: 3.5,
			Sidewalk: true, SidewalkWidth: 3.5,
			Curb: true, CurbHeight: 0.18,
			MarkingDetail: MARKING_DETAIL_FULL, Parking: true,
			Material: MATERIAL_ASPHALT, LOD: LOD_HERO,
		},
	}
)

// MaterialID identifies the surface material of generated geometry.
// It is used as the material index of GeometryResult
type MaterialID uint16

const (
	MATERIAL_ASPHALT = MaterialID(iota)
	MATERIAL_ASPHALT_HIGHWAY
	MATERIAL_ASPHALT_WORN
	MATERIAL_PAVERS
	MATERIAL_CONCRETE_CURB
	MATERIAL_CONCRETE_SIDEWALK
	MATERIAL_PAINT_WHITE
	MATERIAL_PAINT_YELLOW
	MATERIAL_ASPHALT_INTERSECTION
)

func (iotaIdx MaterialID) String() string {
	return [...]string{"asphalt", "asphalt_highway", "asphalt_worn", "pavers", "concrete_curb", "concrete_sidewalk", "paint_white", "paint_yellow", "asphalt_intersection"}[iotaIdx]
}
