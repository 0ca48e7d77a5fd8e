package osm2street

type MarkingKind uint16

const (
	MARKING_SOLID_WHITE = MarkingKind(iota + 1)
	MARKING_DASHED_WHITE
	MARKING_SOLID_YELLOW
	MARKING_DOUBLE_YELLOW
	MARKING_DASHED_CENTER
	MARKING_CROSSWALK
	MARKING_STOP_LINE
)

func (iotaIdx MarkingKind) String() string {
	return [...]string{"solid_white", "dashed_white", "solid_yellow", "double_yellow", "dashed_center", "crosswalk", "stop_line"}[iotaIdx-1]
}

// MarkingSpec is paint specification of a marking kind
type MarkingSpec struct {
	Color      MaterialID
	Width      float64
	DashLength float64
	GapLength  float64
	Thickness  float64
}

// Pitch returns length of a single dash + gap cycle
func (spec MarkingSpec) Pitch() float64 {
	return spec.DashLength + spec.GapLength
}

var (
	markingSpecs = map[MarkingKind]MarkingSpec{
		MARKING_SOLID_WHITE:   {Color: MATERIAL_PAINT_WHITE, Width: 0.15, Thickness: 0.005},
		MARKING_DASHED_WHITE:  {Color: MATERIAL_PAINT_WHITE, Width: 0.15, DashLength: 3.0, GapLength: 9.0, Thickness: 0.005},
		MARKING_SOLID_YELLOW:  {Color: MATERIAL_PAINT_YELLOW, Width: 0.15, Thickness: 0.005},
		MARKING_DOUBLE_YELLOW: {Color: MATERIAL_PAINT_YELLOW, Width: 0.12, GapLength: 0.1, Thickness: 0.005},
		MARKING_DASHED_CENTER: {Color: MATERIAL_PAINT_WHITE, Width: 0.15, DashLength: 6.0, GapLength: 6.0, Thickness: 0.005},
		MARKING_CROSSWALK:     {Color: MATERIAL_PAINT_WHITE, Width: 0.5, GapLength: 0.5, Thickness: 0.005},
		MARKING_STOP_LINE:     {Color: MATERIAL_PAINT_WHITE, Width: 0.45, Thickness: 0.005},
	}
)

// GetMarkingSpec returns paint specification for given kind
func GetMarkingSpec(kind MarkingKind) (MarkingSpec, bool) {
	spec, ok := markingSpecs[kind]
	return spec, ok
}
