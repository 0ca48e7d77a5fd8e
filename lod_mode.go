package osm2street

import "strings"

type LODMode uint16

const (
	LOD_MODE_HIGH_DETAIL = LODMode(iota + 1)
	LOD_MODE_OPTIMIZED
)

func (iotaIdx LODMode) String() string {
	return [...]string{"high_detail", "optimized"}[iotaIdx-1]
}

var (
	lodModesByName = map[string]LODMode{
		"high_detail": LOD_MODE_HIGH_DETAIL,
		"high":        LOD_MODE_HIGH_DETAIL,
		"optimized":   LOD_MODE_OPTIMIZED,
	}
)

// ParseLODMode returns LOD mode by its name. Unknown names fall back to LOD_MODE_HIGH_DETAIL
func ParseLODMode(name string) LODMode {
	if mode, ok := lodModesByName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return mode
	}
	return LOD_MODE_HIGH_DETAIL
}

// furnitureKinds returns furniture kinds placed in the mode
func (iotaIdx LODMode) furnitureKinds() []FurnitureKind {
	if iotaIdx == LOD_MODE_OPTIMIZED {
		return FurnitureKindsOptimized
	}
	return FurnitureKindsHighDetail
}

// capLOD limits LOD of non-hero roads in optimized mode
func (iotaIdx LODMode) capLOD(road *ClassifiedRoad) {
	if iotaIdx != LOD_MODE_OPTIMIZED || road.IsHero {
		return
	}
	if road.LOD > LOD_MEDIUM {
		road.LOD = LOD_MEDIUM
	}
}
