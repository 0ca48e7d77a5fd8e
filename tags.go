package osm2street

var (
	junctionTypes = map[string]struct{}{
		"circular":   {},
		"roundabout": {},
	}
	poiHighwayTags = map[string]struct{}{
		"bus_stop": {},
		"platform": {},
	}
	negligibleHighwayTags = map[string]struct{}{
		"path":         {},
		"construction": {},
		"proposed":     {},
		"raceway":      {},
		"bridleway":    {},
		"rest_area":    {},
		"su":           {},
		"road":         {},
		"abandoned":    {},
		"planned":      {},
		"trailhead":    {},
		"stairs":       {},
		"dismantled":   {},
		"disused":      {},
		"razed":        {},
		"access":       {},
		"corridor":     {},
		"stop":         {},
	}
	onewayReversible = map[string]struct{}{
		"reversible":  {},
		"alternating": {},
	}
)
