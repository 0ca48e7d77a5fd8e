package osm2street

import "math"

// dashInterval is a painted interval along the arc length of a line
type dashInterval struct {
	start float64
	end   float64
}

// layoutDashes returns dash intervals for a line of given length.
// Dashes start at every multiple of (dash + gap) and are clipped by the line end,
// so there are at most ceil(length / pitch) of them
func layoutDashes(length, dashLength, gapLength float64) []dashInterval {
	if length <= 0 || dashLength <= 0 {
		return nil
	}
	pitch := dashLength + gapLength
	count := int(math.Ceil(length / pitch))
	dashes := make([]dashInterval, 0, count)
	for k := 0; k < count; k++ {
		start := float64(k) * pitch
		if start >= length {
			break
		}
		end := math.Min(start+dashLength, length)
		if end-start < minSegmentLength {
			continue
		}
		dashes = append(dashes, dashInterval{start: start, end: end})
	}
	return dashes
}
