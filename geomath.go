package osm2street

import (
	"math"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// Segments shorter than this are treated as degenerate
	minSegmentLength = 1e-6
	pi180            = math.Pi / 180.0
)

var (
	fallbackDirection = r3.Vec{X: 1, Y: 0, Z: 0}
)

// degreesToRadians deg = r * pi / 180
func degreesToRadians(d float64) float64 {
	return d * pi180
}

// toPlanar drops Z component
func toPlanar(v r3.Vec) orb.Point {
	return orb.Point{v.X, v.Y}
}

// planarDistance returns distance between two points projected onto XY plane
func planarDistance(p, q r3.Vec) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// normalizeAngle maps angle (radians) into [-pi, pi]
func normalizeAngle(angle float64) float64 {
	for angle < -1*math.Pi {
		angle += 2 * math.Pi
	}
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	return angle
}

// angleDifference returns absolute difference between two directions in [0, pi]
func angleDifference(a, b float64) float64 {
	return math.Abs(normalizeAngle(b - a))
}

// unitOrFallback returns normalized vector or fallback direction if vector is degenerate
func unitOrFallback(v r3.Vec) r3.Vec {
	norm := r3.Norm(v)
	if norm < minSegmentLength || math.IsNaN(norm) {
		return fallbackDirection
	}
	return r3.Scale(1/norm, v)
}

// distinctNeighbour walks from vertex i by step (+1 or -1) and returns index of the first vertex
// which does not coincide with it, or -1 if there is none
func distinctNeighbour(points []r3.Vec, i, step int) int {
	for j := i + step; j >= 0 && j < len(points); j += step {
		if r3.Norm(r3.Sub(points[j], points[i])) >= minSegmentLength {
			return j
		}
	}
	return -1
}

// polylineTangents returns unit tangent for every vertex of the line:
// forward difference at the first vertex, backward difference at the last one
// and averaged central difference elsewhere. Coincident neighbours are skipped
func polylineTangents(points []r3.Vec) []r3.Vec {
	tangents := make([]r3.Vec, len(points))
	for i := range points {
		prev := distinctNeighbour(points, i, -1)
		next := distinctNeighbour(points, i, 1)
		var tangent r3.Vec
		switch {
		case prev < 0 && next < 0:
			tangent = fallbackDirection
		case prev < 0:
			tangent = r3.Sub(points[next], points[i])
		case next < 0:
			tangent = r3.Sub(points[i], points[prev])
		default:
			in := unitOrFallback(r3.Sub(points[i], points[prev]))
			out := unitOrFallback(r3.Sub(points[next], points[i]))
			tangent = r3.Scale(0.5, r3.Add(in, out))
		}
		tangents[i] = unitOrFallback(tangent)
	}
	return tangents
}

// endDirection returns unit direction from the endpoint (start or end) into the line
func endDirection(points []r3.Vec, atStart bool) r3.Vec {
	i, step := 0, 1
	if !atStart {
		i, step = len(points)-1, -1
	}
	j := distinctNeighbour(points, i, step)
	if j < 0 {
		return fallbackDirection
	}
	return unitOrFallback(r3.Sub(points[j], points[i]))
}

// leftPerpendicular returns horizontal unit vector pointing to the left of the tangent
func leftPerpendicular(tangent r3.Vec) r3.Vec {
	return unitOrFallback(r3.Vec{X: -tangent.Y, Y: tangent.X, Z: 0})
}

// segmentLengths returns lengths of every polyline segment
func segmentLengths(points []r3.Vec) []float64 {
	if len(points) < 2 {
		return nil
	}
	lengths := make([]float64, len(points)-1)
	for i := 1; i < len(points); i++ {
		lengths[i-1] = r3.Norm(r3.Sub(points[i], points[i-1]))
	}
	return lengths
}

// polylineLength returns total arc length of the line
func polylineLength(points []r3.Vec) float64 {
	lengths := segmentLengths(points)
	if len(lengths) == 0 {
		return 0
	}
	return floats.Sum(lengths)
}

// arcLengths returns cumulative arc length at every vertex (first element is always zero)
func arcLengths(points []r3.Vec) []float64 {
	cumulative := make([]float64, len(points))
	lengths := segmentLengths(points)
	if len(lengths) == 0 {
		return cumulative
	}
	floats.CumSum(cumulative[1:], lengths)
	return cumulative
}

// pointAtArcLength returns point and unit direction at given distance along the line.
// Distance is clamped to [0, total length]
func pointAtArcLength(points []r3.Vec, cumulative []float64, distance float64) (r3.Vec, r3.Vec) {
	if len(points) == 0 {
		return r3.Vec{}, fallbackDirection
	}
	if len(points) == 1 {
		return points[0], fallbackDirection
	}
	total := cumulative[len(cumulative)-1]
	if distance < 0 {
		distance = 0
	}
	if distance > total {
		distance = total
	}
	idx := len(points) - 2
	for i := 1; i < len(cumulative); i++ {
		if distance <= cumulative[i] && cumulative[i]-cumulative[i-1] >= minSegmentLength {
			idx = i - 1
			break
		}
	}
	p, q := points[idx], points[idx+1]
	segmentLen := cumulative[idx+1] - cumulative[idx]
	direction := unitOrFallback(r3.Sub(q, p))
	if segmentLen < minSegmentLength {
		return p, direction
	}
	fraction := (distance - cumulative[idx]) / segmentLen
	return pointOnSegmentByFraction(p, q, fraction), direction
}

// pointOnSegmentByFraction returns a point on given segment using fraction of its length
func pointOnSegmentByFraction(p, q r3.Vec, fraction float64) r3.Vec {
	return r3.Add(r3.Scale(1-fraction, p), r3.Scale(fraction, q))
}

// headingAngle returns angle of horizontal projection of the direction (radians, counter-clockwise from X axis)
func headingAngle(direction r3.Vec) float64 {
	return math.Atan2(direction.Y, direction.X)
}

// directionFromAngle returns horizontal unit vector for given heading
func directionFromAngle(angle float64) r3.Vec {
	return r3.Vec{X: math.Cos(angle), Y: math.Sin(angle), Z: 0}
}

// reverseLine reverses order of points in given line. Returns new slice
func reverseLine(pts []r3.Vec) []r3.Vec {
	inputLen := len(pts)
	output := make([]r3.Vec, inputLen)
	for i, n := range pts {
		j := inputLen - i - 1
		output[j] = n
	}
	return output
}
