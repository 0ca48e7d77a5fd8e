package osm2street

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/quadtree"
)

// clearanceIndex answers "how far is the nearest intersection center" queries
type clearanceIndex struct {
	qt *quadtree.Quadtree
}

// newClearanceIndex builds index over intersection centers. Returns nil if there are no intersections
func newClearanceIndex(intersections []IntersectionGeometry) *clearanceIndex {
	if len(intersections) == 0 {
		return nil
	}
	centers := make(orb.MultiPoint, len(intersections))
	for i := range intersections {
		centers[i] = toPlanar(intersections[i].Cluster.Center)
	}
	qt := quadtree.New(centers.Bound().Pad(1))
	for _, center := range centers {
		// Can't fail: bound covers every center
		_ = qt.Add(center)
	}
	return &clearanceIndex{qt: qt}
}

// nearestDistance returns planar distance to the nearest intersection center
func (index *clearanceIndex) nearestDistance(pt orb.Point) float64 {
	if index == nil {
		return math.Inf(1)
	}
	nearest := index.qt.Find(pt)
	if nearest == nil {
		return math.Inf(1)
	}
	return planar.Distance(pt, nearest.Point())
}
