package osm2street

import (
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/quadtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// RoadEndpoint is the start or the end of a road segment
type RoadEndpoint struct {
	SegmentID    string
	SegmentIndex int
	Position     r3.Vec
	IsStart      bool
	// Heading (radians) from the endpoint into the road
	Angle float64
	Width float64
}

// Point implements orb.Pointer so endpoints could be stored in quadtree
func (endpoint *RoadEndpoint) Point() orb.Point {
	return toPlanar(endpoint.Position)
}

// IntersectionCluster is a set of road endpoints considered coincident
type IntersectionCluster struct {
	ID        int
	Endpoints []RoadEndpoint
	Center    r3.Vec
	RoadIDs   []string
	Type      IntersectionType
	MaxWidth  float64
}

// HasRoad checks if road with given ID participates in the intersection
func (cluster *IntersectionCluster) HasRoad(segmentID string) bool {
	for _, id := range cluster.RoadIDs {
		if id == segmentID {
			return true
		}
	}
	return false
}

// Approaches returns number of road arms of the intersection
func (cluster *IntersectionCluster) Approaches() int {
	return len(cluster.Endpoints)
}

// join adds endpoint and updates running centroid
func (cluster *IntersectionCluster) join(endpoint RoadEndpoint) {
	cluster.Endpoints = append(cluster.Endpoints, endpoint)
	n := float64(len(cluster.Endpoints))
	cluster.Center = r3.Add(r3.Scale((n-1)/n, cluster.Center), r3.Scale(1/n, endpoint.Position))
	if !cluster.HasRoad(endpoint.SegmentID) {
		cluster.RoadIDs = append(cluster.RoadIDs, endpoint.SegmentID)
	}
	if endpoint.Width > cluster.MaxWidth {
		cluster.MaxWidth = endpoint.Width
	}
}

// DetectorConfig holds intersection detection parameters
type DetectorConfig struct {
	// Endpoints closer than this distance are considered coincident
	ProximityThreshold float64
	// Clusters with fewer distinct roads are dropped
	MinIntersectionRoads int
	// Tolerance (degrees) around 180 for MERGE typing of 2-way clusters
	MergeAngleTolerance float64
	// Tolerance (degrees) around 180 for T typing of 3-way clusters
	TJunctionTolerance float64
	Clustering         ClusteringStrategy
	// Width of endpoints when no resolver has been provided
	DefaultWidth float64
	// Extra radius of intersection surface and crosswalk offset
	Margin         float64
	CrosswalkDepth float64
}

// DefaultDetectorConfig returns default intersection detection parameters
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		ProximityThreshold:   10.0,
		MinIntersectionRoads: 2,
		MergeAngleTolerance:  30.0,
		TJunctionTolerance:   25.0,
		Clustering:           CLUSTERING_UNION_FIND,
		DefaultWidth:         roadClassSpecs[ROAD_CLASS_LOCAL].Width,
		Margin:               2.0,
		CrosswalkDepth:       3.0,
	}
}

// IntersectionDetector clusters nearby road endpoints into intersections
type IntersectionDetector struct {
	cfg DetectorConfig
}

// NewIntersectionDetector returns detector for given configuration
func NewIntersectionDetector(cfg DetectorConfig) *IntersectionDetector {
	defaults := DefaultDetectorConfig()
	if cfg.ProximityThreshold <= 0 {
		cfg.ProximityThreshold = defaults.ProximityThreshold
	}
	if cfg.MinIntersectionRoads <= 0 {
		cfg.MinIntersectionRoads = defaults.MinIntersectionRoads
	}
	if cfg.Clustering == 0 {
		cfg.Clustering = defaults.Clustering
	}
	if cfg.DefaultWidth <= 0 {
		cfg.DefaultWidth = defaults.DefaultWidth
	}
	if cfg.MergeAngleTolerance <= 0 {
		cfg.MergeAngleTolerance = defaults.MergeAngleTolerance
	}
	if cfg.TJunctionTolerance <= 0 {
		cfg.TJunctionTolerance = defaults.TJunctionTolerance
	}
	if cfg.Margin <= 0 {
		cfg.Margin = defaults.Margin
	}
	if cfg.CrosswalkDepth <= 0 {
		cfg.CrosswalkDepth = defaults.CrosswalkDepth
	}
	return &IntersectionDetector{
		cfg: cfg,
	}
}

// Config returns detector configuration
func (detector *IntersectionDetector) Config() DetectorConfig {
	return detector.cfg
}

// extractEndpoints returns start and end endpoints for every segment with at least 2 points
func (detector *IntersectionDetector) extractEndpoints(segments []RoadSegment, widthOf func(segmentIndex int) float64) []RoadEndpoint {
	endpoints := make([]RoadEndpoint, 0, 2*len(segments))
	for i := range segments {
		segment := &segments[i]
		pts := segment.Points
		if len(pts) < 2 {
			continue
		}
		width := detector.cfg.DefaultWidth
		if widthOf != nil {
			if w := widthOf(i); w > 0 {
				width = w
			}
		} else if segment.Width > 0 {
			width = segment.Width
		}
		last := len(pts) - 1
		endpoints = append(endpoints, RoadEndpoint{
			SegmentID:    segment.ID,
			SegmentIndex: i,
			Position:     pts[0],
			IsStart:      true,
			Angle:        headingAngle(endDirection(pts, true)),
			Width:        width,
		}, RoadEndpoint{
			SegmentID:    segment.ID,
			SegmentIndex: i,
			Position:     pts[last],
			IsStart:      false,
			Angle:        headingAngle(endDirection(pts, false)),
			Width:        width,
		})
	}
	return endpoints
}

// Detect returns intersection clusters for given segments. Width resolver (by segment index) is optional
func (detector *IntersectionDetector) Detect(segments []RoadSegment, widthOf func(segmentIndex int) float64) []IntersectionCluster {
	endpoints := detector.extractEndpoints(segments, widthOf)
	var clusters []IntersectionCluster
	switch detector.cfg.Clustering {
	case CLUSTERING_GREEDY:
		clusters = detector.clusterGreedy(endpoints)
	default:
		clusters = detector.clusterUnionFind(endpoints)
	}
	return detector.finalize(clusters)
}

// clusterGreedy joins every endpoint to the first cluster whose running centroid is close enough
func (detector *IntersectionDetector) clusterGreedy(endpoints []RoadEndpoint) []IntersectionCluster {
	clusters := []IntersectionCluster{}
	for _, endpoint := range endpoints {
		joined := false
		for i := range clusters {
			if planarDistance(clusters[i].Center, endpoint.Position) < detector.cfg.ProximityThreshold {
				clusters[i].join(endpoint)
				joined = true
				break
			}
		}
		if !joined {
			cluster := IntersectionCluster{}
			cluster.join(endpoint)
			clusters = append(clusters, cluster)
		}
	}
	return clusters
}

// clusterUnionFind merges any two endpoints within proximity threshold transitively
func (detector *IntersectionDetector) clusterUnionFind(endpoints []RoadEndpoint) []IntersectionCluster {
	if len(endpoints) == 0 {
		return nil
	}
	threshold := detector.cfg.ProximityThreshold
	mp := make(orb.MultiPoint, len(endpoints))
	for i := range endpoints {
		mp[i] = endpoints[i].Point()
	}
	qt := quadtree.New(mp.Bound().Pad(threshold + 1))
	for i := range endpoints {
		// Can't fail: bound covers every point
		_ = qt.Add(&endpoints[i])
	}

	parent := make([]int, len(endpoints))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra == rb {
			return
		}
		// Smallest index is the root so clusters keep input order
		if ra < rb {
			parent[rb] = ra
		} else {
			parent[ra] = rb
		}
	}

	indices := make(map[*RoadEndpoint]int, len(endpoints))
	for i := range endpoints {
		indices[&endpoints[i]] = i
	}
	var buf []orb.Pointer
	for i := range endpoints {
		pt := mp[i]
		buf = qt.InBound(buf[:0], orb.Bound{Min: pt, Max: pt}.Pad(threshold))
		for _, candidate := range buf {
			j := indices[candidate.(*RoadEndpoint)]
			if j == i {
				continue
			}
			if planar.Distance(pt, mp[j]) < threshold {
				union(i, j)
			}
		}
	}

	clusterByRoot := make(map[int]int)
	clusters := []IntersectionCluster{}
	for i, endpoint := range endpoints {
		root := find(i)
		idx, ok := clusterByRoot[root]
		if !ok {
			idx = len(clusters)
			clusterByRoot[root] = idx
			clusters = append(clusters, IntersectionCluster{})
		}
		clusters[idx].join(endpoint)
	}
	return clusters
}

// finalize drops small clusters, recomputes centroids and resolves types
func (detector *IntersectionDetector) finalize(clusters []IntersectionCluster) []IntersectionCluster {
	result := make([]IntersectionCluster, 0, len(clusters))
	for _, cluster := range clusters {
		if len(cluster.RoadIDs) < detector.cfg.MinIntersectionRoads {
			continue
		}
		center := r3.Vec{}
		for _, endpoint := range cluster.Endpoints {
			center = r3.Add(center, endpoint.Position)
		}
		cluster.Center = r3.Scale(1/float64(len(cluster.Endpoints)), center)
		cluster.Type = detector.resolveType(&cluster)
		cluster.ID = len(result)
		result = append(result, cluster)
	}
	return result
}

// resolveType returns intersection type based on number of approaches and their angles
func (detector *IntersectionDetector) resolveType(cluster *IntersectionCluster) IntersectionType {
	switch n := len(cluster.Endpoints); {
	case n == 2:
		diff := angleDifference(cluster.Endpoints[0].Angle, cluster.Endpoints[1].Angle)
		if math.Abs(diff-math.Pi) <= degreesToRadians(detector.cfg.MergeAngleTolerance) {
			return INTERSECTION_MERGE
		}
		return INTERSECTION_OVERLAP
	case n == 3:
		for _, gap := range angularGaps(cluster.Endpoints) {
			if math.Abs(gap-math.Pi) <= degreesToRadians(detector.cfg.TJunctionTolerance) {
				return INTERSECTION_T_JUNCTION
			}
		}
		return INTERSECTION_Y_JUNCTION
	case n == 4:
		return INTERSECTION_FOUR_WAY
	case n >= 5:
		return INTERSECTION_FIVE_WAY
	default:
		return INTERSECTION_UNDEFINED
	}
}

// angularGaps returns gaps between consecutive sorted approach angles (including wrap-around gap)
func angularGaps(endpoints []RoadEndpoint) []float64 {
	angles := make([]float64, len(endpoints))
	for i, endpoint := range endpoints {
		angle := math.Mod(endpoint.Angle, 2*math.Pi)
		if angle < 0 {
			angle += 2 * math.Pi
		}
		angles[i] = angle
	}
	sort.Float64s(angles)
	gaps := make([]float64, len(angles))
	for i := range angles {
		if i == len(angles)-1 {
			gaps[i] = angles[0] + 2*math.Pi - angles[i]
			continue
		}
		gaps[i] = angles[i+1] - angles[i]
	}
	return gaps
}

// String returns short description of the cluster
func (cluster *IntersectionCluster) String() string {
	return fmt.Sprintf("Intersection %d (%s) at [%f, %f] roads: %v", cluster.ID, cluster.Type, cluster.Center.X, cluster.Center.Y, cluster.RoadIDs)
}
