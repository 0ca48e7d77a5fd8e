package osm2street

type IntersectionType uint16

const (
	INTERSECTION_MERGE = IntersectionType(iota + 1)
	INTERSECTION_OVERLAP
	INTERSECTION_T_JUNCTION
	INTERSECTION_Y_JUNCTION
	INTERSECTION_FOUR_WAY
	INTERSECTION_FIVE_WAY

	INTERSECTION_UNDEFINED = IntersectionType(0)
)

func (iotaIdx IntersectionType) String() string {
	return [...]string{"undefined", "merge", "overlap", "t_junction", "y_junction", "four_way", "five_way"}[iotaIdx]
}

// ClusteringStrategy defines how road endpoints are grouped into intersections
type ClusteringStrategy uint16

const (
	// Disjoint-set over spatial index: order independent
	CLUSTERING_UNION_FIND = ClusteringStrategy(iota + 1)
	// Running centroid greedy join: depends on endpoints order
	CLUSTERING_GREEDY
)

func (iotaIdx ClusteringStrategy) String() string {
	return [...]string{"union_find", "greedy"}[iotaIdx-1]
}

var (
	// Number of sides of intersection surface polygon
	polygonSidesByIntersection = map[IntersectionType]int{
		INTERSECTION_FOUR_WAY:   8,
		INTERSECTION_T_JUNCTION: 6,
		INTERSECTION_Y_JUNCTION: 6,
		INTERSECTION_FIVE_WAY:   10,
	}
)

const (
	defaultPolygonSides = 16
)
