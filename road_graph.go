package osm2street

import (
	"fmt"
	"time"

	"github.com/LdDl/ch"
	"github.com/pkg/errors"
)

var (
	ErrNoIntersection = errors.New("no such intersection")
	ErrNoPath         = errors.New("no path between intersections")
)

// roadEdge is a road connecting two intersections
type roadEdge struct {
	from      int64
	to        int64
	segmentID string
	length    float64
}

// RoadGraph is a contraction hierarchies graph: vertices are intersections, edges are roads between them
type RoadGraph struct {
	graph    ch.Graph
	vertices map[int64]struct{}
	edges    map[[2]int64]*roadEdge
}

type endpointKey struct {
	segmentID string
	isStart   bool
}

// NewRoadGraph builds graph over intersections of processed road system. One-way roads produce single directed edge
func NewRoadGraph(system *ProcessedRoadSystem, verbose bool) (*RoadGraph, error) {
	if verbose {
		fmt.Printf("Preparing road graph...")
	}
	st := time.Now()
	endpointCluster := make(map[endpointKey]int64)
	for i := range system.Intersections {
		cluster := &system.Intersections[i].Cluster
		for _, endpoint := range cluster.Endpoints {
			endpointCluster[endpointKey{endpoint.SegmentID, endpoint.IsStart}] = int64(cluster.ID)
		}
	}
	roadGraph := &RoadGraph{
		graph:    ch.Graph{},
		vertices: make(map[int64]struct{}),
		edges:    make(map[[2]int64]*roadEdge),
	}
	order := [][2]int64{}
	addEdge := func(from, to int64, segmentID string, length float64) {
		key := [2]int64{from, to}
		if existing, ok := roadGraph.edges[key]; ok {
			// Parallel roads: keep the shortest one
			if length < existing.length {
				existing.segmentID = segmentID
				existing.length = length
			}
			return
		}
		roadGraph.edges[key] = &roadEdge{from: from, to: to, segmentID: segmentID, length: length}
		order = append(order, key)
	}
	for i := range system.Roads {
		road := &system.Roads[i].Road
		source, okSource := endpointCluster[endpointKey{road.Segment.ID, true}]
		target, okTarget := endpointCluster[endpointKey{road.Segment.ID, false}]
		if !okSource || !okTarget || source == target {
			continue
		}
		length := road.Segment.Length()
		addEdge(source, target, road.Segment.ID, length)
		if !road.Oneway {
			addEdge(target, source, road.Segment.ID, length)
		}
	}
	for _, key := range order {
		for _, vertex := range key {
			if _, ok := roadGraph.vertices[vertex]; ok {
				continue
			}
			err := roadGraph.graph.CreateVertex(vertex)
			if err != nil {
				return nil, errors.Wrap(err, "Can't create vertex")
			}
			roadGraph.vertices[vertex] = struct{}{}
		}
		edge := roadGraph.edges[key]
		err := roadGraph.graph.AddEdge(edge.from, edge.to, edge.length)
		if err != nil {
			return nil, errors.Wrap(err, "Can't wrap source and target vertices as edge")
		}
	}
	roadGraph.graph.PrepareContractionHierarchies()
	if verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
		fmt.Printf("\tVertices: %d, edges: %d\n", len(roadGraph.vertices), len(roadGraph.edges))
	}
	return roadGraph, nil
}

// VerticesNum returns number of intersections connected by at least one road
func (roadGraph *RoadGraph) VerticesNum() int {
	return len(roadGraph.vertices)
}

// EdgesNum returns number of directed road edges
func (roadGraph *RoadGraph) EdgesNum() int {
	return len(roadGraph.edges)
}

// ShortestPath returns length, sequence of intersection IDs and sequence of road segment IDs between two intersections
func (roadGraph *RoadGraph) ShortestPath(from, to int) (float64, []int, []string, error) {
	source, target := int64(from), int64(to)
	for _, vertex := range []int64{source, target} {
		if _, ok := roadGraph.vertices[vertex]; !ok {
			return -1, nil, nil, errors.Wrapf(ErrNoIntersection, "Intersection %d", vertex)
		}
	}
	if source == target {
		return 0, []int{from}, []string{}, nil
	}
	cost, path := roadGraph.graph.ShortestPath(source, target)
	if cost < 0 || len(path) == 0 {
		return -1, nil, nil, errors.Wrapf(ErrNoPath, "From %d to %d", from, to)
	}
	intersections := make([]int, len(path))
	for i, vertex := range path {
		intersections[i] = int(vertex)
	}
	roads := make([]string, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		edge, ok := roadGraph.edges[[2]int64{path[i-1], path[i]}]
		if !ok {
			return -1, nil, nil, fmt.Errorf("Can't find road between intersections %d and %d", path[i-1], path[i])
		}
		roads = append(roads, edge.segmentID)
	}
	return cost, intersections, roads, nil
}

// ExportShortcuts writes contraction hierarchies shortcuts into CSV file
func (roadGraph *RoadGraph) ExportShortcuts(filename string) error {
	err := roadGraph.graph.ExportShortcutsToFile(filename)
	if err != nil {
		return errors.Wrap(err, "Can't export shortcuts")
	}
	return nil
}
