package osm2street

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

var (
	widthRegExp = regexp.MustCompile(`\d+(\.\d+)?`)
)

// parseWidth extracts meters from `width` tag value. Returns 0 if value is missing or malformed
func parseWidth(widthText string) float64 {
	widthNum := widthRegExp.FindString(strings.ReplaceAll(widthText, ",", "."))
	if widthNum == "" {
		return 0
	}
	value, err := strconv.ParseFloat(widthNum, 64)
	if err != nil {
		return 0
	}
	return value
}

// newOSMScanner guesses file extension and prepares correct scanner
func newOSMScanner(ctx context.Context, filename string, file io.Reader) (OSMScanner, error) {
	ext := filepath.Ext(filename)
	switch ext {
	case ".osm", ".xml":
		return osmxml.New(ctx, file), nil
	case ".pbf", ".osm.pbf":
		return osmpbf.New(ctx, file, 4), nil
	default:
		return nil, fmt.Errorf("File extension '%s' for file '%s' is not handled yet", ext, filename)
	}
}

// roadWay is a way accepted as a road
type roadWay struct {
	way      *osm.Way
	reversed bool
}

// acceptRoadWay checks if the way is a drivable or walkable road
func acceptRoadWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	if highway == "" {
		return false
	}
	if _, ok := poiHighwayTags[highway]; ok {
		return false
	}
	if _, ok := negligibleHighwayTags[highway]; ok {
		return false
	}
	// Ignore ways `area` tag provided
	if area := way.Tags.Find("area"); area != "" && area != "no" {
		return false
	}
	return len(way.Nodes) >= 2
}

// ReadOSMSegments reads ways having `highway` tag from *.osm / *.osm.pbf file into road segments.
// Coordinates are projected into local meters relative to the first node of the first road
func ReadOSMSegments(filename string, verbose bool) ([]RoadSegment, error) {
	if verbose {
		fmt.Printf("Opening file: '%s'...\n", filename)
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "Can't open OSM file")
	}
	defer file.Close()

	/* Process ways */
	if verbose {
		fmt.Printf("\tProcessing ways... ")
	}
	st := time.Now()
	ways := []roadWay{}
	nodesSeen := make(map[osm.NodeID]struct{})
	{
		scannerWays, err := newOSMScanner(context.Background(), filename, file)
		if err != nil {
			return nil, err
		}
		defer scannerWays.Close()
		for scannerWays.Scan() {
			obj := scannerWays.Object()
			if obj.ObjectID().Type() != "way" {
				continue
			}
			way := obj.(*osm.Way)
			if !acceptRoadWay(way) {
				continue
			}
			for _, node := range way.Nodes {
				nodesSeen[node.ID] = struct{}{}
			}
			ways = append(ways, roadWay{
				way:      way,
				reversed: way.Tags.Find("oneway") == "-1",
			})
		}
		err = scannerWays.Err()
		if err != nil {
			return nil, errors.Wrap(err, "Can't scan ways")
		}
	}
	if verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
	}

	// Seek file to start
	_, err = file.Seek(0, io.SeekStart)
	if err != nil {
		return nil, errors.Wrap(err, "Can't repeat seeking after ways scanning")
	}

	/* Process nodes */
	if verbose {
		fmt.Printf("\tProcessing nodes... ")
	}
	st = time.Now()
	nodes := make(map[osm.NodeID]orb.Point, len(nodesSeen))
	{
		scannerNodes, err := newOSMScanner(context.Background(), filename, file)
		if err != nil {
			return nil, err
		}
		defer scannerNodes.Close()
		for scannerNodes.Scan() {
			obj := scannerNodes.Object()
			if obj.ObjectID().Type() != "node" {
				continue
			}
			node := obj.(*osm.Node)
			if _, ok := nodesSeen[node.ID]; ok {
				nodes[node.ID] = node.Point()
			}
		}
		err = scannerNodes.Err()
		if err != nil {
			return nil, errors.Wrap(err, "Can't scan nodes")
		}
	}
	if verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
	}

	if verbose {
		fmt.Printf("\tPreparing road segments... ")
	}
	st = time.Now()
	segments, totalLength := waysToSegments(ways, nodes, verbose)
	if verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
		fmt.Printf("\tRoad segments: %d, total length (haversine): %.3f km\n", len(segments), totalLength/1000.0)
	}
	return segments, nil
}

// waysToSegments projects ways geometry and converts ways into road segments.
// Returns segments and their total haversine length in meters
func waysToSegments(ways []roadWay, nodes map[osm.NodeID]orb.Point, verbose bool) ([]RoadSegment, float64) {
	projector := localProjector{}
	segments := make([]RoadSegment, 0, len(ways))
	totalLength := 0.0
	for _, prepared := range ways {
		way := prepared.way
		line := make(orb.LineString, 0, len(way.Nodes))
		for _, wayNode := range way.Nodes {
			pt, ok := nodes[wayNode.ID]
			if !ok {
				if verbose {
					fmt.Printf("\n\t[WARNING]: No such node %d. Way ID: '%d'\n", wayNode.ID, way.ID)
				}
				continue
			}
			line = append(line, pt)
		}
		if len(line) < 2 {
			if verbose {
				fmt.Printf("\n\t[WARNING]: Way with %d resolved nodes met. Way ID: '%d'\n", len(line), way.ID)
			}
			continue
		}
		totalLength += geo.LengthHaversine(line)
		segment := RoadSegment{
			ID:     fmt.Sprintf("way_%d", way.ID),
			Name:   way.Tags.Find("name"),
			Points: make([]r3.Vec, 0, len(line)),
			Width:  parseWidth(way.Tags.Find("width")),
			Tags:   make(osm.Tags, len(way.Tags)),
		}
		copy(segment.Tags, way.Tags)
		for _, pt := range line {
			segment.Points = append(segment.Points, projector.project(pt.Lon(), pt.Lat(), 0))
		}
		if prepared.reversed {
			segment.Points = reverseLine(segment.Points)
			for i := range segment.Tags {
				if segment.Tags[i].Key == "oneway" {
					segment.Tags[i].Value = "yes"
				}
			}
		}
		segments = append(segments, segment)
	}
	return segments, totalLength
}
