package osm2street

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/paulmach/osm"
	"gonum.org/v1/gonum/spatial/r3"
)

// RoadSegment is a raw road centerline harvested from a geographic data source
type RoadSegment struct {
	ID     string
	Name   string
	Points []r3.Vec
	// Width is an explicit carriageway width. Zero means "not provided"
	Width float64
	Tags  osm.Tags
}

var (
	lanesRegExp = regexp.MustCompile(`\d+`)
)

// highway returns value of `highway` tag
func (segment *RoadSegment) highway() string {
	return segment.Tags.Find("highway")
}

// lanes returns value of `lanes` tag. Returns -1 if tag is missing or malformed
func (segment *RoadSegment) lanes() int {
	lanes := segment.Tags.Find("lanes")
	if lanes == "" {
		return -1
	}
	// Values like "2;3" are met in the wild: take the first number
	lanesNum := lanesRegExp.FindString(lanes)
	if lanesNum == "" {
		return -1
	}
	value, err := strconv.Atoi(lanesNum)
	if err != nil {
		return -1
	}
	return value
}

// oneway returns value of `oneway` tag and whether it has been provided at all.
// Roundabouts are one-way unless tagged otherwise
func (segment *RoadSegment) oneway() (bool, bool) {
	onewayText := strings.ToLower(segment.Tags.Find("oneway"))
	switch onewayText {
	case "yes", "1", "true", "-1":
		return true, true
	case "no", "0", "false":
		return false, true
	}
	if _, ok := onewayReversible[onewayText]; ok {
		// Direction depends on time conditions
		return false, true
	}
	if _, ok := junctionTypes[segment.Tags.Find("junction")]; ok {
		return true, true
	}
	return false, false
}

// Length returns arc length of the centerline
func (segment *RoadSegment) Length() float64 {
	return polylineLength(segment.Points)
}

// ClassifiedRoad is a RoadSegment bound to its resolved class
type ClassifiedRoad struct {
	Segment       RoadSegment
	Class         RoadClass
	Spec          RoadClassSpec
	WidthOverride float64
	IsHero        bool
	LOD           LODLevel
	Lanes         int
	Oneway        bool
}

// EffectiveWidth returns the override width if provided, otherwise the class default
func (road *ClassifiedRoad) EffectiveWidth() float64 {
	if road.WidthOverride > 0 {
		return road.WidthOverride
	}
	if road.Spec.Width > 0 {
		return road.Spec.Width
	}
	return roadClassSpecs[ROAD_CLASS_LOCAL].Width
}

// LaneWidth returns width of a single lane, squeezed if lanes do not fit into effective width
func (road *ClassifiedRoad) LaneWidth() float64 {
	if road.Lanes <= 0 {
		return 0
	}
	laneWidth := road.Spec.LaneWidth
	if laneWidth <= 0 {
		laneWidth = defaultLaneWidth
	}
	if float64(road.Lanes)*laneWidth > road.EffectiveWidth() {
		return road.EffectiveWidth() / float64(road.Lanes)
	}
	return laneWidth
}

const (
	defaultLaneWidth = 3.5
)
