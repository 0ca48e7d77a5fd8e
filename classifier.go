package osm2street

import (
	"regexp"
	"strings"
)

const (
	// Explicit width at or above this value forces ARTERIAL
	WideRoadWidth = 18.0
	// Explicit width below this value forces SERVICE
	NarrowRoadWidth = 5.0
)

var (
	arterialPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(boulevard|blvd)\b`),
		regexp.MustCompile(`(?i)\b(avenue|ave)\b`),
		regexp.MustCompile(`(?i)\b(parkway|pkwy|expressway|highway|hwy|freeway)\b`),
	}
	collectorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(road|rd)\b`),
		regexp.MustCompile(`(?i)\b(drive|dr)\b`),
		regexp.MustCompile(`(?i)\b(pike|turnpike|route)\b`),
	}
	localPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(street|st)\b`),
		regexp.MustCompile(`(?i)\b(lane|ln|court|ct|place|pl|terrace|close|way)\b`),
	}

	namePatternGroups = []struct {
		class    RoadClass
		patterns []*regexp.Regexp
	}{
		{ROAD_CLASS_ARTERIAL, arterialPatterns},
		{ROAD_CLASS_COLLECTOR, collectorPatterns},
		{ROAD_CLASS_LOCAL, localPatterns},
	}
)

// RoadClassifier assigns road class to raw segments
type RoadClassifier struct {
	heroRoads []string
}

// NewRoadClassifier returns classifier for given set of hero road names
func NewRoadClassifier(heroRoads []string) *RoadClassifier {
	classifier := RoadClassifier{
		heroRoads: make([]string, 0, len(heroRoads)),
	}
	for _, name := range heroRoads {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		classifier.heroRoads = append(classifier.heroRoads, name)
	}
	return &classifier
}

// GetSpec returns geometric specification for given class. Unknown classes fall back to LOCAL
func (classifier *RoadClassifier) GetSpec(class RoadClass) RoadClassSpec {
	if spec, ok := roadClassSpecs[class]; ok {
		return spec
	}
	return roadClassSpecs[ROAD_CLASS_LOCAL]
}

// isHero checks if segment name matches (exactly or by substring) any of hero road names
func (classifier *RoadClassifier) isHero(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return false
	}
	for _, hero := range classifier.heroRoads {
		if name == hero || strings.Contains(name, hero) {
			return true
		}
	}
	return false
}

// Classify returns road class for given segment
func (classifier *RoadClassifier) Classify(segment RoadSegment) RoadClass {
	if classifier.isHero(segment.Name) {
		return ROAD_CLASS_HERO
	}
	class, ok := roadClassByHighway[getHighwayType(segment.highway())]
	if !ok {
		class = classByName(segment.Name)
	}
	return refineClass(class, segment.Width, segment.lanes())
}

// classByName matches name against ordered pattern groups. Unmatched names are LOCAL
func classByName(name string) RoadClass {
	for _, group := range namePatternGroups {
		for _, pattern := range group.patterns {
			if pattern.MatchString(name) {
				return group.class
			}
		}
	}
	return ROAD_CLASS_LOCAL
}

// refineClass adjusts class by explicit width and lanes number
func refineClass(class RoadClass, width float64, lanes int) RoadClass {
	if width > 0 {
		if width >= WideRoadWidth && class > ROAD_CLASS_ARTERIAL {
			class = ROAD_CLASS_ARTERIAL
		} else if width < NarrowRoadWidth && class < ROAD_CLASS_SERVICE {
			class = ROAD_CLASS_SERVICE
		}
	}
	if lanes >= 4 && class > ROAD_CLASS_ARTERIAL {
		class = ROAD_CLASS_ARTERIAL
	}
	if lanes == 1 && class < ROAD_CLASS_SERVICE {
		class = ROAD_CLASS_SERVICE
	}
	return class
}

// ClassifySegment resolves class and binds segment to it
func (classifier *RoadClassifier) ClassifySegment(segment RoadSegment) ClassifiedRoad {
	class := classifier.Classify(segment)
	spec := classifier.GetSpec(class)
	road := ClassifiedRoad{
		Segment: segment,
		Class:   class,
		Spec:    spec,
		IsHero:  class == ROAD_CLASS_HERO,
		LOD:     spec.LOD,
		Lanes:   spec.Lanes,
		Oneway:  spec.Oneway,
	}
	if segment.Width > 0 {
		road.WidthOverride = segment.Width
	}
	if lanes := segment.lanes(); lanes > 0 {
		road.Lanes = lanes
	}
	if oneway, ok := segment.oneway(); ok {
		road.Oneway = oneway
	}
	return road
}
