package osm2street

type HighwayType uint16

const (
	HIGHWAY_MOTORWAY = HighwayType(iota + 1)
	HIGHWAY_MOTORWAY_LINK
	HIGHWAY_TRUNK
	HIGHWAY_TRUNK_LINK
	HIGHWAY_PRIMARY
	HIGHWAY_PRIMARY_LINK
	HIGHWAY_SECONDARY
	HIGHWAY_SECONDARY_LINK
	HIGHWAY_TERTIARY
	HIGHWAY_TERTIARY_LINK
	HIGHWAY_RESIDENTIAL
	HIGHWAY_RESIDENTIAL_LINK
	HIGHWAY_LIVING_STREET
	HIGHWAY_SERVICE
	HIGHWAY_SERVICES
	HIGHWAY_CYCLEWAY
	HIGHWAY_FOOTWAY
	HIGHWAY_PEDESTRIAN
	HIGHWAY_STEPS
	HIGHWAY_TRACK
	HIGHWAY_UNCLASSIFIED
)

func (iotaIdx HighwayType) String() string {
	return [...]string{"motorway", "motorway_link", "trunk", "trunk_link", "primary", "primary_link", "secondary", "secondary_link", "tertiary", "tertiary_link", "residential", "residential_link", "living_street", "service", "services", "cycleway", "footway", "pedestrian", "steps", "track", "unclassified"}[iotaIdx-1]
}

func getHighwayType(str string) HighwayType {
	if found, ok := highwaysTypes[str]; ok {
		return found
	}
	return 0
}

var (
	roadClassByHighway = map[HighwayType]RoadClass{
		HIGHWAY_MOTORWAY:         ROAD_CLASS_HIGHWAY,
		HIGHWAY_MOTORWAY_LINK:    ROAD_CLASS_HIGHWAY,
		HIGHWAY_TRUNK:            ROAD_CLASS_HIGHWAY,
		HIGHWAY_TRUNK_LINK:       ROAD_CLASS_ARTERIAL,
		HIGHWAY_PRIMARY:          ROAD_CLASS_ARTERIAL,
		HIGHWAY_PRIMARY_LINK:     ROAD_CLASS_ARTERIAL,
		HIGHWAY_SECONDARY:        ROAD_CLASS_COLLECTOR,
		HIGHWAY_SECONDARY_LINK:   ROAD_CLASS_COLLECTOR,
		HIGHWAY_TERTIARY:         ROAD_CLASS_COLLECTOR,
		HIGHWAY_TERTIARY_LINK:    ROAD_CLASS_COLLECTOR,
		HIGHWAY_RESIDENTIAL:      ROAD_CLASS_LOCAL,
		HIGHWAY_RESIDENTIAL_LINK: ROAD_CLASS_LOCAL,
		HIGHWAY_LIVING_STREET:    ROAD_CLASS_LOCAL,
		HIGHWAY_UNCLASSIFIED:     ROAD_CLASS_LOCAL,
		HIGHWAY_SERVICE:          ROAD_CLASS_SERVICE,
		HIGHWAY_SERVICES:         ROAD_CLASS_SERVICE,
		HIGHWAY_TRACK:            ROAD_CLASS_SERVICE,
		HIGHWAY_CYCLEWAY:         ROAD_CLASS_PEDESTRIAN,
		HIGHWAY_FOOTWAY:          ROAD_CLASS_PEDESTRIAN,
		HIGHWAY_PEDESTRIAN:       ROAD_CLASS_PEDESTRIAN,
		HIGHWAY_STEPS:            ROAD_CLASS_PEDESTRIAN,
	}

	highwaysTypes = map[string]HighwayType{
		"motorway":         HIGHWAY_MOTORWAY,
		"motorway_link":    HIGHWAY_MOTORWAY_LINK,
		"trunk":            HIGHWAY_TRUNK,
		"trunk_link":       HIGHWAY_TRUNK_LINK,
		"primary":          HIGHWAY_PRIMARY,
		"primary_link":     HIGHWAY_PRIMARY_LINK,
		"secondary":        HIGHWAY_SECONDARY,
		"secondary_link":   HIGHWAY_SECONDARY_LINK,
		"tertiary":         HIGHWAY_TERTIARY,
		"tertiary_link":    HIGHWAY_TERTIARY_LINK,
		"residential":      HIGHWAY_RESIDENTIAL,
		"residential_link": HIGHWAY_RESIDENTIAL_LINK,
		"living_street":    HIGHWAY_LIVING_STREET,
		"service":          HIGHWAY_SERVICE,
		"services":         HIGHWAY_SERVICES,
		"cycleway":         HIGHWAY_CYCLEWAY,
		"footway":          HIGHWAY_FOOTWAY,
		"pedestrian":       HIGHWAY_PEDESTRIAN,
		"steps":            HIGHWAY_STEPS,
		"track":            HIGHWAY_TRACK,
		"unclassified":     HIGHWAY_UNCLASSIFIED,
	}
)
