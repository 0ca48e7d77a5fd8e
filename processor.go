package osm2street

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// RoadResult holds every mesh generated for a single road
type RoadResult struct {
	Road     ClassifiedRoad
	Pavement GeometryResult
	// Empty when the road has no curb or LOD is LOD_LOW
	Curb GeometryResult
	// Empty when the road has no sidewalk or LOD is LOD_LOW
	Sidewalk GeometryResult
	Markings []RoadMarking
}

// ProcessedRoadSystem is the output of RoadSystemProcessor
type ProcessedRoadSystem struct {
	Roads         []RoadResult
	Intersections []IntersectionGeometry
	Furniture     []StreetFurnitureItem
	Stats         Stats
}

// RoadSystemProcessor runs the whole pipeline: classification, intersections, meshes, markings and furniture
type RoadSystemProcessor struct {
	heroRoads      []string
	lodMode        LODMode
	seed           int64
	workers        int
	verbose        bool
	detectorCfg    DetectorConfig
	geometryCfg    GeometryConfig
	furnitureSpecs map[FurnitureKind]DistributionSpec
}

func (processor *RoadSystemProcessor) String() string {
	return fmt.Sprintf(`
Road system processor parameters:
	hero_roads: '%s'
	lod_mode: '%s'
	seed: %d
	workers: %d
	proximity_threshold: %f
	min_intersection_roads: %d
	merge_angle_tolerance: %f
	t_junction_tolerance: %f
	clustering: '%s'
	furniture_kinds: %d
	`,
		strings.Join(processor.heroRoads, ","),
		processor.lodMode,
		processor.seed,
		processor.workers,
		processor.detectorCfg.ProximityThreshold,
		processor.detectorCfg.MinIntersectionRoads,
		processor.detectorCfg.MergeAngleTolerance,
		processor.detectorCfg.TJunctionTolerance,
		processor.detectorCfg.Clustering,
		len(processor.furnitureSpecs),
	)
}

func NewRoadSystemProcessor(options ...func(*RoadSystemProcessor)) *RoadSystemProcessor {
	processor := &RoadSystemProcessor{
		lodMode:        LOD_MODE_HIGH_DETAIL,
		seed:           42,
		workers:        1,
		detectorCfg:    DefaultDetectorConfig(),
		geometryCfg:    DefaultGeometryConfig(),
		furnitureSpecs: DefaultFurnitureSpecs(),
	}
	for _, option := range options {
		option(processor)
	}
	return processor
}

func WithHeroRoads(heroRoads []string) func(*RoadSystemProcessor) {
	return func(processor *RoadSystemProcessor) {
		processor.heroRoads = heroRoads
	}
}

func WithLODMode(lodMode LODMode) func(*RoadSystemProcessor) {
	return func(processor *RoadSystemProcessor) {
		processor.lodMode = lodMode
	}
}

func WithSeed(seed int64) func(*RoadSystemProcessor) {
	return func(processor *RoadSystemProcessor) {
		processor.seed = seed
	}
}

// WithWorkers sets number of goroutines building per-road meshes. Values < 1 mean sequential processing
func WithWorkers(workers int) func(*RoadSystemProcessor) {
	return func(processor *RoadSystemProcessor) {
		processor.workers = workers
	}
}

func WithVerbose(verbose bool) func(*RoadSystemProcessor) {
	return func(processor *RoadSystemProcessor) {
		processor.verbose = verbose
	}
}

func WithDetectorConfig(cfg DetectorConfig) func(*RoadSystemProcessor) {
	return func(processor *RoadSystemProcessor) {
		processor.detectorCfg = cfg
	}
}

func WithGeometryConfig(cfg GeometryConfig) func(*RoadSystemProcessor) {
	return func(processor *RoadSystemProcessor) {
		processor.geometryCfg = cfg
	}
}

func WithFurnitureSpecs(specs map[FurnitureKind]DistributionSpec) func(*RoadSystemProcessor) {
	return func(processor *RoadSystemProcessor) {
		processor.furnitureSpecs = specs
	}
}

// Process runs the pipeline over given segments. Segments with less than 2 points are skipped
func (processor *RoadSystemProcessor) Process(segments []RoadSegment) *ProcessedRoadSystem {
	stTotal := time.Now()
	valid := make([]RoadSegment, 0, len(segments))
	skipped := 0
	for _, segment := range segments {
		if len(segment.Points) < 2 {
			skipped++
			if processor.verbose {
				fmt.Printf("[WARNING]: segment '%s' has %d point(s). Skipping it\n", segment.ID, len(segment.Points))
			}
			continue
		}
		valid = append(valid, segment)
	}

	if processor.verbose {
		fmt.Printf("Classifying %d segments...", len(valid))
	}
	st := time.Now()
	classifier := NewRoadClassifier(processor.heroRoads)
	roads := make([]ClassifiedRoad, len(valid))
	widths := make([]float64, len(valid))
	for i := range valid {
		roads[i] = classifier.ClassifySegment(valid[i])
		processor.lodMode.capLOD(&roads[i])
		widths[i] = roads[i].EffectiveWidth()
	}
	if processor.verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
	}

	if processor.verbose {
		fmt.Printf("Detecting intersections...")
	}
	st = time.Now()
	detector := NewIntersectionDetector(processor.detectorCfg)
	clusters := detector.Detect(valid, func(segmentIndex int) float64 {
		return widths[segmentIndex]
	})
	intersectionBuilder := NewIntersectionBuilder(detector.Config())
	crosswalkBuilder := NewCrosswalkBuilder()
	intersections := make([]IntersectionGeometry, 0, len(clusters))
	for _, cluster := range clusters {
		intersection := intersectionBuilder.Build(cluster)
		crosswalkBuilder.Build(&intersection)
		intersections = append(intersections, intersection)
	}
	if processor.verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
	}

	if processor.verbose {
		fmt.Printf("Building road meshes...")
	}
	st = time.Now()
	results := processor.buildRoads(roads, intersections)
	if processor.verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
	}

	if processor.verbose {
		fmt.Printf("Distributing street furniture...")
	}
	st = time.Now()
	distributor := NewFurnitureDistributor(processor.furnitureSpecs, processor.lodMode.furnitureKinds(), processor.seed)
	furniture := distributor.Distribute(roads, intersections)
	if processor.verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
	}

	system := &ProcessedRoadSystem{
		Roads:         results,
		Intersections: intersections,
		Furniture:     furniture,
	}
	system.Stats = collectStats(system, skipped)
	if processor.verbose {
		fmt.Printf("Road system has been processed in %v\n", time.Since(stTotal))
	}
	return system
}

// buildRoads generates per-road meshes. Results are stored by road index so output order does not depend on workers
func (processor *RoadSystemProcessor) buildRoads(roads []ClassifiedRoad, intersections []IntersectionGeometry) []RoadResult {
	geometryBuilder := NewRoadGeometryBuilder(processor.geometryCfg)
	markingGenerator := NewRoadMarkingGenerator(processor.geometryCfg)
	results := make([]RoadResult, len(roads))
	if processor.workers <= 1 {
		for i := range roads {
			results[i] = buildRoad(&roads[i], intersections, geometryBuilder, markingGenerator)
		}
		return results
	}
	jobs := make(chan int, len(roads))
	for i := range roads {
		jobs <- i
	}
	close(jobs)
	var wg sync.WaitGroup
	for w := 0; w < processor.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = buildRoad(&roads[i], intersections, geometryBuilder, markingGenerator)
			}
		}()
	}
	wg.Wait()
	return results
}

// buildRoad generates pavement, curb, sidewalk and markings of the single road
func buildRoad(road *ClassifiedRoad, intersections []IntersectionGeometry, geometryBuilder *RoadGeometryBuilder, markingGenerator *RoadMarkingGenerator) RoadResult {
	result := RoadResult{
		Road:     *road,
		Pavement: geometryBuilder.BuildPavement(road),
	}
	if road.LOD == LOD_LOW {
		result.Markings = markingGenerator.Generate(road)
		return result
	}
	result.Curb = geometryBuilder.BuildCurb(road, ROAD_SIDE_BOTH)
	result.Sidewalk = geometryBuilder.BuildSidewalk(road)
	result.Markings = markingGenerator.Generate(road)
	result.Markings = append(result.Markings, markingGenerator.GenerateStopLines(road, intersections, crosswalkMinApproaches)...)
	return result
}
