package osm2street

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// RunConfig is a YAML run file for the processor. Zero values keep defaults
type RunConfig struct {
	HeroRoads []string `yaml:"hero_roads"`
	LODMode   string   `yaml:"lod_mode"`
	Seed      *int64   `yaml:"seed"`
	Workers   int      `yaml:"workers"`
	Detector  struct {
		ProximityThreshold   float64 `yaml:"proximity_threshold"`
		MinIntersectionRoads int     `yaml:"min_intersection_roads"`
		MergeAngleTolerance  float64 `yaml:"merge_angle_tolerance"`
		TJunctionTolerance   float64 `yaml:"t_junction_tolerance"`
		Clustering           string  `yaml:"clustering"`
		Margin               float64 `yaml:"margin"`
	} `yaml:"detector"`
}

// ParseRunConfig parses YAML run file
func ParseRunConfig(filePath string) (*RunConfig, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "Can't open run config")
	}
	defer file.Close()
	return ParseRunConfigFromReader(file)
}

// ParseRunConfigFromReader parses run config from an io.Reader
func ParseRunConfigFromReader(r io.Reader) (*RunConfig, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read run config")
	}
	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "Can't unmarshal run config")
	}
	return &cfg, nil
}

// DetectorConfig returns default detector configuration overridden by provided values
func (cfg *RunConfig) DetectorConfig() DetectorConfig {
	detectorCfg := DefaultDetectorConfig()
	if cfg.Detector.ProximityThreshold > 0 {
		detectorCfg.ProximityThreshold = cfg.Detector.ProximityThreshold
	}
	if cfg.Detector.MinIntersectionRoads > 0 {
		detectorCfg.MinIntersectionRoads = cfg.Detector.MinIntersectionRoads
	}
	if cfg.Detector.MergeAngleTolerance > 0 {
		detectorCfg.MergeAngleTolerance = cfg.Detector.MergeAngleTolerance
	}
	if cfg.Detector.TJunctionTolerance > 0 {
		detectorCfg.TJunctionTolerance = cfg.Detector.TJunctionTolerance
	}
	if cfg.Detector.Margin > 0 {
		detectorCfg.Margin = cfg.Detector.Margin
	}
	if cfg.Detector.Clustering == CLUSTERING_GREEDY.String() {
		detectorCfg.Clustering = CLUSTERING_GREEDY
	}
	return detectorCfg
}

// Options converts run config into processor options
func (cfg *RunConfig) Options() []func(*RoadSystemProcessor) {
	options := []func(*RoadSystemProcessor){
		WithDetectorConfig(cfg.DetectorConfig()),
	}
	if len(cfg.HeroRoads) > 0 {
		options = append(options, WithHeroRoads(cfg.HeroRoads))
	}
	if cfg.LODMode != "" {
		options = append(options, WithLODMode(ParseLODMode(cfg.LODMode)))
	}
	if cfg.Seed != nil {
		options = append(options, WithSeed(*cfg.Seed))
	}
	if cfg.Workers > 0 {
		options = append(options, WithWorkers(cfg.Workers))
	}
	return options
}
