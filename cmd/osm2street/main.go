package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/LdDl/osm2street"
	"github.com/pkg/errors"
)

var (
	inFileName  = flag.String("file", "my_graph.osm.pbf", "Filename of input data. Expected extensions: *.osm / *.osm.pbf / *.geojson")
	geographic  = flag.Bool("geographic", true, "Treat GeoJSON coordinates as WGS84 (lon/lat) and project them into local meters")
	configFile  = flag.String("config", "", "Filename of YAML run config (optional). Flags below override it")
	heroStr     = flag.String("hero", "", "Names of hero roads (separated by commas)")
	lodMode     = flag.String("lod", "", "LOD mode. Expected values: high_detail / optimized")
	seed        = flag.Int64("seed", 42, "Seed for furniture distribution")
	workers     = flag.Int("workers", 0, "Number of goroutines building road meshes")
	out         = flag.String("out", "road_system.csv", "Filename of 'Comma-Separated Values' (CSV) formatted file. E.g.: if file name is 'map.csv' then 3 files will be produced: 'map.csv' (roads), 'map_intersections.csv', 'map_furniture.csv'")
	geojsonOut  = flag.String("geojson", "", "Filename of GeoJSON output (optional)")
	objOut      = flag.String("obj", "", "Filename of Wavefront OBJ output with all meshes (optional)")
	shortcuts   = flag.String("shortcuts", "", "Filename of contraction hierarchies shortcuts of road graph (optional)")
	verboseFlag = flag.Bool("verbose", true, "Print progress messages")
)

func main() {
	flag.Parse()
	err := run()
	if err != nil {
		fmt.Println(err)
		return
	}
}

func run() error {
	options := []func(*osm2street.RoadSystemProcessor){}
	if *configFile != "" {
		cfg, err := osm2street.ParseRunConfig(*configFile)
		if err != nil {
			return err
		}
		options = append(options, cfg.Options()...)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "hero":
			options = append(options, osm2street.WithHeroRoads(strings.Split(*heroStr, ",")))
		case "lod":
			options = append(options, osm2street.WithLODMode(osm2street.ParseLODMode(*lodMode)))
		case "seed":
			options = append(options, osm2street.WithSeed(*seed))
		case "workers":
			options = append(options, osm2street.WithWorkers(*workers))
		}
	})
	options = append(options, osm2street.WithVerbose(*verboseFlag))

	segments, err := readSegments(*inFileName)
	if err != nil {
		return err
	}
	processor := osm2street.NewRoadSystemProcessor(options...)
	if *verboseFlag {
		fmt.Println(processor)
	}
	system := processor.Process(segments)
	if *verboseFlag {
		fmt.Print(system.Stats)
	}

	err = system.ExportCSV(*out)
	if err != nil {
		return errors.Wrap(err, "Can't export CSV")
	}
	if *geojsonOut != "" {
		err = system.ExportGeoJSON(*geojsonOut)
		if err != nil {
			return err
		}
	}
	if *objOut != "" {
		err = system.ExportOBJ(*objOut)
		if err != nil {
			return err
		}
	}
	if *shortcuts != "" {
		roadGraph, err := osm2street.NewRoadGraph(system, *verboseFlag)
		if err != nil {
			return errors.Wrap(err, "Can't prepare road graph")
		}
		err = roadGraph.ExportShortcuts(*shortcuts)
		if err != nil {
			return err
		}
	}
	return nil
}

func readSegments(filename string) ([]osm2street.RoadSegment, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".geojson", ".json":
		segments, err := osm2street.ReadGeoJSONSegments(filename, *geographic)
		if err != nil {
			return nil, errors.Wrap(err, "Can't read GeoJSON segments")
		}
		return segments, nil
	default:
		segments, err := osm2street.ReadOSMSegments(filename, *verboseFlag)
		if err != nil {
			return nil, errors.Wrap(err, "Can't read OSM segments")
		}
		return segments, nil
	}
}
