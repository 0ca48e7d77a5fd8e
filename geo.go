package osm2street

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	earthR = 20037508.34
)

func epsg4326To3857(lon, lat float64) (float64, float64) {
	x := lon * earthR / 180
	y := math.Log(math.Tan((90+lat)*math.Pi/360)) / (math.Pi / 180)
	y = y * earthR / 180
	return x, y
}

// localProjector converts WGS84 coordinates into local planar meters.
// Origin is the first projected point, Web Mercator units are scaled by cos(latitude of origin)
// so distances near the origin are true meters
type localProjector struct {
	ready   bool
	originX float64
	originY float64
	scale   float64
}

func (projector *localProjector) project(lon, lat, elevation float64) r3.Vec {
	x, y := epsg4326To3857(lon, lat)
	if !projector.ready {
		projector.ready = true
		projector.originX, projector.originY = x, y
		projector.scale = math.Cos(degreesToRadians(lat))
	}
	return r3.Vec{
		X: (x - projector.originX) * projector.scale,
		Y: (y - projector.originY) * projector.scale,
		Z: elevation,
	}
}
