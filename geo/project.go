package geo

import (
	"errors"
	"fmt"
	"math"
)

// TileSize is the edge length of one tile in pixels. The projected world
// at zoom z is TileSize·2^z pixels square.
const TileSize = 256

// MaxLat is the highest latitude the spherical mercator projection can
// represent (the world square's top edge).
const MaxLat = 85.05112878

// ErrOutOfProjectionRange means a latitude beyond ±MaxLat was passed to
// the projection.
var ErrOutOfProjectionRange = errors.New("latitude outside mercator range")

// WorldSize is the pixel width/height of the whole map at zoom z.
func WorldSize(zoom int) float64 {
	return TileSize * math.Exp2(float64(zoom))
}

// ToPixel projects p to continuous world-pixel coordinates at the given
// zoom, x growing east and y growing south. These two functions are the
// only coordinate-transform primitives in the repository; everything
// else builds on them.
func ToPixel(p Point, zoom int) (gx, gy float64, err error) {
	if p.Lat < -MaxLat || p.Lat > MaxLat {
		return 0, 0, fmt.Errorf("%w: lat %.6f", ErrOutOfProjectionRange, p.Lat)
	}
	ws := WorldSize(zoom)
	gx = (p.Lon + 180) / 360 * ws
	rad := p.Lat * math.Pi / 180
	gy = (1 - math.Log(math.Tan(rad)+1/math.Cos(rad))/math.Pi) / 2 * ws
	return gx, gy, nil
}

// ToGeo is the algebraic inverse of ToPixel.
func ToGeo(gx, gy float64, zoom int) Point {
	ws := WorldSize(zoom)
	lon := gx/ws*360 - 180
	lat := math.Atan(math.Sinh(math.Pi*(1-2*gy/ws))) * 180 / math.Pi
	return Point{Lat: lat, Lon: lon}
}
