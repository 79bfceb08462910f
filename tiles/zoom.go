package tiles

import (
	"math"

	"aerialframe/geo"
)

// Level describes one zoom level a tile source exposes. MetersPerPixel
// is the ground resolution at the equator.
type Level struct {
	Zoom           int     `json:"zoom"`
	MetersPerPixel float64 `json:"meters_per_pixel"`
}

// EquatorMeters is the length of the equator (WGS84, EPSG:3857).
const EquatorMeters = 40075016.685578

// GroundResolution returns the equatorial meters-per-pixel of a zoom
// level for 256px tiles.
func GroundResolution(zoom int) float64 {
	return EquatorMeters / (geo.TileSize * math.Exp2(float64(zoom)))
}

// SelectZoom picks the smallest zoom whose resolution satisfies the
// ceiling, which is the coarsest sufficient level and the fewest tiles.
// Levels must be non-empty and sorted by zoom, resolution decreasing.
// When even the finest level is too coarse it returns that level with
// exact=false: the ceiling is a best-effort target, never a failure.
func SelectZoom(levels []Level, maxMetersPerPixel float64) (zoom int, exact bool) {
	for _, l := range levels {
		if l.MetersPerPixel <= maxMetersPerPixel {
			return l.Zoom, true
		}
	}
	return levels[len(levels)-1].Zoom, false
}
