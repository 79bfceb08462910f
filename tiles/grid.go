package tiles

import (
	"fmt"
	"math"

	"aerialframe/geo"
)

// TileSize re-exports the tile edge length for callers that only import
// this package.
const TileSize = geo.TileSize

// Coordinate identifies one square tile image in the pyramid.
type Coordinate struct {
	Zoom int
	X    int
	Y    int
}

func (c Coordinate) Valid() bool {
	n := 1 << c.Zoom
	return c.Zoom >= 0 && c.X >= 0 && c.X < n && c.Y >= 0 && c.Y < n
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%d/%d/%d", c.Zoom, c.X, c.Y)
}

// Grid is the rectangular tile range covering one viewport at a single
// zoom, the crop into the stitched canvas, and the geographic bounds of
// the viewport itself. Bounds come from zoom/tile math alone, never from
// the imagery, and describe the cropped frame rather than the tile
// edges, so area metadata is independent of tile-boundary snapping.
type Grid struct {
	Zoom         int
	MinX, MaxX   int
	MinY, MaxY   int
	CropX, CropY int
	OutW, OutH   int
	TopLeft      geo.Point
	BottomRight  geo.Point
}

func (g Grid) Cols() int { return g.MaxX - g.MinX + 1 }
func (g Grid) Rows() int { return g.MaxY - g.MinY + 1 }

// Tiles lists the grid's coordinates ordered by (y, x) ascending.
func (g Grid) Tiles() []Coordinate {
	out := make([]Coordinate, 0, g.Cols()*g.Rows())
	for y := g.MinY; y <= g.MaxY; y++ {
		for x := g.MinX; x <= g.MaxX; x++ {
			out = append(out, Coordinate{Zoom: g.Zoom, X: x, Y: y})
		}
	}
	return out
}

// ComputeGrid projects center to world pixels at zoom, lays an
// outW×outH viewport around it and returns the covering tile range.
// The viewport is snapped to whole pixels and clamped into the world
// square, so the crop window always stays inside the stitched canvas;
// there is no wraparound across the antimeridian. Tiles are half-open
// [x·T, (x+1)·T) intervals: a viewport edge exactly on a tile boundary
// keeps the boundary pixel in the lower-indexed tile.
func ComputeGrid(center geo.Point, zoom, outW, outH int) (Grid, error) {
	if outW <= 0 || outH <= 0 || outW%2 != 0 || outH%2 != 0 {
		return Grid{}, fmt.Errorf("output size %dx%d: dimensions must be positive and even", outW, outH)
	}
	world := int(geo.WorldSize(zoom))
	if outW > world || outH > world {
		return Grid{}, fmt.Errorf("output size %dx%d exceeds the %dpx world at zoom %d", outW, outH, world, zoom)
	}

	cx, cy, err := geo.ToPixel(center, zoom)
	if err != nil {
		return Grid{}, err
	}

	left := clampInt(int(math.Floor(cx))-outW/2, 0, world-outW)
	top := clampInt(int(math.Floor(cy))-outH/2, 0, world-outH)

	n := 1 << zoom
	g := Grid{
		Zoom: zoom,
		MinX: clampInt(left/TileSize, 0, n-1),
		MaxX: clampInt((left+outW-1)/TileSize, 0, n-1),
		MinY: clampInt(top/TileSize, 0, n-1),
		MaxY: clampInt((top+outH-1)/TileSize, 0, n-1),
		OutW: outW,
		OutH: outH,
	}
	g.CropX = left - g.MinX*TileSize
	g.CropY = top - g.MinY*TileSize
	g.TopLeft = geo.ToGeo(float64(left), float64(top), zoom)
	g.BottomRight = geo.ToGeo(float64(left+outW), float64(top+outH), zoom)
	return g, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
