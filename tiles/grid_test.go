package tiles

import (
	"errors"
	"math"
	"testing"

	"github.com/matryer/is"

	"aerialframe/geo"
)

// (0,0) projects onto the four-tile seam of the 2×2 pyramid: the grid
// must span all four tiles with a zero crop offset.
func TestComputeGridFourTileSeam(t *testing.T) {
	is := is.New(t)

	g, err := ComputeGrid(geo.Point{}, 1, 512, 512)
	is.NoErr(err)
	is.Equal(g.MinX, 0)
	is.Equal(g.MaxX, 1)
	is.Equal(g.MinY, 0)
	is.Equal(g.MaxY, 1)
	is.Equal(g.CropX, 0)
	is.Equal(g.CropY, 0)

	tilesList := g.Tiles()
	is.Equal(len(tilesList), 4)
	is.Equal(tilesList[0], Coordinate{Zoom: 1, X: 0, Y: 0})
	is.Equal(tilesList[1], Coordinate{Zoom: 1, X: 1, Y: 0})
	is.Equal(tilesList[2], Coordinate{Zoom: 1, X: 0, Y: 1})
	is.Equal(tilesList[3], Coordinate{Zoom: 1, X: 1, Y: 1})

	// full world viewport: bounds are the mercator square
	is.True(math.Abs(g.TopLeft.Lat-geo.MaxLat) < 1e-6)
	is.True(math.Abs(g.TopLeft.Lon+180) < 1e-9)
	is.True(math.Abs(g.BottomRight.Lat+geo.MaxLat) < 1e-6)
	is.True(math.Abs(g.BottomRight.Lon-180) < 1e-9)
}

// A viewport edge exactly on a tile boundary keeps the boundary pixel in
// the lower-indexed tile and yields a zero crop offset on that axis.
func TestComputeGridBoundaryTieBreak(t *testing.T) {
	is := is.New(t)

	// center pixel at zoom 2 is (512, 512); a 512-wide viewport starts
	// exactly at pixel 256, the left edge of tile 1
	g, err := ComputeGrid(geo.Point{}, 2, 512, 512)
	is.NoErr(err)
	is.Equal(g.CropX, 0)
	is.Equal(g.CropY, 0)
	is.Equal(g.MinX, 1)
	is.Equal(g.MaxX, 2)
	is.Equal(g.MinY, 1)
	is.Equal(g.MaxY, 2)
}

func TestComputeGridCropInsideCanvas(t *testing.T) {
	is := is.New(t)

	centers := []geo.Point{
		{Lat: 0, Lon: 0},
		{Lat: 48.8584, Lon: 2.2945},
		{Lat: -41.2865, Lon: 174.7762},
		{Lat: 84.9, Lon: -179.5},
		{Lat: -84.9, Lon: 179.5},
	}
	sizes := [][2]int{{256, 256}, {640, 480}, {1024, 768}, {1920, 1080}}

	for _, c := range centers {
		for _, wh := range sizes {
			for zoom := 4; zoom <= 16; zoom += 4 {
				g, err := ComputeGrid(c, zoom, wh[0], wh[1])
				is.NoErr(err)
				is.True(g.CropX >= 0)
				is.True(g.CropY >= 0)
				is.True(g.CropX+g.OutW <= g.Cols()*TileSize)
				is.True(g.CropY+g.OutH <= g.Rows()*TileSize)
				is.True(g.MinX >= 0 && g.MaxX < 1<<zoom)
				is.True(g.MinY >= 0 && g.MaxY < 1<<zoom)
			}
		}
	}
}

// Bounds describe the requested viewport, not the snapped tile edges.
func TestComputeGridBoundsFromViewport(t *testing.T) {
	is := is.New(t)

	g, err := ComputeGrid(geo.Point{}, 3, 640, 256)
	is.NoErr(err)

	// center pixel (1024, 1024); viewport [704..1344] × [896..1152]
	want := geo.ToGeo(704, 896, 3)
	is.True(math.Abs(g.TopLeft.Lat-want.Lat) < 1e-9)
	is.True(math.Abs(g.TopLeft.Lon-want.Lon) < 1e-9)
	want = geo.ToGeo(1344, 1152, 3)
	is.True(math.Abs(g.BottomRight.Lat-want.Lat) < 1e-9)
	is.True(math.Abs(g.BottomRight.Lon-want.Lon) < 1e-9)

	// the viewport edge sits mid-tile: pixel 704 inside tile 2, whose
	// left edge is pixel 512
	is.Equal(g.MinX, 2)
	tileEdge := geo.ToGeo(float64(g.MinX*TileSize), 0, 3)
	is.True(math.Abs(tileEdge.Lon-g.TopLeft.Lon) > 1e-9)
}

func TestComputeGridClampsToWorldEdge(t *testing.T) {
	is := is.New(t)

	// near the top edge at low zoom the viewport would overflow the
	// world square; it must slide inside, not wrap
	g, err := ComputeGrid(geo.Point{Lat: 85.0, Lon: -179.9}, 3, 512, 512)
	is.NoErr(err)
	is.Equal(g.MinX, 0)
	is.Equal(g.MinY, 0)
	is.Equal(g.CropX, 0)
	is.Equal(g.CropY, 0)
}

func TestComputeGridErrors(t *testing.T) {
	is := is.New(t)

	_, err := ComputeGrid(geo.Point{Lat: 89}, 5, 512, 512)
	is.True(errors.Is(err, geo.ErrOutOfProjectionRange))

	_, err = ComputeGrid(geo.Point{}, 5, 511, 512)
	is.True(err != nil) // odd width

	_, err = ComputeGrid(geo.Point{}, 5, 512, 0)
	is.True(err != nil)

	_, err = ComputeGrid(geo.Point{}, 0, 512, 512)
	is.True(err != nil) // bigger than the zoom-0 world
}
