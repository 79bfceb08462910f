package geo

import (
	"errors"
	"math"
	"testing"

	"github.com/matryer/is"
)

func TestToPixelOrigin(t *testing.T) {
	is := is.New(t)

	// (0,0) sits at the center of the world square
	gx, gy, err := ToPixel(Point{}, 1)
	is.NoErr(err)
	is.Equal(gx, 256.0)
	is.Equal(gy, 256.0)

	gx, gy, err = ToPixel(Point{}, 0)
	is.NoErr(err)
	is.Equal(gx, 128.0)
	is.Equal(gy, 128.0)
}

func TestToPixelCorners(t *testing.T) {
	is := is.New(t)

	gx, gy, err := ToPixel(Point{Lat: MaxLat, Lon: -180}, 0)
	is.NoErr(err)
	is.True(math.Abs(gx) < 1e-9)
	is.True(math.Abs(gy) < 1e-6)

	gx, gy, err = ToPixel(Point{Lat: -MaxLat, Lon: 180}, 0)
	is.NoErr(err)
	is.True(math.Abs(gx-256) < 1e-9)
	is.True(math.Abs(gy-256) < 1e-6)
}

func TestToPixelOutOfRange(t *testing.T) {
	is := is.New(t)

	_, _, err := ToPixel(Point{Lat: 89.0}, 3)
	is.True(errors.Is(err, ErrOutOfProjectionRange))

	_, _, err = ToPixel(Point{Lat: -90.0}, 3)
	is.True(errors.Is(err, ErrOutOfProjectionRange))
}

func TestRoundTrip(t *testing.T) {
	is := is.New(t)

	pts := []Point{
		{0, 0},
		{51.477928, -0.001545},
		{-33.856784, 151.215297},
		{84.9, -179.9},
		{-84.9, 179.9},
		{12.34, 56.78},
	}
	for _, p := range pts {
		for zoom := 0; zoom <= 18; zoom += 3 {
			gx, gy, err := ToPixel(p, zoom)
			is.NoErr(err)
			back := ToGeo(gx, gy, zoom)
			is.True(math.Abs(back.Lat-p.Lat) < 1e-9)
			is.True(math.Abs(back.Lon-p.Lon) < 1e-9)
		}
	}
}

func TestDMS(t *testing.T) {
	is := is.New(t)

	p := Point{Lat: 44.591, Lon: -100.36475}
	is.Equal(p.DMS(), `44°35'27.6"N 100°21'53.1"W`)
}

// Seconds that round to 60.0 must carry into minutes and degrees.
func TestDMSCarry(t *testing.T) {
	is := is.New(t)

	p := Point{Lat: 44.9999999, Lon: 10.9999999}
	is.Equal(p.DMS(), `45°0'0.0"N 11°0'0.0"E`)

	// carry within the minute only
	p = Point{Lat: 44.01666665, Lon: 0}
	is.Equal(p.DMS(), `44°1'0.0"N 0°0'0.0"E`)
}
