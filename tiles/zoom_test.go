package tiles

import (
	"testing"

	"github.com/matryer/is"
)

func TestSelectZoomSmallestSufficient(t *testing.T) {
	is := is.New(t)

	levels := []Level{
		{Zoom: 0, MetersPerPixel: 20000},
		{Zoom: 10, MetersPerPixel: 40},
		{Zoom: 14, MetersPerPixel: 9},
	}

	zoom, exact := SelectZoom(levels, 10)
	is.Equal(zoom, 14)
	is.True(exact)

	zoom, exact = SelectZoom(levels, 40)
	is.Equal(zoom, 10)
	is.True(exact)

	zoom, exact = SelectZoom(levels, 25000)
	is.Equal(zoom, 0)
	is.True(exact)
}

func TestSelectZoomFallback(t *testing.T) {
	is := is.New(t)

	levels := []Level{
		{Zoom: 0, MetersPerPixel: 20000},
		{Zoom: 10, MetersPerPixel: 40},
		{Zoom: 14, MetersPerPixel: 9},
	}

	// finest level is still coarser than requested: best effort, flagged
	zoom, exact := SelectZoom(levels, 5)
	is.Equal(zoom, 14)
	is.True(!exact)
}

// Raising the ceiling must never select a finer level than necessary.
func TestSelectZoomMonotonic(t *testing.T) {
	is := is.New(t)

	src := Presets["esri-satellite"]
	levels := src.Levels()

	prev := 0.0
	for ceiling := 1.0; ceiling < 1e6; ceiling *= 1.7 {
		zoom, _ := SelectZoom(levels, ceiling)
		mpp := GroundResolution(zoom)
		if prev != 0 {
			is.True(mpp >= prev)
		}
		prev = mpp
	}
}

// A manifest can select a zoom the delivery source cannot serve.
// Clamping down coarsens the frame past the requested ceiling, so the
// exact flag must drop with it; clamping up keeps it.
func TestClampZoomExact(t *testing.T) {
	is := is.New(t)

	src := Source{MinZoom: 3, MaxZoom: 12}

	zoom, exact := ClampZoomExact(15, true, src)
	is.Equal(zoom, 12)
	is.True(!exact)

	zoom, exact = ClampZoomExact(1, true, src)
	is.Equal(zoom, 3)
	is.True(exact)

	zoom, exact = ClampZoomExact(8, true, src)
	is.Equal(zoom, 8)
	is.True(exact)

	// already inexact stays inexact
	_, exact = ClampZoomExact(8, false, src)
	is.True(!exact)
}

func TestSourceLevels(t *testing.T) {
	is := is.New(t)

	levels := Presets["opentopomap"].Levels()
	is.Equal(len(levels), 18)
	for i := 1; i < len(levels); i++ {
		is.True(levels[i].Zoom > levels[i-1].Zoom)
		is.True(levels[i].MetersPerPixel < levels[i-1].MetersPerPixel)
	}
	// zoom 0: whole equator across one tile
	is.True(levels[0].MetersPerPixel > 156000 && levels[0].MetersPerPixel < 157000)
}
