package main

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"aerialframe/geo"
)

// RenderOverlay draws the boundary ring, its bounding box and sample
// points onto a square canvas, a quick visual check that the sampler
// hits where it should. Plain equirectangular fit, not survey-accurate.
func RenderOverlay(pg geo.Polygon, samples []geo.Point, size int, markers []color.Color) image.Image {
	bb := pg.Bounds()
	padLat := (bb.MaxLat - bb.MinLat) * 0.05
	padLon := (bb.MaxLon - bb.MinLon) * 0.05
	view := geo.Rect{
		MinLat: bb.MinLat - padLat, MaxLat: bb.MaxLat + padLat,
		MinLon: bb.MinLon - padLon, MaxLon: bb.MaxLon + padLon,
	}

	dc := gg.NewContext(size, size)
	dc.SetRGB(0.12, 0.12, 0.12)
	dc.Clear()

	px := func(p geo.Point) (float64, float64) {
		x := (p.Lon - view.MinLon) / (view.MaxLon - view.MinLon) * float64(size)
		y := (1 - (p.Lat-view.MinLat)/(view.MaxLat-view.MinLat)) * float64(size)
		return x, y
	}

	// bounding box
	x0, y0 := px(geo.Point{Lat: bb.MaxLat, Lon: bb.MinLon})
	x1, y1 := px(geo.Point{Lat: bb.MinLat, Lon: bb.MaxLon})
	dc.SetRGBA(1, 1, 1, 0.25)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x0, y0, x1-x0, y1-y0)
	dc.Stroke()

	// boundary ring
	dc.SetRGBA(1, 1, 1, 0.9)
	dc.SetLineWidth(2)
	for i, p := range pg {
		x, y := px(p)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
	dc.Stroke()

	if len(markers) == 0 {
		markers = []color.Color{color.RGBA{R: 0xFF, G: 0x3B, B: 0x30, A: 0xFF}}
	}
	for i, p := range samples {
		x, y := px(p)
		dc.SetColor(markers[i%len(markers)])
		dc.DrawCircle(x, y, 3)
		dc.Fill()
	}
	return dc.Image()
}
