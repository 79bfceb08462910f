package geo

import (
	"fmt"
	"math"
)

// Point is a latitude/longitude pair in degrees, in that order (ISO 6709).
type Point struct {
	Lat float64
	Lon float64
}

func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

func (p Point) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", p.Lat, p.Lon)
}

// DMS renders the point with minutes and seconds, e.g.
// `44°35'27.6"N 100°21'53.1"W`.
func (p Point) DMS() string {
	return dmsCoord(p.Lat, "N", "S") + " " + dmsCoord(p.Lon, "E", "W")
}

func dmsCoord(v float64, pos, neg string) string {
	dir := pos
	if v < 0 {
		dir = neg
	}
	v = math.Abs(v)
	deg := math.Floor(v)
	v = (v - deg) * 60
	min := math.Floor(v)
	sec := math.Round((v-min)*600) / 10
	// rounding can push seconds to 60.0, carry upward
	if sec >= 60 {
		sec = 0
		min++
	}
	if min >= 60 {
		min = 0
		deg++
	}
	return fmt.Sprintf("%.0f°%.0f'%.1f\"%s", deg, min, sec, dir)
}

// Rect is an axis-aligned box in degrees.
type Rect struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}
