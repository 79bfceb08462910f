package geo

import "math"

// Polygon is a single closed outer ring without holes. The ring may be
// stored open or explicitly closed; Contains treats it as closed either
// way. Rings crossing the antimeridian are not supported.
type Polygon []Point

// Bounds returns the ring's bounding box (plain min/max reduction).
func (pg Polygon) Bounds() Rect {
	r := Rect{
		MinLat: math.MaxFloat64, MinLon: math.MaxFloat64,
		MaxLat: -math.MaxFloat64, MaxLon: -math.MaxFloat64,
	}
	for _, p := range pg {
		if p.Lat < r.MinLat {
			r.MinLat = p.Lat
		}
		if p.Lat > r.MaxLat {
			r.MaxLat = p.Lat
		}
		if p.Lon < r.MinLon {
			r.MinLon = p.Lon
		}
		if p.Lon > r.MaxLon {
			r.MaxLon = p.Lon
		}
	}
	return r
}

// Contains reports whether p lies inside the ring, by even-odd ray
// casting. Points exactly on an edge may land on either side.
func (pg Polygon) Contains(p Point) bool {
	n := len(pg)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		a, b := pg[i], pg[j]
		if (a.Lat > p.Lat) != (b.Lat > p.Lat) {
			cross := (b.Lon-a.Lon)*(p.Lat-a.Lat)/(b.Lat-a.Lat) + a.Lon
			if p.Lon < cross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// planarArea is the shoelace area in squared degrees. Only used to reject
// degenerate rings before sampling; no geodesic accuracy needed.
func (pg Polygon) planarArea() float64 {
	n := len(pg)
	if n < 3 {
		return 0
	}
	sum := 0.0
	j := n - 1
	for i := 0; i < n; i++ {
		sum += (pg[j].Lon + pg[i].Lon) * (pg[j].Lat - pg[i].Lat)
		j = i
	}
	return math.Abs(sum / 2)
}
