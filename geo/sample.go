package geo

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// ErrEmptyRegion means the polygon has no samplable interior, or the
// rejection-sampling budget ran out before a draw landed inside it.
var ErrEmptyRegion = errors.New("polygon has no samplable interior")

// sampleBudget caps rejection draws per Sample call. Spread-out island
// groups fill very little of their bounding box, so the cap is generous.
const sampleBudget = 250

// Sampler draws random points inside a polygon, uniformly per unit of
// surface area. The random source is injected so runs can be reproduced
// with a fixed seed.
type Sampler struct {
	rng *rand.Rand
}

func NewSampler(rng *rand.Rand) *Sampler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Sampler{rng: rng}
}

// Sample returns a point inside pg. Rejection sampling against the
// bounding box: pairs are drawn with RandomInRect and tested with
// Contains until one hits or the budget is exhausted.
func (s *Sampler) Sample(pg Polygon) (Point, error) {
	if len(pg) < 3 || pg.planarArea() == 0 {
		return Point{}, ErrEmptyRegion
	}
	bb := pg.Bounds()
	if bb.MinLat >= bb.MaxLat || bb.MinLon >= bb.MaxLon {
		return Point{}, ErrEmptyRegion
	}
	for i := 0; i < sampleBudget; i++ {
		p := s.RandomInRect(bb)
		if pg.Contains(p) {
			return p, nil
		}
	}
	return Point{}, fmt.Errorf("%w: no hit in %d draws", ErrEmptyRegion, sampleBudget)
}

// RandomInRect draws an area-uniform point in r. Longitude is uniform,
// but latitude must not be: meridians converge toward the poles, so a
// uniform latitude draw over-represents high latitudes. Latitude is
// drawn by inverse transform on the cos(lat) surface density instead.
func (s *Sampler) RandomInRect(r Rect) Point {
	sinS := math.Sin(r.MinLat * math.Pi / 180)
	sinN := math.Sin(r.MaxLat * math.Pi / 180)
	lat := math.Asin(sinS+s.rng.Float64()*(sinN-sinS)) * 180 / math.Pi
	lon := r.MinLon + s.rng.Float64()*(r.MaxLon-r.MinLon)
	return Point{Lat: lat, Lon: lon}
}
