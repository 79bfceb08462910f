package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	shp "github.com/jonas-p/go-shp"

	"aerialframe/geo"
)

// LoadBoundary reads the boundary polygon from an ESRI shapefile or a
// GeoJSON file. Both formats store (lon, lat) pairs; the flip to
// (lat, lon) order is sequestered here. The boundary must be a single
// POLYGON with a single outer ring, no holes, no multipolygons.
// Rings crossing the antimeridian are not supported.
func LoadBoundary(path string) (geo.Polygon, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".shp":
		return loadShapefile(path)
	case ".json", ".geojson":
		return loadGeoJSON(path)
	default:
		return nil, fmt.Errorf("boundary %s: want a .shp or .geojson file", path)
	}
}

func loadShapefile(path string) (geo.Polygon, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open shapefile: %w", err)
	}
	defer r.Close()

	var ring geo.Polygon
	count := 0
	for r.Next() {
		count++
		if count > 1 {
			return nil, errors.New("shapefile must contain exactly one shape")
		}
		_, s := r.Shape()
		poly, ok := s.(*shp.Polygon)
		if !ok {
			return nil, fmt.Errorf("shapefile shape is %T, want POLYGON", s)
		}
		if poly.NumParts != 1 {
			return nil, fmt.Errorf("polygon has %d rings, want a single outer ring", poly.NumParts)
		}
		ring = make(geo.Polygon, 0, len(poly.Points))
		for _, p := range poly.Points {
			ring = append(ring, geo.Point{Lat: p.Y, Lon: p.X})
		}
	}
	if count == 0 {
		return nil, errors.New("shapefile contains no shapes")
	}
	return validateRing(ring)
}

type gjGeometry struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"`
}

type gjFeature struct {
	Type     string     `json:"type"`
	Geometry gjGeometry `json:"geometry"`
}

type gjDoc struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"`
	Geometry    *gjGeometry   `json:"geometry"`
	Features    []gjFeature   `json:"features"`
}

func loadGeoJSON(path string) (geo.Polygon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geojson: %w", err)
	}
	defer f.Close()

	var doc gjDoc
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}

	var gm gjGeometry
	switch doc.Type {
	case "Polygon":
		gm = gjGeometry{Type: doc.Type, Coordinates: doc.Coordinates}
	case "Feature":
		if doc.Geometry == nil {
			return nil, errors.New("geojson feature has no geometry")
		}
		gm = *doc.Geometry
	case "FeatureCollection":
		if len(doc.Features) != 1 {
			return nil, fmt.Errorf("geojson has %d features, want exactly one", len(doc.Features))
		}
		gm = doc.Features[0].Geometry
	default:
		return nil, fmt.Errorf("geojson type %q: want Polygon, Feature or FeatureCollection", doc.Type)
	}

	if gm.Type != "Polygon" {
		return nil, fmt.Errorf("geojson geometry is %q, want Polygon", gm.Type)
	}
	if len(gm.Coordinates) != 1 {
		return nil, fmt.Errorf("polygon has %d rings, want a single outer ring", len(gm.Coordinates))
	}

	ring := make(geo.Polygon, 0, len(gm.Coordinates[0]))
	for _, pos := range gm.Coordinates[0] {
		if len(pos) < 2 {
			return nil, errors.New("geojson position with fewer than two coordinates")
		}
		ring = append(ring, geo.Point{Lat: pos[1], Lon: pos[0]})
	}
	return validateRing(ring)
}

func validateRing(ring geo.Polygon) (geo.Polygon, error) {
	if len(ring) < 3 {
		return nil, fmt.Errorf("boundary ring has %d points, want at least 3", len(ring))
	}
	for _, p := range ring {
		if !p.Valid() {
			return nil, fmt.Errorf("boundary point %s out of range", p)
		}
	}
	return ring, nil
}
