package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func writeBoundary(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const squareRing = `[[[-100.5, 44.0], [-100.0, 44.0], [-100.0, 44.5], [-100.5, 44.5], [-100.5, 44.0]]]`

func TestLoadBoundaryGeoJSONPolygon(t *testing.T) {
	is := is.New(t)

	path := writeBoundary(t, "area.geojson",
		`{"type": "Polygon", "coordinates": `+squareRing+`}`)
	ring, err := LoadBoundary(path)
	is.NoErr(err)
	is.Equal(len(ring), 5)
	// (lon, lat) on disk becomes (lat, lon) in memory
	is.Equal(ring[0].Lat, 44.0)
	is.Equal(ring[0].Lon, -100.5)
}

func TestLoadBoundaryGeoJSONFeature(t *testing.T) {
	is := is.New(t)

	path := writeBoundary(t, "area.json",
		`{"type": "Feature", "properties": {}, "geometry": {"type": "Polygon", "coordinates": `+squareRing+`}}`)
	ring, err := LoadBoundary(path)
	is.NoErr(err)
	is.Equal(len(ring), 5)
}

func TestLoadBoundaryGeoJSONFeatureCollection(t *testing.T) {
	is := is.New(t)

	path := writeBoundary(t, "area.geojson",
		`{"type": "FeatureCollection", "features": [{"type": "Feature", "geometry": {"type": "Polygon", "coordinates": `+squareRing+`}}]}`)
	ring, err := LoadBoundary(path)
	is.NoErr(err)
	is.Equal(len(ring), 5)
}

func TestLoadBoundaryRejections(t *testing.T) {
	cases := []struct {
		name string
		file string
		body string
	}{
		{"unsupported extension", "area.kml", "<kml/>"},
		{"not json", "area.geojson", "not json"},
		{"line string", "area.geojson", `{"type": "LineString", "coordinates": [[0,0],[1,1]]}`},
		{"geometry not polygon", "area.geojson",
			`{"type": "Feature", "geometry": {"type": "Point", "coordinates": [[[0,0]]]}}`},
		{"feature without geometry", "area.geojson", `{"type": "Feature"}`},
		{"two features", "area.geojson",
			`{"type": "FeatureCollection", "features": [` +
				`{"type": "Feature", "geometry": {"type": "Polygon", "coordinates": ` + squareRing + `}},` +
				`{"type": "Feature", "geometry": {"type": "Polygon", "coordinates": ` + squareRing + `}}]}`},
		{"polygon with hole", "area.geojson",
			`{"type": "Polygon", "coordinates": [` + squareRing[1:len(squareRing)-1] + `, ` + squareRing[1:len(squareRing)-1] + `]}`},
		{"short ring", "area.geojson", `{"type": "Polygon", "coordinates": [[[0,0],[1,1]]]}`},
		{"out of range point", "area.geojson", `{"type": "Polygon", "coordinates": [[[0,0],[200,1],[1,1],[0,0]]]}`},
		{"one-float position", "area.geojson", `{"type": "Polygon", "coordinates": [[[0],[1,1],[2,2]]]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeBoundary(t, tc.file, tc.body)
			if _, err := LoadBoundary(path); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}
}

func TestLoadBoundaryMissingFile(t *testing.T) {
	if _, err := LoadBoundary(filepath.Join(t.TempDir(), "absent.geojson")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
