package tiles

import (
	"fmt"
	"net/url"
	"strings"
)

// Source describes one XYZ tile source: URL template, zoom range and
// request headers. Levels derives its resolution table; custom sources
// can override it with a fetched Manifest instead.
type Source struct {
	Name        string
	URLTmpl     string // .../{z}/{x}/{y}.png
	Attribution string
	MinZoom     int
	MaxZoom     int
	Headers     map[string]string // optional
}

var Presets = map[string]Source{
	"esri-satellite": {
		Name:        "ESRI World Imagery",
		URLTmpl:     "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}",
		Attribution: "© Esri, Maxar, Earthstar Geographics",
		MinZoom:     0, MaxZoom: 20,
	},
	"maptiler-satellite": {
		Name:        "MapTiler Satellite",
		URLTmpl:     "https://api.maptiler.com/tiles/satellite/{z}/{x}/{y}.jpg?key=${MAPTILER_KEY}",
		Attribution: "© MapTiler, © OpenStreetMap contributors, © NASA",
		MinZoom:     0, MaxZoom: 20,
	},
	"opentopomap": {
		Name:        "OpenTopoMap",
		URLTmpl:     "https://tile.opentopomap.org/{z}/{x}/{y}.png",
		Attribution: "© OpenTopoMap (CC-BY-SA), © OpenStreetMap contributors",
		MinZoom:     0, MaxZoom: 17,
	},
	"stamen-terrain-bg": {
		Name:        "Stadia Stamen Terrain BG",
		URLTmpl:     "https://tiles.stadiamaps.com/tiles/stamen_terrain_background/{z}/{x}/{y}.png?api_key=${STADIA_KEY}",
		Attribution: "© Stadia Maps, © Stamen Design, © OpenStreetMap contributors",
		MinZoom:     0, MaxZoom: 18,
	},
}

// TileURL fills the source's URL template for one tile.
func (s Source) TileURL(c Coordinate) (string, error) {
	if !c.Valid() {
		return "", fmt.Errorf("tile %s out of range", c)
	}
	u := strings.ReplaceAll(s.URLTmpl, "{z}", fmt.Sprintf("%d", c.Zoom))
	u = strings.ReplaceAll(u, "{x}", fmt.Sprintf("%d", c.X))
	u = strings.ReplaceAll(u, "{y}", fmt.Sprintf("%d", c.Y))
	if _, err := url.Parse(u); err != nil {
		return "", err
	}
	return u, nil
}

// Levels returns the source's zoom levels with their equatorial ground
// resolutions, sorted by zoom.
func (s Source) Levels() []Level {
	out := make([]Level, 0, s.MaxZoom-s.MinZoom+1)
	for z := s.MinZoom; z <= s.MaxZoom; z++ {
		out = append(out, Level{Zoom: z, MetersPerPixel: GroundResolution(z)})
	}
	return out
}

func ClampZoom(z int, s Source) int {
	if z < s.MinZoom {
		return s.MinZoom
	}
	if z > s.MaxZoom {
		return s.MaxZoom
	}
	return z
}

// ClampZoomExact clamps z into the source's range while tracking the
// resolution promise: clamping down to MaxZoom coarsens the frame past
// the requested ceiling, so exact flips to false. Clamping up only
// sharpens the frame and keeps it.
func ClampZoomExact(z int, exact bool, s Source) (int, bool) {
	c := ClampZoom(z, s)
	if c < z {
		exact = false
	}
	return c, exact
}
