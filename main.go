package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"math"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"aerialframe/geo"
	"aerialframe/tiles"
)

var (
	cfgPath   = flag.String("config", "", "path to a config file (default: ./config.yaml)")
	outPath   = flag.String("out", "", "override output.path")
	seed      = flag.Int64("seed", 0, "random seed, 0 = time-based")
	pprofAddr = flag.String("pprof", "", "enable pprof on this address (e.g. 127.0.0.1:6060), empty = off")
	timeout   = flag.Duration("timeout", 10*time.Minute, "hard timeout for the whole run")
)

func main() {
	flag.Parse()

	cfg, err := LoadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *outPath != "" {
		cfg.Output.Path = *outPath
	}

	logger := newLogger(cfg.General)
	if *pprofAddr != "" {
		enablePPROF(*pprofAddr, logger)
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(s))
	logger.Debug().Int64("seed", s).Msg("random source seeded")

	ctx, cancel := withRunContext(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, cfg, rng, logger); err != nil {
		logger.Fatal().Err(err).Msg("run failed")
	}
	logger.Info().Str("out", cfg.Output.Path).Msg("done")
}

// FrameMetadata is the sidecar document handed to the annotation and
// posting collaborators.
type FrameMetadata struct {
	Point struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
		DMS string  `json:"dms"`
	} `json:"point"`
	Zoom            int     `json:"zoom"`
	MetersPerPixel  float64 `json:"meters_per_pixel"`
	ExactResolution bool    `json:"exact_resolution"`
	Bounds          struct {
		TopLeft     [2]float64 `json:"top_left"`     // lat, lon
		BottomRight [2]float64 `json:"bottom_right"` // lat, lon
	} `json:"bounds"`
	AreaKm struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	} `json:"area_km"`
	Attribution string `json:"attribution,omitempty"`
}

func run(ctx context.Context, cfg *Config, rng *rand.Rand, logger zerolog.Logger) error {
	src := cfg.Source.ResolveSource()

	// center point: configured, or sampled from the boundary
	var boundary geo.Polygon
	var center geo.Point
	var err error
	switch {
	case cfg.Geography.Point != "":
		center, err = parsePoint(cfg.Geography.Point)
		if err != nil {
			return err
		}
		logger.Info().Stringer("point", center).Msg("using configured point")
	case cfg.Geography.Shapefile != "":
		logger.Info().Str("path", cfg.Geography.Shapefile).Msg("loading boundary")
		boundary, err = LoadBoundary(cfg.Geography.Shapefile)
		if err != nil {
			return err
		}
		center, err = geo.NewSampler(rng).Sample(boundary)
		if err != nil {
			return err
		}
		logger.Info().Stringer("point", center).Str("dms", center.DMS()).Msg("sampled point")
	default:
		return errors.New("neither geography.shapefile nor geography.point configured")
	}

	// resolution ceiling, drawn from the configured range
	lo, hi, err := parseMetersRange(cfg.Geography.MaxMetersPerPixel)
	if err != nil {
		return err
	}
	maxMpp := float64(lo)
	if hi > lo {
		maxMpp = float64(lo + rng.Intn(hi-lo+1))
		logger.Debug().Float64("max_mpp", maxMpp).Msg("drew resolution ceiling from range")
	}

	levels := src.Levels()
	if cfg.Source.ManifestURL != "" {
		logger.Info().Str("url", cfg.Source.ManifestURL).Msg("fetching source manifest")
		levels, err = tiles.FetchManifest(ctx, &http.Client{Timeout: cfg.Source.Timeout}, cfg.Source.ManifestURL)
		if err != nil {
			return err
		}
	}

	ss := cfg.Output.Supersample
	zoom, exact := tiles.SelectZoom(levels, maxMpp/float64(ss))
	zoom, exact = tiles.ClampZoomExact(zoom, exact, src)
	if !exact {
		logger.Warn().
			Float64("max_mpp", maxMpp).
			Int("zoom", zoom).
			Msg("requested resolution not achievable, using the finest level")
	}

	grid, err := tiles.ComputeGrid(center, zoom, cfg.Output.Width*ss, cfg.Output.Height*ss)
	if err != nil {
		return err
	}
	logger.Info().
		Int("zoom", zoom).
		Int("cols", grid.Cols()).
		Int("rows", grid.Rows()).
		Msg("computed tile grid")

	fetcher, err := tiles.NewFetcher(src, cfg.General.CacheDir, cfg.Source.RateLimit, cfg.Source.Burst, cfg.Source.Timeout)
	if err != nil {
		return err
	}

	bars := NewBars(grid.Cols() * grid.Rows())
	frame, err := tiles.Assemble(ctx, grid, fetcher.Fetch, cfg.Source.Workers, bars.IncTile)
	bars.Done()
	if err != nil {
		var tfe *tiles.TileFetchError
		if errors.As(err, &tfe) {
			logger.Error().Stringer("tile", tfe.Tile).Msg("tile fetch failed, aborting assembly")
		}
		return err
	}

	var out image.Image = frame
	if ss > 1 {
		out = downscale(frame, cfg.Output.Width, cfg.Output.Height)
	}
	if err := WriteRaster(cfg.Output.Path, out); err != nil {
		return err
	}

	meta := buildMetadata(center, zoom, levelResolution(levels, zoom), exact, grid, src)
	if err := WriteMetadata(cfg.Output.Path+".json", meta); err != nil {
		return err
	}
	logger.Info().
		Str("dms", meta.Point.DMS).
		Float64("area_km_w", meta.AreaKm.Width).
		Float64("area_km_h", meta.AreaKm.Height).
		Msg("frame assembled")

	if cfg.Output.Overlay != "" && boundary != nil {
		if err := writeOverlay(cfg, boundary, center, rng); err != nil {
			return err
		}
	}
	return nil
}

// levelResolution looks up the declared resolution of the chosen zoom,
// falling back to tile math for zooms the level list does not carry.
func levelResolution(levels []tiles.Level, zoom int) float64 {
	for _, l := range levels {
		if l.Zoom == zoom {
			return l.MetersPerPixel
		}
	}
	return tiles.GroundResolution(zoom)
}

func buildMetadata(center geo.Point, zoom int, mpp float64, exact bool, grid tiles.Grid, src tiles.Source) FrameMetadata {
	var m FrameMetadata
	m.Point.Lat = center.Lat
	m.Point.Lon = center.Lon
	m.Point.DMS = center.DMS()
	m.Zoom = zoom
	m.MetersPerPixel = mpp
	m.ExactResolution = exact
	m.Bounds.TopLeft = [2]float64{grid.TopLeft.Lat, grid.TopLeft.Lon}
	m.Bounds.BottomRight = [2]float64{grid.BottomRight.Lat, grid.BottomRight.Lon}

	// declared resolutions are equatorial; the frame's true ground
	// extent shrinks with cos(lat)
	local := mpp * math.Cos(center.Lat*math.Pi/180)
	m.AreaKm.Width = local * float64(grid.OutW) / 1000
	m.AreaKm.Height = local * float64(grid.OutH) / 1000
	m.Attribution = src.Attribution
	return m
}

// writeOverlay renders the boundary with the chosen center plus a crowd
// of extra samples, to eyeball the sampler's spatial distribution.
func writeOverlay(cfg *Config, boundary geo.Polygon, center geo.Point, rng *rand.Rand) error {
	markers, err := ParseHexColors(cfg.Output.MarkerColors)
	if err != nil {
		return fmt.Errorf("marker_colors: %w", err)
	}
	samples := []geo.Point{center}
	sampler := geo.NewSampler(rng)
	for i := 0; i < cfg.Output.OverlaySamples; i++ {
		p, err := sampler.Sample(boundary)
		if err != nil {
			break
		}
		samples = append(samples, p)
	}
	img := RenderOverlay(boundary, samples, 1024, markers)
	return WriteRaster(cfg.Output.Overlay, img)
}
