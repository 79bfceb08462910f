package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"aerialframe/geo"
	"aerialframe/tiles"
)

// Config holds the whole run configuration, loaded from a YAML file with
// AERIALFRAME_* environment overrides.
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Source    SourceConfig    `mapstructure:"source"`
	Geography GeographyConfig `mapstructure:"geography"`
	Output    OutputConfig    `mapstructure:"output"`
}

type GeneralConfig struct {
	Verbosity string `mapstructure:"verbosity"` // quiet, normal, verbose
	Logfile   string `mapstructure:"logfile"`
	CacheDir  string `mapstructure:"cache_dir"`
}

type SourceConfig struct {
	Preset      string            `mapstructure:"preset"`
	URL         string            `mapstructure:"url"` // custom {z}/{x}/{y} template, overrides preset
	Attribution string            `mapstructure:"attribution"`
	ManifestURL string            `mapstructure:"manifest_url"` // optional repository metadata document
	MinZoom     int               `mapstructure:"min_zoom"`
	MaxZoom     int               `mapstructure:"max_zoom"`
	Headers     map[string]string `mapstructure:"headers"`
	RateLimit   float64           `mapstructure:"rate_limit"` // tiles per second
	Burst       int               `mapstructure:"burst"`
	Timeout     time.Duration     `mapstructure:"timeout"`
	Workers     int               `mapstructure:"workers"`
}

type GeographyConfig struct {
	Shapefile         string `mapstructure:"shapefile"` // .shp or .geojson boundary
	Point             string `mapstructure:"point"`     // "lat,lon" pins the center, skipping the sampler
	MaxMetersPerPixel string `mapstructure:"max_meters_per_pixel"` // "N" or "N-M" (drawn per run)
}

type OutputConfig struct {
	Path           string `mapstructure:"path"` // extension picks the encoder (.png/.jpg/.webp)
	Width          int    `mapstructure:"width"`
	Height         int    `mapstructure:"height"`
	Supersample    int    `mapstructure:"supersample"` // assemble at N× then downscale
	Overlay        string `mapstructure:"overlay"`     // optional boundary/sample debug image
	OverlaySamples int    `mapstructure:"overlay_samples"`
	MarkerColors   string `mapstructure:"marker_colors"` // hex list for overlay sample dots
}

// LoadConfig reads the configuration. An empty path falls back to
// ./config.yaml; a missing file just leaves the defaults in place.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("general.verbosity", "normal")
	v.SetDefault("general.cache_dir", ".tile-cache")
	v.SetDefault("source.preset", "esri-satellite")
	v.SetDefault("source.rate_limit", 10.0)
	v.SetDefault("source.burst", 4)
	v.SetDefault("source.timeout", "20s")
	v.SetDefault("source.workers", 6)
	v.SetDefault("source.min_zoom", 0)
	v.SetDefault("source.max_zoom", 20)
	v.SetDefault("geography.max_meters_per_pixel", "20")
	v.SetDefault("output.path", "frame.png")
	v.SetDefault("output.width", 1280)
	v.SetDefault("output.height", 720)
	v.SetDefault("output.supersample", 1)
	v.SetDefault("output.overlay_samples", 200)
	v.SetDefault("output.marker_colors", "#ff3b30,#34c759,#007aff,#ffcc00,#af52de")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		_ = v.ReadInConfig() // OK if missing
	}

	v.SetEnvPrefix("AERIALFRAME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Output.Width <= 0 || c.Output.Height <= 0 || c.Output.Width%2 != 0 || c.Output.Height%2 != 0 {
		return fmt.Errorf("output size %dx%d: dimensions must be positive and even", c.Output.Width, c.Output.Height)
	}
	if c.Output.Supersample < 1 || c.Output.Supersample > 4 {
		return fmt.Errorf("output.supersample %d: must be 1..4", c.Output.Supersample)
	}
	if c.Source.URL == "" {
		if _, ok := tiles.Presets[c.Source.Preset]; !ok {
			return fmt.Errorf("unknown source preset %q", c.Source.Preset)
		}
	}
	if _, _, err := parseMetersRange(c.Geography.MaxMetersPerPixel); err != nil {
		return err
	}
	if c.Geography.Point != "" {
		if _, err := parsePoint(c.Geography.Point); err != nil {
			return err
		}
	}
	return nil
}

// ResolveSource builds the tile source: a named preset, or a custom
// template URL with the configured zoom range.
func (c *SourceConfig) ResolveSource() tiles.Source {
	if c.URL == "" {
		src := tiles.Presets[c.Preset]
		if len(c.Headers) > 0 {
			src.Headers = c.Headers
		}
		return src
	}
	return tiles.Source{
		Name:        "custom",
		URLTmpl:     c.URL,
		Attribution: c.Attribution,
		MinZoom:     c.MinZoom,
		MaxZoom:     c.MaxZoom,
		Headers:     c.Headers,
	}
}

// parseMetersRange parses "N" or "N-M" into inclusive integer bounds.
func parseMetersRange(s string) (lo, hi int, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, fmt.Errorf("geography.max_meters_per_pixel is empty")
	}
	a, b, ranged := strings.Cut(s, "-")
	lo, err = strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, 0, fmt.Errorf("max_meters_per_pixel %q: %w", s, err)
	}
	hi = lo
	if ranged {
		hi, err = strconv.Atoi(strings.TrimSpace(b))
		if err != nil {
			return 0, 0, fmt.Errorf("max_meters_per_pixel %q: %w", s, err)
		}
	}
	if lo <= 0 || hi < lo {
		return 0, 0, fmt.Errorf("max_meters_per_pixel %q: want positive N or N-M with M >= N", s)
	}
	return lo, hi, nil
}

// parsePoint parses "lat,lon" in degrees.
func parsePoint(s string) (geo.Point, error) {
	a, b, ok := strings.Cut(s, ",")
	if !ok {
		return geo.Point{}, fmt.Errorf("point %q: want \"lat,lon\"", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	p := geo.Point{Lat: lat, Lon: lon}
	if !p.Valid() {
		return geo.Point{}, fmt.Errorf("point %q out of range", s)
	}
	return p, nil
}
