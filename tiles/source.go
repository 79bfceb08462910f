package tiles

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Manifest is the metadata document a custom tile repository publishes:
// one entry per zoom level it serves. Levels must be sorted by zoom with
// strictly decreasing resolution.
type Manifest struct {
	TileSize int     `json:"tile_size"`
	Levels   []Level `json:"levels"`
}

// FetchManifest downloads and validates a repository manifest. The
// returned levels feed SelectZoom directly.
func FetchManifest(ctx context.Context, client *http.Client, url string) ([]Level, error) {
	url = strings.TrimSpace(url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("manifest HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return parseManifest(resp.Body)
}

func parseManifest(r io.Reader) ([]Level, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if m.TileSize != 0 && m.TileSize != TileSize {
		return nil, fmt.Errorf("manifest tile size %d: only %d supported", m.TileSize, TileSize)
	}
	if len(m.Levels) == 0 {
		return nil, fmt.Errorf("manifest has no zoom levels")
	}
	for i, l := range m.Levels {
		if l.Zoom < 0 {
			return nil, fmt.Errorf("manifest level %d: negative zoom %d", i, l.Zoom)
		}
		if l.MetersPerPixel <= 0 {
			return nil, fmt.Errorf("manifest level %d: non-positive resolution", i)
		}
		if i == 0 {
			continue
		}
		if l.Zoom <= m.Levels[i-1].Zoom {
			return nil, fmt.Errorf("manifest levels not sorted by zoom at index %d", i)
		}
		if l.MetersPerPixel >= m.Levels[i-1].MetersPerPixel {
			return nil, fmt.Errorf("manifest resolution not decreasing at index %d", i)
		}
	}
	return m.Levels, nil
}
