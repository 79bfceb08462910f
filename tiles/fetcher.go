package tiles

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	_ "image/gif"
)

// Fetcher downloads and decodes tiles from an XYZ source, with a
// rate limiter, a content-addressed disk cache and an in-memory LRU of
// decoded tiles. Its Fetch method satisfies FetchFunc. Failed requests
// are not retried here; retry policy, if any, belongs to the caller.
type Fetcher struct {
	Client    *http.Client
	Limiter   *rate.Limiter
	CacheDir  string
	UserAgent string
	Source    Source

	mem *lru.Cache[Coordinate, image.Image]
}

const memCacheTiles = 512

func NewFetcher(src Source, cacheDir string, rps float64, burst int, timeout time.Duration) (*Fetcher, error) {
	if cacheDir == "" {
		cacheDir = ".tile-cache"
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, err
	}
	mem, err := lru.New[Coordinate, image.Image](memCacheTiles)
	if err != nil {
		return nil, err
	}
	return &Fetcher{
		Client:    &http.Client{Timeout: timeout},
		Limiter:   rate.NewLimiter(rate.Limit(rps), burst),
		CacheDir:  cacheDir,
		UserAgent: "aerialframe/1.0 (+satellite mosaic bot)",
		Source:    src,
		mem:       mem,
	}, nil
}

// Fetch returns the decoded image for one tile, from the LRU, the disk
// cache or the network, in that order.
func (f *Fetcher) Fetch(ctx context.Context, c Coordinate) (image.Image, error) {
	if img, ok := f.mem.Get(c); ok {
		return img, nil
	}

	u, err := f.Source.TileURL(c)
	if err != nil {
		return nil, err
	}

	cp := f.cachePath(u)
	data, err := os.ReadFile(cp)
	if err != nil {
		data, err = f.download(ctx, u)
		if err != nil {
			return nil, err
		}
		f.writeCache(cp, data)
	}

	img, err := decodeTile(data)
	if err != nil {
		return nil, fmt.Errorf("decode tile %s: %w", u, err)
	}
	f.mem.Add(c, img)
	return img, nil
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	if err := f.Limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.UserAgent)
	for k, v := range f.Source.Headers {
		req.Header.Set(k, v)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tile HTTP %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

func (f *Fetcher) cachePath(u string) string {
	sum := sha1.Sum([]byte(u))
	hexid := hex.EncodeToString(sum[:])
	return filepath.Join(f.CacheDir, hexid[:2], hexid[2:4], hexid+".tile")
}

// writeCache is best-effort: a failed cache write must not fail the run.
func (f *Fetcher) writeCache(cp string, data []byte) {
	if err := os.MkdirAll(filepath.Dir(cp), 0o755); err != nil {
		return
	}
	tmp := cp + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return
	}
	_ = os.Rename(tmp, cp)
}

func decodeTile(b []byte) (image.Image, error) {
	// fast path: sniff PNG/JPEG magic
	if len(b) >= 8 && bytes.Equal(b[:8], []byte{137, 80, 78, 71, 13, 10, 26, 10}) {
		return png.Decode(bytes.NewReader(b))
	}
	if len(b) >= 3 && b[0] == 0xFF && b[1] == 0xD8 && b[2] == 0xFF {
		return jpeg.Decode(bytes.NewReader(b))
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	return img, err
}
