package tiles

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"sync"
)

// FetchFunc returns the decoded image for one tile. Implementations own
// transport, caching and rate limiting; the assembler never performs
// I/O itself.
type FetchFunc func(ctx context.Context, c Coordinate) (image.Image, error)

// TileFetchError reports a tile that failed to fetch or decode. A single
// failure aborts the whole assembly: a silently blacked-out gap would
// corrupt the annotated output downstream.
type TileFetchError struct {
	Tile Coordinate
	Err  error
}

func (e *TileFetchError) Error() string {
	return fmt.Sprintf("fetch tile %s: %v", e.Tile, e.Err)
}

func (e *TileFetchError) Unwrap() error { return e.Err }

// Assemble fetches every tile in the grid, stitches them onto one canvas
// in (row, col) order and crops exactly OutW×OutH pixels at the grid's
// crop offset. Fetches fan out over at most workers goroutines; all of
// them must land before stitching begins. onTile, if set, is called once
// per completed fetch (progress reporting).
//
// Edge-of-coverage tiles smaller than the nominal tile size are
// composited at native size, anchored at their cell origin, so the
// canvas geometry stays consistent.
func Assemble(ctx context.Context, g Grid, fetch FetchFunc, workers int, onTile func()) (*image.RGBA, error) {
	coords := g.Tiles()
	if workers <= 0 {
		workers = 6
	}
	if workers > len(coords) {
		workers = len(coords)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	imgs := make([]image.Image, len(coords))
	jobs := make(chan int, len(coords))
	errCh := make(chan error, 1)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				img, err := fetch(ctx, coords[idx])
				if err != nil {
					select {
					case errCh <- &TileFetchError{Tile: coords[idx], Err: err}:
					default:
					}
					cancel()
					return
				}
				imgs[idx] = img
				if onTile != nil {
					onTile()
				}
			}
		}()
	}
	for idx := range coords {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	select {
	case err := <-errCh:
		return nil, err
	default:
	}
	if err := context.Cause(ctx); err != nil {
		return nil, err
	}

	canvas := image.NewRGBA(image.Rect(0, 0, g.Cols()*TileSize, g.Rows()*TileSize))
	for i, c := range coords {
		b := imgs[i].Bounds()
		offX := (c.X - g.MinX) * TileSize
		offY := (c.Y - g.MinY) * TileSize
		draw.Draw(canvas, image.Rect(offX, offY, offX+b.Dx(), offY+b.Dy()), imgs[i], b.Min, draw.Src)
	}

	crop := image.Rect(g.CropX, g.CropY, g.CropX+g.OutW, g.CropY+g.OutH)
	out := image.NewRGBA(image.Rect(0, 0, g.OutW, g.OutH))
	draw.Draw(out, out.Bounds(), canvas.SubImage(crop), crop.Min, draw.Src)
	return out, nil
}
