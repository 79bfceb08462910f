package main

import (
	"time"

	"github.com/schollz/progressbar/v3"
)

type Bars struct {
	Tiles *progressbar.ProgressBar
}

func NewBars(totalTiles int) *Bars {
	theme := progressbar.Theme{
		Saucer:        "=",
		SaucerHead:    ">",
		SaucerPadding: " ",
		BarStart:      "[",
		BarEnd:        "]",
	}
	tilesBar := progressbar.NewOptions(totalTiles,
		progressbar.OptionSetTheme(theme),
		progressbar.OptionSetDescription("[tiles] downloading"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(100*time.Millisecond),
	)
	return &Bars{Tiles: tilesBar}
}

func (b *Bars) IncTile() { _ = b.Tiles.Add(1) }

func (b *Bars) Done() {
	_ = b.Tiles.Finish()
}
