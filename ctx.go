package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// withRunContext bounds the whole run with a hard timeout and cancels
// on SIGINT/SIGTERM.
func withRunContext(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, d)
	return ctx, func() {
		cancel()
		stop()
	}
}
