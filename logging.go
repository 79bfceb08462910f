package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// newLogger builds the run logger: pretty console output on stderr at
// the configured verbosity, optionally teed into a logfile.
func newLogger(cfg GeneralConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch cfg.Verbosity {
	case "quiet":
		level = zerolog.ErrorLevel
	case "verbose":
		level = zerolog.DebugLevel
	}

	var w io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	if cfg.Logfile != "" {
		f, err := os.OpenFile(cfg.Logfile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			w = zerolog.MultiLevelWriter(w, f)
		}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
