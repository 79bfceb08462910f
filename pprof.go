package main

import (
	"net/http"
	_ "net/http/pprof"

	"github.com/rs/zerolog"
)

func enablePPROF(addr string, log zerolog.Logger) {
	go func() {
		log.Info().Str("addr", addr).Msg("pprof enabled at /debug/pprof/")
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Error().Err(err).Msg("pprof server")
		}
	}()
}
