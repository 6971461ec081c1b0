package lib

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger sends zerolog diagnostics to Stderr, debug lowers the level from info to debug
func SetupLogger(debug, color bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: Stderr, NoColor: !color}).With().Timestamp().Logger()
}
