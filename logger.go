package main

import (
	"io"
	"os"

	"github.com/9seconds/zonographer/zonelib"
	"github.com/paulmach/orb"
	"github.com/rs/zerolog"
)

type logger struct {
	resolveLog zerolog.Logger
	loadLog    zerolog.Logger
}

func (l *logger) ResolveError(point orb.Point, err error) {
	l.resolveLog.Error().
		Float64("lon", point.Lon()).
		Float64("lat", point.Lat()).
		Err(err).
		Msg("")
}

func (l *logger) LoadInfo(source, msg string) {
	l.loadLog.Info().Str("source", source).Msg(msg)
}

func (l *logger) LoadError(source string, err error) {
	l.loadLog.Error().Str("source", source).Err(err).Msg("Cannot load a dataset")
}

func setupLogging(debug bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func newEventLogger(writer io.Writer, eventName string) zerolog.Logger {
	return zerolog.New(writer).With().Timestamp().Stack().Str("event_name", eventName).Logger()
}

func newLogger() zonelib.Logger {
	return &logger{
		resolveLog: newEventLogger(os.Stderr, "resolve"),
		loadLog:    newEventLogger(os.Stderr, "load"),
	}
}
