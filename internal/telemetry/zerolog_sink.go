package telemetry

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config mirrors the Level/Format/Output shape used throughout the
// retrieval pack's logging packages (grounded on
// therealutkarshpriyadarshi/log's internal/logging.Config).
type Config struct {
	Level  string // "debug", "info", "warn" (default "info")
	Format string // "json" (default) or "console"
	Output io.Writer
}

// ZerologSink implements Sink on top of github.com/rs/zerolog.
type ZerologSink struct {
	logger zerolog.Logger
}

// NewZerologSink builds a Sink from Config. Safe to embed directly into a
// jobsystem.Pool; pass nil to disable logging instead.
func NewZerologSink(cfg Config) *ZerologSink {
	level := zerolog.InfoLevel
	switch cfg.Level {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
			Level(level).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	return &ZerologSink{logger: logger}
}

func (s *ZerologSink) withFields(evt *zerolog.Event, workerID int, fields map[string]any) *zerolog.Event {
	evt = evt.Int("worker", workerID)
	for k, v := range fields {
		evt = evt.Interface(k, v)
	}
	return evt
}

func (s *ZerologSink) Debug(workerID int, msg string, fields map[string]any) {
	s.withFields(s.logger.Debug(), workerID, fields).Msg(msg)
}

func (s *ZerologSink) Warn(workerID int, msg string, fields map[string]any) {
	s.withFields(s.logger.Warn(), workerID, fields).Msg(msg)
}

func (s *ZerologSink) Invariant(workerID int, err error) {
	s.logger.Error().Int("worker", workerID).Err(err).Msg("invariant violation")
}
