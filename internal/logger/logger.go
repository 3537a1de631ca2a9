package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type implLogger struct {
	logger zerolog.Logger
	closer io.Closer
}

// Config selects the level, format (console|json) and output (stdout|stderr|file path).
type Config struct {
	Level  string
	Format string
	Output string
}

// New creates a Logger. A file output that cannot be opened falls back to stdout.
func New(cfg Config) Logger {
	out, closer, err := openOutput(cfg.Output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v, writing to stdout\n", err)
		out = os.Stdout
	}
	return newWithWriter(cfg, out, closer)
}

func newWithWriter(cfg Config, out io.Writer, closer io.Closer) *implLogger {
	if strings.ToLower(cfg.Format) != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "2006-01-02 15:04:05", NoColor: closer != nil}
	}
	zl := zerolog.New(out).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
	return &implLogger{logger: zl, closer: closer}
}

// Close releases a file output. It is a no-op for stdout and stderr.
func Close(l Logger) error {
	if il, ok := l.(*implLogger); ok && il.closer != nil {
		return il.closer.Close()
	}
	return nil
}

func openOutput(output string) (io.Writer, io.Closer, error) {
	switch strings.ToLower(output) {
	case "", "stdout":
		return os.Stdout, nil, nil
	case "stderr":
		return os.Stderr, nil, nil
	}
	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", output, err)
	}
	return f, f, nil
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *implLogger) write(ctx context.Context, ev *zerolog.Event, msg string, args []interface{}) {
	if id := RequestID(ctx); id != "" {
		ev = ev.Str("request_id", id)
	}
	ev.Msgf(msg, args...)
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.write(ctx, l.logger.Debug(), msg, args)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.write(ctx, l.logger.Info(), msg, args)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.write(ctx, l.logger.Warn(), msg, args)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.write(ctx, l.logger.Error(), msg, args)
}

// Nop returns a Logger that discards everything. Used by tests and the CLI's quiet paths.
func Nop() Logger {
	return &implLogger{logger: zerolog.Nop()}
}
