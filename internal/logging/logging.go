package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// Config controls the root logger.
type Config struct {
	// Level is a logrus level name: "debug", "info", "warn", "error".
	Level string

	// Format is "text" or "json". Default: "text".
	Format string

	// File redirects output to a file when set. The TUI needs this because
	// the terminal belongs to the renderer while a game is running.
	File string
}

type ctxKey struct{}

var std = logrus.New()

// Setup configures the root logger and returns it along with a closer for
// any opened log file. The closer is a no-op when logging to stderr.
func Setup(cfg Config) (*logrus.Logger, io.Closer, error) {
	level := logrus.InfoLevel
	if cfg.Level != "" {
		lvl, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("parse log level: %w", err)
		}
		level = lvl
	}
	std.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		std.SetFormatter(&logrus.JSONFormatter{})
	default:
		std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	var closer io.Closer = nopCloser{}
	std.SetOutput(os.Stderr)
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		std.SetOutput(f)
		closer = f
	}

	return std, closer, nil
}

// L returns the root logger.
func L() *logrus.Logger {
	return std
}

// NewContext stores a logger in ctx.
func NewContext(ctx context.Context, l logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// WithContext returns the logger stored in ctx, or the root logger. The chi
// request ID is attached when present.
func WithContext(ctx context.Context) logrus.FieldLogger {
	var l logrus.FieldLogger = std
	if ctx == nil {
		return l
	}
	if v, ok := ctx.Value(ctxKey{}).(logrus.FieldLogger); ok && v != nil {
		l = v
	}
	if id := middleware.GetReqID(ctx); id != "" {
		l = l.WithField("request_id", id)
	}
	return l
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
