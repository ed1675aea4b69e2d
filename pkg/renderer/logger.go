package renderer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/df07/go-csg-pathtracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// nopHandler is a slog.Handler that discards all records
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// slogLogger adapts a structured logger to core.Logger
type slogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger returns a core.Logger that emits each message as an info
// record on l. A nil l discards everything.
func NewSlogLogger(l *slog.Logger) core.Logger {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	return &slogLogger{logger: l}
}

func (sl *slogLogger) Printf(format string, args ...interface{}) {
	if !sl.logger.Enabled(context.Background(), slog.LevelInfo) {
		return
	}
	sl.logger.Info(strings.TrimSpace(fmt.Sprintf(format, args...)))
}
