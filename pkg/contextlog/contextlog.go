// Package contextlog carries the request-scoped slog logger through context.Context.
package contextlog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

type loggerKey struct{}

const (
	DefaultLevel = slog.LevelInfo

	FormatText = "text"
	FormatJSON = "json"
)

// Options selects the handler built by Setup.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// Setup builds a logger from opts, makes it the default and attaches it to ctx.
// An unknown level falls back to DefaultLevel; an unknown format to text.
func Setup(ctx context.Context, opts Options, attrs ...slog.Attr) context.Context {
	level := DefaultLevel
	if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
		slog.Default().WarnContext(ctx, "Invalid level, falling back to default",
			slog.String("rawLevel", opts.Level),
			slog.String("default", DefaultLevel.String()),
			slog.Any("error", err),
		)
		level = DefaultLevel
	}

	w := opts.Output
	if w == nil {
		w = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if strings.EqualFold(opts.Format, FormatJSON) {
		h = slog.NewJSONHandler(w, handlerOpts)
	} else {
		h = slog.NewTextHandler(w, handlerOpts)
	}

	l := slog.New(h)
	if len(attrs) > 0 {
		l = slog.New(h.WithAttrs(attrs))
	}
	slog.SetDefault(l)

	return With(ctx, l)
}

// With returns a new context with the given logger attached.
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// WithAttrs returns ctx with its logger extended by attrs.
func WithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	args := make([]any, len(attrs))
	for i := range attrs {
		args[i] = attrs[i]
	}
	return With(ctx, From(ctx).With(args...))
}

// From retrieves the logger from the context.
// If no logger is found, it returns the default logger.
func From(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// DiscardLogger returns a logger that discards all output.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
