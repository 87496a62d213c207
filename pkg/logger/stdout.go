package logger

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"
)

// StdoutHandler implements slog.Handler
type StdoutHandler struct {
	level slog.Level
}

func NewStdoutHandler(level slog.Level) slog.Handler {
	return &StdoutHandler{level: level}
}

func (h *StdoutHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level
}

func (h *StdoutHandler) Handle(_ context.Context, r slog.Record) error {
	// Build the base event
	event := map[string]any{
		"level":   r.Level.String(),
		"message": r.Message,
		"time":    r.Time.Format(time.RFC3339Nano),
	}

	// Add attributes into event.data
	if r.NumAttrs() > 0 {
		data := make(map[string]any)

		r.Attrs(func(a slog.Attr) bool {
			data[a.Key] = a.Value.Any()
			return true
		})

		event["data"] = data
	}

	// Encode to JSON
	b, err := json.Marshal(event)
	if err != nil {
		return err
	}

	// One JSON object per line on stdout
	_, err = os.Stdout.Write(append(b, '\n'))
	return err
}

func (h *StdoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	// Add attributes to a new handler
	newH := *h
	return &withAttrsHandler{handler: &newH, attrs: attrs}
}

func (h *StdoutHandler) WithGroup(_ string) slog.Handler {
	// Flat event format, groups are ignored
	return h
}

// wrapper that injects static attrs
type withAttrsHandler struct {
	handler *StdoutHandler
	attrs   []slog.Attr
}

func (h *withAttrsHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.handler.Enabled(ctx, l)
}

func (h *withAttrsHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, a := range h.attrs {
		r.AddAttrs(a)
	}
	return h.handler.Handle(ctx, r)
}

func (h *withAttrsHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	all := append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &withAttrsHandler{handler: h.handler, attrs: all}
}

func (h *withAttrsHandler) WithGroup(name string) slog.Handler {
	return h
}
