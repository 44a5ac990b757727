package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes protocol events to an slog.Logger at Debug level, and
// error events at Warn.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("conn_id", event.ConnectionID),
		slog.String("category", event.Category.String()),
	}
	if event.Direction != DirectionNone {
		attrs = append(attrs, slog.String("direction", event.Direction.String()))
	}
	if event.RemoteAddr != "" {
		attrs = append(attrs, slog.String("remote", event.RemoteAddr))
	}

	level := slog.LevelDebug
	switch {
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Data != nil:
		attrs = append(attrs,
			slog.Int("size", event.Data.Size),
			slog.Bool("truncated", event.Data.Truncated),
		)
	case event.Flow != nil:
		attrs = append(attrs,
			slog.String("flow", event.Flow.Kind.String()),
			slog.Int("bytes", event.Flow.Bytes),
			slog.Int("queued", event.Flow.Queued),
		)
		if event.Flow.Window != 0 {
			attrs = append(attrs, slog.Int("window", event.Flow.Window))
		}
		if event.Flow.Status != "" {
			attrs = append(attrs, slog.String("status", event.Flow.Status))
		}
	case event.Error != nil:
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.String("error_kind", event.Error.Kind),
			slog.String("error_msg", event.Error.Message),
			slog.Bool("fatal", event.Error.Fatal),
		)
		if event.Error.Status != "" {
			attrs = append(attrs, slog.String("status", event.Error.Status))
		}
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), level, "protocol", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
