package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// ErrorKey is the attribute Logger.Error attaches the failing error to.
const ErrorKey = "error"

var levelStyles = map[slog.Level]struct{ mark, color string }{
	slog.LevelInfo:  {"", "#667085"},
	slog.LevelWarn:  {"! ", "#F59E0B"},
	slog.LevelError: {"✗ ", "#D93025"},
}

// ConsoleHandler renders records for a terminal. An error attached under ErrorKey
// replaces the message with its expanded cause chain. Remaining attributes follow
// the first line as key=value pairs. NO_COLOR disables colors.
type ConsoleHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	bound  []string
	prefix string
}

// NewConsoleHandler creates a ConsoleHandler writing to w, or to stderr when w is nil.
func NewConsoleHandler(w io.Writer, level slog.Leveler) *ConsoleHandler {
	if w == nil {
		w = os.Stderr
	}
	if level == nil {
		level = slog.LevelInfo
	}

	profile := termenv.EnvColorProfile()
	if os.Getenv("NO_COLOR") != "" {
		profile = termenv.Ascii
	}

	return &ConsoleHandler{
		out:   termenv.NewOutput(w, termenv.WithProfile(profile), termenv.WithTTY(true)),
		level: level,
	}
}

// Enabled reports whether level reaches the configured minimum.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes one record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	body := r.Message
	pairs := append([]string{}, h.bound...)
	r.Attrs(func(a slog.Attr) bool {
		if err, ok := a.Value.Any().(error); ok && a.Key == ErrorKey {
			body = formatErrorEntries(collectErrorEntries(err))
			return true
		}
		pairs = append(pairs, h.prefix+a.Key+"="+a.Value.Resolve().String())
		return true
	})

	if len(pairs) > 0 {
		head, tail, multi := strings.Cut(body, "\n")
		body = head + " " + strings.Join(pairs, " ")
		if multi {
			body += "\n" + tail
		}
	}

	style := levelStyles[slog.LevelInfo]
	switch {
	case r.Level >= slog.LevelError:
		style = levelStyles[slog.LevelError]
	case r.Level >= slog.LevelWarn:
		style = levelStyles[slog.LevelWarn]
	}

	line := h.out.String(style.mark + body).Foreground(h.out.Color(style.color))
	_, err := h.out.WriteString(line.String() + "\n")
	return err
}

// WithAttrs binds attrs to every record written through the returned handler.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.bound = append([]string{}, h.bound...)
	for _, a := range attrs {
		next.bound = append(next.bound, h.prefix+a.Key+"="+a.Value.Resolve().String())
	}
	return &next
}

// WithGroup qualifies the keys of later attributes with name.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}
