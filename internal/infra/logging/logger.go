// Package logging provides the console log handler for nh.
// Info messages are the user-facing progress lines ("> Building ..."),
// debug messages carry the exact command lines being run.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Ensure ConsoleHandler implements slog.Handler interface.
var _ slog.Handler = (*ConsoleHandler)(nil)

var (
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	debugStyle = lipgloss.NewStyle().Faint(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	keyStyle   = lipgloss.NewStyle().Faint(true)
)

// ConsoleHandler writes one line per record to a terminal.
// Fields are ordered to minimize memory padding.
type ConsoleHandler struct {
	w      io.Writer
	level  slog.Leveler
	mu     *sync.Mutex
	prefix string // Group prefix for attribute keys, e.g. "build."
	attrs  []slog.Attr
}

// NewConsoleHandler creates a handler writing records at or above level to w.
// Pass a *slog.LevelVar to change the level after creation.
func NewConsoleHandler(w io.Writer, level slog.Leveler) *ConsoleHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &ConsoleHandler{
		w:     w,
		level: level,
		mu:    &sync.Mutex{},
	}
}

// New creates a logger backed by a ConsoleHandler.
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(NewConsoleHandler(w, level))
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Enabled reports whether records at level are written.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes a record.
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(formatMessage(r.Level, r.Message))

	for _, a := range h.attrs {
		writeAttr(&sb, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&sb, h.prefix, a)
		return true
	})
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, sb.String())
	return err
}

// WithAttrs returns a handler that adds attrs to every record.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		clone.attrs = append(clone.attrs, a)
	}
	return &clone
}

// WithGroup returns a handler that qualifies attribute keys with name.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

// formatMessage renders the level marker and message.
// Format: "> msg" (info), "$ msg" (debug), "! msg" (warn), "x msg" (error)
func formatMessage(level slog.Level, msg string) string {
	switch {
	case level >= slog.LevelError:
		return errorStyle.Render("x") + " " + msg
	case level >= slog.LevelWarn:
		return warnStyle.Render("!") + " " + msg
	case level >= slog.LevelInfo:
		return infoStyle.Render(">") + " " + msg
	default:
		return debugStyle.Render("$ " + msg)
	}
}

func writeAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			writeAttr(sb, groupPrefix, ga)
		}
		return
	}
	sb.WriteByte(' ')
	sb.WriteString(keyStyle.Render(prefix + a.Key + "="))
	sb.WriteString(formatValue(a.Value))
}

func formatValue(v slog.Value) string {
	s := v.String()
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
