package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// maxLines bounds the in-memory history shown by the console.
const maxLines = 500

// Field is a structured logging attribute.
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field             { return Field{Key: key, Value: value} }
func Int(key string, value int) Field            { return Field{Key: key, Value: value} }
func Float(key string, value float64) Field      { return Field{Key: key, Value: value} }
func Bool(key string, value bool) Field          { return Field{Key: key, Value: value} }
func Any(key string, value any) Field            { return Field{Key: key, Value: value} }
func Err(err error) Field                        { return Field{Key: "err", Value: err} }
func Duration(key string, d time.Duration) Field { return Field{Key: key, Value: d} }

// Config controls the logger.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // text or json
	File   string // console history file; empty disables it
	Out    io.Writer
}

// Logger writes structured records to Out and keeps a short, human-readable copy
// of each one for the on-screen console (and the history file, if set).
type Logger struct {
	out     *slog.Logger
	console *slog.Logger
	hist    *history
}

// New builds a logger. Level and Format fall back to LOG_LEVEL / LOG_FORMAT and then
// to info / text.
func New(cfg Config) *Logger {
	if cfg.Level == "" {
		cfg.Level = os.Getenv("LOG_LEVEL")
	}
	if cfg.Format == "" {
		cfg.Format = os.Getenv("LOG_FORMAT")
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	level := ParseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(cfg.Out, opts)
	} else {
		handler = slog.NewTextHandler(cfg.Out, opts)
	}

	hist := &history{path: cfg.File}
	if cfg.File != "" {
		_ = os.MkdirAll(filepath.Dir(cfg.File), 0755)
	}
	console := slog.NewTextHandler(hist, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format("15:04:05"))
			}
			return a
		},
	})

	return &Logger{out: slog.New(handler), console: slog.New(console), hist: hist}
}

// Discard returns a logger that drops everything but still records console lines.
func Discard() *Logger {
	return New(Config{Level: "debug", Out: io.Discard})
}

// ParseLevel maps a level name to slog, defaulting to info.
func ParseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// With returns a logger that adds fields to every record.
func (l *Logger) With(fields ...Field) *Logger {
	args := toArgs(fields)
	return &Logger{out: l.out.With(args...), console: l.console.With(args...), hist: l.hist}
}

func (l *Logger) Debug(msg string, fields ...Field) { l.log(slog.LevelDebug, msg, fields) }
func (l *Logger) Info(msg string, fields ...Field)  { l.log(slog.LevelInfo, msg, fields) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.log(slog.LevelWarn, msg, fields) }
func (l *Logger) Error(msg string, fields ...Field) { l.log(slog.LevelError, msg, fields) }

// Log records a raw console line, such as a command typed into the terminal.
func (l *Logger) Log(line string) {
	l.Info(line)
}

// Lines returns a copy of the recent console lines, oldest first.
func (l *Logger) Lines() []string {
	return l.hist.snapshot()
}

func (l *Logger) log(level slog.Level, msg string, fields []Field) {
	attrs := toAttrs(fields)
	ctx := context.Background()
	l.out.LogAttrs(ctx, level, msg, attrs...)
	l.console.LogAttrs(ctx, level, msg, attrs...)
}

func toAttrs(fields []Field) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(fields))
	for _, f := range fields {
		attrs = append(attrs, slog.Any(f.Key, f.Value))
	}
	return attrs
}

func toArgs(fields []Field) []any {
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		args = append(args, slog.Any(f.Key, f.Value))
	}
	return args
}

// history is the console handler's sink: one record per Write.
type history struct {
	mu    sync.Mutex
	lines []string
	path  string
}

func (h *history) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")

	h.mu.Lock()
	h.lines = append(h.lines, line)
	if len(h.lines) > maxLines {
		h.lines = append(h.lines[:0], h.lines[len(h.lines)-maxLines:]...)
	}
	h.mu.Unlock()

	if h.path != "" {
		f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			_, _ = f.WriteString(line + "\n")
			_ = f.Close()
		}
	}
	return len(p), nil
}

func (h *history) snapshot() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.lines))
	copy(out, h.lines)
	return out
}
