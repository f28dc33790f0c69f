package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config — настройки логгера. Переменные: CALCULATOR_LOG_LEVEL, CALCULATOR_LOG_FILE, CALCULATOR_LOG_FORMAT.
type Config struct {
	Level  string `envconfig:"LEVEL" default:"info"`
	File   string `envconfig:"FILE" default:""` // пусто — только stderr
	Format string `envconfig:"FORMAT" default:"text"`
}

// New возвращает логгер по конфигу и функцию, закрывающую файл лога.
// Если файл не открылся, логгер пишет только в stderr и сообщает об этом.
func New(cfg Config) (*slog.Logger, func() error) {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg Config, stderr io.Writer) (*slog.Logger, func() error) {
	noop := func() error { return nil }
	if cfg.File == "" {
		return NewWithWriter(cfg, stderr), noop
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log := NewWithWriter(cfg, stderr)
		log.Warn("log file unavailable, logging to stderr only", "file", cfg.File, "error", err)
		return log, noop
	}
	return NewWithWriter(cfg, io.MultiWriter(stderr, f)), f.Close
}

// NewWithWriter — то же, что New, но пишет в w.
func NewWithWriter(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel разбирает уровень (debug, info, warn, error). Неизвестное значение — info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
