// Package logging настраивает структурированный логгер slog для CLI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	Level  string    `yaml:"level"`
	Format string    `yaml:"format"` // text | json
	Output io.Writer `yaml:"-"`
}

func DefaultConfig() Config {
	return Config{Level: "info", Format: "text"}
}

// ParseLevel разбирает debug, info, warn и error без учёта регистра.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("неизвестный уровень логирования %q", s)
	}
}

// New возвращает логгер; по умолчанию пишет в stderr.
func New(cfg Config) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(out, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(out, opts)), nil
	default:
		return nil, fmt.Errorf("неизвестный формат логирования %q", cfg.Format)
	}
}

// Discard возвращает логгер, отбрасывающий все записи.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
