package logger

import (
	"log/slog"
	"strings"
)

// Config holds logger settings loaded from the environment.
type Config struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	Service string `env:"APP_NAME" envDefault:"sessionguard"`
	// Level overrides the environment default when set (debug, info, warn, error).
	Level string `env:"LOG_LEVEL"`
	// Format overrides the environment default when set (json, text).
	Format string `env:"LOG_FORMAT"`
}

// NewFromConfig creates a logger from cfg. Extra options are applied last.
func NewFromConfig(cfg Config, opts ...Option) *slog.Logger {
	base := []Option{WithEnvironment(cfg.Env, cfg.Service)}

	if lvl, ok := parseLevel(cfg.Level); ok {
		base = append(base, WithLevel(lvl))
	}
	if cfg.Format != "" {
		base = append(base, WithFormat(Format(strings.ToLower(cfg.Format))))
	}

	return New(append(base, opts...)...)
}

func parseLevel(s string) (slog.Level, bool) {
	if s == "" {
		return 0, false
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, false
	}
	return lvl, true
}
