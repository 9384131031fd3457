package slogx

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config controls the console's root logger. Zero values produce JSON at
// info level, the production setup.
type Config struct {
	Service string
	Version string
	Env     string // e.g. "dev", "staging", "prod"
	Level   string // e.g. "debug", "info", "warn", "error"
	Format  string // e.g. "json", "text"

	// Output overrides the log destination. Defaults to stdout.
	Output io.Writer
}

// New builds the root logger, tags every record with the service identity,
// and installs it as the slog default so stray library logging stays
// consistent with ours.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level: Level(cfg.Level),
		// Text output is for an operator watching a dev console; give
		// them file:line to jump from.
		AddSource: cfg.Env == "dev",
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}

	logger := slog.New(handler).With(
		slog.String("service", cfg.Service),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	slog.SetDefault(logger)
	return logger
}

// Level maps a config string to a slog.Level. Unknown values fall back to
// info rather than failing startup over a typo.
func Level(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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
