package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Options struct {
	Service string
	Env     string
	Level   string

	// Backend names the product storage in use; omitted when empty.
	Backend string

	// Output defaults to os.Stderr so command output on stdout stays clean.
	Output io.Writer
}

// New builds a JSON logger tagged with the service, env and storage backend
// and installs it as the slog default.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level := ParseLevel(opts.Level)
	h := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	})

	attrs := []any{"service", opts.Service, "env", opts.Env}
	if opts.Backend != "" {
		attrs = append(attrs, "backend", opts.Backend)
	}

	l := slog.New(h).With(attrs...)
	slog.SetDefault(l)
	return l
}

func ParseLevel(lvl string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(lvl))); err != nil {
		// "warning" is accepted alongside slog's own names
		if strings.EqualFold(strings.TrimSpace(lvl), "warning") {
			return slog.LevelWarn
		}
		return slog.LevelInfo
	}
	return level
}
