package common

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const DefaultLogLevel = "warn"

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLogLevel accepts debug, info, warn or error in any case; empty means DefaultLogLevel.
func ParseLogLevel(name string) (slog.Level, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultLogLevel
	}
	level, ok := logLevels[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("Unknown log level %q", name)
	}
	return level, nil
}

func NewLogger(errOut io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))
}
