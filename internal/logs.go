package internal

import (
	"log/slog"
	"os"
	"strings"
)

// LoggerFromString builds the root slog logger from a level name.
// Unknown levels fall back to INFO so a typo in the environment
// never silences the server.
func LoggerFromString(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		l = slog.LevelDebug
	case "WARN":
		l = slog.LevelWarn
	case "ERROR":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
}
