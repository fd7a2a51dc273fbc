package setup

import (
	"io"
	"log/slog"
	"os"

	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/wsn-lab/uniradio/config"
)

// Logger builds the structured logger both binaries share. Output always
// goes to stderr; when a file is configured it is duplicated into a
// size-rotated log so long deployments do not fill the card.
func Logger(lc config.LogConfig) *slog.Logger {
	var w io.Writer = os.Stderr
	if lc.File != "" {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   lc.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}

	opts := &slog.HandlerOptions{Level: logLevel(lc.Level)}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
