package podkit

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
)

// NewLogger builds the service logger. format is "json", "human" or "auto";
// level is "debug", "info", "warn" or "error". Auto picks the human handler
// when w is a terminal and JSON otherwise, so container logs stay
// machine-readable without any configuration.
func NewLogger(format, level string, w io.Writer) *slog.Logger {
	var minLevel slog.Level
	switch level {
	case "debug":
		minLevel = slog.LevelDebug
	case "warn":
		minLevel = slog.LevelWarn
	case "error":
		minLevel = slog.LevelError
	default:
		minLevel = slog.LevelInfo
	}
	var handler slog.Handler
	switch {
	case format == "human", format == "auto" && isTerm(w):
		handler = newHumanHandler(minLevel, w)
	default:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: minLevel})
	}
	return slog.New(handler)
}

func isTerm(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		if isatty.IsTerminal(f.Fd()) {
			return true
		}
	}
	return false
}
