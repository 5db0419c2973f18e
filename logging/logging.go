// Package logging wires log/slog and the std log package to one writer.
package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/pivolan/userbase_dashboard/config"
)

// Setup configures the default slog logger and the std log bridge.
// format: console|json; level: debug|info|warn|error.
// With a non-empty file the output goes to a rotating log file.
func Setup(cfg *config.Config) {
	var w io.Writer = os.Stderr
	if strings.TrimSpace(cfg.LogFile) != "" {
		w = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
			MaxAge:     cfg.LogMaxAgeDays,
		}
	}
	slog.SetDefault(slog.New(NewHandler(w, cfg.LogLevel, cfg.LogFormat)))

	if strings.ToLower(cfg.LogFormat) == "json" {
		log.SetFlags(0)
	} else {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	}
	log.SetOutput(w)
}

func NewHandler(w io.Writer, level, format string) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if strings.ToLower(format) == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Module returns the default logger tagged with a module name.
func Module(name string) *slog.Logger {
	return slog.Default().With("module", name)
}
