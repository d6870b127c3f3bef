package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/contre95/soundsort/src/features/config"
)

// SetupLogger builds the application logger writing to stderr.
func SetupLogger(cfg *config.Manager) *slog.Logger {
	return NewLogger(cfg, os.Stderr)
}

// SetupFileLogger builds a logger writing to the configured log file, used while
// the terminal UI owns the screen. It falls back to io.Discard if the file can't be opened.
func SetupFileLogger(cfg *config.Manager) (*slog.Logger, io.Closer) {
	path := cfg.Get().Logger.File
	if path == "" {
		return NewLogger(cfg, io.Discard), io.NopCloser(nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return NewLogger(cfg, io.Discard), io.NopCloser(nil)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return NewLogger(cfg, io.Discard), io.NopCloser(nil)
	}
	return NewLogger(cfg, f), f
}

// NewLogger returns a slog logger backed by a charmbracelet handler writing to w.
func NewLogger(cfg *config.Manager, w io.Writer) *slog.Logger {
	var formatter log.Formatter
	switch cfg.Get().Logger.Format {
	case "json":
		formatter = log.JSONFormatter
	case "text":
		formatter = log.TextFormatter
	default:
		formatter = log.LogfmtFormatter
	}

	level := log.InfoLevel
	switch cfg.Get().Logger.Level {
	case "debug":
		level = log.DebugLevel
	case "info":
		level = log.InfoLevel
	case "warn":
		level = log.WarnLevel
	case "error":
		level = log.ErrorLevel
	}

	handler := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "Soundsort",
		Formatter:       formatter,
		Level:           level,
	})

	logger := slog.New(handler)
	logger.Debug("Logger initialized", "time", time.Now().Format(time.RFC3339))
	return logger
}
