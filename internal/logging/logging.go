// Package logging builds the slog logger that carries appicon's diagnostics
// (converter command lines, timings, intermediate-file handling). Console
// progress output is separate and always printed.
package logging

import (
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config describes the desired logging configuration.
type Config struct {
	Level          string `json:"level,omitempty" yaml:"level,omitempty"`
	Format         string `json:"format,omitempty" yaml:"format,omitempty"`
	FilePath       string `json:"file_path,omitempty" yaml:"file_path,omitempty"`
	FileMaxSizeMB  int    `json:"file_max_size_mb,omitempty" yaml:"file_max_size_mb,omitempty"`
	FileMaxFiles   int    `json:"file_max_files,omitempty" yaml:"file_max_files,omitempty"`
	FileMaxAgeDays int    `json:"file_max_age_days,omitempty" yaml:"file_max_age_days,omitempty"`
}

// DefaultConfig logs warnings and errors as text.
func DefaultConfig() Config {
	return Config{
		Level:          "warn",
		Format:         "text",
		FileMaxSizeMB:  10,
		FileMaxFiles:   3,
		FileMaxAgeDays: 30,
	}
}

// New returns a logger writing to w and, if cfg.FilePath is set, to a
// rotating log file. The returned closer is nil when no file is open.
func New(cfg Config, w io.Writer) (*slog.Logger, io.Closer) {
	writer, closer := buildWriter(cfg, w)
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	var h slog.Handler
	if cfg.Format == "json" {
		h = slog.NewJSONHandler(writer, opts)
	} else {
		h = slog.NewTextHandler(writer, opts)
	}
	return slog.New(h), closer
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func buildWriter(cfg Config, w io.Writer) (io.Writer, io.Closer) {
	if cfg.FilePath == "" {
		return w, nil
	}
	d := DefaultConfig()
	lj := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    orDefault(cfg.FileMaxSizeMB, d.FileMaxSizeMB),
		MaxBackups: orDefault(cfg.FileMaxFiles, d.FileMaxFiles),
		MaxAge:     orDefault(cfg.FileMaxAgeDays, d.FileMaxAgeDays),
	}
	return io.MultiWriter(w, lj), lj
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// ParseLevel converts a string to slog.Level, defaulting to Warn.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Validate reports unknown level or format names.
func (c Config) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level %q: want debug, info, warn or error", c.Level)
	}
	switch c.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log format %q: want text or json", c.Format)
	}
	return nil
}
