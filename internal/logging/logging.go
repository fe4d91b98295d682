// Package logging configures sentiboard's file logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls where and how much sentiboard logs.
type Config struct {
	Path string
	// Debug lowers the level to debug.
	Debug bool
	// Stderr mirrors log output to stderr. The TUI leaves it off because the
	// terminal belongs to the dashboard.
	Stderr bool
}

// New builds a logger writing to a size-rotated file at cfg.Path. The returned
// closer flushes and closes the file.
func New(cfg Config) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	fileWriter := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	var writer io.Writer = fileWriter
	if cfg.Stderr {
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	logger := log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "sentiboard",
	})
	return logger, fileWriter, nil
}

// Discard returns a logger that drops everything. Used when no logger is injected.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
