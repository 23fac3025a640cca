package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"site-planner/internal/config"
)

// Logger is a structured logger that owns its rotating log file.
// Construct one per command with New and Close it when done.
type Logger struct {
	*log.Logger
	file *lumberjack.Logger
}

// New creates a logger writing to the configured file. At debug level
// records are mirrored to stderr.
func New(cfg config.LoggingConfig) (*Logger, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}

	var writers []io.Writer
	var file *lumberjack.Logger

	if cfg.File != "" {
		if dir := filepath.Dir(cfg.File); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, err
			}
		}
		file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB, // megabytes
			MaxBackups: cfg.MaxBackups,
		}
		writers = append(writers, file)
	}

	if level == log.DebugLevel || file == nil {
		writers = append(writers, os.Stderr)
	}

	l := log.NewWithOptions(io.MultiWriter(writers...), log.Options{
		ReportTimestamp: true,
		ReportCaller:    level == log.DebugLevel,
		Level:           level,
		Prefix:          "site-planner",
	})

	return &Logger{Logger: l, file: file}, nil
}

// NewWriter creates a logger over an arbitrary writer, mostly for tests
func NewWriter(w io.Writer, level log.Level) *Logger {
	return &Logger{Logger: log.NewWithOptions(w, log.Options{Level: level})}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return NewWriter(io.Discard, log.FatalLevel)
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
