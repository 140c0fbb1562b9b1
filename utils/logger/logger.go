// Package logger configures the process-wide zerolog logger with
// console output and optional rotating file output.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
	With().Timestamp().Logger()

// Config holds logger settings. FilePath empty disables file output.
type Config struct {
	Level      string
	Console    bool
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Init replaces the default logger with one built from cfg. Unknown
// level strings fall back to info.
func Init(cfg Config) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var writers []io.Writer
	if cfg.Console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	if cfg.FilePath != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		})
	}
	if len(writers) == 0 {
		writers = append(writers, os.Stdout)
	}

	log = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger().Level(level)
}

// Get returns the configured logger.
func Get() *zerolog.Logger {
	return &log
}
