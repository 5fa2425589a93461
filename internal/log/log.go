// Package log builds the zap loggers used by the simulator. Records go to
// stderr and, when a file is configured, to a size-rotated log file.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level string
	// File enables the rotating file output when set.
	File       string
	MaxSize    int // megabytes
	MaxAge     int // days
	MaxBackups int
	Compress   bool
	// Console is where console output goes; nil means os.Stderr.
	Console io.Writer
}

func DefaultConfig() Config {
	return Config{
		Level:      "info",
		MaxSize:    8,
		MaxAge:     7,
		MaxBackups: 3,
	}
}

// New returns a logger for cfg and a function that flushes and closes its outputs.
func New(cfg Config) (*zap.Logger, func() error, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	console := cfg.Console
	if console == nil {
		console = os.Stderr
	}
	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(console),
			level,
		),
	}

	var rw *lumberjack.Logger
	if cfg.File != "" {
		rw = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxAge:     cfg.MaxAge,
			MaxBackups: cfg.MaxBackups,
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rw),
			level,
		))
	}

	logger := zap.New(zapcore.NewTee(cores...))
	closer := func() error {
		// Sync on stderr fails on some platforms; only the file result matters.
		_ = logger.Sync()
		if rw == nil {
			return nil
		}
		if err := rw.Close(); err != nil {
			return fmt.Errorf("close log file: %w", err)
		}
		return nil
	}
	return logger, closer, nil
}

var errUnknownLevel = errors.New("unknown log level")

func parseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("%w: %q", errUnknownLevel, s)
	}
	return level, nil
}
