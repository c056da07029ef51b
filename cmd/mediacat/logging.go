package main

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vmunix/mediacat/internal/config"
)

// newLogger builds the slog logger for cfg. With a log file the output
// rotates through lumberjack and the returned closer must be closed;
// otherwise logs go to stderr and the closer is nil.
func newLogger(cfg config.LogConfig, stderr io.Writer) (*slog.Logger, io.Closer) {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	if cfg.File == "" {
		return slog.New(slog.NewTextHandler(stderr, opts)), nil
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
	return slog.New(slog.NewTextHandler(rotator, opts)), rotator
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
