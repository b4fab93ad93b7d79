package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/KirkDiggler/dicepool/internal/config"
)

// newLogger logs through pterm on the terminal, or as JSON into a rotated
// file when DICE_LOG_FILE is set
func newLogger(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	if cfg.LogFile != "" {
		rotateLogger := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    20, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			LocalTime:  true,
			Compress:   true,
		}
		handler := slog.NewJSONHandler(rotateLogger, &slog.HandlerOptions{Level: level})
		return slog.New(handler), rotateLogger, nil
	}

	logger := pterm.DefaultLogger.WithLevel(ptermLevel(level)).WithWriter(os.Stderr)
	return slog.New(pterm.NewSlogHandler(logger)), nil, nil
}

func ptermLevel(level slog.Level) pterm.LogLevel {
	switch {
	case level < slog.LevelInfo:
		return pterm.LogLevelDebug
	case level < slog.LevelWarn:
		return pterm.LogLevelInfo
	case level < slog.LevelError:
		return pterm.LogLevelWarn
	default:
		return pterm.LogLevelError
	}
}
