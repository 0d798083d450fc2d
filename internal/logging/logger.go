// Package logging attaches a zerolog logger to a context. Commands log to a
// rotating file under the XDG data directory unless given a writer.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/wizzomafizzo/lintrc/internal/storage"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxLogSizeMB  = 10
	maxLogBackups = 3
	maxLogAgeDays = 30
)

const (
	ErrorLevel = zerolog.ErrorLevel
	WarnLevel  = zerolog.WarnLevel
	InfoLevel  = zerolog.InfoLevel
	DebugLevel = zerolog.DebugLevel
	TraceLevel = zerolog.TraceLevel
)

// Config selects where a logger writes and what it records.
type Config struct {
	// Writer takes precedence over any file.
	Writer io.Writer
	// File overrides the default log path under the data directory.
	File string
	// Command is added to every entry when set.
	Command string
	Level   zerolog.Level
}

// New returns ctx with a logger attached. Without a Writer the logger
// rotates Config.File, or the default log path when File is empty.
func New(ctx context.Context, fs afero.Fs, config Config) (context.Context, error) {
	writer := config.Writer
	if writer == nil {
		file, err := logFile(fs, config.File)
		if err != nil {
			return nil, err
		}
		writer = &lumberjack.Logger{
			Filename:   file,
			MaxSize:    maxLogSizeMB,
			MaxBackups: maxLogBackups,
			MaxAge:     maxLogAgeDays,
		}
	}

	logContext := zerolog.New(writer).With().Timestamp()
	if config.Command != "" {
		logContext = logContext.Str("command", config.Command)
	}
	logger := logContext.Logger().Level(config.Level)

	return logger.WithContext(ctx), nil
}

func logFile(fs afero.Fs, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if fs == nil {
		return "", errors.New("filesystem required when no writer provided")
	}
	path, err := storage.New(fs).GetLogPath()
	if err != nil {
		return "", fmt.Errorf("failed to get log path: %w", err)
	}
	return path, nil
}

// Get returns the logger attached to ctx, or a disabled logger.
func Get(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// ParseLevel maps a level name to a zerolog level, defaulting to warn.
func ParseLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(name)
	if err != nil || name == "" {
		return WarnLevel
	}
	return level
}
