package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

type Logger struct {
	level  Level
	logger *slog.Logger
	exit   func(int)
}

func New(levelStr string) *Logger {
	return NewWithWriter(levelStr, os.Stdout)
}

// NewWithWriter builds a logger that writes slog text records to w
func NewWithWriter(levelStr string, w io.Writer) *Logger {
	level := parseLevel(levelStr)
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level.slogLevel()})
	return &Logger{
		level:  level,
		logger: slog.New(handler),
		exit:   os.Exit,
	}
}

func parseLevel(levelStr string) Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case DebugLevel:
		return slog.LevelDebug
	case WarnLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With returns a logger that adds the given key/value attributes to every record
func (l *Logger) With(args ...any) *Logger {
	return &Logger{level: l.level, logger: l.logger.With(args...), exit: l.exit}
}

func (l *Logger) log(level Level, v ...interface{}) {
	if level < l.level {
		return
	}
	l.logger.Log(context.Background(), level.slogLevel(), fmt.Sprint(v...))
}

func (l *Logger) Debug(v ...interface{}) {
	l.log(DebugLevel, v...)
}

func (l *Logger) Info(v ...interface{}) {
	l.log(InfoLevel, v...)
}

func (l *Logger) Warn(v ...interface{}) {
	l.log(WarnLevel, v...)
}

func (l *Logger) Error(v ...interface{}) {
	l.log(ErrorLevel, v...)
}

func (l *Logger) Fatal(v ...interface{}) {
	l.logger.Log(context.Background(), slog.LevelError, fmt.Sprint(v...), "fatal", true)
	l.exit(1)
}
