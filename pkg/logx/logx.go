package logx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	levelVar = new(slog.LevelVar)
	logger   atomic.Pointer[slog.Logger]
)

func init() {
	levelVar.Set(slog.LevelInfo)
	SetOutput(os.Stderr)
}

// SetOutput redirects all log output to w
func SetOutput(w io.Writer) {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar})
	logger.Store(slog.New(h))
}

// SetLevel sets the minimum level that is emitted
func SetLevel(l Level) {
	switch l {
	case LevelDebug:
		levelVar.Set(slog.LevelDebug)
	case LevelWarn:
		levelVar.Set(slog.LevelWarn)
	case LevelError:
		levelVar.Set(slog.LevelError)
	default:
		levelVar.Set(slog.LevelInfo)
	}
}

// ParseLevel maps "debug", "info", "warn" and "error" to a Level
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// With returns a structured logger carrying the given attributes
func With(args ...any) *slog.Logger {
	return logger.Load().With(args...)
}

func log(level slog.Level, msg string) {
	logger.Load().Log(context.Background(), level, msg)
}

func Debug(msg string)                  { log(slog.LevelDebug, msg) }
func Debugf(format string, args ...any) { log(slog.LevelDebug, fmt.Sprintf(format, args...)) }
func Info(msg string)                   { log(slog.LevelInfo, msg) }
func Infof(format string, args ...any)  { log(slog.LevelInfo, fmt.Sprintf(format, args...)) }
func Warn(msg string)                   { log(slog.LevelWarn, msg) }
func Warnf(format string, args ...any)  { log(slog.LevelWarn, fmt.Sprintf(format, args...)) }
func Error(msg string)                  { log(slog.LevelError, msg) }
func Errorf(format string, args ...any) { log(slog.LevelError, fmt.Sprintf(format, args...)) }

func Fatal(msg string) {
	log(slog.LevelError, msg)
	os.Exit(1)
}

func Fatalf(format string, args ...any) {
	log(slog.LevelError, fmt.Sprintf(format, args...))
	os.Exit(1)
}
