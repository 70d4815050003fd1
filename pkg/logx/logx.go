// Package logx is the process-wide leveled logger, backed by zap.
package logx

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level int8

const (
	LevelDebug Level = iota - 1
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLevel converts a config string into a Level, defaulting to info
func ParseLevel(s string) Level {
	switch s {
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

// Fields are structured key/value pairs attached to a log entry
type Fields map[string]any

var (
	mu     sync.RWMutex
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	sugar  = newLogger(level, os.Stdout).Sugar()
	exitFn = os.Exit
)

func newLogger(lvl zap.AtomicLevel, out zapcore.WriteSyncer) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(out), lvl)
	return zap.New(core)
}

// SetLevel changes the minimum level logged
func SetLevel(l Level) {
	level.SetLevel(l.zapLevel())
}

// SetOutput redirects log output, mostly for tests
func SetOutput(out zapcore.WriteSyncer) {
	mu.Lock()
	defer mu.Unlock()
	sugar = newLogger(level, out).Sugar()
}

func logger() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// Sync flushes buffered entries
func Sync() {
	_ = logger().Sync()
}

func Debug(args ...any)                 { logger().Debug(args...) }
func Debugf(format string, args ...any) { logger().Debugf(format, args...) }
func Info(args ...any)                  { logger().Info(args...) }
func Infof(format string, args ...any)  { logger().Infof(format, args...) }
func Warn(args ...any)                  { logger().Warn(args...) }
func Warnf(format string, args ...any)  { logger().Warnf(format, args...) }
func Error(args ...any)                 { logger().Error(args...) }
func Errorf(format string, args ...any) { logger().Errorf(format, args...) }

// Fatal logs at error level and exits the process
func Fatal(args ...any) {
	logger().Error(args...)
	Sync()
	exitFn(1)
}

// Fatalf logs at error level and exits the process
func Fatalf(format string, args ...any) {
	logger().Errorf(format, args...)
	Sync()
	exitFn(1)
}

// Entry is a logger carrying fields
type Entry struct {
	s *zap.SugaredLogger
}

// WithFields returns an entry that logs the given fields with every message
func WithFields(fields Fields) *Entry {
	kv := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		kv = append(kv, k, v)
	}
	return &Entry{s: logger().With(kv...)}
}

func (e *Entry) Debug(args ...any)                 { e.s.Debug(args...) }
func (e *Entry) Debugf(format string, args ...any) { e.s.Debugf(format, args...) }
func (e *Entry) Info(args ...any)                  { e.s.Info(args...) }
func (e *Entry) Infof(format string, args ...any)  { e.s.Infof(format, args...) }
func (e *Entry) Warn(args ...any)                  { e.s.Warn(args...) }
func (e *Entry) Warnf(format string, args ...any)  { e.s.Warnf(format, args...) }
func (e *Entry) Error(args ...any)                 { e.s.Error(args...) }
func (e *Entry) Errorf(format string, args ...any) { e.s.Errorf(format, args...) }
