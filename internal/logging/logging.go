package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents logging severity.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

var (
	currentLevel     atomic.Int32
	currentVerbosity atomic.Int32

	atom = zap.NewAtomicLevelAt(zapcore.WarnLevel)

	out  = &sink{w: zapcore.Lock(os.Stderr)}
	base *zap.SugaredLogger
)

func init() {
	currentLevel.Store(int32(LevelWarn))
	base = newLogger(out)
}

// sink is the WriteSyncer shared by every logger, so SetOutput also
// redirects component loggers created earlier with Named.
type sink struct {
	mu sync.Mutex
	w  zapcore.WriteSyncer
}

func (s *sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *sink) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Sync()
}

func (s *sink) set(w zapcore.WriteSyncer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w = w
}

func newLogger(w zapcore.WriteSyncer) *zap.SugaredLogger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), w, atom)
	return zap.New(core).Sugar()
}

// SetOutput redirects all log output to w, including loggers already
// returned by Named.
func SetOutput(w io.Writer) {
	out.set(zapcore.AddSync(w))
}

// SetVerbosity configures logger output from count of -v flags (0-4).
func SetVerbosity(count int) {
	if count < 0 {
		count = 0
	}
	if count > 4 {
		count = 4
	}
	currentVerbosity.Store(int32(count))

	var l Level
	switch count {
	case 0:
		l = LevelWarn
	case 1:
		l = LevelInfo
	case 2:
		l = LevelDebug
	default:
		l = LevelTrace
	}
	currentLevel.Store(int32(l))
	atom.SetLevel(zapLevel(l))
}

func zapLevel(l Level) zapcore.Level {
	switch l {
	case LevelError:
		return zapcore.ErrorLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// Verbosity returns the stored -v count.
func Verbosity() int {
	return int(currentVerbosity.Load())
}

// LevelName returns current level label.
func LevelName() string {
	return LevelToString(Level(currentLevel.Load()))
}

// LevelToString converts a Level to human readable text.
func LevelToString(l Level) string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	case LevelTrace:
		return "trace"
	default:
		return "unknown"
	}
}

// ParseLevel returns Level + verbosity count from string.
func ParseLevel(s string) (Level, int, error) {
	switch strings.ToLower(s) {
	case "error":
		return LevelError, 0, nil
	case "warn", "warning":
		return LevelWarn, 0, nil
	case "info":
		return LevelInfo, 1, nil
	case "debug":
		return LevelDebug, 2, nil
	case "trace":
		return LevelTrace, 4, nil
	default:
		return LevelWarn, Verbosity(), fmt.Errorf("unknown level %s", s)
	}
}

// Named returns a component logger for structured key/value logging.
func Named(name string) *zap.SugaredLogger {
	return base.Named(name)
}

// Sync flushes buffered output.
func Sync() {
	_ = base.Sync()
}

func logger() *zap.SugaredLogger {
	return base
}

// Errorf always prints.
func Errorf(format string, args ...any) {
	logger().Errorf(format, args...)
}

func Warnf(format string, args ...any) {
	logger().Warnf(format, args...)
}

func Infof(format string, args ...any) {
	logger().Infof(format, args...)
}

func Debugf(format string, args ...any) {
	logger().Debugf(format, args...)
}

// Tracef logs at debug severity, only when -vvv or more was given.
func Tracef(format string, args ...any) {
	if Level(currentLevel.Load()) < LevelTrace {
		return
	}
	logger().Debugf("[TRC] "+format, args...)
}
