// Package logger provides the leveled logging used across wpgen.
// It exposes printf-style helpers backed by a shared zap sugared logger, so callers
// never need to carry a logger instance around.
package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel is a type representing the logging level.
type LogLevel int

const (
	// LevelDebug is the log level used for detailed debugging information.
	LevelDebug LogLevel = iota
	// LevelInfo is the log level used for general informational messages.
	LevelInfo
	// LevelWarn is the log level used for potential issues or warning messages.
	LevelWarn
	// LevelError is the log level used for error messages.
	LevelError
	// LevelFatal is the log level used for fatal error messages that cause application termination.
	LevelFatal
)

var zapLevels = map[LogLevel]zapcore.Level{
	LevelDebug: zapcore.DebugLevel,
	LevelInfo:  zapcore.InfoLevel,
	LevelWarn:  zapcore.WarnLevel,
	LevelError: zapcore.ErrorLevel,
	LevelFatal: zapcore.FatalLevel,
}

var (
	atomicLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	mu    sync.RWMutex
	sugar = build(zapcore.Lock(os.Stderr))
)

func build(out zapcore.WriteSyncer) *zap.SugaredLogger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), out, atomicLevel)
	return zap.New(core).Sugar()
}

// SetLogLevel sets the global log level.
// Valid string values are "DEBUG", "INFO", "WARN", "ERROR", "FATAL" (case-insensitive).
// If an invalid value is specified, the default "INFO" level is used and a warning is printed.
func SetLogLevel(level string) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		setLevel(LevelDebug)
	case "INFO":
		setLevel(LevelInfo)
	case "WARN":
		setLevel(LevelWarn)
	case "ERROR":
		setLevel(LevelError)
	case "FATAL":
		setLevel(LevelFatal)
	default:
		fmt.Fprintf(os.Stderr, "Unknown log level '%s' specified. Defaulting to INFO level.\n", level)
		setLevel(LevelInfo)
	}
}

func setLevel(l LogLevel) {
	atomicLevel.SetLevel(zapLevels[l])
}

// Level returns the currently active log level.
func Level() LogLevel {
	current := atomicLevel.Level()
	for l, z := range zapLevels {
		if z == current {
			return l
		}
	}
	return LevelInfo
}

// SetOutput redirects log output. Tests use it to capture messages.
func SetOutput(out zapcore.WriteSyncer) {
	mu.Lock()
	defer mu.Unlock()
	sugar = build(out)
}

// Sugar returns the underlying zap logger for components that want structured fields.
func Sugar() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// Sync flushes buffered log entries.
func Sync() {
	_ = Sugar().Sync()
}

// Debugf formats and outputs a DEBUG level log message.
func Debugf(format string, v ...interface{}) {
	Sugar().Debugf(format, v...)
}

// Infof formats and outputs an INFO level log message.
func Infof(format string, v ...interface{}) {
	Sugar().Infof(format, v...)
}

// Warnf formats and outputs a WARN level log message.
func Warnf(format string, v ...interface{}) {
	Sugar().Warnf(format, v...)
}

// Errorf formats and outputs an ERROR level log message.
func Errorf(format string, v ...interface{}) {
	Sugar().Errorf(format, v...)
}

// Fatalf formats and outputs a FATAL level log message,
// then terminates the program by calling os.Exit(1).
func Fatalf(format string, v ...interface{}) {
	Sugar().Fatalf(format, v...)
}
