package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the global logger instance. It is a no-op until Initialize runs so
// packages can log safely from tests.
var Log = zap.NewNop()

// SugaredLog is a sugared logger for printf-style logging
var SugaredLog = Log.Sugar()

const (
	defaultLogFile = "recommender.log"

	rotateMaxSizeMB  = 100
	rotateMaxBackups = 5
	rotateMaxAgeDays = 7
)

// Initialize replaces Log with a logger writing readable lines to stdout and
// JSON lines to a rotated file. Empty arguments select info and
// recommender.log.
func Initialize(logLevel string, logFile string) error {
	if logFile == "" {
		logFile = defaultLogFile
	}
	if dir := filepath.Dir(logFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	level := ParseLevel(logLevel)
	core := zapcore.NewTee(consoleCore(level), fileCore(logFile, level))

	Log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	SugaredLog = Log.Sugar()

	Log.Info("Logger initialized",
		zap.Stringer("level", level),
		zap.String("file", logFile),
	)
	return nil
}

func consoleCore(level zapcore.Level) zapcore.Core {
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zapcore.NewCore(enc, zapcore.Lock(os.Stdout), level)
}

func fileCore(path string, level zapcore.Level) zapcore.Core {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    rotateMaxSizeMB,
		MaxBackups: rotateMaxBackups,
		MaxAge:     rotateMaxAgeDays,
		Compress:   true,
	}
	return zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.AddSync(rotator), level)
}

// Close flushes buffered entries
func Close() error {
	return Log.Sync()
}

// ParseLevel converts a level name to zapcore.Level, defaulting to info
func ParseLevel(levelStr string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func errorFields(err error) []zap.Field {
	if err == nil {
		return nil
	}
	return []zap.Field{zap.Error(err)}
}

// WarnWithFields logs msg at warn level, attaching err when it is non-nil
func WarnWithFields(msg string, err error) {
	Log.Warn(msg, errorFields(err)...)
}

// ErrorWithFields logs msg at error level, attaching err when it is non-nil
func ErrorWithFields(msg string, err error) {
	Log.Error(msg, errorFields(err)...)
}

// FatalWithFields logs msg and exits the process
func FatalWithFields(msg string, err error) {
	Log.Fatal(msg, errorFields(err)...)
}

func WithRequestID(requestID string) zap.Field {
	return zap.String("request_id", requestID)
}

func WithBookID(bookID string) zap.Field {
	return zap.String("book_id", bookID)
}

func WithIP(ip string) zap.Field {
	return zap.String("ip", ip)
}

func WithStatus(status int) zap.Field {
	return zap.Int("status", status)
}
