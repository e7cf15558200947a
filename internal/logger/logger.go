// Package logger configures the process-wide zap logger. Call Init
// once at startup, then grab named loggers with GetLogger.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Log is the shared structured logger.
	Log *zap.Logger
	// Sugar is the shared sugared logger.
	Sugar *zap.SugaredLogger
)

// Init builds the global logger with a console encoder writing to
// stdout. Safe to call more than once.
func Init() {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		zapcore.InfoLevel,
	)

	Log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	Sugar = Log.Sugar()
}

// GetLogger returns a named sugared logger, initializing the global
// logger on first use.
func GetLogger(name string) *zap.SugaredLogger {
	if Log == nil {
		Init()
	}
	return Log.Named(name).Sugar()
}

// Sync flushes buffered log entries. Call it on shutdown.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
