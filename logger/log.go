package logger

import (
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Logger *zap.Logger
	once   sync.Once
)

// InitializeLogger initializes the global logger.
func InitializeLogger() {
	once.Do(func() {
		env := os.Getenv("ENV")
		var err error
		var logger *zap.Logger
		if env == "production" {
			logger, err = zap.NewProduction()
		} else {
			logger, err = zap.NewDevelopment()
		}
		if err != nil {
			panic("failed to initialize logger: " + err.Error())
		}
		Logger = logger
	})
}

// L returns the global logger, initializing it on first use.
func L() *zap.Logger {
	if Logger == nil {
		InitializeLogger()
	}
	return Logger
}

// Close flushes the logger buffers (important for production to avoid losing log entries)
func Close() {
	if err := L().Sync(); err != nil {
		log.Printf("failed to flush log entries: %v", err)
	}
}

// Global logging methods to avoid `logger.Logger` repetition

func Info(msg string, args ...zapcore.Field) {
	L().Info(msg, args...)
}

func Warn(msg string, args ...zapcore.Field) {
	L().Warn(msg, args...)
}

func Error(msg string, args ...zapcore.Field) {
	L().Error(msg, args...)
}

func Fatal(msg string, args ...zapcore.Field) {
	L().Fatal(msg, args...)
}

func Debug(msg string, args ...zapcore.Field) {
	L().Debug(msg, args...)
}
