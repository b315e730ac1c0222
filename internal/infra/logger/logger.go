// internal/infra/logger/logger.go
package logger

import (
	"io"
	"os"
	"strings"

	"homework_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the global logger instance
var Log = logrus.New()

const (
	errorFileMaxSizeMB  = 5
	errorFileMaxBackups = 3
)

// Init initializes the global logger based on application configuration.
// Records at ERROR and above are also written to a rotating file at cfg.ErrorLogFile.
func Init(cfg *config.AppConfig) {
	var errorSink io.Writer
	if cfg.ErrorLogFile != "" {
		errorSink = &lumberjack.Logger{
			Filename:   cfg.ErrorLogFile,
			MaxSize:    errorFileMaxSizeMB,
			MaxBackups: errorFileMaxBackups,
		}
	}
	Configure(Log, os.Stdout, errorSink, cfg.LogLevel, cfg.Environment)

	Log.Info("Logger initialized successfully.")
	Log.Debugf("Log level set to: %s", Log.GetLevel().String())
	Log.Debugf("Log format set for environment: %s", cfg.Environment)
	if cfg.ErrorLogFile != "" {
		Log.Debugf("Error records are written to: %s", cfg.ErrorLogFile)
	}
}

// Configure applies level, formatter and sinks to l. errorSink may be nil.
func Configure(l *logrus.Logger, out io.Writer, errorSink io.Writer, level, environment string) {
	l.SetOutput(out)

	// Set Log Level
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		l.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", level, err)
		l.SetLevel(logrus.InfoLevel)
	} else {
		l.SetLevel(lvl)
	}

	// Set Log Formatter
	env := strings.ToLower(environment)
	if env == "production" || env == "staging" {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00", // ISO8601
		})
	} else { // Development or other environments
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	l.ReplaceHooks(make(logrus.LevelHooks))
	if errorSink != nil {
		l.AddHook(NewErrorFileHook(errorSink))
	}
}

// Component returns an entry tagged with the component name.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}

// Get returns the configured global logger.
func Get() *logrus.Logger {
	return Log
}
