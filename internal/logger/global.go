package logger

import "os"

var global = New(InfoLevel, TextFormat, os.Stdout)

func init() {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		global.SetLevel(ParseLevel(v))
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		global.format = ParseFormat(v)
	}
}

// Global returns the process-wide logger instance
func Global() *Logger {
	return global
}

// SetGlobal replaces the process-wide logger instance
func SetGlobal(l *Logger) {
	global = l
}

// Debug logs a debug message using the global logger
func Debug(msg string, fields ...Fields) { global.Debug(msg, fields...) }

// Info logs an info message using the global logger
func Info(msg string, fields ...Fields) { global.Info(msg, fields...) }

// Warn logs a warning message using the global logger
func Warn(msg string, fields ...Fields) { global.Warn(msg, fields...) }

// Error logs an error message using the global logger
func Error(msg string, err error, fields ...Fields) { global.Error(msg, err, fields...) }

// Fatal logs a fatal message using the global logger and exits
func Fatal(msg string, err error, fields ...Fields) { global.Fatal(msg, err, fields...) }

// Debugf logs a formatted debug message using the global logger
func Debugf(format string, args ...any) { global.Debugf(format, args...) }

// Infof logs a formatted info message using the global logger
func Infof(format string, args ...any) { global.Infof(format, args...) }

// Warnf logs a formatted warning message using the global logger
func Warnf(format string, args ...any) { global.Warnf(format, args...) }

// Errorf logs a formatted error message using the global logger
func Errorf(format string, args ...any) { global.Errorf(format, args...) }
