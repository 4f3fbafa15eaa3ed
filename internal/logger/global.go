package logger

import (
	"os"
	"strings"
	"sync"
)

var (
	globalMu     sync.RWMutex
	globalLogger = fromEnv(NewDefault())
)

// fromEnv applies LOG_LEVEL and LOG_FORMAT to l
func fromEnv(l *Logger) *Logger {
	if level, ok := ParseLevel(os.Getenv("LOG_LEVEL")); ok {
		l.SetLevel(level)
	}
	if format, ok := ParseFormat(os.Getenv("LOG_FORMAT")); ok {
		l.SetFormat(format)
	}
	return l
}

// ParseLevel parses a level name such as "debug" or "WARNING"
func ParseLevel(level string) (LogLevel, bool) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DEBUG, true
	case "INFO":
		return INFO, true
	case "WARN", "WARNING":
		return WARN, true
	case "ERROR":
		return ERROR, true
	case "FATAL":
		return FATAL, true
	default:
		return INFO, false
	}
}

// ParseFormat parses "json" or "text"
func ParseFormat(format string) (LogFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return JSONFormat, true
	case "text":
		return TextFormat, true
	default:
		return TextFormat, false
	}
}

// Configure rebuilds the global logger from level and format names.
// Unknown names keep the current setting.
func Configure(level, format string) *Logger {
	globalMu.Lock()
	defer globalMu.Unlock()
	if lv, ok := ParseLevel(level); ok {
		globalLogger.SetLevel(lv)
	}
	if f, ok := ParseFormat(format); ok {
		globalLogger.SetFormat(f)
	}
	return globalLogger
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// SetGlobalLogger sets the global logger instance
func SetGlobalLogger(l *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = l
}

// Component returns a child of the global logger tagged with name
func Component(name string) *Logger {
	return GetGlobalLogger().WithComponent(name)
}

// Info logs an info message using the global logger
func Info(message string, fields ...Fields) {
	GetGlobalLogger().log(INFO, message, first(fields), nil)
}

// Warn logs a warning message using the global logger
func Warn(message string, fields ...Fields) {
	GetGlobalLogger().log(WARN, message, first(fields), nil)
}

// Error logs an error message using the global logger
func Error(message string, err error, fields ...Fields) {
	GetGlobalLogger().log(ERROR, message, first(fields), err)
}

// Fatal logs a fatal message using the global logger and exits
func Fatal(message string, err error, fields ...Fields) {
	GetGlobalLogger().log(FATAL, message, first(fields), err)
}
