package http

import (
	"log"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
)

// HTTPLogger writes "[LEVEL] [component] message" lines for the preview server
type HTTPLogger struct {
	component string
	verbose   bool
	level     entities.LogLevel
}

// NewHTTPLogger creates a new HTTP logger instance
func NewHTTPLogger(component string, verbose bool) *HTTPLogger {
	return NewHTTPLoggerWithLevel(component, verbose, entities.LogLevelInfo)
}

// NewHTTPLoggerWithLevel creates a new HTTP logger instance with specific level
func NewHTTPLoggerWithLevel(component string, verbose bool, level entities.LogLevel) *HTTPLogger {
	if verbose && level != entities.LogLevelDebug {
		level = entities.LogLevelDebug
	}
	return &HTTPLogger{
		component: component,
		verbose:   verbose,
		level:     level,
	}
}

var levelOrder = map[entities.LogLevel]int{
	entities.LogLevelDebug: 0,
	entities.LogLevelInfo:  1,
	entities.LogLevelWarn:  2,
	entities.LogLevelError: 3,
}

func (l *HTTPLogger) shouldLog(msgLevel entities.LogLevel) bool {
	return levelOrder[msgLevel] >= levelOrder[l.level]
}

func (l *HTTPLogger) logf(tag string, msg string, args []interface{}) {
	log.Printf("["+tag+"] [%s] "+msg, append([]interface{}{l.component}, args...)...)
}

// Debug logs debug messages
func (l *HTTPLogger) Debug(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelDebug) {
		l.logf("DEBUG", msg, args)
	}
}

// Info logs informational messages
func (l *HTTPLogger) Info(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelInfo) {
		l.logf("INFO", msg, args)
	}
}

// Warn logs warning messages
func (l *HTTPLogger) Warn(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelWarn) {
		l.logf("WARN", msg, args)
	}
}

// Error logs error messages
func (l *HTTPLogger) Error(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelError) {
		l.logf("ERROR", msg, args)
	}
}

// Success logs success messages at info level
func (l *HTTPLogger) Success(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelInfo) {
		l.logf("SUCCESS", msg, args)
	}
}

// SetLevel updates the logging level
func (l *HTTPLogger) SetLevel(level entities.LogLevel) {
	l.level = level
}
