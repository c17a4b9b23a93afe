package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log message
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name; unknown names fall back to InfoLevel.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DebugLevel
	case "INFO":
		return InfoLevel
	case "WARN", "WARNING":
		return WarnLevel
	case "ERROR":
		return ErrorLevel
	case "FATAL":
		return FatalLevel
	default:
		return InfoLevel
	}
}

// Format is the log output format
type Format int

const (
	TextFormat Format = iota
	JSONFormat
)

// ParseFormat parses a format name; unknown names fall back to TextFormat.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return JSONFormat
	}
	return TextFormat
}

// Fields carries structured context for a log entry
type Fields map[string]any

type entry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Component string `json:"component,omitempty"`
	Fields    Fields `json:"fields,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Logger is a leveled structured logger
type Logger struct {
	mu        sync.Mutex
	level     Level
	format    Format
	out       io.Writer
	component string
}

// New creates a logger writing to out (os.Stdout when nil)
func New(level Level, format Format, out io.Writer) *Logger {
	if out == nil {
		out = os.Stdout
	}
	return &Logger{level: level, format: format, out: out}
}

// WithComponent returns a copy of the logger tagged with a component name
func (l *Logger) WithComponent(component string) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &Logger{level: l.level, format: l.format, out: l.out, component: component}
}

// SetLevel sets the minimum level the logger emits
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) write(level Level, msg string, fields Fields, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	e := entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level.String(),
		Message:   msg,
		Component: l.component,
		Fields:    fields,
	}
	if err != nil {
		e.Error = err.Error()
	}

	var line string
	if l.format == JSONFormat {
		b, mErr := json.Marshal(e)
		if mErr != nil {
			line = fmt.Sprintf("{\"level\":\"ERROR\",\"message\":\"log marshal failed: %v\"}\n", mErr)
		} else {
			line = string(b) + "\n"
		}
	} else {
		line = formatText(e)
	}
	l.out.Write([]byte(line))

	if level == FatalLevel {
		os.Exit(1)
	}
}

func formatText(e entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Timestamp, e.Level)
	if e.Component != "" {
		fmt.Fprintf(&b, " [%s]", e.Component)
	}
	b.WriteByte(' ')
	b.WriteString(e.Message)
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for k, v := range e.Fields {
			parts = append(parts, fmt.Sprintf("%s=%v", k, v))
		}
		fmt.Fprintf(&b, " fields={%s}", strings.Join(parts, ", "))
	}
	if e.Error != "" {
		fmt.Fprintf(&b, " error=%s", e.Error)
	}
	b.WriteByte('\n')
	return b.String()
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...Fields) {
	l.write(DebugLevel, msg, first(fields), nil)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...Fields) {
	l.write(InfoLevel, msg, first(fields), nil)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...Fields) {
	l.write(WarnLevel, msg, first(fields), nil)
}

// Error logs an error message
func (l *Logger) Error(msg string, err error, fields ...Fields) {
	l.write(ErrorLevel, msg, first(fields), err)
}

// Fatal logs a fatal message and exits the program
func (l *Logger) Fatal(msg string, err error, fields ...Fields) {
	l.write(FatalLevel, msg, first(fields), err)
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...any) {
	l.write(DebugLevel, fmt.Sprintf(format, args...), nil, nil)
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...any) {
	l.write(InfoLevel, fmt.Sprintf(format, args...), nil, nil)
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, args ...any) {
	l.write(WarnLevel, fmt.Sprintf(format, args...), nil, nil)
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...any) {
	l.write(ErrorLevel, fmt.Sprintf(format, args...), nil, nil)
}

func first(fields []Fields) Fields {
	if len(fields) > 0 {
		return fields[0]
	}
	return nil
}
