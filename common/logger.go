package common

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Severity represents log message severity levels
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "DEBUG"
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Level maps the severity onto the equivalent slog level.
func (s Severity) Level() slog.Level {
	switch s {
	case SeverityDebug:
		return slog.LevelDebug
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// Logger is the logging contract of the decoder stages. Every stage holds
// one in its Log field; the default discards everything.
type Logger interface {
	Log(severity Severity, msg string)
	Logf(severity Severity, format string, args ...interface{})
	Error(err error)
	Debug(msg string)
	Info(msg string)
	Warning(msg string)
}

// LogFormat selects the slog handler used by NewSlogLogger.
type LogFormat int

const (
	LogFormatText LogFormat = iota
	LogFormatJSON
)

// SlogLogger adapts a *slog.Logger to the Logger interface. Every message
// carries a "component" attribute naming the decoder stage that emitted it.
type SlogLogger struct {
	logger    *slog.Logger
	component string
}

// NewSlogLogger creates a slog backed logger writing to w.
func NewSlogLogger(w io.Writer, format LogFormat, minLevel Severity) *SlogLogger {
	opts := &slog.HandlerOptions{Level: minLevel.Level()}
	var h slog.Handler
	switch format {
	case LogFormatJSON:
		h = slog.NewJSONHandler(w, opts)
	default:
		h = slog.NewTextHandler(w, opts)
	}
	return &SlogLogger{logger: slog.New(h)}
}

// WithComponent returns a copy of the logger tagged with the given component.
func (l *SlogLogger) WithComponent(component string) *SlogLogger {
	return &SlogLogger{logger: l.logger, component: component}
}

func (l *SlogLogger) Log(severity Severity, msg string) {
	if l.component != "" {
		l.logger.Log(context.Background(), severity.Level(), msg, "component", l.component)
		return
	}
	l.logger.Log(context.Background(), severity.Level(), msg)
}

func (l *SlogLogger) Logf(severity Severity, format string, args ...interface{}) {
	l.Log(severity, fmt.Sprintf(format, args...))
}

// Error logs err at SeverityError. A nil error is ignored.
func (l *SlogLogger) Error(err error) {
	if err != nil {
		l.Log(SeverityError, err.Error())
	}
}

func (l *SlogLogger) Debug(msg string)   { l.Log(SeverityDebug, msg) }
func (l *SlogLogger) Info(msg string)    { l.Log(SeverityInfo, msg) }
func (l *SlogLogger) Warning(msg string) { l.Log(SeverityWarning, msg) }

// NoOpLogger discards everything.
type NoOpLogger struct{}

func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (l *NoOpLogger) Log(severity Severity, msg string)                          {}
func (l *NoOpLogger) Logf(severity Severity, format string, args ...interface{}) {}
func (l *NoOpLogger) Error(err error)                                            {}
func (l *NoOpLogger) Debug(msg string)                                           {}
func (l *NoOpLogger) Info(msg string)                                            {}
func (l *NoOpLogger) Warning(msg string)                                         {}
