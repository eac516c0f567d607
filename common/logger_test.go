package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		severity Severity
		expected string
		level    slog.Level
	}{
		{SeverityDebug, "DEBUG", slog.LevelDebug},
		{SeverityInfo, "INFO", slog.LevelInfo},
		{SeverityWarning, "WARNING", slog.LevelWarn},
		{SeverityError, "ERROR", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.expected {
				t.Errorf("Severity.String() = %v, want %v", got, tt.expected)
			}
			if got := tt.severity.Level(); got != tt.level {
				t.Errorf("Severity.Level() = %v, want %v", got, tt.level)
			}
		})
	}
}

func TestSlogLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(&buf, LogFormatText, SeverityWarning)

	logger.Debug("debug message")
	logger.Info("info message")
	if buf.Len() != 0 {
		t.Errorf("Debug and Info should not be logged when minLevel is Warning, got: %s", buf.String())
	}

	logger.Logf(SeverityWarning, "seq %d dropped", 12)
	if !strings.Contains(buf.String(), "seq 12 dropped") {
		t.Errorf("Logf output should contain formatted message, got: %s", buf.String())
	}

	buf.Reset()
	logger.Error(nil)
	if buf.Len() != 0 {
		t.Errorf("Error(nil) should not log anything, got: %s", buf.String())
	}
}

func TestSlogLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(&buf, LogFormatText, SeverityInfo).WithComponent("pairing")

	logger.Debug("hidden")
	logger.Warning("stale submission")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("debug message logged below min level: %s", output)
	}
	for _, want := range []string{"level=WARN", "stale submission", "component=pairing"} {
		if !strings.Contains(output, want) {
			t.Errorf("output %q does not contain %q", output, want)
		}
	}
}

func TestSlogLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(&buf, LogFormatJSON, SeverityDebug)

	logger.Error(errors.New("boom"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("json.Unmarshal() error = %v, output %q", err, buf.String())
	}
	if entry["level"] != "ERROR" {
		t.Errorf("level = %v, want ERROR", entry["level"])
	}
	if entry["msg"] != "boom" {
		t.Errorf("msg = %v, want boom", entry["msg"])
	}
	if _, ok := entry["component"]; ok {
		t.Errorf("component attribute present without WithComponent: %v", entry)
	}
}

func TestNoOpLogger(t *testing.T) {
	var logger Logger = NewNoOpLogger()

	// All these should do nothing and not panic
	logger.Log(SeverityInfo, "test")
	logger.Logf(SeverityInfo, "test %s", "formatted")
	logger.Error(errors.New("test error"))
	logger.Debug("debug")
	logger.Info("info")
	logger.Warning("warning")
}
