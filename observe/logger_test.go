package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

// TestLogger_IncludesComponentFields verifies With-scoped fields are present in log output.
func TestLogger_IncludesComponentFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	componentLogger := logger.With(
		Field{Key: "component", Value: "registrar"},
		Field{Key: "module", Value: "snippets"},
	)
	componentLogger.Info(context.Background(), "test message")

	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log output as JSON: %v\nOutput: %s", err, buf.String())
	}

	if v, ok := logEntry["component"].(string); !ok || v != "registrar" {
		t.Errorf("expected component='registrar', got %v", logEntry["component"])
	}
	if v, ok := logEntry["module"].(string); !ok || v != "snippets" {
		t.Errorf("expected module='snippets', got %v", logEntry["module"])
	}
	if v, ok := logEntry["msg"].(string); !ok || v != "test message" {
		t.Errorf("expected msg='test message', got %v", logEntry["msg"])
	}
}

// TestLogger_WithDoesNotMutateParent verifies scoped loggers leave the parent untouched.
func TestLogger_WithDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	_ = logger.With(Field{Key: "component", Value: "child"})
	logger.Info(context.Background(), "parent message")

	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log output as JSON: %v", err)
	}

	if _, present := logEntry["component"]; present {
		t.Errorf("parent logger should not carry child fields, got %v", logEntry["component"])
	}
}

// TestLogger_LevelFilter verifies entries below the configured level are dropped.
func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("warn", &buf)

	ctx := context.Background()
	logger.Debug(ctx, "dropped debug")
	logger.Info(ctx, "dropped info")
	logger.Warn(ctx, "kept warn")
	logger.Error(ctx, "kept error")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "kept warn") {
		t.Errorf("first line should be the warn entry, got %s", lines[0])
	}
	if !strings.Contains(lines[1], "kept error") {
		t.Errorf("second line should be the error entry, got %s", lines[1])
	}
}

// TestLogger_RedactsSensitiveFields verifies credential-bearing keys are masked.
func TestLogger_RedactsSensitiveFields(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{name: "connection string", key: "connection_string"},
		{name: "api key", key: "api_key"},
		{name: "token", key: "token"},
		{name: "password", key: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLoggerWithWriter("info", &buf)

			logger.Info(context.Background(), "redaction test",
				Field{Key: tt.key, Value: "super-secret-value"},
			)

			var logEntry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
				t.Fatalf("failed to parse log output as JSON: %v", err)
			}

			if v, ok := logEntry[tt.key].(string); !ok || v != "[REDACTED]" {
				t.Errorf("expected %s='[REDACTED]', got %v", tt.key, logEntry[tt.key])
			}
			if strings.Contains(buf.String(), "super-secret-value") {
				t.Errorf("raw secret leaked into log output: %s", buf.String())
			}
		})
	}
}

// TestLogger_RedactsScopedFields verifies redaction also applies to With fields.
func TestLogger_RedactsScopedFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	scoped := logger.With(Field{Key: "connection_string", Value: "AccountKey=abc"})
	scoped.Info(context.Background(), "scoped redaction")

	if strings.Contains(buf.String(), "AccountKey") {
		t.Errorf("raw secret leaked into log output: %s", buf.String())
	}
}

// TestLogger_IncludesRequestID verifies the context request ID lands in the entry.
func TestLogger_IncludesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	ctx := WithRequestID(context.Background(), "req-42")
	logger.Info(ctx, "request scoped")

	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log output as JSON: %v", err)
	}

	if v, ok := logEntry["request_id"].(string); !ok || v != "req-42" {
		t.Errorf("expected request_id='req-42', got %v", logEntry["request_id"])
	}
}

// TestLogger_StandardEntryShape verifies timestamp, level and msg are always present.
func TestLogger_StandardEntryShape(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("debug", &buf)

	logger.Debug(context.Background(), "shape check")

	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log output as JSON: %v", err)
	}

	for _, key := range []string{"timestamp", "level", "msg"} {
		if _, present := logEntry[key]; !present {
			t.Errorf("expected %q key in log entry, got %v", key, logEntry)
		}
	}
	if v := logEntry["level"]; v != "debug" {
		t.Errorf("expected level='debug', got %v", v)
	}
}

// TestParseLogLevel verifies level parsing including the default.
func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{input: "debug", want: LevelDebug},
		{input: "info", want: LevelInfo},
		{input: "warn", want: LevelWarn},
		{input: "error", want: LevelError},
		{input: "unknown", want: LevelInfo},
		{input: "", want: LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
