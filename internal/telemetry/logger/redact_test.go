package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func logOne(t *testing.T, args ...any) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	l.Info("test", args...)

	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}
	return logEntry
}

func TestRedactSensitive_Keys(t *testing.T) {
	tests := []struct {
		key      string
		value    any
		redacted bool
	}{
		{"value", "hunter2", true},
		{"value", []byte("binary payload"), true},
		{"password", "p", true},
		{"client_secret", "s", true},
		{"Authorization", "Bearer x", true},
		{"value", "", false},
		{"command", "SET", false},
		{"remote_addr", "127.0.0.1:5000", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			entry := logOne(t, tt.key, tt.value)
			got := entry[tt.key]
			if tt.redacted {
				if got != redactedValue {
					t.Errorf("%s = %v, want %q", tt.key, got, redactedValue)
				}
				return
			}
			if got == redactedValue {
				t.Errorf("%s should not be redacted", tt.key)
			}
		})
	}
}

func TestRedactSensitive_Group(t *testing.T) {
	entry := logOne(t, slog.Group("request", "command", "SET", "value", "v"))

	group, ok := entry["request"].(map[string]any)
	if !ok {
		t.Fatalf("request group missing: %v", entry)
	}
	if group["value"] != redactedValue {
		t.Errorf("request.value = %v, want %q", group["value"], redactedValue)
	}
	if group["command"] != "SET" {
		t.Errorf("request.command = %v, want SET", group["command"])
	}
}

func TestIsSensitiveKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"value", true},
		{"VALUE", true},
		{"api_token", true},
		{"conn_id", false},
		{"addr", false},
	}

	for _, tt := range tests {
		if got := IsSensitiveKey(tt.key); got != tt.want {
			t.Errorf("IsSensitiveKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}
