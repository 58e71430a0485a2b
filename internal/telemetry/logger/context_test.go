package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestWithLogger_FromContext(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{
		Level:  "info",
		Format: "json",
		Output: &buf,
	}

	l, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := context.Background()
	ctx = WithLogger(ctx, l)

	retrieved := FromContext(ctx)
	if retrieved == nil {
		t.Fatal("FromContext returned nil")
	}

	retrieved.Info("test message")

	if buf.Len() == 0 {
		t.Error("Logger from context should produce output")
	}
}

func TestFromContext_Default(t *testing.T) {
	ctx := context.Background()

	// Should return default logger when none is set
	l := FromContext(ctx)
	if l == nil {
		t.Error("FromContext should return default logger, got nil")
	}
}

func TestWithConnID(t *testing.T) {
	ctx := WithConnID(context.Background(), "01J9ZQ4M5N6P7Q8R9S0T1V2W3X")

	if got := ConnIDFromContext(ctx); got != "01J9ZQ4M5N6P7Q8R9S0T1V2W3X" {
		t.Errorf("ConnIDFromContext() = %q", got)
	}
	if got := ConnIDFromContext(context.Background()); got != "" {
		t.Errorf("ConnIDFromContext(empty) = %q, want empty string", got)
	}
}

func TestL(t *testing.T) {
	tests := []struct {
		name   string
		connID string
	}{
		{"with conn id", "conn-1"},
		{"without conn id", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l, err := New(Config{Level: "info", Format: "json", Output: &buf})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			ctx := WithLogger(context.Background(), l)
			if tt.connID != "" {
				ctx = WithConnID(ctx, tt.connID)
			}
			L(ctx).Info("test message")

			var logEntry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
				t.Fatalf("Failed to parse JSON log: %v", err)
			}

			got, ok := logEntry["conn_id"]
			if tt.connID == "" {
				if ok {
					t.Error("Should not have conn_id when not set")
				}
				return
			}
			if got != tt.connID {
				t.Errorf("conn_id = %v, want %q", got, tt.connID)
			}
		})
	}
}
