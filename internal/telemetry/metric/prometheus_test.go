package metric

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func scrape(t *testing.T, h http.Handler) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	return string(body)
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if r.registry == nil {
		t.Error("registry field is nil")
	}
	if r.ConnectionsActive == nil {
		t.Error("ConnectionsActive is nil")
	}
	if r.CommandsTotal == nil {
		t.Error("CommandsTotal is nil")
	}
	if r.CommandDuration == nil {
		t.Error("CommandDuration is nil")
	}
}

func TestGlobal(t *testing.T) {
	r1 := Global()
	r2 := Global()
	if r1 != r2 {
		t.Error("Global() should return the same instance")
	}
}

func TestHandler(t *testing.T) {
	h := Global().Handler()
	if h == nil {
		t.Fatal("Handler() returned nil")
	}

	body := scrape(t, h)

	// Check for Go runtime metrics (from GoCollector)
	if !strings.Contains(body, "go_goroutines") {
		t.Error("expected go_goroutines metric")
	}
}

func TestConnectionMetrics(t *testing.T) {
	r := NewRegistry()

	r.ConnectionOpened()
	r.ConnectionOpened()
	r.ConnectionClosed()

	body := scrape(t, r.Handler())

	if !strings.Contains(body, "memkv_connections_active 1") {
		t.Error("expected memkv_connections_active 1")
	}
	if !strings.Contains(body, "memkv_connections_total 2") {
		t.Error("expected memkv_connections_total 2")
	}
}

func TestCommandMetrics(t *testing.T) {
	r := NewRegistry()

	r.RecordCommand("GET", "bulk")
	r.RecordCommand("GET", "bulk")
	r.RecordCommand("GET", "nil")
	r.RecordCommand("SET", "simple")
	r.ObserveCommandDuration("GET", 0.0001)
	r.ObserveCommandDuration("SET", 0.0002)

	body := scrape(t, r.Handler())

	if !strings.Contains(body, `memkv_commands_total{command="GET",result="bulk"} 2`) {
		t.Error("expected memkv_commands_total for GET bulk")
	}
	if !strings.Contains(body, `memkv_commands_total{command="GET",result="nil"} 1`) {
		t.Error("expected memkv_commands_total for GET nil")
	}
	if !strings.Contains(body, `memkv_commands_total{command="SET",result="simple"} 1`) {
		t.Error("expected memkv_commands_total for SET simple")
	}
	if !strings.Contains(body, `memkv_command_duration_seconds_count{command="GET"} 1`) {
		t.Error("expected memkv_command_duration_seconds_count for GET")
	}
}

func TestRejectionMetrics(t *testing.T) {
	r := NewRegistry()

	r.IncProtocolErrors()
	r.IncRateLimited()
	r.IncRateLimited()

	body := scrape(t, r.Handler())

	if !strings.Contains(body, "memkv_protocol_errors_total 1") {
		t.Error("expected memkv_protocol_errors_total 1")
	}
	if !strings.Contains(body, "memkv_rate_limited_total 2") {
		t.Error("expected memkv_rate_limited_total 2")
	}
}

type fixedLen int

func (n fixedLen) Len() int { return int(n) }

func TestStoreCollector(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(NewStoreCollector(fixedLen(42))); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	body := scrape(t, r.Handler())
	if !strings.Contains(body, "memkv_store_keys 42") {
		t.Error("expected memkv_store_keys 42")
	}

	// Registering the same collector twice is rejected.
	if err := r.Register(NewStoreCollector(fixedLen(1))); err == nil {
		t.Error("Register() duplicate collector should fail")
	}
}
