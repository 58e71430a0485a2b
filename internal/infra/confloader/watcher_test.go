package confloader

import (
	"bytes"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yndnr/memkv-go/internal/telemetry/logger"
)

func newTestWatcher(t *testing.T, opts ...WatcherOption) *Watcher {
	t.Helper()

	w, err := NewWatcher(opts...)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	t.Cleanup(func() { w.Stop() })
	return w
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

// watchedConfig writes a config file, watches it and starts the watcher.
// Changes are delivered on the returned channel.
func watchedConfig(t *testing.T, opts ...WatcherOption) (string, <-chan string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "log:\n  level: info\n")

	w := newTestWatcher(t, opts...)
	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	changed := make(chan string, 16)
	w.OnChange(func(p string) {
		select {
		case changed <- p:
		default:
		}
	})
	w.StartAsync()

	// Give the watcher goroutine time to start receiving.
	time.Sleep(100 * time.Millisecond)
	return path, changed
}

// ============================================================
// Construction
// ============================================================

func TestNewWatcher(t *testing.T) {
	w := newTestWatcher(t)

	if w.fsw == nil {
		t.Error("fsnotify watcher is nil")
	}
	if w.logger == nil {
		t.Error("logger is nil")
	}
	if w.debounce != DefaultDebounce {
		t.Errorf("debounce = %v, want %v", w.debounce, DefaultDebounce)
	}
}

func TestNewWatcher_Options(t *testing.T) {
	var buf bytes.Buffer
	l, err := logger.New(logger.Config{Level: "debug", Format: "text", Output: &buf})
	if err != nil {
		t.Fatalf("logger.New() error = %v", err)
	}

	w := newTestWatcher(t, WithWatcherLogger(l), WithDebounce(0), WithDebounce(-time.Second))
	if w.logger != l {
		t.Error("WithWatcherLogger() not applied")
	}
	if w.debounce != 0 {
		t.Errorf("debounce = %v, want 0 (negative ignored)", w.debounce)
	}
}

func TestWatcher_Watch_NonexistentDir(t *testing.T) {
	w := newTestWatcher(t)

	if err := w.Watch("/nonexistent/path/config.yaml"); err == nil {
		t.Error("Watch() expected error for nonexistent directory")
	}
}

func TestWatcher_StopTwice(t *testing.T) {
	w, err := NewWatcher()
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	w.StartAsync()

	if err := w.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("second Stop() error = %v", err)
	}
}

// ============================================================
// Notifications
// ============================================================

func TestWatcher_OnChange_AllCallbacks(t *testing.T) {
	w := newTestWatcher(t)

	var count atomic.Int32
	for i := 0; i < 3; i++ {
		w.OnChange(func(string) { count.Add(1) })
	}
	w.notifyCallbacks("/etc/memkv/memkv.yaml")

	if got := count.Load(); got != 3 {
		t.Errorf("callbacks run = %d, want 3", got)
	}
}

func TestWatcher_FileChange(t *testing.T) {
	for _, debounce := range []time.Duration{0, 50 * time.Millisecond} {
		t.Run(debounce.String(), func(t *testing.T) {
			path, changed := watchedConfig(t, WithDebounce(debounce))

			writeFile(t, path, "log:\n  level: debug\n")

			select {
			case got := <-changed:
				if filepath.Base(got) != "config.yaml" {
					t.Errorf("changed path = %q, want config.yaml", got)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("no change notification within 2s")
			}
		})
	}
}

func TestWatcher_DebounceCoalescesBurst(t *testing.T) {
	path, changed := watchedConfig(t, WithDebounce(300*time.Millisecond))

	for _, level := range []string{"debug", "warn", "error"} {
		writeFile(t, path, "log:\n  level: "+level+"\n")
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification within 2s")
	}
	select {
	case <-changed:
		t.Error("burst of writes produced more than one notification")
	case <-time.After(600 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	path, changed := watchedConfig(t, WithDebounce(0))

	writeFile(t, filepath.Join(filepath.Dir(path), "other.txt"), "noise")

	select {
	case got := <-changed:
		t.Errorf("notified for unrelated file %q", got)
	case <-time.After(300 * time.Millisecond):
	}
}
