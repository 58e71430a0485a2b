package repl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	if h.maxSize != defaultHistorySize {
		t.Errorf("maxSize = %d, want %d", h.maxSize, defaultHistorySize)
	}
	if !strings.HasSuffix(h.file, filepath.Join(".memkv", "history")) {
		t.Errorf("file = %q", h.file)
	}
}

func TestHistory_Add_MaxSize(t *testing.T) {
	h := NewFileHistory(filepath.Join(t.TempDir(), "h"), 3)

	for _, c := range []string{"cmd1", "cmd2", "cmd3", "cmd4"} {
		h.Add(c)
	}

	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3", h.Len())
	}
	if h.entries[0] != "cmd2" {
		t.Errorf("entries[0] = %q, want %q", h.entries[0], "cmd2")
	}
}

func TestHistory_Add_SkipsRepeat(t *testing.T) {
	h := NewFileHistory(filepath.Join(t.TempDir(), "h"), 10)
	h.Add("ping")
	h.Add("ping")
	h.Add("get a")
	h.Add("ping")

	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3", h.Len())
	}
}

func TestHistory_Get(t *testing.T) {
	h := NewFileHistory(filepath.Join(t.TempDir(), "h"), 10)
	h.Add("first")
	h.Add("second")
	h.Add("third")

	tests := []struct {
		index int
		want  string
	}{
		{0, "third"},
		{1, "second"},
		{2, "first"},
		{3, ""},
		{-1, ""},
	}

	for _, tt := range tests {
		if got := h.Get(tt.index); got != tt.want {
			t.Errorf("Get(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestHistory_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history")

	h := NewFileHistory(path, 10)
	h.Add("set a 1")
	h.Add("get a")
	if err := h.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("history file mode = %o, want 600", perm)
	}

	loaded := NewFileHistory(path, 10)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Len() != 2 || loaded.Get(0) != "get a" || loaded.Get(1) != "set a 1" {
		t.Errorf("loaded entries = %v", loaded.entries)
	}
}

func TestHistory_LoadMissing(t *testing.T) {
	h := NewFileHistory(filepath.Join(t.TempDir(), "missing"), 10)
	if err := h.Load(); err != nil {
		t.Errorf("Load() on missing file error = %v", err)
	}
	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
}

func TestHistory_Add_SkipsBlank(t *testing.T) {
	h := NewFileHistory(filepath.Join(t.TempDir(), "h"), 10)
	h.Add("")
	h.Add("   ")
	h.Add("ping")

	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}
}

func TestHistory_SaveReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")
	if err := os.WriteFile(path, []byte("old entry\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewFileHistory(path, 10)
	h.Add("echo hi")
	if err := h.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "echo hi\n" {
		t.Errorf("history file = %q, want %q", data, "echo hi\n")
	}

	// No temporary files are left behind.
	files, _ := os.ReadDir(dir)
	if len(files) != 1 {
		t.Errorf("dir has %d entries, want only the history file", len(files))
	}
}
