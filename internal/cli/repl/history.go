package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const defaultHistorySize = 1000

// History is the list of lines entered in the REPL, oldest first, bounded
// to a maximum size and persisted one line per entry.
type History struct {
	entries []string
	maxSize int
	file    string
}

// NewHistory returns a History persisted at ~/.memkv/history.
func NewHistory() *History {
	home, _ := os.UserHomeDir()
	return NewFileHistory(filepath.Join(home, ".memkv", "history"), defaultHistorySize)
}

// NewFileHistory returns a History persisted at path keeping at most
// maxSize entries. Non-positive sizes use the default.
func NewFileHistory(path string, maxSize int) *History {
	if maxSize <= 0 {
		maxSize = defaultHistorySize
	}
	return &History{maxSize: maxSize, file: path}
}

// Add records a line. Blank lines and a repeat of the latest entry are
// dropped.
func (h *History) Add(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return
	}
	h.entries = append(h.entries, line)
	if over := len(h.entries) - h.maxSize; over > 0 {
		h.entries = append(h.entries[:0], h.entries[over:]...)
	}
}

// Get returns the entry at index counting back from the latest (0), or ""
// when out of range.
func (h *History) Get(index int) string {
	if index < 0 || index >= len(h.entries) {
		return ""
	}
	return h.entries[len(h.entries)-1-index]
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Load appends the persisted entries. A missing file is not an error.
func (h *History) Load() error {
	f, err := os.Open(h.file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		h.Add(sc.Text())
	}
	return sc.Err()
}

// Save writes the entries through a temporary file renamed over the
// history file, so an interrupted save leaves the previous history intact.
// The file is readable by the owner only.
func (h *History) Save() error {
	dir := filepath.Dir(h.file)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".history-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, e := range h.entries {
		w.WriteString(e)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), h.file)
}
