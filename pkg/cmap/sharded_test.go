package cmap

import (
	"fmt"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	m := New[string, int]()
	if m == nil {
		t.Fatal("New() returned nil")
	}
	if m.ShardCount() != DefaultShardCount {
		t.Errorf("shard count = %d, want %d", m.ShardCount(), DefaultShardCount)
	}
}

func TestWithShardCount(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{0, DefaultShardCount},  // invalid → default
		{-1, DefaultShardCount}, // invalid → default
		{3, DefaultShardCount},  // not power of 2 → default
		{1, 1},
		{2, 2},
		{8, 8},
		{32, 32},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("shards=%d", tt.input), func(t *testing.T) {
			m := New[string, int](WithShardCount(tt.input))
			if m.ShardCount() != tt.expected {
				t.Errorf("WithShardCount(%d) shard count = %d, want %d",
					tt.input, m.ShardCount(), tt.expected)
			}
		})
	}
}

func TestSetAndGet(t *testing.T) {
	m := New[string, int]()

	m.Set("key1", 100)
	m.Set("key2", 200)

	val, ok := m.Get("key1")
	if !ok || val != 100 {
		t.Errorf("Get(key1) = (%d, %v), want (100, true)", val, ok)
	}

	val, ok = m.Get("key2")
	if !ok || val != 200 {
		t.Errorf("Get(key2) = (%d, %v), want (200, true)", val, ok)
	}

	val, ok = m.Get("nonexistent")
	if ok {
		t.Errorf("Get(nonexistent) = (%d, %v), want (0, false)", val, ok)
	}
}

func TestOverwrite(t *testing.T) {
	m := New[string, string]()

	m.Set("key", "v1")
	m.Set("key", "v2")

	val, _ := m.Get("key")
	if val != "v2" {
		t.Errorf("Get(key) = %q, want %q", val, "v2")
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestLen(t *testing.T) {
	m := New[string, int](WithShardCount(4))

	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
	for i := 0; i < 100; i++ {
		m.Set(fmt.Sprintf("key%d", i), i)
	}
	if m.Len() != 100 {
		t.Errorf("Len() = %d, want 100", m.Len())
	}
}

func TestNamedStringKey(t *testing.T) {
	type key string
	m := New[key, int]()
	m.Set(key("a"), 1)
	if v, ok := m.Get(key("a")); !ok || v != 1 {
		t.Errorf("Get(a) = (%d, %v), want (1, true)", v, ok)
	}
}

func TestShardDistribution(t *testing.T) {
	m := New[string, int](WithShardCount(8))
	for i := 0; i < 1000; i++ {
		m.Set(fmt.Sprintf("key:%d", i), i)
	}

	for i, s := range m.shards {
		if len(s.items) == 0 {
			t.Errorf("shard %d is empty after 1000 inserts", i)
		}
	}
}

func TestConcurrentAccess(t *testing.T) {
	m := New[string, int]()
	var wg sync.WaitGroup

	const goroutines = 50
	const ops = 200

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < ops; j++ {
				key := fmt.Sprintf("key-%d-%d", id, j%10)
				m.Set(key, j)
				m.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if m.Len() != goroutines*10 {
		t.Errorf("Len() = %d, want %d", m.Len(), goroutines*10)
	}
}
