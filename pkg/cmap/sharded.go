package cmap

import (
	"sync"

	"github.com/spaolacci/murmur3"
)

// DefaultShardCount is the default number of shards.
const DefaultShardCount = 16

// Map is a concurrent-safe sharded map with string-like keys.
type Map[K ~string, V any] struct {
	shards    []*shard[K, V]
	shardMask uint64
}

type shard[K ~string, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

type options struct {
	shardCount int
}

// Option configures a Map.
type Option func(*options)

// WithShardCount sets the number of shards. Values that are not a positive
// power of two fall back to DefaultShardCount.
func WithShardCount(n int) Option {
	return func(o *options) {
		o.shardCount = n
	}
}

// New creates a new sharded map.
func New[K ~string, V any](opts ...Option) *Map[K, V] {
	o := options{shardCount: DefaultShardCount}
	for _, opt := range opts {
		opt(&o)
	}

	n := o.shardCount
	if n <= 0 || n&(n-1) != 0 {
		n = DefaultShardCount
	}

	m := &Map[K, V]{
		shards:    make([]*shard[K, V], n),
		shardMask: uint64(n - 1),
	}
	for i := range m.shards {
		m.shards[i] = &shard[K, V]{items: make(map[K]V)}
	}
	return m
}

func (m *Map[K, V]) getShard(key K) *shard[K, V] {
	return m.shards[murmur3.Sum64([]byte(key))&m.shardMask]
}

// Get retrieves a value by key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	s := m.getShard(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.items[key]
	return val, ok
}

// Set stores a key-value pair, replacing any previous value.
func (m *Map[K, V]) Set(key K, value V) {
	s := m.getShard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
}

// Len returns the total number of items.
func (m *Map[K, V]) Len() int {
	n := 0
	for _, s := range m.shards {
		s.mu.RLock()
		n += len(s.items)
		s.mu.RUnlock()
	}
	return n
}

// ShardCount returns the number of shards.
func (m *Map[K, V]) ShardCount() int {
	return len(m.shards)
}
