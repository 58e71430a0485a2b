package memory

import (
	"github.com/yndnr/memkv-go/pkg/cmap"
)

// Store maps keys to values. It is safe for concurrent use; a value
// returned by Get is never mutated by the store afterwards.
type Store struct {
	data *cmap.Map[string, []byte]
}

// Option configures the Store.
type Option func(*options)

type options struct {
	shardCount int
}

// WithShardCount sets the number of lock shards. It must be a power of two;
// other values fall back to cmap.DefaultShardCount.
func WithShardCount(n int) Option {
	return func(o *options) {
		o.shardCount = n
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	o := options{shardCount: cmap.DefaultShardCount}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store{
		data: cmap.New[string, []byte](cmap.WithShardCount(o.shardCount)),
	}
}

// Get returns the value stored at key and whether it exists.
func (s *Store) Get(key []byte) ([]byte, bool) {
	return s.data.Get(string(key))
}

// Set stores a copy of value at key, replacing any previous value.
func (s *Store) Set(key, value []byte) {
	v := make([]byte, len(value))
	copy(v, value)
	s.data.Set(string(key), v)
}

// Len returns the number of keys.
func (s *Store) Len() int {
	return s.data.Len()
}
