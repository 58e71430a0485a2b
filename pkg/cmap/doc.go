// Package cmap provides a concurrent map sharded by key hash.
//
// Keys are spread over a power-of-two number of shards with MurmurHash3;
// each shard is guarded by its own RWMutex, so operations on keys in
// different shards never contend.
//
// Usage:
//
//	m := cmap.New[string, []byte](cmap.WithShardCount(32))
//	m.Set("key", value)
//	val, ok := m.Get("key")
//
// Thread Safety:
//
// All operations are safe for concurrent use. Get uses RLock, Set uses Lock.
// Len visits shards one at a time and is therefore only a snapshot.
package cmap
