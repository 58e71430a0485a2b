// Package memory provides the in-memory key-value store backing memkv.
//
// Keys and values are opaque byte strings. The store is volatile: nothing
// is persisted and there is no expiry. Locking is sharded so that requests
// on keys in different shards proceed concurrently.
package memory
