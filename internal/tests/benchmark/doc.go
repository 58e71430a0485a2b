// Package benchmark provides performance benchmarks for memkv.
//
// Run benchmarks with:
//
//	go test -bench=. -benchmem ./internal/tests/benchmark/...
//
// Compare shard counts under contention:
//
//	go test -bench=BenchmarkStoreParallel -cpu=1,4,16 ./internal/tests/benchmark/...
//
// Compare results:
//
//	benchstat old.txt new.txt
package benchmark
