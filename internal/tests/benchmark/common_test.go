package benchmark

import (
	"context"
	"fmt"
	"runtime"
	"testing"
	"time"

	"github.com/yndnr/memkv-go/internal/core/service"
	"github.com/yndnr/memkv-go/internal/server/redisserver"
	"github.com/yndnr/memkv-go/internal/storage/memory"
	"github.com/yndnr/memkv-go/internal/telemetry/metric"
)

// KeyCounts defines store sizes for benchmarking.
var KeyCounts = []int{1000, 10000, 100000}

// ValueSizes defines payload sizes in bytes.
var ValueSizes = []int{16, 1024, 64 * 1024}

func benchKey(i int) []byte {
	return []byte(fmt.Sprintf("key:%08d", i))
}

func benchValue(size int) []byte {
	v := make([]byte, size)
	for i := range v {
		v[i] = byte('a' + i%26)
	}
	return v
}

// prefillStore writes count keys with values of size bytes.
func prefillStore(store *memory.Store, count, size int) [][]byte {
	keys := make([][]byte, count)
	value := benchValue(size)
	for i := 0; i < count; i++ {
		keys[i] = benchKey(i)
		store.Set(keys[i], value)
	}
	return keys
}

// startServer runs a loopback server for the duration of the benchmark.
func startServer(b *testing.B, store *memory.Store) string {
	b.Helper()

	srv := redisserver.New(&redisserver.Config{Address: "127.0.0.1:0"},
		service.NewExecutor(store), nil, metric.NewRegistry())
	if err := srv.Start(context.Background()); err != nil {
		b.Fatalf("Start() error = %v", err)
	}
	b.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	})
	return srv.Addr().String()
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

// runWithKeyCounts runs a benchmark function with various store sizes.
func runWithKeyCounts(b *testing.B, counts []int, benchFn func(b *testing.B, count int)) {
	for _, count := range counts {
		b.Run(fmt.Sprintf("keys_%d", count), func(b *testing.B) {
			benchFn(b, count)
		})
	}
}
