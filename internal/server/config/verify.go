package config

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/yndnr/memkv-go/internal/telemetry/logger"
	"github.com/yndnr/memkv-go/pkg/resp"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyStore(&cfg.Store); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyServer(cfg *ServerSection) error {
	if err := verifyAddr("server.redis.addr", cfg.Redis.Addr); err != nil {
		return err
	}

	durations := []struct {
		name string
		d    time.Duration
	}{
		{"server.redis.idle_timeout", cfg.Redis.IdleTimeout},
		{"server.redis.read_timeout", cfg.Redis.ReadTimeout},
		{"server.redis.write_timeout", cfg.Redis.WriteTimeout},
		{"server.shutdown_timeout", cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		if d.d < 0 {
			return fmt.Errorf("%s must not be negative", d.name)
		}
	}

	limits := []struct {
		name string
		n    int
		max  int // 0 means unbounded
	}{
		{"server.redis.rate_limit", cfg.Redis.RateLimit, 0},
		{"server.redis.max_bulk_len", cfg.Redis.MaxBulkLen, resp.DefaultMaxBulkLen},
		{"server.redis.max_array_len", cfg.Redis.MaxArrayLen, resp.DefaultMaxArrayLen},
	}
	for _, l := range limits {
		if l.n < 0 {
			return fmt.Errorf("%s must not be negative", l.name)
		}
		if l.max > 0 && l.n > l.max {
			return fmt.Errorf("%s must not exceed %d", l.name, l.max)
		}
	}

	if cfg.HTTP.Enabled {
		if err := verifyAddr("server.http.addr", cfg.HTTP.Addr); err != nil {
			return err
		}
		if cfg.HTTP.Addr == cfg.Redis.Addr {
			return errors.New("server.http.addr conflicts with server.redis.addr")
		}
	}
	return nil
}

func verifyStore(cfg *StoreSection) error {
	n := cfg.Shards
	if n <= 0 || n&(n-1) != 0 {
		return fmt.Errorf("store.shards must be a positive power of two, got %d", n)
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	if !logger.ValidLevel(cfg.Level) {
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Level)
	}
	if !logger.ValidFormat(cfg.Format) {
		return fmt.Errorf("log.format %q is not one of json, text", cfg.Format)
	}
	if cfg.MaxSizeMB < 0 || cfg.MaxBackups < 0 || cfg.MaxAgeDays < 0 {
		return errors.New("log rotation settings must not be negative")
	}
	return nil
}

func verifyAddr(name, addr string) error {
	if addr == "" {
		return fmt.Errorf("%s is required", name)
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
