package config

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Redis.Addr != DefaultRedisAddr {
		t.Errorf("Redis.Addr = %q, want %q", cfg.Server.Redis.Addr, DefaultRedisAddr)
	}
	if cfg.Server.HTTP.Enabled {
		t.Error("HTTP should be disabled by default")
	}
	if cfg.Server.Redis.IdleTimeout != 0 || cfg.Server.Redis.ReadTimeout != 0 || cfg.Server.Redis.WriteTimeout != 0 {
		t.Error("timeouts should be disabled by default")
	}
	if cfg.Server.Redis.RateLimit != 0 {
		t.Errorf("RateLimit = %d, want 0", cfg.Server.Redis.RateLimit)
	}
	if cfg.Server.Redis.MaxArrayLen != DefaultMaxArrayLen {
		t.Errorf("Redis.MaxArrayLen = %d, want %d", cfg.Server.Redis.MaxArrayLen, DefaultMaxArrayLen)
	}
	if cfg.Store.Shards != DefaultStoreShards {
		t.Errorf("Store.Shards = %d, want %d", cfg.Store.Shards, DefaultStoreShards)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
	if cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, DefaultLogFormat)
	}

	if err := Verify(cfg); err != nil {
		t.Errorf("Verify(Default()) error = %v", err)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*ServerConfig)
		wantErr string
	}{
		{
			name:   "valid with http",
			modify: func(c *ServerConfig) { c.Server.HTTP.Enabled = true },
		},
		{
			name:    "missing redis addr",
			modify:  func(c *ServerConfig) { c.Server.Redis.Addr = "" },
			wantErr: "server.redis.addr is required",
		},
		{
			name:    "redis addr without port",
			modify:  func(c *ServerConfig) { c.Server.Redis.Addr = "localhost" },
			wantErr: "server.redis.addr",
		},
		{
			name:    "negative idle timeout",
			modify:  func(c *ServerConfig) { c.Server.Redis.IdleTimeout = -time.Second },
			wantErr: "server.redis.idle_timeout",
		},
		{
			name:    "negative rate limit",
			modify:  func(c *ServerConfig) { c.Server.Redis.RateLimit = -1 },
			wantErr: "server.redis.rate_limit",
		},
		{
			name:    "negative max bulk len",
			modify:  func(c *ServerConfig) { c.Server.Redis.MaxBulkLen = -1 },
			wantErr: "server.redis.max_bulk_len",
		},
		{
			name:    "max bulk len above codec ceiling",
			modify:  func(c *ServerConfig) { c.Server.Redis.MaxBulkLen = math.MaxInt },
			wantErr: "server.redis.max_bulk_len must not exceed",
		},
		{
			name:   "max bulk len at ceiling",
			modify: func(c *ServerConfig) { c.Server.Redis.MaxBulkLen = 512 * 1024 * 1024 },
		},
		{
			name:    "max array len above codec ceiling",
			modify:  func(c *ServerConfig) { c.Server.Redis.MaxArrayLen = 1025 },
			wantErr: "server.redis.max_array_len must not exceed",
		},
		{
			name: "http addr conflicts",
			modify: func(c *ServerConfig) {
				c.Server.HTTP.Enabled = true
				c.Server.HTTP.Addr = c.Server.Redis.Addr
			},
			wantErr: "conflicts",
		},
		{
			name: "http disabled ignores bad addr",
			modify: func(c *ServerConfig) {
				c.Server.HTTP.Addr = "bogus"
			},
		},
		{
			name:    "shards not power of two",
			modify:  func(c *ServerConfig) { c.Store.Shards = 12 },
			wantErr: "store.shards",
		},
		{
			name:    "unknown log level",
			modify:  func(c *ServerConfig) { c.Log.Level = "trace" },
			wantErr: "log.level",
		},
		{
			name:    "unknown log format",
			modify:  func(c *ServerConfig) { c.Log.Format = "xml" },
			wantErr: "log.format",
		},
		{
			name:    "negative log rotation",
			modify:  func(c *ServerConfig) { c.Log.MaxBackups = -1 },
			wantErr: "rotation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := Verify(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Verify() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Verify() error = nil, want %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Verify() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestVerify_Nil(t *testing.T) {
	if err := Verify(nil); err == nil {
		t.Error("Verify(nil) should fail")
	}
}
