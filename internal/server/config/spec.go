package config

import "time"

// ServerConfig is the root configuration for memkv-server.
type ServerConfig struct {
	Server ServerSection `koanf:"server"`
	Store  StoreSection  `koanf:"store"`
	Log    LogSection    `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	Redis RedisConfig `koanf:"redis"`
	HTTP  HTTPConfig  `koanf:"http"`

	// ShutdownTimeout bounds graceful shutdown before open connections
	// are closed forcibly.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// RedisConfig configures the RESP listener.
type RedisConfig struct {
	Addr string `koanf:"addr"`

	// Zero disables the corresponding timeout.
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// RateLimit is the number of commands per second allowed per client
	// IP. Zero disables rate limiting.
	RateLimit int `koanf:"rate_limit"`

	// Protocol limits. Zero keeps the codec defaults (512MB bulk, 1024
	// elements); neither may exceed them.
	MaxBulkLen  int `koanf:"max_bulk_len"`
	MaxArrayLen int `koanf:"max_array_len"`
}

// HTTPConfig configures the admin HTTP endpoint serving /metrics and
// /healthz.
type HTTPConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// StoreSection configures the in-memory store.
type StoreSection struct {
	// Shards is the number of lock shards, a power of two.
	Shards int `koanf:"shards"`
}

// LogSection configures logging.
type LogSection struct {
	Level     string `koanf:"level"`
	Format    string `koanf:"format"`
	AddSource bool   `koanf:"add_source"`

	// File enables rotating file output instead of stdout.
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
	Compress   bool   `koanf:"compress"`
}
