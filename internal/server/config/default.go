package config

import "time"

// Default configuration values.
const (
	DefaultRedisAddr = "127.0.0.1:6379"
	DefaultHTTPAddr  = "127.0.0.1:9121"

	DefaultShutdownTimeout = 10 * time.Second

	// DefaultMaxArrayLen leaves room for arity errors on a few extra
	// arguments; no command takes more than three elements.
	DefaultMaxArrayLen = 16

	DefaultStoreShards = 16

	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
	DefaultLogMaxSizeMB  = 100
	DefaultLogMaxBackups = 5
	DefaultLogMaxAgeDays = 30
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Redis: RedisConfig{
				Addr:        DefaultRedisAddr,
				MaxArrayLen: DefaultMaxArrayLen,
			},
			HTTP: HTTPConfig{
				Enabled: false,
				Addr:    DefaultHTTPAddr,
			},
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Store: StoreSection{
			Shards: DefaultStoreShards,
		},
		Log: LogSection{
			Level:      DefaultLogLevel,
			Format:     DefaultLogFormat,
			MaxSizeMB:  DefaultLogMaxSizeMB,
			MaxBackups: DefaultLogMaxBackups,
			MaxAgeDays: DefaultLogMaxAgeDays,
		},
	}
}
