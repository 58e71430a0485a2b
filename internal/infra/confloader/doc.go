// Package confloader loads memkv configuration with koanf.
//
// Sources, highest priority first:
//
//  1. Overrides, normally command line flags (WithOverrides)
//  2. Environment variables (MEMKV_ prefix)
//  3. The YAML configuration file
//  4. Values already present in the target struct (defaults)
//
// Environment variable names are matched against the koanf tags of the
// target, so MEMKV_SERVER_REDIS_RATE_LIMIT sets server.redis.rate_limit.
//
// Watcher reports writes to the configuration file, debounced, so that a
// running server can re-read the settings it applies live.
package confloader
