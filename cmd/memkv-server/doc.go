// Command memkv-server runs the memkv in-memory key-value server.
//
// It speaks a RESP2 subset (GET, SET, PING, ECHO) over TCP, so redis-cli
// and Redis client libraries can talk to it. All data is held in memory
// and lost on exit.
//
// Usage:
//
//	memkv-server [flags]
//	memkv-server --config /etc/memkv/memkv.yaml
//	memkv-server --addr 0.0.0.0:6379 --log-level debug
//
// Every setting can also be given through MEMKV_ environment variables,
// e.g. MEMKV_SERVER_REDIS_ADDR=0.0.0.0:6379. Flags win over the
// environment, which wins over the file. Edits to log.level in the
// config file apply without a restart.
package main
