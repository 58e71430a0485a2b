// Package service executes memkv commands.
//
// The Executor turns validated domain commands into replies against a
// Store. It performs no I/O and never fails: problems with a request are
// reported as error replies. The package also holds the per-client rate
// limiter registry used by the connection handler.
package service
