// Package httpserver serves the memkv admin endpoints.
//
// The admin server is optional and disabled by default. It exposes:
//
//   - GET /metrics: Prometheus exposition of the server registry
//   - GET /healthz: JSON liveness report with build info, key count and uptime
//
// Data commands are never served over HTTP; they go through the RESP
// listener in redisserver.
package httpserver
