// Package logger provides structured logging for memkv.
//
// This package wraps log/slog:
//
//   - logger.go: Logger interface, configuration and global level
//   - file.go: Rotating file output
//   - context.go: Context-aware logging with connection IDs
//   - redact.go: Sensitive data redaction
//
// Features:
//
//   - JSON and text output formats
//   - Log level filtering, adjustable at runtime
//   - Automatic masking of stored values and credentials
//   - Connection ID propagation
package logger
