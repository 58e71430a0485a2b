// Package domain defines the core request and reply model for memkv.
//
// Domain values are plain data without IO dependencies:
//
//   - Command: the validated GET, SET, PING and ECHO requests
//   - Reply: the typed result of executing a command
//   - Errors: command-level errors that are reported to the client
//     without closing the connection
//
// ParseCommand turns a decoded RESP frame into a Command.
package domain
