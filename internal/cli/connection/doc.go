// Package connection provides the RESP client used by memkv-cli.
//
// Requests are encoded with pkg/resp and replies are read with
// github.com/tidwall/resp, so the client shares no decoding code with the
// server it talks to.
package connection
