// Package resp implements the subset of the Redis serialization protocol
// (RESP2) spoken by memkv.
//
// The package is split into:
//
//   - frame.go: the Frame value and its wire types
//   - decode.go: a resumable, slice-based frame decoder
//   - reader.go: a per-connection accumulator that feeds the decoder
//   - encode.go: frame encoders
//
// Decoding never consumes input on a partial frame: Decode reports
// ErrIncomplete and the caller retries once more bytes have arrived.
// Malformed input is reported as a *ProtocolError, after which the byte
// stream cannot be resynchronized.
package resp
