// Command memkv-cli talks to a memkv server.
//
// Usage:
//
//	memkv-cli [--server host:port] get KEY
//	memkv-cli set KEY VALUE
//	memkv-cli ping [MESSAGE]
//	memkv-cli echo MESSAGE
//	memkv-cli            # interactive mode
//
// The server address defaults to 127.0.0.1:6379 or $MEMKV_SERVER.
package main
