// Package redisserver serves the memkv RESP2 protocol over TCP.
//
// Each accepted connection runs in its own goroutine that reads frames with
// a resp.Reader, dispatches them to a Handler and writes the replies back
// in arrival order, flushing after every request.
//
// Supported commands: GET, SET, PING, ECHO.
//
// Malformed input is a protocol error: the server writes
// "-ERR Protocol error: <reason>" and closes the connection. Invalid but
// well-framed requests get an error reply and the connection stays open.
package redisserver
