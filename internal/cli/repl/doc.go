// Package repl provides the interactive mode of memkv-cli.
//
// Each input line is split into arguments redis-cli style (double quotes
// with escapes, single quotes verbatim), sent to the server and the reply
// printed with the configured formatter. Lines are kept in a history file
// between sessions.
package repl
