package domain

import (
	"bytes"
	"strings"

	"github.com/yndnr/memkv-go/pkg/resp"
)

// Command is a validated request ready for execution. It is one of Get,
// Set, Ping or Echo.
type Command interface {
	// Name returns the upper-case command name.
	Name() string

	command()
}

// Get reads the value stored at Key.
type Get struct {
	Key []byte
}

// Set stores Value at Key, replacing any previous value.
type Set struct {
	Key   []byte
	Value []byte
}

// Ping checks liveness. With a message it echoes the message back.
type Ping struct {
	Message    []byte
	HasMessage bool
}

// Echo returns Message unchanged.
type Echo struct {
	Message []byte
}

func (Get) Name() string  { return "GET" }
func (Set) Name() string  { return "SET" }
func (Ping) Name() string { return "PING" }
func (Echo) Name() string { return "ECHO" }

func (Get) command()  {}
func (Set) command()  {}
func (Ping) command() {}
func (Echo) command() {}

// commandSpec describes the accepted argument count of a command, not
// counting the command name itself.
type commandSpec struct {
	minArgs  int
	maxArgs  int
	expected string
	build    func(args [][]byte) Command
}

var commandTable = map[string]commandSpec{
	"GET": {
		minArgs: 1, maxArgs: 1, expected: "1",
		build: func(args [][]byte) Command { return Get{Key: args[0]} },
	},
	"SET": {
		minArgs: 2, maxArgs: 2, expected: "2",
		build: func(args [][]byte) Command { return Set{Key: args[0], Value: args[1]} },
	},
	"PING": {
		minArgs: 0, maxArgs: 1, expected: "0 or 1",
		build: func(args [][]byte) Command {
			if len(args) == 0 {
				return Ping{}
			}
			return Ping{Message: args[0], HasMessage: true}
		},
	},
	"ECHO": {
		minArgs: 1, maxArgs: 1, expected: "1",
		build: func(args [][]byte) Command { return Echo{Message: args[0]} },
	},
}

// ParseCommand validates a request frame into a Command.
//
// The frame must be a non-empty array of bulk (or simple) strings whose
// first element names the command. Errors are *CommandError values.
func ParseCommand(f resp.Frame) (Command, error) {
	if f.Type != resp.Array {
		return nil, ErrInvalidRequest
	}
	if f.Null || len(f.Elems) == 0 {
		return nil, ErrEmptyCommand
	}

	args := make([][]byte, len(f.Elems))
	for i, e := range f.Elems {
		if !e.IsString() {
			return nil, ErrInvalidRequest
		}
		args[i] = e.Data
	}
	return ParseArgs(args)
}

// ParseArgs validates a command name followed by its arguments.
// Command names are matched case-insensitively.
func ParseArgs(args [][]byte) (Command, error) {
	if len(args) == 0 {
		return nil, ErrEmptyCommand
	}

	name := normalizeCommandName(args[0])
	spec, ok := commandTable[name]
	if !ok {
		return nil, unknownCommandError(args[0])
	}

	rest := args[1:]
	if len(rest) < spec.minArgs || len(rest) > spec.maxArgs {
		return nil, arityError(strings.ToLower(name), spec.expected, len(rest))
	}
	return spec.build(rest), nil
}

// LookupName returns the canonical name of the command named by b and
// whether memkv implements it.
func LookupName(b []byte) (string, bool) {
	name := normalizeCommandName(b)
	if _, ok := commandTable[name]; !ok {
		return "", false
	}
	return name, true
}

func normalizeCommandName(b []byte) string {
	// Uppercase ASCII without allocating twice for already uppercased tokens.
	if bytes.ContainsAny(b, "abcdefghijklmnopqrstuvwxyz") {
		return strings.ToUpper(string(b))
	}
	return string(b)
}
