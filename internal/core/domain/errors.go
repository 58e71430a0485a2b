package domain

import (
	"errors"
	"fmt"
)

// Error codes for command-level failures.
const (
	CodeInvalidRequest = "KV-CMD-4000"
	CodeEmptyCommand   = "KV-CMD-4001"
	CodeWrongArity     = "KV-CMD-4002"
	CodeUnknownCommand = "KV-CMD-4040"
	CodeRateLimited    = "KV-RATE-4290"
)

// maxEchoedNameLen bounds how much of an unknown command name is echoed
// back in the error reply.
const maxEchoedNameLen = 128

// CommandError is a well-formed request that cannot be executed. It is
// reported to the client as an error reply and the connection stays open.
//
// Message is the client-facing text, including the leading "ERR".
type CommandError struct {
	Code    string
	Command string
	Message string
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return e.Message
}

// Is matches command errors by code.
func (e *CommandError) Is(target error) bool {
	t, ok := target.(*CommandError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewCommandError creates a CommandError.
func NewCommandError(code, message string) *CommandError {
	return &CommandError{Code: code, Message: message}
}

var (
	// ErrInvalidRequest is a frame that is not an array of strings.
	ErrInvalidRequest = NewCommandError(CodeInvalidRequest, "ERR invalid request: expected an array of bulk strings")

	// ErrEmptyCommand is an empty or null request array.
	ErrEmptyCommand = NewCommandError(CodeEmptyCommand, "ERR empty command")

	// ErrWrongArity matches every arity error (compare with errors.Is).
	ErrWrongArity = NewCommandError(CodeWrongArity, "ERR wrong number of arguments")

	// ErrUnknownCommand matches every unknown-command error.
	ErrUnknownCommand = NewCommandError(CodeUnknownCommand, "ERR unknown command")

	// ErrRateLimited is returned when a client exceeds its command rate.
	ErrRateLimited = NewCommandError(CodeRateLimited, "ERR rate limit exceeded")
)

func unknownCommandError(name []byte) *CommandError {
	shown := name
	if len(shown) > maxEchoedNameLen {
		shown = shown[:maxEchoedNameLen]
	}
	return &CommandError{
		Code:    CodeUnknownCommand,
		Command: string(shown),
		Message: fmt.Sprintf("ERR unknown command '%s'", shown),
	}
}

func arityError(name, expected string, got int) *CommandError {
	return &CommandError{
		Code:    CodeWrongArity,
		Command: name,
		Message: fmt.Sprintf("ERR wrong number of arguments for '%s' command (expected %s, got %d)", name, expected, got),
	}
}

// GetErrorCode extracts the code of a CommandError, or "" for other errors.
func GetErrorCode(err error) string {
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}
