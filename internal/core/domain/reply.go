package domain

import (
	"errors"

	"github.com/yndnr/memkv-go/pkg/resp"
)

// ReplyKind tags the variant held by a Reply.
type ReplyKind uint8

// Reply kinds.
const (
	ReplySimpleString ReplyKind = iota + 1
	ReplyBulkString
	ReplyNil
	ReplyError
)

// String returns a short label, used as a metrics dimension.
func (k ReplyKind) String() string {
	switch k {
	case ReplySimpleString:
		return "simple"
	case ReplyBulkString:
		return "bulk"
	case ReplyNil:
		return "nil"
	case ReplyError:
		return "error"
	default:
		return "unknown"
	}
}

// Reply is the typed result of one request.
//
// Data is the text of simple strings and errors, or the payload of a bulk
// string. It is unused for ReplyNil.
type Reply struct {
	Kind ReplyKind
	Data []byte
}

// OK is the reply to a successful SET.
var OK = SimpleString("OK")

// SimpleString returns a simple string reply.
func SimpleString(s string) Reply {
	return Reply{Kind: ReplySimpleString, Data: []byte(s)}
}

// BulkString returns a bulk string reply. A nil or empty payload is an
// empty bulk string, never Nil.
func BulkString(b []byte) Reply {
	if b == nil {
		b = []byte{}
	}
	return Reply{Kind: ReplyBulkString, Data: b}
}

// NilReply returns the nil bulk reply used for missing keys.
func NilReply() Reply {
	return Reply{Kind: ReplyNil}
}

// ErrorReply returns an error reply with the given text.
func ErrorReply(msg string) Reply {
	return Reply{Kind: ReplyError, Data: []byte(msg)}
}

// ErrorReplyFrom converts err to an error reply. CommandErrors keep their
// client-facing message; other errors get an "ERR " prefix.
func ErrorReplyFrom(err error) Reply {
	var ce *CommandError
	if errors.As(err, &ce) {
		return ErrorReply(ce.Message)
	}
	return ErrorReply("ERR " + err.Error())
}

// IsError reports whether r is an error reply.
func (r Reply) IsError() bool {
	return r.Kind == ReplyError
}

// Frame converts r to its wire frame.
func (r Reply) Frame() resp.Frame {
	switch r.Kind {
	case ReplySimpleString:
		return resp.Frame{Type: resp.SimpleString, Data: r.Data}
	case ReplyBulkString:
		return resp.BulkFrame(r.Data)
	case ReplyNil:
		return resp.NullBulkFrame()
	default:
		return resp.Frame{Type: resp.Error, Data: r.Data}
	}
}

// AppendTo appends the wire form of r to dst.
func (r Reply) AppendTo(dst []byte) []byte {
	return resp.AppendFrame(dst, r.Frame())
}
