package resp

import "strconv"

// Type is the RESP type marker that prefixes every frame on the wire.
type Type byte

// Supported frame types.
const (
	SimpleString Type = '+'
	Error        Type = '-'
	Integer      Type = ':'
	BulkString   Type = '$'
	Array        Type = '*'
)

// String returns a readable name for the type.
func (t Type) String() string {
	switch t {
	case SimpleString:
		return "simple-string"
	case Error:
		return "error"
	case Integer:
		return "integer"
	case BulkString:
		return "bulk-string"
	case Array:
		return "array"
	default:
		return "type(" + strconv.QuoteRune(rune(t)) + ")"
	}
}

// Frame is one decoded protocol unit.
//
// Data holds the payload of simple strings, errors and bulk strings. Int
// holds the value of an integer frame. Elems holds the elements of an array.
// Null marks the null bulk string ("$-1") and the null array ("*-1"); a
// zero-length bulk string is not null.
type Frame struct {
	Type  Type
	Data  []byte
	Int   int64
	Null  bool
	Elems []Frame
}

// SimpleStringFrame returns a simple string frame.
func SimpleStringFrame(s string) Frame {
	return Frame{Type: SimpleString, Data: []byte(s)}
}

// ErrorFrame returns an error frame.
func ErrorFrame(msg string) Frame {
	return Frame{Type: Error, Data: []byte(msg)}
}

// IntegerFrame returns an integer frame.
func IntegerFrame(n int64) Frame {
	return Frame{Type: Integer, Int: n}
}

// BulkFrame returns a bulk string frame. A nil slice still encodes as an
// empty bulk string; use NullBulkFrame for the null value.
func BulkFrame(b []byte) Frame {
	if b == nil {
		b = []byte{}
	}
	return Frame{Type: BulkString, Data: b}
}

// NullBulkFrame returns the null bulk string.
func NullBulkFrame() Frame {
	return Frame{Type: BulkString, Null: true}
}

// ArrayFrame returns an array frame holding elems.
func ArrayFrame(elems ...Frame) Frame {
	if elems == nil {
		elems = []Frame{}
	}
	return Frame{Type: Array, Elems: elems}
}

// CommandFrame builds a request: an array of bulk strings.
func CommandFrame(args ...[]byte) Frame {
	elems := make([]Frame, len(args))
	for i, a := range args {
		elems[i] = BulkFrame(a)
	}
	return ArrayFrame(elems...)
}

// IsNull reports whether f is a null bulk string or a null array.
func (f Frame) IsNull() bool {
	return f.Null
}

// IsString reports whether f carries a non-null string payload.
func (f Frame) IsString() bool {
	switch f.Type {
	case SimpleString, BulkString:
		return !f.Null
	default:
		return false
	}
}
