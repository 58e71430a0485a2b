package resp

import (
	"bytes"
	"errors"
	"math"
	"strconv"
)

// Protocol limits applied by NewDecoder.
const (
	// DefaultMaxArrayLen limits the number of elements in an array.
	// The largest request memkv accepts has three elements.
	DefaultMaxArrayLen = 1024

	// DefaultMaxBulkLen limits a single bulk string (512MB, as Redis).
	DefaultMaxBulkLen = 512 * 1024 * 1024

	// DefaultMaxLineLen limits a header or simple string line (64KB).
	DefaultMaxLineLen = 64 * 1024

	// DefaultMaxDepth limits array nesting.
	DefaultMaxDepth = 8
)

var (
	// ErrIncomplete means the buffer does not yet hold a whole frame.
	// Nothing was consumed; retry after reading more bytes.
	ErrIncomplete = errors.New("resp: incomplete frame")

	// ErrProtocol matches every *ProtocolError.
	ErrProtocol = errors.New("resp: protocol error")

	// ErrLimitExceeded matches protocol errors caused by a configured limit.
	ErrLimitExceeded = errors.New("resp: limit exceeded")
)

// ProtocolError describes malformed input. It matches ErrProtocol, and
// ErrLimitExceeded when Limit is set.
type ProtocolError struct {
	Msg   string
	Limit bool
}

func (e *ProtocolError) Error() string {
	return "resp: protocol error: " + e.Msg
}

// Is implements errors.Is support.
func (e *ProtocolError) Is(target error) bool {
	switch target {
	case ErrProtocol:
		return true
	case ErrLimitExceeded:
		return e.Limit
	default:
		return false
	}
}

func protocolError(msg string) error {
	return &ProtocolError{Msg: msg}
}

func limitError(msg string) error {
	return &ProtocolError{Msg: msg, Limit: true}
}

// Decoder decodes frames from a byte slice. The zero value has no limits
// configured and rejects everything; use NewDecoder.
type Decoder struct {
	MaxArrayLen int
	MaxBulkLen  int
	MaxLineLen  int
	MaxDepth    int
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithMaxBulkLen overrides DefaultMaxBulkLen. Non-positive values are ignored.
func WithMaxBulkLen(n int) DecoderOption {
	return func(d *Decoder) {
		if n > 0 {
			d.MaxBulkLen = n
		}
	}
}

// WithMaxArrayLen overrides DefaultMaxArrayLen. Non-positive values are ignored.
func WithMaxArrayLen(n int) DecoderOption {
	return func(d *Decoder) {
		if n > 0 {
			d.MaxArrayLen = n
		}
	}
}

// NewDecoder returns a Decoder with the default limits.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{
		MaxArrayLen: DefaultMaxArrayLen,
		MaxBulkLen:  DefaultMaxBulkLen,
		MaxLineLen:  DefaultMaxLineLen,
		MaxDepth:    DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode decodes the first frame in buf and returns it together with the
// number of bytes it occupied.
//
// If buf holds only a prefix of a frame, Decode returns ErrIncomplete and
// consumes nothing. The returned frame does not alias buf.
func (d *Decoder) Decode(buf []byte) (Frame, int, error) {
	f, n, _, err := d.decodeNeed(buf)
	return f, n, err
}

// decodeNeed is Decode that, on ErrIncomplete, also reports the smallest
// buffer length that could let decoding progress.
//
// The frame is first validated without copying anything; payloads are
// copied only once the whole frame is known to be present, so retrying a
// large partial frame does not repeat allocations.
func (d *Decoder) decodeNeed(buf []byte) (Frame, int, int, error) {
	sc := parser{d: d, buf: buf}
	if _, _, err := sc.frame(0, 0); err != nil {
		return Frame{}, 0, sc.need, err
	}

	bp := parser{d: d, buf: buf, build: true}
	f, next, err := bp.frame(0, 0)
	if err != nil {
		return Frame{}, 0, 0, err
	}
	return f, next, 0, nil
}

// parser walks one frame. Without build it only validates and returns
// empty frames.
type parser struct {
	d     *Decoder
	buf   []byte
	build bool
	need  int // set on ErrIncomplete
}

func (p *parser) incomplete(need int) error {
	p.need = need
	return ErrIncomplete
}

func (p *parser) frame(pos, depth int) (Frame, int, error) {
	buf := p.buf
	if pos >= len(buf) {
		return Frame{}, 0, p.incomplete(pos + 1)
	}

	t := Type(buf[pos])
	switch t {
	case SimpleString, Error, Integer, BulkString, Array:
	default:
		return Frame{}, 0, protocolError("unexpected type byte " + strconv.QuoteRune(rune(buf[pos])))
	}

	line, next, err := p.readLine(pos + 1)
	if err != nil {
		return Frame{}, 0, err
	}

	switch t {
	case SimpleString, Error:
		f := Frame{Type: t}
		if p.build {
			f.Data = bytes.Clone(line)
		}
		return f, next, nil

	case Integer:
		n, err := strconv.ParseInt(string(line), 10, 64)
		if err != nil || !isDecimal(line) {
			return Frame{}, 0, protocolError("invalid integer")
		}
		return Frame{Type: Integer, Int: n}, next, nil

	case BulkString:
		n, ok := parseLength(line)
		if !ok || n < -1 {
			return Frame{}, 0, protocolError("invalid bulk length")
		}
		if n == -1 {
			return Frame{Type: BulkString, Null: true}, next, nil
		}
		if n > p.d.MaxBulkLen {
			return Frame{}, 0, limitError("invalid bulk length")
		}
		return p.readBulk(next, n)

	default: // Array
		n, ok := parseLength(line)
		if !ok || n < -1 {
			return Frame{}, 0, protocolError("invalid multibulk length")
		}
		if n == -1 {
			return Frame{Type: Array, Null: true}, next, nil
		}
		if n > p.d.MaxArrayLen {
			return Frame{}, 0, limitError("invalid multibulk length")
		}
		if depth >= p.d.MaxDepth {
			return Frame{}, 0, limitError("array nesting too deep")
		}

		var elems []Frame
		if p.build {
			elems = make([]Frame, 0, n)
		}
		for i := 0; i < n; i++ {
			var e Frame
			e, next, err = p.frame(next, depth+1)
			if err != nil {
				return Frame{}, 0, err
			}
			if p.build {
				elems = append(elems, e)
			}
		}
		return Frame{Type: Array, Elems: elems}, next, nil
	}
}

// readBulk reads n payload bytes starting at pos followed by CRLF. n is
// never added to pos before it is known to fit in the buffer, so a huge
// declared length cannot overflow.
func (p *parser) readBulk(pos, n int) (Frame, int, error) {
	buf := p.buf
	avail := len(buf) - pos
	if avail-2 < n {
		// Once the payload is in, a wrong first terminator byte is already fatal.
		if avail > n && buf[pos+n] != '\r' {
			return Frame{}, 0, protocolError("invalid bulk terminator")
		}
		// Retry as soon as the first terminator byte is in, so a bad one is
		// caught without waiting for the second. need always exceeds
		// len(buf).
		need := math.MaxInt
		switch {
		case avail > n:
			need = pos + n + 2
		case n <= math.MaxInt-1-pos:
			need = pos + n + 1
		}
		return Frame{}, 0, p.incomplete(need)
	}

	end := pos + n
	if buf[end] != '\r' || buf[end+1] != '\n' {
		return Frame{}, 0, protocolError("invalid bulk terminator")
	}

	f := Frame{Type: BulkString}
	if p.build {
		f.Data = make([]byte, n)
		copy(f.Data, buf[pos:end])
	}
	return f, end + 2, nil
}

// readLine returns the line starting at pos without its CRLF and the
// position just past the CRLF.
func (p *parser) readLine(pos int) ([]byte, int, error) {
	buf := p.buf
	idx := bytes.IndexByte(buf[pos:], '\n')
	if idx < 0 {
		if len(buf)-pos > p.d.MaxLineLen {
			return nil, 0, limitError("line too long")
		}
		return nil, 0, p.incomplete(len(buf) + 1)
	}

	end := pos + idx
	if idx == 0 || buf[end-1] != '\r' {
		return nil, 0, protocolError("expected CRLF line terminator")
	}
	line := buf[pos : end-1]
	if len(line) > p.d.MaxLineLen {
		return nil, 0, limitError("line too long")
	}
	return line, end + 1, nil
}

// parseLength parses a decimal length header. A leading '+' or blank is
// rejected, unlike strconv.Atoi.
func parseLength(line []byte) (int, bool) {
	if !isDecimal(line) {
		return 0, false
	}
	n, err := strconv.Atoi(string(line))
	if err != nil {
		return 0, false
	}
	return n, true
}

func isDecimal(b []byte) bool {
	if len(b) > 0 && b[0] == '-' {
		b = b[1:]
	}
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
