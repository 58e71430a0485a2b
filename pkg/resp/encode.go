package resp

import "strconv"

var crlf = []byte("\r\n")

// Encode returns the wire form of f.
func Encode(f Frame) []byte {
	return AppendFrame(nil, f)
}

// AppendFrame appends the wire form of f to dst.
//
// CR and LF inside simple strings and errors are replaced by spaces since
// those frame types cannot carry them. A frame with an unknown type is
// encoded as an error frame.
func AppendFrame(dst []byte, f Frame) []byte {
	switch f.Type {
	case SimpleString, Error:
		dst = append(dst, byte(f.Type))
		dst = appendLine(dst, f.Data)
		return append(dst, crlf...)

	case Integer:
		dst = append(dst, ':')
		dst = strconv.AppendInt(dst, f.Int, 10)
		return append(dst, crlf...)

	case BulkString:
		if f.Null {
			return append(dst, "$-1\r\n"...)
		}
		dst = append(dst, '$')
		dst = strconv.AppendInt(dst, int64(len(f.Data)), 10)
		dst = append(dst, crlf...)
		dst = append(dst, f.Data...)
		return append(dst, crlf...)

	case Array:
		if f.Null {
			return append(dst, "*-1\r\n"...)
		}
		dst = append(dst, '*')
		dst = strconv.AppendInt(dst, int64(len(f.Elems)), 10)
		dst = append(dst, crlf...)
		for _, e := range f.Elems {
			dst = AppendFrame(dst, e)
		}
		return dst

	default:
		return append(dst, "-ERR invalid frame type\r\n"...)
	}
}

func appendLine(dst, b []byte) []byte {
	for _, c := range b {
		if c == '\r' || c == '\n' {
			c = ' '
		}
		dst = append(dst, c)
	}
	return dst
}
