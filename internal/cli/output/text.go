package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	tidresp "github.com/tidwall/resp"
)

// TextFormatter prints replies the way redis-cli does on a terminal.
type TextFormatter struct{}

// Format writes v followed by a newline.
func (f *TextFormatter) Format(w io.Writer, v tidresp.Value) error {
	_, err := io.WriteString(w, formatText(v, "")+"\n")
	return err
}

func formatText(v tidresp.Value, indent string) string {
	switch v.Type() {
	case tidresp.SimpleString:
		return v.String()
	case tidresp.Error:
		return "(error) " + v.String()
	case tidresp.Integer:
		return "(integer) " + strconv.Itoa(v.Integer())
	case tidresp.BulkString:
		if v.IsNull() {
			return "(nil)"
		}
		return Quote(v.Bytes())
	case tidresp.Array:
		if v.IsNull() {
			return "(nil)"
		}
		elems := v.Array()
		if len(elems) == 0 {
			return "(empty array)"
		}
		width := len(strconv.Itoa(len(elems)))
		pad := indent + strings.Repeat(" ", width+2)
		lines := make([]string, len(elems))
		for i, e := range elems {
			prefix := fmt.Sprintf("%*d) ", width, i+1)
			if i > 0 {
				prefix = indent + prefix
			}
			lines[i] = prefix + formatText(e, pad)
		}
		return strings.Join(lines, "\n")
	default:
		return v.String()
	}
}

// Quote renders b as a double-quoted string, escaping control and
// non-ASCII bytes as redis-cli does.
func Quote(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b) + 2)
	sb.WriteByte('"')
	for _, c := range b {
		switch c {
		case '\\', '"':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\a':
			sb.WriteString(`\a`)
		case '\b':
			sb.WriteString(`\b`)
		default:
			if c < 0x20 || c >= 0x7f {
				fmt.Fprintf(&sb, `\x%02x`, c)
			} else {
				sb.WriteByte(c)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
