package output

import (
	"io"
	"strconv"

	tidresp "github.com/tidwall/resp"
)

// RawFormatter prints payloads without quoting or type annotations. Nil
// prints an empty line; array elements go one per line.
type RawFormatter struct{}

// Format writes v followed by a newline.
func (f *RawFormatter) Format(w io.Writer, v tidresp.Value) error {
	if v.Type() == tidresp.Array && !v.IsNull() {
		for _, e := range v.Array() {
			if err := f.Format(w, e); err != nil {
				return err
			}
		}
		return nil
	}

	var out []byte
	switch {
	case v.IsNull():
	case v.Type() == tidresp.Integer:
		out = strconv.AppendInt(out, int64(v.Integer()), 10)
	default:
		out = append(out, v.Bytes()...)
	}
	out = append(out, '\n')
	_, err := w.Write(out)
	return err
}
