package output

import (
	"encoding/json"
	"io"
	"unicode/utf8"

	tidresp "github.com/tidwall/resp"
)

// JSONFormatter formats replies as JSON objects.
type JSONFormatter struct{}

// Reply is the JSON shape of one reply. Value holds a string, an integer,
// a list of replies or null. Non-UTF-8 bulk payloads are emitted as
// base64 with Encoding set to "base64".
type Reply struct {
	Type     string  `json:"type"`
	Value    any     `json:"value"`
	Encoding string  `json:"encoding,omitempty"`
	Elements []Reply `json:"elements,omitempty"`
}

// Format writes v as one indented JSON document.
func (f *JSONFormatter) Format(w io.Writer, v tidresp.Value) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(toReply(v))
}

func toReply(v tidresp.Value) Reply {
	switch v.Type() {
	case tidresp.SimpleString:
		return Reply{Type: "string", Value: v.String()}
	case tidresp.Error:
		return Reply{Type: "error", Value: v.String()}
	case tidresp.Integer:
		return Reply{Type: "integer", Value: v.Integer()}
	case tidresp.BulkString:
		if v.IsNull() {
			return Reply{Type: "nil"}
		}
		b := v.Bytes()
		if !utf8.Valid(b) {
			// encoding/json base64-encodes []byte.
			return Reply{Type: "bulk", Value: b, Encoding: "base64"}
		}
		return Reply{Type: "bulk", Value: string(b)}
	case tidresp.Array:
		if v.IsNull() {
			return Reply{Type: "nil"}
		}
		elems := v.Array()
		r := Reply{Type: "array", Elements: make([]Reply, len(elems))}
		for i, e := range elems {
			r.Elements[i] = toReply(e)
		}
		return r
	default:
		return Reply{Type: "unknown", Value: v.String()}
	}
}
