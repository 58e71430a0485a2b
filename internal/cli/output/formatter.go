package output

import (
	"fmt"
	"io"
	"strings"

	tidresp "github.com/tidwall/resp"
)

// Format represents the output format.
type Format string

const (
	FormatText Format = "text"
	FormatRaw  Format = "raw"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatRaw, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, raw or json)", s)
	}
}

// Formatter writes one reply.
type Formatter interface {
	Format(w io.Writer, v tidresp.Value) error
}

// NewFormatter creates a formatter for the given format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatRaw:
		return &RawFormatter{}
	default:
		return &TextFormatter{}
	}
}

// IsError reports whether v is an error reply.
func IsError(v tidresp.Value) bool {
	return v.Type() == tidresp.Error
}
