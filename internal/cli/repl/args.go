package repl

import (
	"errors"
	"strconv"
	"strings"
)

var (
	errUnbalancedQuotes = errors.New("invalid argument(s): unbalanced quotes")
	errNoArgs           = errors.New("invalid argument(s): empty line")
)

// SplitArgs splits line into arguments. Double-quoted arguments accept
// \n, \r, \t, \b, \a, \\, \" and \xHH escapes; single-quoted arguments
// only \'. A closing quote must be followed by a space or the end of the
// line.
func SplitArgs(line string) ([]string, error) {
	var args []string
	i := 0
	for {
		for i < len(line) && isSpace(line[i]) {
			i++
		}
		if i == len(line) {
			break
		}

		var (
			sb   strings.Builder
			err  error
			next int
		)
		switch line[i] {
		case '"':
			next, err = readDoubleQuoted(line, i+1, &sb)
		case '\'':
			next, err = readSingleQuoted(line, i+1, &sb)
		default:
			next = i
			for next < len(line) && !isSpace(line[next]) {
				sb.WriteByte(line[next])
				next++
			}
		}
		if err != nil {
			return nil, err
		}
		if next < len(line) && !isSpace(line[next]) {
			return nil, errUnbalancedQuotes
		}
		args = append(args, sb.String())
		i = next
	}

	if len(args) == 0 {
		return nil, errNoArgs
	}
	return args, nil
}

// readDoubleQuoted reads up to the closing quote and returns the index
// just past it.
func readDoubleQuoted(line string, i int, sb *strings.Builder) (int, error) {
	for i < len(line) {
		c := line[i]
		switch {
		case c == '"':
			return i + 1, nil
		case c == '\\' && i+3 < len(line) && line[i+1] == 'x' && isHex(line[i+2]) && isHex(line[i+3]):
			b, _ := strconv.ParseUint(line[i+2:i+4], 16, 8)
			sb.WriteByte(byte(b))
			i += 4
		case c == '\\' && i+1 < len(line):
			switch e := line[i+1]; e {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'b':
				sb.WriteByte('\b')
			case 'a':
				sb.WriteByte('\a')
			default:
				sb.WriteByte(e)
			}
			i += 2
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return 0, errUnbalancedQuotes
}

func readSingleQuoted(line string, i int, sb *strings.Builder) (int, error) {
	for i < len(line) {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line) && line[i+1] == '\'':
			sb.WriteByte('\'')
			i += 2
		case c == '\'':
			return i + 1, nil
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return 0, errUnbalancedQuotes
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
