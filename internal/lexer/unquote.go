package lexer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrBadEscape is returned by Unquote for malformed escape sequences.
var ErrBadEscape = errors.New("bad escape sequence")

// Unquote strips the surrounding quotes of a StringLit token text and
// resolves its escape sequences.
func Unquote(raw string) (string, error) {
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return "", fmt.Errorf("not a string literal: %q", raw)
	}
	body := raw[1 : len(raw)-1]
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}

	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", ErrBadEscape
		}
		switch body[i] {
		case '"', '\\', '\'':
			sb.WriteByte(body[i])
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '0':
			sb.WriteByte(0)
		case 'u':
			end := strings.IndexByte(body[i:], '}')
			if i+1 >= len(body) || body[i+1] != '{' || end < 0 {
				return "", ErrBadEscape
			}
			hex := body[i+2 : i+end]
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil || hex == "" || !utf8.ValidRune(rune(v)) {
				return "", fmt.Errorf("%w: \\u{%s}", ErrBadEscape, hex)
			}
			sb.WriteRune(rune(v))
			i += end
		default:
			return "", fmt.Errorf("%w: \\%c", ErrBadEscape, body[i])
		}
	}
	return sb.String(), nil
}
