package mapcache

import (
	"bytes"
	"errors"
	"strconv"
	"unicode/utf16"

	"github.com/fblackburn/mapcache/internal/transcode"
)

const hexDigits = "0123456789abcdef"

// writeQuoted writes s as a JSON string, escaping only '"', '\\' and control
// bytes. Everything else, including bytes that are not valid UTF-8, is
// copied as-is.
func writeQuoted(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if c < 0x20 {
				buf.WriteString(`\u00`)
				buf.WriteByte(hexDigits[c>>4])
				buf.WriteByte(hexDigits[c&0xF])
				continue
			}
			buf.WriteByte(c)
		}
	}
	buf.WriteByte('"')
}

// unquote decodes a JSON string literal without UTF-8 validation. \u escapes
// that form a surrogate pair decode to one codepoint; lone surrogates are
// kept as their 3-byte encoding.
func unquote(raw []byte) (string, error) {
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return "", errors.New("not a string")
	}
	inner := raw[1 : len(raw)-1]
	if bytes.IndexByte(inner, '\\') < 0 {
		return string(inner), nil
	}

	out := make([]byte, 0, len(inner))
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		if i+1 >= len(inner) {
			return "", errors.New("unterminated escape")
		}
		i++
		switch inner[i] {
		case '"', '\\', '/':
			out = append(out, inner[i])
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'u':
			r, err := hex4(inner, i+1)
			if err != nil {
				return "", err
			}
			i += 4
			if utf16.IsSurrogate(r) && i+6 < len(inner) && inner[i+1] == '\\' && inner[i+2] == 'u' {
				if low, err := hex4(inner, i+3); err == nil {
					if pair := utf16.DecodeRune(r, low); pair != 0xFFFD {
						r = pair
						i += 6
					}
				}
			}
			if out, err = transcode.Append(out, int32(r)); err != nil {
				return "", err
			}
		default:
			return "", errors.New("invalid escape \\" + string(inner[i]))
		}
	}
	return string(out), nil
}

func hex4(b []byte, at int) (rune, error) {
	if at+4 > len(b) {
		return 0, errors.New("short unicode escape")
	}
	v, err := strconv.ParseUint(string(b[at:at+4]), 16, 16)
	if err != nil {
		return 0, errors.New("invalid unicode escape")
	}
	return rune(v), nil
}
