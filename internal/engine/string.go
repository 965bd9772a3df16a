package engine

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// DecodeString consumes the quoted string under the cursor. The second
// result reports whether the text went through the Unicode path.
func (s *State) DecodeString() (string, bool, error) {
	b := s.buf
	start := s.pos
	startPos := s.Pos()
	quote := b[start]

	var (
		escaping   bool
		hasUnicode bool
		hasEscape  bool
		needsClean bool
		afterLF    bool // previous byte was an escaped LF
		afterCR    bool // previous byte was an escaped CR
	)
	i := start + 1
scan:
	for ; ; i++ {
		if i >= len(b) {
			if escaping {
				return "", false, Errorf(CodeTrailingEscape, startPos,
					"invalid string contains trailing backslash escape starting at position %d", start)
			}
			return "", false, Errorf(CodeUnterminatedString, startPos,
				"unterminated string starting at position %d", start)
		}
		c := b[i]
		if !escaping {
			switch {
			case c == quote:
				break scan
			case c == '\\':
				escaping = true
			case c == '\n' || c == '\r':
				if s.Strict {
					return "", false, Errorf(CodeNewlineInString, startPos,
						"invalid string contains newline starting at position %d", start)
				}
				if !(afterLF && c == '\r') && !(afterCR && c == '\n') {
					return "", false, Errorf(CodeNewlineInString, startPos,
						"invalid string contains newline (hint: use backslash escape continuator) starting at position %d", start)
				}
			case c >= utf8.RuneSelf:
				hasUnicode = true
			}
			afterLF, afterCR = false, false
			continue
		}

		escaping = false
		switch c {
		case '"', '\\', 'b', 'f', 'n', 'r', 't':
			hasEscape = true
		case '/':
			needsClean = true
		case 'u':
			hasUnicode = true
		case '\'':
			if s.Strict {
				return "", false, s.invalidEscape(start, startPos)
			}
			hasEscape = true
		case 'U':
			if s.Strict {
				return "", false, s.invalidEscape(start, startPos)
			}
			hasUnicode = true
		case '\n', '\r':
			if s.Strict {
				return "", false, s.invalidEscape(start, startPos)
			}
			needsClean = true
			afterLF, afterCR = c == '\n', c == '\r'
		default:
			return "", false, s.invalidEscape(start, startPos)
		}
	}

	raw := b[start+1 : i]
	if needsClean {
		raw = cleanEscapes(raw)
	}
	wide := hasUnicode || s.AllUnicode
	var (
		out string
		err error
	)
	switch {
	case wide:
		out, err = unescape(raw, true)
	case hasEscape:
		out, err = unescape(raw, false)
	default:
		out = string(raw)
	}
	if err != nil {
		return "", false, Errorf(CodeStringDecode, startPos,
			"cannot decode string starting at position %d: %s", start, err)
	}
	s.Advance(i + 1 - start)
	return out, wide, nil
}

func (s *State) invalidEscape(start int, pos Position) error {
	return Errorf(CodeInvalidEscape, pos,
		"invalid string contains unrecognized backslash escape starting at position %d", start)
}

// cleanEscapes rewrites escaped solidi to a plain '/' and drops escaped line
// breaks, taking both bytes of an escaped CRLF or LFCR. Other escapes are
// copied untouched for unescape.
func cleanEscapes(raw []byte) []byte {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			out = append(out, c)
			continue
		}
		i++
		switch e := raw[i]; e {
		case '/':
			out = append(out, '/')
		case '\n', '\r':
			if i+1 < len(raw) && (raw[i+1] == '\n' || raw[i+1] == '\r') && raw[i+1] != e {
				i++
			}
		default:
			out = append(out, c, e)
		}
	}
	return out
}

// unescape decodes the escapes in raw. With wide set the text must be valid
// UTF-8 and \u escapes are paired into supplementary characters; a surrogate
// that cannot be paired becomes U+FFFD.
func unescape(raw []byte, wide bool) (string, error) {
	if wide && !utf8.Valid(raw) {
		return "", errors.New("invalid UTF-8 sequence")
	}
	var sb strings.Builder
	sb.Grow(len(raw))
	for i := 0; i < len(raw); {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			sb.WriteByte(c)
			i++
			continue
		}
		e := raw[i+1]
		i += 2
		switch e {
		case '"', '\'', '\\', '/':
			sb.WriteByte(e)
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'u':
			r, ok := readHex(raw[i:], 4)
			if !ok {
				return "", errors.New("truncated \\uXXXX escape")
			}
			i += 4
			if utf16.IsSurrogate(r) {
				if i+6 <= len(raw) && raw[i] == '\\' && raw[i+1] == 'u' {
					if r2, ok := readHex(raw[i+2:], 4); ok {
						if dec := utf16.DecodeRune(r, r2); dec != unicode.ReplacementChar {
							r = dec
							i += 6
						}
					}
				}
				if utf16.IsSurrogate(r) {
					r = unicode.ReplacementChar
				}
			}
			sb.WriteRune(r)
		case 'U':
			r, ok := readHex(raw[i:], 8)
			if !ok {
				return "", errors.New("truncated \\UXXXXXXXX escape")
			}
			i += 8
			if r > unicode.MaxRune {
				return "", fmt.Errorf("illegal Unicode character U+%X", uint32(r))
			}
			if utf16.IsSurrogate(r) {
				r = unicode.ReplacementChar
			}
			sb.WriteRune(r)
		default:
			return "", fmt.Errorf("unrecognized escape \\%c", e)
		}
	}
	return sb.String(), nil
}

func readHex(b []byte, n int) (rune, bool) {
	if len(b) < n {
		return 0, false
	}
	var r uint32
	for _, c := range b[:n] {
		r <<= 4
		switch {
		case c >= '0' && c <= '9':
			r |= uint32(c - '0')
		case c >= 'a' && c <= 'f':
			r |= uint32(c-'a') + 10
		case c >= 'A' && c <= 'F':
			r |= uint32(c-'A') + 10
		default:
			return 0, false
		}
	}
	if r > 0x7fffffff {
		return 0, false
	}
	return rune(r), true
}
