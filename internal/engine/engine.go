package engine

import "bytes"

// Position locates a byte in the input. Line is 1-based, Column is the
// 0-based byte offset within the line.
type Position struct {
	Offset int
	Line   int
	Column int
}

// State is a single decode session over an in-memory buffer. It owns the
// cursor and the line bookkeeping; it is never shared between calls.
type State struct {
	buf []byte
	pos int

	line      int
	col       int
	lastBreak byte // '\n' or '\r' when the previous byte was a counted line break

	Strict     bool
	AllUnicode bool
}

// NewState returns a State positioned at the first byte of buf.
func NewState(buf []byte, strict, allUnicode bool) *State {
	return &State{buf: buf, line: 1, Strict: strict, AllUnicode: allUnicode}
}

// Pos reports the current cursor position.
func (s *State) Pos() Position {
	return Position{Offset: s.pos, Line: s.line, Column: s.col}
}

// EOF reports whether the cursor reached the end of the input.
func (s *State) EOF() bool { return s.pos >= len(s.buf) }

// Peek returns the byte under the cursor.
func (s *State) Peek() (byte, bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	return s.buf[s.pos], true
}

// PeekAt returns the byte n positions after the cursor.
func (s *State) PeekAt(n int) (byte, bool) {
	if s.pos+n >= len(s.buf) || s.pos+n < 0 {
		return 0, false
	}
	return s.buf[s.pos+n], true
}

// HasPrefix reports whether the remaining input starts with lit.
func (s *State) HasPrefix(lit string) bool {
	return len(s.buf)-s.pos >= len(lit) && string(s.buf[s.pos:s.pos+len(lit)]) == lit
}

// Snippet returns up to n bytes of the remaining input for error messages.
func (s *State) Snippet(n int) string {
	end := s.pos + n
	if end > len(s.buf) {
		end = len(s.buf)
	}
	return string(s.buf[s.pos:end])
}

// Advance consumes n bytes. Every byte moves the in-line offset; LF and CR
// start a new line, and the second byte of a CRLF or LFCR pair is absorbed
// into the break that was already counted.
func (s *State) Advance(n int) {
	end := s.pos + n
	if end > len(s.buf) {
		end = len(s.buf)
	}
	for ; s.pos < end; s.pos++ {
		c := s.buf[s.pos]
		if c != '\n' && c != '\r' {
			s.col++
			s.lastBreak = 0
			continue
		}
		if s.lastBreak != 0 && s.lastBreak != c {
			s.lastBreak = 0
			continue
		}
		s.line++
		s.col = 0
		s.lastBreak = c
	}
}

// SkipSpaces moves the cursor to the next significant byte. Outside strict
// mode it also skips // line comments and /* */ block comments; an
// unterminated block comment runs to the end of the input.
func (s *State) SkipSpaces() {
	for s.pos < len(s.buf) {
		c := s.buf[s.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			s.Advance(1)
		case s.Strict:
			return
		case c == '\v' || c == '\f':
			s.Advance(1)
		case c == '/' && s.pos+1 < len(s.buf) && s.buf[s.pos+1] == '/':
			i := s.pos + 2
			for i < len(s.buf) && s.buf[i] != '\n' && s.buf[i] != '\r' {
				i++
			}
			s.Advance(i - s.pos)
		case c == '/' && s.pos+1 < len(s.buf) && s.buf[s.pos+1] == '*':
			end := bytes.Index(s.buf[s.pos+2:], []byte("*/"))
			if end < 0 {
				s.Advance(len(s.buf) - s.pos)
				return
			}
			s.Advance(end + 4)
		default:
			return
		}
	}
}
