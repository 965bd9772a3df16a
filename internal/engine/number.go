package engine

import (
	"errors"
	"strconv"
)

// Number is a decoded numeric literal.
type Number struct {
	Text    string
	IsFloat bool
	Int     int64
	Float   float64
}

// DecodeNumber consumes the number literal under the cursor. A fraction or
// an exponent makes it a float; float overflow saturates to ±Inf while an
// integer outside int64 is rejected.
func (s *State) DecodeNumber() (Number, error) {
	var n Number
	b := s.buf
	start := s.pos
	fail := func() (Number, error) {
		return Number{}, Errorf(CodeInvalidNumber, s.Pos(), "invalid number starting at position %d", start)
	}

	i := start
	if i < len(b) && (b[i] == '-' || b[i] == '+') {
		i++
	}
	switch {
	case i < len(b) && b[i] == '0':
		i++
		if i < len(b) && isDigit(b[i]) {
			return fail()
		}
	case i < len(b) && isDigit(b[i]):
		i = skipDigits(b, i)
	case i < len(b) && b[i] == '.' && !s.Strict:
		// leading-dot fraction
	default:
		return fail()
	}
	if i < len(b) && b[i] == '.' {
		n.IsFloat = true
		i++
		if i >= len(b) || !isDigit(b[i]) {
			return fail()
		}
		i = skipDigits(b, i)
	}
	if i < len(b) && (b[i] == 'e' || b[i] == 'E') {
		n.IsFloat = true
		i++
		if i < len(b) && (b[i] == '+' || b[i] == '-') {
			i++
		}
		if i >= len(b) || !isDigit(b[i]) {
			return fail()
		}
		i = skipDigits(b, i)
	}

	n.Text = string(b[start:i])
	if n.IsFloat {
		f, err := strconv.ParseFloat(n.Text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return fail()
		}
		n.Float = f
	} else {
		v, err := strconv.ParseInt(n.Text, 10, 64)
		if err != nil {
			return fail()
		}
		n.Int = v
	}
	s.Advance(i - start)
	return n, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func skipDigits(b []byte, i int) int {
	for i < len(b) && isDigit(b[i]) {
		i++
	}
	return i
}
