package loosejson

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/reoring/loosejson/internal/engine"
)

// Encode renders v as text: arrays as [a, b], objects as {"k": v}.
func Encode(v *Value) (string, error) {
	return EncodeWith(v, EncodeOpt{})
}

// EncodeWith is Encode with explicit options.
func EncodeWith(v *Value, opt EncodeOpt) (string, error) {
	e := &encoder{
		tr:       engine.NewTracker(effectiveDepth(opt.MaxDepth)),
		visiting: map[*Value]struct{}{},
	}
	if err := e.encode(v); err != nil {
		return "", err
	}
	return e.buf.String(), nil
}

type encoder struct {
	buf strings.Builder
	tr  *engine.Tracker
	// containers on the current descent path
	visiting map[*Value]struct{}
}

func (e *encoder) encode(v *Value) error {
	switch v.Kind() {
	case KindNull:
		e.buf.WriteString("null")
	case KindBool:
		if v.b {
			e.buf.WriteString("true")
		} else {
			e.buf.WriteString("false")
		}
	case KindInt:
		e.buf.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		e.buf.WriteString(floatText(v.f))
	case KindString:
		writeQuoted(&e.buf, v.s)
	case KindArray:
		leave, err := e.enter(v, "array")
		if err != nil {
			return err
		}
		defer leave()
		e.buf.WriteByte('[')
		for i, it := range v.items {
			if i > 0 {
				e.buf.WriteString(", ")
			}
			e.tr.PushIndex(i)
			err := e.encode(it)
			e.tr.Pop()
			if err != nil {
				return err
			}
		}
		e.buf.WriteByte(']')
	case KindObject:
		leave, err := e.enter(v, "object")
		if err != nil {
			return err
		}
		defer leave()
		e.buf.WriteByte('{')
		for i, k := range v.obj.keys {
			if i > 0 {
				e.buf.WriteString(", ")
			}
			writeQuoted(&e.buf, k)
			e.buf.WriteString(": ")
			e.tr.PushKey(k)
			err := e.encode(v.obj.vals[i])
			e.tr.Pop()
			if err != nil {
				return err
			}
		}
		e.buf.WriteByte('}')
	default:
		return e.fail(CodeNotEncodable, "object is not JSON encodable")
	}
	return nil
}

// enter registers a container on the descent path. The returned func
// deregisters it and must run on every exit.
func (e *encoder) enter(v *Value, what string) (func(), error) {
	if _, seen := e.visiting[v]; seen {
		return nil, e.fail(CodeSelfReference, "an "+what+" with references to itself is not JSON encodable")
	}
	if !e.tr.Enter() {
		e.tr.Leave()
		return nil, e.fail(CodeMaxDepth, "maximum nesting depth of "+strconv.Itoa(e.tr.MaxDepth)+" exceeded")
	}
	e.visiting[v] = struct{}{}
	return func() {
		delete(e.visiting, v)
		e.tr.Leave()
	}, nil
}

func (e *encoder) fail(code, msg string) error {
	return &EncodeError{Code: code, Message: msg, Path: e.tr.Pointer()}
}

// floatText formats f the shortest way that reads back as the same float,
// in positional notation for decimal exponents in [-4, 16) and scientific
// notation otherwise. The text always marks the value as a float.
func floatText(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return sci
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if strings.IndexByte(s, '.') < 0 {
		s += ".0"
	}
	return s
}

const hexDigits = "0123456789abcdef"

// writeQuoted writes s as a double-quoted literal. Control characters and
// non-printable runes are escaped with lowercase hex; runes beyond the BMP
// use the eight-digit \U form.
func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch c {
			case '"':
				b.WriteString(`\"`)
			case '\\':
				b.WriteString(`\\`)
			case '/':
				b.WriteString(`\/`)
			case '\b':
				b.WriteString(`\b`)
			case '\f':
				b.WriteString(`\f`)
			case '\n':
				b.WriteString(`\n`)
			case '\r':
				b.WriteString(`\r`)
			case '\t':
				b.WriteString(`\t`)
			default:
				if c < 0x20 || c == 0x7f {
					writeHexEscape(b, 'u', rune(c), 4)
				} else {
					b.WriteByte(c)
				}
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			b.WriteString(`\ufffd`)
		case unicode.IsPrint(r):
			b.WriteString(s[i : i+size])
		case r > 0xffff:
			writeHexEscape(b, 'U', r, 8)
		default:
			writeHexEscape(b, 'u', r, 4)
		}
		i += size
	}
	b.WriteByte('"')
}

func writeHexEscape(b *strings.Builder, kind byte, r rune, width int) {
	b.WriteByte('\\')
	b.WriteByte(kind)
	for shift := (width - 1) * 4; shift >= 0; shift -= 4 {
		b.WriteByte(hexDigits[(r>>uint(shift))&0xf])
	}
}
