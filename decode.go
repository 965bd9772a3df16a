package loosejson

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/reoring/loosejson/internal/engine"
)

// Decode parses text into a value tree. Options are variadic; the last one
// wins.
func Decode(text string, opts ...DecodeOpt) (*Value, error) {
	return decode([]byte(text), lastDecodeOpt(opts))
}

// DecodeBytes is Decode over a byte slice. The slice is not retained.
func DecodeBytes(b []byte, opts ...DecodeOpt) (*Value, error) {
	return decode(b, lastDecodeOpt(opts))
}

// DecodeReader reads r to the end and decodes the result. MaxBytes bounds
// the read.
func DecodeReader(r io.Reader, opts ...DecodeOpt) (*Value, error) {
	opt := lastDecodeOpt(opts)
	data, err := readAllLimited(r, opt.MaxBytes)
	if err != nil {
		return nil, err
	}
	return decode(data, opt)
}

type decoder struct {
	st  *engine.State
	tr  *engine.Tracker
	opt DecodeOpt
}

func decode(b []byte, opt DecodeOpt) (*Value, error) {
	if opt.MaxBytes > 0 && int64(len(b)) > opt.MaxBytes {
		return nil, &DecodeError{
			Code:    CodeTooLarge,
			Message: fmt.Sprintf("input of %d bytes exceeds the %d byte limit", len(b), opt.MaxBytes),
			Pos:     Position{Line: 1},
			Path:    "/",
		}
	}
	d := &decoder{
		st:  engine.NewState(b, opt.Strict, opt.AllUnicode),
		tr:  engine.NewTracker(effectiveDepth(opt.MaxDepth)),
		opt: opt,
	}
	v, err := d.value()
	if err != nil {
		return nil, err
	}
	d.st.SkipSpaces()
	if !d.st.EOF() {
		return nil, d.errorf(CodeExtraData, "extra data after JSON description at position %d", d.st.Pos().Offset)
	}
	return v, nil
}

// value dispatches on the first significant byte.
func (d *decoder) value() (*Value, error) {
	st := d.st
	st.SkipSpaces()
	c, ok := st.Peek()
	if !ok {
		return nil, d.errorf(CodeEmptyInput, "empty JSON description")
	}
	switch {
	case c == '"' || (c == '\'' && !d.opt.Strict):
		s, wide, err := st.DecodeString()
		if err != nil {
			return nil, d.wrap(err)
		}
		if wide {
			return wideString(s), nil
		}
		return String(s), nil
	case c == '{':
		return d.object()
	case c == '[':
		return d.array()
	case c == 'n':
		return d.literal("null", "null", Null())
	case c == 't':
		return d.literal("true", "bool", Bool(true))
	case c == 'f':
		return d.literal("false", "bool", Bool(false))
	case c == 'N':
		return d.literal("NaN", "NaN", Float(math.NaN()))
	case c == 'I':
		return d.literal("Infinity", "Inf.", Float(math.Inf(1)))
	case c == '+' || c == '-':
		if next, _ := st.PeekAt(1); next == 'I' {
			sign := 1
			if c == '-' {
				sign = -1
			}
			return d.literal(string(c)+"Infinity", "Inf.", Float(math.Inf(sign)))
		}
		return d.number()
	case c >= '0' && c <= '9', c == '.' && !d.opt.Strict:
		return d.number()
	}
	return nil, d.errorf(CodeUnexpectedToken, "cannot parse JSON description as token: \"%c\"", c)
}

func (d *decoder) literal(lit, what string, v *Value) (*Value, error) {
	if !d.st.HasPrefix(lit) {
		return nil, d.errorf(CodeInvalidLiteral, "cannot parse JSON description as %s: \"%s\"", what, d.st.Snippet(20))
	}
	d.st.Advance(len(lit))
	return v, nil
}

func (d *decoder) number() (*Value, error) {
	n, err := d.st.DecodeNumber()
	if err != nil {
		return nil, d.wrap(err)
	}
	if n.IsFloat {
		return Float(n.Float), nil
	}
	return Int(n.Int), nil
}

type arrayState int

const (
	arrItemOrClose arrayState = iota
	arrCommaOrClose
	arrItem
)

func (d *decoder) array() (*Value, error) {
	st := d.st
	open := st.Pos()
	if !d.tr.Enter() {
		d.tr.Leave()
		return nil, d.failAt(CodeMaxDepth, open, "maximum nesting depth of %d exceeded at position %d", d.tr.MaxDepth, open.Offset)
	}
	defer d.tr.Leave()
	st.Advance(1)

	arr := Array()
	state := arrItemOrClose
	for {
		st.SkipSpaces()
		c, ok := st.Peek()
		if !ok {
			return nil, d.failAt(CodeUnterminatedArray, open, "unterminated array starting at position %d", open.Offset)
		}
		if state == arrCommaOrClose {
			switch c {
			case ',':
				st.Advance(1)
				state = arrItemOrClose
				if d.opt.Strict {
					state = arrItem
				}
			case ']':
				st.Advance(1)
				return arr, nil
			default:
				return nil, d.errorf(CodeExpectedCommaOrBracket, "expecting ',' or ']' at position %d", st.Pos().Offset)
			}
			continue
		}
		if c == ']' && state == arrItemOrClose {
			st.Advance(1)
			return arr, nil
		}
		if c == ',' || c == ']' {
			return nil, d.errorf(CodeExpectedItem, "expecting array item at position %d", st.Pos().Offset)
		}
		d.tr.PushIndex(len(arr.items))
		v, err := d.value()
		d.tr.Pop()
		if err != nil {
			return nil, err
		}
		arr.items = append(arr.items, v)
		state = arrCommaOrClose
	}
}

type objectState int

const (
	objKeyOrClose objectState = iota
	objCommaOrClose
	objKey
)

func (d *decoder) object() (*Value, error) {
	st := d.st
	open := st.Pos()
	if !d.tr.Enter() {
		d.tr.Leave()
		return nil, d.failAt(CodeMaxDepth, open, "maximum nesting depth of %d exceeded at position %d", d.tr.MaxDepth, open.Offset)
	}
	defer d.tr.Leave()
	st.Advance(1)

	obj := NewObject()
	unterminated := func() error {
		return d.failAt(CodeUnterminatedObject, open, "unterminated object starting at position %d", open.Offset)
	}
	state := objKeyOrClose
	trailingComma := false
	for {
		st.SkipSpaces()
		c, ok := st.Peek()
		if !ok {
			return nil, unterminated()
		}
		if state == objCommaOrClose {
			switch c {
			case ',':
				st.Advance(1)
				trailingComma = true
				state = objKeyOrClose
				if d.opt.Strict {
					state = objKey
				}
			case '}':
				st.Advance(1)
				return obj, nil
			default:
				return nil, d.errorf(CodeExpectedCommaOrBrace, "expecting ',' or '}' at position %d", st.Pos().Offset)
			}
			continue
		}
		if c == '}' && state == objKeyOrClose {
			st.Advance(1)
			return obj, nil
		}
		if c != '"' && (c != '\'' || d.opt.Strict) {
			if trailingComma {
				return nil, d.errorf(CodeExpectedKey, "expecting object property name rather than trailing comma at position %d", st.Pos().Offset)
			}
			return nil, d.errorf(CodeExpectedKey, "expecting object property name at position %d", st.Pos().Offset)
		}
		trailingComma = false

		keyPos := st.Pos()
		name, _, err := st.DecodeString()
		if err != nil {
			return nil, d.wrap(err)
		}
		if err := d.checkDuplicate(obj, name, keyPos); err != nil {
			return nil, err
		}

		st.SkipSpaces()
		c, ok = st.Peek()
		if !ok {
			return nil, unterminated()
		}
		if c != ':' {
			return nil, d.errorf(CodeMissingColon, "missing colon after object property name at position %d", st.Pos().Offset)
		}
		st.Advance(1)
		st.SkipSpaces()
		c, ok = st.Peek()
		if !ok {
			return nil, unterminated()
		}
		if c == ',' || c == '}' {
			return nil, d.errorf(CodeExpectedValue, "expecting object property value at position %d", st.Pos().Offset)
		}

		d.tr.PushKey(name)
		v, err := d.value()
		d.tr.Pop()
		if err != nil {
			return nil, err
		}
		obj.Set(name, v)
		state = objCommaOrClose
	}
}

// checkDuplicate applies the duplicate-key policy before a repeated member
// overwrites the earlier value.
func (d *decoder) checkDuplicate(obj *Value, name string, pos engine.Position) error {
	sev := d.opt.Strictness.OnDuplicateKey
	if sev == Ignore {
		return nil
	}
	if _, exists := obj.Get(name); !exists {
		return nil
	}
	msg := fmt.Sprintf("duplicate object property name %q at position %d", name, pos.Offset)
	path := d.tr.ChildPointer(name)
	if sev == Error {
		return &DecodeError{Code: CodeDuplicateKey, Message: msg, Pos: Position(pos), Path: path}
	}
	if d.opt.IssueSink != nil {
		d.opt.IssueSink(Issue{Path: path, Code: CodeDuplicateKey, Message: msg, Pos: Position(pos)})
	}
	return nil
}

func (d *decoder) errorf(code, format string, args ...any) error {
	return d.failAt(code, d.st.Pos(), format, args...)
}

func (d *decoder) failAt(code string, pos engine.Position, format string, args ...any) error {
	return fromSyntax(engine.Errorf(code, pos, format, args...), d.tr.Pointer())
}

func (d *decoder) wrap(err error) error {
	var se *engine.SyntaxError
	if errors.As(err, &se) {
		return fromSyntax(se, d.tr.Pointer())
	}
	return err
}
