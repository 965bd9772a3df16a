// Package gojson bridges value trees and standard JSON through
// goccy/go-json. Reading keeps object member order; writing emits members in
// tree order.
package gojson

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"

	"github.com/reoring/loosejson"
	"github.com/reoring/loosejson/internal/engine"
)

// FromJSON decodes standard JSON into a value tree.
func FromJSON(b []byte) (*loosejson.Value, error) { return FromReader(bytes.NewReader(b)) }

// FromReader decodes one standard JSON document from r. Numbers without a
// fraction or exponent that fit in int64 become Int; all others become Float.
func FromReader(r io.Reader) (*loosejson.Value, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	b := &builder{dec: dec, tr: engine.NewTracker(loosejson.DefaultMaxDepth)}
	v, err := b.value()
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, errors.New("gojson: extra data after top-level value")
	}
	return v, nil
}

type builder struct {
	dec *j.Decoder
	tr  *engine.Tracker
}

func (b *builder) next() (any, error) {
	tok, err := b.dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, io.ErrUnexpectedEOF
	}
	return tok, err
}

func (b *builder) value() (*loosejson.Value, error) {
	tok, err := b.next()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case j.Delim:
		if v != '[' && v != '{' {
			return nil, fmt.Errorf("gojson: unexpected %q at %s", rune(v), b.tr.Pointer())
		}
		if !b.tr.Enter() {
			b.tr.Leave()
			return nil, fmt.Errorf("gojson: maximum nesting depth of %d exceeded at %s", b.tr.MaxDepth, b.tr.Pointer())
		}
		defer b.tr.Leave()
		if v == '[' {
			return b.array()
		}
		return b.object()
	case string:
		return loosejson.String(v), nil
	case bool:
		return loosejson.Bool(v), nil
	case j.Number:
		return number(v)
	case float64:
		return loosejson.Float(v), nil
	case nil:
		return loosejson.Null(), nil
	}
	return nil, fmt.Errorf("gojson: unexpected token %T at %s", tok, b.tr.Pointer())
}

func (b *builder) array() (*loosejson.Value, error) {
	arr := loosejson.Array()
	for i := 0; b.dec.More(); i++ {
		b.tr.PushIndex(i)
		item, err := b.value()
		b.tr.Pop()
		if err != nil {
			return nil, err
		}
		arr.Append(item)
	}
	_, err := b.next() // ']'
	return arr, err
}

func (b *builder) object() (*loosejson.Value, error) {
	obj := loosejson.NewObject()
	for b.dec.More() {
		tok, err := b.next()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("gojson: expected object key at %s, got %v", b.tr.Pointer(), tok)
		}
		b.tr.PushKey(key)
		val, err := b.value()
		b.tr.Pop()
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}
	_, err := b.next() // '}'
	return obj, err
}

func number(n j.Number) (*loosejson.Value, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := n.Int64(); err == nil {
			return loosejson.Int(i), nil
		}
	}
	f, err := n.Float64()
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, fmt.Errorf("gojson: invalid number %q: %w", s, err)
	}
	return loosejson.Float(f), nil
}

// ToJSON renders v as compact standard JSON. NaN and infinities have no
// standard spelling and are rejected with not_encodable.
func ToJSON(v *loosejson.Value) ([]byte, error) {
	w := &writer{tr: engine.NewTracker(loosejson.DefaultMaxDepth), visiting: map[*loosejson.Value]struct{}{}}
	if err := w.write(v); err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}

// ToJSONIndent is ToJSON followed by indentation.
func ToJSONIndent(v *loosejson.Value, prefix, indent string) ([]byte, error) {
	b, err := ToJSON(v)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := j.Indent(&out, b, prefix, indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

type writer struct {
	buf      bytes.Buffer
	tr       *engine.Tracker
	visiting map[*loosejson.Value]struct{}
}

func (w *writer) write(v *loosejson.Value) error {
	switch v.Kind() {
	case loosejson.KindNull:
		w.buf.WriteString("null")
	case loosejson.KindBool:
		b, _ := v.AsBool()
		w.buf.WriteString(strconv.FormatBool(b))
	case loosejson.KindInt:
		i, _ := v.AsInt()
		w.buf.WriteString(strconv.FormatInt(i, 10))
	case loosejson.KindFloat:
		f, _ := v.AsFloat()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return w.fail(loosejson.CodeNotEncodable, fmt.Sprintf("%v is not representable in standard JSON", f))
		}
		w.buf.WriteString(floatJSON(f))
	case loosejson.KindString:
		s, _ := v.AsString()
		return w.str(s)
	case loosejson.KindArray, loosejson.KindObject:
		return w.container(v)
	default:
		return w.fail(loosejson.CodeNotEncodable, "object is not JSON encodable")
	}
	return nil
}

func (w *writer) container(v *loosejson.Value) error {
	if _, seen := w.visiting[v]; seen {
		return w.fail(loosejson.CodeSelfReference, "an "+v.Kind().String()+" with references to itself is not JSON encodable")
	}
	if !w.tr.Enter() {
		w.tr.Leave()
		return w.fail(loosejson.CodeMaxDepth, fmt.Sprintf("maximum nesting depth of %d exceeded", w.tr.MaxDepth))
	}
	w.visiting[v] = struct{}{}
	defer func() {
		delete(w.visiting, v)
		w.tr.Leave()
	}()

	if v.Kind() == loosejson.KindArray {
		w.buf.WriteByte('[')
		for i, it := range v.Items() {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			w.tr.PushIndex(i)
			err := w.write(it)
			w.tr.Pop()
			if err != nil {
				return err
			}
		}
		w.buf.WriteByte(']')
		return nil
	}
	w.buf.WriteByte('{')
	for i, m := range v.Members() {
		if i > 0 {
			w.buf.WriteByte(',')
		}
		if err := w.str(m.Key); err != nil {
			return err
		}
		w.buf.WriteByte(':')
		w.tr.PushKey(m.Key)
		err := w.write(m.Value)
		w.tr.Pop()
		if err != nil {
			return err
		}
	}
	w.buf.WriteByte('}')
	return nil
}

func (w *writer) str(s string) error {
	b, err := j.MarshalNoEscape(s)
	if err != nil {
		return err
	}
	w.buf.Write(b)
	return nil
}

func (w *writer) fail(code, msg string) error {
	return &loosejson.EncodeError{Code: code, Message: msg, Path: w.tr.Pointer()}
}

// floatJSON keeps a fraction or exponent so the number reads back as a float.
func floatJSON(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
