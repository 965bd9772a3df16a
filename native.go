package loosejson

import (
	"fmt"
	"math"
	"reflect"
	"sort"

	json "github.com/goccy/go-json"

	"github.com/reoring/loosejson/internal/engine"
)

// FromAny builds a value tree from Go data: nil, booleans, integers,
// floats, strings, json.Number, *Value, slices, arrays, maps with
// string-kinded keys (emitted in sorted key order), structs (exported fields
// named by the loosejson or json tag) and pointers to any of these.
func FromAny(x any) (*Value, error) {
	c := &converter{
		tr:   engine.NewTracker(DefaultMaxDepth),
		seen: map[visitKey]struct{}{},
	}
	return c.convert(reflect.ValueOf(x))
}

// Marshal is FromAny followed by Encode.
func Marshal(x any) (string, error) {
	v, err := FromAny(x)
	if err != nil {
		return "", err
	}
	return Encode(v)
}

// Unmarshal decodes text into Go-native data as returned by Interface.
func Unmarshal(text string, opts ...DecodeOpt) (any, error) {
	v, err := Decode(text, opts...)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// Interface converts v into nil, bool, int64, float64, string, []any or
// map[string]any. v must be acyclic.
func (v *Value) Interface() any {
	switch v.Kind() {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.items))
		for i, it := range v.items {
			out[i] = it.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.obj.keys))
		for i, k := range v.obj.keys {
			out[k] = v.obj.vals[i].Interface()
		}
		return out
	}
	return nil
}

type visitKey struct {
	ptr uintptr
	typ reflect.Type
}

type converter struct {
	tr   *engine.Tracker
	seen map[visitKey]struct{}
}

var valuePtrType = reflect.TypeOf((*Value)(nil))

func (c *converter) convert(rv reflect.Value) (*Value, error) {
	if !rv.IsValid() {
		return Null(), nil
	}
	if rv.Type() == valuePtrType && rv.CanInterface() {
		if rv.IsNil() {
			return Null(), nil
		}
		return rv.Interface().(*Value), nil
	}
	if rv.CanInterface() {
		if n, ok := rv.Interface().(json.Number); ok {
			return c.number(n)
		}
	}

	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return c.convert(rv.Elem())
	case reflect.Pointer:
		if rv.IsNil() {
			return Null(), nil
		}
		var out *Value
		err := c.descend(rv, func() (err error) {
			out, err = c.convert(rv.Elem())
			return err
		})
		return out, err
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, c.fail(CodeNotEncodable, fmt.Sprintf("integer %d is not JSON encodable", u))
		}
		return Int(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Slice:
		if rv.IsNil() {
			return Null(), nil
		}
		var out *Value
		err := c.descend(rv, func() (err error) {
			out, err = c.sequence(rv)
			return err
		})
		return out, err
	case reflect.Array:
		return c.sequence(rv)
	case reflect.Map:
		if rv.IsNil() {
			return Null(), nil
		}
		if rv.Type().Key().Kind() != reflect.String {
			return nil, c.fail(CodeNonStringKey, fmt.Sprintf("key of type %s is not a string", rv.Type().Key()))
		}
		var out *Value
		err := c.descend(rv, func() (err error) {
			out, err = c.mapping(rv)
			return err
		})
		return out, err
	case reflect.Struct:
		return c.structure(rv)
	}
	return nil, c.fail(CodeNotEncodable, fmt.Sprintf("object of type %s is not JSON encodable", rv.Type()))
}

// descend guards a reference-typed node against cycles and runaway depth.
func (c *converter) descend(rv reflect.Value, fn func() error) error {
	key := visitKey{ptr: rv.Pointer(), typ: rv.Type()}
	if _, ok := c.seen[key]; ok {
		what := "object"
		if rv.Kind() == reflect.Slice {
			what = "array"
		}
		return c.fail(CodeSelfReference, "an "+what+" with references to itself is not JSON encodable")
	}
	if !c.tr.Enter() {
		c.tr.Leave()
		return c.fail(CodeMaxDepth, fmt.Sprintf("maximum nesting depth of %d exceeded", c.tr.MaxDepth))
	}
	c.seen[key] = struct{}{}
	defer func() {
		delete(c.seen, key)
		c.tr.Leave()
	}()
	return fn()
}

func (c *converter) number(n json.Number) (*Value, error) {
	if i, err := n.Int64(); err == nil {
		return Int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil, c.fail(CodeNotEncodable, fmt.Sprintf("number %q is not JSON encodable", n.String()))
	}
	return Float(f), nil
}

func (c *converter) sequence(rv reflect.Value) (*Value, error) {
	n := rv.Len()
	items := make([]*Value, n)
	for i := 0; i < n; i++ {
		c.tr.PushIndex(i)
		v, err := c.convert(rv.Index(i))
		c.tr.Pop()
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return Array(items...), nil
}

func (c *converter) mapping(rv reflect.Value) (*Value, error) {
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	obj := NewObject()
	for _, k := range keys {
		name := k.String()
		c.tr.PushKey(name)
		v, err := c.convert(rv.MapIndex(k))
		c.tr.Pop()
		if err != nil {
			return nil, err
		}
		obj.Set(name, v)
	}
	return obj, nil
}

func (c *converter) structure(rv reflect.Value) (*Value, error) {
	t := rv.Type()
	obj := NewObject()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, omitEmpty := resolveStructKey(sf)
		if name == "-" {
			continue
		}
		fv := rv.Field(i)
		if omitEmpty && isEmptyValue(fv) {
			continue
		}
		c.tr.PushKey(name)
		v, err := c.convert(fv)
		c.tr.Pop()
		if err != nil {
			return nil, err
		}
		obj.Set(name, v)
	}
	return obj, nil
}

func (c *converter) fail(code, msg string) error {
	return &EncodeError{Code: code, Message: msg, Path: c.tr.Pointer()}
}
