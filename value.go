package loosejson

import (
	"fmt"
	"math"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindInvalid Kind = iota // zero Value; not encodable
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "invalid"
}

// Value is a node of a decoded document. Containers hold pointers to their
// children, so a tree built by hand may share nodes or even contain cycles;
// the encoder rejects the latter.
type Value struct {
	kind  Kind
	b     bool
	i     int64
	f     float64
	s     string
	wide  bool
	items []*Value
	obj   *object
}

// Member is one object entry.
type Member struct {
	Key   string
	Value *Value
}

type object struct {
	keys  []string
	vals  []*Value
	index map[string]int
}

func Null() *Value { return &Value{kind: KindNull} }
func Bool(b bool) *Value { return &Value{kind: KindBool, b: b} }
func Int(i int64) *Value { return &Value{kind: KindInt, i: i} }
func Float(f float64) *Value { return &Value{kind: KindFloat, f: f} }
func String(s string) *Value { return &Value{kind: KindString, s: s} }
func wideString(s string) *Value {
	return &Value{kind: KindString, s: s, wide: true}
}

// Array returns an array holding items in order.
func Array(items ...*Value) *Value {
	v := &Value{kind: KindArray, items: make([]*Value, 0, len(items))}
	v.items = append(v.items, items...)
	return v
}

// NewObject returns an empty object.
func NewObject() *Value {
	return &Value{kind: KindObject, obj: &object{index: map[string]int{}}}
}

// Object returns an object built by calling Set for each member in order.
func Object(members ...Member) *Value {
	v := NewObject()
	for _, m := range members {
		v.Set(m.Key, m.Value)
	}
	return v
}

// Kind reports the variant. A nil *Value reads as null.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

func (v *Value) IsNull() bool { return v.Kind() == KindNull }

func (v *Value) AsBool() (bool, bool) {
	if v.Kind() != KindBool {
		return false, false
	}
	return v.b, true
}

func (v *Value) AsInt() (int64, bool) {
	if v.Kind() != KindInt {
		return 0, false
	}
	return v.i, true
}

func (v *Value) AsFloat() (float64, bool) {
	if v.Kind() != KindFloat {
		return 0, false
	}
	return v.f, true
}

func (v *Value) AsString() (string, bool) {
	if v.Kind() != KindString {
		return "", false
	}
	return v.s, true
}

// IsWide reports whether a string went through the Unicode decoding path.
func (v *Value) IsWide() bool { return v.Kind() == KindString && v.wide }

// IsNaN reports whether v is a float NaN.
func (v *Value) IsNaN() bool { return v.Kind() == KindFloat && math.IsNaN(v.f) }

// Len is the number of array items or object members, 0 otherwise.
func (v *Value) Len() int {
	switch v.Kind() {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.obj.keys)
	}
	return 0
}

// Index returns the i-th array item, or nil when out of range.
func (v *Value) Index(i int) *Value {
	if v.Kind() != KindArray || i < 0 || i >= len(v.items) {
		return nil
	}
	return v.items[i]
}

// Items returns the array items. The slice is shared with v.
func (v *Value) Items() []*Value {
	if v.Kind() != KindArray {
		return nil
	}
	return v.items
}

// Append adds items to an array.
func (v *Value) Append(items ...*Value) {
	v.mustBe(KindArray, "Append")
	v.items = append(v.items, items...)
}

// Get looks up an object member.
func (v *Value) Get(key string) (*Value, bool) {
	if v.Kind() != KindObject {
		return nil, false
	}
	i, ok := v.obj.index[key]
	if !ok {
		return nil, false
	}
	return v.obj.vals[i], true
}

// Set stores val under key. A repeated key keeps the position of its first
// insertion; the return value reports whether an earlier value was replaced.
func (v *Value) Set(key string, val *Value) bool {
	v.mustBe(KindObject, "Set")
	if i, ok := v.obj.index[key]; ok {
		v.obj.vals[i] = val
		return true
	}
	v.obj.index[key] = len(v.obj.keys)
	v.obj.keys = append(v.obj.keys, key)
	v.obj.vals = append(v.obj.vals, val)
	return false
}

// Keys returns the object keys in insertion order.
func (v *Value) Keys() []string {
	if v.Kind() != KindObject {
		return nil
	}
	return append([]string(nil), v.obj.keys...)
}

// Members returns the object entries in insertion order.
func (v *Value) Members() []Member {
	if v.Kind() != KindObject {
		return nil
	}
	out := make([]Member, len(v.obj.keys))
	for i, k := range v.obj.keys {
		out[i] = Member{Key: k, Value: v.obj.vals[i]}
	}
	return out
}

func (v *Value) mustBe(k Kind, op string) {
	if v.Kind() != k {
		panic(fmt.Sprintf("loosejson: %s on %s value", op, v.Kind()))
	}
}

// Equal reports structural equality. Kinds must match exactly, so Int(1)
// and Float(1) differ; NaN equals NaN; object member order is ignored.
// Nesting depth is unbounded. Cyclic trees compare equal when their
// unrolled structures match.
func Equal(a, b *Value) bool {
	return (&comparer{}).equal(a, b)
}

type valuePair struct{ a, b *Value }

// comparer tracks the container pairs on the current descent path; a pair
// met again while still active compares equal.
type comparer struct {
	active map[valuePair]struct{}
}

func (c *comparer) equal(a, b *Value) bool {
	if a == b {
		return true
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindInvalid, KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindInt:
		return a.i == b.i
	case KindFloat:
		if math.IsNaN(a.f) || math.IsNaN(b.f) {
			return math.IsNaN(a.f) && math.IsNaN(b.f)
		}
		return a.f == b.f && math.Signbit(a.f) == math.Signbit(b.f)
	case KindString:
		return a.s == b.s
	}

	p := valuePair{a, b}
	if _, ok := c.active[p]; ok {
		return true
	}
	if c.active == nil {
		c.active = map[valuePair]struct{}{}
	}
	c.active[p] = struct{}{}
	defer delete(c.active, p)

	if a.Kind() == KindArray {
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !c.equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	}
	if len(a.obj.keys) != len(b.obj.keys) {
		return false
	}
	for i, k := range a.obj.keys {
		bv, ok := b.Get(k)
		if !ok || !c.equal(a.obj.vals[i], bv) {
			return false
		}
	}
	return true
}
