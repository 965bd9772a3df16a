package loosejson

import (
	"reflect"
	"strings"
)

// resolveStructKey applies the rule used by FromAny to name a struct field.
// Priority: loosejson:"name" > json:"name" > field name; "-" drops the field.
func resolveStructKey(sf reflect.StructField) (name string, omitEmpty bool) {
	tag, ok := sf.Tag.Lookup("loosejson")
	if !ok {
		tag = sf.Tag.Get("json")
	}
	if tag == "-" {
		return "-", false
	}
	name, opts, _ := strings.Cut(tag, ",")
	for _, o := range strings.Split(opts, ",") {
		if strings.TrimSpace(o) == "omitempty" {
			omitEmpty = true
		}
	}
	if name == "" {
		name = sf.Name
	}
	return name, omitEmpty
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	}
	return false
}
