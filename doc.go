// Package loosejson provides:
//
// - A decoder for plain JSON (Strict) and a forgiving superset of it (the
// default): comments, trailing commas, single-quoted strings, leading-dot
// numbers and backslash line continuations
// - An encoder that writes a compact canonical text and rejects cycles
// - A stable error model (code, message, line/offset, JSON Pointer)
// - Conversion to and from Go-native data (FromAny, Interface, Marshal, Unmarshal)
//
// Design policy:
// - Keep only public APIs in the root package; put scanning under internal/engine.
// - Place format bridges under bridge/ and the CLI under cmd/loosejson.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	v, err := loosejson.Decode(text)
//	if de, ok := loosejson.AsDecodeError(err); ok {
//		fmt.Println(de.Code, de.Pos.Line, de.Pos.Column)
//	}
//	out, err := loosejson.Encode(v)
package loosejson
