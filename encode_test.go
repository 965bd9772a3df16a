package loosejson_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lj "github.com/reoring/loosejson"
)

func mustEncode(t *testing.T, v *lj.Value) string {
	t.Helper()
	s, err := lj.Encode(v)
	require.NoError(t, err)
	return s
}

func TestEncode_Basics(t *testing.T) {
	cases := []struct {
		v    *lj.Value
		want string
	}{
		{lj.NewObject(), "{}"},
		{lj.Array(), "[]"},
		{lj.Null(), "null"},
		{nil, "null"},
		{lj.Bool(true), "true"},
		{lj.Bool(false), "false"},
		{lj.Int(-12), "-12"},
		{lj.Float(3.5), "3.5"},
		{lj.String("x"), `"x"`},
		{lj.Array(lj.Int(1), lj.String("a"), nil), `[1, "a", null]`},
		{lj.Object(
			lj.Member{Key: "k", Value: lj.Int(1)},
			lj.Member{Key: "k2", Value: lj.Array(lj.Bool(true))},
		), `{"k": 1, "k2": [true]}`},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, mustEncode(t, tc.v))
	}
}

func TestEncode_Floats(t *testing.T) {
	cases := []struct {
		f    float64
		want string
	}{
		{1, "1.0"},
		{-2, "-2.0"},
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{0.1, "0.1"},
		{1e-4, "0.0001"},
		{1e-5, "1e-05"},
		{1e15, "1000000000000000.0"},
		{1e16, "1e+16"},
		{1.5e300, "1.5e+300"},
		{123456789.125, "123456789.125"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, mustEncode(t, lj.Float(tc.f)))
		})
	}
}

func TestEncode_StringEscapes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`a"b`, `"a\"b"`},
		{`a\b`, `"a\\b"`},
		{"a/b", `"a\/b"`},
		{"\b\f\n\r\t", `"\b\f\n\r\t"`},
		{"\x00\x1f\x7f", `"\u0000\u001f\u007f"`},
		{"café", `"café"`},
		{"\u00a0", `"\u00a0"`},
		{"\u200b", `"\u200b"`},
		{"😀", `"😀"`},
		{"\U000e0001", `"\U000e0001"`},
		{"a\xffb", `"a\ufffdb"`},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, mustEncode(t, lj.String(tc.in)), "%q", tc.in)
	}
}

func TestEncode_SelfReference(t *testing.T) {
	arr := lj.Array(lj.Int(1))
	arr.Append(arr)
	_, err := lj.Encode(arr)
	ee, ok := lj.AsEncodeError(err)
	require.True(t, ok)
	assert.Equal(t, lj.CodeSelfReference, ee.Code)
	assert.Equal(t, "an array with references to itself is not JSON encodable", ee.Message)
	assert.Equal(t, "/1", ee.Path)

	obj := lj.NewObject()
	inner := lj.Array(obj)
	obj.Set("inner", inner)
	_, err = lj.Encode(obj)
	ee, ok = lj.AsEncodeError(err)
	require.True(t, ok)
	assert.Equal(t, "an object with references to itself is not JSON encodable", ee.Message)
	assert.Equal(t, "/inner/0", ee.Path)
	assert.Contains(t, err.Error(), "references to itself")
}

func TestEncode_SharedNodeIsNotACycle(t *testing.T) {
	shared := lj.Array(lj.Int(1))
	v := lj.Array(shared, shared, lj.Object(lj.Member{Key: "s", Value: shared}))
	assert.Equal(t, `[[1], [1], {"s": [1]}]`, mustEncode(t, v))
}

func TestEncode_CycleErrorLeavesEncoderReusable(t *testing.T) {
	loop := lj.Array()
	loop.Append(loop)
	_, err := lj.Encode(lj.Array(loop))
	require.Error(t, err)
	assert.Equal(t, "[[]]", mustEncode(t, lj.Array(lj.Array())))
}

func TestEncode_ZeroValueNotEncodable(t *testing.T) {
	_, err := lj.Encode(lj.Object(lj.Member{Key: "bad", Value: &lj.Value{}}))
	ee, ok := lj.AsEncodeError(err)
	require.True(t, ok)
	assert.Equal(t, lj.CodeNotEncodable, ee.Code)
	assert.Equal(t, "/bad", ee.Path)
	assert.Equal(t, "object is not JSON encodable at /bad", err.Error())
}

func TestEncode_MaxDepth(t *testing.T) {
	v := lj.Array()
	cur := v
	for i := 0; i < 5; i++ {
		next := lj.Array()
		cur.Append(next)
		cur = next
	}
	_, err := lj.EncodeWith(v, lj.EncodeOpt{MaxDepth: 3})
	ee, ok := lj.AsEncodeError(err)
	require.True(t, ok)
	assert.Equal(t, lj.CodeMaxDepth, ee.Code)
	assert.Equal(t, "/0/0/0", ee.Path)

	s, err := lj.EncodeWith(v, lj.EncodeOpt{MaxDepth: 6})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("[", 6)+strings.Repeat("]", 6), s)
}
