package loosejson_test

import (
	"math"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lj "github.com/reoring/loosejson"
)

type label string

type release struct {
	Name    string            `json:"name"`
	Version int               `loosejson:"v"`
	Tags    []string          `json:"tags,omitempty"`
	Meta    map[label]float64 `json:"meta"`
	Skip    bool              `json:"-"`
	private int
}

func TestUnmarshal_NativeShapes(t *testing.T) {
	got, err := lj.Unmarshal(`{"a": [1, 2.5, "x", null, true], 'b': {}}`)
	require.NoError(t, err)
	want := map[string]any{
		"a": []any{int64(1), 2.5, "x", nil, true},
		"b": map[string]any{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Unmarshal mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshal_GoValues(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, "null"},
		{uint8(7), "7"},
		{float32(0.5), "0.5"},
		{[]int{1, 2}, "[1, 2]"},
		{[2]bool{true, false}, "[true, false]"},
		{map[string]any{"b": 1, "a": "x"}, `{"a": "x", "b": 1}`},
		{json.Number("12"), "12"},
		{json.Number("1.5"), "1.5"},
		{lj.Array(lj.Int(1)), "[1]"},
		{&release{Name: "n", Version: 2, Meta: map[label]float64{"z": 1, "y": 2}, Skip: true, private: 3},
			`{"name": "n", "v": 2, "meta": {"y": 2.0, "z": 1.0}}`},
		{[]any{nil, (*int)(nil), []int(nil), map[string]int(nil)}, "[null, null, null, null]"},
	}
	for _, tc := range cases {
		got, err := lj.Marshal(tc.in)
		require.NoError(t, err, "%#v", tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestFromAny_Failures(t *testing.T) {
	type node struct{ Next *node }
	loop := &node{}
	loop.Next = loop

	selfMap := map[string]any{}
	selfMap["me"] = selfMap

	selfSlice := []any{nil}
	selfSlice[0] = selfSlice

	cases := []struct {
		name string
		in   any
		code string
		path string
	}{
		{"int keys", map[int]string{1: "a"}, lj.CodeNonStringKey, "/"},
		{"channel", []any{make(chan int)}, lj.CodeNotEncodable, "/0"},
		{"big uint", map[string]uint64{"u": math.MaxUint64}, lj.CodeNotEncodable, "/u"},
		{"pointer loop", loop, lj.CodeSelfReference, "/Next"},
		{"map loop", selfMap, lj.CodeSelfReference, "/me"},
		{"slice loop", selfSlice, lj.CodeSelfReference, "/0"},
		{"bad number", json.Number("1x"), lj.CodeNotEncodable, "/"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := lj.FromAny(tc.in)
			ee, ok := lj.AsEncodeError(err)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, tc.code, ee.Code)
			assert.Equal(t, tc.path, ee.Path)
		})
	}
}

func TestInterface_RoundTripsThroughFromAny(t *testing.T) {
	v, err := lj.Decode(`{"list": [1, {"deep": -2.5e-3}], "s": "é"}`)
	require.NoError(t, err)
	back, err := lj.FromAny(v.Interface())
	require.NoError(t, err)
	assert.True(t, lj.Equal(v, back))
}
