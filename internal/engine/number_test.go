package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeNumber_Accepts(t *testing.T) {
	cases := []struct {
		in      string
		strict  bool
		isFloat bool
		i       int64
		f       float64
		rest    int
	}{
		{in: "0", i: 0},
		{in: "-12", i: -12},
		{in: "+7", i: 7},
		{in: "3.25", isFloat: true, f: 3.25},
		{in: "1e3", isFloat: true, f: 1000},
		{in: "2E-2", isFloat: true, f: 0.02},
		{in: "-0.5e+1", isFloat: true, f: -5},
		{in: ".5", isFloat: true, f: 0.5},
		{in: "-.25", isFloat: true, f: -0.25},
		{in: "12]", i: 12, rest: 1},
		{in: "9223372036854775807", strict: true, i: math.MaxInt64},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			s := NewState([]byte(tc.in), tc.strict, false)
			n, err := s.DecodeNumber()
			require.NoError(t, err)
			assert.Equal(t, tc.isFloat, n.IsFloat)
			if tc.isFloat {
				assert.Equal(t, tc.f, n.Float)
			} else {
				assert.Equal(t, tc.i, n.Int)
			}
			assert.Equal(t, len(tc.in)-tc.rest, s.Pos().Offset)
		})
	}
}

func TestDecodeNumber_Rejects(t *testing.T) {
	cases := []struct {
		in     string
		strict bool
	}{
		{in: "01"},
		{in: "-"},
		{in: "1."},
		{in: "1.e5"},
		{in: "1e"},
		{in: "1e+"},
		{in: ".5", strict: true},
		{in: "."},
		{in: "9223372036854775808"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			s := NewState([]byte(tc.in), tc.strict, false)
			_, err := s.DecodeNumber()
			var se *SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, CodeInvalidNumber, se.Code)
			assert.Equal(t, "invalid number starting at position 0", se.Message)
			assert.Equal(t, 0, s.Pos().Offset)
		})
	}
}

func TestDecodeNumber_FloatOverflowSaturates(t *testing.T) {
	s := NewState([]byte("-1e999"), true, false)
	n, err := s.DecodeNumber()
	require.NoError(t, err)
	assert.True(t, math.IsInf(n.Float, -1))
}
