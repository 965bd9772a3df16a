package yamlconv_test

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/loosejson"
	"github.com/reoring/loosejson/bridge/yamlconv"
)

func TestRoundTrip(t *testing.T) {
	v, err := loosejson.Decode(`{
		// strings that look like other scalar kinds must stay strings
		"zeta": [1, -2.5, 1e16, true, null, "true", "123", "", "multi\nline"],
		"alpha": {"nested": {"k": 'v'}, "empty": [], "obj": {}},
		"inf": [Infinity, -Infinity],
	}`)
	require.NoError(t, err)

	y, err := yamlconv.ToYAML(v)
	require.NoError(t, err)
	back, err := yamlconv.FromYAML(y)
	require.NoError(t, err, string(y))
	assert.True(t, loosejson.Equal(v, back), string(y))
	assert.Equal(t, []string{"zeta", "alpha", "inf"}, back.Keys())
}

func TestToYAML_Layout(t *testing.T) {
	v := loosejson.Object(
		loosejson.Member{Key: "b", Value: loosejson.Int(1)},
		loosejson.Member{Key: "a", Value: loosejson.Array(loosejson.String("x"), loosejson.Float(2))},
	)
	y, err := yamlconv.ToYAML(v)
	require.NoError(t, err)
	assert.Equal(t, "b: 1\na:\n    - x\n    - 2.0\n", string(y))
}

func TestFromYAML_Features(t *testing.T) {
	doc := []byte(`
base: &base
  name: demo
  ratio: .5
copy: *base
flags: [yes, true, ~]
big: 0x10
nan: .nan
`)
	v, err := yamlconv.FromYAML(doc)
	require.NoError(t, err)

	base, _ := v.Get("base")
	cp, _ := v.Get("copy")
	assert.True(t, loosejson.Equal(base, cp))

	flags, _ := v.Get("flags")
	s, _ := flags.Index(0).AsString()
	assert.Equal(t, "yes", s)
	b, _ := flags.Index(1).AsBool()
	assert.True(t, b)
	assert.True(t, flags.Index(2).IsNull())

	big, _ := v.Get("big")
	n, ok := big.AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(16), n)

	nan, _ := v.Get("nan")
	assert.True(t, nan.IsNaN())
	f, _ := nan.AsFloat()
	assert.True(t, math.IsNaN(f))
}

func TestFromYAML_EmptyAndInvalid(t *testing.T) {
	v, err := yamlconv.FromYAML(nil)
	require.NoError(t, err)
	assert.True(t, v.IsNull())

	_, err = yamlconv.FromYAML([]byte("a: [1, 2"))
	assert.Error(t, err)

	_, err = yamlconv.FromYAML([]byte("? [1, 2]\n: x\n"))
	assert.Error(t, err)
}

func TestToYAML_RejectsCycles(t *testing.T) {
	arr := loosejson.Array()
	arr.Append(arr)
	_, err := yamlconv.ToYAML(arr)
	ee, ok := loosejson.AsEncodeError(err)
	require.True(t, ok)
	assert.Equal(t, loosejson.CodeSelfReference, ee.Code)
}

// nestedAnchors builds a document whose level N anchor holds ten aliases of
// level N-1, so the expanded size grows tenfold per level.
func nestedAnchors(levels int) string {
	var b strings.Builder
	b.WriteString("a0: &a0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= levels; i++ {
		refs := strings.TrimSuffix(strings.Repeat(fmt.Sprintf("*a%d, ", i-1), 10), ", ")
		fmt.Fprintf(&b, "a%d: &a%d [%s]\n", i, i, refs)
	}
	return b.String()
}

func TestFromYAML_BoundsAliasExpansion(t *testing.T) {
	v, err := yamlconv.FromYAML([]byte(nestedAnchors(2)))
	require.NoError(t, err)
	a2, ok := v.Get("a2")
	require.True(t, ok)
	require.Equal(t, 10, a2.Len())
	assert.Equal(t, 10, a2.Index(9).Len())

	_, err = yamlconv.FromYAML([]byte(nestedAnchors(9)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alias expansion exceeds")
}
