package gojson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/loosejson"
	"github.com/reoring/loosejson/internal/engine"
)

func TestWriter_DepthFailureUnwindsTracker(t *testing.T) {
	w := &writer{tr: engine.NewTracker(2), visiting: map[*loosejson.Value]struct{}{}}
	err := w.write(loosejson.Array(loosejson.Array(loosejson.Array())))
	ee, ok := loosejson.AsEncodeError(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, loosejson.CodeMaxDepth, ee.Code)
	assert.Equal(t, 0, w.tr.Depth())
	assert.Empty(t, w.visiting)

	w.buf.Reset()
	require.NoError(t, w.write(loosejson.Array(loosejson.Array(loosejson.Int(1)))))
	assert.Equal(t, "[[1]]", w.buf.String())
}
