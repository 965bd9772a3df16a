package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestCheck_ReportsPositionAndTitle(t *testing.T) {
	code, out, _ := runCLI(t, "{\n  \"a\": 1\n", "check", "-")
	assert.Equal(t, 1, code)
	assert.Equal(t, "-:1:0: [unterminated_object] unterminated object: unterminated object starting at position 0\n", out)

	code, out, _ = runCLI(t, "[1, 2,] // fine", "check", "-")
	assert.Equal(t, 0, code)
	assert.Empty(t, out)

	code, _, _ = runCLI(t, "[1, 2,]", "check", "--strict", "-")
	assert.Equal(t, 1, code)
}

func TestCheck_DuplicatePolicies(t *testing.T) {
	code, out, _ := runCLI(t, `{"a": 1, "a": 2}`, "check", "--dup", "warn", "-")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "warning: [duplicate_key]")

	code, out, _ = runCLI(t, `{"a": 1, "a": 2}`, "check", "--dup=error", "--lang", "ja", "-")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "[duplicate_key] キーが重複しています")

	code, _, errOut := runCLI(t, `{}`, "check", "--dup", "maybe", "-")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "unknown duplicate policy")
}

func TestCheck_Files(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{'ok': true}`), 0o644))

	code, _, _ := runCLI(t, "", "check", good)
	assert.Equal(t, 0, code)

	code, _, errOut := runCLI(t, "", "check", filepath.Join(dir, "missing.json"))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "cannot read input")
}

func TestFmt(t *testing.T) {
	code, out, _ := runCLI(t, "{'b': [1, 2.0, 'x/y'], /* c */ \"a\": null,}", "fmt", "-")
	require.Equal(t, 0, code)
	assert.Equal(t, "{\"b\": [1, 2.0, \"x\\/y\"], \"a\": null}\n", out)
}

func TestConvert(t *testing.T) {
	code, out, _ := runCLI(t, "{'b': 1, 'a': [true]}", "convert", "--to", "json", "-")
	require.Equal(t, 0, code)
	assert.Equal(t, "{\"b\":1,\"a\":[true]}\n", out)

	code, out, _ = runCLI(t, "{'b': 1}", "convert", "--to", "yaml", "-")
	require.Equal(t, 0, code)
	assert.Equal(t, "b: 1\n", out)

	code, out, _ = runCLI(t, "b: 1\nc: [x]\n", "convert", "--from", "yaml", "--to", "loose", "-")
	require.Equal(t, 0, code)
	assert.Equal(t, "{\"b\": 1, \"c\": [\"x\"]}\n", out)

	code, out, _ = runCLI(t, `{"k": [1]}`, "convert", "--from", "json", "--to", "json", "--indent", "2", "-")
	require.Equal(t, 0, code)
	assert.Equal(t, "{\n  \"k\": [\n    1\n  ]\n}\n", out)

	code, _, errOut := runCLI(t, "[NaN]", "convert", "--to", "json", "--log-level", "error", "-")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "conversion failed")
}

func TestUsageAndFlags(t *testing.T) {
	code, _, errOut := runCLI(t, "")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "Usage:")

	code, _, _ = runCLI(t, "", "nope")
	assert.Equal(t, 2, code)

	code, _, errOut = runCLI(t, "1", "fmt", "--log-level", "loud", "-")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "unknown log level")

	code, _, _ = runCLI(t, "1", "convert", "-")
	assert.Equal(t, 2, code)
}
