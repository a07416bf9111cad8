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

func runWith(t *testing.T, input string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(input), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun(t *testing.T) {
	code, out, _ := runWith(t, `{"b":1,"a":2}`, "-b", "std")
	assert.Equal(t, 0, code)
	assert.Equal(t, "{\"a\":2,\"b\":1}\n", out)

	code, out, _ = runWith(t, `[1]`, "--backend", "jsoniter", "--pretty")
	assert.Equal(t, 0, code)
	assert.Equal(t, "[\n  1\n]\n", out)

	code, out, _ = runWith(t, `{"at":"20220403"}`, "-b", "go-json", "-d")
	assert.Equal(t, 0, code)
	assert.Equal(t, "{\"at\":\"2022-04-03 00:00:00\"}\n", out)
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"x":true}`), 0o644))

	code, out, _ := runWith(t, "", "-b", "std", path)
	assert.Equal(t, 0, code)
	assert.Equal(t, "{\"x\":true}\n", out)

	code, _, errOut := runWith(t, "", filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Error: ")
}

func TestRunErrors(t *testing.T) {
	code, _, errOut := runWith(t, `{"a":`, "-b", "std")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Error: jsonlike: parse object")

	code, _, errOut = runWith(t, `{}`, "-b", "nope")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "unknown backend: nope")

	code, _, _ = runWith(t, `{}`, "--no-such-flag")
	assert.Equal(t, 2, code)

	code, _, _ = runWith(t, `{}`, "a.json", "b.json")
	assert.Equal(t, 2, code)

	code, _, errOut = runWith(t, "", "-b", "std")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "empty body")
}

func TestVerbose(t *testing.T) {
	code, _, errOut := runWith(t, `{}`, "-b", "std", "-v")
	assert.Equal(t, 0, code)
	assert.Contains(t, errOut, "jsonlike: mapper created: trees: encoding/json")
}
