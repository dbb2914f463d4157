// Released under an MIT license. See LICENSE.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type result struct {
	code   int
	stderr string
	stdout string
}

func invoke(t *testing.T, stdin string, argv ...string) result {
	t.Helper()

	var stdout, stderr bytes.Buffer

	code := run(context.Background(), argv, false, strings.NewReader(stdin), &stdout, &stderr)

	return result{code: code, stderr: stderr.String(), stdout: stdout.String()}
}

func functions(t *testing.T, files map[string]string) (string, string) {
	t.Helper()

	dir := t.TempDir()
	for name, text := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644))
	}

	config := filepath.Join(t.TempDir(), "autofn.yaml")
	require.NoError(t, os.WriteFile(config, []byte("function_path: []\nlog:\n  level: error\nwatch: false\n"), 0o644))

	return dir, config
}

func TestCallCommand(t *testing.T) {
	dir, config := functions(t, map[string]string{
		"greet.fn": "function greet -a who\n    echo hello $who\nend\n",
	})

	r := invoke(t, "", "-p", dir, "-c", config, "call", "greet", "world", "again")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "argv=world again\nwho=world\n", r.stdout)
}

func TestListCommand(t *testing.T) {
	dir, config := functions(t, map[string]string{
		"_private.fn": "function _private\nend\n",
		"ls.fn":       "function ls\nend\n",
		"lx.fn":       "function lx\nend\n",
		"notes.txt":   "not a function\n",
	})

	r := invoke(t, "", "-p", dir, "-c", config, "list")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "ls\nlx\n", r.stdout)

	r = invoke(t, "", "-p", dir, "-c", config, "list", "-a", "_*")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "_private\n", r.stdout)
}

func TestShowMissing(t *testing.T) {
	dir, config := functions(t, nil)

	r := invoke(t, "", "-p", dir, "-c", config, "show", "nothing")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "no such function: nothing")
}

func TestStdin(t *testing.T) {
	dir, config := functions(t, map[string]string{
		"outer.fn": "function outer\n    inner\nend\nfunction inner\nend\n",
	})

	input := strings.Join([]string{
		"function mine -d 'my function'",
		"    echo mine",
		"end",
		"exists outer",
		"exists inner",
		"show mine",
	}, "\n")

	r := invoke(t, input, "-p", dir, "-c", config)
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "# Defined interactively\nfunction mine --description $'my function'\n    echo mine\nend\n", r.stdout)
}

func TestStdinErrors(t *testing.T) {
	dir, config := functions(t, nil)

	r := invoke(t, "frobnicate\nlist\n", "-p", dir, "-c", config)
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "unknown command: frobnicate")
}

func TestWatchedList(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "w.fn"), []byte("function w\nend\n"), 0o644))

	config := filepath.Join(t.TempDir(), "autofn.yaml")
	require.NoError(t, os.WriteFile(config, []byte("function_path: []\nwatch: true\n"), 0o644))

	r := invoke(t, "", "-p", dir, "-c", config, "list")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "w\n", r.stdout)
}
