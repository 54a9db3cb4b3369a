// Copyright © 2024 The ELPS authors

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/luthersystems/ares/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRun(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := RunCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRunExpression(t *testing.T) {
	out, _, err := runRun(t, "-p", "-e", "(+ 1 2)", `(define x 4)`, "(* x x)")
	require.NoError(t, err)
	assert.Equal(t, "3\n4\n16\n", out)

	_, _, err = runRun(t, "-e", "(car 1)")
	assert.ErrorIs(t, err, lisp.ErrUndefinedName)
	assert.Contains(t, err.Error(), "expression 1: ")
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name, text string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
		return path
	}
	lib := write("a/lib.lisp", `(define square (lambda (x) (* x x)))`)
	main := write("main.lisp", `(print (square 7))`)
	write("a/vendor/bad.lisp", `(undefined-fn)`)

	_, stderr, err := runRun(t, lib, main)
	require.NoError(t, err)
	assert.Contains(t, stderr, "49")

	_, _, err = runRun(t, dir+"/a/...")
	assert.ErrorIs(t, err, lisp.ErrUndefinedName)

	_, _, err = runRun(t, "--exclude", "vendor", dir+"/a/...", main)
	assert.NoError(t, err)

	_, _, err = runRun(t, filepath.Join(dir, "missing.lisp"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunCallgrind(t *testing.T) {
	out := filepath.Join(t.TempDir(), "callgrind.out")
	_, _, err := runRun(t, "--callgrind", out, "-e",
		`(define add-it (lambda (x y) (+ x y)))`, `(add-it 1 2)`)
	require.NoError(t, err)
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "version: 1\ncreator: ares"), "unexpected header: %.40q", b)
	assert.Contains(t, string(b), "add-it")
}

func TestRunTrace(t *testing.T) {
	_, stderr, err := runRun(t, "--trace", "--no-foreign", "-e",
		`(define add-it (lambda (x y) (+ x y)))`, `(add-it 1 2)`)
	require.NoError(t, err)
	assert.Contains(t, stderr, "span=add-it\n")
	assert.NotContains(t, stderr, "span=+\n")
}

func TestRunProfilersExclusive(t *testing.T) {
	out := filepath.Join(t.TempDir(), "callgrind.out")
	_, _, err := runRun(t, "--trace", "--callgrind", out, "-e", "1")
	assert.Error(t, err)
}
