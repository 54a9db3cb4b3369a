// Copyright © 2024 The ELPS authors

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/luthersystems/ares/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runDoc(t *testing.T, opts []Option, args ...string) (string, error) {
	t.Helper()
	cmd := DocCommand(opts...)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDocCommand_DefaultFlags(t *testing.T) {
	cmd := DocCommand()
	assert.Equal(t, "doc [flags] [QUERY]", cmd.Use)

	for _, name := range []string{"source-file", "missing"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag: %s", name)
	}
}

func TestDocCommand_Query(t *testing.T) {
	out, err := runDoc(t, nil, "length")
	require.NoError(t, err)
	assert.Equal(t, "free foreign-fn length\n  Returns the number of elements in list.\n", out)

	out, err = runDoc(t, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "map\n")
	assert.Contains(t, out, "length ")

	_, err = runDoc(t, nil, "fnord")
	assert.ErrorIs(t, err, lisp.ErrUndefinedName)
}

func TestDocCommand_SourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.lisp")
	require.NoError(t, os.WriteFile(path, []byte(`(define twice (lambda (x) (* 2 x)))`), 0o600))

	out, err := runDoc(t, nil, "-f", path, "twice")
	require.NoError(t, err)
	assert.Equal(t, "lambda (twice x)\n", out)

	require.NoError(t, os.WriteFile(path, []byte(`(twice 1)`), 0o600))
	_, err = runDoc(t, nil, "-f", path, "twice")
	assert.ErrorIs(t, err, lisp.ErrUndefinedName)
}

func TestDocCommand_WithSetup(t *testing.T) {
	setup := WithSetup(func(ctx *lisp.Context[struct{}]) error {
		f := lisp.FreeFn("my-helper", func(args []lisp.Value) (lisp.Value, error) {
			return lisp.Int(len(args)), nil
		})
		f.Doc = `Counts its arguments.`
		ctx.SetFn("my-helper", f)
		return nil
	})
	out, err := runDoc(t, []Option{setup}, "my-helper")
	require.NoError(t, err)
	assert.Equal(t, "free foreign-fn my-helper\n  Counts its arguments.\n", out)
}

func TestDocCommand_Missing(t *testing.T) {
	out, err := runDoc(t, nil, "-m")
	assert.Error(t, err)
	assert.Equal(t, "free foreign-fn join\nfree foreign-fn lowercase\nfree foreign-fn split\nfree foreign-fn uppercase\n", out)
}
