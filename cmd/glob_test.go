// Copyright © 2024 The ELPS authors

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterExcludes(t *testing.T) {
	paths := []string{
		"src/main.lisp",
		"src/generated_foo.lisp",
		"build/sub/deep.lisp",
		"lib/utils.lisp",
	}
	tests := []struct {
		name     string
		excludes []string
		expected []string
	}{
		{"none", nil, paths},
		{"name", []string{"utils.lisp"}, []string{"src/main.lisp", "src/generated_foo.lisp", "build/sub/deep.lisp"}},
		{"directory", []string{"build"}, []string{"src/main.lisp", "src/generated_foo.lisp", "lib/utils.lisp"}},
		{"glob", []string{"generated_*"}, []string{"src/main.lisp", "build/sub/deep.lisp", "lib/utils.lisp"}},
		{"multiple", []string{"build", "src/*.lisp"}, []string{"lib/utils.lisp"}},
		{"no match", []string{"nonexistent"}, paths},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, filterExcludes(paths, test.excludes))
		})
	}
}

func TestSplitPath(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c.lisp"}, splitPath("./a/b/c.lisp"))
}

func TestExpandArgs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	for _, name := range []string{"a.lisp", "sub/b.lisp", "sub/notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("()"), 0o600))
	}

	files, err := expandArgs([]string{dir + "/...", "other.lisp"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.lisp"),
		filepath.Join(dir, "sub", "b.lisp"),
		"other.lisp",
	}, files)

	_, err = expandArgs([]string{filepath.Join(dir, "missing") + "/..."})
	assert.Error(t, err)
}
