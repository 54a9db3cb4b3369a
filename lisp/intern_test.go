// Copyright © 2018 The ELPS authors

package lisp_test

import (
	"testing"

	"github.com/luthersystems/ares/lisp"
	"github.com/stretchr/testify/assert"
)

func TestInterner(t *testing.T) {
	in := lisp.NewInterner()
	a := in.Intern("a")
	b := in.Intern("b")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, in.Intern("a"))

	name, ok := in.Lookup(b)
	assert.True(t, ok)
	assert.Equal(t, "b", name)

	sym, ok := in.SymbolForName("a")
	assert.True(t, ok)
	assert.Equal(t, a, sym)
	_, ok = in.SymbolForName("c")
	assert.False(t, ok)
	assert.False(t, in.Contains("c"))

	anon := in.GenSym()
	assert.NotEqual(t, a, anon)
	assert.NotEqual(t, b, anon)
	_, ok = in.Lookup(anon)
	assert.False(t, ok)
	assert.Contains(t, in.LookupOrAnon(anon), "s")

	g := in.GenSymPrefix("tmp")
	gname := in.LookupOrAnon(g)
	assert.Contains(t, gname, "tmp")
	// Interning the printed name of a gensym yields a different symbol.
	assert.NotEqual(t, g, in.Intern(gname))
}
