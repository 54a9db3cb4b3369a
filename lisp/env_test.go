// Copyright © 2018 The ELPS authors

package lisp_test

import (
	"testing"

	"github.com/luthersystems/ares/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnv(t *testing.T) {
	in := lisp.NewInterner()
	x, y := in.Intern("x"), in.Intern("y")
	root := lisp.NewEnv(nil)
	root.InsertHere(x, lisp.Int(1))
	child := lisp.NewEnvWithData(root, map[lisp.Symbol]lisp.Value{y: lisp.Int(2)})
	assert.Greater(t, child.ID, root.ID)
	assert.Same(t, root, child.Parent())
	assert.Nil(t, root.Parent())

	v, ok := child.Get(x)
	require.True(t, ok)
	assert.Equal(t, lisp.Int(1), v)
	assert.True(t, child.IsDefined(x))
	assert.False(t, child.IsDefinedAtThisLevel(x))
	assert.True(t, child.IsDefinedAtThisLevel(y))
	_, ok = root.Get(y)
	assert.False(t, ok)

	// Shadowing at the child level leaves the parent binding alone.
	child.InsertHere(x, lisp.Int(10))
	v, _ = child.Get(x)
	assert.Equal(t, lisp.Int(10), v)
	v, _ = root.Get(x)
	assert.Equal(t, lisp.Int(1), v)

	// WithValueMut updates the nearest binding only.
	ok = child.WithValueMut(x, func(v lisp.Value) lisp.Value { return v.(lisp.Int) + 1 })
	assert.True(t, ok)
	v, _ = child.Get(x)
	assert.Equal(t, lisp.Int(11), v)
	v, _ = root.Get(x)
	assert.Equal(t, lisp.Int(1), v)
	assert.False(t, child.WithValueMut(in.Intern("z"), func(v lisp.Value) lisp.Value { return v }))

	var seen lisp.Value
	assert.True(t, child.WithValue(y, func(v lisp.Value) { seen = v }))
	assert.Equal(t, lisp.Int(2), seen)

	all := child.AllDefined()
	assert.Len(t, all, 2)
	assert.Equal(t, lisp.Binding{Depth: 0, Value: lisp.Int(11)}, all[x])
	assert.Equal(t, lisp.Binding{Depth: 0, Value: lisp.Int(2)}, all[y])
	grand := lisp.NewEnv(child)
	assert.Equal(t, 1, grand.AllDefined()[y].Depth)
}

func TestEqual(t *testing.T) {
	in := lisp.NewInterner()
	m1, err := lisp.NewMapFromPairs([]lisp.Value{lisp.String("a"), lisp.Int(1)})
	require.NoError(t, err)
	m2, err := lisp.NewMap().Put(lisp.String("a"), lisp.Int(1))
	require.NoError(t, err)
	fn := lisp.FreeFn("f", func([]lisp.Value) (lisp.Value, error) { return nil, nil })
	ud := lisp.NewUserData(1)

	equal := []struct{ a, b lisp.Value }{
		{lisp.Int(1), lisp.Int(1)},
		{lisp.Float(1.5), lisp.Float(1.5)},
		{lisp.String("s"), lisp.String("s")},
		{in.Intern("a"), in.Intern("a")},
		{lisp.List{lisp.Int(1), lisp.List{}}, lisp.List{lisp.Int(1), lisp.List{}}},
		{m1, m2},
		{fn, fn},
		{ud, ud},
	}
	for i, test := range equal {
		assert.True(t, lisp.Equal(test.a, test.b), "case %d", i)
	}
	unequal := []struct{ a, b lisp.Value }{
		{lisp.Int(1), lisp.Float(1)},
		{lisp.Bool(false), lisp.List{}},
		{lisp.List{lisp.Int(1)}, lisp.List{lisp.Int(1), lisp.Int(2)}},
		{fn, lisp.FreeFn("f", func([]lisp.Value) (lisp.Value, error) { return nil, nil })},
		{ud, lisp.NewUserData(1)},
	}
	for i, test := range unequal {
		assert.False(t, lisp.Equal(test.a, test.b), "case %d", i)
	}
}
