// Copyright © 2018 The ELPS authors

package lisp_test

import (
	"errors"
	"testing"

	"github.com/luthersystems/ares/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProcedureNoBody(t *testing.T) {
	_, err := lisp.NewProcedure("", lisp.ParamBinding{}, nil, lisp.NewEnv(nil))
	assert.True(t, errors.Is(err, lisp.ErrNoLambdaBody))

	_, err = lisp.NewProcedure("f", lisp.ParamBinding{}, []lisp.Value{}, lisp.NewEnv(nil))
	assert.True(t, errors.Is(err, lisp.ErrNoLambdaBody))
}

func TestGenEnv(t *testing.T) {
	in := lisp.NewInterner()
	x, y, rest := in.Intern("x"), in.Intern("y"), in.Intern("rest")
	fixed := lisp.ParamBinding{Fixed: []lisp.Symbol{x, y}}
	variadic := lisp.ParamBinding{Fixed: []lisp.Symbol{x}, Rest: rest, HasRest: true}

	tests := []struct {
		name     string
		params   lisp.ParamBinding
		args     []lisp.Value
		expected string // expected count on arity errors
		bound    map[lisp.Symbol]lisp.Value
	}{
		{"fixed", fixed, []lisp.Value{lisp.Int(1), lisp.Int(2)}, "",
			map[lisp.Symbol]lisp.Value{x: lisp.Int(1), y: lisp.Int(2)}},
		{"too few", fixed, []lisp.Value{lisp.Int(1)}, "exactly 2", nil},
		{"too many", fixed, []lisp.Value{lisp.Int(1), lisp.Int(2), lisp.Int(3)}, "exactly 2", nil},
		{"rest empty", variadic, []lisp.Value{lisp.Int(1)}, "",
			map[lisp.Symbol]lisp.Value{x: lisp.Int(1), rest: lisp.List{}}},
		{"rest", variadic, []lisp.Value{lisp.Int(1), lisp.Int(2), lisp.Int(3)}, "",
			map[lisp.Symbol]lisp.Value{x: lisp.Int(1), rest: lisp.List{lisp.Int(2), lisp.Int(3)}}},
		{"rest too few", variadic, nil, "at least 1", nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			parent := lisp.NewEnv(nil)
			p, err := lisp.NewProcedure("f", test.params, []lisp.Value{lisp.Int(0)}, parent)
			require.NoError(t, err)
			env, err := p.GenEnv(test.args)
			if test.expected != "" {
				var lerr *lisp.Error
				require.True(t, errors.As(err, &lerr))
				assert.Equal(t, lisp.UnexpectedArity, lerr.Kind)
				assert.Equal(t, test.expected, lerr.Expected)
				assert.Equal(t, len(test.args), lerr.Found)
				return
			}
			require.NoError(t, err)
			assert.Same(t, parent, env.Parent())
			for sym, v := range test.bound {
				got, ok := env.Get(sym)
				require.True(t, ok)
				assert.Equal(t, v, got)
			}
		})
	}
}

func TestGenEnvCopiesRest(t *testing.T) {
	in := lisp.NewInterner()
	rest := in.Intern("rest")
	p, err := lisp.NewProcedure("f", lisp.ParamBinding{Rest: rest, HasRest: true},
		[]lisp.Value{lisp.Int(0)}, lisp.NewEnv(nil))
	require.NoError(t, err)
	args := []lisp.Value{lisp.Int(1), lisp.Int(2)}
	env, err := p.GenEnv(args)
	require.NoError(t, err)
	args[0] = lisp.String("changed")
	got, ok := env.Get(rest)
	require.True(t, ok)
	assert.Equal(t, lisp.List{lisp.Int(1), lisp.Int(2)}, got)
}
