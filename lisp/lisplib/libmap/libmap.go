// Copyright © 2018 The ELPS authors

// Package libmap provides functions over sorted maps.
package libmap

import (
	"github.com/luthersystems/ares/lisp"
	"github.com/luthersystems/ares/lisp/lisplib/internal/libutil"
)

// LoadPackage adds the map functions to env.
func LoadPackage(rt *lisp.Runtime, env *lisp.Env) error {
	libutil.Install(rt, env, builtins)
	return nil
}

var builtins = []*libutil.Builtin{
	libutil.FunctionDoc("map-get", -1, builtinGet,
		`Returns the value bound to key in map.  An optional third argument
		is returned when key is absent; otherwise an absent key is an
		error.`),
	libutil.FunctionDoc("map-put", 3, builtinPut,
		`Returns a copy of map with key bound to value.`),
	libutil.FunctionDoc("map-has?", 2, builtinHas,
		`Returns true if key is bound in map.`),
	libutil.FunctionDoc("map-keys", 1, builtinKeys,
		`Returns the sorted keys of map.`),
	libutil.FunctionDoc("map-values", 1, builtinValues,
		`Returns the values of map ordered by key.`),
	libutil.FunctionDoc("map-len", 1, builtinLen,
		`Returns the number of entries in map.`),
}

func mapOf(v lisp.Value) (*lisp.Map, error) {
	m, ok := v.(*lisp.Map)
	if !ok {
		return nil, lisp.UnexpectedTypeError(v, "Map")
	}
	return m, nil
}

func builtinGet(args []lisp.Value) (lisp.Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return nil, lisp.UnexpectedArityError(len(args), "2 or 3")
	}
	m, err := mapOf(args[0])
	if err != nil {
		return nil, err
	}
	v, ok := m.Get(args[1])
	if ok {
		return v, nil
	}
	if len(args) == 3 {
		return args[2], nil
	}
	return nil, lisp.InvalidStateError("key not found in map")
}

func builtinPut(args []lisp.Value) (lisp.Value, error) {
	m, err := mapOf(args[0])
	if err != nil {
		return nil, err
	}
	return m.Put(args[1], args[2])
}

func builtinHas(args []lisp.Value) (lisp.Value, error) {
	m, err := mapOf(args[0])
	if err != nil {
		return nil, err
	}
	_, ok := m.Get(args[1])
	return lisp.Bool(ok), nil
}

func builtinKeys(args []lisp.Value) (lisp.Value, error) {
	m, err := mapOf(args[0])
	if err != nil {
		return nil, err
	}
	return m.Keys(), nil
}

func builtinValues(args []lisp.Value) (lisp.Value, error) {
	m, err := mapOf(args[0])
	if err != nil {
		return nil, err
	}
	return m.Values(), nil
}

func builtinLen(args []lisp.Value) (lisp.Value, error) {
	m, err := mapOf(args[0])
	if err != nil {
		return nil, err
	}
	return lisp.Int(m.Len()), nil
}
