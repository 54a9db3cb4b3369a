// Copyright © 2018 The ELPS authors

// Package libtypes provides type predicates and conversions.
package libtypes

import (
	"strconv"

	"github.com/luthersystems/ares/lisp"
	"github.com/luthersystems/ares/lisp/lisplib/internal/libutil"
)

// LoadPackage adds the predicates and conversions to env.
func LoadPackage(rt *lisp.Runtime, env *lisp.Env) error {
	libutil.Install(rt, env, builtins)
	libutil.Install(rt, env, []*libutil.Builtin{
		libutil.FunctionDoc("->string", 1, func(args []lisp.Value) (lisp.Value, error) {
			return lisp.String(lisp.Display(rt.Interner, args[0])), nil
		}, `Returns the printed representation of value.  Strings are
		returned unchanged.`),
	})
	return nil
}

var builtins = []*libutil.Builtin{
	isType("int?", lisp.TInt),
	isType("float?", lisp.TFloat),
	isType("bool?", lisp.TBool),
	isType("string?", lisp.TString),
	isType("symbol?", lisp.TSymbol),
	isType("list?", lisp.TList),
	isType("map?", lisp.TMap),
	isType("lambda?", lisp.TLambda),
	isType("foreign-fn?", lisp.TForeignFn),
	isType("user-data?", lisp.TUserData),
	libutil.FunctionDoc("executable?", -1, func(args []lisp.Value) (lisp.Value, error) {
		for _, x := range args {
			if !lisp.Executable(x) {
				return lisp.Bool(false), nil
			}
		}
		return lisp.Bool(true), nil
	}, `Returns true if every argument is a lambda or a foreign function.`),
	libutil.FunctionDoc("->int", 1, toInt,
		`Converts an int, float, bool or numeric string to an int.  Floats
		are truncated toward zero.`),
	libutil.FunctionDoc("->float", 1, toFloat,
		`Converts an int, float or numeric string to a float.`),
	libutil.FunctionDoc("->bool", 1, toBool,
		`Converts an int, float, bool or the strings "true" and "false" to a
		bool.  Zero is false.`),
}

// isType returns a predicate that is true when every argument has type t.
func isType(name string, t lisp.Type) *libutil.Builtin {
	return libutil.FunctionDoc(name, -1, func(args []lisp.Value) (lisp.Value, error) {
		for _, x := range args {
			if x.Type() != t {
				return lisp.Bool(false), nil
			}
		}
		return lisp.Bool(true), nil
	}, "Returns true if every argument is of type "+t.String()+".")
}

func toInt(args []lisp.Value) (lisp.Value, error) {
	switch x := args[0].(type) {
	case lisp.Int:
		return x, nil
	case lisp.Float:
		return lisp.Int(x), nil
	case lisp.Bool:
		if x {
			return lisp.Int(1), nil
		}
		return lisp.Int(0), nil
	case lisp.String:
		n, err := strconv.ParseInt(string(x), 10, 64)
		if err != nil {
			return nil, lisp.IllegalConversionError(x, "Int")
		}
		return lisp.Int(n), nil
	}
	return nil, lisp.IllegalConversionError(args[0], "Int")
}

func toFloat(args []lisp.Value) (lisp.Value, error) {
	switch x := args[0].(type) {
	case lisp.Int:
		return lisp.Float(x), nil
	case lisp.Float:
		return x, nil
	case lisp.String:
		f, err := strconv.ParseFloat(string(x), 64)
		if err != nil {
			return nil, lisp.IllegalConversionError(x, "Float")
		}
		return lisp.Float(f), nil
	}
	return nil, lisp.IllegalConversionError(args[0], "Float")
}

func toBool(args []lisp.Value) (lisp.Value, error) {
	switch x := args[0].(type) {
	case lisp.Int:
		return lisp.Bool(x != 0), nil
	case lisp.Float:
		return lisp.Bool(x != 0), nil
	case lisp.Bool:
		return x, nil
	case lisp.String:
		switch x {
		case "true":
			return lisp.Bool(true), nil
		case "false":
			return lisp.Bool(false), nil
		}
	}
	return nil, lisp.IllegalConversionError(args[0], "Bool")
}
