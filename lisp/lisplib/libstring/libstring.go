// Copyright © 2018 The ELPS authors

package libstring

import (
	"strings"
	"unicode/utf8"

	"github.com/luthersystems/ares/lisp"
	"github.com/luthersystems/ares/lisp/lisplib/internal/libutil"
)

// LoadPackage adds the string functions to env.
func LoadPackage(rt *lisp.Runtime, env *lisp.Env) error {
	libutil.Install(rt, env, builtins)
	return nil
}

var builtins = []*libutil.Builtin{
	libutil.Function("lowercase", 1, builtinLower),
	libutil.Function("uppercase", 1, builtinUpper),
	libutil.Function("split", 2, builtinSplit),
	libutil.Function("join", 2, builtinJoin),
	libutil.FunctionDoc("string-length", 1, builtinLength,
		`Returns the number of unicode code points in str.`),
	libutil.FunctionDoc("string-contains?", 2, builtinContains,
		`Returns true if the second string occurs within the first.`),
}

func builtinLower(args []lisp.Value) (lisp.Value, error) {
	s, err := libutil.Str(args[0])
	if err != nil {
		return nil, err
	}
	return lisp.String(strings.ToLower(s)), nil
}

func builtinUpper(args []lisp.Value) (lisp.Value, error) {
	s, err := libutil.Str(args[0])
	if err != nil {
		return nil, err
	}
	return lisp.String(strings.ToUpper(s)), nil
}

func builtinSplit(args []lisp.Value) (lisp.Value, error) {
	s, err := libutil.Str(args[0])
	if err != nil {
		return nil, err
	}
	sep, err := libutil.Str(args[1])
	if err != nil {
		return nil, err
	}
	parts := strings.Split(s, sep)
	out := make(lisp.List, len(parts))
	for i := range parts {
		out[i] = lisp.String(parts[i])
	}
	return out, nil
}

func builtinJoin(args []lisp.Value) (lisp.Value, error) {
	lst, err := libutil.ListOf(args[0])
	if err != nil {
		return nil, err
	}
	sep, err := libutil.Str(args[1])
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(lst))
	for i := range lst {
		parts[i], err = libutil.Str(lst[i])
		if err != nil {
			return nil, err
		}
	}
	return lisp.String(strings.Join(parts, sep)), nil
}

func builtinLength(args []lisp.Value) (lisp.Value, error) {
	s, err := libutil.Str(args[0])
	if err != nil {
		return nil, err
	}
	return lisp.Int(utf8.RuneCountInString(s)), nil
}

func builtinContains(args []lisp.Value) (lisp.Value, error) {
	s, err := libutil.Str(args[0])
	if err != nil {
		return nil, err
	}
	sub, err := libutil.Str(args[1])
	if err != nil {
		return nil, err
	}
	return lisp.Bool(strings.Contains(s, sub)), nil
}
