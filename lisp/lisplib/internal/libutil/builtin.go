// Copyright © 2018 The ELPS authors

package libutil

import (
	"github.com/luthersystems/ares/lisp"
)

// Function returns a builtin that only sees its evaluated arguments.
func Function(name string, arity int, fun func(args []lisp.Value) (lisp.Value, error)) *Builtin {
	return FunctionDoc(name, arity, fun, "")
}

// FunctionDoc is like Function with a docstring.  An arity below zero
// disables the argument count check.
func FunctionDoc(name string, arity int, fun func(args []lisp.Value) (lisp.Value, error), docs string) *Builtin {
	return &Builtin{name: name, arity: arity, fun: fun, docs: docs}
}

// Builtin is a library function awaiting installation into an environment.
type Builtin struct {
	name  string
	arity int
	fun   func(args []lisp.Value) (lisp.Value, error)
	docs  string
}

// Name returns the symbol name fun is bound to.
func (fun *Builtin) Name() string {
	return fun.name
}

// Docstring returns the documentation of fun.
func (fun *Builtin) Docstring() string {
	return fun.docs
}

// ForeignFunction returns the lisp value for fun.
func (fun *Builtin) ForeignFunction() *lisp.ForeignFunction {
	f := lisp.FreeFn(fun.name, func(args []lisp.Value) (lisp.Value, error) {
		if fun.arity >= 0 {
			if err := lisp.CheckArity(args, fun.arity); err != nil {
				return nil, err
			}
		}
		return fun.fun(args)
	})
	f.Doc = fun.docs
	return f
}

// Install binds every builtin in env.
func Install(rt *lisp.Runtime, env *lisp.Env, builtins []*Builtin) {
	for _, fn := range builtins {
		env.InsertHere(rt.Symbol(fn.name), fn.ForeignFunction())
	}
	rt.Logger.WithField("count", len(builtins)).Debug("library functions installed")
}

// Number returns the float value of an Int or Float.
func Number(v lisp.Value) (float64, error) {
	switch v := v.(type) {
	case lisp.Int:
		return float64(v), nil
	case lisp.Float:
		return float64(v), nil
	}
	return 0, lisp.UnexpectedTypeError(v, "Int or Float")
}

// Str returns the string value of v.
func Str(v lisp.Value) (string, error) {
	s, ok := v.(lisp.String)
	if !ok {
		return "", lisp.UnexpectedTypeError(v, "String")
	}
	return string(s), nil
}

// ListOf returns the elements of v.
func ListOf(v lisp.Value) (lisp.List, error) {
	l, ok := v.(lisp.List)
	if !ok {
		return nil, lisp.UnexpectedTypeError(v, "List")
	}
	return l, nil
}
