// Copyright © 2018 The ELPS authors

// Package liblist provides list functions.  The higher order functions are
// written in lisp on top of build-list and for-each.
package liblist

import (
	"fmt"

	"github.com/luthersystems/ares/lisp"
	"github.com/luthersystems/ares/lisp/lisplib/internal/libutil"
	"github.com/luthersystems/ares/parser"
)

// LoadPackage adds the list functions to env.  The core builtins must
// already be bound in env.
func LoadPackage(rt *lisp.Runtime, env *lisp.Env) error {
	libutil.Install(rt, env, builtins)
	ev := lisp.NewEvaluator(rt, env)
	for _, def := range lispDefs {
		forms, err := parser.Parse(rt.Interner, []byte(def.src))
		if err != nil {
			return fmt.Errorf("%s: %w", def.name, err)
		}
		if len(forms) != 1 {
			return fmt.Errorf("%s: expected one form (got %d)", def.name, len(forms))
		}
		v, err := ev.Eval(forms[0])
		if err != nil {
			return fmt.Errorf("%s: %w", def.name, err)
		}
		p, ok := v.(*lisp.Procedure)
		if !ok {
			return fmt.Errorf("%s: %w", def.name, lisp.UnexpectedTypeError(v, "Lambda"))
		}
		env.InsertHere(rt.Symbol(def.name), p.Named(def.name))
	}
	return nil
}

var lispDefs = []struct {
	name string
	src  string
}{
	{"map", `
(lambda (list fn)
  (build-list
    (lambda (push)
      (for-each list (lambda (element)
        (push (fn element)))))))`},
	{"fold-left", `
(lambda (list default fn)
  (for-each list (lambda (element)
    (set default (fn default element))))
  default)`},
	{"filter", `
(lambda (list fn)
  (build-list
    (lambda (push)
      (for-each list (lambda (element)
        (if (fn element)
          (push element)
          false))))))`},
	{"flatten", `
(lambda (list-of-lists)
  (build-list
    (lambda (push push-all)
      (for-each list-of-lists (lambda (sub-list)
        (push-all sub-list))))))`},
	{"concat", `
(lambda lists
  (flatten lists))`},
}

var builtins = []*libutil.Builtin{
	libutil.FunctionDoc("length", 1, builtinLength,
		`Returns the number of elements in list.`),
	libutil.FunctionDoc("first", 1, builtinFirst,
		`Returns the first element of list.  An empty list is an error.`),
	libutil.FunctionDoc("rest", 1, builtinRest,
		`Returns every element of list but the first.  The rest of an
		empty list is the empty list.`),
	libutil.FunctionDoc("nth", 2, builtinNth,
		`Returns the element of list at the zero based index n.`),
	libutil.FunctionDoc("reverse", 1, builtinReverse,
		`Returns the elements of list in reverse order.`),
}

func builtinLength(args []lisp.Value) (lisp.Value, error) {
	lst, err := libutil.ListOf(args[0])
	if err != nil {
		return nil, err
	}
	return lisp.Int(len(lst)), nil
}

func builtinFirst(args []lisp.Value) (lisp.Value, error) {
	lst, err := libutil.ListOf(args[0])
	if err != nil {
		return nil, err
	}
	if len(lst) == 0 {
		return nil, lisp.InvalidStateError("first of an empty list")
	}
	return lst[0], nil
}

func builtinRest(args []lisp.Value) (lisp.Value, error) {
	lst, err := libutil.ListOf(args[0])
	if err != nil {
		return nil, err
	}
	if len(lst) == 0 {
		return lisp.List{}, nil
	}
	out := make(lisp.List, len(lst)-1)
	copy(out, lst[1:])
	return out, nil
}

func builtinNth(args []lisp.Value) (lisp.Value, error) {
	lst, err := libutil.ListOf(args[0])
	if err != nil {
		return nil, err
	}
	n, ok := args[1].(lisp.Int)
	if !ok {
		return nil, lisp.UnexpectedTypeError(args[1], "Int")
	}
	if n < 0 || int(n) >= len(lst) {
		return nil, lisp.InvalidStateError("index out of range: %d (length %d)", n, len(lst))
	}
	return lst[n], nil
}

func builtinReverse(args []lisp.Value) (lisp.Value, error) {
	lst, err := libutil.ListOf(args[0])
	if err != nil {
		return nil, err
	}
	out := make(lisp.List, len(lst))
	for i, v := range lst {
		out[len(lst)-1-i] = v
	}
	return out, nil
}
