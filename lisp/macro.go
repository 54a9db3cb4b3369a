// Copyright © 2018 The ELPS authors

package lisp

import (
	"fmt"
)

// MacroExpand rewrites every macro call in v until no macro calls remain.
// Quoted forms are left untouched.  Expanding an already expanded form
// returns an equal form.
func (ev *Evaluator) MacroExpand(v Value) (Value, error) {
	return ev.macroExpand(v, 0)
}

// MacroExpand1 expands v once if it is a macro call and returns it unchanged
// otherwise.  The boolean result reports whether an expansion happened.
func (ev *Evaluator) MacroExpand1(v Value) (Value, bool, error) {
	l, ok := v.(List)
	if !ok {
		return v, false, nil
	}
	m := ev.macroFor(l)
	if m == nil {
		return v, false, nil
	}
	out, err := ev.Apply(m, l[1:])
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

func (ev *Evaluator) macroExpand(v Value, depth int) (Value, error) {
	l, ok := v.(List)
	if !ok || len(l) == 0 {
		return v, nil
	}
	if sym, ok := l[0].(Symbol); ok && sym == ev.rt.sym.quote {
		return v, nil
	}
	if m := ev.macroFor(l); m != nil {
		if limit := ev.rt.MaxMacroExpansionDepth; limit > 0 && depth >= limit {
			return nil, &Error{
				Kind:    MacroExpansionDepth,
				Message: fmt.Sprintf("%s expanded more than %d times", m.Name, limit),
			}
		}
		out, err := ev.Apply(m, l[1:])
		if err != nil {
			return nil, err
		}
		return ev.macroExpand(out, depth+1)
	}
	var out List
	for i, x := range l {
		y, err := ev.macroExpand(x, depth)
		if err != nil {
			return nil, err
		}
		if out == nil && !sameValue(x, y) {
			out = make(List, len(l))
			copy(out, l[:i])
		}
		if out != nil {
			out[i] = y
		}
	}
	if out == nil {
		return l, nil
	}
	return out, nil
}

// macroFor returns the macro named by the head of l, if any.
func (ev *Evaluator) macroFor(l List) *Procedure {
	if len(l) == 0 {
		return nil
	}
	sym, ok := l[0].(Symbol)
	if !ok {
		return nil
	}
	v, ok := ev.env.Get(sym)
	if !ok {
		return nil
	}
	p, ok := v.(*Procedure)
	if !ok || !p.IsMacro {
		return nil
	}
	return p
}

// sameValue reports whether expansion left x untouched.  Only lists are
// rebuilt by the expander so other values can be compared directly.
func sameValue(x, y Value) bool {
	lx, ok := x.(List)
	if !ok {
		return true
	}
	ly, ok := y.(List)
	if !ok || len(lx) != len(ly) {
		return false
	}
	return len(lx) == 0 || &lx[0] == &ly[0]
}
