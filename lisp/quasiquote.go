// Copyright © 2018 The ELPS authors

package lisp

// Quasiquote fills in template.  Within template, (unquote x) is replaced by
// the value of x and (unquote-splicing x) splices the elements of the list x
// evaluates to into the enclosing list.  Everything else is returned as is.
// Nested quasiquote forms are not treated specially.
func (ev *Evaluator) Quasiquote(template Value) (Value, error) {
	l, ok := template.(List)
	if !ok {
		return template, nil
	}
	if arg, ok, err := ev.unquoteArg(l, ev.rt.sym.unquote); ok || err != nil {
		if err != nil {
			return nil, err
		}
		return ev.Eval(arg)
	}
	if _, ok, err := ev.unquoteArg(l, ev.rt.sym.unquoteSplicing); ok || err != nil {
		if err != nil {
			return nil, err
		}
		return nil, &Error{Kind: InvalidUnquotation}
	}
	out := make(List, 0, len(l))
	for _, x := range l {
		if sub, ok := x.(List); ok {
			arg, ok, err := ev.unquoteArg(sub, ev.rt.sym.unquoteSplicing)
			if err != nil {
				return nil, err
			}
			if ok {
				v, err := ev.Eval(arg)
				if err != nil {
					return nil, err
				}
				spliced, ok := v.(List)
				if !ok {
					return nil, UnexpectedTypeError(v, "List")
				}
				out = append(out, spliced...)
				continue
			}
		}
		v, err := ev.Quasiquote(x)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// unquoteArg returns the operand of l when l is a form headed by op.
func (ev *Evaluator) unquoteArg(l List, op Symbol) (Value, bool, error) {
	if len(l) == 0 {
		return nil, false, nil
	}
	if sym, ok := l[0].(Symbol); !ok || sym != op {
		return nil, false, nil
	}
	if len(l) != 2 {
		return nil, false, UnexpectedArityError(len(l)-1, "exactly 1")
	}
	return l[1], true, nil
}
