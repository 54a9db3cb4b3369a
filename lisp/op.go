// Copyright © 2018 The ELPS authors

package lisp

import (
	"fmt"
)

// langSpecialOps receive their arguments unevaluated.
var langSpecialOps = []*langBuiltin{
	{"quote", opQuote,
		`Returns its single argument without evaluating it.`},
	{"quasiquote", opQuasiquote,
		`Returns its argument as a template, evaluating unquote forms and
		splicing the lists produced by unquote-splicing forms.`},
	{"if", opIf,
		`Evaluates the condition, which must be a bool, followed by either
		the then branch or the else branch.`},
	{"cond", opCond,
		`Takes clauses of the form (test body ...).  Evaluates the bodies
		of the first clause whose test is true.  A clause whose test is
		the symbol else always matches.  Returns () when no clause
		matches.`},
	{"begin", opBegin,
		`Evaluates its arguments in order and returns the value of the
		last one.`},
	{"define", opDefine,
		`Binds a symbol in the current scope.  The symbol must not already
		be bound in the current scope.  Returns the bound value.`},
	{"set", opSet,
		`Rebinds the nearest existing binding of a symbol and returns the
		new value.`},
	{"lambda", opLambda,
		`Creates a procedure.  The parameter list may be a list of symbols,
		a list with a . before a final rest symbol, or a single symbol
		that receives every argument as a list.`},
	{"let", opLet,
		`Takes a flat list of alternating symbols and expressions, binds
		each in turn in a new scope, and evaluates the body in that
		scope.`},
	{"and", opAnd,
		`Evaluates bool arguments until one is false.`},
	{"or", opOr,
		`Evaluates bool arguments until one is true.`},
	{"xor", opXor,
		`Evaluates bool arguments until both a true and a false value have
		been seen and returns whether that happened.`},
	{"define-macro", opDefineMacro,
		`Binds a symbol to the procedure an expression evaluates to and
		marks it as a macro.`},
	{"hash-map", opHashMap,
		`Evaluates alternating key and value expressions and returns a
		map.`},
}

func opQuote(args []Value, ev *Evaluator) (Value, error) {
	if err := CheckArity(args, 1); err != nil {
		return nil, err
	}
	return args[0], nil
}

func opQuasiquote(args []Value, ev *Evaluator) (Value, error) {
	if err := CheckArity(args, 1); err != nil {
		return nil, err
	}
	return ev.Quasiquote(args[0])
}

func opIf(args []Value, ev *Evaluator) (Value, error) {
	if err := CheckArity(args, 3); err != nil {
		return nil, err
	}
	ok, err := ev.evalBool(args[0])
	if err != nil {
		return nil, err
	}
	if ok {
		return TailEval(nil, args[1]), nil
	}
	return TailEval(nil, args[2]), nil
}

func opCond(args []Value, ev *Evaluator) (Value, error) {
	for _, clause := range args {
		c, ok := clause.(List)
		if !ok || len(c) < 2 {
			return nil, UnexpectedTypeError(clause, "(test body ...)")
		}
		if sym, ok := c[0].(Symbol); ok && sym == ev.rt.sym.elseSym {
			return TailEval(nil, c[1:]...), nil
		}
		ok, err := ev.evalBool(c[0])
		if err != nil {
			return nil, err
		}
		if ok {
			return TailEval(nil, c[1:]...), nil
		}
	}
	return List{}, nil
}

func opBegin(args []Value, ev *Evaluator) (Value, error) {
	if len(args) == 0 {
		return List{}, nil
	}
	return TailEval(nil, args...), nil
}

func opDefine(args []Value, ev *Evaluator) (Value, error) {
	if err := CheckArity(args, 2); err != nil {
		return nil, err
	}
	sym, ok := args[0].(Symbol)
	if !ok {
		return nil, UnexpectedTypeError(args[0], "Symbol")
	}
	if ev.env.IsDefinedAtThisLevel(sym) {
		return nil, AlreadyDefinedError(ev.rt.Interner.LookupOrAnon(sym))
	}
	v, err := ev.Eval(args[1])
	if err != nil {
		return nil, err
	}
	if p, ok := v.(*Procedure); ok && p.Name == "" {
		v = p.Named(ev.rt.Interner.LookupOrAnon(sym))
	}
	ev.env.InsertHere(sym, v)
	return v, nil
}

func opSet(args []Value, ev *Evaluator) (Value, error) {
	if err := CheckArity(args, 2); err != nil {
		return nil, err
	}
	sym, ok := args[0].(Symbol)
	if !ok {
		return nil, UnexpectedTypeError(args[0], "Symbol")
	}
	if !ev.env.IsDefined(sym) {
		return nil, UndefinedNameError(ev.rt.Interner.LookupOrAnon(sym))
	}
	v, err := ev.Eval(args[1])
	if err != nil {
		return nil, err
	}
	ev.env.WithValueMut(sym, func(Value) Value { return v })
	return v, nil
}

func opLambda(args []Value, ev *Evaluator) (Value, error) {
	if err := CheckMinArity(args, 2); err != nil {
		return nil, err
	}
	params, err := ev.parseParams(args[0])
	if err != nil {
		return nil, err
	}
	return NewProcedure("", params, args[1:], ev.env)
}

// parseParams accepts (a b c), (a b . rest) and rest.
func (ev *Evaluator) parseParams(v Value) (ParamBinding, error) {
	switch v := v.(type) {
	case Symbol:
		return ParamBinding{Rest: v, HasRest: true}, nil
	case List:
		var params ParamBinding
		for i := 0; i < len(v); i++ {
			sym, ok := v[i].(Symbol)
			if !ok {
				return ParamBinding{}, UnexpectedTypeError(v[i], "Symbol")
			}
			if sym != ev.rt.sym.dot {
				params.Fixed = append(params.Fixed, sym)
				continue
			}
			if i != len(v)-2 {
				return ParamBinding{}, errorOf(UnexpectedArgsList, v)
			}
			rest, ok := v[i+1].(Symbol)
			if !ok {
				return ParamBinding{}, UnexpectedTypeError(v[i+1], "Symbol")
			}
			params.Rest, params.HasRest = rest, true
			break
		}
		return params, nil
	}
	return ParamBinding{}, errorOf(UnexpectedArgsList, v)
}

func opLet(args []Value, ev *Evaluator) (Value, error) {
	if err := CheckMinArity(args, 2); err != nil {
		return nil, err
	}
	bindings, ok := args[0].(List)
	if !ok {
		return nil, UnexpectedTypeError(args[0], "List")
	}
	if len(bindings)%2 != 0 {
		return nil, UnexpectedArityError(len(bindings), "an even number of binding forms")
	}
	env := NewEnv(ev.env)
	for i := 0; i < len(bindings); i += 2 {
		sym, ok := bindings[i].(Symbol)
		if !ok {
			return nil, UnexpectedTypeError(bindings[i], "Symbol")
		}
		v, err := ev.EvalIn(env, bindings[i+1])
		if err != nil {
			return nil, err
		}
		env.InsertHere(sym, v)
	}
	return TailEval(env, args[1:]...), nil
}

func opAnd(args []Value, ev *Evaluator) (Value, error) {
	for _, x := range args {
		ok, err := ev.evalBool(x)
		if err != nil {
			return nil, err
		}
		if !ok {
			return Bool(false), nil
		}
	}
	return Bool(true), nil
}

func opOr(args []Value, ev *Evaluator) (Value, error) {
	for _, x := range args {
		ok, err := ev.evalBool(x)
		if err != nil {
			return nil, err
		}
		if ok {
			return Bool(true), nil
		}
	}
	return Bool(false), nil
}

func opXor(args []Value, ev *Evaluator) (Value, error) {
	var seenTrue, seenFalse bool
	for _, x := range args {
		ok, err := ev.evalBool(x)
		if err != nil {
			return nil, err
		}
		if ok {
			seenTrue = true
		} else {
			seenFalse = true
		}
		if seenTrue && seenFalse {
			return Bool(true), nil
		}
	}
	return Bool(false), nil
}

func opDefineMacro(args []Value, ev *Evaluator) (Value, error) {
	if err := CheckArity(args, 2); err != nil {
		return nil, err
	}
	sym, ok := args[0].(Symbol)
	if !ok {
		return nil, UnexpectedTypeError(args[0], "Symbol")
	}
	if ev.env.IsDefinedAtThisLevel(sym) {
		return nil, AlreadyDefinedError(ev.rt.Interner.LookupOrAnon(sym))
	}
	v, err := ev.Eval(args[1])
	if err != nil {
		return nil, err
	}
	p, ok := v.(*Procedure)
	if !ok {
		return nil, UnexpectedTypeError(v, "Lambda")
	}
	m := p.Named(ev.rt.Interner.LookupOrAnon(sym)).AsMacro()
	ev.env.InsertHere(sym, m)
	ev.rt.Logger.WithField("macro", m.Name).Debug("macro defined")
	return m, nil
}

func opHashMap(args []Value, ev *Evaluator) (Value, error) {
	if len(args)%2 != 0 {
		return nil, UnexpectedArityError(len(args), "an even number")
	}
	pairs := make([]Value, len(args))
	for i, x := range args {
		v, err := ev.Eval(x)
		if err != nil {
			return nil, err
		}
		pairs[i] = v
	}
	return NewMapFromPairs(pairs)
}

func (ev *Evaluator) evalBool(x Value) (bool, error) {
	v, err := ev.Eval(x)
	if err != nil {
		return false, err
	}
	b, ok := v.(Bool)
	if !ok {
		return false, UnexpectedTypeError(v, "Bool")
	}
	return bool(b), nil
}

// CheckArity returns an UnexpectedArity error unless args has exactly n
// elements.
func CheckArity(args []Value, n int) error {
	if len(args) != n {
		return UnexpectedArityError(len(args), fmt.Sprintf("exactly %d", n))
	}
	return nil
}

// CheckMinArity returns an UnexpectedArity error if args has fewer than n
// elements.
func CheckMinArity(args []Value, n int) error {
	if len(args) < n {
		return UnexpectedArityError(len(args), fmt.Sprintf("at least %d", n))
	}
	return nil
}
