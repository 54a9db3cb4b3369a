// Copyright © 2018 The ELPS authors

package lisp

import (
	"fmt"
	"strings"
)

type langBuiltin struct {
	name string
	fn   Callback
	docs string
}

// langBuiltins receive evaluated arguments.
var langBuiltins = []*langBuiltin{
	{"=", builtinEqual,
		`Returns true if every argument is equal to the first.  Requires at
		least two arguments.`},
	{"+", builtinAdd,
		`Returns the sum of its int arguments.  Overflow wraps.`},
	{"-", builtinSub,
		`Subtracts the remaining int arguments from the first.  With one
		argument returns its negation.  Overflow wraps.`},
	{"*", builtinMul,
		`Returns the product of its int arguments.  Overflow wraps.`},
	{"/", builtinDiv,
		`Divides the first int argument by each remaining argument in turn.
		With one argument returns it unchanged.`},
	{"+.", builtinAddFloat,
		`Returns the sum of its float arguments.`},
	{"-.", builtinSubFloat,
		`Subtracts the remaining float arguments from the first.  With one
		argument returns its negation.`},
	{"*.", builtinMulFloat,
		`Returns the product of its float arguments.`},
	{"/.", builtinDivFloat,
		`Divides the first float argument by each remaining argument in
		turn.`},
	{"string-concat", builtinStringConcat,
		`Returns the concatenation of its string arguments.`},
	{"list", builtinList,
		`Returns its arguments as a list.`},
	{"apply", builtinApply,
		`Calls a function with the elements of a list as its arguments.`},
	{"eval", builtinEval,
		`Expands macros in its argument and evaluates the result.`},
	{"macroexpand", builtinMacroExpand,
		`Returns its argument with every macro call expanded.`},
	{"macroexpand-1", builtinMacroExpand1,
		`Expands its argument once if it is a macro call.`},
	{"gensym", builtinGenSym,
		`Returns a fresh symbol that is distinct from every other symbol.`},
	{"print", builtinPrint,
		`Writes its arguments separated by spaces to the debug output,
		followed by a newline.  Returns the last argument.`},
	{"build-list", builtinBuildList,
		`Calls a function with two adders, push and push-all, and returns
		the list of every value pushed.  push appends its arguments and
		push-all appends the elements of its list arguments.  The adders
		fail if they are called after build-list returns.`},
	{"for-each", builtinForEach,
		`Calls a function with each element of a list and returns the
		number of elements visited.`},
	{"doc", builtinDoc,
		`Returns the documentation of a builtin function.  A quoted symbol
		names the function to document, which allows special operators to
		be documented.`},
}

func loadBuiltins(rt *Runtime, env *Env) {
	for _, op := range langSpecialOps {
		env.InsertHere(rt.Symbol(op.name), &ForeignFunction{
			Name:       op.name,
			Convention: Ast,
			Doc:        docstring(op.docs),
			fn:         op.fn,
		})
	}
	for _, fn := range langBuiltins {
		env.InsertHere(rt.Symbol(fn.name), &ForeignFunction{
			Name:       fn.name,
			Convention: User,
			Doc:        docstring(fn.docs),
			fn:         fn.fn,
		})
	}
}

func docstring(s string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.Join(lines, " ")
}

func builtinEqual(args []Value, _ *Evaluator) (Value, error) {
	if err := CheckMinArity(args, 2); err != nil {
		return nil, err
	}
	for _, x := range args[1:] {
		if !Equal(args[0], x) {
			return Bool(false), nil
		}
	}
	return Bool(true), nil
}

func ints(args []Value) ([]Int, error) {
	xs := make([]Int, len(args))
	for i, x := range args {
		n, ok := x.(Int)
		if !ok {
			return nil, UnexpectedTypeError(x, "Int")
		}
		xs[i] = n
	}
	return xs, nil
}

func floats(args []Value) ([]Float, error) {
	xs := make([]Float, len(args))
	for i, x := range args {
		f, ok := x.(Float)
		if !ok {
			return nil, UnexpectedTypeError(x, "Float")
		}
		xs[i] = f
	}
	return xs, nil
}

func builtinAdd(args []Value, _ *Evaluator) (Value, error) {
	xs, err := ints(args)
	if err != nil {
		return nil, err
	}
	var sum Int
	for _, x := range xs {
		sum += x
	}
	return sum, nil
}

func builtinSub(args []Value, _ *Evaluator) (Value, error) {
	if err := CheckMinArity(args, 1); err != nil {
		return nil, err
	}
	xs, err := ints(args)
	if err != nil {
		return nil, err
	}
	if len(xs) == 1 {
		return -xs[0], nil
	}
	acc := xs[0]
	for _, x := range xs[1:] {
		acc -= x
	}
	return acc, nil
}

func builtinMul(args []Value, _ *Evaluator) (Value, error) {
	xs, err := ints(args)
	if err != nil {
		return nil, err
	}
	prod := Int(1)
	for _, x := range xs {
		prod *= x
	}
	return prod, nil
}

func builtinDiv(args []Value, _ *Evaluator) (Value, error) {
	if err := CheckMinArity(args, 1); err != nil {
		return nil, err
	}
	xs, err := ints(args)
	if err != nil {
		return nil, err
	}
	acc := xs[0]
	for _, x := range xs[1:] {
		if x == 0 {
			return nil, &Error{Kind: DivideByZero, Message: fmt.Sprintf("%d / 0", acc)}
		}
		acc /= x
	}
	return acc, nil
}

func builtinAddFloat(args []Value, _ *Evaluator) (Value, error) {
	xs, err := floats(args)
	if err != nil {
		return nil, err
	}
	var sum Float
	for _, x := range xs {
		sum += x
	}
	return sum, nil
}

func builtinSubFloat(args []Value, _ *Evaluator) (Value, error) {
	if err := CheckMinArity(args, 1); err != nil {
		return nil, err
	}
	xs, err := floats(args)
	if err != nil {
		return nil, err
	}
	if len(xs) == 1 {
		return -xs[0], nil
	}
	acc := xs[0]
	for _, x := range xs[1:] {
		acc -= x
	}
	return acc, nil
}

func builtinMulFloat(args []Value, _ *Evaluator) (Value, error) {
	xs, err := floats(args)
	if err != nil {
		return nil, err
	}
	prod := Float(1)
	for _, x := range xs {
		prod *= x
	}
	return prod, nil
}

func builtinDivFloat(args []Value, _ *Evaluator) (Value, error) {
	if err := CheckMinArity(args, 1); err != nil {
		return nil, err
	}
	xs, err := floats(args)
	if err != nil {
		return nil, err
	}
	if len(xs) == 1 {
		return xs[0], nil
	}
	acc := xs[0]
	for _, x := range xs[1:] {
		acc /= x
	}
	return acc, nil
}

func builtinStringConcat(args []Value, _ *Evaluator) (Value, error) {
	var buf strings.Builder
	for _, x := range args {
		s, ok := x.(String)
		if !ok {
			return nil, UnexpectedTypeError(x, "String")
		}
		buf.WriteString(string(s))
	}
	return String(buf.String()), nil
}

func builtinList(args []Value, _ *Evaluator) (Value, error) {
	return List(args), nil
}

func builtinApply(args []Value, ev *Evaluator) (Value, error) {
	if err := CheckArity(args, 2); err != nil {
		return nil, err
	}
	lst, ok := args[1].(List)
	if !ok {
		return nil, UnexpectedTypeError(args[1], "List")
	}
	return ev.Apply(args[0], lst)
}

func builtinEval(args []Value, ev *Evaluator) (Value, error) {
	if err := CheckArity(args, 1); err != nil {
		return nil, err
	}
	expanded, err := ev.MacroExpand(args[0])
	if err != nil {
		return nil, err
	}
	return TailEval(nil, expanded), nil
}

func builtinMacroExpand(args []Value, ev *Evaluator) (Value, error) {
	if err := CheckArity(args, 1); err != nil {
		return nil, err
	}
	return ev.MacroExpand(args[0])
}

func builtinMacroExpand1(args []Value, ev *Evaluator) (Value, error) {
	if err := CheckArity(args, 1); err != nil {
		return nil, err
	}
	v, _, err := ev.MacroExpand1(args[0])
	return v, err
}

func builtinGenSym(args []Value, ev *Evaluator) (Value, error) {
	if len(args) == 0 {
		return ev.rt.Interner.GenSymPrefix("gen"), nil
	}
	if err := CheckArity(args, 1); err != nil {
		return nil, err
	}
	prefix, ok := args[0].(String)
	if !ok {
		return nil, UnexpectedTypeError(args[0], "String")
	}
	return ev.rt.Interner.GenSymPrefix(string(prefix)), nil
}

func builtinPrint(args []Value, ev *Evaluator) (Value, error) {
	parts := make([]string, len(args))
	for i, x := range args {
		parts[i] = Display(ev.rt.Interner, x)
	}
	_, err := fmt.Fprintln(ev.rt.Stderr, strings.Join(parts, " "))
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return List{}, nil
	}
	return args[len(args)-1], nil
}

func builtinBuildList(args []Value, ev *Evaluator) (Value, error) {
	if err := CheckArity(args, 1); err != nil {
		return nil, err
	}
	var out List
	closed := false
	push := FreeFn("push", func(vals []Value) (Value, error) {
		if err := CheckMinArity(vals, 1); err != nil {
			return nil, err
		}
		if closed {
			return nil, InvalidStateError("build-list push called after build-list returned")
		}
		out = append(out, vals...)
		return vals[len(vals)-1], nil
	})
	pushAll := FreeFn("push-all", func(vals []Value) (Value, error) {
		if err := CheckMinArity(vals, 1); err != nil {
			return nil, err
		}
		if closed {
			return nil, InvalidStateError("build-list push-all called after build-list returned")
		}
		for _, v := range vals {
			lst, ok := v.(List)
			if !ok {
				return nil, UnexpectedTypeError(v, "List")
			}
			out = append(out, lst...)
		}
		return vals[len(vals)-1], nil
	})
	defer func() { closed = true }()
	fn := args[0]
	var err error
	if p, ok := fn.(*Procedure); ok && !p.Params.Accepts(2) {
		_, err = ev.Apply(fn, []Value{push})
	} else {
		_, err = ev.Apply(fn, []Value{push, pushAll})
	}
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = List{}
	}
	return out, nil
}

func builtinForEach(args []Value, ev *Evaluator) (Value, error) {
	if err := CheckArity(args, 2); err != nil {
		return nil, err
	}
	lst, ok := args[0].(List)
	if !ok {
		return nil, UnexpectedTypeError(args[0], "List")
	}
	for _, x := range lst {
		if _, err := ev.Apply(args[1], []Value{x}); err != nil {
			return nil, err
		}
	}
	return Int(len(lst)), nil
}

func builtinDoc(args []Value, ev *Evaluator) (Value, error) {
	if err := CheckArity(args, 1); err != nil {
		return nil, err
	}
	v := args[0]
	if sym, ok := v.(Symbol); ok {
		v, ok = ev.env.Get(sym)
		if !ok {
			return nil, UndefinedNameError(ev.rt.Interner.LookupOrAnon(sym))
		}
	}
	f, ok := v.(*ForeignFunction)
	if !ok {
		return String(""), nil
	}
	return String(f.Doc), nil
}
