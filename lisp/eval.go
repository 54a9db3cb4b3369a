// Copyright © 2018 The ELPS authors

package lisp

import (
	"errors"
	"fmt"
	"reflect"
)

// Evaluator reduces values using an explicit stack of frames so that the
// depth of lisp recursion never grows the native Go stack.  An Evaluator is
// not safe for concurrent use.
type Evaluator struct {
	rt        *Runtime
	env       *Env
	stack     []frame
	state     any
	stateType reflect.Type
}

// NewEvaluator returns an Evaluator with no embedder state.  Most programs
// should use Context.Load instead.
func NewEvaluator(rt *Runtime, env *Env) *Evaluator {
	return &Evaluator{rt: rt, env: env}
}

// Runtime returns the runtime shared by ev.
func (ev *Evaluator) Runtime() *Runtime {
	return ev.rt
}

// Env returns the current environment.
func (ev *Evaluator) Env() *Env {
	return ev.env
}

// State returns the embedder state ev was loaded with.
func (ev *Evaluator) State() any {
	return ev.state
}

// Symbol interns name.
func (ev *Evaluator) Symbol(name string) Symbol {
	return ev.rt.Interner.Intern(name)
}

// Format prints v.
func (ev *Evaluator) Format(v Value) string {
	return Format(ev.rt.Interner, v)
}

// Eval evaluates v in the current environment.  On error the evaluator is
// left exactly as it was before the call.
func (ev *Evaluator) Eval(v Value) (Value, error) {
	base, env := len(ev.stack), ev.env
	ev.push(frame{kind: stepReturn})
	ev.pushEval(v, false)
	res, err := ev.run(base)
	if err != nil {
		return nil, ev.fail(base, env, err)
	}
	return res, nil
}

// EvalIn evaluates v with env as the current environment.
func (ev *Evaluator) EvalIn(env *Env, v Value) (Value, error) {
	saved := ev.env
	ev.env = env
	defer func() { ev.env = saved }()
	return ev.Eval(v)
}

// Apply calls fn with already evaluated arguments.  Ast functions receive
// args as their raw arguments.  Unlike a call in lisp source, Apply accepts
// macro procedures; the macro expander invokes macros this way.
func (ev *Evaluator) Apply(fn Value, args []Value) (Value, error) {
	base, env := len(ev.stack), ev.env
	ev.push(frame{kind: stepReturn})
	var err error
	switch fn := fn.(type) {
	case *Procedure:
		// The macro expander passes unevaluated forms to macros.
		if !fn.IsMacro {
			err = checkEagerArgs(args)
		}
		if err == nil {
			err = ev.enter(fn, args)
		}
	case *ForeignFunction:
		if fn.Convention != Ast {
			err = checkEagerArgs(args)
		}
		if err == nil {
			err = ev.callForeign(fn, args)
		}
	default:
		err = errorOf(UnexecutableValue, fn)
	}
	if err == nil {
		var res Value
		res, err = ev.run(base)
		if err == nil {
			return res, nil
		}
	}
	return nil, ev.fail(base, env, err)
}

// fail unwinds the stack to base, restoring environments and closing
// profiler spans held by the discarded frames.
func (ev *Evaluator) fail(base int, env *Env, err error) error {
	depth := len(ev.stack)
	for i := depth - 1; i >= base; i-- {
		if f := ev.stack[i]; f.kind == stepPopEnv && f.done != nil {
			f.done()
		}
	}
	ev.popTo(base)
	ev.env = env
	var lerr *Error
	if errors.As(err, &lerr) && lerr.interner == nil {
		lerr.interner = ev.rt.Interner
	}
	if base == 0 {
		ev.rt.Logger.WithError(err).WithField("frames", depth).Debug("evaluation failed")
	}
	return err
}

func (ev *Evaluator) run(base int) (Value, error) {
	for {
		n := len(ev.stack)
		if limit := ev.rt.MaxStackHeight; limit > 0 && n > limit {
			return nil, &Error{Kind: StackOverflow, Message: fmt.Sprintf("more than %d frames", limit)}
		}
		top := ev.stack[n-1]
		var err error
		switch top.kind {
		case stepEvalThis:
			ev.popTo(n - 1)
			err = ev.evalThis(top.value, top.head)
		case stepComplete:
			var done bool
			var v Value
			v, done, err = ev.complete(base, top.value)
			if done {
				return v, nil
			}
		default:
			panic(fmt.Sprintf("evaluator frame %v on top of the stack", top.kind))
		}
		if err != nil {
			return nil, err
		}
	}
}

func (ev *Evaluator) evalThis(v Value, head bool) error {
	switch v := v.(type) {
	case Symbol:
		val, ok := ev.env.Get(v)
		if !ok {
			return UndefinedNameError(ev.rt.Interner.LookupOrAnon(v))
		}
		if !head {
			switch f := val.(type) {
			case *ForeignFunction:
				if f.Convention == Ast {
					return &Error{Kind: AstFunctionPass, Name: f.Name}
				}
			case *Procedure:
				if f.IsMacro {
					return &Error{Kind: MacroReference, Name: f.Name}
				}
			}
		}
		ev.pushComplete(val)
	case List:
		if len(v) == 0 {
			return &Error{Kind: ExecuteEmptyList}
		}
		ev.push(frame{kind: stepPreEvaluatedCallable, remaining: v[1:]})
		ev.pushEval(v[0], true)
	case *Procedure:
		if v.IsMacro {
			return &Error{Kind: MacroReference, Name: v.Name}
		}
		ev.pushComplete(v)
	default:
		ev.pushComplete(v)
	}
	return nil
}

// complete hands the value v on top of the stack to the frame below it.
// When that frame is the Return frame at base the evaluation is finished.
func (ev *Evaluator) complete(base int, v Value) (Value, bool, error) {
	n := len(ev.stack)
	below := &ev.stack[n-2]
	switch below.kind {
	case stepReturn:
		if n-2 != base {
			panic("evaluator returned through a foreign frame")
		}
		ev.popTo(base)
		return v, true, nil
	case stepPreEvaluatedCallable:
		raw := below.remaining
		ev.popTo(n - 2)
		return nil, false, ev.dispatch(v, raw)
	case stepArgCollecting:
		if f, ok := v.(*ForeignFunction); ok && f.Convention == Ast {
			return nil, false, &Error{Kind: AstFunctionPass, Name: f.Name}
		}
		below.args = append(below.args, v)
		if len(below.remaining) > 0 {
			next := below.remaining[0]
			below.remaining = below.remaining[1:]
			ev.popTo(n - 1)
			ev.pushEval(next, false)
			return nil, false, nil
		}
		callee, args := below.value, below.args
		ev.popTo(n - 2)
		return nil, false, ev.invoke(callee, args)
	case stepEvaluatingLambda:
		next := below.remaining[0]
		below.remaining = below.remaining[1:]
		if len(below.remaining) == 0 {
			ev.popTo(n - 2)
		} else {
			ev.popTo(n - 1)
		}
		ev.pushEval(next, false)
		return nil, false, nil
	case stepPopEnv:
		env, done := below.env, below.done
		ev.popTo(n - 2)
		ev.env = env
		if done != nil {
			done()
		}
		ev.pushComplete(v)
		return nil, false, nil
	}
	panic(fmt.Sprintf("value completed onto evaluator frame %v", below.kind))
}

// dispatch begins a call to callee with unevaluated arguments raw.
func (ev *Evaluator) dispatch(callee Value, raw []Value) error {
	switch fn := callee.(type) {
	case *Procedure:
		if fn.IsMacro {
			return &Error{Kind: MacroReference, Name: fn.Name}
		}
		return ev.collect(fn, raw)
	case *ForeignFunction:
		if fn.Convention == Ast {
			return ev.callForeign(fn, raw)
		}
		return ev.collect(fn, raw)
	}
	return errorOf(UnexecutableValue, callee)
}

func (ev *Evaluator) collect(callee Value, raw []Value) error {
	if len(raw) == 0 {
		return ev.invoke(callee, nil)
	}
	ev.push(frame{
		kind:      stepArgCollecting,
		value:     callee,
		remaining: raw[1:],
		args:      make([]Value, 0, len(raw)),
	})
	ev.pushEval(raw[0], false)
	return nil
}

func (ev *Evaluator) invoke(callee Value, args []Value) error {
	switch fn := callee.(type) {
	case *Procedure:
		return ev.enter(fn, args)
	case *ForeignFunction:
		return ev.callForeign(fn, args)
	}
	return errorOf(UnexecutableValue, callee)
}

func (ev *Evaluator) enter(p *Procedure, args []Value) error {
	env, err := p.GenEnv(args)
	if err != nil {
		return err
	}
	name := p.Name
	if name == "" {
		name = "lambda"
	}
	ev.pushScope(env, ev.rt.profile(name))
	ev.pushBodies(p.Bodies, name)
	return nil
}

// checkEagerArgs rejects Ast functions among evaluated arguments.
func checkEagerArgs(args []Value) error {
	for _, v := range args {
		if f, ok := v.(*ForeignFunction); ok && f.Convention == Ast {
			return &Error{Kind: AstFunctionPass, Name: f.Name}
		}
	}
	return nil
}

// callForeign calls f.  The profiler span of a call that returns TailEval
// stays open until the scheduled bodies complete.
func (ev *Evaluator) callForeign(f *ForeignFunction, args []Value) error {
	done := ev.rt.profile(f.Name)
	v, err := f.call(ev, args)
	if t, ok := v.(*tailEval); ok && err == nil {
		env := t.env
		if env == nil && done != nil {
			env = ev.env
		}
		if env != nil {
			ev.pushScope(env, done)
		}
		ev.pushBodies(t.bodies, f.Name)
		return nil
	}
	if done != nil {
		done()
	}
	if err != nil {
		return err
	}
	if v == nil {
		v = List{}
	}
	ev.pushComplete(v)
	return nil
}
