// Copyright © 2018 The ELPS authors

package lisp

import (
	"fmt"
	"reflect"
)

// Convention determines how a ForeignFunction receives its arguments.
type Convention uint8

const (
	// Free functions receive evaluated arguments and nothing else.
	Free Convention = iota
	// User functions receive evaluated arguments and the live evaluator.
	User
	// Ast functions receive their arguments unevaluated.  They implement
	// special operators.
	Ast
)

var conventionStrings = []string{
	Free: "free",
	User: "user",
	Ast:  "ast",
}

func (c Convention) String() string {
	if int(c) >= len(conventionStrings) {
		return "invalid"
	}
	return conventionStrings[c]
}

// Callback is the erased form of every foreign function.
type Callback func(args []Value, ev *Evaluator) (Value, error)

// ForeignFunction is a native function callable from lisp.
type ForeignFunction struct {
	Name       string
	Convention Convention
	Doc        string
	// state is the embedder state type the callback requires.  A nil state
	// accepts any state.
	state reflect.Type
	fn    Callback
}

func (*ForeignFunction) Type() Type { return TForeignFn }

// StateType returns the state type required by f, or nil when f works with
// any state.
func (f *ForeignFunction) StateType() reflect.Type {
	return f.state
}

// FreeFn returns a foreign function that only sees its evaluated arguments.
func FreeFn(name string, fn func(args []Value) (Value, error)) *ForeignFunction {
	return &ForeignFunction{
		Name:       name,
		Convention: Free,
		fn: func(args []Value, _ *Evaluator) (Value, error) {
			return fn(args)
		},
	}
}

// ContextFn returns a foreign function that receives its evaluated arguments
// and the evaluator.  It works with any embedder state.
func ContextFn(name string, fn Callback) *ForeignFunction {
	return &ForeignFunction{Name: name, Convention: User, fn: fn}
}

// AstFn returns a foreign function that receives its arguments unevaluated.
// It works with any embedder state.
func AstFn(name string, fn Callback) *ForeignFunction {
	return &ForeignFunction{Name: name, Convention: Ast, fn: fn}
}

// UserFn returns a foreign function that receives its evaluated arguments and
// a context loaded with state of type S.  Calling it from a context holding a
// different state type fails with InvalidForeignFunctionState.
func UserFn[S any](name string, fn func(args []Value, ctx *LoadedContext[S]) (Value, error)) *ForeignFunction {
	return &ForeignFunction{
		Name:       name,
		Convention: User,
		state:      reflect.TypeOf((*S)(nil)).Elem(),
		fn: func(args []Value, ev *Evaluator) (Value, error) {
			return fn(args, &LoadedContext[S]{ev: ev})
		},
	}
}

// UserAstFn is like UserFn but receives its arguments unevaluated.
func UserAstFn[S any](name string, fn func(args []Value, ctx *LoadedContext[S]) (Value, error)) *ForeignFunction {
	f := UserFn(name, fn)
	f.Convention = Ast
	return f
}

func (f *ForeignFunction) call(ev *Evaluator, args []Value) (Value, error) {
	if f.state != nil && f.state != ev.stateType {
		return nil, &Error{
			Kind:    InvalidForeignFunctionState,
			Message: fmt.Sprintf("%s requires %v (loaded %v)", f.Name, f.state, ev.stateType),
		}
	}
	return f.fn(args, ev)
}

// tailEval is returned by Ast functions to have the evaluator continue with
// bodies instead of recursing natively.
type tailEval struct {
	env    *Env
	bodies []Value
}

func (*tailEval) Type() Type { return tTail }

// TailEval returns a value that, when returned from a foreign function,
// makes the evaluator evaluate bodies in sequence and produce the value of
// the last one.  When env is non-nil the bodies are evaluated in env and the
// current environment is restored afterwards.  Bodies must not be empty.
func TailEval(env *Env, bodies ...Value) Value {
	if len(bodies) == 0 {
		panic("tail evaluation without a body")
	}
	return &tailEval{env: env, bodies: bodies}
}
