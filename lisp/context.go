// Copyright © 2018 The ELPS authors

package lisp

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrNoReader is returned by EvalString when the runtime has no Reader.
var ErrNoReader = errors.New("no reader configured")

// Context is the embedding surface of the interpreter.  It owns a Runtime
// and a global environment.  S is the type of the embedder state threaded
// through evaluation; it is supplied each time the Context is loaded.
type Context[S any] struct {
	rt  *Runtime
	env *Env
}

// New returns a Context whose global environment holds the core special
// operators and builtins.
func New[S any](opts ...Config) (*Context[S], error) {
	ctx, err := NewEmpty[S](opts...)
	if err != nil {
		return nil, err
	}
	loadBuiltins(ctx.rt, ctx.env)
	return ctx, nil
}

// NewEmpty returns a Context with an empty global environment.
func NewEmpty[S any](opts ...Config) (*Context[S], error) {
	rt := StandardRuntime()
	for _, opt := range opts {
		if err := opt(rt); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
	}
	ctx := &Context[S]{
		rt:  rt,
		env: NewEnv(nil),
	}
	rt.Logger.WithField("state", reflect.TypeOf((*S)(nil)).Elem().String()).Debug("context created")
	return ctx, nil
}

// Runtime returns the runtime of ctx.
func (ctx *Context[S]) Runtime() *Runtime {
	return ctx.rt
}

// Env returns the global environment.
func (ctx *Context[S]) Env() *Env {
	return ctx.env
}

// Interner returns the symbol interner of ctx.
func (ctx *Context[S]) Interner() *Interner {
	return ctx.rt.Interner
}

// Symbol interns name.
func (ctx *Context[S]) Symbol(name string) Symbol {
	return ctx.rt.Symbol(name)
}

// Format prints v.
func (ctx *Context[S]) Format(v Value) string {
	return ctx.rt.Format(v)
}

// Set binds name to v in the global environment, replacing any existing
// binding.
func (ctx *Context[S]) Set(name string, v Value) {
	ctx.env.InsertHere(ctx.rt.Symbol(name), v)
}

// SetFn binds name to fn in the global environment.
func (ctx *Context[S]) SetFn(name string, fn *ForeignFunction) {
	ctx.rt.Logger.WithField("fn", name).WithField("convention", fn.Convention).Debug("foreign function registered")
	ctx.Set(name, fn)
}

// Get returns the global binding of name.
func (ctx *Context[S]) Get(name string) (Value, bool) {
	sym, ok := ctx.rt.Interner.SymbolForName(name)
	if !ok {
		return nil, false
	}
	return ctx.env.Get(sym)
}

// Load binds state to ctx for a sequence of evaluations.
func (ctx *Context[S]) Load(state *S) *LoadedContext[S] {
	return &LoadedContext[S]{
		ev: &Evaluator{
			rt:        ctx.rt,
			env:       ctx.env,
			state:     state,
			stateType: reflect.TypeOf((*S)(nil)).Elem(),
		},
	}
}

// LoadedContext is a Context bound to an embedder state.  User functions
// receive the LoadedContext that called them.
type LoadedContext[S any] struct {
	ev *Evaluator
}

// Evaluator returns the underlying evaluator.
func (lc *LoadedContext[S]) Evaluator() *Evaluator {
	return lc.ev
}

// Runtime returns the runtime shared with the Context.
func (lc *LoadedContext[S]) Runtime() *Runtime {
	return lc.ev.rt
}

// Env returns the current environment.
func (lc *LoadedContext[S]) Env() *Env {
	return lc.ev.env
}

// State returns the loaded state.
func (lc *LoadedContext[S]) State() *S {
	s, _ := lc.ev.state.(*S)
	return s
}

// Eval evaluates v without macro expansion.
func (lc *LoadedContext[S]) Eval(v Value) (Value, error) {
	return lc.ev.Eval(v)
}

// MacroExpand expands every macro call in v.
func (lc *LoadedContext[S]) MacroExpand(v Value) (Value, error) {
	return lc.ev.MacroExpand(v)
}

// EvalString parses src, then expands and evaluates each form in order.  It
// returns the value of the last form.
func (lc *LoadedContext[S]) EvalString(src string) (Value, error) {
	rt := lc.ev.rt
	if rt.Reader == nil {
		return nil, ErrNoReader
	}
	forms, err := rt.Reader.Read(rt.Interner, "eval", strings.NewReader(src))
	if err != nil {
		return nil, &Error{Kind: ParseError, Err: err}
	}
	if len(forms) == 0 {
		return nil, &Error{Kind: NoProgram}
	}
	var last Value
	for i, form := range forms {
		rt.Logger.WithField("form", i).Debug("evaluating form")
		expanded, err := lc.ev.MacroExpand(form)
		if err != nil {
			return nil, err
		}
		last, err = lc.ev.Eval(expanded)
		if err != nil {
			return nil, err
		}
	}
	return last, nil
}

// Call calls fn with evaluated arguments.
func (lc *LoadedContext[S]) Call(fn Value, args []Value) (Value, error) {
	return lc.ev.Apply(fn, args)
}

// CallNamed calls the function bound to name in the current environment.
func (lc *LoadedContext[S]) CallNamed(name string, args []Value) (Value, error) {
	sym, ok := lc.ev.rt.Interner.SymbolForName(name)
	if !ok {
		return nil, UndefinedNameError(name)
	}
	fn, ok := lc.ev.env.Get(sym)
	if !ok {
		return nil, UndefinedNameError(name)
	}
	return lc.Call(fn, args)
}

// WithOtherEnv runs fn with env as the current environment.  The previous
// environment is restored when fn returns, even if it panics.
func (lc *LoadedContext[S]) WithOtherEnv(env *Env, fn func(*LoadedContext[S])) {
	saved := lc.ev.env
	lc.ev.env = env
	defer func() { lc.ev.env = saved }()
	fn(lc)
}

// WithOtherState runs fn with state as the loaded state.  The previous state
// is restored when fn returns, even if it panics.
func (lc *LoadedContext[S]) WithOtherState(state *S, fn func(*LoadedContext[S])) {
	saved := lc.ev.state
	lc.ev.state = state
	defer func() { lc.ev.state = saved }()
	fn(lc)
}
