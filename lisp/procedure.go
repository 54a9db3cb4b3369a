// Copyright © 2018 The ELPS authors

package lisp

import (
	"fmt"
)

// ParamBinding describes how a Procedure binds its arguments.  Fixed names
// are bound one to one.  When HasRest is true any extra arguments are
// collected in a List bound to Rest.
type ParamBinding struct {
	Fixed   []Symbol
	Rest    Symbol
	HasRest bool
}

// Expected describes the argument counts accepted by p.
func (p ParamBinding) Expected() string {
	if p.HasRest {
		return fmt.Sprintf("at least %d", len(p.Fixed))
	}
	return fmt.Sprintf("exactly %d", len(p.Fixed))
}

// Accepts returns true if p can bind n arguments.
func (p ParamBinding) Accepts(n int) bool {
	if p.HasRest {
		return n >= len(p.Fixed)
	}
	return n == len(p.Fixed)
}

// Procedure is a closure created by lambda.  A Procedure with IsMacro set is
// a macro and may only be invoked by the macro expander.
type Procedure struct {
	Name    string
	Params  ParamBinding
	Bodies  []Value
	Env     *Env
	IsMacro bool
}

// NewProcedure returns a Procedure closing over env.
func NewProcedure(name string, params ParamBinding, bodies []Value, env *Env) (*Procedure, error) {
	if len(bodies) == 0 {
		return nil, &Error{Kind: NoLambdaBody}
	}
	return &Procedure{
		Name:   name,
		Params: params,
		Bodies: bodies,
		Env:    env,
	}, nil
}

// GenEnv binds args in a new child of the captured environment.
func (p *Procedure) GenEnv(args []Value) (*Env, error) {
	if !p.Params.Accepts(len(args)) {
		return nil, UnexpectedArityError(len(args), p.Params.Expected())
	}
	n := len(p.Params.Fixed)
	bindings := make(map[Symbol]Value, n+1)
	for i, sym := range p.Params.Fixed {
		bindings[sym] = args[i]
	}
	if p.Params.HasRest {
		rest := make(List, len(args)-n)
		copy(rest, args[n:])
		bindings[p.Params.Rest] = rest
	}
	return NewEnvWithData(p.Env, bindings), nil
}

// AsMacro returns a copy of p marked as a macro.
func (p *Procedure) AsMacro() *Procedure {
	cp := *p
	cp.IsMacro = true
	return &cp
}

// Named returns a copy of p with the given name.
func (p *Procedure) Named(name string) *Procedure {
	cp := *p
	cp.Name = name
	return &cp
}

func (*Procedure) Type() Type { return TLambda }
