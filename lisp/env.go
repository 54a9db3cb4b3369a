// Copyright © 2018 The ELPS authors

package lisp

import (
	"sync/atomic"
)

var envCounter atomic.Uint64

// Env is a lexical scope.  An Env's parent is fixed when it is constructed,
// so environments always form a tree.
type Env struct {
	ID       uint
	parent   *Env
	bindings map[Symbol]Value
}

// NewEnv returns an empty Env whose parent is parent.  A nil parent creates a
// root environment.
func NewEnv(parent *Env) *Env {
	return NewEnvWithData(parent, make(map[Symbol]Value))
}

// NewEnvWithData returns an Env with parent and the given initial bindings.
// The bindings map is owned by the returned Env.
func NewEnvWithData(parent *Env, bindings map[Symbol]Value) *Env {
	if bindings == nil {
		bindings = make(map[Symbol]Value)
	}
	env := &Env{
		ID:       uint(envCounter.Add(1)),
		parent:   parent,
		bindings: bindings,
	}
	if parent != nil && parent.ID >= env.ID {
		panic("environment created before its parent")
	}
	return env
}

// Parent returns the enclosing Env, or nil for a root Env.
func (env *Env) Parent() *Env {
	return env.parent
}

// Get looks sym up in env and its ancestors.
func (env *Env) Get(sym Symbol) (Value, bool) {
	for e := env; e != nil; e = e.parent {
		if v, ok := e.bindings[sym]; ok {
			return v, true
		}
	}
	return nil, false
}

// IsDefinedAtThisLevel returns true if sym is bound directly in env.
func (env *Env) IsDefinedAtThisLevel(sym Symbol) bool {
	_, ok := env.bindings[sym]
	return ok
}

// IsDefined returns true if sym is bound in env or any ancestor.
func (env *Env) IsDefined(sym Symbol) bool {
	_, ok := env.Get(sym)
	return ok
}

// WithValue calls fn with the nearest binding of sym and reports whether one
// was found.
func (env *Env) WithValue(sym Symbol, fn func(Value)) bool {
	v, ok := env.Get(sym)
	if ok {
		fn(v)
	}
	return ok
}

// WithValueMut replaces the nearest binding of sym with the result of fn and
// reports whether a binding was found.  It never creates a binding.
func (env *Env) WithValueMut(sym Symbol, fn func(Value) Value) bool {
	for e := env; e != nil; e = e.parent {
		if v, ok := e.bindings[sym]; ok {
			e.bindings[sym] = fn(v)
			return true
		}
	}
	return false
}

// InsertHere binds sym to v in env, returning any previous binding at this
// level.
func (env *Env) InsertHere(sym Symbol, v Value) (Value, bool) {
	prev, ok := env.bindings[sym]
	env.bindings[sym] = v
	return prev, ok
}

// Binding describes a visible binding returned by AllDefined.
type Binding struct {
	Depth int
	Value Value
}

// AllDefined returns every binding visible from env.  Depth is the number of
// parents between env and the Env holding the binding.  Shadowed bindings are
// omitted.
func (env *Env) AllDefined() map[Symbol]Binding {
	all := make(map[Symbol]Binding)
	depth := 0
	for e := env; e != nil; e = e.parent {
		for sym, v := range e.bindings {
			if _, ok := all[sym]; !ok {
				all[sym] = Binding{Depth: depth, Value: v}
			}
		}
		depth++
	}
	return all
}
