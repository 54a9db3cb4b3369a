// Copyright © 2018 The ELPS authors

package profiler

import (
	"regexp"

	"github.com/luthersystems/ares/lisp"
)

// SkipFilter returns true for function names that should not be traced.
type SkipFilter func(name string) bool

// WithSkipFilter sets the filter for tracing spans.
func WithSkipFilter(skipFilter SkipFilter) Option {
	return func(p *profiler) {
		p.skipFilter = skipFilter
	}
}

// WithNameFilter only traces functions whose name matches pattern.
func WithNameFilter(pattern *regexp.Regexp) Option {
	return WithSkipFilter(func(name string) bool {
		return !pattern.MatchString(name)
	})
}

// WithoutForeignFunctions skips names bound to foreign functions in env, such
// as arithmetic and the special operators, so only lisp procedures are
// traced.
func WithoutForeignFunctions(env *lisp.Env) Option {
	return func(p *profiler) {
		p.skipFilter = func(name string) bool {
			sym, ok := p.runtime.Interner.SymbolForName(name)
			if !ok {
				return false
			}
			v, _ := env.Get(sym)
			_, foreign := v.(*lisp.ForeignFunction)
			return foreign
		}
	}
}
