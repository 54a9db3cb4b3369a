// Copyright © 2018 The ELPS authors

package profiler

import (
	"context"
	"runtime/pprof"

	"github.com/luthersystems/ares/lisp"
)

// This profiler type appends tags to pprof output if pprof is enabled.  It
// does not start pprof itself.  The pprof sampling rate is fixed at 100Hz so
// only long running programs produce a useful profile.
type pprofAnnotator struct {
	profiler
	currentContext context.Context
}

var _ lisp.Profiler = &pprofAnnotator{}

func NewPprofAnnotator(runtime *lisp.Runtime, parentContext context.Context, opts ...Option) *pprofAnnotator {
	p := &pprofAnnotator{
		profiler: profiler{
			runtime: runtime,
		},
		currentContext: parentContext,
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *pprofAnnotator) Enable() error {
	p.runtime.Profiler = p
	if p.currentContext == nil {
		p.currentContext = context.Background()
	}
	return p.profiler.Enable()
}

func (p *pprofAnnotator) Complete() error {
	pprof.SetGoroutineLabels(context.Background())
	return nil
}

// Labels returns the pprof labels currently applied.
func (p *pprofAnnotator) Labels() map[string]string {
	labels := make(map[string]string)
	pprof.ForLabels(p.currentContext, func(k, v string) bool {
		labels[k] = v
		return true
	})
	return labels
}

func (p *pprofAnnotator) Start(name string) func() {
	if p.skipTrace(name) {
		return func() {}
	}
	// The label context is kept on a stack instead of using pprof.Do, which
	// would need a closure around the evaluation of the call.
	oldContext := p.currentContext
	p.currentContext = pprof.WithLabels(p.currentContext, pprof.Labels(
		"function", p.prettyFunName(name),
		"context", p.runtime.ID.String(),
	))
	pprof.SetGoroutineLabels(p.currentContext)

	return func() {
		p.currentContext = oldContext
		pprof.SetGoroutineLabels(p.currentContext)
	}
}
