// Copyright © 2018 The ELPS authors

// Package profiler provides lisp.Profiler implementations that report
// procedure and foreign function calls to OpenTelemetry, pprof labels or a
// callgrind file.
package profiler

import (
	"fmt"

	"github.com/luthersystems/ares/lisp"
)

// profiler is a minimal lisp.Profiler
type profiler struct {
	runtime    *lisp.Runtime
	enabled    bool
	skipFilter SkipFilter
	funLabeler FunLabeler
}

var _ lisp.Profiler = &profiler{}

func (p *profiler) IsEnabled() bool {
	return p.enabled
}

type Option func(*profiler)

func (p *profiler) applyConfigs(opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}

func (p *profiler) Enable() error {
	if p.enabled {
		return fmt.Errorf("profiler already enabled")
	}
	p.enabled = true
	return nil
}

func (p *profiler) Start(name string) func() {
	return func() {}
}

// prettyFunName returns the label to report for name.  When no labeler is
// configured, or it returns an empty label, the label is name itself.
func (p *profiler) prettyFunName(name string) string {
	if p.funLabeler == nil {
		return name
	}
	if label := p.funLabeler(p.runtime, name); label != "" {
		return label
	}
	return name
}

// skipTrace is a helper function to decide whether to skip tracing.
func (p *profiler) skipTrace(name string) bool {
	return !p.enabled || name == "" || p.skipFilter != nil && p.skipFilter(name)
}
