// Copyright © 2018 The ELPS authors

package profiler

import (
	"regexp"

	"github.com/luthersystems/ares/lisp"
)

// FunLabeler provides an alternative name for a function label in the trace.
type FunLabeler func(runtime *lisp.Runtime, name string) string

// WithFunLabeler sets the labeler for tracing spans.
func WithFunLabeler(funLabeler FunLabeler) Option {
	return func(p *profiler) {
		p.funLabeler = funLabeler
	}
}

// WithContextLabeler prefixes every label with the id of the runtime's
// context so spans from concurrent contexts can be told apart.
func WithContextLabeler() Option {
	return WithFunLabeler(func(runtime *lisp.Runtime, name string) string {
		return sanitizeLabel(runtime.ID.String()[:8] + " " + name)
	})
}

var (
	sanitizeRegExp   = regexp.MustCompile(`[\s_]+`)
	validLabelRegExp = regexp.MustCompile(`[[:graph:]]*`)
)

func sanitizeLabel(userLabel string) string {
	if userLabel == "" {
		return ""
	}

	// Replace spaces with underscores
	userLabel = sanitizeRegExp.ReplaceAllString(userLabel, "_")

	// Find the first valid label match
	matches := validLabelRegExp.FindStringSubmatch(userLabel)
	if len(matches) > 0 {
		return matches[0]
	}

	return ""
}
