// Copyright © 2018 The ELPS authors

package lisp

import (
	"errors"
	"io"

	"github.com/sirupsen/logrus"
)

// Config is a function that configures a Runtime before a Context is
// created around it.
type Config func(rt *Runtime) error

// WithStderr returns a Config that makes print and other debugging output go
// to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(rt *Runtime) error {
		rt.Stderr = w
		return nil
	}
}

// WithReader returns a Config that makes EvalString use r to parse source.
// There is no default Reader.
func WithReader(r Reader) Config {
	return func(rt *Runtime) error {
		rt.Reader = r
		return nil
	}
}

// WithLogger returns a Config that replaces the runtime logger.  The context
// id is attached to every entry.
func WithLogger(l logrus.FieldLogger) Config {
	return func(rt *Runtime) error {
		if l == nil {
			return errors.New("nil logger")
		}
		rt.Logger = l.WithField("context", rt.ID.String())
		return nil
	}
}

// WithMaxStackHeight returns a Config that fails evaluation with
// StackOverflow once the evaluator holds more than n frames.
func WithMaxStackHeight(n int) Config {
	return func(rt *Runtime) error {
		if n < 0 {
			return errors.New("negative stack height")
		}
		rt.MaxStackHeight = n
		return nil
	}
}

// WithMaxMacroExpansionDepth returns a Config that limits the number of
// successive macro expansions of a form.  This prevents infinite macro
// expansion from exhausting memory.
func WithMaxMacroExpansionDepth(n int) Config {
	return func(rt *Runtime) error {
		if n < 0 {
			return errors.New("negative macro expansion depth")
		}
		rt.MaxMacroExpansionDepth = n
		return nil
	}
}

// WithProfiler returns a Config that reports invocations to p.
func WithProfiler(p Profiler) Config {
	return func(rt *Runtime) error {
		rt.Profiler = p
		return nil
	}
}
