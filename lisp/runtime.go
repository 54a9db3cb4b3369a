// Copyright © 2018 The ELPS authors

package lisp

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Reader parses source text into values.  Symbols are interned through in.
type Reader interface {
	Read(in *Interner, name string, r io.Reader) ([]Value, error)
}

// Profiler is notified when procedures and foreign functions are invoked.
// Start returns a function that is called when the invocation completes,
// whether it returns normally or fails.
type Profiler interface {
	Start(name string) func()
}

// Runtime holds state shared by a Context and every evaluator loaded from
// it.
type Runtime struct {
	ID       uuid.UUID
	Interner *Interner
	Stderr   io.Writer
	Logger   logrus.FieldLogger
	Reader   Reader
	Profiler Profiler
	// MaxStackHeight bounds the number of evaluator frames.  Zero means
	// unlimited.
	MaxStackHeight int
	// MaxMacroExpansionDepth bounds successive macro expansions of a single
	// form.  Zero means unlimited.
	MaxMacroExpansionDepth int

	sym coreSymbols
}

type coreSymbols struct {
	quote           Symbol
	quasiquote      Symbol
	unquote         Symbol
	unquoteSplicing Symbol
	dot             Symbol
	elseSym         Symbol
}

// DefaultMaxMacroExpansionDepth is the macro expansion limit of a
// StandardRuntime.
const DefaultMaxMacroExpansionDepth = 10000

// StandardRuntime returns a Runtime writing to os.Stderr with a logger at
// warning level.
func StandardRuntime() *Runtime {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	in := NewInterner()
	rt := &Runtime{
		ID:                     uuid.New(),
		Interner:               in,
		Stderr:                 os.Stderr,
		MaxMacroExpansionDepth: DefaultMaxMacroExpansionDepth,
		sym: coreSymbols{
			quote:           in.Intern("quote"),
			quasiquote:      in.Intern("quasiquote"),
			unquote:         in.Intern("unquote"),
			unquoteSplicing: in.Intern("unquote-splicing"),
			dot:             in.Intern("."),
			elseSym:         in.Intern("else"),
		},
	}
	rt.Logger = logger.WithField("context", rt.ID.String())
	return rt
}

// Symbol interns name.
func (rt *Runtime) Symbol(name string) Symbol {
	return rt.Interner.Intern(name)
}

// Format prints v using the runtime's interner.
func (rt *Runtime) Format(v Value) string {
	return Format(rt.Interner, v)
}

func (rt *Runtime) profile(name string) func() {
	if rt.Profiler == nil {
		return nil
	}
	return rt.Profiler.Start(name)
}
