// Copyright © 2018 The ELPS authors

// Package arestest runs tables of lisp expressions against a fresh
// interpreter.
package arestest

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/luthersystems/ares/lisp"
	"github.com/luthersystems/ares/lisp/lisplib"
	"github.com/luthersystems/ares/parser"
	"github.com/sirupsen/logrus"
)

// MaxStackHeight bounds the frame stack of test contexts so runaway
// recursion fails instead of exhausting memory.
const MaxStackHeight = 1 << 20

// TestSequence is a sequence of lisp expressions which are evaluated
// sequentially by one lisp.Context.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the printed result, or the error message
	Output string // output written to Runtime.Stderr
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// NewContext returns a context with the standard library loaded.  Lisp
// output and debug logs are sent to t.Log.
func NewContext(t testing.TB, opts ...lisp.Config) *lisp.Context[struct{}] {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(NewLogger(t))
	logger.SetLevel(logrus.DebugLevel)
	base := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithStderr(NewLogger(t)),
		lisp.WithLogger(logger),
		lisp.WithMaxStackHeight(MaxStackHeight),
	}
	ctx, err := lisp.New[struct{}](append(base, opts...)...)
	if err != nil {
		t.Fatalf("failed to create context: %v", err)
	}
	if err := lisplib.LoadLibrary(ctx); err != nil {
		t.Fatalf("failed to load library: %v", err)
	}
	return ctx
}

// Result returns the printed form of v, or the message of err.
func Result(ctx interface{ Format(lisp.Value) string }, v lisp.Value, err error) string {
	if err != nil {
		return err.Error()
	}
	return ctx.Format(v)
}

// RunTestSuite runs each TestSequence in tests on an isolated context.
func RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			var out bytes.Buffer
			ctx := NewContext(t, lisp.WithStderr(io.MultiWriter(NewLogger(t), &out)))
			lc := ctx.Load(&struct{}{})
			for j, expr := range test.TestSequence {
				out.Reset()
				v, err := lc.EvalString(expr.Expr)
				result := Result(ctx, v, err)
				if result != expr.Result {
					t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
				}
				if out.String() != expr.Output {
					t.Errorf("test %d %q: expr %d: expected debug output %q (got %q)", i, test.Name, j, expr.Output, out.String())
				}
			}
		})
	}
}

// RunBenchmark runs a standard benchmark that evaluates the expressions of
// source in a fresh context on each iteration.
func RunBenchmark(b *testing.B, source string) {
	b.StopTimer()
	for i := 0; i < b.N; i++ {
		ctx, err := lisp.New[struct{}](
			lisp.WithReader(parser.NewReader()),
			lisp.WithStderr(io.Discard),
			lisp.WithMaxStackHeight(MaxStackHeight),
		)
		if err != nil {
			b.Fatal(err)
		}
		if err := lisplib.LoadLibrary(ctx); err != nil {
			b.Fatal(err)
		}
		lc := ctx.Load(&struct{}{})
		b.StartTimer()
		_, err = lc.EvalString(source)
		b.StopTimer()
		if err != nil {
			b.Fatalf("eval: %v", err)
		}
	}
}

// MustParse reads src with the standard reader or fails t.
func MustParse(t testing.TB, in *lisp.Interner, src string) []lisp.Value {
	t.Helper()
	vals, err := parser.NewReader().Read(in, "test", strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return vals
}
