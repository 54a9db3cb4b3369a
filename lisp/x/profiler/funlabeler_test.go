// Copyright © 2018 The ELPS authors

package profiler_test

import (
	"context"
	"testing"

	"github.com/luthersystems/ares/arestest"
	"github.com/luthersystems/ares/lisp/x/profiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextLabeler(t *testing.T) {
	exporter := newExporter(t)
	ctx := arestest.NewContext(t)
	ppa := profiler.NewOpenTelemetryAnnotator(ctx.Runtime(), context.Background(),
		profiler.WithoutForeignFunctions(ctx.Env()),
		profiler.WithContextLabeler())
	require.NoError(t, ppa.Enable())
	_, err := ctx.Load(&struct{}{}).EvalString("((lambda () 1))\n(define f (lambda () 2))\n(f)")
	require.NoError(t, err)
	prefix := ctx.Runtime().ID.String()[:8]
	// Anonymous procedures are reported as lambda, which is skipped along
	// with the special operator of the same name.
	assert.Equal(t, []string{prefix + "_f"}, spanNames(exporter.GetSpans()))
}
