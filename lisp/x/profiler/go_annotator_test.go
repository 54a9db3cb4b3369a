// Copyright © 2018 The ELPS authors

package profiler_test

import (
	"testing"

	"github.com/luthersystems/ares/arestest"
	"github.com/luthersystems/ares/lisp"
	"github.com/luthersystems/ares/lisp/x/profiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPprofAnnotator(t *testing.T) {
	ctx := arestest.NewContext(t)
	ppa := profiler.NewPprofAnnotator(ctx.Runtime(), nil)
	require.NoError(t, ppa.Enable())
	var seen map[string]string
	ctx.SetFn("labels", lisp.FreeFn("labels", func([]lisp.Value) (lisp.Value, error) {
		seen = ppa.Labels()
		return nil, nil
	}))
	_, err := ctx.Load(&struct{}{}).EvalString(`
(define outer (lambda () (inner)))
(define inner (lambda () (labels)))
(outer)`)
	require.NoError(t, err)
	assert.Equal(t, "labels", seen["function"])
	assert.Equal(t, ctx.Runtime().ID.String(), seen["context"])
	assert.Empty(t, ppa.Labels())
	assert.NoError(t, ppa.Complete())
}
