// Copyright © 2024 The ELPS authors

package diagnostic

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/luthersystems/ares/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, r *Renderer, d Diagnostic) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, d))
	return buf.String()
}

func TestRender(t *testing.T) {
	r := &Renderer{Color: ColorNever}
	tests := []struct {
		name     string
		d        Diagnostic
		expected string
	}{
		{"plain", Diagnostic{Message: "boom"}, "error: boom\n"},
		{"coded", Diagnostic{Code: "parse-error", Message: "bad"}, "error[parse-error]: bad\n"},
		{"warning", Diagnostic{Severity: SeverityWarning, Message: "odd"}, "warning: odd\n"},
		{"notes", Diagnostic{Message: "boom", Notes: []string{"first", "second"}},
			"error: boom\n   = note: first\n   = note: second\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, render(t, r, test.d))
		})
	}
}

func TestRenderWraps(t *testing.T) {
	r := &Renderer{Color: ColorNever, Width: 28}
	got := render(t, r, Diagnostic{Message: "one two three four five six seven eight"})
	assert.Equal(t, "error: one two three four\n       five six seven eight\n", got)
}

func TestRenderColor(t *testing.T) {
	got := render(t, &Renderer{Color: ColorAlways}, Diagnostic{Message: "boom"})
	assert.Equal(t, "\033[1;31merror\033[0m: \033[1mboom\033[0m\n", got)

	got = render(t, &Renderer{}, Diagnostic{Message: "boom"})
	assert.Equal(t, "error: boom\n", got, "a buffer is not a terminal")
}

func TestRenderAll(t *testing.T) {
	var buf bytes.Buffer
	r := &Renderer{Color: ColorNever}
	require.NoError(t, r.RenderAll(&buf, []Diagnostic{{Message: "a"}, {Severity: SeverityNote, Message: "b"}}))
	assert.Equal(t, "error: a\n\nnote: b\n", buf.String())
}

func TestFromError(t *testing.T) {
	d := FromError(errors.New("plain"))
	assert.Equal(t, Diagnostic{Message: "plain"}, d)

	d = FromError(fmt.Errorf("main.lisp: %w", lisp.UndefinedNameError("fnord")))
	assert.Equal(t, "undefined-name", d.Code)
	assert.Equal(t, "main.lisp: undefined name: fnord", d.Message)
	require.Len(t, d.Notes, 1)
	assert.True(t, strings.HasPrefix(d.Notes[0], "use (help)"))

	d = FromError(&lisp.Error{Kind: lisp.StackOverflow, Message: "more than 10 frames"})
	assert.Equal(t, "stack-overflow", d.Code)
	assert.Equal(t, []string{"raise the limit with --max-stack-height"}, d.Notes)
}
