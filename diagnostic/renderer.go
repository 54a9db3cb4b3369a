// Copyright © 2024 The ELPS authors

package diagnostic

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// DefaultWidth is the column at which messages wrap when Renderer.Width is
// zero.
const DefaultWidth = 80

// Renderer formats diagnostics as a header line followed by notes.
//
//	error[undefined-name]: undefined name: fnord
//	   = note: use (help) to list the names in scope
type Renderer struct {
	// Color controls ANSI color output. Default is ColorAuto.
	Color ColorMode
	// Width is the column at which messages wrap.
	Width int
}

// Render writes a single diagnostic to w.
func (r *Renderer) Render(w io.Writer, d Diagnostic) error {
	p := choosePalette(r.Color, w)
	bw := bufio.NewWriter(w)
	ew := &errWriter{w: bw}

	head := d.Severity.String()
	if d.Code != "" {
		head += "[" + d.Code + "]"
	}
	ew.printf("%s%s%s: %s%s%s\n", severityColor(d.Severity, p), head, p.reset,
		p.bold, r.wrap(d.Message, len(head)+2), p.reset)
	for _, note := range d.Notes {
		ew.printf("   %s=%s note: %s\n", p.boldCyan, p.reset, r.wrap(note, 11))
	}

	if ew.err != nil {
		return ew.err
	}
	return bw.Flush()
}

// RenderAll writes all diagnostics to w separated by blank lines.
func (r *Renderer) RenderAll(w io.Writer, diags []Diagnostic) error {
	for i, d := range diags {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := r.Render(w, d); err != nil {
			return err
		}
	}
	return nil
}

// wrap fits msg to the width remaining after a prefix of margin columns.
// Continuation lines are indented to the margin.
func (r *Renderer) wrap(msg string, margin int) string {
	width := r.Width
	if width <= 0 {
		width = DefaultWidth
	}
	if width-margin < 20 {
		return msg
	}
	lines := strings.SplitN(wordwrap.String(msg, width-margin), "\n", 2)
	if len(lines) == 1 {
		return lines[0]
	}
	return lines[0] + "\n" + indent.String(lines[1], uint(margin))
}

func severityColor(s Severity, p palette) string {
	switch s {
	case SeverityWarning:
		return p.yellow
	case SeverityNote:
		return p.boldCyan
	}
	return p.boldRed
}

// errWriter wraps a writer and captures the first error, short-circuiting
// subsequent writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, a...)
}
