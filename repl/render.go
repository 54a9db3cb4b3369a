// Copyright © 2024 The ELPS authors

package repl

import (
	"io"

	"github.com/luthersystems/ares/diagnostic"
)

// renderError writes err with the diagnostic renderer.
func renderError(w io.Writer, err error) {
	r := &diagnostic.Renderer{Color: diagnostic.ColorAuto}
	_ = r.Render(w, diagnostic.FromError(err))
}
