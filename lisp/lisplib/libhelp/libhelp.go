// Copyright © 2021 The ELPS authors

// Package libhelp renders documentation for the functions bound in an
// environment.
package libhelp

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/luthersystems/ares/lisp"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// MissingDoc describes a foreign function with no documentation.
type MissingDoc struct {
	// Convention is the calling convention of the function.
	Convention lisp.Convention

	// Name is the symbol the function is bound to.
	Name string
}

// CheckMissing reports foreign functions in env, and its parents, that have
// no docstring.
func CheckMissing(rt *lisp.Runtime, env *lisp.Env) []MissingDoc {
	var missing []MissingDoc
	for _, b := range sortedBindings(rt, env) {
		f, ok := b.value.(*lisp.ForeignFunction)
		if !ok {
			continue
		}
		if strings.TrimSpace(f.Doc) == "" {
			missing = append(missing, MissingDoc{Convention: f.Convention, Name: b.name})
		}
	}
	return missing
}

// LoadPackage binds help in env.
func LoadPackage(rt *lisp.Runtime, env *lisp.Env) error {
	f := lisp.ContextFn("help", builtinHelp)
	f.Doc = `Returns the documentation for a symbol or function as a string.
	With no arguments help returns the names of every bound function.`
	env.InsertHere(rt.Symbol("help"), f)
	return nil
}

func builtinHelp(args []lisp.Value, ev *lisp.Evaluator) (lisp.Value, error) {
	var buf strings.Builder
	switch len(args) {
	case 0:
		if err := RenderEnv(&buf, ev.Runtime(), ev.Env()); err != nil {
			return nil, err
		}
	case 1:
		name, v, err := resolve(ev, args[0])
		if err != nil {
			return nil, err
		}
		if err := RenderValue(&buf, ev.Runtime(), name, v); err != nil {
			return nil, err
		}
	default:
		return nil, lisp.UnexpectedArityError(len(args), "0 or 1")
	}
	return lisp.String(buf.String()), nil
}

func resolve(ev *lisp.Evaluator, v lisp.Value) (string, lisp.Value, error) {
	switch v := v.(type) {
	case lisp.Symbol:
		name := ev.Runtime().Interner.LookupOrAnon(v)
		bound, ok := ev.Env().Get(v)
		if !ok {
			return "", nil, lisp.UndefinedNameError(name)
		}
		return name, bound, nil
	case *lisp.ForeignFunction:
		return v.Name, v, nil
	case *lisp.Procedure:
		return v.Name, v, nil
	}
	return "", nil, lisp.UnexpectedTypeError(v, "Symbol or function")
}

// RenderEnv writes the name of every executable binding visible from env,
// one per line, with the first line of its docstring.
func RenderEnv(w io.Writer, rt *lisp.Runtime, env *lisp.Env) error {
	for _, b := range sortedBindings(rt, env) {
		if !lisp.Executable(b.value) {
			continue
		}
		summary := firstLine(docOf(b.value))
		var err error
		if summary == "" {
			_, err = fmt.Fprintln(w, b.name)
		} else {
			_, err = fmt.Fprintf(w, "%-20s %s\n", b.name, summary)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// RenderValue writes the signature and documentation of v bound to name.
func RenderValue(w io.Writer, rt *lisp.Runtime, name string, v lisp.Value) error {
	switch v := v.(type) {
	case *lisp.Procedure:
		kind := "lambda"
		if v.IsMacro {
			kind = "macro"
		}
		if _, err := fmt.Fprintf(w, "%s (%s)\n", kind, signature(rt, name, v.Params)); err != nil {
			return fmt.Errorf("rendering signature: %w", err)
		}
		return nil
	case *lisp.ForeignFunction:
		if _, err := fmt.Fprintf(w, "%s foreign-fn %s\n", v.Convention, name); err != nil {
			return fmt.Errorf("rendering signature: %w", err)
		}
		doc := cleanDocstring(v.Doc)
		if doc != "" {
			_, err := fmt.Fprintln(w, doc)
			return err
		}
		return nil
	}
	_, err := fmt.Fprintf(w, "%s %s %s\n", v.Type(), name, rt.Format(v))
	return err
}

func signature(rt *lisp.Runtime, name string, params lisp.ParamBinding) string {
	parts := []string{name}
	for _, sym := range params.Fixed {
		parts = append(parts, rt.Interner.LookupOrAnon(sym))
	}
	if params.HasRest {
		parts = append(parts, ".", rt.Interner.LookupOrAnon(params.Rest))
	}
	return strings.Join(parts, " ")
}

func docOf(v lisp.Value) string {
	if f, ok := v.(*lisp.ForeignFunction); ok {
		return dedentDoc(f.Doc)
	}
	return ""
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

type namedBinding struct {
	name  string
	value lisp.Value
}

func sortedBindings(rt *lisp.Runtime, env *lisp.Env) []namedBinding {
	defs := env.AllDefined()
	out := make([]namedBinding, 0, len(defs))
	for sym, b := range defs {
		out = append(out, namedBinding{rt.Interner.LookupOrAnon(sym), b.Value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func cleanDocstring(doc string) string {
	if doc == "" {
		return ""
	}
	if doc[0] == '\n' {
		doc = doc[1:]
	}
	doc = indent.String(wordwrap.String(dedentDoc(doc), 72), 2)
	return strings.TrimSuffix(doc, "\n")
}

// dedentDoc removes the common leading whitespace of the continuation lines
// of a raw string docstring.  Tabs count as four spaces.
func dedentDoc(s string) string {
	s = strings.ReplaceAll(s, "\t", "    ")
	lines := strings.Split(s, "\n")
	minWS := -1
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " ")
		if trimmed == "" {
			continue
		}
		if ws := len(line) - len(trimmed); minWS < 0 || ws < minWS {
			minWS = ws
		}
	}
	lines[0] = strings.TrimLeft(lines[0], " ")
	for i := 1; i < len(lines); i++ {
		switch {
		case strings.TrimSpace(lines[i]) == "":
			lines[i] = ""
		case minWS > 0 && len(lines[i]) >= minWS:
			lines[i] = lines[i][minWS:]
		}
	}
	return strings.Join(lines, "\n")
}
