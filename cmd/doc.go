// Copyright © 2021 The ELPS authors

package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/luthersystems/ares/lisp"
	"github.com/luthersystems/ares/lisp/lisplib/libhelp"
	"github.com/spf13/cobra"
)

type docFlags struct {
	sourceFile string
	missing    bool
}

// DocCommand returns the doc command.  Options let an embedder document its
// own foreign functions.
func DocCommand(opts ...Option) *cobra.Command {
	cfg := newCmdConfig(opts...)
	flags := &docFlags{}
	cmd := &cobra.Command{
		Use:   "doc [flags] [QUERY]",
		Short: "Show documentation for functions and macros",
		Long: `Show built-in documentation for functions, macros, and special
operators.

With a query, prints the signature and docstring of the value bound to that
name. Without one, lists every bound function with the first line of its
docstring. Use -f to load a source file first (useful for documenting your
own code) and -m to list foreign functions that lack documentation.

Examples:
  ares doc                         List every function
  ares doc map                     Show docs for the map function
  ares doc -f mylib.lisp my-func   Load a file, then show docs for my-func
  ares doc -m                      Exit non-zero if any builtin is undocumented`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			out := bufio.NewWriter(cmd.OutOrStdout())
			defer out.Flush() //nolint:errcheck // best-effort flush on exit
			return docExec(out, cmd.ErrOrStderr(), cfg, flags, args)
		},
	}
	cmd.Flags().StringVarP(&flags.sourceFile, "source-file", "f", "",
		"Evaluate a lisp source file before querying documentation (presumably desired docs are in source code).")
	cmd.Flags().BoolVarP(&flags.missing, "missing", "m", false,
		"List foreign functions without documentation.")
	return cmd
}

func docExec(out io.Writer, stderr io.Writer, cfg *cmdConfig, flags *docFlags, args []string) error {
	// Interpreter output is discarded unless loading the source file fails.
	errbuf := &bytes.Buffer{}
	ctx, err := cfg.newContext(errbuf)
	if err != nil {
		_, _ = stderr.Write(errbuf.Bytes())
		return err
	}
	if flags.sourceFile != "" {
		b, err := os.ReadFile(flags.sourceFile)
		if err != nil {
			return err
		}
		var state struct{}
		if _, err := ctx.Load(&state).EvalString(string(b)); err != nil {
			_, _ = stderr.Write(errbuf.Bytes())
			return fmt.Errorf("%s: %w", flags.sourceFile, err)
		}
	}
	rt, env := ctx.Runtime(), ctx.Env()
	switch {
	case flags.missing:
		return docMissing(out, rt, env)
	case len(args) == 0:
		return libhelp.RenderEnv(out, rt, env)
	}
	v, ok := ctx.Get(args[0])
	if !ok {
		return lisp.UndefinedNameError(args[0])
	}
	return libhelp.RenderValue(out, rt, args[0], v)
}

func docMissing(out io.Writer, rt *lisp.Runtime, env *lisp.Env) error {
	missing := libhelp.CheckMissing(rt, env)
	for _, m := range missing {
		if _, err := fmt.Fprintf(out, "%s foreign-fn %s\n", m.Convention, m.Name); err != nil {
			return err
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%d foreign functions are missing documentation", len(missing))
	}
	return nil
}
