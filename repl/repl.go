// Copyright © 2018 The ELPS authors

package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"github.com/luthersystems/ares/lisp"
	"github.com/luthersystems/ares/lisp/lisplib"
	"github.com/luthersystems/ares/parser"
	"github.com/sirupsen/logrus"
)

type config struct {
	stdin   io.ReadCloser
	stderr  io.WriteCloser
	logger  logrus.FieldLogger
	history string
	lisp    []lisp.Config
}

func newConfig(opts ...Option) *config {
	config := &config{history: historyPath()}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

type Option func(*config)

// WithStdin allows overriding the input to the REPL.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStderr allows overriding the output to the REPL.
func WithStderr(stderr io.WriteCloser) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// WithLogger sets the logger given to the interpreter.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithHistoryFile overrides the readline history file.  An empty path
// disables history.
func WithHistoryFile(path string) Option {
	return func(c *config) {
		c.history = path
	}
}

// WithLispConfig passes additional options to the interpreter context.
func WithLispConfig(opts ...lisp.Config) Option {
	return func(c *config) {
		c.lisp = append(c.lisp, opts...)
	}
}

// RunRepl runs a simple repl in a context holding the standard library.
func RunRepl(prompt string, opts ...Option) {
	cfg := newConfig(opts...)
	ctxOpts := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
	}
	if cfg.stderr != nil {
		ctxOpts = append(ctxOpts, lisp.WithStderr(cfg.stderr))
	}
	if cfg.logger != nil {
		ctxOpts = append(ctxOpts, lisp.WithLogger(cfg.logger))
	}
	ctxOpts = append(ctxOpts, cfg.lisp...)
	ctx, err := lisp.New[struct{}](ctxOpts...)
	if err != nil {
		errlnf("Language initialization failure: %v", err)
		os.Exit(1)
	}
	if err := lisplib.LoadLibrary(ctx); err != nil {
		errlnf("Stdlib initialization failure: %v", err)
		os.Exit(1)
	}
	RunContext(ctx, prompt, strings.Repeat(" ", len(prompt)), opts...)
}

// RunContext runs a simple repl reading forms into ctx.  Input lines are
// accumulated until their brackets balance and then evaluated together.
func RunContext[S any](ctx *lisp.Context[S], prompt, cont string, opts ...Option) {
	cfg := newConfig(opts...)
	rt := ctx.Runtime()
	if cfg.stderr != nil {
		rt.Stderr = cfg.stderr
	}
	ensureHistoryFilePermissions(cfg.history)

	rlCfg := &readline.Config{
		Stdout:            rt.Stderr,
		Stderr:            rt.Stderr,
		Prompt:            prompt,
		HistoryFile:       cfg.history,
		HistorySearchFold: true,
		AutoComplete:      &symbolCompleter{rt: rt, env: ctx.Env()},
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		panic(err)
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	var state S
	lc := ctx.Load(&state)
	var pending strings.Builder
	for {
		if pending.Len() == 0 {
			rl.SetPrompt(prompt)
		} else {
			rl.SetPrompt(cont)
		}
		line, err := rl.ReadLine()
		if errors.Is(err, readline.ErrInterrupt) {
			pending.Reset()
			continue
		}
		if err != nil {
			break
		}
		if pending.Len() == 0 && strings.TrimSpace(line) == "" {
			continue
		}
		pending.WriteString(line)
		pending.WriteByte('\n')
		if depth(pending.String()) > 0 {
			continue
		}
		src := pending.String()
		pending.Reset()
		val, err := lc.EvalString(src)
		if err != nil {
			renderError(rt.Stderr, err)
			continue
		}
		fmt.Fprintln(rt.Stderr, ctx.Format(val)) //nolint:errcheck // best-effort REPL output
	}
}

// depth returns the number of brackets left open in src.  Brackets inside
// strings and comments are ignored.  Excess closing brackets give a
// negative depth so the parser can report them.
func depth(src string) int {
	n := 0
	inString, escaped, comment := false, false, false
	for _, c := range src {
		switch {
		case comment:
			if c == '\n' {
				comment = false
			}
		case inString:
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
		default:
			switch c {
			case '"':
				inString = true
			case ';':
				comment = true
			case '(', '[', '{':
				n++
			case ')', ']', '}':
				n--
			}
		}
	}
	return n
}

// ensureHistoryFilePermissions creates the history file if needed and
// restricts it to the owner.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0600)
	if err == nil {
		f.Close() //nolint:errcheck,gosec // nothing was written
	}
	_ = os.Chmod(path, 0600)
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ares_history")
}

func errlnf(format string, v ...interface{}) {
	if strings.HasSuffix(format, "\n") {
		errf(format, v...)
		return
	}
	errf(format+"\n", v...)
}

func errf(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format, v...)
}
