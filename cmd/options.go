// Copyright © 2024 The ELPS authors

package cmd

import (
	"fmt"
	"io"

	"github.com/luthersystems/ares/lisp"
	"github.com/luthersystems/ares/lisp/lisplib"
	"github.com/luthersystems/ares/parser"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Option configures an exported command factory (RunCommand, DocCommand).
type Option func(*cmdConfig)

type cmdConfig struct {
	lispOpts []lisp.Config
	setup    []func(*lisp.Context[struct{}]) error
}

func newCmdConfig(opts ...Option) *cmdConfig {
	c := &cmdConfig{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithLispConfig passes additional options to every interpreter context a
// command creates.
func WithLispConfig(opts ...lisp.Config) Option {
	return func(c *cmdConfig) { c.lispOpts = append(c.lispOpts, opts...) }
}

// WithSetup registers fn to run after the standard library is loaded.
// Embedders use it to bind their own foreign functions so that commands
// can run and document them.
func WithSetup(fn func(*lisp.Context[struct{}]) error) Option {
	return func(c *cmdConfig) { c.setup = append(c.setup, fn) }
}

// newContext returns a context with the standard library loaded and every
// setup function applied.  Interpreter output goes to stderr.
func (c *cmdConfig) newContext(stderr io.Writer) (*lisp.Context[struct{}], error) {
	opts := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithStderr(stderr),
		lisp.WithLogger(newLogger(stderr)),
		lisp.WithMaxStackHeight(viper.GetInt("max-stack-height")),
		lisp.WithMaxMacroExpansionDepth(viper.GetInt("max-macro-expansion-depth")),
	}
	opts = append(opts, c.lispOpts...)
	ctx, err := lisp.New[struct{}](opts...)
	if err != nil {
		return nil, err
	}
	if err := lisplib.LoadLibrary(ctx); err != nil {
		return nil, fmt.Errorf("load library: %w", err)
	}
	for _, fn := range c.setup {
		if err := fn(ctx); err != nil {
			return nil, err
		}
	}
	return ctx, nil
}

// newLogger returns a logger at the configured log-level.
func newLogger(w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	level, err := logrus.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}
