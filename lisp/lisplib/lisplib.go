// Copyright © 2018 The ELPS authors

// Package lisplib is used to conveniently load the standard library into a
// lisp.Context.
package lisplib

import (
	"fmt"

	"github.com/luthersystems/ares/lisp"
	"github.com/luthersystems/ares/lisp/lisplib/libhelp"
	"github.com/luthersystems/ares/lisp/lisplib/liblist"
	"github.com/luthersystems/ares/lisp/lisplib/libmap"
	"github.com/luthersystems/ares/lisp/lisplib/libmath"
	"github.com/luthersystems/ares/lisp/lisplib/libstring"
	"github.com/luthersystems/ares/lisp/lisplib/libtypes"
)

// Package is the loader signature shared by every library package.
type Package struct {
	Name string
	Load func(rt *lisp.Runtime, env *lisp.Env) error
}

// Packages lists the standard library in load order.
var Packages = []Package{
	{"list", liblist.LoadPackage},
	{"types", libtypes.LoadPackage},
	{"math", libmath.LoadPackage},
	{"map", libmap.LoadPackage},
	{"string", libstring.LoadPackage},
	{"help", libhelp.LoadPackage},
}

// LoadLibrary loads the standard library into the global environment of
// ctx.  The core builtins must already be bound, as they are by lisp.New.
func LoadLibrary[S any](ctx *lisp.Context[S]) error {
	return LoadEnv(ctx.Runtime(), ctx.Env())
}

// LoadEnv loads the standard library into env.
func LoadEnv(rt *lisp.Runtime, env *lisp.Env) error {
	for _, pkg := range Packages {
		if err := pkg.Load(rt, env); err != nil {
			return fmt.Errorf("load %s: %w", pkg.Name, err)
		}
		rt.Logger.WithField("package", pkg.Name).Debug("library loaded")
	}
	return nil
}
