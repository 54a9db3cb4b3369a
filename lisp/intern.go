// Copyright © 2018 The ELPS authors

package lisp

import (
	"fmt"
	"strconv"
)

// Interner maps symbol names to dense Symbol ids and back.  Symbols are never
// released.  An Interner is not safe for concurrent use.
type Interner struct {
	ids   map[string]Symbol
	names map[Symbol]string
	next  Symbol
}

// NewInterner returns an empty Interner.
func NewInterner() *Interner {
	return &Interner{
		ids:   make(map[string]Symbol),
		names: make(map[Symbol]string),
	}
}

// Intern returns the symbol for name, allocating one if name has not been
// seen before.
func (in *Interner) Intern(name string) Symbol {
	if sym, ok := in.ids[name]; ok {
		return sym
	}
	sym := in.alloc()
	in.ids[name] = sym
	in.names[sym] = name
	return sym
}

// GenSym returns a fresh anonymous symbol.  It can never collide with an
// interned name.
func (in *Interner) GenSym() Symbol {
	return in.alloc()
}

// GenSymPrefix returns a fresh symbol that prints as prefix followed by its
// id.  The printable name is not registered for lookup so the symbol remains
// unique even if the same text is later interned.
func (in *Interner) GenSymPrefix(prefix string) Symbol {
	sym := in.alloc()
	in.names[sym] = prefix + strconv.FormatUint(uint64(sym), 10)
	return sym
}

func (in *Interner) alloc() Symbol {
	sym := in.next
	in.next++
	return sym
}

// Lookup returns the name of sym.
func (in *Interner) Lookup(sym Symbol) (string, bool) {
	name, ok := in.names[sym]
	return name, ok
}

// LookupOrAnon returns the name of sym or a placeholder when sym has no name.
func (in *Interner) LookupOrAnon(sym Symbol) string {
	if name, ok := in.names[sym]; ok {
		return name
	}
	return fmt.Sprintf("s%d", sym)
}

// SymbolForName returns the symbol for name if it has been interned.
func (in *Interner) SymbolForName(name string) (Symbol, bool) {
	sym, ok := in.ids[name]
	return sym, ok
}

// Contains returns true if name has been interned.
func (in *Interner) Contains(name string) bool {
	_, ok := in.ids[name]
	return ok
}
