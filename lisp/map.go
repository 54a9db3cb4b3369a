// Copyright © 2018 The ELPS authors

package lisp

import (
	"cmp"

	"github.com/emirpasic/gods/maps/treemap"
)

// Map is an immutable sorted map.  Keys are restricted to Int, Float, Bool
// and String values and iterate in a deterministic order (first by type,
// then by value).
type Map struct {
	m *treemap.Map
}

func (*Map) Type() Type { return TMap }

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{m: treemap.NewWith(compareKeys)}
}

// NewMapFromPairs builds a Map from alternating keys and values.  Later
// duplicates of a key replace earlier ones.
func NewMapFromPairs(pairs []Value) (*Map, error) {
	if len(pairs)%2 != 0 {
		return nil, UnexpectedArityError(len(pairs), "an even number")
	}
	m := NewMap()
	for i := 0; i < len(pairs); i += 2 {
		if !validKey(pairs[i]) {
			return nil, UnexpectedTypeError(pairs[i], "Int, Float, Bool or String")
		}
		m.m.Put(pairs[i], pairs[i+1])
	}
	return m, nil
}

func validKey(k Value) bool {
	switch k.(type) {
	case Int, Float, Bool, String:
		return true
	}
	return false
}

// compareKeys is the treemap comparator.  Keys are validated before they are
// inserted so the default case is unreachable.
func compareKeys(a, b interface{}) int {
	ka, kb := a.(Value), b.(Value)
	if c := cmp.Compare(ka.Type(), kb.Type()); c != 0 {
		return c
	}
	switch ka := ka.(type) {
	case Int:
		return cmp.Compare(ka, kb.(Int))
	case Float:
		return cmp.Compare(ka, kb.(Float))
	case String:
		return cmp.Compare(ka, kb.(String))
	case Bool:
		switch {
		case ka == kb.(Bool):
			return 0
		case bool(ka):
			return 1
		}
		return -1
	}
	panic("invalid map key type " + ka.Type().String())
}

// Len returns the number of entries in m.
func (m *Map) Len() int {
	return m.m.Size()
}

// Get returns the value bound to k.
func (m *Map) Get(k Value) (Value, bool) {
	if !validKey(k) {
		return nil, false
	}
	v, ok := m.m.Get(k)
	if !ok {
		return nil, false
	}
	return v.(Value), true
}

// Put returns a copy of m with k bound to v.
func (m *Map) Put(k, v Value) (*Map, error) {
	if !validKey(k) {
		return nil, UnexpectedTypeError(k, "Int, Float, Bool or String")
	}
	cp := NewMap()
	m.Each(func(k, v Value) bool {
		cp.m.Put(k, v)
		return true
	})
	cp.m.Put(k, v)
	return cp, nil
}

// Keys returns the keys of m in order.
func (m *Map) Keys() List {
	keys := make(List, 0, m.Len())
	for _, k := range m.m.Keys() {
		keys = append(keys, k.(Value))
	}
	return keys
}

// Values returns the values of m ordered by their keys.
func (m *Map) Values() List {
	vals := make(List, 0, m.Len())
	for _, v := range m.m.Values() {
		vals = append(vals, v.(Value))
	}
	return vals
}

// Each calls fn for each entry of m in key order until fn returns false.
func (m *Map) Each(fn func(k, v Value) bool) {
	it := m.m.Iterator()
	for it.Next() {
		if !fn(it.Key().(Value), it.Value().(Value)) {
			return
		}
	}
}

func (m *Map) equal(other *Map) bool {
	if m == other {
		return true
	}
	if m.Len() != other.Len() {
		return false
	}
	eq := true
	m.Each(func(k, v Value) bool {
		ov, ok := other.Get(k)
		eq = ok && Equal(v, ov)
		return eq
	})
	return eq
}
