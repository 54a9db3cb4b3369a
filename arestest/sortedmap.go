// Copyright © 2018 The ELPS authors

package arestest

import (
	"testing"

	"github.com/luthersystems/ares/lisp"
	"github.com/stretchr/testify/assert"
)

// AssertSortedMap checks the constraints required of a lisp.Map:
//
//	m.Keys and m.Values produce lists of length m.Len()
//
//	Repeated calls to m.Keys return equal lists
//
//	Each iterates the keys in the order m.Keys returns them and yields the
//	value m.Get returns for each key
//
// m must already be populated.
func AssertSortedMap(t *testing.T, m *lisp.Map) bool {
	t.Helper()
	if !assert.NotEqual(t, 0, m.Len(), "Cannot test an empty sorted-map") {
		return false
	}
	keys := m.Keys()
	if !assert.Len(t, keys, m.Len(), "Keys") || !assert.Len(t, m.Values(), m.Len(), "Values") {
		return false
	}
	for i := 0; i < 3; i++ {
		if !assert.True(t, lisp.Equal(keys, m.Keys()), "Keys is not fixed") {
			return false
		}
	}
	i := 0
	ok := true
	m.Each(func(k, v lisp.Value) bool {
		if !assert.True(t, lisp.Equal(keys[i], k), "entry %d key mismatch", i) {
			ok = false
			return false
		}
		got, found := m.Get(k)
		if !assert.True(t, found, "entry %d key not found", i) || !assert.True(t, lisp.Equal(v, got), "entry %d value mismatch", i) {
			ok = false
			return false
		}
		i++
		return true
	})
	return ok
}
