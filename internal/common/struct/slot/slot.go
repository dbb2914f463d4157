// Released under an MIT license. See LICENSE.

// Package slot provides the variable type.
package slot

import (
	"sync"
)

// T (slot) holds a variable's value, a list of strings.
type T struct {
	sync.RWMutex
	v []string
}

type slot = T

// New creates a new slot holding a copy of v.
func New(v ...string) *slot {
	return &slot{v: clone(v)}
}

// Copy creates a new slot with the same value as slot s.
func (s *slot) Copy() *slot {
	return New(s.Get()...)
}

// Get returns a copy of the value in slot s.
func (s *slot) Get() []string {
	s.RLock()
	defer s.RUnlock()

	return clone(s.v)
}

// Set replaces the value in slot s with a copy of v.
func (s *slot) Set(v ...string) {
	s.Lock()
	defer s.Unlock()

	s.v = clone(v)
}

// String returns the value in slot s joined by spaces.
func (s *slot) String() string {
	s.RLock()
	defer s.RUnlock()

	l := 0
	for _, e := range s.v {
		l += len(e) + 1
	}

	b := make([]byte, 0, l)
	for i, e := range s.v {
		if i > 0 {
			b = append(b, ' ')
		}

		b = append(b, e...)
	}

	return string(b)
}

// Empty values are non-nil so that "set but empty" survives a copy.
func clone(v []string) []string {
	c := make([]string, len(v))
	copy(c, v)

	return c
}
