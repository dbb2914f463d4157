// Released under an MIT license. See LICENSE.

// Package hash provides the name to variable mapping type.
package hash

import (
	"sort"
	"sync"

	"github.com/michaelmacinnis/autofn/internal/common/struct/slot"
)

// T (hash) maps names to variables.
type T struct {
	sync.RWMutex
	m map[string]*slot.T
}

type hash = T

// New creates a new hash.
func New() *hash {
	return &hash{m: map[string]*slot.T{}}
}

// Copy creates a new hash with a copy of every variable.
func (h *hash) Copy() *hash {
	if h == nil {
		return New()
	}

	h.RLock()
	defer h.RUnlock()

	fresh := New()
	for k, v := range h.m {
		fresh.m[k] = v.Copy()
	}

	return fresh
}

// Del frees the name k from any association in the hash h.
func (h *hash) Del(k string) bool {
	if h == nil {
		return false
	}

	h.Lock()
	defer h.Unlock()

	_, ok := h.m[k]
	if !ok {
		return false
	}

	delete(h.m, k)

	return true
}

// Environ returns key value pairs in the form provided by os.Environ.
func (h *hash) Environ() []string {
	h.RLock()
	defer h.RUnlock()

	environ := make([]string, 0, len(h.m))

	for k, v := range h.m {
		environ = append(environ, k+"="+v.String())
	}

	sort.Strings(environ)

	return environ
}

// Get retrieves the value associated with the name k in the hash h.
func (h *hash) Get(k string) ([]string, bool) {
	if h == nil {
		return nil, false
	}

	h.RLock()
	defer h.RUnlock()

	s, ok := h.m[k]
	if !ok {
		return nil, false
	}

	return s.Get(), true
}

// Keys returns the names in the hash h in sorted order.
func (h *hash) Keys() []string {
	if h == nil {
		return nil
	}

	h.RLock()
	defer h.RUnlock()

	keys := make([]string, 0, len(h.m))
	for k := range h.m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Set associates the name k with the value v in the hash h.
func (h *hash) Set(k string, v ...string) {
	h.Lock()
	defer h.Unlock()

	if s, ok := h.m[k]; ok {
		s.Set(v...)

		return
	}

	h.m[k] = slot.New(v...)
}
