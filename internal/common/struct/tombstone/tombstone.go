// Released under an MIT license. See LICENSE.

// Package tombstone provides the set of names that may no longer be autoloaded.
package tombstone

import (
	"sort"
	"sync"
)

// T (tombstone) is a set of names barred from autoloading.
// There is deliberately no way to remove a name once added.
type T struct {
	sync.RWMutex
	m map[string]struct{}
}

type tombstone = T

// New creates an empty tombstone set.
func New() *tombstone {
	return &tombstone{m: map[string]struct{}{}}
}

// Add bars the name k from future autoloading.
func (t *tombstone) Add(k string) {
	t.Lock()
	defer t.Unlock()

	t.m[k] = struct{}{}
}

// Has returns true if the name k has been barred.
func (t *tombstone) Has(k string) bool {
	t.RLock()
	defer t.RUnlock()

	_, ok := t.m[k]

	return ok
}

// Names returns the barred names in sorted order.
func (t *tombstone) Names() []string {
	t.RLock()
	defer t.RUnlock()

	names := make([]string, 0, len(t.m))
	for k := range t.m {
		names = append(names, k)
	}

	sort.Strings(names)

	return names
}
