// Released under an MIT license. See LICENSE.

// Package event provides the table of event handlers declared by functions.
// Dispatch belongs to the evaluator; the table only answers which
// functions should run for an event.
package event

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/michaelmacinnis/autofn/internal/common/interface/bus"
	"github.com/michaelmacinnis/autofn/internal/common/struct/event"
)

// Handler is an event binding and the identifier it was registered under.
type Handler struct {
	ID uuid.UUID
	event.T
}

// T (event) is a table of event handlers.
type T struct {
	sync.RWMutex
	handlers []Handler
}

type table = T

// New creates an empty handler table.
func New() *table {
	return &table{}
}

// AddHandler registers e and returns its identifier.
func (t *table) AddHandler(e event.T) uuid.UUID {
	h := Handler{ID: uuid.New(), T: e}

	t.Lock()
	defer t.Unlock()

	t.handlers = append(t.handlers, h)

	return h.ID
}

// Handlers returns the handlers matching filter in registration order.
func (t *table) Handlers(filter event.T) []Handler {
	t.RLock()
	defer t.RUnlock()

	var matched []Handler

	for _, h := range t.handlers {
		if h.Matches(&filter) {
			matched = append(matched, h)
		}
	}

	return matched
}

// Functions returns the sorted, distinct names of functions to run for e.
func (t *table) Functions(e event.T) []string {
	seen := map[string]bool{}
	names := []string{}

	for _, h := range t.Handlers(e) {
		if !seen[h.Function] {
			seen[h.Function] = true
			names = append(names, h.Function)
		}
	}

	sort.Strings(names)

	return names
}

// RemoveHandler deletes the handler registered as id.
func (t *table) RemoveHandler(id uuid.UUID) bool {
	t.Lock()
	defer t.Unlock()

	for i, h := range t.handlers {
		if h.ID == id {
			t.handlers = append(t.handlers[:i], t.handlers[i+1:]...)

			return true
		}
	}

	return false
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t table

	// The handler table is an event bus.
	_ = bus.I(&t)
}
