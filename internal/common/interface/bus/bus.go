// Released under an MIT license. See LICENSE.

// Package bus defines the interface for the event bus.
package bus

import (
	"github.com/google/uuid"

	"github.com/michaelmacinnis/autofn/internal/common/struct/event"
)

// I (bus) records the event handlers declared by function definitions.
type I interface {
	AddHandler(e event.T) uuid.UUID
	Functions(e event.T) []string
	RemoveHandler(id uuid.UUID) bool
}

type none struct{}

// None is a bus that discards everything.
var None I = none{} //nolint:gochecknoglobals

func (none) AddHandler(event.T) uuid.UUID { return uuid.Nil }

func (none) Functions(event.T) []string { return nil }

func (none) RemoveHandler(uuid.UUID) bool { return false }
