// Released under an MIT license. See LICENSE.

// Package function provides the stored form of a user-defined function.
package function

import (
	"github.com/michaelmacinnis/autofn/internal/common/interface/store"
	"github.com/michaelmacinnis/autofn/internal/common/struct/event"
	"github.com/michaelmacinnis/autofn/internal/common/struct/hash"
	"github.com/michaelmacinnis/autofn/internal/common/struct/intern"
	"github.com/michaelmacinnis/autofn/internal/common/struct/loc"
)

// Definition is what an evaluator knows about a function it encountered.
type Definition struct {
	Body           string
	Description    string
	NamedArguments []string
	InheritVars    []string
	ShadowScope    bool
	Events         []event.T

	// Scope is where InheritVars are read at definition time.
	Scope store.Getter
}

// T (function) is a function record. A record is never modified once
// created; changing the description creates a new record.
type T struct {
	definition     string
	description    string
	where          loc.T
	namedArguments []string
	inheritVars    *hash.T
	autoload       bool
	shadowScope    bool
	events         []event.T
}

type function = T

// New creates a record for the function name from d. The inherited
// variables in vars must already be copies.
func New(name string, d *Definition, vars *hash.T, where loc.T, autoload bool) *function {
	events := make([]event.T, len(d.Events))
	for i, e := range d.Events {
		e.Function = name
		events[i] = e
	}

	return &function{
		definition:     d.Body,
		description:    d.Description,
		where:          where,
		namedArguments: append([]string(nil), d.NamedArguments...),
		inheritVars:    vars,
		autoload:       autoload,
		shadowScope:    d.ShadowScope,
		events:         events,
	}
}

// Copy creates an explicit record with the body, description, arguments,
// inherited variables and scoping of f. The copy has no origin file, no
// definition offset and no event bindings.
func (f *function) Copy() *function {
	return &function{
		definition:     f.definition,
		description:    f.description,
		namedArguments: f.NamedArguments(),
		inheritVars:    f.inheritVars.Copy(),
		shadowScope:    f.shadowScope,
	}
}

// Definition returns the body of f.
func (f *function) Definition() string {
	return f.definition
}

// Description returns the description of f.
func (f *function) Description() string {
	return f.description
}

// Events returns the event bindings declared with f.
func (f *function) Events() []event.T {
	return append([]event.T(nil), f.events...)
}

// File returns the file f was defined in, if any.
func (f *function) File() intern.Handle {
	return f.where.File
}

// InheritVars returns a copy of the variables captured when f was defined.
func (f *function) InheritVars() *hash.T {
	return f.inheritVars.Copy()
}

// IsAutoload returns true if f was defined by autoloading.
func (f *function) IsAutoload() bool {
	return f.autoload
}

// NamedArguments returns the declared parameter names of f.
func (f *function) NamedArguments() []string {
	if f.namedArguments == nil {
		return nil
	}

	return append([]string(nil), f.namedArguments...)
}

// Offset returns the line on which f was defined.
func (f *function) Offset() int {
	return f.where.Line
}

// WithDescription returns a record identical to f except for its
// description.
func (f *function) WithDescription(s string) *function {
	c := *f
	c.description = s

	return &c
}

// ShadowScope returns true if invoking f isolates the caller's variables.
func (f *function) ShadowScope() bool {
	return f.shadowScope
}
