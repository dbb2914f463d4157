// Released under an MIT license. See LICENSE.

// Package event provides the event binding declared with a function.
package event

// Type identifies the kind of event a handler listens for.
type Type int

const (
	// Any matches every event type. It is only meaningful as a filter.
	Any Type = iota

	// Generic is a named event emitted by user code.
	Generic

	// Signal is delivery of a signal.
	Signal

	// Variable is a change to a variable.
	Variable
)

// T (event) binds the function named Function to events of Type with Param.
type T struct {
	Function string
	Param    string
	Type     Type
}

type event = T

// Matches returns true if the binding e applies to the event o.
// Zero fields in o act as wildcards.
func (e *event) Matches(o *event) bool {
	if o.Type != Any && o.Type != e.Type {
		return false
	}

	if o.Function != "" && o.Function != e.Function {
		return false
	}

	return o.Param == "" || o.Param == e.Param
}

// ParseType returns the Type named s.
func ParseType(s string) (Type, bool) {
	for t := Any; t <= Variable; t++ {
		if t.String() == s {
			return t, true
		}
	}

	return Any, false
}

func (t Type) String() string {
	switch t {
	case Any:
		return "any"
	case Generic:
		return "generic"
	case Signal:
		return "signal"
	case Variable:
		return "variable"
	}

	return "unknown"
}
