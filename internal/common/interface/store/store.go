// Released under an MIT license. See LICENSE.

// Package store defines the interface for the variable store.
package store

// Flags select the scope and visibility of a variable assignment.
type Flags uint

const (
	// Local assigns in the innermost scope.
	Local Flags = 1 << iota

	// Global assigns in the outermost scope.
	Global

	// Export marks the variable for export to child processes.
	Export

	// User marks an assignment made on behalf of user code.
	User
)

// Getter is the read-only half of a variable store.
type Getter interface {
	Get(k string) ([]string, bool)
}

// I (store) is the interface for a scoped variable store.
type I interface {
	Getter

	Remove(k string) bool
	Set(k string, f Flags, v ...string)
	SetArgv(argv []string)
}
