// Released under an MIT license. See LICENSE.

// Package intern provides shared, immutable handles for path strings.
// Many functions come from the same few files, so their records share
// one copy of each path.
package intern

import (
	"unique"
)

// Handle is an interned path. The zero Handle means no path.
type Handle struct {
	h unique.Handle[string]
}

// None is the absent path.
var None Handle //nolint:gochecknoglobals

// Path returns the handle for p. The empty string yields None.
func Path(p string) Handle {
	if p == "" {
		return None
	}

	return Handle{h: unique.Make(p)}
}

// Ok returns true if h refers to a path.
func (h Handle) Ok() bool {
	return h != None
}

// String returns the path for h or the empty string for None.
func (h Handle) String() string {
	if !h.Ok() {
		return ""
	}

	return h.h.Value()
}
