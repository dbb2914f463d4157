// Released under an MIT license. See LICENSE.

// Package loc provides the type used to track where a function was defined.
package loc

import (
	"strconv"

	"github.com/michaelmacinnis/autofn/internal/common/struct/intern"
)

// T (loc) is a definition location.
type T struct {
	File intern.Handle // Origin file, if any.
	Line int           // Line number of the definition.
}

type loc = T

// New creates a location for line in file.
func New(file string, line int) loc {
	return loc{File: intern.Path(file), Line: line}
}

func (l *loc) String() string {
	name := l.File.String()
	if name == "" {
		name = "-"
	}

	return name + ":" + strconv.Itoa(l.Line)
}
