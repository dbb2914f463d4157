// Released under an MIT license. See LICENSE.

// Package keyword lists the words reserved by the command language.
// A reserved word can never name a function.
package keyword

//nolint:gochecknoglobals
var reserved = map[string]struct{}{
	"and":      {},
	"argparse": {},
	"begin":    {},
	"break":    {},
	"builtin":  {},
	"case":     {},
	"command":  {},
	"continue": {},
	"count":    {},
	"else":     {},
	"end":      {},
	"eval":     {},
	"exec":     {},
	"for":      {},
	"function": {},
	"if":       {},
	"not":      {},
	"or":       {},
	"read":     {},
	"return":   {},
	"set":      {},
	"status":   {},
	"string":   {},
	"switch":   {},
	"test":     {},
	"time":     {},
	"while":    {},
	"[":        {},
}

//nolint:gochecknoglobals
var block = map[string]struct{}{
	"begin":    {},
	"for":      {},
	"function": {},
	"if":       {},
	"switch":   {},
	"while":    {},
}

// IsReserved returns true if s is a reserved word.
func IsReserved(s string) bool {
	_, ok := reserved[s]

	return ok
}

// OpensBlock returns true if s starts a block that is closed by "end".
func OpensBlock(s string) bool {
	_, ok := block[s]

	return ok
}
