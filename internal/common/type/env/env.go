// Released under an MIT license. See LICENSE.

// Package env provides the variable store: a chain of scopes.
package env

import (
	"github.com/michaelmacinnis/autofn/internal/common/interface/store"
	"github.com/michaelmacinnis/autofn/internal/common/struct/hash"
)

// Argv is the name of the variable holding a function's arguments.
const Argv = "argv"

// T (env) provides a public and private mapping of names to values.
type T struct {
	previous *env
	private  *hash.T
	*public
}

type env = T

// We alias hash.T to public so that when embedded it is easy to refer to
// it by name. Embedding public also lets us access its methods directly.
type public = hash.T

// New creates a new env enclosed by previous, which may be nil.
func New(previous *env) *env {
	return &env{
		previous: previous,
		private:  hash.New(),
		public:   hash.New(),
	}
}

// Environ returns exported variables, visible from e, in the form
// provided by os.Environ. Inner scopes hide outer ones.
func (e *env) Environ() []string {
	seen := map[string]bool{}
	environ := []string{}

	for s := e; s != nil; s = s.previous {
		for _, k := range s.Keys() {
			if seen[k] {
				continue
			}

			seen[k] = true

			if _, hidden := s.private.Get(k); hidden {
				continue
			}

			v, _ := s.Get(k)
			environ = append(environ, k+"="+join(v))
		}

		for _, k := range s.private.Keys() {
			seen[k] = true
		}
	}

	return environ
}

// Get retrieves the value associated with the name k, searching outward.
func (e *env) Get(k string) ([]string, bool) {
	for s := e; s != nil; s = s.previous {
		if v, ok := s.private.Get(k); ok {
			return v, true
		}

		if v, ok := s.public.Get(k); ok {
			return v, true
		}
	}

	return nil, false
}

// Global returns the outermost scope.
func (e *env) Global() *env {
	s := e
	for s.previous != nil {
		s = s.previous
	}

	return s
}

// Local returns only the variables defined directly in e.
func (e *env) Local() *hash.T {
	local := e.public.Copy()

	for _, k := range e.private.Keys() {
		v, _ := e.private.Get(k)
		local.Set(k, v...)
	}

	return local
}

// Remove deletes the name k from the innermost scope that defines it.
func (e *env) Remove(k string) bool {
	for s := e; s != nil; s = s.previous {
		if s.private.Del(k) || s.public.Del(k) {
			return true
		}
	}

	return false
}

// Set associates the name k with the value v. Global and Local select the
// scope explicitly; otherwise the innermost scope already defining k is
// updated, or, failing that, e. Export makes the variable public.
func (e *env) Set(k string, f store.Flags, v ...string) {
	s := e

	switch {
	case f&store.Global != 0:
		s = e.Global()
	case f&store.Local != 0:
	default:
		for o := e; o != nil; o = o.previous {
			if o.defines(k) {
				s = o

				break
			}
		}
	}

	if f&store.Export != 0 {
		s.private.Del(k)
		s.public.Set(k, v...)

		return
	}

	if _, ok := s.public.Get(k); ok {
		s.public.Set(k, v...)

		return
	}

	s.private.Set(k, v...)
}

// SetArgv sets the positional arguments, as a unit, in the scope e.
func (e *env) SetArgv(argv []string) {
	e.private.Set(Argv, argv...)
}

// Snapshot returns a deep copy of the variables in names that g has set.
func Snapshot(g store.Getter, names ...string) *hash.T {
	h := hash.New()

	for _, k := range names {
		if v, ok := g.Get(k); ok {
			h.Set(k, v...)
		}
	}

	return h
}

func (e *env) defines(k string) bool {
	if _, ok := e.private.Get(k); ok {
		return true
	}

	_, ok := e.public.Get(k)

	return ok
}

func join(v []string) string {
	s := ""

	for i, e := range v {
		if i > 0 {
			s += " "
		}

		s += e
	}

	return s
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t env

	// The env type is a variable store.
	_ = store.I(&t)
}
