// Released under an MIT license. See LICENSE.

package registry

import (
	"github.com/michaelmacinnis/autofn/internal/common/interface/store"
	"github.com/michaelmacinnis/autofn/internal/common/struct/hash"
)

// PrepareEnvironment sets up the call-local scope for invoking name with
// the arguments argv. The scope receives, in order:
//
//  1. argv, as a unit;
//  2. each named argument, bound to the corresponding element of argv or,
//     once argv runs out, to an empty value;
//  3. a copy of each inherited variable.
func (r *registry) PrepareEnvironment(name string, argv []string, inherited *hash.T, scope store.I) {
	const flags = store.Local | store.User

	scope.SetArgv(argv)

	for i, n := range r.NamedArguments(name) {
		if i < len(argv) {
			scope.Set(n, flags, argv[i])
		} else {
			scope.Set(n, flags)
		}
	}

	for _, k := range inherited.Keys() {
		if v, ok := inherited.Get(k); ok {
			scope.Set(k, flags, v...)
		}
	}
}
