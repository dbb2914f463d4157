// Released under an MIT license. See LICENSE.

package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type definition struct{}

func TestCount(t *testing.T) {
	require.Equal(t, "1 argument", Count(1, "argument", "s"))
	require.Equal(t, "2 arguments", Count(2, "argument", "s"))
}

func TestDefinition(t *testing.T) {
	require.PanicsWithValue(t, "function name must not be empty", func() {
		Definition("", &definition{})
	})

	require.PanicsWithValue(t, "function f has no definition", func() {
		Definition[definition]("f", nil)
	})

	require.NotPanics(t, func() {
		Definition("f", &definition{})
	})
}

func TestVariadic(t *testing.T) {
	require.NoError(t, Variadic([]string{"a"}, 1, -1))
	require.NoError(t, Fixed([]string{"a", "b"}, 2))

	require.EqualError(t, Fixed(nil, 1), "expected 1 argument, passed 0")
	require.EqualError(t, Variadic([]string{"a", "b", "c"}, 1, 2),
		"expected at most 2 arguments, passed 3")
	require.EqualError(t, Variadic(nil, 2, -1),
		"expected at least 2 arguments, passed 0")
}
