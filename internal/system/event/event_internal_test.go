// Released under an MIT license. See LICENSE.

package event

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/michaelmacinnis/autofn/internal/common/struct/event"
)

func TestFunctions(t *testing.T) {
	tb := New()
	tb.AddHandler(event.T{Function: "b", Type: event.Generic, Param: "ready"})
	tb.AddHandler(event.T{Function: "a", Type: event.Generic, Param: "ready"})
	tb.AddHandler(event.T{Function: "a", Type: event.Generic, Param: "ready"})
	tb.AddHandler(event.T{Function: "c", Type: event.Variable, Param: "PATH"})

	require.Equal(t, []string{"a", "b"},
		tb.Functions(event.T{Type: event.Generic, Param: "ready"}))
	require.Equal(t, []string{"c"},
		tb.Functions(event.T{Type: event.Variable, Param: "PATH"}))
	require.Empty(t, tb.Functions(event.T{Type: event.Signal}))
	require.Len(t, tb.Handlers(event.T{}), 4)
}

func TestHandlerIDsAreDistinct(t *testing.T) {
	tb := New()
	e := event.T{Function: "a", Type: event.Generic, Param: "x"}

	first := tb.AddHandler(e)
	second := tb.AddHandler(e)

	require.NotEqual(t, uuid.Nil, first)
	require.NotEqual(t, first, second)
}

func TestRemoveHandler(t *testing.T) {
	tb := New()
	keep := tb.AddHandler(event.T{Function: "a", Type: event.Generic, Param: "x"})
	drop := tb.AddHandler(event.T{Function: "a", Type: event.Signal, Param: "INT"})

	require.True(t, tb.RemoveHandler(drop))
	require.False(t, tb.RemoveHandler(drop))

	hs := tb.Handlers(event.T{})
	require.Len(t, hs, 1)
	require.Equal(t, keep, hs[0].ID)
}
