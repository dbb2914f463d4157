// Released under an MIT license. See LICENSE.

package function

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/michaelmacinnis/autofn/internal/common/struct/event"
	"github.com/michaelmacinnis/autofn/internal/common/struct/hash"
	"github.com/michaelmacinnis/autofn/internal/common/struct/loc"
)

func TestCopySeversOrigin(t *testing.T) {
	vars := hash.New()
	vars.Set("x", "1")

	f := New("greet", &Definition{
		Body:           "echo hello",
		Description:    "say hello",
		NamedArguments: []string{"who"},
		ShadowScope:    true,
		Events:         []event.T{{Type: event.Generic, Param: "hello"}},
	}, vars, loc.New("/f/greet.fn", 4), true)

	c := f.Copy()

	require.Equal(t, "echo hello", c.Definition())
	require.Equal(t, "say hello", c.Description())
	require.Equal(t, []string{"who"}, c.NamedArguments())
	require.True(t, c.ShadowScope())
	require.False(t, c.IsAutoload())
	require.False(t, c.File().Ok())
	require.Zero(t, c.Offset())
	require.Empty(t, c.Events())

	v, ok := c.InheritVars().Get("x")
	require.True(t, ok)
	require.Equal(t, []string{"1"}, v)
}

func TestEventsAreBoundToName(t *testing.T) {
	f := New("on_hello", &Definition{
		Events: []event.T{{Type: event.Generic, Param: "hello", Function: "other"}},
	}, hash.New(), loc.T{}, false)

	require.Equal(t, []event.T{{Type: event.Generic, Param: "hello", Function: "on_hello"}}, f.Events())
}

func TestRecordIsImmuneToInputMutation(t *testing.T) {
	d := &Definition{NamedArguments: []string{"a", "b"}}
	f := New("f", d, hash.New(), loc.T{}, false)

	d.NamedArguments[0] = "z"

	args := f.NamedArguments()
	require.Equal(t, []string{"a", "b"}, args)

	args[1] = "y"
	require.Equal(t, []string{"a", "b"}, f.NamedArguments())
}

func TestWithDescriptionLeavesOriginal(t *testing.T) {
	f := New("f", &Definition{Body: "true", Description: "old"}, hash.New(), loc.New("/f/f.fn", 2), true)

	g := f.WithDescription("new")

	require.Equal(t, "old", f.Description())
	require.Equal(t, "new", g.Description())
	require.Equal(t, "true", g.Definition())
	require.True(t, g.IsAutoload())
	require.Equal(t, "/f/f.fn", g.File().String())
	require.Equal(t, 2, g.Offset())
}
