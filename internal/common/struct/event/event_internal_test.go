// Released under an MIT license. See LICENSE.

package event

import "testing"

func TestMatches(t *testing.T) {
	e := &T{Function: "on_save", Param: "save", Type: Generic}

	for _, c := range []struct {
		filter T
		want   bool
	}{
		{T{}, true},
		{T{Type: Generic}, true},
		{T{Type: Signal}, false},
		{T{Function: "on_save"}, true},
		{T{Function: "other"}, false},
		{T{Param: "save", Type: Generic}, true},
		{T{Param: "load"}, false},
	} {
		if got := e.Matches(&c.filter); got != c.want {
			t.Fatalf("%+v: expected %v, got %v", c.filter, c.want, got)
		}
	}
}

func TestTypeString(t *testing.T) {
	for typ, want := range map[Type]string{
		Any:      "any",
		Generic:  "generic",
		Signal:   "signal",
		Variable: "variable",
		Type(99): "unknown",
	} {
		if s := typ.String(); s != want {
			t.Fatalf("expected %q, got %q", want, s)
		}
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range []Type{Any, Generic, Signal, Variable} {
		if got, ok := ParseType(typ.String()); !ok || got != typ {
			t.Fatalf("expected %v, got %v (%v)", typ, got, ok)
		}
	}

	if _, ok := ParseType("unknown"); ok {
		t.Fatal("expected unknown to be rejected")
	}
}
