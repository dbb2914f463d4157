// Released under an MIT license. See LICENSE.

package keyword

import (
	"testing"
)

func TestBlocksAreReserved(t *testing.T) {
	for k := range block {
		if !IsReserved(k) {
			t.Fatalf("block keyword %q is not reserved", k)
		}
	}
}

func TestIsReserved(t *testing.T) {
	for _, s := range []string{"end", "function", "["} {
		if !IsReserved(s) {
			t.Fatalf("%q should be reserved", s)
		}
	}

	for _, s := range []string{"ls", "_hidden", "", "End"} {
		if IsReserved(s) {
			t.Fatalf("%q should not be reserved", s)
		}
	}
}

func TestOpensBlock(t *testing.T) {
	if !OpensBlock("while") || OpensBlock("end") || OpensBlock("else") {
		t.Fatal("unexpected block keywords")
	}
}
