// Released under an MIT license. See LICENSE.

// Package validate checks arguments and preconditions.
package validate

import (
	"fmt"
)

// Definition panics if name is empty or the definition is missing. These are
// programmer errors in the caller and are not meant to be recovered.
func Definition[T any](name string, d *T) {
	if name == "" {
		panic("function name must not be empty")
	}

	if d == nil {
		panic("function " + name + " has no definition")
	}
}

// Variadic returns an error unless args has between min and max elements.
// A negative max means there is no upper limit.
func Variadic(args []string, min, max int) error {
	n := len(args)

	if n < min {
		return fmt.Errorf("expected %s, passed %d", atLeast(min, max), n)
	}

	if max >= 0 && n > max {
		return fmt.Errorf("expected %s, passed %d", atMost(min, max), n)
	}

	return nil
}

// Fixed returns an error unless args has exactly n elements.
func Fixed(args []string, n int) error {
	return Variadic(args, n, n)
}

// Count returns n and label, pluralized with p when n is not 1.
func Count(n int, label string, p string) string {
	if n == 1 {
		p = ""
	}

	return fmt.Sprintf("%d %s%s", n, label, p)
}

func atLeast(min, max int) string {
	if min == max {
		return Count(min, "argument", "s")
	}

	return "at least " + Count(min, "argument", "s")
}

func atMost(min, max int) string {
	if min == max {
		return Count(max, "argument", "s")
	}

	return "at most " + Count(max, "argument", "s")
}
