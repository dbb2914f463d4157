// Released under an MIT license. See LICENSE.

// Package evaluator defines the interface for things that run definition text.
package evaluator

import (
	"context"
)

// I (evaluator) evaluates text read from file. Evaluating a function
// definition is expected to add that function to the registry.
type I interface {
	Evaluate(ctx context.Context, file, text string) error
}

// Func adapts an ordinary function to the evaluator interface.
type Func func(ctx context.Context, file, text string) error

// Evaluate calls f.
func (f Func) Evaluate(ctx context.Context, file, text string) error {
	return f(ctx, file, text)
}
