// Released under an MIT license. See LICENSE.

// Package functions defines the registry surface used by evaluators.
package functions

import (
	"context"

	"github.com/michaelmacinnis/autofn/internal/common/type/function"
)

// I (functions) is what an evaluator needs to define and manage functions.
type I interface {
	Add(ctx context.Context, name string, d *function.Definition, line int)
	Copy(src, dst string) bool
	Exists(ctx context.Context, name string) bool
	Remove(name string) bool
	SetDescription(ctx context.Context, name, text string)
}
