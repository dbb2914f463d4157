// Released under an MIT license. See LICENSE.

// Package source threads the provenance of evaluated text through a
// context: which file is being evaluated and whether that evaluation is
// an autoload. Nested evaluations push frames; the innermost file wins.
package source

import (
	"context"
)

type key struct{}

type frame struct {
	autoload bool
	file     string
	name     string
	previous *frame
}

// From returns the file currently being evaluated and whether any
// enclosing evaluation is an autoload.
func From(ctx context.Context) (file string, autoload bool) {
	f := top(ctx)
	if f == nil {
		return "", false
	}

	file = f.file

	for ; f != nil; f = f.previous {
		if f.autoload {
			return file, true
		}
	}

	return file, false
}

// Loading returns true if name is being autoloaded by ctx or one of its
// ancestors.
func Loading(ctx context.Context, name string) bool {
	for f := top(ctx); f != nil; f = f.previous {
		if f.autoload && f.name == name {
			return true
		}
	}

	return false
}

// Stack returns the names being autoloaded, outermost first.
func Stack(ctx context.Context) []string {
	var names []string

	for f := top(ctx); f != nil; f = f.previous {
		if f.autoload {
			names = append([]string{f.name}, names...)
		}
	}

	return names
}

// WithAutoload returns a context for evaluating file to autoload name.
func WithAutoload(ctx context.Context, name, file string) context.Context {
	return push(ctx, &frame{autoload: true, file: file, name: name})
}

// WithFile returns a context for evaluating file explicitly.
func WithFile(ctx context.Context, file string) context.Context {
	return push(ctx, &frame{file: file})
}

func push(ctx context.Context, f *frame) context.Context {
	f.previous = top(ctx)

	return context.WithValue(ctx, key{}, f)
}

func top(ctx context.Context) *frame {
	f, _ := ctx.Value(key{}).(*frame)

	return f
}
