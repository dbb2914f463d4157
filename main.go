// Released under an MIT license. See LICENSE.

/*
Autofn keeps a table of shell functions and loads their definitions on
demand from files found on a search path.

A function named NAME is defined by the file NAME.fn in the first
directory of the search path that has one. Definitions are loaded the
first time a function is needed:

    autofn -p ~/fns list
    autofn -p ~/fns show greet
    autofn -p ~/fns call greet world

Without a command, autofn reads definitions and commands from stdin or,
when stdin is a terminal, from an interactive prompt.
*/
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/michaelmacinnis/autofn/internal/common/interface/store"
	"github.com/michaelmacinnis/autofn/internal/common/type/env"
	"github.com/michaelmacinnis/autofn/internal/engine/autoload"
	"github.com/michaelmacinnis/autofn/internal/engine/command"
	"github.com/michaelmacinnis/autofn/internal/engine/registry"
	"github.com/michaelmacinnis/autofn/internal/engine/script"
	"github.com/michaelmacinnis/autofn/internal/system/cache"
	"github.com/michaelmacinnis/autofn/internal/system/event"
	"github.com/michaelmacinnis/autofn/internal/system/logging"
	"github.com/michaelmacinnis/autofn/internal/system/options"
	"github.com/michaelmacinnis/autofn/internal/ui"
)

func main() {
	fd := os.Stdin.Fd()
	terminal := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)

	os.Exit(run(context.Background(), os.Args[1:], terminal, os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, argv []string, terminal bool, stdin io.Reader, stdout, stderr io.Writer) int {
	o, err := options.Parse(argv, terminal)
	if err != nil {
		fmt.Fprintln(stderr, err)

		return 1
	}

	log, err := logging.New(o.Log.Level, o.Log.Development)
	if err != nil {
		fmt.Fprintln(stderr, err)

		return 1
	}

	defer func() { _ = log.Sync() }()

	c, done := build(o, log, stdout)
	defer done()

	if err := dispatch(ctx, o, c, stdin, stderr, log); err != nil {
		fmt.Fprintln(stderr, err)

		return 1
	}

	return 0
}

func build(o *options.T, log *zap.Logger, stdout io.Writer) (*command.T, func()) {
	vars := env.New(nil)
	vars.Set(o.PathVariable, store.Global|store.Export, o.FunctionPath...)

	done := func() {}

	var lister autoload.Lister

	if o.Watch {
		c, err := cache.New(log)
		if err != nil {
			log.Warn("not watching function directories", zap.Error(err))
		} else {
			c.Populate(o.FunctionPath)

			lister = c
			done = func() { _ = c.Close() }
		}
	}

	r := registry.New(registry.Config{
		Bus:          event.New(),
		Lister:       lister,
		Log:          log,
		PathVariable: o.PathVariable,
		Suffix:       o.Suffix,
		Vars:         vars,
	})

	s := script.New(r, vars, log)
	r.SetEvaluator(s)

	return command.New(r, s, stdout), done
}

func dispatch(
	ctx context.Context, o *options.T, c *command.T, stdin io.Reader, stderr io.Writer, log *zap.Logger,
) error {
	switch o.Command {
	case "call":
		return c.Call(ctx, o.Name, o.Arguments)
	case "list":
		return c.List(o.All, o.Pattern)
	case "show":
		return c.Show(ctx, o.Name)
	}

	if o.Interactive {
		return ui.Run(ctx, c, o.History, stderr, log)
	}

	return ui.Batch(ctx, c, stdin, stderr)
}
