// Released under an MIT license. See LICENSE.

// Package ui provides the interactive prompt and a line reader for
// non-interactive input.
package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/michaelmacinnis/autofn/internal/system/history"
	"github.com/michaelmacinnis/autofn/internal/system/logging"
)

var (
	// ErrFailed is returned by Batch when at least one line failed.
	ErrFailed = errors.New("one or more lines failed")

	// ErrIncomplete is returned by Batch when input ends inside a block.
	ErrIncomplete = errors.New("input ended inside a block")
)

const (
	prompt       = "> "
	continuation = "... "
)

// Evaluator is the interface for things that process lines of input.
type Evaluator interface {
	Complete(line string) []string
	Line(ctx context.Context, line string) (bool, error)
	Reset()
}

// Batch sends each line read from r to e. Errors are written to w and
// processing continues with the next line.
func Batch(ctx context.Context, e Evaluator, r io.Reader, w io.Writer) error {
	failed := false
	more := false

	s := bufio.NewScanner(r)
	for s.Scan() {
		var err error

		more, err = e.Line(ctx, s.Text())
		if err != nil {
			fmt.Fprintln(w, err)

			failed = true
		}
	}

	if err := s.Err(); err != nil {
		return err
	}

	if more {
		e.Reset()

		return ErrIncomplete
	}

	if failed {
		return ErrFailed
	}

	return nil
}

// Run launches the prompt which sends lines to the Evaluator. History is
// read from and written back to historyPath, if set.
func Run(ctx context.Context, e Evaluator, historyPath string, w io.Writer, log *zap.Logger) error {
	log = logging.OrNop(log)

	cli := liner.NewLiner()
	defer cli.Close()

	if historyPath != "" {
		if err := history.Load(historyPath, cli.ReadHistory); err != nil {
			log.Warn("cannot read history", zap.String("path", historyPath), zap.Error(err))
		}
	}

	cli.SetCtrlCAborts(true)
	cli.SetWordCompleter(func(line string, pos int) (string, []string, string) {
		return "", e.Complete(line[:pos]), line[pos:]
	})

	p := prompt

	for ctx.Err() == nil {
		line, err := cli.Prompt(p)

		switch {
		case err == nil:
			cli.AppendHistory(line)
		case errors.Is(err, liner.ErrPromptAborted):
			e.Reset()

			p = prompt

			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(w, "exit")

			return save(cli, historyPath)
		default:
			return err
		}

		more, err := e.Line(ctx, line)
		if err != nil {
			fmt.Fprintln(w, err)
		}

		p = prompt
		if more {
			p = continuation
		}
	}

	if err := save(cli, historyPath); err != nil {
		return err
	}

	return ctx.Err()
}

func save(cli *liner.State, path string) error {
	if path == "" {
		return nil
	}

	return history.Save(path, cli.WriteHistory)
}
