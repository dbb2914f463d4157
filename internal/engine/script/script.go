// Released under an MIT license. See LICENSE.

// Package script evaluates definition files.
//
// Only the statements needed to define and manage functions are
// understood: function blocks, set, source and functions. Anything else
// is an error. Function bodies are stored as text and not interpreted.
package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/michaelmacinnis/autofn/internal/common/interface/evaluator"
	"github.com/michaelmacinnis/autofn/internal/common/interface/functions"
	"github.com/michaelmacinnis/autofn/internal/common/interface/store"
	"github.com/michaelmacinnis/autofn/internal/common/struct/event"
	"github.com/michaelmacinnis/autofn/internal/common/type/function"
	"github.com/michaelmacinnis/autofn/internal/common/validate"
	"github.com/michaelmacinnis/autofn/internal/engine/source"
	"github.com/michaelmacinnis/autofn/internal/reader/keyword"
	"github.com/michaelmacinnis/autofn/internal/system/logging"
)

var (
	// ErrReserved is returned when a function would be named by a keyword.
	ErrReserved = errors.New("reserved word")

	// ErrUnexpectedEnd is returned for an end with no open block.
	ErrUnexpectedEnd = errors.New("unexpected end")

	// ErrUnknownCommand is returned for statements this evaluator does not run.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUnknownOption is returned for an unrecognized option.
	ErrUnknownOption = errors.New("unknown option")

	// ErrUnknownVariable is returned when erasing a variable that is not set.
	ErrUnknownVariable = errors.New("unknown variable")

	// ErrUnterminated is returned when a block has no matching end.
	ErrUnterminated = errors.New("missing end")
)

// T (script) is an evaluator for definition files.
type T struct {
	functions functions.I
	log       *zap.Logger
	vars      store.I
}

type script = T

// New creates an evaluator that defines functions in f and sets
// variables in vars.
func New(f functions.I, vars store.I, log *zap.Logger) *script {
	return &script{
		functions: f,
		log:       logging.OrNop(log),
		vars:      vars,
	}
}

// Evaluate runs text, read from file.
func (s *script) Evaluate(ctx context.Context, file, text string) error {
	lines := strings.Split(text, "\n")

	for i := 0; i < len(lines); i++ {
		words, err := Split(lines[i])
		if err != nil {
			return where(file, i, err)
		}

		if len(words) == 0 {
			continue
		}

		switch words[0] {
		case "end":
			err = ErrUnexpectedEnd

		case "function":
			var n int

			n, err = s.function(ctx, words[1:], lines, i)
			if err == nil {
				i = n
			}

		case "functions":
			err = s.functionsCommand(ctx, words[1:])

		case "set":
			err = s.set(words[1:])

		case "source":
			err = s.source(ctx, words[1:])

		default:
			err = fmt.Errorf("%w: %s", ErrUnknownCommand, words[0])
		}

		if err != nil {
			return where(file, i, err)
		}
	}

	return nil
}

// function defines the function whose header, split into args, is on
// line i. It returns the line holding the matching end.
func (s *script) function(ctx context.Context, args, lines []string, i int) (int, error) {
	if err := validate.Variadic(args, 1, -1); err != nil {
		return i, err
	}

	name := args[0]
	if strings.HasPrefix(name, "-") {
		return i, fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}

	if keyword.IsReserved(name) {
		return i, fmt.Errorf("%w: %s", ErrReserved, name)
	}

	d, err := header(args[1:])
	if err != nil {
		return i, err
	}

	end, err := block(lines, i)
	if err != nil {
		return i, err
	}

	d.Body = strings.Join(lines[i+1:end], "\n")
	d.Scope = s.vars

	s.functions.Add(ctx, name, d, i+1)

	s.log.Debug("defined", zap.String("function", name), zap.Int("line", i+1))

	return end, nil
}

//nolint:cyclop
func (s *script) functionsCommand(ctx context.Context, args []string) error {
	if err := validate.Variadic(args, 2, -1); err != nil {
		return err
	}

	switch args[0] {
	case "-c", "--copy":
		if err := validate.Fixed(args[1:], 2); err != nil {
			return err
		}

		if !s.functions.Exists(ctx, args[1]) || !s.functions.Copy(args[1], args[2]) {
			return fmt.Errorf("no such function: %s", args[1])
		}

	case "-d", "--description":
		if err := validate.Fixed(args[1:], 2); err != nil {
			return err
		}

		s.functions.SetDescription(ctx, args[2], args[1])

	case "-e", "--erase":
		for _, name := range args[1:] {
			s.functions.Remove(name)
		}

	default:
		return fmt.Errorf("%w: %s", ErrUnknownOption, args[0])
	}

	return nil
}

func (s *script) set(args []string) error {
	var f store.Flags

	erase := false

	for len(args) > 0 && strings.HasPrefix(args[0], "-") {
		switch args[0] {
		case "-e", "--erase":
			erase = true
		case "-g", "--global":
			f |= store.Global
		case "-l", "--local":
			f |= store.Local
		case "-x", "--export":
			f |= store.Export
		default:
			return fmt.Errorf("%w: %s", ErrUnknownOption, args[0])
		}

		args = args[1:]
	}

	if erase {
		for _, k := range args {
			if !s.vars.Remove(k) {
				return fmt.Errorf("%w: %s", ErrUnknownVariable, k)
			}
		}

		return nil
	}

	if err := validate.Variadic(args, 1, -1); err != nil {
		return err
	}

	s.vars.Set(args[0], f|store.User, args[1:]...)

	return nil
}

func (s *script) source(ctx context.Context, args []string) error {
	if err := validate.Fixed(args, 1); err != nil {
		return err
	}

	text, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	return s.Evaluate(source.WithFile(ctx, args[0]), args[0], string(text))
}

// block returns the index of the end matching the block opened on line i.
func block(lines []string, i int) (int, error) {
	depth := 1

	for j := i + 1; j < len(lines); j++ {
		words, err := Split(lines[j])
		if err != nil {
			return i, where("", j, err)
		}

		if len(words) == 0 {
			continue
		}

		switch {
		case keyword.OpensBlock(words[0]):
			depth++
		case words[0] == "end":
			depth--
		}

		if depth == 0 {
			return j, nil
		}
	}

	return i, ErrUnterminated
}

//nolint:cyclop,funlen
func header(args []string) (*function.Definition, error) {
	d := &function.Definition{ShadowScope: true}

	for len(args) > 0 {
		opt, val, hasVal := strings.Cut(args[0], "=")
		if !strings.HasPrefix(opt, "--") {
			opt, val, hasVal = args[0], "", false
		}

		args = args[1:]

		value := func() (string, error) {
			if hasVal {
				return val, nil
			}

			if len(args) == 0 {
				return "", fmt.Errorf("%s requires a value", opt)
			}

			v := args[0]
			args = args[1:]

			return v, nil
		}

		var (
			err error
			v   string
		)

		switch opt {
		case "-a", "--argument-names":
			if hasVal {
				d.NamedArguments = append(d.NamedArguments, val)
			}

			for len(args) > 0 && !strings.HasPrefix(args[0], "-") {
				d.NamedArguments = append(d.NamedArguments, args[0])
				args = args[1:]
			}

		case "-d", "--description":
			d.Description, err = value()

		case "-e", "--on-event":
			v, err = value()
			d.Events = append(d.Events, event.T{Type: event.Generic, Param: v})

		case "-S", "--no-scope-shadowing":
			d.ShadowScope = false

		case "-s", "--on-signal":
			v, err = value()
			d.Events = append(d.Events, event.T{Type: event.Signal, Param: v})

		case "-V", "--inherit-variable":
			v, err = value()
			d.InheritVars = append(d.InheritVars, v)

		case "-v", "--on-variable":
			v, err = value()
			d.Events = append(d.Events, event.T{Type: event.Variable, Param: v})

		default:
			err = fmt.Errorf("%w: %s", ErrUnknownOption, opt)
		}

		if err != nil {
			return nil, err
		}
	}

	return d, nil
}

func where(file string, i int, err error) error {
	var located *locatedError
	if errors.As(err, &located) {
		if located.file == "" {
			located.file = file
		}

		return located
	}

	return &locatedError{err: err, file: file, line: i + 1}
}

type locatedError struct {
	err  error
	file string
	line int
}

func (e *locatedError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.file, e.line, e.err)
}

func (e *locatedError) Unwrap() error {
	return e.err
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t script

	// The script type is an evaluator.
	_ = evaluator.I(&t)
}
