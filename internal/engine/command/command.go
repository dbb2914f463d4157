// Released under an MIT license. See LICENSE.

// Package command runs the commands typed at the prompt or given on the
// command line. A line that is not a command is definition text; lines
// are collected until every block they open is closed and then evaluated.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/michaelmacinnis/adapted"

	"github.com/michaelmacinnis/autofn/internal/common/interface/evaluator"
	"github.com/michaelmacinnis/autofn/internal/common/struct/event"
	"github.com/michaelmacinnis/autofn/internal/common/type/env"
	"github.com/michaelmacinnis/autofn/internal/common/validate"
	"github.com/michaelmacinnis/autofn/internal/engine/registry"
	"github.com/michaelmacinnis/autofn/internal/engine/script"
	"github.com/michaelmacinnis/autofn/internal/reader/keyword"
)

var (
	// ErrNoSuchFunction is returned when a command names an undefined function.
	ErrNoSuchFunction = errors.New("no such function")

	// ErrUnknownEventType is returned for an event type other than any,
	// generic, signal or variable.
	ErrUnknownEventType = errors.New("unknown event type")
)

// Interactive input has no file name.
const interactive = "-"

//nolint:gochecknoglobals
var eventOptions = map[event.Type]string{
	event.Generic:  "--on-event",
	event.Signal:   "--on-signal",
	event.Variable: "--on-variable",
}

type action func(c *T, ctx context.Context, args []string) error

// T (command) is a command interpreter in front of a registry.
type T struct {
	depth   int
	e       evaluator.I
	out     io.Writer
	pending []string
	r       *registry.T
}

type command = T

//nolint:gochecknoglobals
var actions map[string]action

func init() { //nolint:gochecknoinits
	actions = map[string]action{
		"call":       (*command).call,
		"copy":       (*command).copy,
		"describe":   (*command).describe,
		"environ":    (*command).environ,
		"erase":      (*command).erase,
		"exists":     (*command).exists,
		"handlers":   (*command).handlers,
		"help":       (*command).help,
		"list":       (*command).list,
		"show":       (*command).show,
		"tombstones": (*command).tombstones,
	}
}

// New creates a command interpreter that evaluates definition text with e
// and writes output to out.
func New(r *registry.T, e evaluator.I, out io.Writer) *command {
	return &command{e: e, out: out, r: r}
}

// Call prepares the environment for invoking name with args and prints it.
func (c *command) Call(ctx context.Context, name string, args []string) error {
	if !c.r.Exists(ctx, name) {
		return fmt.Errorf("%w: %s", ErrNoSuchFunction, name)
	}

	var parent *env.T
	if vars, ok := c.r.Vars().(*env.T); ok {
		parent = vars
	}

	scope := env.New(parent)
	c.r.PrepareEnvironment(name, args, c.r.InheritVars(name), scope)

	for _, kv := range scope.Local().Environ() {
		fmt.Fprintln(c.out, kv)
	}

	return nil
}

// Complete returns completions for the word ending line.
func (c *command) Complete(line string) []string {
	head, word := "", line
	if i := strings.LastIndexAny(line, " \t"); i >= 0 {
		head, word = line[:i+1], line[i+1:]
	}

	var candidates []string

	if strings.TrimSpace(head) == "" {
		for k := range actions {
			candidates = append(candidates, k)
		}
	}

	candidates = append(candidates, c.r.Names(strings.HasPrefix(word, "_"))...)

	seen := map[string]bool{}
	completions := []string{}

	for _, s := range candidates {
		if strings.HasPrefix(s, word) && !seen[s] {
			seen[s] = true
			completions = append(completions, head+s)
		}
	}

	sort.Strings(completions)

	return completions
}

// Line handles one line of input. It returns true if the line left a
// definition incomplete.
func (c *command) Line(ctx context.Context, line string) (bool, error) {
	words, err := script.Split(line)
	if err != nil {
		c.Reset()

		return false, err
	}

	if len(c.pending) == 0 && len(words) > 0 {
		if a, ok := actions[words[0]]; ok {
			return false, a(c, ctx, words[1:])
		}
	}

	c.pending = append(c.pending, line)

	if len(words) > 0 {
		switch {
		case keyword.OpensBlock(words[0]):
			c.depth++
		case words[0] == "end":
			c.depth--
		}
	}

	if c.depth > 0 {
		return true, nil
	}

	text := strings.Join(c.pending, "\n")

	c.Reset()

	return false, c.e.Evaluate(ctx, interactive, text)
}

// List prints the names of functions matching pattern, or all of them if
// pattern is empty.
func (c *command) List(all bool, pattern string) error {
	for _, name := range c.r.Names(all) {
		if pattern != "" {
			ok, err := adapted.Match(pattern, name)
			if err != nil {
				return err
			}

			if !ok {
				continue
			}
		}

		fmt.Fprintln(c.out, name)
	}

	return nil
}

// Reset discards incomplete definition text.
func (c *command) Reset() {
	c.depth = 0
	c.pending = nil
}

// Show prints the definition of name in a form that can be evaluated.
func (c *command) Show(ctx context.Context, name string) error {
	if !c.r.Exists(ctx, name) {
		return fmt.Errorf("%w: %s", ErrNoSuchFunction, name)
	}

	switch file, ok := c.r.DefinitionFile(name); {
	case !ok || file == interactive:
		fmt.Fprintln(c.out, "# Defined interactively")
	case c.r.IsAutoloaded(name):
		fmt.Fprintf(c.out, "# Autoloaded from %s @ line %d\n", file, c.r.DefinitionOffset(name))
	default:
		fmt.Fprintf(c.out, "# Defined in %s @ line %d\n", file, c.r.DefinitionOffset(name))
	}

	header := []string{"function", quote(name)}

	if args := c.r.NamedArguments(name); len(args) > 0 {
		header = append(header, "--argument-names")

		for _, a := range args {
			header = append(header, quote(a))
		}
	}

	if d, ok := c.r.Description(name); ok {
		header = append(header, "--description", adapted.CanonicalString(d))
	}

	for _, k := range c.r.InheritVars(name).Keys() {
		header = append(header, "--inherit-variable", quote(k))
	}

	for _, e := range c.r.Events(name) {
		if opt, ok := eventOptions[e.Type]; ok {
			header = append(header, opt, quote(e.Param))
		}
	}

	if !c.r.ShadowScope(name) {
		header = append(header, "--no-scope-shadowing")
	}

	body, _ := c.r.Definition(name)

	fmt.Fprintln(c.out, strings.Join(header, " "))

	if body != "" {
		fmt.Fprintln(c.out, body)
	}

	fmt.Fprintln(c.out, "end")

	return nil
}

func (c *command) call(ctx context.Context, args []string) error {
	if err := validate.Variadic(args, 1, -1); err != nil {
		return err
	}

	return c.Call(ctx, args[0], args[1:])
}

func (c *command) copy(ctx context.Context, args []string) error {
	if err := validate.Fixed(args, 2); err != nil {
		return err
	}

	if !c.r.Exists(ctx, args[0]) || !c.r.Copy(args[0], args[1]) {
		return fmt.Errorf("%w: %s", ErrNoSuchFunction, args[0])
	}

	return nil
}

func (c *command) describe(ctx context.Context, args []string) error {
	if err := validate.Fixed(args, 2); err != nil {
		return err
	}

	c.r.SetDescription(ctx, args[0], args[1])

	return nil
}

func (c *command) environ(_ context.Context, args []string) error {
	if err := validate.Fixed(args, 0); err != nil {
		return err
	}

	vars, ok := c.r.Vars().(interface{ Environ() []string })
	if !ok {
		return nil
	}

	for _, kv := range vars.Environ() {
		fmt.Fprintln(c.out, kv)
	}

	return nil
}

func (c *command) erase(_ context.Context, args []string) error {
	if err := validate.Variadic(args, 1, -1); err != nil {
		return err
	}

	for _, name := range args {
		if !c.r.Remove(name) {
			return fmt.Errorf("%w: %s", ErrNoSuchFunction, name)
		}
	}

	return nil
}

func (c *command) exists(ctx context.Context, args []string) error {
	if err := validate.Fixed(args, 1); err != nil {
		return err
	}

	if !c.r.Exists(ctx, args[0]) {
		return fmt.Errorf("%w: %s", ErrNoSuchFunction, args[0])
	}

	return nil
}

func (c *command) handlers(_ context.Context, args []string) error {
	if err := validate.Fixed(args, 2); err != nil {
		return err
	}

	t, ok := event.ParseType(args[0])
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEventType, args[0])
	}

	for _, name := range c.r.Handlers(event.T{Type: t, Param: args[1]}) {
		fmt.Fprintln(c.out, name)
	}

	return nil
}

func (c *command) help(_ context.Context, _ []string) error {
	names := make([]string, 0, len(actions))
	for k := range actions {
		names = append(names, k)
	}

	sort.Strings(names)

	fmt.Fprintln(c.out, "commands: "+strings.Join(names, " "))
	fmt.Fprintln(c.out, "anything else is evaluated as definition text")

	return nil
}

func (c *command) list(_ context.Context, args []string) error {
	all := len(args) > 0 && (args[0] == "-a" || args[0] == "--all")
	if all {
		args = args[1:]
	}

	if err := validate.Variadic(args, 0, 1); err != nil {
		return err
	}

	pattern := ""
	if len(args) == 1 {
		pattern = args[0]
	}

	return c.List(all, pattern)
}

func (c *command) show(ctx context.Context, args []string) error {
	if err := validate.Fixed(args, 1); err != nil {
		return err
	}

	return c.Show(ctx, args[0])
}

func (c *command) tombstones(_ context.Context, args []string) error {
	if err := validate.Fixed(args, 0); err != nil {
		return err
	}

	for _, name := range c.r.Tombstones() {
		fmt.Fprintln(c.out, name)
	}

	return nil
}

// quote returns s as a single word of definition text.
func quote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\"'\\$#") {
		return s
	}

	return adapted.CanonicalString(s)
}
