// Released under an MIT license. See LICENSE.

// Package registry provides the table of user-defined functions.
//
// The registry is the only owner of function records. Lookups that miss
// ask the autoloader to find and evaluate a definition file; evaluating
// that file calls back into Add. The registry's lock is never held while
// a definition file is evaluated.
package registry

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/michaelmacinnis/autofn/internal/common/interface/bus"
	"github.com/michaelmacinnis/autofn/internal/common/interface/evaluator"
	"github.com/michaelmacinnis/autofn/internal/common/interface/functions"
	"github.com/michaelmacinnis/autofn/internal/common/interface/store"
	"github.com/michaelmacinnis/autofn/internal/common/struct/event"
	"github.com/michaelmacinnis/autofn/internal/common/struct/hash"
	"github.com/michaelmacinnis/autofn/internal/common/struct/loc"
	"github.com/michaelmacinnis/autofn/internal/common/struct/tombstone"
	"github.com/michaelmacinnis/autofn/internal/common/type/env"
	"github.com/michaelmacinnis/autofn/internal/common/type/function"
	"github.com/michaelmacinnis/autofn/internal/common/validate"
	"github.com/michaelmacinnis/autofn/internal/engine/autoload"
	"github.com/michaelmacinnis/autofn/internal/engine/source"
	"github.com/michaelmacinnis/autofn/internal/reader/keyword"
	"github.com/michaelmacinnis/autofn/internal/system/logging"
)

// Config holds the registry's collaborators and autoload settings.
// Zero values select defaults.
type Config struct {
	Bus          bus.I
	Lister       autoload.Lister
	Log          *zap.Logger
	PathVariable string
	Suffix       string
	Vars         store.I
}

// T (registry) maps function names to function records.
type T struct {
	sync.RWMutex
	m map[string]*function.T

	bus        bus.I
	handlers   map[string][]uuid.UUID
	loader     *autoload.T
	log        *zap.Logger
	tombstones *tombstone.T
	vars       store.I
}

type registry = T

// New creates a registry.
func New(cfg Config) *registry {
	r := &registry{
		m:          map[string]*function.T{},
		bus:        cfg.Bus,
		handlers:   map[string][]uuid.UUID{},
		log:        logging.OrNop(cfg.Log),
		tombstones: tombstone.New(),
		vars:       cfg.Vars,
	}

	if r.bus == nil {
		r.bus = bus.None
	}

	if r.vars == nil {
		r.vars = env.New(nil)
	}

	r.loader = autoload.New(autoload.Config{
		Lister:       cfg.Lister,
		Log:          r.log,
		PathVariable: cfg.PathVariable,
		Suffix:       cfg.Suffix,
		Vars:         r.vars,
	})

	return r
}

// Add defines the function name, replacing any existing definition. The
// context says whether the definition comes from a file and whether that
// file is being autoloaded. An empty name or nil definition panics.
func (r *registry) Add(ctx context.Context, name string, d *function.Definition, line int) {
	validate.Definition(name, d)

	file, auto := source.From(ctx)

	scope := d.Scope
	if scope == nil {
		scope = r.vars
	}

	f := function.New(name, d, env.Snapshot(scope, d.InheritVars...), loc.New(file, line), auto)

	r.Lock()
	defer r.Unlock()

	if old, ok := r.m[name]; ok {
		if auto && !old.IsAutoload() {
			r.log.Info("keeping explicit definition",
				zap.String("function", name), zap.String("file", file))

			return
		}

		r.unbind(name)
	}

	r.m[name] = f

	for _, e := range f.Events() {
		r.handlers[name] = append(r.handlers[name], r.bus.AddHandler(e))
	}
}

// Autoloadable returns true unless name is tombstoned or explicitly defined.
func (r *registry) Autoloadable(name string) bool {
	if r.tombstones.Has(name) {
		return false
	}

	r.RLock()
	defer r.RUnlock()

	f, ok := r.m[name]

	return !ok || f.IsAutoload()
}

// Candidate returns the definition file that would be autoloaded for name.
func (r *registry) Candidate(name string) (string, bool) {
	return r.loader.Candidate(name, r.vars)
}

// Copy defines dst as an explicit copy of src. It returns false if src is
// not defined. Copying a function to itself changes nothing.
func (r *registry) Copy(src, dst string) bool {
	r.Lock()
	defer r.Unlock()

	f, ok := r.m[src]
	if !ok || src == dst {
		return ok
	}

	r.unbind(dst)

	r.m[dst] = f.Copy()

	return true
}

// Definition returns the body of name.
func (r *registry) Definition(name string) (string, bool) {
	f := r.get(name)
	if f == nil {
		return "", false
	}

	return f.Definition(), true
}

// DefinitionFile returns the file name was defined in.
func (r *registry) DefinitionFile(name string) (string, bool) {
	f := r.get(name)
	if f == nil || !f.File().Ok() {
		return "", false
	}

	return f.File().String(), true
}

// DefinitionOffset returns the line name was defined on, or -1.
func (r *registry) DefinitionOffset(name string) int {
	f := r.get(name)
	if f == nil {
		return -1
	}

	return f.Offset()
}

// Description returns the description of name. A function without a
// description reports false.
func (r *registry) Description(name string) (string, bool) {
	f := r.get(name)
	if f == nil || f.Description() == "" {
		return "", false
	}

	return f.Description(), true
}

// Events returns the event bindings declared with name.
func (r *registry) Events(name string) []event.T {
	f := r.get(name)
	if f == nil {
		return nil
	}

	return f.Events()
}

// Exists returns true if name is defined, autoloading it if necessary.
func (r *registry) Exists(ctx context.Context, name string) bool {
	if keyword.IsReserved(name) {
		return false
	}

	return r.Load(ctx, name)
}

// ExistsWithoutAutoload returns true if name is defined or could be
// autoloaded using the search path in vars. Nothing is loaded.
func (r *registry) ExistsWithoutAutoload(name string, vars store.Getter) bool {
	if keyword.IsReserved(name) {
		return false
	}

	return r.Has(name) || r.loader.CanLoad(name, vars)
}

// Handlers returns the sorted names of the functions bound to e.
func (r *registry) Handlers(e event.T) []string {
	return r.bus.Functions(e)
}

// Has returns true if there is a record for name. It never autoloads.
func (r *registry) Has(name string) bool {
	return r.get(name) != nil
}

// InheritVars returns a copy of the variables name captured when defined.
func (r *registry) InheritVars(name string) *hash.T {
	f := r.get(name)
	if f == nil {
		return hash.New()
	}

	return f.InheritVars()
}

// IsAutoloaded returns true if name was defined by autoloading.
func (r *registry) IsAutoloaded(name string) bool {
	f := r.get(name)

	return f != nil && f.IsAutoload()
}

// Load autoloads name if that is possible and has not happened already.
// It reports whether name is defined afterwards.
func (r *registry) Load(ctx context.Context, name string) bool {
	if keyword.IsReserved(name) {
		return false
	}

	r.loader.Load(ctx, name, r)

	return r.Has(name)
}

// NamedArguments returns the declared parameter names of name.
func (r *registry) NamedArguments(name string) []string {
	f := r.get(name)
	if f == nil {
		return nil
	}

	return f.NamedArguments()
}

// Names returns the sorted names of every defined or autoloadable
// function. Names starting with an underscore are hidden unless hidden
// is true.
func (r *registry) Names(hidden bool) []string {
	seen := map[string]bool{}
	names := []string{}

	for _, n := range r.loader.Names(hidden) {
		seen[n] = true
		names = append(names, n)
	}

	r.RLock()
	for n := range r.m {
		if seen[n] || (!hidden && strings.HasPrefix(n, autoload.HiddenPrefix)) {
			continue
		}

		seen[n] = true
		names = append(names, n)
	}
	r.RUnlock()

	sort.Strings(names)

	return names
}

// Remove deletes name and reports whether it was defined. A function that
// was autoloaded will not be autoloaded again.
func (r *registry) Remove(name string) bool {
	r.Lock()
	defer r.Unlock()

	f, ok := r.m[name]
	if ok {
		delete(r.m, name)

		if f.IsAutoload() {
			r.log.Debug("tombstoning", zap.String("function", name))
			r.tombstones.Add(name)
		}

		r.unbind(name)
	}

	if r.loader.Unload(name) {
		r.log.Debug("forgot autoloaded file", zap.String("function", name))
	}

	return ok
}

// SetDescription replaces the description of name, autoloading it first.
// It does nothing if name is not defined.
func (r *registry) SetDescription(ctx context.Context, name, text string) {
	r.Load(ctx, name)

	r.Lock()
	defer r.Unlock()

	if f, ok := r.m[name]; ok {
		r.m[name] = f.WithDescription(text)
	}
}

// SetEvaluator sets the evaluator used to run definition files.
func (r *registry) SetEvaluator(e evaluator.I) {
	r.loader.SetEvaluator(e)
}

// ShadowScope returns true if invoking name isolates the caller's variables.
func (r *registry) ShadowScope(name string) bool {
	f := r.get(name)

	return f != nil && f.ShadowScope()
}

// Tombstones returns the sorted names that can no longer be autoloaded.
func (r *registry) Tombstones() []string {
	return r.tombstones.Names()
}

// Tombstoned returns true if name can no longer be autoloaded.
func (r *registry) Tombstoned(name string) bool {
	return r.tombstones.Has(name)
}

// Vars returns the variable store the registry reads the search path and
// inherited variables from.
func (r *registry) Vars() store.I {
	return r.vars
}

// unbind removes the event handlers registered for name. The caller must
// hold the write lock.
func (r *registry) unbind(name string) {
	for _, id := range r.handlers[name] {
		if r.bus.RemoveHandler(id) {
			r.log.Debug("removed event handler",
				zap.String("function", name), zap.Stringer("id", id))
		}
	}

	delete(r.handlers, name)
}

func (r *registry) get(name string) *function.T {
	r.RLock()
	defer r.RUnlock()

	return r.m[name]
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t registry

	// The registry is what evaluators define functions with.
	_ = functions.I(&t)

	// The registry is the autoloader's function table.
	_ = autoload.Table(&t)
}
