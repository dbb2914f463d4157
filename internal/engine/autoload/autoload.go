// Released under an MIT license. See LICENSE.

// Package autoload finds function definition files on a search path and
// evaluates them the first time a function is referenced.
//
// At most one load runs at a time. A load may reference other functions,
// or define them, on the same call chain; the context passed to the
// evaluator identifies that chain so nested loads do not wait on the
// load that caused them.
package autoload

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/michaelmacinnis/autofn/internal/common/interface/evaluator"
	"github.com/michaelmacinnis/autofn/internal/common/interface/store"
	"github.com/michaelmacinnis/autofn/internal/engine/source"
	"github.com/michaelmacinnis/autofn/internal/system/cache"
	"github.com/michaelmacinnis/autofn/internal/system/logging"
)

const (
	// DefaultPathVariable names the variable holding the search path.
	DefaultPathVariable = "function_path"

	// DefaultSuffix is the extension of definition files.
	DefaultSuffix = ".fn"

	// HiddenPrefix marks names left out of listings by default.
	HiddenPrefix = "_"
)

// Lister returns the names of the files in a directory.
type Lister interface {
	Files(dirname string) ([]string, error)
}

// ListerFunc adapts an ordinary function to the Lister interface.
type ListerFunc func(dirname string) ([]string, error)

// Files calls f.
func (f ListerFunc) Files(dirname string) ([]string, error) {
	return f(dirname)
}

// Table is what the autoloader needs to know about the function table.
type Table interface {
	// Autoloadable is false when name is tombstoned or explicitly defined.
	Autoloadable(name string) bool

	// Has reports whether a record for name exists.
	Has(name string) bool
}

// Config holds the autoloader's collaborators and settings.
type Config struct {
	Evaluator    evaluator.I
	Lister       Lister
	Log          *zap.Logger
	PathVariable string
	Suffix       string
	Vars         store.Getter
}

// T (autoload) is a function autoloader.
type T struct {
	evaluator    atomic.Value
	lister       Lister
	log          *zap.Logger
	pathVariable string
	suffix       string
	vars         store.Getter

	mu    sync.Mutex // Held for the duration of an outermost load.
	owner atomic.Pointer[chain]

	state  sync.Mutex // Guards loaded.
	loaded map[string]string
}

type autoload = T

type chain struct{}

type chainKey struct{}

type holder struct {
	e evaluator.I
}

// New creates an autoloader.
func New(cfg Config) *autoload {
	a := &autoload{
		lister:       cfg.Lister,
		log:          logging.OrNop(cfg.Log),
		pathVariable: cfg.PathVariable,
		suffix:       cfg.Suffix,
		vars:         cfg.Vars,
		loaded:       map[string]string{},
	}

	if a.lister == nil {
		a.lister = ListerFunc(cache.ReadDir)
	}

	if a.pathVariable == "" {
		a.pathVariable = DefaultPathVariable
	}

	if a.suffix == "" {
		a.suffix = DefaultSuffix
	}

	a.SetEvaluator(cfg.Evaluator)

	return a
}

// Candidate returns the file that would be loaded for name using the search
// path in vars.
func (a *autoload) Candidate(name string, vars store.Getter) (string, bool) {
	if !valid(name) {
		return "", false
	}

	for _, dir := range a.Path(vars) {
		p := filepath.Join(dir, name+a.suffix)

		stat, err := os.Stat(p)
		if err != nil || stat.IsDir() {
			continue
		}

		if readable(p) {
			return p, true
		}
	}

	return "", false
}

// CanLoad returns true if a definition file for name would be found using
// the search path in vars. Nothing is read or evaluated.
func (a *autoload) CanLoad(name string, vars store.Getter) bool {
	_, ok := a.Candidate(name, vars)

	return ok
}

// Load makes sure that, if name can be autoloaded, it has been. It reports
// whether t holds a record for name afterwards.
func (a *autoload) Load(ctx context.Context, name string, t Table) bool {
	// A function's own file referring to it.
	if source.Loading(ctx, name) {
		return t.Has(name)
	}

	if !a.holds(ctx) {
		a.mu.Lock()
		defer a.mu.Unlock()

		c := &chain{}

		a.owner.Store(c)
		defer a.owner.Store(nil)

		ctx = context.WithValue(ctx, chainKey{}, c)
	}

	if !t.Autoloadable(name) {
		return t.Has(name)
	}

	if _, ok := a.Loaded(name); ok && t.Has(name) {
		return true
	}

	return a.load(ctx, name, t)
}

// Loaded returns the file name was last successfully loaded from.
func (a *autoload) Loaded(name string) (string, bool) {
	a.state.Lock()
	defer a.state.Unlock()

	path, ok := a.loaded[name]

	return path, ok
}

// Names returns the names of the functions with definition files on the
// search path. Hidden names are included only if hidden is true.
func (a *autoload) Names(hidden bool) []string {
	seen := map[string]bool{}
	names := []string{}

	for _, dir := range a.Path(a.vars) {
		files, err := a.lister.Files(dir)
		if err != nil {
			continue
		}

		for _, f := range files {
			n := strings.TrimSuffix(f, a.suffix)
			if n == f || n == "" || seen[n] {
				continue
			}

			if !hidden && strings.HasPrefix(n, HiddenPrefix) {
				continue
			}

			seen[n] = true
			names = append(names, n)
		}
	}

	sort.Strings(names)

	return names
}

// Path returns the search path directories held in vars.
func (a *autoload) Path(vars store.Getter) []string {
	if vars == nil {
		return nil
	}

	v, ok := vars.Get(a.pathVariable)
	if !ok {
		return nil
	}

	dirs := make([]string, 0, len(v))

	for _, e := range v {
		for _, dir := range filepath.SplitList(e) {
			if dir != "" {
				dirs = append(dirs, dir)
			}
		}
	}

	return dirs
}

// SetEvaluator sets the evaluator used to run definition files.
func (a *autoload) SetEvaluator(e evaluator.I) {
	a.evaluator.Store(holder{e})
}

// Unload forgets that name was loaded so that a later reference rescans
// the search path.
func (a *autoload) Unload(name string) bool {
	a.state.Lock()
	defer a.state.Unlock()

	_, ok := a.loaded[name]
	delete(a.loaded, name)

	return ok
}

func (a *autoload) holds(ctx context.Context) bool {
	c, ok := ctx.Value(chainKey{}).(*chain)

	return ok && c == a.owner.Load()
}

func (a *autoload) load(ctx context.Context, name string, t Table) bool {
	path, ok := a.Candidate(name, a.vars)
	if !ok {
		a.log.Debug("no definition file", zap.String("function", name))

		return false
	}

	log := a.log.With(
		zap.String("function", name),
		zap.String("file", path),
		zap.Strings("loading", source.Stack(ctx)),
	)

	e := a.evaluator.Load().(holder).e
	if e == nil {
		log.Warn("no evaluator for definition file")

		return false
	}

	text, err := os.ReadFile(path)
	if err != nil {
		log.Warn("cannot read definition file", zap.Error(err))

		return false
	}

	err = e.Evaluate(source.WithAutoload(ctx, name, path), path, string(text))
	if err != nil {
		log.Warn("cannot evaluate definition file", zap.Error(err))

		return false
	}

	if !t.Has(name) {
		log.Warn("definition file does not define function")

		return false
	}

	a.state.Lock()
	a.loaded[name] = path
	a.state.Unlock()

	log.Debug("autoloaded")

	return true
}

func valid(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsRune(name, '/') &&
		!strings.ContainsRune(name, filepath.Separator)
}
