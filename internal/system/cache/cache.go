// Released under an MIT license. See LICENSE.

// Package cache keeps directory listings for the search path. A listing
// is dropped as soon as its directory changes.
package cache

import (
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ErrClosed is returned for requests made after Close.
var ErrClosed = errors.New("cache closed")

// T (cache) holds the names of the files in watched directories.
// All state is owned by a single service goroutine.
type T struct {
	done     chan struct{}
	listings map[string][]string
	log      *zap.Logger
	readDir  func(dirname string) ([]string, error)
	requestq chan func()
	stop     chan struct{}
	watcher  *fsnotify.Watcher
}

type cache = T

// New creates a cache and starts its service goroutine.
func New(log *zap.Logger) (*cache, error) {
	if log == nil {
		log = zap.NewNop()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	c := &cache{
		done:     make(chan struct{}),
		listings: map[string][]string{},
		log:      log,
		readDir:  ReadDir,
		requestq: make(chan func()),
		stop:     make(chan struct{}),
		watcher:  w,
	}

	go c.service()

	return c, nil
}

// Close stops the service goroutine and releases the watcher.
func (c *cache) Close() error {
	select {
	case <-c.stop:
		return nil
	default:
	}

	close(c.stop)
	<-c.done

	return c.watcher.Close()
}

// Files returns the names of the regular files in dirname.
func (c *cache) Files(dirname string) ([]string, error) {
	dirname = filepath.Clean(dirname)

	type result struct {
		err   error
		names []string
	}

	resultq := make(chan result, 1)

	request := func() {
		if names, ok := c.listings[dirname]; ok {
			resultq <- result{names: names}

			return
		}

		// Watch before reading so that no change after the read is missed.
		watched := true
		if err := c.watcher.Add(dirname); err != nil {
			c.log.Debug("not caching directory",
				zap.String("dir", dirname), zap.Error(err))

			watched = false
		}

		names, err := c.readDir(dirname)
		if err != nil {
			if watched {
				_ = c.watcher.Remove(dirname)
			}

			resultq <- result{err: err}

			return
		}

		// Only cache what we can keep fresh.
		if watched {
			c.listings[dirname] = names
		}

		resultq <- result{names: names}
	}

	select {
	case c.requestq <- request:
	case <-c.stop:
		return nil, ErrClosed
	}

	r := <-resultq

	return append([]string(nil), r.names...), r.err
}

// Populate reads and caches each directory in dirnames.
func (c *cache) Populate(dirnames []string) {
	for _, dirname := range dirnames {
		if dirname == "" {
			dirname = "."
		}

		stat, err := os.Stat(dirname)
		if err != nil || !stat.IsDir() {
			continue
		}

		_, _ = c.Files(dirname)
	}
}

// ReadDir returns the sorted names of the regular files in dirname,
// following symbolic links.
func ReadDir(dirname string) ([]string, error) {
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		if e.Type()&os.ModeSymlink != 0 {
			stat, err := os.Stat(filepath.Join(dirname, e.Name()))
			if err != nil || stat.IsDir() {
				continue
			}
		}

		names = append(names, e.Name())
	}

	sort.Strings(names)

	return names, nil
}

func (c *cache) forget(dirname string) {
	if _, ok := c.listings[dirname]; ok {
		c.log.Debug("directory changed", zap.String("dir", dirname))
		delete(c.listings, dirname)
	}
}

func (c *cache) service() {
	defer close(c.done)

	for {
		select {
		case <-c.stop:
			return

		case request := <-c.requestq:
			request()

		case e, ok := <-c.watcher.Events:
			if !ok {
				return
			}

			if e.Op == fsnotify.Chmod {
				continue
			}

			// The event may be for the directory itself or an entry in it.
			c.forget(filepath.Clean(e.Name))
			c.forget(filepath.Dir(e.Name))

		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}

			c.log.Warn("watcher error", zap.Error(err))

			// Events may have been lost.
			for dirname := range c.listings {
				delete(c.listings, dirname)
			}
		}
	}
}
