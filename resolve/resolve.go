// Package resolve maps dotted lookup paths to registered Go values.
//
// The factory never reaches for reflection or plugin loading: anything
// addressable by a configuration path (custom generators, alternate
// builders) must be registered on a Resolver first. Resolution happens
// lazily at first use and failures are treated as fatal configuration
// errors by the caller.
package resolve

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ErrNotFound is returned when a path is not known to the resolver.
var ErrNotFound = errors.New("resolve: path not found")

// Resolver resolves a dotted path to a registered value.
type Resolver interface {
	Resolve(path string) (any, error)
}

// Func is a function adapter for the Resolver interface.
type Func func(path string) (any, error)

// Resolve implements the Resolver interface.
func (f Func) Resolve(path string) (any, error) {
	return f(path)
}

// Map is a literal path-to-value resolver.
type Map map[string]any

// Resolve implements the Resolver interface.
func (m Map) Resolve(path string) (any, error) {
	v, ok := m[path]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, path)
	}
	return v, nil
}

// Chain tries each resolver in order and returns the first match.
type Chain []Resolver

// Resolve implements the Resolver interface.
func (c Chain) Resolve(path string) (any, error) {
	for _, r := range c {
		v, err := r.Resolve(path)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, path)
}

// Lazy wraps a resolver and memoizes the first resolution of each path.
// Concurrent first use resolves exactly once; the outcome, success or
// failure, is remembered for every later call.
type Lazy struct {
	r Resolver

	group singleflight.Group
	mu    sync.RWMutex
	done  map[string]result
}

type result struct {
	v   any
	err error
}

// NewLazy returns a Lazy resolver wrapping r.
func NewLazy(r Resolver) *Lazy {
	return &Lazy{r: r, done: make(map[string]result)}
}

// Resolve implements the Resolver interface.
func (l *Lazy) Resolve(path string) (any, error) {
	l.mu.RLock()
	res, ok := l.done[path]
	l.mu.RUnlock()
	if ok {
		return res.v, res.err
	}
	v, err, _ := l.group.Do(path, func() (any, error) {
		v, err := l.r.Resolve(path)
		l.mu.Lock()
		l.done[path] = result{v: v, err: err}
		l.mu.Unlock()
		return v, err
	})
	return v, err
}
