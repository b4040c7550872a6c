// Package sensitivity implements named, cached boolean predicates that
// drive command enablement.
//
// A Sensitivity declares the application events that can change its value.
// When one of those events fires the cached value is marked dirty; the
// predicate runs again only on the next read. Reads between two relevant
// events never re-run the predicate.
//
//	reg := sensitivity.NewRegistry(ctx)
//	reg.Register(sensitivity.Builtins()...)
//	bus.Tap(func(event string, _ any) { reg.Invalidate(event) })
//
//	ok, err := reg.Value(sensitivity.OpenTab)
package sensitivity

import (
	"github.com/dshills/quill/internal/focus"
)

// Context is the read-only view of editor state handed to predicates.
type Context interface {
	// FocussedWindow returns the focussed window, or nil.
	FocussedWindow() *focus.Window
}

// Predicate computes a sensitivity value. ok=false means the predicate
// could not produce a value and the default applies.
type Predicate interface {
	Evaluate(ctx Context) (value bool, ok bool)
}

// PredicateFunc adapts a function to Predicate.
type PredicateFunc func(ctx Context) (bool, bool)

// Evaluate implements Predicate.
func (f PredicateFunc) Evaluate(ctx Context) (bool, bool) {
	return f(ctx)
}

// Sensitivity is a named predicate with a cached value.
type Sensitivity struct {
	name      string
	def       bool
	dependsOn map[string]struct{}
	events    []string
	predicate Predicate

	value       bool
	dirty       bool
	evaluations int
}

// New creates a sensitivity. It starts dirty with its default value.
func New(name string, def bool, dependsOn []string, p Predicate) *Sensitivity {
	s := &Sensitivity{
		name:      name,
		def:       def,
		dependsOn: make(map[string]struct{}, len(dependsOn)),
		predicate: p,
		value:     def,
		dirty:     true,
	}
	for _, ev := range dependsOn {
		if _, dup := s.dependsOn[ev]; dup {
			continue
		}
		s.dependsOn[ev] = struct{}{}
		s.events = append(s.events, ev)
	}
	return s
}

// Name returns the sensitivity name.
func (s *Sensitivity) Name() string { return s.name }

// Default returns the default value.
func (s *Sensitivity) Default() bool { return s.def }

// DependsOn returns the invalidating event names in declaration order.
func (s *Sensitivity) DependsOn() []string {
	return append([]string(nil), s.events...)
}

// Dirty reports whether the next read will run the predicate.
func (s *Sensitivity) Dirty() bool { return s.dirty }

// Evaluations returns how many times the predicate ran.
func (s *Sensitivity) Evaluations() int { return s.evaluations }

// Invalidate marks the value dirty when event is a dependency.
// It reports whether the sensitivity was affected.
func (s *Sensitivity) Invalidate(event string) bool {
	if _, ok := s.dependsOn[event]; !ok {
		return false
	}
	s.dirty = true
	return true
}

// Value returns the cached value, running the predicate first when dirty.
func (s *Sensitivity) Value(ctx Context) bool {
	if !s.dirty {
		return s.value
	}
	s.value = s.def
	if s.predicate != nil {
		s.evaluations++
		if v, ok := s.predicate.Evaluate(ctx); ok {
			s.value = v
		}
	}
	s.dirty = false
	return s.value
}
