package sensitivity

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownSensitivity is returned when reading an unregistered name.
var ErrUnknownSensitivity = errors.New("unknown sensitivity")

// Registry holds every sensitivity by name and routes invalidation events
// to the sensitivities that depend on them.
type Registry struct {
	ctx     Context
	byName  map[string]*Sensitivity
	byEvent map[string][]*Sensitivity
}

// NewRegistry creates a registry whose predicates read ctx.
func NewRegistry(ctx Context) *Registry {
	return &Registry{
		ctx:     ctx,
		byName:  make(map[string]*Sensitivity),
		byEvent: make(map[string][]*Sensitivity),
	}
}

// Register adds sensitivities. A later registration under an existing name
// replaces the earlier one.
func (r *Registry) Register(list ...*Sensitivity) {
	for _, s := range list {
		if s == nil {
			continue
		}
		if old, ok := r.byName[s.name]; ok {
			r.unindex(old)
		}
		r.byName[s.name] = s
		for _, ev := range s.events {
			r.byEvent[ev] = append(r.byEvent[ev], s)
		}
	}
}

func (r *Registry) unindex(s *Sensitivity) {
	for _, ev := range s.events {
		list := r.byEvent[ev]
		kept := make([]*Sensitivity, 0, len(list))
		for _, other := range list {
			if other != s {
				kept = append(kept, other)
			}
		}
		if len(kept) == 0 {
			delete(r.byEvent, ev)
		} else {
			r.byEvent[ev] = kept
		}
	}
}

// Invalidate marks every sensitivity depending on event dirty and returns
// how many were affected. It never runs a predicate.
func (r *Registry) Invalidate(event string) int {
	list := r.byEvent[event]
	for _, s := range list {
		s.dirty = true
	}
	return len(list)
}

// Value returns the current value of the named sensitivity.
func (r *Registry) Value(name string) (bool, error) {
	s, ok := r.byName[name]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownSensitivity, name)
	}
	return s.Value(r.ctx), nil
}

// AllEnabled reports whether every named sensitivity holds. Unknown names
// count as not holding.
func (r *Registry) AllEnabled(names ...string) bool {
	for _, n := range names {
		if v, err := r.Value(n); err != nil || !v {
			return false
		}
	}
	return true
}

// Get returns the sensitivity registered under name.
func (r *Registry) Get(name string) (*Sensitivity, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered sensitivities.
func (r *Registry) Len() int {
	return len(r.byName)
}
