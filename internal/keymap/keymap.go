package keymap

import (
	"fmt"

	"github.com/dshills/quill/internal/platform"
)

// MainName is the name of the keymap attached to every window.
const MainName = "main"

// Binding maps a canonical chord to an action reference.
type Binding struct {
	Chord  string
	Action string
}

// Keymap is a named set of chord bindings for a list of platforms.
// Bindings keep the order in which their chord was first bound.
type Keymap struct {
	// Name is the keymap identifier, e.g. "main".
	Name string

	// Platforms this keymap applies to. Empty means every platform.
	Platforms []platform.Platform

	// Source records where the keymap came from, e.g. "plugin:project".
	Source string

	order   []string
	actions map[string]string
}

// New creates an empty keymap.
func New(name string, platforms ...platform.Platform) *Keymap {
	return &Keymap{
		Name:      name,
		Platforms: platforms,
		actions:   make(map[string]string),
	}
}

// Bind binds chord to action, replacing any earlier binding for the same
// chord. Chords are normalised, so "Ctrl+S" and "C-s" are the same key.
func (k *Keymap) Bind(chord, action string) error {
	c, err := NormalizeChord(chord)
	if err != nil {
		return err
	}
	if action == "" {
		return fmt.Errorf("%w: empty action for %s", ErrInvalidChord, c)
	}
	k.set(c, action)
	return nil
}

// MustBind is like Bind but panics on an invalid chord.
func (k *Keymap) MustBind(chord, action string) *Keymap {
	if err := k.Bind(chord, action); err != nil {
		panic(err)
	}
	return k
}

func (k *Keymap) set(chord, action string) {
	if k.actions == nil {
		k.actions = make(map[string]string)
	}
	if _, exists := k.actions[chord]; !exists {
		k.order = append(k.order, chord)
	}
	k.actions[chord] = action
}

// Action returns the action bound to chord.
func (k *Keymap) Action(chord string) (string, bool) {
	c, err := NormalizeChord(chord)
	if err != nil {
		return "", false
	}
	a, ok := k.actions[c]
	return a, ok
}

// Bindings returns the bindings in first-bound order.
func (k *Keymap) Bindings() []Binding {
	out := make([]Binding, 0, len(k.order))
	for _, c := range k.order {
		out = append(out, Binding{Chord: c, Action: k.actions[c]})
	}
	return out
}

// Len returns the number of bound chords.
func (k *Keymap) Len() int {
	return len(k.order)
}

// AppliesTo reports whether the keymap declares p among its platforms.
func (k *Keymap) AppliesTo(p platform.Platform) bool {
	return p.In(k.Platforms)
}

// Merge returns a new keymap holding k's bindings overridden by other's.
// The result keeps k's name and platforms. Neither input is modified.
func (k *Keymap) Merge(other *Keymap) *Keymap {
	out := k.Clone()
	if other == nil {
		return out
	}
	for _, c := range other.order {
		out.set(c, other.actions[c])
	}
	return out
}

// Clone creates a deep copy of the keymap.
func (k *Keymap) Clone() *Keymap {
	clone := &Keymap{
		Name:    k.Name,
		Source:  k.Source,
		order:   make([]string, len(k.order)),
		actions: make(map[string]string, len(k.actions)),
	}
	clone.Platforms = append([]platform.Platform(nil), k.Platforms...)
	copy(clone.order, k.order)
	for c, a := range k.actions {
		clone.actions[c] = a
	}
	return clone
}

// Build folds every keymap in maps named name that applies to p into a
// fresh keymap, left to right, later bindings overriding earlier ones.
func Build(name string, p platform.Platform, maps ...*Keymap) *Keymap {
	result := New(name, p)
	for _, m := range maps {
		if m == nil || m.Name != name || !m.AppliesTo(p) {
			continue
		}
		result = result.Merge(m)
	}
	return result
}
