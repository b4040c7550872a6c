// Package clipboard implements the application clipboard: a bounded list
// of copied texts that notifies "added" whenever a text is copied.
//
// A clipboard may mirror the operating system clipboard through a System.
// NewSystem returns one backed by github.com/atotto/clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/dshills/quill/internal/observable"
)

// EventAdded is emitted with the copied text as payload.
const EventAdded = "added"

// DefaultCapacity is the number of texts kept when none is configured.
const DefaultCapacity = 32

// ErrEmpty is returned by Last on an empty clipboard.
var ErrEmpty = errors.New("clipboard is empty")

// System is the operating system clipboard.
type System interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type atottoSystem struct{}

func (atottoSystem) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (atottoSystem) WriteAll(text string) error { return clipboard.WriteAll(text) }

// NewSystem returns the operating system clipboard. It is nil when the
// platform has no clipboard utility available.
func NewSystem() System {
	if clipboard.Unsupported {
		return nil
	}
	return atottoSystem{}
}

// Clipboard is a named, bounded clipboard.
type Clipboard struct {
	observable.Bus

	name     string
	capacity int
	items    []string
	system   System
}

// Option configures a Clipboard.
type Option func(*Clipboard)

// WithCapacity bounds the number of kept texts.
func WithCapacity(n int) Option {
	return func(c *Clipboard) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithSystem mirrors copies to sys. A nil sys disables mirroring.
func WithSystem(sys System) Option {
	return func(c *Clipboard) {
		c.system = sys
	}
}

// New creates an empty clipboard.
func New(name string, opts ...Option) *Clipboard {
	c := &Clipboard{name: name, capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the clipboard name.
func (c *Clipboard) Name() string { return c.name }

// Add copies text onto the clipboard and notifies "added". When a system
// clipboard is configured the text is written there too; a failed system
// write is returned after the text has been added.
func (c *Clipboard) Add(text string) error {
	c.push(text)
	c.Notify(EventAdded, text)
	if c.system != nil {
		if err := c.system.WriteAll(text); err != nil {
			return fmt.Errorf("clipboard %s: system write: %w", c.name, err)
		}
	}
	return nil
}

// Sync pulls the system clipboard and adds its text when it differs from
// the last copied text. It reports whether anything was added.
func (c *Clipboard) Sync() (bool, error) {
	if c.system == nil {
		return false, nil
	}
	text, err := c.system.ReadAll()
	if err != nil {
		return false, fmt.Errorf("clipboard %s: system read: %w", c.name, err)
	}
	if text == "" {
		return false, nil
	}
	if last, err := c.Last(); err == nil && last == text {
		return false, nil
	}
	c.push(text)
	c.Notify(EventAdded, text)
	return true, nil
}

func (c *Clipboard) push(text string) {
	c.items = append(c.items, text)
	if over := len(c.items) - c.capacity; over > 0 {
		c.items = append([]string(nil), c.items[over:]...)
	}
}

// Last returns the most recently copied text.
func (c *Clipboard) Last() (string, error) {
	if len(c.items) == 0 {
		return "", ErrEmpty
	}
	return c.items[len(c.items)-1], nil
}

// Items returns the kept texts, oldest first.
func (c *Clipboard) Items() []string {
	return append([]string(nil), c.items...)
}

// Len returns the number of kept texts.
func (c *Clipboard) Len() int { return len(c.items) }
