// Package history records the commands run by the application, most recent
// last, up to a fixed number of entries.
package history

import (
	"errors"
	"sync"
	"time"
)

// DefaultMaxEntries bounds a history created with a non-positive size.
const DefaultMaxEntries = 500

// ErrEmpty is returned by Last when nothing was recorded.
var ErrEmpty = errors.New("command history is empty")

// Entry is one recorded command.
type Entry struct {
	Action string
	Source string
	At     time.Time
}

// History is a bounded command history.
type History struct {
	mu         sync.Mutex
	entries    []Entry
	maxEntries int
	now        func() time.Time
}

// New creates an empty history keeping at most maxEntries commands.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Record appends a command. The oldest entry is dropped when full.
func (h *History) Record(action, source string) Entry {
	h.mu.Lock()
	defer h.mu.Unlock()

	e := Entry{Action: action, Source: source, At: h.now()}
	h.entries = append(h.entries, e)
	if len(h.entries) > h.maxEntries {
		h.entries = h.entries[1:]
	}
	return e
}

// Last returns the most recent entry.
func (h *History) Last() (Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) == 0 {
		return Entry{}, ErrEmpty
	}
	return h.entries[len(h.entries)-1], nil
}

// Entries returns the recorded commands, oldest first.
func (h *History) Entries() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Entry(nil), h.entries...)
}

// Len returns the number of recorded commands.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Clear removes every entry.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}
