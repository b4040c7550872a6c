// Package observable provides the per-object event bus used by every entity
// in the control core.
//
// A Bus is meant to be embedded. Listeners are registered for a named event
// and are notified synchronously, in registration order, with zero or one
// payload value:
//
//	var b observable.Bus
//	h := b.AddListener("closed", func(payload any) { ... })
//	b.Notify("closed", win)
//	_ = b.RemoveListener(h)
//
// Notification iterates a snapshot of the listeners registered when Notify
// was called, so a listener may add or remove listeners (including itself)
// without affecting the dispatch in progress.
//
// # Re-entrancy
//
// A listener may notify other events on the same bus; they are delivered
// immediately. A nested Notify of an event that is already being dispatched
// on the same bus is queued and delivered, taps included, once the current
// dispatch of that event returns. Each outermost dispatch delivers at most
// MaxRequeued queued notifications of its event; further ones are dropped
// and counted, which bounds a handler that re-emits its own event forever.
//
// # Thread Safety
//
// A Bus is not safe for concurrent use. All notifications run on the single
// event-loop goroutine that owns the entity.
package observable

import (
	"errors"
	"fmt"
)

// MaxRequeued bounds the nested same-event notifications delivered after
// one outermost dispatch.
const MaxRequeued = 64

// ErrUnknownHandle is returned when removing a handle that is not registered.
var ErrUnknownHandle = errors.New("unknown listener handle")

// Listener is called with the payload passed to Notify.
type Listener func(payload any)

// TapFunc observes every event notified on a bus.
type TapFunc func(event string, payload any)

// Handle identifies a registered listener.
type Handle struct {
	id    uint64
	event string
	tap   bool
}

// Event returns the event name the handle was registered for.
// Taps report an empty name.
func (h Handle) Event() string {
	return h.event
}

// IsZero reports whether h was never returned by AddListener or Tap.
func (h Handle) IsZero() bool {
	return h.id == 0
}

type entry struct {
	id uint64
	fn Listener
}

type tapEntry struct {
	id uint64
	fn TapFunc
}

// Bus stores listeners keyed by event name. The zero value is ready to use.
type Bus struct {
	listeners map[string][]entry
	taps      []tapEntry
	nextID    uint64

	// dispatching maps each event being delivered to the payloads queued
	// by nested notifications of the same event.
	dispatching map[string]*pendingQueue
	suppressed  uint64
}

type pendingQueue struct {
	payloads []any
	accepted int
}

// AddListener registers fn for event and returns a handle for removal.
func (b *Bus) AddListener(event string, fn Listener) Handle {
	if b.listeners == nil {
		b.listeners = make(map[string][]entry)
	}
	b.nextID++
	b.listeners[event] = append(b.listeners[event], entry{id: b.nextID, fn: fn})
	return Handle{id: b.nextID, event: event}
}

// Tap registers fn to observe every event on the bus. Taps run before the
// named listeners of each event, so a tap can invalidate state those
// listeners read.
func (b *Bus) Tap(fn TapFunc) Handle {
	b.nextID++
	b.taps = append(b.taps, tapEntry{id: b.nextID, fn: fn})
	return Handle{id: b.nextID, tap: true}
}

// RemoveListener unregisters the listener or tap identified by h.
func (b *Bus) RemoveListener(h Handle) error {
	if h.IsZero() {
		return fmt.Errorf("remove listener: %w", ErrUnknownHandle)
	}

	if h.tap {
		for i, t := range b.taps {
			if t.id == h.id {
				b.taps = append(b.taps[:i:i], b.taps[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("remove tap %d: %w", h.id, ErrUnknownHandle)
	}

	entries := b.listeners[h.event]
	for i, e := range entries {
		if e.id != h.id {
			continue
		}
		// Copy so snapshots held by an in-flight Notify stay intact.
		remaining := make([]entry, 0, len(entries)-1)
		remaining = append(remaining, entries[:i]...)
		remaining = append(remaining, entries[i+1:]...)
		if len(remaining) == 0 {
			delete(b.listeners, h.event)
		} else {
			b.listeners[h.event] = remaining
		}
		return nil
	}
	return fmt.Errorf("remove listener %q/%d: %w", h.event, h.id, ErrUnknownHandle)
}

// Notify calls every tap, then every listener registered for event.
// A nested Notify of an event already being dispatched is queued and runs
// after that dispatch. Notify reports false only when the notification was
// dropped because the queue bound was reached.
func (b *Bus) Notify(event string, payload any) bool {
	if q, busy := b.dispatching[event]; busy {
		if q.accepted >= MaxRequeued {
			b.suppressed++
			return false
		}
		q.accepted++
		q.payloads = append(q.payloads, payload)
		return true
	}
	if b.dispatching == nil {
		b.dispatching = make(map[string]*pendingQueue)
	}
	q := &pendingQueue{}
	b.dispatching[event] = q
	defer delete(b.dispatching, event)

	b.deliver(event, payload)
	for len(q.payloads) > 0 {
		next := q.payloads[0]
		q.payloads = q.payloads[1:]
		b.deliver(event, next)
	}
	return true
}

func (b *Bus) deliver(event string, payload any) {
	taps := b.taps
	for _, t := range taps {
		t.fn(event, payload)
	}

	snapshot := b.listeners[event]
	for _, e := range snapshot {
		e.fn(payload)
	}
}

// ListenerCount returns the number of listeners registered for event.
func (b *Bus) ListenerCount(event string) int {
	return len(b.listeners[event])
}

// Suppressed returns how many nested notifications were dropped by the
// MaxRequeued bound.
func (b *Bus) Suppressed() uint64 {
	return b.suppressed
}
