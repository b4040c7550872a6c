package gui

import (
	"sync"

	"github.com/dshills/quill/internal/keymap"
	"github.com/dshills/quill/internal/menu"
)

// Headless is a Toolkit that draws nothing and records what it was asked
// to do.
type Headless struct {
	mu      sync.Mutex
	frames  []*HeadlessFrame
	stopped int
}

// NewHeadless creates a headless toolkit.
func NewHeadless() *Headless {
	return &Headless{}
}

// NewFrame implements Toolkit.
func (h *Headless) NewFrame(title string) Frame {
	h.mu.Lock()
	defer h.mu.Unlock()
	f := &HeadlessFrame{Title: title}
	h.frames = append(h.frames, f)
	return f
}

// Stop implements Toolkit.
func (h *Headless) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopped++
}

// StopCount returns how many times Stop was called.
func (h *Headless) StopCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopped
}

// Frames returns every frame created so far.
func (h *Headless) Frames() []*HeadlessFrame {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*HeadlessFrame(nil), h.frames...)
}

// HeadlessFrame records the state pushed to one frame.
type HeadlessFrame struct {
	Title     string
	Visible   bool
	Closed    bool
	Menu      *menu.Tree
	Keymap    *keymap.Keymap
	Refreshes int
}

// Show implements Frame.
func (f *HeadlessFrame) Show() { f.Visible = true }

// Close implements Frame.
func (f *HeadlessFrame) Close() {
	f.Visible = false
	f.Closed = true
}

// SetMenu implements Frame.
func (f *HeadlessFrame) SetMenu(tree *menu.Tree) { f.Menu = tree }

// SetKeymap implements Frame.
func (f *HeadlessFrame) SetKeymap(km *keymap.Keymap) { f.Keymap = km }

// RefreshMenu implements Frame.
func (f *HeadlessFrame) RefreshMenu() { f.Refreshes++ }
