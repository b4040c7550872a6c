package focus

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/quill/internal/gui"
	"github.com/dshills/quill/internal/keymap"
	"github.com/dshills/quill/internal/menu"
	"github.com/dshills/quill/internal/observable"
)

// Window events. These are the ten events an application listens to.
const (
	WindowTabFocussed                 = "tab_focussed"
	WindowClosed                      = "closed"
	WindowFocussed                    = "focussed"
	WindowNewNotebook                 = "new_notebook"
	WindowNotebookRemoved             = "notebook_removed"
	WindowNotebookFocussed            = "notebook_focussed"
	WindowTabClosed                   = "tab_closed"
	WindowFocussedTabChanged          = "focussed_tab_changed"
	WindowFocussedTabSelectionChanged = "focussed_tab_selection_changed"
	WindowAboutToClose                = "about_to_close"
)

// WindowEvents lists the window events in the order applications attach to
// them.
var WindowEvents = []string{
	WindowTabFocussed,
	WindowClosed,
	WindowFocussed,
	WindowNewNotebook,
	WindowNotebookRemoved,
	WindowNotebookFocussed,
	WindowTabClosed,
	WindowFocussedTabChanged,
	WindowFocussedTabSelectionChanged,
	WindowAboutToClose,
}

// Window owns one or more notebooks and tracks the focussed one.
type Window struct {
	observable.Bus

	id        string
	notebooks []*Notebook
	focussed  *Notebook
	handles   map[*Notebook][]observable.Handle

	frame  gui.Frame
	menu   *menu.Tree
	keymap *keymap.Keymap
	closed bool
}

// NewWindow creates a window with a single focussed notebook. frame may be
// nil when no toolkit is attached.
func NewWindow(frame gui.Frame) *Window {
	w := &Window{
		id:      uuid.NewString(),
		frame:   frame,
		handles: make(map[*Notebook][]observable.Handle),
	}
	nb := NewNotebook()
	w.attach(nb)
	w.focussed = nb
	return w
}

// ID returns the window identity.
func (w *Window) ID() string { return w.id }

// Notebooks returns a copy of the notebook list.
func (w *Window) Notebooks() []*Notebook {
	return append([]*Notebook(nil), w.notebooks...)
}

// FocussedNotebook returns the focussed notebook, or nil.
func (w *Window) FocussedNotebook() *Notebook {
	if w == nil {
		return nil
	}
	return w.focussed
}

// NonFocussedNotebook returns the first notebook that does not have focus,
// or nil when the window has a single notebook.
func (w *Window) NonFocussedNotebook() *Notebook {
	for _, nb := range w.notebooks {
		if nb != w.focussed {
			return nb
		}
	}
	return nil
}

// IsClosed reports whether Close was called.
func (w *Window) IsClosed() bool { return w.closed }

// NewNotebook adds a notebook to the window.
func (w *Window) NewNotebook() *Notebook {
	nb := NewNotebook()
	w.attach(nb)
	w.Notify(WindowNewNotebook, nb)
	if w.focussed == nil {
		w.setFocussedNotebook(nb)
	}
	return nb
}

// RemoveNotebook removes nb. Its tabs move to the first remaining notebook
// and, if nb had focus, that notebook receives it.
func (w *Window) RemoveNotebook(nb *Notebook) error {
	i := w.indexOf(nb)
	if i < 0 {
		return fmt.Errorf("remove notebook: %w", ErrUnknownNotebook)
	}
	if len(w.notebooks) == 1 {
		return ErrLastNotebook
	}

	w.detach(nb)
	w.notebooks = append(w.notebooks[:i:i], w.notebooks[i+1:]...)
	target := w.notebooks[0]

	refocus := w.focussed == nb
	if refocus {
		w.focussed = target
	}

	for _, tab := range nb.take() {
		_ = target.AddTab(tab)
	}

	w.Notify(WindowNotebookRemoved, nb)
	if refocus {
		w.Notify(WindowNotebookFocussed, target)
		w.Notify(WindowFocussedTabChanged, target.FocussedTab())
	}
	return nil
}

// FocusNotebook gives focus to nb.
func (w *Window) FocusNotebook(nb *Notebook) error {
	if w.indexOf(nb) < 0 {
		return fmt.Errorf("focus notebook: %w", ErrUnknownNotebook)
	}
	w.setFocussedNotebook(nb)
	return nil
}

func (w *Window) setFocussedNotebook(nb *Notebook) {
	w.focussed = nb
	w.Notify(WindowNotebookFocussed, nb)
	w.Notify(WindowFocussedTabChanged, nb.FocussedTab())
}

// Focus announces that the window became the active one.
func (w *Window) Focus() {
	w.Notify(WindowFocussed, w)
}

// Show shows the window frame.
func (w *Window) Show() {
	if w.frame != nil {
		w.frame.Show()
	}
}

// Close closes the window: about_to_close is announced, the frame is
// destroyed, then closed is announced. Closing twice does nothing.
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.Notify(WindowAboutToClose, w)
	for _, nb := range w.notebooks {
		w.detach(nb)
	}
	if w.frame != nil {
		w.frame.Close()
	}
	w.closed = true
	w.Notify(WindowClosed, w)
}

// Menu returns the attached menu tree.
func (w *Window) Menu() *menu.Tree { return w.menu }

// SetMenu attaches a menu tree.
func (w *Window) SetMenu(tree *menu.Tree) {
	w.menu = tree
	if w.frame != nil {
		w.frame.SetMenu(tree)
	}
}

// Keymap returns the attached keymap.
func (w *Window) Keymap() *keymap.Keymap { return w.keymap }

// SetKeymap attaches a keymap.
func (w *Window) SetKeymap(km *keymap.Keymap) {
	w.keymap = km
	if w.frame != nil {
		w.frame.SetKeymap(km)
	}
}

// RefreshMenu asks the frame to redraw its menu.
func (w *Window) RefreshMenu() {
	if w.frame != nil {
		w.frame.RefreshMenu()
	}
}

func (w *Window) indexOf(nb *Notebook) int {
	for i, n := range w.notebooks {
		if n == nb {
			return i
		}
	}
	return -1
}

// attach appends nb and forwards its events as window events.
func (w *Window) attach(nb *Notebook) {
	w.notebooks = append(w.notebooks, nb)
	w.handles[nb] = []observable.Handle{
		nb.AddListener(NotebookTabFocussed, func(p any) {
			w.Notify(WindowTabFocussed, p)
			if nb == w.focussed {
				w.Notify(WindowFocussedTabChanged, p)
			}
		}),
		nb.AddListener(NotebookTabClosed, func(p any) {
			w.Notify(WindowTabClosed, p)
		}),
		nb.AddListener(NotebookSelectionChanged, func(p any) {
			if nb == w.focussed && p == any(nb.FocussedTab()) {
				w.Notify(WindowFocussedTabSelectionChanged, p)
			}
		}),
	}
}

func (w *Window) detach(nb *Notebook) {
	for _, h := range w.handles[nb] {
		_ = nb.RemoveListener(h)
	}
	delete(w.handles, nb)
}
