package focus

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/quill/internal/observable"
)

// Notebook events.
const (
	NotebookTabAdded         = "tab_added"
	NotebookTabFocussed      = "tab_focussed"
	NotebookTabClosed        = "tab_closed"
	NotebookSelectionChanged = "selection_changed"
)

// Notebook owns an ordered list of tabs and tracks the focussed one.
type Notebook struct {
	observable.Bus

	id       string
	tabs     []Tab
	focussed Tab
}

// NewNotebook creates an empty notebook.
func NewNotebook() *Notebook {
	return &Notebook{id: uuid.NewString()}
}

// ID returns the notebook identity.
func (n *Notebook) ID() string { return n.id }

// Tabs returns a copy of the tab list.
func (n *Notebook) Tabs() []Tab {
	return append([]Tab(nil), n.tabs...)
}

// Len returns the number of tabs.
func (n *Notebook) Len() int { return len(n.tabs) }

// FocussedTab returns the focussed tab, or nil.
func (n *Notebook) FocussedTab() Tab { return n.focussed }

// Contains reports whether tab belongs to the notebook.
func (n *Notebook) Contains(tab Tab) bool {
	return n.indexOf(tab) >= 0
}

func (n *Notebook) indexOf(tab Tab) int {
	for i, t := range n.tabs {
		if t == tab {
			return i
		}
	}
	return -1
}

// AddTab appends tab. The first tab of an empty notebook gets focus.
func (n *Notebook) AddTab(tab Tab) error {
	if tab == nil {
		return ErrNilTab
	}
	if n.Contains(tab) {
		return nil
	}
	n.tabs = append(n.tabs, tab)
	n.Notify(NotebookTabAdded, tab)
	if n.focussed == nil {
		n.focussed = tab
		n.Notify(NotebookTabFocussed, tab)
	}
	return nil
}

// FocusTab gives focus to tab.
func (n *Notebook) FocusTab(tab Tab) error {
	if !n.Contains(tab) {
		return fmt.Errorf("focus tab: %w", ErrUnknownTab)
	}
	n.focussed = tab
	n.Notify(NotebookTabFocussed, tab)
	return nil
}

// CloseTab removes tab. When tab was focussed, focus moves to the tab that
// now occupies its index, else to the previous tab, else to none; the new
// focus is announced with tab_focussed, with a nil payload when no tab is
// left.
func (n *Notebook) CloseTab(tab Tab) error {
	i := n.indexOf(tab)
	if i < 0 {
		return fmt.Errorf("close tab: %w", ErrUnknownTab)
	}
	n.tabs = append(n.tabs[:i:i], n.tabs[i+1:]...)

	var next Tab
	wasFocussed := n.focussed == tab
	if wasFocussed {
		switch {
		case i < len(n.tabs):
			next = n.tabs[i]
		case len(n.tabs) > 0:
			next = n.tabs[len(n.tabs)-1]
		}
		n.focussed = next
	}

	n.Notify(NotebookTabClosed, tab)
	// A tab_closed listener may have moved the focus and announced it.
	if wasFocussed && n.focussed == next {
		n.Notify(NotebookTabFocussed, next)
	}
	return nil
}

// SelectionChanged is called by the editing engine when the selection of
// tab changed.
func (n *Notebook) SelectionChanged(tab Tab) error {
	if !n.Contains(tab) {
		return fmt.Errorf("selection changed: %w", ErrUnknownTab)
	}
	n.Notify(NotebookSelectionChanged, tab)
	return nil
}

// take removes every tab from n without notifying, for moving them into
// another notebook.
func (n *Notebook) take() []Tab {
	tabs := n.tabs
	n.tabs = nil
	n.focussed = nil
	return tabs
}
