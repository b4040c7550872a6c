package app

import (
	"fmt"
	"sort"

	"github.com/dshills/quill/internal/focus"
	"github.com/dshills/quill/internal/keymap"
	"github.com/dshills/quill/internal/menu"
	"github.com/dshills/quill/internal/sensitivity"
)

// Action runs a named command against the context.
type Action func(c *Context) error

// Core action names.
const (
	ActionQuit          = "application.quit"
	ActionNewWindow     = "window.new"
	ActionCloseWindow   = "window.close"
	ActionNewNotebook   = "notebook.new"
	ActionCloseNotebook = "notebook.close"
	ActionNextNotebook  = "notebook.focus_next"
	ActionNewTab        = "tab.new"
	ActionCloseTab      = "tab.close"
	ActionCopyTabTitle  = "clipboard.copy_tab_title"
	ActionRefreshMenu   = "menu.refresh"
)

const (
	defaultToolTabTitle = "untitled"
	unknownSource       = "unknown"
)

// RegisterAction binds name to fn, replacing any earlier binding.
func (c *Context) RegisterAction(name string, fn Action) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.actions[name] = fn
}

// Actions returns the registered action names, sorted.
func (c *Context) Actions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.actions))
	for n := range c.actions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Execute runs the named action and records it in the history when it
// succeeds. source says where the action came from, e.g. "keymap".
func (c *Context) Execute(name, source string) error {
	c.mu.Lock()
	fn, ok := c.actions[name]
	c.mu.Unlock()
	if !ok {
		return NewOperationError("execute", name, ErrUnknownAction)
	}
	if source == "" {
		source = unknownSource
	}
	if err := fn(c); err != nil {
		c.App.logger.Warn().Err(err).Str("action", name).Str("source", source).Msg("action failed")
		return NewOperationError("execute", name, err)
	}
	c.History.Record(name, source)
	return nil
}

func focussedWindow(c *Context) (*focus.Window, error) {
	w := c.App.FocussedWindow()
	if w == nil {
		return nil, ErrNoFocussedWindow
	}
	return w, nil
}

func registerCoreActions(c *Context) {
	c.RegisterAction(ActionQuit, func(c *Context) error {
		c.App.Quit()
		return nil
	})
	c.RegisterAction(ActionNewWindow, func(c *Context) error {
		c.App.NewWindow()
		return nil
	})
	c.RegisterAction(ActionCloseWindow, func(c *Context) error {
		w, err := focussedWindow(c)
		if err != nil {
			return err
		}
		w.Close()
		return nil
	})
	c.RegisterAction(ActionNewNotebook, func(c *Context) error {
		w, err := focussedWindow(c)
		if err != nil {
			return err
		}
		w.NewNotebook()
		return nil
	})
	c.RegisterAction(ActionCloseNotebook, func(c *Context) error {
		w, err := focussedWindow(c)
		if err != nil {
			return err
		}
		return w.RemoveNotebook(w.FocussedNotebook())
	})
	c.RegisterAction(ActionNextNotebook, func(c *Context) error {
		w, err := focussedWindow(c)
		if err != nil {
			return err
		}
		nbs := w.Notebooks()
		for i, nb := range nbs {
			if nb == w.FocussedNotebook() {
				return w.FocusNotebook(nbs[(i+1)%len(nbs)])
			}
		}
		return nil
	})
	c.RegisterAction(ActionNewTab, func(c *Context) error {
		nb := c.App.FocussedNotebook()
		if nb == nil {
			return ErrNoFocussedWindow
		}
		return nb.AddTab(focus.NewToolTab(defaultToolTabTitle))
	})
	c.RegisterAction(ActionCloseTab, func(c *Context) error {
		nb := c.App.FocussedNotebook()
		tab := c.App.FocussedTab()
		if nb == nil || tab == nil {
			return nil
		}
		return nb.CloseTab(tab)
	})
	c.RegisterAction(ActionCopyTabTitle, func(c *Context) error {
		tab := c.App.FocussedTab()
		if tab == nil {
			return nil
		}
		if err := c.App.Clipboard().Add(tab.Title()); err != nil {
			return fmt.Errorf("copy tab title: %w", err)
		}
		return nil
	})
	c.RegisterAction(ActionRefreshMenu, func(c *Context) error {
		c.App.RefreshMenu()
		return nil
	})
}

// CorePlugin contributes the menu and keymap of the core actions. Load it
// first so other plugins can override its items and bindings.
type CorePlugin struct{}

// Name implements plugin.Descriptor.
func (CorePlugin) Name() string { return "core" }

// Menus implements plugin.MenuContributor.
func (CorePlugin) Menus() *menu.Tree {
	return menu.NewTree(
		menu.Item{Path: []string{"File", "New Window"}, Action: ActionNewWindow},
		menu.Item{Path: []string{"File", "New Tab"}, Action: ActionNewTab},
		menu.Item{Path: []string{"File", "Close Tab"}, Action: ActionCloseTab,
			Sensitive: []string{sensitivity.OpenTab}},
		menu.Item{Path: []string{"File", "Close Window"}, Action: ActionCloseWindow},
		menu.Item{Path: []string{"File", "Quit"}, Action: ActionQuit},
		menu.Item{Path: []string{"Edit", "Copy Tab Title"}, Action: ActionCopyTabTitle,
			Sensitive: []string{sensitivity.OpenTab}},
		menu.Item{Path: []string{"View", "New Notebook"}, Action: ActionNewNotebook},
		menu.Item{Path: []string{"View", "Close Notebook"}, Action: ActionCloseNotebook,
			Sensitive: []string{sensitivity.MultipleNotebooks}},
		menu.Item{Path: []string{"View", "Next Notebook"}, Action: ActionNextNotebook,
			Sensitive: []string{sensitivity.MultipleNotebooks}},
	)
}

// Keymaps implements plugin.KeymapContributor.
func (CorePlugin) Keymaps() []*keymap.Keymap {
	km := keymap.New(keymap.MainName)
	km.Source = "plugin:core"
	km.MustBind("Ctrl+Q", ActionQuit).
		MustBind("Ctrl+N", ActionNewWindow).
		MustBind("Ctrl+T", ActionNewTab).
		MustBind("Ctrl+W", ActionCloseTab).
		MustBind("Ctrl+X k", ActionCloseWindow).
		MustBind("Ctrl+X 2", ActionNewNotebook).
		MustBind("Ctrl+X 0", ActionCloseNotebook).
		MustBind("Ctrl+X o", ActionNextNotebook).
		MustBind("Alt+W", ActionCopyTabTitle).
		MustBind("F5", ActionRefreshMenu)
	return []*keymap.Keymap{km}
}
