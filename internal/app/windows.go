package app

import (
	"github.com/dshills/quill/internal/focus"
	"github.com/dshills/quill/internal/observable"
)

// NewWindow creates a window, announces it, attaches the forwarding
// listeners, pushes the aggregated menu and keymap, shows it and gives it
// focus.
func (a *Application) NewWindow() *focus.Window {
	var w *focus.Window
	if a.toolkit != nil {
		w = focus.NewWindow(a.toolkit.NewFrame(Name))
	} else {
		w = focus.NewWindow(nil)
	}

	a.windows = append(a.windows, w)
	a.Notify(EventNewWindow, w)
	a.attachWindow(w)
	w.SetMenu(a.LoadMenu())
	w.SetKeymap(a.MainKeymap())
	w.RefreshMenu()
	w.Show()
	a.setFocussedWindow(w)

	a.logger.Debug().Str("window", w.ID()).Int("windows", len(a.windows)).Msg("window created")
	return w
}

// WindowClosed removes w from the application. It is called when w
// announces closed; user code closes windows with Window.Close.
//
// Focus falls back to the first remaining window. When the last window
// goes, the application quits unless the platform lets it stay resident
// and the stay-resident setting is "yes".
func (a *Application) WindowClosed(w *focus.Window) error {
	i := a.indexOf(w)
	if i < 0 {
		return NewOperationError("window_closed", windowID(w), ErrUnknownWindow)
	}
	a.windows = append(a.windows[:i:i], a.windows[i+1:]...)

	if a.focussed == w {
		var next *focus.Window
		if len(a.windows) > 0 {
			next = a.windows[0]
		}
		a.setFocussedWindow(next)
	}
	a.detachWindow(w)

	a.logger.Debug().Str("window", w.ID()).Int("windows", len(a.windows)).Msg("window closed")
	if len(a.windows) == 0 {
		a.lastWindowClosed()
	}
	return nil
}

func (a *Application) lastWindowClosed() {
	if a.platform.StaysResidentCapable() && a.stayResident() {
		a.logger.Info().Msg("staying resident")
		return
	}
	a.Quit()
}

func (a *Application) stayResident() bool {
	if a.storage == nil {
		return false
	}
	return a.storage.GetWithDefault(StayResidentKey, "no") == "yes"
}

// FocussedWindow returns the focussed window, or nil.
func (a *Application) FocussedWindow() *focus.Window { return a.focussed }

// SetFocussedWindow gives focus to w and announces focussed_window. A nil
// w clears the focus.
func (a *Application) SetFocussedWindow(w *focus.Window) error {
	if w != nil && a.indexOf(w) < 0 {
		return NewOperationError("set_focussed_window", windowID(w), ErrUnknownWindow)
	}
	a.setFocussedWindow(w)
	return nil
}

func (a *Application) setFocussedWindow(w *focus.Window) {
	a.focussed = w
	a.Notify(EventFocussedWindow, w)
}

func (a *Application) indexOf(w *focus.Window) int {
	if w == nil {
		return -1
	}
	for i, c := range a.windows {
		if c == w {
			return i
		}
	}
	return -1
}

// attachWindow relabels the ten window events as application events.
func (a *Application) attachWindow(w *focus.Window) {
	a.handlers[w] = []observable.Handle{
		w.AddListener(focus.WindowTabFocussed, func(tab any) {
			a.Notify(EventTabFocussed, tab)
		}),
		w.AddListener(focus.WindowClosed, func(any) {
			if err := a.WindowClosed(w); err != nil {
				a.logger.Warn().Err(err).Msg("closed window was not registered")
			}
		}),
		w.AddListener(focus.WindowFocussed, func(any) {
			if err := a.SetFocussedWindow(w); err != nil {
				a.logger.Warn().Err(err).Msg("focus on unregistered window")
			}
		}),
		w.AddListener(focus.WindowNewNotebook, func(any) {
			a.Notify(EventNotebookChange, nil)
		}),
		w.AddListener(focus.WindowNotebookRemoved, func(any) {
			a.Notify(EventNotebookChange, nil)
		}),
		w.AddListener(focus.WindowNotebookFocussed, func(any) {
			a.Notify(EventFocussedNotebook, nil)
		}),
		w.AddListener(focus.WindowTabClosed, func(any) {
			a.Notify(EventTabClosed, nil)
		}),
		w.AddListener(focus.WindowFocussedTabChanged, func(tab any) {
			if w == a.focussed {
				a.Notify(EventFocussedTabChanged, tab)
			}
		}),
		w.AddListener(focus.WindowFocussedTabSelectionChanged, func(tab any) {
			if w == a.focussed {
				a.Notify(EventFocussedTabSelectionChanged, tab)
			}
		}),
		w.AddListener(focus.WindowAboutToClose, func(any) {
			a.Notify(EventWindowAboutToClose, w)
		}),
	}
}

func (a *Application) detachWindow(w *focus.Window) {
	for _, h := range a.handlers[w] {
		_ = w.RemoveListener(h)
	}
	delete(a.handlers, w)
}

// handleCount returns the number of listeners attached to w.
func (a *Application) handleCount(w *focus.Window) int {
	return len(a.handlers[w])
}

func windowID(w *focus.Window) string {
	if w == nil {
		return "<nil>"
	}
	return w.ID()
}
