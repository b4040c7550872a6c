// Package app is the root of the control core. An Application owns the
// windows, the focus pointer and the clipboard, aggregates plugin menus,
// keymaps and sensitivities, and relabels window events into the
// application-level events plugins subscribe to.
//
// Start builds the Application together with a command history and returns
// them in a Context, which is passed to everything that needs them.
package app

import (
	"github.com/rs/zerolog"

	"github.com/dshills/quill/internal/clipboard"
	"github.com/dshills/quill/internal/focus"
	"github.com/dshills/quill/internal/gui"
	"github.com/dshills/quill/internal/observable"
	"github.com/dshills/quill/internal/platform"
	"github.com/dshills/quill/internal/plugin"
	"github.com/dshills/quill/internal/sensitivity"
)

// Name is the application name used for window titles.
const Name = "Quill"

// Application events.
const (
	EventNewWindow                   = "new_window"
	EventFocussedWindow              = sensitivity.EventFocussedWindow
	EventNotebookChange              = sensitivity.EventNotebookChange
	EventFocussedNotebook            = sensitivity.EventFocussedNotebook
	EventTabClosed                   = sensitivity.EventTabClosed
	EventTabFocussed                 = sensitivity.EventTabFocussed
	EventFocussedTabChanged          = "focussed_tab_changed"
	EventFocussedTabSelectionChanged = "focussed_tab_selection_changed"
	EventWindowAboutToClose          = "window_about_to_close"
	EventClipboardAdded              = "clipboard_added"
)

// Events lists the public application events.
var Events = []string{
	EventNewWindow,
	EventFocussedWindow,
	EventNotebookChange,
	EventFocussedNotebook,
	EventTabClosed,
	EventTabFocussed,
	EventFocussedTabChanged,
	EventFocussedTabSelectionChanged,
	EventWindowAboutToClose,
	EventClipboardAdded,
}

// Settings used by the application.
const (
	StorageNamespace = "application_plugin"
	StayResidentKey  = "stay_resident_after_last_window_closed"
)

// Storage is the settings namespace the application reads.
type Storage interface {
	GetWithDefault(key, def string) string
}

// Application is the root aggregator. It is not safe for concurrent use;
// every call belongs on the event-loop goroutine.
type Application struct {
	observable.Bus

	windows  []*focus.Window
	focussed *focus.Window
	handlers map[*focus.Window][]observable.Handle

	clipboard     *clipboard.Clipboard
	clipHandle    observable.Handle
	sensitivities *sensitivity.Registry
	plugins       *plugin.Manager
	storage       Storage
	platform      platform.Platform
	toolkit       gui.Toolkit
	logger        zerolog.Logger
}

func newApplication(opts Options) *Application {
	a := &Application{
		handlers:  make(map[*focus.Window][]observable.Handle),
		clipboard: opts.Clipboard,
		plugins:   opts.Plugins,
		storage:   opts.Storage,
		platform:  opts.Platform,
		logger:    zerolog.Nop(),
	}
	if opts.Logger != nil {
		a.logger = opts.Logger.With().Str("component", "app").Logger()
	}
	if a.plugins == nil {
		a.plugins = plugin.NewManager()
	}
	if a.platform == "" {
		a.platform = platform.Current()
	}
	if a.clipboard == nil {
		a.clipboard = clipboard.New("application")
	}
	a.clipHandle = a.clipboard.AddListener(clipboard.EventAdded, func(any) {
		a.Notify(EventClipboardAdded, nil)
	})

	a.sensitivities = sensitivity.NewRegistry(a)
	a.Tap(func(event string, _ any) {
		if n := a.sensitivities.Invalidate(event); n > 0 {
			a.logger.Trace().Str("event", event).Int("invalidated", n).Msg("sensitivities invalidated")
		}
	})
	return a
}

// Windows returns the open windows in creation order.
func (a *Application) Windows() []*focus.Window {
	return append([]*focus.Window(nil), a.windows...)
}

// Clipboard returns the application clipboard.
func (a *Application) Clipboard() *clipboard.Clipboard { return a.clipboard }

// Storage returns the application settings namespace. It may be nil.
func (a *Application) Storage() Storage { return a.storage }

// Platform returns the platform menus and keymaps are built for.
func (a *Application) Platform() platform.Platform { return a.platform }

// Plugins returns the plugin manager.
func (a *Application) Plugins() *plugin.Manager { return a.plugins }

// Sensitivities returns the sensitivity registry.
func (a *Application) Sensitivities() *sensitivity.Registry { return a.sensitivities }

// Sensitivity returns the current value of the named sensitivity.
func (a *Application) Sensitivity(name string) (bool, error) {
	return a.sensitivities.Value(name)
}

// Quit stops the GUI event loop. Without a GUI it does nothing.
func (a *Application) Quit() {
	a.logger.Info().Msg("quit")
	if a.toolkit != nil {
		a.toolkit.Stop()
	}
}

// Destroy detaches every listener the application attached to its windows
// and its clipboard. Windows are left open.
func (a *Application) Destroy() {
	for _, w := range a.windows {
		a.detachWindow(w)
	}
	if !a.clipHandle.IsZero() {
		_ = a.clipboard.RemoveListener(a.clipHandle)
		a.clipHandle = observable.Handle{}
	}
}
