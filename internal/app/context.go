package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/dshills/quill/internal/clipboard"
	"github.com/dshills/quill/internal/gui"
	"github.com/dshills/quill/internal/history"
	"github.com/dshills/quill/internal/platform"
	"github.com/dshills/quill/internal/plugin"
	"github.com/dshills/quill/internal/sensitivity"
)

// Options configures Start.
type Options struct {
	// Plugins supplies menus, keymaps and sensitivities. Nil means none.
	Plugins *plugin.Manager

	// Storage is the application settings namespace. Nil reads defaults.
	Storage Storage

	// Platform overrides the detected platform.
	Platform platform.Platform

	// Clipboard replaces the default application clipboard.
	Clipboard *clipboard.Clipboard

	// HistorySize bounds the command history.
	HistorySize int

	// Logger is the parent logger. Nil disables logging.
	Logger *zerolog.Logger
}

// Context carries the process-wide objects: the application, the command
// history and the GUI toolkit.
type Context struct {
	App     *Application
	History *history.History

	mu      sync.Mutex
	gui     gui.Toolkit
	actions map[string]Action
}

// Start creates the application and a fresh command history, and registers
// the built-in sensitivities followed by those of the loaded plugins.
func Start(opts Options) (*Context, error) {
	a := newApplication(opts)
	a.sensitivities.Register(sensitivity.Builtins()...)
	a.sensitivities.Register(a.LoadSensitivities()...)

	c := &Context{
		App:     a,
		History: history.New(opts.HistorySize),
		actions: make(map[string]Action),
	}
	registerCoreActions(c)

	a.logger.Info().
		Str("platform", a.platform.String()).
		Int("plugins", a.plugins.Len()).
		Int("sensitivities", a.sensitivities.Len()).
		Msg("application started")
	return c, nil
}

// SetGUI assigns the toolkit. It can be set only once.
func (c *Context) SetGUI(g gui.Toolkit) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gui != nil {
		return ErrGUIAlreadySet
	}
	c.gui = g
	c.App.toolkit = g
	return nil
}

// GUI returns the toolkit, or nil before SetGUI.
func (c *Context) GUI() gui.Toolkit {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gui
}
