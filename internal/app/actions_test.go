package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/quill/internal/history"
	"github.com/dshills/quill/internal/plugin"
)

func TestExecute_RecordsHistory(t *testing.T) {
	c := startApp(t, Options{})

	require.NoError(t, c.Execute(ActionNewWindow, "keymap"))
	require.NoError(t, c.Execute(ActionNewNotebook, ""))

	assert.Len(t, c.App.Windows(), 1)
	assert.Len(t, c.App.AllNotebooks(), 2)

	entries := c.History.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, ActionNewWindow, entries[0].Action)
	assert.Equal(t, "keymap", entries[0].Source)
	assert.Equal(t, unknownSource, entries[1].Source)
}

func TestExecute_UnknownAction(t *testing.T) {
	c := startApp(t, Options{})
	err := c.Execute("no.such.action", "test")
	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.Zero(t, c.History.Len())
}

func TestExecute_FailureNotRecorded(t *testing.T) {
	c := startApp(t, Options{})
	err := c.Execute(ActionCloseWindow, "test")
	assert.ErrorIs(t, err, ErrNoFocussedWindow)
	_, lastErr := c.History.Last()
	assert.ErrorIs(t, lastErr, history.ErrEmpty)
}

func TestExecute_CustomAction(t *testing.T) {
	c := startApp(t, Options{})
	boom := errors.New("boom")
	c.RegisterAction("custom.fail", func(*Context) error { return boom })
	ran := false
	c.RegisterAction("custom.ok", func(*Context) error { ran = true; return nil })

	assert.ErrorIs(t, c.Execute("custom.fail", "test"), boom)
	require.NoError(t, c.Execute("custom.ok", "test"))
	assert.True(t, ran)
	assert.Contains(t, c.Actions(), "custom.ok")
}

func TestCoreActions_TabsAndNotebooks(t *testing.T) {
	c := startApp(t, Options{})
	a := c.App
	require.NoError(t, c.Execute(ActionNewWindow, "test"))

	require.NoError(t, c.Execute(ActionNewTab, "test"))
	require.NotNil(t, a.FocussedTab())
	assert.Equal(t, defaultToolTabTitle, a.FocussedTab().Title())

	require.NoError(t, c.Execute(ActionCopyTabTitle, "test"))
	last, err := a.Clipboard().Last()
	require.NoError(t, err)
	assert.Equal(t, defaultToolTabTitle, last)

	require.NoError(t, c.Execute(ActionNewNotebook, "test"))
	first := a.FocussedNotebook()
	require.NoError(t, c.Execute(ActionNextNotebook, "test"))
	assert.NotSame(t, first, a.FocussedNotebook())
	require.NoError(t, c.Execute(ActionNextNotebook, "test"))
	assert.Same(t, first, a.FocussedNotebook())

	require.NoError(t, c.Execute(ActionCloseNotebook, "test"))
	assert.Len(t, a.AllNotebooks(), 1)
	assert.Len(t, a.AllTabs(), 1)

	require.NoError(t, c.Execute(ActionCloseTab, "test"))
	assert.Nil(t, a.FocussedTab())
	require.NoError(t, c.Execute(ActionCloseTab, "test"))
}

func TestCoreActions_QuitAndClose(t *testing.T) {
	pm := plugin.NewManager()
	require.NoError(t, pm.LoadAll(CorePlugin{}))
	c, h := startWithGUI(t, Options{Plugins: pm})

	require.NoError(t, c.Execute(ActionNewWindow, "test"))
	require.NoError(t, c.Execute(ActionRefreshMenu, "test"))
	assert.Equal(t, 2, h.Frames()[0].Refreshes)

	require.NoError(t, c.Execute(ActionCloseWindow, "test"))
	assert.Empty(t, c.App.Windows())
	assert.Equal(t, 1, h.StopCount())
	assert.True(t, h.Frames()[0].Closed)

	require.NoError(t, c.Execute(ActionQuit, "test"))
	assert.Equal(t, 2, h.StopCount())
}

func TestCorePlugin_ActionsAreRegistered(t *testing.T) {
	c := startApp(t, Options{})
	registered := c.Actions()
	for _, it := range (CorePlugin{}).Menus().Items() {
		assert.Contains(t, registered, it.Action, it.Key())
	}
	for _, km := range (CorePlugin{}).Keymaps() {
		for _, b := range km.Bindings() {
			assert.Contains(t, registered, b.Action, b.Chord)
		}
	}
}
