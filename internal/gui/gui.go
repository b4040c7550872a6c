// Package gui defines the narrow surface the control core needs from a GUI
// toolkit, and two toolkits implementing it: Headless, which records calls
// and is used by tests and scripted sessions, and Terminal, which runs a
// tcell screen.
package gui

import (
	"github.com/dshills/quill/internal/keymap"
	"github.com/dshills/quill/internal/menu"
)

// Frame is the toolkit side of one editor window.
type Frame interface {
	// Show makes the frame visible.
	Show()

	// Close destroys the frame.
	Close()

	// SetMenu attaches a menu tree. It is displayed on RefreshMenu.
	SetMenu(tree *menu.Tree)

	// SetKeymap attaches the keymap used to translate key chords.
	SetKeymap(km *keymap.Keymap)

	// RefreshMenu redraws the attached menu.
	RefreshMenu()
}

// Toolkit creates frames and owns the event loop.
type Toolkit interface {
	// NewFrame creates a hidden frame.
	NewFrame(title string) Frame

	// Stop halts the event loop immediately.
	Stop()
}
