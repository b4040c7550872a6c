// Package keymap holds chord-to-action bindings contributed by plugins.
//
// A Keymap is named and declares the platforms it applies to. The window
// keymap is built by folding every plugin keymap called "main" that applies
// to the current platform, in plugin load order:
//
//	km := keymap.Build(keymap.MainName, platform.Linux, pluginMaps...)
//	action, ok := km.Action("Ctrl+S")
//
// Later keymaps override earlier bindings for the same chord. Chords are
// compared in canonical form (see NormalizeChord), so "C-s", "<C-s>" and
// "ctrl+s" are one key.
package keymap
