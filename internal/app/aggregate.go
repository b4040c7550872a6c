package app

import (
	"github.com/dshills/quill/internal/keymap"
	"github.com/dshills/quill/internal/menu"
	"github.com/dshills/quill/internal/sensitivity"
)

// LoadMenu builds a fresh menu tree by merging the menus of every loaded
// plugin in load order. Each fragment is filtered to the platform before it
// is merged, so an item for another platform never replaces one that
// applies here.
func (a *Application) LoadMenu() *menu.Tree {
	tree := menu.NewTree()
	for _, l := range a.plugins.Loaded() {
		if l.Menus != nil {
			tree.Merge(l.Menus.ForPlatform(a.platform))
		}
	}
	return tree
}

// MainKeymap builds the "main" keymap for the platform from every loaded
// plugin's keymaps, later plugins overriding earlier bindings.
func (a *Application) MainKeymap() *keymap.Keymap {
	var maps []*keymap.Keymap
	for _, l := range a.plugins.Loaded() {
		maps = append(maps, l.Keymaps...)
	}
	return keymap.Build(keymap.MainName, a.platform, maps...)
}

// RefreshMenu pushes a freshly built menu and keymap to every window.
func (a *Application) RefreshMenu() {
	for _, w := range a.windows {
		w.SetMenu(a.LoadMenu())
		w.SetKeymap(a.MainKeymap())
		w.RefreshMenu()
	}
}

// LoadSensitivities returns the sensitivities contributed by the loaded
// plugins, in load order.
func (a *Application) LoadSensitivities() []*sensitivity.Sensitivity {
	var out []*sensitivity.Sensitivity
	for _, l := range a.plugins.Loaded() {
		out = append(out, l.Sensitivities...)
	}
	return out
}

// ItemEnabled reports whether every sensitivity item names holds.
func (a *Application) ItemEnabled(item menu.Item) bool {
	return menu.Enabled(item, a.sensitivities)
}
