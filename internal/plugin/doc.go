// Package plugin holds the loaded plugins and what they contribute to the
// application: menu fragments, keymaps and sensitivities.
//
// A plugin is any Descriptor. What it contributes is expressed by optional
// capability interfaces:
//
//	MenuContributor         Menus() *menu.Tree
//	KeymapContributor       Keymaps() []*keymap.Keymap
//	SensitivityContributor  Sensitivities() []*sensitivity.Sensitivity
//
// The Manager resolves these capabilities once, when the plugin is loaded,
// into a Loaded record. Aggregation code iterates Loaded records in load
// order and skips what a plugin did not contribute.
//
// # Manifests
//
// Declarative plugins are YAML files:
//
//	name: project
//	menus:
//	  - path: File > Open Directory
//	    action: project.open_directory
//	  - path: Project > Refresh
//	    action: project.refresh
//	    sensitive: [open_tab]
//	keymaps:
//	  - name: main
//	    platforms: [linux, windows]
//	    bindings:
//	      Ctrl+Shift+O: project.open_directory
//	sensitivities:
//	  - name: edit_tab_focussed
//	    default: false
//	    depends_on: [focussed_window, tab_focussed]
//	    lua: return ctx.edit_tab
//
// LoadDir loads every manifest of a directory in file name order.
package plugin
