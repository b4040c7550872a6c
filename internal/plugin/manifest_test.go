package plugin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/quill/internal/keymap"
	"github.com/dshills/quill/internal/platform"
)

const projectManifest = `
name: project
description: Project tree
menus:
  - path: File > Open Directory
    action: project.open_directory
  - path: Project > Refresh
    action: project.refresh
    platforms: [linux, osx]
    sensitive: [open_tab]
keymaps:
  - name: main
    platforms: [linux, windows]
    bindings:
      Ctrl+Shift+O: project.open_directory
      C-r: project.refresh
      F5: project.refresh
sensitivities:
  - name: edit_tab_focussed
    default: false
    depends_on: [focussed_window, tab_focussed]
    lua: return ctx.edit_tab
`

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte(projectManifest))
	require.NoError(t, err)

	assert.Equal(t, "project", m.Name)
	require.Len(t, m.Menus, 2)
	assert.Equal(t, []string{"open_tab"}, m.Menus[1].Sensitive)

	require.Len(t, m.Keymaps, 1)
	assert.Equal(t, Bindings{
		{Chord: "Ctrl+Shift+O", Action: "project.open_directory"},
		{Chord: "C-r", Action: "project.refresh"},
		{Chord: "F5", Action: "project.refresh"},
	}, m.Keymaps[0].Bindings)

	require.Len(t, m.Sensitivities, 1)
	assert.Equal(t, []string{"focussed_window", "tab_focussed"}, m.Sensitivities[0].DependsOn)
}

func TestParseManifest_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no name", "menus: []"},
		{"bad name", "name: Project"},
		{"menu without action", "name: p\nmenus:\n  - path: File > Save\n"},
		{"menu without path", "name: p\nmenus:\n  - action: save\n"},
		{"keymap without name", "name: p\nkeymaps:\n  - bindings: {C-s: save}\n"},
		{"sensitivity without lua", "name: p\nsensitivities:\n  - name: s\n"},
		{"bindings not a mapping", "name: p\nkeymaps:\n  - name: main\n    bindings: [a, b]\n"},
		{"not yaml", "name: [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.src))
			assert.ErrorIs(t, err, ErrInvalidManifest)
		})
	}
}

func TestManifest_Descriptor(t *testing.T) {
	m, err := ParseManifest([]byte(projectManifest))
	require.NoError(t, err)

	d, err := m.Descriptor()
	require.NoError(t, err)

	l := resolve(d)
	assert.Equal(t, "project", l.Name())

	require.NotNil(t, l.Menus)
	item, ok := l.Menus.Lookup("Project", "Refresh")
	require.True(t, ok)
	assert.Equal(t, "project.refresh", item.Action)
	assert.Equal(t, []platform.Platform{platform.Linux, platform.MacOS}, item.Platforms)

	require.Len(t, l.Keymaps, 1)
	km := l.Keymaps[0]
	assert.Equal(t, keymap.MainName, km.Name)
	assert.Equal(t, "plugin:project", km.Source)
	action, ok := km.Action("Ctrl+R")
	require.True(t, ok)
	assert.Equal(t, "project.refresh", action)
	assert.Equal(t, []keymap.Binding{
		{Chord: "Ctrl+Shift+O", Action: "project.open_directory"},
		{Chord: "Ctrl+R", Action: "project.refresh"},
		{Chord: "F5", Action: "project.refresh"},
	}, km.Bindings())

	require.Len(t, l.Sensitivities, 1)
	assert.Equal(t, "edit_tab_focussed", l.Sensitivities[0].Name())
}

func TestManifest_DescriptorOmitsUndeclared(t *testing.T) {
	m, err := ParseManifest([]byte("name: keys\nkeymaps:\n  - name: main\n    bindings: {C-q: quit}\n"))
	require.NoError(t, err)
	d, err := m.Descriptor()
	require.NoError(t, err)

	l := resolve(d)
	assert.Nil(t, l.Menus)
	assert.Len(t, l.Keymaps, 1)
	assert.Nil(t, l.Sensitivities)
}

func TestManifest_DescriptorErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown platform", "name: p\nmenus:\n  - path: A > B\n    action: x\n    platforms: [beos]\n"},
		{"bad chord", "name: p\nkeymaps:\n  - name: main\n    bindings: {Hyper+x: x}\n"},
		{"lua syntax", "name: p\nsensitivities:\n  - name: s\n    lua: 'return ('\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseManifest([]byte(tt.src))
			require.NoError(t, err)
			_, err = m.Descriptor()
			assert.Error(t, err)
		})
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("20-b.yml", "name: second\n")
	write("10-a.yaml", "name: first\n")
	write("notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.yaml"), 0o755))

	ds, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, "first", ds[0].Name())
	assert.Equal(t, "second", ds[1].Name())
}

func TestLoadDir_Missing(t *testing.T) {
	ds, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, ds)
}

func TestLoadDir_InvalidManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("description: x\n"), 0o644))

	_, err := LoadDir(dir)
	assert.ErrorIs(t, err, ErrInvalidManifest)
}

func TestLoadManifest_RecordsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: p\n"), 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, path, m.Path())
}
