package keymap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/quill/internal/platform"
)

func TestNormalizeChord(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ctrl+S", "Ctrl+S"},
		{"ctrl+s", "Ctrl+S"},
		{"C-s", "Ctrl+S"},
		{"<C-s>", "Ctrl+S"},
		{"Shift+Ctrl+p", "Ctrl+Shift+P"},
		{"<D-S-p>", "Shift+Meta+P"},
		{"Cmd+Q", "Meta+Q"},
		{"esc", "Escape"},
		{"<CR>", "Enter"},
		{"f5", "F5"},
		{"Alt+F12", "Alt+F12"},
		{"Ctrl++", "Ctrl++"},
		{"Ctrl+K Ctrl+C", "Ctrl+K Ctrl+C"},
		{"a", "a"},
		{"A", "A"},
		{"Shift+a", "A"},
		{"Alt+k", "Alt+K"},
		{"C-r", "Ctrl+R"},
		{"C-S-p", "Ctrl+Shift+P"},
		{"M-x", "Meta+X"},
		{"-", "-"},
		{"Minus", "Minus"},
		{"C--", "Ctrl+-"},
		{"Ctrl+-", "Ctrl+-"},
		{"Ctrl+X k", "Ctrl+X k"},
		{"Ctrl+X K", "Ctrl+X K"},
	}

	for _, tt := range tests {
		got, err := NormalizeChord(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNormalizeChord_Idempotent(t *testing.T) {
	for _, in := range []string{"C-s", "<D-S-p>", "k", "Shift+k", "C--", "Ctrl++", "g g"} {
		once, err := NormalizeChord(in)
		require.NoError(t, err, in)
		twice, err := NormalizeChord(once)
		require.NoError(t, err, once)
		assert.Equal(t, once, twice, in)
	}
}

func TestKeymap_BareLettersKeepCase(t *testing.T) {
	km := New(MainName).
		MustBind("Ctrl+X k", "window.close").
		MustBind("Ctrl+X K", "window.close_all")

	assert.Equal(t, 2, km.Len())
	action, ok := km.Action("C-x k")
	require.True(t, ok)
	assert.Equal(t, "window.close", action)
	action, ok = km.Action("Ctrl+X Shift+k")
	require.True(t, ok)
	assert.Equal(t, "window.close_all", action)
}

func TestNormalizeChord_Invalid(t *testing.T) {
	tests := []string{"Hyper+S", "Ctrl+", "Ctrl+Banana", "F99", "<X-a>", "X-a", "Ctrl-Banana"}

	for _, in := range tests {
		_, err := NormalizeChord(in)
		assert.True(t, errors.Is(err, ErrInvalidChord), "%q: %v", in, err)
	}

	_, err := NormalizeChord("   ")
	assert.True(t, errors.Is(err, ErrEmptyChord))
}

func TestKeymap_BindAndAction(t *testing.T) {
	km := New(MainName, platform.Linux)
	require.NoError(t, km.Bind("Ctrl+S", "file.save"))
	require.NoError(t, km.Bind("Ctrl+O", "file.open"))
	require.NoError(t, km.Bind("C-s", "file.save_all"))

	action, ok := km.Action("ctrl+s")
	require.True(t, ok)
	assert.Equal(t, "file.save_all", action)
	assert.Equal(t, 2, km.Len())

	assert.Equal(t, []Binding{
		{Chord: "Ctrl+S", Action: "file.save_all"},
		{Chord: "Ctrl+O", Action: "file.open"},
	}, km.Bindings())

	_, ok = km.Action("Ctrl+Q")
	assert.False(t, ok)
}

func TestKeymap_BindRejectsEmptyAction(t *testing.T) {
	km := New(MainName)
	err := km.Bind("Ctrl+S", "")
	assert.True(t, errors.Is(err, ErrInvalidChord))
}

func TestKeymap_MergeLaterWins(t *testing.T) {
	a := New(MainName, platform.Linux).MustBind("Ctrl+S", "a.save").MustBind("Ctrl+O", "a.open")
	b := New(MainName, platform.Linux).MustBind("Ctrl+S", "b.save")

	merged := a.Merge(b)

	action, _ := merged.Action("Ctrl+S")
	assert.Equal(t, "b.save", action)
	action, _ = merged.Action("Ctrl+O")
	assert.Equal(t, "a.open", action)

	// Inputs are untouched.
	action, _ = a.Action("Ctrl+S")
	assert.Equal(t, "a.save", action)
}

func TestKeymap_MergeAssociative(t *testing.T) {
	a := New(MainName).MustBind("Ctrl+A", "a").MustBind("Ctrl+B", "a")
	b := New(MainName).MustBind("Ctrl+B", "b").MustBind("Ctrl+C", "b")
	c := New(MainName).MustBind("Ctrl+C", "c")

	left := a.Merge(b).Merge(c)
	right := a.Merge(b.Merge(c))

	assert.Equal(t, left.Bindings(), right.Bindings())
}

func TestBuild_PlatformFiltered(t *testing.T) {
	linux := New(MainName, platform.Linux, platform.Windows).MustBind("Ctrl+S", "linux.save")
	later := New(MainName, platform.Linux).MustBind("Ctrl+S", "later.save")
	mac := New(MainName, platform.MacOS).MustBind("Ctrl+S", "mac.save").MustBind("Cmd+Q", "quit")
	other := New("edit_view", platform.Linux).MustBind("Ctrl+S", "edit.save")

	km := Build(MainName, platform.Linux, linux, nil, later, mac, other)

	action, ok := km.Action("Ctrl+S")
	require.True(t, ok)
	assert.Equal(t, "later.save", action)
	_, ok = km.Action("Cmd+Q")
	assert.False(t, ok, "a keymap for another platform contributes nothing")
	assert.Equal(t, MainName, km.Name)
	assert.Equal(t, []platform.Platform{platform.Linux}, km.Platforms)
}

func TestBuild_NoContributions(t *testing.T) {
	km := Build(MainName, platform.MacOS)
	assert.Zero(t, km.Len())
}
