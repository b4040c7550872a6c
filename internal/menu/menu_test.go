package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/quill/internal/platform"
)

func item(path, action string) Item {
	return Item{Path: ParsePath(path), Action: action}
}

func TestParsePath(t *testing.T) {
	assert.Equal(t, []string{"File", "Save"}, ParsePath("File > Save"))
	assert.Equal(t, []string{"Edit"}, ParsePath(" Edit "))
	assert.Empty(t, ParsePath(" > "))
	assert.Equal(t, "File > Save", item("File>Save", "x").Key())
}

func TestTree_MergeLaterFragmentWins(t *testing.T) {
	first := NewTree(item("File > Save", "A"))
	second := NewTree(item("File > Save", "B"), item("File > Exit", "C"))

	tree := NewTree().Merge(first).Merge(second)

	assert.Equal(t, []Item{
		item("File > Save", "B"),
		item("File > Exit", "C"),
	}, tree.Items())
}

func TestTree_MergeKeepsSiblings(t *testing.T) {
	tree := NewTree(
		item("File > New", "new"),
		item("File > Save", "save"),
		item("Edit > Undo", "undo"),
	)
	tree.Merge(NewTree(item("File > Save", "save2")))

	got, ok := tree.Lookup("File", "New")
	require.True(t, ok)
	assert.Equal(t, "new", got.Action)

	got, ok = tree.Lookup("File", "Save")
	require.True(t, ok)
	assert.Equal(t, "save2", got.Action)

	assert.Equal(t, []string{"File", "Edit"}, tree.Children())
	assert.Equal(t, []string{"New", "Save"}, tree.Children("File"))
	assert.Equal(t, 3, tree.Len())
}

func TestTree_MergeAssociative(t *testing.T) {
	a := NewTree(item("File > Save", "a"), item("View > Zoom", "a"))
	b := NewTree(item("File > Save", "b"), item("File > Close", "b"))
	c := NewTree(item("View > Zoom", "c"))

	left := NewTree().Merge(a).Merge(b).Merge(c)
	right := NewTree().Merge(a).Merge(b.Clone().Merge(c))

	assert.Equal(t, left.Items(), right.Items())
}

func TestTree_MergeDoesNotAliasFragment(t *testing.T) {
	fragment := NewTree(item("File > Save", "A"))
	tree := NewTree().Merge(fragment)
	tree.Add(item("File > Save", "B"))

	got, _ := fragment.Lookup("File", "Save")
	assert.Equal(t, "A", got.Action)
}

func TestTree_LookupMissing(t *testing.T) {
	tree := NewTree(item("File > Save", "A"))

	_, ok := tree.Lookup("File")
	assert.False(t, ok, "an interior node is not an item")
	_, ok = tree.Lookup("Edit", "Undo")
	assert.False(t, ok)
	assert.Nil(t, tree.Children("Nope"))
}

func TestTree_AddIgnoresEmptyPath(t *testing.T) {
	tree := NewTree(Item{Action: "orphan"})
	assert.Zero(t, tree.Len())
}

func TestTree_ForPlatform(t *testing.T) {
	tree := NewTree(
		item("File > Save", "save"),
		Item{Path: ParsePath("App > Quit"), Action: "quit", Platforms: []platform.Platform{platform.MacOS}},
		Item{Path: ParsePath("File > Exit"), Action: "exit", Platforms: []platform.Platform{platform.Linux, platform.Windows}},
	)

	linux := tree.ForPlatform(platform.Linux)
	_, ok := linux.Lookup("App", "Quit")
	assert.False(t, ok)
	_, ok = linux.Lookup("File", "Exit")
	assert.True(t, ok)
	assert.Equal(t, 2, linux.Len())

	mac := tree.ForPlatform(platform.MacOS)
	assert.Equal(t, 2, mac.Len())
}

type fakeChecker map[string]bool

func (f fakeChecker) AllEnabled(names ...string) bool {
	for _, n := range names {
		if !f[n] {
			return false
		}
	}
	return true
}

func TestEnabled(t *testing.T) {
	checker := fakeChecker{"open_tab": true, "multiple_notebooks": false}

	assert.True(t, Enabled(item("File > New", "new"), checker))
	assert.True(t, Enabled(Item{Path: []string{"File", "Close"}, Sensitive: []string{"open_tab"}}, checker))
	assert.False(t, Enabled(Item{
		Path:      []string{"View", "Switch Notebook"},
		Sensitive: []string{"open_tab", "multiple_notebooks"},
	}, checker))
	assert.True(t, Enabled(Item{Sensitive: []string{"anything"}}, nil))
}
