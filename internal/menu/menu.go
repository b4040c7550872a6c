// Package menu builds the application menu tree from plugin fragments.
//
// A Tree is an ordered tree of labelled nodes. Leaves carry an Item with the
// action to run. Fragments are merged path by path: a later fragment replaces
// the item at a leaf path it also declares and leaves every other path alone.
//
//	tree := menu.NewTree()
//	tree.Merge(pluginA.Menus())
//	tree.Merge(pluginB.Menus())
//
// Node order is the order in which a path was first inserted.
package menu

import (
	"strings"

	"github.com/dshills/quill/internal/platform"
)

// PathSeparator joins labels in String and ParsePath.
const PathSeparator = " > "

// Item is a leaf of the menu tree.
type Item struct {
	// Path is the ordered list of labels from the top-level menu to the item.
	Path []string

	// Action is the command reference invoked when the item is chosen.
	Action string

	// Platforms restricts the item. Empty means every platform.
	Platforms []platform.Platform

	// Sensitive lists sensitivity names that must all hold for the item to
	// be enabled.
	Sensitive []string
}

// Key returns the item path joined with PathSeparator.
func (i Item) Key() string {
	return strings.Join(i.Path, PathSeparator)
}

// ParsePath splits "File > Save" into its labels.
func ParsePath(s string) []string {
	parts := strings.Split(s, ">")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type node struct {
	label    string
	item     *Item
	children []*node
}

func (n *node) child(label string) *node {
	for _, c := range n.children {
		if c.label == label {
			return c
		}
	}
	return nil
}

func (n *node) ensureChild(label string) *node {
	if c := n.child(label); c != nil {
		return c
	}
	c := &node{label: label}
	n.children = append(n.children, c)
	return c
}

// Tree is an ordered menu tree. The zero value is an empty tree.
type Tree struct {
	root node
}

// NewTree creates an empty tree with the given items added in order.
func NewTree(items ...Item) *Tree {
	t := &Tree{}
	for _, it := range items {
		t.Add(it)
	}
	return t
}

// Add inserts item at its path, replacing any item already there.
// Items with an empty path are ignored.
func (t *Tree) Add(item Item) {
	if len(item.Path) == 0 {
		return
	}
	n := &t.root
	for _, label := range item.Path {
		n = n.ensureChild(label)
	}
	cp := cloneItem(item)
	n.item = &cp
}

// Merge inserts every item of other into t. Items at the same path are
// replaced; all other items are kept.
func (t *Tree) Merge(other *Tree) *Tree {
	if other == nil {
		return t
	}
	for _, it := range other.Items() {
		t.Add(it)
	}
	return t
}

// Lookup returns the item at path.
func (t *Tree) Lookup(path ...string) (Item, bool) {
	n := &t.root
	for _, label := range path {
		if n = n.child(label); n == nil {
			return Item{}, false
		}
	}
	if n.item == nil {
		return Item{}, false
	}
	return cloneItem(*n.item), true
}

// Children returns the labels directly under path, in order.
func (t *Tree) Children(path ...string) []string {
	n := &t.root
	for _, label := range path {
		if n = n.child(label); n == nil {
			return nil
		}
	}
	out := make([]string, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c.label)
	}
	return out
}

// Items returns every item depth first, in insertion order.
func (t *Tree) Items() []Item {
	var out []Item
	var walk func(n *node)
	walk = func(n *node) {
		if n.item != nil {
			out = append(out, cloneItem(*n.item))
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(&t.root)
	return out
}

// Len returns the number of items.
func (t *Tree) Len() int {
	return len(t.Items())
}

// ForPlatform returns a copy holding only the items available on p.
func (t *Tree) ForPlatform(p platform.Platform) *Tree {
	out := &Tree{}
	for _, it := range t.Items() {
		if p.In(it.Platforms) {
			out.Add(it)
		}
	}
	return out
}

// Clone returns a deep copy of t.
func (t *Tree) Clone() *Tree {
	return NewTree(t.Items()...)
}

// SensitivityChecker answers whether a named sensitivity currently holds.
type SensitivityChecker interface {
	AllEnabled(names ...string) bool
}

// Enabled reports whether item should be enabled: every sensitivity it
// names must hold. Items without sensitivities are always enabled.
func Enabled(item Item, checker SensitivityChecker) bool {
	if len(item.Sensitive) == 0 || checker == nil {
		return true
	}
	return checker.AllEnabled(item.Sensitive...)
}

func cloneItem(it Item) Item {
	it.Path = append([]string(nil), it.Path...)
	it.Platforms = append([]platform.Platform(nil), it.Platforms...)
	it.Sensitive = append([]string(nil), it.Sensitive...)
	return it
}
