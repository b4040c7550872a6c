package gui

import (
	"testing"

	"github.com/dshills/quill/internal/keymap"
	"github.com/dshills/quill/internal/menu"
)

func TestHeadless_RecordsFrameState(t *testing.T) {
	h := NewHeadless()
	f := h.NewFrame("quill").(*HeadlessFrame)

	tree := menu.NewTree()
	km := keymap.New(keymap.MainName)
	f.SetMenu(tree)
	f.SetKeymap(km)
	f.RefreshMenu()
	f.Show()

	if !f.Visible || f.Menu != tree || f.Keymap != km || f.Refreshes != 1 {
		t.Errorf("frame state = %+v", f)
	}

	f.Close()
	if f.Visible || !f.Closed {
		t.Errorf("after Close: %+v", f)
	}
	if len(h.Frames()) != 1 {
		t.Errorf("Frames() = %d, want 1", len(h.Frames()))
	}
}

func TestHeadless_Stop(t *testing.T) {
	h := NewHeadless()
	h.Stop()
	h.Stop()
	if h.StopCount() != 2 {
		t.Errorf("StopCount = %d, want 2", h.StopCount())
	}
}
