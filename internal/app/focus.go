package app

import "github.com/dshills/quill/internal/focus"

// The focus chain is derived on every call. Each accessor returns nil as
// soon as a link is missing.

// FocussedNotebook returns the focussed notebook of the focussed window.
func (a *Application) FocussedNotebook() *focus.Notebook {
	return a.focussed.FocussedNotebook()
}

// FocussedTab returns the focussed tab of the focussed notebook.
func (a *Application) FocussedTab() focus.Tab {
	nb := a.FocussedNotebook()
	if nb == nil {
		return nil
	}
	return nb.FocussedTab()
}

// FocussedEditView returns the edit view of the focussed tab. Tabs that
// are not edit tabs have none.
func (a *Application) FocussedEditView() focus.EditView {
	return focus.EditViewOf(a.FocussedTab())
}

// FocussedDocument returns the document of the focussed edit view.
func (a *Application) FocussedDocument() focus.Document {
	v := a.FocussedEditView()
	if v == nil {
		return nil
	}
	return v.Document()
}

// FocussedMirror returns the mirror of the focussed document.
func (a *Application) FocussedMirror() focus.Mirror {
	d := a.FocussedDocument()
	if d == nil {
		return nil
	}
	return d.Mirror()
}

// AllNotebooks returns the notebooks of every window.
func (a *Application) AllNotebooks() []*focus.Notebook {
	var out []*focus.Notebook
	for _, w := range a.windows {
		out = append(out, w.Notebooks()...)
	}
	return out
}

// AllTabs returns the tabs of every notebook of every window.
func (a *Application) AllTabs() []focus.Tab {
	var out []focus.Tab
	for _, nb := range a.AllNotebooks() {
		out = append(out, nb.Tabs()...)
	}
	return out
}
