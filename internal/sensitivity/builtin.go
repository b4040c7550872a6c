package sensitivity

// Built-in sensitivity names.
const (
	OpenTab             = "open_tab"
	SingleNotebook      = "single_notebook"
	MultipleNotebooks   = "multiple_notebooks"
	OtherNotebookHasTab = "other_notebook_has_tab"
)

// Application events the built-ins depend on.
const (
	EventFocussedWindow   = "focussed_window"
	EventTabFocussed      = "tab_focussed"
	EventNotebookChange   = "notebook_change"
	EventFocussedNotebook = "focussed_notebook"
	EventTabClosed        = "tab_closed"
)

// Builtins returns fresh instances of the four built-in sensitivities.
func Builtins() []*Sensitivity {
	return []*Sensitivity{
		New(OpenTab, false,
			[]string{EventFocussedWindow, EventTabFocussed},
			PredicateFunc(openTab)),
		New(SingleNotebook, true,
			[]string{EventFocussedWindow, EventNotebookChange},
			PredicateFunc(singleNotebook)),
		New(MultipleNotebooks, false,
			[]string{EventFocussedWindow, EventNotebookChange},
			PredicateFunc(multipleNotebooks)),
		New(OtherNotebookHasTab, false,
			[]string{EventFocussedWindow, EventFocussedNotebook, EventNotebookChange, EventTabClosed},
			PredicateFunc(otherNotebookHasTab)),
	}
}

func openTab(ctx Context) (bool, bool) {
	win := ctx.FocussedWindow()
	if win == nil {
		return false, false
	}
	nb := win.FocussedNotebook()
	if nb == nil {
		return false, false
	}
	return nb.FocussedTab() != nil, true
}

func singleNotebook(ctx Context) (bool, bool) {
	win := ctx.FocussedWindow()
	if win == nil {
		return false, false
	}
	return len(win.Notebooks()) == 1, true
}

func multipleNotebooks(ctx Context) (bool, bool) {
	win := ctx.FocussedWindow()
	if win == nil {
		return false, false
	}
	return len(win.Notebooks()) > 1, true
}

func otherNotebookHasTab(ctx Context) (bool, bool) {
	win := ctx.FocussedWindow()
	if win == nil {
		return false, false
	}
	other := win.NonFocussedNotebook()
	if other == nil {
		return false, false
	}
	return other.Len() > 0, true
}
