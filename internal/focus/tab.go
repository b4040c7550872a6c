package focus

import "github.com/google/uuid"

// Mirror is the external model mirrored by a document (file, REPL, ...).
type Mirror any

// Document is the editing engine's document, reached via an EditView.
type Document interface {
	Mirror() Mirror
}

// EditView is the editing engine's view onto a document.
type EditView interface {
	Document() Document
}

// Tab is a unit shown inside a notebook.
type Tab interface {
	ID() string
	Title() string
}

// EditTab is a tab that wraps an EditView.
type EditTab interface {
	Tab
	EditView() EditView
}

type baseTab struct {
	id    string
	title string
}

func newBaseTab(title string) baseTab {
	return baseTab{id: uuid.NewString(), title: title}
}

func (t *baseTab) ID() string    { return t.id }
func (t *baseTab) Title() string { return t.title }

type editTab struct {
	baseTab
	view EditView
}

// NewEditTab creates an edit tab showing view.
func NewEditTab(title string, view EditView) EditTab {
	return &editTab{baseTab: newBaseTab(title), view: view}
}

func (t *editTab) EditView() EditView { return t.view }

type toolTab struct {
	baseTab
}

// NewToolTab creates a tab that does not edit a document, such as a tool
// panel or a tree view.
func NewToolTab(title string) Tab {
	return &toolTab{baseTab: newBaseTab(title)}
}

// EditViewOf returns the tab's edit view, or nil when tab is nil or is not
// an edit tab.
func EditViewOf(tab Tab) EditView {
	et, ok := tab.(EditTab)
	if !ok || et == nil {
		return nil
	}
	return et.EditView()
}
