// Package focus implements the focus tree of the editor:
//
//	Window -> Notebook -> Tab -> EditView -> Document -> Mirror
//
// A Window owns its notebooks and a Notebook owns its tabs. Each level keeps
// a pointer to its focussed child; the pointer always refers to a member of
// the owned list and is reassigned or cleared in the same operation that
// removes the member.
//
// Every Window and Notebook embeds an observable.Bus. Notebooks announce tab
// changes and windows forward them, together with their own notebook and
// lifecycle changes, as the ten window events listed in WindowEvents.
//
// EditView, Document and Mirror belong to the editing engine and are only
// reached through this package's interfaces.
package focus
