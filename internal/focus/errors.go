package focus

import "errors"

// Focus tree errors.
var (
	// ErrUnknownTab is returned for a tab the notebook does not own.
	ErrUnknownTab = errors.New("tab not in notebook")

	// ErrUnknownNotebook is returned for a notebook the window does not own.
	ErrUnknownNotebook = errors.New("notebook not in window")

	// ErrLastNotebook is returned when removing a window's only notebook.
	ErrLastNotebook = errors.New("cannot remove the last notebook")

	// ErrNilTab is returned when a nil tab is added.
	ErrNilTab = errors.New("tab cannot be nil")
)
