package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrGUIAlreadySet is returned when a second GUI toolkit is assigned.
	ErrGUIAlreadySet = errors.New("gui is already set")

	// ErrUnknownWindow is returned for a window the application does not own.
	ErrUnknownWindow = errors.New("window is not owned by the application")

	// ErrUnknownAction is returned when executing an unregistered action.
	ErrUnknownAction = errors.New("unknown action")

	// ErrNoFocussedWindow is returned by actions that need a focussed window.
	ErrNoFocussedWindow = errors.New("no focussed window")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op     string // Operation name (e.g., "window_closed", "execute")
	Target string // Target of the operation (e.g., window id, action name)
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
