package edit

import (
	"errors"
	"fmt"
)

// StateError represents a history-state failure: a command was asked to
// invert or replay without the captured state that transition requires.
//
// These should not occur through the public History protocol (a command is
// only pushed after a successful apply, which fills its captured fields),
// but they are guarded so a misused Command fails descriptively instead of
// corrupting the document.
type StateError struct {
	// Kind is the command variant that was missing state.
	Kind Kind

	// Message describes which captured field was absent.
	Message string
}

// Error implements the error interface.
func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// IsStateError returns true if the error is a missing-captured-state error.
// Uses errors.As to handle wrapped errors.
func IsStateError(err error) bool {
	var se *StateError
	return errors.As(err, &se)
}

// newStateError creates a StateError for the given command variant.
func newStateError(kind Kind, message string) *StateError {
	return &StateError{Kind: kind, Message: message}
}
