package edit

import (
	"github.com/roach88/molkit/internal/mol"
)

// DefaultCapacity is the default bound on the undo stack.
const DefaultCapacity = 64

// History sequences commands through bounded undo and redo stacks.
//
// History does not own the molecule; it borrows it for the duration of each
// call and never retains it. The undo stack is bounded: when a new command
// pushes it over capacity the oldest entry is evicted from the front. This
// is a deterministic memory bound, not a correctness mechanism - evicted
// commands become permanently unrecoverable. The redo stack is unbounded in
// practice and cleared whenever a new command executes.
//
// Not safe for concurrent use (see package doc).
type History struct {
	undo     []*Command
	redo     []*Command
	capacity int
}

// NewHistory creates a history with the given undo capacity.
// Capacities below 1 are clamped to 1.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{capacity: capacity}
}

// Execute applies a command to the molecule and records it for undo.
//
// On failure the error propagates and both stacks are untouched (the
// command has not mutated the molecule). On success the redo branch is
// discarded, the merge rule is attempted against the undo stack's top
// entry, and otherwise the command is pushed, evicting the oldest entry if
// over capacity.
//
// Returns the command as executed - the existing top entry when merged -
// so callers can read back resolved ids.
func (h *History) Execute(command *Command, m *mol.Molecule) (*Command, error) {
	if err := command.Apply(m); err != nil {
		return nil, err
	}
	h.redo = h.redo[:0]
	if n := len(h.undo); n > 0 && h.undo[n-1].mergeWith(command) {
		return h.undo[n-1], nil
	}
	h.undo = append(h.undo, command)
	if len(h.undo) > h.capacity {
		h.undo = h.undo[1:]
	}
	return command, nil
}

// Undo inverts the most recent command and moves it to the redo stack.
//
// Returns (nil, nil) when there is nothing to undo - an empty stack is not
// an error. On inversion failure the popped command is dropped: it is not
// restored to the undo stack, so that history entry is permanently lost
// even though the molecule itself remains consistent.
func (h *History) Undo(m *mol.Molecule) (*Command, error) {
	n := len(h.undo)
	if n == 0 {
		return nil, nil
	}
	command := h.undo[n-1]
	h.undo = h.undo[:n-1]
	if err := command.Undo(m); err != nil {
		return nil, err
	}
	h.redo = append(h.redo, command)
	return command, nil
}

// Redo reapplies the most recently undone command and moves it back to the
// undo stack. Symmetric with Undo, including the drop-on-failure behavior.
func (h *History) Redo(m *mol.Molecule) (*Command, error) {
	n := len(h.redo)
	if n == 0 {
		return nil, nil
	}
	command := h.redo[n-1]
	h.redo = h.redo[:n-1]
	if err := command.Apply(m); err != nil {
		return nil, err
	}
	h.undo = append(h.undo, command)
	return command, nil
}

// CanUndo reports whether the undo stack is non-empty.
func (h *History) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo reports whether the redo stack is non-empty.
func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// UndoLen returns the number of entries on the undo stack.
// Useful for monitoring and testing.
func (h *History) UndoLen() int {
	return len(h.undo)
}

// RedoLen returns the number of entries on the redo stack.
func (h *History) RedoLen() int {
	return len(h.redo)
}
