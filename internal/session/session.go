package session

import (
	"log/slog"

	"github.com/roach88/molkit/internal/edit"
	"github.com/roach88/molkit/internal/mol"
)

// Tool is the active edit mode of a session.
type Tool int

const (
	// ToolSelect picks atoms without editing.
	ToolSelect Tool = iota
	// ToolAddAtom places new atoms of the session's current element.
	ToolAddAtom
	// ToolAddBond joins two clicked atoms with a bond.
	ToolAddBond
	// ToolMove nudges the selected atom.
	ToolMove
)

// String returns the display name of the tool.
func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "select"
	case ToolAddAtom:
		return "add-atom"
	case ToolAddBond:
		return "add-bond"
	case ToolMove:
		return "move"
	default:
		return "unknown"
	}
}

// DefaultMoveStep is the per-nudge distance for keyboard moves.
const DefaultMoveStep = 0.25

// Session is the interactive editing state over a document.
//
// Rejected commands do not propagate as errors: they land in the status
// line, which the presentation layer shows and the next successful command
// clears. The molecule is untouched by a rejected command, so a session can
// always keep going.
type Session struct {
	doc *Document

	tool       Tool
	element    string
	moveStep   float32
	selection  mol.AtomID // 0 = no selection
	bondTarget mol.AtomID // 0 = not armed; first click of a two-click bond
	status     string
}

// NewSession creates a session over the given document, starting on the
// select tool with carbon as the edit element.
func NewSession(doc *Document) *Session {
	return &Session{
		doc:      doc,
		tool:     ToolSelect,
		element:  "C",
		moveStep: DefaultMoveStep,
	}
}

// Document returns the session's document.
func (s *Session) Document() *Document {
	return s.doc
}

// Tool returns the active tool.
func (s *Session) Tool() Tool {
	return s.tool
}

// SetTool switches the active tool and disarms any pending bond target.
func (s *Session) SetTool(tool Tool) {
	s.tool = tool
	s.bondTarget = 0
}

// Element returns the element used for newly placed atoms.
func (s *Session) Element() string {
	return s.element
}

// SetElement sets the element used for newly placed atoms.
func (s *Session) SetElement(element string) {
	s.element = element
}

// MoveStep returns the per-nudge move distance.
func (s *Session) MoveStep() float32 {
	return s.moveStep
}

// SetMoveStep sets the per-nudge move distance.
func (s *Session) SetMoveStep(step float32) {
	s.moveStep = step
}

// Selection returns the selected atom, if any.
func (s *Session) Selection() (mol.AtomID, bool) {
	return s.selection, s.selection != 0
}

// ClearSelection drops the current selection.
func (s *Session) ClearSelection() {
	s.selection = 0
}

// Status returns the current status line: the last rejected command's
// message, or empty after a successful command.
func (s *Session) Status() string {
	return s.status
}

// ClickAtom handles a pick of the given atom.
//
// The clicked atom always becomes the selection. On the add-bond tool the
// first click arms the bond target; a second click on a different atom
// executes an AddBond command and disarms. Clicking the armed atom again is
// a no-op, leaving the target armed.
func (s *Session) ClickAtom(id mol.AtomID) {
	s.selection = id

	if s.tool != ToolAddBond {
		return
	}
	switch {
	case s.bondTarget == 0:
		s.bondTarget = id
	case s.bondTarget != id:
		s.execute(edit.AddBond(s.bondTarget, id))
		s.bondTarget = 0
	}
}

// PlaceAtom inserts a new atom of the session's current element at the
// given position and returns its id. The zero id is returned when the
// command is rejected.
func (s *Session) PlaceAtom(position [3]float32) mol.AtomID {
	applied, ok := s.execute(edit.InsertAtom(s.element, position))
	if !ok {
		return 0
	}
	return applied.AtomID
}

// MoveSelection nudges the selected atom by delta. Consecutive nudges of
// the same atom coalesce into a single history entry, so a whole drag
// gesture undoes in one step.
func (s *Session) MoveSelection(delta [3]float32) {
	atom, ok := s.selectedAtom()
	if !ok {
		return
	}
	from := atom.Position
	to := [3]float32{from[0] + delta[0], from[1] + delta[1], from[2] + delta[2]}
	s.execute(edit.MoveAtom(atom.ID, from, to))
}

// DeleteSelection removes the selected atom and its bonds, clearing the
// selection on success.
func (s *Session) DeleteSelection() {
	atom, ok := s.selectedAtom()
	if !ok {
		return
	}
	if _, ok := s.execute(edit.DeleteAtom(atom.ID)); ok {
		s.selection = 0
	}
}

// Undo reverts the most recent command and fixes up the selection: undoing
// an insert deselects the vanished atom, undoing a delete reselects the
// restored one when nothing else is selected.
func (s *Session) Undo() {
	command, err := s.doc.Undo()
	if err != nil {
		s.status = err.Error()
		return
	}
	if command == nil {
		return
	}
	s.status = ""
	switch command.Kind {
	case edit.KindInsertAtom:
		if s.selection == command.AtomID {
			s.selection = 0
		}
	case edit.KindDeleteAtom:
		if s.selection == 0 && command.Removed != nil {
			s.selection = command.Removed.Atom.ID
		}
	}
}

// Redo reapplies the most recently undone command, deselecting an atom that
// a redone delete removes again.
func (s *Session) Redo() {
	command, err := s.doc.Redo()
	if err != nil {
		s.status = err.Error()
		return
	}
	if command == nil {
		return
	}
	s.status = ""
	if command.Kind == edit.KindDeleteAtom && s.selection == command.AtomID {
		s.selection = 0
	}
}

// selectedAtom resolves the selection to a live atom. A stale selection
// (atom deleted out from under it) is cleared.
func (s *Session) selectedAtom() (mol.Atom, bool) {
	if s.selection == 0 {
		return mol.Atom{}, false
	}
	atom, ok := s.doc.Molecule().Atom(s.selection)
	if !ok {
		s.selection = 0
		return mol.Atom{}, false
	}
	return atom, true
}

// execute runs a command through the document history, routing the result
// into the status line.
func (s *Session) execute(command *edit.Command) (*edit.Command, bool) {
	applied, err := s.doc.Execute(command)
	if err != nil {
		s.status = err.Error()
		slog.Debug("command rejected",
			"kind", command.Kind.String(),
			"error", err,
		)
		return nil, false
	}
	s.status = ""
	slog.Debug("command executed",
		"kind", applied.Kind.String(),
		"atom", applied.AtomID,
		"bond", applied.BondID,
	)
	return applied, true
}
