// Package session carries the editor state that lives beside the document
// model: document identity, the active tool, the current selection, the
// pending bond target for two-click bond creation, and the status line that
// surfaces rejected commands. It is the application glue between the edit
// engine and whatever presents it, with no windowing or rendering of its
// own.
package session

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/roach88/molkit/internal/edit"
	"github.com/roach88/molkit/internal/mol"
	"github.com/roach88/molkit/internal/xyz"
)

// Document pairs a molecule with its edit history under a stable identity.
//
// The ID is a UUIDv7: time-sortable, which keeps documents ordered by
// creation time in logs and traces.
type Document struct {
	ID   uuid.UUID
	Name string
	Path string

	molecule *mol.Molecule
	history  *edit.History
}

// NewDocument creates an empty document with the given display name.
func NewDocument(name string) *Document {
	return &Document{
		ID:       uuid.Must(uuid.NewV7()),
		Name:     name,
		molecule: mol.New(name),
		history:  edit.NewHistory(edit.DefaultCapacity),
	}
}

// OpenXYZ loads an XYZ file into a fresh document.
func OpenXYZ(path string) (*Document, error) {
	molecule, err := xyz.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("open document %s: %w", path, err)
	}
	name := molecule.Name
	if name == "" {
		name = filepath.Base(path)
	}
	doc := &Document{
		ID:       uuid.Must(uuid.NewV7()),
		Name:     name,
		Path:     path,
		molecule: molecule,
		history:  edit.NewHistory(edit.DefaultCapacity),
	}
	slog.Info("document opened",
		"id", doc.ID,
		"name", doc.Name,
		"path", path,
		"atoms", molecule.AtomCount(),
		"bonds", molecule.BondCount(),
	)
	return doc, nil
}

// Molecule returns the owned molecule. Callers mutate it only through
// Execute/Undo/Redo; direct reads are fine.
func (d *Document) Molecule() *mol.Molecule {
	return d.molecule
}

// History returns the document's command history.
func (d *Document) History() *edit.History {
	return d.history
}

// Execute runs a command against the document through its history.
func (d *Document) Execute(command *edit.Command) (*edit.Command, error) {
	return d.history.Execute(command, d.molecule)
}

// Undo reverts the most recent command. Returns (nil, nil) when there is
// nothing to undo.
func (d *Document) Undo() (*edit.Command, error) {
	return d.history.Undo(d.molecule)
}

// Redo reapplies the most recently undone command. Returns (nil, nil) when
// there is nothing to redo.
func (d *Document) Redo() (*edit.Command, error) {
	return d.history.Redo(d.molecule)
}
