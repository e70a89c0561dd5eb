package script

import (
	"fmt"
	"strings"

	"github.com/roach88/molkit/internal/edit"
	"github.com/roach88/molkit/internal/mol"
	"github.com/roach88/molkit/internal/xyz"
)

// TraceEvent records one executed step.
//
// Resolved allocator ids are recorded so a golden trace pins down identity
// behavior (fresh allocation, explicit-id reinsertion on redo) as well as
// the visible outcome.
type TraceEvent struct {
	Step   int    `json:"step"`
	Op     string `json:"op"`
	Atom   uint64 `json:"atom,omitempty"`
	Bond   uint64 `json:"bond,omitempty"`
	Undone string `json:"undone,omitempty"`
	Merged bool   `json:"merged,omitempty"`
	Noop   bool   `json:"noop,omitempty"`
	Error  string `json:"error,omitempty"`
}

// AtomState is an atom in the final snapshot, in display order.
type AtomState struct {
	ID       uint64     `json:"id"`
	Element  string     `json:"element"`
	Position [3]float32 `json:"position"`
	Valence  int        `json:"valence"`
}

// BondState is a bond in the final snapshot, sorted by id.
type BondState struct {
	ID uint64 `json:"id"`
	A  uint64 `json:"a"`
	B  uint64 `json:"b"`
}

// Snapshot is the full observable document state after the last step:
// atom order, elements, positions, occupancy, bonds, and history state.
type Snapshot struct {
	Name    string      `json:"name"`
	Atoms   []AtomState `json:"atoms"`
	Bonds   []BondState `json:"bonds"`
	CanUndo bool        `json:"can_undo"`
	CanRedo bool        `json:"can_redo"`
}

// Result is the outcome of running a scenario.
type Result struct {
	Scenario string       `json:"scenario"`
	Trace    []TraceEvent `json:"trace"`
	Final    Snapshot     `json:"final"`

	// Failures lists expectation and assertion mismatches. Empty means the
	// scenario passed.
	Failures []string `json:"failures,omitempty"`
}

// Run executes a scenario and returns its trace, final snapshot, and any
// expectation failures.
//
// Run returns an error only for scenario authoring or input problems (bad
// XYZ text, atom index out of range). Step errors that the document model
// reports are part of the scenario's observable behavior: they land in the
// trace and are checked against Expect clauses.
func Run(scenario *Scenario) (*Result, error) {
	molecule, err := startingMolecule(scenario)
	if err != nil {
		return nil, err
	}

	capacity := scenario.HistoryCapacity
	if capacity == 0 {
		capacity = edit.DefaultCapacity
	}
	history := edit.NewHistory(capacity)

	result := &Result{Scenario: scenario.Name}
	for i, step := range scenario.Steps {
		event, err := runStep(i+1, step, molecule, history)
		if err != nil {
			return nil, err
		}
		result.Trace = append(result.Trace, event)
		checkExpect(result, i+1, step.Expect, event)
	}

	result.Final = snapshot(scenario.Name, molecule, history)
	checkAssertions(result, scenario.Assertions, molecule, history)
	return result, nil
}

// startingMolecule builds the scenario's initial document.
func startingMolecule(scenario *Scenario) (*mol.Molecule, error) {
	var (
		molecule *mol.Molecule
		err      error
	)
	switch {
	case scenario.Molecule != "":
		molecule, err = xyz.ParseString(scenario.Molecule)
	case scenario.MoleculeFile != "":
		molecule, err = xyz.ParseFile(scenario.MoleculeFile)
	default:
		return mol.New(scenario.Name), nil
	}
	if err != nil {
		return nil, fmt.Errorf("scenario %s: starting molecule: %w", scenario.Name, err)
	}
	return molecule, nil
}

// runStep executes one step and records its trace event. Model errors are
// captured in the event, not returned; only selector resolution fails hard.
func runStep(number int, step Step, molecule *mol.Molecule, history *edit.History) (TraceEvent, error) {
	event := TraceEvent{Step: number, Op: step.Op}

	switch step.Op {
	case "undo":
		command, err := history.Undo(molecule)
		recordHistoryResult(&event, command, err)
		return event, nil

	case "redo":
		command, err := history.Redo(molecule)
		recordHistoryResult(&event, command, err)
		return event, nil
	}

	command, err := buildCommand(step, molecule)
	if err != nil {
		return event, fmt.Errorf("step %d: %w", number, err)
	}
	applied, err := history.Execute(command, molecule)
	if err != nil {
		event.Error = err.Error()
		return event, nil
	}
	event.Atom = uint64(applied.AtomID)
	event.Bond = uint64(applied.BondID)
	event.Merged = applied != command
	return event, nil
}

// buildCommand resolves a step's selectors against the current display
// order and constructs the matching command.
func buildCommand(step Step, molecule *mol.Molecule) (*edit.Command, error) {
	switch step.Op {
	case "insert_atom":
		return edit.InsertAtom(step.Element, vec3(step.Position)), nil

	case "delete_atom":
		id, err := atomAt(molecule, step.Atom)
		if err != nil {
			return nil, err
		}
		return edit.DeleteAtom(id), nil

	case "add_bond":
		a, err := atomAt(molecule, step.A)
		if err != nil {
			return nil, err
		}
		b, err := atomAt(molecule, step.B)
		if err != nil {
			return nil, err
		}
		return edit.AddBond(a, b), nil

	case "remove_bond":
		a, err := atomAt(molecule, step.A)
		if err != nil {
			return nil, err
		}
		b, err := atomAt(molecule, step.B)
		if err != nil {
			return nil, err
		}
		// An unbonded pair resolves to bond id 0, which the model rejects
		// with "bond not found" - scenarios can expect that error.
		id, _ := molecule.BondBetween(a, b)
		return edit.RemoveBond(id), nil

	case "move_atom":
		id, err := atomAt(molecule, step.Atom)
		if err != nil {
			return nil, err
		}
		atom, _ := molecule.Atom(id)
		return edit.MoveAtom(id, atom.Position, vec3(step.To)), nil

	default:
		return nil, fmt.Errorf("unknown op %q", step.Op)
	}
}

// atomAt resolves a 1-based display-order index to an atom id.
func atomAt(molecule *mol.Molecule, index int) (mol.AtomID, error) {
	ids := molecule.AtomIDs()
	if index < 1 || index > len(ids) {
		return 0, fmt.Errorf("atom index %d out of range (1..%d)", index, len(ids))
	}
	return ids[index-1], nil
}

// recordHistoryResult fills an undo/redo trace event.
func recordHistoryResult(event *TraceEvent, command *edit.Command, err error) {
	if err != nil {
		event.Error = err.Error()
		return
	}
	if command == nil {
		event.Noop = true
		return
	}
	event.Undone = command.Kind.String()
	event.Atom = uint64(command.AtomID)
	event.Bond = uint64(command.BondID)
}

// checkExpect validates a step's outcome against its Expect clause.
func checkExpect(result *Result, number int, expect *Expect, event TraceEvent) {
	if expect == nil {
		if event.Error != "" {
			result.Failures = append(result.Failures,
				fmt.Sprintf("step %d (%s): unexpected error: %s", number, event.Op, event.Error))
		}
		return
	}
	if event.Error == "" {
		result.Failures = append(result.Failures,
			fmt.Sprintf("step %d (%s): expected error containing %q, got success", number, event.Op, expect.Error))
		return
	}
	if !strings.Contains(event.Error, expect.Error) {
		result.Failures = append(result.Failures,
			fmt.Sprintf("step %d (%s): expected error containing %q, got %q", number, event.Op, expect.Error, event.Error))
	}
}

// checkAssertions validates the final document and history state.
func checkAssertions(result *Result, assertions []Assertion, molecule *mol.Molecule, history *edit.History) {
	for i, assertion := range assertions {
		switch assertion.Type {
		case AssertAtomCount:
			if got := molecule.AtomCount(); got != assertion.Count {
				result.Failures = append(result.Failures,
					fmt.Sprintf("assertion %d: atom_count = %d, want %d", i+1, got, assertion.Count))
			}
		case AssertBondCount:
			if got := molecule.BondCount(); got != assertion.Count {
				result.Failures = append(result.Failures,
					fmt.Sprintf("assertion %d: bond_count = %d, want %d", i+1, got, assertion.Count))
			}
		case AssertCanUndo:
			if got := history.CanUndo(); got != assertion.Value {
				result.Failures = append(result.Failures,
					fmt.Sprintf("assertion %d: can_undo = %t, want %t", i+1, got, assertion.Value))
			}
		case AssertCanRedo:
			if got := history.CanRedo(); got != assertion.Value {
				result.Failures = append(result.Failures,
					fmt.Sprintf("assertion %d: can_redo = %t, want %t", i+1, got, assertion.Value))
			}
		}
	}
}

// snapshot captures the full observable document state.
func snapshot(name string, molecule *mol.Molecule, history *edit.History) Snapshot {
	snap := Snapshot{
		Name:    molecule.Name,
		Atoms:   []AtomState{},
		Bonds:   []BondState{},
		CanUndo: history.CanUndo(),
		CanRedo: history.CanRedo(),
	}
	if snap.Name == "" {
		snap.Name = name
	}
	for _, atom := range molecule.AtomsInOrder() {
		snap.Atoms = append(snap.Atoms, AtomState{
			ID:       uint64(atom.ID),
			Element:  atom.Element,
			Position: atom.Position,
			Valence:  molecule.Valence(atom.ID),
		})
	}
	for _, bond := range molecule.Bonds() {
		snap.Bonds = append(snap.Bonds, BondState{
			ID: uint64(bond.ID),
			A:  uint64(bond.A),
			B:  uint64(bond.B),
		})
	}
	return snap
}
