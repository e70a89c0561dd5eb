package edit

import (
	"github.com/roach88/molkit/internal/mol"
)

// Kind discriminates the closed set of command variants.
type Kind int

const (
	// KindInsertAtom inserts a new atom (or reinserts one on redo).
	KindInsertAtom Kind = iota
	// KindDeleteAtom removes an atom and cascades to its bonds.
	KindDeleteAtom
	// KindAddBond joins two atoms, subject to valence validation.
	KindAddBond
	// KindRemoveBond removes a single bond.
	KindRemoveBond
	// KindMoveAtom repositions an atom. Adjacent same-atom moves coalesce.
	KindMoveAtom
)

// String returns the scenario-facing name of the variant.
func (k Kind) String() string {
	switch k {
	case KindInsertAtom:
		return "insert_atom"
	case KindDeleteAtom:
		return "delete_atom"
	case KindAddBond:
		return "add_bond"
	case KindRemoveBond:
		return "remove_bond"
	case KindMoveAtom:
		return "move_atom"
	default:
		return "unknown"
	}
}

// Command is a single reversible document edit.
//
// Command is a tagged variant: Kind selects which fields are meaningful, and
// the constructors below build each variant with its required inputs. The
// remaining fields are captured state, populated as a side effect of the
// first successful Apply so the same values can be inverted and replayed
// without recomputation:
//
//   - InsertAtom: AtomID and OrderIndex resolve on first apply.
//   - DeleteAtom: Removed holds the cascade capture.
//   - AddBond: BondID resolves on first apply.
//   - RemoveBond: RemovedBond holds the removed value.
//   - MoveAtom: From and To are both fixed at construction time.
//
// A zero AtomID/BondID means "not yet assigned" (live ids start at 1).
type Command struct {
	Kind Kind

	// Element and Position are the InsertAtom inputs.
	Element  string
	Position [3]float32

	// AtomID is the InsertAtom resolved id, or the DeleteAtom/MoveAtom target.
	AtomID mol.AtomID

	// OrderIndex is the display-order slot InsertAtom resolved on first
	// apply; nil until then.
	OrderIndex *int

	// Removed is the DeleteAtom capture; nil until first apply.
	Removed *mol.RemovedAtom

	// A and B are the AddBond endpoints.
	A, B mol.AtomID

	// BondID is the AddBond resolved id, or the RemoveBond target.
	BondID mol.BondID

	// RemovedBond is the RemoveBond capture; nil until first apply.
	RemovedBond *mol.Bond

	// From and To are the MoveAtom endpoints.
	From, To [3]float32
}

// InsertAtom creates a command that inserts a new atom of the given element
// at the given position, appended at the tail of the display order.
func InsertAtom(element string, position [3]float32) *Command {
	return &Command{Kind: KindInsertAtom, Element: element, Position: position}
}

// DeleteAtom creates a command that removes the given atom and every bond
// touching it.
func DeleteAtom(id mol.AtomID) *Command {
	return &Command{Kind: KindDeleteAtom, AtomID: id}
}

// AddBond creates a command that joins the two given atoms.
func AddBond(a, b mol.AtomID) *Command {
	return &Command{Kind: KindAddBond, A: a, B: b}
}

// RemoveBond creates a command that removes the given bond.
func RemoveBond(id mol.BondID) *Command {
	return &Command{Kind: KindRemoveBond, BondID: id}
}

// MoveAtom creates a command that moves the given atom from one position to
// another. Both endpoints are fixed at construction time; coalescing only
// ever rewrites the destination.
func MoveAtom(id mol.AtomID, from, to [3]float32) *Command {
	return &Command{Kind: KindMoveAtom, AtomID: id, From: from, To: to}
}

// Apply executes the command against the molecule.
//
// On the first successful apply the command records its resolved state
// (freshly allocated ids, order index, removal captures). On replay (redo)
// the recorded ids are reinserted verbatim so the document reconstructs its
// exact prior shape. A failed Apply has not mutated the molecule.
func (c *Command) Apply(m *mol.Molecule) error {
	switch c.Kind {
	case KindInsertAtom:
		if c.OrderIndex == nil {
			index := m.AtomCount()
			c.OrderIndex = &index
		}
		if c.AtomID != 0 {
			m.InsertAtomWithID(c.AtomID, c.Element, c.Position, *c.OrderIndex)
			return nil
		}
		c.AtomID = m.InsertAtom(c.Element, c.Position)
		return nil

	case KindDeleteAtom:
		removed, err := m.RemoveAtom(c.AtomID)
		if err != nil {
			return err
		}
		c.Removed = removed
		return nil

	case KindAddBond:
		if c.BondID != 0 {
			return m.InsertBondWithID(c.BondID, c.A, c.B)
		}
		id, err := m.AddBond(c.A, c.B)
		if err != nil {
			return err
		}
		c.BondID = id
		return nil

	case KindRemoveBond:
		bond, err := m.RemoveBond(c.BondID)
		if err != nil {
			return err
		}
		c.RemovedBond = &bond
		return nil

	case KindMoveAtom:
		return m.SetAtomPosition(c.AtomID, c.To)

	default:
		return newStateError(c.Kind, "unknown command kind")
	}
}

// Undo inverts a previously applied command against the molecule.
//
// Fails with a StateError when the required captured state is absent (the
// command never successfully applied) and with a model error when the
// target no longer exists (double undo, undo after external deletion).
func (c *Command) Undo(m *mol.Molecule) error {
	switch c.Kind {
	case KindInsertAtom:
		if c.AtomID == 0 {
			return newStateError(c.Kind, "missing undo data: atom id never resolved")
		}
		_, err := m.RemoveAtom(c.AtomID)
		return err

	case KindDeleteAtom:
		if c.Removed == nil {
			return newStateError(c.Kind, "missing undo data: no removal capture")
		}
		removed := c.Removed
		m.InsertAtomWithID(removed.Atom.ID, removed.Atom.Element, removed.Atom.Position, removed.OrderIndex)
		for _, bond := range removed.Bonds {
			if err := m.InsertBondWithID(bond.ID, bond.A, bond.B); err != nil {
				return err
			}
		}
		return nil

	case KindAddBond:
		if c.BondID == 0 {
			return newStateError(c.Kind, "missing undo data: bond id never resolved")
		}
		_, err := m.RemoveBond(c.BondID)
		return err

	case KindRemoveBond:
		if c.RemovedBond == nil {
			return newStateError(c.Kind, "missing undo data: no removed bond")
		}
		return m.InsertBondWithID(c.RemovedBond.ID, c.RemovedBond.A, c.RemovedBond.B)

	case KindMoveAtom:
		return m.SetAtomPosition(c.AtomID, c.From)

	default:
		return newStateError(c.Kind, "unknown command kind")
	}
}

// mergeWith folds other into c when both are moves of the same atom: the
// destination is overwritten in place and the original From is preserved,
// coalescing a drag gesture's many small moves into one logical undo step.
// This is the only adjacency rule; no other variant pair merges.
func (c *Command) mergeWith(other *Command) bool {
	if c.Kind != KindMoveAtom || other.Kind != KindMoveAtom {
		return false
	}
	if c.AtomID != other.AtomID {
		return false
	}
	c.To = other.To
	return true
}
