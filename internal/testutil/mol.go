// Package testutil provides shared molecule builders for tests.
package testutil

import (
	"testing"

	"github.com/roach88/molkit/internal/mol"
)

// Water builds an unbonded water-shaped molecule: O at the origin, two H
// atoms beside it. Returns the molecule and the atom ids in display order.
func Water(t *testing.T) (*mol.Molecule, []mol.AtomID) {
	t.Helper()
	m := mol.New("water")
	o := m.InsertAtom("O", [3]float32{0, 0, 0})
	h1 := m.InsertAtom("H", [3]float32{0, 1, 0})
	h2 := m.InsertAtom("H", [3]float32{1, 0, 0})
	return m, []mol.AtomID{o, h1, h2}
}

// Methane builds a carbon with four hydrogens, unbonded. Returns the
// molecule, the carbon's id, and the hydrogen ids in display order.
func Methane(t *testing.T) (*mol.Molecule, mol.AtomID, []mol.AtomID) {
	t.Helper()
	m := mol.New("methane")
	c := m.InsertAtom("C", [3]float32{0, 0, 0})
	hs := []mol.AtomID{
		m.InsertAtom("H", [3]float32{1, 0, 0}),
		m.InsertAtom("H", [3]float32{-1, 0, 0}),
		m.InsertAtom("H", [3]float32{0, 1, 0}),
		m.InsertAtom("H", [3]float32{0, -1, 0}),
	}
	return m, c, hs
}

// MustAddBond adds a bond directly on the molecule, failing the test on
// rejection. For test setup only; edits under test go through commands.
func MustAddBond(t *testing.T, m *mol.Molecule, a, b mol.AtomID) mol.BondID {
	t.Helper()
	id, err := m.AddBond(a, b)
	if err != nil {
		t.Fatalf("add bond %d-%d: %v", a, b, err)
	}
	return id
}
