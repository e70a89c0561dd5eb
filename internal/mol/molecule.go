package mol

import "sort"

// Atom is a node of the molecular graph.
//
// Atoms never reference other atoms directly; connectivity lives entirely in
// the bond set. Element is stored verbatim as given; case-insensitivity
// applies only to semantic lookups (valence, display color).
type Atom struct {
	ID       AtomID
	Element  string
	Position [3]float32
}

// Bond joins two atoms. The endpoint pair is unordered: a bond between
// (X, Y) is the same bond as (Y, X) for lookup and uniqueness purposes.
type Bond struct {
	ID BondID
	A  AtomID
	B  AtomID
}

// RemovedAtom captures everything RemoveAtom destroyed: the atom value, its
// former position in the display order, and every bond that touched it.
// This is the exact state a delete needs to be undone.
type RemovedAtom struct {
	Atom       Atom
	OrderIndex int
	Bonds      []Bond
}

// OrderAppend, passed as the order index to InsertAtomWithID, appends the
// atom at the tail of the display order.
const OrderAppend = -1

// Molecule is the owned molecular graph.
//
// INVARIANTS (hold after every public operation returns):
//  1. Every bond's endpoints exist in the atom map.
//  2. At most one bond joins any unordered atom pair.
//  3. An atom's occupancy equals the number of bonds touching it and never
//     exceeds MaxValence(atom.Element).
//  4. atomOrder is a permutation of exactly the atom map's key set.
//  5. Allocators never issue an id already in use.
type Molecule struct {
	Name string

	atoms     map[AtomID]Atom
	atomOrder []AtomID
	bonds     map[BondID]Bond
	valence   map[AtomID]int

	atomIDs idAllocator
	bondIDs idAllocator
}

// New creates an empty molecule with the given display name.
func New(name string) *Molecule {
	return &Molecule{
		Name:    name,
		atoms:   make(map[AtomID]Atom),
		bonds:   make(map[BondID]Bond),
		valence: make(map[AtomID]int),
		atomIDs: newIDAllocator(),
		bondIDs: newIDAllocator(),
	}
}

// AtomCount returns the number of atoms in the document.
func (m *Molecule) AtomCount() int {
	return len(m.atoms)
}

// BondCount returns the number of bonds in the document.
func (m *Molecule) BondCount() int {
	return len(m.bonds)
}

// Atom returns the atom with the given id, if present.
func (m *Molecule) Atom(id AtomID) (Atom, bool) {
	atom, ok := m.atoms[id]
	return atom, ok
}

// AtomIDs returns the atom ids in display order. The slice is a copy.
func (m *Molecule) AtomIDs() []AtomID {
	ids := make([]AtomID, len(m.atomOrder))
	copy(ids, m.atomOrder)
	return ids
}

// AtomsInOrder returns the atoms in display order. The slice is a copy.
func (m *Molecule) AtomsInOrder() []Atom {
	atoms := make([]Atom, 0, len(m.atomOrder))
	for _, id := range m.atomOrder {
		if atom, ok := m.atoms[id]; ok {
			atoms = append(atoms, atom)
		}
	}
	return atoms
}

// Bond returns the bond with the given id, if present.
func (m *Molecule) Bond(id BondID) (Bond, bool) {
	bond, ok := m.bonds[id]
	return bond, ok
}

// Bonds returns all bonds sorted by id. Map iteration order is unstable, so
// callers that render or print always see a deterministic sequence.
func (m *Molecule) Bonds() []Bond {
	bonds := make([]Bond, 0, len(m.bonds))
	for _, bond := range m.bonds {
		bonds = append(bonds, bond)
	}
	sort.Slice(bonds, func(i, j int) bool { return bonds[i].ID < bonds[j].ID })
	return bonds
}

// Valence returns the current bond occupancy of the given atom.
// Returns 0 for unknown atoms.
func (m *Molecule) Valence(id AtomID) int {
	return m.valence[id]
}

// BondBetween returns the id of the bond joining a and b, in either
// direction, if one exists.
func (m *Molecule) BondBetween(a, b AtomID) (BondID, bool) {
	for _, bond := range m.bonds {
		if (bond.A == a && bond.B == b) || (bond.A == b && bond.B == a) {
			return bond.ID, true
		}
	}
	return 0, false
}

// InsertAtom adds a new atom at the tail of the display order and returns
// its freshly allocated id. Occupancy starts at zero.
func (m *Molecule) InsertAtom(element string, position [3]float32) AtomID {
	id := AtomID(m.atomIDs.Next())
	m.atoms[id] = Atom{ID: id, Element: element, Position: position}
	m.atomOrder = append(m.atomOrder, id)
	m.valence[id] = 0
	return id
}

// InsertAtomWithID is the privileged insertion path used by undo/redo and
// import: it accepts an explicit id (advancing the allocator past it) and a
// display-order index. The index is clamped to the current length;
// OrderAppend appends at the tail.
func (m *Molecule) InsertAtomWithID(id AtomID, element string, position [3]float32, orderIndex int) AtomID {
	m.atomIDs.Reserve(uint64(id))
	m.atoms[id] = Atom{ID: id, Element: element, Position: position}
	if orderIndex >= 0 {
		index := orderIndex
		if index > len(m.atomOrder) {
			index = len(m.atomOrder)
		}
		m.atomOrder = append(m.atomOrder, 0)
		copy(m.atomOrder[index+1:], m.atomOrder[index:])
		m.atomOrder[index] = id
	} else {
		m.atomOrder = append(m.atomOrder, id)
	}
	if _, ok := m.valence[id]; !ok {
		m.valence[id] = 0
	}
	return id
}

// RemoveAtom deletes an atom and every bond touching it, atomically.
//
// The returned RemovedAtom is the sole state the inverse operation needs:
// the atom value, its former order index, and all removed bonds. Occupancy
// of every surviving endpoint is decremented once per removed bond.
func (m *Molecule) RemoveAtom(id AtomID) (*RemovedAtom, error) {
	atom, ok := m.atoms[id]
	if !ok {
		return nil, newAtomNotFoundError(id)
	}
	delete(m.atoms, id)

	orderIndex := len(m.atomOrder)
	for i, entry := range m.atomOrder {
		if entry == id {
			orderIndex = i
			break
		}
	}
	if orderIndex < len(m.atomOrder) {
		m.atomOrder = append(m.atomOrder[:orderIndex], m.atomOrder[orderIndex+1:]...)
	}

	var removed []Bond
	for _, bond := range m.bonds {
		if bond.A == id || bond.B == id {
			removed = append(removed, bond)
		}
	}
	sort.Slice(removed, func(i, j int) bool { return removed[i].ID < removed[j].ID })
	for _, bond := range removed {
		delete(m.bonds, bond.ID)
		m.decrementValence(bond.A)
		m.decrementValence(bond.B)
	}
	delete(m.valence, id)

	return &RemovedAtom{Atom: atom, OrderIndex: orderIndex, Bonds: removed}, nil
}

// SetAtomPosition moves an atom to the given position.
func (m *Molecule) SetAtomPosition(id AtomID, position [3]float32) error {
	atom, ok := m.atoms[id]
	if !ok {
		return newAtomNotFoundError(id)
	}
	atom.Position = position
	m.atoms[id] = atom
	return nil
}

// AddBond joins two atoms with a freshly allocated bond id.
//
// Fails, mutating nothing and consuming no id, when the endpoints are the
// same atom, either atom is missing, a bond already joins the pair (in
// either direction), or either atom is at its element's valence capacity.
func (m *Molecule) AddBond(a, b AtomID) (BondID, error) {
	if err := m.validateBond(a, b); err != nil {
		return 0, err
	}
	id := BondID(m.bondIDs.Next())
	m.bonds[id] = Bond{ID: id, A: a, B: b}
	m.valence[a]++
	m.valence[b]++
	return id, nil
}

// InsertBondWithID is the privileged bond insertion path used by undo/redo:
// it reinserts a bond at an explicit id, advancing the allocator past it.
// Validation is identical to AddBond, and the allocator is only advanced
// once validation has passed.
func (m *Molecule) InsertBondWithID(id BondID, a, b AtomID) error {
	if err := m.validateBond(a, b); err != nil {
		return err
	}
	m.bondIDs.Reserve(uint64(id))
	m.bonds[id] = Bond{ID: id, A: a, B: b}
	m.valence[a]++
	m.valence[b]++
	return nil
}

// RemoveBond deletes a bond and decrements both endpoints' occupancy.
// Returns the removed bond value for capture by the inverse operation.
func (m *Molecule) RemoveBond(id BondID) (Bond, error) {
	bond, ok := m.bonds[id]
	if !ok {
		return Bond{}, newBondNotFoundError(id)
	}
	delete(m.bonds, id)
	m.decrementValence(bond.A)
	m.decrementValence(bond.B)
	return bond, nil
}

// validateBond checks every precondition of a bond insertion without
// mutating anything: the endpoints are distinct and exist, the pair is not
// already bonded, and both endpoints have valence headroom. A self-bond
// would increment its atom's occupancy twice and could push it past
// capacity (invariant 3), so it is rejected up front.
func (m *Molecule) validateBond(a, b AtomID) error {
	if a == b {
		return newSelfBondError(a)
	}
	atomA, ok := m.atoms[a]
	if !ok {
		return newAtomNotFoundError(a)
	}
	atomB, ok := m.atoms[b]
	if !ok {
		return newAtomNotFoundError(b)
	}
	if _, exists := m.BondBetween(a, b); exists {
		return newDuplicateBondError(a, b)
	}
	if max := MaxValence(atomA.Element); m.valence[a]+1 > max {
		return newValenceError(a, atomA.Element, max)
	}
	if max := MaxValence(atomB.Element); m.valence[b]+1 > max {
		return newValenceError(b, atomB.Element, max)
	}
	return nil
}

// decrementValence lowers an atom's occupancy, saturating at zero. The
// saturation should never trigger while invariant 3 holds.
func (m *Molecule) decrementValence(id AtomID) {
	if count, ok := m.valence[id]; ok && count > 0 {
		m.valence[id] = count - 1
	}
}
