package mol

// AtomID uniquely identifies an atom within its owning Molecule.
//
// IDs are opaque handles: ordered, comparable, usable as map keys, and never
// reused while the Molecule is alive. The zero value never identifies a live
// atom (allocation starts at 1), so 0 can serve as an "unassigned" sentinel.
type AtomID uint64

// BondID uniquely identifies a bond within its owning Molecule.
// Same properties as AtomID; the two namespaces are distinct.
type BondID uint64

// idAllocator issues monotonically increasing identifiers.
//
// Unlike a wall clock, the allocator only moves forward: Next() returns a
// fresh value, and Reserve() advances past an externally supplied id so that
// undo/redo and import can reinsert entities at their original ids without
// ever colliding with a future allocation.
//
// Not safe for concurrent use; the document model is single-threaded by
// contract (see package doc).
type idAllocator struct {
	next uint64
}

// newIDAllocator creates an allocator whose first issued value is 1.
func newIDAllocator() idAllocator {
	return idAllocator{next: 1}
}

// Next issues a fresh identifier and advances the allocator.
func (a *idAllocator) Next() uint64 {
	id := a.next
	a.next++
	return id
}

// Reserve advances the allocator past id if it has not already done so.
// Issued values after Reserve(id) are strictly greater than id.
func (a *idAllocator) Reserve(id uint64) {
	if id+1 > a.next {
		a.next = id + 1
	}
}
