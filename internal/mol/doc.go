// Package mol provides the foundational molecular document model for molkit.
//
// This package owns the graph: atoms, bonds, the display order of atoms, and
// the derived valence occupancy per atom. All other internal packages import
// mol; mol imports nothing internal. This keeps the document model the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Atom and bond identifiers are monotonic and never reused while the
//     owning Molecule is alive. Zero is reserved (allocation starts at 1).
//   - The atom order slice is a second structure kept eagerly in sync with
//     the atom map; map iteration order is never relied on.
//   - Valence occupancy is maintained incrementally on every mutation,
//     never recomputed by scanning the bond set.
//   - Every failed mutation leaves the Molecule exactly as it was. No
//     partial increments, no identifier consumption on the failure path.
//   - Single-threaded by contract: exactly one exclusive owner mutates a
//     Molecule at a time. The package provides no locking.
package mol
