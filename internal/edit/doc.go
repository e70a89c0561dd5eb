// Package edit implements the transactional edit engine for molkit.
//
// Every structural change to a document goes through a Command: a closed set
// of five reversible edit variants (insert atom, delete atom, add bond,
// remove bond, move atom). A command captures, as a side effect of its first
// successful apply, exactly the state its inverse needs - resolved ids, the
// full cascade of a deletion, a removed bond value. Apply and Undo are exact
// inverses over the document's atom set, bond set, display order, and
// positions.
//
// History sequences commands through a bounded undo stack and an unbounded
// redo stack. Executing a new command discards the redo branch; exceeding
// the undo capacity evicts the oldest entry, which becomes permanently
// unrecoverable. Adjacent same-atom moves coalesce into a single history
// entry so a drag gesture undoes in one step.
//
// CRITICAL PATTERNS:
//
// Atomicity: a command that fails Apply has not mutated the molecule and is
// never pushed to history. Validation happens before any state changes.
//
// Determinism: commands are applied and inverted strictly in execution
// order. There is no concurrency; the engine borrows the molecule only for
// the duration of each call and never retains it.
package edit
