package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waterXYZ = "3\nwater\nO 0 0 0\nH 0 1 0\nH 1 0 0\n"

func TestRun_BondsAndAssertionsPass(t *testing.T) {
	scenario := &Scenario{
		Name:     "build_water",
		Molecule: waterXYZ,
		Steps: []Step{
			{Op: "add_bond", A: 1, B: 2},
			{Op: "add_bond", A: 1, B: 3},
		},
		Assertions: []Assertion{
			{Type: AssertBondCount, Count: 2},
			{Type: AssertCanUndo, Value: true},
			{Type: AssertCanRedo, Value: false},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.Empty(t, result.Failures)
	require.Len(t, result.Trace, 2)
	assert.Equal(t, uint64(1), result.Trace[0].Bond)
	assert.Equal(t, uint64(2), result.Trace[1].Bond)
	assert.Equal(t, 2, result.Final.Atoms[0].Valence)
}

func TestRun_ExpectedErrorPasses(t *testing.T) {
	scenario := &Scenario{
		Name:     "valence_rejected",
		Molecule: waterXYZ,
		Steps: []Step{
			{Op: "add_bond", A: 1, B: 2},
			{Op: "add_bond", A: 2, B: 3, Expect: &Expect{Error: "valence exceeded"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.Empty(t, result.Failures)
	assert.Contains(t, result.Trace[1].Error, "valence exceeded")
}

func TestRun_UnexpectedErrorIsFailure(t *testing.T) {
	scenario := &Scenario{
		Name:     "dup",
		Molecule: waterXYZ,
		Steps: []Step{
			{Op: "add_bond", A: 1, B: 2},
			{Op: "add_bond", A: 2, B: 1},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0], "unexpected error")
	assert.Contains(t, result.Failures[0], "bond already exists")
}

func TestRun_ExpectedErrorButSucceededIsFailure(t *testing.T) {
	scenario := &Scenario{
		Name:     "wrong_expect",
		Molecule: waterXYZ,
		Steps: []Step{
			{Op: "add_bond", A: 1, B: 2, Expect: &Expect{Error: "valence exceeded"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0], "got success")
}

func TestRun_UndoRedoTrace(t *testing.T) {
	scenario := &Scenario{
		Name: "undo_redo",
		Steps: []Step{
			{Op: "insert_atom", Element: "C", Position: []float32{0, 0, 0}},
			{Op: "undo"},
			{Op: "redo"},
			{Op: "redo"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.Empty(t, result.Failures)
	require.Len(t, result.Trace, 4)
	assert.Equal(t, "insert_atom", result.Trace[1].Undone)
	assert.Equal(t, uint64(1), result.Trace[1].Atom)
	assert.Equal(t, "insert_atom", result.Trace[2].Undone)
	assert.True(t, result.Trace[3].Noop, "second redo has nothing to replay")
	assert.Len(t, result.Final.Atoms, 1)
}

func TestRun_MoveCoalescingVisibleInTrace(t *testing.T) {
	scenario := &Scenario{
		Name: "drag",
		Steps: []Step{
			{Op: "insert_atom", Element: "C", Position: []float32{0, 0, 0}},
			{Op: "move_atom", Atom: 1, To: []float32{1, 0, 0}},
			{Op: "move_atom", Atom: 1, To: []float32{2, 0, 0}},
			{Op: "undo"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.Empty(t, result.Failures)
	assert.False(t, result.Trace[1].Merged)
	assert.True(t, result.Trace[2].Merged)
	// The single undo covers the whole drag.
	assert.Equal(t, [3]float32{0, 0, 0}, result.Final.Atoms[0].Position)
	assert.True(t, result.Final.CanRedo)
}

func TestRun_HistoryCapacityBound(t *testing.T) {
	scenario := &Scenario{
		Name:            "bounded",
		HistoryCapacity: 2,
		Steps: []Step{
			{Op: "insert_atom", Element: "H", Position: []float32{0, 0, 0}},
			{Op: "insert_atom", Element: "H", Position: []float32{1, 0, 0}},
			{Op: "insert_atom", Element: "H", Position: []float32{2, 0, 0}},
			{Op: "undo"},
			{Op: "undo"},
			{Op: "undo"},
		},
		Assertions: []Assertion{
			{Type: AssertAtomCount, Count: 1},
			{Type: AssertCanUndo, Value: false},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.Empty(t, result.Failures)
	// The first insert was evicted and is unrecoverable; the last undo
	// finds an empty stack.
	assert.True(t, result.Trace[5].Noop)
}

func TestRun_AssertionMismatchReported(t *testing.T) {
	scenario := &Scenario{
		Name: "mismatch",
		Steps: []Step{
			{Op: "insert_atom", Element: "H", Position: []float32{0, 0, 0}},
		},
		Assertions: []Assertion{
			{Type: AssertAtomCount, Count: 5},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0], "atom_count = 1, want 5")
}

func TestRun_AtomIndexOutOfRange(t *testing.T) {
	scenario := &Scenario{
		Name:  "bad_index",
		Steps: []Step{{Op: "delete_atom", Atom: 3}},
	}

	_, err := Run(scenario)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestRun_BadStartingMolecule(t *testing.T) {
	scenario := &Scenario{
		Name:     "bad_molecule",
		Molecule: "2\nshort\nH 0 0 0\n",
		Steps:    []Step{},
	}

	_, err := Run(scenario)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "starting molecule")
}

func TestRun_SelfBondRejected(t *testing.T) {
	scenario := &Scenario{
		Name:     "self_bond",
		Molecule: waterXYZ,
		Steps: []Step{
			{Op: "add_bond", A: 1, B: 1, Expect: &Expect{Error: "cannot bond to itself"}},
		},
		Assertions: []Assertion{
			{Type: AssertBondCount, Count: 0},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.Empty(t, result.Failures)
	assert.Equal(t, 0, result.Final.Atoms[0].Valence)
}

func TestRun_RemoveBondOnUnbondedPair(t *testing.T) {
	scenario := &Scenario{
		Name:     "no_bond",
		Molecule: waterXYZ,
		Steps: []Step{
			{Op: "remove_bond", A: 1, B: 2, Expect: &Expect{Error: "bond not found"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.Empty(t, result.Failures)
}

func TestRun_DeleteCascadeSnapshot(t *testing.T) {
	scenario := &Scenario{
		Name:     "cascade",
		Molecule: waterXYZ,
		Steps: []Step{
			{Op: "add_bond", A: 1, B: 2},
			{Op: "add_bond", A: 1, B: 3},
			{Op: "delete_atom", Atom: 1},
			{Op: "undo"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.Empty(t, result.Failures)
	// Undo restores both bonds at their original ids and the oxygen at
	// the head of the display order.
	require.Len(t, result.Final.Atoms, 3)
	assert.Equal(t, "O", result.Final.Atoms[0].Element)
	assert.Equal(t, 2, result.Final.Atoms[0].Valence)
	require.Len(t, result.Final.Bonds, 2)
	assert.Equal(t, uint64(1), result.Final.Bonds[0].ID)
	assert.Equal(t, uint64(2), result.Final.Bonds[1].ID)
}
