package script

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// The scenarios under testdata/scenarios pin the edit engine's end-to-end
// behavior: trace shape, id allocation, cascade capture, and history state
// all land in the golden file.
func TestRunWithGolden_Scenarios(t *testing.T) {
	for _, name := range []string{"bond_undo_redo", "water_valence"} {
		t.Run(name, func(t *testing.T) {
			scenario, err := Load(filepath.Join("testdata", "scenarios", name+".yaml"))
			require.NoError(t, err)

			require.NoError(t, RunWithGolden(t, scenario))
		})
	}
}

func TestMarshalResult_Deterministic(t *testing.T) {
	scenario, err := Load(filepath.Join("testdata", "scenarios", "water_valence.yaml"))
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	a, err := MarshalResult(first)
	require.NoError(t, err)
	b, err := MarshalResult(second)
	require.NoError(t, err)

	require.Equal(t, string(a), string(b))
}
