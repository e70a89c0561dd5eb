package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScenario_Valid(t *testing.T) {
	data := []byte(`
name: build_water
description: bond the hydrogens onto oxygen
molecule: |
  3
  water
  O 0 0 0
  H 0 1 0
  H 1 0 0
steps:
  - op: add_bond
    a: 1
    b: 2
  - op: add_bond
    a: 1
    b: 3
assertions:
  - type: bond_count
    count: 2
`)

	scenario, err := ParseScenario(data)
	require.NoError(t, err)

	assert.Equal(t, "build_water", scenario.Name)
	require.Len(t, scenario.Steps, 2)
	assert.Equal(t, "add_bond", scenario.Steps[0].Op)
	assert.Equal(t, 1, scenario.Steps[0].A)
	require.Len(t, scenario.Assertions, 1)
	assert.Equal(t, AssertBondCount, scenario.Assertions[0].Type)
}

func TestParseScenario_ExpectClause(t *testing.T) {
	data := []byte(`
name: expect
steps:
  - op: insert_atom
    element: H
    position: [0, 0, 0]
  - op: remove_bond
    a: 1
    b: 1
    expect:
      error: bond not found
`)

	scenario, err := ParseScenario(data)
	require.NoError(t, err)

	require.NotNil(t, scenario.Steps[1].Expect)
	assert.Equal(t, "bond not found", scenario.Steps[1].Expect.Error)
}

func TestParseScenario_RequiresName(t *testing.T) {
	_, err := ParseScenario([]byte("steps: []"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestParseScenario_RejectsUnknownOp(t *testing.T) {
	_, err := ParseScenario([]byte("name: x\nsteps:\n  - op: explode\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown op "explode"`)
}

func TestParseScenario_RejectsMalformedSteps(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "insert without element",
			yaml: "name: x\nsteps:\n  - op: insert_atom\n    position: [0, 0, 0]\n",
			want: "requires element",
		},
		{
			name: "insert with short position",
			yaml: "name: x\nsteps:\n  - op: insert_atom\n    element: H\n    position: [0, 0]\n",
			want: "3-component position",
		},
		{
			name: "delete without atom",
			yaml: "name: x\nsteps:\n  - op: delete_atom\n",
			want: "1-based atom index",
		},
		{
			name: "bond without endpoints",
			yaml: "name: x\nsteps:\n  - op: add_bond\n    a: 1\n",
			want: "1-based a and b",
		},
		{
			name: "move without destination",
			yaml: "name: x\nsteps:\n  - op: move_atom\n    atom: 1\n",
			want: "3-component destination",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestParseScenario_RejectsUnknownAssertion(t *testing.T) {
	_, err := ParseScenario([]byte("name: x\nsteps: []\nassertions:\n  - type: mystery\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown type "mystery"`)
}

func TestParseScenario_RejectsBothMoleculeSources(t *testing.T) {
	_, err := ParseScenario([]byte("name: x\nmolecule: \"1\\n\\nH 0 0 0\\n\"\nmolecule_file: water.xyz\nsteps: []\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestLoad_ResolvesMoleculeFileRelativeToScenario(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "water.xyz"),
		[]byte("3\nwater\nO 0 0 0\nH 0 1 0\nH 1 0 0\n"), 0o644))
	scenarioPath := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(scenarioPath,
		[]byte("name: from_file\nmolecule_file: water.xyz\nsteps:\n  - op: add_bond\n    a: 1\n    b: 2\n"), 0o644))

	scenario, err := Load(scenarioPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "water.xyz"), scenario.MoleculeFile)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.Empty(t, result.Failures)
	assert.Equal(t, "water", result.Final.Name)
	require.Len(t, result.Final.Bonds, 1)
}

func TestParseScenario_InvalidYAML(t *testing.T) {
	_, err := ParseScenario([]byte("name: [unclosed"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse scenario")
}
