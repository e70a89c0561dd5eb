package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `name: cli_pass
steps:
  - op: insert_atom
    element: C
    position: [0, 0, 0]
  - op: insert_atom
    element: H
    position: [1, 0, 0]
  - op: add_bond
    a: 1
    b: 2
assertions:
  - type: atom_count
    count: 2
  - type: bond_count
    count: 1
`

const failingScenario = `name: cli_fail
steps:
  - op: insert_atom
    element: C
    position: [0, 0, 0]
assertions:
  - type: atom_count
    count: 9
`

func TestRunCommand_Text(t *testing.T) {
	path := writeTempFile(t, "pass.yaml", passingScenario)

	out, _, err := executeCommand(t, "run", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Scenario: cli_pass")
	assert.Contains(t, out, "insert_atom")
	assert.Contains(t, out, "add_bond")
	assert.Contains(t, out, "Final: 2 atoms, 1 bonds")
	assert.NotContains(t, out, "FAIL")
}

func TestRunCommand_JSON(t *testing.T) {
	path := writeTempFile(t, "pass.yaml", passingScenario)

	out, _, err := executeCommand(t, "run", path, "--format", "json")
	require.NoError(t, err)

	var response CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.Equal(t, "ok", response.Status)

	data, ok := response.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "cli_pass", data["scenario"])
	trace, ok := data["trace"].([]interface{})
	require.True(t, ok)
	assert.Len(t, trace, 3)
}

func TestRunCommand_AssertionFailureExitsOne(t *testing.T) {
	path := writeTempFile(t, "fail.yaml", failingScenario)

	out, _, err := executeCommand(t, "run", path)

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "FAIL: assertion 1: atom_count = 1, want 9")
	assert.Contains(t, err.Error(), "1 failure(s)")
}

func TestRunCommand_MissingFileExitsTwo(t *testing.T) {
	out, _, err := executeCommand(t, "run", "/nonexistent/scenario.yaml")

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "SCENARIO_ERROR")
}

func TestRunCommand_MalformedScenarioExitsTwo(t *testing.T) {
	path := writeTempFile(t, "bad.yaml", "steps:\n  - op: insert_atom\n")

	_, _, err := executeCommand(t, "run", path)

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRunCommand_BadIndexExitsTwo(t *testing.T) {
	path := writeTempFile(t, "index.yaml", "name: bad_index\nsteps:\n  - op: delete_atom\n    atom: 5\n")

	_, _, err := executeCommand(t, "run", path)

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRunCommand_VerboseLogsToStderr(t *testing.T) {
	path := writeTempFile(t, "pass.yaml", passingScenario)

	_, errOut, err := executeCommand(t, "run", path, "--verbose")
	require.NoError(t, err)

	assert.Contains(t, errOut, "Running scenario cli_pass (3 steps)")
}
