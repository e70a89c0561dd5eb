package script

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// MarshalResult serializes a result as indented JSON for golden comparison.
// Field order is fixed by the struct definitions, atom order by the display
// order, and bond order by id, so the bytes are fully deterministic.
func MarshalResult(result *Result) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}

// RunWithGolden executes a scenario and compares the serialized result
// against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/script -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	data, err := MarshalResult(result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return nil
}
