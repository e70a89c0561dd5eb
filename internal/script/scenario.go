// Package script runs YAML-defined edit scenarios against a molecule.
//
// A scenario names a starting molecule (inline XYZ or a file), a sequence
// of edit steps driven through the command history, and assertions on the
// final document. The runner records a deterministic trace suitable for
// golden-file comparison, which is how the edit engine's end-to-end
// behavior is pinned down in tests.
package script

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines an edit scenario.
type Scenario struct {
	// Name uniquely identifies this scenario; it is also the golden file name.
	Name string `yaml:"name"`

	// Description explains what this scenario exercises.
	Description string `yaml:"description,omitempty"`

	// Molecule is inline XYZ text for the starting document. When empty the
	// scenario starts from an empty molecule named after the scenario.
	Molecule string `yaml:"molecule,omitempty"`

	// MoleculeFile is the path of an XYZ file for the starting document,
	// resolved relative to the scenario file's directory when loaded from
	// disk. Mutually exclusive with Molecule.
	MoleculeFile string `yaml:"molecule_file,omitempty"`

	// HistoryCapacity bounds the undo stack. Zero means the default.
	HistoryCapacity int `yaml:"history_capacity,omitempty"`

	// Steps is the edit sequence, executed in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final document and history state.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is a single edit operation.
//
// Atoms are addressed by their 1-based display-order index at the time the
// step runs, so scenarios stay readable and never hard-code allocator ids.
type Step struct {
	// Op is one of: insert_atom, delete_atom, add_bond, remove_bond,
	// move_atom, undo, redo.
	Op string `yaml:"op"`

	// Element and Position are the insert_atom inputs.
	Element  string    `yaml:"element,omitempty"`
	Position []float32 `yaml:"position,omitempty"`

	// Atom addresses the delete_atom / move_atom target.
	Atom int `yaml:"atom,omitempty"`

	// A and B address the add_bond / remove_bond endpoints.
	A int `yaml:"a,omitempty"`
	B int `yaml:"b,omitempty"`

	// To is the move_atom destination.
	To []float32 `yaml:"to,omitempty"`

	// Expect specifies the expected outcome. Nil means the step must
	// succeed.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect specifies an expected step outcome.
type Expect struct {
	// Error is a substring the step's error must contain. The step failing
	// with a matching error is a pass; succeeding is a failure.
	Error string `yaml:"error"`
}

// Assertion validates the final state.
type Assertion struct {
	// Type is one of: atom_count, bond_count, can_undo, can_redo.
	Type string `yaml:"type"`

	// Count is the expected value for atom_count / bond_count.
	Count int `yaml:"count,omitempty"`

	// Value is the expected value for can_undo / can_redo.
	Value bool `yaml:"value,omitempty"`
}

// Assertion type names.
const (
	AssertAtomCount = "atom_count"
	AssertBondCount = "bond_count"
	AssertCanUndo   = "can_undo"
	AssertCanRedo   = "can_redo"
)

// Load reads and validates a scenario from a YAML file. A relative
// molecule_file is resolved against the scenario file's directory.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}
	if scenario.MoleculeFile != "" && !filepath.IsAbs(scenario.MoleculeFile) {
		scenario.MoleculeFile = filepath.Join(filepath.Dir(path), scenario.MoleculeFile)
	}
	return scenario, nil
}

// ParseScenario parses and validates a YAML scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := scenario.validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// validate rejects malformed scenarios before any step runs.
func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if s.Molecule != "" && s.MoleculeFile != "" {
		return fmt.Errorf("molecule and molecule_file are mutually exclusive")
	}
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	for i, assertion := range s.Assertions {
		switch assertion.Type {
		case AssertAtomCount, AssertBondCount, AssertCanUndo, AssertCanRedo:
		default:
			return fmt.Errorf("assertion %d: unknown type %q", i+1, assertion.Type)
		}
	}
	return nil
}

// validate checks a single step's shape against its op.
func (s *Step) validate() error {
	switch s.Op {
	case "insert_atom":
		if s.Element == "" {
			return fmt.Errorf("insert_atom requires element")
		}
		if len(s.Position) != 3 {
			return fmt.Errorf("insert_atom requires a 3-component position")
		}
	case "delete_atom":
		if s.Atom < 1 {
			return fmt.Errorf("delete_atom requires a 1-based atom index")
		}
	case "add_bond", "remove_bond":
		if s.A < 1 || s.B < 1 {
			return fmt.Errorf("%s requires 1-based a and b atom indexes", s.Op)
		}
	case "move_atom":
		if s.Atom < 1 {
			return fmt.Errorf("move_atom requires a 1-based atom index")
		}
		if len(s.To) != 3 {
			return fmt.Errorf("move_atom requires a 3-component destination")
		}
	case "undo", "redo":
	default:
		return fmt.Errorf("unknown op %q", s.Op)
	}
	return nil
}

// vec3 converts a validated 3-component YAML list to a position.
func vec3(values []float32) [3]float32 {
	return [3]float32{values[0], values[1], values[2]}
}
