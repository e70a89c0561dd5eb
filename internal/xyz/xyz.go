// Package xyz reads the line-oriented XYZ molecular text format:
//
//	<atom_count>
//	<comment/name line>
//	<element> <x> <y> <z>
//	... (atom_count lines)
//
// Parsing populates a fresh mol.Molecule through the ordinary allocator
// path, in file order, with the trimmed comment line as the molecule name.
// Every parse failure reports the offending 1-based source line (data lines
// are counted from line 3).
package xyz

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/roach88/molkit/internal/mol"
)

// ParseError describes a malformed XYZ input.
type ParseError struct {
	// Line is the 1-based source line of the failure, or 0 when the error
	// concerns the file as a whole (count mismatch, missing header).
	Line int

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return e.Message
}

// IsParseError returns true if the error is an XYZ format error.
// Uses errors.As to handle wrapped errors.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// Parse reads an XYZ document from r and returns the populated molecule.
func Parse(r io.Reader) (*mol.Molecule, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		return nil, &ParseError{Message: "missing atom count"}
	}
	atomCount, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, &ParseError{Line: 1, Message: "invalid atom count"}
	}

	if !scanner.Scan() {
		return nil, &ParseError{Message: "missing comment line"}
	}
	molecule := mol.New(strings.TrimSpace(scanner.Text()))

	// Data lines start at source line 3; extra lines past the declared
	// count are ignored, matching the usual XYZ trailer convention.
	line := 2
	for molecule.AtomCount() < atomCount && scanner.Scan() {
		line++
		element, position, err := parseAtomLine(scanner.Text(), line)
		if err != nil {
			return nil, err
		}
		molecule.InsertAtom(element, position)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read xyz input: %w", err)
	}

	if molecule.AtomCount() != atomCount {
		return nil, &ParseError{Message: "atom count does not match data lines"}
	}

	return molecule, nil
}

// ParseString parses an in-memory XYZ document.
func ParseString(contents string) (*mol.Molecule, error) {
	return Parse(strings.NewReader(contents))
}

// ParseFile opens and parses an XYZ file from disk.
func ParseFile(path string) (*mol.Molecule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open xyz file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// parseAtomLine splits one data line into an element token and three
// float32 coordinates.
func parseAtomLine(text string, line int) (string, [3]float32, error) {
	var position [3]float32
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", position, &ParseError{Line: line, Message: fmt.Sprintf("missing element at line %d", line)}
	}
	element := fields[0]
	names := [3]string{"x", "y", "z"}
	for i, name := range names {
		if len(fields) <= i+1 {
			return "", position, &ParseError{Line: line, Message: fmt.Sprintf("missing %s at line %d", name, line)}
		}
		value, err := strconv.ParseFloat(fields[i+1], 32)
		if err != nil {
			return "", position, &ParseError{Line: line, Message: fmt.Sprintf("invalid %s at line %d", name, line)}
		}
		position[i] = float32(value)
	}
	return element, position, nil
}
