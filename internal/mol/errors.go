package mol

import (
	"errors"
	"fmt"
)

// ModelError represents a rejected document mutation.
//
// Model errors fall into two classes:
//   - Structural reference: the operation names an atom or bond id that is
//     not present in the document (bond creation, position set, removal).
//   - Constraint violation: the mutation would break a document invariant
//     (duplicate bond between a pair, valence capacity exceeded).
//
// The Molecule is guaranteed untouched whenever a ModelError is returned.
type ModelError struct {
	// Code identifies the error category.
	Code ErrCode

	// Message is a human-readable description.
	Message string

	// Atom identifies the offending atom, when applicable.
	Atom AtomID

	// Bond identifies the offending bond, when applicable.
	Bond BondID
}

// ErrCode categorizes model errors.
type ErrCode string

const (
	// ErrCodeAtomNotFound indicates a referenced atom id is not in the document.
	ErrCodeAtomNotFound ErrCode = "ATOM_NOT_FOUND"

	// ErrCodeBondNotFound indicates a referenced bond id is not in the document.
	ErrCodeBondNotFound ErrCode = "BOND_NOT_FOUND"

	// ErrCodeDuplicateBond indicates a bond already joins the atom pair.
	ErrCodeDuplicateBond ErrCode = "DUPLICATE_BOND"

	// ErrCodeValenceExceeded indicates an atom is at its element's capacity.
	ErrCodeValenceExceeded ErrCode = "VALENCE_EXCEEDED"

	// ErrCodeSelfBond indicates a bond's endpoints are the same atom.
	ErrCodeSelfBond ErrCode = "SELF_BOND"
)

// Error implements the error interface.
func (e *ModelError) Error() string {
	return e.Message
}

// IsNotFound returns true if the error is a structural-reference error
// (missing atom or bond). Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var me *ModelError
	if errors.As(err, &me) {
		return me.Code == ErrCodeAtomNotFound || me.Code == ErrCodeBondNotFound
	}
	return false
}

// IsDuplicateBond returns true if the error is a duplicate-bond rejection.
func IsDuplicateBond(err error) bool {
	var me *ModelError
	return errors.As(err, &me) && me.Code == ErrCodeDuplicateBond
}

// IsValenceExceeded returns true if the error is a valence-capacity rejection.
func IsValenceExceeded(err error) bool {
	var me *ModelError
	return errors.As(err, &me) && me.Code == ErrCodeValenceExceeded
}

// IsSelfBond returns true if the error is a self-bond rejection.
func IsSelfBond(err error) bool {
	var me *ModelError
	return errors.As(err, &me) && me.Code == ErrCodeSelfBond
}

// newAtomNotFoundError creates a ModelError for a missing atom id.
func newAtomNotFoundError(id AtomID) *ModelError {
	return &ModelError{
		Code:    ErrCodeAtomNotFound,
		Message: "atom does not exist",
		Atom:    id,
	}
}

// newBondNotFoundError creates a ModelError for a missing bond id.
func newBondNotFoundError(id BondID) *ModelError {
	return &ModelError{
		Code:    ErrCodeBondNotFound,
		Message: "bond not found",
		Bond:    id,
	}
}

// newDuplicateBondError creates a ModelError for an already-bonded pair.
func newDuplicateBondError(a, b AtomID) *ModelError {
	return &ModelError{
		Code:    ErrCodeDuplicateBond,
		Message: "bond already exists",
		Atom:    a,
		Bond:    0,
	}
}

// newSelfBondError creates a ModelError for a bond whose endpoints coincide.
func newSelfBondError(id AtomID) *ModelError {
	return &ModelError{
		Code:    ErrCodeSelfBond,
		Message: "atom cannot bond to itself",
		Atom:    id,
	}
}

// newValenceError creates a ModelError for an atom at capacity.
func newValenceError(id AtomID, element string, capacity int) *ModelError {
	return &ModelError{
		Code:    ErrCodeValenceExceeded,
		Message: fmt.Sprintf("valence exceeded for %s (max %d)", element, capacity),
		Atom:    id,
	}
}
