// SPDX-License-Identifier: MIT
// Package sparse: sentinel error set.
// Every algorithm returns these sentinels (possibly wrapped with operation
// context via %w); tests match them with errors.Is.

package sparse

import (
	"errors"
	"fmt"
)

// Configuration errors. A partition operation that fails with one of these
// leaves the previous partition untouched.
var (
	// ErrMissingAssignment is returned when the Custom scheme is active but no
	// AssignFunc was registered.
	ErrMissingAssignment = errors.New("sparse: custom partitioning without an assignment function")

	// ErrAssignmentOutOfRange is returned when an AssignFunc maps a triplet
	// outside [0, P).
	ErrAssignmentOutOfRange = errors.New("sparse: assignment outside processor range")

	// ErrInvalidProcs indicates a processor count below 1.
	ErrInvalidProcs = errors.New("sparse: processor count must be >= 1")

	// ErrInvalidShape indicates negative dimensions, a shape the active
	// scheme cannot partition (Block over zero rows), or a triplet lying
	// outside the matrix shape.
	ErrInvalidShape = errors.New("sparse: invalid shape")

	// ErrUnknownScheme indicates a scheme tag outside the known set.
	ErrUnknownScheme = errors.New("sparse: unknown partitioning scheme")

	// ErrNilImage indicates a nil *Image inside a ResetImages collection.
	ErrNilImage = errors.New("sparse: nil image")

	// ErrDuplicateImage indicates the same *Image listed more than once in a
	// ResetImages collection.
	ErrDuplicateImage = errors.New("sparse: image listed twice")

	// ErrInvalidDensity indicates a generator density outside (0, 1].
	ErrInvalidDensity = errors.New("sparse: density must be in (0, 1]")
)

// Caller contract violations.
var (
	// ErrOutOfRange indicates an ordinal storage position outside [0, Size()).
	ErrOutOfRange = errors.New("sparse: position out of range")

	// ErrNoStorage indicates a push into an Image that has no Storage allocated.
	ErrNoStorage = errors.New("sparse: image has no storage")
)

var (
	// ErrEmptyMatrix indicates a metric that is undefined without nonzeros.
	ErrEmptyMatrix = errors.New("sparse: matrix has no nonzeros")

	// ErrBusy indicates an attempt to repartition or change the policy while
	// the matrix is read-held: a compute call, a metric, a spy plot or an
	// accessor that has not returned yet.
	ErrBusy = errors.New("sparse: matrix in use")
)

// opErrorf attaches an operation tag to a sentinel.
func opErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// posErrorf attaches an operation tag and the offending position to a sentinel.
func posErrorf(op string, pos, size int, err error) error {
	return fmt.Errorf("%s(%d) of %d: %w", op, pos, size, err)
}
