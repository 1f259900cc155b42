// SPDX-License-Identifier: MIT

// Package mtx - sentinel errors.
//
// Every error returned by Read wraps exactly one of these, prefixed with the
// operation and, for body errors, the 1-based line number.

package mtx

import (
	"errors"
	"fmt"
)

var (
	// ErrBadHeader is returned when the banner line is missing or malformed.
	ErrBadHeader = errors.New("mtx: malformed MatrixMarket header")

	// ErrUnsupported is returned for valid but unsupported banners
	// (array format, complex field, skew-symmetric or hermitian symmetry).
	ErrUnsupported = errors.New("mtx: unsupported matrix type")

	// ErrBadSize is returned when the "rows cols nonzeros" line is missing or invalid.
	ErrBadSize = errors.New("mtx: malformed size line")

	// ErrBadEntry is returned when an entry line cannot be parsed.
	ErrBadEntry = errors.New("mtx: malformed entry")

	// ErrEntryOutOfRange is returned when an entry lies outside the declared shape.
	ErrEntryOutOfRange = errors.New("mtx: entry outside matrix bounds")

	// ErrEntryCount is returned when the number of entries differs from the size line.
	ErrEntryCount = errors.New("mtx: entry count mismatch")
)

const (
	ctxRead = "Read"
	ctxLoad = "LoadMatrix"
)

// lineErrorf wraps err with the operation and a 1-based line number.
func lineErrorf(line int, err error) error {
	return fmt.Errorf("%s: line %d: %w", ctxRead, line, err)
}
