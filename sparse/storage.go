// SPDX-License-Identifier: MIT

// Package sparse - triplet storage behind a pluggable interface.
//
// Purpose:
//   - Give every image an ordered, appendable, randomly-removable sequence of
//     triplets without tying Image to one memory layout.
//   - TripletList is the only layout today. Row-compressed (CRS) and
//     column-compressed (CCS) layouts are the intended extension points: they
//     implement the same contract, trading O(1) Push for compact iteration.
//
// Ownership:
//   - A Storage belongs to exactly one Image at a time and is never shared.
//   - Not synchronized: at most one goroutine mutates a given Storage.
//     Concurrent reads of Storages owned by different images are safe.

package sparse

import (
	"iter"
	"slices"
)

const (
	ctxPopAt = "PopAt"
	ctxAt    = "At"
	ctxSet   = "Set"
)

// Storage is the contract every image storage layout fulfils.
// Positions are ordinal, not stable keys: PopAt(p) shifts every position > p
// down by one.
type Storage interface {
	// Push appends t.
	Push(t Triplet)

	// PopAt removes and returns the triplet at pos.
	// Returns ErrOutOfRange when pos is outside [0, Size()).
	PopAt(pos int) (Triplet, error)

	// Size returns the number of stored triplets.
	Size() int

	// At returns the triplet at pos, or ErrOutOfRange.
	At(pos int) (Triplet, error)

	// Set replaces the triplet at pos and returns the previous one, or ErrOutOfRange.
	Set(pos int, t Triplet) (Triplet, error)

	// All yields (position, triplet) from first to last.
	All() iter.Seq2[int, Triplet]

	// Backward yields (position, triplet) from last to first.
	Backward() iter.Seq2[int, Triplet]
}

// TripletList stores triplets in insertion order in a flat slice.
// Push is O(1) amortized, At/Set O(1), PopAt O(n).
type TripletList struct {
	triplets []Triplet
}

// Compile-time assertion for interface conformance.
var _ Storage = (*TripletList)(nil)

// NewTripletList returns an empty list with room for capacity triplets.
func NewTripletList(capacity int) *TripletList {
	if capacity < 0 {
		capacity = 0
	}

	return &TripletList{triplets: make([]Triplet, 0, capacity)}
}

// Push appends t.
func (l *TripletList) Push(t Triplet) {
	l.triplets = append(l.triplets, t)
}

// PopAt removes and returns the triplet at pos.
func (l *TripletList) PopAt(pos int) (Triplet, error) {
	if pos < 0 || pos >= len(l.triplets) {
		return Triplet{}, posErrorf(ctxPopAt, pos, len(l.triplets), ErrOutOfRange)
	}
	t := l.triplets[pos]
	l.triplets = slices.Delete(l.triplets, pos, pos+1)

	return t, nil
}

// Size returns the number of stored triplets.
func (l *TripletList) Size() int { return len(l.triplets) }

// At returns the triplet at pos.
func (l *TripletList) At(pos int) (Triplet, error) {
	if pos < 0 || pos >= len(l.triplets) {
		return Triplet{}, posErrorf(ctxAt, pos, len(l.triplets), ErrOutOfRange)
	}

	return l.triplets[pos], nil
}

// Set replaces the triplet at pos and returns the previous one.
func (l *TripletList) Set(pos int, t Triplet) (Triplet, error) {
	if pos < 0 || pos >= len(l.triplets) {
		return Triplet{}, posErrorf(ctxSet, pos, len(l.triplets), ErrOutOfRange)
	}
	old := l.triplets[pos]
	l.triplets[pos] = t

	return old, nil
}

// All yields (position, triplet) in insertion order.
func (l *TripletList) All() iter.Seq2[int, Triplet] {
	return slices.All(l.triplets)
}

// Backward yields (position, triplet) in reverse insertion order.
func (l *TripletList) Backward() iter.Seq2[int, Triplet] {
	return slices.Backward(l.triplets)
}
