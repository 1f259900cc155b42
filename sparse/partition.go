// SPDX-License-Identifier: MIT

// Package sparse - partition assignment.
//
// Implementation:
//   - Stage 1 (Validate): resolve the target function for the active scheme.
//     Custom without an AssignFunc and Block over zero rows fail here, before
//     any state is touched.
//   - Stage 2 (Build): allocate P fresh images in a local slice and push every
//     triplet into its target; a triplet outside the shape, a target outside
//     [0, P) or an image without storage aborts the build.
//   - Stage 3 (Commit): swap the new images and nz in.
//
// A failed call therefore leaves the previous partition fully readable.

package sparse

import (
	"fmt"
	"iter"
	"slices"
)

// targetFunc maps a triplet to its image index.
type targetFunc func(t Triplet) int

// policy resolves the active scheme into a targetFunc for p images.
// Caller holds mu for writing.
func (m *Matrix) policy(p int) (targetFunc, error) {
	switch m.scheme {
	case Cyclic:
		return func(t Triplet) int { return t.Row() % p }, nil

	case Block:
		if m.rows == 0 {
			return nil, ErrInvalidShape
		}
		rows := m.rows

		return func(t Triplet) int { return p * t.Row() / rows }, nil

	case Random:
		rng := m.rng

		return func(Triplet) int { return rng.IntN(p) }, nil

	case Custom:
		if m.assign == nil {
			return nil, ErrMissingAssignment
		}
		f := m.assign

		return func(t Triplet) int { return f(t.Row(), t.Col()) }, nil

	default:
		return nil, ErrUnknownScheme
	}
}

// SetFromTriplets partitions ts over P images with the active scheme,
// replacing the current partition.
//
// Errors:
//   - ErrMissingAssignment, ErrInvalidShape: configuration, or a triplet
//     outside rows × cols; nothing changed.
//   - ErrAssignmentOutOfRange: a triplet mapped outside [0, P), nothing changed.
//   - ErrNoStorage: the StorageFactory returned nil, nothing changed.
//   - ErrBusy: the matrix is read-held, nothing changed.
//
// Complexity: O(len(ts)) plus the AssignFunc cost for Custom.
func (m *Matrix) SetFromTriplets(ts []Triplet) error {
	return m.setFrom(slices.Values(ts), len(ts))
}

// SetFromSeq is SetFromTriplets over an iterator, for loaders that stream
// triplets instead of materializing them.
func (m *Matrix) SetFromSeq(seq iter.Seq[Triplet]) error {
	return m.setFrom(seq, 0)
}

func (m *Matrix) setFrom(seq iter.Seq[Triplet], hint int) error {
	if !m.mu.TryLock() {
		return opErrorf(ctxSetFromTriplets, ErrBusy)
	}
	defer m.mu.Unlock()

	p := m.procs
	target, err := m.policy(p)
	if err != nil {
		m.logger.Error("partition aborted, previous partition kept",
			"scheme", m.scheme.String(), "procs", p, "error", err)

		return opErrorf(ctxSetFromTriplets, err)
	}

	images := m.newImages(p, hint/p)
	nz := 0
	var s int
	for t := range seq {
		if !m.contains(t.Row(), t.Col()) {
			m.logger.Error("partition aborted, previous partition kept",
				"triplet", t.String(), "rows", m.rows, "cols", m.cols)

			return fmt.Errorf("%s: %v outside %dx%d: %w", ctxSetFromTriplets, t, m.rows, m.cols, ErrInvalidShape)
		}
		s = target(t)
		if s < 0 || s >= p {
			m.logger.Error("partition aborted, previous partition kept",
				"scheme", m.scheme.String(), "triplet", t.String(), "target", s, "procs", p)

			return fmt.Errorf("%s: %v -> %d of %d: %w", ctxSetFromTriplets, t, s, p, ErrAssignmentOutOfRange)
		}
		if err = images[s].Push(t); err != nil {
			m.logger.Error("partition aborted, previous partition kept",
				"image", s, "procs", p, "error", err)

			return opErrorf(ctxSetFromTriplets, err)
		}
		nz++
	}

	m.images = images
	m.nz = nz
	m.initialized = true
	m.logger.Debug("matrix partitioned", "scheme", m.scheme.String(), "procs", p, "nonzeros", nz)

	return nil
}

// ResetImages replaces the image collection with images produced by an
// external partitioner. P becomes len(images) and nz is recomputed from them.
// The matrix takes ownership of the images; callers must not mutate them
// afterwards.
//
// Errors: ErrInvalidProcs (empty collection), ErrNilImage, ErrDuplicateImage,
// ErrInvalidShape (an image touches a row or column outside the shape),
// ErrBusy. On error nothing changes.
func (m *Matrix) ResetImages(images []*Image) error {
	if len(images) == 0 {
		return opErrorf(ctxResetImages, ErrInvalidProcs)
	}
	seen := make(map[*Image]int, len(images))
	for s, img := range images {
		if img == nil {
			return fmt.Errorf("%s: image %d: %w", ctxResetImages, s, ErrNilImage)
		}
		if first, ok := seen[img]; ok {
			return fmt.Errorf("%s: images %d and %d: %w", ctxResetImages, first, s, ErrDuplicateImage)
		}
		seen[img] = s
		if !m.spans(img) {
			return fmt.Errorf("%s: image %d outside %dx%d: %w", ctxResetImages, s, m.rows, m.cols, ErrInvalidShape)
		}
	}
	if !m.mu.TryLock() {
		return opErrorf(ctxResetImages, ErrBusy)
	}
	defer m.mu.Unlock()

	m.images = slices.Clone(images)
	m.procs = len(images)
	m.nz = 0
	for _, img := range m.images {
		m.nz += img.NonZeros()
	}
	m.initialized = true
	m.logger.Debug("images reset", "procs", m.procs, "nonzeros", m.nz)

	return nil
}

// contains reports whether (i, j) lies inside the rows × cols shape.
func (m *Matrix) contains(i, j int) bool {
	return i >= 0 && i < m.rows && j >= 0 && j < m.cols
}

// spans reports whether every row and column img touches lies inside the shape.
func (m *Matrix) spans(img *Image) bool {
	for i := range img.rowset.counts {
		if i < 0 || i >= m.rows {
			return false
		}
	}
	for j := range img.colset.counts {
		if j < 0 || j >= m.cols {
			return false
		}
	}

	return true
}
