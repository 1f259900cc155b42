// SPDX-License-Identifier: MIT

// Package sparse - the distributed sparse matrix.
//
// Purpose:
//   - Own the ordered collection of P images, the active partitioning policy
//     and the cached nonzero count.
//   - Keep three invariants after every successful partition operation:
//     (a) every inserted triplet lives in exactly one image,
//     (b) nz equals the sum of the images' nonzero counts,
//     (c) P >= 1.
//
// Locking:
//   - mu is read-held for the whole duration of every compute call and
//     metric. Operations that replace the image collection (SetFromTriplets,
//     SetFromSeq, ResetImages) or the policy (SetDistributionScheme,
//     SetDistributionFunc) only TryLock it and fail with ErrBusy instead of
//     waiting, so a compute function can never deadlock against them. Any
//     reader in progress counts, not only compute calls.

package sparse

import (
	"log/slog"
	"math/rand/v2"
	"sync"
)

const (
	ctxNew             = "New"
	ctxSetScheme       = "SetDistributionScheme"
	ctxSetFunc         = "SetDistributionFunc"
	ctxSetFromTriplets = "SetFromTriplets"
	ctxResetImages     = "ResetImages"
	ctxImage           = "Image"
	ctxLoadImbalance   = "LoadImbalance"
	ctxSpy             = "Spy"
	ctxEye             = "Eye"
	ctxRand            = "Rand"
)

// Matrix is a rows × cols sparse matrix distributed over P images.
type Matrix struct {
	mu sync.RWMutex

	rows, cols int
	procs      int        // P used by the next partition
	scheme     Scheme     // active scheme
	assign     AssignFunc // Custom policy, may be nil
	rng        *rand.Rand // Random scheme source
	storage    StorageFactory
	logger     *slog.Logger

	images      []*Image // current partition, len >= 1
	nz          int      // Σ images[s].NonZeros()
	initialized bool     // a partition has been applied
}

// New creates an empty rows × cols matrix holding P empty images.
// Returns ErrInvalidShape for negative dimensions.
func New(rows, cols int, opts ...Option) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, opErrorf(ctxNew, ErrInvalidShape)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.src == nil {
		o.src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	m := &Matrix{
		rows:    rows,
		cols:    cols,
		procs:   o.procs,
		scheme:  o.scheme,
		assign:  o.assign,
		rng:     rand.New(o.src),
		storage: o.storage,
		logger:  o.logger,
	}
	m.images = m.newImages(m.procs, 0)

	return m, nil
}

// newImages allocates p empty images using the configured storage layout.
func (m *Matrix) newImages(p, capacity int) []*Image {
	images := make([]*Image, p)
	for s := range images {
		images[s] = &Image{storage: m.storage(capacity)}
	}

	return images
}

// SetDistributionScheme sets the scheme and processor count used by the next
// partition. The current partition is not touched.
func (m *Matrix) SetDistributionScheme(s Scheme, procs int) error {
	if !s.Valid() {
		return opErrorf(ctxSetScheme, ErrUnknownScheme)
	}
	if procs < 1 {
		return opErrorf(ctxSetScheme, ErrInvalidProcs)
	}
	if !m.mu.TryLock() {
		return opErrorf(ctxSetScheme, ErrBusy)
	}
	defer m.mu.Unlock()
	m.scheme = s
	m.procs = procs

	return nil
}

// SetDistributionFunc registers the policy used by the Custom scheme.
// It does not switch the scheme; pass nil to unregister.
func (m *Matrix) SetDistributionFunc(f AssignFunc) error {
	if !m.mu.TryLock() {
		return opErrorf(ctxSetFunc, ErrBusy)
	}
	defer m.mu.Unlock()
	m.assign = f

	return nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Size returns rows·cols.
func (m *Matrix) Size() int { return m.rows * m.cols }

// Procs returns the number of images in the current partition.
func (m *Matrix) Procs() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.images)
}

// Scheme returns the active partitioning scheme.
func (m *Matrix) Scheme() Scheme {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.scheme
}

// NonZeros returns the number of nonzeros over all images.
func (m *Matrix) NonZeros() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.nz
}

// Initialized reports whether a partition has been applied.
func (m *Matrix) Initialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.initialized
}

// Images returns read-only views of the current images, ordered by index.
// The views stay readable after a repartition.
func (m *Matrix) Images() []View {
	m.mu.RLock()
	defer m.mu.RUnlock()
	views := make([]View, len(m.images))
	for s, img := range m.images {
		views[s] = img.View()
	}

	return views
}

// Image returns a read-only view of image s, or ErrOutOfRange.
func (m *Matrix) Image(s int) (View, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s < 0 || s >= len(m.images) {
		return View{}, posErrorf(ctxImage, s, len(m.images), ErrOutOfRange)
	}

	return m.images[s].View(), nil
}

// Triplets returns a snapshot of all nonzeros, image by image.
func (m *Matrix) Triplets() []Triplet {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Triplet, 0, m.nz)
	for _, img := range m.images {
		for _, t := range img.All() {
			out = append(out, t)
		}
	}

	return out
}
