// SPDX-License-Identifier: MIT

// Package sparse - partition quality metrics.
//
// LoadImbalance:
//
//	ε = max_s P·|A_s| / |A|; a perfectly even split gives exactly 1.
//
// CommunicationVolume:
//
//	Let λ_i be the number of images holding a nonzero in row i and μ_j the
//	number holding one in column j. Then V = Σ_i (λ_i − 1) + Σ_j (μ_j − 1),
//	counting only non-empty rows and columns.
//
//	Owner rule: vector component v_k is owned by image k mod P, which keeps
//	λ_k (μ_k) in slot k / P of its bucket. One compute task per image raises
//	the counter of every row and column the image touches (atomic adds, since
//	several images touch the same row), then each bucket is scanned once and
//	the P partial sums are added.
//
// Complexity:
//   - LoadImbalance O(P).
//   - CommunicationVolume O(Σ_s (rows_s + cols_s)) spread over P goroutines,
//     plus an O(rows + cols) reduction.

package sparse

import "sync/atomic"

// LoadImbalance returns max_s P·nz_s / nz over the current partition.
// Returns ErrEmptyMatrix when the matrix holds no nonzeros.
func (m *Matrix) LoadImbalance() (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.loadImbalance()
}

func (m *Matrix) loadImbalance() (float64, error) {
	if m.nz == 0 {
		return 0, opErrorf(ctxLoadImbalance, ErrEmptyMatrix)
	}
	p := len(m.images)
	eps := 1.0
	var epsS float64
	for _, img := range m.images {
		// integer product first: an even split divides exactly to 1.0
		epsS = float64(p*img.NonZeros()) / float64(m.nz)
		if epsS > eps {
			eps = epsS
		}
	}

	return eps, nil
}

// CommunicationVolume returns the SPMV communication volume of the current
// partition: Σ_i max(0, λ_i − 1) + Σ_j max(0, μ_j − 1).
// Every triplet must satisfy row < Rows() and col < Cols().
func (m *Matrix) CommunicationVolume() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.communicationVolume()
}

func (m *Matrix) communicationVolume() int {
	p := len(m.images)
	lambda := newCounterGrid(m.rows, p)
	mu := newCounterGrid(m.cols, p)

	computeEach(m.images, func(v View, _ int) {
		for i := range v.img.rowset.counts {
			lambda.raise(i)
		}
		for j := range v.img.colset.counts {
			mu.raise(j)
		}
	})

	var vol int64
	for b := 0; b < p; b++ {
		vol += lambda.excess(b) + mu.excess(b)
	}

	return int(vol)
}

// counterGrid holds one atomic counter per index, bucketed by owner:
// index k lives at buckets[k mod P][k / P]. Each bucket has ⌈n/P⌉ slots.
type counterGrid struct {
	procs   int
	buckets [][]atomic.Int64
}

func newCounterGrid(n, procs int) *counterGrid {
	width := (n + procs - 1) / procs
	g := &counterGrid{procs: procs, buckets: make([][]atomic.Int64, procs)}
	for b := range g.buckets {
		g.buckets[b] = make([]atomic.Int64, width)
	}

	return g
}

// raise increments the counter of index k. Safe for concurrent use.
func (g *counterGrid) raise(k int) {
	g.buckets[k%g.procs][k/g.procs].Add(1)
}

// excess returns Σ max(0, c − 1) over bucket b. Call after all raises joined.
func (g *counterGrid) excess(b int) int64 {
	var sum, c int64
	for k := range g.buckets[b] {
		c = g.buckets[b][k].Load()
		if c > 1 {
			sum += c - 1
		}
	}

	return sum
}
