// SPDX-License-Identifier: MIT

package sparse

import "sync"

// Compute runs f once per image, each call on its own goroutine, and blocks
// until all P calls return. The result slice is ordered by image index
// whatever the completion order.
//
// f receives a read-only View and the image index. Compute shares nothing
// between the calls; if f accumulates across images it must use a
// concurrency-safe accumulator.
//
// While Compute runs, repartitioning the matrix fails with ErrBusy.
// f may call the matrix's read accessors and metrics.
//
// Complexity: P goroutines; wall time is that of the slowest image.
func Compute[R any](m *Matrix, f func(v View, s int) R) []R {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return compute(m.images, f)
}

// ComputeEach is the side-effecting variant of Compute.
func (m *Matrix) ComputeEach(f func(v View, s int)) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	computeEach(m.images, f)
}

// compute is the fan-out/fan-in primitive. Caller holds mu.
func compute[R any](images []*Image, f func(View, int) R) []R {
	out := make([]R, len(images))
	computeEach(images, func(v View, s int) {
		out[s] = f(v, s) // each goroutine writes only its own slot
	})

	return out
}

func computeEach(images []*Image, f func(View, int)) {
	var wg sync.WaitGroup
	wg.Add(len(images))
	for s, img := range images {
		go func() {
			defer wg.Done()
			f(img.View(), s)
		}()
	}
	wg.Wait()
}
