package sparse

import (
	"math"
	"math/rand/v2"
)

// Eye returns the n × n identity matrix distributed cyclically over procs
// images.
func Eye(n, procs int, opts ...Option) (*Matrix, error) {
	if n < 0 {
		return nil, opErrorf(ctxEye, ErrInvalidShape)
	}
	if procs < 1 {
		return nil, opErrorf(ctxEye, ErrInvalidProcs)
	}
	ts := make([]Triplet, n)
	for i := range ts {
		ts[i] = NewTriplet(i, i, 1)
	}

	opts = append(opts, WithProcs(procs), WithScheme(Cyclic))
	m, err := New(n, n, opts...)
	if err != nil {
		return nil, err
	}
	if err = m.SetFromTriplets(ts); err != nil {
		return nil, err
	}

	return m, nil
}

// Rand returns a random m × n sparse matrix with roughly density·m·n
// nonzeros, distributed with the Random scheme over procs images.
//
// Nonzeros are laid out row-major; the gap between consecutive nonzeros is
// drawn from N(μ, (μ/2)²) with μ = 1/density + 0.5, clamped to at least 1.
// Values are uniform in [1, 11). src drives both the layout and the
// partition, so equal sources give equal matrices.
func Rand(m, n, procs int, density float64, src rand.Source, opts ...Option) (*Matrix, error) {
	if m < 1 || n < 1 {
		return nil, opErrorf(ctxRand, ErrInvalidShape)
	}
	if procs < 1 {
		return nil, opErrorf(ctxRand, ErrInvalidProcs)
	}
	if !(density > 0 && density <= 1) {
		return nil, opErrorf(ctxRand, ErrInvalidDensity)
	}
	rng := rand.New(src)
	mu := 1/density + 0.5
	sigma := 0.5 * mu
	gap := func() int {
		return max(int(math.Round(rng.NormFloat64()*sigma+mu)), 1)
	}

	ts := make([]Triplet, 0, int(float64(m)*float64(n)*density)+1)
	i, j := 0, max(gap()/2, 0)
	for {
		for j >= n {
			j -= n
			i++
		}
		if i >= m {
			break
		}
		ts = append(ts, NewTriplet(i, j, 1+10*rng.Float64()))
		j += gap()
	}

	opts = append(opts, WithProcs(procs), WithScheme(Random), WithRandSource(src))
	A, err := New(m, n, opts...)
	if err != nil {
		return nil, err
	}
	if err = A.SetFromTriplets(ts); err != nil {
		return nil, err
	}

	return A, nil
}
