package sparse_test

import (
	"math/rand/v2"
	"testing"

	"github.com/katalvlaran/zee/sparse"
	"github.com/stretchr/testify/require"
)

// TestEye checks the identity generator and its cyclic distribution.
func TestEye(t *testing.T) {
	m, err := sparse.Eye(6, 3, sparse.WithLogger(quiet))
	require.NoError(t, err)
	require.Equal(t, 6, m.NonZeros())
	require.Equal(t, 3, m.Procs())
	require.Equal(t, sparse.Cyclic, m.Scheme())
	for tr, s := range owners(t, m) {
		require.Equal(t, tr.Row(), tr.Col())
		require.Equal(t, tr.Row()%3, s)
	}

	_, err = sparse.Eye(3, 0)
	require.ErrorIs(t, err, sparse.ErrInvalidProcs)
	_, err = sparse.Eye(-1, 1)
	require.ErrorIs(t, err, sparse.ErrInvalidShape)
}

// TestRandBoundsAndReproducibility verifies entries stay in range, positions
// are strictly increasing row-major, and equal seeds give equal matrices.
func TestRandBoundsAndReproducibility(t *testing.T) {
	build := func() *sparse.Matrix {
		m, err := sparse.Rand(30, 40, 4, 0.1, rand.NewPCG(1, 2), sparse.WithLogger(quiet))
		require.NoError(t, err)

		return m
	}
	a, b := build(), build()
	require.Equal(t, collect(a), collect(b))
	require.Equal(t, sparse.Random, a.Scheme())

	nz := a.NonZeros()
	require.Greater(t, nz, 30*40/20) // density 0.1, generous lower bound
	require.Less(t, nz, 30*40/5)

	seen := make(map[[2]int]bool)
	for tr := range owners(t, a) {
		require.GreaterOrEqual(t, tr.Row(), 0)
		require.Less(t, tr.Row(), 30)
		require.GreaterOrEqual(t, tr.Col(), 0)
		require.Less(t, tr.Col(), 40)
		require.GreaterOrEqual(t, tr.Value(), 1.0)
		require.Less(t, tr.Value(), 11.0)
		key := [2]int{tr.Row(), tr.Col()}
		require.False(t, seen[key], "duplicate position %v", key)
		seen[key] = true
	}
}

// TestRandSmallWidth covers a single-column matrix where the first gap
// already overflows the row.
func TestRandSmallWidth(t *testing.T) {
	m, err := sparse.Rand(5, 1, 2, 1, rand.NewPCG(3, 3), sparse.WithLogger(quiet))
	require.NoError(t, err)
	for _, tr := range m.Triplets() {
		require.Equal(t, 0, tr.Col())
		require.Less(t, tr.Row(), 5)
	}
}

// TestRandValidates covers argument errors.
func TestRandValidates(t *testing.T) {
	src := rand.NewPCG(0, 0)
	_, err := sparse.Rand(0, 3, 1, 0.5, src)
	require.ErrorIs(t, err, sparse.ErrInvalidShape)
	_, err = sparse.Rand(3, 3, 0, 0.5, src)
	require.ErrorIs(t, err, sparse.ErrInvalidProcs)
	_, err = sparse.Rand(3, 3, 1, 0, src)
	require.ErrorIs(t, err, sparse.ErrInvalidDensity)
	_, err = sparse.Rand(3, 3, 1, 1.5, src)
	require.ErrorIs(t, err, sparse.ErrInvalidDensity)
}
