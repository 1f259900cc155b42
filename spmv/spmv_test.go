package spmv_test

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/katalvlaran/zee/sparse"
	"github.com/katalvlaran/zee/spmv"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestMultiplyIdentity(t *testing.T) {
	A, err := sparse.Eye(5, 3, sparse.WithLogger(quiet))
	require.NoError(t, err)
	v := mat.NewVecDense(5, []float64{1, 2, 3, 4, 5})
	u := spmv.Zeros(5)

	require.NoError(t, spmv.Multiply(A, v, u))
	require.Equal(t, []float64{1, 2, 3, 4, 5}, u.RawVector().Data)
}

func TestMultiplyAccumulates(t *testing.T) {
	A, err := sparse.New(2, 3, sparse.WithLogger(quiet), sparse.WithProcs(2))
	require.NoError(t, err)
	require.NoError(t, A.SetFromTriplets([]sparse.Triplet{
		sparse.NewTriplet(0, 0, 1), sparse.NewTriplet(0, 2, 2),
		sparse.NewTriplet(1, 1, 3),
	}))
	v := mat.NewVecDense(3, []float64{1, 1, 1})
	u := mat.NewVecDense(2, []float64{10, 20})

	require.NoError(t, spmv.Multiply(A, v, u))
	require.Equal(t, []float64{13, 23}, u.RawVector().Data)
}

// TestMultiplyMatchesSerial compares the distributed kernel with the serial
// reference for every scheme.
func TestMultiplyMatchesSerial(t *testing.T) {
	for _, s := range []sparse.Scheme{sparse.Cyclic, sparse.Block, sparse.Random} {
		t.Run(s.String(), func(t *testing.T) {
			src, err := sparse.Rand(60, 40, 1, 0.2, rand.NewPCG(5, 6), sparse.WithLogger(quiet))
			require.NoError(t, err)
			A, err := sparse.New(60, 40, sparse.WithLogger(quiet),
				sparse.WithProcs(4), sparse.WithScheme(s), sparse.WithSeed(9))
			require.NoError(t, err)
			require.NoError(t, A.SetFromTriplets(src.Triplets()))

			v := spmv.RandomVector(40, rand.NewPCG(7, 8))
			got, want := spmv.Zeros(60), spmv.Zeros(60)
			require.NoError(t, spmv.Multiply(A, v, got))
			require.NoError(t, spmv.Serial(A, v, want))
			require.True(t, floats.EqualApprox(got.RawVector().Data, want.RawVector().Data, 1e-12))
		})
	}
}

func TestMultiplyDimensionMismatch(t *testing.T) {
	A, err := sparse.Eye(3, 1, sparse.WithLogger(quiet))
	require.NoError(t, err)

	err = spmv.Multiply(A, spmv.Zeros(2), spmv.Zeros(3))
	require.ErrorIs(t, err, spmv.ErrDimensionMismatch)
	err = spmv.Multiply(A, spmv.Zeros(3), spmv.Zeros(4))
	require.ErrorIs(t, err, spmv.ErrDimensionMismatch)
	err = spmv.Serial(A, spmv.Zeros(4), spmv.Zeros(3))
	require.ErrorIs(t, err, spmv.ErrDimensionMismatch)
}

func TestVectors(t *testing.T) {
	v := spmv.RandomVector(100, rand.NewPCG(1, 1))
	require.Equal(t, 100, v.Len())
	for i := 0; i < v.Len(); i++ {
		require.GreaterOrEqual(t, v.AtVec(i), 0.0)
		require.Less(t, v.AtVec(i), 1.0)
	}
	require.Equal(t, v.RawVector().Data, spmv.RandomVector(100, rand.NewPCG(1, 1)).RawVector().Data)

	require.Equal(t, 0.0, mat.Sum(spmv.Zeros(4)))
	require.Equal(t, 0, spmv.Zeros(0).Len())
	require.Equal(t, 0, spmv.RandomVector(0, rand.NewPCG(1, 1)).Len())
}
