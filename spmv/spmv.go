// SPDX-License-Identifier: MIT

// Package spmv multiplies a distributed sparse matrix with a dense vector.
//
// Vectors are plain gonum *mat.VecDense values and are not distributed.
// Multiply runs one kernel per image through sparse.Compute; every kernel
// accumulates into a private partial result, and the partials are summed into
// u afterwards in image order. No kernel ever writes shared memory.
package spmv

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/katalvlaran/zee/sparse"
	"gonum.org/v1/gonum/mat"
)

// ErrDimensionMismatch is returned when v or u does not fit the matrix shape.
var ErrDimensionMismatch = errors.New("spmv: dimension mismatch")

// partial is one image's contribution to u, keyed by row.
type partial map[int]float64

// Multiply computes u ← u + A·v.
//
// v must have A.Cols() elements and u must have A.Rows() elements.
// The result is deterministic for a fixed partition.
func Multiply(A *sparse.Matrix, v, u *mat.VecDense) error {
	if err := checkDims(A, v, u); err != nil {
		return fmt.Errorf("Multiply: %w", err)
	}

	partials := sparse.Compute(A, func(img sparse.View, _ int) partial {
		out := make(partial, img.RowsTouched())
		for t := range img.Triplets() {
			out[t.Row()] += t.Value() * v.AtVec(t.Col())
		}

		return out
	})
	for _, p := range partials {
		for i, x := range p {
			u.SetVec(i, u.AtVec(i)+x)
		}
	}

	return nil
}

// Serial is the single-threaded reference kernel for Multiply.
func Serial(A *sparse.Matrix, v, u *mat.VecDense) error {
	if err := checkDims(A, v, u); err != nil {
		return fmt.Errorf("Serial: %w", err)
	}
	for _, t := range A.Triplets() {
		u.SetVec(t.Row(), u.AtVec(t.Row())+t.Value()*v.AtVec(t.Col()))
	}

	return nil
}

func checkDims(A *sparse.Matrix, v, u *mat.VecDense) error {
	if v.Len() != A.Cols() {
		return fmt.Errorf("v has %d elements, matrix has %d columns: %w", v.Len(), A.Cols(), ErrDimensionMismatch)
	}
	if u.Len() != A.Rows() {
		return fmt.Errorf("u has %d elements, matrix has %d rows: %w", u.Len(), A.Rows(), ErrDimensionMismatch)
	}

	return nil
}

// RandomVector returns n values uniform in [0, 1) drawn from src.
func RandomVector(n int, src rand.Source) *mat.VecDense {
	if n == 0 {
		return &mat.VecDense{}
	}
	rng := rand.New(src)
	data := make([]float64, n)
	for i := range data {
		data[i] = rng.Float64()
	}

	return mat.NewVecDense(n, data)
}

// Zeros returns the zero vector of length n.
func Zeros(n int) *mat.VecDense {
	if n == 0 {
		return &mat.VecDense{}
	}

	return mat.NewVecDense(n, nil)
}
