// SPDX-License-Identifier: MIT
// Package sparse_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures (identity, dense, banded) and a
//     silent logger so partition failures do not spam test output.

package sparse_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/katalvlaran/zee/sparse"
	"github.com/stretchr/testify/require"
)

// quiet discards all log records.
var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// identity returns the n×n identity as triplets.
func identity(n int) []sparse.Triplet {
	ts := make([]sparse.Triplet, n)
	for i := range ts {
		ts[i] = sparse.NewTriplet(i, i, 1)
	}

	return ts
}

// dense returns every entry of an n×n matrix, row-major, value i*n+j+1.
func dense(n int) []sparse.Triplet {
	ts := make([]sparse.Triplet, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			ts = append(ts, sparse.NewTriplet(i, j, float64(i*n+j+1)))
		}
	}

	return ts
}

// mustMatrix builds a matrix with the quiet logger prepended to opts.
func mustMatrix(t testing.TB, rows, cols int, opts ...sparse.Option) *sparse.Matrix {
	t.Helper()
	m, err := sparse.New(rows, cols, append([]sparse.Option{sparse.WithLogger(quiet)}, opts...)...)
	require.NoError(t, err)

	return m
}

// collect returns the triplets of every image, per image.
func collect(m *sparse.Matrix) [][]sparse.Triplet {
	views := m.Images()
	out := make([][]sparse.Triplet, len(views))
	for s, v := range views {
		out[s] = []sparse.Triplet{}
		for t := range v.Triplets() {
			out[s] = append(out[s], t)
		}
	}

	return out
}

// owners maps every triplet to the image holding it and fails on duplicates.
func owners(t *testing.T, m *sparse.Matrix) map[sparse.Triplet]int {
	t.Helper()
	own := make(map[sparse.Triplet]int)
	for s, ts := range collect(m) {
		for _, tr := range ts {
			prev, dup := own[tr]
			require.Falsef(t, dup, "triplet %v in images %d and %d", tr, prev, s)
			own[tr] = s
		}
	}

	return own
}
