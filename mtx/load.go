// SPDX-License-Identifier: MIT

package mtx

import (
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/zee/sparse"
)

// Matrix builds a distributed matrix of the file's shape and partitions the
// file's triplets with the scheme configured by opts.
func (f *File) Matrix(opts ...sparse.Option) (*sparse.Matrix, error) {
	m, err := sparse.New(f.Rows, f.Cols, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxLoad, err)
	}
	if err = m.SetFromTriplets(f.Triplets); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxLoad, err)
	}

	return m, nil
}

// LoadMatrix reads a MatrixMarket stream and distributes it.
func LoadMatrix(r io.Reader, opts ...sparse.Option) (*sparse.Matrix, error) {
	f, err := Read(r)
	if err != nil {
		return nil, err
	}

	return f.Matrix(opts...)
}

// LoadFile is LoadMatrix on the named file.
func LoadFile(path string, opts ...sparse.Option) (*sparse.Matrix, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxLoad, err)
	}
	defer fh.Close()

	return LoadMatrix(fh, opts...)
}
