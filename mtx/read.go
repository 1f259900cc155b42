// SPDX-License-Identifier: MIT

// Package mtx reads MatrixMarket coordinate files into sparse triplets.
//
// Supported banners:
//
//	%%MatrixMarket matrix coordinate real|integer|pattern general|symmetric
//
// Indices in the file are 1-based and are converted to 0-based triplets.
// Pattern entries get the value 1. For symmetric files every off-diagonal
// entry is mirrored, so File.Triplets may hold more than File.Entries items.
package mtx

import (
	"bufio"
	"fmt"
	"io"
	"math/bits"
	"strconv"
	"strings"

	"github.com/katalvlaran/zee/sparse"
)

// Banner is the magic prefix of every MatrixMarket file.
const Banner = "%%MatrixMarket"

// maxPrealloc caps the triplet capacity reserved from the size line.
const maxPrealloc = 1 << 16

// Field and symmetry names accepted by Read.
const (
	FieldReal    = "real"
	FieldInteger = "integer"
	FieldPattern = "pattern"

	SymmetryGeneral   = "general"
	SymmetrySymmetric = "symmetric"
)

// File is a parsed MatrixMarket coordinate file.
type File struct {
	Rows, Cols int
	// Entries is the entry count declared on the size line.
	Entries  int
	Field    string
	Symmetry string
	Triplets []sparse.Triplet
}

// Read parses a MatrixMarket coordinate stream.
func Read(r io.Reader) (*File, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", ctxRead, err)
		}

		return nil, lineErrorf(1, ErrBadHeader)
	}
	line++
	f, err := parseBanner(sc.Text())
	if err != nil {
		return nil, lineErrorf(line, err)
	}

	sized := false
	read := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "%") {
			continue
		}
		if !sized {
			if err = f.parseSize(text); err != nil {
				return nil, lineErrorf(line, err)
			}
			sized = true

			continue
		}
		if read == f.Entries {
			return nil, lineErrorf(line, ErrEntryCount)
		}
		if err = f.parseEntry(text); err != nil {
			return nil, lineErrorf(line, err)
		}
		read++
	}
	if err = sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxRead, err)
	}
	if !sized {
		return nil, lineErrorf(line, ErrBadSize)
	}
	if read != f.Entries {
		return nil, fmt.Errorf("%s: read %d of %d entries: %w", ctxRead, read, f.Entries, ErrEntryCount)
	}

	return f, nil
}

func parseBanner(text string) (*File, error) {
	fields := strings.Fields(text)
	if len(fields) != 5 || !strings.EqualFold(fields[0], Banner) {
		return nil, ErrBadHeader
	}
	object, format := strings.ToLower(fields[1]), strings.ToLower(fields[2])
	field, symmetry := strings.ToLower(fields[3]), strings.ToLower(fields[4])
	if object != "matrix" || format != "coordinate" {
		return nil, fmt.Errorf("%s %s: %w", object, format, ErrUnsupported)
	}
	switch field {
	case FieldReal, FieldInteger, FieldPattern:
	default:
		return nil, fmt.Errorf("field %q: %w", field, ErrUnsupported)
	}
	switch symmetry {
	case SymmetryGeneral, SymmetrySymmetric:
	default:
		return nil, fmt.Errorf("symmetry %q: %w", symmetry, ErrUnsupported)
	}

	return &File{Field: field, Symmetry: symmetry}, nil
}

func (f *File) parseSize(text string) error {
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return ErrBadSize
	}
	var dims [3]int
	for i, s := range fields {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return ErrBadSize
		}
		dims[i] = v
	}
	f.Rows, f.Cols, f.Entries = dims[0], dims[1], dims[2]
	if hi, cells := bits.Mul64(uint64(f.Rows), uint64(f.Cols)); hi == 0 && uint64(f.Entries) > cells {
		return fmt.Errorf("%d entries in %dx%d: %w", f.Entries, f.Rows, f.Cols, ErrBadSize)
	}
	if f.Symmetry == SymmetrySymmetric && f.Rows != f.Cols {
		return fmt.Errorf("symmetric %dx%d: %w", f.Rows, f.Cols, ErrBadSize)
	}
	// The header is untrusted; larger files grow the slice as they are read.
	capacity := min(f.Entries, maxPrealloc)
	if f.Symmetry == SymmetrySymmetric {
		capacity *= 2
	}
	f.Triplets = make([]sparse.Triplet, 0, capacity)

	return nil
}

func (f *File) parseEntry(text string) error {
	fields := strings.Fields(text)
	want := 3
	if f.Field == FieldPattern {
		want = 2
	}
	if len(fields) != want {
		return fmt.Errorf("%d fields, want %d: %w", len(fields), want, ErrBadEntry)
	}
	i, err := strconv.Atoi(fields[0])
	if err != nil {
		return fmt.Errorf("row %q: %w", fields[0], ErrBadEntry)
	}
	j, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("col %q: %w", fields[1], ErrBadEntry)
	}
	if i < 1 || i > f.Rows || j < 1 || j > f.Cols {
		return fmt.Errorf("(%d, %d) in %d×%d: %w", i, j, f.Rows, f.Cols, ErrEntryOutOfRange)
	}
	value := 1.0
	if f.Field != FieldPattern {
		if f.Field == FieldInteger {
			n, perr := strconv.ParseInt(fields[2], 10, 64)
			if perr != nil {
				return fmt.Errorf("value %q: %w", fields[2], ErrBadEntry)
			}
			value = float64(n)
		} else if value, err = strconv.ParseFloat(fields[2], 64); err != nil {
			return fmt.Errorf("value %q: %w", fields[2], ErrBadEntry)
		}
	}

	f.Triplets = append(f.Triplets, sparse.NewTriplet(i-1, j-1, value))
	if f.Symmetry == SymmetrySymmetric && i != j {
		f.Triplets = append(f.Triplets, sparse.NewTriplet(j-1, i-1, value))
	}

	return nil
}
