// SPDX-License-Identifier: MIT

// Package spyplot reads spy dumps written by (*sparse.Matrix).Spy and draws
// them as spy plots, one colour per image.
package spyplot

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"math/bits"
	"strconv"
	"strings"

	"github.com/katalvlaran/zee/sparse"
)

// ErrMalformed is returned when a spy dump cannot be parsed.
var ErrMalformed = errors.New("spyplot: malformed spy dump")

// Comment keys written by sparse.Spy.
const (
	keySparsity  = "Matrix sparsity"
	keyImbalance = "Load imbalance"
	keyVolume    = "Communication Volume"
)

// Entry is one nonzero of a dump, 0-based, with its owning image.
type Entry struct {
	Row, Col, Image int
}

// Dump is a parsed spy dump.
type Dump struct {
	Title      string
	Rows, Cols int
	// Procs is one more than the largest image index present.
	Procs    int
	Sparsity float64
	// LoadImbalance is NaN when the dump recorded "n/a".
	LoadImbalance float64
	Volume        int
	Entries       []Entry
}

// Parse reads a spy dump.
func Parse(r io.Reader) (*Dump, error) {
	sc := bufio.NewScanner(r)
	d := &Dump{LoadImbalance: math.NaN()}
	line := 0
	fail := func(format string, args ...any) error {
		return fmt.Errorf("Parse: line %d: %s: %w", line, fmt.Sprintf(format, args...), ErrMalformed)
	}

	if !sc.Scan() || !strings.HasPrefix(sc.Text(), "%%MatrixMarket") {
		line = 1
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("Parse: %w", err)
		}

		return nil, fail("missing %q header", sparse.SpyHeader)
	}
	line++

	nz, sized := 0, false
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if strings.HasPrefix(text, "%") {
			if err := d.comment(strings.TrimSpace(text[1:])); err != nil {
				return nil, fail("%v", err)
			}

			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 3 {
			return nil, fail("want 3 fields, got %d", len(fields))
		}
		var v [3]int
		for i, s := range fields {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				return nil, fail("bad integer %q", s)
			}
			v[i] = n
		}
		if !sized {
			d.Rows, d.Cols, nz = v[0], v[1], v[2]
			if hi, cells := bits.Mul64(uint64(d.Rows), uint64(d.Cols)); hi == 0 && uint64(nz) > cells {
				return nil, fail("%d entries in %d×%d", nz, d.Rows, d.Cols)
			}
			d.Entries = make([]Entry, 0, min(nz, 1<<16))
			sized = true

			continue
		}
		if v[0] >= d.Rows || v[1] >= d.Cols {
			return nil, fail("entry (%d, %d) outside %d×%d", v[0], v[1], d.Rows, d.Cols)
		}
		d.Entries = append(d.Entries, Entry{Row: v[0], Col: v[1], Image: v[2]})
		d.Procs = max(d.Procs, v[2]+1)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("Parse: %w", err)
	}
	if !sized {
		return nil, fail("missing size line")
	}
	if len(d.Entries) != nz {
		return nil, fail("%d entries, size line declares %d", len(d.Entries), nz)
	}

	return d, nil
}

// comment interprets one comment line; unknown comments become the title.
func (d *Dump) comment(text string) error {
	key, value, ok := strings.Cut(text, ":")
	if !ok {
		d.Title = text

		return nil
	}
	value = strings.TrimSpace(value)
	var err error
	switch strings.TrimSpace(key) {
	case keySparsity:
		d.Sparsity, err = strconv.ParseFloat(value, 64)
	case keyImbalance:
		if value != "n/a" {
			d.LoadImbalance, err = strconv.ParseFloat(value, 64)
		}
	case keyVolume:
		d.Volume, err = strconv.Atoi(value)
	default:
		d.Title = text
	}
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}

	return nil
}

// ByImage groups the entries by owning image; the result has Procs slots.
func (d *Dump) ByImage() [][]Entry {
	out := make([][]Entry, d.Procs)
	for _, e := range d.Entries {
		out[e.Image] = append(out[e.Image], e)
	}

	return out
}
