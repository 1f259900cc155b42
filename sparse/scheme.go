package sparse

import (
	"fmt"
	"strings"
)

// Scheme selects how triplets are assigned to images.
type Scheme int

const (
	// Cyclic assigns row i to image i mod P.
	Cyclic Scheme = iota

	// Block assigns row i to image ⌊P·i / rows⌋: contiguous row bands.
	Block

	// Random assigns every triplet to a uniform draw in [0, P).
	Random

	// Custom delegates to the registered AssignFunc.
	Custom
)

var schemeNames = [...]string{
	Cyclic: "cyclic",
	Block:  "block",
	Random: "random",
	Custom: "custom",
}

// String returns the lower-case scheme name.
func (s Scheme) String() string {
	if s < 0 || int(s) >= len(schemeNames) {
		return fmt.Sprintf("Scheme(%d)", int(s))
	}

	return schemeNames[s]
}

// Valid reports whether s is one of the known schemes.
func (s Scheme) Valid() bool { return s >= Cyclic && s <= Custom }

// ParseScheme maps a case-insensitive scheme name to its Scheme.
func ParseScheme(name string) (Scheme, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for s, v := range schemeNames {
		if v == n {
			return Scheme(s), nil
		}
	}

	return Cyclic, fmt.Errorf("ParseScheme(%q): %w", name, ErrUnknownScheme)
}

// AssignFunc maps a nonzero at (row, col) to the index of its owning image.
// It is the custom scheme's policy: f : Z_m × Z_n → Z_p, and it must return a
// value in [0, P). It is called from a single goroutine.
type AssignFunc func(row, col int) int

// ColumnCyclic returns the column counterpart of Cyclic: column j goes to
// image j mod procs.
func ColumnCyclic(procs int) AssignFunc {
	if procs < 1 {
		panic("sparse: ColumnCyclic: procs must be >= 1")
	}

	return func(_, col int) int { return col % procs }
}

// Cartesian returns a 2D cyclic assignment over a pr × pc processor grid:
// (i, j) goes to image (i mod pr)·pc + (j mod pc). Use it with P = pr·pc.
func Cartesian(pr, pc int) AssignFunc {
	if pr < 1 || pc < 1 {
		panic("sparse: Cartesian: grid dimensions must be >= 1")
	}

	return func(row, col int) int { return (row%pr)*pc + col%pc }
}
