package sparse

import "fmt"

// Triplet is the (row, col, value) representation of one matrix nonzero.
// Triplets are immutable and comparable: two triplets are equal when all
// three fields are equal. Bounds are not checked here; callers keep
// row < rows and col < cols of the matrix they feed.
type Triplet struct {
	row, col int
	value    float64
}

// NewTriplet returns the triplet (row, col, value).
func NewTriplet(row, col int, value float64) Triplet {
	return Triplet{row: row, col: col, value: value}
}

// Row returns the row position inside the matrix.
func (t Triplet) Row() int { return t.row }

// Col returns the column position inside the matrix.
func (t Triplet) Col() int { return t.col }

// Value returns the stored value.
func (t Triplet) Value() float64 { return t.value }

// String implements fmt.Stringer as {row, col, value}.
func (t Triplet) String() string {
	return fmt.Sprintf("{%d, %d, %g}", t.row, t.col, t.value)
}
