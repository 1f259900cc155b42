package sparse

// ColumnWeight returns the number of nonzeros in column j, summed over images.
func (m *Matrix) ColumnWeight(j int) int {
	counts := Compute(m, func(v View, _ int) int { return v.ColCount(j) })

	return sum(counts)
}

// RowWeight returns the number of nonzeros in row i, summed over images.
func (m *Matrix) RowWeight(i int) int {
	counts := Compute(m, func(v View, _ int) int { return v.RowCount(i) })

	return sum(counts)
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}

	return total
}
