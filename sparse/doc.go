// Package sparse provides a sparse matrix distributed over P logical
// processors ("images") and the tools to judge how good that distribution is
// for a parallel sparse matrix-vector multiplication (SPMV).
//
// The package provides:
//
//   - Triplet, the immutable (row, col, value) representation of one nonzero.
//   - CountedSet, a multiset of row/column indices with occurrence counts.
//   - Storage, the ordered triplet container owned by an image (TripletList).
//   - Image, one processor's disjoint share of the matrix, and View, its
//     read-only face handed to compute functions and external holders.
//   - Matrix, which owns the images, the active partitioning scheme and the
//     cached nonzero count.
//
// Partitioning schemes (Scheme):
//
//	– Cyclic:  triplet (i, j) goes to image i mod P.
//	– Block:   triplet (i, j) goes to image ⌊P·i / rows⌋.
//	– Random:  uniform draw in [0, P) from an injectable source (WithRandSource, WithSeed).
//	– Custom:  a caller-supplied AssignFunc(i, j) → [0, P).
//
// Quality metrics:
//
//	– LoadImbalance:       max_s P·|A_s| / |A|, never below 1.
//	– CommunicationVolume: Σ_i (λ_i − 1) + Σ_j (μ_j − 1), where λ_i (μ_j) is the
//	  number of images holding a nonzero in row i (column j).
//
// Concurrency:
//
//	Compute and ComputeEach run exactly one goroutine per image and join them
//	before returning; results are ordered by image index. While a compute call
//	is in flight the image collection cannot be replaced: repartitioning
//	returns ErrBusy. The same holds while any other reader (a metric, a spy
//	plot) is running.
//
// Example:
//
//	A, _ := sparse.New(4, 4, sparse.WithProcs(2))
//	_ = A.SetFromTriplets([]sparse.Triplet{
//		sparse.NewTriplet(0, 0, 1), sparse.NewTriplet(1, 1, 1),
//		sparse.NewTriplet(2, 2, 1), sparse.NewTriplet(3, 3, 1),
//	})
//	eps, _ := A.LoadImbalance()       // 1.0
//	vol := A.CommunicationVolume()    // 0
package sparse
