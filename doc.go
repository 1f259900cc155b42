// Package zee is an in-memory framework for distributing sparse matrices over
// P images and measuring the quality of the distribution.
//
// What is in the box?
//
//	• Partitioning: cyclic, block, random and custom schemes over P images
//	• Metrics: load imbalance and communication volume
//	• Per-image parallel compute with ordered results
//	• Spy dumps and spy plots of a partition
//	• A distributed sparse matrix-vector product
//
// Everything is organized under these packages:
//
//	sparse/    - Matrix, Image, Triplet, schemes, Compute, metrics, spy dumps
//	mtx/       - MatrixMarket coordinate reader
//	spmv/      - u ← u + A·v with one kernel per image
//	spyplot/   - spy dump parser and gonum/plot renderer
//	report/    - partition summary as text or JSON
//	stopwatch/ - phase timing reported through slog
//	config/    - YAML experiment files
//	cmd/zee    - the command-line front end
//
// Quick example, the 4×4 identity over two images:
//
//	    image 0: (0,0) (2,2)
//	    image 1: (1,1) (3,3)
//
// has load imbalance 1 and communication volume 0.
//
//	go install github.com/katalvlaran/zee/cmd/zee@latest
package zee
