package sparse_test

import (
	"fmt"
	"os"

	"github.com/katalvlaran/zee/sparse"
)

// ExampleMatrix_SetFromTriplets partitions the 4×4 identity over two images
// and reports both quality metrics.
func ExampleMatrix_SetFromTriplets() {
	A, err := sparse.New(4, 4, sparse.WithProcs(2), sparse.WithScheme(sparse.Cyclic))
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	err = A.SetFromTriplets([]sparse.Triplet{
		sparse.NewTriplet(0, 0, 1), sparse.NewTriplet(1, 1, 1),
		sparse.NewTriplet(2, 2, 1), sparse.NewTriplet(3, 3, 1),
	})
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	for s, v := range A.Images() {
		fmt.Print("image ", s, ":")
		for t := range v.Triplets() {
			fmt.Print(" ", t)
		}
		fmt.Println()
	}
	eps, _ := A.LoadImbalance()
	fmt.Printf("load imbalance=%.2f communication volume=%d\n", eps, A.CommunicationVolume())
	// Output:
	// image 0: {0, 0, 1} {2, 2, 1}
	// image 1: {1, 1, 1} {3, 3, 1}
	// load imbalance=1.00 communication volume=0
}

// ExampleCompute counts the distinct rows every image touches.
func ExampleCompute() {
	A, _ := sparse.Eye(6, 3)
	rows := sparse.Compute(A, func(v sparse.View, _ int) int { return v.RowsTouched() })
	fmt.Println(rows)
	// Output:
	// [2 2 2]
}

// ExampleMatrix_Spy prints the spy dump of a 2-image identity.
func ExampleMatrix_Spy() {
	A, _ := sparse.Eye(2, 2)
	_ = A.Spy(os.Stdout, "eye2")
	// Output:
	// %%MatrixMarket matrix coordinate integer general
	// % Matrix sparsity:      0.5000
	// % Load imbalance:       1.0000
	// % Communication Volume: 0
	// % eye2
	// 2 2 2
	// 0 0 0
	// 1 1 1
}
