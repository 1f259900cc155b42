package sparse_test

import (
	"testing"

	"github.com/katalvlaran/zee/sparse"
	"github.com/stretchr/testify/require"
)

// TestImagePushKeepsSetsInLockstep verifies row/col counts follow pushes.
func TestImagePushKeepsSetsInLockstep(t *testing.T) {
	img := sparse.NewImage()
	require.NoError(t, img.Push(sparse.NewTriplet(0, 1, 1)))
	require.NoError(t, img.Push(sparse.NewTriplet(0, 2, 1)))
	require.NoError(t, img.Push(sparse.NewTriplet(3, 2, 1)))

	v := img.View()
	require.Equal(t, 3, img.NonZeros())
	require.Equal(t, 2, v.RowsTouched())
	require.Equal(t, 2, v.ColsTouched())
	require.Equal(t, 2, v.RowCount(0))
	require.Equal(t, 2, v.ColCount(2))
}

// TestImagePopLowersRemovedTriplet ensures Pop lowers the counts of the
// removed triplet, not of the position index.
func TestImagePopLowersRemovedTriplet(t *testing.T) {
	img := sparse.NewImage()
	require.NoError(t, img.Push(sparse.NewTriplet(5, 6, 1)))
	require.NoError(t, img.Push(sparse.NewTriplet(0, 1, 1)))

	got, err := img.Pop(0)
	require.NoError(t, err)
	require.Equal(t, sparse.NewTriplet(5, 6, 1), got)

	v := img.View()
	require.Equal(t, 0, v.RowCount(5))
	require.Equal(t, 0, v.ColCount(6))
	require.Equal(t, 1, v.RowCount(0)) // untouched although 0 was the position
	require.Equal(t, 1, v.RowsTouched())

	_, err = img.Pop(3)
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
	require.Equal(t, 1, img.NonZeros())
}

// TestImageSetMovesCounts checks that replacing a triplet moves its counts.
func TestImageSetMovesCounts(t *testing.T) {
	img := sparse.NewImage()
	require.NoError(t, img.Push(sparse.NewTriplet(1, 1, 1)))
	require.NoError(t, img.Set(0, sparse.NewTriplet(2, 3, 4)))

	v := img.View()
	require.Equal(t, 0, v.RowCount(1))
	require.Equal(t, 1, v.RowCount(2))
	require.Equal(t, 1, v.ColCount(3))

	require.ErrorIs(t, img.Set(1, sparse.NewTriplet(0, 0, 0)), sparse.ErrOutOfRange)
}

// TestImageWithoutStorage checks the resource error of a zero Image.
func TestImageWithoutStorage(t *testing.T) {
	var img sparse.Image
	require.ErrorIs(t, img.Push(sparse.NewTriplet(0, 0, 1)), sparse.ErrNoStorage)
	_, err := img.Pop(0)
	require.ErrorIs(t, err, sparse.ErrNoStorage)
	require.Equal(t, 0, img.NonZeros())
	require.Equal(t, 0, img.View().RowsTouched())

	n := 0
	for range img.All() {
		n++
	}
	require.Zero(t, n)
}

// TestNewImageWithStorageCountsExisting verifies pre-filled storage is counted.
func TestNewImageWithStorageCountsExisting(t *testing.T) {
	l := sparse.NewTripletList(0)
	l.Push(sparse.NewTriplet(4, 4, 1))
	l.Push(sparse.NewTriplet(4, 5, 1))

	img := sparse.NewImageWithStorage(l)
	require.Equal(t, 2, img.NonZeros())
	require.Equal(t, 2, img.View().RowCount(4))

	var rows []int
	for i := range img.View().Rows() {
		rows = append(rows, i)
	}
	require.Equal(t, []int{4}, rows)
}

// TestViewBackward confirms read-only reverse iteration through a View.
func TestViewBackward(t *testing.T) {
	img := sparse.NewImage()
	for i := 0; i < 3; i++ {
		require.NoError(t, img.Push(sparse.NewTriplet(i, 0, 1)))
	}
	var rows []int
	for _, tr := range img.View().Backward() {
		rows = append(rows, tr.Row())
	}
	require.Equal(t, []int{2, 1, 0}, rows)

	first, err := img.View().At(0)
	require.NoError(t, err)
	require.Equal(t, 0, first.Row())
}
