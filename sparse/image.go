// SPDX-License-Identifier: MIT

package sparse

import "iter"

// Image is one processor's local, disjoint share of a distributed matrix.
// It owns exactly one Storage plus the counted sets of rows and columns it
// touches; both sets are kept in lockstep with every storage mutation.
//
// The matrix owns its images exclusively and builds fresh ones on every
// repartition. Anyone who needs to read an image beyond that point holds a
// View, which keeps the old image alive without sharing ownership.
//
// The zero Image has no storage: Push returns ErrNoStorage until it is built
// through NewImage or NewImageWithStorage.
type Image struct {
	storage Storage
	rowset  CountedSet // rows touched by this image
	colset  CountedSet // columns touched by this image
}

// NewImage returns an empty image backed by a TripletList.
func NewImage() *Image {
	return &Image{storage: NewTripletList(0)}
}

// NewImageWithStorage returns an image backed by s. Triplets already in s are
// counted into the row and column sets.
func NewImageWithStorage(s Storage) *Image {
	img := &Image{storage: s}
	if s == nil {
		return img
	}
	for _, t := range s.All() {
		img.rowset.Raise(t.Row())
		img.colset.Raise(t.Col())
	}

	return img
}

// Push raises the row and column counts of t and appends it.
func (img *Image) Push(t Triplet) error {
	if img.storage == nil {
		return opErrorf("Image.Push", ErrNoStorage)
	}
	img.rowset.Raise(t.Row())
	img.colset.Raise(t.Col())
	img.storage.Push(t)

	return nil
}

// Pop removes the triplet at pos and lowers the counts of the removed
// triplet's row and column.
func (img *Image) Pop(pos int) (Triplet, error) {
	if img.storage == nil {
		return Triplet{}, opErrorf("Image.Pop", ErrNoStorage)
	}
	t, err := img.storage.PopAt(pos)
	if err != nil {
		return Triplet{}, err
	}
	img.rowset.Lower(t.Row())
	img.colset.Lower(t.Col())

	return t, nil
}

// Set replaces the triplet at pos with t, moving the counts from the old
// triplet's row and column to the new one's.
func (img *Image) Set(pos int, t Triplet) error {
	if img.storage == nil {
		return opErrorf("Image.Set", ErrNoStorage)
	}
	old, err := img.storage.Set(pos, t)
	if err != nil {
		return err
	}
	img.rowset.Lower(old.Row())
	img.colset.Lower(old.Col())
	img.rowset.Raise(t.Row())
	img.colset.Raise(t.Col())

	return nil
}

// NonZeros returns the number of triplets held by the image.
func (img *Image) NonZeros() int {
	if img.storage == nil {
		return 0
	}

	return img.storage.Size()
}

// At returns the triplet at pos.
func (img *Image) At(pos int) (Triplet, error) {
	if img.storage == nil {
		return Triplet{}, posErrorf(ctxAt, pos, 0, ErrOutOfRange)
	}

	return img.storage.At(pos)
}

// All yields (position, triplet) from first to last.
func (img *Image) All() iter.Seq2[int, Triplet] {
	if img.storage == nil {
		return func(func(int, Triplet) bool) {}
	}

	return img.storage.All()
}

// Backward yields (position, triplet) from last to first.
func (img *Image) Backward() iter.Seq2[int, Triplet] {
	if img.storage == nil {
		return func(func(int, Triplet) bool) {}
	}

	return img.storage.Backward()
}

// View returns a read-only view of the image.
func (img *Image) View() View { return View{img: img} }

// View is the read-only face of an Image. It is what compute functions and
// Matrix.Images hand out. A View retained after a repartition keeps reading
// the image it was taken from; the matrix no longer owns that image.
type View struct {
	img *Image
}

// NonZeros returns the number of triplets held by the image.
func (v View) NonZeros() int { return v.img.NonZeros() }

// At returns the triplet at pos.
func (v View) At(pos int) (Triplet, error) { return v.img.At(pos) }

// All yields (position, triplet) from first to last.
func (v View) All() iter.Seq2[int, Triplet] { return v.img.All() }

// Backward yields (position, triplet) from last to first.
func (v View) Backward() iter.Seq2[int, Triplet] { return v.img.Backward() }

// Triplets yields the image's triplets in storage order.
func (v View) Triplets() iter.Seq[Triplet] {
	return func(yield func(Triplet) bool) {
		for _, t := range v.img.All() {
			if !yield(t) {
				return
			}
		}
	}
}

// RowsTouched returns the number of distinct rows the image holds nonzeros in.
func (v View) RowsTouched() int { return v.img.rowset.Size() }

// ColsTouched returns the number of distinct columns the image holds nonzeros in.
func (v View) ColsTouched() int { return v.img.colset.Size() }

// RowCount returns how many of the image's nonzeros lie in row i.
func (v View) RowCount(i int) int { return v.img.rowset.Count(i) }

// ColCount returns how many of the image's nonzeros lie in column j.
func (v View) ColCount(j int) int { return v.img.colset.Count(j) }

// Rows yields the touched rows in ascending order with their counts.
func (v View) Rows() iter.Seq2[int, int] { return v.img.rowset.All() }

// Cols yields the touched columns in ascending order with their counts.
func (v View) Cols() iter.Seq2[int, int] { return v.img.colset.All() }
