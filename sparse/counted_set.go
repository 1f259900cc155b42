// SPDX-License-Identifier: MIT

package sparse

import (
	"iter"
	"maps"
	"slices"
)

// CountedSet is a multiset of indices: every stored key has a count > 0.
// An image keeps one for the rows and one for the columns it touches, which
// answers "how many images touch row k" without a global index→image map.
//
// The zero value is an empty set ready to use. Not safe for concurrent
// mutation.
type CountedSet struct {
	counts map[int]int
}

// Raise increments the count of k, inserting it at 1 when absent.
// Complexity: O(1) amortized.
func (s *CountedSet) Raise(k int) {
	if s.counts == nil {
		s.counts = make(map[int]int)
	}
	s.counts[k]++
}

// Lower decrements the count of k and removes k when the count reaches 0.
// Lowering an absent key is a no-op.
// Complexity: O(1).
func (s *CountedSet) Lower(k int) {
	c, ok := s.counts[k]
	if !ok {
		return
	}
	if c <= 1 {
		delete(s.counts, k)
		return
	}
	s.counts[k] = c - 1
}

// Size returns the number of distinct keys.
func (s *CountedSet) Size() int { return len(s.counts) }

// Count returns the count of k, 0 when absent.
func (s *CountedSet) Count(k int) int { return s.counts[k] }

// Contains reports whether k has a positive count.
func (s *CountedSet) Contains(k int) bool {
	_, ok := s.counts[k]
	return ok
}

// Keys returns the distinct keys in ascending order.
// Complexity: O(n log n).
func (s *CountedSet) Keys() []int {
	return slices.Sorted(maps.Keys(s.counts))
}

// All yields (key, count) pairs in ascending key order.
func (s *CountedSet) All() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for _, k := range s.Keys() {
			if !yield(k, s.counts[k]) {
				return
			}
		}
	}
}
