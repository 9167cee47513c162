// Package sortedvec provides a minimal sorted-vector of ordered values
// with binary-search lookup, used by block.Vec to find the block or
// instruction covering a given byte/instruction offset.
package sortedvec

import "sort"

// Vec is a slice of T that is kept sorted in ascending order by its
// caller; it supports O(log n) membership and predecessor queries. T
// itself is never reordered by Vec — callers append in sorted order.
type Vec[T any] struct {
	items []T
	less  func(a, b T) bool
}

// New returns an empty Vec ordered by less.
func New[T any](less func(a, b T) bool) *Vec[T] {
	return &Vec[T]{less: less}
}

// Append appends v. The caller must ensure v is not less than the
// current last element, or the vector's sortedness invariant breaks.
func (s *Vec[T]) Append(v T) {
	s.items = append(s.items, v)
}

// Len returns the number of elements.
func (s *Vec[T]) Len() int { return len(s.items) }

// At returns the i-th element.
func (s *Vec[T]) At(i int) T { return s.items[i] }

// Slice returns the underlying elements. Callers must not mutate it.
func (s *Vec[T]) Slice() []T { return s.items }

// UpperBound returns the index of the first element strictly greater
// than v, i.e. the insertion point that keeps the vector sorted when v
// is appended after all equal elements. Returns Len() if v is greater
// than or equal to every element.
func (s *Vec[T]) UpperBound(v T) int {
	return sort.Search(len(s.items), func(i int) bool {
		return s.less(v, s.items[i])
	})
}

// LowerBound returns the index of the first element not less than v.
func (s *Vec[T]) LowerBound(v T) int {
	return sort.Search(len(s.items), func(i int) bool {
		return !s.less(s.items[i], v)
	})
}
