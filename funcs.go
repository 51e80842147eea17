package plist

import (
	"github.com/npillmayer/plist/btree"
	"github.com/npillmayer/plist/stream"
)

// Map returns a list of f applied to every value of l, together with the
// value's index. The result has the same node layout as l.
func Map[T, U any](l List[T], f func(value T, index int) U) List[U] {
	return listOf(l.ctx, btree.Map(l.root, f, false))
}

// MapReversed is like Map, but the result holds the mapped values in
// reverse order. Indices passed to f are positions in the result.
func MapReversed[T, U any](l List[T], f func(value T, index int) U) List[U] {
	return listOf(l.ctx, btree.Map(l.root, f, true))
}

// Filter returns a list of the values of l for which pred holds.
func Filter[T any](l List[T], pred func(value T, index int) bool) List[T] {
	b := NewBuilder[T](l.context())
	l.ForEach(func(v T, i int, _ func()) {
		if pred(v, i) {
			b.Append(v)
		}
	}, nil)
	if b.Len() == l.Len() {
		return l
	}
	return b.Build()
}

// Reduce folds the values of l with reducer r.
func Reduce[T, S, R any](l List[T], r stream.Reducer[T, S, R]) R {
	return stream.Reduce(l.Iterator(false), r)
}

// Fold folds the values of l from the left, starting with init.
func Fold[T, A any](l List[T], init A, f func(acc A, value T, index int) A) A {
	acc := init
	l.ForEach(func(v T, i int, _ func()) {
		acc = f(acc, v, i)
	}, nil)
	return acc
}

// Equal compares two lists of comparable values.
func Equal[T comparable](a, b List[T]) bool {
	return a.Equals(b, func(x, y T) bool { return x == y })
}

// Flatten concatenates a list of lists.
func Flatten[T any](ll List[List[T]]) List[T] {
	result := Empty[T](ll.context())
	ll.ForEach(func(l List[T], _ int, _ func()) {
		result = result.Concat(l)
	}, nil)
	return result
}
