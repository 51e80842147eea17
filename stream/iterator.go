package stream

import "iter"

// FastIterator steps through a sequence of values without allocating a
// result record per step.
//
// FastNext returns the next value, or otherwise if the sequence is exhausted.
// Clients choose a sentinel for otherwise which cannot occur in the sequence,
// or use Next to get an explicit indicator.
type FastIterator[T any] interface {
	FastNext(otherwise T) T
	Next() (T, bool)
}

// Empty returns an iterator without values.
func Empty[T any]() FastIterator[T] {
	return emptyIterator[T]{}
}

type emptyIterator[T any] struct{}

func (emptyIterator[T]) FastNext(otherwise T) T { return otherwise }

func (emptyIterator[T]) Next() (T, bool) {
	var zero T
	return zero, false
}

// FromSlice returns an iterator over the values of s, in order or reversed.
// The slice is not copied.
func FromSlice[T any](s []T, reversed bool) FastIterator[T] {
	return &sliceIterator[T]{values: s, reversed: reversed}
}

type sliceIterator[T any] struct {
	values   []T
	pos      int
	reversed bool
}

func (it *sliceIterator[T]) FastNext(otherwise T) T {
	if v, ok := it.Next(); ok {
		return v
	}
	return otherwise
}

func (it *sliceIterator[T]) Next() (T, bool) {
	if it.pos >= len(it.values) {
		var zero T
		return zero, false
	}
	i := it.pos
	if it.reversed {
		i = len(it.values) - 1 - it.pos
	}
	it.pos++
	return it.values[i], true
}

// Limit returns an iterator which yields at most n values of it.
func Limit[T any](it FastIterator[T], n int) FastIterator[T] {
	return &limitIterator[T]{inner: it, remaining: n}
}

type limitIterator[T any] struct {
	inner     FastIterator[T]
	remaining int
}

func (it *limitIterator[T]) FastNext(otherwise T) T {
	if v, ok := it.Next(); ok {
		return v
	}
	return otherwise
}

func (it *limitIterator[T]) Next() (T, bool) {
	if it.remaining <= 0 {
		var zero T
		return zero, false
	}
	it.remaining--
	return it.inner.Next()
}

// Seq adapts a FastIterator to a range-over-func sequence. The iterator is
// consumed by ranging over the result.
func Seq[T any](it FastIterator[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := it.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Collect drains it into a new slice.
func Collect[T any](it FastIterator[T]) []T {
	var out []T
	for {
		v, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}
