package plist

/*
BSD 3-Clause License

Copyright (c) 2020–26, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"fmt"
	"iter"
	"strings"

	"github.com/npillmayer/plist/btree"
	"github.com/npillmayer/plist/stream"
)

// List is an immutable, persistent sequence of values of type T.
//
// A list created by
//
//	List[T]{}
//
// is a valid object and is the empty list of the default context, i.e.
// List[T]{} == Empty[T](nil).
//
// Lists are values; copying a list is cheap and never copies elements.
// Two lists compare equal with == if they share their context and their
// root node, e.g. the result of an editing operation which did not change
// anything compares equal to its receiver. Lists of the default context
// store a nil context, so the zero list and Empty[T](nil) are identical.
type List[T any] struct {
	ctx  *btree.Context
	root btree.Node[T] // nil for the empty list
}

// Empty returns the empty list of context ctx. A nil ctx selects the
// default context.
func Empty[T any](ctx *btree.Context) List[T] {
	return listOf[T](ctx, nil)
}

// listOf creates a list value. The default context is stored as nil.
func listOf[T any](ctx *btree.Context, root btree.Node[T]) List[T] {
	if ctx == btree.DefaultContext() {
		ctx = nil
	}
	return List[T]{ctx: ctx, root: root}
}

// Of creates a list of values in the default context.
func Of[T any](values ...T) List[T] {
	return OfContext(nil, values...)
}

// OfContext creates a list of values in context ctx.
func OfContext[T any](ctx *btree.Context, values ...T) List[T] {
	l := Empty[T](ctx)
	return l.withRoot(btree.FromSlice(l.context(), values))
}

// FromSlice creates a list holding a copy of values, in the default context.
func FromSlice[T any](values []T) List[T] {
	return OfContext(nil, values...)
}

// FromSeq creates a list from the values of seq, in the default context.
func FromSeq[T any](seq iter.Seq[T]) List[T] {
	b := NewBuilder[T](nil)
	for v := range seq {
		b.Append(v)
	}
	return b.Build()
}

// Repeat returns a list holding the values of l times times in a row.
// For times <= 0 the result is empty.
func Repeat[T any](l List[T], times int) List[T] {
	if times <= 0 {
		return Empty[T](l.context())
	}
	result, unit := Empty[T](l.context()), l
	for times > 0 {
		if times&1 == 1 {
			result = result.Concat(unit)
		}
		times >>= 1
		if times > 0 {
			unit = unit.Concat(unit)
		}
	}
	return result
}

func (l List[T]) context() *btree.Context {
	if l.ctx == nil {
		return btree.DefaultContext()
	}
	return l.ctx
}

func (l List[T]) withRoot(root btree.Node[T]) List[T] {
	return listOf(l.ctx, root)
}

// --- Queries ---------------------------------------------------------------

// Len returns the number of values in l.
func (l List[T]) Len() int {
	if l.root == nil {
		return 0
	}
	return l.root.Len()
}

// IsEmpty is a predicate to check if l holds no values.
func (l List[T]) IsEmpty() bool {
	return l.root == nil
}

// Context returns the block size context of l.
func (l List[T]) Context() *btree.Context {
	return l.context()
}

// AssumeNonEmpty returns l, and panics with ErrEmptyCollection if l is empty.
func (l List[T]) AssumeNonEmpty() List[T] {
	if l.IsEmpty() {
		panic(ErrEmptyCollection)
	}
	return l
}

// normalizeIndex maps negative indices to positions counted from the end.
func normalizeIndex(index, length int) (int, bool) {
	if index < 0 {
		index += length
	}
	if index < 0 || index >= length {
		return 0, false
	}
	return index, true
}

// clampPosition maps a position between elements, 0 <= pos <= length,
// with negative positions counted from the end.
func clampPosition(pos, length int) int {
	if pos < 0 {
		pos += length
	}
	return max(0, min(pos, length))
}

// At returns the value at index and true, or false if index is out of range.
func (l List[T]) At(index int) (T, bool) {
	i, ok := normalizeIndex(index, l.Len())
	if !ok {
		var zero T
		return zero, false
	}
	return l.root.At(i)
}

// Get returns the value at index, or otherwise if index is out of range.
func (l List[T]) Get(index int, otherwise T) T {
	if v, ok := l.At(index); ok {
		return v
	}
	return otherwise
}

// First returns the first value, or otherwise for an empty list.
func (l List[T]) First(otherwise T) T {
	return l.Get(0, otherwise)
}

// Last returns the last value, or otherwise for an empty list.
func (l List[T]) Last(otherwise T) T {
	return l.Get(-1, otherwise)
}

// --- Persistent edits ------------------------------------------------------

// Prepend returns a list with value added in front of l.
func (l List[T]) Prepend(value T) List[T] {
	if l.root == nil {
		return l.withRoot(btree.Singleton(l.context(), value))
	}
	return l.withRoot(l.root.Prepend(value))
}

// Append returns a list with value added at the end of l.
func (l List[T]) Append(value T) List[T] {
	if l.root == nil {
		return l.withRoot(btree.Singleton(l.context(), value))
	}
	return l.withRoot(l.root.Append(value))
}

// Concat returns l followed by all of others. Lists of a different context
// are re-built in l's context.
func (l List[T]) Concat(others ...List[T]) List[T] {
	root := l.root
	for _, o := range others {
		if root == nil && o.root != nil {
			if o.context() == l.context() {
				root = o.root
			} else {
				debugf("concat: rebuilding %d values in %s", o.Len(), l.context())
				root = btree.NewBuilder(l.context(), o.root).Build()
			}
			continue
		}
		root = btree.Concat(root, o.root)
	}
	if root == l.root {
		return l
	}
	return l.withRoot(root)
}

// Take returns the first amount values of l. A negative amount counts from
// the end: Take(-k) drops the last k values.
func (l List[T]) Take(amount int) List[T] {
	n := l.Len()
	if amount < 0 {
		amount += n
	}
	switch {
	case amount >= n:
		return l
	case amount <= 0:
		return Empty[T](l.context())
	}
	return l.withRoot(l.root.Take(amount))
}

// Drop returns l without its first amount values. A negative amount counts
// from the end: Drop(-k) keeps the last k values.
func (l List[T]) Drop(amount int) List[T] {
	n := l.Len()
	if amount < 0 {
		amount += n
	}
	switch {
	case amount <= 0:
		return l
	case amount >= n:
		return Empty[T](l.context())
	}
	return l.withRoot(l.root.Drop(amount))
}

// Slice returns the values from position from up to, but excluding, to.
// Negative positions count from the end; positions are clamped to the list.
func (l List[T]) Slice(from, to int) List[T] {
	n := l.Len()
	from, to = clampPosition(from, n), clampPosition(to, n)
	if from >= to {
		return Empty[T](l.context())
	}
	return l.Take(to).Drop(from)
}

// SplitAt returns the values before position index and the values from
// index on. A negative index counts from the end.
func (l List[T]) SplitAt(index int) (List[T], List[T]) {
	i := clampPosition(index, l.Len())
	return l.Take(i), l.Drop(i)
}

// UpdateAt returns a list with the value at index replaced by f applied to
// it. If index is out of range, l is returned unchanged.
func (l List[T]) UpdateAt(index int, f func(T) T) List[T] {
	i, ok := normalizeIndex(index, l.Len())
	if !ok {
		return l
	}
	return l.withRoot(l.root.UpdateAt(i, f))
}

// Set returns a list with the value at index replaced by value. If index is
// out of range, l is returned unchanged.
func (l List[T]) Set(index int, value T) List[T] {
	return l.UpdateAt(index, func(T) T { return value })
}

// Insert returns a list with values inserted before position index. A
// negative index counts from the end; positions are clamped to the list.
func (l List[T]) Insert(index int, values ...T) List[T] {
	return l.Splice(index, 0, values...)
}

// Remove returns a list without the amount values starting at index.
func (l List[T]) Remove(index, amount int) List[T] {
	return l.Splice(index, amount, nil...)
}

// Splice returns a list where deleteAmount values starting at index are
// replaced by values.
func (l List[T]) Splice(index, deleteAmount int, values ...T) List[T] {
	n := l.Len()
	i := clampPosition(index, n)
	deleteAmount = max(0, min(deleteAmount, n-i))
	if deleteAmount == 0 && len(values) == 0 {
		return l
	}
	if len(values) == 1 && deleteAmount == 0 {
		switch i {
		case 0:
			return l.Prepend(values[0])
		case n:
			return l.Append(values[0])
		}
	}
	front, back := l.Take(i), l.Drop(i+deleteAmount)
	return front.Concat(OfContext(l.context(), values...), back)
}

// Reversed returns the values of l in reverse order.
func (l List[T]) Reversed() List[T] {
	if l.root == nil {
		return l
	}
	return l.withRoot(l.root.Reversed())
}

// Rotate shifts the values of l by shift positions to the right, moving the
// values falling off the end to the front. A negative shift rotates left.
func (l List[T]) Rotate(shift int) List[T] {
	n := l.Len()
	if n == 0 {
		return l
	}
	shift %= n
	if shift < 0 {
		shift += n
	}
	if shift == 0 {
		return l
	}
	return l.Drop(n - shift).Concat(l.Take(n - shift))
}

// --- Traversal -------------------------------------------------------------

// ForEach calls f for every value of l in order, until f calls halt. state
// may be nil; a non-nil state continues its index count.
func (l List[T]) ForEach(f func(value T, index int, halt func()), state *stream.TraverseState) {
	if l.root == nil {
		return
	}
	l.root.ForEach(f, state)
}

// Iterator returns a fast iterator over the values of l, in order or
// reversed.
func (l List[T]) Iterator(reversed bool) stream.FastIterator[T] {
	if l.root == nil {
		return stream.Empty[T]()
	}
	return l.root.Iterator(reversed)
}

// IteratorRange returns a fast iterator over the values from position from
// up to, but excluding, to.
func (l List[T]) IteratorRange(from, to int, reversed bool) stream.FastIterator[T] {
	return l.Slice(from, to).Iterator(reversed)
}

// All returns an iterator over index/value pairs, for use with range.
func (l List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		it := l.Iterator(false)
		for i := 0; ; i++ {
			v, ok := it.Next()
			if !ok || !yield(i, v) {
				return
			}
		}
	}
}

// Values returns an iterator over the values of l, for use with range.
func (l List[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		stream.Seq(l.Iterator(false))(yield)
	}
}

// Backward returns an iterator over index/value pairs from the end of l to
// its start.
func (l List[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		it := l.Iterator(true)
		for i := l.Len() - 1; ; i-- {
			v, ok := it.Next()
			if !ok || !yield(i, v) {
				return
			}
		}
	}
}

// ToSlice returns the values of l in a new slice.
func (l List[T]) ToSlice() []T {
	return l.toSlice(false)
}

// ToSliceReversed returns the values of l in reverse order in a new slice.
func (l List[T]) ToSliceReversed() []T {
	return l.toSlice(true)
}

func (l List[T]) toSlice(reversed bool) []T {
	out := make([]T, 0, l.Len())
	it := l.Iterator(reversed)
	for v, ok := it.Next(); ok; v, ok = it.Next() {
		out = append(out, v)
	}
	return out
}

// Equals compares l and other element-wise using eq. Lists sharing their
// root node are equal without comparing elements.
func (l List[T]) Equals(other List[T], eq func(a, b T) bool) bool {
	if l.root == other.root {
		return true
	}
	if l.Len() != other.Len() {
		return false
	}
	a, b := l.Iterator(false), other.Iterator(false)
	for {
		x, ok := a.Next()
		if !ok {
			return true
		}
		y, _ := b.Next()
		if !eq(x, y) {
			return false
		}
	}
}

// ToBuilder returns a builder starting with the values of l.
func (l List[T]) ToBuilder() *Builder[T] {
	return &Builder[T]{b: btree.NewBuilder(l.context(), l.root)}
}

// --- Diagnostics -----------------------------------------------------------

// String returns a display form of l like "List(1, 2, 3)".
func (l List[T]) String() string {
	var sb strings.Builder
	sb.WriteString("List(")
	l.ForEach(func(v T, i int, _ func()) {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, v)
	}, nil)
	sb.WriteString(")")
	return sb.String()
}

// Structure returns an indented description of the node layout of l.
func (l List[T]) Structure() string {
	if l.root == nil {
		return "<Empty>\n"
	}
	return l.root.Structure()
}

// Check validates the internal invariants of l. It is meant for tests and
// debugging.
func (l List[T]) Check() error {
	if l.root == nil {
		return nil
	}
	return l.root.Check()
}
