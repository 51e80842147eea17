package plist

import (
	"github.com/npillmayer/plist/btree"
	"github.com/npillmayer/plist/stream"
)

// Builder collects edits to a list in mutable working nodes and creates a
// new List on Build. Building a list with a builder is considerably faster
// than a sequence of persistent edits.
//
// A builder is not safe for concurrent use. Changing a builder from within
// its own ForEach panics with ErrModifiedBuilderWhileLooping.
type Builder[T any] struct {
	b    *btree.Builder[T]
	lock int
}

// NewBuilder creates an empty builder for context ctx. A nil ctx selects
// the default context.
func NewBuilder[T any](ctx *btree.Context) *Builder[T] {
	return &Builder[T]{b: btree.NewBuilder[T](ctx, nil)}
}

func (b *Builder[T]) checkLock() {
	if b.lock > 0 {
		errorf("builder modified while looping")
		panic(ErrModifiedBuilderWhileLooping)
	}
}

// Len returns the number of values collected so far.
func (b *Builder[T]) Len() int {
	return b.b.Len()
}

// IsEmpty is a predicate to check if b holds no values.
func (b *Builder[T]) IsEmpty() bool {
	return b.b.Len() == 0
}

// Get returns the value at index, or otherwise if index is out of range.
// A negative index counts from the end.
func (b *Builder[T]) Get(index int, otherwise T) T {
	i, ok := normalizeIndex(index, b.Len())
	if !ok {
		return otherwise
	}
	v, _ := b.b.At(i)
	return v
}

// UpdateAt replaces the value at index by f applied to it, and returns the
// previous value. If index is out of range, otherwise is returned.
func (b *Builder[T]) UpdateAt(index int, f func(T) T, otherwise T) T {
	b.checkLock()
	i, ok := normalizeIndex(index, b.Len())
	if !ok {
		return otherwise
	}
	old, _ := b.b.Update(i, f)
	return old
}

// Set replaces the value at index and returns the previous value, or
// otherwise if index is out of range.
func (b *Builder[T]) Set(index int, value T, otherwise T) T {
	return b.UpdateAt(index, func(T) T { return value }, otherwise)
}

// Append adds value at the end.
func (b *Builder[T]) Append(value T) {
	b.checkLock()
	b.b.Append(value)
}

// Prepend adds value at the start.
func (b *Builder[T]) Prepend(value T) {
	b.checkLock()
	b.b.Prepend(value)
}

// AppendAll adds values at the end.
func (b *Builder[T]) AppendAll(values ...T) {
	b.checkLock()
	for _, v := range values {
		b.b.Append(v)
	}
}

// Insert inserts value before position index. A negative index counts from
// the end; positions are clamped to the builder's length.
func (b *Builder[T]) Insert(index int, value T) {
	b.checkLock()
	_ = b.b.Insert(clampPosition(index, b.Len()), value)
}

// Remove removes the value at index and returns it, or false if index is
// out of range.
func (b *Builder[T]) Remove(index int) (T, bool) {
	b.checkLock()
	i, ok := normalizeIndex(index, b.Len())
	if !ok {
		var zero T
		return zero, false
	}
	return b.b.Remove(i)
}

// RemoveFirst removes the first value and returns it, or false if b is empty.
func (b *Builder[T]) RemoveFirst() (T, bool) {
	return b.Remove(0)
}

// RemoveLast removes the last value and returns it, or false if b is empty.
func (b *Builder[T]) RemoveLast() (T, bool) {
	return b.Remove(-1)
}

// Concat appends the values collected by other. other is built in the
// process and stays usable. Neither builder may be looping.
func (b *Builder[T]) Concat(other *Builder[T]) {
	b.checkLock()
	other.checkLock()
	b.b.Concat(other.b.Build())
}

// ConcatList appends the values of l.
func (b *Builder[T]) ConcatList(l List[T]) {
	b.checkLock()
	b.b.Concat(l.root)
}

// ForEach calls f for every value in order, until f calls halt.
func (b *Builder[T]) ForEach(f func(value T, index int, halt func()), state *stream.TraverseState) {
	b.lock++
	defer func() { b.lock-- }()
	b.b.ForEach(f, state)
}

// Build returns a list of the values collected so far. The builder stays
// usable; later changes to it do not affect the returned list. Build
// re-arranges the builder's working nodes and must not be called from
// within ForEach.
func (b *Builder[T]) Build() List[T] {
	b.checkLock()
	return listOf(b.b.Context(), b.b.Build())
}

// Reset removes all values from b.
func (b *Builder[T]) Reset() {
	b.checkLock()
	b.b.Reset()
}

// BuildMap returns a list of f applied to every value collected by b.
// The values of b are not changed; like Build, BuildMap must not be called
// from within b's ForEach.
func BuildMap[T, U any](b *Builder[T], f func(T) U) List[U] {
	b.checkLock()
	return listOf(b.b.Context(), btree.BuildMap(b.b, f))
}
