package btree

import (
	"fmt"

	"github.com/npillmayer/plist/stream"
)

// nodeBuilder is the common interface of block and tree builders.
type nodeBuilder[T any] interface {
	Len() int
	level() int
	get(index int) T
	update(index int, f func(T) T) T
	insert(index int, value T)
	remove(index int) T
	appendChild(c *blockBuilder[T])
	prependChild(c *blockBuilder[T])
	firstChild() *blockBuilder[T]
	lastChild() *blockBuilder[T]
	dropFirstChild() *blockBuilder[T]
	dropLastChild() *blockBuilder[T]
	forEach(f func(T, int, func()), state *stream.TraverseState)
	build() Node[T]
}

func builderFrom[T any](n Node[T]) nodeBuilder[T] {
	switch v := n.(type) {
	case *block[T]:
		return blockBuilderFrom(v)
	case *tree[T]:
		return treeBuilderFrom(v)
	}
	return nil
}

// settle brings a builder back into canonical shape after an edit: empty
// blocks vanish, overflowing blocks become trees, and trees without a
// middle collapse if their boundaries fit into a single block.
func settle[T any](nb nodeBuilder[T]) nodeBuilder[T] {
	switch b := nb.(type) {
	case nil:
		return nil
	case *blockBuilder[T]:
		switch size := b.size(); {
		case size == 0:
			return nil
		case size > b.ctx.maxBlock:
			right := b.splitRight(size / 2)
			return newTreeBuilder(b, right, nil)
		}
		return b
	case *treeBuilder[T]:
		if b.state == unforked {
			return b
		}
		b.refill()
		if b.middle != nil {
			return b
		}
		switch {
		case b.left.size() == 0:
			return settle[T](b.right)
		case b.right.size() == 0:
			return settle[T](b.left)
		case b.left.size()+b.right.size() <= b.ctx.maxBlock:
			b.left.concat(b.right)
			return b.left
		}
		return b
	}
	panic(fmt.Sprintf("unknown builder type %T", nb))
}

// Builder collects edits to a sequence in mutable working nodes. Nodes are
// copied on their first mutation only, so a builder created from a large
// node is cheap until edited.
//
// A Builder is not safe for concurrent use.
type Builder[T any] struct {
	ctx  *Context
	root nodeBuilder[T] // nil if empty
}

// NewBuilder creates a builder in context ctx, starting with the elements of
// source (which may be nil).
func NewBuilder[T any](ctx *Context, source Node[T]) *Builder[T] {
	if ctx == nil {
		ctx = DefaultContext()
	}
	b := &Builder[T]{ctx: ctx}
	if source = normalizeNode(source); source != nil {
		assert(source.Level() == 0, "builder source must be a top-level node")
		if source.Context() != ctx {
			b.appendAll(source)
		} else {
			b.root = builderFrom(source)
		}
	}
	return b
}

// Context returns the context of the nodes this builder produces.
func (b *Builder[T]) Context() *Context {
	return b.ctx
}

// Len returns the number of elements.
func (b *Builder[T]) Len() int {
	if b.root == nil {
		return 0
	}
	return b.root.Len()
}

// At returns the element at index, or false if index is out of range.
func (b *Builder[T]) At(index int) (T, bool) {
	if index < 0 || index >= b.Len() {
		var zero T
		return zero, false
	}
	return b.root.get(index), true
}

// Update replaces the element at index by f applied to it, and returns the
// previous element. It returns false if index is out of range.
func (b *Builder[T]) Update(index int, f func(T) T) (T, bool) {
	if index < 0 || index >= b.Len() {
		var zero T
		return zero, false
	}
	return b.root.update(index, f), true
}

// Insert inserts value before position index, 0 <= index <= Len().
func (b *Builder[T]) Insert(index int, value T) error {
	if index < 0 || index > b.Len() {
		return fmt.Errorf("%w: insert at %d, length %d", ErrIndexOutOfBounds, index, b.Len())
	}
	if b.root == nil {
		elems := make([]T, 1, b.ctx.maxBlock+1)
		elems[0] = value
		b.root = newLeafBuilder(b.ctx, elems)
		return nil
	}
	b.root.insert(index, value)
	b.root = settle(b.root)
	return nil
}

// Append adds value at the end.
func (b *Builder[T]) Append(value T) {
	_ = b.Insert(b.Len(), value)
}

// Prepend adds value at the start.
func (b *Builder[T]) Prepend(value T) {
	_ = b.Insert(0, value)
}

// Remove removes the element at index and returns it. It returns false if
// index is out of range.
func (b *Builder[T]) Remove(index int) (T, bool) {
	if index < 0 || index >= b.Len() {
		var zero T
		return zero, false
	}
	v := b.root.remove(index)
	b.root = settle(b.root)
	return v, true
}

// Concat appends the elements of n.
//
// Small or foreign-context sequences are appended element by element.
// Otherwise the current state is built and concatenated with n as immutable
// nodes, and the builder continues from the result.
func (b *Builder[T]) Concat(n Node[T]) {
	if n = normalizeNode(n); n == nil {
		return
	}
	if n.Context() != b.ctx || n.Len() <= b.ctx.maxBlock || b.root == nil {
		b.appendAll(n)
		return
	}
	joined := b.Build().concat(n)
	b.root = builderFrom(joined)
}

func (b *Builder[T]) appendAll(n Node[T]) {
	n.ForEach(func(v T, _ int, _ func()) {
		b.Append(v)
	}, &stream.TraverseState{})
}

// ForEach calls f for every element, in order, until f halts the traversal.
func (b *Builder[T]) ForEach(f func(value T, index int, halt func()), state *stream.TraverseState) {
	if b.root == nil {
		return
	}
	if state == nil {
		state = &stream.TraverseState{}
	}
	b.root.forEach(f, state)
}

// Build returns an immutable node holding the current elements, or nil if
// the builder is empty. The builder stays usable; later edits do not affect
// the returned node.
func (b *Builder[T]) Build() Node[T] {
	if b.root = settle(b.root); b.root == nil {
		return nil
	}
	n := b.root.build()
	b.root = builderFrom(n)
	return n
}

// Reset removes all elements.
func (b *Builder[T]) Reset() {
	b.root = nil
}

// BuildMap returns an immutable node holding f applied to every element of
// b, or nil if b is empty. b is not modified.
func BuildMap[T, U any](b *Builder[T], f func(T) U) Node[U] {
	if b.root = settle(b.root); b.root == nil {
		return nil
	}
	return mapBuilder(b.root, f)
}

func mapBuilder[T, U any](nb nodeBuilder[T], f func(T) U) Node[U] {
	switch v := nb.(type) {
	case *blockBuilder[T]:
		return mapBlockBuilder(v, f)
	case *treeBuilder[T]:
		if v.state == unforked {
			return Map[T, U](v.source, func(x T, _ int) U { return f(x) }, false)
		}
		var middle Node[U]
		if v.middle != nil {
			middle = mapBuilder(v.middle, f)
		}
		return makeTree(v.ctx, mapBlockBuilder(v.left, f), mapBlockBuilder(v.right, f), middle).normalize()
	}
	panic(fmt.Sprintf("unknown builder type %T", nb))
}
