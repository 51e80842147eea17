package btree

import (
	"strings"
	"sync/atomic"

	"github.com/npillmayer/plist/stream"
)

// Node is the common interface of blocks and trees.
//
// Clients hold top-level nodes of level 0. The exported editing operations
// are defined for level-0 nodes only; they return nil for an empty result.
// Positional arguments out of range are not errors: At reports false, and
// UpdateAt returns the receiver unchanged.
//
// Node is sealed; it is implemented by the package's block and tree types.
type Node[T any] interface {
	Len() int
	Level() int
	Context() *Context
	ID() uint64

	At(index int) (T, bool)
	UpdateAt(index int, f func(T) T) Node[T]
	Append(value T) Node[T]
	Prepend(value T) Node[T]
	Take(amount int) Node[T]
	Drop(amount int) Node[T]
	Reversed() Node[T]
	ForEach(f func(value T, index int, halt func()), state *stream.TraverseState)
	Iterator(reversed bool) stream.FastIterator[T]
	Structure() string
	Check() error

	// operations valid on every level
	get(index int) T
	updateAt(index int, f func(T) T) Node[T]
	concat(other Node[T]) Node[T]
	appendChild(c *block[T]) Node[T]
	prependChild(c *block[T]) Node[T]
	dropFirst() (Node[T], *block[T])
	dropLast() (Node[T], *block[T])
	takeInternal(k int) (Node[T], *block[T], int)
	dropInternal(k int) (Node[T], *block[T], int)
	forEach(f func(T, int, func()), state *stream.TraverseState)
	reversed(rc *reversal) Node[T]
	check(c *checker, boundary bool) error
	writeStructure(sb *strings.Builder, depth int)
}

var lastNodeID atomic.Uint64

// nextNodeID hands out ids for reversal cache keys.
func nextNodeID() uint64 {
	return lastNodeID.Add(1)
}

// normalizeNode converts typed-nil nodes into interface-nil.
func normalizeNode[T any](n Node[T]) Node[T] {
	switch v := n.(type) {
	case nil:
		return nil
	case *block[T]:
		if v == nil {
			return nil
		}
	case *tree[T]:
		if v == nil {
			return nil
		}
	}
	return n
}

// Concat returns the concatenation of a and b. Either may be nil.
//
// If b belongs to a different context than a, its elements are re-inserted
// in a's context.
func Concat[T any](a, b Node[T]) Node[T] {
	a, b = normalizeNode(a), normalizeNode(b)
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	assert(a.Level() == 0 && b.Level() == 0, "concat of non top-level nodes")
	if a.Context() != b.Context() {
		tracer().Debugf("concat across contexts, rebuilding %d elements", b.Len())
		bld := NewBuilder(a.Context(), a)
		b.ForEach(func(v T, _ int, _ func()) {
			bld.Append(v)
		}, &stream.TraverseState{})
		return bld.Build()
	}
	return a.concat(b)
}

// FromSlice creates a level-0 node holding a copy of values, or nil for an
// empty slice.
func FromSlice[T any](ctx *Context, values []T) Node[T] {
	if len(values) == 0 {
		return nil
	}
	if len(values) <= ctx.maxBlock {
		return makeLeaf(ctx, cloneSlice(values))
	}
	bld := NewBuilder[T](ctx, nil)
	for _, v := range values {
		bld.Append(v)
	}
	return bld.Build()
}

// Singleton creates a level-0 node holding value.
func Singleton[T any](ctx *Context, value T) Node[T] {
	return makeLeaf(ctx, []T{value})
}

// structureOf renders the node structure of n as indented text.
func structureOf[T any](n Node[T]) string {
	var sb strings.Builder
	n.writeStructure(&sb, 0)
	return sb.String()
}
