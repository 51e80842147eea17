package btree

import (
	"fmt"
	"strings"

	"github.com/npillmayer/plist/stream"
)

// block is a node holding up to MaxBlockSize children. Level-0 blocks hold
// elements, blocks of level L >= 1 hold blocks of level L-1.
type block[T any] struct {
	id     uint64
	ctx    *Context
	level  int
	length int
	elems  []T         // level 0
	kids   []*block[T] // level >= 1
}

// makeLeaf creates a level-0 block. It takes ownership of elems.
func makeLeaf[T any](ctx *Context, elems []T) *block[T] {
	assert(len(elems) > 0, "leaf block without elements")
	return &block[T]{
		id:     nextNodeID(),
		ctx:    ctx,
		elems:  elems,
		length: len(elems),
	}
}

// makeInner creates a block of level >= 1. It takes ownership of kids.
func makeInner[T any](ctx *Context, level int, kids []*block[T]) *block[T] {
	assert(level > 0, "inner block must have level > 0")
	assert(len(kids) > 0, "inner block without children")
	length := 0
	for _, k := range kids {
		assert(k.level == level-1, "inner block child has wrong level")
		length += k.length
	}
	return &block[T]{
		id:     nextNodeID(),
		ctx:    ctx,
		level:  level,
		kids:   kids,
		length: length,
	}
}

// singletonOf wraps c into a block one level above c.
func singletonOf[T any](c *block[T]) *block[T] {
	return makeInner(c.ctx, c.level+1, []*block[T]{c})
}

func (b *block[T]) Len() int          { return b.length }
func (b *block[T]) Level() int        { return b.level }
func (b *block[T]) Context() *Context { return b.ctx }
func (b *block[T]) ID() uint64        { return b.id }

// size is the number of children.
func (b *block[T]) size() int {
	if b.level == 0 {
		return len(b.elems)
	}
	return len(b.kids)
}

func (b *block[T]) childrenInMin() bool {
	return b.size() >= b.ctx.minBlock
}

// --- Children slices -------------------------------------------------------

// concatChildren creates a block holding the children of b followed by the
// children of o.
func (b *block[T]) concatChildren(o *block[T]) *block[T] {
	assert(b.level == o.level, "concatChildren of blocks with different levels")
	if b.level == 0 {
		return makeLeaf(b.ctx, joinSlices(b.elems, o.elems))
	}
	return makeInner(b.ctx, b.level, joinSlices(b.kids, o.kids))
}

// takeChildren keeps the first n children, 0 < n <= size.
func (b *block[T]) takeChildren(n int) *block[T] {
	assert(n > 0 && n <= b.size(), "takeChildren count out of range")
	if n == b.size() {
		return b
	}
	if b.level == 0 {
		return makeLeaf(b.ctx, cloneSlice(b.elems[:n]))
	}
	return makeInner(b.ctx, b.level, cloneSlice(b.kids[:n]))
}

// dropChildren removes the first n children, 0 <= n < size.
func (b *block[T]) dropChildren(n int) *block[T] {
	assert(n >= 0 && n < b.size(), "dropChildren count out of range")
	if n == 0 {
		return b
	}
	if b.level == 0 {
		return makeLeaf(b.ctx, cloneSlice(b.elems[n:]))
	}
	return makeInner(b.ctx, b.level, cloneSlice(b.kids[n:]))
}

// mutateSplitRight moves the children from index at onwards into a new block
// and returns it. b is modified in place and must not be shared yet.
func (b *block[T]) mutateSplitRight(at int) *block[T] {
	assert(at > 0 && at < b.size(), "split index out of range")
	if b.level == 0 {
		right := makeLeaf(b.ctx, cloneSlice(b.elems[at:]))
		b.elems = b.elems[:at:at]
		b.length = at
		return right
	}
	right := makeInner(b.ctx, b.level, cloneSlice(b.kids[at:]))
	b.kids = b.kids[:at:at]
	b.length -= right.length
	return right
}

// locate finds the child containing position index, 0 <= index < length.
// It returns the child's slot and the position relative to the child.
func (b *block[T]) locate(index int) (int, int) {
	for i, k := range b.kids {
		if index < k.length {
			return i, index
		}
		index -= k.length
	}
	panic(fmt.Sprintf("block index routing exceeded length %d", b.length))
}

// locateEnd finds the child containing the k-th position (1-based),
// 0 < k <= length. The returned offset is in [1, child length].
func (b *block[T]) locateEnd(k int) (int, int) {
	for i, kid := range b.kids {
		if k <= kid.length {
			return i, k
		}
		k -= kid.length
	}
	panic(fmt.Sprintf("block end routing exceeded length %d", b.length))
}

// --- Access ----------------------------------------------------------------

func (b *block[T]) At(index int) (T, bool) {
	if index < 0 || index >= b.length {
		var zero T
		return zero, false
	}
	return b.get(index), true
}

func (b *block[T]) get(index int) T {
	if b.level == 0 {
		return b.elems[index]
	}
	slot, local := b.locate(index)
	return b.kids[slot].get(local)
}

func (b *block[T]) UpdateAt(index int, f func(T) T) Node[T] {
	if index < 0 || index >= b.length {
		return b
	}
	return b.updateAt(index, f)
}

func (b *block[T]) updateAt(index int, f func(T) T) Node[T] {
	return b.updateBlock(index, f)
}

func (b *block[T]) updateBlock(index int, f func(T) T) *block[T] {
	if b.level == 0 {
		return makeLeaf(b.ctx, replaceAt(b.elems, index, f(b.elems[index])))
	}
	slot, local := b.locate(index)
	kid := b.kids[slot].updateBlock(local, f)
	return makeInner(b.ctx, b.level, replaceAt(b.kids, slot, kid))
}

// --- Growing ---------------------------------------------------------------

func (b *block[T]) Append(value T) Node[T] {
	assert(b.level == 0, "Append on non top-level node")
	return b.concat(makeLeaf(b.ctx, []T{value}))
}

func (b *block[T]) Prepend(value T) Node[T] {
	assert(b.level == 0, "Prepend on non top-level node")
	return makeLeaf(b.ctx, []T{value}).concat(b)
}

func (b *block[T]) appendChild(c *block[T]) Node[T] {
	return b.concat(singletonOf(c))
}

func (b *block[T]) prependChild(c *block[T]) Node[T] {
	return singletonOf(c).concat(b)
}

func (b *block[T]) concat(other Node[T]) Node[T] {
	switch o := other.(type) {
	case *block[T]:
		if b.size()+o.size() <= b.ctx.maxBlock {
			return b.concatChildren(o)
		}
		return makeTree(b.ctx, b, o, nil)
	case *tree[T]:
		return o.prependBlock(b)
	}
	panic("unknown node type in concat")
}

// --- Shrinking -------------------------------------------------------------

func (b *block[T]) dropFirst() (Node[T], *block[T]) {
	first := b.kids[0]
	if len(b.kids) == 1 {
		return nil, first
	}
	return b.dropChildren(1), first
}

func (b *block[T]) dropLast() (Node[T], *block[T]) {
	last := b.kids[len(b.kids)-1]
	if len(b.kids) == 1 {
		return nil, last
	}
	return b.takeChildren(len(b.kids) - 1), last
}

// splitBefore returns the children before the child holding the k-th
// position (or nil), that child, and the offset of position k within it.
func (b *block[T]) splitBefore(k int) (*block[T], *block[T], int) {
	slot, local := b.locateEnd(k)
	if slot == 0 {
		return nil, b.kids[0], local
	}
	return b.takeChildren(slot), b.kids[slot], local
}

// splitAfter returns the children after the child holding position k (or
// nil), that child, and the offset of position k within it.
func (b *block[T]) splitAfter(k int) (*block[T], *block[T], int) {
	slot, local := b.locate(k)
	if slot == len(b.kids)-1 {
		return nil, b.kids[slot], local
	}
	return b.dropChildren(slot + 1), b.kids[slot], local
}

func (b *block[T]) takeInternal(k int) (Node[T], *block[T], int) {
	rest, child, local := b.splitBefore(k)
	if rest == nil {
		return nil, child, local
	}
	return rest, child, local
}

func (b *block[T]) dropInternal(k int) (Node[T], *block[T], int) {
	rest, child, local := b.splitAfter(k)
	if rest == nil {
		return nil, child, local
	}
	return rest, child, local
}

func (b *block[T]) Take(amount int) Node[T] {
	assert(b.level == 0, "Take on non top-level node")
	if amount <= 0 {
		return nil
	}
	if amount >= b.length {
		return b
	}
	return b.takeChildren(amount)
}

func (b *block[T]) Drop(amount int) Node[T] {
	assert(b.level == 0, "Drop on non top-level node")
	if amount <= 0 {
		return b
	}
	if amount >= b.length {
		return nil
	}
	return b.dropChildren(amount)
}

// --- Traversal -------------------------------------------------------------

func (b *block[T]) ForEach(f func(value T, index int, halt func()), state *stream.TraverseState) {
	if state == nil {
		state = &stream.TraverseState{}
	}
	b.forEach(f, state)
}

func (b *block[T]) forEach(f func(T, int, func()), state *stream.TraverseState) {
	if b.level == 0 {
		for _, v := range b.elems {
			if state.Halted() {
				return
			}
			f(v, state.Advance(), state.Halt)
		}
		return
	}
	for _, k := range b.kids {
		if state.Halted() {
			return
		}
		k.forEach(f, state)
	}
}

func (b *block[T]) Iterator(reversed bool) stream.FastIterator[T] {
	return newCursor[T](b, reversed)
}

func (b *block[T]) Reversed() Node[T] {
	return b.reversed(newReversal(b.ctx))
}

func (b *block[T]) reversed(rc *reversal) Node[T] {
	return b.reversedBlock(rc)
}

func (b *block[T]) reversedBlock(rc *reversal) *block[T] {
	if r, ok := lookupReversed[block[T]](rc, b.id); ok {
		return r
	}
	var r *block[T]
	if b.level == 0 {
		r = makeLeaf(b.ctx, reversedSlice(b.elems))
	} else {
		kids := make([]*block[T], len(b.kids))
		for i, k := range b.kids {
			kids[len(kids)-1-i] = k.reversedBlock(rc)
		}
		r = makeInner(b.ctx, b.level, kids)
	}
	storeReversed(rc, b.id, r.id, b, r)
	return r
}

// --- Diagnostics -----------------------------------------------------------

func (b *block[T]) Structure() string {
	return structureOf[T](b)
}

func (b *block[T]) writeStructure(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	if b.level == 0 {
		fmt.Fprintf(sb, "<LeafBlock len:%d>\n", b.length)
		return
	}
	fmt.Fprintf(sb, "<Block level:%d size:%d len:%d>\n", b.level, len(b.kids), b.length)
	for _, k := range b.kids {
		k.writeStructure(sb, depth+1)
	}
}
