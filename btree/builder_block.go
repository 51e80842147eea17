package btree

import (
	"fmt"
	"slices"

	"github.com/npillmayer/plist/stream"
)

// builderState tells whether a builder still reads from its immutable source.
type builderState uint8

const (
	unforked builderState = iota // reads go to the source node
	forked                       // the builder owns its working slices
)

// blockBuilder is the mutable counterpart of a block. It starts unforked,
// wrapping a source block, and copies the source's children on the first
// mutation.
type blockBuilder[T any] struct {
	ctx    *Context
	lvl    int
	state  builderState
	source *block[T]
	elems  []T                // level 0, forked
	kids   []*blockBuilder[T] // level >= 1, forked
	length int
}

func blockBuilderFrom[T any](b *block[T]) *blockBuilder[T] {
	return &blockBuilder[T]{
		ctx:    b.ctx,
		lvl:    b.level,
		state:  unforked,
		source: b,
		length: b.length,
	}
}

// newLeafBuilder creates a forked level-0 builder. It takes ownership of elems.
func newLeafBuilder[T any](ctx *Context, elems []T) *blockBuilder[T] {
	return &blockBuilder[T]{
		ctx:    ctx,
		state:  forked,
		elems:  elems,
		length: len(elems),
	}
}

// newInnerBuilder creates a forked builder of level lvl. It takes ownership of kids.
func newInnerBuilder[T any](ctx *Context, lvl int, kids []*blockBuilder[T]) *blockBuilder[T] {
	length := 0
	for _, k := range kids {
		length += k.length
	}
	return &blockBuilder[T]{
		ctx:    ctx,
		lvl:    lvl,
		state:  forked,
		kids:   kids,
		length: length,
	}
}

func (b *blockBuilder[T]) Len() int   { return b.length }
func (b *blockBuilder[T]) level() int { return b.lvl }

func (b *blockBuilder[T]) size() int {
	if b.state == unforked {
		return b.source.size()
	}
	if b.lvl == 0 {
		return len(b.elems)
	}
	return len(b.kids)
}

// fork copies the source's children into working slices. Child blocks are
// wrapped into unforked builders.
func (b *blockBuilder[T]) fork() {
	if b.state == forked {
		return
	}
	src := b.source
	if b.lvl == 0 {
		b.elems = make([]T, len(src.elems), b.ctx.maxBlock+1)
		copy(b.elems, src.elems)
	} else {
		b.kids = make([]*blockBuilder[T], len(src.kids), b.ctx.maxBlock+1)
		for i, k := range src.kids {
			b.kids[i] = blockBuilderFrom(k)
		}
	}
	b.source = nil
	b.state = forked
}

func (b *blockBuilder[T]) locate(index int) (int, int) {
	for i, k := range b.kids {
		if index < k.length {
			return i, index
		}
		index -= k.length
	}
	panic(fmt.Sprintf("block builder index routing exceeded length %d", b.length))
}

// locateInsert finds the child to insert at index, 0 <= index <= length.
// Positions between two children go to the left one.
func (b *blockBuilder[T]) locateInsert(index int) (int, int) {
	last := len(b.kids) - 1
	for i, k := range b.kids {
		if index <= k.length || i == last {
			return i, index
		}
		index -= k.length
	}
	panic("block builder without children")
}

func (b *blockBuilder[T]) get(index int) T {
	if b.state == unforked {
		return b.source.get(index)
	}
	if b.lvl == 0 {
		return b.elems[index]
	}
	slot, local := b.locate(index)
	return b.kids[slot].get(local)
}

func (b *blockBuilder[T]) update(index int, f func(T) T) T {
	b.fork()
	if b.lvl == 0 {
		old := b.elems[index]
		b.elems[index] = f(old)
		return old
	}
	slot, local := b.locate(index)
	return b.kids[slot].update(local, f)
}

func (b *blockBuilder[T]) insert(index int, value T) {
	b.fork()
	b.length++
	if b.lvl == 0 {
		b.elems = slices.Insert(b.elems, index, value)
		return
	}
	slot, local := b.locateInsert(index)
	kid := b.kids[slot]
	kid.insert(local, value)
	if kid.size() > b.ctx.maxBlock {
		right := kid.splitRight(kid.size() / 2)
		b.kids = slices.Insert(b.kids, slot+1, right)
	}
}

func (b *blockBuilder[T]) remove(index int) T {
	b.fork()
	b.length--
	if b.lvl == 0 {
		v := b.elems[index]
		b.elems = slices.Delete(b.elems, index, index+1)
		return v
	}
	slot, local := b.locate(index)
	kid := b.kids[slot]
	v := kid.remove(local)
	switch {
	case kid.size() == 0:
		b.kids = slices.Delete(b.kids, slot, slot+1)
	case kid.size() < b.ctx.minBlock:
		b.fixKid(slot)
	}
	return v
}

// fixKid merges the underfull child at slot with a neighbour. A merged
// child which overflows is split in halves again.
func (b *blockBuilder[T]) fixKid(slot int) {
	if len(b.kids) < 2 {
		return
	}
	lo := slot
	if slot == len(b.kids)-1 {
		lo = slot - 1
	}
	merged := b.kids[lo]
	merged.concat(b.kids[lo+1])
	if merged.size() > b.ctx.maxBlock {
		b.kids[lo+1] = merged.splitRight(merged.size() / 2)
		b.kids[lo+1].repairKids()
	} else {
		b.kids = slices.Delete(b.kids, lo+1, lo+2)
	}
	merged.repairKids()
}

// repairKids fixes underfull children after children have been moved
// between blocks.
func (b *blockBuilder[T]) repairKids() {
	if b.lvl == 0 || b.state == unforked {
		return
	}
	for i := 0; i < len(b.kids) && len(b.kids) > 1; {
		if b.kids[i].size() < b.ctx.minBlock {
			b.fixKid(i)
			if i > 0 {
				i--
			}
			continue
		}
		i++
	}
}

// concat moves the children of o to the end of b. o must not be used
// afterwards.
func (b *blockBuilder[T]) concat(o *blockBuilder[T]) {
	assert(b.lvl == o.lvl, "concat of block builders with different levels")
	b.fork()
	b.length += o.length
	if b.lvl == 0 {
		if o.state == unforked {
			b.elems = append(b.elems, o.source.elems...)
		} else {
			b.elems = append(b.elems, o.elems...)
		}
		return
	}
	o.fork()
	b.kids = append(b.kids, o.kids...)
}

// splitRight moves the children from index at onwards into a new builder.
func (b *blockBuilder[T]) splitRight(at int) *blockBuilder[T] {
	b.fork()
	if b.lvl == 0 {
		right := newLeafBuilder(b.ctx, slices.Clone(b.elems[at:]))
		clear(b.elems[at:])
		b.elems = b.elems[:at]
		b.length = at
		return right
	}
	right := newInnerBuilder(b.ctx, b.lvl, slices.Clone(b.kids[at:]))
	clear(b.kids[at:])
	b.kids = b.kids[:at]
	b.length -= right.length
	return right
}

func (b *blockBuilder[T]) appendChild(c *blockBuilder[T]) {
	b.fork()
	b.kids = append(b.kids, c)
	b.length += c.length
}

func (b *blockBuilder[T]) prependChild(c *blockBuilder[T]) {
	b.fork()
	b.kids = slices.Insert(b.kids, 0, c)
	b.length += c.length
}

func (b *blockBuilder[T]) firstChild() *blockBuilder[T] {
	b.fork()
	return b.kids[0]
}

func (b *blockBuilder[T]) lastChild() *blockBuilder[T] {
	b.fork()
	return b.kids[len(b.kids)-1]
}

func (b *blockBuilder[T]) dropFirstChild() *blockBuilder[T] {
	b.fork()
	c := b.kids[0]
	b.kids = slices.Delete(b.kids, 0, 1)
	b.length -= c.length
	return c
}

func (b *blockBuilder[T]) dropLastChild() *blockBuilder[T] {
	b.fork()
	c := b.kids[len(b.kids)-1]
	b.kids = slices.Delete(b.kids, len(b.kids)-1, len(b.kids))
	b.length -= c.length
	return c
}

func (b *blockBuilder[T]) forEach(f func(T, int, func()), state *stream.TraverseState) {
	if b.state == unforked {
		b.source.forEach(f, state)
		return
	}
	if b.lvl == 0 {
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

func (b *blockBuilder[T]) build() Node[T] {
	return b.buildBlock()
}

// buildBlock hands the working slices over to immutable blocks. The builder
// must be discarded or re-sourced afterwards.
func (b *blockBuilder[T]) buildBlock() *block[T] {
	if b.state == unforked {
		return b.source
	}
	if b.lvl == 0 {
		return makeLeaf(b.ctx, slices.Clip(b.elems))
	}
	kids := make([]*block[T], len(b.kids))
	for i, k := range b.kids {
		kids[i] = k.buildBlock()
	}
	return makeInner(b.ctx, b.lvl, kids)
}

func mapBlockBuilder[T, U any](b *blockBuilder[T], f func(T) U) *block[U] {
	if b.state == unforked {
		return Map[T, U](b.source, func(v T, _ int) U { return f(v) }, false).(*block[U])
	}
	if b.lvl == 0 {
		out := make([]U, len(b.elems))
		for i, v := range b.elems {
			out[i] = f(v)
		}
		return makeLeaf(b.ctx, out)
	}
	kids := make([]*block[U], len(b.kids))
	for i, k := range b.kids {
		kids[i] = mapBlockBuilder(k, f)
	}
	return makeInner(b.ctx, b.lvl, kids)
}
