package btree

import (
	"github.com/npillmayer/plist/stream"
)

// treeBuilder is the mutable counterpart of a tree.
type treeBuilder[T any] struct {
	ctx    *Context
	lvl    int
	state  builderState
	source *tree[T]
	left   *blockBuilder[T]
	right  *blockBuilder[T]
	middle nodeBuilder[T] // may be nil
	length int
}

func treeBuilderFrom[T any](t *tree[T]) *treeBuilder[T] {
	return &treeBuilder[T]{
		ctx:    t.ctx,
		lvl:    t.level,
		state:  unforked,
		source: t,
		length: t.length,
	}
}

func newTreeBuilder[T any](left, right *blockBuilder[T], middle nodeBuilder[T]) *treeBuilder[T] {
	length := left.length + right.length
	if middle != nil {
		length += middle.Len()
	}
	return &treeBuilder[T]{
		ctx:    left.ctx,
		lvl:    left.lvl,
		state:  forked,
		left:   left,
		right:  right,
		middle: middle,
		length: length,
	}
}

func (t *treeBuilder[T]) Len() int   { return t.length }
func (t *treeBuilder[T]) level() int { return t.lvl }

func (t *treeBuilder[T]) fork() {
	if t.state == forked {
		return
	}
	src := t.source
	t.left = blockBuilderFrom(src.left)
	t.right = blockBuilderFrom(src.right)
	if src.middle != nil {
		t.middle = builderFrom(src.middle)
	}
	t.source = nil
	t.state = forked
}

func (t *treeBuilder[T]) middleLen() int {
	if t.middle == nil {
		return 0
	}
	return t.middle.Len()
}

func (t *treeBuilder[T]) get(index int) T {
	if t.state == unforked {
		return t.source.get(index)
	}
	if index < t.left.length {
		return t.left.get(index)
	}
	index -= t.left.length
	if t.middle != nil {
		if index < t.middle.Len() {
			return t.middle.get(index)
		}
		index -= t.middle.Len()
	}
	return t.right.get(index)
}

func (t *treeBuilder[T]) update(index int, f func(T) T) T {
	t.fork()
	if index < t.left.length {
		return t.left.update(index, f)
	}
	index -= t.left.length
	if t.middle != nil {
		if index < t.middle.Len() {
			return t.middle.update(index, f)
		}
		index -= t.middle.Len()
	}
	return t.right.update(index, f)
}

func (t *treeBuilder[T]) insert(index int, value T) {
	t.fork()
	t.length++
	if index <= t.left.length {
		t.left.insert(index, value)
		if t.left.size() > t.ctx.maxBlock {
			t.spillLeft()
		}
		return
	}
	index -= t.left.length
	if t.middle != nil {
		if index <= t.middle.Len() {
			t.middle.insert(index, value)
			t.middle = settle(t.middle)
			return
		}
		index -= t.middle.Len()
	}
	t.right.insert(index, value)
	if t.right.size() > t.ctx.maxBlock {
		t.spillRight()
	}
}

func (t *treeBuilder[T]) remove(index int) T {
	t.fork()
	t.length--
	var v T
	if index < t.left.length {
		v = t.left.remove(index)
	} else {
		index -= t.left.length
		if t.middle != nil && index < t.middle.Len() {
			v = t.middle.remove(index)
			t.middle = settle(t.middle)
		} else {
			index -= t.middleLen()
			v = t.right.remove(index)
		}
	}
	t.repair()
	return v
}

// spillLeft moves the right half of an overflowing left boundary into the
// middle.
func (t *treeBuilder[T]) spillLeft() {
	moved := t.left.splitRight(t.left.size() / 2)
	t.prependMiddle(moved)
}

// spillRight moves the left half of an overflowing right boundary into the
// middle.
func (t *treeBuilder[T]) spillRight() {
	keep := t.right.splitRight(t.right.size() / 2)
	t.appendMiddle(t.right)
	t.right = keep
}

func (t *treeBuilder[T]) prependMiddle(c *blockBuilder[T]) {
	if t.middle == nil {
		t.middle = newInnerBuilder(t.ctx, t.lvl+1, []*blockBuilder[T]{c})
		return
	}
	t.middle.prependChild(c)
	t.middle = settle(t.middle)
}

func (t *treeBuilder[T]) appendMiddle(c *blockBuilder[T]) {
	if t.middle == nil {
		t.middle = newInnerBuilder(t.ctx, t.lvl+1, []*blockBuilder[T]{c})
		return
	}
	t.middle.appendChild(c)
	t.middle = settle(t.middle)
}

// refill replaces empty boundaries by children taken from the middle.
func (t *treeBuilder[T]) refill() {
	if t.left.size() == 0 && t.middle != nil {
		t.left = t.middle.dropFirstChild()
		t.middle = settle(t.middle)
	}
	if t.right.size() == 0 && t.middle != nil {
		t.right = t.middle.dropLastChild()
		t.middle = settle(t.middle)
	}
}

// repair restores the block size invariants after a removal: empty
// boundaries are refilled, and underfull outer children of the middle are
// merged into the adjacent boundary.
func (t *treeBuilder[T]) repair() {
	t.refill()
	min, max := t.ctx.minBlock, t.ctx.maxBlock
	if t.middle != nil {
		if first := t.middle.firstChild(); first.size() < min {
			t.middle.dropFirstChild()
			t.middle = settle(t.middle)
			t.left.concat(first)
			t.left.repairKids()
			if t.left.size() > max {
				t.spillLeft()
			}
		}
	}
	if t.middle != nil {
		if last := t.middle.lastChild(); last.size() < min {
			t.middle.dropLastChild()
			t.middle = settle(t.middle)
			last.concat(t.right)
			t.right = last
			t.right.repairKids()
			if t.right.size() > max {
				t.spillRight()
			}
		}
	}
}

// --- Child operations, for trees used as middle nodes ----------------------

func (t *treeBuilder[T]) appendChild(c *blockBuilder[T]) {
	t.fork()
	t.length += c.length
	t.right.appendChild(c)
	if t.right.size() > t.ctx.maxBlock {
		t.spillRight()
	}
}

func (t *treeBuilder[T]) prependChild(c *blockBuilder[T]) {
	t.fork()
	t.length += c.length
	t.left.prependChild(c)
	if t.left.size() > t.ctx.maxBlock {
		t.spillLeft()
	}
}

func (t *treeBuilder[T]) firstChild() *blockBuilder[T] {
	t.fork()
	t.refill()
	if t.left.size() > 0 {
		return t.left.firstChild()
	}
	return t.right.firstChild()
}

func (t *treeBuilder[T]) lastChild() *blockBuilder[T] {
	t.fork()
	t.refill()
	if t.right.size() > 0 {
		return t.right.lastChild()
	}
	return t.left.lastChild()
}

func (t *treeBuilder[T]) dropFirstChild() *blockBuilder[T] {
	t.fork()
	t.refill()
	var c *blockBuilder[T]
	if t.left.size() > 0 {
		c = t.left.dropFirstChild()
	} else {
		c = t.right.dropFirstChild()
	}
	t.length -= c.length
	t.refill()
	return c
}

func (t *treeBuilder[T]) dropLastChild() *blockBuilder[T] {
	t.fork()
	t.refill()
	var c *blockBuilder[T]
	if t.right.size() > 0 {
		c = t.right.dropLastChild()
	} else {
		c = t.left.dropLastChild()
	}
	t.length -= c.length
	t.refill()
	return c
}

func (t *treeBuilder[T]) forEach(f func(T, int, func()), state *stream.TraverseState) {
	if t.state == unforked {
		t.source.forEach(f, state)
		return
	}
	t.left.forEach(f, state)
	if state.Halted() {
		return
	}
	if t.middle != nil {
		t.middle.forEach(f, state)
		if state.Halted() {
			return
		}
	}
	t.right.forEach(f, state)
}

func (t *treeBuilder[T]) build() Node[T] {
	if t.state == unforked {
		return t.source
	}
	t.refill()
	var middle Node[T]
	if t.middle != nil {
		middle = t.middle.build()
	}
	return makeTree(t.ctx, t.left.buildBlock(), t.right.buildBlock(), middle).normalize()
}
