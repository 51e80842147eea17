package btree

import (
	"fmt"
	"strings"

	"github.com/npillmayer/plist/stream"
)

// tree holds two boundary blocks of its own level and an optional middle
// node one level up. The children of the middle node are blocks of the
// tree's level.
type tree[T any] struct {
	id     uint64
	ctx    *Context
	level  int
	length int
	left   *block[T]
	right  *block[T]
	middle Node[T] // may be nil
}

func makeTree[T any](ctx *Context, left, right *block[T], middle Node[T]) *tree[T] {
	assert(left != nil && right != nil, "tree without boundary block")
	assert(left.level == right.level, "tree boundaries have different levels")
	middle = normalizeNode(middle)
	length := left.length + right.length
	if middle != nil {
		assert(middle.Level() == left.level+1, "tree middle has wrong level")
		length += middle.Len()
	}
	return &tree[T]{
		id:     nextNodeID(),
		ctx:    ctx,
		level:  left.level,
		length: length,
		left:   left,
		right:  right,
		middle: middle,
	}
}

func (t *tree[T]) Len() int          { return t.length }
func (t *tree[T]) Level() int        { return t.level }
func (t *tree[T]) Context() *Context { return t.ctx }
func (t *tree[T]) ID() uint64        { return t.id }

// copy returns a tree with the given parts, re-using t if nothing changed.
func (t *tree[T]) copy(left, right *block[T], middle Node[T]) *tree[T] {
	middle = normalizeNode(middle)
	if left == t.left && right == t.right && middle == t.middle {
		return t
	}
	return makeTree(t.ctx, left, right, middle)
}

func (t *tree[T]) middleLen() int {
	if t.middle == nil {
		return 0
	}
	return t.middle.Len()
}

// appendMiddle returns the middle node with c appended as its last child.
func (t *tree[T]) appendMiddle(c *block[T]) Node[T] {
	if t.middle == nil {
		return singletonOf(c)
	}
	return t.middle.appendChild(c)
}

// prependMiddle returns the middle node with c prepended as its first child.
func (t *tree[T]) prependMiddle(c *block[T]) Node[T] {
	if t.middle == nil {
		return singletonOf(c)
	}
	return t.middle.prependChild(c)
}

// normalize collapses trees which have become too small: a middle block
// with a single child is merged into a boundary if it fits, and a tree
// without middle becomes a single block if both boundaries fit into one.
func (t *tree[T]) normalize() Node[T] {
	max := t.ctx.maxBlock
	if t.middle != nil {
		mb, ok := t.middle.(*block[T])
		if !ok || len(mb.kids) != 1 {
			return t
		}
		only := mb.kids[0]
		if t.left.size()+only.size() <= max {
			return makeTree(t.ctx, t.left.concatChildren(only), t.right, nil).normalize()
		}
		if only.size()+t.right.size() <= max {
			return makeTree(t.ctx, t.left, only.concatChildren(t.right), nil).normalize()
		}
		return t
	}
	if t.left.size()+t.right.size() <= max {
		return t.left.concatChildren(t.right)
	}
	return t
}

// --- Access ----------------------------------------------------------------

func (t *tree[T]) At(index int) (T, bool) {
	if index < 0 || index >= t.length {
		var zero T
		return zero, false
	}
	return t.get(index), true
}

func (t *tree[T]) get(index int) T {
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

func (t *tree[T]) UpdateAt(index int, f func(T) T) Node[T] {
	if index < 0 || index >= t.length {
		return t
	}
	return t.updateAt(index, f)
}

func (t *tree[T]) updateAt(index int, f func(T) T) Node[T] {
	if index < t.left.length {
		return t.copy(t.left.updateBlock(index, f), t.right, t.middle)
	}
	index -= t.left.length
	if t.middle != nil {
		if index < t.middle.Len() {
			return t.copy(t.left, t.right, t.middle.updateAt(index, f))
		}
		index -= t.middle.Len()
	}
	return t.copy(t.left, t.right.updateBlock(index, f), t.middle)
}

// --- Growing ---------------------------------------------------------------

func (t *tree[T]) Append(value T) Node[T] {
	assert(t.level == 0, "Append on non top-level node")
	return t.concatBlock(makeLeaf(t.ctx, []T{value}))
}

func (t *tree[T]) Prepend(value T) Node[T] {
	assert(t.level == 0, "Prepend on non top-level node")
	return t.prependBlock(makeLeaf(t.ctx, []T{value}))
}

func (t *tree[T]) appendChild(c *block[T]) Node[T] {
	return t.concatBlock(singletonOf(c))
}

func (t *tree[T]) prependChild(c *block[T]) Node[T] {
	return t.prependBlock(singletonOf(c))
}

// concatBlock appends the children of o, a block of the tree's level.
func (t *tree[T]) concatBlock(o *block[T]) *tree[T] {
	max := t.ctx.maxBlock
	if t.right.size()+o.size() <= max {
		return t.copy(t.left, t.right.concatChildren(o), t.middle)
	}
	if t.right.childrenInMin() {
		return t.copy(t.left, o, t.appendMiddle(t.right))
	}
	joint := t.right.concatChildren(o)
	last := joint.mutateSplitRight(max)
	return t.copy(t.left, last, t.appendMiddle(joint))
}

// prependBlock prepends the children of o, a block of the tree's level.
func (t *tree[T]) prependBlock(o *block[T]) *tree[T] {
	max := t.ctx.maxBlock
	if o.size()+t.left.size() <= max {
		return t.copy(o.concatChildren(t.left), t.right, t.middle)
	}
	if t.left.childrenInMin() {
		return t.copy(o, t.right, t.prependMiddle(t.left))
	}
	joint := o.concatChildren(t.left)
	tail := joint.mutateSplitRight(joint.size() - max)
	return t.copy(joint, t.right, t.prependMiddle(tail))
}

func (t *tree[T]) concat(other Node[T]) Node[T] {
	switch o := other.(type) {
	case *block[T]:
		return t.concatBlock(o)
	case *tree[T]:
		return t.concatTree(o)
	}
	panic("unknown node type in concat")
}

// concatTree joins two trees of the same level. The inner boundaries meet
// in a joint which is pushed into the middle, split or merged depending on
// its size.
func (t *tree[T]) concatTree(o *tree[T]) Node[T] {
	min, max := t.ctx.minBlock, t.ctx.maxBlock
	jointSize := t.right.size() + o.left.size()

	if jointSize < min {
		// the joint is too small to become a middle child of its own
		if t.middle == nil {
			joint := t.left.concatChildren(t.right).concatChildren(o.left)
			if joint.size() <= max {
				return makeTree(t.ctx, joint, o.right, o.middle)
			}
			toMiddle := joint.mutateSplitRight(joint.size() / 2)
			return makeTree(t.ctx, joint, o.right, o.prependMiddle(toMiddle))
		}
		newMiddle, last := t.middle.dropLast()
		joint := last.concatChildren(t.right).concatChildren(o.left)
		var middle Node[T]
		if joint.size() <= max {
			middle = o.prependMiddle(joint)
		} else {
			jointRight := joint.mutateSplitRight(joint.size() / 2)
			middle = o.prependMiddle(jointRight).prependChild(joint)
		}
		if newMiddle != nil {
			middle = newMiddle.concat(middle)
		}
		return makeTree(t.ctx, t.left, o.right, middle)
	}

	var middle Node[T]
	switch {
	case jointSize <= max:
		middle = t.appendMiddle(t.right.concatChildren(o.left))
	case t.right.childrenInMin() && o.left.childrenInMin():
		middle = t.appendMiddle(t.right).appendChild(o.left)
	default:
		joint := t.right.concatChildren(o.left)
		jointRight := joint.mutateSplitRight(joint.size() / 2)
		middle = t.appendMiddle(joint).appendChild(jointRight)
	}
	if o.middle != nil {
		middle = middle.concat(o.middle)
	}
	return makeTree(t.ctx, t.left, o.right, middle)
}

// --- Shrinking -------------------------------------------------------------

func (t *tree[T]) dropFirst() (Node[T], *block[T]) {
	first := t.left.kids[0]
	if t.left.size() > 1 {
		return t.copy(t.left.dropChildren(1), t.right, t.middle).normalize(), first
	}
	if t.middle == nil {
		return t.right, first
	}
	rest, newLeft := t.middle.dropFirst()
	return makeTree(t.ctx, newLeft, t.right, rest).normalize(), first
}

func (t *tree[T]) dropLast() (Node[T], *block[T]) {
	last := t.right.kids[len(t.right.kids)-1]
	if t.right.size() > 1 {
		return t.copy(t.left, t.right.takeChildren(t.right.size()-1), t.middle).normalize(), last
	}
	if t.middle == nil {
		return t.left, last
	}
	rest, newRight := t.middle.dropLast()
	return makeTree(t.ctx, t.left, newRight, rest).normalize(), last
}

// withRight assembles the prefix "t.left, middle, right" where either of
// middle and right may be missing.
func (t *tree[T]) withRight(middle Node[T], right *block[T]) Node[T] {
	middle = normalizeNode(middle)
	if right == nil {
		if middle == nil {
			return t.left
		}
		rest, last := middle.dropLast()
		return makeTree(t.ctx, t.left, last, rest).normalize()
	}
	return makeTree(t.ctx, t.left, right, middle).normalize()
}

// withLeft assembles the suffix "left, middle, t.right" where either of
// left and middle may be missing.
func (t *tree[T]) withLeft(left *block[T], middle Node[T]) Node[T] {
	middle = normalizeNode(middle)
	if left == nil {
		if middle == nil {
			return t.right
		}
		rest, first := middle.dropFirst()
		return makeTree(t.ctx, first, t.right, rest).normalize()
	}
	return makeTree(t.ctx, left, t.right, middle).normalize()
}

func (t *tree[T]) takeInternal(k int) (Node[T], *block[T], int) {
	if k <= t.left.length {
		return t.left.takeInternal(k)
	}
	k -= t.left.length
	if t.middle != nil {
		if k <= t.middle.Len() {
			midRest, up, inUp := t.middle.takeInternal(k)
			rest, child, local := up.splitBefore(inUp)
			return t.withRight(midRest, rest), child, local
		}
		k -= t.middle.Len()
	}
	rest, child, local := t.right.splitBefore(k)
	return t.withRight(t.middle, rest), child, local
}

func (t *tree[T]) dropInternal(k int) (Node[T], *block[T], int) {
	if k < t.left.length {
		rest, child, local := t.left.splitAfter(k)
		return t.withLeft(rest, t.middle), child, local
	}
	k -= t.left.length
	if t.middle != nil {
		if k < t.middle.Len() {
			midRest, up, inUp := t.middle.dropInternal(k)
			rest, child, local := up.splitAfter(inUp)
			return t.withLeft(rest, midRest), child, local
		}
		k -= t.middle.Len()
	}
	return t.right.dropInternal(k)
}

func (t *tree[T]) Take(amount int) Node[T] {
	assert(t.level == 0, "Take on non top-level node")
	if amount <= 0 {
		return nil
	}
	if amount >= t.length {
		return t
	}
	inMiddle := amount - t.left.length
	if inMiddle <= 0 {
		return t.left.takeChildren(amount)
	}
	if t.middle == nil {
		return t.copy(t.left, t.right.takeChildren(inMiddle), nil).normalize()
	}
	inRight := inMiddle - t.middle.Len()
	if inRight > 0 {
		return t.copy(t.left, t.right.takeChildren(inRight), t.middle).normalize()
	}
	rest, upRight, inUpRight := t.middle.takeInternal(inMiddle)
	return makeTree(t.ctx, t.left, upRight.takeChildren(inUpRight), rest).normalize()
}

func (t *tree[T]) Drop(amount int) Node[T] {
	assert(t.level == 0, "Drop on non top-level node")
	if amount <= 0 {
		return t
	}
	if amount >= t.length {
		return nil
	}
	if amount < t.left.length {
		return t.copy(t.left.dropChildren(amount), t.right, t.middle).normalize()
	}
	inMiddle := amount - t.left.length
	if t.middle == nil {
		return t.right.dropChildren(inMiddle)
	}
	inRight := inMiddle - t.middle.Len()
	if inRight >= 0 {
		return t.right.dropChildren(inRight)
	}
	rest, upLeft, inUpLeft := t.middle.dropInternal(inMiddle)
	return makeTree(t.ctx, upLeft.dropChildren(inUpLeft), t.right, rest).normalize()
}

// --- Traversal -------------------------------------------------------------

func (t *tree[T]) ForEach(f func(value T, index int, halt func()), state *stream.TraverseState) {
	if state == nil {
		state = &stream.TraverseState{}
	}
	t.forEach(f, state)
}

func (t *tree[T]) forEach(f func(T, int, func()), state *stream.TraverseState) {
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

func (t *tree[T]) Iterator(reversed bool) stream.FastIterator[T] {
	return newCursor[T](t, reversed)
}

func (t *tree[T]) Reversed() Node[T] {
	return t.reversed(newReversal(t.ctx))
}

func (t *tree[T]) reversed(rc *reversal) Node[T] {
	if r, ok := lookupReversed[tree[T]](rc, t.id); ok {
		return r
	}
	var middle Node[T]
	if t.middle != nil {
		middle = t.middle.reversed(rc)
	}
	r := makeTree(t.ctx, t.right.reversedBlock(rc), t.left.reversedBlock(rc), middle)
	storeReversed(rc, t.id, r.id, t, r)
	return r
}

// --- Diagnostics -----------------------------------------------------------

func (t *tree[T]) Structure() string {
	return structureOf[T](t)
}

func (t *tree[T]) writeStructure(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(sb, "<Tree level:%d len:%d>\n", t.level, t.length)
	t.left.writeStructure(sb, depth+1)
	if t.middle != nil {
		t.middle.writeStructure(sb, depth+1)
	}
	t.right.writeStructure(sb, depth+1)
}
