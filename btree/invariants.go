package btree

import "fmt"

// checker carries the context all nodes of a checked tree must share.
type checker struct {
	ctx *Context
}

// Check validates structural invariants of a top-level node.
//
// It is meant for tests and debugging; it walks the whole tree.
func (b *block[T]) Check() error {
	if b.level != 0 {
		return fmt.Errorf("%w: top-level block has level %d", ErrInvariantViolated, b.level)
	}
	return b.check(&checker{ctx: b.ctx}, true)
}

// Check validates structural invariants of a top-level node.
//
// It is meant for tests and debugging; it walks the whole tree.
func (t *tree[T]) Check() error {
	if t.level != 0 {
		return fmt.Errorf("%w: top-level tree has level %d", ErrInvariantViolated, t.level)
	}
	if t.length <= t.ctx.maxBlock {
		return fmt.Errorf("%w: top-level tree of length %d should be a block",
			ErrInvariantViolated, t.length)
	}
	return t.check(&checker{ctx: t.ctx}, true)
}

func (b *block[T]) check(c *checker, boundary bool) error {
	if b.ctx != c.ctx {
		return fmt.Errorf("%w: block %d", ErrIncompatibleContext, b.id)
	}
	size := b.size()
	if size == 0 || size > c.ctx.maxBlock {
		return fmt.Errorf("%w: block %d has %d children", ErrInvariantViolated, b.id, size)
	}
	if !boundary && size < c.ctx.minBlock {
		return fmt.Errorf("%w: inner block %d has only %d children", ErrInvariantViolated, b.id, size)
	}
	if b.level == 0 {
		if b.length != len(b.elems) {
			return fmt.Errorf("%w: leaf block %d length %d != %d", ErrInvariantViolated,
				b.id, b.length, len(b.elems))
		}
		if len(b.kids) != 0 {
			return fmt.Errorf("%w: leaf block %d has child blocks", ErrInvariantViolated, b.id)
		}
		return nil
	}
	if len(b.elems) != 0 {
		return fmt.Errorf("%w: block %d of level %d holds elements", ErrInvariantViolated, b.id, b.level)
	}
	total := 0
	for i, k := range b.kids {
		if k == nil {
			return fmt.Errorf("%w: nil child at index %d of block %d", ErrInvariantViolated, i, b.id)
		}
		if k.level != b.level-1 {
			return fmt.Errorf("%w: child of block %d has level %d, expected %d", ErrInvariantViolated,
				b.id, k.level, b.level-1)
		}
		if err := k.check(c, false); err != nil {
			return err
		}
		total += k.length
	}
	if total != b.length {
		return fmt.Errorf("%w: block %d length %d != sum of children %d", ErrInvariantViolated,
			b.id, b.length, total)
	}
	return nil
}

func (t *tree[T]) check(c *checker, _ bool) error {
	if t.ctx != c.ctx {
		return fmt.Errorf("%w: tree %d", ErrIncompatibleContext, t.id)
	}
	if t.left == nil || t.right == nil {
		return fmt.Errorf("%w: tree %d misses a boundary block", ErrInvariantViolated, t.id)
	}
	if t.left.level != t.level || t.right.level != t.level {
		return fmt.Errorf("%w: boundaries of tree %d have wrong level", ErrInvariantViolated, t.id)
	}
	if err := t.left.check(c, true); err != nil {
		return err
	}
	if err := t.right.check(c, true); err != nil {
		return err
	}
	total := t.left.length + t.right.length
	if t.middle != nil {
		if t.middle.Level() != t.level+1 {
			return fmt.Errorf("%w: middle of tree %d has level %d, expected %d", ErrInvariantViolated,
				t.id, t.middle.Level(), t.level+1)
		}
		if err := t.middle.check(c, true); err != nil {
			return err
		}
		total += t.middle.Len()
	}
	if total != t.length {
		return fmt.Errorf("%w: tree %d length %d != sum of parts %d", ErrInvariantViolated,
			t.id, t.length, total)
	}
	return nil
}
