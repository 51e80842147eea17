package btree

// cursor is a fast iterator over the elements of a node. It keeps an
// explicit stack of partially visited nodes and the current leaf block.
type cursor[T any] struct {
	stack    []frame[T]
	leaf     []T
	pos      int
	reversed bool
}

// frame is a node on the cursor stack, with the number of children already
// handed out. Trees count their parts: left, middle, right.
type frame[T any] struct {
	node Node[T]
	next int
}

func newCursor[T any](n Node[T], reversed bool) *cursor[T] {
	c := &cursor[T]{reversed: reversed}
	if n = normalizeNode(n); n != nil {
		c.enter(n)
	}
	return c
}

// enter makes n the next node to visit.
func (c *cursor[T]) enter(n Node[T]) {
	if b, ok := n.(*block[T]); ok && b.level == 0 {
		c.leaf, c.pos = b.elems, 0
		return
	}
	c.stack = append(c.stack, frame[T]{node: n})
}

// FastNext returns the next element or otherwise when exhausted.
func (c *cursor[T]) FastNext(otherwise T) T {
	if v, ok := c.Next(); ok {
		return v
	}
	return otherwise
}

// Next returns the next element and true, or false when exhausted.
func (c *cursor[T]) Next() (T, bool) {
	for c.pos >= len(c.leaf) {
		if !c.advance() {
			var zero T
			return zero, false
		}
	}
	i := c.pos
	if c.reversed {
		i = len(c.leaf) - 1 - c.pos
	}
	c.pos++
	return c.leaf[i], true
}

// advance descends to the next leaf block. It returns false when the stack
// is exhausted.
func (c *cursor[T]) advance() bool {
	for len(c.stack) > 0 {
		child, ok := c.nextChild(&c.stack[len(c.stack)-1])
		if !ok {
			c.stack = c.stack[:len(c.stack)-1]
			continue
		}
		c.enter(child)
		if c.pos < len(c.leaf) {
			return true
		}
	}
	return false
}

func (c *cursor[T]) nextChild(f *frame[T]) (Node[T], bool) {
	switch n := f.node.(type) {
	case *block[T]:
		if f.next >= len(n.kids) {
			return nil, false
		}
		i := f.next
		if c.reversed {
			i = len(n.kids) - 1 - f.next
		}
		f.next++
		return n.kids[i], true
	case *tree[T]:
		for f.next < 3 {
			part := f.next
			f.next++
			if c.reversed {
				part = 2 - part
			}
			switch part {
			case 0:
				return n.left, true
			case 1:
				if n.middle != nil {
					return n.middle, true
				}
			case 2:
				return n.right, true
			}
		}
	}
	return nil, false
}
