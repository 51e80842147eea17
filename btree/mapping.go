package btree

// Map creates a node of the same shape as n, holding f applied to every
// element. f receives the element and its index in the result. If reversed
// is set, the result holds the mapped elements in reverse order.
func Map[T, U any](n Node[T], f func(T, int) U, reversed bool) Node[U] {
	if n = normalizeNode(n); n == nil {
		return nil
	}
	m := mapper[T, U]{f: f, reversed: reversed}
	return m.node(n)
}

type mapper[T, U any] struct {
	f        func(T, int) U
	reversed bool
	index    int
}

func (m *mapper[T, U]) node(n Node[T]) Node[U] {
	switch v := n.(type) {
	case *block[T]:
		return m.block(v)
	case *tree[T]:
		first, last := v.left, v.right
		if m.reversed {
			first, last = last, first
		}
		l := m.block(first)
		var middle Node[U]
		if v.middle != nil {
			middle = m.node(v.middle)
		}
		r := m.block(last)
		return makeTree(v.ctx, l, r, middle)
	}
	panic("unknown node type in map")
}

func (m *mapper[T, U]) block(b *block[T]) *block[U] {
	if b.level == 0 {
		out := make([]U, len(b.elems))
		for i := range b.elems {
			j := i
			if m.reversed {
				j = len(b.elems) - 1 - i
			}
			out[i] = m.f(b.elems[j], m.index)
			m.index++
		}
		return makeLeaf(b.ctx, out)
	}
	kids := make([]*block[U], len(b.kids))
	for i := range b.kids {
		j := i
		if m.reversed {
			j = len(b.kids) - 1 - i
		}
		kids[i] = m.block(b.kids[j])
	}
	return makeInner(b.ctx, b.level, kids)
}
