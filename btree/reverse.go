package btree

import "weak"

// reversal memoizes reversed nodes during one reversal, backed by the
// context's cache across reversals. A node and its reverse are recorded in
// both directions, so reversing twice yields the original nodes as long as
// they are alive.
//
// The context's cache holds weak pointers only: caching a reverse never keeps
// a node from being collected.
type reversal struct {
	ctx  *Context
	seen map[uint64]any // strong, for the duration of one reversal
}

func newReversal(ctx *Context) *reversal {
	return &reversal{ctx: ctx, seen: make(map[uint64]any)}
}

// lookupReversed finds the reverse of the node with the given id, of node
// type N.
func lookupReversed[N any](rc *reversal, id uint64) (*N, bool) {
	if n, ok := rc.seen[id]; ok {
		r, ok := n.(*N)
		return r, ok
	}
	if rc.ctx.reversals == nil {
		return nil, false
	}
	v, ok := rc.ctx.reversals.Get(id)
	if !ok {
		return nil, false
	}
	wp, ok := v.(weak.Pointer[N])
	if !ok {
		return nil, false
	}
	r := wp.Value()
	if r == nil {
		rc.ctx.reversals.Remove(id)
		return nil, false
	}
	rc.seen[id] = r
	return r, true
}

func storeReversed[N any](rc *reversal, id, reversedID uint64, node, reversedNode *N) {
	rc.seen[id] = reversedNode
	if rc.ctx.reversals != nil {
		rc.ctx.reversals.Add(id, weak.Make(reversedNode))
		rc.ctx.reversals.Add(reversedID, weak.Make(node))
	}
}
