package btree

// NodeKind classifies nodes for diagnostic walks.
type NodeKind int8

const (
	LeafBlock NodeKind = iota // block of level 0
	InnerBlock                // block of level >= 1
	TreeNode                  // tree with boundaries and optional middle
)

func (k NodeKind) String() string {
	switch k {
	case LeafBlock:
		return "LeafBlock"
	case InnerBlock:
		return "Block"
	case TreeNode:
		return "Tree"
	}
	return "?"
}

// Role is the position of a node within its parent.
type Role int8

const (
	RoleRoot Role = iota
	RoleChild
	RoleLeft
	RoleMiddle
	RoleRight
)

func (r Role) String() string {
	return [...]string{"root", "child", "left", "middle", "right"}[r]
}

// NodeInfo describes a node visited by Walk.
type NodeInfo struct {
	ID     uint64
	Parent uint64 // 0 for the root
	Kind   NodeKind
	Role   Role
	Level  int
	Len    int
	Size   int // number of children of blocks, parts of trees
	Depth  int
}

// Walk visits every node of n in pre-order. For leaf blocks, values holds
// the block's elements; it must not be modified.
func Walk[T any](n Node[T], visit func(info NodeInfo, values []T)) {
	if n = normalizeNode(n); n == nil {
		return
	}
	walk(n, 0, RoleRoot, 0, visit)
}

func walk[T any](n Node[T], parent uint64, role Role, depth int, visit func(NodeInfo, []T)) {
	info := NodeInfo{
		ID:     n.ID(),
		Parent: parent,
		Role:   role,
		Level:  n.Level(),
		Len:    n.Len(),
		Depth:  depth,
	}
	switch v := n.(type) {
	case *block[T]:
		info.Size = v.size()
		if v.level == 0 {
			info.Kind = LeafBlock
			visit(info, v.elems)
			return
		}
		info.Kind = InnerBlock
		visit(info, nil)
		for _, k := range v.kids {
			walk[T](k, v.id, RoleChild, depth+1, visit)
		}
	case *tree[T]:
		info.Kind = TreeNode
		info.Size = 2
		if v.middle != nil {
			info.Size = 3
		}
		visit(info, nil)
		walk[T](v.left, v.id, RoleLeft, depth+1, visit)
		if v.middle != nil {
			walk(v.middle, v.id, RoleMiddle, depth+1, visit)
		}
		walk[T](v.right, v.id, RoleRight, depth+1, visit)
	}
}
