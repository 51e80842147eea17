package plist

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/plist/btree"
)

// List2Dot outputs the internal structure of a List in Graphviz DOT format
// (for debugging purposes).
func List2Dot[T any](l List[T], w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	var nodelist, edgelist strings.Builder
	btree.Walk(l.root, func(info btree.NodeInfo, values []T) {
		styles := nodeDotStyles(info.Kind)
		var label string
		switch info.Kind {
		case btree.LeafBlock:
			label = fmt.Sprintf("%d\\n%s", info.Len, valuesStart(values))
		case btree.InnerBlock:
			label = fmt.Sprintf("L%d | %d", info.Level, info.Len)
		default:
			label = fmt.Sprintf("tree L%d\\n%d", info.Level, info.Len)
		}
		fmt.Fprintf(&nodelist, "\"%d\" [label=\"%s\" %s];\n", info.ID, label, styles)
		if info.Parent != 0 {
			fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\" [label=\"%s\"];\n", info.Parent, info.ID, edgeLabel(info.Role))
		}
	})
	if l.root == nil {
		nodelist.WriteString("\"0\" " + emptyNode() + ";\n")
	}
	io.WriteString(w, nodelist.String())
	io.WriteString(w, edgelist.String())
	io.WriteString(w, "}\n")
}

// valuesStart shows the first values of a leaf block.
func valuesStart[T any](values []T) string {
	const show = 3
	var sb strings.Builder
	for i, v := range values {
		if i == show {
			sb.WriteString(" …")
			break
		}
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprint(&sb, v)
	}
	return strings.ReplaceAll(sb.String(), "\"", "\\\"")
}

func edgeLabel(role btree.Role) string {
	switch role {
	case btree.RoleLeft:
		return "L"
	case btree.RoleMiddle:
		return "M"
	case btree.RoleRight:
		return "R"
	}
	return ""
}

func emptyNode() string {
	return "[label=\"\",color=black,shape=circle,fixedsize=true,width=.4]"
}

func nodeDotStyles(kind btree.NodeKind) string {
	s := ",style=filled"
	switch kind {
	case btree.LeafBlock:
		s += ",shape=box"
	case btree.InnerBlock:
		s += ",color=black,fillcolor=\"#a3d7e4\",shape=box"
	default:
		s += ",color=black,fillcolor=\"" + hexcolors[2] + "\",shape=circle"
	}
	return s
}

var hexcolors = [...]string{"white", "#CCDDFF", "#AACCFF", "#88BBFF", "#66AAFF",
	"#4499FF", "#2288FF", "#0077FF", "#0066FF"}
