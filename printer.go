package plist

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/plist/btree"
	"golang.org/x/term"
)

var structurePalette = map[btree.NodeKind]*color.Color{
	btree.LeafBlock:  color.New(color.FgBlue),
	btree.InnerBlock: color.New(color.FgGreen),
	btree.TreeNode:   color.New(color.FgRed, color.Bold),
}

// PrintStructure writes an indented outline of the node layout of l to w.
// Node kinds are colored if w is a terminal.
func PrintStructure[T any](l List[T], w io.Writer) {
	colored := isTerminal(w)
	if l.root == nil {
		io.WriteString(w, "<Empty>\n")
		return
	}
	btree.Walk(l.root, func(info btree.NodeInfo, _ []T) {
		indent := strings.Repeat("  ", info.Depth)
		head := info.Kind.String()
		if colored {
			head = structurePalette[info.Kind].Sprint(head)
		}
		role := ""
		if info.Role != btree.RoleRoot && info.Role != btree.RoleChild {
			role = info.Role.String() + " "
		}
		fmt.Fprintf(w, "%s%s<%s level:%d size:%d len:%d>\n", indent, role, head,
			info.Level, info.Size, info.Len)
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
