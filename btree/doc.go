/*
Package btree provides the persistent node engine behind plist lists.

A sequence is stored as a tree of nodes. There are two kinds of nodes:

  - blocks hold up to MaxBlockSize children. Leaf blocks (level 0) hold the
    elements themselves, non-leaf blocks hold blocks of the level below.
  - trees hold a left and a right boundary block of their own level, and an
    optional middle node one level up, whose children are blocks of the
    tree's level.

Prepending and appending touch only the boundary blocks, which makes both
amortized constant time. Random access, updates, splitting and concatenation
run in time logarithmic in the length of the sequence.

All nodes are immutable once constructed. Operations return new nodes and
share every untouched subtree with the input. For batches of edits a Builder
keeps mutable working copies of the nodes it touches (copy-on-write) and
re-emits immutable nodes on Build.

Block sizes are configured per Context. Nodes of different contexts are never
mixed within one tree; combining sequences of different contexts re-builds
the second operand.

Invariants (checked by Check):
  - every block holds between 1 and MaxBlockSize children,
  - every block which is the child of a non-leaf block holds at least
    MinBlockSize children,
  - children of a level-L block are blocks of level L-1,
  - boundary blocks of a level-L tree are of level L, its middle is of level L+1,
  - the length of a node is the sum of its children's lengths,
  - a top-level tree holds more than MaxBlockSize elements.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package btree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'plist'
func tracer() tracing.Trace {
	return tracing.Select("plist")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
