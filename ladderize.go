// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phytree

import "slices"

// Ladderize reorders the children of every node
// by the number of descendants,
// smallest clades first,
// or largest first if reverse is true.
// The relative order of equal-sized clades
// is preserved.
func (t *Tree) Ladderize(reverse bool) {
	size := make(map[*Node]int, len(t.nodes))
	for n := range t.root.Traverse(Postorder) {
		s := 1
		for _, c := range n.children {
			s += size[c]
		}
		size[n] = s
	}

	for n := range t.root.Traverse(Postorder) {
		if n.IsLeaf() {
			continue
		}
		slices.SortStableFunc(n.children, func(a, b *Node) int {
			if reverse {
				return size[b] - size[a]
			}
			return size[a] - size[b]
		})
	}

	t.Reindex()
}

// Ladderize returns a ladderized copy of the tree.
// See the Ladderize method for the semantics.
func Ladderize(t *Tree, reverse bool) *Tree {
	nt := t.Clone()
	nt.Ladderize(reverse)
	return nt
}
