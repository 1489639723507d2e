// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phytree

import (
	"errors"
	"math"
)

// A Tree is a rooted phylogenetic tree,
// a root node with an index of all of its descendants.
//
// Indexes (idx) are a permutation of 0..Len()-1:
// terminals take 0..Tips()-1,
// from the bottom to the top of the tree
// in its current left-to-right order,
// and internal nodes take the remaining values
// in level order from the root,
// so the root is always Len()-1.
//
// A tree never shares nodes with another tree.
// Editing operations work in place
// as tree methods,
// or on a copy
// as package level functions.
type Tree struct {
	name  string
	root  *Node
	nodes []*Node
	tips  int
}

// New creates a new tree from a root node.
// The node must be unattached;
// the whole subtree becomes owned by the tree.
func New(name string, root *Node) (*Tree, error) {
	if root == nil {
		return nil, errors.New("undefined root node")
	}
	if root.parent != nil {
		return nil, errors.New("root node is attached to a parent")
	}
	t := &Tree{
		name: name,
		root: root,
	}
	t.Reindex()
	return t, nil
}

// Name returns the name of the tree.
func (t *Tree) Name() string {
	return t.name
}

// SetName sets the name of the tree.
func (t *Tree) SetName(name string) {
	t.name = name
}

// Root returns the root node of the tree.
func (t *Tree) Root() *Node {
	return t.root
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Tips returns the number of terminals in the tree.
func (t *Tree) Tips() int {
	return t.tips
}

// Node returns the node with the given idx,
// or nil if the idx is out of range.
func (t *Tree) Node(idx int) *Node {
	if idx < 0 || idx >= len(t.nodes) {
		return nil
	}
	return t.nodes[idx]
}

// Nodes returns all nodes of the tree in idx order.
// The returned slice is a copy.
func (t *Tree) Nodes() []*Node {
	nodes := make([]*Node, len(t.nodes))
	copy(nodes, t.nodes)
	return nodes
}

// TipLabels returns the names of the terminals
// in idx order.
func (t *Tree) TipLabels() []string {
	labels := make([]string, 0, t.tips)
	for _, n := range t.nodes[:t.tips] {
		labels = append(labels, n.name)
	}
	return labels
}

// Height returns the distance
// from the root to its farthest terminal.
func (t *Tree) Height() float64 {
	return t.root.height
}

// IsBinary reports whether every internal node
// of the tree has exactly two children.
func (t *Tree) IsBinary() bool {
	for _, n := range t.nodes[t.tips:] {
		if len(n.children) != 2 {
			return false
		}
	}
	return true
}

// IsUltrametric reports whether all terminals
// are at the same distance from the root,
// within the given tolerance.
func (t *Tree) IsUltrametric(tol float64) bool {
	h := t.root.height
	for _, n := range t.nodes[:t.tips] {
		d := 0.0
		for u := n; u.parent != nil; u = u.parent {
			d += u.dist
		}
		if math.Abs(d-h) > tol {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the tree.
func (t *Tree) Clone() *Tree {
	nt := &Tree{
		name: t.name,
		root: t.root.copySubtree(),
	}
	nt.Reindex()
	return nt
}

// Reindex rebuilds the idx assignment
// and the cached node heights.
// It must be called after any direct edit
// of the nodes of the tree;
// all editing methods of the tree call it
// before returning.
func (t *Tree) Reindex() {
	var leaves, inner []*Node
	for n := range t.root.Traverse(Preorder) {
		if n.IsLeaf() {
			leaves = append(leaves, n)
		}
	}
	for n := range t.root.Traverse(Levelorder) {
		if !n.IsLeaf() {
			inner = append(inner, n)
		}
	}

	size := len(leaves) + len(inner)
	t.nodes = make([]*Node, size)
	t.tips = len(leaves)

	// terminals: bottom-to-top of the current tip order
	for i, n := range leaves {
		n.idx = len(leaves) - 1 - i
		t.nodes[n.idx] = n
	}
	// internals: level order, root gets the highest idx
	for i, n := range inner {
		n.idx = size - 1 - i
		t.nodes[n.idx] = n
	}

	for n := range t.root.Traverse(Postorder) {
		if n.IsLeaf() {
			n.height = 0
			continue
		}
		h := math.Inf(-1)
		for _, c := range n.children {
			if ch := c.height + c.dist; ch > h {
				h = ch
			}
		}
		n.height = h
	}
}
