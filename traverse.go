// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phytree

import (
	"iter"
	"slices"
)

// An Order is a tree traversal order.
type Order int

// Valid traversal orders.
const (
	// Parent before children, depth first.
	Preorder Order = iota

	// Children before parent.
	Postorder

	// Breadth first from the root.
	Levelorder

	// First child, then the node,
	// then the remaining children.
	// This is the usual in-order traversal
	// on a binary tree;
	// on nodes with more than two children
	// the position of the node is a convention.
	Inorder

	// All terminals first,
	// by idx,
	// then internal nodes in post-order.
	// This is the order used for tree layouts.
	IdxOrder
)

// Traverse returns an iterator over the node
// and all of its descendants
// in the given order.
// Each call produces a fresh, finite sequence.
func (n *Node) Traverse(o Order) iter.Seq[*Node] {
	switch o {
	case Preorder:
		return n.preorder()
	case Postorder:
		return n.postorder()
	case Levelorder:
		return n.levelorder()
	case Inorder:
		return n.inorder()
	case IdxOrder:
		return n.idxOrder()
	}
	panic("phytree: invalid traversal order")
}

func (n *Node) preorder() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		stack := []*Node{n}
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(u) {
				return
			}
			for i := len(u.children) - 1; i >= 0; i-- {
				stack = append(stack, u.children[i])
			}
		}
	}
}

func (n *Node) postorder() iter.Seq[*Node] {
	type frame struct {
		node *Node
		next int
	}
	return func(yield func(*Node) bool) {
		stack := []frame{{node: n}}
		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			if f.next < len(f.node.children) {
				c := f.node.children[f.next]
				f.next++
				stack = append(stack, frame{node: c})
				continue
			}
			if !yield(f.node) {
				return
			}
			stack = stack[:len(stack)-1]
		}
	}
}

func (n *Node) levelorder() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		queue := []*Node{n}
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			if !yield(u) {
				return
			}
			queue = append(queue, u.children...)
		}
	}
}

func (n *Node) inorder() iter.Seq[*Node] {
	type frame struct {
		node *Node
		next int
		self bool
	}
	return func(yield func(*Node) bool) {
		stack := []frame{{node: n}}
		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			if len(f.node.children) == 0 {
				if !yield(f.node) {
					return
				}
				stack = stack[:len(stack)-1]
				continue
			}
			if f.next == 1 && !f.self {
				f.self = true
				if !yield(f.node) {
					return
				}
				continue
			}
			if f.next < len(f.node.children) {
				c := f.node.children[f.next]
				f.next++
				stack = append(stack, frame{node: c})
				continue
			}
			stack = stack[:len(stack)-1]
		}
	}
}

func (n *Node) idxOrder() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		var leaves []*Node
		for u := range n.preorder() {
			if u.IsLeaf() {
				leaves = append(leaves, u)
			}
		}
		slices.SortStableFunc(leaves, func(a, b *Node) int {
			return a.idx - b.idx
		})
		for _, lf := range leaves {
			if !yield(lf) {
				return
			}
		}
		for u := range n.postorder() {
			if u.IsLeaf() {
				continue
			}
			if !yield(u) {
				return
			}
		}
	}
}
