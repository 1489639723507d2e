// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package phytree implements a model
// for rooted phylogenetic trees
// with branch lengths and support values.
//
// A tree is a collection of nodes
// with a single root,
// in which each node except the root
// has a single parent.
// Nodes are identified by an index (idx)
// that is assigned automatically:
// terminals take the lowest values,
// internal nodes are numbered from the root down,
// so the root always has the largest idx.
package phytree

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
)

// A Node is a vertex of a phylogenetic tree,
// either a terminal (leaf) or an internal node.
//
// Nodes created with NewNode are unattached
// (idx is -1)
// until they are put into a Tree.
type Node struct {
	name    string
	dist    float64
	support float64
	feat    map[string]string

	parent   *Node
	children []*Node

	idx    int
	height float64
}

// NewNode creates a new unattached node
// with the given name and branch length.
// The support value is undefined (NaN).
func NewNode(name string, dist float64) *Node {
	return &Node{
		name:    name,
		dist:    dist,
		support: math.NaN(),
		idx:     -1,
	}
}

// Name returns the name of the node.
// It is empty for unnamed nodes.
func (n *Node) Name() string {
	return n.name
}

// SetName sets the name of the node.
func (n *Node) SetName(name string) {
	n.name = name
}

// Dist returns the length of the branch
// between the node and its parent.
func (n *Node) Dist() float64 {
	return n.dist
}

// SetDist sets the length of the branch
// between the node and its parent.
// A negative length is accepted,
// but a warning will be printed
// in the standard error.
func (n *Node) SetDist(dist float64) {
	if dist < 0 {
		fmt.Fprintf(os.Stderr, "warning: negative branch length %g on node %q\n", dist, n.name)
	}
	n.dist = dist
}

// Support returns the support value
// of the branch between the node and its parent.
// It returns NaN if the support is undefined.
func (n *Node) Support() float64 {
	return n.support
}

// HasSupport reports whether the node
// has a defined support value.
func (n *Node) HasSupport() bool {
	return !math.IsNaN(n.support)
}

// SetSupport sets the support value
// of the branch between the node and its parent.
func (n *Node) SetSupport(support float64) {
	n.support = support
}

// Parent returns the parent of the node,
// or nil if the node is a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the children of the node
// in their current order.
// The returned slice is a copy.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// Degree returns the number of children of the node.
func (n *Node) Degree() int {
	return len(n.children)
}

// IsLeaf reports whether the node is a terminal.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool {
	return n.parent == nil
}

// Idx returns the index of the node in its tree,
// or -1 if the node is not part of an indexed tree.
func (n *Node) Idx() int {
	return n.idx
}

// Height returns the distance
// from the node to its farthest descendant terminal.
// It is zero for terminals.
func (n *Node) Height() float64 {
	return n.height
}

// SetFeature stores an arbitrary key-value feature
// on the node.
// Features are carried by copies
// and can be written as NHX comment blocks.
func (n *Node) SetFeature(key, value string) {
	if n.feat == nil {
		n.feat = make(map[string]string)
	}
	n.feat[key] = value
}

// Feature returns the value of a feature
// and whether it is defined on the node.
func (n *Node) Feature(key string) (string, bool) {
	v, ok := n.feat[key]
	return v, ok
}

// FloatFeature returns a feature interpreted
// as a floating point number.
func (n *Node) FloatFeature(key string) (float64, error) {
	v, ok := n.feat[key]
	if !ok {
		return 0, fmt.Errorf("node %q: undefined feature %q", n.name, key)
	}
	var f float64
	if _, err := fmt.Sscanf(v, "%g", &f); err != nil {
		return 0, fmt.Errorf("node %q: feature %q: %v", n.name, key, err)
	}
	return f, nil
}

// Features returns the feature keys defined on the node,
// in sorted order.
func (n *Node) Features() []string {
	if len(n.feat) == 0 {
		return nil
	}
	keys := make([]string, 0, len(n.feat))
	for k := range n.feat {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// AddChild attaches a node as the last child of n.
// It is an error if the child is already attached
// to another node,
// or if the attachment would create a cycle.
//
// Callers editing an indexed tree
// must call the Reindex method of the tree
// after any direct structural change.
func (n *Node) AddChild(c *Node) error {
	if c.parent != nil {
		return fmt.Errorf("node %q: already attached to %q", c.name, c.parent.name)
	}
	for p := n; p != nil; p = p.parent {
		if p == c {
			return fmt.Errorf("node %q: attachment creates a cycle", c.name)
		}
	}
	c.parent = n
	n.children = append(n.children, c)
	return nil
}

// Detach removes the node,
// with its whole subtree,
// from its parent.
// It is a no-op on a root.
func (n *Node) Detach() {
	p := n.parent
	if p == nil {
		return
	}
	i := slices.Index(p.children, n)
	p.children = slices.Delete(p.children, i, i+1)
	n.parent = nil
}

// Delete removes the node from the tree,
// reconnecting its children to its parent
// at the position the node used to occupy.
//
// If preserveDists is true,
// the branch length of the deleted node
// is added to each reconnected child.
// If preventUnary is true,
// any single-child internal node
// left behind by the removal
// is removed as well,
// always preserving branch lengths.
//
// Deleting a root is an error.
func (n *Node) Delete(preserveDists, preventUnary bool) error {
	p := n.parent
	if p == nil {
		return errors.New("cannot delete a root node")
	}

	i := slices.Index(p.children, n)
	cs := slices.Clone(n.children)
	for _, c := range cs {
		c.parent = p
		if preserveDists {
			c.dist += n.dist
		}
	}
	p.children = slices.Concat(p.children[:i], cs, p.children[i+1:])
	n.parent = nil
	n.children = nil

	if preventUnary {
		for u := p; u != nil && len(u.children) == 1 && u.parent != nil; {
			next := u.parent
			if err := u.Delete(true, false); err != nil {
				return err
			}
			u = next
		}
	}
	return nil
}

// Copy returns a deep copy of the node
// and all of its descendants.
//
// If detach is true,
// the copy has no parent.
// Otherwise the whole tree that contains the node
// is copied,
// and the node corresponding to n
// in the new tree is returned.
func (n *Node) Copy(detach bool) *Node {
	if detach || n.parent == nil {
		return n.copySubtree()
	}

	r := n
	for !r.IsRoot() {
		r = r.parent
	}
	// record the path from the root to n
	var path []int
	for u := n; u.parent != nil; u = u.parent {
		path = append(path, slices.Index(u.parent.children, u))
	}

	nc := r.copySubtree()
	for i := len(path) - 1; i >= 0; i-- {
		nc = nc.children[path[i]]
	}
	return nc
}

func (n *Node) copySubtree() *Node {
	nc := &Node{
		name:    n.name,
		dist:    n.dist,
		support: n.support,
		idx:     -1,
		height:  n.height,
	}
	if len(n.feat) > 0 {
		nc.feat = make(map[string]string, len(n.feat))
		for k, v := range n.feat {
			nc.feat[k] = v
		}
	}
	for _, c := range n.children {
		cc := c.copySubtree()
		cc.parent = nc
		nc.children = append(nc.children, cc)
	}
	return nc
}
