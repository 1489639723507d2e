// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phytree

import (
	"math"
	"math/rand/v2"
)

// CollapseOptions control the collapse of internal nodes.
type CollapseOptions struct {
	// MinDist collapses any internal node
	// whose branch length is smaller than this value.
	MinDist float64

	// MinSupport collapses any internal node
	// with a defined support value
	// smaller than this value.
	MinSupport float64
}

// Collapse removes internal, non-root nodes,
// turning each removal into a polytomy
// on the parent node,
// with the removed branch length
// added to the children.
//
// The queried nodes are always collapsed;
// with a nil query every internal node is a candidate.
// Nodes below the opt thresholds
// are collapsed as well.
func (t *Tree) Collapse(opt *CollapseOptions, qs ...Query) error {
	if opt == nil {
		opt = &CollapseOptions{}
	}

	mark := make(map[*Node]bool)
	if len(qs) > 0 {
		m, err := t.Search(qs...)
		if err != nil {
			return err
		}
		for _, n := range m {
			mark[n] = true
		}
	}
	for _, n := range t.nodes[t.tips:] {
		if n.dist < opt.MinDist {
			mark[n] = true
		}
		if n.HasSupport() && n.support < opt.MinSupport {
			mark[n] = true
		}
	}

	var del []*Node
	for _, n := range t.nodes[t.tips:] {
		if n.IsRoot() || !mark[n] {
			continue
		}
		del = append(del, n)
	}
	for _, n := range del {
		if err := n.Delete(true, false); err != nil {
			return err
		}
	}

	t.Reindex()
	return nil
}

// ResolveOptions control the random resolution
// of polytomies.
type ResolveOptions struct {
	// Dist and Support are assigned
	// to every new internal node.
	Dist    float64
	Support float64

	// Recursive resolves the new internal nodes
	// until the subtree is fully binary.
	Recursive bool

	// Seed for the random partition of children.
	Seed uint64
}

// Resolve randomly resolves polytomies.
// For every node with more than two children,
// the children are randomly partitioned
// into a left child
// and a new internal node with the rest;
// with opt.Recursive the process is repeated
// on the new node until the subtree is binary.
//
// With a nil query every node is a candidate.
func (t *Tree) Resolve(opt *ResolveOptions, qs ...Query) error {
	if opt == nil {
		opt = &ResolveOptions{Support: math.NaN(), Recursive: true}
	}

	var ns []*Node
	if len(qs) > 0 {
		m, err := t.Search(qs...)
		if err != nil {
			return err
		}
		ns = m
	} else {
		ns = t.nodes[t.tips:]
	}

	rng := rand.New(rand.NewPCG(opt.Seed, opt.Seed))
	for _, n := range ns {
		resolveNode(n, opt, rng)
	}

	t.Reindex()
	return nil
}

func resolveNode(n *Node, opt *ResolveOptions, rng *rand.Rand) {
	for len(n.children) > 2 {
		cs := n.Children()
		rng.Shuffle(len(cs), func(i, j int) {
			cs[i], cs[j] = cs[j], cs[i]
		})

		nn := NewNode("", opt.Dist)
		nn.support = opt.Support
		for _, c := range cs[1:] {
			c.Detach()
			c.parent = nn
			nn.children = append(nn.children, c)
		}
		nn.parent = n
		n.children = append(n.children, nn)

		if !opt.Recursive {
			return
		}
		n = nn
	}
}

// RotateNode reverses the order of the children
// of the most recent common ancestor
// of the queried nodes.
func (t *Tree) RotateNode(qs ...Query) error {
	n, err := t.MRCA(qs...)
	if err != nil {
		return err
	}
	for i, j := 0, len(n.children)-1; i < j; i, j = i+1, j-1 {
		n.children[i], n.children[j] = n.children[j], n.children[i]
	}
	t.Reindex()
	return nil
}

// Collapse returns a copy of the tree
// with the queried internal nodes collapsed.
// See the Collapse method for the semantics.
func Collapse(t *Tree, opt *CollapseOptions, qs ...Query) (*Tree, error) {
	nt := t.Clone()
	if err := nt.Collapse(opt, qs...); err != nil {
		return nil, err
	}
	return nt, nil
}

// Resolve returns a copy of the tree
// with its polytomies randomly resolved.
// See the Resolve method for the semantics.
func Resolve(t *Tree, opt *ResolveOptions, qs ...Query) (*Tree, error) {
	nt := t.Clone()
	if err := nt.Resolve(opt, qs...); err != nil {
		return nil, err
	}
	return nt, nil
}

// RotateNode returns a copy of the tree
// with the children of the queried node reversed.
// See the RotateNode method for the semantics.
func RotateNode(t *Tree, qs ...Query) (*Tree, error) {
	nt := t.Clone()
	if err := nt.RotateNode(qs...); err != nil {
		return nil, err
	}
	return nt, nil
}
