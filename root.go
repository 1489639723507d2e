// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phytree

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrParaphyletic is returned when a rooting query
// does not define a valid edge to split:
// neither the queried tips
// nor their complement
// form a proper clade below the current root.
var ErrParaphyletic = errors.New("paraphyletic query")

// RootOptions control the placement of a new root.
type RootOptions struct {
	// RootDist is the branch length kept
	// by the query-side child of the new root;
	// the remainder of the split edge
	// goes to the other side.
	// It must be in [0, dist] of the split edge.
	// It is ignored if Midpoint is true.
	RootDist float64

	// Midpoint splits the edge at its middle point.
	Midpoint bool

	// EdgeFeatures lists node features
	// that belong to edges rather than nodes,
	// and that must follow their edge
	// when the direction of the edge changes.
	// Branch lengths and support values
	// are always treated this way.
	EdgeFeatures []string
}

// RootAt places the root of the tree
// on the edge above the most recent common ancestor
// of the queried nodes.
// A nil opt splits that edge at its midpoint.
//
// If the ancestor of the query is the current root,
// the complement of the queried tips is used instead;
// if neither side is a proper clade,
// the query is paraphyletic and an error is returned.
//
// On every edge between the split point
// and the old root,
// the direction of the edge is reversed,
// and the branch length, support,
// and any feature listed in opt.EdgeFeatures
// stay attached to their edge.
func (t *Tree) RootAt(opt *RootOptions, qs ...Query) error {
	if opt == nil {
		opt = &RootOptions{Midpoint: true}
	}

	node1, err := t.MRCA(qs...)
	if err != nil {
		return err
	}
	if node1.IsRoot() {
		node1, err = t.complementMRCA(qs...)
		if err != nil {
			return err
		}
	}
	if !node1.IsLeaf() && node1.parent == t.root && len(t.root.children) == 2 {
		return fmt.Errorf("tree %q: %w: clade is already the root split", t.name, ErrParaphyletic)
	}

	edge := node1.dist
	keep := edge / 2
	if !opt.Midpoint {
		keep = opt.RootDist
		if keep < 0 || keep > edge {
			return fmt.Errorf("tree %q: root dist %g outside of edge length %g", t.name, keep, edge)
		}
	}

	// the path from the old attachment
	// up to the old root
	node2 := node1.parent
	var path []*Node
	for u := node2; u != nil; u = u.parent {
		path = append(path, u)
	}

	// edge values seen from the child side
	dists := make([]float64, len(path))
	supports := make([]float64, len(path))
	feats := make([]map[string]string, len(path))
	for i := range path {
		var v *Node
		if i == 0 {
			v = node1
		} else {
			v = path[i-1]
		}
		dists[i] = v.dist
		supports[i] = v.support
		fm := make(map[string]string)
		for _, k := range opt.EdgeFeatures {
			if x, ok := v.feat[k]; ok {
				fm[k] = x
			}
		}
		feats[i] = fm
	}
	dists[0] = edge - keep

	node1.Detach()
	root := NewNode("", 0)
	root.children = []*Node{node1, node2}
	node1.parent = root
	node2.parent = root
	node1.dist = keep

	// reverse the edges on the path to the old root
	for i, u := range path {
		u.dist = dists[i]
		u.support = supports[i]
		for _, k := range opt.EdgeFeatures {
			if x, ok := feats[i][k]; ok {
				u.SetFeature(k, x)
			} else {
				delete(u.feat, k)
			}
		}
		if i == len(path)-1 {
			break
		}
		p := path[i+1]
		j := slices.Index(p.children, u)
		p.children = slices.Delete(p.children, j, j+1)
		p.parent = u
		u.children = append(u.children, p)
	}

	// an old binary root is now an unneeded
	// pass-through node
	old := path[len(path)-1]
	if len(old.children) == 1 {
		if err := old.Delete(true, false); err != nil {
			return err
		}
	}

	t.root = root
	t.Reindex()
	return nil
}

// complementMRCA returns the common ancestor
// of all tips not selected by the queries.
func (t *Tree) complementMRCA(qs ...Query) (*Node, error) {
	in, err := t.TipSet(qs...)
	if err != nil {
		return nil, err
	}
	var out []Query
	for _, n := range t.nodes[:t.tips] {
		if !in[n.name] {
			out = append(out, Is(n))
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("tree %q: cannot root on the whole tip set", t.name)
	}
	anc, err := t.MRCA(out...)
	if err != nil {
		return nil, err
	}
	if anc.IsRoot() {
		return nil, fmt.Errorf("tree %q: %w: neither side of the query is a clade", t.name, ErrParaphyletic)
	}
	return anc, nil
}

// Unroot removes a binary root,
// reconnecting its two children
// into a single node with three or more children.
// The branch lengths of the two root edges
// are summed onto the surviving edge,
// and the support of the promoted child
// is inherited by that edge.
func (t *Tree) Unroot() error {
	if len(t.root.children) != 2 {
		return fmt.Errorf("tree %q: root is not binary", t.name)
	}
	keep := t.root.children[0]
	other := t.root.children[1]
	if keep.IsLeaf() {
		keep, other = other, keep
	}
	if keep.IsLeaf() {
		return fmt.Errorf("tree %q: cannot unroot a two-taxon tree", t.name)
	}

	other.Detach()
	keep.Detach()
	other.dist += keep.dist
	if !other.IsLeaf() && keep.HasSupport() {
		other.support = keep.support
	}
	other.parent = keep
	keep.children = append(keep.children, other)
	keep.dist = 0
	keep.support = math.NaN()

	t.root = keep
	t.Reindex()
	return nil
}

// RootAt returns a copy of the tree
// rooted on the edge above
// the most recent common ancestor
// of the queried nodes.
// See the RootAt method for the semantics.
func RootAt(t *Tree, opt *RootOptions, qs ...Query) (*Tree, error) {
	nt := t.Clone()
	if err := nt.RootAt(opt, qs...); err != nil {
		return nil, err
	}
	return nt, nil
}

// Unroot returns an unrooted copy of the tree.
// See the Unroot method for the semantics.
func Unroot(t *Tree) (*Tree, error) {
	nt := t.Clone()
	if err := nt.Unroot(); err != nil {
		return nil, err
	}
	return nt, nil
}
