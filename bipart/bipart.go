// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package bipart implements the enumeration
// of the partitions induced by the edges
// of a phylogenetic tree:
// bipartitions, quadripartitions,
// and quartets.
//
// Partitions are reported in a canonical form
// that does not depend on the rooting
// or the rotation of the tree,
// so the partitions of equivalent topologies
// compare equal.
package bipart

import (
	"slices"
	"strings"

	"github.com/js-arias/phytree"
	"github.com/js-arias/phytree/internal/bitset"
)

// A Partition is a bipartition of the terminals
// of a tree:
// the two disjoint sets of tip names
// separated by an internal edge.
// Left is the smaller side;
// if both sides have the same size,
// Left is the side with the smallest first name.
// Both sides are in sorted order.
type Partition struct {
	Left  []string
	Right []string
}

// Equal reports whether two partitions
// separate the same two sets.
func (p Partition) Equal(q Partition) bool {
	return slices.Equal(p.Left, q.Left) && slices.Equal(p.Right, q.Right)
}

// String returns the partition
// in the form "a b|c d".
func (p Partition) String() string {
	return strings.Join(p.Left, " ") + "|" + strings.Join(p.Right, " ")
}

func newPartition(left, right []string) Partition {
	slices.Sort(left)
	slices.Sort(right)
	if len(right) < len(left) || (len(right) == len(left) && right[0] < left[0]) {
		left, right = right, left
	}
	return Partition{Left: left, Right: right}
}

func cmpPartition(a, b Partition) int {
	if d := len(a.Left) - len(b.Left); d != 0 {
		return d
	}
	if d := slices.Compare(a.Left, b.Left); d != 0 {
		return d
	}
	return slices.Compare(a.Right, b.Right)
}

// Of returns the bipartitions induced
// by the internal edges of a tree,
// in canonical order.
// Trivial partitions,
// in which one side has a single terminal,
// are not reported,
// so the result is independent
// of the placement of the root.
//
// By default only terminal names are reported;
// if withInternal is true,
// the names of the internal nodes
// of each side are included as well.
func Of(t *phytree.Tree, withInternal bool) []Partition {
	tf := newTipField(t)

	seen := make(map[string]bool)
	var ps []Partition
	for _, n := range t.Nodes() {
		if n.IsLeaf() || n.IsRoot() {
			continue
		}
		below := tf.clade[n]
		if c := below.Count(); c < 2 || tf.size-c < 2 {
			continue
		}
		key := below.Key()
		above := bitset.New(tf.size)
		above.Complement(below)
		if seen[key] || seen[above.Key()] {
			continue
		}
		seen[key] = true

		left := tf.names(below)
		right := tf.names(above)
		if withInternal {
			left = append(left, tf.innerNames(n, true)...)
			right = append(right, tf.innerNames(n, false)...)
		}
		ps = append(ps, newPartition(left, right))
	}
	slices.SortFunc(ps, cmpPartition)
	return ps
}

// Equal reports whether two partition collections
// contain the same partitions.
// Both collections must be in canonical order,
// as returned by Of.
func Equal(a, b []Partition) bool {
	return slices.EqualFunc(a, b, Partition.Equal)
}

// Distance returns the Robinson-Foulds distance
// between two trees:
// the number of bipartitions
// present in only one of the trees.
func Distance(t1, t2 *phytree.Tree) int {
	p1 := Of(t1, false)
	p2 := Of(t2, false)

	in1 := make(map[string]bool, len(p1))
	for _, p := range p1 {
		in1[p.String()] = true
	}
	d := len(p1) + len(p2)
	for _, p := range p2 {
		if in1[p.String()] {
			d -= 2
		}
	}
	return d
}

// tipField maps the terminals of a tree
// to bit positions
// and caches the terminal set
// below every node.
type tipField struct {
	size  int
	label []string
	pos   map[string]int
	clade map[*phytree.Node]*bitset.BitSet
}

func newTipField(t *phytree.Tree) *tipField {
	label := t.TipLabels()
	slices.Sort(label)
	tf := &tipField{
		size:  len(label),
		label: label,
		pos:   make(map[string]int, len(label)),
		clade: make(map[*phytree.Node]*bitset.BitSet),
	}
	for i, l := range label {
		tf.pos[l] = i
	}

	for n := range t.Root().Traverse(phytree.Postorder) {
		b := bitset.New(tf.size)
		if n.IsLeaf() {
			b.Set(tf.pos[n.Name()])
		} else {
			for _, c := range n.Children() {
				b.InPlaceUnion(tf.clade[c])
			}
		}
		tf.clade[n] = b
	}
	return tf
}

func (tf *tipField) names(b *bitset.BitSet) []string {
	var ns []string
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		ns = append(ns, tf.label[i])
	}
	return ns
}

// innerNames returns the names
// of the named internal nodes
// on one side of the edge above n.
func (tf *tipField) innerNames(n *phytree.Node, below bool) []string {
	var ns []string
	if below {
		for u := range n.Traverse(phytree.Preorder) {
			if !u.IsLeaf() && u.Name() != "" {
				ns = append(ns, u.Name())
			}
		}
		return ns
	}
	root := n
	for !root.IsRoot() {
		root = root.Parent()
	}
	inside := make(map[*phytree.Node]bool)
	for u := range n.Traverse(phytree.Preorder) {
		inside[u] = true
	}
	for u := range root.Traverse(phytree.Preorder) {
		if inside[u] {
			continue
		}
		if !u.IsLeaf() && u.Name() != "" {
			ns = append(ns, u.Name())
		}
	}
	return ns
}
