// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package bipart

import (
	"slices"
	"strings"

	"github.com/js-arias/phytree"
	"github.com/js-arias/phytree/internal/bitset"
)

// A Quartet is an unrooted four-terminal topology
// induced by an edge of a tree:
// the pair {A, B} is separated
// from the pair {C, D}.
// Within each pair names are sorted,
// and the pair with the smallest first name
// comes first.
type Quartet struct {
	A, B string
	C, D string
}

// String returns the quartet
// in the form "a b|c d".
func (q Quartet) String() string {
	return q.A + " " + q.B + "|" + q.C + " " + q.D
}

func newQuartet(a, b, c, d string) Quartet {
	if b < a {
		a, b = b, a
	}
	if d < c {
		c, d = d, c
	}
	if c < a {
		a, b, c, d = c, d, a, b
	}
	return Quartet{A: a, B: b, C: c, D: d}
}

func cmpQuartet(a, b Quartet) int {
	if d := strings.Compare(a.A, b.A); d != 0 {
		return d
	}
	if d := strings.Compare(a.B, b.B); d != 0 {
		return d
	}
	if d := strings.Compare(a.C, b.C); d != 0 {
		return d
	}
	return strings.Compare(a.D, b.D)
}

// Quartets returns every quartet induced
// by the internal edges of a tree:
// all the two-by-two combinations
// across each bipartition.
// Quartets induced by more than one edge
// are reported once.
// The result is in canonical order.
func Quartets(t *phytree.Tree) []Quartet {
	seen := make(map[Quartet]bool)
	var qs []Quartet
	for _, p := range Of(t, false) {
		for i := 0; i < len(p.Left); i++ {
			for j := i + 1; j < len(p.Left); j++ {
				for k := 0; k < len(p.Right); k++ {
					for l := k + 1; l < len(p.Right); l++ {
						q := newQuartet(p.Left[i], p.Left[j], p.Right[k], p.Right[l])
						if seen[q] {
							continue
						}
						seen[q] = true
						qs = append(qs, q)
					}
				}
			}
		}
	}
	slices.SortFunc(qs, cmpQuartet)
	return qs
}

// A Quadripartition is the four-way split
// induced by an internal edge
// between two internal nodes:
// the clade of the first child of the lower node,
// the rest of the lower clade,
// the clades of the siblings of the lower node,
// and everything else.
// Each set is in sorted order.
type Quadripartition struct {
	Sets [4][]string
}

// String returns the quadripartition
// in the form "a|b c|d|e".
func (q Quadripartition) String() string {
	ss := make([]string, 4)
	for i, s := range q.Sets {
		ss[i] = strings.Join(s, " ")
	}
	return strings.Join(ss, "|")
}

// Quadripartitions returns the four-way splits
// induced by the internal edges of a tree
// that connect two internal nodes.
func Quadripartitions(t *phytree.Tree) []Quadripartition {
	tf := newTipField(t)

	var qs []Quadripartition
	for _, n := range t.Nodes() {
		if n.IsLeaf() || n.IsRoot() {
			continue
		}
		p := n.Parent()
		if p.IsRoot() && p.Degree() == 2 {
			continue
		}

		cs := n.Children()
		first := tf.clade[cs[0]].Clone()
		restBelow := bitset.New(tf.size)
		for _, c := range cs[1:] {
			restBelow.InPlaceUnion(tf.clade[c])
		}

		sibs := bitset.New(tf.size)
		for _, c := range p.Children() {
			if c == n {
				continue
			}
			sibs.InPlaceUnion(tf.clade[c])
		}
		out := bitset.New(tf.size)
		out.Complement(tf.clade[p])

		if first.Count() == 0 || restBelow.Count() == 0 || sibs.Count() == 0 || out.Count() == 0 {
			continue
		}
		qs = append(qs, Quadripartition{
			Sets: [4][]string{
				tf.names(first),
				tf.names(restBelow),
				tf.names(sibs),
				tf.names(out),
			},
		})
	}
	return qs
}
