// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package consensus implements the construction
// of extended majority-rule consensus trees.
package consensus

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/js-arias/phytree"
	"github.com/js-arias/phytree/internal/bitset"
)

// A clade is a candidate consensus clade:
// the set of terminals
// on the side of a split
// that does not contain the first terminal.
type clade struct {
	set  *bitset.BitSet
	n    int // number of trees with the clade
	freq float64
}

// Majority returns the extended majority-rule
// consensus of a collection of trees
// sharing the same terminals.
//
// Every clade found in a proportion of trees
// of at least cutoff,
// and not in conflict
// with a better supported clade,
// is retained
// (two clades conflict if they overlap
// but neither contains the other).
// The support and branch length
// of a retained clade is the percentage
// of trees that contain it;
// terminals have support and length of 100.
func Majority(name string, cutoff float64, trees ...*phytree.Tree) (*phytree.Tree, error) {
	if len(trees) == 0 {
		return nil, errors.New("consensus: expecting one or more trees")
	}
	if cutoff < 0 || cutoff > 1 {
		return nil, fmt.Errorf("consensus: invalid cutoff %g", cutoff)
	}

	labels := trees[0].TipLabels()
	slices.Sort(labels)
	pos := make(map[string]int, len(labels))
	for i, l := range labels {
		pos[l] = i
	}

	count := make(map[string]*clade)
	for _, t := range trees {
		cs, err := treeClades(t, pos, labels)
		if err != nil {
			return nil, err
		}
		for key, set := range cs {
			c, ok := count[key]
			if !ok {
				c = &clade{set: set}
				count[key] = c
			}
			c.n++
		}
	}

	cand := make([]*clade, 0, len(count))
	for _, c := range count {
		c.freq = float64(c.n) / float64(len(trees))
		cand = append(cand, c)
	}
	// best supported first;
	// ties broken by clade size and content
	// to keep the output reproducible
	slices.SortFunc(cand, func(a, b *clade) int {
		if a.freq != b.freq {
			if a.freq > b.freq {
				return -1
			}
			return 1
		}
		if d := a.set.Count() - b.set.Count(); d != 0 {
			return d
		}
		return cmpKey(a.set.Key(), b.set.Key())
	})

	var accepted []*clade
	for _, c := range cand {
		if c.freq < cutoff {
			break
		}
		ok := true
		for _, a := range accepted {
			if conflict(c.set, a.set) {
				ok = false
				break
			}
		}
		if ok {
			accepted = append(accepted, c)
		}
	}

	return buildTree(name, labels, accepted)
}

func cmpKey(a, b string) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// conflict reports whether two clades
// overlap without one containing the other.
func conflict(a, b *bitset.BitSet) bool {
	if !a.Intersects(b) {
		return false
	}
	return !a.IsSubset(b) && !b.IsSubset(a)
}

// treeClades returns the non-trivial clades of a tree,
// as splits normalized to the side
// without the first terminal,
// so a clade and its complement
// count as the same split.
func treeClades(t *phytree.Tree, pos map[string]int, labels []string) (map[string]*bitset.BitSet, error) {
	if t.Tips() != len(labels) {
		return nil, fmt.Errorf("consensus: tree %q: got %d terminals, want %d", t.Name(), t.Tips(), len(labels))
	}

	below := make(map[*phytree.Node]*bitset.BitSet)
	cs := make(map[string]*bitset.BitSet)
	for n := range t.Root().Traverse(phytree.Postorder) {
		b := bitset.New(len(labels))
		if n.IsLeaf() {
			i, ok := pos[n.Name()]
			if !ok {
				return nil, fmt.Errorf("consensus: tree %q: unknown terminal %q", t.Name(), n.Name())
			}
			b.Set(i)
			below[n] = b
			continue
		}
		for _, c := range n.Children() {
			b.InPlaceUnion(below[c])
		}
		below[n] = b

		if n.IsRoot() {
			continue
		}
		set := b
		if set.Test(0) {
			nb := bitset.New(len(labels))
			nb.Complement(set)
			set = nb
		}
		if c := set.Count(); c < 2 || c > len(labels)-2 {
			continue
		}
		cs[set.Key()] = set
	}
	return cs, nil
}

// buildTree assembles the consensus tree
// from the accepted clades,
// attaching every clade and terminal
// to its smallest enclosing clade.
func buildTree(name string, labels []string, accepted []*clade) (*phytree.Tree, error) {
	// smallest clades first
	slices.SortFunc(accepted, func(a, b *clade) int {
		return a.set.Count() - b.set.Count()
	})

	root := phytree.NewNode("", 0)
	nodes := make([]*phytree.Node, len(accepted))
	for i, c := range accepted {
		n := phytree.NewNode("", math.Round(100*c.freq))
		n.SetSupport(math.Round(100 * c.freq))
		nodes[i] = n
	}

	// attach every clade to its smallest
	// enclosing clade;
	// the enclosing node is always further
	// in the size-sorted slice,
	// so all nodes must exist before any is attached
	for i, c := range accepted {
		parent := root
		for j := i + 1; j < len(accepted); j++ {
			if c.set.IsSubset(accepted[j].set) {
				parent = nodes[j]
				break
			}
		}
		if err := parent.AddChild(nodes[i]); err != nil {
			return nil, fmt.Errorf("consensus: %v", err)
		}
	}

	for i, l := range labels {
		tip := phytree.NewNode(l, 100)
		tip.SetSupport(100)

		parent := root
		for j, c := range accepted {
			if c.set.Test(i) {
				parent = nodes[j]
				break
			}
		}
		if err := parent.AddChild(tip); err != nil {
			return nil, fmt.Errorf("consensus: %v", err)
		}
	}

	t, err := phytree.New(name, root)
	if err != nil {
		return nil, fmt.Errorf("consensus: %v", err)
	}
	return t, nil
}
