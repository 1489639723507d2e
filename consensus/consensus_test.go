// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package consensus_test

import (
	"testing"

	"github.com/js-arias/phytree"
	"github.com/js-arias/phytree/bipart"
	"github.com/js-arias/phytree/consensus"
	"github.com/js-arias/phytree/newick"
)

func mustParse(t testing.TB, s string) *phytree.Tree {
	t.Helper()

	tr, err := newick.Parse(s, "test", nil)
	if err != nil {
		t.Fatalf("unable to parse %q: %v", s, err)
	}
	return tr
}

func TestMajoritySame(t *testing.T) {
	// the strict consensus of copies of a tree
	// is the tree itself
	s := "(((a,b),c),(d,e));"
	trees := []*phytree.Tree{
		mustParse(t, s),
		mustParse(t, s),
		mustParse(t, s),
	}

	mt, err := consensus.Majority("consensus", 1, trees...)
	if err != nil {
		t.Fatalf("unable to build consensus: %v", err)
	}

	if mt.Name() != "consensus" {
		t.Errorf("name: got %q, want %q", mt.Name(), "consensus")
	}
	if mt.Tips() != 5 {
		t.Errorf("terminals: got %d, want %d", mt.Tips(), 5)
	}
	if !bipart.Equal(bipart.Of(mt, false), bipart.Of(trees[0], false)) {
		t.Errorf("topology: got %v, want %v", bipart.Of(mt, false), bipart.Of(trees[0], false))
	}

	// every clade is in every tree
	for _, n := range mt.Nodes() {
		if n.IsRoot() {
			continue
		}
		if !n.HasSupport() || n.Support() != 100 {
			t.Errorf("node %d: got support %g, want %g", n.Idx(), n.Support(), 100.0)
		}
	}
}

func TestMajorityNested(t *testing.T) {
	// in a pectinate tree every retained clade
	// is nested inside the next one
	s := "(((((a,b),c),d),e),f);"
	trees := []*phytree.Tree{
		mustParse(t, s),
		mustParse(t, s),
	}

	mt, err := consensus.Majority("nested", 1, trees...)
	if err != nil {
		t.Fatalf("unable to build consensus: %v", err)
	}
	if !bipart.Equal(bipart.Of(mt, false), bipart.Of(trees[0], false)) {
		t.Errorf("topology: got %v, want %v", bipart.Of(mt, false), bipart.Of(trees[0], false))
	}
}

func TestMajority(t *testing.T) {
	trees := []*phytree.Tree{
		mustParse(t, "((a,b),(c,d));"),
		mustParse(t, "((a,b),(c,d));"),
		mustParse(t, "((a,c),(b,d));"),
	}

	mt, err := consensus.Majority("majority", 0.5, trees...)
	if err != nil {
		t.Fatalf("unable to build consensus: %v", err)
	}

	ps := bipart.Of(mt, false)
	if len(ps) != 1 {
		t.Fatalf("partitions: got %v, want one", ps)
	}
	want := "a b|c d"
	if ps[0].String() != want {
		t.Errorf("partition: got %q, want %q", ps[0], want)
	}

	// the retained clade is in two of the three trees
	for _, n := range mt.Nodes() {
		if n.IsLeaf() || n.IsRoot() {
			continue
		}
		if n.Support() != 67 {
			t.Errorf("clade support: got %g, want %g", n.Support(), 67.0)
		}
		if n.Dist() != 67 {
			t.Errorf("clade length: got %g, want %g", n.Dist(), 67.0)
		}
	}
}

func TestMajorityGreedy(t *testing.T) {
	// with a zero cutoff,
	// minority clades are added
	// unless they conflict
	// with a better supported clade
	trees := []*phytree.Tree{
		mustParse(t, "(((a,b),c),(d,e));"),
		mustParse(t, "(((a,b),c),(d,e));"),
		mustParse(t, "(((a,c),b),(d,e));"),
	}

	mt, err := consensus.Majority("greedy", 0, trees...)
	if err != nil {
		t.Fatalf("unable to build consensus: %v", err)
	}

	ps := bipart.Of(mt, false)
	want := []string{"a b|c d e", "d e|a b c"}
	if len(ps) != len(want) {
		t.Fatalf("partitions: got %v, want %v", ps, want)
	}
	for i, p := range ps {
		if p.String() != want[i] {
			t.Errorf("partition %d: got %q, want %q", i, p, want[i])
		}
	}
}

func TestMajorityErrors(t *testing.T) {
	if _, err := consensus.Majority("x", 0.5); err == nil {
		t.Errorf("expecting error without trees")
	}

	t1 := mustParse(t, "((a,b),c);")
	if _, err := consensus.Majority("x", 1.5, t1); err == nil {
		t.Errorf("expecting error on an invalid cutoff")
	}

	t2 := mustParse(t, "((a,b),(c,d));")
	if _, err := consensus.Majority("x", 0.5, t1, t2); err == nil {
		t.Errorf("expecting error on trees of different size")
	}

	t3 := mustParse(t, "((a,b),x);")
	if _, err := consensus.Majority("x", 0.5, t1, t3); err == nil {
		t.Errorf("expecting error on trees with different terminals")
	}
}
