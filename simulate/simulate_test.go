// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package simulate_test

import (
	"testing"

	"github.com/js-arias/phytree"
	"github.com/js-arias/phytree/newick"
	"github.com/js-arias/phytree/simulate"
)

func TestYule(t *testing.T) {
	tr, err := simulate.Yule("yule", 10, 1, 42)
	if err != nil {
		t.Fatalf("unable to simulate: %v", err)
	}
	testSimTree(t, "yule", tr, 10)

	if !tr.IsUltrametric(0.000001) {
		t.Errorf("yule: expecting an ultrametric tree")
	}
	if tr.Height() <= 0 {
		t.Errorf("yule: got height %g", tr.Height())
	}
}

func TestCoalescent(t *testing.T) {
	tr, err := simulate.Coalescent("coal", 8, 1, 42)
	if err != nil {
		t.Fatalf("unable to simulate: %v", err)
	}
	testSimTree(t, "coal", tr, 8)

	if !tr.IsUltrametric(0.000001) {
		t.Errorf("coalescent: expecting an ultrametric tree")
	}
}

func TestUniform(t *testing.T) {
	tr, err := simulate.Uniform("uniform", 6, 42)
	if err != nil {
		t.Fatalf("unable to simulate: %v", err)
	}
	testSimTree(t, "uniform", tr, 6)

	for _, n := range tr.Nodes() {
		if n.IsRoot() {
			if n.Dist() != 0 {
				t.Errorf("uniform: root with length %g", n.Dist())
			}
			continue
		}
		if n.Dist() != 1 {
			t.Errorf("uniform: node %d with length %g, want 1", n.Idx(), n.Dist())
		}
	}
}

func TestSimulateSeed(t *testing.T) {
	t1, err := simulate.Yule("yule", 10, 1, 42)
	if err != nil {
		t.Fatalf("unable to simulate: %v", err)
	}
	t2, err := simulate.Yule("yule", 10, 1, 42)
	if err != nil {
		t.Fatalf("unable to simulate: %v", err)
	}

	s1, err := newick.String(t1, nil)
	if err != nil {
		t.Fatalf("unable to write: %v", err)
	}
	s2, err := newick.String(t2, nil)
	if err != nil {
		t.Fatalf("unable to write: %v", err)
	}
	if s1 != s2 {
		t.Errorf("same seed: got different trees:\n%s\n%s", s1, s2)
	}

	t3, err := simulate.Yule("yule", 10, 1, 43)
	if err != nil {
		t.Fatalf("unable to simulate: %v", err)
	}
	s3, err := newick.String(t3, nil)
	if err != nil {
		t.Fatalf("unable to write: %v", err)
	}
	if s1 == s3 {
		t.Errorf("different seeds: got the same tree")
	}
}

func testSimTree(t testing.TB, name string, tr *phytree.Tree, terms int) {
	t.Helper()

	if tr.Tips() != terms {
		t.Errorf("%s: got %d terminals, want %d", name, tr.Tips(), terms)
	}
	if !tr.IsBinary() {
		t.Errorf("%s: expecting a binary tree", name)
	}
	if tr.Len() != 2*terms-1 {
		t.Errorf("%s: got %d nodes, want %d", name, tr.Len(), 2*terms-1)
	}

	seen := make(map[string]bool)
	for _, l := range tr.TipLabels() {
		if l == "" {
			t.Errorf("%s: unnamed terminal", name)
		}
		if seen[l] {
			t.Errorf("%s: repeated terminal %q", name, l)
		}
		seen[l] = true
	}
}

func TestSimulateErrors(t *testing.T) {
	if _, err := simulate.Yule("x", 1, 1, 0); err == nil {
		t.Errorf("expecting error with a single terminal")
	}
	if _, err := simulate.Yule("x", 10, 0, 0); err == nil {
		t.Errorf("expecting error with a zero birth rate")
	}
	if _, err := simulate.Coalescent("x", 10, -1, 0); err == nil {
		t.Errorf("expecting error with a negative theta")
	}
	if _, err := simulate.Uniform("x", 0, 0); err == nil {
		t.Errorf("expecting error without terminals")
	}
}
