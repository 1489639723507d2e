// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phytree_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/js-arias/phytree"
)

func TestPrune(t *testing.T) {
	tr, nodes := makeQuadTree(t)

	if err := tr.Prune(nil, phytree.Name("a"), phytree.Name("c")); err != nil {
		t.Fatalf("unable to prune: %v", err)
	}

	if tr.Tips() != 2 {
		t.Fatalf("terminals: got %d, want %d", tr.Tips(), 2)
	}
	labels := tr.TipLabels()
	want := []string{"c", "a"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("tip labels: got %v, want %v", labels, want)
	}

	// pass-through nodes are removed
	// with their branch lengths preserved
	if nodes["a"].Parent() != tr.Root() {
		t.Errorf("node %q: expecting the root as parent", "a")
	}
	if d := nodes["a"].Dist(); d != 2 {
		t.Errorf("node %q: got dist %g, want %g", "a", d, 2.0)
	}
	if d := nodes["c"].Dist(); d != 2 {
		t.Errorf("node %q: got dist %g, want %g", "c", d, 2.0)
	}
}

func TestPruneToClade(t *testing.T) {
	tr, nodes := makeQuadTree(t)

	opt := &phytree.PruneOptions{PreserveBranchLength: true}
	if err := tr.Prune(opt, phytree.Name("a"), phytree.Name("b")); err != nil {
		t.Fatalf("unable to prune: %v", err)
	}

	// without KeepRoot the new root
	// is the ancestor of the retained nodes
	if tr.Root() != nodes["x"] {
		t.Fatalf("root: got %q, want %q", tr.Root().Name(), "x")
	}
	if d := tr.Root().Dist(); d != 0 {
		t.Errorf("root: got dist %g, want %g", d, 0.0)
	}
	if tr.Len() != 3 {
		t.Errorf("nodes: got %d, want %d", tr.Len(), 3)
	}
}

func TestPruneInternal(t *testing.T) {
	tr, nodes := makeQuadTree(t)

	// a queried internal node keeps its whole subtree
	opt := &phytree.PruneOptions{PreserveBranchLength: true, KeepRoot: true}
	if err := tr.Prune(opt, phytree.Is(nodes["y"])); err != nil {
		t.Fatalf("unable to prune: %v", err)
	}

	labels := tr.TipLabels()
	want := []string{"d", "c"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("tip labels: got %v, want %v", labels, want)
	}
	if tr.Root() == nodes["y"] {
		t.Errorf("root: expecting the original root")
	}
}

func TestDropTips(t *testing.T) {
	tr, nodes := makeQuadTree(t)

	if err := tr.DropTips(phytree.Name("d")); err != nil {
		t.Fatalf("unable to drop: %v", err)
	}

	if tr.Tips() != 3 {
		t.Fatalf("terminals: got %d, want %d", tr.Tips(), 3)
	}
	// the unary ancestor of the dropped tip is gone
	if nodes["c"].Parent() != tr.Root() {
		t.Errorf("node %q: expecting the root as parent", "c")
	}
	if d := nodes["c"].Dist(); d != 2 {
		t.Errorf("node %q: got dist %g, want %g", "c", d, 2.0)
	}
}

func TestDropTipsErrors(t *testing.T) {
	tr, _ := makeQuadTree(t)

	err := tr.DropTips(
		phytree.Name("a"), phytree.Name("b"),
		phytree.Name("c"), phytree.Name("d"),
	)
	if !errors.Is(err, phytree.ErrAllTips) {
		t.Errorf("drop all: got error %v, want %v", err, phytree.ErrAllTips)
	}

	tr, _ = makeQuadTree(t)
	if err := tr.DropTips(); err == nil {
		t.Errorf("expecting error on an empty query")
	}
}

func TestDropTipsUnmatched(t *testing.T) {
	// a selection without matches is a warning,
	// not an error
	tr, _ := makeQuadTree(t)
	if err := tr.DropTips(phytree.Name("not-a-tip")); err != nil {
		t.Fatalf("unmatched name: got error %v", err)
	}
	if err := tr.DropTips(phytree.Pattern("^zz")); err != nil {
		t.Fatalf("unmatched pattern: got error %v", err)
	}
	if tr.Tips() != 4 {
		t.Errorf("terminals: got %d, want %d", tr.Tips(), 4)
	}

	// matched terminals are dropped
	// even if another selection has no match
	if err := tr.DropTips(phytree.Name("not-a-tip"), phytree.Name("d")); err != nil {
		t.Fatalf("mixed query: got error %v", err)
	}
	if tr.Tips() != 3 {
		t.Errorf("terminals: got %d, want %d", tr.Tips(), 3)
	}
}

func TestPruneCopy(t *testing.T) {
	tr, _ := makeQuadTree(t)

	nt, err := phytree.DropTips(tr, phytree.Name("d"))
	if err != nil {
		t.Fatalf("unable to drop: %v", err)
	}
	if tr.Tips() != 4 {
		t.Errorf("original tree changed: got %d terminals", tr.Tips())
	}
	if nt.Tips() != 3 {
		t.Errorf("copy: got %d terminals, want %d", nt.Tips(), 3)
	}
}
