// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phytree_test

import (
	"reflect"
	"testing"

	"github.com/js-arias/phytree"
)

func TestCollapse(t *testing.T) {
	tr, nodes := makeTree(t)

	if err := tr.Collapse(nil, phytree.Name("n1")); err != nil {
		t.Fatalf("unable to collapse: %v", err)
	}

	root := tr.Root()
	if root.Degree() != 3 {
		t.Fatalf("root: got %d children, want %d", root.Degree(), 3)
	}
	cs := root.Children()
	want := []string{"a", "b", "c"}
	for i, n := range cs {
		if n.Name() != want[i] {
			t.Errorf("child %d: got %q, want %q", i, n.Name(), want[i])
		}
	}
	// the collapsed branch length
	// is added to the children
	if d := nodes["a"].Dist(); d != 2 {
		t.Errorf("node %q: got dist %g, want %g", "a", d, 2.0)
	}
	if tr.Len() != 4 {
		t.Errorf("nodes: got %d, want %d", tr.Len(), 4)
	}
}

func TestCollapseBySupport(t *testing.T) {
	tr, nodes := makeQuadTree(t)
	nodes["x"].SetSupport(40)
	nodes["y"].SetSupport(90)

	opt := &phytree.CollapseOptions{MinSupport: 50}
	if err := tr.Collapse(opt); err != nil {
		t.Fatalf("unable to collapse: %v", err)
	}

	if tr.Root().Degree() != 3 {
		t.Errorf("root: got %d children, want %d", tr.Root().Degree(), 3)
	}
	if nodes["c"].Parent() != nodes["y"] {
		t.Errorf("node %q: a well supported node was collapsed", "y")
	}
}

func TestCollapseByDist(t *testing.T) {
	tr, nodes := makeQuadTree(t)
	nodes["x"].SetDist(0.0001)

	opt := &phytree.CollapseOptions{MinDist: 0.001}
	if err := tr.Collapse(opt); err != nil {
		t.Fatalf("unable to collapse: %v", err)
	}

	if tr.Root().Degree() != 3 {
		t.Errorf("root: got %d children, want %d", tr.Root().Degree(), 3)
	}
	if nodes["a"].Parent() != tr.Root() {
		t.Errorf("node %q: expecting the root as parent", "a")
	}
}

func TestResolve(t *testing.T) {
	nodes := map[string]*phytree.Node{
		"r": phytree.NewNode("r", 0),
		"a": phytree.NewNode("a", 1),
		"b": phytree.NewNode("b", 1),
		"c": phytree.NewNode("c", 1),
		"d": phytree.NewNode("d", 1),
	}
	for _, tip := range []string{"a", "b", "c", "d"} {
		if err := nodes["r"].AddChild(nodes[tip]); err != nil {
			t.Fatalf("unable to attach node: %v", err)
		}
	}
	tr, err := phytree.New("poly", nodes["r"])
	if err != nil {
		t.Fatalf("unable to create tree: %v", err)
	}

	if err := tr.Resolve(nil); err != nil {
		t.Fatalf("unable to resolve: %v", err)
	}

	if !tr.IsBinary() {
		t.Errorf("resolved tree is not binary")
	}
	if tr.Tips() != 4 {
		t.Errorf("terminals: got %d, want %d", tr.Tips(), 4)
	}
	if tr.Len() != 7 {
		t.Errorf("nodes: got %d, want %d", tr.Len(), 7)
	}
}

func TestResolveSeed(t *testing.T) {
	tr, _ := makeQuadTree(t)
	if err := tr.Collapse(nil, phytree.Name("x"), phytree.Name("y")); err != nil {
		t.Fatalf("unable to collapse: %v", err)
	}

	opt := &phytree.ResolveOptions{Seed: 42, Recursive: true}
	r1, err := phytree.Resolve(tr, opt)
	if err != nil {
		t.Fatalf("unable to resolve: %v", err)
	}
	r2, err := phytree.Resolve(tr, opt)
	if err != nil {
		t.Fatalf("unable to resolve: %v", err)
	}

	var s1, s2 []string
	for n := range r1.Root().Traverse(phytree.Preorder) {
		s1 = append(s1, n.Name())
	}
	for n := range r2.Root().Traverse(phytree.Preorder) {
		s2 = append(s2, n.Name())
	}
	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("same seed: got different resolutions:\n%v\n%v", s1, s2)
	}
	if tr.IsBinary() {
		t.Errorf("original tree changed")
	}
}

func TestRotateNode(t *testing.T) {
	tr, nodes := makeTree(t)

	if err := tr.RotateNode(phytree.Name("a"), phytree.Name("b")); err != nil {
		t.Fatalf("unable to rotate: %v", err)
	}

	cs := nodes["n1"].Children()
	if cs[0] != nodes["b"] || cs[1] != nodes["a"] {
		t.Errorf("children: expecting reversed order")
	}
	labels := tr.TipLabels()
	want := []string{"c", "a", "b"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("tip labels: got %v, want %v", labels, want)
	}
}
