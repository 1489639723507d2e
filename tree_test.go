// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phytree_test

import (
	"reflect"
	"testing"

	"github.com/js-arias/phytree"
)

// makeTree returns the tree "((a:1,b:1)n1:1,c:2)r;"
// and its nodes indexed by name.
func makeTree(t testing.TB) (*phytree.Tree, map[string]*phytree.Node) {
	t.Helper()

	nodes := map[string]*phytree.Node{
		"r":  phytree.NewNode("r", 0),
		"n1": phytree.NewNode("n1", 1),
		"a":  phytree.NewNode("a", 1),
		"b":  phytree.NewNode("b", 1),
		"c":  phytree.NewNode("c", 2),
	}
	nodes["n1"].SetSupport(95)

	for _, p := range [][2]string{
		{"r", "n1"},
		{"n1", "a"},
		{"n1", "b"},
		{"r", "c"},
	} {
		if err := nodes[p[0]].AddChild(nodes[p[1]]); err != nil {
			t.Fatalf("unable to attach %q to %q: %v", p[1], p[0], err)
		}
	}

	tr, err := phytree.New("test", nodes["r"])
	if err != nil {
		t.Fatalf("unable to create tree: %v", err)
	}
	return tr, nodes
}

func TestTree(t *testing.T) {
	tr, nodes := makeTree(t)

	if tr.Name() != "test" {
		t.Errorf("name: got %q, want %q", tr.Name(), "test")
	}
	if tr.Len() != 5 {
		t.Errorf("nodes: got %d, want %d", tr.Len(), 5)
	}
	if tr.Tips() != 3 {
		t.Errorf("terminals: got %d, want %d", tr.Tips(), 3)
	}
	if tr.Root() != nodes["r"] {
		t.Errorf("root: got %q", tr.Root().Name())
	}

	labels := tr.TipLabels()
	want := []string{"c", "b", "a"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("tip labels: got %v, want %v", labels, want)
	}

	wantIdx := map[string]int{
		"c":  0,
		"b":  1,
		"a":  2,
		"n1": 3,
		"r":  4,
	}
	for name, n := range nodes {
		if n.Idx() != wantIdx[name] {
			t.Errorf("node %q: got idx %d, want %d", name, n.Idx(), wantIdx[name])
		}
		if tr.Node(wantIdx[name]) != n {
			t.Errorf("node %d: got %q, want %q", wantIdx[name], tr.Node(wantIdx[name]).Name(), name)
		}
	}
	if tr.Node(5) != nil {
		t.Errorf("node 5: got %q, want nil", tr.Node(5).Name())
	}
	if tr.Node(-1) != nil {
		t.Errorf("node -1: got %q, want nil", tr.Node(-1).Name())
	}

	if h := tr.Height(); h != 2 {
		t.Errorf("height: got %g, want %g", h, 2.0)
	}
	if h := nodes["n1"].Height(); h != 1 {
		t.Errorf("node %q height: got %g, want %g", "n1", h, 1.0)
	}
	if !tr.IsBinary() {
		t.Errorf("binary: got false, want true")
	}
	if !tr.IsUltrametric(0.000001) {
		t.Errorf("ultrametric: got false, want true")
	}
}

func TestTreeErrors(t *testing.T) {
	if _, err := phytree.New("test", nil); err == nil {
		t.Errorf("expecting error with a nil root")
	}

	_, nodes := makeTree(t)
	if _, err := phytree.New("bad", nodes["n1"]); err == nil {
		t.Errorf("expecting error with an attached root")
	}
}

func TestTreeClone(t *testing.T) {
	tr, _ := makeTree(t)
	nt := tr.Clone()

	if nt.Len() != tr.Len() {
		t.Fatalf("clone: got %d nodes, want %d", nt.Len(), tr.Len())
	}
	for i := 0; i < tr.Len(); i++ {
		o := tr.Node(i)
		c := nt.Node(i)
		if o == c {
			t.Fatalf("clone: node %d is shared", i)
		}
		if c.Name() != o.Name() {
			t.Errorf("clone: node %d: got name %q, want %q", i, c.Name(), o.Name())
		}
		if c.Dist() != o.Dist() {
			t.Errorf("clone: node %d: got dist %g, want %g", i, c.Dist(), o.Dist())
		}
		if c.HasSupport() != o.HasSupport() {
			t.Errorf("clone: node %d: support mismatch", i)
		}
	}

	// edits on the copy must not touch the original
	nt.Node(0).SetName("changed")
	if tr.Node(0).Name() != "c" {
		t.Errorf("clone edit: original node changed to %q", tr.Node(0).Name())
	}
}

func TestNodeDelete(t *testing.T) {
	tr, nodes := makeTree(t)

	if err := nodes["r"].Delete(true, false); err == nil {
		t.Errorf("expecting error when deleting a root")
	}

	if err := nodes["n1"].Delete(true, false); err != nil {
		t.Fatalf("unable to delete node: %v", err)
	}
	tr.Reindex()

	if tr.Len() != 4 {
		t.Errorf("nodes: got %d, want %d", tr.Len(), 4)
	}
	cs := nodes["r"].Children()
	wantOrder := []*phytree.Node{nodes["a"], nodes["b"], nodes["c"]}
	if !reflect.DeepEqual(cs, wantOrder) {
		t.Errorf("children: deleted node children not at the node position")
	}
	if d := nodes["a"].Dist(); d != 2 {
		t.Errorf("node %q: got dist %g, want %g", "a", d, 2.0)
	}
}

func TestNodeCopy(t *testing.T) {
	tr, nodes := makeTree(t)

	sub := nodes["n1"].Copy(true)
	if !sub.IsRoot() {
		t.Errorf("detached copy: got a parent")
	}
	if sub.Degree() != 2 {
		t.Errorf("detached copy: got %d children, want %d", sub.Degree(), 2)
	}

	in := nodes["n1"].Copy(false)
	if in.IsRoot() {
		t.Errorf("full copy: expecting a parent")
	}
	if in.Name() != "n1" {
		t.Errorf("full copy: got node %q, want %q", in.Name(), "n1")
	}
	if in == nodes["n1"] {
		t.Errorf("full copy: node is shared")
	}
	if tr.Len() != 5 {
		t.Errorf("full copy: original tree changed")
	}
}

func TestNodeAddChildErrors(t *testing.T) {
	_, nodes := makeTree(t)

	if err := nodes["r"].AddChild(nodes["a"]); err == nil {
		t.Errorf("expecting error when adding an attached node")
	}
	if err := nodes["a"].AddChild(nodes["r"]); err == nil {
		t.Errorf("expecting error when creating a cycle")
	}
}
