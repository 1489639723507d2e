// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phytree_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/phytree"
)

func TestCollection(t *testing.T) {
	c := phytree.NewCollection()

	t1, _ := makeTree(t)
	t2, _ := makeQuadTree(t)
	if err := c.Add(t1); err != nil {
		t.Fatalf("unable to add tree: %v", err)
	}
	if err := c.Add(t2); err != nil {
		t.Fatalf("unable to add tree: %v", err)
	}

	names := c.Names()
	want := []string{"quad", "test"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("names: got %v, want %v", names, want)
	}
	if c.Tree("test") != t1 {
		t.Errorf("tree %q: got a different tree", "test")
	}
	if c.Tree("not-in") != nil {
		t.Errorf("tree %q: expecting nil", "not-in")
	}

	if err := c.Add(t1); err == nil {
		t.Errorf("expecting error on a duplicated tree")
	}
	unnamed, _ := makeTree(t)
	unnamed.SetName("")
	if err := c.Add(unnamed); err == nil {
		t.Errorf("expecting error on an unnamed tree")
	}
}

func TestCollectionTSV(t *testing.T) {
	c := phytree.NewCollection()
	t1, _ := makeTree(t)
	t2, _ := makeQuadTree(t)
	if err := c.Add(t1); err != nil {
		t.Fatalf("unable to add tree: %v", err)
	}
	if err := c.Add(t2); err != nil {
		t.Fatalf("unable to add tree: %v", err)
	}

	var buf bytes.Buffer
	if err := c.TSV(&buf); err != nil {
		t.Fatalf("unable to write data: %v", err)
	}

	r, err := phytree.ReadTSV(&buf)
	if err != nil {
		t.Logf("output data:\n%s\n", buf.String())
		t.Fatalf("unable to read data: %v", err)
	}

	if !reflect.DeepEqual(r.Names(), c.Names()) {
		t.Fatalf("names: got %v, want %v", r.Names(), c.Names())
	}
	for _, tn := range c.Names() {
		testTreeEqual(t, tn, r.Tree(tn), c.Tree(tn))
	}
}

func testTreeEqual(t testing.TB, name string, got, want *phytree.Tree) {
	t.Helper()

	if got.Len() != want.Len() {
		t.Fatalf("tree %q: got %d nodes, want %d", name, got.Len(), want.Len())
	}
	if got.Tips() != want.Tips() {
		t.Errorf("tree %q: got %d terminals, want %d", name, got.Tips(), want.Tips())
	}
	for i := 0; i < want.Len(); i++ {
		g := got.Node(i)
		w := want.Node(i)
		if g.Name() != w.Name() {
			t.Errorf("tree %q: node %d: got name %q, want %q", name, i, g.Name(), w.Name())
		}
		if g.Dist() != w.Dist() {
			t.Errorf("tree %q: node %d: got dist %g, want %g", name, i, g.Dist(), w.Dist())
		}
		if g.HasSupport() != w.HasSupport() {
			t.Errorf("tree %q: node %d: support mismatch", name, i)
			continue
		}
		if g.HasSupport() && g.Support() != w.Support() {
			t.Errorf("tree %q: node %d: got support %g, want %g", name, i, g.Support(), w.Support())
		}
		gp, wp := -1, -1
		if g.Parent() != nil {
			gp = g.Parent().Idx()
		}
		if w.Parent() != nil {
			wp = w.Parent().Idx()
		}
		if gp != wp {
			t.Errorf("tree %q: node %d: got parent %d, want %d", name, i, gp, wp)
		}
	}
}

func TestReadTSV(t *testing.T) {
	data := `# trees
tree	node	parent	name	dist	support
test	4	-1		0
test	3	4		1	95
test	2	3	a	1
test	1	3	b	1
test	0	4	c	2
`
	c, err := phytree.ReadTSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unable to read data: %v", err)
	}

	tr := c.Tree("test")
	if tr == nil {
		t.Fatalf("tree %q not read", "test")
	}
	if tr.Len() != 5 {
		t.Errorf("nodes: got %d, want %d", tr.Len(), 5)
	}
	labels := tr.TipLabels()
	want := []string{"c", "b", "a"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("tip labels: got %v, want %v", labels, want)
	}
	n1 := tr.Node(3)
	if !n1.HasSupport() || n1.Support() != 95 {
		t.Errorf("node 3: got support %g, want %g", n1.Support(), 95.0)
	}
}

func TestReadTSVErrors(t *testing.T) {
	tests := map[string]string{
		"missing column": "tree\tnode\tparent\tname\tdist\nx\t0\t-1\ta\t1\n",
		"bad node id":    "tree\tnode\tparent\tname\tdist\tsupport\nx\tz\t-1\ta\t1\t\n",
		"bad parent":     "tree\tnode\tparent\tname\tdist\tsupport\nx\t1\t9\ta\t1\t\n",
		"two roots":      "tree\tnode\tparent\tname\tdist\tsupport\nx\t0\t-1\ta\t0\t\nx\t1\t-1\tb\t0\t\n",
		"empty file":     "tree\tnode\tparent\tname\tdist\tsupport\n",
	}
	for name, data := range tests {
		if _, err := phytree.ReadTSV(strings.NewReader(data)); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}
