// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phytree_test

import (
	"reflect"
	"testing"

	"github.com/js-arias/phytree"
)

func TestLadderize(t *testing.T) {
	// "(((a:1,b:1)x:1,c:1)y:1,d:1)r;"
	nodes := map[string]*phytree.Node{
		"r": phytree.NewNode("r", 0),
		"y": phytree.NewNode("y", 1),
		"x": phytree.NewNode("x", 1),
		"a": phytree.NewNode("a", 1),
		"b": phytree.NewNode("b", 1),
		"c": phytree.NewNode("c", 1),
		"d": phytree.NewNode("d", 1),
	}
	for _, p := range [][2]string{
		{"r", "y"},
		{"y", "x"},
		{"x", "a"},
		{"x", "b"},
		{"y", "c"},
		{"r", "d"},
	} {
		if err := nodes[p[0]].AddChild(nodes[p[1]]); err != nil {
			t.Fatalf("unable to attach %q to %q: %v", p[1], p[0], err)
		}
	}
	tr, err := phytree.New("ladder", nodes["r"])
	if err != nil {
		t.Fatalf("unable to create tree: %v", err)
	}

	tr.Ladderize(false)
	var got []string
	for n := range tr.Root().Traverse(phytree.Preorder) {
		got = append(got, n.Name())
	}
	want := []string{"r", "d", "y", "c", "x", "a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ladderize: got %v, want %v", got, want)
	}

	tr.Ladderize(true)
	got = nil
	for n := range tr.Root().Traverse(phytree.Preorder) {
		got = append(got, n.Name())
	}
	want = []string{"r", "y", "x", "a", "b", "c", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("reverse ladderize: got %v, want %v", got, want)
	}

	// the package level function works on a copy
	nt := phytree.Ladderize(tr, false)
	if nt == tr {
		t.Fatalf("expecting a copy")
	}
	cs := tr.Root().Children()
	if cs[0] != nodes["y"] {
		t.Errorf("original tree changed")
	}
}
