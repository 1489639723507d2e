// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package newick_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/js-arias/phytree"
	"github.com/js-arias/phytree/newick"
)

func TestString(t *testing.T) {
	tests := map[string]struct {
		tree string
		opt  *newick.WriteOptions
		want string
	}{
		"default": {
			tree: "((a:1,b:1)95:1,c:2);",
			want: "((a:1,b:1)95:1,c:2);",
		},
		"no lengths": {
			tree: "((a:1,b:1)95:1,c:2);",
			opt:  &newick.WriteOptions{NoDists: true},
			want: "((a,b)95,c);",
		},
		"internal names": {
			tree: "((a:1,b:1)clade:1,c:2);",
			opt:  &newick.WriteOptions{InternalLabels: "name"},
			want: "((a:1,b:1)clade:1,c:2);",
		},
		"no labels": {
			tree: "((a:1,b:1)95:1,c:2);",
			opt:  &newick.WriteOptions{InternalLabels: "none"},
			want: "((a:1,b:1):1,c:2);",
		},
		"length format": {
			tree: "((a:1,b:1):1,c:2);",
			opt:  &newick.WriteOptions{DistFormat: "%.2f"},
			want: "((a:1.00,b:1.00):1.00,c:2.00);",
		},
	}

	for name, test := range tests {
		tr, err := newick.Parse(test.tree, "test", nil)
		if err != nil {
			t.Fatalf("%s: unable to parse: %v", name, err)
		}
		got, err := newick.String(tr, test.opt)
		if err != nil {
			t.Errorf("%s: unable to write: %v", name, err)
			continue
		}
		if got != test.want {
			t.Errorf("%s: got %q, want %q", name, got, test.want)
		}
	}
}

func TestStringFeatures(t *testing.T) {
	tr, err := newick.Parse("((a:1[&&NHX:S=human],b:1):1,c:2);", "test", nil)
	if err != nil {
		t.Fatalf("unable to parse: %v", err)
	}
	opt := &newick.WriteOptions{Features: []string{"S"}}
	got, err := newick.String(tr, opt)
	if err != nil {
		t.Fatalf("unable to write: %v", err)
	}
	want := "((a:1[&&NHX:S=human],b:1):1,c:2);"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStringCleanNames(t *testing.T) {
	a := phytree.NewNode("taxon one", 1)
	b := phytree.NewNode("taxon:two", 1)
	r := phytree.NewNode("", 0)
	if err := r.AddChild(a); err != nil {
		t.Fatalf("unable to attach node: %v", err)
	}
	if err := r.AddChild(b); err != nil {
		t.Fatalf("unable to attach node: %v", err)
	}
	tr, err := phytree.New("test", r)
	if err != nil {
		t.Fatalf("unable to create tree: %v", err)
	}

	got, err := newick.String(tr, nil)
	if err != nil {
		t.Fatalf("unable to write: %v", err)
	}
	want := "(taxon_one:1,taxon_two:1);"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStringErrors(t *testing.T) {
	tr, err := newick.Parse("((a,b),c);", "test", nil)
	if err != nil {
		t.Fatalf("unable to parse: %v", err)
	}
	opt := &newick.WriteOptions{InternalLabels: "color"}
	if _, err := newick.String(tr, opt); err == nil {
		t.Errorf("expecting error on an unknown label feature")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	trees := []string{
		"((a:1,b:1)95:1,c:2);",
		"((a:0.5,(b:1,c:1)80:2)90:1,(d:1,e:1)75:3);",
		"(a:1,b:1,c:1,d:1);",
	}

	for _, s := range trees {
		tr, err := newick.Parse(s, "test", nil)
		if err != nil {
			t.Fatalf("unable to parse %q: %v", s, err)
		}
		var buf bytes.Buffer
		if err := newick.Write(&buf, tr, nil); err != nil {
			t.Fatalf("unable to write %q: %v", s, err)
		}
		got := strings.TrimSpace(buf.String())
		if got != s {
			t.Errorf("round trip: got %q, want %q", got, s)
		}
	}
}
