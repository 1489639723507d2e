// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phytree

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

// A Collection is a set of phylogenetic trees
// indexed by tree name.
type Collection struct {
	trees map[string]*Tree
}

// NewCollection creates a new empty collection.
func NewCollection() *Collection {
	return &Collection{
		trees: make(map[string]*Tree),
	}
}

// Add adds a tree to the collection.
// The tree must have a name
// not used by any other tree in the collection.
func (c *Collection) Add(t *Tree) error {
	name := strings.TrimSpace(t.Name())
	if name == "" {
		return errors.New("tree without name")
	}
	if _, dup := c.trees[name]; dup {
		return fmt.Errorf("tree %q already in the collection", name)
	}
	c.trees[name] = t
	return nil
}

// Names returns the names of the trees
// in the collection,
// in sorted order.
func (c *Collection) Names() []string {
	names := make([]string, 0, len(c.trees))
	for n := range c.trees {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Tree returns the tree with the given name,
// or nil if the tree is not in the collection.
func (c *Collection) Tree(name string) *Tree {
	return c.trees[name]
}

var tsvHeader = []string{
	"tree",
	"node",
	"parent",
	"name",
	"dist",
	"support",
}

// ReadTSV reads a collection of trees
// from a tab-delimited file.
//
// The file must contain the following columns:
//
//   - tree, the name of the tree
//   - node, the idx of the node
//   - parent, the idx of the parent node
//     (-1 for the root)
//   - name, the name of the node
//   - dist, the branch length above the node
//   - support, the support value of the branch
//     (it can be empty)
//
// Rows are in pre-order,
// so a parent node always precedes its children,
// and the order of the rows
// defines the order of the children of each node.
// Any other column is ignored.
// Here is an example file:
//
//	# trees
//	tree	node	parent	name	dist	support
//	test	4	-1		0
//	test	3	4		1	95
//	test	2	3	a	1
//	test	1	3	b	1
//	test	0	4	c	2
func ReadTSV(r io.Reader) (*Collection, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'
	// rows can omit trailing empty fields
	tsv.FieldsPerRecord = -1

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(h))
		fields[h] = i
	}
	for _, h := range tsvHeader {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("header: expecting field %q", h)
		}
	}

	c := NewCollection()
	node := make(map[string]map[int]*Node)
	root := make(map[string]*Node)
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "tree"
		tn := strings.TrimSpace(tsvField(row, fields[f]))
		if tn == "" {
			continue
		}
		if _, ok := node[tn]; !ok {
			node[tn] = make(map[int]*Node)
		}

		f = "node"
		id, err := strconv.Atoi(strings.TrimSpace(tsvField(row, fields[f])))
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}
		if _, dup := node[tn][id]; dup {
			return nil, fmt.Errorf("on row %d: tree %q: repeated node %d", ln, tn, id)
		}

		f = "parent"
		pID, err := strconv.Atoi(strings.TrimSpace(tsvField(row, fields[f])))
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}

		f = "name"
		name := strings.TrimSpace(tsvField(row, fields[f]))

		f = "dist"
		dist := 0.0
		if d := strings.TrimSpace(tsvField(row, fields[f])); d != "" {
			dist, err = strconv.ParseFloat(d, 64)
			if err != nil {
				return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
			}
		}

		n := NewNode(name, dist)

		f = "support"
		if s := strings.TrimSpace(tsvField(row, fields[f])); s != "" {
			sv, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
			}
			n.support = sv
		}

		if pID < 0 {
			if root[tn] != nil {
				return nil, fmt.Errorf("on row %d: tree %q: multiple root nodes", ln, tn)
			}
			root[tn] = n
		} else {
			p, ok := node[tn][pID]
			if !ok {
				return nil, fmt.Errorf("on row %d: tree %q: node %d: undefined parent %d", ln, tn, id, pID)
			}
			if err := p.AddChild(n); err != nil {
				return nil, fmt.Errorf("on row %d: tree %q: %v", ln, tn, err)
			}
		}
		node[tn][id] = n
	}

	for tn, r := range root {
		t, err := New(tn, r)
		if err != nil {
			return nil, fmt.Errorf("tree %q: %v", tn, err)
		}
		if err := c.Add(t); err != nil {
			return nil, err
		}
	}
	if len(c.trees) == 0 {
		return nil, errors.New("while reading trees: no trees in file")
	}
	return c, nil
}

// tsvField returns the field at the given column,
// or an empty string
// if the row omits its trailing fields.
func tsvField(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return row[col]
}

// TSV writes a collection of trees
// as a tab-delimited file.
func (c *Collection) TSV(w io.Writer) error {
	tsv := csv.NewWriter(w)
	tsv.Comma = '\t'
	tsv.UseCRLF = false

	if err := tsv.Write(tsvHeader); err != nil {
		return err
	}
	for _, tn := range c.Names() {
		t := c.trees[tn]
		for n := range t.Root().Traverse(Preorder) {
			pID := -1
			if n.parent != nil {
				pID = n.parent.idx
			}
			sup := ""
			if !math.IsNaN(n.support) {
				sup = strconv.FormatFloat(n.support, 'g', -1, 64)
			}
			row := []string{
				tn,
				strconv.Itoa(n.idx),
				strconv.Itoa(pID),
				n.name,
				strconv.FormatFloat(n.dist, 'g', -1, 64),
				sup,
			}
			if err := tsv.Write(row); err != nil {
				return err
			}
		}
	}
	tsv.Flush()
	return tsv.Error()
}
