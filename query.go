// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phytree

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrNotFound is returned when a name or pattern query
// does not select any node.
var ErrNotFound = errors.New("no matching node")

// A Query selects one or more nodes in a tree.
// Queries are accepted by all editing operations;
// when an operation requires a single node,
// the most recent common ancestor
// of the selected nodes is used.
type Query interface {
	nodes(t *Tree) ([]*Node, error)
}

// Name returns a query that selects the node
// with the given name.
func Name(name string) Query {
	return nameQuery(name)
}

type nameQuery string

func (q nameQuery) nodes(t *Tree) ([]*Node, error) {
	for _, n := range t.nodes {
		if n.name == string(q) {
			return []*Node{n}, nil
		}
	}
	return nil, fmt.Errorf("tree %q: node %q: %w", t.name, string(q), ErrNotFound)
}

// Pattern returns a query that selects all nodes
// whose names match a regular expression.
func Pattern(expr string) Query {
	return patternQuery(expr)
}

type patternQuery string

func (q patternQuery) nodes(t *Tree) ([]*Node, error) {
	re, err := regexp.Compile(string(q))
	if err != nil {
		return nil, fmt.Errorf("invalid query pattern %q: %v", string(q), err)
	}
	var ns []*Node
	for _, n := range t.nodes {
		if n.name != "" && re.MatchString(n.name) {
			ns = append(ns, n)
		}
	}
	if len(ns) == 0 {
		return nil, fmt.Errorf("tree %q: pattern %q: %w", t.name, string(q), ErrNotFound)
	}
	return ns, nil
}

// ID returns a query that selects the node
// with the given idx.
func ID(idx int) Query {
	return idQuery(idx)
}

type idQuery int

func (q idQuery) nodes(t *Tree) ([]*Node, error) {
	n := t.Node(int(q))
	if n == nil {
		return nil, fmt.Errorf("tree %q: idx %d out of range", t.name, int(q))
	}
	return []*Node{n}, nil
}

// Is returns a query that selects a node directly.
// If the node is not part of the queried tree
// (for example when an operation works on a copy),
// the node with the same idx is selected instead.
func Is(n *Node) Query {
	return &nodeQuery{n}
}

type nodeQuery struct {
	n *Node
}

func (q *nodeQuery) nodes(t *Tree) ([]*Node, error) {
	for _, n := range t.nodes {
		if n == q.n {
			return []*Node{n}, nil
		}
	}
	if n := t.Node(q.n.idx); n != nil {
		return []*Node{n}, nil
	}
	return nil, fmt.Errorf("tree %q: node %q is not part of the tree", t.name, q.n.name)
}

// Search returns the nodes selected
// by one or more queries,
// without duplicates,
// in idx order.
func (t *Tree) Search(qs ...Query) ([]*Node, error) {
	seen := make(map[*Node]bool)
	var ns []*Node
	for _, q := range qs {
		m, err := q.nodes(t)
		if err != nil {
			return nil, err
		}
		for _, n := range m {
			if seen[n] {
				continue
			}
			seen[n] = true
			ns = append(ns, n)
		}
	}
	if len(ns) == 0 {
		return nil, fmt.Errorf("tree %q: empty query", t.name)
	}
	for i := range ns {
		for j := i + 1; j < len(ns); j++ {
			if ns[j].idx < ns[i].idx {
				ns[i], ns[j] = ns[j], ns[i]
			}
		}
	}
	return ns, nil
}

// MRCA returns the most recent common ancestor
// of the nodes selected by the given queries.
func (t *Tree) MRCA(qs ...Query) (*Node, error) {
	ns, err := t.Search(qs...)
	if err != nil {
		return nil, err
	}
	anc := ns[0]
	onPath := make(map[*Node]bool)
	for u := anc; u != nil; u = u.parent {
		onPath[u] = true
	}
	for _, n := range ns[1:] {
		u := n
		for !onPath[u] {
			u = u.parent
		}
		// trim the path below the new ancestor
		for anc != u {
			delete(onPath, anc)
			anc = anc.parent
		}
	}
	return anc, nil
}

// TipSet returns the names of all terminals
// descending from the nodes selected
// by the given queries.
func (t *Tree) TipSet(qs ...Query) (map[string]bool, error) {
	ns, err := t.Search(qs...)
	if err != nil {
		return nil, err
	}
	tips := make(map[string]bool)
	for _, n := range ns {
		for u := range n.Traverse(Preorder) {
			if u.IsLeaf() {
				tips[u.name] = true
			}
		}
	}
	return tips, nil
}
