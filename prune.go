// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phytree

import (
	"errors"
	"fmt"
	"os"
)

// ErrAllTips is returned when an operation
// would remove every terminal of a tree.
var ErrAllTips = errors.New("cannot drop all tips")

// PruneOptions control the pruning of a tree.
type PruneOptions struct {
	// PreserveBranchLength adds the branch length
	// of every removed pass-through node
	// to its surviving descendant.
	PreserveBranchLength bool

	// KeepRoot retains the current root
	// even if it is left with a single child.
	// Otherwise the new root is the common ancestor
	// of the retained nodes.
	KeepRoot bool
}

// Prune retains only the queried nodes,
// the ancestors connecting them,
// and, if opt.KeepRoot is set, the root;
// every other node is removed
// and the survivors are reconnected directly.
// A queried internal node
// retains its whole subtree.
func (t *Tree) Prune(opt *PruneOptions, qs ...Query) error {
	if opt == nil {
		opt = &PruneOptions{PreserveBranchLength: true, KeepRoot: true}
	}

	anchor, err := t.Search(qs...)
	if err != nil {
		return err
	}
	keep := make(map[*Node]bool, len(anchor))
	for _, n := range anchor {
		keep[n] = true
	}

	// remove unselected branches
	var prune func(n *Node) bool
	prune = func(n *Node) bool {
		if keep[n] {
			return true
		}
		retained := false
		for _, c := range n.Children() {
			if prune(c) {
				retained = true
				continue
			}
			c.Detach()
		}
		return retained
	}
	if !prune(t.root) {
		return fmt.Errorf("tree %q: empty prune query", t.name)
	}

	// remove pass-through nodes
	var unary []*Node
	for n := range t.root.Traverse(Postorder) {
		if n == t.root || keep[n] {
			continue
		}
		if len(n.children) == 1 {
			unary = append(unary, n)
		}
	}
	for _, n := range unary {
		if err := n.Delete(opt.PreserveBranchLength, false); err != nil {
			return err
		}
	}

	if !opt.KeepRoot {
		root := t.root
		for len(root.children) == 1 && !keep[root] {
			root = root.children[0]
		}
		if root != t.root {
			root.Detach()
			root.dist = 0
			t.root = root
		}
	}

	t.Reindex()
	return nil
}

// DropTips removes the queried terminals from the tree,
// pruning to the complement tip set
// with branch lengths preserved.
// Removing every terminal is an error;
// a query that selects no node
// prints a warning to the standard error
// and is otherwise ignored.
func (t *Tree) DropTips(qs ...Query) error {
	if len(qs) == 0 {
		return fmt.Errorf("tree %q: empty query", t.name)
	}

	drop := make(map[string]bool)
	for _, q := range qs {
		tips, err := t.TipSet(q)
		if errors.Is(err, ErrNotFound) {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			continue
		}
		if err != nil {
			return err
		}
		for name := range tips {
			drop[name] = true
		}
	}
	if len(drop) == 0 {
		return nil
	}

	var rest []Query
	for _, n := range t.nodes[:t.tips] {
		if drop[n.name] {
			continue
		}
		rest = append(rest, Is(n))
	}
	if len(rest) == 0 {
		return fmt.Errorf("tree %q: %w", t.name, ErrAllTips)
	}
	return t.Prune(&PruneOptions{PreserveBranchLength: true, KeepRoot: true}, rest...)
}

// Prune returns a pruned copy of the tree.
// See the Prune method for the semantics.
func Prune(t *Tree, opt *PruneOptions, qs ...Query) (*Tree, error) {
	nt := t.Clone()
	if err := nt.Prune(opt, qs...); err != nil {
		return nil, err
	}
	return nt, nil
}

// DropTips returns a copy of the tree
// without the queried terminals.
// See the DropTips method for the semantics.
func DropTips(t *Tree, qs ...Query) (*Tree, error) {
	nt := t.Clone()
	if err := nt.DropTips(qs...); err != nil {
		return nil, err
	}
	return nt, nil
}
