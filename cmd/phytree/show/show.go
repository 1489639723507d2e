// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package show implements a command to draw
// trees as text in the standard output.
package show

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/phytree"
	"github.com/js-arias/phytree/newick"
	"github.com/xlab/treeprint"
)

var Command = &command.Command{
	Usage: "show [--tree <tree-name>] [--nodists] <tree-file>",
	Short: "draw trees as text",
	Long: `
Command show reads a tree file and draws each tree as text in the standard
output. Terminals are printed with their names; internal nodes with their
names, or their support values if they are unnamed.

The argument of the command is the name of a tree file, in Newick, Nexus, or
tab-delimited format (see 'phytree help tree-files').

By default branch lengths are printed after each node. If the flag --nodists
is given, branch lengths will be omitted.

By default all trees will be drawn. If the flag --tree is set, only the
indicated tree will be drawn.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var noDists bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().BoolVar(&noDists, "nodists", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting tree file")
	}

	tc, err := readTrees(args[0])
	if err != nil {
		return err
	}

	ls := tc.Names()
	if treeName != "" {
		ls = []string{treeName}
	}

	for _, tn := range ls {
		t := tc.Tree(tn)
		if t == nil {
			return fmt.Errorf("tree %q not in file %q", tn, args[0])
		}
		p := treeprint.New()
		p.SetValue(tn)
		for _, n := range t.Root().Children() {
			addNode(p, n)
		}
		fmt.Fprintf(c.Stdout(), "%s", p.String())
	}
	return nil
}

func addNode(p treeprint.Tree, n *phytree.Node) {
	if n.IsLeaf() {
		p.AddNode(nodeText(n))
		return
	}
	b := p.AddBranch(nodeText(n))
	for _, c := range n.Children() {
		addNode(b, c)
	}
}

func nodeText(n *phytree.Node) string {
	label := n.Name()
	if label == "" && n.HasSupport() {
		label = fmt.Sprintf("%g", n.Support())
	}
	if noDists {
		return label
	}
	return fmt.Sprintf("%s:%g", label, n.Dist())
}

func readTrees(name string) (*phytree.Collection, error) {
	if ext := strings.ToLower(filepath.Ext(name)); ext == ".tab" || ext == ".tsv" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		tc, err := phytree.ReadTSV(f)
		if err != nil {
			return nil, fmt.Errorf("on file %q: %v", name, err)
		}
		return tc, nil
	}
	return newick.ReadFile(name, nil)
}
