// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package bipartcmd implements a command to print
// the partitions induced by the edges of a tree.
package bipartcmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/phytree"
	"github.com/js-arias/phytree/bipart"
	"github.com/js-arias/phytree/newick"
)

var Command = &command.Command{
	Usage: `bipart [--tree <tree-name>] [--internal]
	[--quartets|--quadris] <tree-file>`,
	Short: "print the partitions of a tree",
	Long: `
Command bipart reads a tree file and prints the bipartitions induced by the
internal edges of each tree, one per line, with the two sides separated by a
"|" character. Trivial partitions, with a single terminal on one side, are
not printed.

The argument of the command is the name of a tree file, in Newick, Nexus, or
tab-delimited format (see 'phytree help tree-files').

If the flag --internal is given, the names of the internal nodes will be
included in each side of the partitions.

If the flag --quartets is given, the two-by-two terminal combinations across
each bipartition will be printed instead. If the flag --quadris is given, the
four-way splits around each internal edge will be printed instead.

By default all trees will be processed. If the flag --tree is set, only the
indicated tree will be processed.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var withInternal bool
var quartets bool
var quadris bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().BoolVar(&withInternal, "internal", false, "")
	c.Flags().BoolVar(&quartets, "quartets", false, "")
	c.Flags().BoolVar(&quadris, "quadris", false, "")
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
		fmt.Fprintf(c.Stdout(), "# tree %s\n", tn)
		switch {
		case quartets:
			for _, q := range bipart.Quartets(t) {
				fmt.Fprintf(c.Stdout(), "%s\n", q)
			}
		case quadris:
			for _, q := range bipart.Quadripartitions(t) {
				fmt.Fprintf(c.Stdout(), "%s\n", q)
			}
		default:
			for _, p := range bipart.Of(t, withInternal) {
				fmt.Fprintf(c.Stdout(), "%s\n", p)
			}
		}
	}
	return nil
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
