// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package ladderize implements a command to sort
// the nodes of the trees of a tree file.
package ladderize

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/phytree"
	"github.com/js-arias/phytree/newick"
)

var Command = &command.Command{
	Usage: `ladderize [--tree <tree-name>] [--reverse]
	[-o|--output <file>] <tree-file>`,
	Short: "sort the children of every node by clade size",
	Long: `
Command ladderize reads a tree file and sorts the children of every node of
each tree by the number of their descendants, writing the results as Newick
trees in the standard output. Ties keep the current order.

The argument of the command is the name of a tree file, in Newick, Nexus, or
tab-delimited format (see 'phytree help tree-files').

By default smaller clades come first. If the flag --reverse is given, larger
clades will come first.

By default all trees will be processed. If the flag --tree is set, only the
indicated tree will be processed.

Use the flag -o, or --output, to set an output file; the default is the
standard output.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var reverse bool
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().BoolVar(&reverse, "reverse", false, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
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

	w := io.Writer(c.Stdout())
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	for _, tn := range ls {
		t := tc.Tree(tn)
		if t == nil {
			return fmt.Errorf("tree %q not in file %q", tn, args[0])
		}
		t.Ladderize(reverse)
		if err := newick.Write(w, t, nil); err != nil {
			return err
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
