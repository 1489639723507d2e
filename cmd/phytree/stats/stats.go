// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package stats implements a command to print
// basic statistics of the trees in a tree file.
package stats

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/phytree"
	"github.com/js-arias/phytree/newick"
)

var Command = &command.Command{
	Usage: "stats [--tree <tree-name>] <tree-file>",
	Short: "print basic statistics of the trees in a file",
	Long: `
Command stats reads a tree file and prints, for each tree, the number of
terminals and nodes, the tree height, and whether the tree is binary and
ultrametric.

The argument of the command is the name of a tree file, in Newick, Nexus, or
tab-delimited format (see 'phytree help tree-files').

By default all trees will be reported. If the flag --tree is set, only the
indicated tree will be reported.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
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
		rooted := "yes"
		if t.Root().Degree() > 2 {
			rooted = "no"
		}
		fmt.Fprintf(c.Stdout(), "tree: %s\n", tn)
		fmt.Fprintf(c.Stdout(), "\tterminals:   %d\n", t.Tips())
		fmt.Fprintf(c.Stdout(), "\tnodes:       %d\n", t.Len())
		fmt.Fprintf(c.Stdout(), "\theight:      %g\n", t.Height())
		fmt.Fprintf(c.Stdout(), "\tbinary:      %v\n", t.IsBinary())
		fmt.Fprintf(c.Stdout(), "\tultrametric: %v\n", t.IsUltrametric(0.0001))
		fmt.Fprintf(c.Stdout(), "\trooted:      %s\n", rooted)
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
