// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package compare implements a command to compare
// the topologies of two trees.
package compare

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
	Usage: "compare <tree-file> [<tree-file>]",
	Short: "compare the topologies of two trees",
	Long: `
Command compare reads two trees and prints the Robinson-Foulds distance
between them: the number of bipartitions present in only one of the trees.
It also prints the number of shared bipartitions and whether the two
topologies are identical.

If a single tree file is given, the first two trees of the file will be
compared; with two files, the first tree of each file will be compared. Tree
files can be in Newick, Nexus, or tab-delimited format (see 'phytree help
tree-files').
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting tree files")
	}

	var trees []*phytree.Tree
	for _, a := range args {
		tc, err := readTrees(a)
		if err != nil {
			return err
		}
		for _, tn := range tc.Names() {
			trees = append(trees, tc.Tree(tn))
			if len(trees) == 2 {
				break
			}
		}
		if len(trees) == 2 {
			break
		}
	}
	if len(trees) < 2 {
		return fmt.Errorf("expecting two trees, got %d", len(trees))
	}

	p1 := bipart.Of(trees[0], false)
	p2 := bipart.Of(trees[1], false)
	d := bipart.Distance(trees[0], trees[1])
	shared := (len(p1) + len(p2) - d) / 2

	fmt.Fprintf(c.Stdout(), "trees: %s, %s\n", trees[0].Name(), trees[1].Name())
	fmt.Fprintf(c.Stdout(), "\tpartitions:    %d, %d\n", len(p1), len(p2))
	fmt.Fprintf(c.Stdout(), "\tshared:        %d\n", shared)
	fmt.Fprintf(c.Stdout(), "\tRF distance:   %d\n", d)
	fmt.Fprintf(c.Stdout(), "\tsame topology: %v\n", bipart.Equal(p1, p2))
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
