// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package consensuscmd implements a command to build
// the majority-rule consensus of a set of trees.
package consensuscmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/phytree"
	"github.com/js-arias/phytree/consensus"
	"github.com/js-arias/phytree/newick"
)

var Command = &command.Command{
	Usage: `consensus [--cutoff <value>] [--name <tree-name>]
	[-o|--output <file>] <tree-file>...`,
	Short: "build the majority-rule consensus of a set of trees",
	Long: `
Command consensus reads one or more tree files with trees on the same
terminals and writes their extended majority-rule consensus as a Newick tree
in the standard output.

The arguments of the command are the names of tree files, in Newick, Nexus,
or tab-delimited format (see 'phytree help tree-files'). All the trees of all
the files are used.

A clade is retained if it is found in a proportion of the trees of at least
the value of the flag --cutoff, between 0 and 1, and it is not in conflict
with a better supported clade. The default cutoff is 0.5; with a cutoff of 0
the result is the greedy consensus, and with 1 the strict consensus. The
support and branch length of each retained clade is the percentage of trees
that contain it.

Use the flag --name to set the name of the consensus tree; the default is
"consensus".

Use the flag -o, or --output, to set an output file; the default is the
standard output.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var cutoff float64
var name string
var output string

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&cutoff, "cutoff", 0.5, "")
	c.Flags().StringVar(&name, "name", "consensus", "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
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
		}
	}

	t, err := consensus.Majority(name, cutoff, trees...)
	if err != nil {
		return err
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
	return newick.Write(w, t, nil)
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
