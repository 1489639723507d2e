// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package collapse implements a command to collapse
// poorly supported or short internal branches.
package collapse

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
	Usage: `collapse [--tree <tree-name>]
	[--mindist <value>] [--minsupport <value>]
	[-o|--output <file>] <tree-file> [<node-name>...]`,
	Short: "collapse internal branches into polytomies",
	Long: `
Command collapse reads a tree file and removes internal nodes from each tree,
turning each removal into a polytomy on the parent node, and writing the
results as Newick trees in the standard output. The branch length of a
removed node is added to its children.

The first argument of the command is the name of a tree file, in Newick,
Nexus, or tab-delimited format (see 'phytree help tree-files'). Any
additional argument is the name of an internal node to be collapsed.

The flag --mindist collapses every internal node whose branch length is
smaller than the given value; the flag --minsupport collapses every internal
node with a defined support value smaller than the given value.

By default all trees will be processed. If the flag --tree is set, only the
indicated tree will be processed.

Use the flag -o, or --output, to set an output file; the default is the
standard output.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var minDist float64
var minSupport float64
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().Float64Var(&minDist, "mindist", 0, "")
	c.Flags().Float64Var(&minSupport, "minsupport", 0, "")
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

	var qs []phytree.Query
	for _, nm := range args[1:] {
		qs = append(qs, phytree.Name(nm))
	}
	opt := &phytree.CollapseOptions{
		MinDist:    minDist,
		MinSupport: minSupport,
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
		if err := t.Collapse(opt, qs...); err != nil {
			return fmt.Errorf("tree %q: %v", tn, err)
		}
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
