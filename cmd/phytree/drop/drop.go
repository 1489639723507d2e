// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package drop implements a command to remove
// terminals from the trees of a tree file.
package drop

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
	Usage: `drop [--tree <tree-name>] [-o|--output <file>]
	<tree-file> <terminal>...`,
	Short: "remove terminals from trees",
	Long: `
Command drop reads a tree file and removes the given terminals from each
tree, removing also the internal nodes left with a single child, and writing
the results as Newick trees in the standard output.

The first argument of the command is the name of a tree file, in Newick,
Nexus, or tab-delimited format (see 'phytree help tree-files'); the rest of
the arguments are the names of the terminals to be removed. Removing all the
terminals of a tree is an error.

By default all trees will be processed. If the flag --tree is set, only the
indicated tree will be processed.

Use the flag -o, or --output, to set an output file; the default is the
standard output.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 2 {
		return c.UsageError("expecting tree file and terminals")
	}

	tc, err := readTrees(args[0])
	if err != nil {
		return err
	}

	qs := make([]phytree.Query, 0, len(args)-1)
	for _, term := range args[1:] {
		qs = append(qs, phytree.Name(term))
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
		if err := t.DropTips(qs...); err != nil {
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
