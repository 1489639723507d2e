// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package rootcmd implements a command to re-root
// the trees of a tree file.
package rootcmd

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
	Usage: `root [--tree <tree-name>] [--length <value>]
	[-o|--output <file>] <tree-file> <terminal>...`,
	Short: "re-root trees on an outgroup",
	Long: `
Command root reads a tree file and re-roots each tree on the edge above the
most recent common ancestor of the given terminals, writing the results as
Newick trees in the standard output.

The first argument of the command is the name of a tree file, in Newick,
Nexus, or tab-delimited format (see 'phytree help tree-files'); the rest of
the arguments are the names of the terminals of the outgroup.

If the terminals do not form a clade, or a clade with the current root as its
ancestor, the command will fail.

By default, the new root is placed at the midpoint of the edge. Use the flag
--length to set the length kept by the outgroup side of the edge.

By default all trees will be re-rooted. If the flag --tree is set, only the
indicated tree will be processed.

Use the flag -o, or --output, to set an output file; the default is the
standard output.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var length float64
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().Float64Var(&length, "length", -1, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 2 {
		return c.UsageError("expecting tree file and outgroup terminals")
	}

	tc, err := readTrees(args[0])
	if err != nil {
		return err
	}

	qs := make([]phytree.Query, 0, len(args)-1)
	for _, term := range args[1:] {
		qs = append(qs, phytree.Name(term))
	}

	opt := &phytree.RootOptions{Midpoint: true}
	if length >= 0 {
		opt = &phytree.RootOptions{RootDist: length}
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
		if err := t.RootAt(opt, qs...); err != nil {
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
