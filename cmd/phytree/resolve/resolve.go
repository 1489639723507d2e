// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package resolve implements a command to randomly
// resolve the polytomies of a tree file.
package resolve

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/phytree"
	"github.com/js-arias/phytree/newick"
)

var Command = &command.Command{
	Usage: `resolve [--tree <tree-name>] [--seed <value>]
	[--dist <value>] [--support <value>] [--single]
	[-o|--output <file>] <tree-file>`,
	Short: "randomly resolve polytomies",
	Long: `
Command resolve reads a tree file and randomly resolves the polytomies of
each tree, writing the results as Newick trees in the standard output.

The argument of the command is the name of a tree file, in Newick, Nexus, or
tab-delimited format (see 'phytree help tree-files').

By default every polytomy is fully resolved into binary nodes. If the flag
--single is given, a single new node will be added per polytomy.

The flags --dist and --support set the branch length and support value of
the new internal nodes; the defaults are zero length and no support.

The resolution is random; use the flag --seed to set the seed of the random
number generator and make it reproducible.

By default all trees will be processed. If the flag --tree is set, only the
indicated tree will be processed.

Use the flag -o, or --output, to set an output file; the default is the
standard output.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var seed uint64
var dist float64
var support float64
var single bool
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().Uint64Var(&seed, "seed", 0, "")
	c.Flags().Float64Var(&dist, "dist", 0, "")
	c.Flags().Float64Var(&support, "support", math.NaN(), "")
	c.Flags().BoolVar(&single, "single", false, "")
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

	opt := &phytree.ResolveOptions{
		Dist:      dist,
		Support:   support,
		Recursive: !single,
		Seed:      seed,
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
		if err := t.Resolve(opt); err != nil {
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
