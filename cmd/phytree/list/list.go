// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package list implements a command to print
// the list of trees in a tree file.
package list

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
	Usage: "list <tree-file>",
	Short: "print a list of the trees in a file",
	Long: `
Command list reads a tree file and prints the tree names in the standard
output.

The argument of the command is the name of a tree file, in Newick, Nexus, or
tab-delimited format (see 'phytree help tree-files').
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting tree file")
	}

	tc, err := readTrees(args[0])
	if err != nil {
		return err
	}

	for _, tn := range tc.Names() {
		fmt.Fprintf(c.Stdout(), "%s\n", tn)
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
