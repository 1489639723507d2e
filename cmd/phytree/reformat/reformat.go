// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package reformat implements a command to convert
// tree files between the supported formats.
package reformat

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
	Usage: `reformat [--to <format>] [--format <code>]
	[--labels <feature>] [--features <feature>,...]
	[-o|--output <file>] <tree-file>`,
	Short: "convert tree files between formats",
	Long: `
Command reformat reads a tree file and writes its trees in another format to
the standard output.

The argument of the command is the name of a tree file, in Newick, Nexus, or
tab-delimited format (see 'phytree help tree-files').

The flag --to sets the output format: "newick" (the default), "nexus", or
"tab" for the tab-delimited format.

The flag --format sets the numeric code used to read a Newick file (see
'phytree help formats'). By default, code 0 is used.

By default, the support values of the internal nodes will be written as
internal labels of a Newick or Nexus output. Use the flag --labels to write
internal node names ("name") or no internal labels at all ("none").

The flag --features accepts a comma separated list of node features to be
written as NHX comment blocks in a Newick or Nexus output.

Use the flag -o, or --output, to set an output file; the default is the
standard output.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var toFormat string
var formatCode int
var labels string
var features string
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&toFormat, "to", "newick", "")
	c.Flags().IntVar(&formatCode, "format", 0, "")
	c.Flags().StringVar(&labels, "labels", "", "")
	c.Flags().StringVar(&features, "features", "", "")
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

	w := io.Writer(c.Stdout())
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	wOpt := &newick.WriteOptions{
		InternalLabels: labels,
	}
	if features != "" {
		wOpt.Features = strings.Split(features, ",")
	}

	switch strings.ToLower(toFormat) {
	case "newick":
		for _, tn := range tc.Names() {
			if err := newick.Write(w, tc.Tree(tn), wOpt); err != nil {
				return err
			}
		}
	case "nexus":
		if err := newick.WriteNexus(w, tc, wOpt); err != nil {
			return err
		}
	case "tab":
		if err := tc.TSV(w); err != nil {
			return err
		}
	default:
		return c.UsageError(fmt.Sprintf("unknown output format %q", toFormat))
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
	return newick.ReadFile(name, &newick.Options{Format: formatCode})
}
