// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package sim implements a command to simulate
// random trees.
package sim

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/phytree"
	"github.com/js-arias/phytree/newick"
	"github.com/js-arias/phytree/simulate"
)

var Command = &command.Command{
	Usage: `sim [--model <model>] [--terms <number>] [--trees <number>]
	[--birth <value>] [--theta <value>] [--seed <value>]
	[-o|--output <file>]`,
	Short: "simulate random trees",
	Long: `
Command sim writes one or more simulated trees as Newick trees in the
standard output.

The flag --model selects the simulation model: "yule" (the default) for a
pure-birth tree, "coalescent" for a neutral coalescent tree, or "uniform"
for a random topology with unit branch lengths.

The flag --terms sets the number of terminals of each tree; the default is
10. The flag --trees sets the number of simulated trees; the default is 1.

The flag --birth sets the speciation rate of the Yule model; the default is
1. The flag --theta sets the population parameter of the coalescent model;
the default is 1.

Use the flag --seed to set the seed of the random number generator; the
default is 0. With more than one tree, the seed of each tree is the given
seed plus the tree number.

Use the flag -o, or --output, to set an output file; the default is the
standard output.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var model string
var terms int
var numTrees int
var birth float64
var theta float64
var seed uint64
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&model, "model", "yule", "")
	c.Flags().IntVar(&terms, "terms", 10, "")
	c.Flags().IntVar(&numTrees, "trees", 1, "")
	c.Flags().Float64Var(&birth, "birth", 1, "")
	c.Flags().Float64Var(&theta, "theta", 1, "")
	c.Flags().Uint64Var(&seed, "seed", 0, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if numTrees < 1 {
		return c.UsageError("expecting one or more trees")
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

	for i := range numTrees {
		name := model
		if numTrees > 1 {
			name = fmt.Sprintf("%s.%d", model, i)
		}
		s := seed + uint64(i)

		var t *phytree.Tree
		var err error
		switch strings.ToLower(model) {
		case "yule":
			t, err = simulate.Yule(name, terms, birth, s)
		case "coalescent":
			t, err = simulate.Coalescent(name, terms, theta, s)
		case "uniform":
			t, err = simulate.Uniform(name, terms, s)
		default:
			return c.UsageError(fmt.Sprintf("unknown model %q", model))
		}
		if err != nil {
			return err
		}
		if err := newick.Write(w, t, nil); err != nil {
			return err
		}
	}
	return nil
}
