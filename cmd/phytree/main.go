// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// PhyTree is a tool to read, edit, and compare
// phylogenetic trees.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/phytree/cmd/phytree/bipartcmd"
	"github.com/js-arias/phytree/cmd/phytree/collapse"
	"github.com/js-arias/phytree/cmd/phytree/compare"
	"github.com/js-arias/phytree/cmd/phytree/consensuscmd"
	"github.com/js-arias/phytree/cmd/phytree/drop"
	"github.com/js-arias/phytree/cmd/phytree/ladderize"
	"github.com/js-arias/phytree/cmd/phytree/list"
	"github.com/js-arias/phytree/cmd/phytree/prune"
	"github.com/js-arias/phytree/cmd/phytree/reformat"
	"github.com/js-arias/phytree/cmd/phytree/resolve"
	"github.com/js-arias/phytree/cmd/phytree/rootcmd"
	"github.com/js-arias/phytree/cmd/phytree/rotate"
	"github.com/js-arias/phytree/cmd/phytree/show"
	"github.com/js-arias/phytree/cmd/phytree/sim"
	"github.com/js-arias/phytree/cmd/phytree/stats"
	"github.com/js-arias/phytree/cmd/phytree/terms"
	"github.com/js-arias/phytree/cmd/phytree/unroot"
)

var app = &command.Command{
	Usage: "phytree <command> [<argument>...]",
	Short: "a tool to read, edit, and compare phylogenetic trees",
}

func init() {
	app.Add(bipartcmd.Command)
	app.Add(collapse.Command)
	app.Add(compare.Command)
	app.Add(consensuscmd.Command)
	app.Add(drop.Command)
	app.Add(ladderize.Command)
	app.Add(list.Command)
	app.Add(prune.Command)
	app.Add(reformat.Command)
	app.Add(resolve.Command)
	app.Add(rootcmd.Command)
	app.Add(rotate.Command)
	app.Add(show.Command)
	app.Add(sim.Command)
	app.Add(stats.Command)
	app.Add(terms.Command)
	app.Add(unroot.Command)
}

func main() {
	app.Main()
}
