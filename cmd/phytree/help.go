// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(treeFilesGuide)
	app.Add(formatsGuide)
}

var treeFilesGuide = &command.Command{
	Usage: "tree-files",
	Short: "about tree files",
	Long: `
PhyTree commands read and write phylogenetic trees from plain text files. The
kind of file is detected automatically from its content and its extension.

A Newick file contains one or more trees as parenthesized statements, each
one terminated by a semicolon:

	((pongo:5,(pan:3,homo:3)95:2)90:10,hylobates:15);

Internal node labels are read as support values if they are numeric, or as
internal node names otherwise. Additional node data can be stored in comment
blocks in the New Hampshire eXtended (NHX) convention:

	(pan:3,homo:3)[&&NHX:clade=hominini]

As the trees of a Newick file are unnamed, the trees will be named with the
file name, followed by a number if the file has more than one tree.

A Nexus file starts with the "#NEXUS" token and stores its trees, each one
with a name, in a trees block, usually with a translate table for the
terminal names:

	#NEXUS
	begin trees;
		translate
			1 homo,
			2 pan,
			3 pongo;
		tree primates = [&R] ((3,(2,1)),hylobates);
	end;

A tab-delimited tree file stores one node per row with the following
columns:

	tree     the name of the tree
	node     the ID of the node
	parent   the ID of the parent of the node (-1 for the root)
	name     the name of the node (terminals must be named)
	dist     the length of the branch to the parent
	support  the support value of the node, if any

The rows of a tree are given in parent-first order, and the children of a
node keep the order of their rows. This is the preferred format to keep
node data without the ambiguities of the Newick syntax.
	`,
}

var formatsGuide = &command.Command{
	Usage: "formats",
	Short: "about newick format codes",
	Long: `
There are many conventions about the meaning of the labels and numbers of a
Newick tree. By default, PhyTree reads any label and branch length as
optional, interpreting numeric internal labels as support values. The flag
--format of the reading commands can be used to impose a strict convention,
using the following codes:

	0  flexible with support values (the default)
	1  flexible with internal names
	2  all branches with support and length
	3  all branches with internal names and length
	4  terminal names and terminal branch lengths only
	5  terminal names and all branch lengths, no internal labels
	6  terminal names and internal branch lengths only
	7  all names and branch lengths
	8  all names, no lengths
	9  terminal names only
	10 flexible with support values, allowing commas inside
	   curly braces (MrBayes extension)

With a strict code, a tree missing a required field, or carrying a field the
code forbids, is an error. Codes 0, 1, and 10 accept any combination of
labels and lengths.
	`,
}
