// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package newick

// An attribute is the node attribute
// encoded by an element of a tree string.
type attribute int8

const (
	// the element is not allowed in the format
	attrNone attribute = iota

	attrName
	attrSupport
	attrDist
)

// A rule indicates how to read
// one of the four elements of a node string:
// the label and the branch length,
// on terminal and internal nodes.
type rule struct {
	attr     attribute
	optional bool
}

// A grammar is the per-format description
// of the elements allowed on each node.
type grammar struct {
	leafName rule
	leafDist rule
	innLabel rule
	innDist  rule

	// flexible grammars accept internal labels
	// of either kind,
	// deciding between names and supports
	// after the whole tree is read
	flexible bool

	// mrBayes preprocessing of curly brace blocks
	mrBayes bool
}

// formats is the table of the historical
// numeric format codes.
// Codes 0 and 1 are flexible,
// with supports or names
// as internal node labels;
// codes 2-9 are strict variants
// that require or forbid each element;
// code 10 is the MrBayes/BEAST flavor of code 0,
// with comma-separated value lists
// inside curly braces.
var formats = map[int]grammar{
	0: {
		leafName: rule{attrName, true},
		leafDist: rule{attrDist, true},
		innLabel: rule{attrSupport, true},
		innDist:  rule{attrDist, true},
		flexible: true,
	},
	1: {
		leafName: rule{attrName, true},
		leafDist: rule{attrDist, true},
		innLabel: rule{attrName, true},
		innDist:  rule{attrDist, true},
		flexible: true,
	},
	2: {
		leafName: rule{attrName, false},
		leafDist: rule{attrDist, false},
		innLabel: rule{attrSupport, false},
		innDist:  rule{attrDist, false},
	},
	3: {
		leafName: rule{attrName, false},
		leafDist: rule{attrDist, false},
		innLabel: rule{attrName, false},
		innDist:  rule{attrDist, false},
	},
	4: {
		leafName: rule{attrName, false},
		leafDist: rule{attrDist, false},
		innLabel: rule{attrNone, true},
		innDist:  rule{attrNone, true},
	},
	5: {
		leafName: rule{attrName, false},
		leafDist: rule{attrDist, false},
		innLabel: rule{attrNone, true},
		innDist:  rule{attrDist, false},
	},
	6: {
		leafName: rule{attrName, false},
		leafDist: rule{attrNone, true},
		innLabel: rule{attrNone, true},
		innDist:  rule{attrDist, false},
	},
	7: {
		leafName: rule{attrName, false},
		leafDist: rule{attrDist, false},
		innLabel: rule{attrName, false},
		innDist:  rule{attrNone, true},
	},
	8: {
		leafName: rule{attrName, false},
		leafDist: rule{attrNone, true},
		innLabel: rule{attrName, false},
		innDist:  rule{attrNone, true},
	},
	9: {
		leafName: rule{attrName, false},
		leafDist: rule{attrNone, true},
		innLabel: rule{attrNone, true},
		innDist:  rule{attrNone, true},
	},
	10: {
		leafName: rule{attrName, true},
		leafDist: rule{attrDist, true},
		innLabel: rule{attrSupport, true},
		innDist:  rule{attrDist, true},
		flexible: true,
		mrBayes:  true,
	},
}
