// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package newick

import (
	"strconv"
	"strings"

	"github.com/js-arias/phytree"
)

// escaped comma inside a MrBayes curly brace block
const bracedComma = '\x01'

type parser struct {
	opt Options
	g   grammar

	// pending internal node labels
	// of a flexible format
	labels map[*phytree.Node]string
}

func (p *parser) tree(s, name string) (*phytree.Tree, error) {
	if p.g.mrBayes {
		s = escapeBraces(s)
	}
	s = stripBreaks(s)
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[&R]")
	s = strings.TrimPrefix(s, "[&U]")
	s = strings.TrimSpace(s)

	if !strings.HasSuffix(s, ";") {
		return nil, errorf(tail(s), "tree without a terminating semicolon")
	}
	s = strings.TrimSuffix(s, ";")
	if err := checkBalance(s); err != nil {
		return nil, err
	}

	p.labels = make(map[*phytree.Node]string)
	root, err := p.subtree(s, true)
	if err != nil {
		return nil, err
	}
	if err := p.resolveLabels(); err != nil {
		return nil, err
	}

	t, err := phytree.New(name, root)
	if err != nil {
		return nil, errorf("", "tree %q: %v", name, err)
	}
	return t, nil
}

// subtree parses a node string:
// an optional parenthesized list of children
// followed by the label, branch length,
// and comment blocks of the node itself.
func (p *parser) subtree(s string, isRoot bool) (*phytree.Node, error) {
	s = strings.TrimSpace(s)

	var children []string
	seg := s
	if strings.HasPrefix(s, "(") {
		end := closeParen(s)
		if end < 0 {
			return nil, errorf(tail(s), "unbalanced parenthesis")
		}
		var err error
		children, err = splitTop(s[1:end])
		if err != nil {
			return nil, err
		}
		seg = s[end+1:]
	}

	label, dist, comments, err := splitSegment(seg)
	if err != nil {
		return nil, err
	}

	n := phytree.NewNode("", 1)
	if isRoot {
		n.SetDist(0)
	}
	if len(children) == 0 {
		if err := p.leafRules(n, label, dist, seg, isRoot); err != nil {
			return nil, err
		}
	} else {
		if err := p.innerRules(n, label, dist, seg, isRoot); err != nil {
			return nil, err
		}
	}
	if len(comments) > 2 {
		return nil, errorf(seg, "too many comment blocks")
	}
	for _, c := range comments {
		if err := p.parseComment(n, c); err != nil {
			return nil, err
		}
	}

	for _, cs := range children {
		c, err := p.subtree(cs, false)
		if err != nil {
			return nil, err
		}
		if err := n.AddChild(c); err != nil {
			return nil, errorf(cs, "%v", err)
		}
	}
	return n, nil
}

func (p *parser) leafRules(n *phytree.Node, label, dist, seg string, isRoot bool) error {
	switch {
	case label == "" && !p.g.leafName.optional:
		return errorf(seg, "expecting a terminal name")
	case label != "" && p.g.leafName.attr == attrNone:
		return errorf(seg, "unexpected terminal name")
	case label != "":
		n.SetName(cleanName(label))
	}
	return p.distRule(n, dist, seg, p.g.leafDist, isRoot)
}

func (p *parser) innerRules(n *phytree.Node, label, dist, seg string, isRoot bool) error {
	switch {
	case label == "" && !p.g.innLabel.optional:
		// the root node is exempted,
		// as most writers leave it bare
		if isRoot {
			break
		}
		return errorf(seg, "expecting an internal node label")
	case label != "" && p.g.innLabel.attr == attrNone:
		return errorf(seg, "unexpected internal node label")
	case label == "":
	case p.g.flexible:
		p.labels[n] = label
	case p.g.innLabel.attr == attrName:
		n.SetName(cleanName(label))
	case p.g.innLabel.attr == attrSupport:
		v, err := strconv.ParseFloat(label, 64)
		if err != nil {
			return errorf(seg, "invalid support value")
		}
		n.SetSupport(v)
	}
	return p.distRule(n, dist, seg, p.g.innDist, isRoot)
}

func (p *parser) distRule(n *phytree.Node, dist, seg string, r rule, isRoot bool) error {
	if dist == "" {
		if !r.optional && !isRoot {
			return errorf(seg, "expecting a branch length")
		}
		return nil
	}
	if r.attr == attrNone {
		return errorf(seg, "unexpected branch length")
	}
	v, err := strconv.ParseFloat(dist, 64)
	if err != nil {
		return errorf(seg, "invalid branch length")
	}
	n.SetDist(v)
	return nil
}

// parseComment stores the key=value fields
// of a metadata comment block
// as features of the node.
func (p *parser) parseComment(n *phytree.Node, c string) error {
	var fields []string
	switch {
	case strings.HasPrefix(c, "&&NHX:"):
		fields = strings.Split(c[len("&&NHX:"):], ":")
	case strings.HasPrefix(c, p.opt.CommentPrefix):
		fields = strings.Split(c[len(p.opt.CommentPrefix):], p.opt.CommentSep)
	default:
		return errorf(c, "unknown comment structure")
	}

	for _, f := range fields {
		k, v, ok := strings.Cut(f, p.opt.CommentAssign)
		if !ok {
			return errorf(f, "comment field without %q", p.opt.CommentAssign)
		}
		v = strings.ReplaceAll(v, string(bracedComma), ",")
		n.SetFeature(k, v)
	}
	return nil
}

// resolveLabels assigns the pending internal labels
// of a flexible format:
// if every label is numeric
// they are supports,
// otherwise they are names.
// An explicit option overrides the inference.
func (p *parser) resolveLabels() error {
	if len(p.labels) == 0 {
		return nil
	}

	semantics := p.opt.InternalLabels
	if semantics == "" {
		semantics = "support"
		for _, l := range p.labels {
			if _, err := strconv.ParseFloat(l, 64); err != nil {
				semantics = "name"
				break
			}
		}
	}

	switch semantics {
	case "name":
		for n, l := range p.labels {
			n.SetName(cleanName(l))
		}
	case "support":
		for n, l := range p.labels {
			v, err := strconv.ParseFloat(l, 64)
			if err != nil {
				return errorf(l, "invalid support value")
			}
			n.SetSupport(v)
			n.SetName("")
		}
	default:
		return errorf("", "unknown internal label semantics %q", p.opt.InternalLabels)
	}
	return nil
}

// splitSegment breaks the own part of a node string
// into a label,
// a branch length,
// and up to two comment blocks
// (MrBayes writes one block for the node,
// before the colon,
// and one for the edge,
// after the branch length).
func splitSegment(seg string) (label, dist string, comments []string, err error) {
	var cur *strings.Builder
	lb := &strings.Builder{}
	db := &strings.Builder{}
	cur = lb

	depth := 0
	start := 0
	for i, r := range seg {
		switch {
		case r == '[':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case r == ']':
			depth--
			if depth < 0 {
				return "", "", nil, errorf(tail(seg), "unbalanced comment bracket")
			}
			if depth == 0 {
				comments = append(comments, seg[start:i])
			}
		case depth > 0:
		case r == ':':
			if cur == db {
				return "", "", nil, errorf(seg, "unexpected colon")
			}
			cur = db
		case r == '(' || r == ')' || r == ',':
			return "", "", nil, errorf(seg, "unexpected character %q", r)
		default:
			cur.WriteRune(r)
		}
	}
	if depth != 0 {
		return "", "", nil, errorf(tail(seg), "unbalanced comment bracket")
	}
	// spaces inside a label are kept,
	// to be replaced by underscores;
	// spaces around a label or a branch length
	// are formatting
	return strings.TrimSpace(lb.String()), strings.TrimSpace(db.String()), comments, nil
}

// splitTop splits a children list
// on the commas at the top nesting level.
func splitTop(s string) ([]string, error) {
	var parts []string
	parens, brackets := 0, 0
	start := 0
	for i, r := range s {
		switch r {
		case '(':
			parens++
		case ')':
			parens--
			if parens < 0 {
				return nil, errorf(tail(s), "unbalanced parenthesis")
			}
		case '[':
			brackets++
		case ']':
			brackets--
		case ',':
			if parens == 0 && brackets == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts, nil
}

// closeParen returns the position
// of the parenthesis that closes
// the parenthesis at the start of the string,
// or -1 if it is never closed.
func closeParen(s string) int {
	parens, brackets := 0, 0
	for i, r := range s {
		switch r {
		case '[':
			brackets++
		case ']':
			brackets--
		case '(':
			if brackets == 0 {
				parens++
			}
		case ')':
			if brackets == 0 {
				parens--
				if parens == 0 {
					return i
				}
			}
		}
	}
	return -1
}

// checkBalance validates that every parenthesis
// and comment bracket of the tree string
// is properly closed.
func checkBalance(s string) error {
	parens, brackets := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			parens++
		case ')':
			parens--
			if parens < 0 {
				return errorf(tail(s[:i+1]), "unbalanced parenthesis")
			}
		case '[':
			brackets++
		case ']':
			brackets--
			if brackets < 0 {
				return errorf(tail(s[:i+1]), "unbalanced comment bracket")
			}
		}
	}
	if parens != 0 {
		return errorf(tail(s), "unbalanced parenthesis")
	}
	if brackets != 0 {
		return errorf(tail(s), "unbalanced comment bracket")
	}
	return nil
}

// stripBreaks removes line breaks
// outside of a comment block,
// so a tree can span several lines.
// Spaces and tabs are kept:
// inside a label they stand for underscores.
func stripBreaks(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case '\n', '\r':
			if depth == 0 {
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// escapeBraces protects the commas
// inside MrBayes curly brace blocks
// (for example "[&prob={0.95,0.05}]")
// so comment fields can be split on commas.
func escapeBraces(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '{':
			depth++
		case r == '}':
			depth--
		case r == ',' && depth > 0:
			b.WriteRune(bracedComma)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// tail returns the last characters of a string
// for error reporting.
func tail(s string) string {
	if len(s) <= 32 {
		return s
	}
	return "..." + s[len(s)-29:]
}
