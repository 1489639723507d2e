// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package newick

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/js-arias/phytree"
)

// isNexus reports whether the input
// is a Nexus file.
func isNexus(s string) bool {
	s = strings.TrimSpace(s)
	return len(s) >= 6 && strings.EqualFold(s[:6], "#nexus")
}

// readNexus reads the trees block of a Nexus file:
// an optional translate table
// followed by one or more named tree statements.
func readNexus(s string, opt *Options) (*phytree.Collection, error) {
	start := indexFold(s, "begin trees;")
	if start < 0 {
		return nil, &Error{Msg: "nexus file without a trees block"}
	}
	start += len("begin trees;")
	end := indexFold(s[start:], "end;")
	if end < 0 {
		return nil, errorf(tail(s), "unterminated trees block")
	}
	block := s[start : start+end]

	c := phytree.NewCollection()
	translate := make(map[string]string)
	for _, st := range strings.Split(block, ";") {
		st = strings.TrimSpace(st)
		if st == "" {
			continue
		}
		kw := strings.ToLower(firstWord(st))
		switch kw {
		case "translate":
			if err := readTranslate(st[len(kw):], translate); err != nil {
				return nil, err
			}
		case "tree":
			tn, ts, err := treeStatement(st)
			if err != nil {
				return nil, err
			}
			t, err := Parse(ts+";", tn, opt)
			if err != nil {
				return nil, err
			}
			applyTranslate(t, translate)
			if err := c.Add(t); err != nil {
				return nil, err
			}
		}
	}
	if len(c.Names()) == 0 {
		return nil, &Error{Msg: "trees block without trees"}
	}
	return c, nil
}

// readTranslate fills the translate table
// from a comma separated list
// of token-name pairs.
func readTranslate(s string, translate map[string]string) error {
	for _, e := range strings.Split(s, ",") {
		f := strings.Fields(e)
		if len(f) == 0 {
			continue
		}
		if len(f) != 2 {
			return errorf(e, "invalid translate entry")
		}
		translate[f[0]] = cleanName(f[1])
	}
	return nil
}

// treeStatement breaks a "tree <name> = <newick>" statement.
func treeStatement(st string) (name, tree string, err error) {
	rest := strings.TrimSpace(st[len("tree"):])
	name, tree, ok := strings.Cut(rest, "=")
	if !ok {
		return "", "", errorf(tail(st), "invalid tree statement")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", errorf(tail(st), "tree statement without a name")
	}
	return name, strings.TrimSpace(tree), nil
}

// applyTranslate replaces terminal names
// using a translate table.
func applyTranslate(t *phytree.Tree, translate map[string]string) {
	if len(translate) == 0 {
		return
	}
	for _, n := range t.Nodes() {
		if !n.IsLeaf() {
			continue
		}
		if full, ok := translate[n.Name()]; ok {
			n.SetName(full)
		}
	}
}

// indexFold returns the position
// of the first case-insensitive match
// of sub in s,
// or -1 if there is no match.
func indexFold(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}

// firstWord returns the first white-space
// delimited word of a string.
func firstWord(s string) string {
	f := strings.Fields(s)
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

// WriteNexus writes a collection of trees
// as a Nexus file with a translate table.
// Each tree is flagged as rooted ("[&R]"),
// or unrooted ("[&U]")
// if its root is a polytomy.
func WriteNexus(w io.Writer, c *phytree.Collection, opt *WriteOptions) error {
	op := opt.fill()

	seen := make(map[string]bool)
	var labels []string
	for _, tn := range c.Names() {
		for _, l := range c.Tree(tn).TipLabels() {
			l = cleanName(l)
			if seen[l] {
				continue
			}
			seen[l] = true
			labels = append(labels, l)
		}
	}
	slices.Sort(labels)

	translate := make(map[string]string, len(labels))
	if _, err := fmt.Fprintf(w, "#NEXUS\n\nbegin trees;\n\ttranslate\n"); err != nil {
		return err
	}
	for i, l := range labels {
		tk := strconv.Itoa(i + 1)
		translate[l] = tk
		sep := ","
		if i == len(labels)-1 {
			sep = ";"
		}
		if _, err := fmt.Fprintf(w, "\t\t%s %s%s\n", tk, l, sep); err != nil {
			return err
		}
	}

	for _, tn := range c.Names() {
		t := c.Tree(tn)
		flag := "[&R]"
		if t.Root().Degree() > 2 {
			flag = "[&U]"
		}
		var b strings.Builder
		if err := writeNode(&b, t.Root(), op, translate, true); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "\ttree %s = %s %s;\n", cleanName(tn), flag, b.String()); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "end;\n"); err != nil {
		return err
	}
	return nil
}
