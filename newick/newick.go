// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package newick implements reading and writing
// of phylogenetic trees
// in the parenthetical Newick format,
// including the NHX and MrBayes comment extensions
// and Nexus tree blocks
// with translate tables.
//
// The format of the node elements
// (labels and branch lengths
// on terminals and internal nodes)
// is selected by one of the 11 historical
// numeric format codes,
// in which code 0
// (flexible, internal labels are supports)
// is the default.
package newick

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/phytree"
)

// An Error is a Newick format error.
// It carries the offending fragment
// of the tree string,
// if there is one.
type Error struct {
	Msg      string
	Fragment string
}

func (e *Error) Error() string {
	if e.Fragment == "" {
		return "newick: " + e.Msg
	}
	return fmt.Sprintf("newick: %s: %q", e.Msg, e.Fragment)
}

func errorf(fragment, format string, args ...interface{}) *Error {
	return &Error{
		Msg:      fmt.Sprintf(format, args...),
		Fragment: fragment,
	}
}

// Options control the reading of a tree string.
// The zero value
// (or a nil pointer)
// is the default reading:
// format code 0,
// inferred internal label semantics,
// "&" comment metadata
// with comma separated "key=value" fields.
type Options struct {
	// Format is the numeric format code,
	// from 0 to 10.
	Format int

	// InternalLabels forces the semantics
	// of internal node labels
	// on flexible formats:
	// "name" or "support".
	// If empty,
	// labels are supports
	// if every internal label in the tree is numeric,
	// and names otherwise.
	InternalLabels string

	// CommentPrefix marks a comment block
	// as metadata.
	// The default is "&";
	// the NHX prefix "&&NHX:" is always recognized.
	CommentPrefix string

	// CommentSep separates metadata fields.
	// The default is ",".
	CommentSep string

	// CommentAssign separates a field key
	// from its value.
	// The default is "=".
	CommentAssign string
}

func (o *Options) fill() Options {
	opt := Options{
		CommentPrefix: "&",
		CommentSep:    ",",
		CommentAssign: "=",
	}
	if o == nil {
		return opt
	}
	opt.Format = o.Format
	opt.InternalLabels = o.InternalLabels
	if o.CommentPrefix != "" {
		opt.CommentPrefix = o.CommentPrefix
	}
	if o.CommentSep != "" {
		opt.CommentSep = o.CommentSep
	}
	if o.CommentAssign != "" {
		opt.CommentAssign = o.CommentAssign
	}
	return opt
}

// illegal characters in a Newick name
const illegal = ":;(),[]=\t\n "

// cleanName replaces the characters
// that are not allowed in a Newick name
// with an underscore.
func cleanName(name string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(illegal, r) {
			return '_'
		}
		return r
	}, name)
}

// Parse reads a single tree
// from a Newick string.
func Parse(s, name string, opt *Options) (*phytree.Tree, error) {
	op := opt.fill()
	g, ok := formats[op.Format]
	if !ok {
		return nil, errorf("", "unknown format code %d", op.Format)
	}

	p := &parser{opt: op, g: g}
	return p.tree(s, name)
}

// Read reads one or more trees from a reader.
// The input can be a sequence of
// semicolon-terminated Newick strings,
// or a Nexus file
// (detected by the "#NEXUS" header).
//
// In a Newick input,
// trees are named after the given name:
// the first tree takes the name itself,
// and the following trees
// take the name with a numeric suffix.
// In a Nexus file tree names are taken
// from the tree block.
func Read(r io.Reader, name string, opt *Options) (*phytree.Collection, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("newick: while reading input: %v", err)
	}
	s := string(buf)

	if isNexus(s) {
		return readNexus(s, opt)
	}

	c := phytree.NewCollection()
	i := 0
	for _, ts := range strings.Split(s, ";") {
		if strings.TrimSpace(ts) == "" {
			continue
		}
		tn := name
		if i > 0 {
			tn = fmt.Sprintf("%s.%d", name, i)
		}
		t, err := Parse(ts+";", tn, opt)
		if err != nil {
			return nil, err
		}
		if err := c.Add(t); err != nil {
			return nil, err
		}
		i++
	}
	if i == 0 {
		return nil, &Error{Msg: "no trees in input"}
	}
	return c, nil
}

// ReadFile reads trees from a file,
// or from an URL
// if the name starts with "http://" or "https://".
func ReadFile(name string, opt *Options) (*phytree.Collection, error) {
	if strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") {
		resp, err := http.Get(name)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("on URL %q: %s", name, resp.Status)
		}
		tn := strings.TrimSuffix(filepath.Base(resp.Request.URL.Path), filepath.Ext(resp.Request.URL.Path))
		if tn == "" || tn == "." || tn == "/" {
			tn = "tree"
		}
		c, err := Read(resp.Body, tn, opt)
		if err != nil {
			return nil, fmt.Errorf("on URL %q: %v", name, err)
		}
		return c, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tn := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	c, err := Read(f, tn, opt)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return c, nil
}
