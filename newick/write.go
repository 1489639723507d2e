// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package newick

import (
	"fmt"
	"io"
	"strings"

	"github.com/js-arias/phytree"
)

// WriteOptions control the writing of a tree.
// The zero value
// (or a nil pointer)
// writes branch lengths with the "%g" verb
// and support values as internal node labels.
type WriteOptions struct {
	// DistFormat is the format verb
	// used for branch lengths.
	// The default is "%g".
	DistFormat string

	// NoDists omits branch lengths.
	NoDists bool

	// InternalLabels selects the feature written
	// as the internal node label:
	// "support" (the default),
	// "name",
	// or "none".
	InternalLabels string

	// LabelFormat is the format verb
	// used for numeric internal node labels.
	// The default is "%g".
	LabelFormat string

	// Features lists node features
	// to be written as an NHX comment block.
	Features []string
}

func (o *WriteOptions) fill() WriteOptions {
	opt := WriteOptions{
		DistFormat:     "%g",
		InternalLabels: "support",
		LabelFormat:    "%g",
	}
	if o == nil {
		return opt
	}
	if o.DistFormat != "" {
		opt.DistFormat = o.DistFormat
	}
	opt.NoDists = o.NoDists
	if o.InternalLabels != "" {
		opt.InternalLabels = o.InternalLabels
	}
	if o.LabelFormat != "" {
		opt.LabelFormat = o.LabelFormat
	}
	opt.Features = o.Features
	return opt
}

// Write writes a tree as a Newick string.
func Write(w io.Writer, t *phytree.Tree, opt *WriteOptions) error {
	s, err := String(t, opt)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n", s); err != nil {
		return err
	}
	return nil
}

// String returns a tree as a Newick string,
// including the terminating semicolon.
func String(t *phytree.Tree, opt *WriteOptions) (string, error) {
	op := opt.fill()
	switch op.InternalLabels {
	case "support", "name", "none":
	default:
		return "", fmt.Errorf("newick: unknown internal label feature %q", op.InternalLabels)
	}

	var b strings.Builder
	if err := writeNode(&b, t.Root(), op, nil, true); err != nil {
		return "", err
	}
	b.WriteByte(';')
	return b.String(), nil
}

func writeNode(b *strings.Builder, n *phytree.Node, opt WriteOptions, translate map[string]string, isRoot bool) error {
	if !n.IsLeaf() {
		b.WriteByte('(')
		for i, c := range n.Children() {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeNode(b, c, opt, translate, false); err != nil {
				return err
			}
		}
		b.WriteByte(')')
		switch opt.InternalLabels {
		case "support":
			if n.HasSupport() {
				fmt.Fprintf(b, opt.LabelFormat, n.Support())
			}
		case "name":
			b.WriteString(cleanName(n.Name()))
		}
	} else {
		name := cleanName(n.Name())
		if tk, ok := translate[name]; ok {
			name = tk
		}
		b.WriteString(name)
	}

	if !opt.NoDists && !isRoot {
		b.WriteByte(':')
		fmt.Fprintf(b, opt.DistFormat, n.Dist())
	}

	var feats []string
	for _, k := range opt.Features {
		v, ok := n.Feature(k)
		if !ok {
			continue
		}
		feats = append(feats, k+"="+v)
	}
	if len(feats) > 0 {
		b.WriteString("[&&NHX:")
		b.WriteString(strings.Join(feats, ":"))
		b.WriteByte(']')
	}
	return nil
}
