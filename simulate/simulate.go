// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package simulate implements random tree generators,
// useful to build null distributions
// and test fixtures.
//
// All generators take an explicit seed,
// so a simulation can be reproduced exactly.
package simulate

import (
	"fmt"

	"github.com/js-arias/phytree"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Yule returns a pure-birth tree
// with the given number of terminals,
// in which each lineage splits
// at the given instantaneous rate.
func Yule(name string, terms int, birth float64, seed uint64) (*phytree.Tree, error) {
	if terms < 2 {
		return nil, fmt.Errorf("simulate: got %d terminals, want 2 or more", terms)
	}
	if birth <= 0 {
		return nil, fmt.Errorf("simulate: invalid birth rate %g", birth)
	}

	src := rand.NewSource(seed)
	rng := rand.New(src)

	root := phytree.NewNode("", 0)
	active := make([]*phytree.Node, 0, terms)
	for range 2 {
		c := phytree.NewNode("", 0)
		if err := root.AddChild(c); err != nil {
			return nil, err
		}
		active = append(active, c)
	}

	for len(active) < terms {
		w := distuv.Exponential{
			Rate: birth * float64(len(active)),
			Src:  src,
		}.Rand()
		for _, n := range active {
			n.SetDist(n.Dist() + w)
		}

		i := rng.Intn(len(active))
		sp := active[i]
		for range 2 {
			c := phytree.NewNode("", 0)
			if err := sp.AddChild(c); err != nil {
				return nil, err
			}
			active = append(active, c)
		}
		active[i] = active[len(active)-1]
		active = active[:len(active)-1]
	}

	// the time to the next,
	// unobserved,
	// speciation
	w := distuv.Exponential{
		Rate: birth * float64(len(active)),
		Src:  src,
	}.Rand()
	for i, n := range active {
		n.SetDist(n.Dist() + w)
		n.SetName(fmt.Sprintf("sp%d", i+1))
	}

	return phytree.New(name, root)
}

// Coalescent returns an ultrametric tree
// with the given number of terminals,
// built by the standard neutral coalescent
// with population parameter theta.
func Coalescent(name string, terms int, theta float64, seed uint64) (*phytree.Tree, error) {
	if terms < 2 {
		return nil, fmt.Errorf("simulate: got %d terminals, want 2 or more", terms)
	}
	if theta <= 0 {
		return nil, fmt.Errorf("simulate: invalid theta %g", theta)
	}

	src := rand.NewSource(seed)
	rng := rand.New(src)

	active := make([]*phytree.Node, 0, terms)
	for i := range terms {
		active = append(active, phytree.NewNode(fmt.Sprintf("sp%d", i+1), 0))
	}

	for len(active) > 1 {
		k := float64(len(active))
		w := distuv.Exponential{
			Rate: k * (k - 1) / (2 * theta),
			Src:  src,
		}.Rand()
		for _, n := range active {
			n.SetDist(n.Dist() + w)
		}

		i := rng.Intn(len(active))
		a := active[i]
		active[i] = active[len(active)-1]
		active = active[:len(active)-1]
		j := rng.Intn(len(active))
		b := active[j]

		p := phytree.NewNode("", 0)
		if err := p.AddChild(a); err != nil {
			return nil, err
		}
		if err := p.AddChild(b); err != nil {
			return nil, err
		}
		active[j] = p
	}

	return phytree.New(name, active[0])
}

// Uniform returns a random binary topology
// with the given number of terminals
// and every branch length set to one,
// picking uniformly among lineage pairs.
func Uniform(name string, terms int, seed uint64) (*phytree.Tree, error) {
	if terms < 2 {
		return nil, fmt.Errorf("simulate: got %d terminals, want 2 or more", terms)
	}

	rng := rand.New(rand.NewSource(seed))
	active := make([]*phytree.Node, 0, terms)
	for i := range terms {
		active = append(active, phytree.NewNode(fmt.Sprintf("sp%d", i+1), 1))
	}

	for len(active) > 1 {
		i := rng.Intn(len(active))
		a := active[i]
		active[i] = active[len(active)-1]
		active = active[:len(active)-1]
		j := rng.Intn(len(active))
		b := active[j]

		p := phytree.NewNode("", 1)
		if err := p.AddChild(a); err != nil {
			return nil, err
		}
		if err := p.AddChild(b); err != nil {
			return nil, err
		}
		active[j] = p
	}

	root := active[0]
	root.SetDist(0)
	return phytree.New(name, root)
}
