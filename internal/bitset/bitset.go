// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package bitset implements fixed-size bitsets
// used to store sets of terminals
// during partition and consensus calculations.
package bitset

import (
	"encoding/binary"
	"math/bits"
)

// the word size of a bit set
const wordSize = 64

// log2WordSize is lg(wordSize)
const log2WordSize = 6

// A BitSet is a fixed-size set of bits.
type BitSet struct {
	set  []uint64
	size int
}

// New creates a new BitSet able to hold
// the given number of bits.
func New(size int) *BitSet {
	return &BitSet{
		set:  make([]uint64, wordsNeeded(size)),
		size: size,
	}
}

// wordsNeeded calculates the number of words needed for i bits.
func wordsNeeded(i int) int {
	return (i + (wordSize - 1)) >> log2WordSize
}

// Size returns the number of bits the set can hold.
func (b *BitSet) Size() int {
	return b.size
}

// Set sets bit i to 1.
// It panics if i is out of range.
func (b *BitSet) Set(i int) {
	if i < 0 || i >= b.size {
		panic("bitset: index out of range")
	}
	b.set[i>>log2WordSize] |= 1 << (i & (wordSize - 1))
}

// Test reports whether bit i is set.
func (b *BitSet) Test(i int) bool {
	if i < 0 || i >= b.size {
		return false
	}
	return b.set[i>>log2WordSize]&(1<<(i&(wordSize-1))) != 0
}

// Count returns the number of set bits.
func (b *BitSet) Count() int {
	c := 0
	for _, w := range b.set {
		c += bits.OnesCount64(w)
	}
	return c
}

// NextSet returns the next set bit
// from the given index,
// including possibly that index,
// and false if there is no more set bit.
//
//	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) { ... }
func (b *BitSet) NextSet(i int) (int, bool) {
	if i < 0 {
		i = 0
	}
	x := i >> log2WordSize
	if x >= len(b.set) {
		return 0, false
	}
	if w := b.set[x] >> (i & (wordSize - 1)); w != 0 {
		return i + bits.TrailingZeros64(w), true
	}
	for x++; x < len(b.set); x++ {
		if b.set[x] != 0 {
			return x<<log2WordSize + bits.TrailingZeros64(b.set[x]), true
		}
	}
	return 0, false
}

// InPlaceUnion adds all bits of x to b.
func (b *BitSet) InPlaceUnion(x *BitSet) {
	for i := range b.set {
		b.set[i] |= x.set[i]
	}
}

// Complement stores in b the complement of x
// over the size of the set.
func (b *BitSet) Complement(x *BitSet) {
	for i := range b.set {
		b.set[i] = ^x.set[i]
	}
	// clear the bits beyond the set size
	if r := b.size & (wordSize - 1); r != 0 {
		b.set[len(b.set)-1] &= (1 << r) - 1
	}
}

// Intersects reports whether b and x
// have at least one common set bit.
func (b *BitSet) Intersects(x *BitSet) bool {
	for i, w := range b.set {
		if w&x.set[i] != 0 {
			return true
		}
	}
	return false
}

// IsSubset reports whether every set bit of b
// is also set in x.
func (b *BitSet) IsSubset(x *BitSet) bool {
	for i, w := range b.set {
		if w&^x.set[i] != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether b and x
// have exactly the same bits set.
func (b *BitSet) Equal(x *BitSet) bool {
	if b.size != x.size {
		return false
	}
	for i, w := range b.set {
		if w != x.set[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the set.
func (b *BitSet) Clone() *BitSet {
	nb := New(b.size)
	copy(nb.set, b.set)
	return nb
}

// Key returns the content of the set
// as a string usable as a map key.
func (b *BitSet) Key() string {
	buf := make([]byte, 0, len(b.set)*8)
	for _, w := range b.set {
		buf = binary.LittleEndian.AppendUint64(buf, w)
	}
	return string(buf)
}
