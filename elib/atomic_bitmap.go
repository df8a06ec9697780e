// Copyright © 2023 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package elib is a collection of data structures: bitmaps.
package elib

import (
	"fmt"
	"math/bits"
	"sync/atomic"

	"github.com/bits-and-blooms/bitset"
)

const AtomicWordBits = 64

// AtomicBitmap is a fixed size bitmap whose bits may be set and unset
// concurrently without a lock. Every transition is a compare-and-swap of
// the word holding the bit so the returned old value is exact.
type AtomicBitmap struct {
	n     uint
	words []atomic.Uint64
}

// atomicBitmapIndex gives word index and mask for given bit index
func atomicBitmapIndex(x uint) (i uint, m uint64) {
	i = x / AtomicWordBits
	m = 1 << (x % AtomicWordBits)
	return
}

// NewAtomicBitmap returns a bitmap of n bits, all clear.
func NewAtomicBitmap(n uint) *AtomicBitmap {
	nw := (n + AtomicWordBits - 1) / AtomicWordBits
	return &AtomicBitmap{
		n:     n,
		words: make([]atomic.Uint64, nw),
	}
}

func (b *AtomicBitmap) Len() uint { return b.n }

// validMask is the mask of bits within word i that index [0, Len()).
func (b *AtomicBitmap) validMask(i uint) uint64 {
	if rem := b.n - i*AtomicWordBits; rem < AtomicWordBits {
		return 1<<rem - 1
	}
	return ^uint64(0)
}

// Get returns bit x; out of range bits are always zero.
func (b *AtomicBitmap) Get(x uint) bool {
	if x >= b.n {
		return false
	}
	i, m := atomicBitmapIndex(x)
	return b.words[i].Load()&m != 0
}

// Set sets bit x and returns its old value. If the bit was already set
// the word is left untouched. Bits at or beyond Len() can't be set and
// are reported as set.
func (b *AtomicBitmap) Set(x uint) (old bool) {
	if x >= b.n {
		return true
	}
	i, m := atomicBitmapIndex(x)
	w := &b.words[i]
	for {
		v := w.Load()
		if v&m != 0 {
			return true
		}
		if w.CompareAndSwap(v, v|m) {
			return false
		}
	}
}

// Unset clears bit x and returns its old value; out of range bits are
// ignored.
func (b *AtomicBitmap) Unset(x uint) (old bool) {
	if x >= b.n {
		return false
	}
	i, m := atomicBitmapIndex(x)
	w := &b.words[i]
	for {
		v := w.Load()
		if v&m == 0 {
			return false
		}
		if w.CompareAndSwap(v, v&^m) {
			return true
		}
	}
}

// SetFirstClear sets the lowest clear bit and returns its index.
// A candidate is only reported after its own compare-and-swap succeeds,
// so two callers never get the same bit.
func (b *AtomicBitmap) SetFirstClear() (x uint, ok bool) {
	for i := range b.words {
		w := &b.words[i]
		valid := b.validMask(uint(i))
		for {
			v := w.Load()
			free := ^v & valid
			if free == 0 {
				break
			}
			f := free & -free
			if w.CompareAndSwap(v, v|f) {
				x = uint(i)*AtomicWordBits +
					uint(bits.TrailingZeros64(f))
				return x, true
			}
		}
	}
	return 0, false
}

// SetMask sets all bits of m in word i, or none of them if any is already
// set. It returns the bits of m that were already set; zero on success.
// Bits beyond Len() count as set.
func (b *AtomicBitmap) SetMask(i uint, m uint64) (busy uint64) {
	if i >= uint(len(b.words)) {
		return m
	}
	if busy = m &^ b.validMask(i); busy != 0 {
		return
	}
	w := &b.words[i]
	for {
		v := w.Load()
		if busy = v & m; busy != 0 {
			return
		}
		if w.CompareAndSwap(v, v|m) {
			return 0
		}
	}
}

// UnsetMask clears all bits of m in word i; bits beyond Len() are ignored.
func (b *AtomicBitmap) UnsetMask(i uint, m uint64) {
	if i >= uint(len(b.words)) {
		return
	}
	m &= b.validMask(i)
	w := &b.words[i]
	for {
		v := w.Load()
		if w.CompareAndSwap(v, v&^m) {
			return
		}
	}
}

// BitSet returns a copy of the bitmap. Words are loaded one at a time so
// the copy is only consistent per word under concurrent updates.
func (b *AtomicBitmap) BitSet() *bitset.BitSet {
	s := bitset.New(b.n)
	for i := range b.words {
		v := b.words[i].Load()
		for v != 0 {
			f := v & -v
			s.Set(uint(i)*AtomicWordBits +
				uint(bits.TrailingZeros64(f)))
			v ^= f
		}
	}
	return s
}

func (b *AtomicBitmap) String() string {
	s := "{"
	set := b.BitSet()
	for x, ok := set.NextSet(0); ok; x, ok = set.NextSet(x + 1) {
		if len(s) > 1 {
			s += ", "
		}
		s += fmt.Sprintf("%d", x)
	}
	s += "}"
	return s
}
