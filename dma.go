// Copyright © 2023 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package dma tracks ownership of the numbered DMA channels shared by every
// driver and script of a firmware image.
//
// A channel is either free or claimed. Claims are recorded by index only;
// any caller that knows an index may release it. Every operation is a
// bounded, lock free transition of a single bitmap word so it may be used
// from any goroutine, including those servicing interrupts.
//
//	ch, err := dma.Channels().ClaimUnused(true)
//	if err != nil {
//		return err
//	}
//	defer dma.Channels().Unclaim(ch)
//
// The registry only manages channel numbers; programming the engine is up
// to the owner.
package dma

import (
	"fmt"
	"math/bits"
	"sync"

	"github.com/bits-and-blooms/bitset"
	"github.com/platinasystems/dma/elib"
)

// Registry of claimed channels.
type Registry struct {
	claimed *elib.AtomicBitmap
}

// New returns a registry of n free channels. It panics if n isn't
// positive.
func New(n int) *Registry {
	if n <= 0 {
		panic(fmt.Errorf("dma: %d channels", n))
	}
	return &Registry{claimed: elib.NewAtomicBitmap(uint(n))}
}

var channels struct {
	once sync.Once
	r    *Registry
}

// Channels returns the process wide registry of NumChannels channels.
func Channels() *Registry {
	channels.once.Do(func() {
		channels.r = New(NumChannels)
	})
	return channels.r
}

// Len returns the number of channels.
func (r *Registry) Len() int { return int(r.claimed.Len()) }

// Valid reports whether ch names a channel of r.
func (r *Registry) Valid(ch int) bool {
	return ch >= 0 && ch < r.Len()
}

// Claim channel ch.
func (r *Registry) Claim(ch int) error {
	if !r.Valid(ch) {
		return &Error{"claim", ch, ErrOutOfRange}
	}
	if r.claimed.Set(uint(ch)) {
		return &Error{"claim", ch, ErrAlreadyClaimed}
	}
	return nil
}

// Unclaim releases channel ch. Releasing a free channel is a no-op.
func (r *Registry) Unclaim(ch int) error {
	if !r.Valid(ch) {
		return &Error{"unclaim", ch, ErrOutOfRange}
	}
	r.claimed.Unset(uint(ch))
	return nil
}

// ClaimUnused claims the lowest free channel. When none is free it returns
// -1 with ErrResourcePanic if required, ErrExhausted otherwise.
func (r *Registry) ClaimUnused(required bool) (int, error) {
	if x, ok := r.claimed.SetFirstClear(); ok {
		return int(x), nil
	}
	if required {
		return -1, &Error{"claim unused", -1, ErrResourcePanic}
	}
	return -1, &Error{"claim unused", -1, ErrExhausted}
}

// IsClaimed reports whether channel ch is claimed.
func (r *Registry) IsClaimed(ch int) (bool, error) {
	if !r.Valid(ch) {
		return false, &Error{"is claimed", ch, ErrOutOfRange}
	}
	return r.claimed.Get(uint(ch)), nil
}

// maskChannel returns the lowest channel named by mask that is out of
// range, or -1.
func (r *Registry) maskChannel(mask uint64) int {
	if n := r.Len(); n < elib.AtomicWordBits && mask>>uint(n) != 0 {
		for ch := n; ch < elib.AtomicWordBits; ch++ {
			if mask&(1<<uint(ch)) != 0 {
				return ch
			}
		}
	}
	return -1
}

// ClaimMask claims every channel set in mask, or none of them.
// Only channels 0 through 63 may be named.
func (r *Registry) ClaimMask(mask uint64) error {
	if ch := r.maskChannel(mask); ch >= 0 {
		return &Error{"claim mask", ch, ErrOutOfRange}
	}
	if busy := r.claimed.SetMask(0, mask); busy != 0 {
		ch := bits.TrailingZeros64(busy)
		return &Error{"claim mask", ch, ErrAlreadyClaimed}
	}
	return nil
}

// UnclaimMask releases every channel set in mask.
func (r *Registry) UnclaimMask(mask uint64) error {
	if ch := r.maskChannel(mask); ch >= 0 {
		return &Error{"unclaim mask", ch, ErrOutOfRange}
	}
	r.claimed.UnsetMask(0, mask)
	return nil
}

// Claimed returns a copy of the set of claimed channels.
func (r *Registry) Claimed() *bitset.BitSet { return r.claimed.BitSet() }

func (r *Registry) String() string { return r.claimed.String() }
