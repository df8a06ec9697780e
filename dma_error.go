// Copyright © 2023 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package dma

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned for a channel outside [0, Len()).
	ErrOutOfRange = errors.New("invalid DMA channel number")
	// ErrAlreadyClaimed is returned when claiming an owned channel.
	ErrAlreadyClaimed = errors.New("DMA channel already claimed")
	// ErrExhausted is returned by ClaimUnused(false) when every channel
	// is owned.
	ErrExhausted = errors.New("no DMA channel available")
	// ErrResourcePanic is returned by ClaimUnused(true) when every
	// channel is owned. The caller declared it can't proceed without a
	// channel; halting is its decision, not the registry's.
	ErrResourcePanic = errors.New("required DMA channel unavailable")
)

// Make sure *Error satisfies error interface.
var _ error = (*Error)(nil)

// Error records the failed operation and channel. Channel is -1 for
// operations that don't name one.
type Error struct {
	Op      string
	Channel int
	Err     error
}

func (err *Error) Error() string {
	if err.Channel < 0 {
		return fmt.Sprintf("dma: %s: %v", err.Op, err.Err)
	}
	return fmt.Sprintf("dma: %s %d: %v", err.Op, err.Channel, err.Err)
}

func (err *Error) Unwrap() error { return err.Err }

func IsOutOfRange(err error) bool     { return errors.Is(err, ErrOutOfRange) }
func IsAlreadyClaimed(err error) bool { return errors.Is(err, ErrAlreadyClaimed) }
func IsExhausted(err error) bool      { return errors.Is(err, ErrExhausted) }
func IsResourcePanic(err error) bool  { return errors.Is(err, ErrResourcePanic) }
