// Copyright © 2023 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package binding provides the DMA channel subcommands shared by every
// command namespace that exposes them.
package binding

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/fishy/errbatch"
	"github.com/platinasystems/dma"
	"github.com/platinasystems/flags"
	"github.com/platinasystems/log"
)

const Usage = `SUBCOMMAND [ARGS]...

	channel_claim CHANNEL
	channel_unclaim CHANNEL...
	claim_unused_channel [-required | true | false]
	is_claimed CHANNEL
	channels`

// Publisher is notified of the claimed set after every change.
type Publisher interface {
	Publish(claimed *bitset.BitSet, n int) error
}

// DMA runs the subcommands on Registry, or on dma.Channels() if nil.
type DMA struct {
	Name      string
	Registry  *dma.Registry
	Publisher Publisher
	Stdout    io.Writer
}

func (d *DMA) registry() *dma.Registry {
	if d.Registry == nil {
		return dma.Channels()
	}
	return d.Registry
}

func (d *DMA) stdout() io.Writer {
	if d.Stdout == nil {
		return os.Stdout
	}
	return d.Stdout
}

// Complete subcommand names.
func (d *DMA) Complete(args ...string) (c []string) {
	if len(args) > 1 {
		return
	}
	prefix := ""
	if len(args) == 1 {
		prefix = args[0]
	}
	for _, s := range []string{
		"channel_claim",
		"channel_unclaim",
		"channels",
		"claim_unused_channel",
		"is_claimed",
	} {
		if strings.HasPrefix(s, prefix) {
			c = append(c, s)
		}
	}
	return
}

func (d *DMA) Main(args ...string) error {
	if len(args) == 0 {
		return fmt.Errorf("SUBCOMMAND: missing")
	}
	switch args[0] {
	case "channel_claim":
		return d.channelClaim(args[1:]...)
	case "channel_unclaim":
		return d.channelUnclaim(args[1:]...)
	case "claim_unused_channel":
		return d.claimUnusedChannel(args[1:]...)
	case "is_claimed":
		return d.isClaimed(args[1:]...)
	case "channels":
		if len(args) > 1 {
			return fmt.Errorf("%v: unexpected", args[1:])
		}
		fmt.Fprintln(d.stdout(), d.registry())
		return nil
	}
	return fmt.Errorf("%s: unknown subcommand", args[0])
}

// channel parses a decimal or 0x prefixed hex channel number.
func channel(s string) (int, error) {
	i, err := strconv.ParseInt(s, 0, 0)
	if err != nil {
		return 0, fmt.Errorf("%s: %v", s, err)
	}
	return int(i), nil
}

func oneChannel(args []string) (int, error) {
	switch len(args) {
	case 0:
		return 0, fmt.Errorf("CHANNEL: missing")
	case 1:
	default:
		return 0, fmt.Errorf("%v: unexpected", args[1:])
	}
	return channel(args[0])
}

func (d *DMA) channelClaim(args ...string) error {
	ch, err := oneChannel(args)
	if err != nil {
		return err
	}
	if err = d.registry().Claim(ch); err != nil {
		return err
	}
	log.Printf("%s: claimed channel %d", d.Name, ch)
	d.publish()
	return nil
}

// channelUnclaim releases every listed channel, or none if any argument
// is invalid.
func (d *DMA) channelUnclaim(args ...string) error {
	if len(args) == 0 {
		return fmt.Errorf("CHANNEL: missing")
	}
	r := d.registry()
	chs := make([]int, 0, len(args))
	var batch errbatch.ErrBatch
	for _, s := range args {
		ch, err := channel(s)
		if err == nil && !r.Valid(ch) {
			err = &dma.Error{Op: "unclaim", Channel: ch,
				Err: dma.ErrOutOfRange}
		}
		batch.Add(err)
		chs = append(chs, ch)
	}
	if err := batch.Compile(); err != nil {
		if len(batch.GetErrors()) > 1 {
			return unclaimErrors{&batch}
		}
		return err
	}
	for _, ch := range chs {
		// range was checked above
		r.Unclaim(ch)
		log.Printf("%s: unclaimed channel %d", d.Name, ch)
	}
	d.publish()
	return nil
}

// unclaimErrors lets errors.Is and errors.As see each error of the batch.
type unclaimErrors struct {
	*errbatch.ErrBatch
}

func (e unclaimErrors) Unwrap() []error { return e.GetErrors() }

func (d *DMA) claimUnusedChannel(args ...string) error {
	flag, args := flags.New(args, []string{"-required", "--required"})
	required := flag.ByName["-required"]
	switch len(args) {
	case 0:
	case 1:
		b, err := strconv.ParseBool(args[0])
		if err != nil {
			return fmt.Errorf("%s: %v", args[0], err)
		}
		required = required || b
	default:
		return fmt.Errorf("%v: unexpected", args[1:])
	}
	ch, err := d.registry().ClaimUnused(required)
	if dma.IsExhausted(err) {
		// not required, so exhaustion is reported as -1
		fmt.Fprintln(d.stdout(), ch)
		return nil
	}
	if err != nil {
		return err
	}
	log.Printf("%s: claimed channel %d", d.Name, ch)
	d.publish()
	fmt.Fprintln(d.stdout(), ch)
	return nil
}

func (d *DMA) isClaimed(args ...string) error {
	ch, err := oneChannel(args)
	if err != nil {
		return err
	}
	claimed, err := d.registry().IsClaimed(ch)
	if err != nil {
		return err
	}
	fmt.Fprintln(d.stdout(), claimed)
	return nil
}

// publish failures don't undo the change; they are only logged.
func (d *DMA) publish() {
	if d.Publisher == nil {
		return
	}
	r := d.registry()
	if err := d.Publisher.Publish(r.Claimed(), r.Len()); err != nil {
		log.Printf("warn", "%s: publish: %v", d.Name, err)
	}
}
