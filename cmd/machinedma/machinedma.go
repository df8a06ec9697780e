// Copyright © 2023 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package machinedma exposes the DMA channel registry in the machine
// namespace.
package machinedma

import (
	"github.com/platinasystems/dma/internal/binding"
	"github.com/platinasystems/dma/lang"
)

const Name = "machine-dma"

type Command struct {
	binding.DMA
}

func New(pub binding.Publisher) *Command {
	return &Command{binding.DMA{Name: Name, Publisher: pub}}
}

func (*Command) String() string { return Name }

func (*Command) Usage() string { return Name + " " + binding.Usage }

func (*Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "claim and release DMA channels",
	}
}

func (*Command) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	Claim, release and query the machine's DMA channels.

	channel_claim fails if the CHANNEL is already claimed.
	channel_unclaim releases every CHANNEL; releasing a free channel is
	not an error.
	claim_unused_channel prints the lowest free channel. When none is
	free, it prints -1 unless required, in which case it fails.

	CHANNEL is a decimal or 0x prefixed hexadecimal number.`,
	}
}
