// Copyright © 2023 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package rp2dma exposes the DMA channel registry in the rp2 port
// namespace. It shares its channels with machinedma.
package rp2dma

import (
	"github.com/platinasystems/dma/internal/binding"
	"github.com/platinasystems/dma/lang"
)

const Name = "rp2-dma"

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
		lang.EnUS: "claim and release RP2 DMA channels",
	}
}

func (*Command) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	Same as machine-dma; both commands claim from one set of channels.`,
	}
}
