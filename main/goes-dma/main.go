// Copyright © 2023 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// This is a goes machine that arbitrates the DMA channels of a firmware
// image among its commands.
//
//	goes-dma [-redis ADDR [-hash NAME]] [COMMAND [ARGS]... | [-x] [-f] SCRIPT]
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/platinasystems/dma"
	"github.com/platinasystems/dma/cmd/cli"
	"github.com/platinasystems/dma/cmd/help"
	"github.com/platinasystems/dma/cmd/machinedma"
	"github.com/platinasystems/dma/cmd/rp2dma"
	"github.com/platinasystems/dma/goes"
	"github.com/platinasystems/dma/internal/binding"
	"github.com/platinasystems/dma/redis"
	"github.com/platinasystems/parms"
)

type Config struct {
	Registry  *dma.Registry
	Publisher binding.Publisher
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
}

// Goes returns the machine's commands; all of them share one registry.
func Goes(cfg Config) goes.ByName {
	if cfg.Registry == nil {
		cfg.Registry = dma.Channels()
	}
	machine := machinedma.New(cfg.Publisher)
	machine.Registry = cfg.Registry
	machine.Stdout = cfg.Stdout
	rp2 := rp2dma.New(cfg.Publisher)
	rp2.Registry = cfg.Registry
	rp2.Stdout = cfg.Stdout
	return goes.New(
		&cli.Command{
			Stdin:  cfg.Stdin,
			Stdout: cfg.Stdout,
			Stderr: cfg.Stderr,
		},
		&help.Command{Stdout: cfg.Stdout},
		machine,
		rp2,
	)
}

func main() {
	os.Exit(Main(os.Args[1:]...))
}

// Main returns the process exit status.
func Main(args ...string) int {
	parm, args := parms.New(args, "-redis", "-hash")
	var cfg Config
	if addr := parm.ByName["-redis"]; len(addr) > 0 {
		pub := redis.New(redis.Dial(addr), parm.ByName["-hash"])
		defer pub.Close()
		cfg.Publisher = pub
	}
	byName := Goes(cfg)
	if len(args) == 0 {
		args = []string{"cli"}
	} else if _, found := byName[args[0]]; !found {
		args = append([]string{"cli"}, args...)
	}
	if err := byName.Main(args...); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", filepath.Base(os.Args[0]), err)
		return 1
	}
	return 0
}
