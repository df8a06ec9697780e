// Copyright © 2023 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package help

import (
	"fmt"
	"io"
	"os"

	"github.com/platinasystems/dma/goes"
	"github.com/platinasystems/dma/lang"
)

type Command struct {
	Stdout io.Writer
	g      goes.ByName
}

func (*Command) String() string { return "help" }

func (*Command) Usage() string { return "help [COMMAND]" }

func (*Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "print command guidance",
	}
}

func (*Command) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	Print the usage and man page of COMMAND or, without COMMAND, the
	apropos of every command.`,
	}
}

func (c *Command) ByName(byName goes.ByName) { c.g = byName }

func (c *Command) Main(args ...string) error {
	w := c.Stdout
	if w == nil {
		w = os.Stdout
	}
	switch len(args) {
	case 0:
		for _, k := range c.g.Keys() {
			fmt.Fprintf(w, "%-24s %s\n", k, c.g[k].Apropos)
		}
		return nil
	case 1:
	default:
		return fmt.Errorf("%v: unexpected", args[1:])
	}
	g, found := c.g[args[0]]
	if !found {
		return fmt.Errorf("%s: command not found", args[0])
	}
	fmt.Fprint(w, g.Help())
	return nil
}
