// Copyright © 2023 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/platinasystems/dma"
	"github.com/platinasystems/dma/cmd/cli/internal/liner"
	"github.com/platinasystems/dma/cmd/cli/internal/notliner"
	"github.com/platinasystems/dma/goes"
	"github.com/platinasystems/dma/internal/shellutils"
	"github.com/platinasystems/dma/lang"
	"github.com/platinasystems/flags"
	"github.com/platinasystems/log"
	"github.com/platinasystems/url"
)

const DefaultPrompt = "goes-dma> "

type prompter interface {
	Prompt(string) (string, error)
	Close()
}

type Command struct {
	Prompt string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	g      goes.ByName
}

func (*Command) String() string { return "cli" }

func (*Command) Usage() string { return "cli [-x] [-f] [URL]" }

func (*Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "command line interpreter",
	}
}

func (*Command) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	Run commands from the URL script or, by default, standard input.
	The prompt and line editing are only enabled when standard input is
	a terminal.

		COMMAND [ARGS]...

	Arguments are separated by white space. A '#' beginning a word
	comments out the rest of the line.

QUOTATION
	Arguments may be single or double quoted, or have their spaces
	escaped with '\'.

		machine-dma channel_unclaim '3' "4"

	A line ending with '\' continues on the next.

ENVIRONMENT
	$NAME and ${NAME} are replaced by the variable's value except within
	single quotes. A line of only NAME=VALUE words sets the variables for
	later commands; NAME=VALUE words before a command only set them for
	that command.

LISTS
	Commands may be separated by ';'. With '&&' the next command only runs
	if this one succeeded, with '||' only if it failed.

		rp2-dma channel_claim 5 || rp2-dma claim_unused_channel

OPTIONS
	-x	print each command before running it
	-f	continue a script after a command fails

	A script always stops when a required DMA channel is unavailable.`,
	}
}

func (c *Command) ByName(byName goes.ByName) { c.g = byName }

func (c *Command) Main(args ...string) error {
	var (
		p           prompter
		interactive bool
	)
	flag, args := flags.New(args, "-x", "-f")
	switch len(args) {
	case 0:
		switch {
		case c.Stdin != nil:
			p = notliner.New(c.Stdin, nil)
		case isatty.IsTerminal(os.Stdin.Fd()):
			p = liner.New(c.g.Complete)
			interactive = true
		default:
			p = notliner.New(os.Stdin, nil)
		}
	case 1:
		script, err := url.Open(args[0])
		if err != nil {
			return err
		}
		defer script.Close()
		p = notliner.New(script, nil)
	default:
		return fmt.Errorf("%v: unexpected", args[1:])
	}
	defer p.Close()
	return c.run(p, interactive, flag.ByName["-x"], flag.ByName["-f"])
}

func (c *Command) run(p prompter, interactive, echo, force bool) error {
	stdout, stderr := c.Stdout, c.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	prompt := ""
	if interactive {
		prompt = c.Prompt
		if len(prompt) == 0 {
			prompt = DefaultPrompt
		}
	}
	var rerr error
	catline := func(prompt string) (string, error) {
		s, err := p.Prompt(prompt)
		if err != nil && err != io.EOF {
			rerr = err
		}
		return s, err
	}
	for {
		ls, err := shellutils.Parse(prompt, catline)
		switch {
		case err == io.EOF:
			if interactive {
				fmt.Fprintln(stdout)
			}
			return nil
		case rerr != nil:
			return rerr
		case err != nil:
			if !force && !interactive {
				return err
			}
			fmt.Fprintln(stderr, err)
			continue
		}
		err = c.runList(ls, stdout, stderr, echo, force || interactive)
		if err != nil {
			return err
		}
	}
}

// runList stops at the first failure unless keepGoing or the command is
// followed by '&&' or '||'. A missing required channel always stops.
func (c *Command) runList(ls *shellutils.List, stdout, stderr io.Writer,
	echo, keepGoing bool) error {
	var err error
	for i, cl := range ls.Cmds {
		if i > 0 {
			switch ls.Cmds[i-1].Term {
			case "&&":
				if err != nil {
					continue
				}
			case "||":
				if err == nil {
					continue
				}
			}
		}
		env, args := cl.Slice(os.Getenv)
		if len(args) == 0 {
			for k, v := range env {
				os.Setenv(k, v)
			}
			err = nil
			continue
		}
		if echo {
			fmt.Fprintln(stdout, "+", strings.Join(args, " "))
		}
		err = withEnv(env, func() error {
			return c.g.Main(args...)
		})
		if err == nil {
			continue
		}
		if dma.IsResourcePanic(err) {
			log.Print("err", args[0], ": ", err)
			return err
		}
		if !keepGoing && cl.Term != "&&" && cl.Term != "||" {
			return err
		}
		fmt.Fprintf(stderr, "%s: %v\n", args[0], err)
	}
	return nil
}

// withEnv runs f with env added to the process environment.
func withEnv(env map[string]string, f func() error) error {
	for k, v := range env {
		if old, found := os.LookupEnv(k); found {
			defer os.Setenv(k, old)
		} else {
			defer os.Unsetenv(k)
		}
		os.Setenv(k, v)
	}
	return f()
}
