// Copyright © 2023 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package goes dispatches command lines to the commands plotted on a
// ByName map.
package goes

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/platinasystems/dma/lang"
	"github.com/platinasystems/flags"
)

// Stdout receives the -usage, -apropos, -man and -help text.
var Stdout io.Writer = os.Stdout

type ByName map[string]*Goes

type Goes struct {
	Name     string
	Main     func(...string) error
	Complete func(...string) []string
	Usage    string
	Apropos  lang.Alt
	Man      lang.Alt
}

type aproposer interface {
	Apropos() lang.Alt
}

type byNamer interface {
	ByName(ByName)
}

type completer interface {
	Complete(...string) []string
}

type mainer interface {
	Main(...string) error
}

type manner interface {
	Man() lang.Alt
}

type usager interface {
	Usage() string
}

// New returns a map of the given commands.
func New(cmds ...interface{}) ByName {
	byName := make(ByName)
	byName.Plot(cmds...)
	return byName
}

// Plot commands on map. Each must have String and Main methods.
func (byName ByName) Plot(cmds ...interface{}) {
	for _, v := range cmds {
		g := new(Goes)
		if method, found := v.(fmt.Stringer); found {
			g.Name = method.String()
		} else {
			panic(fmt.Errorf("%T: doesn't have String method", v))
		}
		if _, found := byName[g.Name]; found {
			panic(fmt.Errorf("%s: duplicate", g.Name))
		}
		if method, found := v.(mainer); found {
			g.Main = method.Main
		} else {
			panic(fmt.Errorf("%s: doesn't have Main method",
				g.Name))
		}
		if method, found := v.(byNamer); found {
			method.ByName(byName)
		}
		if method, found := v.(completer); found {
			g.Complete = method.Complete
		}
		if method, found := v.(usager); found {
			g.Usage = method.Usage()
		}
		if method, found := v.(aproposer); found {
			g.Apropos = method.Apropos()
		}
		if method, found := v.(manner); found {
			g.Man = method.Man()
		}
		byName[g.Name] = g
	}
}

// Keys returns the sorted command names.
func (byName ByName) Keys() []string {
	keys := make([]string, 0, len(byName))
	for k := range byName {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Complete the command name, or its arguments if it has a completer.
func (byName ByName) Complete(args ...string) (ss []string) {
	switch len(args) {
	case 0:
		return byName.Keys()
	case 1:
		for _, k := range byName.Keys() {
			if strings.HasPrefix(k, args[0]) {
				ss = append(ss, k)
			}
		}
		return
	}
	if g, found := byName[args[0]]; found && g.Complete != nil {
		ss = g.Complete(args[1:]...)
	}
	return
}

// Main runs the args[0] command with the remaining args.
//
// If the args have "-h", "-help", or "--help" this prints the command's
// usage and man page instead. Similarly for "-apropos", "-man", and
// "-usage".
func (byName ByName) Main(args ...string) error {
	if len(args) == 0 {
		return fmt.Errorf("COMMAND: missing")
	}
	name := args[0]
	g := byName[name]
	if g == nil {
		return fmt.Errorf("%s: command not found", name)
	}
	flag, args := flags.New(args[1:],
		[]string{"-help", "-h", "--help"},
		[]string{"-apropos", "--apropos"},
		[]string{"-man", "--man"},
		[]string{"-usage", "--usage"})
	switch {
	case flag.ByName["-help"]:
		fmt.Fprint(Stdout, g.Help())
	case flag.ByName["-apropos"]:
		fmt.Fprintln(Stdout, g.Apropos)
	case flag.ByName["-man"]:
		fmt.Fprintln(Stdout, strings.TrimPrefix(g.Man.String(), "\n"))
	case flag.ByName["-usage"]:
		fmt.Fprint(Stdout, "usage:\t", g.Usage, "\n")
	default:
		return g.Main(args...)
	}
	return nil
}

// Help returns the usage and man page of the command.
func (g *Goes) Help() string {
	s := fmt.Sprint("usage:\t", g.Usage, "\n")
	if man := g.Man.String(); len(man) > 0 {
		s += man + "\n"
	}
	return s
}
