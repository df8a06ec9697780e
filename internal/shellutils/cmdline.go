// Copyright © 2023 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package shellutils

// Cmdline is the words of one command and the list operator that ended it:
// ";", "&&", "||", or empty at the end of input.
type Cmdline struct {
	Words []Word
	Term  string
}

func (c *Cmdline) add(w *Word) {
	c.Words = append(c.Words, *w)
	*w = Word{}
}

// Slice renders the command line with getenv substitutions. Leading
// NAME=VALUE words are returned in env, the rest in args.
func (c *Cmdline) Slice(getenv func(string) string) (env map[string]string, args []string) {
	env = make(map[string]string)
	for _, w := range c.Words {
		s := ""
		eq := -1
		for _, t := range w.Tokens {
			switch t.T {
			case TokenEnvget:
				s += getenv(t.V)
			case TokenEnvset:
				if eq < 0 {
					eq = len(s)
				}
				s += t.V
			default:
				s += t.V
			}
		}
		if len(args) == 0 && eq > 0 {
			env[s[:eq]] = s[eq+1:]
		} else {
			args = append(args, s)
		}
	}
	return
}

// List is the command lines of one input, in order.
type List struct {
	Cmds []Cmdline
}

func (ls *List) add(c *Cmdline) {
	ls.Cmds = append(ls.Cmds, *c)
	*c = Cmdline{}
}
