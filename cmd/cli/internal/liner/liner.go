// Copyright © 2023 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package liner is a wrapper to the line editor, github.com/platinasystems/liner,
// with history and completion of goes commands.
package liner

import (
	"os"
	"strings"

	"github.com/platinasystems/dma/cmd/cli/internal/notliner"
	"github.com/platinasystems/liner"
)

type Liner struct {
	fallback *notliner.Prompter
	complete func(...string) []string
	s        *liner.State
}

// New returns a terminal line editor that completes with complete.
func New(complete func(...string) []string) *Liner {
	l := &Liner{complete: complete}
	l.s = liner.NewLiner()
	l.s.SetCompleter(l.completeLine)
	return l
}

func (l *Liner) Close() {
	l.s.Close()
}

// completeLine returns the lines completing the last field of line.
func (l *Liner) completeLine(line string) (lines []string) {
	if l.complete == nil {
		return
	}
	args := strings.Fields(line)
	head := line
	if len(args) == 0 || strings.HasSuffix(line, " ") {
		args = append(args, "")
	} else {
		head = line[:strings.LastIndex(line, args[len(args)-1])]
	}
	for _, s := range l.complete(args...) {
		lines = append(lines, head+s)
	}
	if len(lines) == 1 {
		lines[0] += " "
	}
	return
}

func (l *Liner) Prompt(prompt string) (string, error) {
	if l.fallback != nil {
		return l.fallback.Prompt(prompt)
	}
	line, err := l.s.Prompt(prompt)
	if err == nil {
		if len(strings.TrimSpace(line)) > 0 {
			l.s.AppendHistory(line)
		}
	} else if err == liner.ErrNotTerminalOutput {
		l.fallback = notliner.New(os.Stdin, os.Stdout)
		line, err = l.fallback.Prompt(prompt)
	}
	return line, err
}
