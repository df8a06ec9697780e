// Copyright © 2023 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package notliner prompts for lines of scripts and of terminals that liner
// doesn't support.
package notliner

import (
	"bufio"
	"fmt"
	"io"
)

type Prompter struct {
	scanner *bufio.Scanner
	w       io.Writer
}

// New returns a Prompter reading r. The prompt is written to w unless nil.
func New(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{bufio.NewScanner(r), w}
}

func (p *Prompter) Close() {}

func (p *Prompter) Prompt(prompt string) (string, error) {
	if p.w != nil {
		fmt.Fprint(p.w, prompt)
	}
	if p.scanner.Scan() {
		return p.scanner.Text(), nil
	}
	err := p.scanner.Err()
	if err == nil {
		err = io.EOF
	}
	return "", err
}
