// Copyright © 2023 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package notliner

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestPrompt(t *testing.T) {
	buf := new(bytes.Buffer)
	p := New(strings.NewReader("one\ntwo"), buf)
	defer p.Close()
	for _, want := range []string{"one", "two"} {
		if got, err := p.Prompt("> "); err != nil || got != want {
			t.Errorf("got %q, %v want %q", got, err, want)
		}
	}
	if _, err := p.Prompt("> "); err != io.EOF {
		t.Errorf("got %v want %v", err, io.EOF)
	}
	if got, want := buf.String(), "> > > "; got != want {
		t.Errorf("prompts: got %q want %q", got, want)
	}
	if _, err := New(strings.NewReader(""), nil).Prompt("> "); err != io.EOF {
		t.Errorf("got %v want %v", err, io.EOF)
	}
}
