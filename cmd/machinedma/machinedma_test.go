// Copyright © 2023 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package machinedma_test

import (
	"bytes"
	"testing"

	"github.com/platinasystems/dma"
	"github.com/platinasystems/dma/cmd/machinedma"
	"github.com/platinasystems/dma/cmd/rp2dma"
	"github.com/platinasystems/dma/goes"
)

func TestNamespaces(t *testing.T) {
	r := dma.New(4)
	buf := new(bytes.Buffer)
	machine := machinedma.New(nil)
	machine.Registry, machine.Stdout = r, buf
	rp2 := rp2dma.New(nil)
	rp2.Registry, rp2.Stdout = r, buf
	byName := goes.New(machine, rp2)
	if got, want := byName.Keys(), []string{"machine-dma", "rp2-dma"}; len(got) != 2 ||
		got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %q want %q", got, want)
	}
	if err := byName.Main("machine-dma", "claim_unused_channel"); err != nil {
		t.Fatal(err)
	}
	if err := byName.Main("rp2-dma", "claim_unused_channel"); err != nil {
		t.Fatal(err)
	}
	if err := byName.Main("rp2-dma", "channel_claim", "0"); !dma.IsAlreadyClaimed(err) {
		t.Errorf("got %v want %v", err, dma.ErrAlreadyClaimed)
	}
	if got, want := buf.String(), "0\n1\n"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestUsage(t *testing.T) {
	byName := goes.New(machinedma.New(nil))
	g := byName[machinedma.Name]
	if g.Usage[:len(machinedma.Name)] != machinedma.Name {
		t.Errorf("usage doesn't begin with name: %q", g.Usage)
	}
	if len(g.Apropos.String()) == 0 || len(g.Man.String()) == 0 {
		t.Error("missing apropos or man")
	}
	if g.Complete == nil {
		t.Error("missing completer")
	}
}
