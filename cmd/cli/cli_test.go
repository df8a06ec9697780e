// Copyright © 2023 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cli

import (
	"bytes"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/platinasystems/dma"
	"github.com/platinasystems/dma/goes"
)

type recorder struct {
	lines [][]string
	fail  map[string]error
}

func (*recorder) String() string { return "rec" }

func (r *recorder) Main(args ...string) error {
	if len(args) == 2 && args[0] == "getenv" {
		args = []string{os.Getenv(args[1])}
	}
	r.lines = append(r.lines, args)
	if len(args) > 0 {
		return r.fail[args[0]]
	}
	return nil
}

func newCli(script string, rec *recorder) (*Command, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	c := &Command{
		Stdin:  strings.NewReader(script),
		Stdout: stdout,
		Stderr: stderr,
	}
	goes.New(c, rec)
	return c, stdout, stderr
}

func TestScript(t *testing.T) {
	rec := new(recorder)
	c, stdout, _ := newCli(`
# comment

rec a b
  rec   c
`[1:], rec)
	if err := c.Main("-x"); err != nil {
		t.Fatal(err)
	}
	if want := [][]string{{"a", "b"}, {"c"}}; !reflect.DeepEqual(rec.lines, want) {
		t.Errorf("got %q want %q", rec.lines, want)
	}
	if got, want := stdout.String(), "+ rec a b\n+ rec c\n"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestForce(t *testing.T) {
	errBad := errors.New("bad")
	script := "rec bad\nrec good\n"

	rec := &recorder{fail: map[string]error{"bad": errBad}}
	c, _, _ := newCli(script, rec)
	if err := c.Main(); err != errBad {
		t.Errorf("got %v want %v", err, errBad)
	}
	if len(rec.lines) != 1 {
		t.Errorf("ran %d lines after error", len(rec.lines)-1)
	}

	rec = &recorder{fail: map[string]error{"bad": errBad}}
	c, _, stderr := newCli(script, rec)
	if err := c.Main("-f"); err != nil {
		t.Fatal(err)
	}
	if len(rec.lines) != 2 {
		t.Errorf("ran %d lines want 2", len(rec.lines))
	}
	if got, want := stderr.String(), "rec: bad\n"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestResourcePanicAlwaysStops(t *testing.T) {
	panicErr := &dma.Error{
		Op:      "claim unused",
		Channel: -1,
		Err:     dma.ErrResourcePanic,
	}
	rec := &recorder{fail: map[string]error{"need": panicErr}}
	c, _, _ := newCli("rec need\nrec next\n", rec)
	if err := c.Main("-f"); !dma.IsResourcePanic(err) {
		t.Errorf("got %v want %v", err, dma.ErrResourcePanic)
	}
	if len(rec.lines) != 1 {
		t.Errorf("ran %d lines after resource panic", len(rec.lines)-1)
	}
}

func TestScriptFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "cli")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	fn := filepath.Join(dir, "script")
	if err = ioutil.WriteFile(fn, []byte("rec from file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	rec := new(recorder)
	c, _, _ := newCli("", rec)
	if err = c.Main(fn); err != nil {
		t.Fatal(err)
	}
	if want := [][]string{{"from", "file"}}; !reflect.DeepEqual(rec.lines, want) {
		t.Errorf("got %q want %q", rec.lines, want)
	}
	if err = c.Main(filepath.Join(dir, "missing")); err == nil {
		t.Error("missing script: no error")
	}
}

func TestQuotes(t *testing.T) {
	rec := new(recorder)
	c, _, _ := newCli(`rec channel_claim "3" '4' five\ 5 "" # six
`, rec)
	if err := c.Main(); err != nil {
		t.Fatal(err)
	}
	want := [][]string{{"channel_claim", "3", "4", "five 5", ""}}
	if !reflect.DeepEqual(rec.lines, want) {
		t.Errorf("got %q want %q", rec.lines, want)
	}
}

func TestList(t *testing.T) {
	errBad := errors.New("bad")
	rec := &recorder{fail: map[string]error{"bad": errBad}}
	c, _, stderr := newCli(`
rec a; rec b
rec bad && rec skipped
rec bad || rec c
rec d || rec skipped
rec bad && rec skipped || rec e
`[1:], rec)
	if err := c.Main(); err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"a"}, {"b"},
		{"bad"},
		{"bad"}, {"c"},
		{"d"},
		{"bad"}, {"e"},
	}
	if !reflect.DeepEqual(rec.lines, want) {
		t.Errorf("got %q want %q", rec.lines, want)
	}
	if got, want := strings.Count(stderr.String(), "rec: bad\n"), 3; got != want {
		t.Errorf("reported %d failures want %d", got, want)
	}
}

func TestEnv(t *testing.T) {
	t.Setenv("DMA_CH", "")
	rec := new(recorder)
	c, _, _ := newCli(`
DMA_CH=3
rec $DMA_CH
DMA_CH=4 rec getenv DMA_CH
rec "${DMA_CH}" '$DMA_CH'
`[1:], rec)
	if err := c.Main(); err != nil {
		t.Fatal(err)
	}
	want := [][]string{{"3"}, {"4"}, {"3", "$DMA_CH"}}
	if !reflect.DeepEqual(rec.lines, want) {
		t.Errorf("got %q want %q", rec.lines, want)
	}
}

func TestSyntaxError(t *testing.T) {
	rec := new(recorder)
	c, _, _ := newCli("rec a | rec b\nrec c\n", rec)
	if err := c.Main(); err == nil {
		t.Error("pipe accepted")
	}
	if len(rec.lines) != 0 {
		t.Errorf("ran %q", rec.lines)
	}

	rec = new(recorder)
	c, _, stderr := newCli("rec 'open\n", rec)
	if err := c.Main("-f"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr.String(), "matching quote") {
		t.Errorf("got %q", stderr)
	}
}
