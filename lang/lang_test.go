// Copyright © 2023 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package lang

import "testing"

var claimed = Alt{
	EnUS: "claimed",
	FrFR: "réservé",
	DeDE: "belegt",
}

func Test(t *testing.T) {
	defer func() { Lang = "" }()
	for lang, expect := range claimed {
		Lang = lang
		if s := claimed.String(); s != expect {
			t.Fatalf("%q != %q", s, expect)
		}
	}
	Lang = "xx_XX.UTF-8"
	if s := claimed.String(); s != "claimed" {
		t.Fatalf("fallback: %q", s)
	}
	if s := (Alt{}).String(); s != "" {
		t.Fatalf("empty: %q", s)
	}
}
