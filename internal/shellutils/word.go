// Copyright © 2023 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package shellutils

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const envStop = "|&;()<>{}'\"$/"

// Word is a run of Tokens that render to a single argument.
type Word struct {
	Tokens []Token
}

func (w *Word) add(s string, t Tokentype) {
	w.Tokens = append(w.Tokens, Token{V: s, T: t})
}

// addLiteral appends to the last token if it is also literal, since most
// literals are added rune by rune.
func (w *Word) addLiteral(s string) {
	if n := len(w.Tokens); n > 0 && w.Tokens[n-1].T == TokenLiteral {
		w.Tokens[n-1].V += s
		return
	}
	w.add(s, TokenLiteral)
}

// parseEnv adds the variable named at the start of s, either NAME or
// {NAME}, and returns the rest of s.
func (w *Word) parseEnv(s string) (string, error) {
	name := ""
	if s[0] == '{' {
		s = s[1:]
		for len(s) > 0 {
			r, wid := utf8.DecodeRuneInString(s)
			s = s[wid:]
			if r == '}' {
				w.add(name, TokenEnvget)
				return s, nil
			}
			if unicode.IsSpace(r) || strings.ContainsRune(envStop, r) {
				return "", fmt.Errorf("unexpected `%c'", r)
			}
			name += string(r)
		}
		return "", errors.New("unexpected end of line")
	}
	for len(s) > 0 {
		r, wid := utf8.DecodeRuneInString(s)
		if unicode.IsSpace(r) || strings.ContainsRune(envStop, r) {
			break
		}
		s = s[wid:]
		name += string(r)
	}
	if len(name) == 0 {
		w.addLiteral("$")
	} else {
		w.add(name, TokenEnvget)
	}
	return s, nil
}

func (w *Word) String() string {
	s := ""
	for _, t := range w.Tokens {
		s += t.V
	}
	return s
}
