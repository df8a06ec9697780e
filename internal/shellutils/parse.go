// Copyright © 2023 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package shellutils

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

const MorePrompt = "> "

var (
	ErrMissingEndQuote = errors.New("unexpected EOF while looking for matching quote")
	ErrMissingCommand  = errors.New("unexpected end of line after list operator")
)

// Parse reads a line with catline(prompt), and more with
// catline(MorePrompt) while a quote is open or the line ends with a
// backslash, and returns its command lines.
//
// Words are separated by unquoted white space; a '#' beginning a word
// comments out the rest of the line. Single quotes preserve everything up
// to the next single quote. Within double quotes, $NAME and ${NAME} are
// substituted and a backslash escapes '$', '"' and '\'. Commands are
// separated by ";", "&&" and "||". Pipes, redirection, and background
// commands aren't supported.
func Parse(prompt string, catline func(string) (string, error)) (*List, error) {
	s, err := catline(prompt)
	if err != nil {
		return nil, err
	}
	more := func() error {
		s, err = catline(MorePrompt)
		if err == io.EOF {
			return ErrMissingEndQuote
		}
		return err
	}
	ls := List{}
	c := Cmdline{}
	w := Word{}
	inWS := true
	endWord := func() {
		if !inWS {
			c.add(&w)
			inWS = true
		}
	}
	endCmd := func(term string) error {
		endWord()
		if len(c.Words) == 0 {
			return fmt.Errorf("unexpected `%s'", term)
		}
		c.Term = term
		ls.add(&c)
		return nil
	}
processRune:
	for len(s) > 0 {
		r, wid := utf8.DecodeRuneInString(s)
		s = s[wid:]
		switch {
		case unicode.IsSpace(r):
			endWord()
			continue
		case r == '#' && inWS:
			break processRune
		case r == ';':
			if err = endCmd(";"); err != nil {
				return nil, err
			}
			continue
		case r == '&' || r == '|':
			op := string(r)
			if len(s) > 0 && rune(s[0]) == r {
				s = s[1:]
				op += op
			}
			if op == "&" || op == "|" {
				return nil, fmt.Errorf("`%s': unsupported", op)
			}
			if err = endCmd(op); err != nil {
				return nil, err
			}
			continue
		case strings.ContainsRune("()<>", r):
			return nil, fmt.Errorf("`%c': unsupported", r)
		}
		inWS = false
		switch r {
		case '=':
			w.add("=", TokenEnvset)
		case '$':
			if len(s) > 0 {
				if s, err = w.parseEnv(s); err != nil {
					return nil, err
				}
			} else {
				w.addLiteral("$")
			}
		case '\'':
			for {
				if i := strings.IndexRune(s, '\''); i >= 0 {
					w.addLiteral(s[:i])
					s = s[i+1:]
					continue processRune
				}
				w.addLiteral(s + "\n")
				if err = more(); err != nil {
					return nil, err
				}
			}
		case '"':
			for {
				for len(s) > 0 {
					r, wid := utf8.DecodeRuneInString(s)
					s = s[wid:]
					switch r {
					case '"':
						continue processRune
					case '$':
						if len(s) > 0 {
							if s, err = w.parseEnv(s); err != nil {
								return nil, err
							}
							continue
						}
					case '\\':
						if len(s) == 0 {
							// escaped newline
							if err = more(); err != nil {
								return nil, err
							}
							continue
						}
						if strings.ContainsRune("$\"\\", rune(s[0])) {
							r = rune(s[0])
							s = s[1:]
						}
					}
					w.addLiteral(string(r))
				}
				w.addLiteral("\n")
				if err = more(); err != nil {
					return nil, err
				}
			}
		case '\\':
			if len(s) > 0 {
				r, wid := utf8.DecodeRuneInString(s)
				s = s[wid:]
				w.addLiteral(string(r))
				continue
			}
			if len(w.Tokens) == 0 {
				inWS = true
			}
			if s, err = catline(MorePrompt); err == io.EOF {
				s = ""
			} else if err != nil {
				return nil, err
			}
		default:
			w.addLiteral(string(r))
		}
	}
	endWord()
	if len(c.Words) > 0 {
		ls.add(&c)
	} else if n := len(ls.Cmds); n > 0 && ls.Cmds[n-1].Term != ";" {
		return nil, ErrMissingCommand
	}
	return &ls, nil
}
