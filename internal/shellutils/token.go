// Copyright © 2023 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package shellutils

// Tokentype is the kind of a parsed Token.
//
// TokenLiteral is literal text of the word.
// TokenEnvget names an environment variable to substitute; the dollar and
// braces are stripped.
// TokenEnvset is an unquoted '=' that may make the word an assignment.
type Tokentype int

const (
	TokenLiteral Tokentype = iota
	TokenEnvget
	TokenEnvset
)

type Token struct {
	V string
	T Tokentype
}
