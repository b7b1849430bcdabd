// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package token defines snip token types and the punctuation runes.
package token

// Token represents a snip token type.
type Token int

const (
	EOF    Token = iota
	ATOM         // any run of non-delimiter characters (symbol or number)
	STRING       // double-quoted literal, escapes already decoded

	// Punctuation, always a single rune
	LPAREN // (
	RPAREN // )
	QUOTE  // '
)

// Punctuation and lexical runes.
const (
	RuneOpen    = '('
	RuneClose   = ')'
	RuneQuote   = '\''
	RuneString  = '"'
	RuneComment = ';'
	RuneEscape  = '\\'
)

// IsPunct returns true if the rune is always a token on its own.
func IsPunct(r rune) bool {
	switch r {
	case RuneOpen, RuneClose, RuneQuote:
		return true
	}
	return false
}

// IsSpace reports the whitespace runes that separate tokens.
func IsSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

// TokenFromRune returns the token type for a punctuation rune.
func TokenFromRune(r rune) Token {
	switch r {
	case RuneOpen:
		return LPAREN
	case RuneClose:
		return RPAREN
	case RuneQuote:
		return QUOTE
	}
	return ATOM
}

// String returns the string representation of a token.
func (t Token) String() string {
	switch t {
	case EOF:
		return "EOF"
	case ATOM:
		return "ATOM"
	case STRING:
		return "STRING"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case QUOTE:
		return "QUOTE"
	}
	return "UNKNOWN"
}
