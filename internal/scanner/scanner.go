// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package scanner provides a streaming rune-level lexer for snip.
package scanner

import (
	"bufio"
	"io"
	"strings"

	"nickandperla.net/snip/internal/token"
)

// Scanner tokenizes snip input rune-by-rune.
type Scanner struct {
	reader *bufio.Reader
	buf    strings.Builder
	line   int  // Current line number (1-based)
	open   bool // A string literal ran into the end of input
}

// Item represents a scanned token with its value.
type Item struct {
	Token token.Token
	Value string
	Line  int // Line number where this token started
}

// New creates a new Scanner from an io.Reader.
func New(r io.Reader) *Scanner {
	return &Scanner{
		reader: bufio.NewReader(r),
		line:   1,
	}
}

// NewFromString creates a new Scanner from a string.
func NewFromString(s string) *Scanner {
	return New(strings.NewReader(s))
}

// Line returns the current line number (1-based).
func (s *Scanner) Line() int {
	return s.line
}

// Unterminated reports whether the input ended inside a string literal.
func (s *Scanner) Unterminated() bool {
	return s.open
}

// Next returns the next token from the input.
func (s *Scanner) Next() (*Item, error) {
	s.buf.Reset()
	startLine := s.line

	for {
		r, _, err := s.reader.ReadRune()
		if err == io.EOF {
			if s.buf.Len() > 0 {
				return s.atom(startLine), nil
			}
			return &Item{Token: token.EOF, Line: s.line}, nil
		}
		if err != nil {
			return nil, err
		}

		switch {
		case r == token.RuneComment:
			if s.buf.Len() > 0 {
				s.unread()
				return s.atom(startLine), nil
			}
			if err := s.skipComment(); err != nil {
				return nil, err
			}
			startLine = s.line

		case token.IsPunct(r):
			// Accumulated text is returned first
			if s.buf.Len() > 0 {
				s.unread()
				return s.atom(startLine), nil
			}
			return &Item{Token: token.TokenFromRune(r), Value: string(r), Line: s.line}, nil

		case token.IsSpace(r):
			if r == '\n' {
				s.line++
			}
			if s.buf.Len() > 0 {
				return s.atom(startLine), nil
			}
			startLine = s.line

		case r == token.RuneString:
			if s.buf.Len() > 0 {
				s.unread()
				return s.atom(startLine), nil
			}
			line := s.line
			str, err := s.scanString()
			if err != nil {
				return nil, err
			}
			return &Item{Token: token.STRING, Value: str, Line: line}, nil

		default:
			if s.buf.Len() == 0 {
				startLine = s.line
			}
			s.buf.WriteRune(r)
		}
	}
}

func (s *Scanner) atom(line int) *Item {
	return &Item{Token: token.ATOM, Value: s.buf.String(), Line: line}
}

// unread puts the last rune back. Only called for runes that are not newlines.
func (s *Scanner) unread() {
	s.reader.UnreadRune()
}

// skipComment consumes everything up to and including the next newline.
func (s *Scanner) skipComment() error {
	for {
		r, _, err := s.reader.ReadRune()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if r == '\n' {
			s.line++
			return nil
		}
	}
}

// scanString reads a string literal body after the opening quote.
// The closing quote is consumed. An unterminated literal returns what was read.
func (s *Scanner) scanString() (string, error) {
	var str strings.Builder
	for {
		r, _, err := s.reader.ReadRune()
		if err == io.EOF {
			s.open = true
			return str.String(), nil
		}
		if err != nil {
			return "", err
		}
		if r == '\n' {
			s.line++
		}

		switch r {
		case token.RuneString:
			return str.String(), nil
		case token.RuneEscape:
			esc, _, err := s.reader.ReadRune()
			if err == io.EOF {
				s.open = true
				return str.String(), nil
			}
			if err != nil {
				return "", err
			}
			str.WriteRune(unescape(esc))
			if esc == '\n' {
				s.line++
			}
		default:
			str.WriteRune(r)
		}
	}
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	}
	// \" and any other escaped rune stand for themselves
	return r
}
