// Package reader turns snip source text into nodes.
package reader

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"nickandperla.net/snip/internal/node"
	"nickandperla.net/snip/internal/scanner"
	"nickandperla.net/snip/internal/token"
)

var numberPattern = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]*)?$`)

// Reader reads one top-level form at a time.
// Malformed input is not rejected: a list cut short by the end of input is
// returned as read so far, and a stray ")" reads as nil.
type Reader struct {
	scan *scanner.Scanner
	line int // Line where the last top-level form started
}

// New creates a Reader over r.
func New(r io.Reader) *Reader {
	return &Reader{scan: scanner.New(r)}
}

// NewFromString creates a Reader over a string.
func NewFromString(s string) *Reader {
	return New(strings.NewReader(s))
}

// Line returns the line on which the most recently read form started.
func (r *Reader) Line() int {
	return r.line
}

// Read returns the next form. It returns an empty list and io.EOF only when
// the input is exhausted before any token.
func (r *Reader) Read() (node.Node, error) {
	item, err := r.scan.Next()
	if err != nil {
		return nil, err
	}
	r.line = item.Line
	if item.Token == token.EOF {
		return node.Nil(), io.EOF
	}
	return r.parse(item)
}

// ReadAll reads every remaining form.
func (r *Reader) ReadAll() ([]node.Node, error) {
	var forms []node.Node
	for {
		n, err := r.Read()
		if err == io.EOF {
			return forms, nil
		}
		if err != nil {
			return forms, err
		}
		forms = append(forms, n)
	}
}

func (r *Reader) parse(item *scanner.Item) (node.Node, error) {
	switch item.Token {
	case token.EOF, token.RPAREN:
		return node.Nil(), nil

	case token.LPAREN:
		return r.parseList()

	case token.QUOTE:
		quoted, err := r.next()
		if err != nil {
			return nil, err
		}
		return node.NewList(node.NewSymbol("quote"), quoted), nil

	case token.STRING:
		return node.NewString(item.Value), nil
	}

	return Atom(item.Value), nil
}

// next reads the form following a quote, which may itself be nested.
func (r *Reader) next() (node.Node, error) {
	item, err := r.scan.Next()
	if err != nil {
		return nil, err
	}
	return r.parse(item)
}

func (r *Reader) parseList() (node.Node, error) {
	l := node.Nil()
	for {
		item, err := r.scan.Next()
		if err != nil {
			return nil, err
		}
		switch item.Token {
		case token.RPAREN, token.EOF:
			return l, nil
		}
		n, err := r.parse(item)
		if err != nil {
			return nil, err
		}
		l.Items = append(l.Items, n)
	}
}

// Atom classifies a bare token as a number or a symbol.
func Atom(text string) node.Node {
	if text == "" {
		return node.Nil()
	}
	if numberPattern.MatchString(text) {
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			return node.NewNumber(v)
		}
	}
	return node.NewSymbol(text)
}

// ReadString reads the first form of s. Empty input yields nil.
func ReadString(s string) (node.Node, error) {
	n, err := NewFromString(s).Read()
	if err == io.EOF {
		return n, nil
	}
	return n, err
}

// Complete reports whether src closes every list and string it opens.
// Interactive loops use it to decide whether to keep collecting lines.
func Complete(src string) bool {
	scan := scanner.NewFromString(src)
	depth := 0
	for {
		item, err := scan.Next()
		if err != nil {
			return true
		}
		switch item.Token {
		case token.EOF:
			return depth <= 0 && !scan.Unterminated()
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		}
	}
}
