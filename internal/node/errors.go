// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package node

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies evaluation failures.
type ErrorKind int

const (
	UnboundIdentifier ErrorKind = iota
	TypeMismatch
	InsufficientArguments
	TooManyArguments
	NotCallable
	MalformedSpecialForm
	DomainError
	IOError
)

// String returns the string representation of an ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case UnboundIdentifier:
		return "UNBOUND_IDENTIFIER"
	case TypeMismatch:
		return "TYPE_MISMATCH"
	case InsufficientArguments:
		return "INSUFFICIENT_ARGUMENTS"
	case TooManyArguments:
		return "TOO_MANY_ARGUMENTS"
	case NotCallable:
		return "NOT_CALLABLE"
	case MalformedSpecialForm:
		return "MALFORMED_SPECIAL_FORM"
	case DomainError:
		return "DOMAIN_ERROR"
	case IOError:
		return "IO_ERROR"
	}
	return "UNKNOWN"
}

// Error is a structured evaluation failure.
type Error struct {
	Kind    ErrorKind
	Message string
	Node    Node     // Offending node, may be nil
	Trace   []string // Pending evaluations, innermost first
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	if !IsNil(e.Node) {
		sb.WriteString(" -> ")
		sb.WriteString(Write(e.Node))
	}
	if len(e.Trace) > 1 {
		sb.WriteString("\ntrace:")
		for _, t := range e.Trace {
			sb.WriteString("\n  ")
			sb.WriteString(t)
		}
	}
	return sb.String()
}

// Errorf creates an Error of the given kind about n.
func Errorf(kind ErrorKind, n Node, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Node: n}
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// TypeCheck returns n unchanged if it has the expected kind.
func TypeCheck(n Node, want Kind) (Node, error) {
	if got := KindOf(n); got != want {
		return nil, Errorf(TypeMismatch, n, "invalid type (required %s, got %s)", want, got)
	}
	return OrNil(n), nil
}

// ArgsCheck returns l unchanged if it holds at least min items.
func ArgsCheck(l *List, min int) (*List, error) {
	if l.Len() < min {
		return nil, Errorf(InsufficientArguments, l,
			"insufficient number of arguments (required %d, got %d)", min, l.Len())
	}
	return l, nil
}

// ListArg checks that n is a list.
func ListArg(n Node) (*List, error) {
	v, err := TypeCheck(n, ListKind)
	if err != nil {
		return nil, err
	}
	return v.(*List), nil
}

// SymbolArg checks that n is a symbol.
func SymbolArg(n Node) (*Symbol, error) {
	v, err := TypeCheck(n, SymbolKind)
	if err != nil {
		return nil, err
	}
	return v.(*Symbol), nil
}

// StringArg checks that n is a string.
func StringArg(n Node) (*String, error) {
	v, err := TypeCheck(n, StringKind)
	if err != nil {
		return nil, err
	}
	return v.(*String), nil
}

// NumberArg checks that n is a number.
func NumberArg(n Node) (*Number, error) {
	v, err := TypeCheck(n, NumberKind)
	if err != nil {
		return nil, err
	}
	return v.(*Number), nil
}
