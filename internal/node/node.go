// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package node defines the snip value model: every value and every piece of
// code is a Node. The package also holds the environment frames that bind
// symbols to nodes and the structured errors raised while evaluating them.
package node

// Node is the interface all snip values implement.
// The concrete kinds are *List, *Symbol, *String, *Number, *Closure and *Builtin.
type Node interface {
	// Kind returns the discriminator of the node.
	Kind() Kind
}

// Kind discriminates the node variants.
type Kind int

const (
	ListKind Kind = iota
	SymbolKind
	StringKind
	NumberKind
	ClosureKind
	BuiltinKind
)

// String returns the name used in diagnostics and by the type builtin.
func (k Kind) String() string {
	switch k {
	case ListKind:
		return "list"
	case SymbolKind:
		return "symbol"
	case StringKind:
		return "string"
	case NumberKind:
		return "number"
	case ClosureKind:
		return "lambda"
	case BuiltinKind:
		return "op"
	}
	return "unknown"
}

// List is an ordered sequence of nodes. The empty list is nil.
type List struct {
	Items []Node
}

func (l *List) Kind() Kind { return ListKind }

// Len returns the number of items; a nil list has none.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Items)
}

// At returns item i.
func (l *List) At(i int) Node { return l.Items[i] }

// Symbol is a name resolved through the environment.
type Symbol struct {
	Name string
}

func (s *Symbol) Kind() Kind { return SymbolKind }

// String is an immutable text value.
type String struct {
	Value string
}

func (s *String) Kind() Kind { return StringKind }

// Number is a 64-bit float. Zero is false, anything else true.
type Number struct {
	Value float64
}

func (n *Number) Kind() Kind { return NumberKind }

// Closure pairs a parameter list and a body with the environment that was
// active when the lambda was evaluated.
type Closure struct {
	Params *List
	Body   *List
	Env    *Env
}

func (c *Closure) Kind() Kind { return ClosureKind }

// BuiltinFunc is the contract for native operations: it receives the
// evaluated argument list and the calling environment.
type BuiltinFunc func(args *List, env *Env) (Node, error)

// Builtin is a native operation. Builtins compare by identity.
type Builtin struct {
	Name    string
	MinArgs int
	Fn      BuiltinFunc
}

func (b *Builtin) Kind() Kind { return BuiltinKind }

// Call validates the argument count and runs the operation.
func (b *Builtin) Call(args *List, env *Env) (Node, error) {
	if _, err := ArgsCheck(args, b.MinArgs); err != nil {
		return nil, err
	}
	if b.Fn == nil {
		return nil, Errorf(NotCallable, b, "operation %s cannot be applied directly", b.Name)
	}
	return b.Fn(args, env)
}

// Nil returns a fresh empty list.
func Nil() *List { return &List{} }

// NewList creates a list from items.
func NewList(items ...Node) *List {
	return &List{Items: items}
}

// NewSymbol creates a symbol.
func NewSymbol(name string) *Symbol { return &Symbol{Name: name} }

// NewString creates a string.
func NewString(s string) *String { return &String{Value: s} }

// NewNumber creates a number.
func NewNumber(v float64) *Number { return &Number{Value: v} }

// Bool maps a Go bool onto the numeric truth channel.
func Bool(b bool) *Number {
	if b {
		return NewNumber(1)
	}
	return NewNumber(0)
}

// KindOf returns the kind of n, treating a nil node as the empty list.
func KindOf(n Node) Kind {
	if n == nil {
		return ListKind
	}
	if l, ok := n.(*List); ok && l == nil {
		return ListKind
	}
	return n.Kind()
}

// IsNil reports whether n is absent or an empty list.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	l, ok := n.(*List)
	return ok && l.Len() == 0
}

// Truthy reports the truth value of n: nil and zero are false.
func Truthy(n Node) bool {
	if IsNil(n) {
		return false
	}
	if num, ok := n.(*Number); ok {
		return num.Value != 0
	}
	return true
}

// OrNil substitutes an empty list for an absent node.
func OrNil(n Node) Node {
	if n == nil {
		return Nil()
	}
	if l, ok := n.(*List); ok && l == nil {
		return Nil()
	}
	return n
}
