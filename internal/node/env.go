// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package node

// Env is one scope frame: its own bindings in definition order plus a link
// to the enclosing frame. Frames are shared by every closure created while
// they were active and live as long as any of them does.
type Env struct {
	parent   *Env
	bindings []binding
}

type binding struct {
	sym   *Symbol
	value Node
}

// NewEnv creates a frame whose enclosing scope is parent (nil for the root).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent}
}

// Parent returns the enclosing frame, or nil at the root.
func (e *Env) Parent() *Env {
	return e.parent
}

// Root returns the outermost frame of the chain.
func (e *Env) Root() *Env {
	for e.parent != nil {
		e = e.parent
	}
	return e
}

// IsRoot reports whether e has no parent.
func (e *Env) IsRoot() bool {
	return e.parent == nil
}

// Names returns the symbols bound in this frame only.
func (e *Env) Names() []*Symbol {
	names := make([]*Symbol, len(e.bindings))
	for i, b := range e.bindings {
		names[i] = b.sym
	}
	return names
}

func (e *Env) find(sym *Symbol) int {
	for i := range e.bindings {
		if e.bindings[i].sym.Name == sym.Name {
			return i
		}
	}
	return -1
}

// Lookup resolves sym in this frame, then outward through the parents.
func (e *Env) Lookup(sym *Symbol) (Node, error) {
	for f := e; f != nil; f = f.parent {
		if i := f.find(sym); i >= 0 {
			return f.bindings[i].value, nil
		}
	}
	return nil, Errorf(UnboundIdentifier, sym, "unbound identifier")
}

// Has reports whether sym is bound anywhere in the chain.
func (e *Env) Has(sym *Symbol) bool {
	for f := e; f != nil; f = f.parent {
		if f.find(sym) >= 0 {
			return true
		}
	}
	return false
}

// Where returns the nearest frame binding sym, or nil.
func (e *Env) Where(sym *Symbol) *Env {
	for f := e; f != nil; f = f.parent {
		if f.find(sym) >= 0 {
			return f
		}
	}
	return nil
}

// Define binds sym in this frame, overwriting an existing local binding.
func (e *Env) Define(sym *Symbol, value Node) Node {
	if i := e.find(sym); i >= 0 {
		e.bindings[i].value = value
		return value
	}
	e.bindings = append(e.bindings, binding{sym: sym, value: value})
	return value
}

// Set overwrites the nearest existing binding of sym. It never creates one.
func (e *Env) Set(sym *Symbol, value Node) (Node, error) {
	for f := e; f != nil; f = f.parent {
		if i := f.find(sym); i >= 0 {
			f.bindings[i].value = value
			return value, nil
		}
	}
	return nil, Errorf(UnboundIdentifier, sym, "unbound identifier")
}

// BindBuiltin registers a native operation under name.
func (e *Env) BindBuiltin(name string, fn BuiltinFunc, minArgs int) *Builtin {
	b := &Builtin{Name: name, MinArgs: minArgs, Fn: fn}
	e.Define(NewSymbol(name), b)
	return b
}
