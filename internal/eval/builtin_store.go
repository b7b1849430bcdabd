// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import (
	"log/slog"

	"nickandperla.net/snip/internal/node"
	"nickandperla.net/snip/internal/reader"
	"nickandperla.net/snip/internal/store"
)

// builtinPersist stores the definition of a symbol so restore can rebuild it.
func (e *Evaluator) builtinPersist(args *node.List, env *node.Env) (node.Node, error) {
	// In NEVER or ALWAYS mode, persist is a no-op
	if e.persistMode == PersistNever || e.persistMode == PersistAlways || e.store == nil {
		return node.Nil(), nil
	}
	sym, err := node.SymbolArg(args.At(0))
	if err != nil {
		return nil, err
	}
	val, err := env.Lookup(sym)
	if err != nil {
		return nil, err
	}
	if err := e.store.Put(sym.Name, formatAsDefinition(sym, val)); err != nil {
		return nil, node.Errorf(node.IOError, sym, "persist: %v", err)
	}
	return sym, nil
}

// builtinRestore re-evaluates a stored definition in the root environment
// and returns the restored value, or nil if nothing was stored.
func (e *Evaluator) builtinRestore(args *node.List, env *node.Env) (node.Node, error) {
	sym, err := node.SymbolArg(args.At(0))
	if err != nil {
		return nil, err
	}
	val, ok, err := e.restore(sym.Name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return node.Nil(), nil
	}
	return val, nil
}

// builtinForget removes a stored definition and its history.
func (e *Evaluator) builtinForget(args *node.List, env *node.Env) (node.Node, error) {
	sym, err := node.SymbolArg(args.At(0))
	if err != nil {
		return nil, err
	}
	if e.store != nil {
		if err := e.store.Delete(sym.Name); err != nil {
			return nil, node.Errorf(node.IOError, sym, "forget: %v", err)
		}
	}
	return node.Nil(), nil
}

// builtinHistory returns the stored sources of a symbol, newest first.
func (e *Evaluator) builtinHistory(args *node.List, env *node.Env) (node.Node, error) {
	sym, err := node.SymbolArg(args.At(0))
	if err != nil {
		return nil, err
	}
	hs := historyStore(e)
	if hs == nil {
		return node.Nil(), nil
	}
	entries, err := hs.GetHistory(sym.Name, 0)
	if err != nil {
		return nil, node.Errorf(node.IOError, sym, "history: %v", err)
	}
	out := node.Nil()
	for _, ve := range entries {
		out.Items = append(out.Items, node.NewString(ve.Value))
	}
	return out, nil
}

// builtinStored lists the names held by the store.
func (e *Evaluator) builtinStored(args *node.List, env *node.Env) (node.Node, error) {
	out := node.Nil()
	if e.store == nil {
		return out, nil
	}
	names, err := e.store.Names()
	if err != nil {
		return nil, node.Errorf(node.IOError, nil, "stored: %v", err)
	}
	for _, name := range names {
		out.Items = append(out.Items, node.NewSymbol(name))
	}
	return out, nil
}

// historyStore type-asserts the evaluator's store to HistoryStore.
func historyStore(e *Evaluator) store.HistoryStore {
	if e.store == nil {
		return nil
	}
	hs, _ := e.store.(store.HistoryStore)
	return hs
}

// restore evaluates the stored source for name in the root environment.
func (e *Evaluator) restore(name string) (node.Node, bool, error) {
	if e.store == nil {
		return nil, false, nil
	}
	src, ok, err := e.store.Get(name)
	if err != nil || !ok {
		return nil, false, err
	}
	form, err := reader.ReadString(src)
	if err != nil {
		return nil, false, err
	}
	if _, err := e.Eval(form, e.root); err != nil {
		return nil, false, err
	}
	sym := node.NewSymbol(name)
	if !e.root.Has(sym) {
		return nil, false, nil
	}
	val, err := e.root.Lookup(sym)
	return val, err == nil, err
}

// autoPersist persists a root binding (used in ALWAYS mode).
func (e *Evaluator) autoPersist(sym *node.Symbol, val node.Node) {
	if e.persistMode != PersistAlways || e.store == nil {
		return
	}
	if err := e.store.Put(sym.Name, formatAsDefinition(sym, val)); err != nil {
		e.logger.Warn("auto-persist failed",
			slog.String("name", sym.Name),
			slog.Any("error", err))
	}
}

// formatAsDefinition renders a define form that rebuilds val under sym.
// Lists and symbols are quoted; every other kind evaluates to itself or,
// for closures and builtins, to an equivalent value in the root scope.
// A restored closure captures the root environment, not its original one.
func formatAsDefinition(sym *node.Symbol, val node.Node) string {
	expr := node.Write(val)
	switch node.KindOf(val) {
	case node.ListKind:
		if !node.IsNil(val) {
			expr = "(quote " + expr + ")"
		}
	case node.SymbolKind:
		expr = "(quote " + expr + ")"
	}
	return "(define " + sym.Name + " " + expr + ")"
}

// Restore re-evaluates the stored definition of name in the root
// environment. ok is false when nothing is stored under name.
func (e *Evaluator) Restore(name string) (node.Node, bool, error) {
	return e.restore(name)
}
