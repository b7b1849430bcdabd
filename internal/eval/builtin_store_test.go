// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import (
	"path/filepath"
	"testing"

	"nickandperla.net/snip/internal/node"
	"nickandperla.net/snip/internal/store"
)

func TestPersistRestore(t *testing.T) {
	s := store.NewMemory()
	e, _ := newTestEvaluator(WithStore(s))

	evalDisplay(t, e, `(define sq (lambda (x) (* x x)))`)
	if got := evalDisplay(t, e, `(persist 'sq)`); got != "sq" {
		t.Errorf("expected persist to return the symbol, got %s", got)
	}

	src, ok, err := s.Get("sq")
	if err != nil || !ok {
		t.Fatalf("expected stored definition, ok=%v err=%v", ok, err)
	}
	if src != "(define sq (lambda (x) (* x x)))" {
		t.Errorf("unexpected stored source %q", src)
	}

	// A fresh evaluator sharing the store rebuilds the binding
	e2, _ := newTestEvaluator(WithStore(s))
	if _, err := e2.EvalString(`(sq 3)`); !node.IsKind(err, node.UnboundIdentifier) {
		t.Fatalf("expected sq unbound before restore, got %v", err)
	}
	if got := evalDisplay(t, e2, `(type (restore 'sq))`); got != "lambda" {
		t.Errorf("expected restored lambda, got %s", got)
	}
	if got := evalDisplay(t, e2, `(sq 7)`); got != "49" {
		t.Errorf("expected 49, got %s", got)
	}

	if got := evalDisplay(t, e2, `(restore 'missing)`); got != "()" {
		t.Errorf("expected () for missing definition, got %s", got)
	}
}

func TestPersistUnbound(t *testing.T) {
	e, _ := newTestEvaluator(WithStore(store.NewMemory()))
	if _, err := e.EvalString(`(persist 'nothing)`); !node.IsKind(err, node.UnboundIdentifier) {
		t.Errorf("expected unbound identifier, got %v", err)
	}
}

func TestPersistFromClosureFrame(t *testing.T) {
	s := store.NewMemory()
	e, _ := newTestEvaluator(WithStore(s))

	evalDisplay(t, e, `((lambda (local) (persist 'local)) "value")`)
	if src, _, _ := s.Get("local"); src != `(define local "value")` {
		t.Errorf("unexpected stored source %q", src)
	}
}

func TestHistoryAndForget(t *testing.T) {
	s := store.NewMemory()
	e, _ := newTestEvaluator(WithStore(s))

	evalDisplay(t, e, `(define v 1)`)
	evalDisplay(t, e, `(persist 'v)`)
	evalDisplay(t, e, `(set! v '(a b))`)
	evalDisplay(t, e, `(persist 'v)`)

	if got := evalDisplay(t, e, `(history 'v)`); got != "((define v (quote (a b))) (define v 1))" {
		t.Errorf("unexpected history %s", got)
	}

	if got := evalDisplay(t, e, `(stored)`); got != "(v)" {
		t.Errorf("expected (v), got %s", got)
	}

	evalDisplay(t, e, `(forget 'v)`)
	if got := evalDisplay(t, e, `(history 'v)`); got != "()" {
		t.Errorf("expected empty history after forget, got %s", got)
	}
	if got := evalDisplay(t, e, `(restore 'v)`); got != "()" {
		t.Errorf("expected nothing to restore, got %s", got)
	}
}

func TestPersistWithoutStore(t *testing.T) {
	e, _ := newTestEvaluator()

	evalDisplay(t, e, `(define v 1)`)
	for _, src := range []string{`(persist 'v)`, `(restore 'v)`, `(forget 'v)`, `(history 'v)`, `(stored)`} {
		if got := evalDisplay(t, e, src); got != "()" {
			t.Errorf("%s: expected (), got %s", src, got)
		}
	}
}

func TestPersistModeNever(t *testing.T) {
	s := store.NewMemory()
	e, _ := newTestEvaluator(WithStore(s), WithPersistMode(PersistNever))

	evalDisplay(t, e, `(define v 1)`)
	evalDisplay(t, e, `(persist 'v)`)
	if _, ok, _ := s.Get("v"); ok {
		t.Error("persist must be a no-op in NEVER mode")
	}
}

func TestPersistModeAlways(t *testing.T) {
	s := store.NewMemory()
	e, _ := newTestEvaluator(WithStore(s), WithPersistMode(PersistAlways))

	evalDisplay(t, e, `(define answer 42)`)
	evalDisplay(t, e, `(define items '(1 2))`)
	evalDisplay(t, e, `(set! answer 43)`)
	// Bindings inside closure frames stay in memory
	evalDisplay(t, e, `((lambda (x) (define inner x)) 1)`)

	if src, _, _ := s.Get("answer"); src != "(define answer 43)" {
		t.Errorf("unexpected stored answer %q", src)
	}
	if src, _, _ := s.Get("items"); src != "(define items (quote (1 2)))" {
		t.Errorf("unexpected stored items %q", src)
	}
	if _, ok, _ := s.Get("inner"); ok {
		t.Error("frame-local define was persisted")
	}

	// A fresh evaluator restores on lookup
	e2, _ := newTestEvaluator(WithStore(s), WithPersistMode(PersistAlways))
	if got := evalDisplay(t, e2, `(+ answer (car items))`); got != "44" {
		t.Errorf("expected 44, got %s", got)
	}
	if _, err := e2.EvalString(`unknown`); !node.IsKind(err, node.UnboundIdentifier) {
		t.Errorf("expected unbound identifier, got %v", err)
	}
}

func TestPersistSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defs.db")
	s, err := store.NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	e, _ := newTestEvaluator(WithStore(s))
	evalDisplay(t, e, `(define greeting "hello \"world\"")`)
	evalDisplay(t, e, `(persist 'greeting)`)
	s.Close()

	s2, err := store.NewSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	e2, _ := newTestEvaluator(WithStore(s2))
	if got := evalDisplay(t, e2, `(restore 'greeting)`); got != `hello "world"` {
		t.Errorf("unexpected restored value %q", got)
	}
}

func TestFormatAsDefinition(t *testing.T) {
	tests := []struct {
		val      node.Node
		expected string
	}{
		{node.NewNumber(1.5), "(define x 1.5)"},
		{node.NewString("a\nb"), `(define x "a\nb")`},
		{node.NewSymbol("s"), "(define x (quote s))"},
		{node.Nil(), "(define x ())"},
		{node.NewList(node.NewSymbol("f"), node.NewNumber(1)), "(define x (quote (f 1)))"},
	}
	for _, tt := range tests {
		if got := formatAsDefinition(node.NewSymbol("x"), tt.val); got != tt.expected {
			t.Errorf("expected %s, got %s", tt.expected, got)
		}
	}
}
