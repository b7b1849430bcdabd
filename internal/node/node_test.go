package node

import (
	"strings"
	"testing"
)

func TestEqual(t *testing.T) {
	params := NewList(NewSymbol("x"))
	body := NewList(NewSymbol("x"))
	root := NewEnv(nil)
	op := &Builtin{Name: "op"}

	tests := []struct {
		name string
		a, b Node
		want bool
	}{
		{"numbers", NewNumber(1), NewNumber(1), true},
		{"different numbers", NewNumber(1), NewNumber(2), false},
		{"strings", NewString("a"), NewString("a"), true},
		{"symbols", NewSymbol("a"), NewSymbol("a"), true},
		{"symbol vs string", NewSymbol("a"), NewString("a"), false},
		{"nested lists", NewList(NewNumber(1), NewList(NewString("x"))), NewList(NewNumber(1), NewList(NewString("x"))), true},
		{"list lengths", NewList(NewNumber(1)), NewList(NewNumber(1), NewNumber(2)), false},
		{"nil forms", Nil(), nil, true},
		{"nil vs list", Nil(), NewList(NewNumber(1)), false},
		{"closures share code", &Closure{Params: params, Body: body, Env: root}, &Closure{Params: params, Body: body, Env: NewEnv(root)}, true},
		{"closures with equal code", &Closure{Params: params, Body: body}, &Closure{Params: NewList(NewSymbol("x")), Body: body}, false},
		{"same builtin", op, op, true},
		{"distinct builtins", op, &Builtin{Name: "op"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDisplayAndWrite(t *testing.T) {
	l := NewList(NewSymbol("a"), NewString("b \"q\"\n"), NewNumber(2.5), Nil(), &Builtin{Name: "car"})

	if got := Display(l); got != "(a b \"q\"\n 2.5 () <op car>)" {
		t.Errorf("unexpected display %q", got)
	}
	if got := Write(l); got != `(a "b \"q\"\n" 2.5 () car)` {
		t.Errorf("unexpected write %q", got)
	}

	c := &Closure{Params: NewList(NewSymbol("x")), Body: NewList(NewSymbol("f"), NewSymbol("x"))}
	if got := Write(c); got != "(lambda (x) (f x))" {
		t.Errorf("unexpected closure rendering %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{8, "8"},
		{-5, "-5"},
		{0.25, "0.25"},
		{3628800, "3628800"},
		{1e21, "1000000000000000000000"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.v); got != tt.want {
			t.Errorf("FormatNumber(%v) = %s, want %s", tt.v, got, tt.want)
		}
	}
}

func TestTruthiness(t *testing.T) {
	tests := []struct {
		n    Node
		want bool
	}{
		{NewNumber(0), false},
		{NewNumber(-1), true},
		{Nil(), false},
		{nil, false},
		{NewString(""), true},
		{NewSymbol("x"), true},
	}
	for _, tt := range tests {
		if got := Truthy(tt.n); got != tt.want {
			t.Errorf("Truthy(%s) = %v, want %v", Write(tt.n), got, tt.want)
		}
	}
}

func TestKindOf(t *testing.T) {
	var nilList *List
	if KindOf(nil) != ListKind || KindOf(nilList) != ListKind {
		t.Error("absent nodes are lists")
	}
	if KindOf(&Closure{}).String() != "lambda" || KindOf(&Builtin{}).String() != "op" {
		t.Error("unexpected kind names")
	}
	if nilList.Len() != 0 {
		t.Error("nil list has no items")
	}
}

func TestEnvDefineLookup(t *testing.T) {
	root := NewEnv(nil)
	x := NewSymbol("x")
	root.Define(x, NewNumber(1))

	child := NewEnv(root)
	v, err := child.Lookup(NewSymbol("x"))
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !Equal(v, NewNumber(1)) {
		t.Errorf("expected 1, got %s", Write(v))
	}

	// Shadowing stays local
	child.Define(NewSymbol("x"), NewNumber(2))
	if v, _ := root.Lookup(x); !Equal(v, NewNumber(1)) {
		t.Errorf("root binding changed to %s", Write(v))
	}
	if child.Where(x) != child || root.Where(x) != root {
		t.Error("Where returned the wrong frame")
	}

	// Redefinition overwrites in place
	root.Define(NewSymbol("x"), NewNumber(3))
	if len(root.Names()) != 1 {
		t.Errorf("expected one binding, got %d", len(root.Names()))
	}

	if _, err := child.Lookup(NewSymbol("y")); !IsKind(err, UnboundIdentifier) {
		t.Errorf("expected unbound identifier, got %v", err)
	}
	if child.Root() != root || !root.IsRoot() || child.IsRoot() {
		t.Error("unexpected root chain")
	}
}

func TestEnvSet(t *testing.T) {
	root := NewEnv(nil)
	root.Define(NewSymbol("x"), NewNumber(1))
	child := NewEnv(root)

	if _, err := child.Set(NewSymbol("x"), NewNumber(5)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, _ := root.Lookup(NewSymbol("x")); !Equal(v, NewNumber(5)) {
		t.Errorf("expected ancestor binding updated, got %s", Write(v))
	}
	if len(child.Names()) != 0 {
		t.Error("Set created a local binding")
	}

	if _, err := child.Set(NewSymbol("nope"), NewNumber(1)); !IsKind(err, UnboundIdentifier) {
		t.Errorf("expected unbound identifier, got %v", err)
	}
	if root.Has(NewSymbol("nope")) {
		t.Error("failed Set created a binding")
	}
}

func TestBuiltinCall(t *testing.T) {
	env := NewEnv(nil)
	b := env.BindBuiltin("first", func(args *List, env *Env) (Node, error) {
		return args.At(0), nil
	}, 1)

	v, err := env.Lookup(NewSymbol("first"))
	if err != nil || v != b {
		t.Fatalf("expected bound builtin, got %v err=%v", v, err)
	}
	if _, err := b.Call(Nil(), env); !IsKind(err, InsufficientArguments) {
		t.Errorf("expected insufficient arguments, got %v", err)
	}
	got, err := b.Call(NewList(NewString("a")), env)
	if err != nil || !Equal(got, NewString("a")) {
		t.Errorf("unexpected result %v err=%v", got, err)
	}

	special := &Builtin{Name: "if"}
	if _, err := special.Call(Nil(), env); !IsKind(err, NotCallable) {
		t.Errorf("expected not callable, got %v", err)
	}
}

func TestGuards(t *testing.T) {
	if _, err := TypeCheck(NewNumber(1), StringKind); err == nil {
		t.Fatal("expected type mismatch")
	} else if err.Error() != "invalid type (required string, got number) -> 1" {
		t.Errorf("unexpected message %q", err.Error())
	}

	v, err := TypeCheck(nil, ListKind)
	if err != nil || !IsNil(v) {
		t.Errorf("expected nil to pass as list, got %v err=%v", v, err)
	}

	args := NewList(NewNumber(1))
	if _, err := ArgsCheck(args, 2); err == nil ||
		!strings.HasPrefix(err.Error(), "insufficient number of arguments (required 2, got 1)") {
		t.Errorf("unexpected ArgsCheck error %v", err)
	}
	if l, err := ArgsCheck(args, 1); err != nil || l != args {
		t.Errorf("expected args unchanged, got %v err=%v", l, err)
	}
}

func TestErrorRendering(t *testing.T) {
	e := Errorf(UnboundIdentifier, NewSymbol("zz"), "unbound identifier")
	if e.Error() != "unbound identifier -> zz" {
		t.Errorf("unexpected message %q", e.Error())
	}

	e.Trace = []string{"zz"}
	if strings.Contains(e.Error(), "trace") {
		t.Error("a single frame prints no trace")
	}

	e.Trace = []string{"zz", "(f zz)"}
	if e.Error() != "unbound identifier -> zz\ntrace:\n  zz\n  (f zz)" {
		t.Errorf("unexpected message %q", e.Error())
	}

	if UnboundIdentifier.String() != "UNBOUND_IDENTIFIER" || IOError.String() != "IO_ERROR" {
		t.Error("unexpected kind names")
	}
}
