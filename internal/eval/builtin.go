package eval

import (
	"math"

	"nickandperla.net/snip/internal/node"
)

// builtinDef describes one native operation registered at startup.
type builtinDef struct {
	name    string
	minArgs int
	fn      node.BuiltinFunc
}

// builtins returns the core operations bound into every root environment.
func (e *Evaluator) builtins() []builtinDef {
	return []builtinDef{
		{"env", 0, builtinEnv},
		{"list", 0, builtinList},
		{"cons", 2, builtinCons},
		{"car", 1, builtinCar},
		{"cdr", 1, builtinCdr},
		{"eq?", 2, builtinEq},
		{"type", 1, builtinType},
		{"length", 1, builtinLength},
		{"null?", 1, builtinNull},

		{"+", 1, arith(func(a, b float64) float64 { return a + b }, 0)},
		{"-", 1, arith(func(a, b float64) float64 { return a - b }, 0)},
		{"*", 1, arith(func(a, b float64) float64 { return a * b }, 1)},
		{"/", 1, arith(func(a, b float64) float64 { return a / b }, 1)},
		{"<", 2, compare(func(a, b float64) bool { return a < b })},
		{"<=", 2, compare(func(a, b float64) bool { return a <= b })},
		{">", 2, compare(func(a, b float64) bool { return a > b })},
		{">=", 2, compare(func(a, b float64) bool { return a >= b })},
		{"=", 2, compare(func(a, b float64) bool { return a == b })},
		{"sin", 1, unary(math.Sin)},
		{"cos", 1, unary(math.Cos)},
		{"tan", 1, unary(math.Tan)},
		{"exp", 1, unary(math.Exp)},
		{"log", 1, unary(math.Log)},
		{"log10", 1, unary(math.Log10)},
		{"sqrt", 1, unary(math.Sqrt)},
		{"abs", 1, unary(math.Abs)},
		{"floor", 1, unary(math.Floor)},

		{"string", 2, builtinString},

		{"print", 1, e.builtinPrint},
		{"save", 2, builtinSave},
		{"read", 0, e.builtinRead},
		{"load", 1, e.builtinLoad},
		{"exec", 1, e.builtinExec},
		{"exit", 0, e.builtinExit},

		{"persist", 1, e.builtinPersist},
		{"restore", 1, e.builtinRestore},
		{"forget", 1, e.builtinForget},
		{"history", 1, e.builtinHistory},
		{"stored", 0, e.builtinStored},
	}
}

// installBuiltins binds the core operations into env.
func (e *Evaluator) installBuiltins(env *node.Env) {
	for _, b := range e.builtins() {
		env.BindBuiltin(b.name, b.fn, b.minArgs)
	}
}

// builtinEnv returns the names bound in the calling frame. With any
// argument it returns one list of names per frame, innermost first.
func builtinEnv(args *node.List, env *node.Env) (node.Node, error) {
	if args.Len() == 0 {
		return frameNames(env), nil
	}
	all := node.Nil()
	for f := env; f != nil; f = f.Parent() {
		all.Items = append(all.Items, frameNames(f))
	}
	return all, nil
}

func frameNames(env *node.Env) *node.List {
	l := node.Nil()
	for _, sym := range env.Names() {
		l.Items = append(l.Items, sym)
	}
	return l
}

func builtinList(args *node.List, env *node.Env) (node.Node, error) {
	return node.NewList(args.Items...), nil
}

// builtinCons prepends the first argument to the second. A non-list second
// argument yields a two-element list.
func builtinCons(args *node.List, env *node.Env) (node.Node, error) {
	head, tail := args.At(0), args.At(1)
	result := node.NewList(head)
	if l, ok := tail.(*node.List); ok {
		result.Items = append(result.Items, l.Items...)
	} else {
		result.Items = append(result.Items, tail)
	}
	return result, nil
}

func builtinCar(args *node.List, env *node.Env) (node.Node, error) {
	l, err := node.ListArg(args.At(0))
	if err != nil {
		return nil, err
	}
	if l.Len() == 0 {
		return node.Nil(), nil
	}
	return l.At(0), nil
}

func builtinCdr(args *node.List, env *node.Env) (node.Node, error) {
	l, err := node.ListArg(args.At(0))
	if err != nil {
		return nil, err
	}
	if l.Len() == 0 {
		return node.Nil(), nil
	}
	return node.NewList(l.Items[1:]...), nil
}

func builtinEq(args *node.List, env *node.Env) (node.Node, error) {
	return node.Bool(node.Equal(args.At(0), args.At(1))), nil
}

func builtinType(args *node.List, env *node.Env) (node.Node, error) {
	return node.NewSymbol(node.KindOf(args.At(0)).String()), nil
}

func builtinLength(args *node.List, env *node.Env) (node.Node, error) {
	switch x := args.At(0).(type) {
	case *node.List:
		return node.NewNumber(float64(x.Len())), nil
	case *node.String:
		return node.NewNumber(float64(len(x.Value))), nil
	}
	return nil, node.Errorf(node.TypeMismatch, args.At(0),
		"invalid type (required list or string, got %s)", node.KindOf(args.At(0)))
}

func builtinNull(args *node.List, env *node.Env) (node.Node, error) {
	return node.Bool(node.IsNil(args.At(0))), nil
}
