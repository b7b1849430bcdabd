package eval

import (
	"nickandperla.net/snip/internal/node"
)

// Special forms are recognized by the identity of the operation a call's
// head evaluates to, never by the spelling of the head symbol.
var (
	quoteForm  = &node.Builtin{Name: "quote"}
	defineForm = &node.Builtin{Name: "define"}
	setForm    = &node.Builtin{Name: "set!"}
	lambdaForm = &node.Builtin{Name: "lambda"}
	ifForm     = &node.Builtin{Name: "if"}
	whileForm  = &node.Builtin{Name: "while"}
	beginForm  = &node.Builtin{Name: "begin"}

	// eval and apply receive evaluated arguments and then tail-jump.
	evalForm  = &node.Builtin{Name: "eval", MinArgs: 1}
	applyForm = &node.Builtin{Name: "apply", MinArgs: 2}
)

func bindSpecialForms(env *node.Env) {
	for _, f := range []*node.Builtin{
		quoteForm, defineForm, setForm, lambdaForm,
		ifForm, whileForm, beginForm, evalForm, applyForm,
	} {
		env.Define(node.NewSymbol(f.Name), f)
	}
}

// isSpecial reports the forms whose operands are not evaluated up front.
func isSpecial(b *node.Builtin) bool {
	switch b {
	case quoteForm, defineForm, setForm, lambdaForm, ifForm, whileForm, beginForm:
		return true
	}
	return false
}

// operands checks the operand count of a special form and returns them.
func operands(call *node.List, min, max int) ([]node.Node, error) {
	ops := call.Items[1:]
	if len(ops) < min {
		return nil, node.Errorf(node.InsufficientArguments, call,
			"insufficient number of arguments (required %d, got %d)", min, len(ops))
	}
	if max >= 0 && len(ops) > max {
		return nil, node.Errorf(node.MalformedSpecialForm, call,
			"malformed %s (at most %d operands, got %d)", node.Display(call.Items[0]), max, len(ops))
	}
	return ops, nil
}

// special evaluates one special form. When tail is true the loop continues
// with next in the same environment; otherwise result is final.
func (e *Evaluator) special(form *node.Builtin, call *node.List, env *node.Env, cs *callStack) (next, result node.Node, tail bool, err error) {
	switch form {
	case quoteForm:
		ops, err := operands(call, 1, 1)
		if err != nil {
			return nil, nil, false, err
		}
		return nil, node.OrNil(ops[0]), false, nil

	case defineForm, setForm:
		ops, err := operands(call, 2, 2)
		if err != nil {
			return nil, nil, false, err
		}
		sym, err := node.SymbolArg(ops[0])
		if err != nil {
			return nil, nil, false, err
		}
		v, err := e.eval(ops[1], env, cs)
		if err != nil {
			return nil, nil, false, err
		}
		if form == defineForm {
			env.Define(sym, v)
			if env.IsRoot() {
				e.autoPersist(sym, v)
			}
			return nil, v, false, nil
		}
		if _, err := env.Set(sym, v); err != nil {
			return nil, nil, false, err
		}
		if env.Where(sym).IsRoot() {
			e.autoPersist(sym, v)
		}
		return nil, v, false, nil

	case lambdaForm:
		ops, err := operands(call, 2, 2)
		if err != nil {
			return nil, nil, false, err
		}
		params, err := node.ListArg(ops[0])
		if err != nil {
			return nil, nil, false, err
		}
		body, err := node.ListArg(ops[1])
		if err != nil {
			return nil, nil, false, err
		}
		return nil, &node.Closure{Params: params, Body: body, Env: env}, false, nil

	case ifForm:
		ops, err := operands(call, 2, 3)
		if err != nil {
			return nil, nil, false, err
		}
		cond, err := e.condition(ops[0], env, cs)
		if err != nil {
			return nil, nil, false, err
		}
		if cond {
			return ops[1], nil, true, nil
		}
		if len(ops) == 3 {
			return ops[2], nil, true, nil
		}
		return nil, node.Nil(), false, nil

	case whileForm:
		ops, err := operands(call, 2, 2)
		if err != nil {
			return nil, nil, false, err
		}
		var r node.Node = node.Nil()
		for {
			cond, err := e.condition(ops[0], env, cs)
			if err != nil {
				return nil, nil, false, err
			}
			if !cond {
				return nil, r, false, nil
			}
			if r, err = e.eval(ops[1], env, cs); err != nil {
				return nil, nil, false, err
			}
		}

	case beginForm:
		ops, err := operands(call, 1, -1)
		if err != nil {
			return nil, nil, false, err
		}
		for _, op := range ops[:len(ops)-1] {
			if _, err := e.eval(op, env, cs); err != nil {
				return nil, nil, false, err
			}
		}
		return ops[len(ops)-1], nil, true, nil
	}

	return nil, nil, false, node.Errorf(node.MalformedSpecialForm, call, "unknown special form %s", form.Name)
}

// condition evaluates a test expression, which must yield a number.
func (e *Evaluator) condition(test node.Node, env *node.Env, cs *callStack) (bool, error) {
	v, err := e.eval(test, env, cs)
	if err != nil {
		return false, err
	}
	num, err := node.NumberArg(v)
	if err != nil {
		return false, err
	}
	return num.Value != 0, nil
}
