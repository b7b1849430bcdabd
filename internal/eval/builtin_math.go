package eval

import (
	"nickandperla.net/snip/internal/node"
)

// arith folds op over numeric arguments left to right. A single argument
// is combined with unit first, so (- 5) is -5 and (/ 4) is 0.25.
func arith(op func(a, b float64) float64, unit float64) node.BuiltinFunc {
	return func(args *node.List, env *node.Env) (node.Node, error) {
		first, err := node.NumberArg(args.At(0))
		if err != nil {
			return nil, err
		}
		if args.Len() == 1 {
			return node.NewNumber(op(unit, first.Value)), nil
		}
		v := first.Value
		for _, a := range args.Items[1:] {
			num, err := node.NumberArg(a)
			if err != nil {
				return nil, err
			}
			v = op(v, num.Value)
		}
		return node.NewNumber(v), nil
	}
}

// compare checks op between every adjacent pair of arguments.
func compare(op func(a, b float64) bool) node.BuiltinFunc {
	return func(args *node.List, env *node.Env) (node.Node, error) {
		nums := make([]float64, args.Len())
		for i, a := range args.Items {
			num, err := node.NumberArg(a)
			if err != nil {
				return nil, err
			}
			nums[i] = num.Value
		}
		for i := 0; i+1 < len(nums); i++ {
			if !op(nums[i], nums[i+1]) {
				return node.Bool(false), nil
			}
		}
		return node.Bool(true), nil
	}
}

// unary maps fn over every argument. One argument yields a number, several
// yield a list.
func unary(fn func(float64) float64) node.BuiltinFunc {
	return func(args *node.List, env *node.Env) (node.Node, error) {
		out := node.Nil()
		for _, a := range args.Items {
			num, err := node.NumberArg(a)
			if err != nil {
				return nil, err
			}
			out.Items = append(out.Items, node.NewNumber(fn(num.Value)))
		}
		if out.Len() == 1 {
			return out.At(0), nil
		}
		return out, nil
	}
}
