package eval

import (
	"math"
	"regexp"
	"strings"

	"nickandperla.net/snip/internal/node"
)

// builtinString dispatches on its first argument, a symbol naming the
// operation: length, find, range, replace, split or regex.
func builtinString(args *node.List, env *node.Env) (node.Node, error) {
	cmd, err := node.SymbolArg(args.At(0))
	if err != nil {
		return nil, err
	}
	str, err := node.StringArg(args.At(1))
	if err != nil {
		return nil, err
	}

	switch cmd.Name {
	case "length":
		return node.NewNumber(float64(len(str.Value))), nil

	case "find":
		if _, err := node.ArgsCheck(args, 3); err != nil {
			return nil, err
		}
		needle, err := node.StringArg(args.At(2))
		if err != nil {
			return nil, err
		}
		return node.NewNumber(float64(strings.Index(str.Value, needle.Value))), nil

	case "range":
		if _, err := node.ArgsCheck(args, 4); err != nil {
			return nil, err
		}
		start, err := node.NumberArg(args.At(2))
		if err != nil {
			return nil, err
		}
		count, err := node.NumberArg(args.At(3))
		if err != nil {
			return nil, err
		}
		if math.IsNaN(start.Value) || start.Value < 0 || start.Value > float64(len(str.Value)) {
			return nil, node.Errorf(node.DomainError, args, "string range out of bounds")
		}
		from := int(start.Value)
		to := len(str.Value)
		if c := count.Value; c >= 0 && float64(from)+c < float64(to) {
			to = from + int(c)
		}
		return node.NewString(str.Value[from:to]), nil

	case "replace":
		if _, err := node.ArgsCheck(args, 4); err != nil {
			return nil, err
		}
		from, err := node.StringArg(args.At(2))
		if err != nil {
			return nil, err
		}
		to, err := node.StringArg(args.At(3))
		if err != nil {
			return nil, err
		}
		if from.Value == "" {
			return node.NewString(str.Value), nil
		}
		return node.NewString(strings.ReplaceAll(str.Value, from.Value, to.Value)), nil

	case "split":
		if _, err := node.ArgsCheck(args, 3); err != nil {
			return nil, err
		}
		sep, err := node.StringArg(args.At(2))
		if err != nil {
			return nil, err
		}
		out := node.Nil()
		if str.Value == "" {
			return out, nil
		}
		// Only the first byte of the separator counts
		if sep.Value == "" {
			return node.NewList(node.NewString(str.Value)), nil
		}
		cut := sep.Value[:1]
		for _, part := range strings.Split(strings.TrimSuffix(str.Value, cut), cut) {
			out.Items = append(out.Items, node.NewString(part))
		}
		return out, nil

	case "regex":
		if _, err := node.ArgsCheck(args, 3); err != nil {
			return nil, err
		}
		pattern, err := node.StringArg(args.At(2))
		if err != nil {
			return nil, err
		}
		re, err := regexp.Compile(pattern.Value)
		if err != nil {
			return nil, node.Errorf(node.DomainError, pattern, "invalid regex: %v", err)
		}
		out := node.Nil()
		for _, m := range re.FindStringSubmatch(str.Value) {
			out.Items = append(out.Items, node.NewString(m))
		}
		return out, nil
	}

	return node.Nil(), nil
}
