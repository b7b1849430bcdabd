// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package node

// Equal reports structural equality. Lists compare deeply, symbols and
// strings by text, numbers by value, closures by the identity of their
// parameter and body lists (the captured environment is ignored), and
// builtins by identity.
func Equal(a, b Node) bool {
	aNil, bNil := IsNil(a), IsNil(b)
	if aNil || bNil {
		return aNil == bNil
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch x := a.(type) {
	case *List:
		y := b.(*List)
		if len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !Equal(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case *Symbol:
		return x.Name == b.(*Symbol).Name
	case *String:
		return x.Value == b.(*String).Value
	case *Number:
		return x.Value == b.(*Number).Value
	case *Closure:
		y := b.(*Closure)
		return x.Params == y.Params && x.Body == y.Body
	case *Builtin:
		return x == b.(*Builtin)
	}
	return false
}
