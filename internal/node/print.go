// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package node

import (
	"strconv"
	"strings"
)

// Display renders n the way print shows it: strings without quotes and
// builtins as opaque handles.
func Display(n Node) string {
	var sb strings.Builder
	render(&sb, n, false)
	return sb.String()
}

// Write renders n so that reading the text back yields an equal node for
// lists, symbols, strings and numbers. Builtins render as their name.
func Write(n Node) string {
	var sb strings.Builder
	render(&sb, n, true)
	return sb.String()
}

// FormatNumber renders a number in its shortest round-trip form.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func render(sb *strings.Builder, n Node, write bool) {
	if IsNil(n) {
		sb.WriteString("()")
		return
	}

	switch x := n.(type) {
	case *List:
		sb.WriteByte('(')
		for i, item := range x.Items {
			if i > 0 {
				sb.WriteByte(' ')
			}
			render(sb, item, write)
		}
		sb.WriteByte(')')
	case *Symbol:
		sb.WriteString(x.Name)
	case *String:
		if write {
			sb.WriteString(quote(x.Value))
		} else {
			sb.WriteString(x.Value)
		}
	case *Number:
		sb.WriteString(FormatNumber(x.Value))
	case *Closure:
		sb.WriteString("(lambda ")
		render(sb, x.Params, write)
		sb.WriteByte(' ')
		render(sb, x.Body, write)
		sb.WriteByte(')')
	case *Builtin:
		if write {
			sb.WriteString(x.Name)
		} else {
			sb.WriteString("<op ")
			sb.WriteString(x.Name)
			sb.WriteByte('>')
		}
	}
}

var quoteReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}
