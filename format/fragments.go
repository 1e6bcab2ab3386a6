// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package format

import "mvdan.cc/dartfmt/syntax"

// flattenable reports whether chains of op are laid out as a single list
// of operands.
func flattenable(op syntax.BinaryOp) bool {
	switch op {
	case syntax.Mul, syntax.Add, syntax.Quo, syntax.TruncQuo, syntax.Rem,
		syntax.BitXor, syntax.Sub, syntax.LogOr, syntax.LogAnd,
		syntax.BitAnd, syntax.BitOr:
		return true
	}
	return false
}

// flattenBinary turns a tree of binary expressions of the same precedence
// into its operands and the operators between them, so that a+b+c gives
// [a b c] and [+ +]. Parenthesized operands and operands binding tighter
// stay whole.
func flattenBinary(x *syntax.BinaryExpr) (operands []syntax.Expr, ops []syntax.BinaryOp) {
	prec := x.Op.Precedence()
	var walk func(x syntax.Expr)
	walk = func(x syntax.Expr) {
		b, ok := x.(*syntax.BinaryExpr)
		if !ok || !flattenable(b.Op) || b.Op.Precedence() != prec {
			operands = append(operands, x)
			return
		}
		walk(b.X)
		ops = append(ops, b.Op)
		walk(b.Y)
	}
	walk(x)
	return operands, ops
}

// cascade is a chain of calls and property accesses on one receiver,
// such as x.a().b.c().
type cascade struct {
	// head is the receiver. It is a call with no target when the chain
	// starts with an unqualified call, as in a().b().
	head     syntax.Expr
	implicit bool

	// links are the *syntax.MethodCall and *syntax.SelectorExpr nodes
	// applied to head, innermost first.
	links []syntax.Expr
	calls int
}

// flattenCascade collects the chain of calls ending at x.
func flattenCascade(x syntax.Expr) cascade {
	var c cascade
	for c.head == nil {
		switch e := x.(type) {
		case *syntax.MethodCall:
			if e.Target == nil {
				c.head, c.implicit = e, true
				c.calls++
				break
			}
			c.links = append(c.links, e)
			c.calls++
			x = e.Target
		case *syntax.SelectorExpr:
			c.links = append(c.links, e)
			x = e.X
		default:
			c.head = x
		}
	}
	for i, j := 0, len(c.links)-1; i < j; i, j = i+1, j-1 {
		c.links[i], c.links[j] = c.links[j], c.links[i]
	}
	return c
}
