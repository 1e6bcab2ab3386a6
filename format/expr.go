// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package format

import "mvdan.cc/dartfmt/syntax"

func (p *printer) expr(x syntax.Expr) {
	sp := &p.opts.Spaces
	switch x := x.(type) {
	case *syntax.Ident:
		p.ident(x)
	case *syntax.BasicLit:
		p.token(x.Kind, false)
	case *syntax.ThisExpr:
		p.token(syntax.THIS, false)
	case *syntax.SuperExpr:
		p.token(syntax.SUPER, false)
	case *syntax.ParenExpr:
		p.token(syntax.LPAREN, false)
		if sp.AfterParenInParenthesized {
			p.space()
		}
		p.expr(x.X)
		p.token(syntax.RPAREN, sp.BeforeClosingParenInParenthesized)
	case *syntax.UnaryExpr:
		if x.Post {
			p.expr(x.X)
			p.token(syntax.Kind(x.Op), sp.BeforePostfixOperator)
			break
		}
		p.token(syntax.Kind(x.Op), sp.BeforeUnaryOperator)
		if sp.AfterUnaryOperator {
			p.space()
		}
		p.expr(x.X)
	case *syntax.BinaryExpr:
		p.binary(x)
	case *syntax.AssignExpr:
		p.expr(x.X)
		p.assignment(syntax.Kind(x.Op), x.Y)
	case *syntax.CondExpr:
		p.conditional(x)
	case *syntax.MethodCall:
		p.methodCall(x)
	case *syntax.CallExpr:
		p.expr(x.Fun)
		p.args(x.Args, p.opts.Wrap.Arguments)
	case *syntax.NamedArg:
		p.ident(x.Name)
		p.token(syntax.COLON, sp.BeforeColonInNamedArgument)
		if sp.AfterColonInNamedArgument {
			p.space()
		}
		p.expr(x.X)
	case *syntax.SelectorExpr:
		p.expr(x.X)
		p.token(syntax.PERIOD, false)
		p.ident(x.Sel)
	case *syntax.IndexExpr:
		p.expr(x.X)
		p.token(syntax.LBRACK, sp.BeforeBracketInIndex)
		if sp.AfterBracketInIndex {
			p.space()
		}
		p.expr(x.Index)
		p.token(syntax.RBRACK, sp.BeforeClosingBracketInIndex)
	case *syntax.NewExpr:
		p.keyword(x.Keyword)
		p.typeName(x.TypeName)
		if x.Ctor != nil {
			p.token(syntax.PERIOD, false)
			p.ident(x.Ctor)
		}
		p.args(x.Args, p.opts.Wrap.AllocationArguments)
	case *syntax.ListLit:
		p.listLit(x)
	default:
		p.missing(x)
	}
}

func (p *printer) nestedMode(mode Wrap) Wrap {
	if p.opts.Wrap.OuterExpressionsWhenNested {
		mode |= WrapOutermost
	}
	return mode
}

// binary prints a chain of operators of the same precedence as a single
// alignment, with one fragment per operand.
func (p *printer) binary(x *syntax.BinaryExpr) {
	sp := &p.opts.Spaces
	operands, ops := []syntax.Expr{x.X, x.Y}, []syntax.BinaryOp{x.Op}
	if flattenable(x.Op) {
		operands, ops = flattenBinary(x)
	}
	before := p.opts.Wrap.BeforeBinaryOperator
	p.align("binary", p.nestedMode(p.opts.Wrap.Binary), len(operands), func(a *alignment) {
		a.startColumn = p.nextColumn()
		for i, y := range operands {
			if i == 0 {
				p.alignFragment(a, 0)
				p.expr(y)
				continue
			}
			if before {
				p.alignFragment(a, i)
			}
			p.token(syntax.Kind(ops[i-1]), sp.BeforeBinaryOperator)
			if sp.AfterBinaryOperator {
				p.space()
			}
			if !before {
				p.alignFragment(a, i)
			}
			p.expr(y)
		}
	})
}

func (p *printer) conditional(x *syntax.CondExpr) {
	sp := &p.opts.Spaces
	p.expr(x.Cond)
	p.align("conditional", p.opts.Wrap.Conditional, 2, func(a *alignment) {
		p.alignFragment(a, 0)
		p.token(syntax.QUESTION, sp.BeforeQuestionInConditional)
		if sp.AfterQuestionInConditional {
			p.space()
		}
		p.expr(x.Then)
		p.alignFragment(a, 1)
		p.token(syntax.COLON, sp.BeforeColonInConditional)
		if sp.AfterColonInConditional {
			p.space()
		}
		p.expr(x.Else)
	})
}

// methodCall prints a call, as a cascade if it ends a long enough chain
// of calls.
func (p *printer) methodCall(x *syntax.MethodCall) {
	if c := flattenCascade(x); c.calls >= p.opts.CascadeThreshold {
		p.cascade(c)
		return
	}
	if x.Target != nil {
		p.expr(x.Target)
		p.token(syntax.PERIOD, false)
	}
	p.ident(x.Name)
	p.args(x.Args, p.opts.Wrap.Arguments)
}

// cascade prints a chain of calls with one fragment per link, so that
// a broken chain gets each of its calls on a line of its own.
func (p *printer) cascade(c cascade) {
	p.expr(c.head)
	p.align("cascade", p.nestedMode(p.opts.Wrap.Selector), len(c.links), func(a *alignment) {
		for i, l := range c.links {
			p.alignFragment(a, i)
			p.token(syntax.PERIOD, false)
			switch l := l.(type) {
			case *syntax.MethodCall:
				p.ident(l.Name)
				p.args(l.Args, p.opts.Wrap.Arguments)
			case *syntax.SelectorExpr:
				p.ident(l.Sel)
			}
		}
	})
}
