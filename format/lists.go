// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package format

import "mvdan.cc/dartfmt/syntax"

// listStyle describes a delimited, comma-separated list such as the
// arguments of a call or the elements of a list literal.
type listStyle struct {
	name        string
	open, close syntax.Kind
	mode        Wrap

	// continuation is the indentation of broken elements, in units.
	continuation int

	beforeOpen, afterOpen, beforeClose, betweenEmpty bool
	beforeComma, afterComma                          bool

	// trailingComma allows a comma after the last element.
	trailingComma bool
}

// list prints a delimited list of n elements, calling elem to print
// each of them. The elements share one alignment. It reports whether the
// list was broken across lines.
func (p *printer) list(st listStyle, n int, elem func(i int)) bool {
	p.token(st.open, st.beforeOpen)
	if n == 0 {
		p.token(st.close, st.betweenEmpty)
		return false
	}
	if st.afterOpen {
		p.space()
	}
	split := p.alignCont(st.name, st.mode, n, st.continuation, func(a *alignment) {
		switch a.mode.split() {
		case WrapCompact, WrapNextPerLine:
			a.startColumn = p.nextColumn()
		}
		for i := 0; i < n && !p.halted(); i++ {
			if i > 0 {
				p.token(syntax.COMMA, st.beforeComma)
				if st.afterComma {
					p.space()
				}
			}
			p.alignFragment(a, i)
			elem(i)
		}
		if st.trailingComma && p.cur.isNextOneOf(syntax.COMMA) {
			p.token(syntax.COMMA, st.beforeComma)
		}
	})
	p.token(st.close, st.beforeClose)
	return split
}

func (p *printer) argStyle(mode Wrap) listStyle {
	sp := &p.opts.Spaces
	return listStyle{
		name:         "arguments",
		open:         syntax.LPAREN,
		close:        syntax.RPAREN,
		mode:         mode,
		continuation: p.opts.ContinuationIndent,
		beforeOpen:   sp.BeforeParenInInvocation,
		afterOpen:    sp.AfterParenInInvocation,
		beforeClose:  sp.BeforeClosingParenInInvocation,
		betweenEmpty: sp.BetweenEmptyParensInInvocation,
		beforeComma:  sp.BeforeCommaInArguments,
		afterComma:   sp.AfterCommaInArguments,
	}
}

// args prints the arguments of a call, an allocation or a cascade link.
func (p *printer) args(l *syntax.ArgList, mode Wrap) bool {
	return p.list(p.argStyle(mode), len(l.List), func(i int) {
		p.expr(l.List[i])
	})
}

// params prints the parameters of a function, method or constructor.
func (p *printer) params(l *syntax.ParamList, mode Wrap) bool {
	sp := &p.opts.Spaces
	st := listStyle{
		name:         "parameters",
		open:         syntax.LPAREN,
		close:        syntax.RPAREN,
		mode:         mode,
		continuation: p.opts.ContinuationIndent,
		beforeOpen:   sp.BeforeParenInDeclaration,
		afterOpen:    sp.AfterParenInDeclaration,
		beforeClose:  sp.BeforeClosingParenInDeclaration,
		betweenEmpty: sp.BetweenEmptyParensInDeclaration,
		beforeComma:  sp.BeforeCommaInParameters,
		afterComma:   sp.AfterCommaInParameters,
	}
	return p.list(st, len(l.List), func(i int) {
		p.param(l.List[i])
	})
}

func (p *printer) param(pm *syntax.Param) {
	if pm.Final.IsValid() {
		p.token(syntax.FINAL, false)
		p.space()
	}
	if pm.TypeName != nil {
		p.typeName(pm.TypeName)
		p.space()
	}
	if pm.This.IsValid() {
		p.token(syntax.THIS, false)
		p.token(syntax.PERIOD, false)
	}
	p.ident(pm.Name)
}

// listLit prints a list literal, whose elements may end with a comma.
func (p *printer) listLit(l *syntax.ListLit) {
	sp := &p.opts.Spaces
	nl := &p.opts.NewLines
	if l.Const.IsValid() {
		p.token(syntax.CONST, false)
		p.space()
	}
	st := listStyle{
		name:          "list elements",
		open:          syntax.LBRACK,
		close:         syntax.RBRACK,
		mode:          p.opts.Wrap.ListElements,
		continuation:  p.opts.ContinuationIndentList,
		beforeOpen:    sp.BeforeBracketInList,
		afterOpen:     sp.AfterBracketInList,
		beforeClose:   sp.BeforeClosingBracketInList,
		betweenEmpty:  sp.BetweenEmptyBracketsInList,
		beforeComma:   sp.BeforeCommaInList,
		afterComma:    sp.AfterCommaInList,
		trailingComma: true,
	}
	switch p.opts.Braces.List {
	case NextLine, NextLineShifted:
		p.newline()
		p.wantIndent = p.continuation()
	}
	if len(l.Elems) == 0 && !nl.KeepEmptyListOnOneLine {
		p.token(syntax.LBRACK, st.beforeOpen)
		p.newline()
		p.token(syntax.RBRACK, false)
		return
	}
	if len(l.Elems) > 0 && (nl.AfterBracketInList || nl.BeforeClosingBracketList) {
		p.bracketedList(st, l)
		return
	}
	p.list(st, len(l.Elems), func(i int) {
		p.expr(l.Elems[i])
	})
}

// bracketedList prints the elements of a list literal with line breaks
// after the opening or before the closing bracket.
func (p *printer) bracketedList(st listStyle, l *syntax.ListLit) {
	nl := &p.opts.NewLines
	outer := p.indent
	p.token(st.open, st.beforeOpen)
	p.indent += st.continuation * p.opts.indentUnit()
	if nl.AfterBracketInList {
		p.newline()
	} else if st.afterOpen {
		p.space()
	}
	p.alignCont(st.name, st.mode, len(l.Elems), 0, func(a *alignment) {
		for i, x := range l.Elems {
			if p.halted() {
				break
			}
			if i > 0 {
				p.token(syntax.COMMA, st.beforeComma)
				if st.afterComma {
					p.space()
				}
			}
			p.alignFragment(a, i)
			p.expr(x)
		}
		if p.cur.isNextOneOf(syntax.COMMA) {
			p.token(syntax.COMMA, st.beforeComma)
		}
	})
	p.indent = outer
	if nl.BeforeClosingBracketList {
		p.newline()
		p.comments()
		p.wantIndent = -1
	}
	p.token(st.close, st.beforeClose)
}

// typeName prints a type, with its type arguments if any.
func (p *printer) typeName(t *syntax.TypeName) {
	sp := &p.opts.Spaces
	p.ident(t.Name)
	if !t.Lt.IsValid() {
		return
	}
	p.token(syntax.LT, sp.BeforeAngleInTypeArguments)
	if sp.AfterAngleInTypeArguments {
		p.space()
	}
	for i, arg := range t.Args {
		if i > 0 {
			p.token(syntax.COMMA, sp.BeforeCommaInTypeArguments)
			if sp.AfterCommaInTypeArguments {
				p.space()
			}
		}
		p.typeName(arg)
	}
	p.token(syntax.GT, sp.BeforeClosingAngleInTypeArgs)
}
