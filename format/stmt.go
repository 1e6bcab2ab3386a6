// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package format

import "mvdan.cc/dartfmt/syntax"

func (p *printer) stmt(s syntax.Stmt) {
	sp := &p.opts.Spaces
	switch s := s.(type) {
	case *syntax.Block:
		p.block(s)
	case *syntax.VarDecl:
		p.varDecl(s)
	case *syntax.ExprStmt:
		p.expr(s.X)
		p.semicolon()
	case *syntax.IfStmt:
		p.ifStmt(s)
	case *syntax.ForStmt:
		p.forStmt(s)
	case *syntax.ForInStmt:
		p.forInStmt(s)
	case *syntax.WhileStmt:
		p.token(syntax.WHILE, false)
		p.parenCond(s.Cond, sp.BeforeParenInWhile, sp.AfterParenInWhile, sp.BeforeClosingParenInWhile)
		p.body(s.Body)
	case *syntax.DoStmt:
		p.token(syntax.DO, false)
		if p.body(s.Body) && !p.opts.NewLines.BeforeWhileInDo {
			if sp.AfterClosingBraceInBlock {
				p.space()
			}
		} else {
			p.newline()
		}
		p.token(syntax.WHILE, false)
		p.parenCond(s.Cond, sp.BeforeParenInWhile, sp.AfterParenInWhile, sp.BeforeClosingParenInWhile)
		p.semicolon()
	case *syntax.ReturnStmt:
		p.token(syntax.RETURN, false)
		if s.X != nil {
			p.returnValue(s.X, sp.BeforeParenthesizedInReturn)
		}
		p.semicolon()
	case *syntax.ThrowStmt:
		p.token(syntax.THROW, false)
		p.returnValue(s.X, sp.BeforeParenthesizedInThrow)
		p.semicolon()
	case *syntax.BreakStmt:
		p.token(syntax.BREAK, false)
		if s.Label != nil {
			p.space()
			p.ident(s.Label)
		}
		p.semicolon()
	case *syntax.ContinueStmt:
		p.token(syntax.CONTINUE, false)
		if s.Label != nil {
			p.space()
			p.ident(s.Label)
		}
		p.semicolon()
	case *syntax.EmptyStmt:
		p.semicolon()
	default:
		p.missing(s)
	}
}

// returnValue prints the value after return or throw.
func (p *printer) returnValue(x syntax.Expr, spaceParen bool) {
	if _, ok := x.(*syntax.ParenExpr); !ok || spaceParen {
		p.space()
	}
	p.expr(x)
}

func (p *printer) block(b *syntax.Block) {
	shifted := p.openBrace(p.opts.Braces.Block, p.opts.Spaces.BeforeBraceInBlock, false)
	p.blockBody(b, p.opts.IndentBlockStatements, 0, p.opts.NewLines.InEmptyBlock, shifted)
}

// blockBody prints the statements of a block after its opening brace,
// and the closing brace. first is the number of empty lines wanted
// before the first statement.
func (p *printer) blockBody(b *syntax.Block, indent bool, first int, newlineIfEmpty, shifted bool) {
	if indent {
		p.indentIn()
	}
	for i, s := range b.Stmts {
		p.newline()
		if i == 0 {
			p.blankLines(first)
		}
		p.stmt(s)
	}
	p.closeBrace(indent, shifted, len(b.Stmts) > 0 || newlineIfEmpty)
}

// body prints the body of a control statement, and reports whether it
// was a block. Other statements go on their own line, indented.
func (p *printer) body(s syntax.Stmt) bool {
	switch s := s.(type) {
	case *syntax.Block:
		p.block(s)
		return true
	case *syntax.EmptyStmt:
		if !p.opts.NewLines.EmptyStatementOnNewLine {
			p.semicolon()
			return false
		}
	}
	p.indentIn()
	p.newline()
	p.stmt(s)
	p.unindent()
	return false
}

func (p *printer) parenCond(x syntax.Expr, before, after, beforeClose bool) {
	p.token(syntax.LPAREN, before)
	if after {
		p.space()
	}
	p.expr(x)
	p.token(syntax.RPAREN, beforeClose)
}

func (p *printer) ifStmt(s *syntax.IfStmt) {
	sp, nl := &p.opts.Spaces, &p.opts.NewLines
	p.token(syntax.IF, false)
	p.parenCond(s.Cond, sp.BeforeParenInIf, sp.AfterParenInIf, sp.BeforeClosingParenInIf)
	block := false
	if _, ok := s.Then.(*syntax.Block); ok || !p.keepThen(s) {
		block = p.body(s.Then)
	} else {
		p.sameLine("if", s.Then)
	}
	if !s.Else.IsValid() {
		return
	}
	if block && !nl.BeforeElse {
		if sp.AfterClosingBraceInBlock {
			p.space()
		}
	} else {
		p.newline()
	}
	p.token(syntax.ELSE, false)
	switch br := s.ElseBr.(type) {
	case *syntax.IfStmt:
		if nl.CompactElseIf {
			p.space()
			p.ifStmt(br)
			return
		}
	case *syntax.Block:
		p.body(br)
		return
	}
	if nl.KeepElseOnSameLine {
		p.sameLine("else", s.ElseBr)
		return
	}
	p.body(s.ElseBr)
}

// keepThen reports whether the statement run by an if stays on the line
// of its condition.
func (p *printer) keepThen(s *syntax.IfStmt) bool {
	nl := &p.opts.NewLines
	if nl.KeepThenOnSameLine {
		return true
	}
	if s.Else.IsValid() {
		return false
	}
	if nl.KeepSimpleIfOnOneLine {
		return true
	}
	switch s.Then.(type) {
	case *syntax.ReturnStmt, *syntax.ThrowStmt, *syntax.BreakStmt, *syntax.ContinueStmt:
		return nl.KeepGuardClauseOnOneLine
	}
	return false
}

// sameLine prints a statement after the keyword before it, moving it to
// the next line only if it does not fit.
func (p *printer) sameLine(name string, s syntax.Stmt) {
	p.alignCont(name, p.opts.Wrap.CompactIf, 1, 1, func(a *alignment) {
		p.space()
		p.alignFragment(a, 0)
		p.stmt(s)
	})
}

func (p *printer) forStmt(s *syntax.ForStmt) {
	sp := &p.opts.Spaces
	p.token(syntax.FOR, false)
	p.token(syntax.LPAREN, sp.BeforeParenInFor)
	if sp.AfterParenInFor {
		p.space()
	}
	switch init := s.Init.(type) {
	case *syntax.VarDecl:
		p.varDecl(init)
	case syntax.Expr:
		p.expr(init)
	}
	p.token(syntax.SEMICOLON, sp.BeforeSemicolonInFor)
	if s.Cond != nil {
		if sp.AfterSemicolonInFor {
			p.space()
		}
		p.expr(s.Cond)
	}
	p.token(syntax.SEMICOLON, sp.BeforeSemicolonInFor)
	for i, x := range s.Updates {
		if i > 0 {
			p.token(syntax.COMMA, sp.BeforeCommaInForUpdates)
			if sp.AfterCommaInForUpdates {
				p.space()
			}
		} else if sp.AfterSemicolonInFor {
			p.space()
		}
		p.expr(x)
	}
	p.token(syntax.RPAREN, sp.BeforeClosingParenInFor)
	p.body(s.Body)
}

func (p *printer) forInStmt(s *syntax.ForInStmt) {
	sp := &p.opts.Spaces
	p.token(syntax.FOR, false)
	p.token(syntax.LPAREN, sp.BeforeParenInFor)
	if sp.AfterParenInFor {
		p.space()
	}
	if s.Decl != nil {
		p.varDecl(s.Decl)
	} else {
		p.ident(s.Var)
	}
	p.space()
	p.keyword(syntax.IN)
	p.expr(s.Iter)
	p.token(syntax.RPAREN, sp.BeforeClosingParenInFor)
	p.body(s.Body)
}
