// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package format

import (
	"strings"

	"mvdan.cc/dartfmt/syntax"
)

func (p *printer) ident(id *syntax.Ident) { p.token(syntax.IDENT, false) }

func (p *printer) keyword(k syntax.Kind) {
	p.token(k, false)
	p.space()
}

func (p *printer) semicolon() {
	p.token(syntax.SEMICOLON, p.opts.Spaces.BeforeSemicolon)
}

func (p *printer) file(f *syntax.File) {
	bl := &p.opts.BlankLines
	if len(f.Imports) > 0 {
		// header comments come first
		p.comments()
		p.blankLines(bl.BeforeImports)
	}
	for i, imp := range f.Imports {
		switch {
		case i == 0:
		case importGroup(imp) != importGroup(f.Imports[i-1]):
			p.blankLines(bl.BetweenImportGroups)
		default:
			p.newline()
		}
		p.importDirective(imp)
	}
	for i, d := range f.Decls {
		switch {
		case i > 0:
			p.declBlankLines(f.Decls[i-1], d)
		case len(f.Imports) > 0:
			p.blankLines(bl.AfterImports)
		}
		p.decl(d)
	}
	p.eof()
}

// importGroup classifies an import by the scheme of its URI, so that
// groups of dart:, package: and relative imports are kept apart.
func importGroup(d *syntax.ImportDirective) int {
	uri := strings.Trim(d.URI.Value, `'"`)
	switch {
	case strings.HasPrefix(uri, "dart:"):
		return 0
	case strings.HasPrefix(uri, "package:"):
		return 1
	}
	return 2
}

func (p *printer) importDirective(d *syntax.ImportDirective) {
	p.keyword(syntax.IMPORT)
	p.token(syntax.STRING, false)
	if d.As.IsValid() {
		p.space()
		p.keyword(syntax.AS)
		p.ident(d.Prefix)
	}
	p.semicolon()
}

// declBlankLines asks for the empty lines wanted between two
// consecutive declarations, either at the top level or in a class.
func (p *printer) declBlankLines(prev, d syntax.Decl) {
	bl := &p.opts.BlankLines
	n := 0
	switch d.(type) {
	case *syntax.ClassDecl:
		n = bl.BetweenTypes
	case *syntax.FuncDecl:
		n = bl.BeforeMethod
	case *syntax.VarDecl:
		n = bl.BeforeField
	}
	if declKind(prev) != declKind(d) {
		n = max(n, bl.BeforeNewChunk)
	}
	p.newline()
	p.blankLines(n)
}

func declKind(d syntax.Decl) int {
	switch d.(type) {
	case *syntax.ClassDecl:
		return 1
	case *syntax.FuncDecl:
		return 2
	}
	return 3
}

func (p *printer) decl(d syntax.Decl) {
	switch d := d.(type) {
	case *syntax.ClassDecl:
		p.classDecl(d)
	case *syntax.FuncDecl:
		p.funcDecl(d)
	case *syntax.VarDecl:
		p.varDecl(d)
	default:
		p.missing(d)
	}
}

func (p *printer) classDecl(c *syntax.ClassDecl) {
	sp := &p.opts.Spaces
	if c.Abstract.IsValid() {
		p.keyword(syntax.ABSTRACT)
	}
	p.keyword(syntax.CLASS)
	p.ident(c.Name)
	wrapped := false
	if c.Super != nil {
		wrapped = p.align("superclass", p.opts.Wrap.Superclass, 1, func(a *alignment) {
			p.space()
			p.alignFragment(a, 0)
			p.keyword(syntax.EXTENDS)
			p.typeName(c.Super)
		})
	}
	if len(c.Interfaces) > 0 {
		split := p.align("superinterfaces", p.opts.Wrap.Superinterfaces, len(c.Interfaces)+1, func(a *alignment) {
			p.space()
			p.alignFragment(a, 0)
			p.keyword(syntax.IMPLEMENTS)
			for i, t := range c.Interfaces {
				if i > 0 {
					p.token(syntax.COMMA, sp.BeforeCommaInSuperinterfaces)
					if sp.AfterCommaInSuperinterfaces {
						p.space()
					}
				}
				p.alignFragment(a, i+1)
				p.typeName(t)
			}
		})
		wrapped = wrapped || split
	}
	shifted := p.openBrace(p.opts.Braces.Class, sp.BeforeBraceInClass, wrapped)

	outer := p.class
	p.class = c.Name.Name
	defer func() { p.class = outer }()
	indented := p.opts.IndentClassMembers
	if indented {
		p.indentIn()
	}
	for i, m := range c.Members {
		if i == 0 {
			p.newline()
			p.blankLines(p.opts.BlankLines.BeforeFirstMember)
		} else {
			p.declBlankLines(c.Members[i-1], m)
		}
		p.decl(m)
	}
	p.closeBrace(indented, shifted, len(c.Members) > 0 || p.opts.NewLines.InEmptyClass)
}

// openBrace prints an opening brace placed as pos says. wrapped tells
// whether the header before the brace was broken across lines. It
// reports whether the braces were shifted in by one level.
func (p *printer) openBrace(pos BracePosition, space, wrapped bool) (shifted bool) {
	switch pos {
	case NextLine:
		p.newline()
	case NextLineShifted:
		p.newline()
		p.indentIn()
		shifted = true
	case NextLineOnWrap:
		if wrapped {
			p.newline()
		}
	}
	p.token(syntax.LBRACE, space)
	return shifted
}

// closeBrace prints the closing brace of a body. Comments before the
// brace stay at the indentation of the body.
func (p *printer) closeBrace(indented, shifted, newline bool) {
	if newline {
		p.newline()
	}
	if indented {
		p.comments()
		p.unindent()
	}
	p.wantIndent = -1
	p.token(syntax.RBRACE, false)
	if shifted {
		p.unindent()
	}
}

func (p *printer) funcDecl(fd *syntax.FuncDecl) {
	ctor := fd.ResultType == nil && p.class != "" && fd.Name.Name == p.class
	if fd.Static.IsValid() {
		p.keyword(syntax.STATIC)
	}
	if fd.ResultType != nil {
		p.typeName(fd.ResultType)
		p.space()
	}
	params := p.opts.Wrap.Parameters
	if ctor {
		params = p.opts.Wrap.ConstructorParams
	}
	wrapped := false
	p.align("method declaration", p.opts.Wrap.MethodDeclaration, 1, func(a *alignment) {
		a.startColumn = p.nextColumn()
		p.alignFragment(a, 0)
		p.ident(fd.Name)
		if fd.CtorName != nil {
			p.token(syntax.PERIOD, false)
			p.ident(fd.CtorName)
		}
		wrapped = p.params(fd.Params, params)
	})
	if fd.Colon.IsValid() {
		split := p.initializers(fd.Initializers)
		wrapped = wrapped || split
	}
	switch b := fd.Body.(type) {
	case *syntax.Block:
		p.methodBody(b, ctor, wrapped)
	case *syntax.ExprBody:
		p.exprBody(b)
	default:
		p.semicolon()
	}
}

// initializers prints a constructor's initializer list, starting at its
// colon. A single initializer is never broken away from the colon.
func (p *printer) initializers(list []syntax.Expr) bool {
	sp := &p.opts.Spaces
	colon := func() {
		p.token(syntax.COLON, sp.BeforeColonInInitializers)
		if sp.AfterColonInInitializers {
			p.space()
		}
	}
	if len(list) == 1 {
		colon()
		p.expr(list[0])
		return false
	}
	mode := p.opts.Wrap.Initializers
	if len(list) > 3 {
		mode |= WrapForce
	}
	return p.align("initializers", mode, len(list), func(a *alignment) {
		for i, x := range list {
			if i > 0 {
				p.token(syntax.COMMA, sp.BeforeCommaInDeclarations)
				if sp.AfterCommaInDeclarations {
					p.space()
				}
			}
			p.alignFragment(a, i)
			if i == 0 {
				colon()
			}
			p.expr(x)
		}
	})
}

func (p *printer) methodBody(b *syntax.Block, ctor, wrapped bool) {
	pos, space := p.opts.Braces.Method, p.opts.Spaces.BeforeBraceInMethod
	if ctor {
		pos, space = p.opts.Braces.Constructor, p.opts.Spaces.BeforeBraceInConstructor
	}
	shifted := p.openBrace(pos, space, wrapped)
	p.blockBody(b, p.opts.IndentBodyStatements, p.opts.BlankLines.AtBeginningOfMethod,
		p.opts.NewLines.InEmptyMethodBody, shifted)
}

func (p *printer) exprBody(b *syntax.ExprBody) {
	sp := &p.opts.Spaces
	p.token(syntax.ARROW, sp.BeforeArrow)
	if sp.AfterArrow {
		p.space()
	}
	p.expr(b.X)
	p.semicolon()
}

// varDecl prints a variable declaration, along with its semicolon unless
// it is part of a for loop header.
func (p *printer) varDecl(d *syntax.VarDecl) {
	sp := &p.opts.Spaces
	if d.Static.IsValid() {
		p.keyword(syntax.STATIC)
	}
	if d.KeywordPos.IsValid() {
		p.keyword(d.Keyword)
	}
	if d.TypeName != nil {
		p.typeName(d.TypeName)
		p.space()
	}
	if len(d.Vars) == 1 {
		p.variable(d.Vars[0])
	} else {
		p.align("multiple fields", p.opts.Wrap.MultipleFields, len(d.Vars), func(a *alignment) {
			a.startColumn = p.nextColumn()
			for i, v := range d.Vars {
				if i > 0 {
					p.token(syntax.COMMA, sp.BeforeCommaInDeclarations)
					if sp.AfterCommaInDeclarations {
						p.space()
					}
				}
				p.alignFragment(a, i)
				p.variable(v)
			}
		})
	}
	if d.Semi.IsValid() {
		p.semicolon()
	}
}

func (p *printer) variable(v *syntax.Variable) {
	p.ident(v.Name)
	if v.Assign.IsValid() {
		p.assignment(syntax.ASSIGN, v.Value)
	}
}

// assignment prints an assignment operator of kind k and its right hand
// side, which may be moved to the next line.
func (p *printer) assignment(k syntax.Kind, y syntax.Expr) {
	sp := &p.opts.Spaces
	p.token(k, sp.BeforeAssignmentOperator)
	if sp.AfterAssignmentOperator {
		p.space()
	}
	mode := p.opts.Wrap.Assignment
	if !mode.canSplit() {
		p.expr(y)
		return
	}
	p.align("assignment", mode, 1, func(a *alignment) {
		a.startColumn = p.nextColumn()
		p.alignFragment(a, 0)
		p.expr(y)
	})
}
