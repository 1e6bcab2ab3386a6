// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import (
	"fmt"
	"strings"
	"sync"
)

// ParseMode controls the parser behaviour via a set of flags.
type ParseMode uint

const (
	ParseComments ParseMode = 1 << iota // add comments to the AST
)

var parserFree = sync.Pool{
	New: func() any { return &parser{} },
}

// Parse reads and parses a Dart compilation unit with an optional name.
// It returns the parsed file if no issues were encountered. Otherwise, a
// *LexError or a *ParseError is returned.
func Parse(src []byte, name string, mode ParseMode) (*File, error) {
	p := parserFree.Get().(*parser)
	defer parserFree.Put(p)
	p.reset()
	p.f = &File{Name: name, EOF: Pos(len(src) + 1)}
	p.src, p.mode = src, mode
	p.f.Lines = lineOffsets(src)
	if err := p.tokenize(); err != nil {
		return nil, err
	}
	p.next()
	p.file()
	if p.err != nil {
		return nil, p.err
	}
	return p.f, nil
}

func lineOffsets(src []byte) []int {
	lines := []int{0}
	for i := range src {
		if isLineBreak(src, i) {
			lines = append(lines, i+1)
		}
	}
	return lines
}

type parser struct {
	src  []byte
	f    *File
	mode ParseMode

	err error

	toks []Token
	i    int

	tok Kind
	pos Pos
	val string
}

func (p *parser) reset() {
	*p = parser{toks: p.toks[:0]}
}

// tokenize scans the whole source up front, keeping significant tokens
// for the parser and comments for the file.
func (p *parser) tokenize() error {
	s := NewScanner(p.src)
	for {
		tok, err := s.Scan()
		if err != nil {
			if lerr, ok := err.(*LexError); ok {
				lerr.Filename = p.f.Name
			}
			return err
		}
		switch tok.Kind {
		case WHITESPACE:
			continue
		case COMMENT:
			if p.mode&ParseComments != 0 {
				text := tok.Text(p.src)
				kind := LineComment
				switch {
				case strings.HasPrefix(text, "/**"):
					kind = DocComment
				case strings.HasPrefix(text, "/*"):
					kind = BlockComment
				}
				p.f.Comments = append(p.f.Comments, &Comment{
					Start: Pos(tok.Start + 1),
					Kind:  kind,
					Text:  text,
				})
			}
			continue
		}
		p.toks = append(p.toks, tok)
		if tok.Kind == EOF {
			return nil
		}
	}
}

func (p *parser) next() {
	if p.err != nil {
		return
	}
	if p.i >= len(p.toks) {
		p.i = len(p.toks) - 1
	}
	tok := p.toks[p.i]
	p.tok, p.pos, p.val = tok.Kind, Pos(tok.Start+1), tok.Text(p.src)
	if p.i < len(p.toks)-1 {
		p.i++
	}
}

// peek returns the kind of the token n places after the current one.
func (p *parser) peek(n int) Kind {
	// p.i already points one past the current token
	i := p.i + n - 1
	if i >= len(p.toks) {
		return EOF
	}
	return p.toks[i].Kind
}

func (p *parser) got(tok Kind) bool {
	if p.tok == tok {
		p.next()
		return true
	}
	return false
}

func (p *parser) followErr(pos Pos, left, right string) {
	p.posErr(pos, "%s must be followed by %s", left, right)
}

func (p *parser) follow(lpos Pos, left string, tok Kind) Pos {
	pos := p.pos
	if !p.got(tok) {
		p.followErr(lpos, left, tok.String())
	}
	return pos
}

func (p *parser) expect(tok Kind) Pos {
	pos := p.pos
	if !p.got(tok) {
		p.curErr("expected %s, found %s", tok, p.tok)
	}
	return pos
}

func (p *parser) matchingErr(lpos Pos, left, right any) {
	p.posErr(lpos, "reached %s without matching %s with %s", p.tok, left, right)
}

func (p *parser) matched(lpos Pos, left, right Kind) Pos {
	pos := p.pos
	if !p.got(right) {
		p.matchingErr(lpos, left, right)
	}
	return pos
}

func (p *parser) errPass(err error) {
	if p.err == nil {
		p.err = err
		p.tok = EOF
	}
}

// ParseError represents an error found when parsing a source file.
type ParseError struct {
	Position
	Filename, Text string
}

func (e *ParseError) Error() string {
	prefix := ""
	if e.Filename != "" {
		prefix = e.Filename + ":"
	}
	return fmt.Sprintf("%s%d:%d: %s", prefix, e.Line, e.Column, e.Text)
}

func (p *parser) posErr(pos Pos, format string, a ...any) {
	p.errPass(&ParseError{
		Position: p.f.Position(pos),
		Filename: p.f.Name,
		Text:     fmt.Sprintf(format, a...),
	})
}

func (p *parser) curErr(format string, a ...any) {
	p.posErr(p.pos, format, a...)
}

func (p *parser) ident() *Ident {
	id := &Ident{NamePos: p.pos, Name: p.val}
	p.expect(IDENT)
	return id
}

func (p *parser) file() {
	for p.tok == IMPORT {
		p.f.Imports = append(p.f.Imports, p.importDirective())
	}
	for p.tok != EOF {
		var d Decl
		switch p.tok {
		case ABSTRACT, CLASS:
			d = p.classDecl()
		case IMPORT:
			p.curErr("imports must come before declarations")
		default:
			d = p.memberDecl("")
		}
		if d != nil && p.err == nil {
			p.f.Decls = append(p.f.Decls, d)
		}
	}
}

func (p *parser) importDirective() *ImportDirective {
	d := &ImportDirective{Import: p.pos}
	p.next()
	if p.tok != STRING {
		p.followErr(d.Import, "import", "a string")
		return d
	}
	d.URI = &BasicLit{ValuePos: p.pos, Kind: STRING, Value: p.val}
	p.next()
	if p.tok == AS {
		d.As = p.pos
		p.next()
		d.Prefix = p.ident()
	}
	d.Semi = p.follow(d.Import, "import", SEMICOLON)
	return d
}

func (p *parser) classDecl() *ClassDecl {
	c := &ClassDecl{}
	if p.tok == ABSTRACT {
		c.Abstract = p.pos
		p.next()
	}
	c.Class = p.follow(c.Abstract, "abstract", CLASS)
	c.Name = p.ident()
	if p.tok == EXTENDS {
		c.Extends = p.pos
		p.next()
		c.Super = p.typeName()
	}
	if p.tok == IMPLEMENTS {
		c.Implements = p.pos
		p.next()
		for {
			c.Interfaces = append(c.Interfaces, p.typeName())
			if !p.got(COMMA) {
				break
			}
		}
	}
	c.Lbrace = p.follow(c.Class, "class name", LBRACE)
	for p.tok != RBRACE && p.tok != EOF {
		if d := p.memberDecl(c.Name.Name); d != nil {
			c.Members = append(c.Members, d)
		}
	}
	c.Rbrace = p.matched(c.Lbrace, LBRACE, RBRACE)
	return c
}

// typeName parses a type reference. A ">>" closing two type argument
// lists at once is split in two.
func (p *parser) typeName() *TypeName {
	t := &TypeName{Name: p.ident()}
	if p.tok != LT {
		return t
	}
	t.Lt = p.pos
	p.next()
	for {
		t.Args = append(t.Args, p.typeName())
		if !p.got(COMMA) {
			break
		}
	}
	t.Gt = p.pos
	switch p.tok {
	case GT:
		p.next()
	case SHR:
		tok := &p.toks[p.i-1]
		tok.Kind, tok.Start = GT, tok.Start+1
		p.tok, p.pos, p.val = GT, Pos(tok.Start+1), ">"
	default:
		p.matchingErr(t.Lt, LT, GT)
	}
	return t
}

// skipType reports the index just past a type starting at token index i,
// without consuming anything. pending counts '>' characters left over
// from a ">>" token.
func (p *parser) skipType(i int) (int, bool) {
	end, pending, ok := p.skipTypeArgs(i)
	return end, ok && pending == 0
}

func (p *parser) skipTypeArgs(i int) (end, pending int, ok bool) {
	if i >= len(p.toks) || p.toks[i].Kind != IDENT {
		return i, 0, false
	}
	i++
	if i >= len(p.toks) || p.toks[i].Kind != LT {
		return i, 0, true
	}
	i++
	for {
		var pend int
		i, pend, ok = p.skipTypeArgs(i)
		if !ok {
			return i, 0, false
		}
		if pend > 0 {
			return i, pend - 1, true
		}
		if i < len(p.toks) && p.toks[i].Kind == COMMA {
			i++
			continue
		}
		break
	}
	if i >= len(p.toks) {
		return i, 0, false
	}
	switch p.toks[i].Kind {
	case GT:
		return i + 1, 0, true
	case SHR:
		return i + 1, 1, true
	}
	return i, 0, false
}

// typedDeclAhead reports whether the current token starts "Type name"
// followed by one of the given kinds.
func (p *parser) typedDeclAhead(follow ...Kind) bool {
	if p.tok != IDENT {
		return false
	}
	i, ok := p.skipType(p.i - 1)
	if !ok || i+1 >= len(p.toks) || p.toks[i].Kind != IDENT {
		return false
	}
	next := p.toks[i+1].Kind
	for _, k := range follow {
		if next == k {
			return true
		}
	}
	return false
}

// memberDecl parses a field, method or constructor of the named class,
// or a top-level declaration if className is empty.
func (p *parser) memberDecl(className string) Decl {
	var static Pos
	if p.tok == STATIC {
		static = p.pos
		p.next()
	}
	switch p.tok {
	case VAR, FINAL, CONST:
		d := p.varDecl()
		d.Static = static
		d.Semi = p.follow(d.Pos(), "variable declaration", SEMICOLON)
		return d
	case IDENT:
	default:
		p.curErr("expected a declaration, found %s", p.tok)
		return nil
	}
	if p.peek(1) == LPAREN || (p.val == className && p.peek(1) == PERIOD) {
		fd := &FuncDecl{Static: static, Name: p.ident()}
		if p.tok == PERIOD {
			fd.Period = p.pos
			p.next()
			fd.CtorName = p.ident()
		}
		p.funcRest(fd)
		return fd
	}
	typ := p.typeName()
	if p.peek(1) == LPAREN {
		fd := &FuncDecl{Static: static, ResultType: typ, Name: p.ident()}
		p.funcRest(fd)
		return fd
	}
	d := &VarDecl{Static: static, TypeName: typ}
	p.variables(d)
	d.Semi = p.follow(d.Pos(), "variable declaration", SEMICOLON)
	return d
}

func (p *parser) funcRest(fd *FuncDecl) {
	fd.Params = p.paramList()
	if p.tok == COLON {
		fd.Colon = p.pos
		p.next()
		for {
			fd.Initializers = append(fd.Initializers, p.expr())
			if !p.got(COMMA) {
				break
			}
		}
	}
	switch p.tok {
	case LBRACE:
		fd.Body = p.block()
	case ARROW:
		b := &ExprBody{Arrow: p.pos}
		p.next()
		b.X = p.expr()
		b.Semi = p.follow(b.Arrow, "=> expression", SEMICOLON)
		fd.Body = b
	case SEMICOLON:
		fd.Semi = p.pos
		p.next()
	default:
		p.followErr(fd.Params.Rparen, "parameter list", "a function body")
	}
}

func (p *parser) paramList() *ParamList {
	l := &ParamList{Lparen: p.expect(LPAREN)}
	if p.tok != RPAREN {
		for {
			l.List = append(l.List, p.param())
			if !p.got(COMMA) {
				break
			}
		}
	}
	l.Rparen = p.matched(l.Lparen, LPAREN, RPAREN)
	return l
}

func (p *parser) param() *Param {
	pm := &Param{}
	if p.tok == FINAL {
		pm.Final = p.pos
		p.next()
	}
	if p.tok == IDENT && (p.peek(1) == IDENT || p.peek(1) == LT || p.peek(1) == THIS) {
		pm.TypeName = p.typeName()
	}
	if p.tok == THIS {
		pm.This = p.pos
		p.next()
		pm.Period = p.follow(pm.This, "this", PERIOD)
	}
	pm.Name = p.ident()
	return pm
}

// varDecl parses a declaration starting with var, final or const, or a
// typed one, up to and excluding the semicolon.
func (p *parser) varDecl() *VarDecl {
	d := &VarDecl{}
	switch p.tok {
	case VAR, FINAL, CONST:
		d.Keyword, d.KeywordPos = p.tok, p.pos
		p.next()
		if d.Keyword != VAR && p.tok == IDENT && p.peek(1) != ASSIGN &&
			p.peek(1) != SEMICOLON && p.peek(1) != COMMA && p.peek(1) != IN {
			d.TypeName = p.typeName()
		}
	default:
		d.TypeName = p.typeName()
	}
	p.variables(d)
	return d
}

func (p *parser) variables(d *VarDecl) {
	for {
		v := &Variable{Name: p.ident()}
		if p.tok == ASSIGN {
			v.Assign = p.pos
			p.next()
			v.Value = p.expr()
		}
		d.Vars = append(d.Vars, v)
		if !p.got(COMMA) {
			break
		}
	}
}

func (p *parser) block() *Block {
	b := &Block{Lbrace: p.expect(LBRACE)}
	for p.tok != RBRACE && p.tok != EOF {
		if s := p.stmt(); s != nil {
			b.Stmts = append(b.Stmts, s)
		}
	}
	b.Rbrace = p.matched(b.Lbrace, LBRACE, RBRACE)
	return b
}

func (p *parser) stmt() Stmt {
	switch p.tok {
	case LBRACE:
		return p.block()
	case VAR, FINAL:
		d := p.varDecl()
		d.Semi = p.follow(d.Pos(), "variable declaration", SEMICOLON)
		return d
	case CONST:
		if p.peek(1) == LBRACK || p.peek(2) == LPAREN || p.peek(2) == PERIOD {
			break // a const expression
		}
		d := p.varDecl()
		d.Semi = p.follow(d.Pos(), "variable declaration", SEMICOLON)
		return d
	case IF:
		return p.ifStmt()
	case FOR:
		return p.forStmt()
	case WHILE:
		s := &WhileStmt{While: p.pos}
		p.next()
		s.Lparen, s.Cond, s.Rparen = p.parenCond(s.While, "while")
		s.Body = p.stmt()
		return s
	case DO:
		s := &DoStmt{Do: p.pos}
		p.next()
		s.Body = p.stmt()
		s.While = p.follow(s.Do, "do body", WHILE)
		s.Lparen, s.Cond, s.Rparen = p.parenCond(s.While, "while")
		s.Semi = p.follow(s.While, "do-while", SEMICOLON)
		return s
	case RETURN:
		s := &ReturnStmt{Return: p.pos}
		p.next()
		if p.tok != SEMICOLON {
			s.X = p.expr()
		}
		s.Semi = p.follow(s.Return, "return", SEMICOLON)
		return s
	case BREAK:
		s := &BreakStmt{Break: p.pos}
		p.next()
		if p.tok == IDENT {
			s.Label = p.ident()
		}
		s.Semi = p.follow(s.Break, "break", SEMICOLON)
		return s
	case CONTINUE:
		s := &ContinueStmt{Continue: p.pos}
		p.next()
		if p.tok == IDENT {
			s.Label = p.ident()
		}
		s.Semi = p.follow(s.Continue, "continue", SEMICOLON)
		return s
	case THROW:
		s := &ThrowStmt{Throw: p.pos}
		p.next()
		s.X = p.expr()
		s.Semi = p.follow(s.Throw, "throw", SEMICOLON)
		return s
	case SEMICOLON:
		s := &EmptyStmt{Semi: p.pos}
		p.next()
		return s
	case IDENT:
		if p.typedDeclAhead(ASSIGN, SEMICOLON, COMMA) {
			d := p.varDecl()
			d.Semi = p.follow(d.Pos(), "variable declaration", SEMICOLON)
			return d
		}
	case EOF:
		p.curErr("unexpected end of file")
		return nil
	}
	s := &ExprStmt{X: p.expr()}
	s.Semi = p.follow(s.X.Pos(), "expression", SEMICOLON)
	return s
}

func (p *parser) parenCond(lpos Pos, left string) (lparen Pos, cond Expr, rparen Pos) {
	lparen = p.follow(lpos, left, LPAREN)
	cond = p.expr()
	rparen = p.matched(lparen, LPAREN, RPAREN)
	return
}

func (p *parser) ifStmt() *IfStmt {
	s := &IfStmt{If: p.pos}
	p.next()
	s.Lparen, s.Cond, s.Rparen = p.parenCond(s.If, "if")
	s.Then = p.stmt()
	if p.tok == ELSE {
		s.Else = p.pos
		p.next()
		s.ElseBr = p.stmt()
	}
	return s
}

func (p *parser) forStmt() Stmt {
	forPos := p.pos
	p.next()
	lparen := p.follow(forPos, "for", LPAREN)
	switch {
	case p.tok == VAR || p.tok == FINAL || p.typedDeclAhead(IN, ASSIGN, SEMICOLON, COMMA):
		d := p.varDecl()
		if p.tok == IN {
			s := &ForInStmt{For: forPos, Lparen: lparen, Decl: d}
			p.forInRest(s)
			return s
		}
		return p.forRest(&ForStmt{For: forPos, Lparen: lparen, Init: d})
	case p.tok == IDENT && p.peek(1) == IN:
		s := &ForInStmt{For: forPos, Lparen: lparen, Var: p.ident()}
		p.forInRest(s)
		return s
	case p.tok == SEMICOLON:
		return p.forRest(&ForStmt{For: forPos, Lparen: lparen})
	}
	return p.forRest(&ForStmt{For: forPos, Lparen: lparen, Init: p.expr()})
}

func (p *parser) forInRest(s *ForInStmt) {
	s.In = p.expect(IN)
	s.Iter = p.expr()
	s.Rparen = p.matched(s.Lparen, LPAREN, RPAREN)
	s.Body = p.stmt()
}

func (p *parser) forRest(s *ForStmt) *ForStmt {
	s.Semi1 = p.expect(SEMICOLON)
	if p.tok != SEMICOLON {
		s.Cond = p.expr()
	}
	s.Semi2 = p.expect(SEMICOLON)
	if p.tok != RPAREN {
		for {
			s.Updates = append(s.Updates, p.expr())
			if !p.got(COMMA) {
				break
			}
		}
	}
	s.Rparen = p.matched(s.Lparen, LPAREN, RPAREN)
	s.Body = p.stmt()
	return s
}

func isAssignOp(k Kind) bool { return k >= ASSIGN && k <= SHR_ASSIGN }

func (p *parser) expr() Expr {
	x := p.condExpr()
	if isAssignOp(p.tok) {
		a := &AssignExpr{X: x, OpPos: p.pos, Op: AssignOp(p.tok)}
		p.next()
		a.Y = p.expr()
		return a
	}
	return x
}

func (p *parser) condExpr() Expr {
	x := p.binaryExpr(1)
	if p.tok != QUESTION {
		return x
	}
	c := &CondExpr{Cond: x, Quest: p.pos}
	p.next()
	c.Then = p.expr()
	c.Colon = p.follow(c.Quest, "?", COLON)
	c.Else = p.expr()
	return c
}

func (p *parser) binaryExpr(prec int) Expr {
	x := p.unaryExpr()
	for {
		op := BinaryOp(p.tok)
		oprec := op.Precedence()
		if oprec == 0 || oprec < prec {
			return x
		}
		b := &BinaryExpr{X: x, OpPos: p.pos, Op: op}
		p.next()
		b.Y = p.binaryExpr(oprec + 1)
		x = b
	}
}

func (p *parser) unaryExpr() Expr {
	switch p.tok {
	case SUB, NOT, TILDE, INC, DEC:
		u := &UnaryExpr{OpPos: p.pos, Op: UnaryOp(p.tok)}
		p.next()
		u.X = p.unaryExpr()
		return u
	}
	return p.postfixExpr(p.primaryExpr())
}

func (p *parser) postfixExpr(x Expr) Expr {
	for p.err == nil {
		switch p.tok {
		case PERIOD:
			period := p.pos
			p.next()
			name := p.ident()
			if p.tok == LPAREN {
				x = &MethodCall{Target: x, Period: period, Name: name, Args: p.argList()}
			} else {
				x = &SelectorExpr{X: x, Period: period, Sel: name}
			}
		case LPAREN:
			if id, ok := x.(*Ident); ok {
				x = &MethodCall{Name: id, Args: p.argList()}
			} else {
				x = &CallExpr{Fun: x, Args: p.argList()}
			}
		case LBRACK:
			e := &IndexExpr{X: x, Lbrack: p.pos}
			p.next()
			e.Index = p.expr()
			e.Rbrack = p.matched(e.Lbrack, LBRACK, RBRACK)
			x = e
		case INC, DEC:
			x = &UnaryExpr{OpPos: p.pos, Op: UnaryOp(p.tok), Post: true, X: x}
			p.next()
			return x
		default:
			return x
		}
	}
	return x
}

func (p *parser) argList() *ArgList {
	l := &ArgList{Lparen: p.expect(LPAREN)}
	if p.tok != RPAREN {
		for {
			if p.tok == IDENT && p.peek(1) == COLON {
				a := &NamedArg{Name: p.ident(), Colon: p.pos}
				p.next()
				a.X = p.expr()
				l.List = append(l.List, a)
			} else {
				l.List = append(l.List, p.expr())
			}
			if !p.got(COMMA) {
				break
			}
		}
	}
	l.Rparen = p.matched(l.Lparen, LPAREN, RPAREN)
	return l
}

func (p *parser) primaryExpr() Expr {
	switch p.tok {
	case IDENT:
		return p.ident()
	case INT, DOUBLE, STRING, TRUE, FALSE, NULL:
		l := &BasicLit{ValuePos: p.pos, Kind: p.tok, Value: p.val}
		p.next()
		return l
	case THIS:
		e := &ThisExpr{This: p.pos}
		p.next()
		return e
	case SUPER:
		e := &SuperExpr{Super: p.pos}
		p.next()
		return e
	case LPAREN:
		e := &ParenExpr{Lparen: p.pos}
		p.next()
		e.X = p.expr()
		e.Rparen = p.matched(e.Lparen, LPAREN, RPAREN)
		return e
	case LBRACK:
		return p.listLit(0)
	case CONST:
		if p.peek(1) == LBRACK {
			pos := p.pos
			p.next()
			return p.listLit(pos)
		}
		fallthrough
	case NEW:
		e := &NewExpr{KeywordPos: p.pos, Keyword: p.tok}
		p.next()
		e.TypeName = p.typeName()
		if p.tok == PERIOD {
			e.Period = p.pos
			p.next()
			e.Ctor = p.ident()
		}
		e.Args = p.argList()
		return e
	}
	p.curErr("expected an expression, found %s", p.tok)
	return &Ident{NamePos: p.pos}
}

func (p *parser) listLit(constPos Pos) *ListLit {
	l := &ListLit{Const: constPos, Lbrack: p.expect(LBRACK)}
	if p.tok != RBRACK {
		for {
			l.Elems = append(l.Elems, p.expr())
			if !p.got(COMMA) || p.tok == RBRACK {
				break
			}
		}
	}
	l.Rbrack = p.matched(l.Lbrack, LBRACK, RBRACK)
	return l
}
