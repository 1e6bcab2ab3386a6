// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

// Node represents an AST node.
type Node interface {
	// Pos returns the first character of the node
	Pos() Pos
	// End returns the character immediately after the node
	End() Pos
}

// File is a Dart compilation unit.
type File struct {
	Name string

	Imports  []*ImportDirective
	Decls    []Decl
	Comments []*Comment

	// Lines contains the offset of the first character for each
	// line (the first entry is always 0)
	Lines []int

	// EOF is the position just past the last character of the source.
	EOF Pos
}

func (f *File) Pos() Pos {
	if len(f.Imports) > 0 {
		return f.Imports[0].Pos()
	}
	if len(f.Decls) > 0 {
		return f.Decls[0].Pos()
	}
	return 1
}
func (f *File) End() Pos { return f.EOF }

func (f *File) Position(p Pos) (pos Position) {
	intp := int(p)
	pos.Offset = intp - 1
	if i := searchInts(f.Lines, intp-1); i >= 0 {
		pos.Line, pos.Column = i+1, intp-f.Lines[i]
	}
	return
}

// Inlined version of:
// sort.Search(len(a), func(i int) bool { return a[i] > x }) - 1
func searchInts(a []int, x int) int {
	i, j := 0, len(a)
	for i < j {
		h := i + (j-i)/2
		if a[h] <= x {
			i = h + 1
		} else {
			j = h
		}
	}
	return i - 1
}

func posAdd(pos Pos, n int) Pos { return pos + Pos(n) }

func posAddStr(pos Pos, s string) Pos { return posAdd(pos, len(s)) }

// CommentKind distinguishes the three comment forms.
type CommentKind int

const (
	LineComment  CommentKind = iota // a // comment, ending at the line end
	BlockComment                    // a /* */ comment
	DocComment                      // a /** */ comment
)

// Comment represents a single comment. The text includes the comment
// markers.
type Comment struct {
	Start Pos
	Kind  CommentKind
	Text  string
}

func (c *Comment) Pos() Pos { return c.Start }
func (c *Comment) End() Pos { return posAddStr(c.Start, c.Text) }

// ImportDirective is an import with an optional "as" prefix.
type ImportDirective struct {
	Import Pos
	URI    *BasicLit
	As     Pos // zero if there is no prefix
	Prefix *Ident
	Semi   Pos
}

func (d *ImportDirective) Pos() Pos { return d.Import }
func (d *ImportDirective) End() Pos { return posAdd(d.Semi, 1) }

// Decl is implemented by top-level and class member declarations.
type Decl interface {
	Node
	declNode()
}

func (*ClassDecl) declNode() {}
func (*FuncDecl) declNode()  {}
func (*VarDecl) declNode()   {}

// ClassDecl is a class declaration.
type ClassDecl struct {
	Abstract   Pos // zero if not abstract
	Class      Pos
	Name       *Ident
	Extends    Pos // zero if there is no superclass
	Super      *TypeName
	Implements Pos // zero if there are no interfaces
	Interfaces []*TypeName
	Lbrace     Pos
	Members    []Decl
	Rbrace     Pos
}

func (c *ClassDecl) Pos() Pos {
	if c.Abstract.IsValid() {
		return c.Abstract
	}
	return c.Class
}
func (c *ClassDecl) End() Pos { return posAdd(c.Rbrace, 1) }

// TypeName is a possibly generic type reference, such as List<int>.
type TypeName struct {
	Name *Ident
	Lt   Pos // zero if there are no type arguments
	Args []*TypeName
	Gt   Pos
}

func (t *TypeName) Pos() Pos { return t.Name.Pos() }
func (t *TypeName) End() Pos {
	if t.Lt.IsValid() {
		return posAdd(t.Gt, 1)
	}
	return t.Name.End()
}

// FuncDecl is a function, method or constructor declaration. Constructors
// have no result type; named constructors also carry CtorName.
type FuncDecl struct {
	Static     Pos // zero if not static
	ResultType *TypeName
	Name       *Ident
	Period     Pos
	CtorName   *Ident
	Params     *ParamList

	Colon        Pos // zero if there is no initializer list
	Initializers []Expr

	Body FuncBody // nil for a declaration ending in a semicolon
	Semi Pos
}

func (f *FuncDecl) Pos() Pos {
	switch {
	case f.Static.IsValid():
		return f.Static
	case f.ResultType != nil:
		return f.ResultType.Pos()
	}
	return f.Name.Pos()
}
func (f *FuncDecl) End() Pos {
	if f.Body != nil {
		return f.Body.End()
	}
	return posAdd(f.Semi, 1)
}

// FuncBody is either a *Block or an *ExprBody.
type FuncBody interface {
	Node
	funcBodyNode()
}

func (*Block) funcBodyNode()    {}
func (*ExprBody) funcBodyNode() {}

// ExprBody is a function body of the form "=> expr;".
type ExprBody struct {
	Arrow Pos
	X     Expr
	Semi  Pos
}

func (b *ExprBody) Pos() Pos { return b.Arrow }
func (b *ExprBody) End() Pos { return posAdd(b.Semi, 1) }

// ParamList is a parenthesized list of formal parameters.
type ParamList struct {
	Lparen Pos
	List   []*Param
	Rparen Pos
}

func (l *ParamList) Pos() Pos { return l.Lparen }
func (l *ParamList) End() Pos { return posAdd(l.Rparen, 1) }

// Param is a formal parameter. Field formals such as "this.x" have a
// valid This position.
type Param struct {
	Final    Pos // zero if not final
	TypeName *TypeName
	This     Pos
	Period   Pos
	Name     *Ident
}

func (p *Param) Pos() Pos {
	switch {
	case p.Final.IsValid():
		return p.Final
	case p.TypeName != nil:
		return p.TypeName.Pos()
	case p.This.IsValid():
		return p.This
	}
	return p.Name.Pos()
}
func (p *Param) End() Pos { return p.Name.End() }

// VarDecl declares one or more variables, as a field, a top-level
// variable or a local variable. Keyword is VAR, FINAL, CONST or ILLEGAL
// when only a type is given.
type VarDecl struct {
	Static     Pos
	KeywordPos Pos
	Keyword    Kind
	TypeName   *TypeName
	Vars       []*Variable
	Semi       Pos // zero inside for loop headers
}

func (d *VarDecl) Pos() Pos {
	switch {
	case d.Static.IsValid():
		return d.Static
	case d.KeywordPos.IsValid():
		return d.KeywordPos
	case d.TypeName != nil:
		return d.TypeName.Pos()
	}
	return d.Vars[0].Pos()
}
func (d *VarDecl) End() Pos {
	if d.Semi.IsValid() {
		return posAdd(d.Semi, 1)
	}
	return d.Vars[len(d.Vars)-1].End()
}

// Variable is a single declarator, with an optional initial value.
type Variable struct {
	Name   *Ident
	Assign Pos
	Value  Expr
}

func (v *Variable) Pos() Pos { return v.Name.Pos() }
func (v *Variable) End() Pos {
	if v.Value != nil {
		return v.Value.End()
	}
	return v.Name.End()
}

// Stmt is implemented by all statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

func (*Block) stmtNode()        {}
func (*VarDecl) stmtNode()      {}
func (*ExprStmt) stmtNode()     {}
func (*IfStmt) stmtNode()       {}
func (*ForStmt) stmtNode()      {}
func (*ForInStmt) stmtNode()    {}
func (*WhileStmt) stmtNode()    {}
func (*DoStmt) stmtNode()       {}
func (*ReturnStmt) stmtNode()   {}
func (*BreakStmt) stmtNode()    {}
func (*ContinueStmt) stmtNode() {}
func (*ThrowStmt) stmtNode()    {}
func (*EmptyStmt) stmtNode()    {}

// Block is a braced list of statements.
type Block struct {
	Lbrace Pos
	Stmts  []Stmt
	Rbrace Pos
}

func (b *Block) Pos() Pos { return b.Lbrace }
func (b *Block) End() Pos { return posAdd(b.Rbrace, 1) }

// ExprStmt is an expression followed by a semicolon.
type ExprStmt struct {
	X    Expr
	Semi Pos
}

func (s *ExprStmt) Pos() Pos { return s.X.Pos() }
func (s *ExprStmt) End() Pos { return posAdd(s.Semi, 1) }

// IfStmt is an if statement with an optional else branch.
type IfStmt struct {
	If     Pos
	Lparen Pos
	Cond   Expr
	Rparen Pos
	Then   Stmt
	Else   Pos // zero if there is no else branch
	ElseBr Stmt
}

func (s *IfStmt) Pos() Pos { return s.If }
func (s *IfStmt) End() Pos {
	if s.ElseBr != nil {
		return s.ElseBr.End()
	}
	return s.Then.End()
}

// ForStmt is a C-style for loop. Init is nil, a *VarDecl or an Expr.
type ForStmt struct {
	For     Pos
	Lparen  Pos
	Init    Node
	Semi1   Pos
	Cond    Expr
	Semi2   Pos
	Updates []Expr
	Rparen  Pos
	Body    Stmt
}

func (s *ForStmt) Pos() Pos { return s.For }
func (s *ForStmt) End() Pos { return s.Body.End() }

// ForInStmt is a for-in loop. Either Decl or Var is set.
type ForInStmt struct {
	For    Pos
	Lparen Pos
	Decl   *VarDecl
	Var    *Ident
	In     Pos
	Iter   Expr
	Rparen Pos
	Body   Stmt
}

func (s *ForInStmt) Pos() Pos { return s.For }
func (s *ForInStmt) End() Pos { return s.Body.End() }

// WhileStmt is a while loop.
type WhileStmt struct {
	While  Pos
	Lparen Pos
	Cond   Expr
	Rparen Pos
	Body   Stmt
}

func (s *WhileStmt) Pos() Pos { return s.While }
func (s *WhileStmt) End() Pos { return s.Body.End() }

// DoStmt is a do-while loop.
type DoStmt struct {
	Do     Pos
	Body   Stmt
	While  Pos
	Lparen Pos
	Cond   Expr
	Rparen Pos
	Semi   Pos
}

func (s *DoStmt) Pos() Pos { return s.Do }
func (s *DoStmt) End() Pos { return posAdd(s.Semi, 1) }

// ReturnStmt is a return statement with an optional result.
type ReturnStmt struct {
	Return Pos
	X      Expr
	Semi   Pos
}

func (s *ReturnStmt) Pos() Pos { return s.Return }
func (s *ReturnStmt) End() Pos { return posAdd(s.Semi, 1) }

// BreakStmt is a break statement with an optional label.
type BreakStmt struct {
	Break Pos
	Label *Ident
	Semi  Pos
}

func (s *BreakStmt) Pos() Pos { return s.Break }
func (s *BreakStmt) End() Pos { return posAdd(s.Semi, 1) }

// ContinueStmt is a continue statement with an optional label.
type ContinueStmt struct {
	Continue Pos
	Label    *Ident
	Semi     Pos
}

func (s *ContinueStmt) Pos() Pos { return s.Continue }
func (s *ContinueStmt) End() Pos { return posAdd(s.Semi, 1) }

// ThrowStmt is a throw statement.
type ThrowStmt struct {
	Throw Pos
	X     Expr
	Semi  Pos
}

func (s *ThrowStmt) Pos() Pos { return s.Throw }
func (s *ThrowStmt) End() Pos { return posAdd(s.Semi, 1) }

// EmptyStmt is a lone semicolon.
type EmptyStmt struct {
	Semi Pos
}

func (s *EmptyStmt) Pos() Pos { return s.Semi }
func (s *EmptyStmt) End() Pos { return posAdd(s.Semi, 1) }

// Expr is implemented by all expression nodes.
type Expr interface {
	Node
	exprNode()
}

func (*Ident) exprNode()        {}
func (*BasicLit) exprNode()     {}
func (*ThisExpr) exprNode()     {}
func (*SuperExpr) exprNode()    {}
func (*ParenExpr) exprNode()    {}
func (*UnaryExpr) exprNode()    {}
func (*BinaryExpr) exprNode()   {}
func (*AssignExpr) exprNode()   {}
func (*CondExpr) exprNode()     {}
func (*MethodCall) exprNode()   {}
func (*CallExpr) exprNode()     {}
func (*SelectorExpr) exprNode() {}
func (*IndexExpr) exprNode()    {}
func (*NewExpr) exprNode()      {}
func (*ListLit) exprNode()      {}
func (*NamedArg) exprNode()     {}

// Ident is an identifier.
type Ident struct {
	NamePos Pos
	Name    string
}

func (i *Ident) Pos() Pos { return i.NamePos }
func (i *Ident) End() Pos { return posAddStr(i.NamePos, i.Name) }

// BasicLit is a number, string, boolean or null literal. Value holds the
// literal's source text.
type BasicLit struct {
	ValuePos Pos
	Kind     Kind
	Value    string
}

func (l *BasicLit) Pos() Pos { return l.ValuePos }
func (l *BasicLit) End() Pos { return posAddStr(l.ValuePos, l.Value) }

// ThisExpr is the "this" keyword used as an expression.
type ThisExpr struct {
	This Pos
}

func (e *ThisExpr) Pos() Pos { return e.This }
func (e *ThisExpr) End() Pos { return posAdd(e.This, len("this")) }

// SuperExpr is the "super" keyword used as an expression.
type SuperExpr struct {
	Super Pos
}

func (e *SuperExpr) Pos() Pos { return e.Super }
func (e *SuperExpr) End() Pos { return posAdd(e.Super, len("super")) }

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	Lparen Pos
	X      Expr
	Rparen Pos
}

func (e *ParenExpr) Pos() Pos { return e.Lparen }
func (e *ParenExpr) End() Pos { return posAdd(e.Rparen, 1) }

// UnaryExpr is a prefix or, if Post is set, a postfix operation.
type UnaryExpr struct {
	OpPos Pos
	Op    UnaryOp
	Post  bool
	X     Expr
}

func (e *UnaryExpr) Pos() Pos {
	if e.Post {
		return e.X.Pos()
	}
	return e.OpPos
}
func (e *UnaryExpr) End() Pos {
	if e.Post {
		return posAdd(e.OpPos, len(e.Op.String()))
	}
	return e.X.End()
}

// BinaryExpr is a binary operation.
type BinaryExpr struct {
	X     Expr
	OpPos Pos
	Op    BinaryOp
	Y     Expr
}

func (e *BinaryExpr) Pos() Pos { return e.X.Pos() }
func (e *BinaryExpr) End() Pos { return e.Y.End() }

// AssignExpr is a plain or compound assignment.
type AssignExpr struct {
	X     Expr
	OpPos Pos
	Op    AssignOp
	Y     Expr
}

func (e *AssignExpr) Pos() Pos { return e.X.Pos() }
func (e *AssignExpr) End() Pos { return e.Y.End() }

// CondExpr is a conditional expression, cond ? then : else.
type CondExpr struct {
	Cond  Expr
	Quest Pos
	Then  Expr
	Colon Pos
	Else  Expr
}

func (e *CondExpr) Pos() Pos { return e.Cond.Pos() }
func (e *CondExpr) End() Pos { return e.Else.End() }

// MethodCall invokes a named method. Target is nil for unqualified calls,
// which implicitly use "this" or refer to a top-level function.
type MethodCall struct {
	Target Expr
	Period Pos
	Name   *Ident
	Args   *ArgList
}

func (c *MethodCall) Pos() Pos {
	if c.Target != nil {
		return c.Target.Pos()
	}
	return c.Name.Pos()
}
func (c *MethodCall) End() Pos { return c.Args.End() }

// CallExpr calls an arbitrary expression, such as "(f)(x)".
type CallExpr struct {
	Fun  Expr
	Args *ArgList
}

func (c *CallExpr) Pos() Pos { return c.Fun.Pos() }
func (c *CallExpr) End() Pos { return c.Args.End() }

// ArgList is a parenthesized list of arguments.
type ArgList struct {
	Lparen Pos
	List   []Expr
	Rparen Pos
}

func (l *ArgList) Pos() Pos { return l.Lparen }
func (l *ArgList) End() Pos { return posAdd(l.Rparen, 1) }

// NamedArg is a named argument, name: value.
type NamedArg struct {
	Name  *Ident
	Colon Pos
	X     Expr
}

func (a *NamedArg) Pos() Pos { return a.Name.Pos() }
func (a *NamedArg) End() Pos { return a.X.End() }

// SelectorExpr is a property access, x.sel.
type SelectorExpr struct {
	X      Expr
	Period Pos
	Sel    *Ident
}

func (e *SelectorExpr) Pos() Pos { return e.X.Pos() }
func (e *SelectorExpr) End() Pos { return e.Sel.End() }

// IndexExpr is an index operation, x[index].
type IndexExpr struct {
	X      Expr
	Lbrack Pos
	Index  Expr
	Rbrack Pos
}

func (e *IndexExpr) Pos() Pos { return e.X.Pos() }
func (e *IndexExpr) End() Pos { return posAdd(e.Rbrack, 1) }

// NewExpr is an instance creation, with "new" or "const". Ctor is set for
// named constructors.
type NewExpr struct {
	KeywordPos Pos
	Keyword    Kind
	TypeName   *TypeName
	Period     Pos
	Ctor       *Ident
	Args       *ArgList
}

func (e *NewExpr) Pos() Pos { return e.KeywordPos }
func (e *NewExpr) End() Pos { return e.Args.End() }

// ListLit is a list literal, with an optional "const" keyword.
type ListLit struct {
	Const  Pos
	Lbrack Pos
	Elems  []Expr
	Rbrack Pos
}

func (l *ListLit) Pos() Pos {
	if l.Const.IsValid() {
		return l.Const
	}
	return l.Lbrack
}
func (l *ListLit) End() Pos { return posAdd(l.Rbrack, 1) }
