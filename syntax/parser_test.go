// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import (
	"fmt"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"
)

var ignorePos = cmp.FilterValues(func(p1, p2 Pos) bool { return true }, cmp.Ignore())

func id(name string) *Ident { return &Ident{Name: name} }

func typ(name string, args ...*TypeName) *TypeName {
	return &TypeName{Name: id(name), Args: args}
}

var fileTests = []struct {
	in   string
	want []Decl
}{
	{
		"var x = a + b * c;",
		[]Decl{&VarDecl{Keyword: VAR, Vars: []*Variable{{
			Name: id("x"),
			Value: &BinaryExpr{
				X:  id("a"),
				Op: Add,
				Y:  &BinaryExpr{X: id("b"), Op: Mul, Y: id("c")},
			},
		}}}},
	},
	{
		"final int a = 1, b;",
		[]Decl{&VarDecl{Keyword: FINAL, TypeName: typ("int"), Vars: []*Variable{
			{Name: id("a"), Value: &BasicLit{Kind: INT, Value: "1"}},
			{Name: id("b")},
		}}},
	},
	{
		"Map<String, List<int>> m;",
		[]Decl{&VarDecl{
			TypeName: typ("Map", typ("String"), typ("List", typ("int"))),
			Vars:     []*Variable{{Name: id("m")}},
		}},
	},
	{
		"abstract class A extends B<C> implements D, E { int f; A(this.f); }",
		[]Decl{&ClassDecl{
			Name:       id("A"),
			Super:      typ("B", typ("C")),
			Interfaces: []*TypeName{typ("D"), typ("E")},
			Members: []Decl{
				&VarDecl{TypeName: typ("int"), Vars: []*Variable{{Name: id("f")}}},
				&FuncDecl{
					Name:   id("A"),
					Params: &ParamList{List: []*Param{{Name: id("f")}}},
				},
			},
		}},
	},
	{
		"class P { P.origin() : x = 0, y = 0; static int get() => 1; }",
		[]Decl{&ClassDecl{
			Name: id("P"),
			Members: []Decl{
				&FuncDecl{
					Name:     id("P"),
					CtorName: id("origin"),
					Params:   &ParamList{},
					Initializers: []Expr{
						&AssignExpr{X: id("x"), Op: Assign, Y: &BasicLit{Kind: INT, Value: "0"}},
						&AssignExpr{X: id("y"), Op: Assign, Y: &BasicLit{Kind: INT, Value: "0"}},
					},
				},
				&FuncDecl{
					ResultType: typ("int"),
					Name:       id("get"),
					Params:     &ParamList{},
					Body:       &ExprBody{X: &BasicLit{Kind: INT, Value: "1"}},
				},
			},
		}},
	},
	{
		"main() { x.a().b().c(); }",
		[]Decl{&FuncDecl{
			Name:   id("main"),
			Params: &ParamList{},
			Body: &Block{Stmts: []Stmt{&ExprStmt{X: &MethodCall{
				Target: &MethodCall{
					Target: &MethodCall{Target: id("x"), Name: id("a"), Args: &ArgList{}},
					Name:   id("b"),
					Args:   &ArgList{},
				},
				Name: id("c"),
				Args: &ArgList{},
			}}}},
		}},
	},
	{
		"void f(int n) { for (var i = 0; i < n; i++) print(i); for (x in xs) {} }",
		[]Decl{&FuncDecl{
			ResultType: typ("void"),
			Name:       id("f"),
			Params:     &ParamList{List: []*Param{{TypeName: typ("int"), Name: id("n")}}},
			Body: &Block{Stmts: []Stmt{
				&ForStmt{
					Init: &VarDecl{Keyword: VAR, Vars: []*Variable{{
						Name:  id("i"),
						Value: &BasicLit{Kind: INT, Value: "0"},
					}}},
					Cond:    &BinaryExpr{X: id("i"), Op: Lss, Y: id("n")},
					Updates: []Expr{&UnaryExpr{Op: Inc, Post: true, X: id("i")}},
					Body: &ExprStmt{X: &MethodCall{
						Name: id("print"),
						Args: &ArgList{List: []Expr{id("i")}},
					}},
				},
				&ForInStmt{Var: id("x"), Iter: id("xs"), Body: &Block{}},
			}},
		}},
	},
	{
		"f() { if (a) return; else throw new E.named(msg: 'x'); }",
		[]Decl{&FuncDecl{
			Name:   id("f"),
			Params: &ParamList{},
			Body: &Block{Stmts: []Stmt{&IfStmt{
				Cond: id("a"),
				Then: &ReturnStmt{},
				ElseBr: &ThrowStmt{X: &NewExpr{
					Keyword:  NEW,
					TypeName: typ("E"),
					Ctor:     id("named"),
					Args: &ArgList{List: []Expr{&NamedArg{
						Name: id("msg"),
						X:    &BasicLit{Kind: STRING, Value: "'x'"},
					}}},
				}},
			}}},
		}},
	},
	{
		"var l = const [1, 2.5, -x, !y ? z : w];",
		[]Decl{&VarDecl{Keyword: VAR, Vars: []*Variable{{
			Name: id("l"),
			Value: &ListLit{Elems: []Expr{
				&BasicLit{Kind: INT, Value: "1"},
				&BasicLit{Kind: DOUBLE, Value: "2.5"},
				&UnaryExpr{Op: Neg, X: id("x")},
				&CondExpr{
					Cond: &UnaryExpr{Op: Not, X: id("y")},
					Then: id("z"),
					Else: id("w"),
				},
			}},
		}}}},
	},
}

func TestParseFiles(t *testing.T) {
	t.Parallel()
	for i, c := range fileTests {
		t.Run(fmt.Sprintf("%03d", i), func(t *testing.T) {
			t.Logf("input: %s", c.in)
			f, err := Parse([]byte(c.in), "", 0)
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.CmpEquals(f.Decls, c.want, ignorePos))
		})
	}
}

var errorCases = []struct {
	in, want string
}{
	{"class {", "1:7: expected IDENT, found {"},
	{"var s = 'x;", "1:9: string literal not terminated"},
	{"main() { foo( }", "1:15: expected an expression, found }"},
	{"import 'a.dart'", "1:1: import must be followed by ;"},
	{"/* x", "1:1: comment not terminated"},
	{"var a = 1 # 2;", "1:11: invalid character '#'"},
	{"main() {\n  if (a {}\n}", "2:6: reached { without matching ( with )"},
}

func TestParseErr(t *testing.T) {
	t.Parallel()
	for _, c := range errorCases {
		t.Run("", func(t *testing.T) { // number them #001, #002, ...
			t.Logf("input: %s", c.in)
			_, err := Parse([]byte(c.in), "", 0)
			if err == nil {
				t.Fatalf("Expected error: %v", c.want)
			}
			if got := err.Error(); got != c.want {
				t.Fatalf("Error mismatch\nwant: %s\ngot:  %s",
					c.want, got)
			}
		})
	}
}

func TestInputName(t *testing.T) {
	t.Parallel()
	_, err := Parse([]byte("class {"), "some-file.dart", 0)
	qt.Assert(t, qt.ErrorMatches(err, `some-file\.dart:1:7: .*`))
	_, err = Parse([]byte("var s = 'x;"), "other.dart", 0)
	var lerr *LexError
	qt.Assert(t, qt.ErrorAs(err, &lerr))
	qt.Assert(t, qt.Equals(lerr.Filename, "other.dart"))
}

func TestParseComments(t *testing.T) {
	t.Parallel()
	src := "// a\n/** b */\nclass A {} /* c */\n"
	f, err := Parse([]byte(src), "", ParseComments)
	qt.Assert(t, qt.IsNil(err))
	want := []*Comment{
		{Start: 1, Kind: LineComment, Text: "// a"},
		{Start: 6, Kind: DocComment, Text: "/** b */"},
		{Start: 26, Kind: BlockComment, Text: "/* c */"},
	}
	qt.Assert(t, qt.DeepEquals(f.Comments, want))

	f, err = Parse([]byte(src), "", 0)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(f.Comments, 0))
}

func TestPosition(t *testing.T) {
	t.Parallel()
	src := "class A {\n  int x;\n}\n"
	f, err := Parse([]byte(src), "", 0)
	qt.Assert(t, qt.IsNil(err))
	field := f.Decls[0].(*ClassDecl).Members[0].(*VarDecl)
	qt.Assert(t, qt.Equals(f.Position(field.Pos()), Position{Offset: 12, Line: 2, Column: 3}))
	qt.Assert(t, qt.Equals(f.Position(field.End()), Position{Offset: 18, Line: 2, Column: 9}))
	qt.Assert(t, qt.DeepEquals(f.Lines, []int{0, 10, 19, 21}))
}

func TestPositionCarriageReturns(t *testing.T) {
	t.Parallel()
	src := "class A {\r  int x;\r\n}\r"
	f, err := Parse([]byte(src), "", 0)
	qt.Assert(t, qt.IsNil(err))
	field := f.Decls[0].(*ClassDecl).Members[0].(*VarDecl)
	qt.Assert(t, qt.Equals(f.Position(field.Pos()), Position{Offset: 12, Line: 2, Column: 3}))
	qt.Assert(t, qt.DeepEquals(f.Lines, []int{0, 10, 20, 22}))
}
