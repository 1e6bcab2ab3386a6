// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import (
	"fmt"
	"io"
	"reflect"
)

// Walk traverses a syntax tree in depth-first order: It starts by calling
// f(node); node must not be nil. If f returns true, Walk invokes f
// recursively for each of the non-nil children of node, followed by
// f(nil).
func Walk(node Node, f func(Node) bool) {
	if !f(node) {
		return
	}

	switch node := node.(type) {
	case *File:
		walkList(node.Imports, f)
		walkList(node.Decls, f)
	case *Comment:
	case *ImportDirective:
		Walk(node.URI, f)
		if node.Prefix != nil {
			Walk(node.Prefix, f)
		}
	case *ClassDecl:
		Walk(node.Name, f)
		if node.Super != nil {
			Walk(node.Super, f)
		}
		walkList(node.Interfaces, f)
		walkList(node.Members, f)
	case *TypeName:
		Walk(node.Name, f)
		walkList(node.Args, f)
	case *FuncDecl:
		if node.ResultType != nil {
			Walk(node.ResultType, f)
		}
		Walk(node.Name, f)
		if node.CtorName != nil {
			Walk(node.CtorName, f)
		}
		Walk(node.Params, f)
		walkList(node.Initializers, f)
		if node.Body != nil {
			Walk(node.Body, f)
		}
	case *ExprBody:
		Walk(node.X, f)
	case *ParamList:
		walkList(node.List, f)
	case *Param:
		if node.TypeName != nil {
			Walk(node.TypeName, f)
		}
		Walk(node.Name, f)
	case *VarDecl:
		if node.TypeName != nil {
			Walk(node.TypeName, f)
		}
		walkList(node.Vars, f)
	case *Variable:
		Walk(node.Name, f)
		if node.Value != nil {
			Walk(node.Value, f)
		}
	case *Block:
		walkList(node.Stmts, f)
	case *ExprStmt:
		Walk(node.X, f)
	case *IfStmt:
		Walk(node.Cond, f)
		Walk(node.Then, f)
		if node.ElseBr != nil {
			Walk(node.ElseBr, f)
		}
	case *ForStmt:
		if node.Init != nil {
			Walk(node.Init, f)
		}
		if node.Cond != nil {
			Walk(node.Cond, f)
		}
		walkList(node.Updates, f)
		Walk(node.Body, f)
	case *ForInStmt:
		if node.Decl != nil {
			Walk(node.Decl, f)
		}
		if node.Var != nil {
			Walk(node.Var, f)
		}
		Walk(node.Iter, f)
		Walk(node.Body, f)
	case *WhileStmt:
		Walk(node.Cond, f)
		Walk(node.Body, f)
	case *DoStmt:
		Walk(node.Body, f)
		Walk(node.Cond, f)
	case *ReturnStmt:
		if node.X != nil {
			Walk(node.X, f)
		}
	case *BreakStmt:
		if node.Label != nil {
			Walk(node.Label, f)
		}
	case *ContinueStmt:
		if node.Label != nil {
			Walk(node.Label, f)
		}
	case *ThrowStmt:
		Walk(node.X, f)
	case *EmptyStmt:
	case *Ident:
	case *BasicLit:
	case *ThisExpr:
	case *SuperExpr:
	case *ParenExpr:
		Walk(node.X, f)
	case *UnaryExpr:
		Walk(node.X, f)
	case *BinaryExpr:
		Walk(node.X, f)
		Walk(node.Y, f)
	case *AssignExpr:
		Walk(node.X, f)
		Walk(node.Y, f)
	case *CondExpr:
		Walk(node.Cond, f)
		Walk(node.Then, f)
		Walk(node.Else, f)
	case *MethodCall:
		if node.Target != nil {
			Walk(node.Target, f)
		}
		Walk(node.Name, f)
		Walk(node.Args, f)
	case *CallExpr:
		Walk(node.Fun, f)
		Walk(node.Args, f)
	case *ArgList:
		walkList(node.List, f)
	case *NamedArg:
		Walk(node.Name, f)
		Walk(node.X, f)
	case *SelectorExpr:
		Walk(node.X, f)
		Walk(node.Sel, f)
	case *IndexExpr:
		Walk(node.X, f)
		Walk(node.Index, f)
	case *NewExpr:
		Walk(node.TypeName, f)
		if node.Ctor != nil {
			Walk(node.Ctor, f)
		}
		Walk(node.Args, f)
	case *ListLit:
		walkList(node.Elems, f)
	default:
		panic(fmt.Sprintf("syntax.Walk: unexpected node type %T", node))
	}

	f(nil)
}

func walkList[N Node](list []N, f func(Node) bool) {
	for _, node := range list {
		Walk(node, f)
	}
}

// DebugPrint prints the provided syntax tree, spanning multiple lines and
// with indentation. Can be useful to investigate the content of a syntax
// tree.
func DebugPrint(w io.Writer, node Node) error {
	p := debugPrinter{out: w}
	p.print(reflect.ValueOf(node))
	p.printf("\n")
	return p.err
}

type debugPrinter struct {
	out   io.Writer
	level int
	err   error
}

func (p *debugPrinter) printf(format string, args ...any) {
	_, err := fmt.Fprintf(p.out, format, args...)
	if err != nil && p.err == nil {
		p.err = err
	}
}

func (p *debugPrinter) newline() {
	p.printf("\n")
	for i := 0; i < p.level; i++ {
		p.printf(".  ")
	}
}

func (p *debugPrinter) print(x reflect.Value) {
	switch x.Kind() {
	case reflect.Interface:
		if x.IsNil() {
			p.printf("nil")
			return
		}
		p.print(x.Elem())
	case reflect.Ptr:
		if x.IsNil() {
			p.printf("nil")
			return
		}
		p.printf("*")
		p.print(x.Elem())
	case reflect.Slice:
		p.printf("%s (len = %d) {", x.Type(), x.Len())
		if x.Len() > 0 {
			p.level++
			p.newline()
			for i := 0; i < x.Len(); i++ {
				p.printf("%d: ", i)
				p.print(x.Index(i))
				if i == x.Len()-1 {
					p.level--
				}
				p.newline()
			}
		}
		p.printf("}")

	case reflect.Struct:
		if v, ok := x.Interface().(Pos); ok {
			p.printf("%d", int(v))
			return
		}
		t := x.Type()
		p.printf("%s {", t)
		p.level++
		p.newline()
		for i := 0; i < t.NumField(); i++ {
			p.printf("%s: ", t.Field(i).Name)
			p.print(x.Field(i))
			if i == x.NumField()-1 {
				p.level--
			}
			p.newline()
		}
		p.printf("}")
	default:
		if s, ok := x.Interface().(fmt.Stringer); ok && !x.IsZero() {
			p.printf("%#v (%s)", x.Interface(), s)
		} else {
			p.printf("%#v", x.Interface())
		}
	}
}
