// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package format lays out Dart source code, producing the edits that turn
// the source into its formatted form.
package format

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"mvdan.cc/dartfmt/edit"
	"mvdan.cc/dartfmt/syntax"
)

var defaultLogger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "dartfmt",
	Level:  log.WarnLevel,
})

var printerFree = sync.Pool{
	New: func() any { return &printer{} },
}

// AbortError is returned when the source does not match the syntax tree
// it is being formatted with.
type AbortError struct {
	syntax.Position
	Want, Found syntax.Kind
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("%d:%d: expected %s, found %s", e.Line, e.Column, e.Want, e.Found)
}

// Format returns the edits that format src, which f must have been
// parsed from. If regions is not nil, only edits within those ranges of
// src are kept.
//
// The result is never nil on success; an empty list means src is already
// formatted. If src contains a lexical error, no edits and the
// *syntax.LexError are returned. Invalid regions give an
// *edit.RegionError, and invalid options an *OptionsError, before any
// formatting is done.
func Format(src []byte, f *syntax.File, regions []edit.Region, opts *Options) ([]edit.Edit, error) {
	if regions != nil {
		if err := edit.ValidateRegions(regions, len(src)); err != nil {
			return nil, err
		}
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	p := printerFree.Get().(*printer)
	defer printerFree.Put(p)
	p.reset(src, f, opts)
	p.file(f)
	if p.halted() {
		return nil, p.err
	}
	return p.result(regions), nil
}

// result returns the final edits, joining those on the same line.
func (p *printer) result(regions []edit.Region) []edit.Edit {
	edits := p.edits.Finalize()
	if regions == nil {
		return edit.Coalesce(p.src, edits)
	}
	edits = edit.Restrict(p.src, edits, regions)
	res := make([]edit.Edit, 0, len(edits))
	i := 0
	for _, r := range regions {
		j := i
		for j < len(edits) && edits[j].Offset >= r.Offset && edits[j].End() <= r.End() {
			j++
		}
		res = append(res, edit.Coalesce(p.src, edits[i:j])...)
		i = j
	}
	return res
}

// Source parses and formats src, returning the formatted source.
func Source(src []byte, name string, opts *Options) ([]byte, error) {
	f, err := syntax.Parse(src, name, syntax.ParseComments)
	if err != nil {
		return nil, err
	}
	edits, err := Format(src, f, nil, opts)
	if err != nil {
		return nil, err
	}
	return edit.Apply(src, edits)
}

// node prints any node. Nodes with no layout of their own are logged and
// left as they are.
func (p *printer) node(n syntax.Node) {
	switch n := n.(type) {
	case *syntax.File:
		p.file(n)
	case *syntax.ImportDirective:
		p.importDirective(n)
	case syntax.Decl:
		p.decl(n)
	case syntax.Stmt:
		p.stmt(n)
	case syntax.Expr:
		p.expr(n)
	case *syntax.TypeName:
		p.typeName(n)
	case *syntax.ParamList:
		p.params(n, p.opts.Wrap.Parameters)
	case *syntax.Param:
		p.param(n)
	case *syntax.Variable:
		p.variable(n)
	case *syntax.ArgList:
		p.args(n, p.opts.Wrap.Arguments)
	case *syntax.ExprBody:
		p.exprBody(n)
	default:
		p.missing(n)
	}
}

// missing handles a node with no layout by leaving its text untouched.
func (p *printer) missing(n syntax.Node) {
	pos := p.position(n.Pos().Offset())
	name := ""
	if p.f != nil {
		name = p.f.Name
	}
	p.log.Warn("no layout for node", "type", fmt.Sprintf("%T", n),
		"file", name, "line", pos.Line, "column", pos.Column)
	p.skip(n)
}
