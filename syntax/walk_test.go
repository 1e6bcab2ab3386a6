// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
)

func TestWalk(t *testing.T) {
	t.Parallel()
	for i, c := range fileTests {
		t.Run(fmt.Sprintf("%03d", i), func(t *testing.T) {
			f, err := Parse([]byte(c.in), "", 0)
			qt.Assert(t, qt.IsNil(err))
			entered, exited := 0, 0
			Walk(f, func(node Node) bool {
				if node == nil {
					exited++
				} else {
					entered++
				}
				return true
			})
			qt.Assert(t, qt.Equals(entered, exited))
		})
	}
}

func TestWalkIdents(t *testing.T) {
	t.Parallel()
	f, err := Parse([]byte("class A extends B { f(x) => x + y; }"), "", 0)
	qt.Assert(t, qt.IsNil(err))
	var names []string
	Walk(f, func(node Node) bool {
		if id, ok := node.(*Ident); ok {
			names = append(names, id.Name)
		}
		// don't descend into the superclass
		_, isType := node.(*TypeName)
		return !isType
	})
	qt.Assert(t, qt.DeepEquals(names, []string{"A", "f", "x", "x", "y"}))
}

type newNode struct{}

func (newNode) Pos() Pos { return 0 }
func (newNode) End() Pos { return 0 }

func TestWalkUnexpectedType(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("did not panic")
		}
	}()
	Walk(newNode{}, func(node Node) bool { return true })
}

func TestDebugPrint(t *testing.T) {
	t.Parallel()
	f, err := Parse([]byte("var x = 1;"), "", 0)
	qt.Assert(t, qt.IsNil(err))
	var sb strings.Builder
	qt.Assert(t, qt.IsNil(DebugPrint(&sb, f)))
	qt.Assert(t, qt.StringContains(sb.String(), "*syntax.VarDecl {"))
	qt.Assert(t, qt.StringContains(sb.String(), `Name: "x"`))
}
