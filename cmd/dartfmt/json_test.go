// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package main

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/go-quicktest/qt"

	"mvdan.cc/dartfmt/edit"
	"mvdan.cc/dartfmt/format"
	"mvdan.cc/dartfmt/syntax"
)

var editsTests = []struct {
	in   string
	want string
}{
	{"var x = 1;\n", `{"path":"a.dart","edits":[]}`},
	{"var  x = 1;\n", `{"path":"a.dart","edits":[{"offset":4,"length":1,"text":""}]}`},
	{"var x=1;\n", `{"path":"a.dart","edits":[{"offset":5,"length":1,"text":" = "}]}`},
}

func TestWriteEdits(t *testing.T) {
	t.Parallel()
	for i, tc := range editsTests {
		t.Run(fmt.Sprintf("%02d", i), func(t *testing.T) {
			src := []byte(tc.in)
			f, err := syntax.Parse(src, "a.dart", syntax.ParseComments)
			qt.Assert(t, qt.IsNil(err))
			edits, err := format.Format(src, f, nil, nil)
			qt.Assert(t, qt.IsNil(err))
			var buf bytes.Buffer
			qt.Assert(t, qt.IsNil(writeEdits(&buf, "a.dart", edits)))
			qt.Assert(t, qt.Equals(buf.String(), tc.want+"\n"))
		})
	}
}

func TestWriteEditsNil(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	qt.Assert(t, qt.IsNil(writeEdits(&buf, "b.dart", []edit.Edit(nil))))
	qt.Assert(t, qt.Equals(buf.String(), `{"path":"b.dart","edits":[]}`+"\n"))
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()
	f, err := syntax.Parse([]byte("int x = new A();\n"), "", 0)
	qt.Assert(t, qt.IsNil(err))
	var buf bytes.Buffer
	qt.Assert(t, qt.IsNil(writeJSON(&buf, f)))
	qt.Assert(t, qt.StringContains(buf.String(), "\t\"Type\": \"File\""))
	qt.Assert(t, qt.StringContains(buf.String(), "\"Type\": \"VarDecl\""))
	qt.Assert(t, qt.StringContains(buf.String(), "\"Type\": \"NewExpr\""))
	qt.Assert(t, qt.StringContains(buf.String(), "\"TypeName\": {"))
}
