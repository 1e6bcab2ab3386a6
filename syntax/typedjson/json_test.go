// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package typedjson_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/kr/pretty"

	"mvdan.cc/dartfmt/syntax"
	"mvdan.cc/dartfmt/syntax/typedjson"
)

var roundtripTests = []string{
	"var x = a + b * c;",
	"import 'dart:io';\nimport 'package:a/a.dart' as a;\n",
	"abstract class A extends B<C> implements D {\n  // field\n  int f;\n  A(this.f) : super(f);\n  static int g() => f++;\n}\n",
	"f() {\n  for (var i = 0; i < n; i++) {\n    if (i > 2) break;\n    else continue;\n  }\n  for (x in xs) print(x);\n}\n",
	"g() {\n  do {\n    x = c ? new List<int>() : const [1, 2];\n  } while (!x.isEmpty);\n  throw a.b(c: d)[0];\n}\n",
	"int x;\nf(final int a, this.b) => new A();\n",
}

func TestRoundtrip(t *testing.T) {
	t.Parallel()
	for _, src := range roundtripTests {
		f, err := syntax.Parse([]byte(src), "", syntax.ParseComments)
		qt.Assert(t, qt.IsNil(err))

		sb := new(strings.Builder)
		encOpts := typedjson.EncodeOptions{Indent: "\t"}
		qt.Assert(t, qt.IsNil(encOpts.Encode(sb, f)))

		want := sb.String()

		got, err := typedjson.Decode(strings.NewReader(want))
		qt.Assert(t, qt.IsNil(err))
		qt.Assert(t, qt.IsNil(got.Lines))

		// the line table is not encoded, so borrow it to resolve positions
		got.Lines = f.Lines
		sb.Reset()
		qt.Assert(t, qt.IsNil(encOpts.Encode(sb, got)))
		qt.Assert(t, qt.Equals(sb.String(), want), qt.Commentf("%# v", pretty.Formatter(got)))
	}
}

func TestEncodePositions(t *testing.T) {
	t.Parallel()
	f, err := syntax.Parse([]byte("var x;\nclass A {}\n"), "", 0)
	qt.Assert(t, qt.IsNil(err))
	sb := new(strings.Builder)
	qt.Assert(t, qt.IsNil(typedjson.Encode(sb, f)))

	var enc struct {
		Type  string
		Decls []struct {
			Type string
			Pos  struct{ Offset, Line, Col int }
		}
	}
	qt.Assert(t, qt.IsNil(json.Unmarshal([]byte(sb.String()), &enc)))
	qt.Assert(t, qt.Equals(enc.Type, "File"))
	qt.Assert(t, qt.HasLen(enc.Decls, 2))
	qt.Assert(t, qt.Equals(enc.Decls[0].Type, "VarDecl"))
	qt.Assert(t, qt.Equals(enc.Decls[1].Type, "ClassDecl"))
	qt.Assert(t, qt.Equals(enc.Decls[1].Pos.Offset, 7))
	qt.Assert(t, qt.Equals(enc.Decls[1].Pos.Line, 2))
	qt.Assert(t, qt.Equals(enc.Decls[1].Pos.Col, 1))
	qt.Assert(t, qt.Not(qt.StringContains(sb.String(), `"Lines"`)))
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, want string
	}{
		{`[]`, `root node must be a File`},
		{`{"Type": "Ident"}`, `root node must be a File`},
		{`{"Type": "File", "Decls": [{"Type": "Foo"}]}`, `unknown type: "Foo"`},
		{`{"Type": "File", "Decls": [{"Type": "Ident"}]}`, `Ident cannot be used as syntax.Decl`},
		{`{"Type": "File", "Decls": [{"Name": {}}]}`, `missing type for syntax.Decl`},
		{`{"Type": "File", "Bogus": 1}`, `unknown field for syntax.File: "Bogus"`},
		{`{"Type": "File", "EOF": 3}`, `invalid position for syntax.File.EOF`},
	}
	for _, test := range tests {
		_, err := typedjson.Decode(strings.NewReader(test.in))
		qt.Assert(t, qt.ErrorMatches(err, test.want), qt.Commentf("%s", test.in))
	}
}
