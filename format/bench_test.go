// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package format

import (
	"os"
	"path/filepath"
	"testing"

	"mvdan.cc/dartfmt/syntax"
)

func BenchmarkFormat(b *testing.B) {
	b.ReportAllocs()
	src, err := os.ReadFile(filepath.Join("testdata", "class.dart"))
	if err != nil {
		b.Fatal(err)
	}
	f, err := syntax.Parse(src, "", syntax.ParseComments)
	if err != nil {
		b.Fatal(err)
	}
	opts := DefaultOptions()
	for i := 0; i < b.N; i++ {
		if _, err := Format(src, f, nil, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFormatNarrow(b *testing.B) {
	b.ReportAllocs()
	src := []byte("f() {\n  x = aaaa + bbbb + cccc + dddd + eeee + ffff + gggg;\n  foo(aaaa, bbbb, cccc, dddd, eeee);\n}\n")
	f, err := syntax.Parse(src, "", syntax.ParseComments)
	if err != nil {
		b.Fatal(err)
	}
	opts := DefaultOptions()
	opts.PageWidth = 20
	for i := 0; i < b.N; i++ {
		if _, err := Format(src, f, nil, opts); err != nil {
			b.Fatal(err)
		}
	}
}
