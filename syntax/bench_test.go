// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import (
	"strings"
	"testing"
)

var benchSource = "" +
	strings.Repeat("\n\n        \n", 10) +
	"// " + strings.Repeat("foo bar ", 10) + "\n" +
	"import 'dart:io';\nimport 'package:foo/foo.dart' as foo;\n" +
	strings.Repeat("/** doc */\nclass A extends B implements C, D {\n"+
		"  static final int x = 1, y = 2;\n"+
		"  A(this.z) : super(z);\n"+
		"  int f(int a, b) => a * (b + x) - y;\n"+
		"  g() {\n"+
		"    for (var i = 0; i < 10; i++) { if (i % 2 == 0) continue; }\n"+
		"    while (z != null) z = z.next;\n"+
		"    return new List<int>.filled(3, 0).length;\n"+
		"  }\n}\n", 5)

func BenchmarkParse(b *testing.B) {
	b.ReportAllocs()
	src := []byte(benchSource)
	for i := 0; i < b.N; i++ {
		if _, err := Parse(src, "", ParseComments); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkScan(b *testing.B) {
	b.ReportAllocs()
	src := []byte(benchSource)
	for i := 0; i < b.N; i++ {
		sc := NewScanner(src)
		for {
			tok, err := sc.Scan()
			if err != nil {
				b.Fatal(err)
			}
			if tok.Kind == EOF {
				break
			}
		}
	}
}
