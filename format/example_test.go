// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package format_test

import (
	"fmt"
	"os"

	"mvdan.cc/dartfmt/format"
	"mvdan.cc/dartfmt/syntax"
)

func ExampleSource() {
	out, err := format.Source([]byte("f( a,b ){return a+b;}"), "", nil)
	if err != nil {
		return
	}
	os.Stdout.Write(out)
	// Output:
	// f(a, b) {
	//   return a + b;
	// }
}

func ExampleFormat() {
	src := []byte("var x=1;\n")
	f, err := syntax.Parse(src, "", syntax.ParseComments)
	if err != nil {
		return
	}
	edits, err := format.Format(src, f, nil, nil)
	if err != nil {
		return
	}
	for _, e := range edits {
		fmt.Println(e)
	}
	// Output: [5:6]" = "
}
