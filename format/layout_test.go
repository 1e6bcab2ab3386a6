// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package format

import (
	"testing"

	"github.com/go-quicktest/qt"

	"mvdan.cc/dartfmt/syntax"
)

func TestMustSeparate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		last, next string
		want       bool
	}{
		{"", "a", false},
		{"a", "b", true},
		{"a", "(", false},
		{"-", "-", true},
		{"+", "+", true},
		{"-", "x", false},
		{">", ">", false},
		{"return", "x", true},
		{")", "{", false},
	}
	for _, test := range tests {
		p := &printer{last: test.last}
		qt.Assert(t, qt.Equals(p.mustSeparate(test.next), test.want),
			qt.Commentf("%q then %q", test.last, test.next))
	}
}

func TestCountLines(t *testing.T) {
	t.Parallel()
	qt.Assert(t, qt.Equals(countLines([]byte("  ")), 0))
	qt.Assert(t, qt.Equals(countLines([]byte("\n\n")), 2))
	qt.Assert(t, qt.Equals(countLines([]byte("\r\n\r\n")), 2))
	qt.Assert(t, qt.Equals(countLines([]byte("\r \n")), 2))
}

func TestIndentText(t *testing.T) {
	t.Parallel()
	tabs := DefaultOptions()
	tabs.IndentStyle = IndentTabs
	tabs.TabSize = 4
	leading := *tabs
	leading.TabsOnlyForLeading = true

	qt.Assert(t, qt.Equals(indentText(6, 6, DefaultOptions()), "      "))
	qt.Assert(t, qt.Equals(indentText(10, 4, tabs), "\t\t  "))
	qt.Assert(t, qt.Equals(indentText(10, 4, &leading), "\t      "))
}

func TestGap(t *testing.T) {
	t.Parallel()
	src := []byte("a\n\n\n\nb")
	ws := syntax.Token{Kind: syntax.WHITESPACE, Start: 1, End: 5}
	tests := []struct {
		name      string
		setup     func(p *printer)
		wantText  string
		wantLines int
	}{
		{"nothing printed", func(p *printer) { p.printed = false; p.wantNewlines = 1 }, "", 0},
		{"joined", func(p *printer) {}, "", 0},
		{"space", func(p *printer) { p.wantSpace = true }, " ", 0},
		{"preserved blank line", func(p *printer) { p.wantNewlines = 1 }, "\n\n  ", 2},
		{"requested blank lines", func(p *printer) { p.wantNewlines = 3 }, "\n\n\n  ", 3},
		{"wanted indentation", func(p *printer) { p.wantNewlines = 1; p.wantIndent = 6 }, "\n\n      ", 2},
		{"kept wrapped line", func(p *printer) { p.opts.NewLines.JoinWrappedLines = false }, "\n\n      ", 2},
	}
	for _, test := range tests {
		p := &printer{}
		p.reset(src, nil, DefaultOptions())
		p.indent, p.level = 2, 2
		p.printed = true
		test.setup(p)
		text, lines, _ := p.gap(ws, false)
		qt.Assert(t, qt.Equals(text, test.wantText), qt.Commentf("%s", test.name))
		qt.Assert(t, qt.Equals(lines, test.wantLines), qt.Commentf("%s", test.name))
	}
}
