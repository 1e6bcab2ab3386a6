// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package format

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestDefaultOptionsValid(t *testing.T) {
	t.Parallel()
	qt.Assert(t, qt.IsNil(DefaultOptions().Validate()))
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		modify func(o *Options)
		field  string
	}{
		{func(o *Options) { o.IndentStyle = 7 }, "indent_style"},
		{func(o *Options) { o.TabSize = -2 }, "tab_size"},
		{func(o *Options) { o.IndentStyle, o.TabSize = IndentTabs, 0 }, "tab_size"},
		{func(o *Options) { o.IndentStyle, o.IndentSize = IndentMixed, 0 }, "indent_size"},
		{func(o *Options) { o.ContinuationIndent = -1 }, "continuation_indent"},
		{func(o *Options) { o.PageWidth = 0 }, "page_width"},
		{func(o *Options) { o.LineSeparator = "\n\n" }, "line_separator"},
		{func(o *Options) { o.CascadeThreshold = 1 }, "cascade_threshold"},
		{func(o *Options) { o.Braces.List = 9 }, "braces"},
		{func(o *Options) { o.BlankLines.Preserve = -1 }, "blank_lines"},
		{func(o *Options) { o.Wrap.Binary = WrapCompact | WrapIndentByOne | WrapIndentOnColumn }, "wrap"},
		{func(o *Options) { o.Wrap.Selector = 6 << 4 }, "wrap"},
	}
	for _, test := range tests {
		opts := DefaultOptions()
		test.modify(opts)
		err := opts.Validate()
		var oerr *OptionsError
		qt.Assert(t, qt.ErrorAs(err, &oerr))
		qt.Assert(t, qt.Equals(oerr.Field, test.field))
		qt.Assert(t, qt.ErrorMatches(err, `invalid option `+test.field+`: .*`))
	}
}

func TestWrapText(t *testing.T) {
	t.Parallel()
	tests := []struct {
		text string
		want Wrap
		str  string
	}{
		{"none", WrapNone, "none"},
		{"compact", WrapCompact, "compact"},
		{"force, one_per_line", WrapOnePerLine | WrapForce, "one_per_line,force"},
		{"Next_Shifted,indent_by_one,innermost", WrapNextShifted | WrapIndentByOne, "next_shifted,indent_by_one"},
		{"compact_first_break,outermost", WrapCompactFirstBreak | WrapOutermost, "compact_first_break,outermost"},
	}
	for _, test := range tests {
		var w Wrap
		qt.Assert(t, qt.IsNil(w.UnmarshalText([]byte(test.text))))
		qt.Assert(t, qt.Equals(w, test.want))
		qt.Assert(t, qt.Equals(w.String(), test.str))
	}

	var w Wrap
	qt.Assert(t, qt.ErrorMatches(w.UnmarshalText([]byte("compact,sideways")), `unknown wrap setting "sideways"`))
	qt.Assert(t, qt.ErrorMatches(w.UnmarshalText([]byte("compact,one_per_line")), `.*more than one split style`))
	qt.Assert(t, qt.ErrorMatches(w.UnmarshalText([]byte("compact,indent_by_one,indent_on_column")), `.*exclusive`))

	_, err := Wrap(6 << 4).MarshalText()
	qt.Assert(t, qt.ErrorMatches(err, `unknown split style .*`))
}

func TestReadOptions(t *testing.T) {
	t.Parallel()
	want := DefaultOptions()
	want.IndentStyle = IndentTabs
	want.TabSize = 4
	want.PageWidth = 100
	want.Braces.Class = NextLine
	want.Wrap.Binary = WrapOnePerLine | WrapIndentOnColumn
	want.BlankLines.BetweenTypes = 2
	want.NewLines.BeforeElse = true

	yamlSrc := `
indent_style: tab
tab_size: 4
page_width: 100
braces:
  class: next_line
wrap:
  binary: one_per_line,indent_on_column
blank_lines:
  between_types: 2
new_lines:
  before_else: true
`
	got, err := ReadOptions(strings.NewReader(yamlSrc), "yaml")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.CmpEquals(got, want, cmpopts.IgnoreFields(Options{}, "Logger")))

	tomlSrc := `
indent_style = "tab"
tab_size = 4
page_width = 100

[braces]
class = "next_line"

[wrap]
binary = "one_per_line,indent_on_column"

[blank_lines]
between_types = 2

[new_lines]
before_else = true
`
	got, err = ReadOptions(strings.NewReader(tomlSrc), "toml")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.CmpEquals(got, want, cmpopts.IgnoreFields(Options{}, "Logger")))

	got, err = ReadOptions(strings.NewReader(""), "yaml")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got.PageWidth, 80))
}

func TestReadOptionsErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		src, lang, want string
	}{
		{"page_widht: 3\n", "yaml", `(?s)decoding yaml options: .*page_widht.*`},
		{"page_widht = 3\n", "toml", `unknown option "page_widht"`},
		{"page_width: 0\n", "yaml", `invalid option page_width: .*`},
		{"wrap:\n  binary: sideways\n", "yaml", `(?s)decoding yaml options: .*sideways.*`},
		{"", "ini", `unknown options format "ini"`},
	}
	for _, test := range tests {
		_, err := ReadOptions(strings.NewReader(test.src), test.lang)
		qt.Assert(t, qt.ErrorMatches(err, test.want))
	}
}

func TestFindOptionsFile(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	qt.Assert(t, qt.IsNil(os.MkdirAll(nested, 0o777)))

	path, err := FindOptionsFile(nested)
	qt.Assert(t, qt.IsNil(err))
	if path != "" {
		// a file further up, outside of the temporary directory
		qt.Assert(t, qt.IsFalse(strings.HasPrefix(path, root)))
	}

	cfg := filepath.Join(root, "a", ".dartfmt.toml")
	qt.Assert(t, qt.IsNil(os.WriteFile(cfg, []byte("page_width = 60\n"), 0o666)))
	path, err = FindOptionsFile(nested)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(path, cfg))

	opts, err := LoadOptionsFile(path)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(opts.PageWidth, 60))

	bad := filepath.Join(root, ".dartfmt.yaml")
	qt.Assert(t, qt.IsNil(os.WriteFile(bad, []byte("tab_size: -1\n"), 0o666)))
	_, err = LoadOptionsFile(bad)
	qt.Assert(t, qt.ErrorMatches(err, `loading .*\.dartfmt\.yaml: invalid option tab_size: .*`))
}
