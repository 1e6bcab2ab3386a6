// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package format

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/rivo/uniseg"

	"mvdan.cc/dartfmt/edit"
	"mvdan.cc/dartfmt/syntax"
)

type printer struct {
	src  []byte
	opts *Options
	log  *log.Logger
	f    *syntax.File

	cur   cursor
	edits *edit.Recorder

	// line and column are where the next character would go, both
	// starting at 1. Columns are counted in terminal cells.
	line, column int

	// indent is the indentation of new lines, in columns. level is the
	// part of it coming from nesting, as opposed to wrapping.
	indent, level int

	wantNewlines int    // line breaks to print before the next token
	wantSpace    bool   // a space to print before the next token
	wantIndent   int    // if not negative, overrides indent for the next line
	printed      bool   // anything was printed yet
	last         string // text of the last token printed

	curAlign *alignment // innermost alignment being printed
	overflow *alignment // alignment to retry; printing halts while set

	class string // name of the class whose members are being printed

	err error
}

func (p *printer) reset(src []byte, f *syntax.File, opts *Options) {
	*p = printer{
		src:        src,
		opts:       opts,
		log:        opts.Logger,
		f:          f,
		edits:      edit.NewRecorder(src),
		line:       1,
		column:     1,
		wantIndent: -1,
	}
	if p.log == nil {
		p.log = defaultLogger
	}
	p.cur.reset(src)
}

// halted reports whether printing is suspended, either for good after a
// fatal error or until an alignment retries.
func (p *printer) halted() bool {
	if p.err == nil && p.cur.err != nil {
		p.err = p.cur.err
	}
	return p.err != nil || p.overflow != nil
}

// location is a point of the output that printing can go back to.
type location struct {
	offset       int
	mark         edit.Mark
	line, column int
	indent       int
	level        int
	wantNewlines int
	wantSpace    bool
	wantIndent   int
	printed      bool
	last         string
}

func (p *printer) location() location {
	return location{
		offset:       p.cur.offset(),
		mark:         p.edits.Mark(),
		line:         p.line,
		column:       p.column,
		indent:       p.indent,
		level:        p.level,
		wantNewlines: p.wantNewlines,
		wantSpace:    p.wantSpace,
		wantIndent:   p.wantIndent,
		printed:      p.printed,
		last:         p.last,
	}
}

func (p *printer) resetAt(l location) {
	p.cur.resetTo(l.offset)
	p.edits.TruncateTo(l.mark)
	p.line, p.column = l.line, l.column
	p.indent, p.level = l.indent, l.level
	p.wantNewlines, p.wantSpace, p.wantIndent = l.wantNewlines, l.wantSpace, l.wantIndent
	p.printed, p.last = l.printed, l.last
}

func (p *printer) space() { p.wantSpace = true }

func (p *printer) newline() {
	if p.wantNewlines < 1 {
		p.wantNewlines = 1
	}
}

// blankLines asks for at least n empty lines before the next token.
// Requests add up to the largest one.
func (p *printer) blankLines(n int) {
	if p.wantNewlines < n+1 {
		p.wantNewlines = n + 1
	}
}

func (p *printer) indentIn() {
	p.indent += p.opts.indentUnit()
	p.level += p.opts.indentUnit()
}

func (p *printer) unindent() {
	p.indent -= p.opts.indentUnit()
	p.level -= p.opts.indentUnit()
}

// continuation returns the indentation of a line that a construct
// outside any alignment had to break.
func (p *printer) continuation() int {
	if p.curAlign != nil {
		return p.curAlign.breakIndent
	}
	return p.indent + p.opts.ContinuationIndent*p.opts.indentUnit()
}

// IndentString returns the leading whitespace of a line at the given
// indentation level.
func IndentString(level int, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return "", err
	}
	if level < 0 {
		return "", fmt.Errorf("negative indentation level %d", level)
	}
	cols := level * opts.indentUnit()
	return indentText(cols, cols, opts), nil
}

// indentText returns whitespace spanning cols columns, of which the
// first leading come from nesting.
func indentText(cols, leading int, opts *Options) string {
	if opts.IndentStyle == IndentSpaces {
		return strings.Repeat(" ", cols)
	}
	tabbed := cols
	if opts.TabsOnlyForLeading && leading < cols {
		tabbed = leading
	}
	tabs := tabbed / opts.TabSize
	return strings.Repeat("\t", tabs) + strings.Repeat(" ", cols-tabs*opts.TabSize)
}

func countLines(b []byte) int {
	n := bytes.Count(b, []byte("\n"))
	// lone carriage returns are line breaks too
	n += bytes.Count(b, []byte("\r")) - bytes.Count(b, []byte("\r\n"))
	return n
}

// gap decides what replaces the whitespace ws before the next token,
// returning the text along with the line breaks and indentation in it.
func (p *printer) gap(ws syntax.Token, space bool) (text string, lines, indent int) {
	srcLines := countLines(p.src[ws.Start:ws.End])
	n := p.wantNewlines
	indent = p.indent
	if p.wantIndent >= 0 {
		indent = p.wantIndent
	}
	if n == 0 && srcLines > 0 && !p.opts.NewLines.JoinWrappedLines {
		n, indent = 1, p.continuation()
	}
	if n > 0 && srcLines > n {
		keep := min(srcLines, p.opts.BlankLines.Preserve+1)
		n = max(n, keep)
	}
	switch {
	case !p.printed:
		return "", 0, 0
	case n > 0:
		return strings.Repeat(p.opts.LineSeparator, n) + indentText(indent, p.level, p.opts), n, indent
	case space || p.wantSpace:
		return " ", 0, 0
	}
	return "", 0, 0
}

// advance moves the output position past text.
func (p *printer) advance(text string) {
	if i := strings.LastIndexAny(text, "\r\n"); i >= 0 {
		p.line += countLines([]byte(text))
		p.column = 1 + uniseg.StringWidth(text[i+1:])
		return
	}
	p.column += uniseg.StringWidth(text)
}

func firstLineWidth(text string) int {
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i]
	}
	return uniseg.StringWidth(text)
}

// mustSeparate reports whether printing next right after the last token
// would make them scan as different tokens.
func (p *printer) mustSeparate(next string) bool {
	if p.last == "" || next == "" {
		return false
	}
	if p.last == ">" && next[0] == '>' {
		return false // closing type arguments
	}
	sc := syntax.NewScanner([]byte(p.last + next))
	tok, err := sc.Scan()
	return err != nil || tok.End != len(p.last)
}

// print replaces the whitespace ws with the layout wanted before tok and
// prints tok, unless the token would end past the page width and an
// alignment can break to avoid that.
func (p *printer) print(ws, tok syntax.Token, space bool) {
	text := tok.Text(p.src)
	space = space || p.mustSeparate(text)
	gap, lines, indent := p.gap(ws, space)
	col := p.column + len(gap)
	if lines > 0 {
		col = 1 + indent
	}
	if col+firstLineWidth(text)-1 > p.opts.PageWidth && p.lineTooLong() {
		return
	}
	p.edits.Replace(ws.Start, ws.Len(), gap)
	p.line += lines
	p.column = col
	p.advance(text)
	p.wantNewlines, p.wantSpace, p.wantIndent = 0, false, -1
	p.printed = true
	p.last = text
}

// token prints the next token, which must be of kind k, along with the
// comments before it.
func (p *printer) token(k syntax.Kind, space bool) {
	if p.halted() {
		return
	}
	ws := p.comments()
	if p.halted() {
		return
	}
	p.cur.resetTo(ws.End)
	tok, ok := p.cur.expect(k)
	if p.halted() {
		return
	}
	if !ok {
		p.err = &AbortError{
			Position: p.position(tok.Start),
			Want:     k,
			Found:    tok.Kind,
		}
		return
	}
	p.print(ws, tok, space)
}

func (p *printer) position(off int) syntax.Position {
	if p.f != nil {
		return p.f.Position(syntax.Pos(off + 1))
	}
	pos := syntax.Position{Offset: off, Line: 1, Column: 1}
	for i, b := range p.src[:off] {
		if b == '\n' || (b == '\r' && (i+1 == len(p.src) || p.src[i+1] != '\n')) {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return pos
}

// comments prints the comments before the next token, and returns the
// whitespace right before that token. The cursor is left at the start
// of that whitespace.
func (p *printer) comments() syntax.Token {
	for {
		start := p.cur.offset()
		ws := p.cur.nextRaw()
		if ws.Kind != syntax.WHITESPACE {
			p.cur.resetTo(start)
			ws = syntax.Token{Kind: syntax.WHITESPACE, Start: start, End: start}
		}
		c := p.cur.nextRaw()
		if c.Kind != syntax.COMMENT || p.halted() {
			p.cur.resetTo(ws.Start)
			return ws
		}
		p.comment(ws, c)
	}
}

// comment prints c after the whitespace ws. A comment that started a
// line stays on a line of its own; any other comment trails the token
// before it.
func (p *printer) comment(ws, c syntax.Token) {
	text := c.Text(p.src)
	lineComment := strings.HasPrefix(text, "//")
	ownLine := !p.printed || countLines(p.src[ws.Start:ws.End]) > 0
	midLine := p.printed && p.wantNewlines == 0

	var gap string
	lines, col := 0, p.column
	if ownLine {
		if midLine {
			p.wantNewlines = 1
			if p.wantIndent < 0 {
				p.wantIndent = p.continuation()
			}
		}
		var indent int
		gap, lines, indent = p.gap(ws, false)
		if lines > 0 {
			col = 1 + indent
		}
		p.wantNewlines, p.wantSpace, p.wantIndent = 0, false, -1
	} else if ws.Len() > 0 || p.wantSpace {
		gap = " "
		col++
	}
	p.edits.Replace(ws.Start, ws.Len(), gap)
	p.edits.NoEdit(c.Start, c.Len())
	p.line += lines
	p.column = col
	p.advance(text)
	p.printed = true
	p.last = ""

	breakAfter := lineComment
	if !lineComment {
		switch p.cur.peek().Kind {
		case syntax.COMMA, syntax.SEMICOLON, syntax.RPAREN, syntax.RBRACK, syntax.PERIOD:
			// the next token decides its own spacing
		default:
			p.wantSpace = true
		}
		if ownLine {
			next := p.cur.offset()
			if ws := p.cur.nextRaw(); ws.Kind == syntax.WHITESPACE && countLines(p.src[ws.Start:ws.End]) > 0 {
				breakAfter = true
			}
			p.cur.resetTo(next)
		}
	}
	if breakAfter && p.wantNewlines == 0 {
		p.wantNewlines = 1
		if midLine && p.wantIndent < 0 {
			p.wantIndent = p.continuation()
		}
	}
}

// eof prints the comments at the end of the file and its final line
// break.
func (p *printer) eof() {
	if p.halted() {
		return
	}
	p.newline()
	ws := p.comments()
	if p.halted() {
		return
	}
	p.cur.resetTo(ws.End)
	if tok, _ := p.cur.expect(syntax.EOF); tok.Kind != syntax.EOF {
		if !p.halted() {
			p.err = &AbortError{Position: p.position(tok.Start), Want: syntax.EOF, Found: tok.Kind}
		}
		return
	}
	text := ""
	if p.printed && p.opts.NewLines.AtEndOfFile {
		text = p.opts.LineSeparator
	}
	p.edits.Replace(ws.Start, ws.Len(), text)
}

// skip moves past a node without changing any of its text.
func (p *printer) skip(n syntax.Node) {
	if p.halted() {
		return
	}
	end := n.End().Offset()
	if start := p.cur.offset(); start < end {
		p.advance(string(p.src[start:end]))
		p.cur.resetTo(end)
		p.wantNewlines, p.wantSpace, p.wantIndent = 0, false, -1
		p.printed = true
		p.last = ""
	}
}
