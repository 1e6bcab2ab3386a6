// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package format

// alignment lays out a list of fragments, such as the arguments of a
// call, either on a single line or broken consistently across lines.
//
// Every fragment starts out unbroken. When a line gets too long, one of
// the alignments being printed is allowed to break one more fragment,
// in the order its split style dictates, and is printed again from the
// start.
type alignment struct {
	name      string
	mode      Wrap
	enclosing *alignment
	loc       location

	// breakIndent and shiftIndent are the indentations of broken
	// fragments. They are fixed when the alignment is entered.
	breakIndent int
	shiftIndent int

	broken     []bool
	fragIndent []int // zero for fragments that keep the current indentation
	index      int   // fragment being printed

	// startColumn is the column the first fragment would start at, or
	// -1. Breaking before that fragment only happens if it moves left.
	startColumn int

	wasSplit bool
}

// outcome is the result of printing an alignment's fragments once.
type outcome int

const (
	fits       outcome = iota // printed, possibly over-width if nothing could break
	overflowed                // must be printed again with one more break
)

func (p *printer) enterAlignment(name string, mode Wrap, fragments int, continuation int) *alignment {
	a := &alignment{
		name:        name,
		mode:        mode,
		enclosing:   p.curAlign,
		loc:         p.location(),
		broken:      make([]bool, fragments),
		fragIndent:  make([]int, fragments),
		startColumn: -1,
	}
	unit := p.opts.indentUnit()
	switch {
	case mode&WrapIndentOnColumn != 0:
		a.breakIndent = p.columnIndent(p.nextColumn())
		if a.breakIndent == p.indent {
			a.breakIndent += continuation * unit
		}
	case mode&WrapIndentByOne != 0:
		a.breakIndent = p.indent + unit
	default:
		a.breakIndent = p.indent + continuation*unit
	}
	a.shiftIndent = a.breakIndent + unit
	if mode&WrapForce != 0 {
		a.couldBreak()
	}
	p.curAlign = a
	return a
}

// columnIndent returns the indentation that lines a new line up with
// the given column.
func (p *printer) columnIndent(column int) int {
	indent := column - 1
	if indent == 0 {
		return p.indent
	}
	if p.opts.IndentStyle == IndentTabs && !p.opts.TabsOnlyForLeading {
		tab := p.opts.TabSize
		if rem := indent % tab; rem != 0 {
			indent += tab - rem
		}
	}
	return indent
}

// nextColumn returns the column the next token would start at.
func (p *printer) nextColumn() int {
	switch {
	case p.wantNewlines > 0 && p.wantIndent >= 0:
		return p.wantIndent + 1
	case p.wantNewlines > 0 || !p.printed:
		return p.indent + 1
	case p.wantSpace:
		return p.column + 1
	}
	return p.column
}

func (p *printer) exitAlignment(a *alignment) {
	p.indent = a.loc.indent
	p.curAlign = a.enclosing
}

// align runs body until it fits, breaking more of the fragments of its
// alignment each time a line gets too long. body must call alignFragment
// before each of the fragments it prints. align reports whether any
// fragment was broken.
func (p *printer) align(name string, mode Wrap, fragments int, body func(a *alignment)) bool {
	return p.alignCont(name, mode, fragments, p.opts.ContinuationIndent, body)
}

func (p *printer) alignCont(name string, mode Wrap, fragments, continuation int, body func(a *alignment)) bool {
	if p.halted() {
		return false
	}
	a := p.enterAlignment(name, mode, fragments, continuation)
	for p.attempt(a, body) == overflowed {
		p.log.Debug("line too long", "alignment", a.name, "fragment", a.index, "line", a.loc.line)
		p.overflow = nil
		p.resetAt(a.loc)
		a.index = 0
	}
	p.exitAlignment(a)
	return a.wasSplit
}

func (p *printer) attempt(a *alignment, body func(a *alignment)) outcome {
	body(a)
	if p.err == nil && p.overflow == a {
		return overflowed
	}
	return fits
}

// alignFragment breaks the line and sets the indentation before
// fragment i, if the alignment decided to break there.
func (p *printer) alignFragment(a *alignment, i int) {
	if p.halted() {
		return
	}
	a.index = i
	if !a.mode.canSplit() {
		return
	}
	if i > 0 || a.startColumn < 0 || a.fragIndent[i]+1 < a.startColumn {
		if a.broken[i] {
			p.newline()
		}
		if a.fragIndent[i] > 0 {
			p.indent = a.fragIndent[i]
		}
	}
}

func (a *alignment) clone() *alignment {
	b := *a
	b.broken = append([]bool(nil), a.broken...)
	b.fragIndent = append([]int(nil), a.fragIndent...)
	return &b
}

func (a *alignment) breakAt(i, indent int) {
	a.broken[i] = true
	a.fragIndent[i] = indent
	a.wasSplit = true
}

// couldBreak breaks one more fragment, as chosen by the split style,
// and reports whether there was any left to break.
func (a *alignment) couldBreak() bool {
	n := len(a.broken)
	if n == 0 {
		return false
	}
	switch a.mode.split() {
	case WrapCompactFirstBreak:
		if !a.broken[0] {
			a.breakAt(0, a.breakIndent)
			return true
		}
		fallthrough
	case WrapCompact:
		for i := min(a.index, n-1); i >= 0; i-- {
			if !a.broken[i] {
				a.breakAt(i, a.breakIndent)
				return true
			}
		}
	case WrapNextShifted:
		if !a.broken[0] {
			a.breakAt(0, a.breakIndent)
			for i := 1; i < n; i++ {
				a.breakAt(i, a.shiftIndent)
			}
			return true
		}
	case WrapOnePerLine:
		if !a.broken[0] {
			for i := range a.broken {
				a.breakAt(i, a.breakIndent)
			}
			return true
		}
	case WrapNextPerLine:
		if !a.broken[0] && n > 1 && !a.broken[1] {
			if a.mode&WrapIndentOnColumn != 0 {
				a.fragIndent[0] = a.breakIndent
			}
			for i := 1; i < n; i++ {
				a.breakAt(i, a.breakIndent)
			}
			return true
		}
	}
	return false
}

// lineTooLong picks the alignment to break next when a token would end
// past the page width, and halts printing until that alignment prints
// its fragments again. Alignments breaking outermost first win;
// otherwise the innermost that can still break does. It reports false
// if no alignment can break, in which case the line stays too long.
func (p *printer) lineTooLong() bool {
	var target *alignment
	for a := p.curAlign; a != nil; a = a.enclosing {
		if a.mode&WrapOutermost != 0 && a.clone().couldBreak() {
			target = a
		}
	}
	if target == nil {
		for a := p.curAlign; a != nil; a = a.enclosing {
			if a.clone().couldBreak() {
				target = a
				break
			}
		}
	}
	if target == nil {
		return false
	}
	target.couldBreak()
	p.overflow = target
	return true
}
