// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package format

import "mvdan.cc/dartfmt/syntax"

// cursor walks the tokens of the source being formatted. Unlike the
// parser, it can be moved back to any earlier offset, which is how an
// alignment replays its fragments.
//
// A lexical error is sticky: once one is found, every method returns an
// EOF token and err holds the error.
type cursor struct {
	sc  *syntax.Scanner
	err error
}

func (c *cursor) reset(src []byte) {
	c.sc = syntax.NewScanner(src)
	c.err = nil
}

func (c *cursor) offset() int { return c.sc.Offset() }

func (c *cursor) resetTo(off int) { c.sc.Reset(off) }

func (c *cursor) eof() syntax.Token {
	n := len(c.sc.Source())
	return syntax.Token{Kind: syntax.EOF, Start: n, End: n}
}

// nextRaw returns the next token including whitespace and comments.
func (c *cursor) nextRaw() syntax.Token {
	if c.err != nil {
		return c.eof()
	}
	tok, err := c.sc.Scan()
	if err != nil {
		c.err = err
		return c.eof()
	}
	return tok
}

// next returns the next significant token.
func (c *cursor) next() syntax.Token {
	for {
		tok := c.nextRaw()
		if !tok.Kind.IsTrivia() {
			return tok
		}
	}
}

// peek returns the next significant token without consuming it.
func (c *cursor) peek() syntax.Token {
	off := c.offset()
	tok := c.next()
	c.resetTo(off)
	return tok
}

// isNextOneOf reports whether the next significant token has one of the
// given kinds.
func (c *cursor) isNextOneOf(kinds ...syntax.Kind) bool {
	next := c.peek().Kind
	for _, k := range kinds {
		if next == k {
			return true
		}
	}
	return false
}

// expect consumes the next significant token, which should be of kind k.
// A ">>" or ">>=" token is split when a single ">" is expected, as when
// two type argument lists end together.
func (c *cursor) expect(k syntax.Kind) (syntax.Token, bool) {
	tok := c.next()
	if tok.Kind == k {
		return tok, true
	}
	if k == syntax.GT && (tok.Kind == syntax.SHR || tok.Kind == syntax.SHR_ASSIGN || tok.Kind == syntax.GE) {
		c.resetTo(tok.Start + 1)
		return syntax.Token{Kind: syntax.GT, Start: tok.Start, End: tok.Start + 1}, true
	}
	return tok, false
}
