// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Scanner splits Dart source into tokens. Unlike the parser, it reports
// whitespace and comments as WHITESPACE and COMMENT tokens, so that a
// formatter can see everything between two significant tokens.
//
// A Scanner can be repositioned at any offset with Reset, which is what
// allows re-scanning a range of the source more than once.
type Scanner struct {
	src []byte
	off int
}

// NewScanner returns a scanner positioned at the start of src.
func NewScanner(src []byte) *Scanner { return &Scanner{src: src} }

// Reset moves the scanner to the given byte offset.
func (s *Scanner) Reset(off int) { s.off = off }

// Offset returns the byte offset of the next token to be scanned.
func (s *Scanner) Offset() int { return s.off }

// Source returns the text being scanned.
func (s *Scanner) Source() []byte { return s.src }

// LexError is returned when the source contains a malformed token.
type LexError struct {
	Position
	Filename, Text string
}

func (e *LexError) Error() string {
	prefix := ""
	if e.Filename != "" {
		prefix = e.Filename + ":"
	}
	return fmt.Sprintf("%s%d:%d: %s", prefix, e.Line, e.Column, e.Text)
}

func (s *Scanner) errAt(off int, format string, a ...any) error {
	return &LexError{
		Position: positionAt(s.src, off),
		Text:     fmt.Sprintf(format, a...),
	}
}

func positionAt(src []byte, off int) Position {
	pos := Position{Offset: off, Line: 1, Column: 1}
	for i := 0; i < off && i < len(src); i++ {
		if isLineBreak(src, i) {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return pos
}

// isLineBreak reports whether src[i] ends a line. A carriage return
// followed by a line feed ends it at the line feed.
func isLineBreak(src []byte, i int) bool {
	switch src[i] {
	case '\n':
		return true
	case '\r':
		return i+1 == len(src) || src[i+1] != '\n'
	}
	return false
}

func (s *Scanner) byteAt(off int) byte {
	if off < len(s.src) {
		return s.src[off]
	}
	return 0
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func isHex(b byte) bool {
	return isDigit(b) || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}

func (s *Scanner) identRune(off int, first bool) (rune, int) {
	r, size := utf8.DecodeRune(s.src[off:])
	switch {
	case r == '_', r == '$', unicode.IsLetter(r):
		return r, size
	case !first && unicode.IsDigit(r):
		return r, size
	}
	return utf8.RuneError, 0
}

// Scan returns the next token. At the end of the input it returns an EOF
// token with an empty range. Malformed input yields a *LexError; the
// scanner is then left at the start of the bad token.
func (s *Scanner) Scan() (Token, error) {
	start := s.off
	if start >= len(s.src) {
		return Token{Kind: EOF, Start: len(s.src), End: len(s.src)}, nil
	}
	tok := func(k Kind, end int) (Token, error) {
		s.off = end
		return Token{Kind: k, Start: start, End: end}, nil
	}
	b := s.src[start]
	switch {
	case isSpace(b):
		end := start + 1
		for end < len(s.src) && isSpace(s.src[end]) {
			end++
		}
		return tok(WHITESPACE, end)
	case b == '/' && s.byteAt(start+1) == '/':
		end := start + 2
		for end < len(s.src) && s.src[end] != '\n' && s.src[end] != '\r' {
			end++
		}
		return tok(COMMENT, end)
	case b == '/' && s.byteAt(start+1) == '*':
		end, err := s.blockComment(start)
		if err != nil {
			return Token{}, err
		}
		return tok(COMMENT, end)
	case isDigit(b), b == '.' && isDigit(s.byteAt(start+1)):
		k, end := s.number(start)
		return tok(k, end)
	case b == '\'' || b == '"':
		end, err := s.str(start, false)
		if err != nil {
			return Token{}, err
		}
		return tok(STRING, end)
	case b == 'r' && (s.byteAt(start+1) == '\'' || s.byteAt(start+1) == '"'):
		end, err := s.str(start+1, true)
		if err != nil {
			return Token{}, err
		}
		return tok(STRING, end)
	}
	if _, size := s.identRune(start, true); size > 0 {
		end := start + size
		for end < len(s.src) {
			_, size := s.identRune(end, false)
			if size == 0 {
				break
			}
			end += size
		}
		if k, ok := keywords[string(s.src[start:end])]; ok {
			return tok(k, end)
		}
		return tok(IDENT, end)
	}
	if k, n := s.operator(start); n > 0 {
		return tok(k, start+n)
	}
	r, _ := utf8.DecodeRune(s.src[start:])
	return Token{}, s.errAt(start, "invalid character %q", r)
}

func (s *Scanner) blockComment(start int) (int, error) {
	depth := 0
	for i := start; i < len(s.src); i++ {
		switch {
		case s.src[i] == '/' && s.byteAt(i+1) == '*':
			depth++
			i++
		case s.src[i] == '*' && s.byteAt(i+1) == '/':
			depth--
			i++
			if depth == 0 {
				return i + 1, nil
			}
		}
	}
	return 0, s.errAt(start, "comment not terminated")
}

func (s *Scanner) number(start int) (Kind, int) {
	end := start
	if s.src[end] == '0' && (s.byteAt(end+1) == 'x' || s.byteAt(end+1) == 'X') && isHex(s.byteAt(end+2)) {
		end += 2
		for end < len(s.src) && isHex(s.src[end]) {
			end++
		}
		return INT, end
	}
	kind := INT
	for end < len(s.src) && isDigit(s.src[end]) {
		end++
	}
	if s.byteAt(end) == '.' && isDigit(s.byteAt(end+1)) {
		kind = DOUBLE
		end++
		for end < len(s.src) && isDigit(s.src[end]) {
			end++
		}
	}
	if b := s.byteAt(end); b == 'e' || b == 'E' {
		exp := end + 1
		if b := s.byteAt(exp); b == '+' || b == '-' {
			exp++
		}
		if isDigit(s.byteAt(exp)) {
			kind = DOUBLE
			end = exp
			for end < len(s.src) && isDigit(s.src[end]) {
				end++
			}
		}
	}
	return kind, end
}

// str scans a string literal whose opening quote is at off. It returns
// the offset just past the closing quote.
func (s *Scanner) str(off int, raw bool) (int, error) {
	quote := s.src[off]
	triple := s.byteAt(off+1) == quote && s.byteAt(off+2) == quote
	i := off + 1
	if triple {
		i = off + 3
	}
	for i < len(s.src) {
		b := s.src[i]
		switch {
		case b == '\\' && !raw:
			i += 2
			continue
		case b == quote && !triple:
			return i + 1, nil
		case b == quote && s.byteAt(i+1) == quote && s.byteAt(i+2) == quote:
			return i + 3, nil
		case (b == '\n' || b == '\r') && !triple:
			return 0, s.errAt(off, "string literal not terminated")
		case b == '$' && s.byteAt(i+1) == '{' && !raw:
			end, err := s.interpolation(i + 2)
			if err != nil {
				return 0, err
			}
			i = end
			continue
		}
		i++
	}
	return 0, s.errAt(off, "string literal not terminated")
}

// interpolation skips the tokens of a ${...} expression, starting right
// after the opening brace, and returns the offset past the closing brace.
func (s *Scanner) interpolation(off int) (int, error) {
	saved := s.off
	defer func() { s.off = saved }()
	s.off = off
	depth := 0
	for {
		tok, err := s.Scan()
		if err != nil {
			return 0, err
		}
		switch tok.Kind {
		case EOF:
			return 0, s.errAt(off-2, "string interpolation not terminated")
		case LBRACE:
			depth++
		case RBRACE:
			if depth == 0 {
				return tok.End, nil
			}
			depth--
		}
	}
}

var operators = [...]struct {
	text string
	kind Kind
}{
	// longest first, so that prefixes never shadow a longer match
	{"~/=", TRUNC_DIV_ASSIGN},
	{"<<=", SHL_ASSIGN},
	{">>=", SHR_ASSIGN},
	{"=>", ARROW},
	{"==", EQ},
	{"!=", NE},
	{"<=", LE},
	{">=", GE},
	{"<<", SHL},
	{">>", SHR},
	{"&&", AND_AND},
	{"||", OR_OR},
	{"++", INC},
	{"--", DEC},
	{"+=", ADD_ASSIGN},
	{"-=", SUB_ASSIGN},
	{"*=", MUL_ASSIGN},
	{"/=", DIV_ASSIGN},
	{"%=", MOD_ASSIGN},
	{"&=", AND_ASSIGN},
	{"|=", OR_ASSIGN},
	{"^=", XOR_ASSIGN},
	{"~/", TRUNC_DIV},
	{"(", LPAREN},
	{")", RPAREN},
	{"{", LBRACE},
	{"}", RBRACE},
	{"[", LBRACK},
	{"]", RBRACK},
	{";", SEMICOLON},
	{",", COMMA},
	{".", PERIOD},
	{":", COLON},
	{"?", QUESTION},
	{"=", ASSIGN},
	{"|", OR},
	{"^", XOR},
	{"&", AND},
	{"<", LT},
	{">", GT},
	{"+", ADD},
	{"-", SUB},
	{"*", MUL},
	{"/", DIV},
	{"%", MOD},
	{"!", NOT},
	{"~", TILDE},
}

func (s *Scanner) operator(off int) (Kind, int) {
	rest := s.src[off:]
	for _, op := range operators {
		if len(rest) >= len(op.text) && string(rest[:len(op.text)]) == op.text {
			return op.kind, len(op.text)
		}
	}
	return ILLEGAL, 0
}
