// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

// Kind is the kind of a lexical token.
type Kind int

// The list of all possible tokens and reserved words.
const (
	ILLEGAL Kind = iota
	EOF
	COMMENT
	WHITESPACE

	IDENT
	INT
	DOUBLE
	STRING

	keywordBeg
	ABSTRACT   // abstract
	AS         // as
	BREAK      // break
	CLASS      // class
	CONST      // const
	CONTINUE   // continue
	DO         // do
	ELSE       // else
	EXTENDS    // extends
	FALSE      // false
	FINAL      // final
	FOR        // for
	IF         // if
	IMPLEMENTS // implements
	IMPORT     // import
	IN         // in
	NEW        // new
	NULL       // null
	RETURN     // return
	STATIC     // static
	SUPER      // super
	THIS       // this
	THROW      // throw
	TRUE       // true
	VAR        // var
	WHILE      // while
	keywordEnd

	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LBRACK    // [
	RBRACK    // ]
	SEMICOLON // ;
	COMMA     // ,
	PERIOD    // .
	COLON     // :
	QUESTION  // ?
	ARROW     // =>

	ASSIGN           // =
	ADD_ASSIGN       // +=
	SUB_ASSIGN       // -=
	MUL_ASSIGN       // *=
	DIV_ASSIGN       // /=
	TRUNC_DIV_ASSIGN // ~/=
	MOD_ASSIGN       // %=
	AND_ASSIGN       // &=
	OR_ASSIGN        // |=
	XOR_ASSIGN       // ^=
	SHL_ASSIGN       // <<=
	SHR_ASSIGN       // >>=

	OR_OR     // ||
	AND_AND   // &&
	OR        // |
	XOR       // ^
	AND       // &
	EQ        // ==
	NE        // !=
	LT        // <
	GT        // >
	LE        // <=
	GE        // >=
	SHL       // <<
	SHR       // >>
	ADD       // +
	SUB       // -
	MUL       // *
	DIV       // /
	TRUNC_DIV // ~/
	MOD       // %
	NOT       // !
	TILDE     // ~
	INC       // ++
	DEC       // --
)

var kindNames = [...]string{
	ILLEGAL:    "ILLEGAL",
	EOF:        "EOF",
	COMMENT:    "COMMENT",
	WHITESPACE: "WHITESPACE",
	IDENT:      "IDENT",
	INT:        "INT",
	DOUBLE:     "DOUBLE",
	STRING:     "STRING",

	ABSTRACT:   "abstract",
	AS:         "as",
	BREAK:      "break",
	CLASS:      "class",
	CONST:      "const",
	CONTINUE:   "continue",
	DO:         "do",
	ELSE:       "else",
	EXTENDS:    "extends",
	FALSE:      "false",
	FINAL:      "final",
	FOR:        "for",
	IF:         "if",
	IMPLEMENTS: "implements",
	IMPORT:     "import",
	IN:         "in",
	NEW:        "new",
	NULL:       "null",
	RETURN:     "return",
	STATIC:     "static",
	SUPER:      "super",
	THIS:       "this",
	THROW:      "throw",
	TRUE:       "true",
	VAR:        "var",
	WHILE:      "while",

	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	LBRACK:    "[",
	RBRACK:    "]",
	SEMICOLON: ";",
	COMMA:     ",",
	PERIOD:    ".",
	COLON:     ":",
	QUESTION:  "?",
	ARROW:     "=>",

	ASSIGN:           "=",
	ADD_ASSIGN:       "+=",
	SUB_ASSIGN:       "-=",
	MUL_ASSIGN:       "*=",
	DIV_ASSIGN:       "/=",
	TRUNC_DIV_ASSIGN: "~/=",
	MOD_ASSIGN:       "%=",
	AND_ASSIGN:       "&=",
	OR_ASSIGN:        "|=",
	XOR_ASSIGN:       "^=",
	SHL_ASSIGN:       "<<=",
	SHR_ASSIGN:       ">>=",

	OR_OR:     "||",
	AND_AND:   "&&",
	OR:        "|",
	XOR:       "^",
	AND:       "&",
	EQ:        "==",
	NE:        "!=",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	SHL:       "<<",
	SHR:       ">>",
	ADD:       "+",
	SUB:       "-",
	MUL:       "*",
	DIV:       "/",
	TRUNC_DIV: "~/",
	MOD:       "%",
	NOT:       "!",
	TILDE:     "~",
	INC:       "++",
	DEC:       "--",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool { return k > keywordBeg && k < keywordEnd }

// IsTrivia reports whether k is whitespace or a comment, the kinds only
// returned by a scanner in verbose mode.
func (k Kind) IsTrivia() bool { return k == WHITESPACE || k == COMMENT }

var keywords map[string]Kind

func init() {
	keywords = make(map[string]Kind, keywordEnd-keywordBeg)
	for k := keywordBeg + 1; k < keywordEnd; k++ {
		keywords[kindNames[k]] = k
	}
}

// Token is a single lexical token, delimited by byte offsets into the
// source it was scanned from.
type Token struct {
	Kind       Kind
	Start, End int
}

// Len returns the length of the token in bytes.
func (t Token) Len() int { return t.End - t.Start }

// Text returns the token's text within src.
func (t Token) Text(src []byte) string { return string(src[t.Start:t.End]) }

// BinaryOp is a binary operator.
type BinaryOp Kind

const (
	LogOr    = BinaryOp(OR_OR)
	LogAnd   = BinaryOp(AND_AND)
	BitOr    = BinaryOp(OR)
	BitXor   = BinaryOp(XOR)
	BitAnd   = BinaryOp(AND)
	Eql      = BinaryOp(EQ)
	Neq      = BinaryOp(NE)
	Lss      = BinaryOp(LT)
	Gtr      = BinaryOp(GT)
	Leq      = BinaryOp(LE)
	Geq      = BinaryOp(GE)
	Shl      = BinaryOp(SHL)
	Shr      = BinaryOp(SHR)
	Add      = BinaryOp(ADD)
	Sub      = BinaryOp(SUB)
	Mul      = BinaryOp(MUL)
	Quo      = BinaryOp(DIV)
	TruncQuo = BinaryOp(TRUNC_DIV)
	Rem      = BinaryOp(MOD)
)

// Precedence returns the binding power of the operator; higher binds
// tighter.
func (o BinaryOp) Precedence() int {
	switch o {
	case LogOr:
		return 1
	case LogAnd:
		return 2
	case Eql, Neq:
		return 3
	case Lss, Gtr, Leq, Geq:
		return 4
	case BitOr:
		return 5
	case BitXor:
		return 6
	case BitAnd:
		return 7
	case Shl, Shr:
		return 8
	case Add, Sub:
		return 9
	case Mul, Quo, TruncQuo, Rem:
		return 10
	}
	return 0
}

// UnaryOp is a prefix or postfix operator.
type UnaryOp Kind

const (
	Neg    = UnaryOp(SUB)
	Not    = UnaryOp(NOT)
	BitNot = UnaryOp(TILDE)
	Inc    = UnaryOp(INC)
	Dec    = UnaryOp(DEC)
)

// AssignOp is an assignment operator, plain or compound.
type AssignOp Kind

const (
	Assign         = AssignOp(ASSIGN)
	AddAssign      = AssignOp(ADD_ASSIGN)
	SubAssign      = AssignOp(SUB_ASSIGN)
	MulAssign      = AssignOp(MUL_ASSIGN)
	QuoAssign      = AssignOp(DIV_ASSIGN)
	TruncQuoAssign = AssignOp(TRUNC_DIV_ASSIGN)
	RemAssign      = AssignOp(MOD_ASSIGN)
	AndAssign      = AssignOp(AND_ASSIGN)
	OrAssign       = AssignOp(OR_ASSIGN)
	XorAssign      = AssignOp(XOR_ASSIGN)
	ShlAssign      = AssignOp(SHL_ASSIGN)
	ShrAssign      = AssignOp(SHR_ASSIGN)
)

func (o BinaryOp) String() string { return Kind(o).String() }
func (o UnaryOp) String() string  { return Kind(o).String() }
func (o AssignOp) String() string { return Kind(o).String() }

// Pos is the internal representation of a position within a source
// file. It is the byte offset plus one, so that the zero value is
// invalid.
type Pos int

// IsValid reports whether the position is valid.
func (p Pos) IsValid() bool { return p > 0 }

// Offset returns the byte offset the position refers to.
func (p Pos) Offset() int { return int(p) - 1 }

// Position describes a position within a source file including the line
// and column location. A Position is valid if the line number is > 0.
type Position struct {
	Offset int // byte offset, starting at 0
	Line   int // line number, starting at 1
	Column int // column number, starting at 1 (in bytes)
}

// IsValid reports whether the position is valid.
func (p Position) IsValid() bool { return p.Line > 0 }
