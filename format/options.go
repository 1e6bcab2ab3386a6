// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package format

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// IndentStyle selects the characters used for indentation.
type IndentStyle int

const (
	IndentSpaces IndentStyle = iota // only spaces
	IndentTabs                      // tabs, each worth TabSize columns
	IndentMixed                     // tabs where a whole tab fits, spaces otherwise
)

var indentStyleNames = [...]string{
	IndentSpaces: "space",
	IndentTabs:   "tab",
	IndentMixed:  "mixed",
}

func (s IndentStyle) String() string {
	if int(s) < len(indentStyleNames) {
		return indentStyleNames[s]
	}
	return fmt.Sprintf("IndentStyle(%d)", int(s))
}

func (s IndentStyle) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *IndentStyle) UnmarshalText(text []byte) error {
	for i, name := range indentStyleNames {
		if strings.EqualFold(string(text), name) {
			*s = IndentStyle(i)
			return nil
		}
	}
	return fmt.Errorf("unknown indent style %q", text)
}

// BracePosition controls where an opening brace goes relative to the
// construct it opens.
type BracePosition int

const (
	SameLine        BracePosition = iota // "class A {"
	NextLine                             // the brace starts the next line
	NextLineShifted                      // as NextLine, with the brace and body indented
	NextLineOnWrap                       // same line, unless the header was wrapped
)

var bracePositionNames = [...]string{
	SameLine:        "same_line",
	NextLine:        "next_line",
	NextLineShifted: "next_line_shifted",
	NextLineOnWrap:  "next_line_on_wrap",
}

func (b BracePosition) String() string {
	if int(b) < len(bracePositionNames) {
		return bracePositionNames[b]
	}
	return fmt.Sprintf("BracePosition(%d)", int(b))
}

func (b BracePosition) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b *BracePosition) UnmarshalText(text []byte) error {
	s := strings.ToLower(string(text))
	if s == "end_of_line" {
		*b = SameLine
		return nil
	}
	for i, name := range bracePositionNames {
		if s == name {
			*b = BracePosition(i)
			return nil
		}
	}
	return fmt.Errorf("unknown brace position %q", text)
}

// Braces holds the brace placement per construct.
type Braces struct {
	Class       BracePosition `yaml:"class" toml:"class"`
	Method      BracePosition `yaml:"method" toml:"method"`
	Constructor BracePosition `yaml:"constructor" toml:"constructor"`
	Block       BracePosition `yaml:"block" toml:"block"`
	List        BracePosition `yaml:"list" toml:"list"`
}

// Wrapping holds the wrap mode of every construct whose layout goes
// through an alignment.
type Wrapping struct {
	Arguments            Wrap `yaml:"arguments" toml:"arguments"`
	AllocationArguments  Wrap `yaml:"allocation_arguments" toml:"allocation_arguments"`
	Parameters           Wrap `yaml:"parameters" toml:"parameters"`
	ConstructorParams    Wrap `yaml:"constructor_parameters" toml:"constructor_parameters"`
	Initializers         Wrap `yaml:"initializers" toml:"initializers"`
	Superclass           Wrap `yaml:"superclass" toml:"superclass"`
	Superinterfaces      Wrap `yaml:"superinterfaces" toml:"superinterfaces"`
	MultipleFields       Wrap `yaml:"multiple_fields" toml:"multiple_fields"`
	ListElements         Wrap `yaml:"list_elements" toml:"list_elements"`
	Selector             Wrap `yaml:"selector" toml:"selector"`
	Binary               Wrap `yaml:"binary" toml:"binary"`
	Assignment           Wrap `yaml:"assignment" toml:"assignment"`
	Conditional          Wrap `yaml:"conditional" toml:"conditional"`
	MethodDeclaration    Wrap `yaml:"method_declaration" toml:"method_declaration"`
	CompactIf            Wrap `yaml:"compact_if" toml:"compact_if"`
	BeforeBinaryOperator bool `yaml:"before_binary_operator" toml:"before_binary_operator"`

	// OuterExpressionsWhenNested makes long cascades prefer breaking
	// themselves over breaking the calls nested in them.
	OuterExpressionsWhenNested bool `yaml:"outer_expressions_when_nested" toml:"outer_expressions_when_nested"`
}

// Spaces holds the space insertion toggles, each keyed by the syntactic
// position it applies to.
type Spaces struct {
	BeforeAssignmentOperator bool `yaml:"before_assignment_operator" toml:"before_assignment_operator"`
	AfterAssignmentOperator  bool `yaml:"after_assignment_operator" toml:"after_assignment_operator"`
	BeforeBinaryOperator     bool `yaml:"before_binary_operator" toml:"before_binary_operator"`
	AfterBinaryOperator      bool `yaml:"after_binary_operator" toml:"after_binary_operator"`
	BeforeUnaryOperator      bool `yaml:"before_unary_operator" toml:"before_unary_operator"`
	AfterUnaryOperator       bool `yaml:"after_unary_operator" toml:"after_unary_operator"`
	BeforePostfixOperator    bool `yaml:"before_postfix_operator" toml:"before_postfix_operator"`

	BeforeCommaInArguments       bool `yaml:"before_comma_in_arguments" toml:"before_comma_in_arguments"`
	AfterCommaInArguments        bool `yaml:"after_comma_in_arguments" toml:"after_comma_in_arguments"`
	BeforeCommaInParameters      bool `yaml:"before_comma_in_parameters" toml:"before_comma_in_parameters"`
	AfterCommaInParameters       bool `yaml:"after_comma_in_parameters" toml:"after_comma_in_parameters"`
	BeforeCommaInSuperinterfaces bool `yaml:"before_comma_in_superinterfaces" toml:"before_comma_in_superinterfaces"`
	AfterCommaInSuperinterfaces  bool `yaml:"after_comma_in_superinterfaces" toml:"after_comma_in_superinterfaces"`
	BeforeCommaInDeclarations    bool `yaml:"before_comma_in_declarations" toml:"before_comma_in_declarations"`
	AfterCommaInDeclarations     bool `yaml:"after_comma_in_declarations" toml:"after_comma_in_declarations"`
	BeforeCommaInTypeArguments   bool `yaml:"before_comma_in_type_arguments" toml:"before_comma_in_type_arguments"`
	AfterCommaInTypeArguments    bool `yaml:"after_comma_in_type_arguments" toml:"after_comma_in_type_arguments"`
	BeforeCommaInList            bool `yaml:"before_comma_in_list" toml:"before_comma_in_list"`
	AfterCommaInList             bool `yaml:"after_comma_in_list" toml:"after_comma_in_list"`
	BeforeCommaInForUpdates      bool `yaml:"before_comma_in_for_updates" toml:"before_comma_in_for_updates"`
	AfterCommaInForUpdates       bool `yaml:"after_comma_in_for_updates" toml:"after_comma_in_for_updates"`

	BeforeParenInInvocation        bool `yaml:"before_paren_in_invocation" toml:"before_paren_in_invocation"`
	AfterParenInInvocation         bool `yaml:"after_paren_in_invocation" toml:"after_paren_in_invocation"`
	BeforeClosingParenInInvocation bool `yaml:"before_closing_paren_in_invocation" toml:"before_closing_paren_in_invocation"`
	BetweenEmptyParensInInvocation bool `yaml:"between_empty_parens_in_invocation" toml:"between_empty_parens_in_invocation"`

	BeforeParenInDeclaration        bool `yaml:"before_paren_in_declaration" toml:"before_paren_in_declaration"`
	AfterParenInDeclaration         bool `yaml:"after_paren_in_declaration" toml:"after_paren_in_declaration"`
	BeforeClosingParenInDeclaration bool `yaml:"before_closing_paren_in_declaration" toml:"before_closing_paren_in_declaration"`
	BetweenEmptyParensInDeclaration bool `yaml:"between_empty_parens_in_declaration" toml:"between_empty_parens_in_declaration"`

	BeforeParenInIf        bool `yaml:"before_paren_in_if" toml:"before_paren_in_if"`
	AfterParenInIf         bool `yaml:"after_paren_in_if" toml:"after_paren_in_if"`
	BeforeClosingParenInIf bool `yaml:"before_closing_paren_in_if" toml:"before_closing_paren_in_if"`

	BeforeParenInFor        bool `yaml:"before_paren_in_for" toml:"before_paren_in_for"`
	AfterParenInFor         bool `yaml:"after_paren_in_for" toml:"after_paren_in_for"`
	BeforeClosingParenInFor bool `yaml:"before_closing_paren_in_for" toml:"before_closing_paren_in_for"`

	BeforeParenInWhile        bool `yaml:"before_paren_in_while" toml:"before_paren_in_while"`
	AfterParenInWhile         bool `yaml:"after_paren_in_while" toml:"after_paren_in_while"`
	BeforeClosingParenInWhile bool `yaml:"before_closing_paren_in_while" toml:"before_closing_paren_in_while"`

	AfterParenInParenthesized         bool `yaml:"after_paren_in_parenthesized" toml:"after_paren_in_parenthesized"`
	BeforeClosingParenInParenthesized bool `yaml:"before_closing_paren_in_parenthesized" toml:"before_closing_paren_in_parenthesized"`
	BeforeParenthesizedInReturn       bool `yaml:"before_parenthesized_in_return" toml:"before_parenthesized_in_return"`
	BeforeParenthesizedInThrow        bool `yaml:"before_parenthesized_in_throw" toml:"before_parenthesized_in_throw"`

	BeforeQuestionInConditional bool `yaml:"before_question_in_conditional" toml:"before_question_in_conditional"`
	AfterQuestionInConditional  bool `yaml:"after_question_in_conditional" toml:"after_question_in_conditional"`
	BeforeColonInConditional    bool `yaml:"before_colon_in_conditional" toml:"before_colon_in_conditional"`
	AfterColonInConditional     bool `yaml:"after_colon_in_conditional" toml:"after_colon_in_conditional"`

	BeforeBraceInClass       bool `yaml:"before_brace_in_class" toml:"before_brace_in_class"`
	BeforeBraceInMethod      bool `yaml:"before_brace_in_method" toml:"before_brace_in_method"`
	BeforeBraceInConstructor bool `yaml:"before_brace_in_constructor" toml:"before_brace_in_constructor"`
	BeforeBraceInBlock       bool `yaml:"before_brace_in_block" toml:"before_brace_in_block"`
	AfterClosingBraceInBlock bool `yaml:"after_closing_brace_in_block" toml:"after_closing_brace_in_block"`

	BeforeSemicolon      bool `yaml:"before_semicolon" toml:"before_semicolon"`
	BeforeSemicolonInFor bool `yaml:"before_semicolon_in_for" toml:"before_semicolon_in_for"`
	AfterSemicolonInFor  bool `yaml:"after_semicolon_in_for" toml:"after_semicolon_in_for"`

	BeforeBracketInIndex        bool `yaml:"before_bracket_in_index" toml:"before_bracket_in_index"`
	AfterBracketInIndex         bool `yaml:"after_bracket_in_index" toml:"after_bracket_in_index"`
	BeforeClosingBracketInIndex bool `yaml:"before_closing_bracket_in_index" toml:"before_closing_bracket_in_index"`

	BeforeBracketInList          bool `yaml:"before_bracket_in_list" toml:"before_bracket_in_list"`
	AfterBracketInList           bool `yaml:"after_bracket_in_list" toml:"after_bracket_in_list"`
	BeforeClosingBracketInList   bool `yaml:"before_closing_bracket_in_list" toml:"before_closing_bracket_in_list"`
	BetweenEmptyBracketsInList   bool `yaml:"between_empty_brackets_in_list" toml:"between_empty_brackets_in_list"`
	BeforeAngleInTypeArguments   bool `yaml:"before_angle_in_type_arguments" toml:"before_angle_in_type_arguments"`
	AfterAngleInTypeArguments    bool `yaml:"after_angle_in_type_arguments" toml:"after_angle_in_type_arguments"`
	BeforeClosingAngleInTypeArgs bool `yaml:"before_closing_angle_in_type_arguments" toml:"before_closing_angle_in_type_arguments"`

	BeforeColonInNamedArgument bool `yaml:"before_colon_in_named_argument" toml:"before_colon_in_named_argument"`
	AfterColonInNamedArgument  bool `yaml:"after_colon_in_named_argument" toml:"after_colon_in_named_argument"`
	BeforeColonInInitializers  bool `yaml:"before_colon_in_initializers" toml:"before_colon_in_initializers"`
	AfterColonInInitializers   bool `yaml:"after_colon_in_initializers" toml:"after_colon_in_initializers"`
	BeforeArrow                bool `yaml:"before_arrow" toml:"before_arrow"`
	AfterArrow                 bool `yaml:"after_arrow" toml:"after_arrow"`
}

// BlankLines holds the number of blank lines wanted between
// declarations.
type BlankLines struct {
	BeforeImports       int `yaml:"before_imports" toml:"before_imports"`
	AfterImports        int `yaml:"after_imports" toml:"after_imports"`
	BetweenImportGroups int `yaml:"between_import_groups" toml:"between_import_groups"`
	BetweenTypes        int `yaml:"between_types" toml:"between_types"`
	BeforeFirstMember   int `yaml:"before_first_member" toml:"before_first_member"`
	BeforeField         int `yaml:"before_field" toml:"before_field"`
	BeforeMethod        int `yaml:"before_method" toml:"before_method"`
	BeforeNewChunk      int `yaml:"before_new_chunk" toml:"before_new_chunk"`
	AtBeginningOfMethod int `yaml:"at_beginning_of_method" toml:"at_beginning_of_method"`
	Preserve            int `yaml:"preserve" toml:"preserve"`
}

// NewLines holds the toggles deciding where line breaks are forced or
// kept.
type NewLines struct {
	AtEndOfFile              bool `yaml:"at_end_of_file" toml:"at_end_of_file"`
	InEmptyBlock             bool `yaml:"in_empty_block" toml:"in_empty_block"`
	InEmptyMethodBody        bool `yaml:"in_empty_method_body" toml:"in_empty_method_body"`
	InEmptyClass             bool `yaml:"in_empty_class" toml:"in_empty_class"`
	BeforeElse               bool `yaml:"before_else" toml:"before_else"`
	BeforeWhileInDo          bool `yaml:"before_while_in_do" toml:"before_while_in_do"`
	AfterBracketInList       bool `yaml:"after_bracket_in_list" toml:"after_bracket_in_list"`
	BeforeClosingBracketList bool `yaml:"before_closing_bracket_in_list" toml:"before_closing_bracket_in_list"`
	EmptyStatementOnNewLine  bool `yaml:"empty_statement_on_new_line" toml:"empty_statement_on_new_line"`
	CompactElseIf            bool `yaml:"compact_else_if" toml:"compact_else_if"`
	KeepSimpleIfOnOneLine    bool `yaml:"keep_simple_if_on_one_line" toml:"keep_simple_if_on_one_line"`
	KeepThenOnSameLine       bool `yaml:"keep_then_on_same_line" toml:"keep_then_on_same_line"`
	KeepElseOnSameLine       bool `yaml:"keep_else_on_same_line" toml:"keep_else_on_same_line"`
	KeepGuardClauseOnOneLine bool `yaml:"keep_guard_clause_on_one_line" toml:"keep_guard_clause_on_one_line"`
	KeepEmptyListOnOneLine   bool `yaml:"keep_empty_list_on_one_line" toml:"keep_empty_list_on_one_line"`
	JoinWrappedLines         bool `yaml:"join_wrapped_lines" toml:"join_wrapped_lines"`
}

// Options configures a formatting run. The zero value is not usable;
// start from DefaultOptions.
type Options struct {
	IndentStyle IndentStyle `yaml:"indent_style" toml:"indent_style"`

	// TabSize is the width of a tab, and the indentation unit unless
	// IndentStyle is IndentMixed.
	TabSize int `yaml:"tab_size" toml:"tab_size"`

	// IndentSize is the indentation unit with IndentMixed.
	IndentSize int `yaml:"indent_size" toml:"indent_size"`

	// ContinuationIndent is the number of indentation units added to
	// wrapped lines.
	ContinuationIndent     int  `yaml:"continuation_indent" toml:"continuation_indent"`
	ContinuationIndentList int  `yaml:"continuation_indent_list" toml:"continuation_indent_list"`
	TabsOnlyForLeading     bool `yaml:"tabs_only_for_leading" toml:"tabs_only_for_leading"`

	PageWidth     int    `yaml:"page_width" toml:"page_width"`
	LineSeparator string `yaml:"line_separator" toml:"line_separator"`

	IndentBlockStatements bool `yaml:"indent_block_statements" toml:"indent_block_statements"`
	IndentBodyStatements  bool `yaml:"indent_body_statements" toml:"indent_body_statements"`
	IndentClassMembers    bool `yaml:"indent_class_members" toml:"indent_class_members"`

	// CascadeThreshold is the minimum number of chained calls laid out
	// as a single cascade.
	CascadeThreshold int `yaml:"cascade_threshold" toml:"cascade_threshold"`

	Braces     Braces     `yaml:"braces" toml:"braces"`
	Wrap       Wrapping   `yaml:"wrap" toml:"wrap"`
	Spaces     Spaces     `yaml:"spaces" toml:"spaces"`
	BlankLines BlankLines `yaml:"blank_lines" toml:"blank_lines"`
	NewLines   NewLines   `yaml:"new_lines" toml:"new_lines"`

	// Logger receives diagnostics, such as nodes with no formatter. If
	// nil, warnings go to standard error.
	Logger *log.Logger `yaml:"-" toml:"-"`
}

// DefaultOptions returns the Dart conventions.
func DefaultOptions() *Options {
	return &Options{
		IndentStyle:            IndentSpaces,
		TabSize:                2,
		IndentSize:             4,
		ContinuationIndent:     2,
		ContinuationIndentList: 2,
		PageWidth:              80,
		LineSeparator:          "\n",
		IndentBlockStatements:  true,
		IndentBodyStatements:   true,
		IndentClassMembers:     true,
		CascadeThreshold:       3,
		Wrap: Wrapping{
			Arguments:                  WrapCompact,
			AllocationArguments:        WrapCompact,
			Parameters:                 WrapCompact,
			ConstructorParams:          WrapCompact,
			Initializers:               WrapOnePerLine,
			Superclass:                 WrapCompact,
			Superinterfaces:            WrapCompact,
			MultipleFields:             WrapCompact,
			ListElements:               WrapCompact,
			Selector:                   WrapCompact,
			Binary:                     WrapCompact,
			Assignment:                 WrapNone,
			Conditional:                WrapOnePerLine,
			MethodDeclaration:          WrapNone,
			CompactIf:                  WrapCompact,
			BeforeBinaryOperator:       true,
			OuterExpressionsWhenNested: true,
		},
		Spaces: Spaces{
			BeforeAssignmentOperator:    true,
			AfterAssignmentOperator:     true,
			BeforeBinaryOperator:        true,
			AfterBinaryOperator:         true,
			AfterCommaInArguments:       true,
			AfterCommaInParameters:      true,
			AfterCommaInSuperinterfaces: true,
			AfterCommaInDeclarations:    true,
			AfterCommaInTypeArguments:   true,
			AfterCommaInList:            true,
			AfterCommaInForUpdates:      true,
			BeforeParenInIf:             true,
			BeforeParenInFor:            true,
			BeforeParenInWhile:          true,
			BeforeParenthesizedInReturn: true,
			BeforeParenthesizedInThrow:  true,
			BeforeQuestionInConditional: true,
			AfterQuestionInConditional:  true,
			BeforeColonInConditional:    true,
			AfterColonInConditional:     true,
			BeforeBraceInClass:          true,
			BeforeBraceInMethod:         true,
			BeforeBraceInConstructor:    true,
			BeforeBraceInBlock:          true,
			AfterClosingBraceInBlock:    true,
			AfterSemicolonInFor:         true,
			AfterColonInNamedArgument:   true,
			BeforeColonInInitializers:   true,
			AfterColonInInitializers:    true,
			BeforeArrow:                 true,
			AfterArrow:                  true,
		},
		BlankLines: BlankLines{
			AfterImports:        1,
			BetweenImportGroups: 1,
			BetweenTypes:        1,
			BeforeMethod:        1,
			BeforeNewChunk:      1,
			Preserve:            1,
		},
		NewLines: NewLines{
			AtEndOfFile:             true,
			EmptyStatementOnNewLine: true,
			CompactElseIf:           true,
			KeepEmptyListOnOneLine:  true,
			JoinWrappedLines:        true,
		},
	}
}

// OptionsError reports an invalid option value.
type OptionsError struct {
	Field   string
	Message string
}

func (e *OptionsError) Error() string {
	return fmt.Sprintf("invalid option %s: %s", e.Field, e.Message)
}

// Validate checks that the options describe a layout that can be
// produced.
func (o *Options) Validate() error {
	switch {
	case o.IndentStyle < IndentSpaces || o.IndentStyle > IndentMixed:
		return &OptionsError{"indent_style", fmt.Sprintf("unknown style %d", int(o.IndentStyle))}
	case o.TabSize < 0:
		return &OptionsError{"tab_size", "must not be negative"}
	case o.TabSize == 0 && o.IndentStyle != IndentSpaces:
		return &OptionsError{"tab_size", "must be positive when indenting with tabs"}
	case o.IndentStyle == IndentMixed && o.IndentSize <= 0:
		return &OptionsError{"indent_size", "must be positive with mixed indentation"}
	case o.ContinuationIndent < 0:
		return &OptionsError{"continuation_indent", "must not be negative"}
	case o.ContinuationIndentList < 0:
		return &OptionsError{"continuation_indent_list", "must not be negative"}
	case o.PageWidth <= 0:
		return &OptionsError{"page_width", "must be positive"}
	case o.LineSeparator != "\n" && o.LineSeparator != "\r\n" && o.LineSeparator != "\r":
		return &OptionsError{"line_separator", fmt.Sprintf("%q is not a line break", o.LineSeparator)}
	case o.CascadeThreshold < 2:
		return &OptionsError{"cascade_threshold", "must be at least 2"}
	}
	for _, b := range []BracePosition{o.Braces.Class, o.Braces.Method, o.Braces.Constructor, o.Braces.Block, o.Braces.List} {
		if b < SameLine || b > NextLineOnWrap {
			return &OptionsError{"braces", fmt.Sprintf("unknown brace position %d", int(b))}
		}
	}
	bl := o.BlankLines
	for _, n := range []int{
		bl.BeforeImports, bl.AfterImports, bl.BetweenImportGroups, bl.BetweenTypes,
		bl.BeforeFirstMember, bl.BeforeField, bl.BeforeMethod, bl.BeforeNewChunk,
		bl.AtBeginningOfMethod, bl.Preserve,
	} {
		if n < 0 {
			return &OptionsError{"blank_lines", "counts must not be negative"}
		}
	}
	w := o.Wrap
	for _, mode := range []Wrap{
		w.Arguments, w.AllocationArguments, w.Parameters, w.ConstructorParams,
		w.Initializers, w.Superclass, w.Superinterfaces, w.MultipleFields,
		w.ListElements, w.Selector, w.Binary, w.Assignment, w.Conditional,
		w.MethodDeclaration, w.CompactIf,
	} {
		if err := mode.validate(); err != nil {
			return &OptionsError{"wrap", err.Error()}
		}
	}
	return nil
}

// indentUnit is the number of columns of one indentation level.
func (o *Options) indentUnit() int {
	if o.IndentStyle == IndentMixed {
		return o.IndentSize
	}
	return o.TabSize
}
