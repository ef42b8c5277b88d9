// Package syntax implements scanning and parsing for the GSM language.
package syntax

import "fmt"

// Token is the kind of a lexical token.
type Token uint

const (
	// Special tokens
	_EOF     Token = iota // end of input
	_Unknown              // any byte that starts no other token

	// Literals
	_Name   // identifier: x, total
	_Number // decimal integer literal: 42

	// Keywords
	_Int
	_Print
	_Loopc
	_If
	_Elif
	_Else
	_Begin
	_End
	_And
	_Or

	// Assignment operators
	_Assign    // =
	_AddAssign // +=
	_SubAssign // -=
	_MulAssign // *=
	_DivAssign // /=
	_RemAssign // %=

	// Comparison operators
	_Eql // ==
	_Neq // !=
	_Geq // >=
	_Leq // <=
	_Gtr // >
	_Lss // <

	// Arithmetic operators
	_Add // +
	_Sub // -
	_Mul // *
	_Div // /
	_Rem // %
	_Pow // ^

	// Delimiters
	_Semi   // ;
	_Comma  // ,
	_Colon  // :
	_Lparen // (
	_Rparen // )

	// Comment markers
	_CommentStart // /*
	_CommentEnd   // */

	tokenCount
)

var tokenNames = [...]string{
	_EOF:     "EOF",
	_Unknown: "UNKNOWN",

	_Name:   "NAME",
	_Number: "NUMBER",

	_Int:   "int",
	_Print: "print",
	_Loopc: "loopc",
	_If:    "if",
	_Elif:  "elif",
	_Else:  "else",
	_Begin: "begin",
	_End:   "end",
	_And:   "and",
	_Or:    "or",

	_Assign:    "=",
	_AddAssign: "+=",
	_SubAssign: "-=",
	_MulAssign: "*=",
	_DivAssign: "/=",
	_RemAssign: "%=",

	_Eql: "==",
	_Neq: "!=",
	_Geq: ">=",
	_Leq: "<=",
	_Gtr: ">",
	_Lss: "<",

	_Add: "+",
	_Sub: "-",
	_Mul: "*",
	_Div: "/",
	_Rem: "%",
	_Pow: "^",

	_Semi:   ";",
	_Comma:  ",",
	_Colon:  ":",
	_Lparen: "(",
	_Rparen: ")",

	_CommentStart: "/*",
	_CommentEnd:   "*/",
}

// String returns the source spelling of t, or an upper-case class name for
// tokens without a fixed spelling.
func (t Token) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// Precedence returns the binding strength of t as a binary operator, or 0
// if t is not one. Every level is left associative.
//
//	1: or
//	2: and
//	3: == !=
//	4: >= <=
//	5: > <
//	6: + -
//	7: * / %
//	8: ^
func (t Token) Precedence() int {
	switch t {
	case _Or:
		return 1
	case _And:
		return 2
	case _Eql, _Neq:
		return 3
	case _Geq, _Leq:
		return 4
	case _Gtr, _Lss:
		return 5
	case _Add, _Sub:
		return 6
	case _Mul, _Div, _Rem:
		return 7
	case _Pow:
		return 8
	}
	return 0
}

// IsKeyword reports whether t is a keyword token.
func (t Token) IsKeyword() bool {
	return t >= _Int && t <= _Or
}

// IsEOF reports whether t is the end-of-input token.
func (t Token) IsEOF() bool {
	return t == _EOF
}

// IsUnknown reports whether t is the token for an unrecognized byte.
func (t Token) IsUnknown() bool {
	return t == _Unknown
}

// IsAssignOp reports whether t is = or one of the compound assignments.
func (t Token) IsAssignOp() bool {
	return t >= _Assign && t <= _RemAssign
}

// BinaryOp returns the arithmetic operator a compound assignment applies,
// e.g. + for +=. For = and non-assignment tokens it returns false.
func (t Token) BinaryOp() (Token, bool) {
	switch t {
	case _AddAssign:
		return _Add, true
	case _SubAssign:
		return _Sub, true
	case _MulAssign:
		return _Mul, true
	case _DivAssign:
		return _Div, true
	case _RemAssign:
		return _Rem, true
	}
	return 0, false
}

// Exported operator tokens for the lowering pass.
const (
	Or  Token = _Or
	And Token = _And
	Eql Token = _Eql
	Neq Token = _Neq
	Geq Token = _Geq
	Leq Token = _Leq
	Gtr Token = _Gtr
	Lss Token = _Lss
	Add Token = _Add
	Sub Token = _Sub
	Mul Token = _Mul
	Div Token = _Div
	Rem Token = _Rem
	Pow Token = _Pow

	Assign    Token = _Assign
	AddAssign Token = _AddAssign
	SubAssign Token = _SubAssign
	MulAssign Token = _MulAssign
	DivAssign Token = _DivAssign
	RemAssign Token = _RemAssign
)

var keywords = map[string]Token{
	"int":   _Int,
	"print": _Print,
	"loopc": _Loopc,
	"if":    _If,
	"elif":  _Elif,
	"else":  _Else,
	"begin": _Begin,
	"end":   _End,
	"and":   _And,
	"or":    _Or,
}

// LookupKeyword returns the keyword token for ident, or _Name.
func LookupKeyword(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return _Name
}

// Item is one scanned token: its kind, the exact source text it spans and
// the position of its first byte.
type Item struct {
	Tok  Token
	Text string
	Pos  Pos
}

// String formats the item for diagnostics: the source text for tokens that
// have one, the kind name otherwise.
func (it Item) String() string {
	if it.Text == "" {
		return it.Tok.String()
	}
	return it.Text
}
