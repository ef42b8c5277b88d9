package syntax

import "io"

// Scanner splits GSM source into tokens.
//
// The scanner keeps no state besides its cursor: every call to Next forms
// exactly one token from the bytes at the cursor and moves past them.
// Unknown bytes are not reported here; they come back as _Unknown items and
// the parser decides whether they are an error (they are legal inside
// comments).
type Scanner struct {
	source
}

// NewScanner creates a Scanner over src.
// errh receives I/O errors from reading src; it may be nil.
func NewScanner(filename string, src io.Reader, errh func(line, col uint32, msg string)) *Scanner {
	return &Scanner{source: *newSource(filename, src, errh)}
}

// Next returns the next token. Once the input is exhausted it returns an
// _EOF item on every call.
func (s *Scanner) Next() Item {
	for isWhitespace(s.ch) {
		s.nextch()
	}

	pos := s.pos()
	start := s.offs

	var tok Token
	switch {
	case s.ch < 0:
		return Item{Tok: _EOF, Pos: pos}

	case isLetter(s.ch):
		for isLetter(s.ch) {
			s.nextch()
		}
		tok = LookupKeyword(s.segment(start))

	case isDigit(s.ch):
		for isDigit(s.ch) {
			s.nextch()
		}
		tok = _Number

	default:
		tok = s.operator()
	}

	return Item{Tok: tok, Text: s.segment(start), Pos: pos}
}

// operator scans an operator or delimiter, preferring a two-byte operator
// over its one-byte prefix. Any byte that starts neither is consumed alone
// as _Unknown.
func (s *Scanner) operator() Token {
	ch := s.ch
	s.nextch()

	switch ch {
	case '=':
		return s.pair('=', _Eql, _Assign)
	case '!':
		return s.pair('=', _Neq, _Unknown)
	case '+':
		return s.pair('=', _AddAssign, _Add)
	case '-':
		return s.pair('=', _SubAssign, _Sub)
	case '%':
		return s.pair('=', _RemAssign, _Rem)
	case '>':
		return s.pair('=', _Geq, _Gtr)
	case '<':
		return s.pair('=', _Leq, _Lss)
	case '*':
		switch s.ch {
		case '=':
			s.nextch()
			return _MulAssign
		case '/':
			s.nextch()
			return _CommentEnd
		}
		return _Mul
	case '/':
		switch s.ch {
		case '=':
			s.nextch()
			return _DivAssign
		case '*':
			s.nextch()
			return _CommentStart
		}
		return _Div
	case '^':
		return _Pow
	case ';':
		return _Semi
	case ',':
		return _Comma
	case ':':
		return _Colon
	case '(':
		return _Lparen
	case ')':
		return _Rparen
	}
	return _Unknown
}

// pair returns long and consumes the current byte if it is next;
// otherwise it returns short.
func (s *Scanner) pair(next int, long, short Token) Token {
	if s.ch == next {
		s.nextch()
		return long
	}
	return short
}
