package rpn

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Token is a lexical token of an expression.
type Token struct {
	// Kind is the token's kind.
	Kind TokenKind
	// Text is the token's source text. For TokenNested, it includes the
	// enclosing parentheses.
	Text string
	// Col is the 1-based rune column at which the token starts.
	Col int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Col)
}

// TokenKind is the lexical class of a token.
type TokenKind int8

const (
	tokenEOF TokenKind = iota
	// TokenNumber is an integer or decimal literal, possibly negative.
	TokenNumber
	// TokenOperator is a binary operator.
	TokenOperator
	// TokenUnary is a unary operator, $ or ~.
	TokenUnary
	// TokenIdent is a function name or any other run of name and operator
	// characters. The evaluator decides what it means.
	TokenIdent
	// TokenNested is a balanced parenthesized sub-expression.
	TokenNested
)

var tokenKindNames = [...]string{
	tokenEOF:      "EOF",
	TokenNumber:   "Number",
	TokenOperator: "Operator",
	TokenUnary:    "Unary",
	TokenIdent:    "Ident",
	TokenNested:   "Nested",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// OperatorRunes contains the runes that may begin an operator.
const OperatorRunes = "+-*/%"

func isOpRune(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '%':
		return true
	}
	return false
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isIdentRune(r rune) bool {
	return r == '_' || isOpRune(r) || unicode.IsLetter(r) || unicode.IsDigit(r)
}

type lexer struct {
	src string
	// off is the byte offset of the next rune.
	off int
	// col is the column of the next rune.
	col int
}

func lex(src string, base int) *lexer {
	return &lexer{src: src, col: base + 1}
}

// peek returns the rune at byte offset off and its width. The width is 0 at
// the end of the input.
func (l *lexer) peek(off int) (rune, int) {
	if off >= len(l.src) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(l.src[off:])
}

func (l *lexer) advance(w int) {
	l.off += w
	l.col++
}

// next scans the next token. At the end of the input, the result is a token
// of kind tokenEOF.
func (l *lexer) next() (Token, error) {
	for {
		r, w := l.peek(l.off)
		if w == 0 {
			return Token{Kind: tokenEOF, Col: l.col}, nil
		}
		if unicode.IsSpace(r) {
			l.advance(w)
			continue
		}
		start, col := l.off, l.col
		switch {
		case r == '(':
			if err := l.scanNested(); err != nil {
				return Token{}, err
			}
			return Token{Kind: TokenNested, Text: l.src[start:l.off], Col: col}, nil
		case r == ')':
			return Token{}, unbalanced(col, ")")
		case isDigit(r), r == '-' && l.digitAt(l.off+w):
			l.advance(w)
			l.scanNum()
			return Token{Kind: TokenNumber, Text: l.src[start:l.off], Col: col}, nil
		case r == '$', r == '~':
			l.advance(w)
			return Token{Kind: TokenUnary, Text: l.src[start:l.off], Col: col}, nil
		case r == '_', isOpRune(r), unicode.IsLetter(r):
			l.scanIdent()
			tok := Token{Kind: TokenIdent, Text: l.src[start:l.off], Col: col}
			if _, ok := binaryOps[tok.Text]; ok {
				tok.Kind = TokenOperator
			}
			return tok, nil
		default:
			return Token{}, unknownSymbol(col, r)
		}
	}
}

func (l *lexer) digitAt(off int) bool {
	r, w := l.peek(off)
	return w > 0 && isDigit(r)
}

// scanNum scans the rest of a number: digits, then optionally a decimal point
// followed by more digits. A decimal point not followed by a digit is not part
// of the number.
func (l *lexer) scanNum() {
	l.scanDigits()
	if r, w := l.peek(l.off); r == '.' && l.digitAt(l.off+w) {
		l.advance(w)
		l.scanDigits()
	}
}

func (l *lexer) scanDigits() {
	for {
		r, w := l.peek(l.off)
		if w == 0 || !isDigit(r) {
			return
		}
		l.advance(w)
	}
}

// scanIdent scans a maximal run of operator and name runes.
func (l *lexer) scanIdent() {
	for {
		r, w := l.peek(l.off)
		if w == 0 || !isIdentRune(r) {
			return
		}
		l.advance(w)
	}
}

// scanNested scans from an open parenthesis through its matching close.
func (l *lexer) scanNested() error {
	col := l.col
	depth := 0
	for {
		r, w := l.peek(l.off)
		if w == 0 {
			return unbalanced(col, "(")
		}
		l.advance(w)
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return nil
			}
		}
	}
}

// Tokenize splits an expression into tokens. Parenthesized sub-expressions
// are single tokens. Tokenize does not strip or add enclosing parentheses;
// use Parse for that.
func Tokenize(expr string) ([]Token, error) {
	return tokenize(expr, 0)
}

// tokenize tokenizes src, which is preceded by base runes of the input.
func tokenize(src string, base int) ([]Token, error) {
	var toks []Token
	l := lex(src, base)
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == tokenEOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}
