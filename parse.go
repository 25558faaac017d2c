package rpn

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Expression grammar:
//
//	expr        = "(" token { token } ")"
//	token       = number | nested_expr | operator | unary | function_name
//	nested_expr = "(" ... balanced ... ")"
//	number      = [ "-" ] digit { digit } [ "." digit { digit } ]
//	operator    = "+" | "-" | "*" | "/" | "//" | "%" | "**"
//	unary       = "$" | "~"
//
// Input that is not already a single parenthesized group is wrapped in one
// before parsing.

// Parse trims an expression, strips its enclosing parentheses or supplies them
// if it has none, and tokenizes what is inside. Columns in the tokens and in
// any error refer to expr.
func Parse(expr string) ([]Token, error) {
	inner, base := unwrap(expr, 0)
	return tokenize(inner, base)
}

// unwrap trims src and returns the text inside its enclosing parentheses, or
// the trimmed text itself if it is not a single parenthesized group. base is
// the number of runes preceding src in the input, and ibase is the same for
// inner.
func unwrap(src string, base int) (inner string, ibase int) {
	trimmed := strings.TrimLeftFunc(src, unicode.IsSpace)
	base += utf8.RuneCountInString(src[:len(src)-len(trimmed)])
	trimmed = strings.TrimRightFunc(trimmed, unicode.IsSpace)
	if !grouped(trimmed) {
		return trimmed, base
	}
	return trimmed[1 : len(trimmed)-1], base + 1
}

// grouped reports whether s begins with an open parenthesis that is closed by
// the last byte of s.
func grouped(s string) bool {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return false
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i == len(s)-1
			}
		}
	}
	return false
}
