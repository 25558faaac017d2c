// Package rpn implements a calculator for parenthesized Reverse Polish
// Notation.
//
// An expression is a sequence of numbers, operators, and function names, each
// applied to the values before it: "3 4 2 * +" is 11. A parenthesized group
// such as "(1 2 +)" is evaluated on its own and pushes its single result, so
// "(1 2 +) (3 4 +) *" is 21. Input without enclosing parentheses gets them
// added.
//
// Values are integers of any size or float64s. Integer operands give integer
// results except for "/" and negative powers. "//" and "%" take only integers
// and round toward negative infinity. "$" and "~" are unary plus and minus.
// Functions are abs, sqrt, pow, max, and min; max and min take any number of
// arguments, either the whole stack or a count written after the name, as in
// "1 5 3 max3".
//
// Every failure is an *Error whose Kind says what went wrong.
package rpn
