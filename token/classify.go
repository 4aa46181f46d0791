package token

import "unicode"

const (
	OpAdd = "+"
	OpSub = "-"
	OpMul = "*"
	OpDiv = "/"
	OpPow = "^"
)

// precedence is the binding strength of the operators. It's never mutated.
var precedence = map[string]int{
	OpAdd: 1,
	OpSub: 1,
	OpMul: 2,
	OpDiv: 2,
	OpPow: 3,
}

// Precedence returns the precedence level of an operator. The boolean is
// false if op isn't an operator.
func Precedence(op string) (int, bool) {
	p, ok := precedence[op]
	return p, ok
}

// IsOperand returns true if r is a letter or a digit.
func IsOperand(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsOperator returns true if r is one of the binary operators + - * / ^.
func IsOperator(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '^':
		return true
	}
	return false
}

// IsArithmeticOperator returns true if r is one of + - * /. Unlike
// IsOperator, it excludes the exponent operator. The converter uses it in
// the restricted comparison mode.
func IsArithmeticOperator(r rune) bool {
	return IsOperator(r) && r != '^'
}

// IsOpenParen returns true if r is an open parenthesis.
func IsOpenParen(r rune) bool {
	return r == '('
}

// IsCloseParen returns true if r is a close parenthesis.
func IsCloseParen(r rune) bool {
	return r == ')'
}
