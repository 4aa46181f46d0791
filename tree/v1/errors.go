package v1

import (
	"fmt"

	tkerror "github.com/darkowlzz/expression-toolkit/error"
)

// insufficientOperands implements the malformed error interface to be used
// with IsMalformed().
type insufficientOperands struct {
	operator  string
	pos       int
	available int
}

func (i *insufficientOperands) Error() string {
	return fmt.Sprintf("operator %q at position %d needs 2 operands, %d available", i.operator, i.pos, i.available)
}

func (i *insufficientOperands) Malformed() (bool, tkerror.Kind) {
	return true, tkerror.InsufficientOperands
}

// residualOperands implements the malformed error interface to be used with
// IsMalformed().
type residualOperands struct {
	remaining int
}

func (r *residualOperands) Error() string {
	return fmt.Sprintf("postfix expression leaves %d subtrees, expected 1", r.remaining)
}

func (r *residualOperands) Malformed() (bool, tkerror.Kind) {
	return true, tkerror.ResidualOperands
}

type emptyExpression struct{}

func (emptyExpression) Error() string {
	return "empty postfix expression"
}

func (emptyExpression) Malformed() (bool, tkerror.Kind) {
	return true, tkerror.EmptyExpression
}

// unexpectedToken is a parenthesis in a postfix expression.
type unexpectedToken struct {
	text string
	pos  int
}

func (u *unexpectedToken) Error() string {
	return fmt.Sprintf("unexpected %q at position %d in postfix expression", u.text, u.pos)
}

func (u *unexpectedToken) Malformed() (bool, tkerror.Kind) {
	return true, tkerror.UnsupportedCharacter
}

type unboundSymbol struct {
	symbol string
}

func (u *unboundSymbol) Error() string {
	return fmt.Sprintf("no value bound to symbol %q", u.symbol)
}

func (u *unboundSymbol) Malformed() (bool, tkerror.Kind) {
	return true, tkerror.UnboundSymbol
}
