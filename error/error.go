package error

import "errors"

// Kind is the kind of a malformed expression error.
type Kind int

const (
	// Unknown is returned when the error isn't a malformed expression error.
	Unknown Kind = iota
	// UnbalancedParentheses is a close parenthesis without a matching open
	// parenthesis, or an open parenthesis that's never closed.
	UnbalancedParentheses
	// InsufficientOperands is an operator with less than two operands
	// available.
	InsufficientOperands
	// ResidualOperands is a postfix expression that leaves more than one
	// subtree after all the tokens are consumed.
	ResidualOperands
	// EmptyExpression is an expression with no tokens.
	EmptyExpression
	// UnsupportedCharacter is a character that's neither an operand, an
	// operator nor a parenthesis.
	UnsupportedCharacter
	// UnboundSymbol is an operand with no value during evaluation.
	UnboundSymbol
)

var kindNames = map[Kind]string{
	Unknown:               "unknown",
	UnbalancedParentheses: "unbalanced parentheses",
	InsufficientOperands:  "insufficient operands",
	ResidualOperands:      "residual operands",
	EmptyExpression:       "empty expression",
	UnsupportedCharacter:  "unsupported character",
	UnboundSymbol:         "unbound symbol",
}

// String implements the Stringer interface for Kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[Unknown]
}

// malformed defines an interface for errors to implement when an error is
// caused by a malformed expression.
type malformed interface {
	Malformed() (bool, Kind)
}

// IsMalformed checks if the given error, or any error it wraps, is due to a
// malformed expression and returns the kind of the problem.
func IsMalformed(err error) (bool, Kind) {
	var m malformed
	if errors.As(err, &m) {
		return m.Malformed()
	}
	return false, Unknown
}

// IsKind checks if the given error is a malformed expression error of the
// given kind.
func IsKind(err error, kind Kind) bool {
	ok, k := IsMalformed(err)
	return ok && k == kind
}
