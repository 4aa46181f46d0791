package v1

import (
	"fmt"

	tkerror "github.com/darkowlzz/expression-toolkit/error"
)

// unbalancedParentheses implements the malformed error interface to be used
// with IsMalformed().
type unbalancedParentheses struct {
	pos int
	// unclosed is true for an open parenthesis that's never closed, false
	// for a close parenthesis with no open parenthesis.
	unclosed bool
}

func (u *unbalancedParentheses) Error() string {
	if u.unclosed {
		return fmt.Sprintf("unbalanced parentheses: '(' at position %d is never closed", u.pos)
	}
	return fmt.Sprintf("unbalanced parentheses: ')' at position %d has no matching '('", u.pos)
}

func (u *unbalancedParentheses) Malformed() (bool, tkerror.Kind) {
	return true, tkerror.UnbalancedParentheses
}
