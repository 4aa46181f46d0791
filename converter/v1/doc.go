// Package v1 converts infix arithmetic expressions to postfix notation using
// the shunting-yard algorithm. Operands are emitted as they're read and
// operators are deferred on an operator stack until precedence, associativity
// or a closing parenthesis decides their place in the output.
package v1
