// Package token classifies the characters of an arithmetic expression and
// splits an expression into tokens. It also holds the operator precedence
// table shared by the converter and the tree builder.
package token
