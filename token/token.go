package token

import (
	"fmt"
	"strings"
	"unicode"

	tkerror "github.com/darkowlzz/expression-toolkit/error"
)

// Kind is the class of a token.
type Kind int

const (
	Operand Kind = iota
	Operator
	OpenParen
	CloseParen
)

func (k Kind) String() string {
	switch k {
	case Operand:
		return "operand"
	case Operator:
		return "operator"
	case OpenParen:
		return "open-paren"
	case CloseParen:
		return "close-paren"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a classified piece of an expression.
type Token struct {
	Kind Kind
	Text string
	// Pos is the index of the first rune of the token in the source
	// expression.
	Pos int
}

func (t Token) String() string {
	return t.Text
}

// IsOperator returns true if the token is one of + - * / ^.
func (t Token) IsOperator() bool {
	return t.Kind == Operator
}

// IsArithmeticOperator returns true if the token is one of + - * /.
func (t Token) IsArithmeticOperator() bool {
	return t.Kind == Operator && t.Text != OpPow
}

// Join concatenates the text of the tokens with the given separator.
func Join(tokens []Token, sep string) string {
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		parts = append(parts, t.Text)
	}
	return strings.Join(parts, sep)
}

// unsupportedCharacter implements the malformed error interface to be used
// with IsMalformed().
type unsupportedCharacter struct {
	char rune
	pos  int
}

func (u *unsupportedCharacter) Error() string {
	return fmt.Sprintf("unsupported character %q at position %d", u.char, u.pos)
}

func (u *unsupportedCharacter) Malformed() (bool, tkerror.Kind) {
	return true, tkerror.UnsupportedCharacter
}

// lexConfig is the configuration of the lexer.
type lexConfig struct {
	multiChar bool
}

// LexOption is used to configure Lex.
type LexOption func(*lexConfig)

// WithMultiCharOperands makes the lexer merge runs of letters and digits
// into a single operand. Whitespace then separates adjacent operands.
func WithMultiCharOperands() LexOption {
	return func(c *lexConfig) {
		c.multiChar = true
	}
}

// Lex splits an expression into tokens. By default every operand is a
// single character and whitespace is ignored.
func Lex(expr string, opts ...LexOption) ([]Token, error) {
	cfg := &lexConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	tokens := []Token{}
	var operand []rune
	operandPos := 0

	flush := func() {
		if len(operand) > 0 {
			tokens = append(tokens, Token{Kind: Operand, Text: string(operand), Pos: operandPos})
			operand = operand[:0]
		}
	}

	for pos, r := range []rune(expr) {
		switch {
		case unicode.IsSpace(r):
			flush()
		case IsOperand(r):
			if !cfg.multiChar {
				tokens = append(tokens, Token{Kind: Operand, Text: string(r), Pos: pos})
				continue
			}
			if len(operand) == 0 {
				operandPos = pos
			}
			operand = append(operand, r)
		case IsOperator(r):
			flush()
			tokens = append(tokens, Token{Kind: Operator, Text: string(r), Pos: pos})
		case IsOpenParen(r):
			flush()
			tokens = append(tokens, Token{Kind: OpenParen, Text: string(r), Pos: pos})
		case IsCloseParen(r):
			flush()
			tokens = append(tokens, Token{Kind: CloseParen, Text: string(r), Pos: pos})
		default:
			return nil, &unsupportedCharacter{char: r, pos: pos}
		}
	}
	flush()

	return tokens, nil
}
