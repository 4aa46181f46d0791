package token

import (
	"testing"

	"github.com/stretchr/testify/assert"

	tkerror "github.com/darkowlzz/expression-toolkit/error"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		r          rune
		operand    bool
		operator   bool
		arithmetic bool
		openParen  bool
		closeParen bool
	}{
		{r: 'a', operand: true},
		{r: 'Q', operand: true},
		{r: '4', operand: true},
		{r: '+', operator: true, arithmetic: true},
		{r: '-', operator: true, arithmetic: true},
		{r: '*', operator: true, arithmetic: true},
		{r: '/', operator: true, arithmetic: true},
		{r: '^', operator: true},
		{r: '(', openParen: true},
		{r: ')', closeParen: true},
		{r: '%'},
		{r: ' '},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(string(tc.r), func(t *testing.T) {
			assert.Equal(t, tc.operand, IsOperand(tc.r), "IsOperand")
			assert.Equal(t, tc.operator, IsOperator(tc.r), "IsOperator")
			assert.Equal(t, tc.arithmetic, IsArithmeticOperator(tc.r), "IsArithmeticOperator")
			assert.Equal(t, tc.openParen, IsOpenParen(tc.r), "IsOpenParen")
			assert.Equal(t, tc.closeParen, IsCloseParen(tc.r), "IsCloseParen")
		})
	}
}

func TestPrecedence(t *testing.T) {
	for op, want := range map[string]int{"+": 1, "-": 1, "*": 2, "/": 2, "^": 3} {
		got, ok := Precedence(op)
		assert.True(t, ok, op)
		assert.Equal(t, want, got, op)
	}

	_, ok := Precedence("(")
	assert.False(t, ok)
}

func TestLex(t *testing.T) {
	cases := []struct {
		name      string
		expr      string
		opts      []LexOption
		wantTexts []string
		wantKinds []Kind
		wantErr   bool
	}{
		{
			name:      "empty",
			expr:      "",
			wantTexts: []string{},
			wantKinds: []Kind{},
		},
		{
			name:      "whitespace is stripped",
			expr:      " (v*t + x) ",
			wantTexts: []string{"(", "v", "*", "t", "+", "x", ")"},
			wantKinds: []Kind{OpenParen, Operand, Operator, Operand, Operator, Operand, CloseParen},
		},
		{
			name:      "single character operands",
			expr:      "ab12",
			wantTexts: []string{"a", "b", "1", "2"},
			wantKinds: []Kind{Operand, Operand, Operand, Operand},
		},
		{
			name:      "multi character operands",
			expr:      "(alpha+12)*beta gamma",
			opts:      []LexOption{WithMultiCharOperands()},
			wantTexts: []string{"(", "alpha", "+", "12", ")", "*", "beta", "gamma"},
			wantKinds: []Kind{OpenParen, Operand, Operator, Operand, CloseParen, Operator, Operand, Operand},
		},
		{
			name:    "unsupported character",
			expr:    "a+b=c",
			wantErr: true,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := Lex(tc.expr, tc.opts...)
			if tc.wantErr {
				assert.NotNil(t, err)
				ok, kind := tkerror.IsMalformed(err)
				assert.True(t, ok)
				assert.Equal(t, tkerror.UnsupportedCharacter, kind)
				return
			}
			assert.Nil(t, err)

			texts := []string{}
			kinds := []Kind{}
			for _, tok := range tokens {
				texts = append(texts, tok.Text)
				kinds = append(kinds, tok.Kind)
			}
			assert.Equal(t, tc.wantTexts, texts)
			assert.Equal(t, tc.wantKinds, kinds)
		})
	}
}

func TestLexPositions(t *testing.T) {
	tokens, err := Lex("ab + cd", WithMultiCharOperands())
	assert.Nil(t, err)
	assert.Equal(t, []int{0, 3, 5}, []int{tokens[0].Pos, tokens[1].Pos, tokens[2].Pos})

	_, err = Lex("a$b")
	assert.EqualError(t, err, `unsupported character '$' at position 1`)
}

func TestJoin(t *testing.T) {
	tokens, err := Lex("ab+", WithMultiCharOperands())
	assert.Nil(t, err)
	assert.Equal(t, "ab +", Join(tokens, " "))
}
