package v1

import (
	"context"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/darkowlzz/expression-toolkit/constant"
	"github.com/darkowlzz/expression-toolkit/stack"
	"github.com/darkowlzz/expression-toolkit/telemetry"
	"github.com/darkowlzz/expression-toolkit/token"
)

// Name of the instrumentation.
const instrumentationName = constant.LibraryName + "/converter"

// ComparisonMode decides which operators take part in the precedence
// comparison against the top of the operator stack.
type ComparisonMode int

const (
	// FullOperatorComparison compares all the operators, + - * / ^, by
	// precedence.
	FullOperatorComparison ComparisonMode = iota
	// RestrictedOperatorComparison only compares + - * / by precedence. An
	// incoming ^ never pops the stack and a ^ on the stack is only popped by
	// a closing parenthesis or at the end of the input.
	RestrictedOperatorComparison
)

// Converter converts infix expressions to postfix. The operator stack is
// owned by the converter and reset on every conversion, so a Converter can be
// reused but isn't safe for concurrent use.
type Converter struct {
	stack      *stack.Stack[token.Token]
	comparison ComparisonMode
	rightAssoc map[string]bool
	multiChar  bool
	inst       *telemetry.Instrumentation

	conversions metric.Int64Counter
}

// Option is used to configure Converter.
type Option func(*Converter)

// WithComparison sets the ComparisonMode of the converter.
func WithComparison(mode ComparisonMode) Option {
	return func(c *Converter) {
		c.comparison = mode
	}
}

// WithRightAssociative makes the given operators right-associative. An
// incoming right-associative operator only pops operators of strictly higher
// precedence.
func WithRightAssociative(ops ...string) Option {
	return func(c *Converter) {
		for _, op := range ops {
			c.rightAssoc[op] = true
		}
	}
}

// WithMultiCharOperands allows operands of more than one character. The
// postfix string then separates the tokens with a space.
func WithMultiCharOperands() Option {
	return func(c *Converter) {
		c.multiChar = true
	}
}

// WithInstrumentation configures the instrumentation of the converter.
func WithInstrumentation(tp trace.TracerProvider, mp metric.MeterProvider, log logr.Logger) Option {
	return func(c *Converter) {
		c.inst = telemetry.NewInstrumentationWithProviders(instrumentationName, tp, mp, log)
	}
}

// NewConverter returns a Converter configured with the given options.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		stack:      stack.New[token.Token](),
		comparison: FullOperatorComparison,
		rightAssoc: map[string]bool{},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.inst == nil {
		c.inst = telemetry.NewInstrumentation(instrumentationName)
	}

	c.conversions = c.inst.Counter(telemetry.ConversionsCounter)

	return c
}

// ToPostfix converts an infix expression with a default converter.
func ToPostfix(expr string) (string, error) {
	return NewConverter().ToPostfix(expr)
}

// ToPostfix converts an infix expression to postfix.
func (c *Converter) ToPostfix(expr string) (string, error) {
	return c.ToPostfixContext(context.Background(), expr)
}

// ToPostfixContext converts an infix expression to postfix. Single character
// operands are concatenated, multi-character operands are separated by a
// space.
func (c *Converter) ToPostfixContext(ctx context.Context, expr string) (string, error) {
	tokens, err := c.ToPostfixTokens(ctx, expr)
	if err != nil {
		return "", err
	}
	sep := ""
	if c.multiChar {
		sep = " "
	}
	return token.Join(tokens, sep), nil
}

// ToPostfixTokens converts an infix expression to a postfix sequence of
// tokens.
func (c *Converter) ToPostfixTokens(ctx context.Context, expr string) (_ []token.Token, rerr error) {
	ctx, span, _, log := c.inst.Start(ctx, "to-postfix")
	defer span.End()

	var lexOpts []token.LexOption
	if c.multiChar {
		lexOpts = append(lexOpts, token.WithMultiCharOperands())
	}

	defer func() {
		c.conversions.Add(ctx, 1, telemetry.Outcome(rerr))
	}()

	tokens, err := token.Lex(expr, lexOpts...)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	postfix, err := c.convert(tokens)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.V(1).Info("conversion failed", "infix", expr, "error", err.Error())
		return nil, err
	}

	log.V(1).Info("converted", "tokens", len(tokens), "postfixLength", len(postfix))
	return postfix, nil
}

// convert runs the shunting-yard algorithm over the tokens.
func (c *Converter) convert(tokens []token.Token) ([]token.Token, error) {
	// Discard any state from a previous conversion.
	c.stack.Reset()
	output := make([]token.Token, 0, len(tokens))

	for _, t := range tokens {
		switch t.Kind {
		case token.Operand:
			output = append(output, t)

		case token.OpenParen:
			c.stack.Push(t)

		case token.CloseParen:
			var err error
			output, err = c.popUntilOpenParen(t, output)
			if err != nil {
				return nil, err
			}

		case token.Operator:
			output = c.popWhileYields(t, output)
			c.stack.Push(t)
		}
	}

	for {
		top, ok := c.stack.Pop()
		if !ok {
			break
		}
		if top.Kind == token.OpenParen {
			return nil, &unbalancedParentheses{pos: top.Pos, unclosed: true}
		}
		output = append(output, top)
	}

	return output, nil
}

// popUntilOpenParen pops the operators into the output until an open
// parenthesis is popped. The open parenthesis is discarded.
func (c *Converter) popUntilOpenParen(closing token.Token, output []token.Token) ([]token.Token, error) {
	for {
		top, ok := c.stack.Pop()
		if !ok {
			return nil, &unbalancedParentheses{pos: closing.Pos}
		}
		if top.Kind == token.OpenParen {
			return output, nil
		}
		output = append(output, top)
	}
}

// popWhileYields pops the operators into the output for as long as the
// incoming operator yields to the top of the stack.
func (c *Converter) popWhileYields(incoming token.Token, output []token.Token) []token.Token {
	for {
		top, ok := c.stack.Peek()
		if !ok || !c.yields(incoming, top) {
			return output
		}
		c.stack.Pop()
		output = append(output, top)
	}
}

// yields returns true if the operator on top of the stack must be emitted
// before the incoming operator is pushed. Equal precedence pops, which makes
// the operators left-associative, unless the incoming operator is configured
// as right-associative.
func (c *Converter) yields(incoming, top token.Token) bool {
	if !c.comparable(incoming) || !c.comparable(top) {
		return false
	}
	in, _ := token.Precedence(incoming.Text)
	st, _ := token.Precedence(top.Text)
	if c.rightAssoc[incoming.Text] {
		return in < st
	}
	return in <= st
}

// comparable returns true if the token takes part in precedence comparison
// under the converter's ComparisonMode.
func (c *Converter) comparable(t token.Token) bool {
	if c.comparison == RestrictedOperatorComparison {
		return t.IsArithmeticOperator()
	}
	return t.IsOperator()
}
