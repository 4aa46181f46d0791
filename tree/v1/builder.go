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
const instrumentationName = constant.LibraryName + "/tree"

// Builder builds expression trees from postfix expressions. The node stack is
// local to every build, so a Builder is safe for concurrent use.
type Builder struct {
	multiChar bool
	inst      *telemetry.Instrumentation

	builds metric.Int64Counter
}

// BuilderOption is used to configure Builder.
type BuilderOption func(*Builder)

// WithMultiCharOperands makes the builder read space separated multi-character
// operands.
func WithMultiCharOperands() BuilderOption {
	return func(b *Builder) {
		b.multiChar = true
	}
}

// WithInstrumentation configures the instrumentation of the builder.
func WithInstrumentation(tp trace.TracerProvider, mp metric.MeterProvider, log logr.Logger) BuilderOption {
	return func(b *Builder) {
		b.inst = telemetry.NewInstrumentationWithProviders(instrumentationName, tp, mp, log)
	}
}

// NewBuilder returns a Builder configured with the given options.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}

	if b.inst == nil {
		b.inst = telemetry.NewInstrumentation(instrumentationName)
	}

	b.builds = b.inst.Counter(telemetry.TreesCounter)

	return b
}

// Build builds a tree from a postfix expression with a default builder.
func Build(postfix string) (*Node, error) {
	return NewBuilder().Build(context.Background(), postfix)
}

// Build lexes a postfix expression and builds its tree.
func (b *Builder) Build(ctx context.Context, postfix string) (*Node, error) {
	var lexOpts []token.LexOption
	if b.multiChar {
		lexOpts = append(lexOpts, token.WithMultiCharOperands())
	}
	tokens, err := token.Lex(postfix, lexOpts...)
	if err != nil {
		return nil, err
	}
	return b.BuildTokens(ctx, tokens)
}

// BuildTokens builds a tree from a postfix sequence of tokens. Every operand
// becomes a leaf. Every operator pops the last two subtrees, the most recent
// one becoming its right child, and pushes itself. Exactly one subtree must
// remain at the end: the root.
func (b *Builder) BuildTokens(ctx context.Context, tokens []token.Token) (*Node, error) {
	ctx, span, _, log := b.inst.Start(ctx, "construct-tree")
	defer span.End()

	root, err := build(tokens)

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.V(1).Info("tree construction failed", "error", err.Error())
	} else {
		log.V(1).Info("tree built", "nodes", len(tokens))
	}
	b.builds.Add(ctx, 1, telemetry.Outcome(err))

	return root, err
}

func build(tokens []token.Token) (*Node, error) {
	if len(tokens) == 0 {
		return nil, emptyExpression{}
	}

	nodes := stack.New[*Node]()
	for _, t := range tokens {
		switch t.Kind {
		case token.Operator:
			t1, ok := nodes.Pop()
			if !ok {
				return nil, &insufficientOperands{operator: t.Text, pos: t.Pos, available: 0}
			}
			t2, ok := nodes.Pop()
			if !ok {
				return nil, &insufficientOperands{operator: t.Text, pos: t.Pos, available: 1}
			}
			nodes.Push(&Node{Value: t.Text, Left: t2, Right: t1})

		case token.Operand:
			nodes.Push(&Node{Value: t.Text})

		default:
			return nil, &unexpectedToken{text: t.Text, pos: t.Pos}
		}
	}

	if nodes.Size() != 1 {
		return nil, &residualOperands{remaining: nodes.Size()}
	}
	root, _ := nodes.Pop()
	return root, nil
}
