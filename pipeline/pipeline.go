package pipeline

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/darkowlzz/expression-toolkit/artifact"
	"github.com/darkowlzz/expression-toolkit/config"
	"github.com/darkowlzz/expression-toolkit/constant"
	converterv1 "github.com/darkowlzz/expression-toolkit/converter/v1"
	"github.com/darkowlzz/expression-toolkit/generator"
	layoutv1 "github.com/darkowlzz/expression-toolkit/layout/v1"
	"github.com/darkowlzz/expression-toolkit/render"
	"github.com/darkowlzz/expression-toolkit/telemetry"
	"github.com/darkowlzz/expression-toolkit/token"
	treev1 "github.com/darkowlzz/expression-toolkit/tree/v1"
)

// Name of the instrumentation.
const instrumentationName = constant.LibraryName + "/pipeline"

// TreeResult is the outcome of processing the tree of one depth.
type TreeResult struct {
	Depth   int
	Postfix string
	Nodes   int
	Levels  int
	Image   string
}

// Report is the outcome of a run.
type Report struct {
	Formulas []generator.Pair
	Trees    []TreeResult
}

// Pipeline is a configured run of the toolkit.
type Pipeline struct {
	cfg      *config.Config
	store    *artifact.Store
	renderer render.Renderer
	strategy layoutv1.Strategy

	generator *generator.Generator
	converter *converterv1.Converter
	builder   *treev1.Builder

	tp   trace.TracerProvider
	mp   metric.MeterProvider
	log  logr.Logger
	inst *telemetry.Instrumentation

	images metric.Int64Counter
}

// Option is used to configure Pipeline.
type Option func(*Pipeline)

// WithRenderer sets the renderer of the tree images. The default renderer is
// a PNGRenderer sized by the configuration.
func WithRenderer(r render.Renderer) Option {
	return func(p *Pipeline) {
		p.renderer = r
	}
}

// WithInstrumentation configures the instrumentation of the pipeline and of
// the converter and tree builder it runs.
func WithInstrumentation(tp trace.TracerProvider, mp metric.MeterProvider, log logr.Logger) Option {
	return func(p *Pipeline) {
		p.tp = tp
		p.mp = mp
		p.log = log
	}
}

// New returns a Pipeline for the given configuration, writing its artifacts
// into store.
func New(cfg *config.Config, store *artifact.Store, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	strategy, err := layoutv1.ParseStrategy(cfg.Render.Layout)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:       cfg,
		store:     store,
		strategy:  strategy,
		generator: generator.New(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.renderer == nil {
		p.renderer = render.NewPNGRenderer(
			render.WithSize(cfg.Render.Width, cfg.Render.Height),
			render.WithNodeRadius(cfg.Render.NodeRadius),
		)
	}

	p.inst = telemetry.NewInstrumentationWithProviders(instrumentationName, p.tp, p.mp, p.log)
	p.converter = converterv1.NewConverter(p.converterOptions()...)
	p.builder = treev1.NewBuilder(p.builderOptions()...)

	p.images = p.inst.Counter(telemetry.ImagesCounter)

	return p, nil
}

func (p *Pipeline) converterOptions() []converterv1.Option {
	opts := []converterv1.Option{
		converterv1.WithInstrumentation(p.tp, p.mp, p.log),
		converterv1.WithRightAssociative(p.cfg.Converter.RightAssociative...),
	}
	if p.cfg.Converter.Comparison == config.ComparisonRestricted {
		opts = append(opts, converterv1.WithComparison(converterv1.RestrictedOperatorComparison))
	}
	if p.cfg.Converter.MultiCharOperands {
		opts = append(opts, converterv1.WithMultiCharOperands())
	}
	return opts
}

func (p *Pipeline) builderOptions() []treev1.BuilderOption {
	opts := []treev1.BuilderOption{
		treev1.WithInstrumentation(p.tp, p.mp, p.log),
	}
	if p.cfg.Converter.MultiCharOperands {
		opts = append(opts, treev1.WithMultiCharOperands())
	}
	return opts
}

// Run runs the pipeline.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	ctx, span, _, log := p.inst.Start(ctx, "run")
	defer span.End()

	report := &Report{}
	for depth := p.cfg.Formulas.Min; depth <= p.cfg.Formulas.Max; depth++ {
		pair := p.generator.Pair(depth)
		report.Formulas = append(report.Formulas, pair)

		if !p.cfg.Trees.Contains(depth) {
			continue
		}

		result, err := p.processTree(ctx, pair)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			log.Error(err, "failed to process tree", "depth", depth)
			return nil, errors.Wrapf(err, "depth %d", depth)
		}
		log.Info("rendered tree", "depth", depth, "nodes", result.Nodes, "image", result.Image)
		report.Trees = append(report.Trees, result)
	}

	if err := p.store.WriteFormulas(p.cfg.FormulaFile, report.Formulas); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	log.Info("wrote formulas", "file", p.store.Path(p.cfg.FormulaFile), "pairs", len(report.Formulas))

	return report, nil
}

// processTree converts, builds, lays out and renders the x1 formula of a
// pair.
func (p *Pipeline) processTree(ctx context.Context, pair generator.Pair) (result TreeResult, rerr error) {
	ctx, span, _, log := p.inst.Start(ctx, "process-tree", trace.WithAttributes(attribute.Int("depth", pair.Depth)))
	defer span.End()

	tokens, err := p.converter.ToPostfixTokens(ctx, pair.X1)
	if err != nil {
		return result, errors.Wrap(err, "failed to convert formula to postfix")
	}

	root, err := p.builder.BuildTokens(ctx, tokens)
	if err != nil {
		return result, errors.Wrap(err, "failed to build tree")
	}

	g, err := layoutv1.NewGraph(root)
	if err != nil {
		return result, errors.Wrap(err, "failed to create layout graph")
	}
	levels, err := g.Levels()
	if err != nil {
		return result, errors.Wrap(err, "failed to compute tree levels")
	}
	points, err := g.Place(p.strategy)
	if err != nil {
		return result, errors.Wrap(err, "failed to place tree")
	}

	name := artifact.ImageName(p.cfg.ImagePattern, pair.Depth)
	w, err := p.store.Create(name)
	if err != nil {
		return result, err
	}
	defer func() {
		if cErr := w.Close(); cErr != nil && rerr == nil {
			rerr = errors.Wrapf(cErr, "failed to close image %q", name)
		}
	}()

	if err := p.renderer.Render(w, g, points); err != nil {
		return result, errors.Wrapf(err, "failed to render image %q", name)
	}
	p.images.Add(ctx, 1)

	sep := ""
	if p.cfg.Converter.MultiCharOperands {
		sep = " "
	}
	result = TreeResult{
		Depth:   pair.Depth,
		Postfix: token.Join(tokens, sep),
		Nodes:   root.Count(),
		Levels:  len(levels),
		Image:   name,
	}
	log.V(1).Info("tree processed", "postfix", result.Postfix)

	return result, nil
}
