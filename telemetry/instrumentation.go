package telemetry

import (
	"context"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	logf "sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/darkowlzz/expression-toolkit/telemetry/tracing"
)

// Name of the logger library key.
const logLibraryKey = "library"

// Instrumentation provides instrumentation builder consisting of tracer, meter
// and logger.
type Instrumentation struct {
	trace  trace.Tracer
	metric metric.Meter
	log    logr.Logger
}

// NewInstrumentationWithProviders constructs and returns a new
// Instrumentation based on the given providers. Nil providers and a logger
// without a sink are replaced with the global defaults.
func NewInstrumentationWithProviders(name string, tp trace.TracerProvider, mp metric.MeterProvider, log logr.Logger) *Instrumentation {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	if log.GetSink() == nil {
		log = logf.Log
	}
	return &Instrumentation{
		trace:  tp.Tracer(name),
		metric: mp.Meter(name),
		log:    log.WithValues(logLibraryKey, name),
	}
}

// NewInstrumentation constructs and returns a new Instrumentation with default
// providers.
func NewInstrumentation(name string) *Instrumentation {
	return &Instrumentation{
		trace:  otel.GetTracerProvider().Tracer(name),
		metric: otel.GetMeterProvider().Meter(name),
		log:    logf.Log.WithValues(logLibraryKey, name),
	}
}

// Meter returns the meter of the instrumentation. Instruments are usually
// created once, when the instrumented component is initialized.
func (i *Instrumentation) Meter() metric.Meter {
	return i.metric
}

// Logger returns the logger of the instrumentation.
func (i *Instrumentation) Logger() logr.Logger {
	return i.log
}

// Start creates and returns a span, a meter and a tracing logger.
func (i *Instrumentation) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span, metric.Meter, logr.Logger) {
	ctx, span := i.trace.Start(ctx, name, opts...)
	// Use the created span to create a tracing logger with the span name.
	tl := tracing.NewLogger(i.log.WithValues("spanName", name), span)
	return ctx, span, i.metric, tl
}
