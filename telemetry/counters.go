package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Names of the expression counters.
const (
	ConversionsCounter = "expression.conversions"
	TreesCounter       = "expression.trees"
	ImagesCounter      = "expression.images"
)

// Attribute key of the outcome of a counted operation.
const resultKey = "result"

var counterDescriptions = map[string]string{
	ConversionsCounter: "Number of infix to postfix conversions.",
	TreesCounter:       "Number of expression trees built.",
	ImagesCounter:      "Number of tree images rendered.",
}

// Counter returns the named counter of the instrumentation meter. Known
// expression counters get their description. If the instrument can't be
// created, the error is logged and a no-op counter is returned.
func (i *Instrumentation) Counter(name string) metric.Int64Counter {
	var opts []metric.Int64CounterOption
	if desc, ok := counterDescriptions[name]; ok {
		opts = append(opts, metric.WithDescription(desc))
	}
	counter, err := i.metric.Int64Counter(name, opts...)
	if err != nil {
		i.log.Error(err, "failed to create counter", "counter", name)
		return noop.Int64Counter{}
	}
	return counter
}

// Outcome returns the add option recording whether the counted operation
// failed.
func Outcome(err error) metric.AddOption {
	result := "ok"
	if err != nil {
		result = "error"
	}
	return metric.WithAttributes(attribute.String(resultKey, result))
}
