package tracing

import (
	"fmt"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// Trace event names.
	infoEventName  = "info"
	errorEventName = "error"

	// Trace event attribute keys.
	messageKey   = "message"
	eventTypeKey = "event.type"
	nonStringKey = "non-string"

	// Attribute values.
	logEventTypeValue = "log" // Value for trace event type log.
)

// NewLogger creates and returns a logger that writes to the given logger and
// also adds every log line as an event into the given span.
func NewLogger(logger logr.Logger, span trace.Span) logr.Logger {
	return logr.New(&tracingSink{sink: logger.GetSink(), span: span})
}

// tracingSink is a logr.LogSink with tracing support. It captures all the logs
// and adds them into a tracing span.
type tracingSink struct {
	sink logr.LogSink
	span trace.Span
}

// Init implements the LogSink interface.
func (t *tracingSink) Init(info logr.RuntimeInfo) {
	if t.sink != nil {
		t.sink.Init(info)
	}
}

// Enabled implements the LogSink interface. Span events are recorded for all
// the levels, the wrapped sink decides what gets written.
func (t *tracingSink) Enabled(level int) bool {
	return true
}

// Info implements the LogSink interface.
func (t *tracingSink) Info(level int, msg string, keysAndValues ...interface{}) {
	if t.sink != nil && t.sink.Enabled(level) {
		t.sink.Info(level, msg, keysAndValues...)
	}
	kvs := append(
		[]attribute.KeyValue{
			attribute.String(messageKey, msg),
			attribute.String(eventTypeKey, logEventTypeValue), // This helps identify an event as a log.
		},
		keyValues(keysAndValues...)...)
	t.span.AddEvent(infoEventName, trace.WithAttributes(kvs...))
}

// Error implements the LogSink interface.
func (t *tracingSink) Error(err error, msg string, keysAndValues ...interface{}) {
	if t.sink != nil {
		t.sink.Error(err, msg, keysAndValues...)
	}
	kvs := append(
		[]attribute.KeyValue{
			attribute.String(messageKey, msg),
			attribute.String(eventTypeKey, logEventTypeValue),
		},
		keyValues(keysAndValues...)...)
	t.span.AddEvent(errorEventName, trace.WithAttributes(kvs...))
	t.span.RecordError(err)
}

// WithValues implements the LogSink interface.
func (t *tracingSink) WithValues(keysAndValues ...interface{}) logr.LogSink {
	t.span.SetAttributes(keyValues(keysAndValues...)...)
	var sink logr.LogSink
	if t.sink != nil {
		sink = t.sink.WithValues(keysAndValues...)
	}
	return &tracingSink{sink: sink, span: t.span}
}

// WithName implements the LogSink interface.
func (t *tracingSink) WithName(name string) logr.LogSink {
	t.span.SetAttributes(attribute.String("name", name))
	var sink logr.LogSink
	if t.sink != nil {
		sink = t.sink.WithName(name)
	}
	return &tracingSink{sink: sink, span: t.span}
}

// keyValues converts the keysAndValues input from logger into a slice of
// opentelemetry attributes.
func keyValues(keysAndValues ...interface{}) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			// The key isn't a string. Unexpected value type.
			key = nonStringKey
		}
		attrs = append(attrs, toAttribute(key, keysAndValues[i+1]))
	}
	return attrs
}

// toAttribute converts a log value into an attribute, falling back to its
// string form for the types opentelemetry has no attribute for.
func toAttribute(key string, value interface{}) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case []string:
		return attribute.StringSlice(key, v)
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprint(v))
	}
}
