package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// collectCounter returns the description and the values per result of the
// named counter.
func collectCounter(t *testing.T, reader *sdkmetric.ManualReader, name string) (string, map[string]int64) {
	t.Helper()
	var rm metricdata.ResourceMetrics
	assert.Nil(t, reader.Collect(context.Background(), &rm))

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			assert.True(t, ok, "unexpected data %T", m.Data)
			values := map[string]int64{}
			for _, dp := range sum.DataPoints {
				v, _ := dp.Attributes.Value(resultKey)
				values[v.AsString()] += dp.Value
			}
			return m.Description, values
		}
	}
	t.Fatalf("counter %q not collected", name)
	return "", nil
}

func TestCounter(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	inst := NewInstrumentationWithProviders("counter-test", nil, mp, logr.Discard())

	ctx := context.Background()
	counter := inst.Counter(ConversionsCounter)
	counter.Add(ctx, 1, Outcome(nil))
	counter.Add(ctx, 1, Outcome(nil))
	counter.Add(ctx, 1, Outcome(errors.New("unbalanced")))

	desc, values := collectCounter(t, reader, ConversionsCounter)
	assert.Equal(t, "Number of infix to postfix conversions.", desc)
	assert.Equal(t, map[string]int64{"ok": 2, "error": 1}, values)
}

func TestCounterWithoutDescription(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	inst := NewInstrumentationWithProviders("counter-test", nil, mp, logr.Discard())

	inst.Counter("expression.custom").Add(context.Background(), 3, Outcome(nil))

	desc, values := collectCounter(t, reader, "expression.custom")
	assert.Equal(t, "", desc)
	assert.Equal(t, map[string]int64{"ok": 3}, values)
}
